package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/strandhq/latchkey/pkg/idx"
	"github.com/strandhq/latchkey/pkg/jwtx"
	"github.com/strandhq/latchkey/pkg/slogx"
)

var (
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrInvalidClient        = errors.New("invalid_client")
	ErrInvalidGrant         = errors.New("invalid_grant")
	ErrInvalidScope         = errors.New("invalid_scope")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
	ErrInvalidCredentials   = errors.New("invalid_credentials")
)

// TokenService implements the token endpoint grants: authorization_code
// exchange with PKCE, refresh rotation, and revocation.
type TokenService struct {
	Store      store.Store
	Minter     *jwtx.Minter
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ExchangeAuthorizationCode implements the OAuth2 authorization_code grant.
//
// It authenticates confidential clients, redeems the single-use code,
// enforces PKCE and the redirect_uri binding, and issues a fresh token pair.
// The code is consumed even when a later check fails: a failed exchange must
// not leave the code replayable.
func (s *TokenService) ExchangeAuthorizationCode(
	ctx context.Context,
	clientID, clientSecret, code, redirectURI, codeVerifier string,
) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, err
	}

	// Confidential clients must authenticate
	if client.Secret != "" {
		if subtle.ConstantTimeCompare([]byte(clientSecret), []byte(client.Secret)) != 1 {
			l.Info("authorization_code grant client authentication failed", slog.String("client_id", clientID))
			return nil, ErrInvalidClient
		}
	}

	code = strings.TrimSpace(code)
	redirectURI = strings.TrimSpace(redirectURI)
	codeVerifier = strings.TrimSpace(codeVerifier)
	if code == "" {
		return nil, ErrInvalidGrant
	}

	codeHash := cryptox.FingerprintToken(code)

	var result *domain.TokenPair
	var denied error

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Redeem first. Validation failures past this point must not fail
		// the transaction: a rollback would revive the code, so they commit
		// the redemption and report through denied instead.
		authCode, err := tx.AuthorizationCodes().RedeemAuthorizationCode(ctx, codeHash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}

		if authCode.ClientID != client.ID {
			denied = ErrInvalidGrant
			return nil
		}
		if authCode.RedirectURI != "" && authCode.RedirectURI != redirectURI {
			denied = ErrInvalidGrant
			return nil
		}
		if err := verifyCodeVerifier(authCode.CodeChallenge, authCode.CodeChallengeMethod, codeVerifier); err != nil {
			denied = err
			return nil
		}

		user, err := tx.Users().GetUserByID(ctx, authCode.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				denied = ErrInvalidGrant
				return nil
			}
			return err
		}
		if !user.Active {
			denied = ErrInvalidGrant
			return nil
		}

		pair, record, err := s.mintTokenPair(client.ID, user.ID, authCode.Scope, now)
		if err != nil {
			return err
		}

		if scopeContains(authCode.Scope, "openid") {
			idToken, err := s.Minter.Mint(strconv.FormatInt(user.ID, 10), client.ID, user.Email, user.FullName, s.AccessTTL)
			if err != nil {
				return err
			}
			pair.IDToken = idToken
		}

		if err := tx.Tokens().CreateToken(ctx, record); err != nil {
			return err
		}

		result = pair
		return nil
	})
	if err != nil {
		return nil, err
	}
	if denied != nil {
		return nil, denied
	}

	return result, nil
}

// ExchangeRefreshToken implements the OAuth2 refresh_token grant with
// rotation: the presented refresh token is revoked and a new pair issued in
// one transaction, so a replayed refresh token fails cleanly.
//
// Scope may be narrowed on refresh but never widened beyond the original
// grant.
func (s *TokenService) ExchangeRefreshToken(
	ctx context.Context,
	refreshOpaque string,
	requestedScope string,
) (*domain.TokenPair, error) {
	now := time.Now()

	refreshOpaque = strings.TrimSpace(refreshOpaque)
	if refreshOpaque == "" {
		return nil, ErrInvalidRequest
	}
	fp := cryptox.FingerprintToken(refreshOpaque)

	var result *domain.TokenPair

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.Tokens().GetTokenByRefreshHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidGrant
			}
			return err
		}

		scope := old.Scope
		if strings.TrimSpace(requestedScope) != "" {
			narrowed := intersectScopes(splitScope(requestedScope), splitScope(old.Scope))
			if len(narrowed) == 0 {
				return ErrInvalidScope
			}
			scope = joinScope(narrowed)
		}

		pair, record, err := s.mintTokenPair(old.ClientID, old.UserID, scope, now)
		if err != nil {
			return err
		}

		if err := tx.Tokens().RevokeToken(ctx, old.ID); err != nil {
			return err
		}
		if err := tx.Tokens().CreateToken(ctx, record); err != nil {
			return err
		}

		result = pair
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Revoke handles RFC 7009 revocation. Unknown or already dead tokens are a
// quiet success; the caller always gets 200.
func (s *TokenService) Revoke(ctx context.Context, opaque string) error {
	opaque = strings.TrimSpace(opaque)
	if opaque == "" {
		return nil
	}
	fp := cryptox.FingerprintToken(opaque)

	tok, err := s.Store.Tokens().GetTokenByRefreshHashAny(ctx, fp)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		// Not a refresh token; try the access half.
		tok, err = s.Store.Tokens().GetTokenByAccessHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}
	}

	if tok.Revoked {
		return nil
	}
	return s.Store.Tokens().RevokeToken(ctx, tok.ID)
}

// mintTokenPair generates a fresh opaque access/refresh pair and the store
// record holding their fingerprints.
func (s *TokenService) mintTokenPair(clientID string, userID int64, scope string, now time.Time) (*domain.TokenPair, domain.Token, error) {
	accessOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, domain.Token{}, err
	}
	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, domain.Token{}, err
	}

	record := domain.Token{
		ID:               idx.New().String(),
		AccessHash:       cryptox.FingerprintToken(accessOpaque),
		RefreshHash:      cryptox.FingerprintToken(refreshOpaque),
		ClientID:         clientID,
		UserID:           userID,
		Scope:            scope,
		TokenType:        "Bearer",
		IssuedAt:         now,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshExpiresAt: now.Add(s.RefreshTTL),
	}

	pair := &domain.TokenPair{
		AccessToken:  accessOpaque,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
		Scope:        scope,
	}
	return pair, record, nil
}
