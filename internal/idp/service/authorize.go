package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/strandhq/latchkey/pkg/idx"
	"github.com/strandhq/latchkey/pkg/slogx"
)

var (
	// ErrInvalidRedirectURI means the redirect_uri is missing or not on the
	// client's allowlist. The HTTP layer must NOT redirect to it.
	ErrInvalidRedirectURI = errors.New("invalid_redirect_uri")

	ErrUnsupportedResponseType = errors.New("unsupported_response_type")
	ErrAccessDenied            = errors.New("access_denied")
)

// AuthorizeService encapsulates the authorization-code issuance flow: request
// validation, interactive login, and code minting.
type AuthorizeService struct {
	Store   store.Store
	CodeTTL time.Duration
}

// AuthorizeRequest captures the inputs of an authorization request.
type AuthorizeRequest struct {
	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string

	// Username/password pair from the consent form.
	Username string
	Password string
}

// AuthorizeCodeResponse contains the authorization code and the redirect
// parameters needed to complete the front-channel leg.
type AuthorizeCodeResponse struct {
	Code        string
	RedirectURI string
	State       string
}

// ValidateRequest checks the front-channel parameters before any credentials
// are involved. Ordering matters for error handling at the HTTP layer:
// client and redirect_uri problems come back before response_type ones,
// because only a validated redirect_uri may receive an error redirect.
func (s *AuthorizeService) ValidateRequest(ctx context.Context, req AuthorizeRequest) (domain.Client, error) {
	clientID := strings.TrimSpace(req.ClientID)
	redirectURI := strings.TrimSpace(req.RedirectURI)
	if clientID == "" || redirectURI == "" {
		return domain.Client{}, ErrInvalidRequest
	}

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrInvalidClient
		}
		return domain.Client{}, err
	}

	if !client.AllowsRedirectURI(redirectURI) {
		return domain.Client{}, ErrInvalidRedirectURI
	}

	if !strings.EqualFold(strings.TrimSpace(req.ResponseType), "code") {
		return client, ErrUnsupportedResponseType
	}

	if _, _, err := validatePKCE(req.CodeChallenge, req.CodeChallengeMethod, client.Secret); err != nil {
		return client, err
	}

	return client, nil
}

// IssueAuthorizationCode authenticates the resource owner and mints a
// single-use code bound to the client, redirect_uri, scope, and PKCE
// challenge.
func (s *AuthorizeService) IssueAuthorizationCode(ctx context.Context, req AuthorizeRequest) (*AuthorizeCodeResponse, error) {
	log := slogx.FromContext(ctx)

	client, err := s.ValidateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	challenge, method, err := validatePKCE(req.CodeChallenge, req.CodeChallengeMethod, client.Secret)
	if err != nil {
		return nil, err
	}

	scope := effectiveScope(req.Scope, client.Scope)

	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		log.Info("authorize: authentication failed", "client_id", client.ID)
		return nil, err
	}

	now := time.Now()
	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, err
	}

	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	record := domain.AuthorizationCode{
		ID:                  idx.New().String(),
		CodeHash:            cryptox.FingerprintToken(code),
		ClientID:            client.ID,
		UserID:              user.ID,
		RedirectURI:         strings.TrimSpace(req.RedirectURI),
		Scope:               scope,
		CodeChallenge:       challenge,
		CodeChallengeMethod: method,
		ExpiresAt:           now.Add(ttl),
		CreatedAt:           now,
	}

	if err := s.Store.AuthorizationCodes().CreateAuthorizationCode(ctx, record); err != nil {
		return nil, err
	}

	return &AuthorizeCodeResponse{
		Code:        code,
		RedirectURI: record.RedirectURI,
		State:       req.State,
	}, nil
}

func (s *AuthorizeService) authenticate(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if !user.Active {
		return domain.User{}, ErrInvalidCredentials
	}
	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}
