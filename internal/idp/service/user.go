package service

import (
	"context"
	"errors"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
)

var ErrInvalidToken = errors.New("invalid_token")

// UserService resolves bearer tokens to their owning user for the userinfo
// endpoint.
type UserService struct {
	Store store.Store
}

// ResolveAccessToken looks up an opaque access token and returns the user it
// was issued to along with the stored token record. Expired and revoked
// tokens come back as ErrInvalidToken.
func (s *UserService) ResolveAccessToken(ctx context.Context, accessOpaque string) (domain.User, domain.Token, error) {
	if accessOpaque == "" {
		return domain.User{}, domain.Token{}, ErrInvalidToken
	}

	tok, err := s.Store.Tokens().GetTokenByAccessHash(ctx, cryptox.FingerprintToken(accessOpaque))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Token{}, ErrInvalidToken
		}
		return domain.User{}, domain.Token{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, tok.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Token{}, ErrInvalidToken
		}
		return domain.User{}, domain.Token{}, err
	}

	return user, tok, nil
}
