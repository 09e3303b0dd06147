package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for standard OAuth2/OIDC flows.
// These provide sensible security defaults but can be overridden per-service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 1 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalidToken reports a token that failed signature or claim validation.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrNoSecret reports a minter constructed without signing material.
	ErrNoSecret = errors.New("jwtx: signing secret is empty")
)

// IDClaims are the OIDC ID-token claims this service mints. The registered
// claims carry iss/sub/aud/exp/iat; email and name ride alongside so relying
// parties can render a profile without a userinfo round trip.
type IDClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Minter signs compact HS256 ID tokens with a shared symmetric secret.
// This is deliberately not a general-purpose JWT engine: one algorithm,
// one key, no rotation.
type Minter struct {
	Secret []byte
	Issuer string
}

// Mint builds and signs an ID token for the given subject and audience.
// The token expires after ttl, matching the access token issued alongside it.
func (m *Minter) Mint(subject, clientID, email, fullName string, ttl time.Duration) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := IDClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{clientID},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Name:  fullName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign id token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates an ID token previously minted with the same
// secret. Mainly used by tests and debugging tooling.
func (m *Minter) Verify(tokenString string) (*IDClaims, error) {
	if len(m.Secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := &IDClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwtx: unexpected signing method %q", t.Method.Alg())
		}
		return m.Secret, nil
	}, jwt.WithIssuer(m.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
