package domain

import "time"

// TokenPair is what the token endpoint hands back to the HTTP layer:
// the raw access and refresh token values plus response metadata.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	ExpiresIn    time.Duration
	Scope        string
	IDToken      string // set when scope includes "openid"
}

// Token models a stored access/refresh token pair. Both values are kept as
// deterministic fingerprints; revocation kills both halves at once.
type Token struct {
	ID               string // ULID
	AccessHash       string
	RefreshHash      string // empty when no refresh token was issued
	ClientID         string
	UserID           int64
	Scope            string
	TokenType        string
	IssuedAt         time.Time
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time // zero when no refresh token was issued
	Revoked          bool
}
