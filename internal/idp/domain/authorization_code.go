package domain

import "time"

// AuthorizationCode represents an OAuth 2.0 authorization code issuance.
// The raw code value exists only in the issuance response; the store keeps
// its SHA-256 fingerprint.
type AuthorizationCode struct {
	ID                  string // ULID
	CodeHash            string
	ClientID            string
	UserID              int64
	RedirectURI         string
	Scope               string // space-delimited
	CodeChallenge       string // empty when PKCE was not used
	CodeChallengeMethod string // "S256" or "plain"
	ExpiresAt           time.Time
	UsedAt              *time.Time
	CreatedAt           time.Time
}
