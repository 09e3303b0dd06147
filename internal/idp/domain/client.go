package domain

import "time"

// Client is a registered OAuth2 client. An empty Secret marks a public
// client: the token endpoint skips secret verification for it.
type Client struct {
	ID                      string
	Secret                  string
	Name                    string
	RedirectURIs            []string // exact-match allowlist
	Scope                   string   // space-delimited
	GrantTypes              []string
	ResponseTypes           []string
	TokenEndpointAuthMethod string
	CreatedAt               time.Time
}

// AllowsRedirectURI reports whether uri exactly matches a registered
// redirect URI. No normalization: byte equality only.
func (c Client) AllowsRedirectURI(uri string) bool {
	for _, registered := range c.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}
