package idpsdk

import (
	"context"
	"net/http"
)

// WellKnownOAuth and WellKnownOIDC are the discovery paths the server
// answers; both return the same document.
const (
	WellKnownOAuth = "/.well-known/oauth-authorization-server"
	WellKnownOIDC  = "/.well-known/openid-configuration"
)

// Metadata fetches the server discovery document from the given well-known
// path (WellKnownOAuth or WellKnownOIDC).
func (c *SDKClient) Metadata(ctx context.Context, wellKnownPath string) (*ServerMetadata, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, wellKnownPath, nil, nil)
	if err != nil {
		return nil, err
	}

	var meta ServerMetadata
	if err := decodeJSON(resp, &meta, http.StatusOK); err != nil {
		return nil, err
	}
	return &meta, nil
}

// JWKS fetches the server's JSON Web Key Set.
func (c *SDKClient) JWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}
