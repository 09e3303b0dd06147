package http

import (
	"net/http"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
)

// MetadataHandler serves the discovery document (RFC 8414 / OIDC discovery).
// Both well-known paths answer with the same document.
//
//	@Summary		Server Metadata Endpoint
//	@Description	Returns the authorization server metadata: issuer, endpoint locations, and
//	@Description	the supported grant types, response types, PKCE methods, and scopes.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	idpsdk.ServerMetadata	"Authorization server metadata"
//	@Router			/.well-known/oauth-authorization-server [get].
func MetadataHandler(issuer string) http.HandlerFunc {
	base := strings.TrimSuffix(issuer, "/")

	metadata := idpsdk.ServerMetadata{
		Issuer:                            issuer,
		AuthorizationEndpoint:             base + "/authorize",
		TokenEndpoint:                     base + "/token",
		UserinfoEndpoint:                  base + "/userinfo",
		RegistrationEndpoint:              base + "/register",
		RevocationEndpoint:                base + "/revoke",
		JWKSURI:                           base + "/jwks.json",
		ResponseTypesSupported:            []string{"code"},
		GrantTypesSupported:               []string{"authorization_code", "refresh_token"},
		CodeChallengeMethodsSupported:     []string{"S256", "plain"},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_post", "client_secret_basic", "none"},
		ScopesSupported:                   strings.Fields(service.DefaultScope),
		SubjectTypesSupported:             []string{"public"},
		IDTokenSigningAlgValuesSupported:  []string{"HS256"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, metadata)
	}
}
