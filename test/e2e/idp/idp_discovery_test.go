package idp_test

import (
	"testing"

	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/stretchr/testify/require"
)

// TestDiscoveryDocument verifies both well-known paths serve the same
// metadata with endpoints rooted at the issuer.
func TestDiscoveryDocument(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)

	oauth, err := client.Metadata(ctx, idpsdk.WellKnownOAuth)
	require.NoError(t, err)
	oidc, err := client.Metadata(ctx, idpsdk.WellKnownOIDC)
	require.NoError(t, err)
	require.Equal(t, oauth, oidc, "Both discovery paths serve the same document")

	require.Equal(t, issuer, oauth.Issuer)
	require.Equal(t, issuer+"/authorize", oauth.AuthorizationEndpoint)
	require.Equal(t, issuer+"/token", oauth.TokenEndpoint)
	require.Equal(t, issuer+"/userinfo", oauth.UserinfoEndpoint)
	require.Equal(t, issuer+"/register", oauth.RegistrationEndpoint)
	require.Equal(t, issuer+"/revoke", oauth.RevocationEndpoint)
	require.Equal(t, issuer+"/jwks.json", oauth.JWKSURI)

	require.Equal(t, []string{"code"}, oauth.ResponseTypesSupported)
	require.ElementsMatch(t, []string{"authorization_code", "refresh_token"}, oauth.GrantTypesSupported)
	require.ElementsMatch(t, []string{"S256", "plain"}, oauth.CodeChallengeMethodsSupported)
	require.Contains(t, oauth.ScopesSupported, "openid")
	require.Equal(t, []string{"HS256"}, oauth.IDTokenSigningAlgValuesSupported)
}

// TestJWKSDocument verifies the key set carries the single oct signing key.
func TestJWKSDocument(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	client := idpsdk.NewSDKClient(baseURL)

	jwks, err := client.JWKS(t.Context())
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)

	key := jwks.Keys[0]
	require.Equal(t, "oct", key.Kty)
	require.Equal(t, "sig", key.Use)
	require.Equal(t, "HS256", key.Alg)
	require.NotEmpty(t, key.Kid)
	require.NotEmpty(t, key.K)
}
