package idp_test

import (
	"testing"

	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/stretchr/testify/require"
)

// TestDynamicRegistrationDefaults verifies RFC 7591 registration fills in
// server defaults for omitted metadata.
func TestDynamicRegistrationDefaults(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	client := idpsdk.NewSDKClient(baseURL)

	reg, err := client.RegisterClient(t.Context(), idpsdk.ClientRegistrationRequest{
		RedirectURIs: []string{"https://app.example.com/callback"},
		ClientName:   "defaults client",
	})
	require.NoError(t, err)

	require.NotEmpty(t, reg.ClientID)
	require.NotEmpty(t, reg.ClientSecret)
	require.Positive(t, reg.ClientIDIssuedAt)
	require.Zero(t, reg.ClientSecretExpiresAt, "Secrets do not expire")
	require.Equal(t, "openid profile email", reg.Scope)
	require.ElementsMatch(t, []string{"authorization_code", "refresh_token"}, reg.GrantTypes)
	require.Equal(t, []string{"code"}, reg.ResponseTypes)
	require.Equal(t, "client_secret_post", reg.TokenEndpointAuthMethod)
}

// TestDynamicRegistrationPublicClient verifies auth method "none" yields no
// secret, and that such clients must use PKCE.
func TestDynamicRegistrationPublicClient(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)

	reg, err := client.RegisterClient(ctx, idpsdk.ClientRegistrationRequest{
		RedirectURIs:            []string{"https://spa.example.com/callback"},
		ClientName:              "public client",
		TokenEndpointAuthMethod: "none",
	})
	require.NoError(t, err)
	require.Empty(t, reg.ClientSecret, "Public clients get no secret")

	// Without PKCE the authorization request is rejected
	_, err = client.Authorize(ctx, idpsdk.AuthorizeParams{
		ClientID:    reg.ClientID,
		RedirectURI: reg.RedirectURIs[0],
		Scope:       "openid",
		Username:    adminUser,
		Password:    adminPass,
	})
	assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidRequest)

	// With PKCE the full flow works
	tokens := authorizeAndExchange(t, client, reg.ClientID, "", reg.RedirectURIs[0], "openid")
	assertTokenResponse(t, tokens)
}

// TestDynamicRegistrationRejectsBadMetadata covers the invalid metadata cases.
func TestDynamicRegistrationRejectsBadMetadata(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)

	cases := []struct {
		name string
		req  idpsdk.ClientRegistrationRequest
	}{
		{
			name: "no redirect URIs",
			req:  idpsdk.ClientRegistrationRequest{ClientName: "no redirects"},
		},
		{
			name: "relative redirect URI",
			req:  idpsdk.ClientRegistrationRequest{RedirectURIs: []string{"/callback"}},
		},
		{
			name: "fragment in redirect URI",
			req:  idpsdk.ClientRegistrationRequest{RedirectURIs: []string{"https://a.example.com/cb#frag"}},
		},
		{
			name: "unsupported grant type",
			req: idpsdk.ClientRegistrationRequest{
				RedirectURIs: []string{"https://a.example.com/cb"},
				GrantTypes:   []string{"client_credentials"},
			},
		},
		{
			name: "unsupported auth method",
			req: idpsdk.ClientRegistrationRequest{
				RedirectURIs:            []string{"https://a.example.com/cb"},
				TokenEndpointAuthMethod: "private_key_jwt",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.RegisterClient(ctx, tc.req)
			assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidClientMetadata)
		})
	}
}

// TestFormRegistration exercises the simple form endpoint.
func TestFormRegistration(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)

	reg, err := client.RegisterClientForm(ctx, "form client", "https://form.example.com/callback", "")
	require.NoError(t, err)
	require.NotEmpty(t, reg.ClientID)
	require.NotEmpty(t, reg.ClientSecret)
	require.Equal(t, "form client", reg.ClientName)
	require.Equal(t, []string{"https://form.example.com/callback"}, reg.RedirectURIs)

	// The registered client can immediately run the code flow
	tokens := authorizeAndExchange(t, client,
		reg.ClientID, reg.ClientSecret, reg.RedirectURIs[0], "openid")
	assertTokenResponse(t, tokens)
}
