package idp_test

import (
	"testing"

	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/stretchr/testify/require"
)

// TestRefreshRotation verifies the refresh grant rotates the pair and kills
// the old refresh token.
func TestRefreshRotation(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)
	reg := registerTestClient(t, client)

	tokens := authorizeAndExchange(t, client,
		reg.ClientID, reg.ClientSecret, reg.RedirectURIs[0], "openid profile")

	next, err := client.RefreshGrant(ctx, tokens.RefreshToken, "")
	require.NoError(t, err)
	assertTokenResponse(t, next)

	require.NotEqual(t, tokens.AccessToken, next.AccessToken, "Access token should be rotated")
	require.NotEqual(t, tokens.RefreshToken, next.RefreshToken, "Refresh token should be rotated")
	require.Equal(t, tokens.Scope, next.Scope, "Scope carries over unchanged")

	// The old refresh token is dead after rotation
	_, err = client.RefreshGrant(ctx, tokens.RefreshToken, "")
	assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidGrant)

	// The old access token died with it
	_, err = client.UserInfo(ctx, tokens.AccessToken)
	assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidToken)

	// The new pair works
	_, err = client.UserInfo(ctx, next.AccessToken)
	require.NoError(t, err)
}

// TestRefreshScopeNarrowing verifies scope may shrink on refresh but never grow.
func TestRefreshScopeNarrowing(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := idpsdk.NewSDKClient(baseURL)
	reg := registerTestClient(t, client)

	tokens := authorizeAndExchange(t, client,
		reg.ClientID, reg.ClientSecret, reg.RedirectURIs[0], "openid profile email")

	narrowed, err := client.RefreshGrant(ctx, tokens.RefreshToken, "openid profile")
	require.NoError(t, err)
	require.Equal(t, "openid profile", narrowed.Scope, "Requested subset should be granted")

	// Widening back past the narrowed grant is rejected
	_, err = client.RefreshGrant(ctx, narrowed.RefreshToken, "openid profile email")
	assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidScope)
}

// TestRefreshUnknownToken verifies garbage refresh tokens fail cleanly.
func TestRefreshUnknownToken(t *testing.T) {
	baseURL, cleanup := setupIDPContainer(t)
	defer cleanup()

	client := idpsdk.NewSDKClient(baseURL)

	_, err := client.RefreshGrant(t.Context(), "no-such-refresh-token", "")
	assertOAuth2Error(t, err, idpsdk.ErrorCodeInvalidGrant)
}
