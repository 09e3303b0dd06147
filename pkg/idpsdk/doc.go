// Package idpsdk is a Go client for the latchkey identity provider.
//
// It covers the full authorization code flow, including PKCE, refresh token
// rotation, revocation, dynamic client registration, and the discovery and
// userinfo endpoints.
//
// # Quick start
//
// Register a client and run the authorization code flow:
//
//	client := idpsdk.NewSDKClient("http://localhost:8080")
//
//	reg, err := client.RegisterClient(ctx, idpsdk.ClientRegistrationRequest{
//	    RedirectURIs: []string{"https://app.example.com/callback"},
//	    ClientName:   "My App",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pkce, _ := idpsdk.GeneratePKCEChallenge()
//	result, err := client.Authorize(ctx, idpsdk.AuthorizeParams{
//	    ClientID:    reg.ClientID,
//	    RedirectURI: reg.RedirectURIs[0],
//	    Scope:       "openid profile",
//	    PKCE:        pkce,
//	    Username:    "alice",
//	    Password:    "password123",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens, err := client.AuthorizationCodeGrant(ctx,
//	    reg.ClientID, reg.ClientSecret, result.Code, reg.RedirectURIs[0], pkce.Verifier)
//
// Refresh tokens rotate on every use:
//
//	next, err := client.RefreshGrant(ctx, tokens.RefreshToken, "")
//	// tokens.RefreshToken is now dead; keep next.RefreshToken
//
// # Errors
//
// Failed requests return *OAuth2Error carrying the RFC 6749 error code and
// the HTTP status, so callers can match on the code:
//
//	var oauthErr *idpsdk.OAuth2Error
//	if errors.As(err, &oauthErr) && oauthErr.Code == idpsdk.ErrorCodeInvalidGrant {
//	    // re-authenticate
//	}
package idpsdk
