package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/slogx"
)

// TokenHandler serves POST /token
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues access and refresh tokens using OAuth2 grant types (authorization_code, refresh_token).
//	@Description	Confidential clients authenticate with client_secret_post or client_secret_basic.
//	@Description	The authorization_code grant returns an id_token when the granted scope includes openid.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(authorization_code, refresh_token)
//	@Param			code			formData	string					false	"Authorization code (required for authorization_code grant)"
//	@Param			redirect_uri	formData	string					false	"Redirect URI (required for authorization_code grant)"
//	@Param			code_verifier	formData	string					false	"PKCE code_verifier (required when PKCE was used)"
//	@Param			refresh_token	formData	string					false	"Refresh token (required for refresh_token grant)"
//	@Param			client_id		formData	string					false	"Client identifier (required for authorization_code grant)"
//	@Param			client_secret	formData	string					false	"Client secret (required for confidential clients)"
//	@Param			scope			formData	string					false	"Space-delimited list of scopes"
//	@Success		200				{object}	idpsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, scope, id_token"
//	@Failure		400				{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		idpsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		idpsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 3. Handle the grant type
	grantType := r.Form.Get("grant_type")
	switch grantType {
	case "authorization_code":
		h.handleAuthorizationCodeGrant(w, r, r.Form)
	case "refresh_token":
		h.handleRefreshGrant(w, r, r.Form)
	default:
		idpsdk.ErrUnsupportedGrantType.WriteError(w)
	}
}

func (h *TokenHandler) handleAuthorizationCodeGrant(
	w http.ResponseWriter,
	r *http.Request,
	form url.Values,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	code := strings.TrimSpace(form.Get("code"))
	redirectURI := strings.TrimSpace(form.Get("redirect_uri"))
	codeVerifier := strings.TrimSpace(form.Get("code_verifier"))
	clientID, clientSecret := extractClientCredentials(r, form)

	if code == "" || redirectURI == "" || clientID == "" {
		idpsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.ExchangeAuthorizationCode(ctx, clientID, clientSecret, code, redirectURI, codeVerifier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			idpsdk.ErrInvalidClient.WriteError(w)
		case errors.Is(err, service.ErrInvalidGrant):
			idpsdk.ErrInvalidGrant.WriteError(w)
		case errors.Is(err, service.ErrInvalidScope):
			idpsdk.ErrInvalidScope.WriteError(w)
		case errors.Is(err, service.ErrInvalidRequest):
			idpsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("authorization_code grant failed", "err", err)
			idpsdk.ErrServerError.WriteError(w)
		}
		return
	}

	response := idpsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		Scope:        strings.TrimSpace(pair.Scope),
		IDToken:      pair.IDToken,
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}

func (h *TokenHandler) handleRefreshGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	refresh := form.Get("refresh_token")
	requestedScope := strings.TrimSpace(form.Get("scope"))

	if refresh == "" {
		idpsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.ExchangeRefreshToken(ctx, refresh, requestedScope)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGrant):
			idpsdk.ErrInvalidGrant.WriteError(w)
		case errors.Is(err, service.ErrInvalidScope):
			idpsdk.ErrInvalidScope.WriteError(w)
		case errors.Is(err, service.ErrInvalidRequest):
			idpsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("refresh grant failed", "err", err)
			idpsdk.ErrServerError.WriteError(w)
		}
		return
	}

	response := idpsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		Scope:        strings.TrimSpace(pair.Scope),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}

// extractClientCredentials reads client credentials from HTTP Basic auth
// (client_secret_basic) with the form body (client_secret_post) as fallback.
// Basic auth values are form-urlencoded per RFC 6749 Section 2.3.1.
func extractClientCredentials(r *http.Request, form url.Values) (string, string) {
	if id, secret, ok := r.BasicAuth(); ok {
		if decoded, err := url.QueryUnescape(id); err == nil {
			id = decoded
		}
		if decoded, err := url.QueryUnescape(secret); err == nil {
			secret = decoded
		}
		return id, secret
	}
	return strings.TrimSpace(form.Get("client_id")), form.Get("client_secret")
}
