package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/slogx"
)

// consentTemplate is the login-and-consent page shown to the resource owner.
// The hidden fields carry the authorization request through to the consent
// endpoint unchanged.
var consentTemplate = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in - {{.ClientName}}</title></head>
<body>
  <h1>Sign in</h1>
  <p><strong>{{.ClientName}}</strong> is requesting access to: {{.Scope}}</p>
  <form method="POST" action="/authorize/consent">
    <input type="hidden" name="response_type" value="{{.ResponseType}}">
    <input type="hidden" name="client_id" value="{{.ClientID}}">
    <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
    <input type="hidden" name="scope" value="{{.Scope}}">
    <input type="hidden" name="state" value="{{.State}}">
    <input type="hidden" name="code_challenge" value="{{.CodeChallenge}}">
    <input type="hidden" name="code_challenge_method" value="{{.CodeChallengeMethod}}">
    <label>Username <input type="text" name="username" autocomplete="username"></label>
    <label>Password <input type="password" name="password" autocomplete="current-password"></label>
    <button type="submit" name="action" value="approve">Approve</button>
    <button type="submit" name="action" value="deny">Deny</button>
  </form>
</body>
</html>
`))

type consentPage struct {
	ClientName          string
	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizeHandler serves the front-channel authorization endpoints:
// GET /authorize renders the consent form, POST /authorize/consent
// authenticates the resource owner and redirects back with a code.
type AuthorizeHandler struct {
	AuthorizeService *service.AuthorizeService
	Logger           *slog.Logger
}

// HandleGet godoc
//
//	@Summary		OAuth2 authorization endpoint
//	@Description	Validates the authorization request and renders the login/consent form.
//	@Description	Public clients MUST include code_challenge (method defaults to S256).
//	@Tags			OAuth2
//	@Produce		html
//	@Param			response_type			query		string	true	"Must be 'code'"	default(code)
//	@Param			client_id				query		string	true	"OAuth2 client identifier"
//	@Param			redirect_uri			query		string	true	"Callback URI (must match a registered redirect URI)"
//	@Param			scope					query		string	false	"Space-delimited list of scopes"
//	@Param			state					query		string	false	"Opaque value for CSRF protection (recommended)"
//	@Param			code_challenge			query		string	false	"PKCE code challenge (required for public clients)"
//	@Param			code_challenge_method	query		string	false	"PKCE method (S256 or plain)"	Enums(S256, plain)
//	@Success		200						{string}	string	"Login and consent form"
//	@Failure		302						{string}	string	"Redirect to redirect_uri with error parameters"
//	@Failure		400						{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Router			/authorize [get]
func (h *AuthorizeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	req := buildAuthorizeRequest(r.URL.Query())

	client, err := h.AuthorizeService.ValidateRequest(r.Context(), req)
	if err != nil {
		h.handleAuthorizeError(w, r, req, err)
		return
	}

	name := client.Name
	if name == "" {
		name = client.ID
	}
	scope := strings.TrimSpace(req.Scope)
	if scope == "" {
		scope = client.Scope
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := consentTemplate.Execute(w, consentPage{
		ClientName:          name,
		ResponseType:        req.ResponseType,
		ClientID:            req.ClientID,
		RedirectURI:         req.RedirectURI,
		Scope:               scope,
		State:               req.State,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
	}); err != nil {
		h.logger().Error("failed to render consent form", "err", err)
	}
}

// HandleConsent godoc
//
//	@Summary		OAuth2 consent endpoint
//	@Description	Processes the submitted consent form. On approval it authenticates the
//	@Description	resource owner and redirects to redirect_uri with a single-use authorization
//	@Description	code. On denial it redirects with error=access_denied.
//	@Tags			OAuth2
//	@Accept			x-www-form-urlencoded
//	@Param			response_type			formData	string	true	"Must be 'code'"	default(code)
//	@Param			client_id				formData	string	true	"OAuth2 client identifier"
//	@Param			redirect_uri			formData	string	true	"Callback URI (must match a registered redirect URI)"
//	@Param			scope					formData	string	false	"Space-delimited list of scopes"
//	@Param			state					formData	string	false	"Opaque value for CSRF protection"
//	@Param			code_challenge			formData	string	false	"PKCE code challenge"
//	@Param			code_challenge_method	formData	string	false	"PKCE method (S256 or plain)"	Enums(S256, plain)
//	@Param			username				formData	string	true	"Resource owner username"
//	@Param			password				formData	string	true	"Resource owner password"
//	@Param			action					formData	string	true	"approve or deny"	Enums(approve, deny)
//	@Success		302						{string}	string	"Redirect to redirect_uri with code and state"
//	@Failure		400						{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Failure		401						{object}	idpsdk.ErrorResponse	"error, error_description"
//	@Router			/authorize/consent [post]
func (h *AuthorizeHandler) HandleConsent(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		idpsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		idpsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	req := buildAuthorizeRequest(r.Form)
	req.Username = strings.TrimSpace(r.Form.Get("username"))
	req.Password = r.Form.Get("password")

	// A denial still goes through request validation so an unregistered
	// redirect_uri never receives the error redirect.
	if r.Form.Get("action") != "approve" {
		if _, err := h.AuthorizeService.ValidateRequest(r.Context(), req); err != nil {
			h.handleAuthorizeError(w, r, req, err)
			return
		}
		h.handleAuthorizeError(w, r, req, service.ErrAccessDenied)
		return
	}

	resp, err := h.AuthorizeService.IssueAuthorizationCode(r.Context(), req)
	if err != nil {
		h.handleAuthorizeError(w, r, req, err)
		return
	}

	redirectURL, err := buildAuthorizeRedirect(resp.RedirectURI, resp.Code, resp.State)
	if err != nil {
		h.logger().Error("failed to build redirect URL", "err", err)
		idpsdk.ErrServerError.WriteError(w)
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func buildAuthorizeRequest(values url.Values) service.AuthorizeRequest {
	return service.AuthorizeRequest{
		ResponseType:        strings.TrimSpace(values.Get("response_type")),
		ClientID:            strings.TrimSpace(values.Get("client_id")),
		RedirectURI:         strings.TrimSpace(values.Get("redirect_uri")),
		Scope:               strings.TrimSpace(values.Get("scope")),
		State:               strings.TrimSpace(values.Get("state")),
		CodeChallenge:       strings.TrimSpace(values.Get("code_challenge")),
		CodeChallengeMethod: strings.TrimSpace(values.Get("code_challenge_method")),
	}
}

func (h *AuthorizeHandler) handleAuthorizeError(w http.ResponseWriter, r *http.Request, req service.AuthorizeRequest, err error) {
	log := slogx.FromContext(r.Context())

	// As per RFC 6749 Section 3.1.2.3, when the client or redirect_uri fails
	// validation the user-agent MUST NOT be redirected to the redirection URI.
	switch {
	case errors.Is(err, service.ErrInvalidRedirectURI):
		idpsdk.NewOAuth2Error(
			http.StatusBadRequest,
			idpsdk.ErrorCodeInvalidRequest,
			"The 'redirect_uri' parameter is invalid or does not match a registered URI for the client.",
		).WriteError(w)
		log.Debug("authorize request failed due to redirect_uri mismatch",
			slog.String("client_id", req.ClientID), slog.String("redirect_uri", req.RedirectURI))
		return
	case errors.Is(err, service.ErrInvalidClient):
		idpsdk.ErrInvalidClient.WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		// Login failures stay on the authorization server; they are not an
		// OAuth2 error the client should receive.
		idpsdk.NewOAuth2Error(
			http.StatusUnauthorized,
			idpsdk.ErrorCodeInvalidGrant,
			"Invalid username or password.",
		).WriteError(w)
		return
	}

	// The redirect_uri was either validated above or never reached validation
	// because an earlier parameter was missing.
	var oauthError *idpsdk.OAuth2Error
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		oauthError = idpsdk.ErrAccessDenied
	case errors.Is(err, service.ErrUnsupportedResponseType):
		oauthError = idpsdk.ErrUnsupportedResponseType
	case errors.Is(err, service.ErrInvalidScope):
		oauthError = idpsdk.ErrInvalidScope
	case errors.Is(err, service.ErrInvalidRequest):
		oauthError = idpsdk.ErrInvalidRequest
	default:
		log.Error("authorize request failed", "err", err)
		idpsdk.ErrServerError.WriteError(w)
		return
	}

	// Redirect the error back to the client when the redirect_uri survived
	// validation (missing parameters mean it never did).
	if req.ClientID != "" && req.RedirectURI != "" && !errors.Is(err, service.ErrInvalidRequest) {
		if redirectURL := buildErrorRedirect(req.RedirectURI, req.State, oauthError); redirectURL != "" {
			http.Redirect(w, r, redirectURL, http.StatusFound)
			return
		}
	}

	oauthError.WriteError(w)
	log.Debug("authorize request returned error response", "error_code", oauthError.Code)
}

// buildAuthorizeRedirect constructs a redirect URL for a successful authorization.
func buildAuthorizeRedirect(baseURI, code, state string) (string, error) {
	u, err := url.Parse(baseURI)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("code", code)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// buildErrorRedirect constructs a redirect URL for an OAuth2 error.
// It returns an empty string if the baseURI is invalid.
func buildErrorRedirect(baseURI, state string, oauthError *idpsdk.OAuth2Error) string {
	u, err := url.Parse(baseURI)
	if err != nil {
		return ""
	}

	q := u.Query()
	q.Set("error", oauthError.Code)
	if oauthError.Description != "" {
		q.Set("error_description", oauthError.Description)
	}
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func (h *AuthorizeHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
