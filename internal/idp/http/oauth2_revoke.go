package http

import (
	"net/http"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/slogx"
)

// RevokeHandler serves POST /revoke following the RFC 7009 spec. Both access
// and refresh tokens are accepted; the token_type_hint is not needed because
// the service checks both fingerprints. All tokens even if invalid/unknown
// return 200 OK to prevent token scanning attacks.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Revocation Endpoint
//	@Description	Revokes a previously issued token (RFC 7009). Revoking either half of a
//	@Description	token pair kills the whole pair.
//	@Description	The endpoint is idempotent and returns 200 OK even for invalid/unknown tokens to prevent token scanning attacks.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			token			formData	string	true	"The token to revoke"
//	@Param			token_type_hint	formData	string	false	"Hint about token type"	Enums(access_token, refresh_token)
//	@Success		200				"Token revoked successfully (or was already invalid)"
//	@Failure		400				{object}	map[string]string	"error, error_description"
//	@Header			200				{string}	Cache-Control		"no-store"
//	@Header			200				{string}	Pragma				"no-cache"
//	@Router			/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

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

	token := r.Form.Get("token")
	if token == "" {
		idpsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// 3. Revoke the token. The hint is accepted but not required: the service
	// tries the refresh fingerprint first and falls back to the access one.
	if err := h.TokenService.Revoke(ctx, token); err != nil {
		// Per RFC 7009, the server responds 200 OK even if the token is invalid/unknown.
		log.Warn("revoke failed", "err", err)
	}

	// 4. Return 200 OK with empty body per spec
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}
