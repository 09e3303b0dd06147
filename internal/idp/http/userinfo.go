package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles the OIDC UserInfo endpoint.
//
//	@Summary		Get user information
//	@Description	Returns claims about the user the presented access token was issued to.
//	@Tags			OAuth2
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	idpsdk.UserInfoResponse	"User information (sub, username, email, full_name)"
//	@Failure		401	{object}	idpsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	idpsdk.ErrorResponse	"Internal server error"
//	@Router			/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := extractBearerToken(r)
	if token == "" {
		w.Header().Set("WWW-Authenticate", `Bearer realm="userinfo"`)
		idpsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, _, err := h.UserService.ResolveAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			w.Header().Set("WWW-Authenticate", `Bearer realm="userinfo", error="invalid_token"`)
			idpsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Warn("failed to resolve access token", "err", err)
		idpsdk.ErrServerError.WriteError(w)
		return
	}

	response := idpsdk.UserInfoResponse{
		Sub:      strconv.FormatInt(user.ID, 10),
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
