package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/slogx"
)

// RegisterHandler serves client registration: the RFC 7591 JSON endpoint and
// the simpler HTML-form variant.
type RegisterHandler struct {
	RegistrarService *service.RegistrarService
}

// HandleJSON godoc
//
//	@Summary		Dynamic Client Registration Endpoint
//	@Description	Registers a new OAuth2 client (RFC 7591). The client_secret in the response
//	@Description	is shown exactly once and never retrievable afterwards. Clients registering
//	@Description	with token_endpoint_auth_method "none" are public and receive no secret.
//	@Tags			OAuth2
//	@Accept			json
//	@Produce		json
//	@Param			request	body		idpsdk.ClientRegistrationRequest	true	"Client metadata"
//	@Success		201		{object}	idpsdk.ClientRegistrationResponse	"Registered client with credentials"
//	@Failure		400		{object}	idpsdk.ErrorResponse				"error, error_description"
//	@Router			/register [post].
func (h *RegisterHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		idpsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	var req idpsdk.ClientRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		idpsdk.ErrInvalidClientMetadata.WriteError(w)
		return
	}

	client, err := h.RegistrarService.Register(ctx, service.ClientMetadata{
		RedirectURIs:            req.RedirectURIs,
		ClientName:              req.ClientName,
		Scope:                   req.Scope,
		GrantTypes:              req.GrantTypes,
		ResponseTypes:           req.ResponseTypes,
		TokenEndpointAuthMethod: req.TokenEndpointAuthMethod,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidClientMetadata) {
			idpsdk.ErrInvalidClientMetadata.WriteError(w)
			return
		}
		log.Error("client registration failed", "err", err)
		idpsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, registrationResponse(client))
}

// HandleForm godoc
//
//	@Summary		Form Client Registration Endpoint
//	@Description	Registers a new OAuth2 client from a simple form with a single redirect URI.
//	@Description	Defaults apply for everything the form does not carry.
//	@Tags			OAuth2
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			client_name		formData	string	false	"Human-readable client name"
//	@Param			redirect_uri	formData	string	true	"Callback URI"
//	@Param			scope			formData	string	false	"Space-delimited list of scopes"
//	@Success		201				{object}	idpsdk.ClientRegistrationResponse	"Registered client with credentials"
//	@Failure		400				{object}	idpsdk.ErrorResponse				"error, error_description"
//	@Router			/register-client [post].
func (h *RegisterHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		idpsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		idpsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	redirectURI := strings.TrimSpace(r.Form.Get("redirect_uri"))
	if redirectURI == "" {
		idpsdk.ErrInvalidRedirectURIMetadata.WriteError(w)
		return
	}

	client, err := h.RegistrarService.Register(ctx, service.ClientMetadata{
		RedirectURIs: []string{redirectURI},
		ClientName:   strings.TrimSpace(r.Form.Get("client_name")),
		Scope:        strings.TrimSpace(r.Form.Get("scope")),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidClientMetadata) {
			idpsdk.ErrInvalidRedirectURIMetadata.WriteError(w)
			return
		}
		log.Error("client registration failed", "err", err)
		idpsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, registrationResponse(client))
}

func registrationResponse(client domain.Client) idpsdk.ClientRegistrationResponse {
	return idpsdk.ClientRegistrationResponse{
		ClientID:                client.ID,
		ClientSecret:            client.Secret,
		ClientIDIssuedAt:        client.CreatedAt.Unix(),
		ClientSecretExpiresAt:   0, // secrets do not expire
		RedirectURIs:            client.RedirectURIs,
		ClientName:              client.Name,
		Scope:                   client.Scope,
		GrantTypes:              client.GrantTypes,
		ResponseTypes:           client.ResponseTypes,
		TokenEndpointAuthMethod: client.TokenEndpointAuthMethod,
	}
}
