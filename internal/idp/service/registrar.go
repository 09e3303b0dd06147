package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/strandhq/latchkey/pkg/slogx"
)

var ErrInvalidClientMetadata = errors.New("invalid_client_metadata")

// Registration defaults applied when the metadata omits a field.
const (
	DefaultScope                   = "openid profile email"
	DefaultTokenEndpointAuthMethod = "client_secret_post"
)

var (
	defaultGrantTypes    = []string{"authorization_code", "refresh_token"}
	defaultResponseTypes = []string{"code"}

	supportedGrantTypes = map[string]bool{
		"authorization_code": true,
		"refresh_token":      true,
	}
	supportedAuthMethods = map[string]bool{
		"client_secret_post":  true,
		"client_secret_basic": true,
		"none":                true,
	}
)

// RegistrarService implements RFC 7591 dynamic client registration plus the
// simpler static registration form.
type RegistrarService struct {
	Store store.Store
}

// ClientMetadata is the subset of RFC 7591 metadata the server accepts.
type ClientMetadata struct {
	RedirectURIs            []string
	ClientName              string
	Scope                   string
	GrantTypes              []string
	ResponseTypes           []string
	TokenEndpointAuthMethod string
}

// Register validates the metadata, fills in defaults, generates credentials,
// and persists the client. The returned Client carries the plaintext secret;
// this response is the only place it is ever shown.
func (s *RegistrarService) Register(ctx context.Context, meta ClientMetadata) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	if len(meta.RedirectURIs) == 0 {
		return domain.Client{}, ErrInvalidClientMetadata
	}
	for _, raw := range meta.RedirectURIs {
		if !validRedirectURI(raw) {
			return domain.Client{}, ErrInvalidClientMetadata
		}
	}

	grantTypes := meta.GrantTypes
	if len(grantTypes) == 0 {
		grantTypes = defaultGrantTypes
	}
	for _, gt := range grantTypes {
		if !supportedGrantTypes[gt] {
			return domain.Client{}, ErrInvalidClientMetadata
		}
	}

	responseTypes := meta.ResponseTypes
	if len(responseTypes) == 0 {
		responseTypes = defaultResponseTypes
	}
	for _, rt := range responseTypes {
		if rt != "code" {
			return domain.Client{}, ErrInvalidClientMetadata
		}
	}

	authMethod := strings.TrimSpace(meta.TokenEndpointAuthMethod)
	if authMethod == "" {
		authMethod = DefaultTokenEndpointAuthMethod
	}
	if !supportedAuthMethods[authMethod] {
		return domain.Client{}, ErrInvalidClientMetadata
	}

	scope := strings.TrimSpace(meta.Scope)
	if scope == "" {
		scope = DefaultScope
	}

	clientID, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.Client{}, err
	}

	// Public clients (token_endpoint_auth_method "none") get no secret.
	var secret string
	if authMethod != "none" {
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Client{}, err
		}
	}

	client := domain.Client{
		ID:                      "client_" + clientID,
		Secret:                  secret,
		Name:                    strings.TrimSpace(meta.ClientName),
		RedirectURIs:            meta.RedirectURIs,
		Scope:                   scope,
		GrantTypes:              grantTypes,
		ResponseTypes:           responseTypes,
		TokenEndpointAuthMethod: authMethod,
		CreatedAt:               time.Now(),
	}

	if err := s.Store.Clients().UpsertClient(ctx, client); err != nil {
		return domain.Client{}, err
	}

	l.Info("client registered", "client_id", client.ID, "name", client.Name, "public", secret == "")
	return client, nil
}

// RegisterSeed persists a statically configured client (from config or the
// register-client form) with a caller-chosen id and secret.
func (s *RegistrarService) RegisterSeed(ctx context.Context, client domain.Client) (domain.Client, error) {
	if strings.TrimSpace(client.ID) == "" || len(client.RedirectURIs) == 0 {
		return domain.Client{}, ErrInvalidClientMetadata
	}
	for _, raw := range client.RedirectURIs {
		if !validRedirectURI(raw) {
			return domain.Client{}, ErrInvalidClientMetadata
		}
	}

	if client.Scope == "" {
		client.Scope = DefaultScope
	}
	if len(client.GrantTypes) == 0 {
		client.GrantTypes = defaultGrantTypes
	}
	if len(client.ResponseTypes) == 0 {
		client.ResponseTypes = defaultResponseTypes
	}
	if client.TokenEndpointAuthMethod == "" {
		client.TokenEndpointAuthMethod = DefaultTokenEndpointAuthMethod
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	if err := s.Store.Clients().UpsertClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// validRedirectURI requires an absolute URI with a scheme and host. Fragments
// are forbidden per RFC 6749 section 3.1.2.
func validRedirectURI(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && u.Fragment == ""
}
