package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/jwtx"
	"github.com/strandhq/latchkey/pkg/slogx"

	_ "github.com/strandhq/latchkey/api/idp" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	minter       *jwtx.Minter
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	TokenService     *service.TokenService
	AuthorizeService *service.AuthorizeService
	RegistrarService *service.RegistrarService
	UserService      *service.UserService
}

func NewRouter(
	minter *jwtx.Minter,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		minter:       minter,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerRegistration()
	r.registerUserInfo()
	r.registerDiscovery()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Latchkey Identity Provider API
//	@version		0.1.0
//	@description	OAuth2 authorization server with OpenID Connect ID tokens. Implements the
//	@description	authorization code flow with PKCE, refresh token rotation, RFC 7009 token
//	@description	revocation, and RFC 7591 dynamic client registration.
//	@description
//	@description	Access and refresh tokens are opaque; ID tokens are HS256-signed JWTs.
//
//	@contact.name				StrandHQ Team
//	@contact.url				https://github.com/strandhq/latchkey
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	authorizeHandler := &AuthorizeHandler{
		AuthorizeService: r.AuthorizeService,
		Logger:           r.logger,
	}

	// GET /authorize - lenient rate limit (just renders the consent form)
	r.Mux.Handle("GET /authorize",
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /authorize/consent - strict rate limit (authentication attempts)
	// Note: Rate limited by IP + username form field to prevent brute force
	r.Mux.Handle("POST /authorize/consent",
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandleConsent),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /token - strict rate limit by IP (covers both grant types)
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /revoke - moderate rate limit
	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRegistration() {
	h := &RegisterHandler{RegistrarService: r.RegistrarService}

	// POST /register - RFC 7591 dynamic registration, moderate rate limit
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(h.HandleJSON),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /register-client - simple form registration, moderate rate limit
	r.Mux.Handle("POST /register-client",
		httpx.Chain(http.HandlerFunc(h.HandleForm),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUserInfo() {
	h := &UserInfoHandler{UserService: r.UserService}

	// The handler resolves the bearer token itself; tokens are opaque so
	// there is no JWT middleware in front of it.
	r.Mux.Handle("GET /userinfo",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDiscovery() {
	metadataHandler := MetadataHandler(r.issuer)

	// Both well-known paths serve the same document
	r.Mux.Handle("GET /.well-known/oauth-authorization-server",
		httpx.Chain(metadataHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/openid-configuration",
		httpx.Chain(metadataHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// The JWKS document is served at /jwks.json with a well-known alias.
	jwksHandler := httpx.Chain(JWKSHandler(r.minter),
		httpx.RateLimitByIP(httpx.PublicLimit),
	)
	r.Mux.Handle("GET /jwks.json", jwksHandler)
	r.Mux.Handle("GET /.well-known/jwks.json", jwksHandler)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
