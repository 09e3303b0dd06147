package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("fills defaults and generates credentials", func(t *testing.T) {
		s := memory.NewStore()
		svc := &RegistrarService{Store: s}

		client, err := svc.Register(ctx, ClientMetadata{
			RedirectURIs: []string{"https://app.example.com/callback"},
			ClientName:   "My App",
		})
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(client.ID, "client_"))
		require.NotEmpty(t, client.Secret)
		require.Equal(t, "openid profile email", client.Scope)
		require.Equal(t, []string{"authorization_code", "refresh_token"}, client.GrantTypes)
		require.Equal(t, []string{"code"}, client.ResponseTypes)
		require.Equal(t, "client_secret_post", client.TokenEndpointAuthMethod)

		// Persisted as registered.
		stored, err := s.Clients().GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		require.Equal(t, client.Secret, stored.Secret)
	})

	t.Run("public client gets no secret", func(t *testing.T) {
		s := memory.NewStore()
		svc := &RegistrarService{Store: s}

		client, err := svc.Register(ctx, ClientMetadata{
			RedirectURIs:            []string{"https://app.example.com/callback"},
			TokenEndpointAuthMethod: "none",
		})
		require.NoError(t, err)
		require.Empty(t, client.Secret)
	})

	t.Run("ids are unique across registrations", func(t *testing.T) {
		s := memory.NewStore()
		svc := &RegistrarService{Store: s}

		a, err := svc.Register(ctx, ClientMetadata{RedirectURIs: []string{"https://a.example.com/cb"}})
		require.NoError(t, err)
		b, err := svc.Register(ctx, ClientMetadata{RedirectURIs: []string{"https://b.example.com/cb"}})
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)
	})

	t.Run("rejects missing redirect_uris", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})

	t.Run("rejects relative redirect_uri", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{RedirectURIs: []string{"/relative/path"}})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})

	t.Run("rejects redirect_uri with fragment", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{RedirectURIs: []string{"https://a.example.com/cb#frag"}})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})

	t.Run("rejects unsupported grant type", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{
			RedirectURIs: []string{"https://a.example.com/cb"},
			GrantTypes:   []string{"client_credentials"},
		})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})

	t.Run("rejects unsupported response type", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{
			RedirectURIs:  []string{"https://a.example.com/cb"},
			ResponseTypes: []string{"token"},
		})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})

	t.Run("rejects unsupported auth method", func(t *testing.T) {
		svc := &RegistrarService{Store: memory.NewStore()}
		_, err := svc.Register(ctx, ClientMetadata{
			RedirectURIs:            []string{"https://a.example.com/cb"},
			TokenEndpointAuthMethod: "private_key_jwt",
		})
		require.ErrorIs(t, err, ErrInvalidClientMetadata)
	})
}

func TestRegisterSeed(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := &RegistrarService{Store: s}

	client, err := svc.RegisterSeed(ctx, domain.Client{
		ID:           "c1",
		Secret:       "s1",
		Name:         "Seeded",
		RedirectURIs: []string{"https://client.example.com/cb"},
	})
	require.NoError(t, err)
	require.Equal(t, "c1", client.ID)
	require.Equal(t, DefaultScope, client.Scope)
	require.False(t, client.CreatedAt.IsZero())

	// Seeding twice is an upsert, not an error.
	client.Name = "Seeded Again"
	_, err = svc.RegisterSeed(ctx, client)
	require.NoError(t, err)

	stored, err := s.Clients().GetClientByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "Seeded Again", stored.Name)

	_, err = svc.RegisterSeed(ctx, domain.Client{ID: "bad"})
	require.ErrorIs(t, err, ErrInvalidClientMetadata)

	_, err = svc.RegisterSeed(ctx, domain.Client{ID: "bad", RedirectURIs: []string{"::notauri"}})
	require.ErrorIs(t, err, ErrInvalidClientMetadata)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHousekeepingLifecycle(t *testing.T) {
	s := memory.NewStore()

	hk := NewHousekeepingService(s, testLogger(), 50*time.Millisecond)
	hk.Start()
	time.Sleep(120 * time.Millisecond)
	hk.Stop()
}
