package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/strandhq/latchkey/internal/idp/service"
	"github.com/strandhq/latchkey/internal/idp/store/drivers/memory"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newSeedApp(t *testing.T) *Application {
	t.Helper()

	db := memory.NewStore()
	return &Application{
		cfg: Config{
			SeedUsername:           "admin",
			SeedPassword:           "admin123",
			SeedEmail:              "admin@example.com",
			SeedFullName:           "Administrator",
			SeedClientID:           "test_client",
			SeedClientSecret:       "test-secret",
			SeedClientName:         "Test Client",
			SeedClientRedirectURIs: []string{"http://localhost:3000/callback"},
		},
		logger:           slog.Default(),
		db:               db,
		registrarService: &service.RegistrarService{Store: db},
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin user and demo client", func(t *testing.T) {
		app := newSeedApp(t)
		require.NoError(t, app.seed(ctx))

		user, err := app.db.Users().GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, "admin@example.com", user.Email)
		require.True(t, user.Active)
		require.False(t, user.CreatedAt.IsZero(), "Seeded user carries a creation time")
		require.NoError(t, cryptox.VerifyPassword("admin123", user.PasswordHash))

		client, err := app.db.Clients().GetClientByID(ctx, "test_client")
		require.NoError(t, err)
		require.Equal(t, "Test Client", client.Name)
		require.Equal(t, []string{"http://localhost:3000/callback"}, client.RedirectURIs)
	})

	t.Run("is idempotent across restarts", func(t *testing.T) {
		app := newSeedApp(t)
		require.NoError(t, app.seed(ctx))
		require.NoError(t, app.seed(ctx))

		user, err := app.db.Users().GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("admin123", user.PasswordHash))
	})
}
