package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
)

// seed creates the admin user and the fixed demo client when absent, so a
// fresh deployment is usable without manual setup. Both operations are
// idempotent across restarts.
func (app *Application) seed(ctx context.Context) error {
	if app.cfg.SeedUsername != "" {
		if err := app.seedUser(ctx); err != nil {
			return err
		}
	}

	if app.cfg.SeedClientID != "" {
		if err := app.seedClient(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (app *Application) seedUser(ctx context.Context) error {
	hash, err := cryptox.HashPassword(app.cfg.SeedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user, err := app.db.Users().CreateUser(ctx, domain.User{
		Username:     app.cfg.SeedUsername,
		Email:        app.cfg.SeedEmail,
		PasswordHash: hash,
		FullName:     app.cfg.SeedFullName,
		Active:       true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.logger.Info("seed user already exists", "username", app.cfg.SeedUsername)
			return nil
		}
		return fmt.Errorf("failed to create seed user: %w", err)
	}

	app.logger.Info("seed user created", "username", user.Username, "user_id", user.ID)
	return nil
}

func (app *Application) seedClient(ctx context.Context) error {
	// Re-seeding an existing id overwrites it, which keeps the demo client
	// in sync with configuration changes.
	client, err := app.registrarService.RegisterSeed(ctx, domain.Client{
		ID:           app.cfg.SeedClientID,
		Secret:       app.cfg.SeedClientSecret,
		Name:         app.cfg.SeedClientName,
		RedirectURIs: app.cfg.SeedClientRedirectURIs,
	})
	if err != nil {
		return fmt.Errorf("failed to register seed client: %w", err)
	}

	app.logger.Info("seed client registered", "client_id", client.ID, "name", client.Name)
	return nil
}
