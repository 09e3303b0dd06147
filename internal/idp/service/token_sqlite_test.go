package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store/drivers/sqlite"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/strandhq/latchkey/pkg/idx"
	"github.com/strandhq/latchkey/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// newSqliteHarness mirrors newHarness on the durable driver. The sqlite store
// runs the exchange inside a real transaction, so these tests pin behavior
// that the memory driver cannot: a denial after redemption must not roll the
// consumed code back.
func newSqliteHarness(t *testing.T) (*TokenService, *sqlite.Store, domain.User, domain.Client) {
	t.Helper()
	ctx := context.Background()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "idp_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	user, err := s.Users().CreateUser(ctx, domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		FullName:     "Alice Example",
		Active:       true,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	client := domain.Client{
		ID:           "c1",
		Secret:       "s1",
		Name:         "Test Client",
		RedirectURIs: []string{"https://client.example.com/cb"},
		Scope:        "openid profile email",
		GrantTypes:   []string{"authorization_code", "refresh_token"},
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.Clients().UpsertClient(ctx, client))

	tokens := &TokenService{
		Store:      s,
		Minter:     &jwtx.Minter{Secret: []byte("test-signing-secret"), Issuer: "https://idp.test"},
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
	return tokens, s, user, client
}

func seedSqliteCode(t *testing.T, s *sqlite.Store, user domain.User, client domain.Client, challenge, method string) string {
	t.Helper()

	code := cryptox.MustGenerateToken(cryptox.TokenSize128)
	err := s.AuthorizationCodes().CreateAuthorizationCode(context.Background(), domain.AuthorizationCode{
		ID:                  idx.New().String(),
		CodeHash:            cryptox.FingerprintToken(code),
		ClientID:            client.ID,
		UserID:              user.ID,
		RedirectURI:         client.RedirectURIs[0],
		Scope:               "openid",
		CodeChallenge:       challenge,
		CodeChallengeMethod: method,
		ExpiresAt:           time.Now().Add(10 * time.Minute),
		CreatedAt:           time.Now(),
	})
	require.NoError(t, err)
	return code
}

func TestExchangeAuthorizationCodeSqlite(t *testing.T) {
	ctx := context.Background()

	t.Run("full exchange succeeds", func(t *testing.T) {
		tokens, s, user, client := newSqliteHarness(t)
		verifier := "example-code-verifier"
		code := seedSqliteCode(t, s, user, client, s256Challenge(verifier), "S256")

		pair, err := tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], verifier)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.IDToken)
	})

	t.Run("failed PKCE burns the code", func(t *testing.T) {
		tokens, s, user, client := newSqliteHarness(t)
		verifier := "correct-verifier"
		code := seedSqliteCode(t, s, user, client, s256Challenge(verifier), "S256")

		_, err := tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], "wrong-verifier")
		require.ErrorIs(t, err, ErrInvalidGrant)

		// The denial must commit the redemption: retrying with the right
		// verifier may not revive the code.
		_, err = tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], verifier)
		require.ErrorIs(t, err, ErrInvalidGrant)
	})

	t.Run("redirect_uri mismatch burns the code", func(t *testing.T) {
		tokens, s, user, client := newSqliteHarness(t)
		code := seedSqliteCode(t, s, user, client, "", "")

		_, err := tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, "https://evil.example.com/cb", "")
		require.ErrorIs(t, err, ErrInvalidGrant)

		_, err = tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], "")
		require.ErrorIs(t, err, ErrInvalidGrant)
	})

	t.Run("missing verifier burns the code", func(t *testing.T) {
		tokens, s, user, client := newSqliteHarness(t)
		verifier := "correct-verifier"
		code := seedSqliteCode(t, s, user, client, s256Challenge(verifier), "S256")

		_, err := tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], "")
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = tokens.ExchangeAuthorizationCode(ctx, "c1", "s1", code, client.RedirectURIs[0], verifier)
		require.ErrorIs(t, err, ErrInvalidGrant)
	})
}
