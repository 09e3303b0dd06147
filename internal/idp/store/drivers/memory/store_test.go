package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
	"github.com/strandhq/latchkey/pkg/cryptox"
	"github.com/strandhq/latchkey/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	alice, err := s.Users().CreateUser(ctx, domain.User{Username: "alice", Active: true})
	require.NoError(t, err)
	require.Equal(t, int64(1), alice.ID)

	bob, err := s.Users().CreateUser(ctx, domain.User{Username: "bob", Active: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), bob.ID)

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice, got)
}

func TestCreateUserConflictsOnUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	_, err := s.Users().CreateUser(ctx, domain.User{Username: "alice"})
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, domain.User{Username: "alice"})
	require.ErrorIs(t, err, store.ErrConflict)

	// Usernames are case-sensitive; "Alice" is a different user.
	_, err = s.Users().CreateUser(ctx, domain.User{Username: "Alice"})
	require.NoError(t, err)
}

func TestUpsertClientOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Clients().UpsertClient(ctx, domain.Client{ID: "c1", Name: "first"}))
	require.NoError(t, s.Clients().UpsertClient(ctx, domain.Client{ID: "c1", Name: "second"}))

	c, err := s.Clients().GetClientByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "second", c.Name)

	_, err = s.Clients().GetClientByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeemAuthorizationCodeIsSingleUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	hash := cryptox.FingerprintToken("the-code")
	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:        idx.New().String(),
		CodeHash:  hash,
		ClientID:  "c1",
		UserID:    1,
		ExpiresAt: time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now(),
	}))

	code, err := s.AuthorizationCodes().RedeemAuthorizationCode(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, code.UsedAt)

	_, err = s.AuthorizationCodes().RedeemAuthorizationCode(ctx, hash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeemAuthorizationCodeRejectsExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	hash := cryptox.FingerprintToken("stale")
	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:        idx.New().String(),
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := s.AuthorizationCodes().RedeemAuthorizationCode(ctx, hash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeemAuthorizationCodeConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	hash := cryptox.FingerprintToken("contested")
	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:        idx.New().String(),
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	const attempts = 100
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AuthorizationCodes().RedeemAuthorizationCode(ctx, hash)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, store.ErrNotFound)
			failures++
		}
	}

	require.Equal(t, 1, successes, "exactly one redemption may succeed")
	require.Equal(t, attempts-1, failures)
}

func TestTokenLookupAndRevocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	tok := domain.Token{
		ID:               idx.New().String(),
		AccessHash:       cryptox.FingerprintToken("access"),
		RefreshHash:      cryptox.FingerprintToken("refresh"),
		ClientID:         "c1",
		UserID:           1,
		TokenType:        "Bearer",
		IssuedAt:         time.Now(),
		AccessExpiresAt:  time.Now().Add(time.Hour),
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, s.Tokens().CreateToken(ctx, tok))

	got, err := s.Tokens().GetTokenByAccessHash(ctx, tok.AccessHash)
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)

	got, err = s.Tokens().GetTokenByRefreshHash(ctx, tok.RefreshHash)
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)

	// Revocation invalidates both halves at once.
	require.NoError(t, s.Tokens().RevokeToken(ctx, tok.ID))

	_, err = s.Tokens().GetTokenByAccessHash(ctx, tok.AccessHash)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Tokens().GetTokenByRefreshHash(ctx, tok.RefreshHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The any-state lookup still sees the revoked record.
	got, err = s.Tokens().GetTokenByRefreshHashAny(ctx, tok.RefreshHash)
	require.NoError(t, err)
	require.True(t, got.Revoked)
}

func TestTokenExpiryEnforcedAtRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	tok := domain.Token{
		ID:               idx.New().String(),
		AccessHash:       cryptox.FingerprintToken("expired-access"),
		RefreshHash:      cryptox.FingerprintToken("live-refresh"),
		AccessExpiresAt:  time.Now().Add(-time.Minute),
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Tokens().CreateToken(ctx, tok))

	_, err := s.Tokens().GetTokenByAccessHash(ctx, tok.AccessHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Refresh half outlives the access half.
	_, err = s.Tokens().GetTokenByRefreshHash(ctx, tok.RefreshHash)
	require.NoError(t, err)
}

func TestDeleteExpiredHousekeeping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:        "dead",
		CodeHash:  "dead-hash",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, s.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:        "live",
		CodeHash:  "live-hash",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	require.NoError(t, s.AuthorizationCodes().DeleteExpiredAuthorizationCodes(ctx))

	s.mu.RLock()
	_, deadOK := s.codes["dead-hash"]
	_, liveOK := s.codes["live-hash"]
	s.mu.RUnlock()
	require.False(t, deadOK)
	require.True(t, liveOK)

	require.NoError(t, s.Tokens().CreateToken(ctx, domain.Token{
		ID:              "gone",
		AccessHash:      "gone-access",
		AccessExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, s.Tokens().DeleteExpiredTokens(ctx))

	s.mu.RLock()
	_, tokOK := s.tokens["gone"]
	s.mu.RUnlock()
	require.False(t, tokOK)
}

func TestWithTxIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore()

	old := domain.Token{
		ID:               "old",
		AccessHash:       "old-access",
		RefreshHash:      "old-refresh",
		AccessExpiresAt:  time.Now().Add(time.Hour),
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Tokens().CreateToken(ctx, old))

	// Rotation: revoke-then-create in one critical section.
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tokens().RevokeToken(ctx, "old"); err != nil {
			return err
		}
		return tx.Tokens().CreateToken(ctx, domain.Token{
			ID:               "new",
			AccessHash:       "new-access",
			RefreshHash:      "new-refresh",
			AccessExpiresAt:  time.Now().Add(time.Hour),
			RefreshExpiresAt: time.Now().Add(time.Hour),
		})
	})
	require.NoError(t, err)

	_, err = s.Tokens().GetTokenByRefreshHash(ctx, "old-refresh")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Tokens().GetTokenByRefreshHash(ctx, "new-refresh")
	require.NoError(t, err)
}
