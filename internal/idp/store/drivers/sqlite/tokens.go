package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type tokensRepo struct {
	db dbtx
}

const createTokenSQL = `
INSERT INTO tokens (id, access_hash, refresh_hash, client_id, user_id, scope, token_type, issued_at, access_expires_at, refresh_expires_at, revoked)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
`

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	_, err := r.db.ExecContext(ctx, createTokenSQL,
		t.ID, t.AccessHash, mapStringNull(t.RefreshHash), t.ClientID, t.UserID, t.Scope,
		t.TokenType, t.IssuedAt, t.AccessExpiresAt, t.RefreshExpiresAt)
	return err
}

const getTokenByAccessHashSQL = `
SELECT id, access_hash, refresh_hash, client_id, user_id, scope, token_type, issued_at, access_expires_at, refresh_expires_at, revoked
FROM tokens WHERE access_hash = ? AND revoked = 0 AND access_expires_at > ?
`

func (r *tokensRepo) GetTokenByAccessHash(ctx context.Context, hash string) (domain.Token, error) {
	return scanToken(r.db.QueryRowContext(ctx, getTokenByAccessHashSQL, hash, time.Now()))
}

const getTokenByRefreshHashSQL = `
SELECT id, access_hash, refresh_hash, client_id, user_id, scope, token_type, issued_at, access_expires_at, refresh_expires_at, revoked
FROM tokens WHERE refresh_hash = ? AND revoked = 0 AND refresh_expires_at > ?
`

func (r *tokensRepo) GetTokenByRefreshHash(ctx context.Context, hash string) (domain.Token, error) {
	return scanToken(r.db.QueryRowContext(ctx, getTokenByRefreshHashSQL, hash, time.Now()))
}

const getTokenByRefreshHashAnySQL = `
SELECT id, access_hash, refresh_hash, client_id, user_id, scope, token_type, issued_at, access_expires_at, refresh_expires_at, revoked
FROM tokens WHERE refresh_hash = ?
`

func (r *tokensRepo) GetTokenByRefreshHashAny(ctx context.Context, hash string) (domain.Token, error) {
	return scanToken(r.db.QueryRowContext(ctx, getTokenByRefreshHashAnySQL, hash))
}

const revokeTokenSQL = `
UPDATE tokens SET revoked = 1 WHERE id = ?
`

func (r *tokensRepo) RevokeToken(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, revokeTokenSQL, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteExpiredTokens prunes records whose access half has expired and whose
// refresh half is gone, revoked, or also expired.
const deleteExpiredTokensSQL = `
DELETE FROM tokens
WHERE access_expires_at <= ?
  AND (refresh_hash IS NULL OR revoked = 1 OR refresh_expires_at <= ?)
`

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, deleteExpiredTokensSQL, now, now)
	return err
}

func scanToken(row *sql.Row) (domain.Token, error) {
	var (
		t           domain.Token
		refreshHash sql.NullString
	)
	err := row.Scan(&t.ID, &t.AccessHash, &refreshHash, &t.ClientID, &t.UserID, &t.Scope,
		&t.TokenType, &t.IssuedAt, &t.AccessExpiresAt, &t.RefreshExpiresAt, &t.Revoked)
	if err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	t.RefreshHash = mapNullString(refreshHash)
	return t, nil
}
