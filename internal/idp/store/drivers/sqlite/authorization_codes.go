package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type codesRepo struct {
	db dbtx
}

const createAuthorizationCodeSQL = `
INSERT INTO authorization_codes (id, code_hash, client_id, user_id, redirect_uri, scope, code_challenge, code_challenge_method, expires_at, used_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)
`

func (r *codesRepo) CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	_, err := r.db.ExecContext(ctx, createAuthorizationCodeSQL,
		code.ID, code.CodeHash, code.ClientID, code.UserID, code.RedirectURI, code.Scope,
		code.CodeChallenge, code.CodeChallengeMethod, code.ExpiresAt, code.CreatedAt)
	return err
}

const redeemAuthorizationCodeSQL = `
UPDATE authorization_codes
SET used_at = ?
WHERE code_hash = ? AND used_at IS NULL AND expires_at > ?
`

const getAuthorizationCodeSQL = `
SELECT id, code_hash, client_id, user_id, redirect_uri, scope, code_challenge, code_challenge_method, expires_at, used_at, created_at
FROM authorization_codes WHERE code_hash = ?
`

// RedeemAuthorizationCode marks the code used and returns it. The guarded
// UPDATE is the test-and-set: SQLite serializes writers, so at most one of
// any concurrent redemptions flips used_at.
func (r *codesRepo) RedeemAuthorizationCode(ctx context.Context, codeHash string) (domain.AuthorizationCode, error) {
	now := time.Now()

	res, err := r.db.ExecContext(ctx, redeemAuthorizationCodeSQL, now, codeHash, now)
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	if affected == 0 {
		return domain.AuthorizationCode{}, store.ErrNotFound
	}

	return scanAuthorizationCode(r.db.QueryRowContext(ctx, getAuthorizationCodeSQL, codeHash))
}

const deleteExpiredAuthorizationCodesSQL = `
DELETE FROM authorization_codes WHERE expires_at <= ?
`

func (r *codesRepo) DeleteExpiredAuthorizationCodes(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, deleteExpiredAuthorizationCodesSQL, time.Now())
	return err
}

func scanAuthorizationCode(row *sql.Row) (domain.AuthorizationCode, error) {
	var (
		code   domain.AuthorizationCode
		usedAt sql.NullTime
	)
	err := row.Scan(&code.ID, &code.CodeHash, &code.ClientID, &code.UserID, &code.RedirectURI,
		&code.Scope, &code.CodeChallenge, &code.CodeChallengeMethod, &code.ExpiresAt, &usedAt, &code.CreatedAt)
	if err != nil {
		return domain.AuthorizationCode{}, mapNotFound(err)
	}
	code.UsedAt = mapNullTimePtr(usedAt)
	return code, nil
}
