package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type usersRepo struct {
	db dbtx
}

const createUserSQL = `
INSERT INTO users (username, email, password_hash, full_name, active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.db.ExecContext(ctx, createUserSQL,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Active, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, store.ErrConflict
		}
		return domain.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

const getUserByIDSQL = `
SELECT id, username, email, password_hash, full_name, active, created_at
FROM users WHERE id = ?
`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

const getUserByUsernameSQL = `
SELECT id, username, email, password_hash, full_name, active, created_at
FROM users WHERE username = ?
`

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByUsernameSQL, username))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Active, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
