package store

import (
	"context"
	"errors"

	"github.com/strandhq/latchkey/internal/idp/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and is the only component permitted to mutate entity state.
type Store interface {
	Users() Users
	Clients() Clients
	AuthorizationCodes() AuthorizationCodes
	Tokens() Tokens

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// Multi-step operations that must be atomic (refresh rotation,
	// redeem-then-issue) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is still reachable.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the store's repositories.
type Tx interface {
	Users() Users
	Clients() Clients
	AuthorizationCodes() AuthorizationCodes
	Tokens() Tokens
}

type Users interface {
	// CreateUser inserts a new user and assigns the next numeric id.
	// The username-uniqueness check and the insert are one critical
	// section; returns ErrConflict when the username is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during interactive login. Case-sensitive.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

type Clients interface {
	// UpsertClient inserts or overwrites a client by id. Re-registration
	// with the same id is last-write-wins; acceptable since registrar
	// ids are random.
	UpsertClient(ctx context.Context, c domain.Client) error

	// GetClientByID fetches a client for grant validation.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)
}

type AuthorizationCodes interface {
	// CreateAuthorizationCode stores a freshly minted authorization code.
	CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error

	// RedeemAuthorizationCode returns the code record only if it exists,
	// is unexpired, and is unused, and marks it used in the SAME atomic
	// operation. A test-and-set, not test-then-set: two concurrent
	// redemptions of one code cannot both succeed. Returns ErrNotFound
	// for anything not redeemable.
	RedeemAuthorizationCode(ctx context.Context, codeHash string) (domain.AuthorizationCode, error)

	// DeleteExpiredAuthorizationCodes removes codes past expiry (housekeeping).
	DeleteExpiredAuthorizationCodes(ctx context.Context) error
}

type Tokens interface {
	// CreateToken stores a new access/refresh token record.
	CreateToken(ctx context.Context, t domain.Token) error

	// GetTokenByAccessHash returns the token only if it is unrevoked and
	// the access half is unexpired; ErrNotFound otherwise.
	GetTokenByAccessHash(ctx context.Context, hash string) (domain.Token, error)

	// GetTokenByRefreshHash returns the token only if it is unrevoked and
	// the refresh half is present and unexpired; ErrNotFound otherwise.
	GetTokenByRefreshHash(ctx context.Context, hash string) (domain.Token, error)

	// GetTokenByRefreshHashAny returns the token by refresh fingerprint
	// regardless of expiry or revocation. Used by RFC 7009 revocation,
	// which treats unknown tokens as a quiet no-op.
	GetTokenByRefreshHashAny(ctx context.Context, hash string) (domain.Token, error)

	// RevokeToken flips revoked on the record, invalidating both halves.
	RevokeToken(ctx context.Context, id string) error

	// DeleteExpiredTokens removes records where both halves have expired.
	DeleteExpiredTokens(ctx context.Context) error
}
