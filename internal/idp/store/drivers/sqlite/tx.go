package sqlite

import (
	"database/sql"

	"github.com/strandhq/latchkey/internal/idp/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users                           { return &usersRepo{db: t.tx} }
func (t *txStore) Clients() store.Clients                       { return &clientsRepo{db: t.tx} }
func (t *txStore) AuthorizationCodes() store.AuthorizationCodes { return &codesRepo{db: t.tx} }
func (t *txStore) Tokens() store.Tokens                         { return &tokensRepo{db: t.tx} }
