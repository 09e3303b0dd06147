package memory

import (
	"context"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type usersRepo struct {
	s    *Store
	inTx bool
}

func (r *usersRepo) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	// Uniqueness check and counter increment share the critical section.
	if _, exists := r.s.usersByName[u.Username]; exists {
		return domain.User{}, store.ErrConflict
	}

	u.ID = r.s.nextUserID
	r.s.nextUserID++

	r.s.usersByID[u.ID] = u
	r.s.usersByName[u.Username] = u.ID
	return u, nil
}

func (r *usersRepo) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	u, ok := r.s.usersByID[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	id, ok := r.s.usersByName[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.s.usersByID[id], nil
}
