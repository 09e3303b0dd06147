package memory

import (
	"context"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type clientsRepo struct {
	s    *Store
	inTx bool
}

func (r *clientsRepo) UpsertClient(_ context.Context, c domain.Client) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	r.s.clients[c.ID] = c
	return nil
}

func (r *clientsRepo) GetClientByID(_ context.Context, id string) (domain.Client, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	c, ok := r.s.clients[id]
	if !ok {
		return domain.Client{}, store.ErrNotFound
	}
	return c, nil
}
