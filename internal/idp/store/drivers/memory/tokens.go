package memory

import (
	"context"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type tokensRepo struct {
	s    *Store
	inTx bool
}

func (r *tokensRepo) CreateToken(_ context.Context, t domain.Token) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	r.s.tokens[t.ID] = t
	r.s.accessIndex[t.AccessHash] = t.ID
	if t.RefreshHash != "" {
		r.s.refreshIndex[t.RefreshHash] = t.ID
	}
	return nil
}

func (r *tokensRepo) GetTokenByAccessHash(_ context.Context, hash string) (domain.Token, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	id, ok := r.s.accessIndex[hash]
	if !ok {
		return domain.Token{}, store.ErrNotFound
	}

	t := r.s.tokens[id]
	if t.Revoked || time.Now().After(t.AccessExpiresAt) {
		return domain.Token{}, store.ErrNotFound
	}
	return t, nil
}

func (r *tokensRepo) GetTokenByRefreshHash(_ context.Context, hash string) (domain.Token, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	t, err := r.lookupRefresh(hash)
	if err != nil {
		return domain.Token{}, err
	}
	if t.Revoked || time.Now().After(t.RefreshExpiresAt) {
		return domain.Token{}, store.ErrNotFound
	}
	return t, nil
}

func (r *tokensRepo) GetTokenByRefreshHashAny(_ context.Context, hash string) (domain.Token, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}

	return r.lookupRefresh(hash)
}

func (r *tokensRepo) lookupRefresh(hash string) (domain.Token, error) {
	id, ok := r.s.refreshIndex[hash]
	if !ok {
		return domain.Token{}, store.ErrNotFound
	}
	return r.s.tokens[id], nil
}

func (r *tokensRepo) RevokeToken(_ context.Context, id string) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	t, ok := r.s.tokens[id]
	if !ok {
		return store.ErrNotFound
	}

	t.Revoked = true
	r.s.tokens[id] = t
	return nil
}

func (r *tokensRepo) DeleteExpiredTokens(_ context.Context) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	now := time.Now()
	for id, t := range r.s.tokens {
		if !now.After(t.AccessExpiresAt) {
			continue
		}
		// Keep records whose refresh half is still live.
		if t.RefreshHash != "" && !t.Revoked && now.Before(t.RefreshExpiresAt) {
			continue
		}
		delete(r.s.tokens, id)
		delete(r.s.accessIndex, t.AccessHash)
		if t.RefreshHash != "" {
			delete(r.s.refreshIndex, t.RefreshHash)
		}
	}
	return nil
}
