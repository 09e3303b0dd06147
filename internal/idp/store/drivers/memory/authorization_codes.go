package memory

import (
	"context"
	"time"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

type codesRepo struct {
	s    *Store
	inTx bool
}

func (r *codesRepo) CreateAuthorizationCode(_ context.Context, code domain.AuthorizationCode) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	r.s.codes[code.CodeHash] = code
	return nil
}

// RedeemAuthorizationCode is the single-use test-and-set: the validity check
// and the used-marking happen under one lock, so concurrent redemptions of
// the same code yield exactly one success.
func (r *codesRepo) RedeemAuthorizationCode(_ context.Context, codeHash string) (domain.AuthorizationCode, error) {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	code, ok := r.s.codes[codeHash]
	if !ok {
		return domain.AuthorizationCode{}, store.ErrNotFound
	}

	now := time.Now()
	if code.UsedAt != nil || now.After(code.ExpiresAt) {
		return domain.AuthorizationCode{}, store.ErrNotFound
	}

	code.UsedAt = &now
	r.s.codes[codeHash] = code
	return code, nil
}

func (r *codesRepo) DeleteExpiredAuthorizationCodes(_ context.Context) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}

	now := time.Now()
	for hash, code := range r.s.codes {
		if now.After(code.ExpiresAt) {
			delete(r.s.codes, hash)
		}
	}
	return nil
}
