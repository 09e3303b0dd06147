// Package memory provides the default in-memory store driver: mutex-guarded
// maps, suitable for development and single-instance deployments. Everything
// lives until overwritten, swept by housekeeping, or process restart.
package memory

import (
	"context"
	"sync"

	"github.com/strandhq/latchkey/internal/idp/domain"
	"github.com/strandhq/latchkey/internal/idp/store"
)

// Store is the in-memory implementation of store.Store. A single RWMutex
// guards all collections; no operation blocks on I/O, so coarse locking is
// cheap and makes read-then-write sequences trivially atomic.
type Store struct {
	mu sync.RWMutex

	usersByID   map[int64]domain.User
	usersByName map[string]int64
	nextUserID  int64

	clients map[string]domain.Client

	// Authorization codes keyed by code fingerprint.
	codes map[string]domain.AuthorizationCode

	// Tokens keyed by record id, with fingerprint indexes for both halves.
	tokens       map[string]domain.Token
	accessIndex  map[string]string
	refreshIndex map[string]string
}

// Compile-time interface checks.
var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*txView)(nil)
)

func NewStore() *Store {
	return &Store{
		usersByID:    make(map[int64]domain.User),
		usersByName:  make(map[string]int64),
		nextUserID:   1,
		clients:      make(map[string]domain.Client),
		codes:        make(map[string]domain.AuthorizationCode),
		tokens:       make(map[string]domain.Token),
		accessIndex:  make(map[string]string),
		refreshIndex: make(map[string]string),
	}
}

func (s *Store) Users() store.Users                           { return &usersRepo{s: s} }
func (s *Store) Clients() store.Clients                       { return &clientsRepo{s: s} }
func (s *Store) AuthorizationCodes() store.AuthorizationCodes { return &codesRepo{s: s} }
func (s *Store) Tokens() store.Tokens                         { return &tokensRepo{s: s} }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

// WithTx runs fn while holding the store's write lock, so the whole function
// body is one critical section. There is no rollback for an in-memory map;
// callers order their validation before their writes, which every grant path
// in this service does.
func (s *Store) WithTx(_ context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&txView{s: s})
}

// txView exposes the repositories with locking suppressed: the caller
// (WithTx) already holds the write lock.
type txView struct {
	s *Store
}

func (t *txView) Users() store.Users                           { return &usersRepo{s: t.s, inTx: true} }
func (t *txView) Clients() store.Clients                       { return &clientsRepo{s: t.s, inTx: true} }
func (t *txView) AuthorizationCodes() store.AuthorizationCodes { return &codesRepo{s: t.s, inTx: true} }
func (t *txView) Tokens() store.Tokens                         { return &tokensRepo{s: t.s, inTx: true} }
