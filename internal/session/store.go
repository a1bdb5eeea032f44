// internal/session/store.go
//
// In-memory session store keyed by client identity and (dayKey, mode).
// Concurrency-safe via RWMutex. Day rollover needs no special handling:
// a new day key is simply a new map key, and old keys are retained for
// the lifetime of the process so past days remain inspectable.

package session

import (
	"context"
	"sync"
)

// Store holds active sessions for all clients.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State // keyed by clientID|StorageKey(dayKey, mode)
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

func storeKey(clientID, dayKey, mode string) string {
	return clientID + "|" + StorageKey(dayKey, mode)
}

// Get returns the session for (clientID, dayKey, mode), or nil.
func (st *Store) Get(ctx context.Context, clientID, dayKey, mode string) *State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[storeKey(clientID, dayKey, mode)]
}

// GetOrCreate returns the existing session or installs an empty one.
func (st *Store) GetOrCreate(ctx context.Context, clientID, dayKey, mode string) *State {
	key := storeKey(clientID, dayKey, mode)
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[key]; ok {
		return s
	}
	s := NewState(dayKey, mode)
	st.sessions[key] = s
	return s
}

// Mutate runs fn on the session for (clientID, dayKey, mode) under the
// store lock, creating an empty session first if none exists. Handlers
// use this for guard-check-then-record so concurrent guesses from one
// client cannot interleave.
func (st *Store) Mutate(ctx context.Context, clientID, dayKey, mode string, fn func(*State) error) error {
	key := storeKey(clientID, dayKey, mode)
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[key]
	if !ok {
		s = NewState(dayKey, mode)
		st.sessions[key] = s
	}
	return fn(s)
}

// Put installs or replaces a session (used when restoring a client save).
func (st *Store) Put(ctx context.Context, clientID string, s *State) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[storeKey(clientID, s.DayKey, s.Mode)] = s
}
