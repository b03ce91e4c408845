// Package app composes the session store, the backend ports, and the domain
// state machines into the per-stage workflow services.
package app

import (
	"sync"

	"insightflow/domain/core"
)

// stateRegistry keys per-session stage state. Stage state (controllers,
// coordinators) is owned exclusively by its stage service and never shared
// across stages; only the SessionStore crosses stage boundaries.
type stateRegistry[T any] struct {
	mu     sync.Mutex
	states map[core.SessionID]*T
	create func() *T
}

func newStateRegistry[T any](create func() *T) *stateRegistry[T] {
	return &stateRegistry[T]{
		states: make(map[core.SessionID]*T),
		create: create,
	}
}

// get returns the session's stage state, creating it on first touch.
func (r *stateRegistry[T]) get(id core.SessionID) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.states[id]; ok {
		return state
	}
	state := r.create()
	r.states[id] = state
	return state
}

// forget drops a session's stage state, e.g. on explicit reset.
func (r *stateRegistry[T]) forget(id core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, id)
}
