// Package workflow carries the per-stage state machines that sequence
// asynchronous backend calls and guard their completions.
package workflow

import (
	"sync"
)

// Phase is the display state of one workflow stage.
type Phase string

const (
	// PhaseBlocked means a required identifier is missing from the session;
	// no request was or will be issued until the precondition is met.
	PhaseBlocked Phase = "blocked"
	// PhaseIdle is the initial state before any user action.
	PhaseIdle Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	// PhaseFailed is terminal for one attempt; the user may retry.
	PhaseFailed Phase = "failed"
)

// Snapshot is a point-in-time copy of a controller's state, safe to hand to
// rendering.
type Snapshot[T any] struct {
	Phase       Phase
	Result      T
	Err         error
	BlockReason string
}

// Controller is a small explicit state machine for one stage's fetch cycle:
// Idle -> Loading -> Ready | Failed, with Blocked as a distinct initial state
// when a precondition is unmet. Completions are guarded by a token so a
// response for a superseded request can never overwrite a newer result.
type Controller[T any] struct {
	mu          sync.Mutex
	phase       Phase
	seq         uint64
	result      T
	err         error
	blockReason string
}

// NewController returns a controller in the Idle phase.
func NewController[T any]() *Controller[T] {
	return &Controller[T]{phase: PhaseIdle}
}

// Block records an unmet precondition. The stage renders a fixed
// "precondition not met" state and never enters Loading.
func (c *Controller[T]) Block(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.phase = PhaseBlocked
	c.blockReason = reason
	c.result = zero
	c.err = nil
}

// Unblock returns a Blocked controller to Idle once its precondition is
// satisfied. Any other phase is left untouched.
func (c *Controller[T]) Unblock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseBlocked {
		return
	}
	c.phase = PhaseIdle
	c.blockReason = ""
}

// Begin transitions to Loading and returns the token the eventual completion
// must present. Issuing a new Begin supersedes any outstanding request.
func (c *Controller[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.phase = PhaseLoading
	c.blockReason = ""
	c.err = nil
	return c.seq
}

// Complete applies a successful result. Returns false, and changes nothing,
// when the token belongs to a superseded request.
func (c *Controller[T]) Complete(token uint64, result T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return false
	}
	c.phase = PhaseReady
	c.result = result
	c.err = nil
	return true
}

// Fail records a request error. Stale failures are discarded the same way as
// stale results.
func (c *Controller[T]) Fail(token uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return false
	}
	c.phase = PhaseFailed
	c.err = err
	return true
}

// Reset returns the controller to Idle, discarding any result. This is the
// only path back to Idle and corresponds to an explicit user reset.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.seq++
	c.phase = PhaseIdle
	c.result = zero
	c.err = nil
	c.blockReason = ""
}

// Snapshot copies the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Phase:       c.phase,
		Result:      c.result,
		Err:         c.err,
		BlockReason: c.blockReason,
	}
}

// Phase returns the current phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}
