package workflow

import (
	"errors"
	"testing"
)

// TestControllerHappyPath walks Idle -> Loading -> Ready.
func TestControllerHappyPath(t *testing.T) {
	c := NewController[string]()
	if c.Phase() != PhaseIdle {
		t.Fatalf("Expected initial phase idle, got %s", c.Phase())
	}

	token := c.Begin()
	if c.Phase() != PhaseLoading {
		t.Errorf("Expected loading after Begin, got %s", c.Phase())
	}

	if !c.Complete(token, "profile") {
		t.Fatal("Completion with current token must apply")
	}

	snap := c.Snapshot()
	if snap.Phase != PhaseReady || snap.Result != "profile" || snap.Err != nil {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}

// TestControllerStaleCompletionDiscarded checks that a superseded request's
// completion never overwrites a newer result.
func TestControllerStaleCompletionDiscarded(t *testing.T) {
	c := NewController[string]()

	first := c.Begin()
	second := c.Begin()

	if !c.Complete(second, "new") {
		t.Fatal("Current completion must apply")
	}
	if c.Complete(first, "old") {
		t.Error("Stale completion must be discarded")
	}

	if snap := c.Snapshot(); snap.Result != "new" {
		t.Errorf("Expected result 'new', got %q", snap.Result)
	}
}

// TestControllerFailure checks Loading -> Failed and retry.
func TestControllerFailure(t *testing.T) {
	c := NewController[int]()

	token := c.Begin()
	boom := errors.New("backend unreachable")
	if !c.Fail(token, boom) {
		t.Fatal("Current failure must apply")
	}

	snap := c.Snapshot()
	if snap.Phase != PhaseFailed || !errors.Is(snap.Err, boom) {
		t.Errorf("Unexpected snapshot after failure: %+v", snap)
	}

	// Retry re-enters Loading
	retry := c.Begin()
	if c.Phase() != PhaseLoading {
		t.Errorf("Retry must re-enter loading, got %s", c.Phase())
	}
	if !c.Complete(retry, 7) {
		t.Error("Retry completion must apply")
	}
	if c.Phase() != PhaseReady {
		t.Errorf("Expected ready after retry, got %s", c.Phase())
	}
}

// TestControllerStaleFailureDiscarded checks that a stale error cannot knock
// a newer result out of Ready.
func TestControllerStaleFailureDiscarded(t *testing.T) {
	c := NewController[string]()

	first := c.Begin()
	second := c.Begin()
	c.Complete(second, "kept")

	if c.Fail(first, errors.New("late timeout")) {
		t.Error("Stale failure must be discarded")
	}
	if snap := c.Snapshot(); snap.Phase != PhaseReady || snap.Result != "kept" {
		t.Errorf("Ready result must survive stale failure: %+v", snap)
	}
}

// TestControllerBlocked checks the precondition-not-met state.
func TestControllerBlocked(t *testing.T) {
	c := NewController[string]()
	c.Block("no dataset yet")

	snap := c.Snapshot()
	if snap.Phase != PhaseBlocked {
		t.Fatalf("Expected blocked, got %s", snap.Phase)
	}
	if snap.BlockReason != "no dataset yet" {
		t.Errorf("Unexpected block reason: %q", snap.BlockReason)
	}
	if snap.Err != nil {
		t.Error("Blocked is not a failure state")
	}
}

// TestControllerUnblock checks Blocked -> Idle once the precondition is met,
// and that Unblock never disturbs other phases.
func TestControllerUnblock(t *testing.T) {
	c := NewController[string]()
	c.Block("no dataset yet")

	c.Unblock()
	snap := c.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("Expected idle after unblock, got %s", snap.Phase)
	}
	if snap.BlockReason != "" {
		t.Errorf("Block reason must clear: %q", snap.BlockReason)
	}

	token := c.Begin()
	c.Complete(token, "profile")
	c.Unblock()
	if snap := c.Snapshot(); snap.Phase != PhaseReady || snap.Result != "profile" {
		t.Errorf("Unblock must not disturb a ready result: %+v", snap)
	}
}

// TestControllerReset checks the explicit return to Idle.
func TestControllerReset(t *testing.T) {
	c := NewController[string]()
	token := c.Begin()
	c.Complete(token, "data")

	c.Reset()
	snap := c.Snapshot()
	if snap.Phase != PhaseIdle || snap.Result != "" {
		t.Errorf("Reset must return to idle with zero result: %+v", snap)
	}

	// A completion issued before the reset is stale afterwards
	if c.Complete(token, "zombie") {
		t.Error("Pre-reset completion must be discarded")
	}
}
