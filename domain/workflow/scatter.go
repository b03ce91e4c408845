package workflow

import (
	"sync"

	"insightflow/domain/core"
	"insightflow/domain/profile"
)

// ScatterKey identifies one bivariate sample request. Completions are matched
// against the latest key, so a stale response for a superseded key can never
// overwrite a newer sample.
type ScatterKey struct {
	Dataset core.DatasetID
	X       string
	Y       string
}

// ScatterCoordinator derives a pair of numeric axis selections from a profile
// and tracks which (dataset, x, y) triple is current. Any change to the
// dataset or either axis produces a new key; the caller issues the fetch and
// reports the completion through Apply.
type ScatterCoordinator struct {
	mu     sync.Mutex
	key    ScatterKey
	sample []profile.ScatterPoint
	loaded bool
}

// NewScatterCoordinator returns a coordinator with no dataset and unset axes.
func NewScatterCoordinator() *ScatterCoordinator {
	return &ScatterCoordinator{}
}

// SeedFromProfile sets default axes from a freshly loaded profile: the first
// two numeric columns, in column order. With fewer than two numeric columns
// the axes stay unset and the scatter panel is inert. Returns the pending
// key, and whether a fetch should be issued.
func (sc *ScatterCoordinator) SeedFromProfile(dataset core.DatasetID, p *profile.DatasetProfile) (ScatterKey, bool) {
	numeric := profile.NumericColumns(p)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.sample = nil
	sc.loaded = false
	if len(numeric) < 2 {
		sc.key = ScatterKey{Dataset: dataset}
		return sc.key, false
	}
	sc.key = ScatterKey{Dataset: dataset, X: numeric[0], Y: numeric[1]}
	return sc.key, true
}

// SelectX changes the x axis. Selecting the same column for both axes is
// permitted; the degenerate diagonal sample is valid data. Changing the key
// drops the applied sample so a failed re-fetch can never show the old
// key's points under the new labels.
func (sc *ScatterCoordinator) SelectX(col string) (ScatterKey, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.key.X != col {
		sc.key.X = col
		sc.sample = nil
		sc.loaded = false
	}
	return sc.key, sc.ready()
}

// SelectY changes the y axis.
func (sc *ScatterCoordinator) SelectY(col string) (ScatterKey, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.key.Y != col {
		sc.key.Y = col
		sc.sample = nil
		sc.loaded = false
	}
	return sc.key, sc.ready()
}

// Key returns the current request key.
func (sc *ScatterCoordinator) Key() ScatterKey {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.key
}

// Apply records a completed sample. Last-request-wins: the sample is
// discarded, and false returned, unless its key still matches the current
// one. Fetching the same key twice in a row is harmless.
func (sc *ScatterCoordinator) Apply(key ScatterKey, sample []profile.ScatterPoint) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if key != sc.key {
		return false
	}
	sc.sample = sample
	sc.loaded = true
	return true
}

// Sample returns the current sample, if one has been applied for the current
// key.
func (sc *ScatterCoordinator) Sample() ([]profile.ScatterPoint, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.loaded {
		return nil, false
	}
	return sc.sample, true
}

// Reset clears the coordinator when the session's dataset is cleared.
func (sc *ScatterCoordinator) Reset() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.key = ScatterKey{}
	sc.sample = nil
	sc.loaded = false
}

// ready reports whether the key is complete enough to fetch. Callers hold
// sc.mu.
func (sc *ScatterCoordinator) ready() bool {
	return !sc.key.Dataset.IsEmpty() && sc.key.X != "" && sc.key.Y != ""
}
