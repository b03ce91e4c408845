package app

import (
	"context"
	"io"
	"log"
	"sync"

	"insightflow/domain/core"
	"insightflow/domain/profile"
	"insightflow/domain/workflow"
	"insightflow/internal/analysis"
	"insightflow/ports"
)

// AnalyzeService sequences the upload/profile stage: ingest a file, store
// the dataset identifier, fetch the profile, and keep the scatter panel
// coordinated with the user's axis selections.
type AnalyzeService struct {
	sessions ports.SessionStore
	data     ports.DataService
	states   *stateRegistry[analyzeState]
}

type analyzeState struct {
	controller *workflow.Controller[*profile.DatasetProfile]
	scatter    *workflow.ScatterCoordinator

	mu     sync.Mutex
	upload *profile.UploadResult
}

// ScatterSnapshot is the scatter panel's display state. Active is false when
// fewer than two numeric columns exist and the panel is inert.
type ScatterSnapshot struct {
	X       string
	Y       string
	Columns []string
	Points  []profile.ScatterPoint
	Summary *analysis.SampleSummary
	Active  bool
}

// AnalyzeSnapshot is the Analyze stage's full display state.
type AnalyzeSnapshot struct {
	Phase   workflow.Phase
	Err     error
	Upload  *profile.UploadResult
	Profile *profile.DatasetProfile
	Scatter ScatterSnapshot
}

// NewAnalyzeService wires the Analyze stage.
func NewAnalyzeService(sessions ports.SessionStore, data ports.DataService) *AnalyzeService {
	return &AnalyzeService{
		sessions: sessions,
		data:     data,
		states: newStateRegistry(func() *analyzeState {
			return &analyzeState{
				controller: workflow.NewController[*profile.DatasetProfile](),
				scatter:    workflow.NewScatterCoordinator(),
			}
		}),
	}
}

// Upload ingests a file, establishes the session's dataset, and loads its
// profile. The dataset identifier is written to the session only on success.
func (s *AnalyzeService) Upload(ctx context.Context, sid core.SessionID, filename string, content io.Reader) (AnalyzeSnapshot, error) {
	state := s.states.get(sid)
	token := state.controller.Begin()

	result, err := s.data.Upload(ctx, filename, content)
	if err != nil {
		state.controller.Fail(token, err)
		return s.Snapshot(sid), nil
	}

	dataset := core.DatasetID(result.DatasetID)
	if err := s.sessions.SetDataset(ctx, sid, dataset); err != nil {
		state.controller.Fail(token, err)
		return AnalyzeSnapshot{}, err
	}

	state.mu.Lock()
	state.upload = result
	state.mu.Unlock()

	s.loadProfile(ctx, state, token, dataset)
	return s.Snapshot(sid), nil
}

// Enter auto-loads the stage when a dataset is already in the session; with
// no dataset the stage stays Idle and shows the upload prompt.
func (s *AnalyzeService) Enter(ctx context.Context, sid core.SessionID) (AnalyzeSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return AnalyzeSnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasDataset() {
		return s.Snapshot(sid), nil
	}
	if state.controller.Phase() == workflow.PhaseReady {
		return s.Snapshot(sid), nil
	}

	token := state.controller.Begin()
	s.loadProfile(ctx, state, token, session.DatasetID)
	return s.Snapshot(sid), nil
}

// Reset clears the whole session ("upload a different dataset") and returns
// every stage's state to its initial phase.
func (s *AnalyzeService) Reset(ctx context.Context, sid core.SessionID) error {
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return err
	}
	s.states.forget(sid)
	return nil
}

// SelectAxis changes one scatter axis and re-issues the sample request. A
// stale response for the superseded key is discarded by the coordinator.
func (s *AnalyzeService) SelectAxis(ctx context.Context, sid core.SessionID, axis, column string) (AnalyzeSnapshot, error) {
	state := s.states.get(sid)

	var key workflow.ScatterKey
	var fetch bool
	if axis == "y" {
		key, fetch = state.scatter.SelectY(column)
	} else {
		key, fetch = state.scatter.SelectX(column)
	}
	if fetch {
		s.fetchScatter(ctx, state, key)
	}
	return s.Snapshot(sid), nil
}

// Snapshot assembles the stage's display state.
func (s *AnalyzeService) Snapshot(sid core.SessionID) AnalyzeSnapshot {
	state := s.states.get(sid)
	ctl := state.controller.Snapshot()

	state.mu.Lock()
	upload := state.upload
	state.mu.Unlock()

	snapshot := AnalyzeSnapshot{
		Phase:   ctl.Phase,
		Err:     ctl.Err,
		Upload:  upload,
		Profile: ctl.Result,
	}

	if ctl.Phase == workflow.PhaseReady && ctl.Result != nil {
		key := state.scatter.Key()
		scatter := ScatterSnapshot{
			X:       key.X,
			Y:       key.Y,
			Columns: profile.NumericColumns(ctl.Result),
			Active:  key.X != "" && key.Y != "",
		}
		if points, ok := state.scatter.Sample(); ok {
			scatter.Points = points
			if summary, err := analysis.Summarize(points); err == nil {
				scatter.Summary = summary
			}
		}
		snapshot.Scatter = scatter
	}
	return snapshot
}

// loadProfile fetches the profile for a dataset and seeds the scatter axes
// from it.
func (s *AnalyzeService) loadProfile(ctx context.Context, state *analyzeState, token uint64, dataset core.DatasetID) {
	p, err := s.data.Profile(ctx, dataset)
	if err != nil {
		state.controller.Fail(token, err)
		return
	}
	if !state.controller.Complete(token, p) {
		return
	}

	if key, fetch := state.scatter.SeedFromProfile(dataset, p); fetch {
		s.fetchScatter(ctx, state, key)
	}
}

// fetchScatter issues one sample request. A scatter failure degrades the
// panel (no sample) without failing the profile stage.
func (s *AnalyzeService) fetchScatter(ctx context.Context, state *analyzeState, key workflow.ScatterKey) {
	points, err := s.data.Scatter(ctx, key.Dataset, key.X, key.Y)
	if err != nil {
		log.Printf("[AnalyzeService] Scatter fetch failed for (%s, %s, %s): %v", key.Dataset, key.X, key.Y, err)
		return
	}
	state.scatter.Apply(key, points)
}
