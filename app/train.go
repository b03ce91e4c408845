package app

import (
	"context"
	"log"

	"insightflow/domain/core"
	"insightflow/domain/leaderboard"
	"insightflow/domain/workflow"
	"insightflow/ports"
)

// TrainService sequences the training stage: pick a target column, run the
// backend's model competition, and persist the best model identifier.
type TrainService struct {
	sessions ports.SessionStore
	data     ports.DataService
	trainer  ports.TrainingService
	states   *stateRegistry[trainState]
}

type trainState struct {
	controller *workflow.Controller[*leaderboard.TrainingOutcome]
}

// TrainSnapshot is the Train stage's display state.
type TrainSnapshot struct {
	Phase       workflow.Phase
	Err         error
	BlockReason string
	// Columns populates the target selector.
	Columns []string
	Outcome *leaderboard.TrainingOutcome
	Rows    []leaderboard.Row
	// Reordered flags that the backend's result ordering violated the
	// rank invariant and was corrected here.
	Reordered bool
}

// NewTrainService wires the Train stage.
func NewTrainService(sessions ports.SessionStore, data ports.DataService, trainer ports.TrainingService) *TrainService {
	return &TrainService{
		sessions: sessions,
		data:     data,
		trainer:  trainer,
		states: newStateRegistry(func() *trainState {
			return &trainState{controller: workflow.NewController[*leaderboard.TrainingOutcome]()}
		}),
	}
}

// Enter prepares the stage: blocked without a dataset, otherwise the target
// selector columns are fetched from the profile.
func (s *TrainService) Enter(ctx context.Context, sid core.SessionID) (TrainSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return TrainSnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasDataset() {
		state.controller.Block("Please upload a dataset in the Analyze tab first.")
		return s.snapshot(state, nil), nil
	}
	// The dataset may have arrived since a previous blocked visit.
	state.controller.Unblock()

	p, err := s.data.Profile(ctx, session.DatasetID)
	if err != nil {
		// Columns are a convenience; the stage itself has not failed yet.
		log.Printf("[TrainService] Column fetch failed for %s: %v", session.DatasetID, err)
		return s.snapshot(state, nil), nil
	}
	return s.snapshot(state, p.Columns), nil
}

// Train runs the model competition. On success the best model identifier is
// written to the session; its absence in the response is tolerated and
// simply leaves the session's model unset.
func (s *TrainService) Train(ctx context.Context, sid core.SessionID, target string) (TrainSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return TrainSnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasDataset() {
		state.controller.Block("Please upload a dataset in the Analyze tab first.")
		return s.snapshot(state, nil), nil
	}
	state.controller.Unblock()
	if target == "" {
		// Validation, not a stage transition: an earlier result must survive
		// a bad retry.
		return s.snapshot(state, nil), core.NewValidationError("target_column", "a target column is required")
	}

	token := state.controller.Begin()
	outcome, err := s.trainer.Train(ctx, session.DatasetID, target)
	if err != nil {
		state.controller.Fail(token, err)
		return s.snapshot(state, nil), nil
	}

	if leaderboard.EnsureRanked(outcome) {
		log.Printf("[TrainService] Backend returned out-of-order results for %s; re-sorted", session.DatasetID)
	}

	if modelID := bestModelID(outcome); modelID != "" {
		if err := s.sessions.SetBestModel(ctx, sid, core.ModelID(modelID)); err != nil {
			state.controller.Fail(token, err)
			return TrainSnapshot{}, err
		}
	}

	state.controller.Complete(token, outcome)
	return s.snapshot(state, nil), nil
}

// Snapshot returns the stage's current display state.
func (s *TrainService) Snapshot(sid core.SessionID) TrainSnapshot {
	return s.snapshot(s.states.get(sid), nil)
}

func (s *TrainService) snapshot(state *trainState, columns []string) TrainSnapshot {
	ctl := state.controller.Snapshot()
	snapshot := TrainSnapshot{
		Phase:       ctl.Phase,
		Err:         ctl.Err,
		BlockReason: ctl.BlockReason,
		Columns:     columns,
		Outcome:     ctl.Result,
	}
	if ctl.Result != nil {
		snapshot.Rows = leaderboard.Rows(ctl.Result)
	}
	return snapshot
}

// bestModelID prefers the explicit best_model entry and falls back to the
// top-ranked result. Either may be absent.
func bestModelID(outcome *leaderboard.TrainingOutcome) string {
	if outcome.BestModel != nil && outcome.BestModel.ModelID != "" {
		return outcome.BestModel.ModelID
	}
	if best, err := leaderboard.Best(outcome); err == nil {
		return best.ModelID
	}
	return ""
}
