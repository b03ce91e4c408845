package app

import (
	"context"

	"insightflow/domain/core"
	"insightflow/domain/narrative"
	"insightflow/domain/workflow"
	"insightflow/ports"
)

// StoryService fetches the dataset's narrative overview on demand.
type StoryService struct {
	sessions ports.SessionStore
	stories  ports.StoryService
	states   *stateRegistry[storyState]
}

type storyState struct {
	controller *workflow.Controller[[]narrative.Section]
}

// StorySnapshot is the Story stage's display state.
type StorySnapshot struct {
	Phase       workflow.Phase
	Err         error
	BlockReason string
	Sections    []narrative.Section
}

// NewStoryService wires the Story stage.
func NewStoryService(sessions ports.SessionStore, stories ports.StoryService) *StoryService {
	return &StoryService{
		sessions: sessions,
		stories:  stories,
		states: newStateRegistry(func() *storyState {
			return &storyState{controller: workflow.NewController[[]narrative.Section]()}
		}),
	}
}

// Generate fetches the narrative for the session's dataset. Without a
// dataset the stage blocks with an actionable message.
func (s *StoryService) Generate(ctx context.Context, sid core.SessionID) (StorySnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return StorySnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasDataset() {
		state.controller.Block("Please upload a dataset in the Analyze tab first.")
		return s.snapshot(state), nil
	}

	token := state.controller.Begin()
	sections, err := s.stories.Story(ctx, session.DatasetID)
	if err != nil {
		state.controller.Fail(token, err)
		return s.snapshot(state), nil
	}
	state.controller.Complete(token, sections)
	return s.snapshot(state), nil
}

// Snapshot returns the stage's current display state.
func (s *StoryService) Snapshot(sid core.SessionID) StorySnapshot {
	return s.snapshot(s.states.get(sid))
}

func (s *StoryService) snapshot(state *storyState) StorySnapshot {
	snap := state.controller.Snapshot()
	return StorySnapshot{
		Phase:       snap.Phase,
		Err:         snap.Err,
		BlockReason: snap.BlockReason,
		Sections:    snap.Result,
	}
}
