package app

import (
	"context"
	"log"

	"insightflow/domain/core"
	"insightflow/domain/insight"
	"insightflow/domain/workflow"
	"insightflow/ports"
)

// ExplainService sequences the explainability stage: the feature-importance
// call, then a derived narrative-summary call. The two are independent
// state machines composed sequentially; a summary failure degrades the
// display but never invalidates the already-rendered importance chart.
type ExplainService struct {
	sessions  ports.SessionStore
	explainer ports.ExplainService
	insights  ports.InsightService
	states    *stateRegistry[explainState]
}

type explainState struct {
	explanation *workflow.Controller[*insight.Explanation]
	summary     *workflow.Controller[*insight.Summary]
}

// ExplainSnapshot is the Explain stage's display state. Summary has its own
// phase: partial success (chart without narrative) is a valid terminal
// state.
type ExplainSnapshot struct {
	Phase        workflow.Phase
	Err          error
	BlockReason  string
	Explanation  *insight.Explanation
	SummaryPhase workflow.Phase
	Summary      *insight.Summary
}

// NewExplainService wires the Explain stage.
func NewExplainService(sessions ports.SessionStore, explainer ports.ExplainService, insights ports.InsightService) *ExplainService {
	return &ExplainService{
		sessions:  sessions,
		explainer: explainer,
		insights:  insights,
		states: newStateRegistry(func() *explainState {
			return &explainState{
				explanation: workflow.NewController[*insight.Explanation](),
				summary:     workflow.NewController[*insight.Summary](),
			}
		}),
	}
}

// Enter reports the stage's preconditions without issuing any request.
func (s *ExplainService) Enter(ctx context.Context, sid core.SessionID) (ExplainSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return ExplainSnapshot{}, err
	}

	state := s.states.get(sid)
	if reason, blocked := explainBlockReason(session); blocked {
		state.explanation.Block(reason)
	} else {
		// The prerequisites may have arrived since a previous blocked visit.
		state.explanation.Unblock()
	}
	return s.snapshot(state), nil
}

// Explain runs the importance call and, on success, the narrative call.
func (s *ExplainService) Explain(ctx context.Context, sid core.SessionID) (ExplainSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return ExplainSnapshot{}, err
	}

	state := s.states.get(sid)
	if reason, blocked := explainBlockReason(session); blocked {
		state.explanation.Block(reason)
		return s.snapshot(state), nil
	}

	token := state.explanation.Begin()
	explanation, err := s.explainer.Explain(ctx, session.DatasetID, session.BestModelID)
	if err != nil {
		state.explanation.Fail(token, err)
		return s.snapshot(state), nil
	}
	state.explanation.Complete(token, explanation)

	s.summarize(ctx, state, explanation)
	return s.snapshot(state), nil
}

// Snapshot returns the stage's current display state.
func (s *ExplainService) Snapshot(sid core.SessionID) ExplainSnapshot {
	return s.snapshot(s.states.get(sid))
}

// summarize runs the derived narrative call. It fails independently and
// silently from the primary result's perspective.
func (s *ExplainService) summarize(ctx context.Context, state *explainState, explanation *insight.Explanation) {
	token := state.summary.Begin()
	summary, err := s.insights.Summarize(ctx, insight.NarrativeContext(explanation), insight.NarrativeQuery)
	if err != nil {
		log.Printf("[ExplainService] Narrative summary failed: %v", err)
		state.summary.Fail(token, err)
		return
	}
	state.summary.Complete(token, summary)
}

func (s *ExplainService) snapshot(state *explainState) ExplainSnapshot {
	explanation := state.explanation.Snapshot()
	summary := state.summary.Snapshot()
	return ExplainSnapshot{
		Phase:        explanation.Phase,
		Err:          explanation.Err,
		BlockReason:  explanation.BlockReason,
		Explanation:  explanation.Result,
		SummaryPhase: summary.Phase,
		Summary:      summary.Result,
	}
}

func explainBlockReason(session ports.Session) (string, bool) {
	if !session.HasDataset() {
		return "No dataset found. Please upload one in the Analyze tab first.", true
	}
	if !session.HasModel() {
		return "No model found. Please go to the Train tab and train a model first.", true
	}
	return "", false
}
