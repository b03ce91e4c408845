package app

import (
	"context"
	"log"
	"sync"

	"insightflow/domain/core"
	"insightflow/domain/predict"
	"insightflow/domain/schema"
	"insightflow/domain/workflow"
	"insightflow/ports"
)

// PredictService sequences the prediction stage: resolve the model's input
// schema into a form, coerce the collected values, and issue single-record
// predictions.
type PredictService struct {
	sessions  ports.SessionStore
	data      ports.DataService
	predictor ports.PredictService
	states    *stateRegistry[predictState]
}

type predictState struct {
	form       *workflow.Controller[[]schema.FormField]
	prediction *workflow.Controller[*predict.Prediction]

	mu     sync.Mutex
	target string
}

// PredictSnapshot is the Predict stage's display state. Form and prediction
// carry independent phases; a failed prediction leaves the form rendered.
type PredictSnapshot struct {
	Phase       workflow.Phase
	Err         error
	BlockReason string
	Target      string
	Fields      []schema.FormField

	PredictionPhase workflow.Phase
	PredictionErr   error
	Prediction      *predict.Prediction
	// Outcome and Confidence are display-ready derivations of Prediction.
	Outcome    string
	Confidence float64
	HasConf    bool
}

// NewPredictService wires the Predict stage.
func NewPredictService(sessions ports.SessionStore, data ports.DataService, predictor ports.PredictService) *PredictService {
	return &PredictService{
		sessions:  sessions,
		data:      data,
		predictor: predictor,
		states: newStateRegistry(func() *predictState {
			return &predictState{
				form:       workflow.NewController[[]schema.FormField](),
				prediction: workflow.NewController[*predict.Prediction](),
			}
		}),
	}
}

// Enter builds the input form. The typed model metadata is preferred; when
// that fetch fails the form falls back to the dataset profile's bare column
// names, coarser and type-less.
func (s *PredictService) Enter(ctx context.Context, sid core.SessionID) (PredictSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return PredictSnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasModel() {
		state.form.Block("No model available. Please train a model first.")
		return s.snapshot(state), nil
	}

	token := state.form.Begin()

	meta, err := s.predictor.Metadata(ctx, session.BestModelID)
	if err != nil {
		log.Printf("[PredictService] Metadata fetch failed for %s, falling back to profile: %v", session.BestModelID, err)
		meta, err = s.metadataFromProfile(ctx, session)
		if err != nil {
			state.form.Fail(token, err)
			return s.snapshot(state), nil
		}
	}

	state.mu.Lock()
	state.target = meta.Target
	state.mu.Unlock()

	state.form.Complete(token, schema.BuildForm(meta.Schema, meta.Target))
	return s.snapshot(state), nil
}

// Predict coerces the collected form values and requests a prediction.
func (s *PredictService) Predict(ctx context.Context, sid core.SessionID, values map[string]string) (PredictSnapshot, error) {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return PredictSnapshot{}, err
	}

	state := s.states.get(sid)
	if !session.HasModel() {
		state.form.Block("No model available. Please train a model first.")
		return s.snapshot(state), nil
	}

	token := state.prediction.Begin()
	result, err := s.predictor.Predict(ctx, session.BestModelID, schema.CoerceFeatures(values))
	if err != nil {
		state.prediction.Fail(token, err)
		return s.snapshot(state), nil
	}
	state.prediction.Complete(token, result)
	return s.snapshot(state), nil
}

// Snapshot returns the stage's current display state.
func (s *PredictService) Snapshot(sid core.SessionID) PredictSnapshot {
	return s.snapshot(s.states.get(sid))
}

// metadataFromProfile derives type-less form fields from the dataset
// profile when the model metadata is unavailable.
func (s *PredictService) metadataFromProfile(ctx context.Context, session ports.Session) (*ports.PredictMetadata, error) {
	if !session.HasDataset() {
		return nil, core.ErrNoDataset
	}
	p, err := s.data.Profile(ctx, session.DatasetID)
	if err != nil {
		return nil, err
	}
	return &ports.PredictMetadata{Schema: schema.FromNames(p.Columns)}, nil
}

func (s *PredictService) snapshot(state *predictState) PredictSnapshot {
	form := state.form.Snapshot()
	prediction := state.prediction.Snapshot()

	state.mu.Lock()
	target := state.target
	state.mu.Unlock()

	snapshot := PredictSnapshot{
		Phase:           form.Phase,
		Err:             form.Err,
		BlockReason:     form.BlockReason,
		Target:          target,
		Fields:          form.Result,
		PredictionPhase: prediction.Phase,
		PredictionErr:   prediction.Err,
		Prediction:      prediction.Result,
	}
	if prediction.Result != nil {
		snapshot.Outcome = prediction.Result.DisplayValue()
		snapshot.Confidence, snapshot.HasConf = prediction.Result.Confidence()
	}
	return snapshot
}
