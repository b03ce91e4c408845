package app

import (
	"context"
	"errors"
	"testing"

	"insightflow/domain/core"
	"insightflow/domain/predict"
	"insightflow/domain/profile"
	"insightflow/domain/schema"
	"insightflow/domain/workflow"
	"insightflow/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typedMetadata() *ports.PredictMetadata {
	return &ports.PredictMetadata{
		Target: "churned",
		Schema: schema.FieldSchema{
			{Name: "age", Type: schema.FieldNumeric},
			{Name: "city", Type: schema.FieldCategorical, Options: []string{"Oslo", "Bergen"}},
			{Name: "churned", Type: schema.FieldCategorical},
		},
	}
}

func TestPredictBlockedWithoutModel(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	svc := NewPredictService(store, &fakeBackend{}, &fakeBackend{})
	snap, err := svc.Enter(context.Background(), core.NewSessionID())
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseBlocked, snap.Phase)
	assert.Contains(t, snap.BlockReason, "train a model")
}

func TestPredictEnterBuildsTypedForm(t *testing.T) {
	store := newTestStore()
	defer store.Close()
	sid := readySession(t, store)

	backend := &fakeBackend{
		metadataFn: func(_ context.Context, model core.ModelID) (*ports.PredictMetadata, error) {
			assert.Equal(t, core.ModelID("m-rf"), model)
			return typedMetadata(), nil
		},
	}

	svc := NewPredictService(store, &fakeBackend{}, backend)
	snap, err := svc.Enter(context.Background(), sid)
	require.NoError(t, err)

	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	assert.Equal(t, "churned", snap.Target)

	// The target column never appears in the form.
	require.Len(t, snap.Fields, 2)
	assert.Equal(t, "age", snap.Fields[0].Name)
	assert.Equal(t, schema.ControlNumber, snap.Fields[0].Kind)
	assert.Equal(t, "city", snap.Fields[1].Name)
	assert.Equal(t, schema.ControlChoice, snap.Fields[1].Kind)
	assert.Equal(t, schema.Unselected, snap.Fields[1].Default)
}

func TestPredictMetadataFailureFallsBackToProfile(t *testing.T) {
	store := newTestStore()
	defer store.Close()
	sid := readySession(t, store)

	data := &fakeBackend{
		profileFn: func(context.Context, core.DatasetID) (*profile.DatasetProfile, error) {
			return testProfile, nil
		},
	}
	predictor := &fakeBackend{
		metadataFn: func(context.Context, core.ModelID) (*ports.PredictMetadata, error) {
			return nil, core.ErrBackendRejected
		},
	}

	svc := NewPredictService(store, data, predictor)
	snap, err := svc.Enter(context.Background(), sid)
	require.NoError(t, err)

	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	assert.Empty(t, snap.Target)

	// Profile-derived fields are type-less and render as numeric inputs.
	require.Len(t, snap.Fields, 3)
	for _, f := range snap.Fields {
		assert.Equal(t, schema.ControlNumber, f.Kind)
	}
}

func TestPredictMetadataFallbackNeedsDataset(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	sid := core.NewSessionID()
	require.NoError(t, store.SetBestModel(context.Background(), sid, "m-rf"))

	predictor := &fakeBackend{
		metadataFn: func(context.Context, core.ModelID) (*ports.PredictMetadata, error) {
			return nil, errors.New("metadata unavailable")
		},
	}

	svc := NewPredictService(store, &fakeBackend{}, predictor)
	snap, err := svc.Enter(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseFailed, snap.Phase)
	assert.ErrorIs(t, snap.Err, core.ErrNoDataset)
}

func TestPredictCoercesValuesAndFormatsOutcome(t *testing.T) {
	store := newTestStore()
	defer store.Close()
	sid := readySession(t, store)

	var gotFeatures map[string]interface{}
	predictor := &fakeBackend{
		predictFn: func(_ context.Context, model core.ModelID, features map[string]interface{}) (*predict.Prediction, error) {
			assert.Equal(t, core.ModelID("m-rf"), model)
			gotFeatures = features
			return &predict.Prediction{
				Prediction:    "Yes",
				ModelType:     "classification",
				Probabilities: []float64{0.18, 0.82},
			}, nil
		},
	}

	svc := NewPredictService(store, &fakeBackend{}, predictor)
	snap, err := svc.Predict(context.Background(), sid, map[string]string{
		"age":  " 34 ",
		"city": "Oslo",
	})
	require.NoError(t, err)

	assert.Equal(t, 34.0, gotFeatures["age"])
	assert.Equal(t, "Oslo", gotFeatures["city"])

	assert.Equal(t, workflow.PhaseReady, snap.PredictionPhase)
	assert.Equal(t, "Yes", snap.Outcome)
	assert.True(t, snap.HasConf)
	assert.InDelta(t, 0.82, snap.Confidence, 1e-9)
}

func TestPredictRegressionOutcomeRoundsToTwoDecimals(t *testing.T) {
	store := newTestStore()
	defer store.Close()
	sid := readySession(t, store)

	predictor := &fakeBackend{
		predictFn: func(context.Context, core.ModelID, map[string]interface{}) (*predict.Prediction, error) {
			return &predict.Prediction{Prediction: 231450.6789, ModelType: "regression"}, nil
		},
	}

	svc := NewPredictService(store, &fakeBackend{}, predictor)
	snap, err := svc.Predict(context.Background(), sid, map[string]string{"sqft": "1800"})
	require.NoError(t, err)

	assert.Equal(t, "231450.68", snap.Outcome)
	assert.False(t, snap.HasConf)
}

func TestPredictFailureLeavesFormIntact(t *testing.T) {
	store := newTestStore()
	defer store.Close()
	sid := readySession(t, store)

	predictor := &fakeBackend{
		metadataFn: func(context.Context, core.ModelID) (*ports.PredictMetadata, error) {
			return typedMetadata(), nil
		},
		predictFn: func(context.Context, core.ModelID, map[string]interface{}) (*predict.Prediction, error) {
			return nil, core.ErrBackendUnreachable
		},
	}

	svc := NewPredictService(store, &fakeBackend{}, predictor)
	_, err := svc.Enter(context.Background(), sid)
	require.NoError(t, err)

	snap, err := svc.Predict(context.Background(), sid, map[string]string{"age": "34"})
	require.NoError(t, err)

	assert.Equal(t, workflow.PhaseReady, snap.Phase)
	assert.Len(t, snap.Fields, 2)
	assert.Equal(t, workflow.PhaseFailed, snap.PredictionPhase)
	assert.ErrorIs(t, snap.PredictionErr, core.ErrBackendUnreachable)
}
