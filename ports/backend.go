package ports

import (
	"context"
	"io"

	"insightflow/domain/core"
	"insightflow/domain/insight"
	"insightflow/domain/leaderboard"
	"insightflow/domain/narrative"
	"insightflow/domain/predict"
	"insightflow/domain/profile"
	"insightflow/domain/schema"
)

// DataService covers dataset ingestion and profile retrieval.
type DataService interface {
	// Upload sends one file and returns the opaque dataset identifier that
	// keys every subsequent call.
	Upload(ctx context.Context, filename string, content io.Reader) (*profile.UploadResult, error)

	// Profile fetches the structured summary for an ingested dataset.
	Profile(ctx context.Context, dataset core.DatasetID) (*profile.DatasetProfile, error)

	// Scatter fetches a bivariate sample for two columns of a dataset.
	Scatter(ctx context.Context, dataset core.DatasetID, x, y string) ([]profile.ScatterPoint, error)
}

// TrainingService runs the backend's model competition.
type TrainingService interface {
	// Train trains candidate models against a target column. The outcome's
	// results are ordered by rank; a missing best model must be tolerated.
	Train(ctx context.Context, dataset core.DatasetID, target string) (*leaderboard.TrainingOutcome, error)
}

// ExplainService computes feature-importance explanations.
type ExplainService interface {
	Explain(ctx context.Context, dataset core.DatasetID, model core.ModelID) (*insight.Explanation, error)
}

// InsightService generates narrative prose from a context string and query.
// The response is opaque prose displayed verbatim; it is never required for
// the importance chart to render.
type InsightService interface {
	Summarize(ctx context.Context, contextText, query string) (*insight.Summary, error)
}

// PredictMetadata describes the inputs a trained model expects, already
// normalized: the typed schema is preferred, with the legacy bare-name list
// folded in at the boundary.
type PredictMetadata struct {
	Target string
	Schema schema.FieldSchema
}

// PredictService serves prediction metadata and single-record predictions.
type PredictService interface {
	Metadata(ctx context.Context, model core.ModelID) (*PredictMetadata, error)
	Predict(ctx context.Context, model core.ModelID, features map[string]interface{}) (*predict.Prediction, error)
}

// StoryService fetches the dataset narrative, normalized to one ordered
// section sequence regardless of which wire shape the backend used.
type StoryService interface {
	Story(ctx context.Context, dataset core.DatasetID) ([]narrative.Section, error)
}

// Backend bundles every collaborator contract the workflow consumes.
type Backend interface {
	DataService
	TrainingService
	ExplainService
	InsightService
	PredictService
	StoryService
}
