package app

import (
	"context"
	"io"

	"insightflow/adapters/session"
	"insightflow/domain/core"
	"insightflow/domain/insight"
	"insightflow/domain/leaderboard"
	"insightflow/domain/narrative"
	"insightflow/domain/predict"
	"insightflow/domain/profile"
	"insightflow/ports"
)

// fakeBackend implements ports.Backend with per-call function fields; a nil
// field means the test does not expect that call.
type fakeBackend struct {
	uploadFn    func(ctx context.Context, filename string, content io.Reader) (*profile.UploadResult, error)
	profileFn   func(ctx context.Context, dataset core.DatasetID) (*profile.DatasetProfile, error)
	scatterFn   func(ctx context.Context, dataset core.DatasetID, x, y string) ([]profile.ScatterPoint, error)
	trainFn     func(ctx context.Context, dataset core.DatasetID, target string) (*leaderboard.TrainingOutcome, error)
	explainFn   func(ctx context.Context, dataset core.DatasetID, model core.ModelID) (*insight.Explanation, error)
	summarizeFn func(ctx context.Context, contextText, query string) (*insight.Summary, error)
	metadataFn  func(ctx context.Context, model core.ModelID) (*ports.PredictMetadata, error)
	predictFn   func(ctx context.Context, model core.ModelID, features map[string]interface{}) (*predict.Prediction, error)
	storyFn     func(ctx context.Context, dataset core.DatasetID) ([]narrative.Section, error)
}

func (f *fakeBackend) Upload(ctx context.Context, filename string, content io.Reader) (*profile.UploadResult, error) {
	return f.uploadFn(ctx, filename, content)
}

func (f *fakeBackend) Profile(ctx context.Context, dataset core.DatasetID) (*profile.DatasetProfile, error) {
	return f.profileFn(ctx, dataset)
}

func (f *fakeBackend) Scatter(ctx context.Context, dataset core.DatasetID, x, y string) ([]profile.ScatterPoint, error) {
	return f.scatterFn(ctx, dataset, x, y)
}

func (f *fakeBackend) Train(ctx context.Context, dataset core.DatasetID, target string) (*leaderboard.TrainingOutcome, error) {
	return f.trainFn(ctx, dataset, target)
}

func (f *fakeBackend) Explain(ctx context.Context, dataset core.DatasetID, model core.ModelID) (*insight.Explanation, error) {
	return f.explainFn(ctx, dataset, model)
}

func (f *fakeBackend) Summarize(ctx context.Context, contextText, query string) (*insight.Summary, error) {
	return f.summarizeFn(ctx, contextText, query)
}

func (f *fakeBackend) Metadata(ctx context.Context, model core.ModelID) (*ports.PredictMetadata, error) {
	return f.metadataFn(ctx, model)
}

func (f *fakeBackend) Predict(ctx context.Context, model core.ModelID, features map[string]interface{}) (*predict.Prediction, error) {
	return f.predictFn(ctx, model, features)
}

func (f *fakeBackend) Story(ctx context.Context, dataset core.DatasetID) ([]narrative.Section, error) {
	return f.storyFn(ctx, dataset)
}

func newTestStore() *session.MemoryStore {
	return session.NewMemoryStore(0)
}

func floatPtr(v float64) *float64 { return &v }

var testProfile = &profile.DatasetProfile{
	Columns: []string{"age", "income", "city"},
	Dtypes: map[string]string{
		"age":    "int64",
		"income": "float64",
		"city":   "object",
	},
	Missing: map[string]int{"age": 0, "income": 2, "city": 0},
	Description: map[string]profile.ColumnStats{
		"age": {Count: floatPtr(100), Mean: floatPtr(41.5)},
	},
}
