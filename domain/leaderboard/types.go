// Package leaderboard normalizes heterogeneous model-comparison results for
// display. Rank is established upstream; this package validates it and puts
// classification and regression metrics on a common scale.
package leaderboard

// ProblemType discriminates which metric family a training run produced.
type ProblemType string

const (
	Classification ProblemType = "classification"
	Regression     ProblemType = "regression"
)

// ModelResult is one candidate model's evaluation. Classification results
// carry accuracy/f1, regression results carry r2/mse; the families are
// mutually exclusive, hence the pointers.
type ModelResult struct {
	Model    string   `json:"model"`
	ModelID  string   `json:"model_id,omitempty"`
	Accuracy *float64 `json:"accuracy,omitempty"`
	F1       *float64 `json:"f1,omitempty"`
	R2       *float64 `json:"r2,omitempty"`
	MSE      *float64 `json:"mse,omitempty"`
}

// TrainingOutcome is the backend's answer to a training request. Ordering of
// Results encodes rank: the first element is the authoritative best.
type TrainingOutcome struct {
	ProblemType    ProblemType   `json:"problem_type"`
	Results        []ModelResult `json:"results"`
	BestModel      *ModelResult  `json:"best_model,omitempty"`
	DroppedColumns []string      `json:"dropped_columns,omitempty"`
}
