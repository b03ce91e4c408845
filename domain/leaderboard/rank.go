package leaderboard

import (
	"sort"

	"insightflow/domain/core"
)

// Row is one display-ready leaderboard entry.
type Row struct {
	Model string `json:"model"`
	// Score is the primary metric normalized to [0, 100].
	Score float64 `json:"score"`
	// Primary is the raw primary metric (accuracy or r2).
	Primary float64 `json:"primary"`
	// Secondary is the raw secondary metric (f1 or mse), display-only.
	Secondary      float64 `json:"secondary"`
	SecondaryLabel string  `json:"secondary_label"`
	Best           bool    `json:"best"`
}

// PrimaryMetric selects the ranking metric for a result: accuracy for
// classification, r2 for regression. Absent metrics read as 0.
func PrimaryMetric(r ModelResult, pt ProblemType) float64 {
	switch pt {
	case Regression:
		return deref(r.R2)
	default:
		return deref(r.Accuracy)
	}
}

// SecondaryMetric selects the display-only companion metric: f1 for
// classification, mse for regression. Never used for ranking.
func SecondaryMetric(r ModelResult, pt ProblemType) float64 {
	switch pt {
	case Regression:
		return deref(r.MSE)
	default:
		return deref(r.F1)
	}
}

// SecondaryLabel names the companion metric for the given problem type.
func SecondaryLabel(pt ProblemType) string {
	if pt == Regression {
		return "MSE"
	}
	return "F1"
}

// NormalizedScore puts the primary metric on a [0, 100] scale. A negative r2
// (worse than a constant predictor) clamps to 0 rather than producing a
// negative bar width.
func NormalizedScore(r ModelResult, pt ProblemType) float64 {
	score := PrimaryMetric(r, pt) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// EnsureRanked validates the ordering-as-rank invariant at the consuming
// boundary: results must be non-increasing in the primary metric. When the
// backend violates it, the results are stably re-sorted. Returns true when a
// re-sort was needed.
func EnsureRanked(outcome *TrainingOutcome) bool {
	ordered := sort.SliceIsSorted(outcome.Results, func(i, j int) bool {
		return PrimaryMetric(outcome.Results[i], outcome.ProblemType) >
			PrimaryMetric(outcome.Results[j], outcome.ProblemType)
	})
	if ordered {
		return false
	}
	sort.SliceStable(outcome.Results, func(i, j int) bool {
		return PrimaryMetric(outcome.Results[i], outcome.ProblemType) >
			PrimaryMetric(outcome.Results[j], outcome.ProblemType)
	})
	return true
}

// Best returns the top-ranked model. Call EnsureRanked first.
func Best(outcome *TrainingOutcome) (*ModelResult, error) {
	if len(outcome.Results) == 0 {
		return nil, core.ErrEmptyLeaderboard
	}
	return &outcome.Results[0], nil
}

// Rows builds the display rows for an outcome, first element marked best.
func Rows(outcome *TrainingOutcome) []Row {
	label := SecondaryLabel(outcome.ProblemType)
	rows := make([]Row, 0, len(outcome.Results))
	for i, r := range outcome.Results {
		rows = append(rows, Row{
			Model:          r.Model,
			Score:          NormalizedScore(r, outcome.ProblemType),
			Primary:        PrimaryMetric(r, outcome.ProblemType),
			Secondary:      SecondaryMetric(r, outcome.ProblemType),
			SecondaryLabel: label,
			Best:           i == 0,
		})
	}
	return rows
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
