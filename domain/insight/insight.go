// Package insight models feature-importance explanations and the narrative
// context derived from them.
package insight

import (
	"fmt"
	"strings"
)

// FeatureImportance is one feature's global importance, as computed by the
// backend explainer.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Explanation is the backend's answer to an explain request. Importance is
// ordered by descending importance.
type Explanation struct {
	ModelName  string              `json:"model_name"`
	Importance []FeatureImportance `json:"feature_importance"`
}

// Summary is the narrative-generation response: opaque prose displayed
// verbatim (after markdown rendering), plus a mode tag the backend uses to
// flag simulated or degraded answers.
type Summary struct {
	Response string `json:"response"`
	Mode     string `json:"mode,omitempty"`
}

// NarrativeQuery is the fixed question sent along with the feature context.
const NarrativeQuery = "What do these features imply? Provide a brief narrative."

// TopFeatures returns the first n feature names. The explanation arrives
// ranked, so these are the n most important.
func TopFeatures(e *Explanation, n int) []string {
	if n > len(e.Importance) {
		n = len(e.Importance)
	}
	names := make([]string, 0, n)
	for _, fi := range e.Importance[:n] {
		names = append(names, fi.Feature)
	}
	return names
}

// NarrativeContext builds the context string forwarded to the narrative
// call from the top three feature names.
func NarrativeContext(e *Explanation) string {
	top := TopFeatures(e, 3)
	return fmt.Sprintf("Top 3 important features are: %s.", strings.Join(top, ", "))
}
