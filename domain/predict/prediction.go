// Package predict models single-record predictions and their display rules.
package predict

import (
	"fmt"
)

// Prediction is the backend's answer to a single-record prediction request.
// Prediction is numeric for regression and may be a string label for
// classification; probabilities are present only for classifiers that expose
// them.
type Prediction struct {
	Prediction    interface{} `json:"prediction"`
	ModelType     string      `json:"model_type,omitempty"`
	Probabilities []float64   `json:"probabilities,omitempty"`
}

// Confidence returns max(probabilities). The second return value is false
// when the model exposed no probabilities, in which case no confidence is
// shown.
func (p *Prediction) Confidence() (float64, bool) {
	if len(p.Probabilities) == 0 {
		return 0, false
	}
	max := p.Probabilities[0]
	for _, v := range p.Probabilities[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// DisplayValue formats the predicted outcome: numbers round to two decimals,
// labels pass through.
func (p *Prediction) DisplayValue() string {
	switch v := p.Prediction.(type) {
	case float64:
		return fmt.Sprintf("%.2f", v)
	case float32:
		return fmt.Sprintf("%.2f", v)
	case int:
		return fmt.Sprintf("%d", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
