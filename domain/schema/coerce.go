package schema

import (
	"math"
	"strconv"
	"strings"
)

// CoerceValue applies the submission-time typing heuristic to one raw form
// value: a non-empty string that parses as a finite number becomes float64,
// everything else passes through as a string. The rule is identical for all
// control kinds, since downstream prediction needs correctly-typed features
// regardless of which control collected the text.
func CoerceValue(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw
	}
	return f
}

// CoerceFeatures coerces every collected form value.
func CoerceFeatures(values map[string]string) map[string]interface{} {
	features := make(map[string]interface{}, len(values))
	for name, raw := range values {
		features[name] = CoerceValue(raw)
	}
	return features
}
