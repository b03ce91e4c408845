package profile

import (
	"encoding/json"
	"math"
	"strconv"
)

// UnmarshalJSON decodes one describe-table cell set tolerantly. The backend
// serializes absent stats either as null or as the literal string "NaN"
// depending on version; both read as absent. Numeric stats arriving as
// numeric strings are accepted.
func (cs *ColumnStats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cs.Count = floatField(raw, "count")
	cs.Mean = floatField(raw, "mean")
	cs.Std = floatField(raw, "std")
	cs.Min = floatField(raw, "min")
	cs.Max = floatField(raw, "max")
	cs.Unique = floatField(raw, "unique")
	cs.Freq = floatField(raw, "freq")
	cs.Top = stringField(raw, "top")
	return nil
}

func floatField(raw map[string]json.RawMessage, key string) *float64 {
	msg, ok := raw[key]
	if !ok {
		return nil
	}

	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return &parsed
		}
	}
	return nil
}

func stringField(raw map[string]json.RawMessage, key string) *string {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil || s == "NaN" {
		return nil
	}
	return &s
}
