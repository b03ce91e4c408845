package profile

import "math"

// Strength is the display bucket for a correlation magnitude. Buckets are
// assigned by absolute value, so -0.95 and 0.95 land in the same bucket.
type Strength string

const (
	StrengthVeryStrong Strength = "very_strong" // |r| in [0.8, 1]
	StrengthStrong     Strength = "strong"      // |r| in [0.6, 0.8)
	StrengthModerate   Strength = "moderate"    // |r| in [0.4, 0.6)
	StrengthWeak       Strength = "weak"        // |r| in [0.2, 0.4)
	StrengthVeryWeak   Strength = "very_weak"   // |r| in [0, 0.2)
)

// CorrelationCell looks up the correlation between two columns. The second
// return value is false when the profile carries no correlation matrix or
// either column is absent from it.
func CorrelationCell(p *DatasetProfile, row, col string) (float64, bool) {
	if p.Correlations == nil {
		return 0, false
	}
	inner, ok := p.Correlations[row]
	if !ok {
		return 0, false
	}
	v, ok := inner[col]
	return v, ok
}

// StrengthFor maps a correlation value to its display bucket by absolute
// magnitude, sign ignored.
func StrengthFor(v float64) Strength {
	abs := math.Abs(v)
	switch {
	case abs >= 0.8:
		return StrengthVeryStrong
	case abs >= 0.6:
		return StrengthStrong
	case abs >= 0.4:
		return StrengthModerate
	case abs >= 0.2:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}
