// Package analysis computes client-side descriptive statistics for fetched
// scatter samples. The backend sends raw points; the summary shown beside
// the chart is derived here.
package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"insightflow/domain/profile"
)

// AxisSummary is one axis's descriptive statistics.
type AxisSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SampleSummary describes a bivariate sample: per-axis stats, Pearson
// correlation, and the least-squares trendline.
type SampleSummary struct {
	N         int         `json:"n"`
	X         AxisSummary `json:"x"`
	Y         AxisSummary `json:"y"`
	Pearson   float64     `json:"pearson"`
	Slope     float64     `json:"slope"`
	Intercept float64     `json:"intercept"`
}

// Summarize computes the sample summary. At least two points are needed for
// a spread and a trendline.
func Summarize(points []profile.ScatterPoint) (*SampleSummary, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("sample too small to summarize: %d points", len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	xSummary, err := summarizeAxis(xs)
	if err != nil {
		return nil, err
	}
	ySummary, err := summarizeAxis(ys)
	if err != nil {
		return nil, err
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return &SampleSummary{
		N:         len(points),
		X:         *xSummary,
		Y:         *ySummary,
		Pearson:   finiteOrZero(stat.Correlation(xs, ys, nil)),
		Slope:     finiteOrZero(slope),
		Intercept: finiteOrZero(intercept),
	}, nil
}

// A zero-variance axis leaves the correlation and trendline undefined.
// encoding/json rejects NaN and Inf, so report zero instead.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func summarizeAxis(values []float64) (*AxisSummary, error) {
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	return &AxisSummary{Mean: mean, StdDev: stdDev, Min: min, Max: max}, nil
}
