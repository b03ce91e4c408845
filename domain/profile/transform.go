package profile

import (
	"fmt"
	"strings"
)

// summaryColumnCap limits the detail table to the first N columns. Display
// cap only; the underlying profile is not truncated.
const summaryColumnCap = 10

// TypeSlice is one bucket of the column-type composition chart.
type TypeSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// NamedCount is one bar of the missing-values chart.
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SummaryRow is one row of the column statistics table.
type SummaryRow struct {
	Column  string `json:"column"`
	Dtype   string `json:"dtype"`
	Missing int    `json:"missing"`
	Unique  string `json:"unique"`
	// MeanOrTop shows the mean for numeric columns and the modal value for
	// categorical ones.
	MeanOrTop string `json:"mean_or_top"`
}

// IsNumericType reports whether a declared dtype tag denotes a numeric
// column. Anything without an integer or floating-point marker counts as
// categorical.
func IsNumericType(dtype string) bool {
	return strings.Contains(dtype, "int") || strings.Contains(dtype, "float")
}

// TypeComposition buckets the profile's columns into Numeric and Categorical
// slices. A zero-count bucket is omitted rather than emitted with value 0,
// so an all-numeric dataset renders a single full ring instead of an empty
// one.
func TypeComposition(p *DatasetProfile) []TypeSlice {
	numeric, categorical := 0, 0
	for _, col := range p.Columns {
		if IsNumericType(p.Dtypes[col]) {
			numeric++
		} else {
			categorical++
		}
	}

	slices := make([]TypeSlice, 0, 2)
	if numeric > 0 {
		slices = append(slices, TypeSlice{Name: "Numeric", Value: numeric})
	}
	if categorical > 0 {
		slices = append(slices, TypeSlice{Name: "Categorical", Value: categorical})
	}
	return slices
}

// MissingValueSeries returns one entry per column with a strictly positive
// missing count, in column order. Fully populated columns are excluded, not
// zero-valued.
func MissingValueSeries(p *DatasetProfile) []NamedCount {
	series := make([]NamedCount, 0, len(p.Columns))
	for _, col := range p.Columns {
		if count := p.Missing[col]; count > 0 {
			series = append(series, NamedCount{Name: col, Value: count})
		}
	}
	return series
}

// NumericColumns filters the profile's columns by the numeric-type predicate,
// preserving column order. The stable order makes default scatter axis
// selection deterministic.
func NumericColumns(p *DatasetProfile) []string {
	cols := make([]string, 0, len(p.Columns))
	for _, col := range p.Columns {
		if IsNumericType(p.Dtypes[col]) {
			cols = append(cols, col)
		}
	}
	return cols
}

// TotalMissing sums the missing counts across all columns.
func TotalMissing(p *DatasetProfile) int {
	total := 0
	for _, count := range p.Missing {
		total += count
	}
	return total
}

// RowCount derives the dataset's row count from the first column's describe
// count. Returns 0 when the profile carries no usable count.
func RowCount(p *DatasetProfile) int {
	for _, col := range p.Columns {
		if stats, ok := p.Description[col]; ok && stats.Count != nil {
			return int(*stats.Count)
		}
	}
	return 0
}

// SummaryRows builds the column statistics table, truncated to the first 10
// columns. The second return value reports whether columns were left out, so
// the display can show a "more columns exist" indicator.
func SummaryRows(p *DatasetProfile) ([]SummaryRow, bool) {
	cols := p.Columns
	truncated := false
	if len(cols) > summaryColumnCap {
		cols = cols[:summaryColumnCap]
		truncated = true
	}

	rows := make([]SummaryRow, 0, len(cols))
	for _, col := range cols {
		stats := p.Description[col]
		rows = append(rows, SummaryRow{
			Column:    col,
			Dtype:     p.Dtypes[col],
			Missing:   p.Missing[col],
			Unique:    formatUnique(stats),
			MeanOrTop: formatMeanOrTop(stats),
		})
	}
	return rows, truncated
}

func formatUnique(stats ColumnStats) string {
	if stats.Unique == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", int(*stats.Unique))
}

func formatMeanOrTop(stats ColumnStats) string {
	if stats.Mean != nil {
		return fmt.Sprintf("%.2f", *stats.Mean)
	}
	if stats.Top != nil {
		return *stats.Top
	}
	return "-"
}
