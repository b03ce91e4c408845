package profile

import (
	"testing"
)

func sampleProfile() *DatasetProfile {
	mean := 42.5
	count := 150.0
	unique := 3.0
	top := "NY"
	return &DatasetProfile{
		Columns: []string{"A", "B", "C"},
		Dtypes:  map[string]string{"A": "int64", "B": "object", "C": "float64"},
		Missing: map[string]int{"A": 0, "B": 4, "C": 1},
		Description: map[string]ColumnStats{
			"A": {Count: &count, Mean: &mean},
			"B": {Count: &count, Unique: &unique, Top: &top},
			"C": {Count: &count, Mean: &mean},
		},
	}
}

// TestTypeCompositionSumsToColumnCount checks that bucket counts always sum
// to the number of columns.
func TestTypeCompositionSumsToColumnCount(t *testing.T) {
	p := sampleProfile()
	slices := TypeComposition(p)

	total := 0
	for _, s := range slices {
		total += s.Value
	}
	if total != len(p.Columns) {
		t.Errorf("Expected bucket counts to sum to %d, got %d", len(p.Columns), total)
	}
}

// TestTypeCompositionOmitsZeroBuckets checks that an absent type never
// produces a zero-valued slice.
func TestTypeCompositionOmitsZeroBuckets(t *testing.T) {
	tests := []struct {
		name     string
		dtypes   map[string]string
		columns  []string
		expected []TypeSlice
	}{
		{
			name:     "all numeric",
			columns:  []string{"A", "C"},
			dtypes:   map[string]string{"A": "int64", "C": "float64"},
			expected: []TypeSlice{{Name: "Numeric", Value: 2}},
		},
		{
			name:     "all categorical",
			columns:  []string{"B"},
			dtypes:   map[string]string{"B": "object"},
			expected: []TypeSlice{{Name: "Categorical", Value: 1}},
		},
		{
			name:    "mixed",
			columns: []string{"A", "B"},
			dtypes:  map[string]string{"A": "int32", "B": "object"},
			expected: []TypeSlice{
				{Name: "Numeric", Value: 1},
				{Name: "Categorical", Value: 1},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := &DatasetProfile{Columns: test.columns, Dtypes: test.dtypes}
			slices := TypeComposition(p)
			if len(slices) != len(test.expected) {
				t.Fatalf("Expected %d slices, got %d", len(test.expected), len(slices))
			}
			for i, want := range test.expected {
				if slices[i] != want {
					t.Errorf("Slice %d: expected %+v, got %+v", i, want, slices[i])
				}
			}
		})
	}
}

// TestMissingValueSeriesExcludesZeroCounts checks that fully populated
// columns never appear in the series.
func TestMissingValueSeriesExcludesZeroCounts(t *testing.T) {
	series := MissingValueSeries(sampleProfile())

	if len(series) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(series))
	}
	for _, entry := range series {
		if entry.Value == 0 {
			t.Errorf("Series must never contain a zero-valued entry, got %+v", entry)
		}
	}
	// Column order is preserved
	if series[0].Name != "B" || series[1].Name != "C" {
		t.Errorf("Expected [B, C] in column order, got [%s, %s]", series[0].Name, series[1].Name)
	}
}

// TestNumericColumnsStableOrder checks the numeric filter and its ordering.
func TestNumericColumnsStableOrder(t *testing.T) {
	cols := NumericColumns(sampleProfile())
	if len(cols) != 2 || cols[0] != "A" || cols[1] != "C" {
		t.Errorf("Expected [A C], got %v", cols)
	}
}

// TestSummaryRowsCap checks the 10-column display cap and its indicator.
func TestSummaryRowsCap(t *testing.T) {
	p := &DatasetProfile{
		Dtypes:      map[string]string{},
		Missing:     map[string]int{},
		Description: map[string]ColumnStats{},
	}
	for _, name := range []string{"c01", "c02", "c03", "c04", "c05", "c06", "c07", "c08", "c09", "c10", "c11", "c12"} {
		p.Columns = append(p.Columns, name)
		p.Dtypes[name] = "float64"
	}

	rows, truncated := SummaryRows(p)
	if len(rows) != 10 {
		t.Errorf("Expected 10 rows, got %d", len(rows))
	}
	if !truncated {
		t.Error("Expected truncation indicator for 12 columns")
	}
	if rows[0].Column != "c01" || rows[9].Column != "c10" {
		t.Errorf("Rows must follow column order, got first=%s last=%s", rows[0].Column, rows[9].Column)
	}

	rows, truncated = SummaryRows(sampleProfile())
	if truncated {
		t.Error("3 columns must not report truncation")
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}
}

// TestSummaryRowFormatting checks mean/top fallback formatting.
func TestSummaryRowFormatting(t *testing.T) {
	rows, _ := SummaryRows(sampleProfile())

	if rows[0].MeanOrTop != "42.50" {
		t.Errorf("Numeric column should show mean, got %q", rows[0].MeanOrTop)
	}
	if rows[1].MeanOrTop != "NY" {
		t.Errorf("Categorical column should show top value, got %q", rows[1].MeanOrTop)
	}
	if rows[1].Unique != "3" {
		t.Errorf("Expected unique count 3, got %q", rows[1].Unique)
	}
	if rows[0].Unique != "N/A" {
		t.Errorf("Missing unique stat should read N/A, got %q", rows[0].Unique)
	}
}

// TestHeadlineMetrics checks row count and total missing derivation.
func TestHeadlineMetrics(t *testing.T) {
	p := sampleProfile()
	if got := RowCount(p); got != 150 {
		t.Errorf("Expected row count 150, got %d", got)
	}
	if got := TotalMissing(p); got != 5 {
		t.Errorf("Expected 5 total missing, got %d", got)
	}
	if got := RowCount(&DatasetProfile{Columns: []string{"A"}}); got != 0 {
		t.Errorf("Profile without description should report 0 rows, got %d", got)
	}
}
