package profile

// DatasetProfile is the structured summary the backend computes for an
// ingested dataset. Columns carries display order; dtypes and missing are
// keyed by column name and cover every column.
type DatasetProfile struct {
	Columns      []string                      `json:"columns"`
	Dtypes       map[string]string             `json:"dtypes"`
	Missing      map[string]int                `json:"missing"`
	Description  map[string]ColumnStats        `json:"description"`
	Correlations map[string]map[string]float64 `json:"correlations,omitempty"`
}

// ColumnStats is one column's slice of the describe() table. Numeric columns
// carry count/mean/std/min/max; categorical columns carry unique/top/freq.
// The backend nulls out NaN, hence the pointers.
type ColumnStats struct {
	Count  *float64 `json:"count,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Unique *float64 `json:"unique,omitempty"`
	Top    *string  `json:"top,omitempty"`
	Freq   *float64 `json:"freq,omitempty"`
}

// UploadResult is what the backend returns after ingesting a file. The
// dataset ID keys every later call; the rest is preview material.
type UploadResult struct {
	DatasetID string                   `json:"dataset_id"`
	Filename  string                   `json:"filename"`
	Columns   []string                 `json:"columns"`
	Shape     []int                    `json:"shape"`
	Preview   []map[string]interface{} `json:"preview"`
}

// ScatterPoint is one (x, y) pair of a bivariate sample.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
