package backend

import (
	"encoding/json"

	"insightflow/domain/leaderboard"
	"insightflow/domain/schema"
)

// Wire DTOs for the analytics backend. Request bodies use the backend's
// snake_case contract; responses tolerate the alternate field names older
// backend versions emit.

type trainRequest struct {
	DatasetID    string `json:"dataset_id"`
	TargetColumn string `json:"target_column"`
}

type explainRequest struct {
	DatasetID string `json:"dataset_id"`
	ModelID   string `json:"model_id"`
}

type insightRequest struct {
	Context string `json:"context"`
	Query   string `json:"query"`
}

type predictRequest struct {
	ModelID  string                 `json:"model_id"`
	Features map[string]interface{} `json:"features"`
}

type trainResponse struct {
	Status         string                    `json:"status"`
	ProblemType    leaderboard.ProblemType   `json:"problem_type"`
	Results        []leaderboard.ModelResult `json:"results"`
	BestModel      *leaderboard.ModelResult  `json:"best_model"`
	DroppedColumns []string                  `json:"dropped_columns"`
}

// metadataResponse carries both the typed input schema and the legacy
// bare-name feature list. resolveSchema folds them once, at this boundary.
type metadataResponse struct {
	ModelID     string             `json:"model_id"`
	Type        string             `json:"type"`
	Target      string             `json:"target"`
	Features    []string           `json:"features"`
	InputSchema schema.FieldSchema `json:"input_schema"`
}

func (m *metadataResponse) resolveSchema() schema.FieldSchema {
	if len(m.InputSchema) > 0 {
		return m.InputSchema
	}
	return schema.FromNames(m.Features)
}

// scatterResponse tolerates both an enveloped and a bare point list.
type scatterResponse struct {
	Points []scatterPoint `json:"points"`
}

type scatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// errorDetail is the backend's failure envelope.
type errorDetail struct {
	Detail string `json:"detail"`
}

func parseDetail(body []byte) string {
	var e errorDetail
	if err := json.Unmarshal(body, &e); err != nil || e.Detail == "" {
		return ""
	}
	return e.Detail
}
