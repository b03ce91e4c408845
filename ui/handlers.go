package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"insightflow/domain/core"
)

func (s *Server) handleAnalyzeEnter(w http.ResponseWriter, r *http.Request) {
	snap, err := s.analyze.Enter(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, analyzeViewFrom(snap))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	snap, err := s.analyze.Upload(r.Context(), sessionID(r), header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, analyzeViewFrom(snap))
}

func (s *Server) handleScatterAxis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Axis   string `json:"axis"`
		Column string `json:"column"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Axis != "x" && req.Axis != "y" {
		http.Error(w, `Axis must be "x" or "y"`, http.StatusBadRequest)
		return
	}

	snap, err := s.analyze.SelectAxis(r.Context(), sessionID(r), req.Axis, req.Column)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, analyzeViewFrom(snap))
}

func (s *Server) handleTrainEnter(w http.ResponseWriter, r *http.Request) {
	snap, err := s.train.Enter(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, trainViewFrom(snap))
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetColumn string `json:"target_column"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	snap, err := s.train.Train(r.Context(), sessionID(r), req.TargetColumn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, trainViewFrom(snap))
}

func (s *Server) handleExplainEnter(w http.ResponseWriter, r *http.Request) {
	snap, err := s.explain.Enter(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, explainViewFrom(snap))
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	snap, err := s.explain.Explain(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, explainViewFrom(snap))
}

func (s *Server) handlePredictEnter(w http.ResponseWriter, r *http.Request) {
	snap, err := s.predict.Enter(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, predictViewFrom(snap))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Values map[string]string `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	snap, err := s.predict.Predict(r.Context(), sessionID(r), req.Values)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, predictViewFrom(snap))
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	snap, err := s.story.Generate(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, storyViewFrom(snap))
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	if err := s.analyze.Reset(r.Context(), sessionID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, map[string]string{"status": "reset"})
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}

// respondError maps service errors that escaped the stage state machines.
// Stage-level failures ride inside snapshots with a 200; only validation and
// infrastructure errors land here.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case core.IsNotFoundError(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("Internal error: %v", err), http.StatusInternalServerError)
	}
}
