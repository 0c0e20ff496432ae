package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"invoice-matching/internal/config"
	"invoice-matching/internal/database"
	"invoice-matching/internal/matching"
	"invoice-matching/internal/ratelimit"

	"github.com/go-chi/chi/v5"
)

// AnalysisHandler handles HTTP requests for invoice analyses
type AnalysisHandler struct {
	db       *database.DB
	config   *config.Config
	analyzer *matching.Analyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(db *database.DB, cfg *config.Config) *AnalysisHandler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &AnalysisHandler{
		db:       db,
		config:   cfg,
		analyzer: matching.NewAnalyzer(&matching.AnalyzerConfig{MaxTextLength: cfg.MaxTextLength}),
	}
}

// AnalyzeRequest is the body of POST /api/analyses
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// ConfirmRequest is the body of POST /api/analyses/{id}/confirm
type ConfirmRequest struct {
	JobRef int `json:"job_ref"`
}

// CreateAnalysis handles POST /api/analyses
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in CreateAnalysis: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	pool, err := h.db.LoadPool()
	if err != nil {
		log.Printf("ERROR: Failed to load job pool: %v", err)
		http.Error(w, fmt.Sprintf("Failed to load job pool: %v", err), http.StatusInternalServerError)
		return
	}

	result := h.analyzer.Analyze(req.Text, pool)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("ERROR: Failed to serialize analysis: %v", err)
		http.Error(w, "Failed to serialize analysis", http.StatusInternalServerError)
		return
	}

	analysis := &database.Analysis{
		RawText:      req.Text,
		IsCreditNote: result.IsCreditNote,
		Result:       resultJSON,
	}
	if err := h.db.Analyses.Create(analysis); err != nil {
		log.Printf("ERROR: Failed to store analysis: %v", err)
		http.Error(w, fmt.Sprintf("Failed to store analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(analysis)
}

// GetAnalyses handles GET /api/analyses
func (h *AnalysisHandler) GetAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.db.Analyses.GetAll()
	if err != nil {
		log.Printf("ERROR: Failed to get analyses: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get analyses: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(analyses)
}

// GetAnalysisByID handles GET /api/analyses/{id}
func (h *AnalysisHandler) GetAnalysisByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.analysisID(w, r)
	if !ok {
		return
	}

	analysis, err := h.db.Analyses.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get analysis %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(analysis)
}

// ConfirmAnalysis handles POST /api/analyses/{id}/confirm
func (h *AnalysisHandler) ConfirmAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := h.analysisID(w, r)
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.JobRef <= 0 {
		http.Error(w, "Job reference is required", http.StatusBadRequest)
		return
	}

	if err := h.db.Analyses.Confirm(id, req.JobRef); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to confirm analysis %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to confirm analysis: %v", err), http.StatusInternalServerError)
		return
	}

	analysis, err := h.db.Analyses.GetByID(id)
	if err != nil {
		log.Printf("ERROR: Failed to get analysis %d after confirm: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(analysis)
}

// RejectAnalysis handles POST /api/analyses/{id}/reject
func (h *AnalysisHandler) RejectAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := h.analysisID(w, r)
	if !ok {
		return
	}

	if err := h.db.Analyses.Reject(id); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to reject analysis %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to reject analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReanalyzeAnalysis handles POST /api/analyses/{id}/reanalyze. A recent run
// blocks the request unless ?force=true is given.
func (h *AnalysisHandler) ReanalyzeAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := h.analysisID(w, r)
	if !ok {
		return
	}

	analysis, err := h.db.Analyses.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get analysis %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get analysis: %v", err), http.StatusInternalServerError)
		return
	}

	isForced := r.URL.Query().Get("force") == "true"
	if limit := ratelimit.CheckReanalysisRateLimit(h.config, analysis.LastReanalyzedAt, isForced); limit.ShouldBlock {
		http.Error(w, fmt.Sprintf("Reanalysis rate limited, retry in %v", limit.RemainingTime.Round(time.Second)),
			http.StatusTooManyRequests)
		return
	}

	pool, err := h.db.LoadPool()
	if err != nil {
		log.Printf("ERROR: Failed to load job pool: %v", err)
		http.Error(w, fmt.Sprintf("Failed to load job pool: %v", err), http.StatusInternalServerError)
		return
	}

	result := h.analyzer.Analyze(analysis.RawText, pool)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("ERROR: Failed to serialize analysis: %v", err)
		http.Error(w, "Failed to serialize analysis", http.StatusInternalServerError)
		return
	}

	if err := h.db.Analyses.UpdateResult(id, resultJSON); err != nil {
		log.Printf("ERROR: Failed to store reanalysis result for %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to store result: %v", err), http.StatusInternalServerError)
		return
	}

	updated, err := h.db.Analyses.GetByID(id)
	if err != nil {
		log.Printf("ERROR: Failed to get analysis %d after reanalysis: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(updated)
}

// DeleteAnalysis handles DELETE /api/analyses/{id}
func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := h.analysisID(w, r)
	if !ok {
		return
	}

	if err := h.db.Analyses.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete analysis: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// analysisID parses the {id} path parameter, writing a 400 on failure
func (h *AnalysisHandler) analysisID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid analysis ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
