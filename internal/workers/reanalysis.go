package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"invoice-matching/internal/config"
	"invoice-matching/internal/database"
	"invoice-matching/internal/matching"
	"invoice-matching/internal/ratelimit"
)

// ReanalysisWorker periodically re-runs matching for analyses that have not
// been confirmed against a job yet. New jobs are booked continuously, so an
// invoice that found no candidate yesterday may find one today.
type ReanalysisWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	config   *config.Config
	db       *database.DB
	analyzer *matching.Analyzer
	paused   atomic.Bool
	logger   *slog.Logger
}

// NewReanalysisWorker creates a new reanalysis worker
func NewReanalysisWorker(cfg *config.Config, db *database.DB, logger *slog.Logger) *ReanalysisWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReanalysisWorker{
		ctx:      ctx,
		cancel:   cancel,
		config:   cfg,
		db:       db,
		analyzer: matching.NewAnalyzer(&matching.AnalyzerConfig{MaxTextLength: cfg.MaxTextLength}),
		logger:   logger,
	}
}

// Start begins the background reanalysis process
func (w *ReanalysisWorker) Start() {
	if !w.config.ReanalysisEnabled {
		w.logger.Info("Reanalysis is disabled, skipping background runs")
		return
	}

	w.logger.Info("Starting reanalysis worker",
		"interval", w.config.ReanalysisInterval,
		"batch_size", w.config.ReanalysisBatchSize)

	go w.runLoop()
}

// Stop gracefully stops the background reanalysis process
func (w *ReanalysisWorker) Stop() {
	w.logger.Info("Stopping reanalysis worker")
	w.cancel()
}

// Pause temporarily pauses reanalysis runs
func (w *ReanalysisWorker) Pause() {
	w.paused.Store(true)
	w.logger.Info("Reanalysis worker paused")
}

// Resume resumes reanalysis runs
func (w *ReanalysisWorker) Resume() {
	w.paused.Store(false)
	w.logger.Info("Reanalysis worker resumed")
}

// IsPaused returns true if the worker is currently paused
func (w *ReanalysisWorker) IsPaused() bool {
	return w.paused.Load()
}

// IsRunning returns true if the worker has not been stopped
func (w *ReanalysisWorker) IsRunning() bool {
	select {
	case <-w.ctx.Done():
		return false
	default:
		return true
	}
}

// runLoop is the main background loop that performs periodic reanalysis
func (w *ReanalysisWorker) runLoop() {
	ticker := time.NewTicker(w.config.ReanalysisInterval)
	defer ticker.Stop()

	// Perform initial run after a short delay
	initialDelay := time.NewTimer(30 * time.Second)
	defer initialDelay.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("Reanalysis worker stopped")
			return

		case <-initialDelay.C:
			w.performReanalysis()

		case <-ticker.C:
			w.performReanalysis()
		}
	}
}

// performReanalysis re-runs matching for one batch of unconfirmed analyses
func (w *ReanalysisWorker) performReanalysis() {
	if w.paused.Load() {
		w.logger.Debug("Reanalysis paused, skipping cycle")
		return
	}

	startTime := time.Now()

	analyses, err := w.db.Analyses.GetUnconfirmed(w.config.ReanalysisBatchSize)
	if err != nil {
		w.logger.Error("Failed to fetch unconfirmed analyses", "error", err)
		return
	}
	if len(analyses) == 0 {
		w.logger.Debug("No unconfirmed analyses to reprocess")
		return
	}

	pool, err := w.db.LoadPool()
	if err != nil {
		w.logger.Error("Failed to load job pool", "error", err)
		return
	}

	updated := 0
	for _, analysis := range analyses {
		if limit := ratelimit.CheckReanalysisRateLimit(w.config, analysis.LastReanalyzedAt, false); limit.ShouldBlock {
			w.logger.Debug("Analysis within reanalysis cooldown, skipping",
				"analysis_id", analysis.ID, "remaining", limit.RemainingTime)
			continue
		}

		result := w.analyzer.Analyze(analysis.RawText, pool)

		resultJSON, err := json.Marshal(result)
		if err != nil {
			w.logger.Error("Failed to serialize reanalysis result",
				"analysis_id", analysis.ID, "error", err)
			continue
		}

		if err := w.db.Analyses.UpdateResult(analysis.ID, resultJSON); err != nil {
			w.logger.Error("Failed to store reanalysis result",
				"analysis_id", analysis.ID, "error", err)
			continue
		}
		updated++
	}

	w.logger.Info("Completed reanalysis cycle",
		"analyses", len(analyses),
		"updated", updated,
		"duration", time.Since(startTime))
}
