package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"invoice-matching/internal/config"
	"invoice-matching/internal/database"
	"invoice-matching/internal/server"
	"invoice-matching/internal/workers"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialized at %s", cfg.DBPath)

	// Start the background reanalysis worker
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	worker := workers.NewReanalysisWorker(cfg, db, logger)
	worker.Start()
	defer worker.Stop()

	// Create router with middleware
	handler := server.Chain(
		server.NewRouter(db, cfg),
		server.LoggingMiddleware,
		server.RecoveryMiddleware,
		server.CORSMiddleware,
		server.ContentTypeMiddleware,
		server.SecurityMiddleware,
	)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: handler,

		// Timeouts
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle server startup and graceful shutdown
	shutdownTimeout := 30 * time.Second
	if err := server.HandleSignals(srv, shutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
