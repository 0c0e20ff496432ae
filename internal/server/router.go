package server

import (
	"net/http"

	"invoice-matching/internal/config"
	"invoice-matching/internal/database"
	"invoice-matching/internal/handlers"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the API router with every handler registered.
func NewRouter(db *database.DB, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	health := handlers.NewHealthHandler(db)
	analyses := handlers.NewAnalysisHandler(db, cfg)
	jobs := handlers.NewJobHandler(db)

	r.Get("/api/health", health.HealthCheck)

	r.Route("/api/analyses", func(r chi.Router) {
		r.Get("/", analyses.GetAnalyses)
		r.Post("/", analyses.CreateAnalysis)
		r.Get("/{id}", analyses.GetAnalysisByID)
		r.Delete("/{id}", analyses.DeleteAnalysis)
		r.Post("/{id}/confirm", analyses.ConfirmAnalysis)
		r.Post("/{id}/reject", analyses.RejectAnalysis)
		r.Post("/{id}/reanalyze", analyses.ReanalyzeAnalysis)
	})

	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobs.GetJobs)
		r.Post("/", jobs.CreateJob)
		r.Get("/{id}", jobs.GetJobByID)
		r.Put("/{id}", jobs.UpdateJob)
		r.Delete("/{id}", jobs.DeleteJob)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", jobs.GetCustomers)
		r.Post("/", jobs.CreateCustomer)
	})

	r.Route("/api/providers", func(r chi.Router) {
		r.Get("/", jobs.GetProviders)
		r.Post("/", jobs.CreateProvider)
	})

	return r
}
