package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"invoice-matching/internal/database"

	"github.com/go-chi/chi/v5"
)

// JobHandler handles HTTP requests for jobs and the reference data
// (customers, service providers) the matcher resolves against
type JobHandler struct {
	db *database.DB
}

// NewJobHandler creates a new job handler
func NewJobHandler(db *database.DB) *JobHandler {
	return &JobHandler{db: db}
}

// GetJobs handles GET /api/jobs, optionally filtered by ?type=
func (h *JobHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	var jobs []database.Job
	var err error

	if jobType := r.URL.Query().Get("type"); jobType != "" {
		if !validJobType(jobType) {
			http.Error(w, "Invalid job type", http.StatusBadRequest)
			return
		}
		jobs, err = h.db.Jobs.GetByType(jobType)
	} else {
		jobs, err = h.db.Jobs.GetAll()
	}

	if err != nil {
		log.Printf("ERROR: Failed to get jobs: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get jobs: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jobs)
}

// CreateJob handles POST /api/jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var job database.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		log.Printf("ERROR: Invalid JSON in CreateJob: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateJob(&job); err != nil {
		log.Printf("ERROR: Validation failed for job: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.Jobs.Create(&job); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Printf("ERROR: Duplicate job: %d/%s", job.JobRef, job.JobType)
			http.Error(w, "Job already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to create job: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create job: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// GetJobByID handles GET /api/jobs/{id}
func (h *JobHandler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	job, err := h.db.Jobs.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get job %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get job: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(job)
}

// UpdateJob handles PUT /api/jobs/{id}
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var job database.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateJob(&job); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.db.Jobs.Update(id, &job); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to update job %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to update job: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(job)
}

// DeleteJob handles DELETE /api/jobs/{id}
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	if err := h.db.Jobs.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete job: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCustomers handles GET /api/customers
func (h *JobHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.db.Customers.GetAll()
	if err != nil {
		log.Printf("ERROR: Failed to get customers: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get customers: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customers)
}

// CreateCustomer handles POST /api/customers
func (h *JobHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer database.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if customer.CompanyName == "" {
		http.Error(w, "Company name is required", http.StatusBadRequest)
		return
	}

	if err := h.db.Customers.Create(&customer); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			http.Error(w, "Customer already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to create customer: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create customer: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

// GetProviders handles GET /api/providers, optionally filtered by ?kind=
func (h *JobHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	var providers []database.ServiceProvider
	var err error

	if kind := r.URL.Query().Get("kind"); kind != "" {
		providers, err = h.db.Providers.GetByKind(kind)
	} else {
		providers, err = h.db.Providers.GetAll()
	}

	if err != nil {
		log.Printf("ERROR: Failed to get providers: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get providers: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(providers)
}

// CreateProvider handles POST /api/providers
func (h *JobHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var provider database.ServiceProvider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.db.Providers.Create(&provider); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			http.Error(w, "Provider already exists", http.StatusConflict)
			return
		}
		if strings.Contains(err.Error(), "invalid provider kind") ||
			strings.Contains(err.Error(), "name is required") {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("ERROR: Failed to create provider: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create provider: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(provider)
}

// validateJob validates job data
func validateJob(job *database.Job) error {
	if job.JobRef <= 0 {
		return fmt.Errorf("job reference is required")
	}
	if job.JobType == "" {
		return fmt.Errorf("job type is required")
	}
	if !validJobType(job.JobType) {
		return fmt.Errorf("invalid job type: %s (must be one of: import, export, clearance)", job.JobType)
	}
	return nil
}

// validJobType checks the job type against the known families
func validJobType(jobType string) bool {
	switch jobType {
	case "import", "export", "clearance":
		return true
	}
	return false
}

// jobID parses the {id} path parameter, writing a 400 on failure
func jobID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
