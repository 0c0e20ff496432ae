package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Provider kinds stored in service_providers.kind.
const (
	ProviderKindClearanceAgent = "clearance_agent"
	ProviderKindHaulier        = "haulier"
	ProviderKindShippingLine   = "shipping_line"
)

type Job struct {
	ID                int       `json:"id"`
	JobRef            int       `json:"job_ref"`
	JobType           string    `json:"job_type"`
	BookingDate       string    `json:"booking_date,omitempty"`
	ContainerNumber   string    `json:"container_number,omitempty"`
	CustomerReference string    `json:"customer_reference,omitempty"`
	AgentReference    string    `json:"agent_reference,omitempty"`
	Weight            string    `json:"weight,omitempty"`
	VesselName        string    `json:"vessel_name,omitempty"`
	CustomerID        int       `json:"customer_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Customer struct {
	ID          int       `json:"id"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type ServiceProvider struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// JobStore handles database operations for jobs
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const jobColumns = `id, job_ref, job_type, booking_date, container_number,
		customer_reference, agent_reference, weight, vessel_name,
		customer_id, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (Job, error) {
	var job Job
	var bookingDate, container, customerRef, agentRef, weight, vessel sql.NullString
	var customerID sql.NullInt64

	err := row.Scan(&job.ID, &job.JobRef, &job.JobType, &bookingDate, &container,
		&customerRef, &agentRef, &weight, &vessel, &customerID,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return Job{}, err
	}

	job.BookingDate = bookingDate.String
	job.ContainerNumber = container.String
	job.CustomerReference = customerRef.String
	job.AgentReference = agentRef.String
	job.Weight = weight.String
	job.VesselName = vessel.String
	job.CustomerID = int(customerID.Int64)
	return job, nil
}

// GetAll returns all jobs
func (s *JobStore) GetAll() ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_ref`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetByType returns all jobs of a given type
func (s *JobStore) GetByType(jobType string) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_type = ? ORDER BY job_ref`

	rows, err := s.db.Query(query, jobType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetByID returns a job by ID
func (s *JobStore) GetByID(id int) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job, err := scanJob(s.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// Create creates a new job
func (s *JobStore) Create(job *Job) error {
	query := `INSERT INTO jobs (job_ref, job_type, booking_date, container_number,
			  customer_reference, agent_reference, weight, vessel_name, customer_id)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query, job.JobRef, job.JobType, nullable(job.BookingDate),
		nullable(job.ContainerNumber), nullable(job.CustomerReference),
		nullable(job.AgentReference), nullable(job.Weight), nullable(job.VesselName),
		nullableInt(job.CustomerID))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	job.ID = int(id)

	// Get the created job to populate timestamps
	created, err := s.GetByID(job.ID)
	if err != nil {
		return err
	}

	job.CreatedAt = created.CreatedAt
	job.UpdatedAt = created.UpdatedAt

	return nil
}

// Update updates an existing job
func (s *JobStore) Update(id int, job *Job) error {
	query := `UPDATE jobs SET job_ref = ?, job_type = ?, booking_date = ?,
			  container_number = ?, customer_reference = ?, agent_reference = ?,
			  weight = ?, vessel_name = ?, customer_id = ?,
			  updated_at = CURRENT_TIMESTAMP
			  WHERE id = ?`

	result, err := s.db.Exec(query, job.JobRef, job.JobType, nullable(job.BookingDate),
		nullable(job.ContainerNumber), nullable(job.CustomerReference),
		nullable(job.AgentReference), nullable(job.Weight), nullable(job.VesselName),
		nullableInt(job.CustomerID), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	updated, err := s.GetByID(id)
	if err != nil {
		return err
	}

	*job = *updated
	return nil
}

// Delete deletes a job by ID
func (s *JobStore) Delete(id int) error {
	result, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// CustomerStore handles database operations for customers
type CustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// GetAll returns all customers
func (s *CustomerStore) GetAll() ([]Customer, error) {
	rows, err := s.db.Query(`SELECT id, company_name, created_at FROM customers ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// GetByID returns a customer by ID
func (s *CustomerStore) GetByID(id int) (*Customer, error) {
	var c Customer
	err := s.db.QueryRow(`SELECT id, company_name, created_at FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.CompanyName, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Create creates a new customer
func (s *CustomerStore) Create(customer *Customer) error {
	if customer.CompanyName == "" {
		return fmt.Errorf("company name is required")
	}

	result, err := s.db.Exec(`INSERT INTO customers (company_name) VALUES (?)`, customer.CompanyName)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	customer.ID = int(id)

	created, err := s.GetByID(customer.ID)
	if err != nil {
		return err
	}

	customer.CreatedAt = created.CreatedAt
	return nil
}

// ProviderStore handles database operations for service providers
type ProviderStore struct {
	db *sql.DB
}

func NewProviderStore(db *sql.DB) *ProviderStore {
	return &ProviderStore{db: db}
}

// GetAll returns all service providers
func (s *ProviderStore) GetAll() ([]ServiceProvider, error) {
	rows, err := s.db.Query(`SELECT id, name, kind, created_at FROM service_providers ORDER BY kind, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []ServiceProvider
	for rows.Next() {
		var p ServiceProvider
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.CreatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, rows.Err()
}

// GetByKind returns all service providers of a given kind
func (s *ProviderStore) GetByKind(kind string) ([]ServiceProvider, error) {
	rows, err := s.db.Query(`SELECT id, name, kind, created_at FROM service_providers WHERE kind = ? ORDER BY name`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []ServiceProvider
	for rows.Next() {
		var p ServiceProvider
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.CreatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, rows.Err()
}

// Create creates a new service provider
func (s *ProviderStore) Create(provider *ServiceProvider) error {
	if provider.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if err := validateProviderKind(provider.Kind); err != nil {
		return err
	}

	result, err := s.db.Exec(`INSERT INTO service_providers (name, kind) VALUES (?, ?)`,
		provider.Name, provider.Kind)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	provider.ID = int(id)
	return nil
}

// validateProviderKind checks kind against the known provider kinds
func validateProviderKind(kind string) error {
	switch kind {
	case ProviderKindClearanceAgent, ProviderKindHaulier, ProviderKindShippingLine:
		return nil
	}
	return fmt.Errorf("invalid provider kind: %s", kind)
}

// nullable converts an empty string to a NULL parameter
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullableInt converts a zero id to a NULL parameter
func nullableInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}
