package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"invoice-matching/internal/database"
)

// Client represents an HTTP client for the invoice matching API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client with the default timeout
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 30*time.Second)
}

// NewClientWithTimeout creates a new API client with a custom timeout
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError represents an error from the API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// AnalyzeRequest represents a request to analyze invoice text
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// ConfirmRequest represents a request to confirm an analysis against a job
type ConfirmRequest struct {
	JobRef int `json:"job_ref"`
}

// CreateJobRequest represents a request to register a job
type CreateJobRequest struct {
	JobRef            int    `json:"job_ref"`
	JobType           string `json:"job_type"`
	BookingDate       string `json:"booking_date,omitempty"`
	ContainerNumber   string `json:"container_number,omitempty"`
	CustomerReference string `json:"customer_reference,omitempty"`
	AgentReference    string `json:"agent_reference,omitempty"`
	Weight            string `json:"weight,omitempty"`
	VesselName        string `json:"vessel_name,omitempty"`
	CustomerID        int    `json:"customer_id,omitempty"`
}

// doRequest performs an HTTP request and handles errors
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// Handle API errors
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()

		message := resp.Status
		if data, err := io.ReadAll(resp.Body); err == nil && len(data) > 0 {
			message = strings.TrimSpace(string(data))
		}
		return nil, &APIError{Code: resp.StatusCode, Message: message}
	}

	return resp, nil
}

// HealthCheck checks if the API server is healthy
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// CreateAnalysis submits raw invoice text for analysis
func (c *Client) CreateAnalysis(text string) (*database.Analysis, error) {
	resp, err := c.doRequest("POST", "/api/analyses", &AnalyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var analysis database.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &analysis, nil
}

// GetAnalyses returns all stored analyses
func (c *Client) GetAnalyses() ([]database.Analysis, error) {
	resp, err := c.doRequest("GET", "/api/analyses", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var analyses []database.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analyses); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return analyses, nil
}

// GetAnalysis returns a specific analysis by ID
func (c *Client) GetAnalysis(id int) (*database.Analysis, error) {
	path := "/api/analyses/" + strconv.Itoa(id)
	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var analysis database.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &analysis, nil
}

// ConfirmAnalysis records the job reference an analysis belongs to
func (c *Client) ConfirmAnalysis(id, jobRef int) (*database.Analysis, error) {
	path := "/api/analyses/" + strconv.Itoa(id) + "/confirm"
	resp, err := c.doRequest("POST", path, &ConfirmRequest{JobRef: jobRef})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var analysis database.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &analysis, nil
}

// ReanalyzeAnalysis re-runs matching for a stored analysis
func (c *Client) ReanalyzeAnalysis(id int, force bool) (*database.Analysis, error) {
	path := "/api/analyses/" + strconv.Itoa(id) + "/reanalyze"
	if force {
		path += "?force=true"
	}

	resp, err := c.doRequest("POST", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var analysis database.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &analysis, nil
}

// RejectAnalysis clears a previous confirmation
func (c *Client) RejectAnalysis(id int) error {
	path := "/api/analyses/" + strconv.Itoa(id) + "/reject"
	resp, err := c.doRequest("POST", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// DeleteAnalysis deletes an analysis
func (c *Client) DeleteAnalysis(id int) error {
	path := "/api/analyses/" + strconv.Itoa(id)
	resp, err := c.doRequest("DELETE", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// GetJobs returns all jobs, optionally filtered by type
func (c *Client) GetJobs(jobType string) ([]database.Job, error) {
	path := "/api/jobs"
	if jobType != "" {
		path += "?type=" + jobType
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var jobs []database.Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return jobs, nil
}

// CreateJob registers a new job
func (c *Client) CreateJob(req *CreateJobRequest) (*database.Job, error) {
	resp, err := c.doRequest("POST", "/api/jobs", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var job database.Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &job, nil
}

// GetCustomers returns all customers
func (c *Client) GetCustomers() ([]database.Customer, error) {
	resp, err := c.doRequest("GET", "/api/customers", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var customers []database.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customers); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return customers, nil
}

// CreateCustomer registers a new customer
func (c *Client) CreateCustomer(companyName string) (*database.Customer, error) {
	resp, err := c.doRequest("POST", "/api/customers", &database.Customer{CompanyName: companyName})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var customer database.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &customer, nil
}

// GetProviders returns all service providers, optionally filtered by kind
func (c *Client) GetProviders(kind string) ([]database.ServiceProvider, error) {
	path := "/api/providers"
	if kind != "" {
		path += "?kind=" + kind
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var providers []database.ServiceProvider
	if err := json.NewDecoder(resp.Body).Decode(&providers); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return providers, nil
}

// CreateProvider registers a new service provider
func (c *Client) CreateProvider(name, kind string) (*database.ServiceProvider, error) {
	resp, err := c.doRequest("POST", "/api/providers", &database.ServiceProvider{Name: name, Kind: kind})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var provider database.ServiceProvider
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &provider, nil
}
