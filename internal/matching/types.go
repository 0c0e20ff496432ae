package matching

import (
	"github.com/shopspring/decimal"
)

// JobType identifies which family of job record a candidate belongs to.
type JobType string

const (
	JobTypeImport    JobType = "import"
	JobTypeExport    JobType = "export"
	JobTypeClearance JobType = "clearance"
)

// JobRecord is a read-only snapshot of an internal shipment or customs
// clearance job supplied by the caller. The engine never mutates it.
type JobRecord struct {
	JobRef            int     `json:"job_ref"`
	JobType           JobType `json:"job_type"`
	BookingDate       string  `json:"booking_date,omitempty"`
	ContainerNumber   string  `json:"container_number,omitempty"`
	CustomerReference string  `json:"customer_reference,omitempty"`
	AgentReference    string  `json:"agent_reference,omitempty"`
	Weight            string  `json:"weight,omitempty"`
	VesselName        string  `json:"vessel_name,omitempty"`
	CustomerID        int     `json:"customer_id,omitempty"`
}

// CustomerRecord links a customer id stored on a JobRecord to a company name.
type CustomerRecord struct {
	ID          int    `json:"id"`
	CompanyName string `json:"company_name"`
}

// ServiceProviderRecord is a clearance agent, haulier or shipping line.
// Provider names are used only to correct noisy supplier-name extraction.
type ServiceProviderRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// JobPool is the in-memory snapshot of candidate job records and the
// reference data needed to resolve them. It is supplied fresh per analysis.
type JobPool struct {
	Imports         []JobRecord
	Exports         []JobRecord
	Clearances      []JobRecord
	Customers       []CustomerRecord
	ClearanceAgents []ServiceProviderRecord
	Hauliers        []ServiceProviderRecord
	ShippingLines   []ServiceProviderRecord
}

// AllJobs returns every job record in the pool as a single slice.
func (p *JobPool) AllJobs() []JobRecord {
	jobs := make([]JobRecord, 0, len(p.Imports)+len(p.Exports)+len(p.Clearances))
	jobs = append(jobs, p.Imports...)
	jobs = append(jobs, p.Exports...)
	jobs = append(jobs, p.Clearances...)
	return jobs
}

// ProviderNames returns the canonical names of all service providers.
func (p *JobPool) ProviderNames() []string {
	names := make([]string, 0, len(p.ClearanceAgents)+len(p.Hauliers)+len(p.ShippingLines))
	for _, a := range p.ClearanceAgents {
		names = append(names, a.Name)
	}
	for _, h := range p.Hauliers {
		names = append(names, h.Name)
	}
	for _, s := range p.ShippingLines {
		names = append(names, s.Name)
	}
	return names
}

// AmountSet holds the monetary amounts recognised on an invoice. The three
// named totals keep only the first match per category; AllAmounts accumulates
// every valid amount seen anywhere in the text.
type AmountSet struct {
	NetTotal   *decimal.Decimal  `json:"net_total,omitempty"`
	VAT        *decimal.Decimal  `json:"vat,omitempty"`
	GrossTotal *decimal.Decimal  `json:"gross_total,omitempty"`
	AllAmounts []decimal.Decimal `json:"all_amounts,omitempty"`
}

// ExtractedEntities is the typed output of running every extractor over one
// document. It is recomputed fresh per document and never cached.
type ExtractedEntities struct {
	IsCreditNote       bool      `json:"is_credit_note"`
	JobReferences      []int     `json:"job_references,omitempty"`
	ContainerNumbers   []string  `json:"container_numbers,omitempty"`
	TruckNumbers       []string  `json:"truck_numbers,omitempty"`
	CustomerReferences []string  `json:"customer_references,omitempty"`
	CompanyNames       []string  `json:"company_names,omitempty"`
	Weights            []string  `json:"weights,omitempty"`
	InvoiceNumbers     []string  `json:"invoice_numbers,omitempty"`
	Dates              []string  `json:"dates,omitempty"`
	SupplierName       string    `json:"supplier_name,omitempty"`
	CustomerName       string    `json:"customer_name,omitempty"`
	Amounts            AmountSet `json:"amounts"`
	RawText            string    `json:"-"`
}

// MatchEvidence records a single index field that matched the document text.
type MatchEvidence struct {
	Field string  `json:"field"`
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// MatchCandidate is one ranked job record the invoice may belong to. A
// candidate is only emitted when it carries evidence from at least three
// distinct field families; Confidence is always within [0,1].
type MatchCandidate struct {
	JobRef        int             `json:"job_ref"`
	JobType       JobType         `json:"job_type"`
	Confidence    float64         `json:"confidence"`
	MatchedFields []MatchEvidence `json:"matched_fields"`
	CustomerName  string          `json:"customer_name,omitempty"`
}

// InvoiceAnalysis is the complete result of analysing one OCR document.
type InvoiceAnalysis struct {
	IsCreditNote bool              `json:"is_credit_note"`
	Extracted    ExtractedEntities `json:"extracted"`
	Matches      []MatchCandidate  `json:"matches"`
	RawText      string            `json:"raw_text"`
}
