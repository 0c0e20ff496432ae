package matching

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The search index is a set of normalized-key multimaps, one per matchable
// field family, built fresh from the filtered job pool for every analysis
// and discarded afterwards. Code-like identifiers (containers, job
// references, customer references) are keyed with all whitespace stripped
// and uppercased so OCR spacing artifacts never defeat an otherwise-correct
// match; free-text keys (company and vessel names) are only case-folded,
// since fuzzy scoring needs their word boundaries.

// IndexEntry ties a normalized key back to the job it came from.
type IndexEntry struct {
	JobRef  int
	JobType JobType
	Field   string
	Value   string
}

// SearchIndex holds the per-field lookup maps for one analysis call.
type SearchIndex struct {
	CompanyNames map[string][]IndexEntry
	Containers   map[string][]IndexEntry
	JobRefs      map[string][]IndexEntry
	References   map[string][]IndexEntry
	Weights      map[string][]IndexEntry
	Vessels      map[string][]IndexEntry

	customerNames map[int]string
}

// CustomerNameFor returns the company name linked to a job, if known.
func (idx *SearchIndex) CustomerNameFor(jobRef int) string {
	return idx.customerNames[jobRef]
}

// BuildSearchIndex indexes every matchable field of the supplied job
// records. Customer ids are resolved to company names through the customers
// slice.
func BuildSearchIndex(jobs []JobRecord, customers []CustomerRecord) *SearchIndex {
	idx := &SearchIndex{
		CompanyNames:  make(map[string][]IndexEntry),
		Containers:    make(map[string][]IndexEntry),
		JobRefs:       make(map[string][]IndexEntry),
		References:    make(map[string][]IndexEntry),
		Weights:       make(map[string][]IndexEntry),
		Vessels:       make(map[string][]IndexEntry),
		customerNames: make(map[int]string),
	}

	customerByID := make(map[int]string, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c.CompanyName
	}

	for _, job := range jobs {
		if name := customerByID[job.CustomerID]; name != "" {
			idx.customerNames[job.JobRef] = name
			addEntry(idx.CompanyNames, foldName(name), job, "Company: Customer", name)
		}
		if job.ContainerNumber != "" {
			addEntry(idx.Containers, normalizeCode(job.ContainerNumber), job, "Container Number", job.ContainerNumber)
		}

		jobRefStr := strconv.Itoa(job.JobRef)
		addEntry(idx.JobRefs, jobRefStr, job, "Job Reference", jobRefStr)

		if job.CustomerReference != "" {
			addEntry(idx.References, normalizeCode(job.CustomerReference), job, "Customer Reference", job.CustomerReference)
		}
		if job.AgentReference != "" {
			addEntry(idx.References, normalizeCode(job.AgentReference), job, "Agent Reference", job.AgentReference)
		}
		if job.Weight != "" {
			if key, ok := numericWeightKey(job.Weight); ok {
				addEntry(idx.Weights, key, job, "Weight", key)
			}
		}
		if job.VesselName != "" {
			addEntry(idx.Vessels, foldName(job.VesselName), job, "Vessel Name", job.VesselName)
		}
	}
	return idx
}

func addEntry(m map[string][]IndexEntry, key string, job JobRecord, field, value string) {
	if key == "" {
		return
	}
	m[key] = append(m[key], IndexEntry{
		JobRef:  job.JobRef,
		JobType: job.JobType,
		Field:   field,
		Value:   value,
	})
}

// normalizeCode strips all whitespace and uppercases a code-like identifier.
func normalizeCode(code string) string {
	return strings.ToUpper(stripWhitespace(code))
}

// foldName case-folds a free-text name, preserving its word boundaries.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// numericWeightKey canonicalises a stored weight so "1200.0" and "1200"
// index under the same key.
func numericWeightKey(weight string) (string, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(weight), ",", ""))
	if err != nil || !d.IsPositive() {
		return "", false
	}
	return d.String(), true
}
