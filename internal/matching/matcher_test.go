package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreNameMatch(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		text     string
		expected float64
	}{
		{
			name:     "Verbatim appearance",
			company:  "Oceanic Imports Ltd",
			text:     "invoice from Oceanic Imports Ltd today",
			expected: 1.0,
		},
		{
			name:     "All words scattered",
			company:  "Oceanic Imports Ltd",
			text:     "imports division of oceanic group ltd",
			expected: 0.95,
		},
		{
			name:     "Partial overlap",
			company:  "Oceanic Imports Ltd",
			text:     "oceanic cargo services",
			expected: 1.0 / 3.0,
		},
		{
			name:     "No overlap",
			company:  "Oceanic Imports Ltd",
			text:     "completely unrelated text",
			expected: 0,
		},
		{
			name:     "Empty name",
			company:  "",
			text:     "anything",
			expected: 0,
		},
		{
			name:     "Case insensitive",
			company:  "ACME",
			text:     "billed by acme directly",
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ScoreNameMatch(tt.company, tt.text), 0.0001)
		})
	}
}

func TestFindFuzzyReferenceMatch(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		text      string
		expected  bool
	}{
		{
			name:      "Exact substring",
			reference: "ABC123",
			text:      "xxABC123yy",
			expected:  true,
		},
		{
			name:      "One substitution away",
			reference: "ABC123",
			text:      "xxABX123yy",
			expected:  true,
		},
		{
			name:      "Two substitutions away",
			reference: "ABC123",
			text:      "xxAXX123yy",
			expected:  false,
		},
		{
			name:      "Short reference never fuzzy matches",
			reference: "ABCD",
			text:      "xxABCDyy",
			expected:  false,
		},
		{
			name:      "Reference longer than text",
			reference: "ABC123",
			text:      "AB",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindFuzzyReferenceMatch(tt.reference, tt.text))
		})
	}
}

func TestDedupeByFieldType(t *testing.T) {
	fields := []MatchEvidence{
		{Field: "Company: Customer", Value: "Oceanic", Score: 0.8},
		{Field: "Company: Supplier", Value: "Oceanic Imports Ltd", Score: 1.0},
		{Field: "Weight", Value: "1200", Score: 0.9},
	}

	deduped := dedupeByFieldType(fields)

	require.Len(t, deduped, 2)
	assert.Equal(t, "Company: Supplier", deduped[0].Field)
	assert.Equal(t, 1.0, deduped[0].Score)
	assert.Equal(t, "Weight", deduped[1].Field)
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected float64
	}{
		{name: "Single field", scores: []float64{0.7}, expected: 0.7},
		{name: "Two fields boost ten percent", scores: []float64{0.7, 0.7}, expected: 0.77},
		{name: "Clamped at one", scores: []float64{1.0, 1.0, 1.0}, expected: 1.0},
		{name: "No evidence", scores: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []MatchEvidence
			for _, s := range tt.scores {
				fields = append(fields, MatchEvidence{Score: s})
			}
			assert.InDelta(t, tt.expected, confidenceScore(fields), 0.0001)
		})
	}
}

func TestMatchJobs_StrongCandidate(t *testing.T) {
	jobs := []JobRecord{{
		JobRef:          45231,
		JobType:         JobTypeImport,
		ContainerNumber: "MSCU1234567",
		Weight:          "1200",
		CustomerID:      7,
	}}
	customers := []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}}
	idx := BuildSearchIndex(jobs, customers)

	text := "Invoice for Oceanic Imports Ltd\n" +
		"Job Ref: 45231\n" +
		"Container: MSCU 1234567\n" +
		"Gross Weight: 1200 kg\n"

	candidates := MatchJobs(text, idx)

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, 45231, c.JobRef)
	assert.Equal(t, JobTypeImport, c.JobType)
	assert.Equal(t, "Oceanic Imports Ltd", c.CustomerName)
	assert.InDelta(t, 1.0, c.Confidence, 0.0001)
	assert.Len(t, c.MatchedFields, 4)
}

func TestMatchJobs_InsufficientEvidenceIsDropped(t *testing.T) {
	jobs := []JobRecord{{
		JobRef:          45231,
		JobType:         JobTypeImport,
		ContainerNumber: "MSCU1234567",
	}}
	idx := BuildSearchIndex(jobs, nil)

	// Container and job reference only: two field families is not enough.
	text := "Job 45231 container MSCU1234567"

	assert.Empty(t, MatchJobs(text, idx))
}

func TestMatchJobs_FuzzyReferenceScoresLower(t *testing.T) {
	jobs := []JobRecord{{
		JobRef:          45231,
		JobType:         JobTypeImport,
		ContainerNumber: "ABCD1234567",
		CustomerID:      7,
	}}
	customers := []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}}
	idx := BuildSearchIndex(jobs, customers)

	// One digit of the container is misread.
	text := "Oceanic Imports Ltd job 45231 unit ABCD1234561"

	candidates := MatchJobs(text, idx)

	require.Len(t, candidates, 1)
	var containerScore float64
	for _, f := range candidates[0].MatchedFields {
		if f.Field == "Container Number" {
			containerScore = f.Score
		}
	}
	assert.InDelta(t, 0.95, containerScore, 0.0001)
}

func TestMatchJobs_WhitespaceInTextDoesNotDefeatCodes(t *testing.T) {
	jobs := []JobRecord{{
		JobRef:            45231,
		JobType:           JobTypeImport,
		CustomerReference: "PO-7781",
		ContainerNumber:   "MSCU1234567",
	}}
	idx := BuildSearchIndex(jobs, nil)

	text := "ref PO - 7781 job 4 5231 container MS CU 1234567"

	candidates := MatchJobs(text, idx)

	require.Len(t, candidates, 1)
	for _, f := range candidates[0].MatchedFields {
		assert.InDelta(t, 1.0, f.Score, 0.0001)
	}
}

func TestMatchJobs_TiesBreakOnJobRef(t *testing.T) {
	jobs := []JobRecord{
		{JobRef: 45232, JobType: JobTypeImport, ContainerNumber: "ABCD1234567", Weight: "1200", CustomerID: 7},
		{JobRef: 45231, JobType: JobTypeImport, ContainerNumber: "ABCD1234567", Weight: "1200", CustomerID: 7},
	}
	customers := []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}}
	idx := BuildSearchIndex(jobs, customers)

	text := "Oceanic Imports Ltd container ABCD1234567 weight 1200 kg"

	candidates := MatchJobs(text, idx)

	require.Len(t, candidates, 2)
	assert.InDelta(t, candidates[0].Confidence, candidates[1].Confidence, 0.0001)
	assert.Equal(t, 45231, candidates[0].JobRef)
	assert.Equal(t, 45232, candidates[1].JobRef)
}

func TestMatchJobs_EmptyIndex(t *testing.T) {
	idx := BuildSearchIndex(nil, nil)
	assert.Empty(t, MatchJobs("any text at all 45231", idx))
}
