package cmd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cliapi "invoice-matching/internal/cli"
	"invoice-matching/internal/database"
)

func testCLIConfig() *cliapi.Config {
	cfg := cliapi.DefaultConfig()
	cfg.NoColor = true
	return cfg
}

func sampleAnalyses() []database.Analysis {
	ref := 45231
	return []database.Analysis{
		{
			ID: 1,
			Result: json.RawMessage(`{
				"is_credit_note": false,
				"extracted": {"is_credit_note": false, "supplier_name": "Swift Clearance Services", "invoice_numbers": ["INV-88421"], "amounts": {}},
				"matches": [{"job_ref": 45231, "job_type": "import", "confidence": 0.95, "matched_fields": []}],
				"raw_text": ""
			}`),
			CreatedAt: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:              2,
			Result:          json.RawMessage(`{"is_credit_note":false,"extracted":{"is_credit_note":false,"amounts":{}},"matches":[],"raw_text":""}`),
			ConfirmedJobRef: &ref,
			CreatedAt:       time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestAnalysesToRows(t *testing.T) {
	rows := analysesToRows(sampleAnalyses())
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "Swift Clearance Services", rows[0][1])
	assert.Equal(t, "INV-88421", rows[0][2])
	assert.Equal(t, "45231", rows[0][3])
	assert.Equal(t, "0.95", rows[0][4])
	assert.Equal(t, "unconfirmed", rows[0][5])
	assert.Equal(t, "2024-06-15", rows[0][6])

	assert.Equal(t, "-", rows[1][3])
	assert.Equal(t, "confirmed (45231)", rows[1][5])
}

func TestDecodeStoredResult(t *testing.T) {
	analyses := sampleAnalyses()

	result := decodeStoredResult(&analyses[0])
	require.NotNil(t, result)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 45231, result.Matches[0].JobRef)

	assert.Nil(t, decodeStoredResult(&database.Analysis{}))
	assert.Nil(t, decodeStoredResult(&database.Analysis{Result: json.RawMessage(`{{`)}))
}

func TestReviewTableRemoveAnalysis(t *testing.T) {
	model := NewReviewTable(sampleAnalyses(), nil, testCLIConfig())

	updated := model.removeAnalysis(1)
	require.Len(t, updated.analyses, 1)
	assert.Equal(t, 2, updated.analyses[0].ID)
}

func TestReviewTableReplaceAnalysis(t *testing.T) {
	model := NewReviewTable(sampleAnalyses(), nil, testCLIConfig())

	ref := 45299
	updated := model.replaceAnalysis(&database.Analysis{ID: 1, ConfirmedJobRef: &ref, CreatedAt: time.Now()})
	require.NotNil(t, updated.analyses[0].ConfirmedJobRef)
	assert.Equal(t, 45299, *updated.analyses[0].ConfirmedJobRef)
}
