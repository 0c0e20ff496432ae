package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-matching/internal/database"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very ...", truncate("a very long value", 10))
}

func TestAnalysisStatus(t *testing.T) {
	analysis := &database.Analysis{}
	assert.Equal(t, "unconfirmed", analysisStatus(analysis))

	ref := 45231
	analysis.ConfirmedJobRef = &ref
	assert.Equal(t, "confirmed (45231)", analysisStatus(analysis))
}

func TestDecodeResult(t *testing.T) {
	analysis := &database.Analysis{
		Result: json.RawMessage(`{"is_credit_note":false,"extracted":{"supplier_name":"Swift Clearance Services","is_credit_note":false,"amounts":{}},"matches":[{"job_ref":45231,"job_type":"import","confidence":0.95,"matched_fields":[]}],"raw_text":""}`),
	}

	result := decodeResult(analysis)
	require.NotNil(t, result)
	assert.Equal(t, "Swift Clearance Services", result.Extracted.SupplierName)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 45231, result.Matches[0].JobRef)
}

func TestDecodeResultHandlesGarbage(t *testing.T) {
	assert.Nil(t, decodeResult(&database.Analysis{Result: json.RawMessage(`not json`)}))
	assert.Nil(t, decodeResult(&database.Analysis{}))
}
