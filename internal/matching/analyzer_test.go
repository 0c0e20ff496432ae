package matching

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EndToEnd(t *testing.T) {
	pool := &JobPool{
		Imports: []JobRecord{{
			JobRef:          45231,
			JobType:         JobTypeImport,
			BookingDate:     "01/02/2024",
			ContainerNumber: "MSCU1234567",
			Weight:          "1200",
			CustomerID:      7,
		}},
		Customers:       []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}},
		ClearanceAgents: []ServiceProviderRecord{{ID: 1, Name: "Swift Clearance Services"}},
	}

	// "0ceanic" is the classic zero-for-O OCR misread.
	text := "INVOICE\n" +
		"\n" +
		"Swift Clearance Services Ltd\n" +
		"\n" +
		"Customer:\n" +
		"0ceanic Imports Ltd\n" +
		"\n" +
		"Invoice No: INV-88421\n" +
		"Invoice Date: 15/03/2024\n" +
		"Job Ref: 45231\n" +
		"Container: MSCU 1234567\n" +
		"Gross Weight: 1200 kg\n" +
		"\n" +
		"Subtotal: 1,000.00\n" +
		"VAT: 200.00\n" +
		"Total: 1,200.00\n"

	analysis := NewAnalyzer(nil).Analyze(text, pool)

	assert.False(t, analysis.IsCreditNote)

	extracted := analysis.Extracted
	assert.Equal(t, "Swift Clearance Services", extracted.SupplierName)
	assert.Equal(t, "Oceanic Imports Ltd", extracted.CustomerName)
	assert.Contains(t, extracted.JobReferences, 45231)
	assert.Equal(t, []string{"MSCU1234567"}, extracted.ContainerNumbers)
	assert.Contains(t, extracted.Weights, "1200")
	assert.Equal(t, []string{"INV-88421"}, extracted.InvoiceNumbers)
	assert.Equal(t, []string{"15/03/2024"}, extracted.Dates)

	require.NotNil(t, extracted.Amounts.NetTotal)
	require.NotNil(t, extracted.Amounts.VAT)
	require.NotNil(t, extracted.Amounts.GrossTotal)
	assert.True(t, extracted.Amounts.NetTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, extracted.Amounts.VAT.Equal(decimal.NewFromInt(200)))
	assert.True(t, extracted.Amounts.GrossTotal.Equal(decimal.NewFromInt(1200)))

	require.Len(t, analysis.Matches, 1)
	match := analysis.Matches[0]
	assert.Equal(t, 45231, match.JobRef)
	assert.Equal(t, JobTypeImport, match.JobType)
	assert.Equal(t, "Oceanic Imports Ltd", match.CustomerName)
	assert.InDelta(t, 1.0, match.Confidence, 0.0001)
	assert.Len(t, match.MatchedFields, 4)
}

func TestAnalyze_DateWindowNarrowsCandidates(t *testing.T) {
	pool := &JobPool{
		Imports: []JobRecord{
			{JobRef: 45231, JobType: JobTypeImport, BookingDate: "01/02/2024", ContainerNumber: "ABCD1234567", Weight: "1200", CustomerID: 7},
			{JobRef: 45299, JobType: JobTypeImport, BookingDate: "01/09/2023", ContainerNumber: "ABCD1234567", Weight: "1200", CustomerID: 7},
		},
		Customers: []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}},
	}

	text := "Oceanic Imports Ltd\n" +
		"Invoice Date: 15/03/2024\n" +
		"Container ABCD1234567 at 1200 kg\n"

	analysis := NewAnalyzer(nil).Analyze(text, pool)

	require.Len(t, analysis.Matches, 1)
	assert.Equal(t, 45231, analysis.Matches[0].JobRef)
}

func TestAnalyze_CreditNote(t *testing.T) {
	text := "CREDIT NOTE\nRefund for overcharge on job 45231\n"

	analysis := NewAnalyzer(nil).Analyze(text, &JobPool{})

	assert.True(t, analysis.IsCreditNote)
	assert.True(t, analysis.Extracted.IsCreditNote)
	assert.NotNil(t, analysis.Matches)
	assert.Empty(t, analysis.Matches)
}

func TestAnalyze_EmptyText(t *testing.T) {
	analysis := NewAnalyzer(nil).Analyze("", &JobPool{})

	assert.False(t, analysis.IsCreditNote)
	assert.Empty(t, analysis.Extracted.JobReferences)
	assert.Empty(t, analysis.Extracted.ContainerNumbers)
	assert.NotNil(t, analysis.Matches)
	assert.Empty(t, analysis.Matches)
}

func TestAnalyze_TruncatesOversizedInput(t *testing.T) {
	analyzer := NewAnalyzer(&AnalyzerConfig{MaxTextLength: 10})

	analysis := analyzer.Analyze(strings.Repeat("a", 50), &JobPool{})

	assert.Len(t, analysis.RawText, 10)
}

func TestNewAnalyzer_Defaults(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	assert.Equal(t, 100000, analyzer.config.MaxTextLength)
}
