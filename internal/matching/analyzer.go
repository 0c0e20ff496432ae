package matching

// Analyzer orchestrates the full pipeline: normalize the OCR text, extract
// every entity family, resolve the invoice date, narrow the job pool, build
// the search index, and fuzzy-match. Each analysis builds its index fresh
// and shares no state, so one Analyzer is safe to use concurrently for
// independent documents.
type Analyzer struct {
	config *AnalyzerConfig
}

// AnalyzerConfig bounds the work done per document.
type AnalyzerConfig struct {
	// MaxTextLength caps how much OCR text is scanned; pathological
	// documents (very long, highly repetitive) otherwise drive worst-case
	// cost in the fuzzy reference fallback.
	MaxTextLength int
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(config *AnalyzerConfig) *Analyzer {
	if config == nil {
		config = &AnalyzerConfig{}
	}
	if config.MaxTextLength == 0 {
		config.MaxTextLength = 100000
	}
	return &Analyzer{config: config}
}

// Analyze runs the full extraction-and-matching pipeline over one OCR
// document against a snapshot of candidate job records. It never fails: a
// document yielding nothing produces an analysis with empty entities and
// zero matches.
func (a *Analyzer) Analyze(rawText string, pool *JobPool) *InvoiceAnalysis {
	if len(rawText) > a.config.MaxTextLength {
		rawText = rawText[:a.config.MaxTextLength]
	}

	corrected := CorrectOCRText(rawText)

	companies := ExtractCompanyNames(corrected, pool.ProviderNames())

	entities := ExtractedEntities{
		IsCreditNote:       DetectCreditNote(corrected),
		JobReferences:      ExtractJobReferences(corrected),
		ContainerNumbers:   ExtractContainerNumbers(corrected),
		TruckNumbers:       ExtractTruckNumbers(corrected),
		CustomerReferences: ExtractCustomerReferences(corrected),
		CompanyNames:       companies.Companies,
		Weights:            ExtractWeights(corrected),
		InvoiceNumbers:     ExtractInvoiceNumbers(corrected),
		Dates:              ExtractDates(corrected),
		SupplierName:       companies.SupplierName,
		CustomerName:       companies.CustomerName,
		Amounts:            ExtractAmounts(corrected),
		RawText:            corrected,
	}

	invoiceDate, haveDate := ResolveInvoiceDate(entities.Dates)
	jobs := FilterJobsByDate(pool.AllJobs(), invoiceDate, haveDate)
	index := BuildSearchIndex(jobs, pool.Customers)
	matches := MatchJobs(corrected, index)
	if matches == nil {
		matches = []MatchCandidate{}
	}

	return &InvoiceAnalysis{
		IsCreditNote: entities.IsCreditNote,
		Extracted:    entities,
		Matches:      matches,
		RawText:      rawText,
	}
}
