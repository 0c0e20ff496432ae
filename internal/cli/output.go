package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"invoice-matching/internal/database"
	"invoice-matching/internal/matching"
)

// OutputFormatter handles different output formats
type OutputFormatter struct {
	format   string
	quiet    bool
	useColor bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(format string, quiet bool) *OutputFormatter {
	return NewOutputFormatterWithColor(format, quiet, false)
}

// NewOutputFormatterWithColor creates a formatter with explicit color control
func NewOutputFormatterWithColor(format string, quiet, noColor bool) *OutputFormatter {
	useColor := !noColor &&
		isatty.IsTerminal(os.Stdout.Fd()) &&
		termenv.EnvColorProfile() != termenv.Ascii

	return &OutputFormatter{
		format:   format,
		quiet:    quiet,
		useColor: useColor,
	}
}

// PrintAnalyses prints a list of analyses
func (f *OutputFormatter) PrintAnalyses(analyses []database.Analysis) error {
	if f.quiet {
		for _, analysis := range analyses {
			fmt.Printf("%d\n", analysis.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(analyses)
	case "table":
		return f.printAnalysesTable(analyses)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintAnalysis prints a single analysis with its match candidates
func (f *OutputFormatter) PrintAnalysis(analysis *database.Analysis) error {
	if f.quiet {
		fmt.Printf("%d\n", analysis.ID)
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(analysis)
	case "table":
		return f.printAnalysisDetail(analysis)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintJobs prints a list of jobs
func (f *OutputFormatter) PrintJobs(jobs []database.Job) error {
	if f.quiet {
		for _, job := range jobs {
			fmt.Printf("%d\n", job.JobRef)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(jobs)
	case "table":
		return f.printJobsTable(jobs)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintJob prints a single job
func (f *OutputFormatter) PrintJob(job *database.Job) error {
	if f.quiet {
		fmt.Printf("%d\n", job.JobRef)
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(job)
	case "table":
		fmt.Printf("Job Ref: %d\n", job.JobRef)
		fmt.Printf("Type: %s\n", job.JobType)
		if job.BookingDate != "" {
			fmt.Printf("Booking Date: %s\n", job.BookingDate)
		}
		if job.ContainerNumber != "" {
			fmt.Printf("Container: %s\n", job.ContainerNumber)
		}
		if job.CustomerReference != "" {
			fmt.Printf("Customer Ref: %s\n", job.CustomerReference)
		}
		if job.VesselName != "" {
			fmt.Printf("Vessel: %s\n", job.VesselName)
		}
		if job.Weight != "" {
			fmt.Printf("Weight: %s\n", job.Weight)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintCustomers prints a list of customers
func (f *OutputFormatter) PrintCustomers(customers []database.Customer) error {
	if f.quiet {
		for _, customer := range customers {
			fmt.Printf("%d\n", customer.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(customers)
	case "table":
		if len(customers) == 0 {
			fmt.Println("No customers found.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "ID\tCOMPANY")
		for _, customer := range customers {
			fmt.Fprintf(w, "%d\t%s\n", customer.ID, customer.CompanyName)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintProviders prints a list of service providers
func (f *OutputFormatter) PrintProviders(providers []database.ServiceProvider) error {
	if f.quiet {
		for _, provider := range providers {
			fmt.Printf("%d\n", provider.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(providers)
	case "table":
		if len(providers) == 0 {
			fmt.Println("No service providers found.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "ID\tNAME\tKIND")
		for _, provider := range providers {
			fmt.Fprintf(w, "%d\t%s\t%s\n", provider.ID, provider.Name, provider.Kind)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintSuccess prints a success message
func (f *OutputFormatter) PrintSuccess(message string) {
	if !f.quiet {
		fmt.Printf("✓ %s\n", message)
	}
}

// PrintError prints an error message
func (f *OutputFormatter) PrintError(err error) {
	if !f.quiet {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
	}
}

// PrintInfo prints an informational message
func (f *OutputFormatter) PrintInfo(message string) {
	if !f.quiet {
		fmt.Printf("ℹ %s\n", message)
	}
}

// printAnalysesTable prints analyses in table format
func (f *OutputFormatter) printAnalysesTable(analyses []database.Analysis) error {
	if len(analyses) == 0 {
		fmt.Println("No analyses found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	// Header
	fmt.Fprintln(w, "ID\tSUPPLIER\tINVOICE\tTOP MATCH\tCONFIDENCE\tSTATUS\tCREATED")

	// Data
	for i := range analyses {
		analysis := &analyses[i]
		result := decodeResult(analysis)

		supplier, invoiceNo := "", ""
		topMatch, confidence := "-", "-"
		if result != nil {
			supplier = result.Extracted.SupplierName
			if len(result.Extracted.InvoiceNumbers) > 0 {
				invoiceNo = result.Extracted.InvoiceNumbers[0]
			}
			if len(result.Matches) > 0 {
				topMatch = fmt.Sprintf("%d", result.Matches[0].JobRef)
				confidence = fmt.Sprintf("%.2f", result.Matches[0].Confidence)
			}
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			analysis.ID,
			truncate(supplier, 25),
			truncate(invoiceNo, 15),
			topMatch,
			confidence,
			analysisStatus(analysis),
			analysis.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

// printAnalysisDetail prints a single analysis in detail format
func (f *OutputFormatter) printAnalysisDetail(analysis *database.Analysis) error {
	fmt.Printf("Analysis ID: %d\n", analysis.ID)
	fmt.Printf("Status: %s\n", analysisStatus(analysis))
	fmt.Printf("Credit Note: %v\n", analysis.IsCreditNote)
	fmt.Printf("Created: %s\n", analysis.CreatedAt.Format("2006-01-02 15:04:05"))

	if analysis.LastReanalyzedAt != nil {
		fmt.Printf("Last Reanalyzed: %s (%d runs)\n",
			analysis.LastReanalyzedAt.Format("2006-01-02 15:04:05"),
			analysis.ReanalysisCount)
	}

	result := decodeResult(analysis)
	if result == nil {
		return nil
	}

	if result.Extracted.SupplierName != "" {
		fmt.Printf("Supplier: %s\n", result.Extracted.SupplierName)
	}
	if result.Extracted.CustomerName != "" {
		fmt.Printf("Customer: %s\n", result.Extracted.CustomerName)
	}
	if len(result.Extracted.InvoiceNumbers) > 0 {
		fmt.Printf("Invoice Numbers: %s\n", strings.Join(result.Extracted.InvoiceNumbers, ", "))
	}
	if result.Extracted.Amounts.GrossTotal != nil {
		fmt.Printf("Gross Total: %s\n", result.Extracted.Amounts.GrossTotal.String())
	}

	fmt.Println()
	f.PrintMatches(result.Matches)
	return nil
}

// PrintMatches prints ranked match candidates
func (f *OutputFormatter) PrintMatches(matches []matching.MatchCandidate) {
	if len(matches) == 0 {
		fmt.Println("No match candidates found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "JOB REF\tTYPE\tCONFIDENCE\tCUSTOMER\tEVIDENCE")

	for _, match := range matches {
		evidence := make([]string, 0, len(match.MatchedFields))
		for _, field := range match.MatchedFields {
			evidence = append(evidence, field.Field)
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			match.JobRef,
			match.JobType,
			f.renderConfidence(match.Confidence),
			truncate(match.CustomerName, 25),
			strings.Join(evidence, ", "))
	}
}

// printJobsTable prints jobs in table format
func (f *OutputFormatter) printJobsTable(jobs []database.Job) error {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	// Header
	fmt.Fprintln(w, "JOB REF\tTYPE\tBOOKED\tCONTAINER\tVESSEL\tCUSTOMER REF")

	// Data
	for _, job := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			job.JobRef,
			job.JobType,
			job.BookingDate,
			job.ContainerNumber,
			truncate(job.VesselName, 20),
			truncate(job.CustomerReference, 20))
	}

	return nil
}

// renderConfidence formats a confidence score, colored by band when enabled
func (f *OutputFormatter) renderConfidence(confidence float64) string {
	text := fmt.Sprintf("%.2f", confidence)
	if !f.useColor {
		return text
	}

	var color lipgloss.Color
	switch {
	case confidence >= 0.9:
		color = lipgloss.Color("82") // Green
	case confidence >= 0.75:
		color = lipgloss.Color("226") // Yellow
	default:
		color = lipgloss.Color("208") // Orange
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// analysisStatus describes the confirmation state of an analysis
func analysisStatus(analysis *database.Analysis) string {
	if analysis.ConfirmedJobRef != nil {
		return fmt.Sprintf("confirmed (%d)", *analysis.ConfirmedJobRef)
	}
	return "unconfirmed"
}

// decodeResult decodes the stored engine output, or nil if it is unreadable
func decodeResult(analysis *database.Analysis) *matching.InvoiceAnalysis {
	if len(analysis.Result) == 0 {
		return nil
	}
	var result matching.InvoiceAnalysis
	if err := json.Unmarshal(analysis.Result, &result); err != nil {
		return nil
	}
	return &result
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
