package matching

import (
	"strings"
	"time"
)

// Invoices are dated close to "now", so among the date-shaped strings OCR
// recovers, the most recent one that parses is the best guess for the
// document date.

var separatorNormalizer = strings.NewReplacer(".", "/", "-", "/")

// Layouts tried against the raw string before separator normalization.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2 January 2006",
	"Jan 2, 2006",
}

// ParseFlexibleDate parses a date string, trying day-month-year first, then
// year-month-day, then a set of generic fallback layouts. The second return
// value reports whether parsing succeeded.
func ParseFlexibleDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	normalized := separatorNormalizer.Replace(value)
	for _, layout := range []string{"2/1/2006", "2/1/06", "2006/1/2"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveInvoiceDate returns the most recent successfully-parsed date among
// the extracted date strings, or false if none parses.
func ResolveInvoiceDate(dates []string) (time.Time, bool) {
	var best time.Time
	found := false

	for _, value := range dates {
		t, ok := ParseFlexibleDate(value)
		if !ok {
			continue
		}
		if !found || t.After(best) {
			best = t
			found = true
		}
	}
	return best, found
}

// Invoices typically lag job execution by weeks, not months. The candidate
// window keeps jobs booked from three months before to one month after the
// invoice date.
const (
	bookingWindowMonthsBefore = 3
	bookingWindowMonthsAfter  = 1
)

// FilterJobsByDate narrows the job pool to records plausibly relevant in
// time. Jobs with no booking date, or one that fails to parse, are always
// kept since they cannot be excluded; with no resolved invoice date the
// whole pool is kept.
func FilterJobsByDate(jobs []JobRecord, invoiceDate time.Time, haveInvoiceDate bool) []JobRecord {
	if !haveInvoiceDate {
		return jobs
	}

	earliest := invoiceDate.AddDate(0, -bookingWindowMonthsBefore, 0)
	latest := invoiceDate.AddDate(0, bookingWindowMonthsAfter, 0)

	var kept []JobRecord
	for _, job := range jobs {
		if job.BookingDate == "" {
			kept = append(kept, job)
			continue
		}
		booked, ok := ParseFlexibleDate(job.BookingDate)
		if !ok {
			kept = append(kept, job)
			continue
		}
		if !booked.Before(earliest) && !booked.After(latest) {
			kept = append(kept, job)
		}
	}
	return kept
}
