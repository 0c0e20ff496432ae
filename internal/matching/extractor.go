package matching

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Each extractor in this file is a pure function over the corrected OCR text.
// Extractors never fail: text with nothing to find yields an empty result.

// Job references are plain integers issued from a fixed range, so a bare
// five-digit token is enough to recognise one.
const (
	minJobRef = 26001
	maxJobRef = 99999
)

var jobRefRegex = regexp.MustCompile(`\b(\d{5})\b`)

// ExtractJobReferences returns every in-range job reference found in the
// text, whether bare or following a label such as "job #" or "ref".
// Out-of-range numbers are discarded even when the surrounding pattern looks
// like a job reference.
func ExtractJobReferences(text string) []int {
	seen := make(map[int]bool)
	var refs []int

	for _, m := range jobRefRegex.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < minJobRef || n > maxJobRef || seen[n] {
			continue
		}
		seen[n] = true
		refs = append(refs, n)
	}
	return refs
}

// ISO 6346 container numbers: exactly 4 letters then 7 digits. OCR output
// frequently intersperses spaces ("CMAU 0076925"), so candidates tolerate a
// single space between characters and are validated after normalization.
var (
	containerCandidateRegex = regexp.MustCompile(`\b[A-Za-z](?: ?[A-Za-z]){3}(?: ?\d){7}\b`)
	containerShapeRegex     = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)
)

// ExtractContainerNumbers returns every normalized (space-stripped,
// uppercased) container number in the text. Lists such as
// "ABCD1234567/EFGH7654321" are split on "/" before each part is validated
// independently.
func ExtractContainerNumbers(text string) []string {
	prepared := strings.ReplaceAll(text, "/", " ")

	seen := make(map[string]bool)
	var containers []string

	for _, candidate := range containerCandidateRegex.FindAllString(prepared, -1) {
		normalized := strings.ToUpper(stripWhitespace(candidate))
		if !containerShapeRegex.MatchString(normalized) || seen[normalized] {
			continue
		}
		seen[normalized] = true
		containers = append(containers, normalized)
	}
	return containers
}

// Truck, vehicle and flight numbers are deliberately the complement of the
// container shape: shorter mixed alphanumerics that do not look like table
// headers, postcodes, or long letter/digit runs.
var (
	truckTriggerRegex = regexp.MustCompile(`(?i)\b(?:vehicle|truck|trailer|flight|reg(?:istration)?)\b\s*(?:no\.?|number|#)?\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9\-]{2,11})\b`)
	standaloneTokenRegex = regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9\-]{3,10}[A-Za-z0-9]\b`)

	letterRunRegex = regexp.MustCompile(`[A-Za-z]{5}`)
	digitRunRegex  = regexp.MustCompile(`\d{5}`)

	// The six UK postcode shapes: A9 9AA, A99 9AA, AA9 9AA, AA99 9AA,
	// A9A 9AA and AA9A 9AA.
	ukPostcodeRegex = regexp.MustCompile(`(?i)^(?:[A-Z]\d|[A-Z]\d{2}|[A-Z]{2}\d|[A-Z]{2}\d{2}|[A-Z]\d[A-Z]|[A-Z]{2}\d[A-Z])\s?\d[A-Z]{2}$`)
)

// tableHeaderWords are column headings that OCR turns into plausible-looking
// standalone tokens. Any candidate equal to one of these is discarded.
var tableHeaderWords = map[string]bool{
	"seal":        true,
	"seals":       true,
	"number":      true,
	"numbers":     true,
	"package":     true,
	"packages":    true,
	"pallet":      true,
	"pallets":     true,
	"destination": true,
	"origin":      true,
	"weight":      true,
	"pieces":      true,
	"total":       true,
	"invoice":     true,
	"quantity":    true,
	"description": true,
}

// ExtractTruckNumbers returns vehicle, truck, trailer and flight identifiers
// found either after a trigger word or as bare standalone alphanumeric
// tokens.
func ExtractTruckNumbers(text string) []string {
	seen := make(map[string]bool)
	var trucks []string

	record := func(token string) {
		upper := strings.ToUpper(token)
		if !seen[upper] {
			seen[upper] = true
			trucks = append(trucks, upper)
		}
	}

	for _, m := range truckTriggerRegex.FindAllStringSubmatch(text, -1) {
		token := m[1]
		if countDigits(token) == 0 || rejectTruckCandidate(token) {
			continue
		}
		record(token)
	}

	for _, token := range standaloneTokenRegex.FindAllString(text, -1) {
		if !validStandaloneTruckToken(token) || rejectTruckCandidate(token) {
			continue
		}
		record(token)
	}
	return trucks
}

// rejectTruckCandidate applies the shared rejection rules: table-header
// words, strict container shapes, runs of 5+ letters or digits, and UK
// postcode shapes.
func rejectTruckCandidate(token string) bool {
	if tableHeaderWords[strings.ToLower(token)] {
		return true
	}
	normalized := strings.ToUpper(stripNonAlphanumeric(token))
	if containerShapeRegex.MatchString(normalized) {
		return true
	}
	if letterRunRegex.MatchString(token) || digitRunRegex.MatchString(token) {
		return true
	}
	if ukPostcodeRegex.MatchString(normalized) {
		return true
	}
	return false
}

// validStandaloneTruckToken checks the stricter shape required of a bare
// token with no trigger word nearby: 2-4 letters and 3-8 digits in total,
// overall length 5-12.
func validStandaloneTruckToken(token string) bool {
	if len(token) < 5 || len(token) > 12 {
		return false
	}
	letters := letterCount(token)
	digits := countDigits(token)
	return letters >= 2 && letters <= 4 && digits >= 3 && digits <= 8
}

// Customer reference labels, including the OCR misspellings of "reference"
// that show up on real scans ("refersice", "referanse", "refernce").
var customerRefLabelRegex = regexp.MustCompile(`(?i)\b(?:(?:customer|cust|your)\s+ref(?:erence|ersice|eranse|ernce)?|ref(?:erence|ersice|eranse|ernce)|po\s*#|p\.o\.\s*(?:#|no\.?)?|order\s*(?:#|no\.?|number))\s*\.?\s*[:\-#]?\s*(.*)$`)

// ExtractCustomerReferences returns customer/purchase-order references found
// after their labels. Only the first line after a label is kept, since
// subsequent lines are different content; accepted values are 3-30
// characters.
func ExtractCustomerReferences(text string) []string {
	lines := strings.Split(text, "\n")

	seen := make(map[string]bool)
	var refs []string

	for i, line := range lines {
		m := customerRefLabelRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		value := strings.TrimSpace(m[1])
		if value == "" && i+1 < len(lines) {
			value = strings.TrimSpace(lines[i+1])
		}
		if len(value) < 3 || len(value) > 30 {
			continue
		}
		if !seen[value] {
			seen[value] = true
			refs = append(refs, value)
		}
	}
	return refs
}

// Invoice number labels, from explicit ("invoice no") to the generic
// "no:"/"number:" followed by a long digit run.
var invoiceNumberRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binvoice\s*(?:no\.?|number|#)\s*[:\-]?\s*([A-Za-z0-9\-\/]{5,20})\b`),
	regexp.MustCompile(`(?i)\binv\s*\.?\s*#\s*[:\-]?\s*([A-Za-z0-9\-\/]{5,20})\b`),
	regexp.MustCompile(`(?i)\b(?:no|number)\s*[:.]\s*(\d{6,20})\b`),
}

// ExtractInvoiceNumbers returns candidate invoice numbers of length 5-20
// found after invoice-number labels.
func ExtractInvoiceNumbers(text string) []string {
	seen := make(map[string]bool)
	var numbers []string

	for _, re := range invoiceNumberRegexes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			value := strings.TrimSpace(m[1])
			if len(value) < 5 || len(value) > 20 || seen[value] {
				continue
			}
			seen[value] = true
			numbers = append(numbers, value)
		}
	}
	return numbers
}

// Date shapes: day-first with 2 or 4 digit years, and ISO year-first.
// Values are collected as raw strings; parsing happens in the date resolver.
var dateRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[/.\-]\d{1,2}[/.\-]\d{1,2}\b`),
}

// ExtractDates returns every date-shaped token in the text as a raw string.
func ExtractDates(text string) []string {
	seen := make(map[string]bool)
	var dates []string

	for _, re := range dateRegexes {
		for _, value := range re.FindAllString(text, -1) {
			if !seen[value] {
				seen[value] = true
				dates = append(dates, value)
			}
		}
	}
	return dates
}

// Weight tokens: a number followed by a unit, or a number after a weight
// label. Values must fall in (0, 100000) to be kept.
var (
	weightUnitRegex  = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)\s*(?:kgs?|tonnes?|lbs)\b`)
	weightLabelRegex = regexp.MustCompile(`(?i)\b(?:gross|net|total)?\s*weight\s*(?:\(\s*kgs?\s*\))?\s*[:\-]?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)\b`)
)

// ExtractWeights returns every plausible weight in the text as a canonical
// decimal string.
func ExtractWeights(text string) []string {
	seen := make(map[string]bool)
	var weights []string

	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			value, ok := parseWeight(m[1])
			if !ok || seen[value] {
				continue
			}
			seen[value] = true
			weights = append(weights, value)
		}
	}

	collect(weightUnitRegex)
	collect(weightLabelRegex)
	return weights
}

// parseWeight parses a numeric token as a weight, returning its canonical
// decimal string and whether it is within the accepted range.
func parseWeight(token string) (string, bool) {
	cleaned := strings.ReplaceAll(token, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return "", false
	}
	if !d.IsPositive() || !d.LessThan(decimal.NewFromInt(100000)) {
		return "", false
	}
	return d.String(), true
}

// creditNoteMarkers flag a document as a credit note rather than an invoice.
var creditNoteMarkers = []string{"credit note", "credit memo", "cn #", "refund"}

// DetectCreditNote reports whether the text carries any credit-note marker.
func DetectCreditNote(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range creditNoteMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// stripWhitespace removes every whitespace character from s.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// stripNonAlphanumeric removes everything except letters and digits from s.
func stripNonAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// letterCount returns the number of ASCII letters in s.
func letterCount(s string) int {
	count := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			count++
		}
	}
	return count
}
