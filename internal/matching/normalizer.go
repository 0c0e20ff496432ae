package matching

import (
	"regexp"
	"strings"
)

// OCR engines systematically confuse a handful of characters on scanned
// invoices: "$" for "S" at the start of reference numbers, "0" for "O" ahead
// of letters, and "l" for "I" ahead of digits. The corrections below repair
// those confusions without ever touching a genuine currency amount.

var (
	tokenRegex       = regexp.MustCompile(`\S+`)
	zeroBeforeAlpha  = regexp.MustCompile(`\b0([A-Za-z]{2})`)
	ellBeforeDigits  = regexp.MustCompile(`l(\d{2})`)
	letterRegex      = regexp.MustCompile(`[A-Za-z]`)
)

// CorrectOCRText repairs systematic OCR character confusions in text.
// The function is idempotent: correcting already-corrected text is a no-op.
func CorrectOCRText(text string) string {
	// Dollar-to-S must run before the zero rewrite so that "$0ABC1234"
	// becomes "S0ABC1234" rather than "SOABC1234".
	text = tokenRegex.ReplaceAllStringFunc(text, correctDollarToken)
	text = zeroBeforeAlpha.ReplaceAllString(text, "O$1")
	text = ellBeforeDigits.ReplaceAllString(text, "I$1")
	return text
}

// correctDollarToken rewrites a "$"-prefixed token to an "S"-prefixed one
// when the remainder is shaped like a reference number rather than a
// currency amount: it starts with "0" and is at least 8 characters, or it
// contains a letter, or it carries 10 or more digits. Anything else, such as
// "$1,234.56", is left untouched.
func correctDollarToken(token string) string {
	if len(token) < 2 || !strings.HasPrefix(token, "$") {
		return token
	}

	rest := token[1:]

	referenceShaped := (strings.HasPrefix(rest, "0") && len(rest) >= 8) ||
		letterRegex.MatchString(rest) ||
		countDigits(rest) >= 10

	if referenceShaped {
		return "S" + rest
	}
	return token
}

// countDigits returns the number of ASCII digit characters in s.
func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
