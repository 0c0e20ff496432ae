package matching

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary amounts are scanned in four independent categories. Each named
// category keeps only its first match; every valid amount from any category
// is also accumulated into AllAmounts.
const amountToken = `[$€£]?\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`

var (
	netAmountRegex      = regexp.MustCompile(`(?i)\b(?:net(?:\s+(?:total|amount))?|sub\s*-?\s*total)\b[^\n\d]{0,20}` + amountToken)
	vatAmountRegex      = regexp.MustCompile(`(?i)\b(?:vat|tax)\b[^\n\d]{0,20}` + amountToken)
	grossAmountRegex    = regexp.MustCompile(`(?i)\b(?:gross(?:\s+total)?|grand\s+total|invoice\s+total|amount\s+due|total\s+due|total)\b[^\n\d]{0,20}` + amountToken)
	currencyAmountRegex = regexp.MustCompile(`[$€£]\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+\.\d{1,2})`)
)

// ExtractAmounts returns the net, VAT and gross totals recognised in the
// text plus every valid amount seen anywhere, including generic
// currency-symbol-prefixed values.
func ExtractAmounts(text string) AmountSet {
	set := AmountSet{
		NetTotal:   firstAmount(netAmountRegex, text),
		VAT:        firstAmount(vatAmountRegex, text),
		GrossTotal: firstAmount(grossAmountRegex, text),
	}

	seen := make(map[string]bool)
	for _, re := range []*regexp.Regexp{netAmountRegex, vatAmountRegex, grossAmountRegex, currencyAmountRegex} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			d, ok := parseAmount(m[1])
			if !ok || seen[d.String()] {
				continue
			}
			seen[d.String()] = true
			set.AllAmounts = append(set.AllAmounts, d)
		}
	}
	return set
}

// firstAmount returns the first parseable amount matched by re, or nil.
func firstAmount(re *regexp.Regexp, text string) *decimal.Decimal {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &d
}

// parseAmount parses a numeric token with optional thousands separators.
func parseAmount(token string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(token, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
