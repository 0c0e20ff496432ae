package matching

import (
	"regexp"
	"strings"
)

// Company classification walks the document line by line with two context
// flags that reset on every blank line: whether the current block sits under
// an exclusion header (consignor, importer, delivery address and similar,
// where the company shown is usually not the invoice issuer) and whether it
// sits under a customer header. The first company found outside an exclusion
// block becomes the supplier candidate; the first found under a customer
// header becomes the customer.

// CompanyMention is one company-shaped line together with the exclusion
// context it was found under.
type CompanyMention struct {
	Name     string
	Excluded bool
}

// CompanyExtraction is the result of classifying company names in one
// document.
type CompanyExtraction struct {
	Companies    []string
	Mentions     []CompanyMention
	SupplierName string
	CustomerName string
}

var (
	exclusionHeaderRegex = regexp.MustCompile(`(?i)^\s*(?:consignor|importer|exporter|sender|delivery(?:\s+address)?|invoice\s+to)\b`)
	customerHeaderRegex  = regexp.MustCompile(`(?i)^\s*(?:customer|importer|consignee|buyer|bill\s+to|to)\b\s*:?`)

	// Names ending in a legal-entity suffix are companies regardless of
	// their casing or surroundings.
	legalSuffixRegex = regexp.MustCompile(`(?i)^(.{1,73}?\b(?:ltd|limited|inc|corp|plc|llc|co|gmbh|sa|srl|bv))\.?\s*$`)

	// The generic shape: two or more capitalized tokens, letters only.
	capitalizedNameRegex = regexp.MustCompile(`^[A-Z][A-Za-z&.'\-]*(?:\s+[A-Z&][A-Za-z&.'\-]*)+$`)
)

// ExtractCompanyNames classifies company-shaped lines in the text as
// supplier or customer. Known service-provider names (clearance agents,
// hauliers, shipping lines) correct noisy supplier extraction: an excluded
// company that fuzzy-matches a provider above 0.7 wins over the default
// supplier candidate, and the final supplier name is canonicalised against
// the provider list the same way.
func ExtractCompanyNames(text string, providerNames []string) CompanyExtraction {
	var ext CompanyExtraction

	underExclusion := false
	underCustomer := false
	seen := make(map[string]bool)

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			underExclusion = false
			underCustomer = false
			continue
		}

		isExclusionHeader := exclusionHeaderRegex.MatchString(line)
		isCustomerHeader := customerHeaderRegex.MatchString(line)
		if isExclusionHeader {
			underExclusion = true
		}
		if isCustomerHeader {
			underCustomer = true
		}

		name := ""
		if m := legalSuffixRegex.FindStringSubmatch(line); m != nil {
			name = strings.TrimSpace(m[1])
		} else if !isExclusionHeader && !isCustomerHeader && isGenericCompanyLine(line) {
			name = line
		}
		if name == "" {
			continue
		}

		if !seen[name] {
			seen[name] = true
			ext.Companies = append(ext.Companies, name)
		}
		ext.Mentions = append(ext.Mentions, CompanyMention{Name: name, Excluded: underExclusion})

		if ext.CustomerName == "" && underCustomer {
			ext.CustomerName = name
		}
		if ext.SupplierName == "" && !underExclusion {
			ext.SupplierName = name
		}
	}

	// Service providers routinely appear under an "Importer:" or similar
	// exclusion label even though they issued the invoice. Prefer any
	// excluded company that fuzzy-matches a known provider.
	providerMatched := false
	for _, mention := range ext.Mentions {
		if !mention.Excluded {
			continue
		}
		if canonical, ok := matchProviderName(mention.Name, providerNames); ok {
			ext.SupplierName = canonical
			providerMatched = true
			break
		}
	}

	if !providerMatched && ext.SupplierName != "" {
		if canonical, ok := matchProviderName(ext.SupplierName, providerNames); ok {
			ext.SupplierName = canonical
		}
	}

	return ext
}

// matchProviderName fuzzy-scores name against each canonical provider name
// and returns the first scoring above 0.7.
func matchProviderName(name string, providerNames []string) (string, bool) {
	for _, provider := range providerNames {
		if ScoreNameMatch(provider, name) > 0.7 {
			return provider, true
		}
	}
	return "", false
}

// isGenericCompanyLine reports whether a non-header line looks like a
// company name on its own: 2-80 characters of capitalized tokens with no
// digits.
func isGenericCompanyLine(line string) bool {
	if len(line) < 2 || len(line) > 80 {
		return false
	}
	return capitalizedNameRegex.MatchString(line)
}
