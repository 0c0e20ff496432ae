package matching

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// Company names must clear a higher bar than vessel names, which are
	// shorter and noisier on scanned invoices.
	companyMatchThreshold = 0.7
	vesselMatchThreshold  = 0.65

	fuzzyReferenceScore = 0.95
	weightMatchScore    = 0.9

	// A candidate is only worth surfacing when it matched on at least
	// three distinct field families.
	minEvidenceFieldTypes = 3

	// References shorter than this produce too many false positives in the
	// sliding-window fuzzy fallback.
	minFuzzyReferenceLength = 5
)

// ScoreNameMatch computes a word-overlap similarity between a name and a
// body of text: 1.0 when the full name appears verbatim, otherwise the
// fraction of the name's words found anywhere in the text, capped at 0.95
// when every word is present but not contiguous.
func ScoreNameMatch(name, text string) float64 {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0
	}
	text = strings.ToLower(text)

	if strings.Contains(text, name) {
		return 1.0
	}

	words := strings.Fields(name)
	found := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			found++
		}
	}
	if found == 0 {
		return 0
	}
	if found == len(words) {
		return 0.95
	}
	return float64(found) / float64(len(words))
}

// FindFuzzyReferenceMatch reports whether text contains a window within
// Levenshtein distance 1 of reference. References shorter than five
// characters are never fuzzy-matched.
func FindFuzzyReferenceMatch(reference, text string) bool {
	if len(reference) < minFuzzyReferenceLength {
		return false
	}
	if strings.Contains(text, reference) {
		return true
	}

	window := len(reference)
	for i := 0; i+window <= len(text); i++ {
		if withinOneSubstitution(text[i:i+window], reference) {
			return true
		}
	}
	return false
}

// withinOneSubstitution reports whether two equal-length strings differ in
// at most one position.
func withinOneSubstitution(a, b string) bool {
	diffs := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			diffs++
			if diffs > 1 {
				return false
			}
		}
	}
	return true
}

// jobKey identifies one job record across the per-field maps.
type jobKey struct {
	JobRef  int
	JobType JobType
}

// MatchJobs scans the document text against every index entry, collects
// per-job evidence, deduplicates it by field family, filters out jobs with
// insufficient evidence diversity, and scores the survivors.
func MatchJobs(text string, index *SearchIndex) []MatchCandidate {
	normalized := strings.ToUpper(stripWhitespace(text))
	lowered := strings.ToLower(text)

	evidence := make(map[jobKey][]MatchEvidence)
	record := func(entries []IndexEntry, score float64) {
		for _, e := range entries {
			key := jobKey{JobRef: e.JobRef, JobType: e.JobType}
			evidence[key] = append(evidence[key], MatchEvidence{
				Field: e.Field,
				Value: e.Value,
				Score: score,
			})
		}
	}

	for name, entries := range index.CompanyNames {
		if score := ScoreNameMatch(name, lowered); score >= companyMatchThreshold {
			record(entries, score)
		}
	}
	for name, entries := range index.Vessels {
		if score := ScoreNameMatch(name, lowered); score >= vesselMatchThreshold {
			record(entries, score)
		}
	}

	for _, codes := range []map[string][]IndexEntry{index.Containers, index.JobRefs, index.References} {
		for code, entries := range codes {
			if strings.Contains(normalized, code) {
				record(entries, 1.0)
			} else if FindFuzzyReferenceMatch(code, normalized) {
				record(entries, fuzzyReferenceScore)
			}
		}
	}

	for weight, entries := range index.Weights {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(weight) + `\b`)
		if re.MatchString(lowered) {
			record(entries, weightMatchScore)
		}
	}

	var candidates []MatchCandidate
	for key, fields := range evidence {
		deduped := dedupeByFieldType(fields)
		if len(deduped) < minEvidenceFieldTypes {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			JobRef:        key.JobRef,
			JobType:       key.JobType,
			Confidence:    confidenceScore(deduped),
			MatchedFields: deduped,
			CustomerName:  index.CustomerNameFor(key.JobRef),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].JobRef < candidates[j].JobRef
	})
	return candidates
}

// dedupeByFieldType collapses evidence sharing a field-family prefix (the
// label portion before any ":") down to the single highest-scoring entry,
// so five hits on the same customer reference count once.
func dedupeByFieldType(fields []MatchEvidence) []MatchEvidence {
	best := make(map[string]MatchEvidence)
	var order []string

	for _, f := range fields {
		prefix := f.Field
		if idx := strings.Index(prefix, ":"); idx != -1 {
			prefix = prefix[:idx]
		}
		existing, ok := best[prefix]
		if !ok {
			order = append(order, prefix)
		}
		if !ok || f.Score > existing.Score {
			best[prefix] = f
		}
	}

	deduped := make([]MatchEvidence, 0, len(best))
	for _, prefix := range order {
		deduped = append(deduped, best[prefix])
	}
	return deduped
}

// confidenceScore grows with both match quality and match diversity:
// the average evidence score boosted 10% per extra matched field, clamped
// to [0,1].
func confidenceScore(fields []MatchEvidence) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Score
	}
	avg := sum / float64(len(fields))

	confidence := avg * (1 + 0.1*float64(len(fields)-1))
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}
