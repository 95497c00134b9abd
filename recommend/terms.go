package recommend

import (
	"slices"
	"strings"
)

// Term selection tuning. A term needs only one occurrence to be considered,
// and at most maxQueryTerms terms feed the similarity clause so one verbose
// description can't drown the query.
const (
	minTermFreq   = 1
	maxQueryTerms = 12
)

// Stop words to filter out of description tokens before term selection
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// fieldTerm is one candidate term attributed to the index field it came from.
type fieldTerm struct {
	field string
	term  string
}

// tokenize splits text into words, lowercases, trims punctuation, and removes
// stop words.
func tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// selectTerms picks the representative terms of a reference game for the
// similarity clause: description tokens plus category and mechanic values,
// ranked by frequency. Terms below minTermFreq are dropped and at most
// maxQueryTerms survive. Frequency ties break on field then term so the
// selection is deterministic for a given game.
func selectTerms(description string, categories, mechanics []string) []fieldTerm {
	type candidate struct {
		fieldTerm
		freq int
	}

	counts := make(map[fieldTerm]int)
	for _, token := range tokenize(description) {
		counts[fieldTerm{field: "description", term: token}]++
	}
	for _, category := range categories {
		counts[fieldTerm{field: "categories", term: category}]++
	}
	for _, mechanic := range mechanics {
		counts[fieldTerm{field: "mechanics", term: mechanic}]++
	}

	candidates := make([]candidate, 0, len(counts))
	for ft, freq := range counts {
		if freq >= minTermFreq {
			candidates = append(candidates, candidate{fieldTerm: ft, freq: freq})
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if a.freq != b.freq {
			return b.freq - a.freq
		}
		if a.field != b.field {
			return strings.Compare(a.field, b.field)
		}
		return strings.Compare(a.term, b.term)
	})

	if len(candidates) > maxQueryTerms {
		candidates = candidates[:maxQueryTerms]
	}

	selected := make([]fieldTerm, 0, len(candidates))
	for _, c := range candidates {
		selected = append(selected, c.fieldTerm)
	}
	return selected
}
