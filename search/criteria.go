package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/ludex/core"
)

// Criteria is the transient, request-scoped set of optional filters for a
// catalog search. No field is required; the zero value compiles to an empty
// condition list, which composes to a match-all query.
//
// Bound semantics are inclusive on both ends: MaxPlayers and PlayingTime are
// upper bounds (game attribute <= bound), MinAge and MinPlayers are lower
// bounds (game attribute >= bound). Categories and Mechanics are conjunctive:
// a game must carry every listed tag, not merely one.
type Criteria struct {
	Name        string
	Description string
	MaxPlayers  *int
	MinAge      *int
	MinPlayers  *int
	PlayingTime *int
	Categories  []string
	Mechanics   []string
}

// Compile translates the criteria into an ordered list of atomic query
// conditions. Pure function; the output order is stable (name, description,
// maxplayers, minage, minplayers, playingtime, categories, mechanics) so
// composed queries are deterministic.
func (c Criteria) Compile() []query.Query {
	conditions := make([]query.Query, 0, 8)

	if c.Name != "" {
		conditions = append(conditions, fuzzyMatch("name", c.Name))
	}
	if c.Description != "" {
		conditions = append(conditions, fuzzyMatch("description", c.Description))
	}
	if c.MaxPlayers != nil {
		conditions = append(conditions, upperBound("maxplayers", *c.MaxPlayers))
	}
	if c.MinAge != nil {
		conditions = append(conditions, lowerBound("minage", *c.MinAge))
	}
	if c.MinPlayers != nil {
		conditions = append(conditions, lowerBound("minplayers", *c.MinPlayers))
	}
	if c.PlayingTime != nil {
		conditions = append(conditions, upperBound("playingtime", *c.PlayingTime))
	}
	for _, category := range c.Categories {
		conditions = append(conditions, tagTerm("categories", category))
	}
	for _, mechanic := range c.Mechanics {
		conditions = append(conditions, tagTerm("mechanics", mechanic))
	}

	return conditions
}

// fuzzyMatch builds an approximate text-match condition. Each word of the
// text matches with an edit-distance tolerance scaled to its length, and
// multi-word text matches on any word.
func fuzzyMatch(field, text string) query.Query {
	terms := strings.Fields(text)
	switch len(terms) {
	case 0:
		return fuzzyTerm(field, text)
	case 1:
		return fuzzyTerm(field, terms[0])
	}

	clauses := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, fuzzyTerm(field, term))
	}
	return bleve.NewDisjunctionQuery(clauses...)
}

func fuzzyTerm(field, term string) query.Query {
	q := bleve.NewMatchQuery(term)
	q.SetField(field)
	q.SetFuzziness(autoFuzziness(term))
	return q
}

// autoFuzziness maps term length to tolerated edits: one or two characters
// must match exactly, three to five tolerate one edit, longer terms two.
func autoFuzziness(term string) int {
	switch n := len([]rune(term)); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// upperBound builds attribute <= bound, inclusive.
func upperBound(field string, bound int) query.Query {
	max := float64(bound)
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(nil, &max, nil, &inclusive)
	q.SetField(field)
	return q
}

// lowerBound builds attribute >= bound, inclusive.
func lowerBound(field string, bound int) query.Query {
	min := float64(bound)
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(&min, nil, &inclusive, nil)
	q.SetField(field)
	return q
}

// tagTerm builds an exact-match condition on a keyword tag field.
func tagTerm(field, tag string) query.Query {
	q := bleve.NewTermQuery(tag)
	q.SetField(field)
	return q
}

// ParseBound parses an optional numeric bound supplied as a string by the
// transport layer. Empty input means "absent" and yields nil without error;
// a non-integer value yields core.ErrInvalidArgument so the request is
// rejected before any query reaches the index.
func ParseBound(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: bound %q is not an integer", core.ErrInvalidArgument, value)
	}
	return &n, nil
}
