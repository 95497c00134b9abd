package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Result caps. These are hard cutoffs, not the first page of more: the
// catalog exposes no pagination or cursors.
const (
	// CatalogPageSize caps filtered catalog searches.
	CatalogPageSize = 50
	// ListPageSize caps popularity, semantic, and similarity lists.
	ListPageSize = 10
)

// Compose assembles atomic conditions into a single structured query with a
// result cap. All conditions are combined conjunctively (logical AND); an
// empty condition list composes to an unconditional match-all query. The
// composer supports no OR/NOT combinations; that is a documented limitation
// of the catalog's query contract, not an oversight.
func Compose(conditions []query.Query, size int) *bleve.SearchRequest {
	var q query.Query
	if len(conditions) == 0 {
		q = bleve.NewMatchAllQuery()
	} else {
		q = bleve.NewConjunctionQuery(conditions...)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = size
	return req
}
