package search

import (
	"testing"

	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/ludex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int {
	return &n
}

func TestCriteria_Compile(t *testing.T) {
	t.Run("empty criteria compiles to no conditions", func(t *testing.T) {
		conditions := Criteria{}.Compile()
		assert.Empty(t, conditions)
	})

	t.Run("all fields compile in stable order", func(t *testing.T) {
		criteria := Criteria{
			Name:        "catan",
			Description: "trading",
			MaxPlayers:  intPtr(4),
			MinAge:      intPtr(10),
			MinPlayers:  intPtr(2),
			PlayingTime: intPtr(60),
			Categories:  []string{"Economic"},
			Mechanics:   []string{"Trading"},
		}

		conditions := criteria.Compile()
		require.Len(t, conditions, 8)

		fields := make([]string, 0, len(conditions))
		for _, c := range conditions {
			fq, ok := c.(query.FieldableQuery)
			require.True(t, ok)
			fields = append(fields, fq.Field())
		}
		assert.Equal(t, []string{
			"name", "description",
			"maxplayers", "minage", "minplayers", "playingtime",
			"categories", "mechanics",
		}, fields)
	})

	t.Run("upper bounds are inclusive", func(t *testing.T) {
		conditions := Criteria{MaxPlayers: intPtr(4)}.Compile()
		require.Len(t, conditions, 1)

		rq, ok := conditions[0].(*query.NumericRangeQuery)
		require.True(t, ok)
		assert.Nil(t, rq.Min)
		require.NotNil(t, rq.Max)
		assert.Equal(t, 4.0, *rq.Max)
		require.NotNil(t, rq.InclusiveMax)
		assert.True(t, *rq.InclusiveMax)
	})

	t.Run("lower bounds are inclusive", func(t *testing.T) {
		conditions := Criteria{MinAge: intPtr(10)}.Compile()
		require.Len(t, conditions, 1)

		rq, ok := conditions[0].(*query.NumericRangeQuery)
		require.True(t, ok)
		require.NotNil(t, rq.Min)
		assert.Equal(t, 10.0, *rq.Min)
		assert.Nil(t, rq.Max)
		require.NotNil(t, rq.InclusiveMin)
		assert.True(t, *rq.InclusiveMin)
	})

	t.Run("fuzziness scales with term length", func(t *testing.T) {
		for _, tc := range []struct {
			name      string
			fuzziness int
		}{
			{"go", 0},
			{"catan", 1},
			{"carcassonne", 2},
		} {
			conditions := Criteria{Name: tc.name}.Compile()
			require.Len(t, conditions, 1)

			mq, ok := conditions[0].(*query.MatchQuery)
			require.True(t, ok)
			assert.Equal(t, tc.fuzziness, mq.Fuzziness, tc.name)
		}
	})

	t.Run("multi-word text matches on any word", func(t *testing.T) {
		conditions := Criteria{Name: "Ticket to Ride"}.Compile()
		require.Len(t, conditions, 1)

		dq, ok := conditions[0].(*query.DisjunctionQuery)
		require.True(t, ok)
		require.Len(t, dq.Disjuncts, 3)

		fuzziness := make([]int, 0, len(dq.Disjuncts))
		for _, d := range dq.Disjuncts {
			mq, ok := d.(*query.MatchQuery)
			require.True(t, ok)
			assert.Equal(t, "name", mq.FieldVal)
			fuzziness = append(fuzziness, mq.Fuzziness)
		}
		assert.Equal(t, []int{2, 0, 1}, fuzziness)
	})

	t.Run("each tag becomes its own term condition", func(t *testing.T) {
		criteria := Criteria{
			Categories: []string{"Economic", "Negotiation"},
			Mechanics:  []string{"Trading"},
		}

		conditions := criteria.Compile()
		require.Len(t, conditions, 3)
		for _, c := range conditions {
			_, ok := c.(*query.TermQuery)
			assert.True(t, ok)
		}
	})
}

func TestParseBound(t *testing.T) {
	t.Run("empty means absent", func(t *testing.T) {
		bound, err := ParseBound("")
		require.NoError(t, err)
		assert.Nil(t, bound)
	})

	t.Run("whitespace means absent", func(t *testing.T) {
		bound, err := ParseBound("   ")
		require.NoError(t, err)
		assert.Nil(t, bound)
	})

	t.Run("integer value", func(t *testing.T) {
		bound, err := ParseBound("12")
		require.NoError(t, err)
		require.NotNil(t, bound)
		assert.Equal(t, 12, *bound)
	})

	t.Run("non-integer is an invalid argument", func(t *testing.T) {
		bound, err := ParseBound("twelve")
		assert.Nil(t, bound)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestCompose(t *testing.T) {
	t.Run("no conditions composes to match all", func(t *testing.T) {
		req := Compose(nil, CatalogPageSize)
		require.NotNil(t, req)
		assert.Equal(t, CatalogPageSize, req.Size)
		_, ok := req.Query.(*query.MatchAllQuery)
		assert.True(t, ok)
	})

	t.Run("conditions compose conjunctively", func(t *testing.T) {
		conditions := Criteria{Name: "catan", MaxPlayers: intPtr(4)}.Compile()
		req := Compose(conditions, ListPageSize)

		assert.Equal(t, ListPageSize, req.Size)
		cq, ok := req.Query.(*query.ConjunctionQuery)
		require.True(t, ok)
		assert.Len(t, cq.Conjuncts, 2)
	})
}
