package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAll(t *testing.T) {
	catalog := NewCatalog(sampleArticles(), sampleJudgements())

	t.Run("groups follow registration order", func(t *testing.T) {
		groups := SearchAll(catalog, "related")
		require.Len(t, groups, 2)
		assert.Equal(t, "Articles", groups[0].Collection)
		assert.Equal(t, "Judgements", groups[1].Collection)
		assert.Equal(t, []string{"Related Party Transactions"}, titles(groups[0].Records))
		assert.Equal(t, []string{"XYZ Ltd v. Registrar"}, titles(groups[1].Records))
	})

	t.Run("empty groups are suppressed", func(t *testing.T) {
		groups := SearchAll(catalog, "oppression")
		require.Len(t, groups, 1)
		assert.Equal(t, "judgements", groups[0].Key)
	})

	t.Run("no match anywhere", func(t *testing.T) {
		assert.Empty(t, SearchAll(catalog, "zzz-nothing"))
	})

	t.Run("blank term", func(t *testing.T) {
		assert.Empty(t, SearchAll(catalog, "  "))
	})

	t.Run("nil catalog", func(t *testing.T) {
		assert.Empty(t, SearchAll(nil, "x"))
	})
}

func TestSearchAllSoundAndComplete(t *testing.T) {
	catalog := NewCatalog(sampleArticles(), sampleJudgements())

	for _, term := range []string{"a", "ltd", "188", "JANUARY", "mis"} {
		matched := map[string]bool{}
		for _, g := range SearchAll(catalog, term) {
			col, ok := catalog.Collection(g.Key)
			require.True(t, ok)
			for _, r := range g.Records {
				assert.True(t, MatchesTerm(r, term, col.Schema.SearchColumns),
					"%q should match %q", r.Title, term)
				matched[g.Key+"/"+r.Title] = true
			}
		}

		for _, col := range catalog.Collections() {
			for _, r := range col.Records {
				if matched[col.Key()+"/"+r.Title] {
					continue
				}
				assert.False(t, MatchesTerm(r, term, col.Schema.SearchColumns),
					"%q should not match %q", r.Title, term)
			}
		}
	}
}

func TestSearchAllFilteredCollectionSuppressed(t *testing.T) {
	articles := sampleArticles()
	filtered := Apply(articles, Criteria{"Section": "25"}, "")
	assert.Empty(t, filtered)

	catalog := NewCatalog(
		&Collection{Schema: articles.Schema, Records: filtered},
		sampleJudgements(),
	)
	groups := SearchAll(catalog, "ltd")
	require.Len(t, groups, 1)
	assert.Equal(t, "Judgements", groups[0].Collection)
}
