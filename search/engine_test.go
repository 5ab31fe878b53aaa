package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobrowse/markvault/record"
)

func libOf(records ...record.Record) *record.Library {
	return record.FromRecords(records)
}

func TestSearch_EmptyQuery(t *testing.T) {
	lib := libOf(
		record.Record{Name: "Google", URL: "https://google.com"},
		record.Record{Name: "Docs", URL: "https://docs.example.com"},
	)

	var e Engine
	assert.Empty(t, e.Search(lib, ""))
	assert.Empty(t, e.Search(lib, "   \t  "))
	assert.Empty(t, e.Search(nil, "query"))
}

func TestSearch_ExactBeforeSimilar(t *testing.T) {
	lib := libOf(
		record.Record{Name: "Goggle", URL: "https://goggle.typo"},
		record.Record{Name: "Google", URL: "https://google.com"},
	)

	var e Engine
	got := e.Search(lib, "google")
	require.Len(t, got, 2)
	assert.Equal(t, "Google", got[0].Name)
	assert.Equal(t, "Goggle", got[1].Name)

	ranked := Rank(lib, "google")
	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Exact)
	assert.Equal(t, ScoreExact, ranked[0].Score)
	assert.False(t, ranked[1].Exact)
	assert.Less(t, ranked[1].Score, ScoreExact)
}

func TestSearch_ContainsTier(t *testing.T) {
	lib := libOf(record.Record{Name: "My favorite search engine", URL: "https://google.com/search"})

	ranked := Rank(lib, "google")
	require.Len(t, ranked, 1)
	assert.Equal(t, ScoreContains, ranked[0].Score)
}

func TestSearch_TokenANDMatching(t *testing.T) {
	lib := libOf(record.Record{Name: "Evening News Today", URL: "https://news.example.com"})

	// Tokens present but not contiguous: the AND tier applies.
	ranked := Rank(lib, "evening today")
	require.Len(t, ranked, 1)
	assert.Equal(t, ScoreAllTerms, ranked[0].Score)

	// Contiguous token runs hit the higher substring tier.
	ranked = Rank(lib, "news today")
	require.Len(t, ranked, 1)
	assert.GreaterOrEqual(t, ranked[0].Score, ScoreAllTerms)

	// One token missing from both fields: no AND match, and the residual
	// similarity is too weak to surface the record.
	assert.Empty(t, Rank(lib, "banana tomorrow"))
}

func TestSearch_ThresholdDropsWeakMatches(t *testing.T) {
	lib := libOf(
		record.Record{Name: "Google", URL: "https://google.com"},
		record.Record{Name: "Wikipedia", URL: "https://wikipedia.org"},
	)

	var e Engine
	assert.Empty(t, e.Search(lib, "zxqvjkw"))
}

func TestSearch_SimilarityTier(t *testing.T) {
	lib := libOf(record.Record{Name: "Goggle", URL: "https://goggle.typo"})

	ranked := Rank(lib, "google")
	require.Len(t, ranked, 1)
	assert.GreaterOrEqual(t, ranked[0].Score, MinScore)
	assert.Less(t, ranked[0].Score, ScoreExact)
	assert.False(t, ranked[0].Exact)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	lib := libOf(
		record.Record{Name: "alpha news", URL: "https://a.example.com"},
		record.Record{Name: "beta news", URL: "https://b.example.com"},
		record.Record{Name: "gamma news", URL: "https://c.example.com"},
	)

	var e Engine
	got := e.Search(lib, "news")
	require.Len(t, got, 3)
	assert.Equal(t, "alpha news", got[0].Name)
	assert.Equal(t, "beta news", got[1].Name)
	assert.Equal(t, "gamma news", got[2].Name)
}

func TestSearch_MatchesOnURLField(t *testing.T) {
	lib := libOf(record.Record{Name: "Work board", URL: "https://kanban.internal/projects"})

	var e Engine
	got := e.Search(lib, "kanban")
	require.Len(t, got, 1)

	got = e.Search(lib, "https://kanban.internal/projects")
	require.Len(t, got, 1)
	ranked := Rank(lib, "https://kanban.internal/projects")
	assert.True(t, ranked[0].Exact)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	lib := libOf(record.Record{Name: "GoLang Blog", URL: "https://go.dev/blog"})

	var e Engine
	assert.Len(t, e.Search(lib, "GOLANG"), 1)
	assert.Len(t, e.Search(lib, "golang blog"), 1)
}
