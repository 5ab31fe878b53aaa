// Package search implements the fuzzy query engine over a Library.
//
// Scoring combines four signals per candidate, evaluated against the
// lowercased name and URL fields: exact equality, substring containment,
// token AND-matching, and bounded-window string similarity. The engine is
// pure in-memory computation; it never touches disk.
package search

import (
	"sort"
	"strings"

	"github.com/picobrowse/markvault/record"
)

// Composite score tiers. Highest applicable tier wins; candidates below
// MinScore are dropped entirely.
const (
	ScoreExact    = 1.0
	ScoreContains = 0.9
	ScoreAllTerms = 0.85
	MinScore      = 0.75
)

// Candidate pairs a record with its composite match score.
type Candidate struct {
	Record record.Record
	Score  float64
	Exact  bool
}

// Engine scores and ranks library entries against free-form queries.
// The zero value is ready to use.
type Engine struct{}

// Search returns the records of lib matching query, best match first.
//
// The empty (or all-whitespace) query returns nothing rather than
// everything: interactive callers clear their result list as the user
// clears the input box.
//
// Ordering: exact matches strictly precede all others; within each group
// candidates sort by score descending; remaining ties keep the library's
// insertion order.
func (Engine) Search(lib *record.Library, query string) []record.Record {
	ranked := Rank(lib, query)
	out := make([]record.Record, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Record)
	}
	return out
}

// Rank is Search with scores exposed, for callers that display relevance.
func Rank(lib *record.Library, query string) []Candidate {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" || lib == nil {
		return nil
	}
	tokens := strings.Fields(normalized)

	var candidates []Candidate
	for _, r := range lib.Records() {
		score, exact := scoreRecord(&r, normalized, tokens)
		if score < MinScore {
			continue
		}
		candidates = append(candidates, Candidate{Record: r, Score: score, Exact: exact})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Exact != candidates[j].Exact {
			return candidates[i].Exact
		}
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

func scoreRecord(r *record.Record, query string, tokens []string) (float64, bool) {
	name := strings.ToLower(r.Name)
	url := strings.ToLower(r.URL)

	if name == query || url == query {
		return ScoreExact, true
	}
	if strings.Contains(name, query) || strings.Contains(url, query) {
		return ScoreContains, false
	}
	if allTermsMatch(tokens, name, url) {
		return ScoreAllTerms, false
	}

	sim := Similarity(query, name)
	if s := Similarity(query, url); s > sim {
		sim = s
	}
	return sim, false
}

// allTermsMatch reports whether every query token appears as a substring in
// at least one of the two fields.
func allTermsMatch(tokens []string, name, url string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(name, tok) && !strings.Contains(url, tok) {
			return false
		}
	}
	return true
}
