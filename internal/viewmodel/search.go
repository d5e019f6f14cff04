package viewmodel

import (
	"unicode/utf8"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
)

// SearchState is the overview search box. Gen identifies the most recent
// search; results carrying any other generation are stale.
type SearchState struct {
	Term      string       `json:"term"`
	Gen       uint64       `json:"gen"`
	Searching bool         `json:"searching"`
	Open      bool         `json:"open"`
	Results   []domain.SKU `json:"results"`
}

// SearchResult is the outcome of a deferred search.
type SearchResult struct {
	Gen     uint64
	Term    string
	Results []domain.SKU
}

// BeginSearch records a new term under generation gen. It reports whether a
// deferred search should run; short terms close the results immediately.
func BeginSearch(s SearchState, term string, gen uint64, minLength int) (SearchState, bool) {
	s.Term = term
	s.Gen = gen
	if utf8.RuneCountInString(term) < minLength {
		s.Searching = false
		s.Open = false
		s.Results = nil
		return s, false
	}
	s.Searching = true
	return s, true
}

// ResolveSearch applies a finished search unless a newer one has started.
func ResolveSearch(s SearchState, r SearchResult) SearchState {
	if r.Gen != s.Gen || r.Term != s.Term {
		return s
	}
	s.Results = r.Results
	s.Searching = false
	s.Open = true
	return s
}

// CloseSearch hides the results, e.g. after a click outside the box.
func CloseSearch(s SearchState) SearchState {
	s.Open = false
	return s
}

// NoMatches is the "explore new product" state: a completed search with no results.
func (s SearchState) NoMatches() bool {
	return s.Open && !s.Searching && len(s.Results) == 0
}
