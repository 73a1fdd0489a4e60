package service

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mmcdole/marquee/internal/domain"
)

// MovieIndex implements sahilm/fuzzy.Source over movie titles
type MovieIndex struct {
	movies      []domain.Movie
	lowerTitles []string // Pre-computed lowercase titles
}

// NewMovieIndex indexes the given movies by display title
func NewMovieIndex(movies []domain.Movie) *MovieIndex {
	idx := &MovieIndex{
		movies:      movies,
		lowerTitles: make([]string, len(movies)),
	}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.DisplayTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *MovieIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of movies (implements fuzzy.Source)
func (idx *MovieIndex) Len() int { return len(idx.movies) }

// FilterMatch is a filtered movie with match positions for highlighting
type FilterMatch struct {
	Movie          domain.Movie
	Index          int   // Position in the unfiltered list
	MatchedIndexes []int // Character positions that matched
}

// Filter returns the movies whose titles fuzzy-match query, best first.
// An empty query returns every movie in its original order.
func (idx *MovieIndex) Filter(query string) []FilterMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]FilterMatch, len(idx.movies))
		for i, m := range idx.movies {
			out[i] = FilterMatch{Movie: m, Index: i}
		}
		return out
	}

	matches := sfuzzy.FindFrom(query, idx)
	out := make([]FilterMatch, len(matches))
	for i, match := range matches {
		out[i] = FilterMatch{
			Movie:          idx.movies[match.Index],
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	return out
}

// RankByTitle orders movies by how well their title matches query and
// drops those that do not match at all. Lower score is better.
func RankByTitle(movies []domain.Movie, query string) []domain.Movie {
	query = foldTitle(query)
	if query == "" {
		return movies
	}

	type rankedMovie struct {
		movie domain.Movie
		score int
	}

	ranked := make([]rankedMovie, 0, len(movies))
	for _, m := range movies {
		title := foldTitle(m.Title)
		if !fuzzy.MatchFold(query, title) && !strings.Contains(title, query) {
			continue
		}
		ranked = append(ranked, rankedMovie{movie: m, score: calculateMatchScore(title, query)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = r.movie
	}
	return results
}

// calculateMatchScore calculates a match score for ranking
// Lower score = better match
func calculateMatchScore(title, query string) int {
	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	return 100 + fuzzy.LevenshteinDistance(query, title)
}

// foldTitle lowercases and strips accents so "leon" finds "Léon"
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}
