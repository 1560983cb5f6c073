package state

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rank returns the entries matching query in catalog order. A query
// matches an entry by id, by a case-insensitive substring of its label or
// by fuzzy subsequence. A blank query keeps everything.
func Rank(entries []Entry, query string) []Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return append([]Entry(nil), entries...)
	}
	keep := make(map[int]bool)
	for _, r := range fuzzy.RankFindNormalizedFold(q, labels(entries)) {
		keep[r.OriginalIndex] = true
	}
	lower := strings.ToLower(q)
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if keep[i] || e.Key() == q || strings.Contains(strings.ToLower(e.Label()), lower) {
			out = append(out, e)
		}
	}
	return out
}

// BestMatchIndex picks the entry to highlight for query: an exact id or
// title, then a title prefix, then the closest fuzzy match. It returns -1
// for an empty slice.
func BestMatchIndex(entries []Entry, query string) int {
	if len(entries) == 0 {
		return -1
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return 0
	}
	lower := strings.ToLower(q)
	for i, e := range entries {
		if e.Key() == q || strings.EqualFold(e.Title, q) {
			return i
		}
	}
	for i, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Title), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(q, labels(entries))
	if len(ranks) == 0 {
		return 0
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return ranks[0].OriginalIndex
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label()
	}
	return out
}
