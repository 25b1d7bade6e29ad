// Package state holds the route prompt's suggestion list: the candidates, the
// current query, the filtered view and the highlighted entry.
package state

import (
	"sort"
	"strings"

	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggestions filters route candidates as the visitor types.
type Suggestions struct {
	Full   []menu.Item
	Items  []menu.Item
	Query  string
	Cursor int
	// Limit caps Items to the rows the prompt shows. Zero keeps them all.
	Limit int
}

// NewSuggestions builds a suggestion list over candidates.
func NewSuggestions(candidates []menu.Item) *Suggestions {
	s := &Suggestions{}
	s.UpdateCandidates(candidates)
	return s
}

// UpdateCandidates replaces the candidate list and re-applies the query.
func (s *Suggestions) UpdateCandidates(candidates []menu.Item) {
	s.Full = menu.CloneItems(candidates)
	s.applyQuery()
}

// SetQuery filters the candidates by query and moves the cursor to the best
// match.
func (s *Suggestions) SetQuery(query string) {
	s.Query = query
	s.applyQuery()
	if idx := BestMatchIndex(s.Items, query); idx >= 0 {
		s.Cursor = idx
	}
}

// SetLimit caps the filtered list at n entries so the cursor never lands on
// a suggestion that is not drawn.
func (s *Suggestions) SetLimit(n int) {
	s.Limit = n
	s.applyQuery()
}

func (s *Suggestions) applyQuery() {
	s.Items = FilterItems(s.Full, s.Query)
	if s.Limit > 0 && len(s.Items) > s.Limit {
		s.Items = s.Items[:s.Limit]
	}
	if len(s.Items) == 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
}

// Selected returns the highlighted suggestion.
func (s *Suggestions) Selected() (menu.Item, bool) {
	if len(s.Items) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return menu.Item{}, false
	}
	return s.Items[s.Cursor], true
}

// MoveCursor moves the highlight by delta, wrapping at either end.
func (s *Suggestions) MoveCursor(delta int) bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = ((s.Cursor+delta)%n + n) % n
	return old != s.Cursor
}

// FilterItems returns the candidates matching query. Targets and labels are
// both searched; fuzzy ranks decide the order when the query is not empty.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return menu.CloneItems(items)
	}
	best := make(map[int]int, len(items))
	rank := func(haystack []string) {
		for _, r := range fuzzy.RankFindNormalizedFold(trimmed, haystack) {
			if d, ok := best[r.OriginalIndex]; !ok || r.Distance < d {
				best[r.OriginalIndex] = r.Distance
			}
		}
	}
	rank(menu.Targets(items))
	rank(menu.Labels(items))
	if len(best) == 0 {
		return []menu.Item{}
	}
	order := make([]int, 0, len(best))
	for idx := range best {
		order = append(order, idx)
	}
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := best[order[i]], best[order[j]]
		if di != dj {
			return di < dj
		}
		return order[i] < order[j]
	})
	filtered := make([]menu.Item, len(order))
	for i, idx := range order {
		filtered[i] = items[idx]
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided items.
func BestMatchIndex(items []menu.Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Target, trimmed) || strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Target), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	return 0
}
