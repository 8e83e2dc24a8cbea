package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/andornaut/filectrl/internal/fsys"
)

// SetFilter updates the filter query and moves the cursor to the best match.
// Clearing the filter keeps the cursor on the entry it was on.
func (l *Listing) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prev, hadPrev := l.Selected()
	l.Filter = query
	l.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
		l.ViewportOffset = 0
		return
	}
	if hadPrev {
		if idx := l.IndexOf(prev.Path); idx >= 0 {
			l.Cursor = idx
		}
	}
}

func (l *Listing) applyFilter() {
	l.Items = FilterEntries(visibleEntries(l.Full, l.ShowHidden), l.Filter)
	l.clampCursor()
}

// FilterEntries returns entries whose name matches the supplied filter.
func FilterEntries(entries []fsys.PathInfo, query string) []fsys.PathInfo {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneEntries(entries)
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return []fsys.PathInfo{}
	}
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]fsys.PathInfo, 0, len(matches))
	for idx, entry := range entries {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided entries.
func BestMatchIndex(entries []fsys.PathInfo, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(entries) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, entry := range entries {
		if strings.EqualFold(entry.Name, trimmed) {
			return i
		}
	}
	for i, entry := range entries {
		if strings.HasPrefix(strings.ToLower(entry.Name), lower) {
			return i
		}
	}
	for i, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), lower) {
			return i
		}
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.OriginalIndex
}
