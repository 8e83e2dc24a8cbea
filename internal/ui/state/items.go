package state

import "github.com/andornaut/filectrl/internal/fsys"

// CloneEntries produces a shallow copy of the provided entries.
func CloneEntries(entries []fsys.PathInfo) []fsys.PathInfo {
	dup := make([]fsys.PathInfo, len(entries))
	copy(dup, entries)
	return dup
}

func visibleEntries(entries []fsys.PathInfo, showHidden bool) []fsys.PathInfo {
	if showHidden {
		return entries
	}
	out := make([]fsys.PathInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsHidden() {
			out = append(out, entry)
		}
	}
	return out
}
