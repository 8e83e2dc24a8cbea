package state

import "github.com/andornaut/filectrl/internal/fsys"

// Listing encapsulates the state of one displayed directory: its entries,
// the cursor, the viewport offset, and the active filter.
type Listing struct {
	Dir            fsys.PathInfo
	Full           []fsys.PathInfo
	Items          []fsys.PathInfo
	Filter         string
	ShowHidden     bool
	Cursor         int
	ViewportOffset int
}

// NewListing constructs an empty Listing.
func NewListing(showHidden bool) *Listing {
	return &Listing{ShowHidden: showHidden}
}

// IndexOf returns the visible index of path, or -1.
func (l *Listing) IndexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.Path == path {
			return i
		}
	}
	return -1
}

// Selected returns the entry under the cursor.
func (l *Listing) Selected() (fsys.PathInfo, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return fsys.PathInfo{}, false
	}
	return l.Items[l.Cursor], true
}

// Update replaces the entries. Within the same directory the cursor stays on
// the previously selected path when it still exists; a new directory resets
// the cursor, viewport, and filter.
func (l *Listing) Update(dir fsys.PathInfo, entries []fsys.PathInfo) {
	prev, hadPrev := l.Selected()
	prevCursor := l.Cursor
	sameDir := dir.Path == l.Dir.Path
	l.Dir = dir
	l.Full = CloneEntries(entries)
	if !sameDir {
		l.Filter = ""
		l.Cursor = 0
		l.ViewportOffset = 0
		l.applyFilter()
		return
	}
	l.applyFilter()
	if hadPrev {
		if idx := l.IndexOf(prev.Path); idx >= 0 {
			l.Cursor = idx
			return
		}
	}
	// The selected entry vanished; keep the same row.
	l.Cursor = prevCursor
	l.clampCursor()
}

// SetShowHidden toggles dot-file visibility, keeping the cursor on the same
// entry where possible.
func (l *Listing) SetShowHidden(show bool) {
	if l.ShowHidden == show {
		return
	}
	prev, hadPrev := l.Selected()
	l.ShowHidden = show
	l.applyFilter()
	if hadPrev {
		if idx := l.IndexOf(prev.Path); idx >= 0 {
			l.Cursor = idx
		}
	}
}

func (l *Listing) clampCursor() {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}
