package state

// Cursor and viewport movement over the visible entries. Every Move method
// reports whether the selected row changed so the table knows when to
// announce a new selection.

// clamp limits v to [lo, hi]; hi below lo yields lo.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// maxOffset is the largest viewport offset that still fills rows rows.
func (l *Listing) maxOffset(rows int) int {
	return max(len(l.Items)-rows, 0)
}

// MoveCursorHome selects the first visible entry.
func (l *Listing) MoveCursorHome() bool {
	return l.moveCursorTo(0)
}

// MoveCursorEnd selects the last visible entry.
func (l *Listing) MoveCursorEnd() bool {
	return l.moveCursorTo(len(l.Items) - 1)
}

// MoveCursorUp selects the entry above the cursor.
func (l *Listing) MoveCursorUp() bool {
	return l.moveCursorTo(max(l.Cursor, 0) - 1)
}

// MoveCursorDown selects the entry below the cursor.
func (l *Listing) MoveCursorDown() bool {
	return l.moveCursorTo(max(l.Cursor, 0) + 1)
}

// MoveCursorPageUp moves the cursor one screen of rows up.
func (l *Listing) MoveCursorPageUp(rows int) bool {
	return l.moveCursorTo(max(l.Cursor, 0) - l.pageSize(rows))
}

// MoveCursorPageDown moves the cursor one screen of rows down.
func (l *Listing) MoveCursorPageDown(rows int) bool {
	return l.moveCursorTo(max(l.Cursor, 0) + l.pageSize(rows))
}

// SetCursor selects the visible entry at idx, as a mouse click does. Indexes
// outside the listing are ignored.
func (l *Listing) SetCursor(idx int) bool {
	if idx < 0 || idx >= len(l.Items) || idx == l.Cursor {
		return false
	}
	l.Cursor = idx
	return true
}

// moveCursorTo selects idx, clamped to the listing. An empty listing parks
// the cursor on 0.
func (l *Listing) moveCursorTo(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(idx, 0, len(l.Items)-1)
	return l.Cursor != old
}

// pageSize is the paging step: the visible row count, bounded by the number
// of entries.
func (l *Listing) pageSize(rows int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	if rows <= 0 || rows > total {
		return total
	}
	return rows
}

// ScrollBy moves the viewport by delta rows, as the mouse wheel does, and
// drags the cursor along so the selected entry stays on screen. It reports
// whether the viewport moved.
func (l *Listing) ScrollBy(delta, rows int) bool {
	if len(l.Items) == 0 || rows <= 0 {
		return false
	}
	old := l.ViewportOffset
	l.ViewportOffset = clamp(l.ViewportOffset+delta, 0, l.maxOffset(rows))
	l.Cursor = clamp(l.Cursor, l.ViewportOffset, l.ViewportOffset+rows-1)
	return l.ViewportOffset != old
}

// EnsureCursorVisible scrolls the viewport the least amount needed to show
// the selected entry in a table of rows rows.
func (l *Listing) EnsureCursorVisible(rows int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if rows <= 0 {
		l.ViewportOffset = 0
		return
	}
	offset := clamp(l.ViewportOffset, 0, l.maxOffset(rows))
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor > offset+rows-1:
		offset = clamp(l.Cursor-rows+1, 0, l.maxOffset(rows))
	}
	l.ViewportOffset = offset
}
