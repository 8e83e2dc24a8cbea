package state

import (
	"testing"

	"github.com/andornaut/filectrl/internal/fsys"
)

func TestUpdateKeepsSelectionWithinDirectory(t *testing.T) {
	l := newTestListing("a", "b", "c")
	l.Cursor = 2
	l.Update(l.Dir, entries("a", "aa", "b", "c"))
	if l.Cursor != 3 {
		t.Fatalf("expected cursor to follow 'c' to 3, got %d", l.Cursor)
	}

	l.Update(l.Dir, entries("a", "aa", "b"))
	if l.Cursor != 2 {
		t.Fatalf("expected cursor clamped to 2 after removal, got %d", l.Cursor)
	}
}

func TestUpdateResetsOnDirectoryChange(t *testing.T) {
	l := newTestListing("a", "b", "c")
	l.Cursor = 2
	l.SetFilter("c")
	l.Update(fsys.PathInfo{Path: "/other", Name: "other", IsDir: true}, entries("x", "y"))
	if l.Cursor != 0 || l.Filter != "" || l.ViewportOffset != 0 {
		t.Fatalf("expected reset state, got cursor=%d filter=%q offset=%d", l.Cursor, l.Filter, l.ViewportOffset)
	}
	if len(l.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(l.Items))
	}
}

func TestHiddenEntries(t *testing.T) {
	l := NewListing(false)
	l.Update(fsys.PathInfo{Path: "/dir", IsDir: true}, entries(".git", "main.go"))
	if got := names(l.Items); len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected dot-files hidden, got %v", got)
	}
	l.SetShowHidden(true)
	if len(l.Items) != 2 {
		t.Fatalf("expected dot-files shown, got %v", names(l.Items))
	}
	if selected, _ := l.Selected(); selected.Name != "main.go" {
		t.Fatalf("expected cursor to stay on main.go, got %q", selected.Name)
	}
}
