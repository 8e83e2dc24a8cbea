package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/format/table"
	"github.com/andornaut/filectrl/internal/fsys"
	uistate "github.com/andornaut/filectrl/internal/ui/state"
)

const wheelStep = 3

// Table lists the current directory.
type Table struct {
	dispatcher.Base
	listing *uistate.Listing
	rows    int
}

func newTable(showHidden bool) *Table {
	return &Table{listing: uistate.NewListing(showHidden)}
}

func (t *Table) HandleCommand(cmd command.Command) command.Result {
	switch c := cmd.(type) {
	case command.SetDirectory:
		t.listing.Update(c.Dir, c.Entries)
		return t.selected()
	case command.SetFilter:
		t.listing.SetFilter(c.Filter)
		return t.selected()
	}
	return command.NotHandled()
}

func (t *Table) HandleKey(k tea.Key) command.Result {
	l := t.listing
	switch {
	case matches(k, keys.Up):
		return t.moved(l.MoveCursorUp())
	case matches(k, keys.Down):
		return t.moved(l.MoveCursorDown())
	case matches(k, keys.PageUp):
		return t.moved(l.MoveCursorPageUp(t.rows))
	case matches(k, keys.PageDown):
		return t.moved(l.MoveCursorPageDown(t.rows))
	case matches(k, keys.Home):
		return t.moved(l.MoveCursorHome())
	case matches(k, keys.End):
		return t.moved(l.MoveCursorEnd())
	case matches(k, keys.Open):
		if entry, ok := l.Selected(); ok {
			return command.Derive(command.Open{Path: entry})
		}
		return command.Handled()
	case matches(k, keys.Back):
		return command.Derive(command.BackDir{})
	case matches(k, keys.Refresh):
		return command.Derive(command.RefreshDir{})
	case matches(k, keys.Delete):
		if entry, ok := l.Selected(); ok {
			return command.Derive(command.Delete{Path: entry})
		}
		return command.Handled()
	case matches(k, keys.Rename):
		if _, ok := l.Selected(); ok {
			return command.Derive(command.OpenPrompt{Kind: command.PromptRename})
		}
		return command.Handled()
	case matches(k, keys.Filter):
		return command.Derive(command.OpenPrompt{Kind: command.PromptFilter})
	case matches(k, keys.ClearFilter):
		if l.Filter == "" {
			return command.NotHandled()
		}
		return command.Derive(command.SetFilter{})
	case matches(k, keys.ToggleHidden):
		l.SetShowHidden(!l.ShowHidden)
		return t.selected()
	}
	return command.NotHandled()
}

// HandleMouse selects the clicked row; clicking the selected row opens it.
func (t *Table) HandleMouse(ev tea.MouseEvent) command.Result {
	l := t.listing
	switch {
	case ev.Button == tea.MouseButtonWheelUp:
		return t.moved(l.ScrollBy(-wheelStep, t.rows))
	case ev.Button == tea.MouseButtonWheelDown:
		return t.moved(l.ScrollBy(wheelStep, t.rows))
	case ev.Button == tea.MouseButtonLeft && ev.Action == tea.MouseActionPress:
		// The first row of the area holds the column titles.
		idx := l.ViewportOffset + ev.Y - t.Area().Y - 1
		if idx < 0 || idx >= len(l.Items) {
			return command.Handled()
		}
		if idx == l.Cursor {
			return command.Derive(command.Open{Path: l.Items[idx]})
		}
		l.SetCursor(idx)
		return t.selected()
	}
	return command.NotHandled()
}

func (t *Table) moved(changed bool) command.Result {
	if !changed {
		return command.Handled()
	}
	return t.selected()
}

func (t *Table) selected() command.Result {
	entry, _ := t.listing.Selected()
	return command.Derive(command.SetSelected{Path: entry})
}

// Filter returns the active filter.
func (t *Table) Filter() string {
	return t.listing.Filter
}

func (t *Table) view(width, height int) string {
	if height <= 0 {
		t.rows = 0
		return ""
	}
	l := t.listing
	t.rows = height - 1
	l.EnsureCursorVisible(t.rows)

	lines := make([]styledLine, 0, height)
	if len(l.Items) == 0 {
		msg := "(empty)"
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		lines = append(lines, styledLine{}, styledLine{text: msg, style: styles.Info})
		return renderLines(padHeight(applyWidth(lines, width), height))
	}

	end := l.ViewportOffset + t.rows
	if end > len(l.Items) {
		end = len(l.Items)
	}
	visible := l.Items[l.ViewportOffset:end]

	rows := make([][]string, 0, len(visible)+1)
	rows = append(rows, []string{"", "Size", "Modified"})
	for _, entry := range visible {
		rows = append(rows, []string{"", entry.HumanSize(), entry.HumanModTime()})
	}
	// The name column takes whatever the fixed columns leave.
	widths := table.Widths(rows)
	nameWidth := width - widths[1] - widths[2] - 2*table.Gap
	if nameWidth < 1 {
		nameWidth = 1
	}
	rows[0][0] = padRight("Name", nameWidth)
	for i, entry := range visible {
		rows[i+1][0] = padRight(truncateText(displayName(entry), nameWidth), nameWidth)
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})

	lines = append(lines, styledLine{text: formatted[0], style: styles.ColumnTitle})
	for i, entry := range visible {
		style := entryStyle(entry)
		if l.ViewportOffset+i == l.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, styledLine{text: formatted[i+1], style: style})
	}
	return renderLines(padHeight(applyWidth(lines, width), height))
}

func displayName(entry fsys.PathInfo) string {
	if entry.IsDir {
		return entry.Name + "/"
	}
	return entry.Name
}

func entryStyle(entry fsys.PathInfo) *lipgloss.Style {
	switch {
	case entry.IsSymlink:
		return styles.Symlink
	case entry.IsHidden():
		return styles.Hidden
	case entry.IsDir:
		return styles.Directory
	default:
		return styles.File
	}
}
