package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/fsys"
)

const headerHeight = 2

// Header shows the current directory and details of the selected entry.
// Clicking it navigates to the parent directory.
type Header struct {
	dispatcher.Base
	dir      fsys.PathInfo
	entries  int
	selected fsys.PathInfo
}

func (h *Header) HandleCommand(cmd command.Command) command.Result {
	switch c := cmd.(type) {
	case command.SetDirectory:
		h.dir = c.Dir
		h.entries = len(c.Entries)
		return command.Handled()
	case command.SetSelected:
		h.selected = c.Path
		return command.Handled()
	}
	return command.NotHandled()
}

func (h *Header) HandleMouse(ev tea.MouseEvent) command.Result {
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return command.NotHandled()
	}
	return command.Derive(command.BackDir{})
}

func (h *Header) view(width, height int) string {
	path := h.dir.Path
	if path == "" {
		path = "…"
	}
	lines := []styledLine{
		{text: fmt.Sprintf("%s (%d)", path, h.entries), style: styles.Header},
		{text: h.details(), style: styles.HeaderDetail},
	}
	return renderLines(applyWidth(limitHeight(lines, height, width), width))
}

func (h *Header) details() string {
	s := h.selected
	if s.Path == "" {
		return ""
	}
	parts := []string{s.Name, s.Mode.String(), s.HumanSize(), s.HumanModTime()}
	if s.IsSymlink {
		parts = append(parts, "symlink")
	}
	return strings.Join(parts, "  ")
}
