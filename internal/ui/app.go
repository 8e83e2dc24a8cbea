package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
)

// App is the root of the component tree. It owns the terminal size and the
// input mode, and lays the children out top to bottom: header, table,
// notices, and the prompt or key help.
type App struct {
	dispatcher.Base
	width  int
	height int

	fileSystem *FileSystem
	header     *Header
	table      *Table
	notices    *Notices
	clipboard  *Clipboard
	prompt     *Prompt
	help       help.Model
}

func (a *App) InputMode() command.InputMode {
	if a.prompt.IsOpen() {
		return command.ModePrompt
	}
	return command.ModeNormal
}

func (a *App) Children() []dispatcher.Handler {
	return []dispatcher.Handler{a.fileSystem, a.header, a.table, a.clipboard, a.prompt, a.notices}
}

// ShouldReceiveKey accepts every mode so ctrl+c always quits.
func (a *App) ShouldReceiveKey(command.InputMode) bool { return true }

func (a *App) ShouldReceiveMouse(int, int) bool { return false }

func (a *App) HandleKey(k tea.Key) command.Result {
	if matches(k, keys.ForceQuit) {
		return command.Derive(command.Quit{})
	}
	if a.InputMode() == command.ModeNormal && matches(k, keys.Quit) {
		return command.Derive(command.Quit{})
	}
	return command.NotHandled()
}

func (a *App) HandleCommand(cmd command.Command) command.Result {
	if c, ok := cmd.(command.Resize); ok {
		a.width = c.Width
		a.height = c.Height
		a.help.Width = c.Width
		return command.Handled()
	}
	return command.NotHandled()
}

// View renders the layout and records each child's area for mouse routing.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	width := a.width
	y := 0
	place := func(h interface{ SetArea(command.Rect) }, height int) {
		h.SetArea(command.Rect{X: 0, Y: y, Width: width, Height: height})
		y += height
	}

	headerRows := min(headerHeight, a.height)
	footerRows := 1
	noticeRows := min(a.notices.height(), max(a.height-headerRows-footerRows-2, 0))
	tableRows := max(a.height-headerRows-noticeRows-footerRows, 0)

	if a.height <= headerRows+tableRows+noticeRows {
		footerRows = 0
	}

	// Sections that get no rows still record an empty area.
	sections := make([]string, 0, 4)
	place(a.header, headerRows)
	sections = append(sections, a.header.view(width, headerRows))
	place(a.table, tableRows)
	if tableRows > 0 {
		sections = append(sections, a.table.view(width, tableRows))
	}
	place(a.notices, noticeRows)
	if noticeRows > 0 {
		sections = append(sections, a.notices.view(width, noticeRows))
	}
	place(a.prompt, footerRows)
	if footerRows > 0 {
		sections = append(sections, a.footer(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) footer(width int) string {
	if a.prompt.IsOpen() {
		return a.prompt.view(width)
	}
	return truncateText(a.help.View(keys), width)
}
