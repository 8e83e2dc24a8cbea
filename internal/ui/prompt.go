package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/fsys"
)

// Prompt is the single-line input used for filtering and renaming. While it
// is open the application is in prompt mode and only the prompt receives
// keys. Filtering is applied as the user types; cancelling restores the
// previous filter.
type Prompt struct {
	dispatcher.Base
	input    textinput.Model
	open     bool
	kind     command.PromptKind
	target   fsys.PathInfo
	selected fsys.PathInfo
	filter   string
	original string
}

func newPrompt() *Prompt {
	input := textinput.New()
	input.PromptStyle = *styles.Prompt
	input.TextStyle = *styles.PromptText
	input.PlaceholderStyle = *styles.PromptPlaceholder
	input.Cursor.Style = *styles.Cursor
	// Blink messages never reach the input.
	input.Cursor.SetMode(cursor.CursorStatic)
	return &Prompt{input: input}
}

// IsOpen reports whether the prompt currently takes keyboard input.
func (p *Prompt) IsOpen() bool {
	return p.open
}

// Value returns the text typed so far.
func (p *Prompt) Value() string {
	return p.input.Value()
}

func (p *Prompt) ShouldReceiveKey(mode command.InputMode) bool {
	return mode == command.ModePrompt
}

func (p *Prompt) HandleCommand(cmd command.Command) command.Result {
	switch c := cmd.(type) {
	case command.SetSelected:
		p.selected = c.Path
		return command.Handled()
	case command.SetFilter:
		p.filter = c.Filter
		return command.Handled()
	case command.OpenPrompt:
		p.start(c.Kind)
		return command.Handled()
	case command.ClosePrompt:
		if !p.open {
			return command.Handled()
		}
		kind := p.kind
		p.close()
		if kind == command.PromptFilter && p.filter != p.original {
			return command.Derive(command.SetFilter{Filter: p.original})
		}
		return command.Handled()
	}
	return command.NotHandled()
}

func (p *Prompt) start(kind command.PromptKind) {
	p.kind = kind
	p.open = true
	switch kind {
	case command.PromptRename:
		p.target = p.selected
		p.input.Prompt = "Rename: "
		p.input.Placeholder = "new name"
		p.input.SetValue(p.selected.Name)
	default:
		p.original = p.filter
		p.input.Prompt = "/"
		p.input.Placeholder = "filter"
		p.input.SetValue(p.filter)
	}
	p.input.CursorEnd()
	p.input.Focus()
}

func (p *Prompt) close() {
	p.open = false
	p.input.Blur()
	p.input.Reset()
}

func (p *Prompt) HandleKey(k tea.Key) command.Result {
	switch k.Type {
	case tea.KeyEsc:
		return command.Derive(command.ClosePrompt{})
	case tea.KeyEnter:
		return p.submit()
	}
	before := p.input.Value()
	p.input, _ = p.input.Update(tea.KeyMsg(k))
	if p.kind == command.PromptFilter && p.input.Value() != before {
		return command.Derive(command.SetFilter{Filter: p.input.Value()})
	}
	return command.Handled()
}

func (p *Prompt) submit() command.Result {
	value := p.input.Value()
	kind := p.kind
	target := p.target
	p.close()
	switch kind {
	case command.PromptRename:
		if value == target.Name {
			return command.Handled()
		}
		return command.Derive(command.Rename{Path: target, NewName: value})
	default:
		if value == p.filter {
			return command.Handled()
		}
		return command.Derive(command.SetFilter{Filter: value})
	}
}

func (p *Prompt) view(width int) string {
	p.input.Width = width - len([]rune(p.input.Prompt)) - 1
	return truncateText(p.input.View(), width)
}
