package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the normal-mode bindings. Prompt-mode keys are handled by the
// text input.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Open         key.Binding
	Back         key.Binding
	Refresh      key.Binding
	Delete       key.Binding
	Rename       key.Binding
	Filter       key.Binding
	ClearFilter  key.Binding
	ToggleHidden key.Binding
	Copy         key.Binding
	Cut          key.Binding
	Paste        key.Binding
	Yank         key.Binding
	ClearNotices key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

var keys = keyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
	Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Open:         key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
	Back:         key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("⌫", "back")),
	Refresh:      key.NewBinding(key.WithKeys("f5", "ctrl+r"), key.WithHelp("f5", "refresh")),
	Delete:       key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
	Rename:       key.NewBinding(key.WithKeys("r", "f2"), key.WithHelp("r", "rename")),
	Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	ClearFilter:  key.NewBinding(key.WithKeys("esc")),
	ToggleHidden: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden")),
	Copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Cut:          key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut")),
	Paste:        key.NewBinding(key.WithKeys("p", "v"), key.WithHelp("p", "paste")),
	Yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank path")),
	ClearNotices: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
}

// ShortHelp implements help.KeyMap for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Filter, k.Rename, k.Copy, k.Cut, k.Paste, k.Delete, k.Yank, k.ToggleHidden, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Open, k.Back, k.Refresh, k.Filter, k.ToggleHidden},
		{k.Rename, k.Delete, k.Copy, k.Cut, k.Paste, k.Yank},
		{k.ClearNotices, k.Quit},
	}
}

func matches(k tea.Key, binding key.Binding) bool {
	return key.Matches(tea.KeyMsg(k), binding)
}
