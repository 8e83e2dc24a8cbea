package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/fsys"
)

// Clipboard remembers one path to copy or move into another directory, and
// yanks paths to the system clipboard.
type Clipboard struct {
	dispatcher.Base
	entry    fsys.PathInfo
	op       command.ClipboardOp
	dir      fsys.PathInfo
	selected fsys.PathInfo
	write    func(string) error
}

func newClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) ShouldReceiveMouse(int, int) bool { return false }

func (c *Clipboard) HandleCommand(cmd command.Command) command.Result {
	switch cm := cmd.(type) {
	case command.SetDirectory:
		c.dir = cm.Dir
		return command.Handled()
	case command.SetSelected:
		c.selected = cm.Path
		return command.Handled()
	case command.SetClipboard:
		c.entry = cm.Path
		c.op = cm.Op
		return command.Handled()
	case command.Paste:
		return c.paste()
	}
	return command.NotHandled()
}

func (c *Clipboard) HandleKey(k tea.Key) command.Result {
	switch {
	case matches(k, keys.Copy):
		return c.set(command.ClipboardCopy)
	case matches(k, keys.Cut):
		return c.set(command.ClipboardCut)
	case matches(k, keys.Paste):
		return command.Derive(command.Paste{})
	case matches(k, keys.Yank):
		if c.selected.Path == "" {
			return command.Handled()
		}
		if err := c.write(c.selected.Path); err != nil {
			return command.Derive(command.AddError{Message: fmt.Sprintf("Cannot yank %s: %v", c.selected.Path, err)})
		}
		return command.Handled()
	}
	return command.NotHandled()
}

func (c *Clipboard) set(op command.ClipboardOp) command.Result {
	if c.selected.Path == "" {
		return command.Handled()
	}
	return command.Derive(command.SetClipboard{Path: c.selected, Op: op})
}

// paste copies the entry into the current directory, or moves it and
// forgets it.
func (c *Clipboard) paste() command.Result {
	if c.entry.Path == "" {
		return command.Derive(command.AddError{Message: "Nothing to paste"})
	}
	if c.op == command.ClipboardCut {
		entry := c.entry
		c.entry = fsys.PathInfo{}
		return command.Derive(command.Move{Source: entry, DestDir: c.dir})
	}
	return command.Derive(command.Copy{Source: c.entry, DestDir: c.dir})
}

// Entry reports the remembered path and operation.
func (c *Clipboard) Entry() (fsys.PathInfo, command.ClipboardOp) {
	return c.entry, c.op
}
