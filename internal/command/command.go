// Package command defines the values that flow between producers (the input
// pump, task workers, the directory watcher) and the component tree.
//
// Commands are immutable. A handler never mutates the command it receives; it
// answers with a Result that may carry one new command for the next pass.
// Slices carried by a command (SetDirectory.Entries) are never written after
// the command is created, so handlers that keep them must copy.
package command

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/task"
)

// Command is the closed set of intents and events.
type Command interface {
	isCommand()
}

// Key is a raw key press.
type Key struct {
	tea.Key
}

// Mouse is a raw mouse event in screen cells.
type Mouse struct {
	tea.MouseEvent
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

// AddError surfaces a user-facing error message.
type AddError struct {
	Message string
}

type ClearErrors struct{}

// ChangeDir navigates to Path.
type ChangeDir struct {
	Path string
}

// BackDir navigates to the parent of the current directory.
type BackDir struct{}

// RefreshDir re-lists the current directory.
type RefreshDir struct{}

// SetDirectory publishes a freshly listed directory.
type SetDirectory struct {
	Dir     fsys.PathInfo
	Entries []fsys.PathInfo
}

// SetSelected publishes the entry under the cursor. A zero Path means nothing
// is selected.
type SetSelected struct {
	Path fsys.PathInfo
}

type SetFilter struct {
	Filter string
}

// Open opens a directory in the browser or a file with the external opener.
type Open struct {
	Path fsys.PathInfo
}

type Rename struct {
	Path    fsys.PathInfo
	NewName string
}

type Delete struct {
	Path fsys.PathInfo
}

// Copy copies Source into the directory DestDir.
type Copy struct {
	Source  fsys.PathInfo
	DestDir fsys.PathInfo
}

// Move moves Source into the directory DestDir.
type Move struct {
	Source  fsys.PathInfo
	DestDir fsys.PathInfo
}

// ClipboardOp selects what Paste does with the clipboard entry.
type ClipboardOp int

const (
	ClipboardCopy ClipboardOp = iota
	ClipboardCut
)

type SetClipboard struct {
	Path fsys.PathInfo
	Op   ClipboardOp
}

// Paste applies the clipboard entry to the current directory.
type Paste struct{}

// PromptKind selects what a submitted prompt produces.
type PromptKind int

const (
	PromptFilter PromptKind = iota
	PromptRename
)

func (k PromptKind) String() string {
	if k == PromptRename {
		return "rename"
	}
	return "filter"
}

type OpenPrompt struct {
	Kind PromptKind
}

type ClosePrompt struct{}

// Progress carries a snapshot of a background task.
type Progress struct {
	Task task.Task
}

// ClearProgress discards finished task snapshots.
type ClearProgress struct{}

type Quit struct{}

func (Key) isCommand()           {}
func (Mouse) isCommand()         {}
func (Resize) isCommand()        {}
func (AddError) isCommand()      {}
func (ClearErrors) isCommand()   {}
func (ChangeDir) isCommand()     {}
func (BackDir) isCommand()       {}
func (RefreshDir) isCommand()    {}
func (SetDirectory) isCommand()  {}
func (SetSelected) isCommand()   {}
func (SetFilter) isCommand()     {}
func (Open) isCommand()          {}
func (Rename) isCommand()        {}
func (Delete) isCommand()        {}
func (Copy) isCommand()          {}
func (Move) isCommand()          {}
func (SetClipboard) isCommand()  {}
func (Paste) isCommand()         {}
func (OpenPrompt) isCommand()    {}
func (ClosePrompt) isCommand()   {}
func (Progress) isCommand()      {}
func (ClearProgress) isCommand() {}
func (Quit) isCommand()          {}

// IsInput reports raw input events. Unhandled input is expected and dropped;
// every other command must have an owner.
func IsInput(cmd Command) bool {
	switch cmd.(type) {
	case Key, Mouse:
		return true
	default:
		return false
	}
}

// IsQuit reports whether cmd requests termination.
func IsQuit(cmd Command) bool {
	_, ok := cmd.(Quit)
	return ok
}

// Describe renders cmd for logs and error messages.
func Describe(cmd Command) string {
	switch c := cmd.(type) {
	case nil:
		return "<nil>"
	case Key:
		return "Key(" + c.String() + ")"
	case Mouse:
		return fmt.Sprintf("Mouse(%d,%d %s)", c.X, c.Y, c.MouseEvent.String())
	case SetDirectory:
		return fmt.Sprintf("SetDirectory(%s, %d entries)", c.Dir.Path, len(c.Entries))
	case Progress:
		return "Progress(" + c.Task.String() + ")"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T%+v", cmd, cmd), "command.")
}
