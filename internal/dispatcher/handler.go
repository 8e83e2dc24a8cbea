package dispatcher

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/command"
)

// Handler is a node in the component tree. Every method has a sensible
// default in Base, so components override only what they care about.
type Handler interface {
	// HandleCommand is offered every non-input command.
	HandleCommand(cmd command.Command) command.Result
	// HandleKey is offered a key when ShouldReceiveKey accepts the mode.
	HandleKey(key tea.Key) command.Result
	// HandleMouse is offered a mouse event inside the last rendered area.
	HandleMouse(ev tea.MouseEvent) command.Result
	// Children are visited after the handler itself, in order.
	Children() []Handler
	ShouldReceiveKey(mode command.InputMode) bool
	ShouldReceiveMouse(x, y int) bool
}

// ModeProvider is implemented by the root handler to report the current
// input mode. Roots that do not implement it are always in normal mode.
type ModeProvider interface {
	InputMode() command.InputMode
}

// Base supplies no-op defaults. Embed it and record the render area with
// SetArea to receive mouse events.
type Base struct {
	area command.Rect
}

func (*Base) HandleCommand(command.Command) command.Result { return command.NotHandled() }
func (*Base) HandleKey(tea.Key) command.Result             { return command.NotHandled() }
func (*Base) HandleMouse(tea.MouseEvent) command.Result    { return command.NotHandled() }
func (*Base) Children() []Handler                          { return nil }

// ShouldReceiveKey accepts keys in normal mode only.
func (*Base) ShouldReceiveKey(mode command.InputMode) bool {
	return mode == command.ModeNormal
}

// ShouldReceiveMouse accepts events inside the last rendered area.
func (b *Base) ShouldReceiveMouse(x, y int) bool {
	return b.area.Contains(x, y)
}

// SetArea records where the handler was last drawn.
func (b *Base) SetArea(r command.Rect) { b.area = r }

// Area returns the last rendered area.
func (b *Base) Area() command.Rect { return b.area }
