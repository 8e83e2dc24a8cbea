// Package dispatcher broadcasts commands through the component tree until the
// chain of derived commands settles.
//
// A batch is processed in at most MaxPasses passes. Every pass offers each
// pending command to every handler in pre-order. Derived commands form the
// next pass together with any command nothing handled. Whatever is still
// pending after the last pass is either dropped (raw input) or reported as an
// UnhandledError, since every semantic command must have an owner.
package dispatcher

import (
	"fmt"
	"strings"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/logging/events"
)

// MaxPasses bounds derived-command chains. The longest chain in the
// application is key -> semantic -> semantic -> terminal.
const MaxPasses = 5

// UnhandledError lists semantic commands no handler consumed.
type UnhandledError struct {
	Commands []command.Command
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("unhandled commands: %s", strings.Join(describeAll(e.Commands), ", "))
}

// Outcome summarises one processed batch.
type Outcome struct {
	Passes int
	Quit   bool
}

// Dispatcher is the single consumer of the command Bus.
type Dispatcher struct {
	root      Handler
	bus       *command.Bus
	maxPasses int
}

// New builds a Dispatcher that drains bus into the tree rooted at root.
func New(root Handler, bus *command.Bus) *Dispatcher {
	return &Dispatcher{root: root, bus: bus, maxPasses: MaxPasses}
}

// SetMaxPasses overrides the pass bound; values below one are ignored.
func (d *Dispatcher) SetMaxPasses(n int) {
	if n > 0 {
		d.maxPasses = n
	}
}

// Step drains the commands queued on the Bus and broadcasts them.
func (d *Dispatcher) Step() (Outcome, error) {
	if d.bus == nil {
		return Outcome{}, nil
	}
	batch := d.bus.Drain()
	if len(batch) == 0 {
		return Outcome{}, nil
	}
	return d.Broadcast(batch)
}

// Broadcast runs the pass loop for cmds. A Quit anywhere in a pass's input
// ends the batch successfully, even if other commands were left unhandled.
func (d *Dispatcher) Broadcast(cmds []command.Command) (Outcome, error) {
	events.Dispatch.Batch(len(cmds))
	var out Outcome
	pending := cmds
	for pass := 1; pass <= d.maxPasses && len(pending) > 0; pass++ {
		if containsQuit(pending) {
			events.Dispatch.Quit(out.Passes)
			out.Quit = true
			return out, nil
		}
		out.Passes = pass
		events.Dispatch.Pass(pass, describeAll(pending))
		next := make([]command.Command, 0, len(pending))
		for _, cmd := range pending {
			handled, derived := d.deliver(d.root, cmd)
			next = append(next, derived...)
			if !handled {
				next = append(next, cmd)
			}
		}
		pending = next
	}
	if containsQuit(pending) {
		events.Dispatch.Quit(out.Passes)
		out.Quit = true
		return out, nil
	}

	var unhandled []command.Command
	for _, cmd := range pending {
		if !command.IsInput(cmd) {
			unhandled = append(unhandled, cmd)
		}
	}
	if len(unhandled) > 0 {
		events.Dispatch.Unhandled(describeAll(unhandled))
		return out, &UnhandledError{Commands: unhandled}
	}
	return out, nil
}

// deliver offers cmd to h and then to its subtree. It reports whether any
// node handled it, plus the commands they derived in visit order.
func (d *Dispatcher) deliver(h Handler, cmd command.Command) (bool, []command.Command) {
	var (
		handled bool
		derived []command.Command
	)
	if res, ok := d.offer(h, cmd); ok && res.IsHandled() {
		handled = true
		if next := res.Derived(); next != nil {
			derived = append(derived, next)
		}
	}
	for _, child := range h.Children() {
		if child == nil {
			continue
		}
		childHandled, childDerived := d.deliver(child, cmd)
		handled = handled || childHandled
		derived = append(derived, childDerived...)
	}
	return handled, derived
}

// offer invokes the handler method matching cmd when gating allows it.
func (d *Dispatcher) offer(h Handler, cmd command.Command) (command.Result, bool) {
	switch c := cmd.(type) {
	case command.Key:
		if !h.ShouldReceiveKey(d.mode()) {
			return command.Result{}, false
		}
		return h.HandleKey(c.Key), true
	case command.Mouse:
		if !h.ShouldReceiveMouse(c.X, c.Y) {
			return command.Result{}, false
		}
		return h.HandleMouse(c.MouseEvent), true
	default:
		return h.HandleCommand(cmd), true
	}
}

// mode is read per delivery so a handler switching modes affects later
// commands of the same pass.
func (d *Dispatcher) mode() command.InputMode {
	if p, ok := d.root.(ModeProvider); ok {
		return p.InputMode()
	}
	return command.ModeNormal
}

func containsQuit(cmds []command.Command) bool {
	for _, cmd := range cmds {
		if command.IsQuit(cmd) {
			return true
		}
	}
	return false
}

func describeAll(cmds []command.Command) []string {
	out := make([]string, len(cmds))
	for i, cmd := range cmds {
		out[i] = command.Describe(cmd)
	}
	return out
}
