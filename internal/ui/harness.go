package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests. Frames
// are stepped explicitly instead of by a timer.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model and runs its Init.
func NewHarness(model *Model) *Harness {
	model.manualFrames = true
	h := &Harness{model: model}
	h.processCmd(model.Init())
	h.Frame()
	return h
}

// Send routes a message through the model, then steps one frame.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.update(msg)
	h.Frame()
}

// Frame drains the pending commands through the dispatcher.
func (h *Harness) Frame() {
	h.update(frameMsg{})
}

// update mirrors the program loop: every message is followed by a render,
// which also records the component areas used for mouse routing.
func (h *Harness) update(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
	h.model.View()
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			h.quit = true
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
