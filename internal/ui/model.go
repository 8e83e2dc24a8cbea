package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/logging"
)

const defaultFrameInterval = 16 * time.Millisecond

type msgHandler func(tea.Msg) tea.Cmd

// frameMsg paces dispatcher steps and renders.
type frameMsg time.Time

// Options wires the model to its collaborators.
type Options struct {
	Bus           *command.Bus
	FS            fsys.FileSystem
	Engine        Engine
	Watcher       DirWatcher
	StartDir      string
	Opener        string
	ShowHidden    bool
	FrameInterval time.Duration
}

// Model implements the Bubble Tea model. It is the input pump and the render
// trigger: terminal messages become commands on the Bus, and every frame
// drains the Bus through the dispatcher before the view is redrawn.
type Model struct {
	app           *App
	bus           *command.Bus
	dispatcher    *dispatcher.Dispatcher
	startDir      string
	frameInterval time.Duration
	manualFrames  bool
	err           error
	quit          bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the component tree.
func NewModel(opts Options) (*Model, error) {
	if opts.Bus == nil {
		return nil, fmt.Errorf("bus is required")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if opts.FS == nil {
		opts.FS = fsys.OS{}
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}
	sender := opts.Bus.Sender()
	app := &App{
		fileSystem: newFileSystem(opts.FS, opts.Engine, opts.Watcher, sender, opts.Opener),
		header:     &Header{},
		table:      newTable(opts.ShowHidden),
		notices:    newNotices(),
		clipboard:  newClipboard(),
		prompt:     newPrompt(),
		help:       help.New(),
	}
	m := &Model{
		app:           app,
		bus:           opts.Bus,
		dispatcher:    dispatcher.New(app, opts.Bus),
		startDir:      opts.StartDir,
		frameInterval: opts.FrameInterval,
	}
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.send(command.ChangeDir{Path: m.startDir})
	return m.nextFrame()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quit || m.err != nil {
		return ""
	}
	return m.app.View()
}

// Err returns the fatal error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	m.send(command.Key{Key: tea.Key(msg.(tea.KeyMsg))})
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	m.send(command.Mouse{MouseEvent: tea.MouseEvent(msg.(tea.MouseMsg))})
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.send(command.Resize{Width: size.Width, Height: size.Height})
	return nil
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	if cmd := m.step(); cmd != nil {
		return cmd
	}
	return m.nextFrame()
}

// step runs the dispatcher once and reports whether the program must stop.
func (m *Model) step() tea.Cmd {
	if m.quit || m.err != nil {
		return tea.Quit
	}
	out, err := m.dispatcher.Step()
	if err != nil {
		logging.Error(err)
		m.err = err
		return tea.Quit
	}
	if out.Quit {
		m.quit = true
		return tea.Quit
	}
	return nil
}

// send queues cmd from the UI goroutine. That goroutine is also the Bus
// consumer, so a full Bus is drained first instead of blocking.
func (m *Model) send(cmd command.Command) {
	sender := m.bus.Sender()
	for !sender.TrySend(cmd) {
		if stop := m.step(); stop != nil {
			return
		}
	}
}

func (m *Model) nextFrame() tea.Cmd {
	if m.manualFrames {
		return nil
	}
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
