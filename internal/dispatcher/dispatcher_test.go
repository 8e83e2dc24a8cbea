package dispatcher

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/fsys"
)

// node is a scriptable handler recording what it was offered.
type node struct {
	Base
	children []Handler
	onCmd    func(command.Command) command.Result
	onKey    func(tea.Key) command.Result
	keyMode  *command.InputMode
	seen     []string
	mouseHit int
}

func (n *node) HandleCommand(cmd command.Command) command.Result {
	n.seen = append(n.seen, command.Describe(cmd))
	if n.onCmd == nil {
		return command.NotHandled()
	}
	return n.onCmd(cmd)
}

func (n *node) HandleKey(key tea.Key) command.Result {
	n.seen = append(n.seen, "key:"+key.String())
	if n.onKey == nil {
		return command.NotHandled()
	}
	return n.onKey(key)
}

func (n *node) HandleMouse(tea.MouseEvent) command.Result {
	n.mouseHit++
	return command.Handled()
}

func (n *node) ShouldReceiveKey(mode command.InputMode) bool {
	if n.keyMode != nil {
		return mode == *n.keyMode
	}
	return n.Base.ShouldReceiveKey(mode)
}

func (n *node) Children() []Handler { return n.children }

type root struct {
	node
	mode command.InputMode
}

func (r *root) InputMode() command.InputMode { return r.mode }

func dirInfo(path string) fsys.PathInfo {
	return fsys.PathInfo{Path: path, Name: filepath.Base(path), IsDir: true}
}

func enter() command.Key { return command.Key{Key: tea.Key{Type: tea.KeyEnter}} }

func TestDerivedChainResolvesWithinChainLengthPlusOne(t *testing.T) {
	c := &node{onCmd: func(cmd command.Command) command.Result {
		if _, ok := cmd.(command.SetDirectory); ok {
			return command.Handled()
		}
		return command.NotHandled()
	}}
	b := &node{onCmd: func(cmd command.Command) command.Result {
		if change, ok := cmd.(command.ChangeDir); ok {
			return command.Derive(command.SetDirectory{Dir: dirInfo(change.Path)})
		}
		return command.NotHandled()
	}}
	a := &node{onKey: func(key tea.Key) command.Result {
		return command.Derive(command.ChangeDir{Path: "/tmp"})
	}}
	tree := &root{node: node{children: []Handler{a, b, c}}}

	out, err := New(tree, nil).Broadcast([]command.Command{enter()})
	require.NoError(t, err)
	assert.False(t, out.Quit)
	assert.LessOrEqual(t, out.Passes, 4)
	assert.Equal(t, 3, out.Passes)
	assert.Contains(t, c.seen, "SetDirectory(/tmp, 0 entries)")
}

func TestPreOrderVisitsParentBeforeChildren(t *testing.T) {
	var order []string
	record := func(name string) func(command.Command) command.Result {
		return func(command.Command) command.Result {
			order = append(order, name)
			return command.Handled()
		}
	}
	leaf1 := &node{onCmd: record("leaf1")}
	leaf2 := &node{onCmd: record("leaf2")}
	mid := &node{onCmd: record("mid"), children: []Handler{leaf1}}
	tree := &root{node: node{onCmd: record("root"), children: []Handler{mid, leaf2}}}

	_, err := New(tree, nil).Broadcast([]command.Command{command.RefreshDir{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "mid", "leaf1", "leaf2"}, order)
}

func TestEveryHandlerSeesNonInputCommands(t *testing.T) {
	first := &node{onCmd: func(command.Command) command.Result { return command.Handled() }}
	second := &node{}
	tree := &root{node: node{children: []Handler{first, second}}}

	_, err := New(tree, nil).Broadcast([]command.Command{command.ClearErrors{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ClearErrors{}"}, second.seen)
}

func TestQuitTerminatesBatch(t *testing.T) {
	quitter := &node{onKey: func(tea.Key) command.Result { return command.Derive(command.Quit{}) }}
	tree := &root{node: node{children: []Handler{quitter}}}

	out, err := New(tree, nil).Broadcast([]command.Command{
		enter(),
		command.Rename{NewName: "nobody owns this"},
	})
	require.NoError(t, err)
	assert.True(t, out.Quit)
	assert.Equal(t, 1, out.Passes)
}

func TestQuitInInitialBatch(t *testing.T) {
	out, err := New(&root{}, nil).Broadcast([]command.Command{command.Quit{}})
	require.NoError(t, err)
	assert.True(t, out.Quit)
	assert.Zero(t, out.Passes)
}

func TestUnhandledSemanticCommandIsFatal(t *testing.T) {
	tree := &root{node: node{children: []Handler{&node{}}}}

	out, err := New(tree, nil).Broadcast([]command.Command{command.RefreshDir{}, enter()})
	require.Error(t, err)
	var unhandled *UnhandledError
	require.True(t, errors.As(err, &unhandled))
	assert.Equal(t, []command.Command{command.RefreshDir{}}, unhandled.Commands)
	assert.Contains(t, err.Error(), "RefreshDir")
	assert.Equal(t, MaxPasses, out.Passes)
}

func TestUnhandledInputIsDropped(t *testing.T) {
	tree := &root{node: node{children: []Handler{&node{}}}}
	_, err := New(tree, nil).Broadcast([]command.Command{
		enter(),
		command.Mouse{MouseEvent: tea.MouseEvent{X: 3, Y: 3}},
	})
	require.NoError(t, err)
}

func TestKeysAreGatedByInputMode(t *testing.T) {
	prompt := command.ModePrompt
	normal := &node{}
	promptOnly := &node{keyMode: &prompt}
	tree := &root{node: node{children: []Handler{normal, promptOnly}}}
	d := New(tree, nil)

	_, err := d.Broadcast([]command.Command{enter()})
	require.NoError(t, err)
	assert.NotEmpty(t, normal.seen)
	assert.Empty(t, promptOnly.seen)

	normal.seen = nil
	tree.mode = command.ModePrompt
	_, err = d.Broadcast([]command.Command{enter()})
	require.NoError(t, err)
	assert.Empty(t, normal.seen)
	assert.NotEmpty(t, promptOnly.seen)
}

func TestMouseIsGatedByRenderedArea(t *testing.T) {
	top := &node{}
	top.SetArea(command.Rect{X: 0, Y: 0, Width: 10, Height: 2})
	bottom := &node{}
	bottom.SetArea(command.Rect{X: 0, Y: 2, Width: 10, Height: 5})
	tree := &root{node: node{children: []Handler{top, bottom}}}

	_, err := New(tree, nil).Broadcast([]command.Command{
		command.Mouse{MouseEvent: tea.MouseEvent{X: 4, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}},
	})
	require.NoError(t, err)
	assert.Zero(t, top.mouseHit)
	assert.Equal(t, 1, bottom.mouseHit)
}

func TestStepDrainsBus(t *testing.T) {
	handler := &node{onCmd: func(command.Command) command.Result { return command.Handled() }}
	bus := command.NewBus(4)
	d := New(&root{node: node{children: []Handler{handler}}}, bus)

	out, err := d.Step()
	require.NoError(t, err)
	assert.Zero(t, out.Passes)

	bus.Sender().Send(command.ClearErrors{})
	bus.Sender().Send(command.RefreshDir{})
	out, err = d.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, out.Passes)
	assert.Equal(t, []string{"ClearErrors{}", "RefreshDir{}"}, handler.seen)
}

func TestSetMaxPasses(t *testing.T) {
	d := New(&root{}, nil)
	d.SetMaxPasses(2)
	out, err := d.Broadcast([]command.Command{command.RefreshDir{}})
	require.Error(t, err)
	assert.Equal(t, 2, out.Passes)
}
