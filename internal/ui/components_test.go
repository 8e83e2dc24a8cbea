package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/task"
)

func progressed(t task.Task, n uint64) task.Task {
	t.Increment(n)
	return t
}

func finished(t task.Task) task.Task {
	t.Done()
	return t
}

func failed(t task.Task, msg string) task.Task {
	t.Fail(msg)
	return t
}

func TestNoticesKeepLatestSnapshotPerTask(t *testing.T) {
	n := newNotices()
	first := task.New(100, "copy a")
	second := task.New(10, "copy b")

	n.HandleCommand(command.Progress{Task: first})
	n.HandleCommand(command.Progress{Task: second})
	n.HandleCommand(command.Progress{Task: progressed(first, 40)})

	tasks := n.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID(), tasks[0].ID())
	assert.Equal(t, uint64(40), tasks[0].Completed())

	// A late initial snapshot does not roll progress back.
	n.HandleCommand(command.Progress{Task: first})
	assert.Equal(t, uint64(40), n.Tasks()[0].Completed())

	done := finished(first)
	n.HandleCommand(command.Progress{Task: done})
	n.HandleCommand(command.Progress{Task: progressed(first, 50)})
	assert.Equal(t, task.StatusDone, n.Tasks()[0].Status())
}

func TestNoticesDropFinishedTasksOnDirectoryChangeOrClear(t *testing.T) {
	n := newNotices()
	running := progressed(task.New(10, "running"), 1)
	done := finished(task.New(10, "done"))
	broken := failed(task.New(10, "broken"), "disk full")
	for _, tk := range []task.Task{running, done, broken} {
		n.HandleCommand(command.Progress{Task: tk})
	}

	n.HandleCommand(command.SetDirectory{Dir: fsys.PathInfo{Path: "/a"}})
	require.Len(t, n.Tasks(), 1)
	assert.Equal(t, running.ID(), n.Tasks()[0].ID())

	n.HandleCommand(command.Progress{Task: finished(running)})
	n.HandleCommand(command.SetDirectory{Dir: fsys.PathInfo{Path: "/a"}})
	assert.Len(t, n.Tasks(), 1, "refreshing the same directory keeps tasks")

	n.HandleCommand(command.ClearProgress{})
	assert.Empty(t, n.Tasks())
}

func TestNoticesErrors(t *testing.T) {
	n := newNotices()
	n.HandleCommand(command.AddError{Message: "one"})
	n.HandleCommand(command.AddError{Message: "two"})
	assert.Equal(t, []string{"one", "two"}, n.Errors())
	assert.Equal(t, 2, n.height())

	res := n.HandleKey(tea.Key{Type: tea.KeyCtrlL})
	assert.Equal(t, command.ClearErrors{}, res.Derived())

	n.HandleCommand(command.ClearErrors{})
	assert.Empty(t, n.Errors())
	res = n.HandleKey(tea.Key{Type: tea.KeyCtrlL})
	assert.Equal(t, command.ClearProgress{}, res.Derived())
}

func TestNoticesClearErrorsAfterSuccess(t *testing.T) {
	n := newNotices()
	n.HandleCommand(command.SetDirectory{Dir: fsys.PathInfo{Path: "/a"}})

	n.HandleCommand(command.AddError{Message: "source and destination are the same"})
	n.HandleCommand(command.Progress{Task: progressed(task.New(10, "copy"), 5)})
	n.HandleCommand(command.Progress{Task: failed(task.New(10, "move"), "denied")})
	assert.Len(t, n.Errors(), 1, "unfinished and failed tasks keep errors")

	n.HandleCommand(command.Progress{Task: finished(task.New(10, "copy"))})
	assert.Empty(t, n.Errors())

	n.HandleCommand(command.AddError{Message: "Nothing to paste"})
	n.HandleCommand(command.SetDirectory{Dir: fsys.PathInfo{Path: "/a"}})
	assert.Len(t, n.Errors(), 1, "refreshing the same directory keeps errors")
	n.HandleCommand(command.SetDirectory{Dir: fsys.PathInfo{Path: "/b"}})
	assert.Empty(t, n.Errors())
}

func TestNoticesKeepNewestErrors(t *testing.T) {
	n := newNotices()
	for i := 0; i < maxErrors+3; i++ {
		n.HandleCommand(command.AddError{Message: fmt.Sprintf("error %d", i)})
	}
	errs := n.Errors()
	require.Len(t, errs, maxErrors)
	assert.Equal(t, "error 3", errs[0])
	assert.Equal(t, fmt.Sprintf("error %d", maxErrors+2), errs[maxErrors-1])
}

func TestNoticesView(t *testing.T) {
	n := newNotices()
	n.HandleCommand(command.Progress{Task: progressed(task.New(2048, "copy big"), 1024)})
	n.HandleCommand(command.Progress{Task: failed(task.New(1, "Delete x"), "permission denied")})
	n.HandleCommand(command.AddError{Message: "boom"})

	view := n.view(100, 10)
	assert.Contains(t, view, "copy big")
	assert.Contains(t, view, "1.0 KiB / 2.0 KiB")
	assert.Contains(t, view, "permission denied")
	assert.Contains(t, view, "Error: boom")

	assert.NotContains(t, n.view(100, 1), "boom")
}

func TestClipboardPaste(t *testing.T) {
	c := newClipboard()
	dir := fsys.PathInfo{Path: "/dest", IsDir: true}
	file := fsys.PathInfo{Path: "/src/a.txt", Name: "a.txt"}
	c.HandleCommand(command.SetDirectory{Dir: dir})

	res := c.HandleCommand(command.Paste{})
	assert.IsType(t, command.AddError{}, res.Derived())

	c.HandleCommand(command.SetClipboard{Path: file, Op: command.ClipboardCopy})
	assert.Equal(t, command.Copy{Source: file, DestDir: dir}, c.HandleCommand(command.Paste{}).Derived())
	assert.Equal(t, command.Copy{Source: file, DestDir: dir}, c.HandleCommand(command.Paste{}).Derived(), "copies can be pasted repeatedly")

	c.HandleCommand(command.SetClipboard{Path: file, Op: command.ClipboardCut})
	assert.Equal(t, command.Move{Source: file, DestDir: dir}, c.HandleCommand(command.Paste{}).Derived())
	assert.IsType(t, command.AddError{}, c.HandleCommand(command.Paste{}).Derived())
}

func TestClipboardKeysNeedSelection(t *testing.T) {
	c := newClipboard()
	res := c.HandleKey(tea.Key{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.True(t, res.IsHandled())
	assert.Nil(t, res.Derived())

	file := fsys.PathInfo{Path: "/src/a.txt", Name: "a.txt"}
	c.HandleCommand(command.SetSelected{Path: file})
	res = c.HandleKey(tea.Key{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, command.SetClipboard{Path: file, Op: command.ClipboardCut}, res.Derived())

	c.write = func(string) error { return errors.New("no clipboard utility") }
	res = c.HandleKey(tea.Key{Type: tea.KeyRunes, Runes: []rune("y")})
	require.IsType(t, command.AddError{}, res.Derived())
	assert.Contains(t, res.Derived().(command.AddError).Message, "no clipboard utility")
}

func TestPromptRenameFlow(t *testing.T) {
	p := newPrompt()
	file := fsys.PathInfo{Path: "/src/a.txt", Name: "a.txt"}
	p.HandleCommand(command.SetSelected{Path: file})
	p.HandleCommand(command.OpenPrompt{Kind: command.PromptRename})
	require.True(t, p.IsOpen())
	assert.True(t, p.ShouldReceiveKey(command.ModePrompt))
	assert.False(t, p.ShouldReceiveKey(command.ModeNormal))

	// Enter without changes closes without renaming.
	res := p.HandleKey(tea.Key{Type: tea.KeyEnter})
	assert.Nil(t, res.Derived())
	assert.False(t, p.IsOpen())

	p.HandleCommand(command.OpenPrompt{Kind: command.PromptRename})
	p.HandleKey(tea.Key{Type: tea.KeyRunes, Runes: []rune("2")})
	res = p.HandleKey(tea.Key{Type: tea.KeyEnter})
	assert.Equal(t, command.Rename{Path: file, NewName: "a.txt2"}, res.Derived())
}

func TestPromptEscape(t *testing.T) {
	p := newPrompt()
	p.HandleCommand(command.OpenPrompt{Kind: command.PromptRename})
	res := p.HandleKey(tea.Key{Type: tea.KeyEsc})
	assert.Equal(t, command.ClosePrompt{}, res.Derived())
	res = p.HandleCommand(command.ClosePrompt{})
	assert.True(t, res.IsHandled())
	assert.Nil(t, res.Derived())
	assert.False(t, p.IsOpen())

	// Closing twice is harmless.
	assert.True(t, p.HandleCommand(command.ClosePrompt{}).IsHandled())
}

func TestFileSystemChangeDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	fs := newFileSystem(fsys.OS{}, nil, nil, command.NewBus(1).Sender(), "true")

	res := fs.HandleCommand(command.ChangeDir{Path: file})
	require.IsType(t, command.AddError{}, res.Derived())
	assert.Contains(t, res.Derived().(command.AddError).Message, "Not a directory")

	// Nothing to refresh or leave before the first listing.
	assert.Nil(t, fs.HandleCommand(command.RefreshDir{}).Derived())
	assert.Nil(t, fs.HandleCommand(command.BackDir{}).Derived())

	res = fs.HandleCommand(command.ChangeDir{Path: dir})
	require.IsType(t, command.SetDirectory{}, res.Derived())
	assert.Len(t, res.Derived().(command.SetDirectory).Entries, 1)
}

func TestFileSystemRefreshesAfterFinishedTask(t *testing.T) {
	fs := newFileSystem(fsys.OS{}, nil, nil, command.NewBus(1).Sender(), "true")
	running := progressed(task.New(10, "copy"), 1)
	assert.False(t, fs.HandleCommand(command.Progress{Task: running}).IsHandled())
	assert.Equal(t, command.RefreshDir{}, fs.HandleCommand(command.Progress{Task: finished(running)}).Derived())
}

func TestFileSystemRenameValidation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), nil, 0o644))
	fs := newFileSystem(fsys.OS{}, nil, nil, command.NewBus(1).Sender(), "true")
	fs.HandleCommand(command.ChangeDir{Path: dir})
	a := fsys.PathInfo{Path: filepath.Join(dir, "a"), Name: "a"}

	for _, name := range []string{"", "..", "x/y", "b"} {
		res := fs.HandleCommand(command.Rename{Path: a, NewName: name})
		assert.IsType(t, command.AddError{}, res.Derived(), "name %q", name)
	}
	res := fs.HandleCommand(command.Rename{Path: a, NewName: "c"})
	require.IsType(t, command.SetDirectory{}, res.Derived())
	assert.FileExists(t, filepath.Join(dir, "c"))
}

type recordingWatcher struct{ dirs []string }

func (w *recordingWatcher) Watch(dir string) error {
	w.dirs = append(w.dirs, dir)
	return nil
}

func TestFileSystemRetargetsWatcher(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	w := &recordingWatcher{}
	fs := newFileSystem(fsys.OS{}, nil, w, command.NewBus(1).Sender(), "true")

	fs.HandleCommand(command.ChangeDir{Path: dir})
	fs.HandleCommand(command.ChangeDir{Path: filepath.Join(dir, "sub")})
	fs.HandleCommand(command.BackDir{})
	fs.HandleCommand(command.RefreshDir{})
	assert.Equal(t, []string{dir, filepath.Join(dir, "sub"), dir}, w.dirs)
}
