package ui

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/dispatcher"
	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/logging"
	"github.com/andornaut/filectrl/internal/logging/events"
)

// Engine runs background file operations.
type Engine interface {
	Copy(source, destDir fsys.PathInfo) command.Result
	Move(source, destDir fsys.PathInfo) command.Result
	Delete(path fsys.PathInfo) command.Result
}

// DirWatcher follows the displayed directory.
type DirWatcher interface {
	Watch(dir string) error
}

// FileSystem is the non-visual component that owns navigation and file
// operations.
type FileSystem struct {
	dispatcher.Base
	fs      fsys.FileSystem
	engine  Engine
	watcher DirWatcher
	sender  command.Sender
	opener  string
	current fsys.PathInfo
}

func newFileSystem(fs fsys.FileSystem, engine Engine, watcher DirWatcher, sender command.Sender, opener string) *FileSystem {
	return &FileSystem{fs: fs, engine: engine, watcher: watcher, sender: sender, opener: opener}
}

// Current returns the displayed directory.
func (f *FileSystem) Current() fsys.PathInfo {
	return f.current
}

// ShouldReceiveMouse is false: the component is not drawn.
func (f *FileSystem) ShouldReceiveMouse(int, int) bool { return false }

func (f *FileSystem) HandleCommand(cmd command.Command) command.Result {
	switch c := cmd.(type) {
	case command.ChangeDir:
		return f.changeDir(c.Path)
	case command.BackDir:
		parent, ok := f.current.Parent()
		if !ok || f.current.Path == "" {
			return command.Handled()
		}
		return f.changeDir(parent)
	case command.RefreshDir:
		if f.current.Path == "" {
			return command.Handled()
		}
		return f.list(f.current)
	case command.Open:
		return f.open(c.Path)
	case command.Rename:
		return f.rename(c.Path, c.NewName)
	case command.Copy:
		return f.engine.Copy(c.Source, c.DestDir)
	case command.Move:
		return f.engine.Move(c.Source, c.DestDir)
	case command.Delete:
		return f.engine.Delete(c.Path)
	case command.Progress:
		// Finished operations change the listing; in-flight ones are
		// only displayed.
		if c.Task.Status().IsTerminal() {
			return command.Derive(command.RefreshDir{})
		}
	}
	return command.NotHandled()
}

func (f *FileSystem) changeDir(path string) command.Result {
	info, err := f.fs.Stat(path)
	if err != nil {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Cannot open %s: %v", path, err)})
	}
	if !info.IsDir {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Not a directory: %s", info.Path)})
	}
	res := f.list(info)
	if _, ok := res.Derived().(command.SetDirectory); ok && f.watcher != nil {
		if err := f.watcher.Watch(info.Path); err != nil {
			logging.Error(err)
		}
	}
	return res
}

func (f *FileSystem) list(dir fsys.PathInfo) command.Result {
	entries, err := f.fs.ReadDir(dir.Path)
	if err != nil {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Cannot list %s: %v", dir.Path, err)})
	}
	f.current = dir
	events.FS.ChangeDir(dir.Path, len(entries))
	return command.Derive(command.SetDirectory{Dir: dir, Entries: entries})
}

func (f *FileSystem) open(path fsys.PathInfo) command.Result {
	if path.IsDir {
		return f.changeDir(path.Path)
	}
	events.FS.Open(path.Path, f.opener)
	if err := startOpener(f.opener, path.Path, f.sender); err != nil {
		return command.Derive(command.AddError{Message: err.Error()})
	}
	return command.Handled()
}

// startOpener launches opener detached from the UI. A non-zero exit is
// reported through sender once the process ends.
func startOpener(opener, path string, sender command.Sender) error {
	proc := exec.Command(opener, path)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, opener, err)
	}
	go func() {
		if err := proc.Wait(); err != nil {
			sender.Send(command.AddError{Message: fmt.Sprintf("%s %s: %v", opener, path, err)})
		}
	}()
	return nil
}

func (f *FileSystem) rename(path fsys.PathInfo, newName string) command.Result {
	if newName == "" || newName == "." || newName == ".." || filepath.Base(newName) != newName {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Invalid name: %q", newName)})
	}
	dest := filepath.Join(filepath.Dir(path.Path), newName)
	if dest == path.Path {
		return command.Handled()
	}
	if _, err := f.fs.Stat(dest); err == nil {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Already exists: %s", dest)})
	}
	if err := f.fs.Rename(path.Path, dest); err != nil {
		return command.Derive(command.AddError{Message: fmt.Sprintf("Cannot rename %s: %v", path.Name, err)})
	}
	events.FS.Rename(path.Path, dest)
	if f.current.Path == "" {
		return command.Handled()
	}
	return f.list(f.current)
}
