// Package engine runs copy, move and delete operations on worker goroutines.
//
// Every operation answers the caller synchronously with a Progress command
// holding a fresh Task, so the UI can show the operation at once, and then
// streams further Progress snapshots through the command Bus from the worker
// that owns the Task. Workers are never cancelled; they run to completion or
// failure and report failures as Task errors rather than panicking.
package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/logging/events"
	"github.com/andornaut/filectrl/internal/task"
)

// Config configures an Engine.
type Config struct {
	FS        fsys.FileSystem
	Sender    command.Sender
	MinBuffer uint64
	MaxBuffer uint64
}

func (c *Config) defaults() error {
	if c.Sender == nil {
		return fmt.Errorf("sender is required")
	}
	if c.FS == nil {
		c.FS = fsys.OS{}
	}
	if c.MinBuffer == 0 {
		return fmt.Errorf("minimum buffer size must be positive")
	}
	if c.MaxBuffer < c.MinBuffer {
		return fmt.Errorf("maximum buffer size %d is smaller than minimum %d", c.MaxBuffer, c.MinBuffer)
	}
	return nil
}

// Engine spawns one worker per file operation.
type Engine struct {
	fs        fsys.FileSystem
	sender    command.Sender
	minBuffer uint64
	maxBuffer uint64

	wg sync.WaitGroup
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		fs:        cfg.FS,
		sender:    cfg.Sender,
		minBuffer: cfg.MinBuffer,
		maxBuffer: cfg.MaxBuffer,
	}, nil
}

// Wait blocks until every worker started so far has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Copy copies source into destDir.
func (e *Engine) Copy(source, destDir fsys.PathInfo) command.Result {
	dest, total, err := e.prepare(source, destDir)
	if err != nil {
		return command.Derive(command.AddError{Message: err.Error()})
	}
	t := task.New(total, fmt.Sprintf("Copy %s to %s", source.Name, destDir.Path))
	events.Task.Start(t.ID(), "copy", source.Path, dest, total)
	e.spawn(t, func(t *task.Task) error {
		return e.copyPath(t, newDebouncer(total), source, dest)
	})
	return command.Derive(command.Progress{Task: t})
}

// Move renames source into destDir, falling back to copy and delete when the
// rename crosses filesystems.
func (e *Engine) Move(source, destDir fsys.PathInfo) command.Result {
	dest, total, err := e.prepare(source, destDir)
	if err != nil {
		return command.Derive(command.AddError{Message: err.Error()})
	}
	t := task.New(total, fmt.Sprintf("Move %s to %s", source.Name, destDir.Path))
	events.Task.Start(t.ID(), "move", source.Path, dest, total)
	e.spawn(t, func(t *task.Task) error {
		err := e.fs.Rename(source.Path, dest)
		if err == nil || !fsys.IsCrossDevice(err) {
			return err
		}
		if err := e.copyPath(t, newDebouncer(total), source, dest); err != nil {
			return err
		}
		if err := e.removePath(source); err != nil {
			return fmt.Errorf("Copy succeeded, but failed to delete the original %s: %w", source.Path, err)
		}
		return nil
	})
	return command.Derive(command.Progress{Task: t})
}

// Delete removes path, recursively for directories. It reports only the
// terminal status.
func (e *Engine) Delete(path fsys.PathInfo) command.Result {
	t := task.New(1, fmt.Sprintf("Delete %s", path.Name))
	events.Task.Start(t.ID(), "delete", path.Path, "", 1)
	e.spawn(t, func(*task.Task) error {
		return e.removePath(path)
	})
	return command.Derive(command.Progress{Task: t})
}

// spawn runs work on a new goroutine that owns t and publishes its terminal
// snapshot unconditionally.
func (e *Engine) spawn(t task.Task, work func(*task.Task) error) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := work(&t); err != nil {
			t.Fail(err.Error())
			events.Task.Error(t.ID(), t.Message())
		} else {
			t.Done()
			events.Task.Done(t.ID())
		}
		e.emit(t)
	}()
}

func (e *Engine) emit(t task.Task) {
	e.sender.Send(command.Progress{Task: t})
}

// prepare resolves the destination path, rejects user errors and measures
// the bytes to transfer.
func (e *Engine) prepare(source, destDir fsys.PathInfo) (string, uint64, error) {
	dest := filepath.Join(destDir.Path, filepath.Base(source.Path))
	if filepath.Clean(source.Path) == dest {
		return "", 0, fmt.Errorf("source and destination are the same: %s", dest)
	}
	if source.IsDir && isWithin(destDir.Path, source.Path) {
		return "", 0, fmt.Errorf("cannot copy %s into itself", source.Path)
	}
	if _, err := e.fs.Stat(dest); err == nil {
		return "", 0, fmt.Errorf("destination already exists: %s", dest)
	}
	total, err := e.measure(source)
	if err != nil {
		return "", 0, fmt.Errorf("cannot read %s: %w", source.Path, err)
	}
	return dest, total, nil
}

func isWithin(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// measure sums the size of every regular file under p.
func (e *Engine) measure(p fsys.PathInfo) (uint64, error) {
	info, err := e.fs.Stat(p.Path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir {
		return info.Size, nil
	}
	if info.IsSymlink {
		return 0, nil
	}
	entries, err := e.fs.ReadDir(info.Path)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, entry := range entries {
		if entry.IsDir && entry.IsSymlink {
			continue
		}
		n, err := e.measure(entry)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (e *Engine) removePath(p fsys.PathInfo) error {
	if p.IsDir && !p.IsSymlink {
		return e.fs.RemoveAll(p.Path)
	}
	return e.fs.Remove(p.Path)
}
