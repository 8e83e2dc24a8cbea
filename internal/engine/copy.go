package engine

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/logging/events"
	"github.com/andornaut/filectrl/internal/task"
)

// copyPath copies source to dest, recursing into directories. A directory
// created here is removed again, with everything copied into it, when the
// copy fails.
func (e *Engine) copyPath(t *task.Task, deb *debouncer, source fsys.PathInfo, dest string) (err error) {
	if !source.IsDir {
		return e.copyFile(t, deb, source, dest)
	}
	if source.IsSymlink {
		return fmt.Errorf("cannot copy symlinked directory %s", source.Path)
	}
	if err := e.fs.Mkdir(dest, source.Mode.Perm()|0o700); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() {
		if err != nil {
			e.fs.RemoveAll(dest)
		}
	}()
	entries, err := e.fs.ReadDir(source.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", source.Path, err)
	}
	for _, entry := range entries {
		// Symlinked directories are not followed.
		if entry.IsDir && entry.IsSymlink {
			continue
		}
		if err := e.copyPath(t, deb, entry, filepath.Join(dest, entry.Name)); err != nil {
			return err
		}
	}
	return nil
}

// copyFile streams source into a new file at dest. A partially written
// destination is removed on failure.
func (e *Engine) copyFile(t *task.Task, deb *debouncer, source fsys.PathInfo, dest string) (err error) {
	in, err := e.fs.Open(source.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", source.Path, err)
	}
	defer in.Close()

	out, err := e.fs.Create(dest, source.Mode.Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dest, cerr)
		}
		if err != nil {
			e.fs.Remove(dest)
		}
	}()

	size := BufferSize(source.Size, e.minBuffer, e.maxBuffer)
	if size == 0 {
		// Empty by the last stat; still read to EOF in case it grew.
		size = e.minBuffer
	}
	buf := make([]byte, size)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write %s: %w", dest, werr)
			}
			t.Increment(uint64(n))
			// The terminal snapshot reports completion.
			if deb.add(uint64(n)) && !t.IsComplete() {
				events.Task.Progress(t.ID(), t.Completed(), t.Total())
				e.emit(*t)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("read %s: %w", source.Path, rerr)
		}
	}
}
