// Package fsys is the filesystem boundary used by the directory browser and
// the task engine. Everything above it works with PathInfo values and the
// FileSystem interface so tests can substitute failures such as cross-device
// renames.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// PathInfo is an immutable snapshot of a path's metadata.
type PathInfo struct {
	Path      string
	Name      string
	Size      uint64
	Mode      fs.FileMode
	ModTime   time.Time
	IsDir     bool
	IsSymlink bool
}

// FileSystem is the set of operations the browser and the task engine need.
type FileSystem interface {
	Stat(path string) (PathInfo, error)
	ReadDir(path string) ([]PathInfo, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
	RemoveAll(path string) error
	Open(path string) (io.ReadCloser, error)
	// Create fails when path already exists.
	Create(path string, perm fs.FileMode) (io.WriteCloser, error)
	Mkdir(path string, perm fs.FileMode) error
}

// OS implements FileSystem on top of the os package.
type OS struct{}

var _ FileSystem = OS{}

// Stat resolves path to an absolute, cleaned PathInfo. Symlinks report the
// type, size and permissions of their target.
func (OS) Stat(path string) (PathInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return PathInfo{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return PathInfo{}, err
	}
	return fromFileInfo(abs, info), nil
}

// ReadDir lists path, directories first and then by case-insensitive name.
func (o OS) ReadDir(path string) ([]PathInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]PathInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between readdir and lstat.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, fromFileInfo(filepath.Join(path, entry.Name()), info))
	}
	SortEntries(out)
	return out, nil
}

func (OS) Rename(oldPath, newPath string) error { return os.Rename(oldPath, newPath) }

func (OS) Remove(path string) error { return os.Remove(path) }

func (OS) RemoveAll(path string) error { return os.RemoveAll(path) }

func (OS) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

func (OS) Create(path string, perm fs.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

func (OS) Mkdir(path string, perm fs.FileMode) error { return os.Mkdir(path, perm) }

func fromFileInfo(path string, info fs.FileInfo) PathInfo {
	p := PathInfo{
		Path:      path,
		Name:      info.Name(),
		Mode:      info.Mode(),
		ModTime:   info.ModTime(),
		IsDir:     info.IsDir(),
		IsSymlink: info.Mode()&fs.ModeSymlink != 0,
	}
	if size := info.Size(); size > 0 {
		p.Size = uint64(size)
	}
	// Links report their target's size and permissions.
	if p.IsSymlink {
		if target, err := os.Stat(path); err == nil {
			p.IsDir = target.IsDir()
			p.Mode = target.Mode() | fs.ModeSymlink
			p.Size = 0
			if size := target.Size(); size > 0 && !p.IsDir {
				p.Size = uint64(size)
			}
		}
	}
	if p.Name == "" || p.Name == string(filepath.Separator) {
		p.Name = path
	}
	return p
}

// SortEntries orders directories before files and names case-insensitively.
func SortEntries(entries []PathInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// IsCrossDevice reports whether err is the kernel's refusal to rename across
// filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// Parent returns the containing directory, or false at the filesystem root.
func (p PathInfo) Parent() (string, bool) {
	parent := filepath.Dir(p.Path)
	if parent == p.Path {
		return "", false
	}
	return parent, true
}

// IsHidden reports dot-files.
func (p PathInfo) IsHidden() bool {
	return strings.HasPrefix(p.Name, ".")
}

// HumanSize formats the size for display; directories have none.
func (p PathInfo) HumanSize() string {
	if p.IsDir {
		return "-"
	}
	return humanize.IBytes(p.Size)
}

// HumanModTime formats the modification time relative to now.
func (p PathInfo) HumanModTime() string {
	if p.ModTime.IsZero() {
		return ""
	}
	return humanize.Time(p.ModTime)
}

func (p PathInfo) String() string {
	return p.Path
}
