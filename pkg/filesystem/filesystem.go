// Package filesystem provides an abstraction layer over the storage a vault lives on
// so the scanner can run against local disks, SFTP servers and in-memory fixtures.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	krfs "github.com/kr/fs"
)

// File is an interface that abstracts file operations.
// This allows us to work with real, remote and mock files alike.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// FileInfo contains metadata about a file.
// This is our own type (not os.FileInfo) so backends can report a creation time.
type FileInfo struct {
	// Name is the base name of the file
	Name string

	// Size is the file size in bytes
	Size int64

	// ModTime is the modification time
	ModTime time.Time

	// CreateTime is the birth time where the platform records one, otherwise the
	// inode change time, otherwise ModTime
	CreateTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool

	// IsRegular indicates a regular file (not a device, pipe or socket)
	IsRegular bool
}

// FileSystem is an interface that abstracts filesystem operations.
// This allows for dependency injection and testing with mock implementations.
type FileSystem interface {
	// Walk returns a pre-order walker over the tree rooted at root. Entries are
	// reported with Lstat semantics, so symbolic links are never descended.
	Walk(root string) *krfs.Walker

	// Stat returns file information, following symbolic links.
	Stat(path string) (FileInfo, error)

	Open(path string) (File, error)
	Create(path string) (File, error)

	// Join and Dir manipulate paths using the backend's separator.
	Join(elem ...string) string
	Dir(path string) string
}

// RealFileSystem implements FileSystem using actual os/filepath functions.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Create creates or truncates a file for writing.
func (fs *RealFileSystem) Create(path string) (File, error) {
	file, err := os.Create(path) // #nosec G304 - artifact paths are built from the vault root
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, nil
}

// Dir returns all but the last element of path.
func (fs *RealFileSystem) Dir(path string) string {
	return filepath.Dir(path)
}

// Join joins path elements with the OS separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Open opens a file for reading.
func (fs *RealFileSystem) Open(path string) (File, error) {
	file, err := os.Open(path) // #nosec G304 - file path comes from walking the vault
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// Stat returns file information, following symbolic links.
func (fs *RealFileSystem) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return FileInfo{
		Name:       info.Name(),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		CreateTime: creationTime(times.Get(info)),
		IsDir:      info.IsDir(),
		IsRegular:  info.Mode().IsRegular(),
	}, nil
}

// Walk returns a walker over the local tree. A root that is itself a symbolic
// link is resolved first so the vault can live behind a link.
func (fs *RealFileSystem) Walk(root string) *krfs.Walker {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	return krfs.Walk(root)
}

// creationTime picks the best available approximation of a creation time.
func creationTime(ts times.Timespec) time.Time {
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}

	if ts.HasChangeTime() {
		return ts.ChangeTime()
	}

	return ts.ModTime()
}
