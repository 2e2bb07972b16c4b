package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"
	"time"

	krfs "github.com/kr/fs"
)

// Exported constants.
const (
	OpCreate  Op = "create"
	OpLstat   Op = "lstat"
	OpOpen    Op = "open"
	OpReadDir Op = "readdir"
	OpStat    Op = "stat"
)

// maxSymlinkHops bounds symlink resolution, like ELOOP on Linux.
const maxSymlinkHops = 40

// Op names a MockFileSystem operation that can be made to fail.
type Op string

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths use forward slashes. It satisfies both FileSystem and kr/fs.FileSystem,
// so walks run through the same kr/fs walker as the real backends.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	failures map[failureKey]error
	opens    map[string]int
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string]*mockFile),
		failures: make(map[failureKey]error),
		opens:    make(map[string]int),
	}
}

// AddDir adds a directory (and any missing parents) to the mock filesystem.
func (m *MockFileSystem) AddDir(dirPath string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath = path.Clean(dirPath)
	m.mkdirAllLocked(path.Dir(dirPath), modTime)
	m.files[dirPath] = &mockFile{mode: fs.ModeDir | 0o755, modTime: modTime, createTime: modTime}
}

// AddFile adds a regular file whose creation and modification times are both modTime.
func (m *MockFileSystem) AddFile(filePath string, content []byte, modTime time.Time) {
	m.AddFileWithTimes(filePath, content, modTime, modTime)
}

// AddFileWithTimes adds a regular file with distinct creation and modification times.
func (m *MockFileSystem) AddFileWithTimes(filePath string, content []byte, created, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	m.mkdirAllLocked(path.Dir(filePath), modified)
	m.files[filePath] = &mockFile{
		data:       append([]byte(nil), content...),
		mode:       0o644,
		modTime:    modified,
		createTime: created,
	}
}

// AddSpecial adds a non-regular entry such as a named pipe or socket.
func (m *MockFileSystem) AddSpecial(filePath string, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	m.mkdirAllLocked(path.Dir(filePath), time.Time{})
	m.files[filePath] = &mockFile{mode: mode}
}

// AddSymlink adds a symbolic link. Relative targets resolve against the link's directory.
func (m *MockFileSystem) AddSymlink(linkPath, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath = path.Clean(linkPath)
	m.mkdirAllLocked(path.Dir(linkPath), time.Time{})
	m.files[linkPath] = &mockFile{mode: fs.ModeSymlink | 0o777, target: target}
}

// Create creates or truncates a file. The parent directory must exist.
func (m *MockFileSystem) Create(filePath string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	if err := m.failureLocked(OpCreate, filePath); err != nil {
		return nil, err
	}

	parent, ok := m.files[path.Dir(filePath)]
	if !ok || !parent.mode.IsDir() {
		return nil, &fs.PathError{Op: string(OpCreate), Path: filePath, Err: fs.ErrNotExist}
	}

	if existing, ok := m.files[filePath]; ok && existing.mode.IsDir() {
		return nil, &fs.PathError{Op: string(OpCreate), Path: filePath, Err: fmt.Errorf("is a directory")}
	}

	return &mockFileHandle{fs: m, path: filePath, writer: &bytes.Buffer{}}, nil
}

// Dir returns all but the last element of a slash-separated path.
func (m *MockFileSystem) Dir(filePath string) string {
	return path.Dir(filePath)
}

// Exists checks if a path exists in the mock filesystem.
func (m *MockFileSystem) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.files[path.Clean(filePath)]

	return exists
}

// FailOn makes every future op on filePath return err.
func (m *MockFileSystem) FailOn(op Op, filePath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failures[failureKey{op: op, path: path.Clean(filePath)}] = err
}

// GetFile retrieves a file's content from the mock filesystem.
func (m *MockFileSystem) GetFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[path.Clean(filePath)]
	if !exists {
		return nil, os.ErrNotExist
	}

	if file.mode.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}

	return append([]byte(nil), file.data...), nil
}

// Join joins path elements with forward slashes.
func (m *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// ListFiles returns all paths in the mock filesystem, sorted.
func (m *MockFileSystem) ListFiles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

// Lstat returns information about filePath without following symbolic links.
func (m *MockFileSystem) Lstat(filePath string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	if err := m.failureLocked(OpLstat, filePath); err != nil {
		return nil, err
	}

	file, exists := m.files[filePath]
	if !exists {
		return nil, &fs.PathError{Op: string(OpLstat), Path: filePath, Err: fs.ErrNotExist}
	}

	return file.info(path.Base(filePath)), nil
}

// Open opens a file for reading, following symbolic links.
func (m *MockFileSystem) Open(filePath string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	if err := m.failureLocked(OpOpen, filePath); err != nil {
		return nil, err
	}

	m.opens[filePath]++

	file, _, err := m.resolveLocked(filePath)
	if err != nil {
		return nil, &fs.PathError{Op: string(OpOpen), Path: filePath, Err: err}
	}

	if file.mode.IsDir() {
		return nil, &fs.PathError{Op: string(OpOpen), Path: filePath, Err: fmt.Errorf("is a directory")}
	}

	return &mockFileHandle{fs: m, path: filePath, reader: bytes.NewReader(file.data)}, nil
}

// OpenCount reports how many times Open was called for filePath.
func (m *MockFileSystem) OpenCount(filePath string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.opens[path.Clean(filePath)]
}

// ReadDir lists the direct children of dirname sorted by name.
func (m *MockFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dirname = path.Clean(dirname)
	if err := m.failureLocked(OpReadDir, dirname); err != nil {
		return nil, err
	}

	dir, exists := m.files[dirname]
	if !exists {
		return nil, &fs.PathError{Op: string(OpReadDir), Path: dirname, Err: fs.ErrNotExist}
	}

	if !dir.mode.IsDir() {
		return nil, &fs.PathError{Op: string(OpReadDir), Path: dirname, Err: fmt.Errorf("not a directory")}
	}

	var infos []os.FileInfo
	for p, file := range m.files {
		if p != dirname && path.Dir(p) == dirname {
			infos = append(infos, file.info(path.Base(p)))
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	return infos, nil
}

// Stat returns file information, following symbolic links.
func (m *MockFileSystem) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	if err := m.failureLocked(OpStat, filePath); err != nil {
		return FileInfo{}, err
	}

	file, _, err := m.resolveLocked(filePath)
	if err != nil {
		return FileInfo{}, &fs.PathError{Op: string(OpStat), Path: filePath, Err: err}
	}

	return FileInfo{
		Name:       path.Base(filePath),
		Size:       int64(len(file.data)),
		ModTime:    file.modTime,
		CreateTime: file.createTime,
		IsDir:      file.mode.IsDir(),
		IsRegular:  file.mode.IsRegular(),
	}, nil
}

// Walk returns a kr/fs walker over the in-memory tree.
func (m *MockFileSystem) Walk(root string) *krfs.Walker {
	return krfs.WalkFS(path.Clean(root), m)
}

func (m *MockFileSystem) failureLocked(op Op, filePath string) error {
	if err, ok := m.failures[failureKey{op: op, path: filePath}]; ok {
		return &fs.PathError{Op: string(op), Path: filePath, Err: err}
	}

	return nil
}

// mkdirAllLocked creates dirPath and its parents; assumes the lock is held.
func (m *MockFileSystem) mkdirAllLocked(dirPath string, modTime time.Time) {
	if dirPath == "." || dirPath == "/" {
		return
	}

	m.mkdirAllLocked(path.Dir(dirPath), modTime)

	if _, exists := m.files[dirPath]; !exists {
		m.files[dirPath] = &mockFile{mode: fs.ModeDir | 0o755, modTime: modTime, createTime: modTime}
	}
}

// resolveLocked follows symbolic links from filePath to a non-link entry.
func (m *MockFileSystem) resolveLocked(filePath string) (*mockFile, string, error) {
	for range maxSymlinkHops {
		file, exists := m.files[filePath]
		if !exists {
			return nil, "", fs.ErrNotExist
		}

		if file.mode&fs.ModeSymlink == 0 {
			return file, filePath, nil
		}

		target := file.target
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(filePath), target)
		}
		filePath = path.Clean(target)
	}

	return nil, "", fmt.Errorf("too many levels of symbolic links")
}

type failureKey struct {
	op   Op
	path string
}

// mockFile represents an entry in the mock filesystem.
type mockFile struct {
	data       []byte
	mode       fs.FileMode
	modTime    time.Time
	createTime time.Time
	target     string
}

func (f *mockFile) info(name string) *mockFileInfo {
	return &mockFileInfo{name: name, size: int64(len(f.data)), mode: f.mode, modTime: f.modTime}
}

// mockFileInfo implements os.FileInfo for mock entries.
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *mockFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Sys() any           { return nil }

// mockFileHandle implements the File interface for reading or writing.
type mockFileHandle struct {
	fs     *MockFileSystem
	path   string
	reader *bytes.Reader
	writer *bytes.Buffer
	closed bool
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	if f.writer == nil {
		return nil
	}

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	now := time.Now()
	f.fs.files[f.path] = &mockFile{data: f.writer.Bytes(), mode: 0o644, modTime: now, createTime: now}

	return nil
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	if f.reader == nil {
		return 0, io.EOF
	}

	return f.reader.Read(p)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	if f.writer == nil {
		return 0, fmt.Errorf("%s: opened read-only", f.path)
	}

	return f.writer.Write(p)
}

// Compile-time interface checks.
var (
	_ FileSystem      = (*MockFileSystem)(nil)
	_ FileSystem      = (*RealFileSystem)(nil)
	_ FileSystem      = (*SFTPFileSystem)(nil)
	_ krfs.FileSystem = (*MockFileSystem)(nil)
)
