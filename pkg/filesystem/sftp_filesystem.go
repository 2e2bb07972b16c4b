package filesystem

import (
	"fmt"
	"path"

	krfs "github.com/kr/fs"
	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for a vault on an SFTP server.
// The scan is sequential, so a single client serves every request.
type SFTPFileSystem struct {
	client *sftp.Client
}

// NewSFTPFileSystem creates a new SFTP filesystem on an established client.
func NewSFTPFileSystem(client *sftp.Client) *SFTPFileSystem {
	return &SFTPFileSystem{client: client}
}

// Create creates or truncates a remote file for writing.
func (fs *SFTPFileSystem) Create(filePath string) (File, error) {
	file, err := fs.client.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", filePath, err)
	}

	return file, nil
}

// Dir returns all but the last element of a remote path.
func (fs *SFTPFileSystem) Dir(filePath string) string {
	return path.Dir(filePath)
}

// Join joins remote path elements with forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return fs.client.Join(elem...)
}

// Open opens a remote file for reading.
func (fs *SFTPFileSystem) Open(filePath string) (File, error) {
	file, err := fs.client.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", filePath, err)
	}

	return file, nil
}

// Stat returns remote file information, following symbolic links.
// SFTP v3 carries no creation time, so CreateTime mirrors ModTime.
func (fs *SFTPFileSystem) Stat(filePath string) (FileInfo, error) {
	info, err := fs.client.Stat(filePath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat remote file %s: %w", filePath, err)
	}

	return FileInfo{
		Name:       info.Name(),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		CreateTime: info.ModTime(),
		IsDir:      info.IsDir(),
		IsRegular:  info.Mode().IsRegular(),
	}, nil
}

// Walk returns the client's walker over the remote tree.
func (fs *SFTPFileSystem) Walk(root string) *krfs.Walker {
	return fs.client.Walk(root)
}
