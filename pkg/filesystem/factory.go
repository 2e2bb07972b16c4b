package filesystem

import (
	"fmt"
)

// CreateFileSystem creates a FileSystem for the given vault location.
// Returns (filesystem, basePath, closer, error).
//   - filesystem: the FileSystem to use for operations
//   - basePath: the path to use with the filesystem (stripped of any URL prefix)
//   - closer: closes the SFTP connection; a no-op for local vaults
func CreateFileSystem(location string) (FileSystem, string, func(), error) {
	parsed, err := ParsePath(location)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed.LocalPath, func() {}, nil
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn.Client()), parsed.Path, closer, nil
}
