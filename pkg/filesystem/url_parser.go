package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Exported constants.
const (
	// DefaultSFTPPort is used when an sftp:// URL names no port
	DefaultSFTPPort = 22
)

// Exported variables.
var (
	ErrMissingHost = errors.New("SFTP URL must include host")
	ErrMissingUser = errors.New("SFTP URL must include username (sftp://user@host/path)")
)

// ParsedPath represents either a local vault path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string
}

// ParsePath parses a vault location, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format sftp://user@host[:port]/path, for example:
//   - sftp://joe@nas.local/Documents/vault (relative to the remote home)
//   - sftp://joe@nas.local:2222//srv/vault (absolute remote path)
//   - /home/joe/vault (local path)
func ParsePath(location string) (*ParsedPath, error) {
	if strings.HasPrefix(location, "sftp://") {
		return parseSFTPURL(location)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: location,
	}, nil
}

// String renders the location back into the form ParsePath accepts.
func (p *ParsedPath) String() string {
	if !p.IsRemote {
		return p.LocalPath
	}

	remote := "/" + p.Path
	if p.Path == "." {
		remote = ""
	}

	return fmt.Sprintf("sftp://%s@%s:%d%s", p.User, p.Host, p.Port, remote)
}

func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, ErrMissingUser
	}

	host := u.Hostname()
	if host == "" {
		return nil, ErrMissingHost
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		port = p
	}

	// sftp://user@host/path  → relative to the home directory
	// sftp://user@host//path → absolute path /path
	// sftp://user@host       → the home directory itself
	remotePath := u.Path
	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
		Path:     remotePath,
	}, nil
}
