package vault

import (
	"strings"
	"time"

	vaulterrors "github.com/joe/vault-map/pkg/errors"
	"github.com/joe/vault-map/pkg/filesystem"
)

// Exported constants.
const (
	// TimestampLayout formats every timestamp in the artifacts, in local time.
	TimestampLayout = "2006-01-02 15:04:05"

	// Unavailable replaces metadata that could not be read.
	Unavailable = "N/A"
)

// Metadata is the stat-derived part of a FileEntry.
type Metadata struct {
	Size      int64
	Created   string
	Modified  string
	Extension string
}

// UnavailableMetadata is the placeholder used when a file cannot be stat'ed.
func UnavailableMetadata() Metadata {
	return Metadata{Size: 0, Created: Unavailable, Modified: Unavailable, Extension: Unavailable}
}

// Inspector reads file metadata through a FileSystem.
type Inspector struct {
	fs filesystem.FileSystem
}

// NewInspector creates an Inspector for fsys.
func NewInspector(fsys filesystem.FileSystem) *Inspector {
	return &Inspector{fs: fsys}
}

// Inspect returns size, timestamps and extension for filePath. Symbolic links
// report their target. Failures are returned classified; callers decide on
// UnavailableMetadata.
func (i *Inspector) Inspect(filePath string) (Metadata, error) {
	info, err := i.fs.Stat(filePath)
	if err != nil {
		return Metadata{}, vaulterrors.Classify(filePath, err)
	}

	return Metadata{
		Size:      info.Size,
		Created:   FormatTimestamp(info.CreateTime),
		Modified:  FormatTimestamp(info.ModTime),
		Extension: Extension(info.Name),
	}, nil
}

// FormatTimestamp renders t in local time with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Extension returns the lower-cased final suffix of name, dot included.
// Dotfiles without a further suffix and names ending in a dot have none.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}

	return strings.ToLower(name[idx:])
}
