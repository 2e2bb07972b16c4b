// Package summary turns file content into the short descriptions shown in vault
// listings. Each supported content type is a Summarizer variant picked by extension.
package summary

import (
	"fmt"
	"io"
	"strings"

	vaulterrors "github.com/joe/vault-map/pkg/errors"
	"github.com/joe/vault-map/pkg/filesystem"
)

// Exported constants.
const (
	// Marker is appended to any description that was cut short.
	Marker = " [...]"

	// TextLimit is how many characters of a text file are kept in its description.
	TextLimit = 300

	// DisplayLimit is the longest a description may be when shown in a table,
	// marker included.
	DisplayLimit = 80

	UnsupportedDescription = "Unsupported file type for reading"
)

// Summarizer describes file content. Implementations never touch the filesystem.
type Summarizer interface {
	// Name identifies the variant in logs.
	Name() string
	Summarize(content []byte) (string, error)
}

// For returns the summarizer responsible for a lower-cased, dot-prefixed extension.
func For(ext string) Summarizer {
	switch ext {
	case ".md", ".txt":
		return Text{}
	case ".py":
		return PythonSource()
	case ".go":
		return GoSource()
	case ".sh", ".bash":
		return ShellSource()
	case ".ipynb":
		return Notebook{}
	default:
		return Unsupported{}
	}
}

// Describe reads the file at filePath and summarises it by extension.
// Unsupported files are never opened. Failures come back as classified
// *errors.Error values so the caller can choose a placeholder.
func Describe(fsys filesystem.FileSystem, filePath, ext string) (string, error) {
	summarizer := For(ext)
	if _, ok := summarizer.(Unsupported); ok {
		return summarizer.Summarize(nil)
	}

	content, err := readAll(fsys, filePath)
	if err != nil {
		return "", vaulterrors.Classify(filePath, err)
	}

	description, err := summarizer.Summarize(content)
	if err != nil {
		return "", vaulterrors.NewParseError(filePath, err)
	}

	return description, nil
}

// ErrorDescription is the description recorded for a file that could not be summarised.
func ErrorDescription(err error) string {
	return "Error processing file: " + err.Error()
}

// Unsupported is the variant for every extension without a dedicated summarizer.
type Unsupported struct{}

// Name identifies the variant.
func (Unsupported) Name() string { return "unsupported" }

// Summarize ignores content and returns the fixed unsupported description.
func (Unsupported) Summarize([]byte) (string, error) {
	return UnsupportedDescription, nil
}

// Truncate cuts s to limit characters and appends Marker when s is longer.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + Marker
}

// ForDisplay shortens a description so that, marker included, it fits DisplayLimit.
func ForDisplay(description string) string {
	runes := []rune(description)
	if len(runes) <= DisplayLimit {
		return description
	}

	return string(runes[:DisplayLimit-len(Marker)]) + Marker
}

func joinOr(prefix string, names []string, empty string) string {
	if len(names) == 0 {
		return empty
	}

	return prefix + strings.Join(names, ", ")
}

func readAll(fsys filesystem.FileSystem, filePath string) ([]byte, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return content, nil
}
