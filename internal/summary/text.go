package summary

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Exported variables.
var (
	ErrInvalidUTF8 = errors.New("invalid utf-8 text")
)

// Text summarises plain text and markdown as a leading excerpt.
type Text struct{}

// Name identifies the variant.
func (Text) Name() string { return "text" }

// Summarize returns the first TextLimit characters of content.
func (Text) Summarize(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", ErrInvalidUTF8
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	return Truncate(text, TextLimit), nil
}
