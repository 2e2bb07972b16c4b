// Package render writes the vault artifacts: a listing per directory, the global
// index and the JSON snapshot. Renderers only format; the caller decides where
// the bytes go.
package render

import (
	"fmt"
	"io"
	"strings"
)

// GeneratedLine is the timestamp line under every markdown title.
func GeneratedLine(timestamp string) string {
	return "**Generated:** " + timestamp
}

// LinkTarget formats a markdown link destination. Destinations with spaces or
// parentheses are wrapped in angle brackets so they stay one token.
func LinkTarget(target string) string {
	if strings.ContainsAny(target, " ()<>") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(target) + ">"
	}

	return target
}

// linkText escapes the characters that would end a link label early.
func linkText(text string) string {
	return strings.NewReplacer(`[`, `\[`, `]`, `\]`).Replace(text)
}

// tableCell keeps a value on one line and inside its column.
func tableCell(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")

	return strings.ReplaceAll(value, "|", `\|`)
}

// flush writes a fully rendered document in one call.
func flush(w io.Writer, doc *strings.Builder, artifact string) error {
	if _, err := io.WriteString(w, doc.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", artifact, err)
	}

	return nil
}
