package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/joe/vault-map/pkg/filesystem"
)

// RenderMarkdown renders markdown for the terminal, wrapped at width when
// width is positive.
func RenderMarkdown(content string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return out, nil
}

// Preview reads the generated file at path back from fsys and renders it.
func Preview(fsys filesystem.FileSystem, path string, width int) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return RenderMarkdown(string(content), width)
}
