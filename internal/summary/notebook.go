package summary

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// importLine matches `import a, b as c` and `from a.b import c` at the start of a line.
var importLine = regexp.MustCompile(`(?m)^[ \t]*(?:from[ \t]+([^\s;#]+)[ \t]+import\b|import[ \t]+([^;#\n]+))`)

// Notebook summarises a Jupyter notebook by the modules its code cells import.
type Notebook struct{}

// Name identifies the variant.
func (Notebook) Name() string { return "notebook" }

// Summarize decodes the notebook and lists the distinct imported modules by name.
func (Notebook) Summarize(content []byte) (string, error) {
	var doc notebookDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("failed to decode notebook: %w", err)
	}

	cells := doc.Cells
	for _, sheet := range doc.Worksheets {
		cells = append(cells, sheet.Cells...)
	}

	if doc.Cells == nil && doc.Worksheets == nil {
		return "", fmt.Errorf("failed to decode notebook: no cells or worksheets")
	}

	seen := make(map[string]struct{})

	for _, cell := range cells {
		if cell.CellType != "code" {
			continue
		}

		for _, module := range importedModules(cell.code()) {
			seen[module] = struct{}{}
		}
	}

	libraries := make([]string, 0, len(seen))
	for module := range seen {
		libraries = append(libraries, module)
	}
	sort.Strings(libraries)

	return joinOr("Libraries: ", libraries, "No libraries detected"), nil
}

// importedModules returns the module names referenced by import statements in source.
func importedModules(source string) []string {
	var modules []string

	for _, match := range importLine.FindAllStringSubmatch(source, -1) {
		if match[1] != "" {
			modules = append(modules, match[1])
			continue
		}

		for _, clause := range strings.Split(match[2], ",") {
			// "numpy as np" keeps only the module
			fields := strings.Fields(clause)
			if len(fields) > 0 {
				modules = append(modules, fields[0])
			}
		}
	}

	return modules
}

// notebookDocument covers nbformat v4 (top-level cells) and v3 (worksheets).
type notebookDocument struct {
	Cells      []notebookCell `json:"cells"`
	Worksheets []struct {
		Cells []notebookCell `json:"cells"`
	} `json:"worksheets"`
}

type notebookCell struct {
	CellType string    `json:"cell_type"`
	Source   multiline `json:"source"`
	Input    multiline `json:"input"`
}

// code returns the cell source; v3 code cells keep it under "input".
func (c notebookCell) code() string {
	if c.Source != "" {
		return string(c.Source)
	}

	return string(c.Input)
}

// multiline is nbformat's text field, stored either as a string or a list of lines.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*m = multiline(strings.Join(lines, ""))
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}

	*m = multiline(text)

	return nil
}
