package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/joe/vault-map/internal/vault"
)

// SnapshotIndent is the per-level indentation of vault_structure.json.
const SnapshotIndent = "    "

// Snapshot writes the whole tree as JSON. Non-ASCII and HTML characters are kept
// literally, subdirectories are keyed by name in sorted order and descriptions
// are not truncated.
//
// The tree is encoded compactly and indented afterwards: the encoder's own
// indentation compounds on the recursive subdirectory map.
func Snapshot(w io.Writer, root *vault.DirectoryNode) error {
	var compact bytes.Buffer

	encoder := json.NewEncoder(&compact)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode %s: %w", vault.SnapshotName, err)
	}

	var doc bytes.Buffer
	if err := json.Indent(&doc, bytes.TrimRight(compact.Bytes(), "\n"), "", SnapshotIndent); err != nil {
		return fmt.Errorf("failed to indent %s: %w", vault.SnapshotName, err)
	}

	doc.WriteByte('\n')

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", vault.SnapshotName, err)
	}

	return nil
}
