package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/joe/vault-map/internal/vault"
)

// IndexTitle heads INDEX.md.
const IndexTitle = "Vault Index"

// Index writes INDEX.md: every directory in pre-order as a bold bullet indented
// by depth, followed by links to its files using vault-relative paths.
func Index(w io.Writer, root *vault.DirectoryNode, generated string) error {
	var doc strings.Builder

	fmt.Fprintf(&doc, "# %s\n\n", IndexTitle)
	fmt.Fprintf(&doc, "%s\n\n", GeneratedLine(generated))

	_ = root.Visit(func(node *vault.DirectoryNode) error {
		prefix := strings.Repeat("  ", node.Depth())

		fmt.Fprintf(&doc, "%s- **%s**\n", prefix, node.Name)

		for _, file := range node.Files {
			fmt.Fprintf(&doc, "%s  - [%s](%s)\n", prefix, linkText(file.Name), LinkTarget(file.Path))
		}

		doc.WriteString("\n")

		return nil
	})

	return flush(w, &doc, vault.IndexName)
}
