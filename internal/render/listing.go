package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/joe/vault-map/internal/summary"
	"github.com/joe/vault-map/internal/vault"
)

// BytesPerKilobyte converts sizes for the Size column.
const BytesPerKilobyte = 1024

// Listing writes the README.md for one directory: its immediate subdirectories
// and files. Sections without entries are left out.
func Listing(w io.Writer, node *vault.DirectoryNode, generated string) error {
	var doc strings.Builder

	fmt.Fprintf(&doc, "# %s\n\n", node.Name)
	fmt.Fprintf(&doc, "%s\n\n", GeneratedLine(generated))

	if subdirs := node.SortedSubdirs(); len(subdirs) > 0 {
		doc.WriteString("## Subdirectories\n\n")

		for _, sub := range subdirs {
			fmt.Fprintf(&doc, "- [%s](%s)\n", linkText(sub.Name), LinkTarget(sub.Name+"/"+vault.ListingName))
		}

		doc.WriteString("\n")
	}

	if len(node.Files) > 0 {
		doc.WriteString("## Files\n\n")
		doc.WriteString("| Name | Type | Size | Created | Modified | Description |\n")
		doc.WriteString("|------|------|------|---------|----------|-------------|\n")

		for _, file := range node.Files {
			fmt.Fprintf(&doc, "| [%s](%s) | %s | %s | %s | %s | %s |\n",
				tableCell(linkText(file.Name)),
				tableCell(LinkTarget(file.Name)),
				tableCell(file.Extension),
				FormatSize(file.Size),
				file.Created,
				file.Modified,
				tableCell(summary.ForDisplay(file.Description)),
			)
		}

		doc.WriteString("\n")
	}

	return flush(w, &doc, vault.ListingName)
}

// FormatSize renders a byte count as kilobytes with two decimals.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/BytesPerKilobyte)
}
