// Package vault scans a directory tree into the in-memory model every artifact
// is rendered from: one DirectoryNode per directory, one FileEntry per file.
package vault

import (
	"sort"
)

// Exported constants.
const (
	ListingName  = "README.md"
	IndexName    = "INDEX.md"
	SnapshotName = "vault_structure.json"
)

// IsReserved reports whether name is one of the generated artifacts, which are
// never listed as vault content.
func IsReserved(name string) bool {
	switch name {
	case ListingName, IndexName, SnapshotName:
		return true
	default:
		return false
	}
}

// FileEntry is everything recorded about one file. The JSON tags are the
// snapshot's field names.
type FileEntry struct {
	Name        string `json:"nome"`
	Path        string `json:"caminho"`
	Size        int64  `json:"tamanho"`
	Created     string `json:"data_criacao"`
	Modified    string `json:"data_modificacao"`
	Extension   string `json:"tipo"`
	Description string `json:"descricao"`

	// Issues holds the stat and read failures that were replaced by placeholders.
	Issues []error `json:"-"`
}

// Degraded reports whether any of the entry's values are placeholders.
func (f FileEntry) Degraded() bool {
	return len(f.Issues) > 0
}

// DirectoryNode is one directory of the vault. Path is vault-relative with
// forward slashes and empty for the root.
type DirectoryNode struct {
	Name    string                    `json:"-"`
	Path    string                    `json:"-"`
	Subdirs map[string]*DirectoryNode `json:"subpastas"`
	Files   []FileEntry               `json:"arquivos"`
}

// NewDirectoryNode creates an empty node. Subdirs and Files are never nil so
// they encode as {} and [].
func NewDirectoryNode(name, relPath string) *DirectoryNode {
	return &DirectoryNode{
		Name:    name,
		Path:    relPath,
		Subdirs: make(map[string]*DirectoryNode),
		Files:   make([]FileEntry, 0),
	}
}

// ChildPath returns the vault-relative path of a child called name.
func (n *DirectoryNode) ChildPath(name string) string {
	if n.Path == "" {
		return name
	}

	return n.Path + "/" + name
}

// Depth is the number of path elements between the root and n.
func (n *DirectoryNode) Depth() int {
	if n.Path == "" {
		return 0
	}

	depth := 1
	for _, r := range n.Path {
		if r == '/' {
			depth++
		}
	}

	return depth
}

// SortedSubdirs returns the subdirectories ordered by name.
func (n *DirectoryNode) SortedSubdirs() []*DirectoryNode {
	names := make([]string, 0, len(n.Subdirs))
	for name := range n.Subdirs {
		names = append(names, name)
	}
	sort.Strings(names)

	subdirs := make([]*DirectoryNode, 0, len(names))
	for _, name := range names {
		subdirs = append(subdirs, n.Subdirs[name])
	}

	return subdirs
}

// Visit calls fn for n and every directory below it in pre-order, children by name.
// It stops at the first error.
func (n *DirectoryNode) Visit(fn func(*DirectoryNode) error) error {
	if err := fn(n); err != nil {
		return err
	}

	for _, sub := range n.SortedSubdirs() {
		if err := sub.Visit(fn); err != nil {
			return err
		}
	}

	return nil
}

// Counts returns the number of directories and files in the tree rooted at n.
func (n *DirectoryNode) Counts() (dirs, files int) {
	_ = n.Visit(func(node *DirectoryNode) error {
		dirs++
		files += len(node.Files)

		return nil
	})

	return dirs, files
}

// sortFiles orders every file list in the tree by name.
func (n *DirectoryNode) sortFiles() {
	_ = n.Visit(func(node *DirectoryNode) error {
		sort.Slice(node.Files, func(i, j int) bool {
			return node.Files[i].Name < node.Files[j].Name
		})

		return nil
	})
}
