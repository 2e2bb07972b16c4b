package vault

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/joe/vault-map/internal/summary"
	vaulterrors "github.com/joe/vault-map/pkg/errors"
	"github.com/joe/vault-map/pkg/filesystem"
)

// Exported variables.
var (
	ErrNotDirectory = errors.New("vault root is not a directory")
)

// Scanner walks a vault once and builds its DirectoryNode tree. Every file is
// inspected and summarised exactly once.
type Scanner struct {
	fs        filesystem.FileSystem
	inspector *Inspector
	filter    PathFilter
	logger    *log.Logger
}

// NewScanner creates a Scanner. A nil filter excludes nothing.
func NewScanner(fsys filesystem.FileSystem, filter PathFilter, logger *log.Logger) *Scanner {
	if filter == nil {
		filter = &GlobFilter{}
	}

	return &Scanner{
		fs:        fsys,
		inspector: NewInspector(fsys),
		filter:    filter,
		logger:    logger,
	}
}

// Scan walks root depth-first and returns the root node.
//
// Unreadable directories are kept as empty nodes and unreadable files get
// placeholder values; both are logged. Symbolic links to directories are never
// followed. Only a root that cannot be read at all is an error.
//
//nolint:cyclop,funlen // Walk loop dispatches on entry kind
func (s *Scanner) Scan(root string) (*DirectoryNode, error) {
	walker := s.fs.Walk(root)
	if !walker.Step() {
		return nil, fmt.Errorf("failed to walk %s: no entries", root)
	}

	if err := walker.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vault root: %w", vaulterrors.Classify(root, err))
	}

	if !walker.Stat().IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	rootNode := NewDirectoryNode(walker.Stat().Name(), "")
	nodes := map[string]*DirectoryNode{s.fs.Join(walker.Path()): rootNode}

	for walker.Step() {
		entryPath := s.fs.Join(walker.Path())

		if err := walker.Err(); err != nil {
			// ReadDir failed after the directory itself was recorded
			s.logger.Warn("Skipping unreadable directory", "path", entryPath, "err", err)
			continue
		}

		parent, ok := nodes[s.fs.Dir(entryPath)]
		if !ok {
			continue
		}

		info := walker.Stat()
		name := info.Name()
		relPath := parent.ChildPath(name)

		if IsReserved(name) || s.filter.Excludes(relPath) {
			if info.IsDir() {
				walker.SkipDir()
			}

			s.logger.Debug("Excluded", "path", relPath)

			continue
		}

		switch mode := info.Mode(); {
		case mode.IsDir():
			node := NewDirectoryNode(name, relPath)
			parent.Subdirs[name] = node
			nodes[entryPath] = node

		case mode&fs.ModeSymlink != 0:
			s.addLink(parent, entryPath, relPath, name)

		case mode.IsRegular():
			parent.Files = append(parent.Files, s.buildEntry(entryPath, relPath, name))

		default:
			s.logger.Debug("Skipping special file", "path", relPath, "mode", mode.String())
		}
	}

	rootNode.sortFiles()

	return rootNode, nil
}

// addLink lists a link to a file as that file and drops links to directories.
// A dangling link is listed with placeholder metadata.
func (s *Scanner) addLink(parent *DirectoryNode, entryPath, relPath, name string) {
	target, err := s.fs.Stat(entryPath)
	if err == nil && target.IsDir {
		s.logger.Debug("Not following directory link", "path", relPath)
		return
	}

	if err == nil && !target.IsRegular {
		s.logger.Debug("Skipping link to special file", "path", relPath)
		return
	}

	parent.Files = append(parent.Files, s.buildEntry(entryPath, relPath, name))
}

// buildEntry inspects and summarises one file, substituting placeholders for failures.
func (s *Scanner) buildEntry(entryPath, relPath, name string) FileEntry {
	entry := FileEntry{Name: name, Path: relPath}

	meta, err := s.inspector.Inspect(entryPath)
	if err != nil {
		s.logger.Warn("Could not read file metadata",
			"path", relPath, "kind", vaulterrors.KindOf(err), "err", err)

		meta = UnavailableMetadata()
		entry.Issues = append(entry.Issues, err)
	}

	entry.Size = meta.Size
	entry.Created = meta.Created
	entry.Modified = meta.Modified
	entry.Extension = meta.Extension

	description, err := summary.Describe(s.fs, entryPath, Extension(name))
	if err != nil {
		s.logger.Warn("Could not summarise file",
			"path", relPath, "kind", vaulterrors.KindOf(err), "err", err)

		description = summary.ErrorDescription(err)
		entry.Issues = append(entry.Issues, err)
	}

	entry.Description = description
	s.logger.Debug("Scanned file", "path", relPath, "type", entry.Extension)

	return entry
}
