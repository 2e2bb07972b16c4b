// Package mapper runs one full pass over a vault: it scans the tree once, then
// writes a README.md listing into every directory, INDEX.md at the root and
// vault_structure.json at the root, in that order.
package mapper

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/joe/vault-map/internal/render"
	"github.com/joe/vault-map/internal/vault"
	vaulterrors "github.com/joe/vault-map/pkg/errors"
	"github.com/joe/vault-map/pkg/filesystem"
)

// Mapper generates the navigation artifacts for the vault at Root.
type Mapper struct {
	Root         string
	FS           filesystem.FileSystem
	Filter       vault.PathFilter // Optional exclusion filter
	Logger       *log.Logger
	TimeProvider TimeProvider // Time provider (for dependency injection)
	emitter      EventEmitter // Optional progress reporting
}

// Report summarises a completed run.
type Report struct {
	Root        string
	Directories int
	Files       int
	Degraded    []string // vault-relative paths listed with placeholders
	Artifacts   []string // every file written, in write order
	IndexPath   string
	Generated   string
}

// New creates a Mapper for the vault at root on fsys.
func New(fsys filesystem.FileSystem, root string, logger *log.Logger) *Mapper {
	return &Mapper{
		Root:         root,
		FS:           fsys,
		Logger:       logger,
		TimeProvider: &RealTimeProvider{},
	}
}

// SetEventEmitter sets the event emitter.
// The emitter is optional - if nil, no events will be emitted.
func (m *Mapper) SetEventEmitter(emitter EventEmitter) {
	m.emitter = emitter
}

// Run scans the vault and writes every artifact. Unreadable files and
// directories degrade to placeholders; the first artifact that cannot be
// written stops the run and is returned.
func (m *Mapper) Run() (*Report, error) {
	generated := vault.FormatTimestamp(m.TimeProvider.Now())

	m.Logger.Info("Scanning vault", "root", m.Root)

	tree, err := vault.NewScanner(m.FS, m.Filter, m.Logger).Scan(m.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}

	report := &Report{Root: m.Root, Generated: generated}
	report.Directories, report.Files = tree.Counts()
	m.emit(ScanComplete{Directories: report.Directories, Files: report.Files})

	_ = tree.Visit(func(node *vault.DirectoryNode) error {
		for _, file := range node.Files {
			if file.Degraded() {
				report.Degraded = append(report.Degraded, file.Path)
				m.emit(FileDegraded{Path: file.Path, Kind: vaulterrors.KindOf(file.Issues[0]), Err: file.Issues[0]})
			}
		}

		return nil
	})

	err = tree.Visit(func(node *vault.DirectoryNode) error {
		target := m.FS.Join(m.Root, node.Path, vault.ListingName)
		if err := m.writeArtifact(report, target, func(w io.Writer) error {
			return render.Listing(w, node, generated)
		}); err != nil {
			return err
		}

		m.emit(ListingWritten{Path: node.Path})

		return nil
	})
	if err != nil {
		return report, err
	}

	report.IndexPath = m.FS.Join(m.Root, vault.IndexName)
	if err := m.writeArtifact(report, report.IndexPath, func(w io.Writer) error {
		return render.Index(w, tree, generated)
	}); err != nil {
		return report, err
	}

	m.emit(IndexWritten{Path: report.IndexPath})

	snapshotPath := m.FS.Join(m.Root, vault.SnapshotName)
	if err := m.writeArtifact(report, snapshotPath, func(w io.Writer) error {
		return render.Snapshot(w, tree)
	}); err != nil {
		return report, err
	}

	m.emit(SnapshotWritten{Path: snapshotPath})

	m.Logger.Info("Vault mapped",
		"directories", report.Directories, "files", report.Files, "degraded", len(report.Degraded))

	return report, nil
}

// writeArtifact creates target, renders into it and closes it. A failed close
// counts as a failed write.
func (m *Mapper) writeArtifact(report *Report, target string, renderFn func(io.Writer) error) (err error) {
	file, err := m.FS.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", target, closeErr)
		}

		if err == nil {
			report.Artifacts = append(report.Artifacts, target)
			m.Logger.Info("Wrote artifact", "path", target)
		}
	}()

	if err := renderFn(file); err != nil {
		return fmt.Errorf("failed to render %s: %w", target, err)
	}

	return nil
}

// emit sends an event if an emitter is configured.
func (m *Mapper) emit(event Event) {
	if m.emitter != nil {
		m.emitter.Emit(event)
	}
}
