//nolint:varnamelen // Test files use idiomatic short variable names (g, etc.)
package ui_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/vault-map/internal/mapper"
	"github.com/joe/vault-map/internal/ui"
	vaulterrors "github.com/joe/vault-map/pkg/errors"
	"github.com/joe/vault-map/pkg/filesystem"
)

func TestRenderFunctions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(ui.RenderBox("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderDim("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderError("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderLabel("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderSuccess("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderTitle("test")).Should(ContainSubstring("test"))
	g.Expect(ui.RenderWarning("test")).Should(ContainSubstring("test"))
}

func TestProgress_PrintsEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer

	progress := ui.NewProgress(&buf)

	var emitter mapper.EventEmitter = progress
	emitter.Emit(mapper.ScanComplete{Directories: 3, Files: 7})
	emitter.Emit(mapper.FileDegraded{Path: "broken.md", Kind: vaulterrors.KindPermissionDenied})
	emitter.Emit(mapper.ListingWritten{Path: ""})
	emitter.Emit(mapper.ListingWritten{Path: "code"})
	emitter.Emit(mapper.IndexWritten{Path: "/vault/INDEX.md"})
	emitter.Emit(mapper.SnapshotWritten{Path: "/vault/vault_structure.json"})

	out := buf.String()
	g.Expect(out).To(ContainSubstring("3 directories, 7 files"))
	g.Expect(out).To(ContainSubstring("broken.md (" + vaulterrors.KindPermissionDenied.String() + ")"))
	g.Expect(out).To(ContainSubstring("2 directory listings"))
	g.Expect(out).To(ContainSubstring("/vault/INDEX.md"))
	g.Expect(out).To(ContainSubstring("/vault/vault_structure.json"))
	g.Expect(progress.Listings()).To(Equal(2))
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	report := &mapper.Report{
		Root:        "/vault",
		Directories: 4,
		Files:       9,
		Artifacts:   []string{"a", "b", "c", "d", "e", "f"},
		Degraded:    []string{"code/broken.py"},
		Generated:   "2026-10-17 09:30:00",
	}

	out := ui.RenderSummary(report, 1500*time.Millisecond)
	g.Expect(out).To(ContainSubstring("Vault mapped"))
	g.Expect(out).To(ContainSubstring("/vault"))
	g.Expect(out).To(ContainSubstring("2026-10-17 09:30:00"))
	g.Expect(out).To(ContainSubstring("code/broken.py"))
	g.Expect(out).To(ContainSubstring("2s"))
}

func TestRenderSummary_CapsDegradedList(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	report := &mapper.Report{Root: "/vault"}
	for i := range ui.MaxDegradedShown + 3 {
		report.Degraded = append(report.Degraded, fmt.Sprintf("note-%02d.md", i))
	}

	out := ui.RenderSummary(report, 0)
	g.Expect(out).To(ContainSubstring("note-09.md"))
	g.Expect(out).NotTo(ContainSubstring("note-10.md"))
	g.Expect(out).To(ContainSubstring("and 3 more"))
}

func TestRenderFailure_IncludesSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	err := fmt.Errorf("failed to scan vault: %w",
		vaulterrors.Classify("/vault/private", os.ErrPermission))

	out := ui.RenderFailure(err)
	g.Expect(out).To(ContainSubstring("Error: failed to scan vault"))
	g.Expect(out).To(ContainSubstring("•"))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250ms"},
		{45 * time.Second, "45s"},
		{150 * time.Second, "2m 30s"},
		{3723 * time.Second, "1h 2m 3s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(ui.FormatDuration(tt.duration)).To(Equal(tt.expected))
		})
	}
}

func TestPreview_RendersIndex(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddDir("/vault", time.Now())
	mockFS.AddFile("/vault/INDEX.md", []byte("# Vault Index\n\n- [code](code/README.md)\n"), time.Now())

	out, err := ui.Preview(mockFS, "/vault/INDEX.md", 60)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(out).To(ContainSubstring("Vault Index"))
	g.Expect(out).To(ContainSubstring("code"))
}

func TestPreview_MissingFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddDir("/vault", time.Now())

	_, err := ui.Preview(mockFS, "/vault/INDEX.md", 0)
	g.Expect(err).To(MatchError(ContainSubstring("failed to open")))
}

func TestPreview_OpenFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddDir("/vault", time.Now())
	mockFS.AddFile("/vault/INDEX.md", []byte("# Vault Index\n"), time.Now())
	mockFS.FailOn(filesystem.OpOpen, "/vault/INDEX.md", os.ErrPermission)

	_, err := ui.Preview(mockFS, "/vault/INDEX.md", 0)
	g.Expect(errors.Is(err, os.ErrPermission)).To(BeTrue())
}

func TestWidth_NotATerminal(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	file, err := os.CreateTemp(t.TempDir(), "out")
	g.Expect(err).ShouldNot(HaveOccurred())

	defer func() { _ = file.Close() }()

	g.Expect(ui.IsTerminal(file)).To(BeFalse())
	g.Expect(ui.Width(file)).To(Equal(ui.DefaultWidth))
}
