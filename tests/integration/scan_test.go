//go:build integration

package integration_test

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/vault-map/internal/mapper"
	"github.com/joe/vault-map/internal/vault"
	"github.com/joe/vault-map/pkg/filesystem"
)

type snapshotNode struct {
	Subdirs map[string]snapshotNode `json:"subpastas"`
	Files   []vault.FileEntry       `json:"arquivos"`
}

var generatedLine = regexp.MustCompile(`(?m)^\*\*Generated:\*\* .*$`)

func writeVault(t *testing.T, g *WithT) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"welcome.md":             "Welcome to the vault",
		"code/tool.py":           "def outer():\n    def inner():\n        pass\n",
		"code/main.go":           "package main\n\nfunc main() {}\n",
		"code/deploy.sh":         "deploy() {\n  echo ok\n}\n",
		"code/analysis.ipynb":    `{"cells":[{"cell_type":"code","source":["import numpy as np\n","from pandas import DataFrame"]}]}`,
		"code/nested/data.bin":   "\x00\x01",
		"journal/2026/október.md": "Ünïcode note",
	}

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		g.Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		g.Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	}

	g.Expect(os.Mkdir(filepath.Join(root, "empty"), 0o755)).To(Succeed())

	return root
}

func runMapper(g *WithT, root string) *mapper.Report {
	m := mapper.New(filesystem.NewRealFileSystem(), root, log.New(io.Discard))
	m.TimeProvider = mapper.FixedTimeProvider{Time: time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)}

	report, err := m.Run()
	g.Expect(err).ShouldNot(HaveOccurred())

	return report
}

// TestIntegration_FullRun_WritesEveryArtifact maps a vault on disk and checks
// the listings, index and snapshot it leaves behind.
func TestIntegration_FullRun_WritesEveryArtifact(t *testing.T) {
	g := NewWithT(t)

	root := writeVault(t, g)
	report := runMapper(g, root)

	g.Expect(report.Directories).To(Equal(6))
	g.Expect(report.Files).To(Equal(7))
	g.Expect(report.Degraded).To(BeEmpty())

	for _, dir := range []string{"", "code", "code/nested", "empty", "journal", "journal/2026"} {
		g.Expect(filepath.Join(root, filepath.FromSlash(dir), vault.ListingName)).To(BeAnExistingFile())
	}

	listing, err := os.ReadFile(filepath.Join(root, "code", vault.ListingName))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(listing)).To(ContainSubstring("# code"))
	g.Expect(string(listing)).To(ContainSubstring("**Generated:** 2026-10-17 09:30:00"))
	g.Expect(string(listing)).To(ContainSubstring("- [nested](nested/README.md)"))
	g.Expect(string(listing)).To(ContainSubstring("Functions detected: outer, inner"))
	g.Expect(string(listing)).To(ContainSubstring("Functions detected: main"))
	g.Expect(string(listing)).To(ContainSubstring("Functions detected: deploy"))
	g.Expect(string(listing)).To(ContainSubstring("Libraries: numpy, pandas"))

	index, err := os.ReadFile(filepath.Join(root, vault.IndexName))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(index)).To(ContainSubstring("# Vault Index"))
	g.Expect(string(index)).To(ContainSubstring("    - **2026**"))
	g.Expect(string(index)).To(ContainSubstring("  - [welcome.md](welcome.md)"))

	raw, err := os.ReadFile(filepath.Join(root, vault.SnapshotName))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(raw)).To(ContainSubstring("október.md"))

	var snapshot snapshotNode
	g.Expect(json.Unmarshal(raw, &snapshot)).To(Succeed())
	g.Expect(snapshot.Subdirs).To(HaveKey("code"))
	g.Expect(snapshot.Subdirs["empty"].Files).To(BeEmpty())
	g.Expect(snapshot.Files).To(HaveLen(1))
	g.Expect(snapshot.Files[0].Path).To(Equal("welcome.md"))
}

// TestIntegration_SecondRun_IgnoresOwnArtifacts runs twice and expects the same
// output apart from the generation line.
func TestIntegration_SecondRun_IgnoresOwnArtifacts(t *testing.T) {
	g := NewWithT(t)

	root := writeVault(t, g)
	first := runMapper(g, root)

	before, err := os.ReadFile(filepath.Join(root, "code", vault.ListingName))
	g.Expect(err).ShouldNot(HaveOccurred())

	second := runMapper(g, root)
	g.Expect(second.Files).To(Equal(first.Files))

	after, err := os.ReadFile(filepath.Join(root, "code", vault.ListingName))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(generatedLine.ReplaceAllString(string(after), "")).
		To(Equal(generatedLine.ReplaceAllString(string(before), "")))
}

// TestIntegration_Symlinks lists links to files and skips links to directories.
func TestIntegration_Symlinks(t *testing.T) {
	g := NewWithT(t)

	root := writeVault(t, g)
	g.Expect(os.Symlink(filepath.Join(root, "welcome.md"), filepath.Join(root, "alias.md"))).To(Succeed())
	g.Expect(os.Symlink(root, filepath.Join(root, "loop"))).To(Succeed())

	report := runMapper(g, root)
	g.Expect(report.Files).To(Equal(8))
	g.Expect(report.Directories).To(Equal(6))

	listing, err := os.ReadFile(filepath.Join(root, vault.ListingName))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(listing)).To(ContainSubstring("[alias.md]("))
	g.Expect(string(listing)).NotTo(ContainSubstring("[loop]"))
}
