//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/vault-map/pkg/filesystem"
)

func TestMockFileSystem_CreateAndOpen(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddDir("/vault", time.Now())

	file, err := mockFS.Create("/vault/README.md")
	g.Expect(err).ShouldNot(HaveOccurred())

	_, err = file.Write([]byte("# vault\n"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(file.Close()).To(Succeed())

	reader, err := mockFS.Open("/vault/README.md")
	g.Expect(err).ShouldNot(HaveOccurred())

	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("# vault\n"))
	g.Expect(mockFS.OpenCount("/vault/README.md")).To(Equal(1))
}

func TestMockFileSystem_CreateRequiresParent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()

	_, err := mockFS.Create("/missing/README.md")
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_StatReportsTimes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	modified := created.Add(time.Hour)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddFileWithTimes("/vault/note.md", []byte("hello"), created, modified)

	info, err := mockFS.Stat("/vault/note.md")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info).To(And(
		HaveField("Name", "note.md"),
		HaveField("Size", int64(5)),
		HaveField("IsDir", false),
		HaveField("IsRegular", true),
	))
	g.Expect(info.CreateTime.Equal(created)).To(BeTrue())
	g.Expect(info.ModTime.Equal(modified)).To(BeTrue())

	dirInfo, err := mockFS.Stat("/vault")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(dirInfo.IsDir).To(BeTrue())
}

func TestMockFileSystem_StatFollowsSymlinks(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddFile("/vault/real.txt", []byte("abc"), time.Now())
	mockFS.AddSymlink("/vault/link.txt", "real.txt")
	mockFS.AddSymlink("/vault/loop", "loop")
	mockFS.AddSymlink("/vault/broken", "/nowhere")

	info, err := mockFS.Stat("/vault/link.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size).To(Equal(int64(3)))
	g.Expect(info.Name).To(Equal("link.txt"))

	lstat, err := mockFS.Lstat("/vault/link.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(lstat.Mode() & os.ModeSymlink).NotTo(BeZero())

	_, err = mockFS.Stat("/vault/loop")
	g.Expect(err).To(MatchError(ContainSubstring("too many levels of symbolic links")))

	_, err = mockFS.Stat("/vault/broken")
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_FailOn(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddFile("/vault/secret.md", []byte("x"), time.Now())
	mockFS.FailOn(filesystem.OpStat, "/vault/secret.md", fs.ErrPermission)
	mockFS.FailOn(filesystem.OpOpen, "/vault/secret.md", fs.ErrPermission)

	_, err := mockFS.Stat("/vault/secret.md")
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())

	_, err = mockFS.Open("/vault/secret.md")
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())

	var pathErr *fs.PathError
	g.Expect(errors.As(err, &pathErr)).To(BeTrue())
	g.Expect(pathErr.Path).To(Equal("/vault/secret.md"))
}

func TestMockFileSystem_WalkIsSortedPreOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	now := time.Now()
	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddDir("/vault", now)
	mockFS.AddFile("/vault/b.md", []byte("b"), now)
	mockFS.AddFile("/vault/a.md", []byte("a"), now)
	mockFS.AddFile("/vault/sub/c.md", []byte("c"), now)
	mockFS.AddFile("/vault/sub/deeper/d.md", []byte("d"), now)

	var visited []string
	walker := mockFS.Walk("/vault")
	for walker.Step() {
		g.Expect(walker.Err()).ShouldNot(HaveOccurred())
		visited = append(visited, walker.Path())
	}

	g.Expect(visited).To(Equal([]string{
		"/vault",
		"/vault/a.md",
		"/vault/b.md",
		"/vault/sub",
		"/vault/sub/c.md",
		"/vault/sub/deeper",
		"/vault/sub/deeper/d.md",
	}))
}

func TestMockFileSystem_WalkReportsReadDirFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mockFS := filesystem.NewMockFileSystem()
	mockFS.AddFile("/vault/locked/x.md", []byte("x"), time.Now())
	mockFS.FailOn(filesystem.OpReadDir, "/vault/locked", fs.ErrPermission)

	var failed []string
	walker := mockFS.Walk("/vault")
	for walker.Step() {
		if walker.Err() != nil {
			failed = append(failed, walker.Path())
		}
	}

	g.Expect(failed).To(Equal([]string{"/vault/locked"}))
}

func TestRealFileSystem_RoundTrip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	realFS := filesystem.NewRealFileSystem()

	target := realFS.Join(root, "INDEX.md")
	file, err := realFS.Create(target)
	g.Expect(err).ShouldNot(HaveOccurred())

	_, err = file.Write([]byte("content"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(file.Close()).To(Succeed())

	info, err := realFS.Stat(target)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size).To(Equal(int64(7)))
	g.Expect(info.IsRegular).To(BeTrue())
	g.Expect(info.CreateTime.IsZero()).To(BeFalse())
	g.Expect(realFS.Dir(target)).To(Equal(root))

	_, err = realFS.Stat(filepath.Join(root, "missing.md"))
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
}

func TestRealFileSystem_WalkResolvesLinkedRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := t.TempDir()
	vault := filepath.Join(base, "vault")
	g.Expect(os.MkdirAll(filepath.Join(vault, "sub"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(vault, "sub", "n.md"), []byte("n"), 0o600)).To(Succeed())

	link := filepath.Join(base, "link")
	if err := os.Symlink(vault, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	count := 0
	walker := filesystem.NewRealFileSystem().Walk(link)
	for walker.Step() {
		g.Expect(walker.Err()).ShouldNot(HaveOccurred())
		count++
	}

	// root, sub, sub/n.md
	g.Expect(count).To(Equal(3))
}
