package gitdir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitscope/pkg/object"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindGitDir(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(filepath.Join(gitDir, "objects"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindGitDir(root)
	if err != nil {
		t.Fatalf("FindGitDir(root): %v", err)
	}
	if got != gitDir {
		t.Fatalf("FindGitDir(root) = %q, want %q", got, gitDir)
	}

	got, err = FindGitDir(gitDir)
	if err != nil {
		t.Fatalf("FindGitDir(.git): %v", err)
	}
	if got != gitDir {
		t.Fatalf("FindGitDir(.git) = %q, want %q", got, gitDir)
	}
}

func TestFindGitDirMissing(t *testing.T) {
	if _, err := FindGitDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without .git")
	}
}

func TestListReturnsOrderedEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), []byte("bb"))
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("a"))
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := NewService(nil)
	entries, err := s.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	// os.ReadDir sorts by name.
	if entries[0].Name != "a.txt" || entries[1].Name != "b.txt" || entries[2].Name != "sub" {
		t.Fatalf("order = %v", entries)
	}
	if entries[0].Size != 1 || entries[1].Size != 2 {
		t.Fatalf("sizes = %d, %d", entries[0].Size, entries[1].Size)
	}
	if !entries[2].IsDir {
		t.Fatal("sub not marked as directory")
	}
}

func TestBuildTreeSnapshot(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	writeFile(t, filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"))
	writeFile(t, filepath.Join(gitDir, "refs", "heads", "main"), []byte(strings.Repeat("a", 40)+"\n"))
	writeFile(t, filepath.Join(gitDir, "objects", "ab", strings.Repeat("c", 38)), []byte("x"))

	s := NewService(nil)
	root, err := s.BuildTree(gitDir)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if !root.IsDir || len(root.Children) != 3 {
		t.Fatalf("root children = %d, want 3 (HEAD, objects, refs)", len(root.Children))
	}
	for _, c := range root.Children {
		if !c.IsDir && len(c.Children) != 0 {
			t.Fatalf("file node %s has children", c.Name)
		}
	}
	// 1 root + HEAD + objects + ab + loose + refs + heads + main
	if got := root.CountNodes(); got != 8 {
		t.Fatalf("CountNodes = %d, want 8", got)
	}
}

func TestBuildTreeAttachesNotes(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	writeFile(t, filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"))
	writeFile(t, filepath.Join(gitDir, "objects", "pack", "pack-1234.pack"), []byte("PACK"))

	s := NewService(nil)
	root, err := s.BuildTree(gitDir)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	byName := map[string]*Node{}
	var walk func(n *Node)
	walk = func(n *Node) {
		byName[n.Name] = n
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	if byName["HEAD"].Note == "" {
		t.Fatal("HEAD has no note")
	}
	if !strings.Contains(byName["pack"].Note, "pack files") {
		t.Fatalf("objects/pack note = %q", byName["pack"].Note)
	}
	if !strings.Contains(byName["pack-1234.pack"].Note, "PACK v2") {
		t.Fatalf("pack file note = %q", byName["pack-1234.pack"].Note)
	}
}

func TestReadLoose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ab", strings.Repeat("0", 38))
	writeFile(t, path, object.Deflate([]byte("blob 5\x00hello")))

	s := NewService(nil)
	obj, err := s.ReadLoose(path)
	if err != nil {
		t.Fatalf("ReadLoose: %v", err)
	}
	if obj.Kind != object.TypeBlob || string(obj.Payload) != "hello" {
		t.Fatalf("decoded = %+v", obj)
	}
}

func TestReadRawMissingFile(t *testing.T) {
	s := NewService(nil)
	if _, err := s.ReadRaw(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPathClassification(t *testing.T) {
	if !IsPackFile("objects/pack/pack-abc.pack") {
		t.Fatal("pack file not recognized")
	}
	if IsPackFile("objects/pack/pack-abc.idx") {
		t.Fatal("idx misclassified as pack")
	}
	loose := filepath.Join("objects", "ab", strings.Repeat("0", 38))
	if !IsLooseObjectPath(loose) {
		t.Fatal("loose object path not recognized")
	}
	if IsLooseObjectPath(filepath.Join("objects", "info", "alternates")) {
		t.Fatal("alternates misclassified as loose object")
	}
}
