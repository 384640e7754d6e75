package tui

import (
	"crypto/sha1"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscope/internal/config"
	"gitscope/pkg/gitdir"
	"gitscope/pkg/object"
)

// newTestRepo lays out a minimal .git directory: HEAD, one loose blob, and
// one pack holding a single commit object.
func newTestRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	git := filepath.Join(root, ".git")

	write := func(rel string, data []byte) {
		t.Helper()
		path := filepath.Join(git, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	write("HEAD", []byte("ref: refs/heads/main\n"))
	write(filepath.Join("objects", "aa", strings.Repeat("b", 38)),
		object.Deflate([]byte("blob 5\x00hello")))
	write(filepath.Join("objects", "pack", "pack-1.pack"),
		singleObjectPack(t, object.PackCommit, []byte("msg\n")))
	write(filepath.Join("refs", "heads", "main"), []byte(strings.Repeat("c", 40)+"\n"))
	return git
}

// singleObjectPack builds a valid version-2 pack containing one small
// non-delta object.
func singleObjectPack(t *testing.T, objType object.PackObjectType, content []byte) []byte {
	t.Helper()
	require.Less(t, len(content), 16, "single-byte entry header only covers sizes < 16")

	buf := object.PackHeader{Version: 2, NumObjects: 1}.Marshal()
	buf = append(buf, byte(int(objType)<<4|len(content)))
	buf = append(buf, object.Deflate(content)...)
	sum := sha1.Sum(buf)
	return append(buf, sum[:]...)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	git := newTestRepo(t)
	m, err := New(Services{
		Repo:   gitdir.NewService(nil),
		Cfg:    config.Default(),
		GitDir: git,
	})
	require.NoError(t, err)
	m.width = 80
	m.height = 24
	return m
}

// press runs one key event through Update and returns the resulting model.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func rowNames(m Model) []string {
	names := make([]string, len(m.main.rows))
	for i, r := range m.main.rows {
		names[i] = r.node.Name
	}
	return names
}

func TestClampOffsetLaw(t *testing.T) {
	cases := []struct {
		proposed, contentLen, viewport, want int
	}{
		{0, 10, 5, 0},
		{-3, 10, 5, 0},
		{5, 10, 5, 5},
		{99, 10, 5, 5},
		{3, 4, 10, 0},   // content shorter than viewport
		{1, 0, 5, 0},    // empty content
		{2, 10, 0, 2},   // degenerate viewport: limit is contentLen, 2 is in range
		{99, 10, 0, 10}, // degenerate viewport: over-proposal clamps to contentLen
	}
	for _, c := range cases {
		got := clampOffset(c.proposed, c.contentLen, c.viewport)
		assert.Equal(t, c.want, got, "clampOffset(%d, %d, %d)", c.proposed, c.contentLen, c.viewport)
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestMainSelectionMovesAndClamps(t *testing.T) {
	m := newTestModel(t)
	require.NotEmpty(t, m.main.rows)

	m = press(t, m, "k") // at top already
	assert.Equal(t, 0, m.main.selected)

	m = press(t, m, "G")
	assert.Equal(t, len(m.main.rows)-1, m.main.selected)

	m = press(t, m, "j") // at bottom already
	assert.Equal(t, len(m.main.rows)-1, m.main.selected)

	m = press(t, m, "g")
	assert.Equal(t, 0, m.main.selected)
	assert.Equal(t, 0, m.main.scroll)
}

func TestDirectoryToggleExpandsAndCollapses(t *testing.T) {
	m := newTestModel(t)

	// Select the objects directory and expand it.
	objIdx := -1
	for i, r := range m.main.rows {
		if r.node.Name == "objects" {
			objIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, objIdx, 0)
	m.main.selected = objIdx

	before := len(m.main.rows)
	m = m.apply(mainSelectMsg{})
	assert.Greater(t, len(m.main.rows), before, "expanding should reveal children")
	assert.Contains(t, rowNames(m), "pack")

	m = m.apply(mainSelectMsg{})
	assert.Equal(t, before, len(m.main.rows), "collapsing should restore the row count")
}

func TestOpenLooseObjectAndBack(t *testing.T) {
	m := newTestModel(t)
	loosePath := filepath.Join(m.svc.GitDir, "objects", "aa", strings.Repeat("b", 38))

	m = m.apply(openLooseMsg{path: loosePath})
	require.Equal(t, viewLoose, m.view)
	require.Empty(t, m.loose.loadErr)
	require.NotNil(t, m.loose.obj)
	assert.Equal(t, object.TypeBlob, m.loose.obj.Kind)
	assert.Contains(t, strings.Join(m.loose.lines, "\n"), "hello")
}

func TestOpenRawFileFallback(t *testing.T) {
	m := newTestModel(t)
	headPath := filepath.Join(m.svc.GitDir, "HEAD")

	m = m.apply(openLooseMsg{path: headPath})
	require.Equal(t, viewLoose, m.view)
	assert.Nil(t, m.loose.obj)
	assert.Contains(t, strings.Join(m.loose.lines, "\n"), "ref: refs/heads/main")
}

func TestOpenPackView(t *testing.T) {
	m := newTestModel(t)
	packPath := filepath.Join(m.svc.GitDir, "objects", "pack", "pack-1.pack")

	m = m.apply(openPackMsg{path: packPath})
	require.Equal(t, viewPack, m.view)
	require.Empty(t, m.pack.loadErr)
	require.NotNil(t, m.pack.pack)
	require.Len(t, m.pack.pack.Entries, 1)
	assert.Equal(t, object.PackCommit, m.pack.pack.Entries[0].Type)
	assert.NotEmpty(t, m.pack.contentLines)
}

func TestPackDecodeFailureBecomesErrorPanel(t *testing.T) {
	m := newTestModel(t)
	bad := filepath.Join(m.svc.GitDir, "objects", "pack", "pack-bad.pack")
	require.NoError(t, os.WriteFile(bad, []byte("not a pack"), 0o644))

	m = m.apply(openPackMsg{path: bad})
	assert.Equal(t, viewPack, m.view)
	assert.NotEmpty(t, m.pack.loadErr)
	assert.Contains(t, m.View(), "decode failed")
}

func TestBackPreservesMainState(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j")
	m = press(t, m, "j")
	wantSelected := m.main.selected
	wantScroll := m.main.scroll
	wantRows := len(m.main.rows)

	m = m.apply(openLooseMsg{path: filepath.Join(m.svc.GitDir, "HEAD")})
	require.Equal(t, viewLoose, m.view)
	m = press(t, m, "q") // back, not quit, in a detail view

	assert.Equal(t, viewMain, m.view)
	assert.Equal(t, wantSelected, m.main.selected)
	assert.Equal(t, wantScroll, m.main.scroll)
	assert.Equal(t, wantRows, len(m.main.rows))
	assert.Empty(t, m.loose.path, "detail state is discarded on exit")
}

func TestInactiveViewMessagesAreNoOps(t *testing.T) {
	m := newTestModel(t)
	m = m.apply(openLooseMsg{path: filepath.Join(m.svc.GitDir, "HEAD")})
	require.Equal(t, viewLoose, m.view)

	before := m.main.selected
	m = m.apply(mainMoveMsg{dir: scrollDown})
	assert.Equal(t, before, m.main.selected, "tree navigation must not act while a detail view is open")

	m = m.apply(packListNavMsg{dir: scrollDown})
	assert.Equal(t, viewLoose, m.view)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// In a detail view q is back, not quit.
	d := m.apply(openLooseMsg{path: filepath.Join(m.svc.GitDir, "HEAD")})
	next, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.Equal(t, viewMain, next.(Model).view)
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	m := newTestModel(t)
	before := m.main.selected
	m = press(t, m, "x")
	assert.Equal(t, before, m.main.selected)
	assert.Equal(t, viewMain, m.view)
}

func TestResizeReclampsScroll(t *testing.T) {
	m := newTestModel(t)
	m = m.apply(openLooseMsg{path: filepath.Join(m.svc.GitDir, "HEAD")})
	m.loose.lines = make([]string, 100)
	m.loose.scroll = 90

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	got := next.(Model)
	assert.LessOrEqual(t, got.loose.scroll, 100-got.detailViewportHeight())
	assert.GreaterOrEqual(t, got.loose.scroll, 0)
}

func TestRefreshPicksUpNewEntries(t *testing.T) {
	m := newTestModel(t)
	before := len(m.main.rows)

	require.NoError(t, os.WriteFile(filepath.Join(m.svc.GitDir, "FETCH_HEAD"), []byte("x\n"), 0o644))
	m = m.apply(refreshMainMsg{})
	assert.Equal(t, before+1, len(m.main.rows))
	assert.Contains(t, rowNames(m), "FETCH_HEAD")
}

func TestViewRendersWithoutSize(t *testing.T) {
	m := newTestModel(t)
	m.width, m.height = 0, 0
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestViewShowsSelection(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "gitscope - ")
	assert.Contains(t, out, "HEAD")
	assert.NotContains(t, out, "—", "frame chrome uses plain ASCII separators")
}
