package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gitscope/internal/config"
	"gitscope/pkg/gitdir"
	"gitscope/pkg/object"
)

// Services is the container handed to the event loop: repository access,
// configuration, and the logger. It holds no logic of its own.
type Services struct {
	Repo   *gitdir.Service
	Cfg    config.Config
	Log    *zap.Logger
	GitDir string
}

// viewTag selects which screen is active. Exactly one view's state is
// meaningful at a time; transitions are explicit.
type viewTag int

const (
	viewMain viewTag = iota
	viewPack
	viewLoose
)

// treeRow is one visible line of the flattened tree.
type treeRow struct {
	node  *gitdir.Node
	depth int
}

// mainState is the tree view: the snapshot, which directories are expanded,
// the flattened rows currently visible, and selection/scroll.
type mainState struct {
	root     *gitdir.Node
	expanded map[string]bool
	rows     []treeRow
	selected int
	scroll   int
	skipped  string // startup/refresh problem shown in the status line
}

// packState is the pack detail view. listScroll and contentScroll move
// independently; contentLines caches the rendered preview for the selected
// entry so scrolling does not re-decode anything.
type packState struct {
	path          string
	pack          *object.Pack
	loadErr       string
	selected      int
	listScroll    int
	contentLines  []string
	contentScroll int
}

// looseState is the object detail view. For a decoded loose object obj is
// set; for a plain repository file (HEAD, config, ...) obj is nil and lines
// holds a raw preview.
type looseState struct {
	path    string
	obj     *object.LooseObject
	loadErr string
	lines   []string
	scroll  int
}

// Model is the single application state value threaded through update and
// view. It is owned by the bubbletea event loop; nothing else mutates it.
type Model struct {
	svc Services

	view  viewTag
	main  mainState
	pack  packState
	loose looseState

	width  int
	height int
}

// New builds the initial model: the Main view over a fresh tree snapshot.
func New(svc Services) (Model, error) {
	if svc.Log == nil {
		svc.Log = zap.NewNop()
	}
	m := Model{svc: svc, view: viewMain}
	if err := m.rebuildTree(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuildTree() error {
	root, err := m.svc.Repo.BuildTree(m.svc.GitDir)
	if err != nil {
		return err
	}
	expanded := map[string]bool{root.Path: true}
	m.main = mainState{root: root, expanded: expanded}
	m.main.rows = flattenTree(root, expanded)
	return nil
}

// flattenTree produces the visible rows: the root's children at depth 0,
// descending only into expanded directories, in listing order.
func flattenTree(root *gitdir.Node, expanded map[string]bool) []treeRow {
	var rows []treeRow
	var walk func(n *gitdir.Node, depth int)
	walk = func(n *gitdir.Node, depth int) {
		for _, c := range n.Children {
			rows = append(rows, treeRow{node: c, depth: depth})
			if c.IsDir && expanded[c.Path] {
				walk(c, depth+1)
			}
		}
	}
	walk(root, 0)
	return rows
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// selectedRow returns the tree row under the cursor, or nil when the tree
// is empty.
func (s *mainState) selectedRow() *treeRow {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return nil
	}
	return &s.rows[s.selected]
}

// clampOffset is the scroll law shared by every pane:
// offset' = clamp(proposed, 0, max(0, contentLen-viewportHeight)).
func clampOffset(proposed, contentLen, viewportHeight int) int {
	limit := contentLen - viewportHeight
	if limit < 0 {
		limit = 0
	}
	if proposed > limit {
		proposed = limit
	}
	if proposed < 0 {
		proposed = 0
	}
	return proposed
}

// clampIndex clamps a selection index to [0, count-1] (0 when empty).
func clampIndex(proposed, count int) int {
	if proposed >= count {
		proposed = count - 1
	}
	if proposed < 0 {
		proposed = 0
	}
	return proposed
}

// ensureVisible moves scroll the minimal amount so selected is on screen.
func ensureVisible(selected, scroll, viewportHeight, contentLen int) int {
	if selected < scroll {
		scroll = selected
	}
	if viewportHeight > 0 && selected >= scroll+viewportHeight {
		scroll = selected - viewportHeight + 1
	}
	return clampOffset(scroll, contentLen, viewportHeight)
}
