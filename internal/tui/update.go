package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gitscope/pkg/gitdir"
	"gitscope/pkg/object"
)

// Update implements tea.Model. Key presses are translated by the active
// view's key map into an application message; everything else (resize,
// unbound keys) is handled here directly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.view == viewMain && key.Matches(msg, keys.Main.Quit) {
			return m, tea.Quit
		}
		if appMsg := mapKey(m.view, msg); appMsg != nil {
			return m.apply(appMsg), nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reclamp()
		return m, nil
	}
	return m.apply(msg), nil
}

// apply is the pure state-transition function. Messages for an inactive
// view fall through as no-ops; the dispatcher is total.
func (m Model) apply(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case openMainMsg:
		// Detail state is discarded; the tree state is untouched.
		m.view = viewMain
		m.pack = packState{}
		m.loose = looseState{}

	case refreshMainMsg:
		if m.view != viewMain {
			return m
		}
		if err := m.rebuildTree(); err != nil {
			m.main.skipped = err.Error()
		}

	case openPackMsg:
		m = m.enterPackView(msg.path)

	case openLooseMsg:
		m = m.enterLooseView(msg.path)

	case mainMoveMsg:
		if m.view != viewMain {
			return m
		}
		m.moveMainSelection(msg.dir)

	case mainSelectMsg:
		if m.view != viewMain {
			return m
		}
		m = m.openSelected()

	case packListNavMsg:
		if m.view != viewPack {
			return m
		}
		m.movePackSelection(msg.dir)

	case packContentNavMsg:
		if m.view != viewPack {
			return m
		}
		h := m.detailViewportHeight()
		m.pack.contentScroll = clampOffset(
			proposeOffset(m.pack.contentScroll, msg.dir, len(m.pack.contentLines), h),
			len(m.pack.contentLines), h)

	case looseNavMsg:
		if m.view != viewLoose {
			return m
		}
		h := m.detailViewportHeight()
		m.loose.scroll = clampOffset(
			proposeOffset(m.loose.scroll, msg.dir, len(m.loose.lines), h),
			len(m.loose.lines), h)
	}
	return m
}

// proposeOffset turns a scroll intent into a candidate offset; the caller
// clamps it.
func proposeOffset(current int, dir scrollDir, contentLen, viewportHeight int) int {
	switch dir {
	case scrollUp:
		return current - 1
	case scrollDown:
		return current + 1
	case scrollTop:
		return 0
	case scrollBottom:
		return contentLen - viewportHeight
	}
	return current
}

func (m *Model) moveMainSelection(dir scrollDir) {
	count := len(m.main.rows)
	switch dir {
	case scrollUp:
		m.main.selected = clampIndex(m.main.selected-1, count)
	case scrollDown:
		m.main.selected = clampIndex(m.main.selected+1, count)
	case scrollTop:
		m.main.selected = 0
	case scrollBottom:
		m.main.selected = clampIndex(count-1, count)
	}
	m.main.scroll = ensureVisible(m.main.selected, m.main.scroll, m.mainViewportHeight(), count)
}

func (m *Model) movePackSelection(dir scrollDir) {
	if m.pack.pack == nil {
		return
	}
	count := len(m.pack.pack.Entries)
	switch dir {
	case scrollUp:
		m.pack.selected = clampIndex(m.pack.selected-1, count)
	case scrollDown:
		m.pack.selected = clampIndex(m.pack.selected+1, count)
	case scrollTop:
		m.pack.selected = 0
	case scrollBottom:
		m.pack.selected = clampIndex(count-1, count)
	}
	m.pack.listScroll = ensureVisible(m.pack.selected, m.pack.listScroll, m.detailViewportHeight(), count)
	m.pack.contentLines = m.renderPackEntry()
	m.pack.contentScroll = 0
}

// openSelected handles enter on the tree: directories toggle, pack files and
// loose objects open their detail views, other files get a raw preview.
func (m Model) openSelected() Model {
	row := m.main.selectedRow()
	if row == nil {
		return m
	}
	n := row.node
	if n.IsDir {
		m.main.expanded[n.Path] = !m.main.expanded[n.Path]
		m.main.rows = flattenTree(m.main.root, m.main.expanded)
		m.main.selected = clampIndex(m.main.selected, len(m.main.rows))
		m.main.scroll = ensureVisible(m.main.selected, m.main.scroll, m.mainViewportHeight(), len(m.main.rows))
		return m
	}
	if gitdir.IsPackFile(n.Path) {
		return m.apply(openPackMsg{path: n.Path})
	}
	return m.apply(openLooseMsg{path: n.Path})
}

// enterPackView decodes the whole pack synchronously, then switches views.
// Decode failure becomes an error panel, not a crash.
func (m Model) enterPackView(path string) Model {
	m.view = viewPack
	m.pack = packState{path: path}
	pack, err := m.svc.Repo.OpenPack(path)
	if err != nil {
		m.svc.Log.Warn("pack open failed", zap.String("path", path), zap.Error(err))
		m.pack.loadErr = err.Error()
		return m
	}
	m.pack.pack = pack
	m.pack.contentLines = m.renderPackEntry()
	return m
}

// enterLooseView decodes one object synchronously, then switches views.
// Paths that are not loose objects are previewed raw.
func (m Model) enterLooseView(path string) Model {
	m.view = viewLoose
	m.loose = looseState{path: path}

	if gitdir.IsLooseObjectPath(path) {
		obj, err := m.svc.Repo.ReadLoose(path)
		if err != nil {
			m.svc.Log.Warn("loose decode failed", zap.String("path", path), zap.Error(err))
			m.loose.loadErr = err.Error()
			return m
		}
		m.loose.obj = obj
		m.loose.lines = m.renderLooseObject(obj)
		return m
	}

	raw, err := m.svc.Repo.ReadRaw(path)
	if err != nil {
		m.loose.loadErr = err.Error()
		return m
	}
	m.loose.lines = m.renderRawFile(raw)
	return m
}

// renderPackEntry builds the preview lines for the selected pack entry.
func (m *Model) renderPackEntry() []string {
	p := m.pack.pack
	if p == nil || len(p.Entries) == 0 {
		return []string{"(empty pack)"}
	}
	e := &p.Entries[clampIndex(m.pack.selected, len(p.Entries))]

	lines := []string{
		fmt.Sprintf("offset          %d", e.Offset),
		fmt.Sprintf("type            %s", e.Type),
		fmt.Sprintf("declared size   %d", e.DeclaredSize),
		fmt.Sprintf("compressed span [%d, %d) - %d bytes", e.CompressedStart, e.CompressedEnd, e.CompressedLen()),
	}
	switch e.Type {
	case object.PackOfsDelta:
		lines = append(lines, fmt.Sprintf("base offset     %d (back %d)", e.BaseOffset, e.Offset-e.BaseOffset))
	case object.PackRefDelta:
		lines = append(lines, fmt.Sprintf("base id         %s", e.BaseID))
	}
	if e.ID != "" {
		lines = append(lines, fmt.Sprintf("object id       %s", e.ID))
	}
	if e.Type.IsDelta() {
		lines = append(lines, fmt.Sprintf("resolved type   %s (%d bytes)", e.ResolvedType, len(e.Resolved)))
	}
	lines = append(lines, "")
	lines = append(lines, m.contentPreview(e.Resolved)...)
	return lines
}

// renderLooseObject builds the text for a decoded loose object.
func (m *Model) renderLooseObject(obj *object.LooseObject) []string {
	lines := []string{
		fmt.Sprintf("kind            %s", obj.Kind),
		fmt.Sprintf("declared size   %d", obj.DeclaredSize),
		"",
	}
	switch obj.Kind {
	case object.TypeTree:
		for _, e := range obj.Entries {
			lines = append(lines, fmt.Sprintf("%-6s %s  %s", e.Mode, e.ID, e.Name))
		}
	case object.TypeCommit, object.TypeTag:
		for _, h := range obj.Headers {
			lines = append(lines, fmt.Sprintf("%-9s %s", h.Key, strings.ReplaceAll(h.Value, "\n", " ")))
		}
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(obj.Message, "\n"), "\n")...)
	default:
		lines = append(lines, m.contentPreview(obj.Payload)...)
	}
	return lines
}

// renderRawFile previews a plain repository file (HEAD, config, refs, ...).
func (m *Model) renderRawFile(raw []byte) []string {
	return append([]string{fmt.Sprintf("raw file        %d bytes", len(raw)), ""}, m.contentPreview(raw)...)
}

// contentPreview renders payload bytes as text lines, or a hex dump for
// binary content, capped by the configured preview budget.
func (m *Model) contentPreview(data []byte) []string {
	if len(data) == 0 {
		return []string{"(empty)"}
	}
	budget := m.svc.Cfg.PreviewBytes
	if object.IsBinary(data) {
		return object.HexDump(data, budget)
	}
	if budget > 0 && len(data) > budget {
		data = data[:budget]
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// reclamp re-applies the clamp law after a viewport change; content lengths
// are unchanged but the valid offset range may have shrunk.
func (m *Model) reclamp() {
	mh := m.mainViewportHeight()
	dh := m.detailViewportHeight()
	m.main.scroll = ensureVisible(m.main.selected, m.main.scroll, mh, len(m.main.rows))
	if m.pack.pack != nil {
		m.pack.listScroll = ensureVisible(m.pack.selected, m.pack.listScroll, dh, len(m.pack.pack.Entries))
	}
	m.pack.contentScroll = clampOffset(m.pack.contentScroll, len(m.pack.contentLines), dh)
	m.loose.scroll = clampOffset(m.loose.scroll, len(m.loose.lines), dh)
}
