package tui

import (
	"fmt"
	"strings"
)

// Chrome line counts: a title row plus a hint strip, and in the tree view a
// note line between them.
const (
	mainChromeLines   = 3
	detailChromeLines = 2
)

func (m Model) mainViewportHeight() int {
	h := m.height - mainChromeLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) detailViewportHeight() int {
	h := m.height - detailChromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model. It reads state and never mutates it; calling it
// repeatedly for the same model yields the same frame.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	switch m.view {
	case viewPack:
		return m.viewPackDetail()
	case viewLoose:
		return m.viewLooseDetail()
	}
	return m.viewMainTree()
}

func (m Model) viewMainTree() string {
	var b strings.Builder

	title := fmt.Sprintf("gitscope - %s (%d entries)", m.svc.GitDir, len(m.main.rows))
	if m.main.skipped != "" {
		title += "  " + errStyle.Render(m.main.skipped)
	}
	b.WriteString(padToWidth(titleStyle.Render(title), m.width))
	b.WriteByte('\n')

	h := m.mainViewportHeight()
	for i := 0; i < h; i++ {
		idx := m.main.scroll + i
		if idx < len(m.main.rows) {
			b.WriteString(m.renderTreeRow(idx))
		}
		b.WriteByte('\n')
	}

	note := ""
	if m.svc.Cfg.ShowNotes {
		if row := m.main.selectedRow(); row != nil && row.node.Note != "" {
			note = row.node.Note
		}
	}
	b.WriteString(padToWidth(noteStyle.Render(note), m.width))
	b.WriteByte('\n')

	b.WriteString(m.hintStrip("j/k move", "g/G top/bottom", "enter open", "r refresh", "q quit"))
	return b.String()
}

func (m Model) renderTreeRow(idx int) string {
	row := m.main.rows[idx]
	n := row.node

	marker := "  "
	if idx == m.main.selected {
		marker = "> "
	}
	indent := strings.Repeat("  ", row.depth)

	var label string
	switch {
	case n.IsDir && m.main.expanded[n.Path]:
		label = dirStyle.Render("▾ " + n.Name + "/")
	case n.IsDir:
		label = dirStyle.Render("▸ " + n.Name + "/")
	default:
		label = fmt.Sprintf("%s  %s", n.Name, hintStyle.Render(fmt.Sprintf("%d B", n.Size)))
	}

	line := marker + indent + label
	if idx == m.main.selected {
		return padToWidth(selectedStyle.Render(padToWidth(line, m.width)), m.width)
	}
	return padToWidth(line, m.width)
}

func (m Model) viewPackDetail() string {
	var b strings.Builder

	title := fmt.Sprintf("pack - %s", m.pack.path)
	if m.pack.pack != nil {
		title += fmt.Sprintf(" (%d objects, checksum %s)", m.pack.pack.Header.NumObjects, shortHash(string(m.pack.pack.Checksum)))
	}
	b.WriteString(padToWidth(titleStyle.Render(title), m.width))
	b.WriteByte('\n')

	h := m.detailViewportHeight()
	if m.pack.loadErr != "" {
		b.WriteString(m.renderErrorPanel(m.pack.loadErr, h))
	} else {
		b.WriteString(m.renderPackColumns(h))
	}

	b.WriteString(m.hintStrip("j/k entry", "g/G first/last", "J/K preview", "q/esc back"))
	return b.String()
}

// renderPackColumns lays the entry list beside the content preview.
func (m Model) renderPackColumns(h int) string {
	listW := m.width * 2 / 5
	if listW < 24 {
		listW = 24
	}
	previewW := m.width - listW - 1
	if previewW < 1 {
		previewW = 1
	}
	sep := dividerStyle.Render("│")

	entries := m.pack.pack.Entries
	var b strings.Builder
	for i := 0; i < h; i++ {
		var left string
		idx := m.pack.listScroll + i
		if idx < len(entries) {
			e := &entries[idx]
			marker := "  "
			if idx == m.pack.selected {
				marker = "> "
			}
			left = fmt.Sprintf("%s%6d  %s  %d", marker, e.Offset, typeStyle.Render(fmt.Sprintf("%-9s", e.Type)), e.DeclaredSize)
			if idx == m.pack.selected {
				left = selectedStyle.Render(padToWidth(left, listW))
			}
		}

		var right string
		cidx := m.pack.contentScroll + i
		if cidx < len(m.pack.contentLines) {
			right = m.pack.contentLines[cidx]
		}

		b.WriteString(padToWidth(left, listW))
		b.WriteString(sep)
		b.WriteString(padToWidth(right, previewW))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewLooseDetail() string {
	var b strings.Builder

	title := "object - " + m.loose.path
	if m.loose.obj != nil {
		title = fmt.Sprintf("%s %s - %s", m.loose.obj.Kind, idStyle.Render(looseIDFromPath(m.loose.path)), m.loose.path)
	}
	b.WriteString(padToWidth(titleStyle.Render(title), m.width))
	b.WriteByte('\n')

	h := m.detailViewportHeight()
	if m.loose.loadErr != "" {
		b.WriteString(m.renderErrorPanel(m.loose.loadErr, h))
	} else {
		for i := 0; i < h; i++ {
			idx := m.loose.scroll + i
			if idx < len(m.loose.lines) {
				b.WriteString(padToWidth(m.loose.lines[idx], m.width))
			}
			b.WriteByte('\n')
		}
	}

	b.WriteString(m.hintStrip("j/k scroll", "g/G top/bottom", "q/esc back"))
	return b.String()
}

// renderErrorPanel fills the viewport with the failure text instead of the
// decoded content.
func (m Model) renderErrorPanel(errText string, h int) string {
	var b strings.Builder
	b.WriteString(padToWidth(errStyle.Render("decode failed"), m.width))
	b.WriteByte('\n')
	for i, line := range strings.Split(errText, "\n") {
		if i+1 >= h {
			break
		}
		b.WriteString(padToWidth("  "+line, m.width))
		b.WriteByte('\n')
	}
	for used := strings.Count(b.String(), "\n"); used < h; used++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) hintStrip(hints ...string) string {
	return padToWidth(hintStyle.Render(strings.Join(hints, "  ·  ")), m.width)
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// looseIDFromPath reconstructs the object id from the fan-out layout:
// objects/ab/cdef... -> abcdef...
func looseIDFromPath(path string) string {
	parts := strings.Split(strings.ReplaceAll(path, "\\", "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + parts[len(parts)-1]
}
