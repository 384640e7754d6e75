package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key maps are scoped to a view: a binding only acts while its view is
// active, and unbound keys yield no message at all.

type mainKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

type detailKeyMap struct {
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Pack view only: the content preview pane scrolls independently of
	// the entry list.
	ContentUp     key.Binding
	ContentDown   key.Binding
	ContentTop    key.Binding
	ContentBottom key.Binding
}

type keyMap struct {
	ForceQuit key.Binding
	Main      mainKeyMap
	Detail    detailKeyMap
}

var keys = keyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Main: mainKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	},
	Detail: detailKeyMap{
		Back:   key.NewBinding(key.WithKeys("q", "esc", "left", "h"), key.WithHelp("q/esc/h", "back")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),

		ContentUp:     key.NewBinding(key.WithKeys("K", "ctrl+u"), key.WithHelp("K", "preview up")),
		ContentDown:   key.NewBinding(key.WithKeys("J", "ctrl+d"), key.WithHelp("J", "preview down")),
		ContentTop:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "preview top")),
		ContentBottom: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "preview bottom")),
	},
}

// mapKey translates a raw key event into the active view's message, or nil
// when the key is unbound in that view.
func mapKey(view viewTag, msg tea.KeyMsg) tea.Msg {
	switch view {
	case viewMain:
		return mapMainKey(msg)
	case viewPack:
		return mapPackKey(msg)
	case viewLoose:
		return mapLooseKey(msg)
	}
	return nil
}

func mapMainKey(msg tea.KeyMsg) tea.Msg {
	km := keys.Main
	switch {
	case key.Matches(msg, km.Up):
		return mainMoveMsg{dir: scrollUp}
	case key.Matches(msg, km.Down):
		return mainMoveMsg{dir: scrollDown}
	case key.Matches(msg, km.Top):
		return mainMoveMsg{dir: scrollTop}
	case key.Matches(msg, km.Bottom):
		return mainMoveMsg{dir: scrollBottom}
	case key.Matches(msg, km.Select):
		return mainSelectMsg{}
	case key.Matches(msg, km.Refresh):
		return refreshMainMsg{}
	}
	return nil
}

func mapPackKey(msg tea.KeyMsg) tea.Msg {
	km := keys.Detail
	switch {
	case key.Matches(msg, km.Back):
		return openMainMsg{}
	case key.Matches(msg, km.Up):
		return packListNavMsg{dir: scrollUp}
	case key.Matches(msg, km.Down):
		return packListNavMsg{dir: scrollDown}
	case key.Matches(msg, km.Top):
		return packListNavMsg{dir: scrollTop}
	case key.Matches(msg, km.Bottom):
		return packListNavMsg{dir: scrollBottom}
	case key.Matches(msg, km.ContentUp):
		return packContentNavMsg{dir: scrollUp}
	case key.Matches(msg, km.ContentDown):
		return packContentNavMsg{dir: scrollDown}
	case key.Matches(msg, km.ContentTop):
		return packContentNavMsg{dir: scrollTop}
	case key.Matches(msg, km.ContentBottom):
		return packContentNavMsg{dir: scrollBottom}
	}
	return nil
}

func mapLooseKey(msg tea.KeyMsg) tea.Msg {
	km := keys.Detail
	switch {
	case key.Matches(msg, km.Back):
		return openMainMsg{}
	case key.Matches(msg, km.Up):
		return looseNavMsg{dir: scrollUp}
	case key.Matches(msg, km.Down):
		return looseNavMsg{dir: scrollDown}
	case key.Matches(msg, km.Top), key.Matches(msg, km.ContentTop):
		return looseNavMsg{dir: scrollTop}
	case key.Matches(msg, km.Bottom), key.Matches(msg, km.ContentBottom):
		return looseNavMsg{dir: scrollBottom}
	}
	return nil
}
