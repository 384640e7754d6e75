package tui

// Application messages. These are the only way view state changes; a message
// aimed at a view that is not active is ignored by apply, never an error.

// openMainMsg returns to the tree view, discarding any detail state.
type openMainMsg struct{}

// refreshMainMsg rebuilds the tree snapshot wholesale.
type refreshMainMsg struct{}

// openPackMsg loads and decodes a pack file, then enters the pack view.
type openPackMsg struct{ path string }

// openLooseMsg decodes a loose object (or previews a plain file), then
// enters the object view.
type openLooseMsg struct{ path string }

// scrollDir is one of the four scroll intents shared by the detail views.
type scrollDir int

const (
	scrollUp scrollDir = iota
	scrollDown
	scrollTop
	scrollBottom
)

// mainMoveMsg moves the tree selection; the index is clamped and the scroll
// offset follows the selection.
type mainMoveMsg struct{ dir scrollDir }

// mainSelectMsg acts on the selected tree row: toggles a directory, or opens
// a pack/object detail view.
type mainSelectMsg struct{}

// packListNavMsg scrolls the pack view's entry list (moving the selection).
type packListNavMsg struct{ dir scrollDir }

// packContentNavMsg scrolls the pack view's content preview pane.
type packContentNavMsg struct{ dir scrollDir }

// looseNavMsg scrolls the object view's rendered text.
type looseNavMsg struct{ dir scrollDir }
