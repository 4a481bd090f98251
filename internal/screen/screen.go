// Package screen defines the contract between the router and the TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langtrainer/internal/ui/layout"
)

// Screen is one page of the TUI.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle esc themselves instead
// of being popped by the app.
type BackHandler interface {
	HandlesBack() bool
}

// Hints returns the footer hints s provides, or nil.
func Hints(s Screen) []layout.KeyHint {
	if hp, ok := s.(KeyHintProvider); ok {
		return hp.KeyHints()
	}
	return nil
}

// OwnsBack reports whether s consumes esc itself.
func OwnsBack(s Screen) bool {
	bh, ok := s.(BackHandler)
	return ok && bh.HandlesBack()
}
