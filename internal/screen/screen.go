// Package screen defines the contract between the router and the views it
// hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/ui/layout"
)

// Screen is one routable view. The shell owns the header and footer, so
// View renders only the body in the space it is given.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider screens list their keys in the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens report when a text field has focus. While it does,
// q and esc are delivered to the screen instead of quitting or going back.
type InputCapturer interface {
	CapturingInput() bool
}
