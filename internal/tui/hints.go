// Package tui holds the pieces shared by the bandhan terminal screens: hint
// bars, buttons, the modal frame and markdown rendering.
package tui

import (
	"strings"

	"github.com/bandhan/bandhan/internal/tui/theme"
)

// Standard key representations for consistent hints across screens.
const (
	KeyUpDown   = "↑/↓"
	KeyArrows   = "arrows"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyCtrlD    = "ctrl+d"
	KeyCtrlK    = "ctrl+k"
	KeyCtrlA    = "ctrl+a"
	KeyCtrlX    = "ctrl+x"
	KeyCtrlE    = "ctrl+e"
	KeyCtrlT    = "ctrl+t"
	KeyAltNum   = "alt+1-9"
	KeyPgUpDown = "pgup/pgdn"
)

// RenderHint renders a single key-description pair.
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders key-description pairs separated by bullets.
// Example: RenderHintBar("↑/↓", "scroll", "esc", "back")
// Returns: "↑/↓ scroll • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(RenderHint(pairs[i], pairs[i+1]))
	}
	return b.String()
}
