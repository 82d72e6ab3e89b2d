package testfixtures

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// Initialize test environment
func init() {
	// Ascii profile keeps rendered output free of color codes across platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

var specialKeys = map[string]rune{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
}

// Key builds the key press whose String() is s, e.g. "enter", "ctrl+d",
// "alt+3", "shift+tab" or "x".
func Key(s string) tea.KeyPressMsg {
	var mod tea.KeyMod
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			mod |= tea.ModCtrl
			s = strings.TrimPrefix(s, "ctrl+")
			continue
		case strings.HasPrefix(s, "alt+"):
			mod |= tea.ModAlt
			s = strings.TrimPrefix(s, "alt+")
			continue
		case strings.HasPrefix(s, "shift+"):
			mod |= tea.ModShift
			s = strings.TrimPrefix(s, "shift+")
			continue
		}
		break
	}

	if code, ok := specialKeys[s]; ok {
		return tea.KeyPressMsg{Code: code, Mod: mod}
	}
	msg := tea.KeyPressMsg{Code: []rune(s)[0], Mod: mod}
	if mod == 0 {
		msg.Text = s
	}
	return msg
}

// Type returns one key press per rune of text.
func Type(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			msgs = append(msgs, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
			continue
		}
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}
