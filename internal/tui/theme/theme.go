// Package theme holds the color palette and pre-built styles shared by the
// bandhan TUI screens.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Tertiary  string
	Accent    string // hearts, the unlocked letter

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Border colors
	BorderMuted   string
	BorderDefault string
	BorderFocused string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme. Only catppuccin-mocha is registered.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		Base:      lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:     lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Highlight: lipgloss.NewStyle().Foreground(c(t.Tertiary)).Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true).
			Align(lipgloss.Center),
		Description: lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Italic(true),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Background(c(t.BgBase)).
			Padding(1, 2),

		InputLabel:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		InputLabelFocused: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		InputBox: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderDefault)),
		InputBoxFocused: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)),
		FieldError: lipgloss.NewStyle().Foreground(c(t.Error)),

		StepDone:    lipgloss.NewStyle().Foreground(c(t.Success)),
		StepCurrent: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true).Underline(true),
		StepPending: lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		StepLocked:  lipgloss.NewStyle().Foreground(c(t.BgOverlay)),

		ButtonNormal:   button.Foreground(c(t.FgBase)).Background(c(t.BgSurface0)),
		ButtonDisabled: button.Foreground(c(t.BgOverlay)).Background(c(t.BgMantle)),
		ButtonFocused:  button.Foreground(c(t.BgBase)).Background(c(t.Tertiary)).Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		StatusBar: lipgloss.NewStyle().Foreground(c(t.FgMuted)).Italic(true),
		Success:   lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(c(t.Warning)),
		Error:     lipgloss.NewStyle().Foreground(c(t.Error)).Bold(true),

		Cell: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(c(t.BorderDefault)),
		CellCursor: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.ThickBorder()).
			BorderForeground(c(t.BorderFocused)),
		MarkPlayer:   lipgloss.NewStyle().Foreground(c(t.Accent)).Bold(true),
		MarkOpponent: lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Heart:        lipgloss.NewStyle().Foreground(c(t.Accent)),
	}
}
