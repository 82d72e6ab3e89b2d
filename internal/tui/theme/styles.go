package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Highlight   lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style

	ModalContainer lipgloss.Style

	// Form fields
	InputLabel        lipgloss.Style
	InputLabelFocused lipgloss.Style
	InputBox          lipgloss.Style
	InputBoxFocused   lipgloss.Style
	FieldError        lipgloss.Style

	// Step indicator
	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepPending lipgloss.Style
	StepLocked  lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	StatusBar lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style

	// Mini-game board
	Cell         lipgloss.Style
	CellCursor   lipgloss.Style
	MarkPlayer   lipgloss.Style
	MarkOpponent lipgloss.Style
	Heart        lipgloss.Style
}
