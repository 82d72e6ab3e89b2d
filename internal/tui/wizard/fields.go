package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/bandhan/bandhan/internal/tui"
	"github.com/bandhan/bandhan/internal/tui/theme"
)

// field is one labelled input on a step: a single line or a multi-line area.
type field struct {
	key       string // form.Errors key, or "" when the field has no own error
	label     string
	multiline bool
	compact   bool // label and input on one line, no box
	input     textinput.Model
	area      textarea.Model
}

func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tertiary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

func newLineField(key, label, placeholder, value string, limit int) *field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetStyles(inputStyles())
	ti.SetWidth(50)
	ti.SetValue(value)
	return &field{key: key, label: label, input: ti}
}

func newAreaField(key, label, placeholder, value string, height, limit int) *field {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = limit
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(50)
	ta.SetHeight(height)

	t := theme.Current()
	styles := textarea.DefaultDarkStyles()
	styles.Cursor.Color = lipgloss.Color(t.Primary)
	styles.Cursor.Shape = tea.CursorBar
	styles.Cursor.Blink = true
	ta.SetStyles(styles)

	ta.SetValue(value)
	return &field{key: key, label: label, multiline: true, area: ta}
}

func (f *field) Value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) SetValue(v string) {
	if f.multiline {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) Focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) Blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) SetWidth(w int) {
	if f.multiline {
		f.area.SetWidth(w)
		return
	}
	f.input.SetWidth(w)
}

// Update forwards msg to the input. Pastes are sanitized first; single-line
// inputs get newlines collapsed.
func (f *field) Update(msg tea.Msg) tea.Cmd {
	if paste, ok := msg.(tea.PasteMsg); ok {
		content := tui.SanitizePaste(paste.Content)
		if !f.multiline {
			content = tui.CollapseNewlines(content)
		}
		msg = tea.PasteMsg{Content: content}
	}

	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *field) View(focused bool, errMsg string) string {
	s := theme.Current().S()

	label := s.InputLabel.Render(f.label)
	box := s.InputBox
	if focused {
		label = s.InputLabelFocused.Render(f.label)
		box = s.InputBoxFocused
	}

	if f.compact {
		marker := "  "
		if focused {
			marker = s.Highlight.Render("› ")
		}
		line := marker + label + "  " + f.input.View()
		if errMsg != "" {
			line += "  " + s.FieldError.Render(errMsg)
		}
		return line
	}

	var inner string
	if f.multiline {
		inner = f.area.View()
	} else {
		inner = f.input.View()
	}

	lines := []string{label, box.Render(inner)}
	if errMsg != "" {
		lines = append(lines, s.FieldError.Render("✗ "+errMsg))
	}
	return strings.Join(lines, "\n")
}
