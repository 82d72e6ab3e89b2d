package wizard

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/tui"
	"github.com/bandhan/bandhan/internal/tui/theme"
)

// View renders the wizard UI.
func (m *Model) View() tea.View {
	return tui.Frame(m.render(), m.width, m.height)
}

func (m *Model) render() string {
	switch m.phase {
	case phasePickTemplate:
		return m.renderPicker()
	case phaseCheckout:
		return tui.RenderModal(m.title("Checkout"), m.width, m.height,
			theme.Current().S().Muted.Render("Placing your order..."))
	case phaseDone:
		return m.renderReceipt()
	}

	s := theme.Current().S()
	step := m.wiz.Current()
	_, total := m.wiz.Progress()

	sections := []string{
		m.renderStepIndicator(),
		"",
		s.Description.Render(step.Description),
	}
	if errs := m.stepErrors(); len(errs) > 0 {
		for _, e := range errs {
			sections = append(sections, s.FieldError.Render("✗ "+e))
		}
	}
	sections = append(sections, "", m.renderBody())
	if m.notice != "" {
		sections = append(sections, "", s.Warning.Render(m.notice))
	}

	bar := tui.NewButtonBar(m.buttons())
	bar.SetWidth(tui.ModalWidth(m.width) - 6)
	sections = append(sections, "", bar.Render(), "", m.renderHints())
	if m.status != "" {
		sections = append(sections, s.StatusBar.Render(m.status))
	}

	title := m.title(fmt.Sprintf("Step %d of %d: %s", m.wiz.Index()+1, total, step.Title))
	return tui.RenderModal(title, m.width, m.height, sections...)
}

func (m *Model) title(suffix string) string {
	t := theme.Current()
	return theme.ApplyGradient("Bandhan", t.Primary, t.Accent) + "  " + suffix
}

// renderStepIndicator shows every step: done, current, reachable or locked.
func (m *Model) renderStepIndicator() string {
	s := theme.Current().S()
	st := m.wiz.State()

	parts := make([]string, 0, len(m.wiz.Steps()))
	for i, step := range m.wiz.Steps() {
		n := fmt.Sprintf("%d", i+1)
		switch {
		case i == m.wiz.Index():
			parts = append(parts, s.StepCurrent.Render("● "+n+" "+step.Title))
		case st.IsCompleted(i):
			parts = append(parts, s.StepDone.Render("✓ "+n))
		case m.wiz.Reachable(i):
			parts = append(parts, s.StepPending.Render("○ "+n))
		default:
			parts = append(parts, s.StepLocked.Render("○ "+n))
		}
	}
	return strings.Join(parts, "  ")
}

// stepErrors returns the messages not attached to a visible field.
func (m *Model) stepErrors() []string {
	errs := m.wiz.Errors()
	var out []string
	for _, key := range errs.Fields() {
		attached := slices.ContainsFunc(m.fields, func(f *field) bool { return f.key == key })
		if !attached {
			out = append(out, errs[key])
		}
	}
	return out
}

func (m *Model) renderBody() string {
	step := m.wiz.Current()
	errs := m.wiz.Errors()

	var blocks []string
	switch step.ID {
	case form.StepPreview:
		return m.preview.View()
	case form.StepPhotos:
		blocks = append(blocks, m.renderPhotoList(), "")
	case form.StepReasons:
		filled := len(m.wiz.State().FilledReasons())
		blocks = append(blocks, theme.Current().S().Muted.Render(
			fmt.Sprintf("%d of at least %d filled (%d/%d slots)", filled, gift.MinReasons, len(m.fields), gift.MaxReasons)), "")
	}

	for i, f := range m.fields {
		blocks = append(blocks, f.View(i == m.focus, errs[f.key]))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderPhotoList() string {
	s := theme.Current().S()
	photos := m.wiz.State().Photos
	if len(photos) == 0 {
		return s.Muted.Render(fmt.Sprintf("No photos yet. Add at least %d.", gift.MinPhotos))
	}

	lines := make([]string, 0, len(photos)+1)
	for i, p := range photos {
		line := fmt.Sprintf("%d. %s", i+1, p.URL)
		if p.Caption != "" {
			line += s.Muted.Render("  " + p.Caption)
		}
		lines = append(lines, s.Base.Render(line))
	}
	lines = append(lines, s.Muted.Render(fmt.Sprintf("%d of at least %d", len(photos), gift.MinPhotos)))
	return strings.Join(lines, "\n")
}

func (m *Model) renderHints() string {
	step := m.wiz.Current()
	pairs := []string{tui.KeyEnter, "next", tui.KeyEsc, "back", tui.KeyTab, "focus"}

	switch step.ID {
	case form.StepStory:
		pairs = append(pairs, tui.KeyCtrlD, "next", tui.KeyCtrlE, "editor")
	case form.StepFinalMessage, form.StepSecretLetter:
		pairs = append(pairs, tui.KeyCtrlD, "next")
	case form.StepReasons:
		pairs = append(pairs, tui.KeyCtrlA, "add", tui.KeyCtrlX, "remove")
	case form.StepPhotos:
		pairs = append(pairs, tui.KeyCtrlA, "add photo", tui.KeyCtrlX, "remove last")
	case form.StepPreview:
		pairs = append(pairs, tui.KeyUpDown, "scroll", tui.KeyPgUpDown, "page")
	}
	if step.Optional && !m.wiz.IsLastStep() {
		pairs = append(pairs, tui.KeyCtrlK, "skip")
	}
	pairs = append(pairs, tui.KeyCtrlT, "template", tui.KeyAltNum, "jump")
	return lipgloss.NewStyle().Width(tui.ModalWidth(m.width) - 6).Render(tui.RenderHintBar(pairs...))
}

func (m *Model) renderPicker() string {
	s := theme.Current().S()
	current := m.wiz.State().SelectedTemplate

	var lines []string
	for i, t := range gift.Templates() {
		cursor := "  "
		name := s.Base.Render(t.Name)
		if i == m.pickCursor {
			cursor = s.Highlight.Render("› ")
			name = s.Highlight.Render(t.Name)
		}
		mark := ""
		if t.ID == current {
			mark = s.StepDone.Render("  ✓ current")
		}
		lines = append(lines,
			fmt.Sprintf("%s%s  %s%s", cursor, name, s.Muted.Render(priceLabel(t.Price)), mark),
			"    "+s.Description.Render(t.Description),
			"")
	}
	lines = append(lines, tui.RenderHintBar(tui.KeyUpDown, "choose", tui.KeyEnter, "select", tui.KeyEsc, "back"))
	return tui.RenderModal(m.title("Choose a template"), m.width, m.height, lines...)
}

func (m *Model) renderReceipt() string {
	s := theme.Current().S()
	r := m.result.Receipt

	lines := []string{
		s.Success.Render(fmt.Sprintf("Your gift for %s is ready.", m.wiz.State().BasicInfo.ToName)),
		"",
		s.Base.Render("Share this link:"),
		s.Highlight.Render(r.Link),
		"",
		s.Muted.Render("Order " + r.OrderID),
		"",
		tui.RenderHintBar(tui.KeyEnter, "close"),
	}
	return tui.RenderModal(m.title("Order placed"), m.width, m.height, lines...)
}
