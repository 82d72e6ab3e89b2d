package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/bandhan/bandhan/internal/tui/theme"
)

// Modal width bounds.
const (
	MinModalWidth = 60
	MaxModalWidth = 100
)

// ModalWidth returns the modal width for a terminal of the given width.
func ModalWidth(termWidth int) int {
	return min(max(termWidth-10, MinModalWidth), MaxModalWidth)
}

// RenderModal wraps sections in the rounded modal container, titled, and
// centers it on a width x height screen.
func RenderModal(title string, width, height int, sections ...string) string {
	s := theme.Current().S()
	modalWidth := ModalWidth(width)

	body := make([]string, 0, len(sections)+2)
	body = append(body, s.Title.Width(modalWidth-6).Render(title), "")
	body = append(body, sections...)

	modal := s.ModalContainer.Width(modalWidth).Render(strings.Join(body, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// Frame draws content onto a full-screen canvas and returns it as an
// alt-screen view.
func Frame(content string, width, height int) tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(width, height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: width, Y: height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
