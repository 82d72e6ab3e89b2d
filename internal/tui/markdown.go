package tui

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/charmbracelet/x/ansi"
)

// MaxMarkdownWidth caps rendered markdown for readability.
const MaxMarkdownWidth = 120

// RenderMarkdown renders markdown with glamour. Falls back to plain text
// wrapping if rendering fails.
func RenderMarkdown(content string, width int) string {
	width = min(width, MaxMarkdownWidth)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wrapText(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return wrapText(content, width)
	}

	return trimTrailingBlankLines(rendered)
}

// trimTrailingBlankLines drops the padding lines glamour appends, including
// ones that hold only styling or spaces.
func trimTrailingBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// wrapText breaks lines at the last space before width runes.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		var out []string
		runes := []rune(line)
		for len(runes) > width {
			cut := width
			for j := width; j > 0; j-- {
				if runes[j] == ' ' {
					cut = j
					break
				}
			}
			out = append(out, string(runes[:cut]))
			runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
		}
		lines[i] = strings.Join(append(out, string(runes)), "\n")
	}
	return strings.Join(lines, "\n")
}
