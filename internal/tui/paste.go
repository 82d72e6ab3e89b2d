package tui

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SanitizePaste strips escape sequences and control characters (keeping
// newlines and tabs), normalizes CRLF to LF and trims trailing whitespace.
func SanitizePaste(content string) string {
	content = ansi.Strip(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")

	content = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' {
			return '\n'
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, content)

	return strings.TrimRight(content, " \t\n")
}

var newlinePattern = regexp.MustCompile(`\n+`)

// CollapseNewlines replaces runs of newlines with a single space, for
// single-line inputs.
func CollapseNewlines(content string) string {
	return newlinePattern.ReplaceAllString(content, " ")
}
