package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "color codes", input: "\x1b[31mred text\x1b[0m", want: "red text"},
		{name: "256 colors", input: "\x1b[38;5;196mred\x1b[0m", want: "red"},
		{name: "null and bell", input: "a\x00b\x07c", want: "abc"},
		{name: "crlf", input: "one\r\ntwo\r\n", want: "one\ntwo"},
		{name: "bare cr", input: "one\rtwo", want: "one\ntwo"},
		{name: "keeps tabs", input: "a\tb", want: "a\tb"},
		{name: "trailing whitespace", input: "story  \n\n\t", want: "story"},
		{name: "multibyte", input: "प्यार ❤", want: "प्यार ❤"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePaste(tt.input))
		})
	}
}

func TestCollapseNewlines(t *testing.T) {
	assert.Equal(t, "line1 line2 line3", CollapseNewlines("line1\n\nline2\nline3"))
}
