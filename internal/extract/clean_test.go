package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"nbsp", "hello\u00a0world", "hello world"},
		{"zero width stripped", "he\u200bllo\u200c wo\u200drld", "hello world"},
		{"bom stripped", "\ufeffhello", "hello"},
		{"line breaks collapse", "line one\nline two\r\nline three", "line one line two line three"},
		{"whitespace runs", "too    many \t spaces", "too many spaces"},
		{"trimmed", "  padded  ", "padded"},
		{"non-bmp dropped", "launch \U0001F680 ready", "launch ready"},
		{"accents kept", "Société Générale", "Société Générale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
