package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tbckr/catalog/internal/output"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string", "hello world", "hello world"},
		{"red color", "\x1b[31mred\x1b[0m", "red"},
		{"multiple sequences", "\x1b[1m\x1b[31merror\x1b[0m", "error"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.StripANSI(tc.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Haircut & Style", "Haircut & Style"},
		{"ansi", "\x1b[31mColor\x1b[0m", "Color"},
		{"tab and newline", "Main St\t12\nSuite 4", "Main St 12 Suite 4"},
		{"bell and del", "a\x07b\x7fc", "a b c"},
		{"unicode kept", "Café – Zürich", "Café – Zürich"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.Sanitize(tc.input))
		})
	}
}
