package styles

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string untouched", input: "anna", maxLen: 10, want: "anna"},
		{name: "exact length untouched", input: "0123456789", maxLen: 10, want: "0123456789"},
		{name: "long string truncated", input: "a very long chat name", maxLen: 10, want: "a very ..."},
		{name: "cyrillic name truncated on runes", input: "Александра Петровна", maxLen: 10, want: "Алексан..."},
		{name: "cyrillic name within limit", input: "Аня", maxLen: 10, want: "Аня"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Truncate(test.input, test.maxLen)
			assert.Equal(t, test.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
