package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveEmptyLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no blank lines", "a\nb", "a\nb"},
		{"empty lines", "a\n\nb\n\n", "a\nb"},
		{"whitespace only lines", "a\n   \n\t\nb", "a\nb"},
		{"crlf blank line", "a\r\n\r\nb\r\n", "a\r\nb\r"},
		{"indentation kept", "func f() {\n\n    return\n}\n", "func f() {\n    return\n}"},
		{"all blank", "\n \n\t\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveEmptyLines(tt.in))
		})
	}
}
