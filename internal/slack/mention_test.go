package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmailAddress(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "mention with label",
			value: "<mailto:jane@example.com|Jane Doe>",
			want:  "jane@example.com",
		},
		{
			name:  "mention without label",
			value: "<mailto:jane@example.com>",
			want:  "jane@example.com",
		},
		{
			name:  "surrounding whitespace is trimmed",
			value: "  <mailto:jane@example.com|Jane>  ",
			want:  "jane@example.com",
		},
		{
			name:  "uppercase scheme",
			value: "<MAILTO:jane@example.com|Jane>",
			want:  "jane@example.com",
		},
		{
			name:  "bare address is returned unchanged",
			value: "jane@example.com",
			want:  "jane@example.com",
		},
		{
			name:  "sentinel value is returned unchanged",
			value: "author",
			want:  "author",
		},
		{
			name:  "empty value",
			value: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmailAddress(tt.value))
		})
	}
}
