package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "jane doe", "Jane Doe"},
		{"uppercase input", "JANE DOE", "Jane Doe"},
		{"period glued to word", "ad.suman", "Ad. Suman"},
		{"apostrophe sub-words", "o'brien", "O'Brien"},
		{"hyphen sub-words", "multi-word", "Multi-Word"},
		{"trailing period kept", "md. karim", "Md. Karim"},
		{"comma address", "islambag,panchagarh", "Islambag, Panchagarh"},
		{"spaces around comma", "Prodhan Para , Gobindoganj", "Prodhan Para, Gobindoganj"},
		{"empty segment dropped", "dhaka,,mirpur", "Dhaka, Mirpur"},
		{"address with house number", "house 12, road-5, dhanmondi", "House 12, Road-5, Dhanmondi"},
		{"blank", "", ""},
		{"whitespace only", "  \t ", ""},
		{"collapses extra spaces", "a   b", "A B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"ad.suman",
		"o'brien",
		"multi-word",
		"islambag,panchagarh",
		"Prodhan Para , Gobindoganj",
		"md. abdul karim",
		"a - b",
		"house 12, road-5, dhanmondi",
		"",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}
