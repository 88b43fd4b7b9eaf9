package docfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ISO date", "2022-05-01", "2022"},
		{"ISO datetime", "2022-05-01T10:30:00Z", "2022"},
		{"slash date trailing year", "05/01/2022", "2022"},
		{"slash date with spaces", "05/01/2022  ", "2022"},
		{"month name", "January 2, 2019", "2019"},
		{"short month and year", "Jan 2020", "2020"},
		{"dotted date", "02.01.2018", "2018"},
		{"bare year passes through", "2021", "2021"},
		{"unparseable passes through", "sometime in spring", "sometime in spring"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeYear(tt.input))
		})
	}
}

func TestNormalizeFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain line", "one line", "one line"},
		{"trims each line", "  a  \n  b  ", "a\nb"},
		{"drops blank lines", "a\n\n\nb\n", "a\nb"},
		{"all blank", "\n  \n\t\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFreeText(tt.input))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"Built X", "Shipped Y"}, splitLines("Built X\n\nShipped Y\n"))
	assert.Nil(t, splitLines("\n \n"))
	assert.Nil(t, splitLines(""))
}
