package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ylab/ariasnap/internal/pattern"
)

func TestFormatSyntaxError(t *testing.T) {
	t.Parallel()

	source := `- heading [level=a]`
	_, err := pattern.Parse(source)
	require.Error(t, err)
	var serr *pattern.SyntaxError
	require.ErrorAs(t, err, &serr)

	got := FormatSyntaxError(serr, source)
	want := "Value of \"level\" attribute must be a number:\n" +
		"\n" +
		"- heading [level=a]\n" +
		strings.Repeat(" ", 17) + "^"
	assert.Equal(t, want, got)
}

func TestFormatSyntaxError_PointsIntoOriginalIndentation(t *testing.T) {
	t.Parallel()

	// the whole block is indented; reported columns refer to the text
	// as written, so the caret lands under the value inside it
	source := "    - heading [level=a]"
	_, err := pattern.Parse(source)
	require.Error(t, err)
	var serr *pattern.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 22, serr.Column)

	got := FormatSyntaxError(serr, source)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, source, lines[2])
	assert.Equal(t, strings.Repeat(" ", 21)+"^", lines[3])
}

func TestFormatSyntaxError_SecondLine(t *testing.T) {
	t.Parallel()

	source := "- list:\n  - listitem: \"unterminated"
	_, err := pattern.Parse(source)
	require.Error(t, err)
	var serr *pattern.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Line)

	got := FormatSyntaxError(serr, source)
	assert.Contains(t, got, "  - listitem: \"unterminated\n")
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		column int
		want   int
	}{
		{"no tabs", "- button", 3, 2},
		{"column one", "- button", 1, 0},
		{"leading tab", "\t- button", 2, 8},
		{"tab mid line", "a\tb", 3, 8},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, calculateVisualColumn(tt.line, tt.column))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "ab      x", expandTabs("ab\tx"))
	assert.Equal(t, "plain", expandTabs("plain"))
}
