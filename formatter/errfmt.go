package formatter

import (
	"strings"

	"github.com/fatih/color"

	"github.com/a11ylab/ariasnap/internal/pattern"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// FormatSyntaxError renders a parse failure as the offending source line
// with a caret under the reported column:
//
//	<message>:
//
//	<source line>
//	        ^
//
// The source is the original expectation text; the error's line/column
// already point into it.
func FormatSyntaxError(err *pattern.SyntaxError, source string) string {
	line := sourceLineAt(source, err.Line)
	expanded := expandTabs(line)

	var b strings.Builder
	b.WriteString(err.Message)
	b.WriteString(":\n\n")
	b.WriteString(expanded)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", calculateVisualColumn(line, err.Column)))
	b.WriteByte('^')
	return b.String()
}

// FormatSyntaxErrorColor is the terminal variant of FormatSyntaxError.
func FormatSyntaxErrorColor(err *pattern.SyntaxError, source string) string {
	line := sourceLineAt(source, err.Line)
	expanded := expandTabs(line)

	var b strings.Builder
	b.WriteString(errorStyle.Sprint(err.Message))
	b.WriteString(":\n\n")
	b.WriteString(expanded)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", calculateVisualColumn(line, err.Column)))
	b.WriteString(messageStyle.Sprint("^"))
	return b.String()
}

func sourceLineAt(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}

func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				expanded.WriteByte(' ')
				column++
			}
		} else {
			expanded.WriteRune(ch)
			column++
		}
	}
	return expanded.String()
}

// calculateVisualColumn maps a 1-based byte column to the 0-based visual
// column of the tab-expanded line.
func calculateVisualColumn(line string, column int) int {
	visual := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visual += tabWidth - (visual % tabWidth)
		} else {
			visual++
		}
	}
	return visual
}
