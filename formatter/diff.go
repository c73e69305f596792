package formatter

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	delStyle  = color.New(color.FgRed)
	addStyle  = color.New(color.FgGreen)
	hunkStyle = color.New(color.FgCyan)
)

// Diff produces a standard line-based unified diff between the expected
// and received renderings.
func Diff(expected, received string) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(received),
		FromFile: "expected",
		ToFile:   "received",
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return text
}

// ColorizeDiff repaints a unified diff for terminal output: removals
// red, additions green, hunk headers cyan.
func ColorizeDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(delStyle.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addStyle.Sprint(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}
