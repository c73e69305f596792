package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
	"github.com/a11ylab/ariasnap/internal/types"
)

const indentStep = "  "

// RenderTree serializes a pattern tree back to expectation syntax, the
// inverse of parsing. Quoting is normalized: names always come out
// double-quoted and regexes as /.../, so parse(render(parse(x))) is
// structurally equal to parse(x) even when the byte form differs.
func RenderTree(t *pattern.Tree) string {
	var b strings.Builder
	if t.RootMode != pattern.ModeUnset {
		fmt.Fprintf(&b, "- /children: %s\n", t.RootMode)
	}
	for _, n := range t.Children {
		renderPatternNode(&b, n, 0)
	}
	return b.String()
}

func renderPatternNode(b *strings.Builder, n *pattern.Node, depth int) {
	b.WriteString(strings.Repeat(indentStep, depth))
	b.WriteString("- ")
	b.WriteString(n.Role)
	if n.Name != nil {
		b.WriteByte(' ')
		b.WriteString(renderName(*n.Name))
	}
	if attrs := renderAttrList(n.Attrs); attrs != "" {
		b.WriteByte(' ')
		b.WriteString(attrs)
	}

	hasDirectives := n.Mode != pattern.ModeUnset || len(n.Props) > 0
	switch {
	case n.Text != nil:
		b.WriteString(": ")
		b.WriteString(renderScalar(*n.Text))
		b.WriteByte('\n')
	case len(n.Children) > 0 || hasDirectives:
		b.WriteString(":\n")
		child := strings.Repeat(indentStep, depth+1)
		if n.Mode != pattern.ModeUnset {
			fmt.Fprintf(b, "%s- /children: %s\n", child, n.Mode)
		}
		if url, ok := n.Props["url"]; ok {
			fmt.Fprintf(b, "%s- /url: %s\n", child, renderScalar(url))
		}
		for _, c := range n.Children {
			renderPatternNode(b, c, depth+1)
		}
	default:
		b.WriteByte('\n')
	}
}

// RenderSnapshot serializes a captured tree to the same syntax, for the
// received side of a diff. A non-nil policy regexifies leaf values so
// legitimately dynamic content is not highlighted as a difference; pass
// nil for the raw form. A nil root stands for a failed capture.
func RenderSnapshot(root *snapshot.Node, policy snapshot.Policy) string {
	if root == nil {
		return snapshot.NotFoundPlaceholder + "\n"
	}
	var b strings.Builder
	for _, c := range root.Children {
		renderSnapshotNode(&b, c, 0, policy)
	}
	return b.String()
}

func renderSnapshotNode(b *strings.Builder, n *snapshot.Node, depth int, policy snapshot.Policy) {
	b.WriteString(strings.Repeat(indentStep, depth))
	b.WriteString("- ")

	// a text leaf collapses role and content into one line
	if n.Role == "text" && len(n.Children) == 0 && n.URL == "" {
		b.WriteString("text")
		if n.Name != "" {
			b.WriteString(": ")
			b.WriteString(policyScalar(n.Name, policy))
		}
		b.WriteByte('\n')
		return
	}

	b.WriteString(n.Role)
	if n.Name != "" {
		b.WriteByte(' ')
		b.WriteString(policyName(n.Name, policy))
	}
	if attrs := renderAttrList(n.Attrs); attrs != "" {
		b.WriteByte(' ')
		b.WriteString(attrs)
	}

	if len(n.Children) > 0 || n.URL != "" {
		b.WriteString(":\n")
		if n.URL != "" {
			fmt.Fprintf(b, "%s- /url: %s\n", strings.Repeat(indentStep, depth+1), bareScalar(n.URL))
		}
		for _, c := range n.Children {
			renderSnapshotNode(b, c, depth+1, policy)
		}
	} else {
		b.WriteByte('\n')
	}
}

func renderAttrList(attrs map[string]types.AttrValue) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := attrs[k]
		if v.Kind == types.AttrBool && v.Bool {
			parts = append(parts, k) // bare key shorthand for true
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderName renders a name matcher in its always-delimited position.
func renderName(v pattern.Value) string {
	if v.IsRegex() {
		return "/" + v.Regex.String() + "/"
	}
	return quote(v.Literal)
}

// renderScalar renders a leaf text or /url value, which may stay bare.
func renderScalar(v pattern.Value) string {
	if v.IsRegex() {
		return "/" + v.Regex.String() + "/"
	}
	return bareScalar(v.Literal)
}

func policyName(s string, policy snapshot.Policy) string {
	if policy != nil {
		if rendered, ok := policy.Value(s); ok {
			return "/" + rendered + "/"
		}
	}
	return quote(s)
}

func policyScalar(s string, policy snapshot.Policy) string {
	if policy != nil {
		if rendered, ok := policy.Value(s); ok {
			return "/" + rendered + "/"
		}
	}
	return bareScalar(s)
}

// bareScalar emits a literal without quotes unless the bare form would
// be re-read differently.
func bareScalar(s string) string {
	if s == "" || s[0] == '"' || s[0] == '/' ||
		s != strings.TrimSpace(s) {
		return quote(s)
	}
	return s
}

// quote applies the DSL's string quoting: only `\` and `"` are escaped.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
