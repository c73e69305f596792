package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
	"github.com/a11ylab/ariasnap/internal/types"
)

func mustParse(t *testing.T, text string) *pattern.Tree {
	t.Helper()
	tree, err := pattern.Parse(text)
	require.NoError(t, err)
	return tree
}

func el(role, name string, children ...*snapshot.Node) *snapshot.Node {
	return &snapshot.Node{Role: role, Name: name, Children: children}
}

func captured(children ...*snapshot.Node) *snapshot.Node {
	return &snapshot.Node{Role: "WebArea", Children: children}
}

func TestMatches_NodePredicate(t *testing.T) {
	t.Parallel()

	t.Run("role and name", func(t *testing.T) {
		heading := el("heading", "title")
		heading.Attrs = map[string]types.AttrValue{"level": types.IntValue(1)}

		tree := mustParse(t, `- heading "title"`)
		assert.True(t, Matches(tree, captured(heading)))
	})

	t.Run("attribute mismatch fails independent of name", func(t *testing.T) {
		heading := el("heading", "Section Title")
		heading.Attrs = map[string]types.AttrValue{"level": types.IntValue(2)}

		tree := mustParse(t, `- heading [level=3]`)
		assert.False(t, Matches(tree, captured(heading)))
	})

	t.Run("declared attribute absent from snapshot fails", func(t *testing.T) {
		tree := mustParse(t, `- button "Save" [disabled]`)
		assert.False(t, Matches(tree, captured(el("button", "Save"))))
	})

	t.Run("tristate equality", func(t *testing.T) {
		box := el("checkbox", "Subtasks")
		box.Attrs = map[string]types.AttrValue{"checked": types.MixedValue()}

		assert.True(t, Matches(mustParse(t, `- checkbox [checked=mixed]`), captured(box)))
		assert.False(t, Matches(mustParse(t, `- checkbox [checked=true]`), captured(box)))
	})

	t.Run("regex name is unanchored", func(t *testing.T) {
		tree := mustParse(t, `- heading /Sec\w+/`)
		assert.True(t, Matches(tree, captured(el("heading", "A Section Title"))))
	})

	t.Run("literal name needs exact equality", func(t *testing.T) {
		tree := mustParse(t, `- heading "Section"`)
		assert.False(t, Matches(tree, captured(el("heading", "Section Title"))))
	})

	t.Run("leaf text matches the concrete name", func(t *testing.T) {
		tree := mustParse(t, `- text: Add to cart`)
		assert.True(t, Matches(tree, captured(el("text", "Add to cart"))))
		assert.False(t, Matches(tree, captured(el("text", "Add to basket"))))
	})

	t.Run("wildcard role", func(t *testing.T) {
		tree := mustParse(t, `- none "Save"`)
		assert.True(t, Matches(tree, captured(el("button", "Save"))))
	})

	t.Run("url special property", func(t *testing.T) {
		link := el("link", "Docs")
		link.URL = "https://example.com/docs/intro"

		pass := mustParse(t, "- link \"Docs\":\n  - /url: /docs\\/intro/")
		fail := mustParse(t, `
- link "Docs":
  - /url: "https://example.com/docs"
`)
		assert.True(t, Matches(pass, captured(link)))
		assert.False(t, Matches(fail, captured(link)))
	})

	t.Run("nil capture never matches", func(t *testing.T) {
		tree := mustParse(t, `- button`)
		assert.False(t, Matches(tree, nil))
	})
}

func TestMatches_Contain(t *testing.T) {
	t.Parallel()

	list := func(items ...string) *snapshot.Node {
		n := el("list", "")
		for _, it := range items {
			n.Children = append(n.Children, el("listitem", it))
		}
		return n
	}

	tree := mustParse(t, `
- list:
  - listitem: One
  - listitem: Three
`)

	t.Run("in-order subsequence passes", func(t *testing.T) {
		assert.True(t, Matches(tree, captured(list("One", "Two", "Three"))))
	})

	t.Run("extra children never break a passing match", func(t *testing.T) {
		assert.True(t, Matches(tree, captured(list("Zero", "One", "Two", "Three", "Four"))))
	})

	t.Run("out of order fails", func(t *testing.T) {
		assert.False(t, Matches(tree, captured(list("Three", "One"))))
	})

	t.Run("missing child fails", func(t *testing.T) {
		assert.False(t, Matches(tree, captured(list("One", "Two"))))
	})

	t.Run("forward scan does not backtrack", func(t *testing.T) {
		// the first pattern child consumes the earliest matching
		// snapshot child; the scan never returns to skipped ones
		two := mustParse(t, `
- list:
  - listitem: One
  - listitem: One
`)
		assert.True(t, Matches(two, captured(list("One", "One"))))
		assert.False(t, Matches(two, captured(list("One", "Two"))))
	})
}

func TestMatches_Equal(t *testing.T) {
	t.Parallel()

	list := func(items ...string) *snapshot.Node {
		n := el("list", "")
		for _, it := range items {
			n.Children = append(n.Children, el("listitem", it))
		}
		return n
	}

	tree := mustParse(t, `
- list:
  - /children: equal
  - listitem: One
  - listitem: Two
  - listitem: Three
`)

	t.Run("exact child list passes", func(t *testing.T) {
		assert.True(t, Matches(tree, captured(list("One", "Two", "Three"))))
	})

	t.Run("removed child fails", func(t *testing.T) {
		assert.False(t, Matches(tree, captured(list("One", "Three"))))
	})

	t.Run("added child fails", func(t *testing.T) {
		assert.False(t, Matches(tree, captured(list("One", "Two", "Three", "Four"))))
	})

	t.Run("descendants revert to contain", func(t *testing.T) {
		tree := mustParse(t, `
- group:
  - /children: equal
  - list:
    - listitem: A
`)
		inner := list("A", "B", "C")
		inner.Role = "list"
		group := el("group", "", inner)
		// the list's own children are matched under contain again
		assert.True(t, Matches(tree, captured(group)))
	})

	t.Run("root level directive", func(t *testing.T) {
		tree := mustParse(t, `
- /children: equal
- button "Save"
`)
		assert.True(t, Matches(tree, captured(el("button", "Save"))))
		assert.False(t, Matches(tree, captured(el("button", "Save"), el("button", "Cancel"))))
	})
}

func TestMatches_DeepEqual(t *testing.T) {
	t.Parallel()

	build := func(items ...string) *snapshot.Node {
		inner := el("list", "")
		for _, it := range items {
			inner.Children = append(inner.Children, el("listitem", it))
		}
		return captured(el("group", "", inner))
	}

	tree := mustParse(t, `
- group:
  - /children: deep-equal
  - list:
    - listitem: A
    - listitem: B
`)

	t.Run("inherited by descendant levels", func(t *testing.T) {
		assert.True(t, Matches(tree, build("A", "B")))
		assert.False(t, Matches(tree, build("A", "B", "C")))
	})

	t.Run("local contain override wins for its subtree", func(t *testing.T) {
		tree := mustParse(t, `
- group:
  - /children: deep-equal
  - list:
    - /children: contain
    - listitem: A
`)
		assert.True(t, Matches(tree, build("A", "B", "C")))
	})

	t.Run("pattern without children requires empty child list", func(t *testing.T) {
		tree := mustParse(t, `
- group:
  - /children: deep-equal
  - list
`)
		empty := captured(el("group", "", el("list", "")))
		assert.True(t, Matches(tree, empty))
		assert.False(t, Matches(tree, build("A")))
	})
}

func TestEffectiveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		declared  pattern.ContainmentMode
		inherited pattern.ContainmentMode
		want      pattern.ContainmentMode
	}{
		{"default is contain", pattern.ModeUnset, pattern.ModeUnset, pattern.ModeContain},
		{"declared wins", pattern.ModeEqual, pattern.ModeDeepEqual, pattern.ModeEqual},
		{"deep-equal inherits", pattern.ModeUnset, pattern.ModeDeepEqual, pattern.ModeDeepEqual},
		{"equal does not inherit", pattern.ModeUnset, pattern.ModeEqual, pattern.ModeContain},
		{"contain override under deep-equal", pattern.ModeContain, pattern.ModeDeepEqual, pattern.ModeContain},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, effectiveMode(tt.declared, tt.inherited))
		})
	}
}
