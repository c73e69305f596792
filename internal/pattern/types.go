package pattern

import (
	"regexp"

	"github.com/a11ylab/ariasnap/internal/types"
)

// WildcardRole matches any concrete role.
const WildcardRole = "none"

// ContainmentMode governs how a node's declared children are matched
// against a concrete node's children.
type ContainmentMode int

const (
	// ModeUnset means the node carries no /children directive and
	// inherits its effective mode during matching.
	ModeUnset ContainmentMode = iota
	// ModeContain requires pattern children to appear, in order, as a
	// subsequence of the concrete children.
	ModeContain
	// ModeEqual requires pairwise equality of the child lists at this
	// level only.
	ModeEqual
	// ModeDeepEqual requires pairwise equality here and at every
	// descendant level that does not override it.
	ModeDeepEqual
)

func (m ContainmentMode) String() string {
	switch m {
	case ModeContain:
		return "contain"
	case ModeEqual:
		return "equal"
	case ModeDeepEqual:
		return "deep-equal"
	}
	return "unset"
}

// ParseMode resolves a /children directive argument.
func ParseMode(s string) (ContainmentMode, bool) {
	switch s {
	case "contain":
		return ModeContain, true
	case "equal":
		return ModeEqual, true
	case "deep-equal":
		return ModeDeepEqual, true
	}
	return ModeUnset, false
}

// Value matches a concrete string either as an exact literal or by a
// regular expression. Regex matching is unanchored, mirroring JS
// RegExp.test, which this syntax is modeled after.
type Value struct {
	Literal string
	Regex   *regexp.Regexp // non-nil for /.../ values
}

func LiteralValue(s string) Value        { return Value{Literal: s} }
func RegexValue(re *regexp.Regexp) Value { return Value{Regex: re} }

func (v Value) IsRegex() bool { return v.Regex != nil }

// Source returns the value as written, without delimiters.
func (v Value) Source() string {
	if v.Regex != nil {
		return v.Regex.String()
	}
	return v.Literal
}

// Node is one expected element: a single `- role ...` line of the
// expectation plus its nested children.
//
// Exactly one of Name and Text is meaningful: a node introduced with a
// quoted or regex name uses Name, the `role: text` leaf shorthand uses
// Text. Both are nil when the line declared neither. A node carrying
// Text is always a leaf; the parser rejects children under it.
type Node struct {
	Role     string
	Name     *Value
	Text     *Value
	Attrs    map[string]types.AttrValue
	Props    map[string]Value // special matchers, currently only "url"
	Mode     ContainmentMode  // declared /children mode, ModeUnset if none
	Children []*Node
	Pos      types.Pos // position of the role token
}

// Tree is a parsed expectation: the ordered list of root nodes plus the
// declared mode for the implicit root child list.
type Tree struct {
	RootMode ContainmentMode
	Children []*Node
}
