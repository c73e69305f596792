package match

import (
	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
)

// Matches reports whether the pattern tree matches the captured tree.
// The root pattern is an implicit ordered list of siblings matched
// against root.Children under the tree's declared root mode. Matching is
// a pure predicate over immutable inputs; a nil root (capture found no
// element) is a hard mismatch.
func Matches(t *pattern.Tree, root *snapshot.Node) bool {
	if root == nil {
		return false
	}
	return matchChildren(t.Children, root.Children, effectiveMode(t.RootMode, pattern.ModeUnset))
}

// effectiveMode resolves the containment mode for one child list: the
// declared /children directive wins; otherwise deep-equal inherits from
// the parent level and everything else relaxes back to contain.
func effectiveMode(declared, inherited pattern.ContainmentMode) pattern.ContainmentMode {
	if declared != pattern.ModeUnset {
		return declared
	}
	if inherited == pattern.ModeDeepEqual {
		return pattern.ModeDeepEqual
	}
	return pattern.ModeContain
}

func matchChildren(pats []*pattern.Node, snaps []*snapshot.Node, mode pattern.ContainmentMode) bool {
	if mode == pattern.ModeEqual || mode == pattern.ModeDeepEqual {
		if len(pats) != len(snaps) {
			return false
		}
		for i := range pats {
			if !matchNode(pats[i], snaps[i], mode) {
				return false
			}
		}
		return true
	}

	// contain: pattern children must appear, in order, as a subsequence
	// of the concrete children. Earliest-possible assignment, forward
	// scan only, no backtracking over consumed children.
	j := 0
	for _, p := range pats {
		found := false
		for ; j < len(snaps); j++ {
			if matchNode(p, snaps[j], mode) {
				found = true
				j++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchNode(p *pattern.Node, s *snapshot.Node, inherited pattern.ContainmentMode) bool {
	if p.Role != pattern.WildcardRole && p.Role != s.Role {
		return false
	}
	if p.Name != nil && !matchValue(*p.Name, s.Name) {
		return false
	}
	if p.Text != nil && !matchValue(*p.Text, s.Name) {
		return false
	}
	for key, want := range p.Attrs {
		// a declared attribute missing from the snapshot fails, e.g.
		// expecting disabled on an element that is not disabled
		got, ok := s.Attrs[key]
		if !ok || !want.Equal(got) {
			return false
		}
	}
	if url, ok := p.Props["url"]; ok && !matchValue(url, s.URL) {
		return false
	}

	eff := effectiveMode(p.Mode, inherited)
	if len(p.Children) == 0 && eff == pattern.ModeContain {
		return true
	}
	return matchChildren(p.Children, s.Children, eff)
}
