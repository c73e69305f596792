package ariasnap

import (
	"github.com/a11ylab/ariasnap/formatter"
	"github.com/a11ylab/ariasnap/internal/match"
	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
)

// Parse compiles expectation text into a pattern tree. A non-nil error
// is a *pattern.SyntaxError carrying a 1-based line and column into the
// original text.
func Parse(text string) (*pattern.Tree, error) {
	return pattern.Parse(text)
}

// Match runs the tree matcher once against one captured tree. A nil
// snapshot, the capture facility's element-not-found sentinel value,
// never matches.
func Match(t *pattern.Tree, snap *snapshot.Node) bool {
	return match.Matches(t, snap)
}

// Result is one assertion attempt's outcome plus the renderings needed
// to present it either way round: Received backs the message of a
// passing negated assertion, ReceivedRegex the diff of a failing
// positive one and the suggested baseline for update workflows.
type Result struct {
	Matched       bool
	Expected      string // normalized rendering of the expectation
	Received      string // raw rendering of the captured tree
	ReceivedRegex string // regexified rendering of the captured tree
	Diff          string // unified diff, Expected vs ReceivedRegex
	RawDiff       string // unified diff, Expected vs Received
}

// MatchText parses the expectation and matches it against one captured
// tree. Parse errors abort the attempt: malformed expectation text will
// not improve on retry, so callers must not re-poll on them. A nil
// policy selects snapshot.DefaultPolicy.
func MatchText(expect string, snap *snapshot.Node, policy snapshot.Policy) (*Result, error) {
	tree, err := pattern.Parse(expect)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = snapshot.DefaultPolicy()
	}
	r := &Result{
		Matched:       match.Matches(tree, snap),
		Expected:      formatter.RenderTree(tree),
		Received:      formatter.RenderSnapshot(snap, nil),
		ReceivedRegex: formatter.RenderSnapshot(snap, policy),
	}
	r.Diff = formatter.Diff(r.Expected, r.ReceivedRegex)
	r.RawDiff = formatter.Diff(r.Expected, r.Received)
	return r, nil
}

// DiffText renders both sides and returns their unified diff without
// running the matcher, for callers that only present differences. A nil
// policy selects snapshot.DefaultPolicy.
func DiffText(expect string, snap *snapshot.Node, policy snapshot.Policy) (string, error) {
	tree, err := pattern.Parse(expect)
	if err != nil {
		return "", err
	}
	if policy == nil {
		policy = snapshot.DefaultPolicy()
	}
	return formatter.Diff(formatter.RenderTree(tree), formatter.RenderSnapshot(snap, policy)), nil
}

// Suggested renders the regexified baseline used by an update-snapshot
// workflow. A nil policy selects snapshot.DefaultPolicy.
func Suggested(snap *snapshot.Node, policy snapshot.Policy) string {
	if policy == nil {
		policy = snapshot.DefaultPolicy()
	}
	return formatter.RenderSnapshot(snap, policy)
}
