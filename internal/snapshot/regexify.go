package snapshot

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Rule rewrites one recognized dynamic substring into a regex fragment
// matching the same shape.
type Rule struct {
	re       *regexp.Regexp
	fragment func(match string) string
}

// NewRule compiles a recognition pattern with a fragment renderer.
func NewRule(expr string, fragment func(string) string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("regexify rule %q: %w", expr, err)
	}
	return Rule{re: re, fragment: fragment}, nil
}

// Policy is an ordered list of rewrite rules. Scanning is leftmost-first
// over the value; when two rules match at the same offset the earlier
// rule wins. The rule set is a display heuristic, not a matching
// concern, so callers may swap in their own policy.
type Policy []Rule

// DefaultPolicy recognizes currency-prefixed, thousands-separated,
// decimal, plain-integer, and percent-suffixed digit runs.
func DefaultPolicy() Policy {
	r, err := NewRule(`[$€£¥]?\d(?:[\d,.]*\d)?%?`, ShapeFragment)
	if err != nil {
		panic(err)
	}
	return Policy{r}
}

// ShapeFragment renders a matched dynamic substring as a regex fragment
// of the same shape: each digit run becomes \d+ and every other rune is
// quoted literally. "$1,234.56" becomes `\$\d+,\d+\.\d+`.
func ShapeFragment(m string) string {
	var b strings.Builder
	for i := 0; i < len(m); {
		if isDigit(m[i]) {
			for i < len(m) && isDigit(m[i]) {
				i++
			}
			b.WriteString(`\d+`)
			continue
		}
		_, size := utf8.DecodeRuneInString(m[i:])
		b.WriteString(regexp.QuoteMeta(m[i : i+size]))
		i += size
	}
	return b.String()
}

// Value rewrites one leaf value for diff display. It returns the
// rewritten text and whether any substitution occurred; a value with no
// dynamic substrings comes back untouched and stays a literal.
func (p Policy) Value(s string) (string, bool) {
	type span struct{ start, end, rule int }
	var spans []span
	pos := 0
	for pos < len(s) {
		best := span{start: -1}
		for ri, r := range p {
			loc := r.re.FindStringIndex(s[pos:])
			if loc == nil {
				continue
			}
			if best.start < 0 || pos+loc[0] < best.start {
				best = span{start: pos + loc[0], end: pos + loc[1], rule: ri}
			}
		}
		if best.start < 0 {
			break
		}
		// a rule that matches the empty string yields a zero-width
		// span; skip it and move on or the scan never advances
		if best.end == best.start {
			pos = best.start + 1
			continue
		}
		spans = append(spans, best)
		pos = best.end
	}
	if len(spans) == 0 {
		return s, false
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(regexp.QuoteMeta(s[last:sp.start]))
		b.WriteString(p[sp.rule].fragment(s[sp.start:sp.end]))
		last = sp.end
	}
	b.WriteString(regexp.QuoteMeta(s[last:]))
	return b.String(), true
}

type policyConfig struct {
	Rules []struct {
		Pattern string `yaml:"pattern"`
	} `yaml:"rules"`
}

// LoadPolicy reads recognition patterns from a YAML rules file. Every
// configured pattern uses the shape-preserving fragment renderer.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg policyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, err)
	}
	var p Policy
	for _, rc := range cfg.Rules {
		r, err := NewRule(rc.Pattern, ShapeFragment)
		if err != nil {
			return nil, err
		}
		p = append(p, r)
	}
	return p, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
