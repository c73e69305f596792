package match

import "github.com/a11ylab/ariasnap/internal/pattern"

// matchValue compares a pattern value against a concrete string: literal
// values need exact equality, regex values pass an unanchored test.
func matchValue(v pattern.Value, s string) bool {
	if v.Regex != nil {
		return v.Regex.MatchString(s)
	}
	return v.Literal == s
}
