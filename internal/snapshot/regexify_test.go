package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		want     string
		replaced bool
	}{
		{"counter", "Total: 1,234 items", `Total: \d+,\d+ items`, true},
		{"static text untouched", "Add to cart", "Add to cart", false},
		{"currency", "Price: $1,299.99", `Price: \$\d+,\d+\.\d+`, true},
		{"percent", "87% complete", `\d+% complete`, true},
		{"bare number", "42", `\d+`, true},
		{"empty", "", "", false},
		{"metacharacters outside spans escaped", "v1.2 (beta)", `v\d+\.\d+ \(beta\)`, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, replaced := DefaultPolicy().Value(tt.in)
			assert.Equal(t, tt.replaced, replaced)
			assert.Equal(t, tt.want, got)

			if replaced {
				re, err := regexp.Compile(got)
				require.NoError(t, err)
				assert.True(t, re.MatchString(tt.in), "produced pattern must match its own source")
			}
		})
	}
}

func TestShapeFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1,234", `\d+,\d+`},
		{"$99", `\$\d+`},
		{"87%", `\d+%`},
		{"1.5", `\d+\.\d+`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShapeFragment(tt.in))
	}
}

func TestPolicy_EarlierRuleWins(t *testing.T) {
	t.Parallel()

	build := func(pat string) Rule {
		r, err := NewRule(pat, ShapeFragment)
		require.NoError(t, err)
		return r
	}

	// both rules match "2024-01-15" at offset 6; the first declared
	// rule takes the span
	p := Policy{
		build(`\d{4}-\d{2}-\d{2}`),
		build(`\d+`),
	}

	got, replaced := p.Value("Date: 2024-01-15")
	assert.True(t, replaced)
	assert.Equal(t, `Date: \d+-\d+-\d+`, got)
}

func TestPolicy_EmptyMatchingRule(t *testing.T) {
	t.Parallel()

	star, err := NewRule("a*", ShapeFragment)
	require.NoError(t, err)
	p := Policy{star}

	t.Run("no real occurrence stays literal", func(t *testing.T) {
		t.Parallel()
		got, replaced := p.Value("zzz")
		assert.False(t, replaced)
		assert.Equal(t, "zzz", got)
	})

	t.Run("zero-width matches are skipped, real ones rewritten", func(t *testing.T) {
		t.Parallel()
		got, replaced := p.Value("zaz")
		assert.True(t, replaced)
		assert.Equal(t, "zaz", got)
	})
}

func TestLoadPolicy(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "policy.yaml")
		data := []byte("rules:\n  - pattern: '\\d{4}-\\d{2}-\\d{2}'\n  - pattern: '\\d+'\n")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		p, err := LoadPolicy(path)
		require.NoError(t, err)
		require.Len(t, p, 2)

		got, replaced := p.Value("since 2024-01-15")
		assert.True(t, replaced)
		assert.Equal(t, `since \d+-\d+-\d+`, got)
	})

	t.Run("bad pattern", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: '('\n"), 0o644))

		_, err := LoadPolicy(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
