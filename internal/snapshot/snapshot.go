package snapshot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/a11ylab/ariasnap/internal/types"
)

// ErrNotFound is the sentinel a capture facility reports when its
// locator matched no element. It short-circuits matching as a hard
// mismatch; it is neither a parse error nor an ordinary match failure.
var ErrNotFound = errors.New("element not found")

// NotFoundPlaceholder is rendered in place of the received tree when
// capture reported ErrNotFound.
const NotFoundPlaceholder = "<element not found>"

// Node is one captured accessibility element. A tree is immutable once
// captured and owned by the single matching pass that receives it; the
// retry loop captures a fresh tree per attempt.
type Node struct {
	Role     string                     `yaml:"role"`
	Name     string                     `yaml:"name,omitempty"`
	Attrs    map[string]types.AttrValue `yaml:"attrs,omitempty"`
	URL      string                     `yaml:"url,omitempty"`
	Children []*Node                    `yaml:"children,omitempty"`
}

// Case pairs an expectation baseline with a captured snapshot. This is
// the on-disk YAML format the CLI consumes; a nil Snapshot stands for a
// capture that found no element.
type Case struct {
	Name     string `yaml:"name,omitempty"`
	Expect   string `yaml:"expect"`
	Snapshot *Node  `yaml:"snapshot"`
}

// LoadCase reads a case file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse case %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the case back, used by the update-baseline workflow.
func (c *Case) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
