// Package ariasnap verifies the accessibility-tree shape of captured UI
// content against a compact, human-writable textual expectation.
//
// An expectation is a YAML-flavored list of roles, names, attributes and
// nesting. It is parsed into a pattern tree and matched against a
// concrete snapshot tree under configurable structural-equivalence
// rules; on mismatch the engine renders the captured tree back into the
// expectation syntax and produces a line-based unified diff.
//
// Parsing and matching are pure, synchronous computations over immutable
// inputs. The engine holds no state across assertion attempts, so a
// retry loop may parse and match repeatedly with freshly captured trees.
package ariasnap
