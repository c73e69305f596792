package pattern

import (
	"regexp"

	"github.com/a11ylab/ariasnap/internal/types"
)

// indentStep is the fixed indentation width that opens a child level.
const indentStep = 2

// Parse turns expectation text into a pattern tree. The grammar is
// line-oriented: every line is `- <body>` at some 2-space indent depth,
// where the body is either a pseudo-directive (`/children: <mode>`,
// `/url: <value>`) consumed into the parent node, or a role node with an
// optional quoted-or-regex name, bracketed attribute list, and either a
// trailing colon (children follow) or `: text` leaf shorthand.
//
// Parsing is fail-fast: the first syntax or attribute error aborts the
// whole parse and is returned as a *SyntaxError positioned in the
// original, pre-dedent text.
func Parse(text string) (*Tree, error) {
	tree := &Tree{}

	type frame struct {
		node   *Node // nil for the implicit root list
		indent int
	}
	stack := []frame{{node: nil, indent: -indentStep}}

	for _, ln := range splitSource(text) {
		indent := leadingSpaces(ln.text)
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		s := &lineScanner{sourceLine: ln, pos: indent}

		if indent != parent.indent+indentStep {
			return nil, s.syntaxErr(ErrUnexpectedScalarAtNodeEnd, indent, "Unexpected scalar at node end")
		}
		if s.peek() != '-' {
			return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
		}
		s.pos++
		if s.peek() != ' ' {
			return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
		}
		s.skipSpaces()
		if s.eol() {
			return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
		}

		if s.peek() == '/' {
			if err := parseDirective(s, tree, parent.node); err != nil {
				return nil, err
			}
			continue
		}

		node, err := parseRoleNode(s)
		if err != nil {
			return nil, err
		}
		if parent.node == nil {
			tree.Children = append(tree.Children, node)
		} else {
			parent.node.Children = append(parent.node.Children, node)
		}
		// a text leaf is closed; it never opens a child level, so a
		// deeper following line fails the indent check above
		if node.Text == nil {
			stack = append(stack, frame{node: node, indent: indent})
		}
	}
	return tree, nil
}

// parseDirective consumes a `/children` or `/url` pseudo-child. The
// directive configures the parent node (or the implicit root list) and
// does not materialize as a child.
func parseDirective(s *lineScanner, tree *Tree, parent *Node) *SyntaxError {
	start := s.pos
	s.pos++ // '/'
	name := s.scanWord()
	if s.peek() != ':' {
		return s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
	}
	s.pos++
	s.skipSpaces()

	switch name {
	case "children":
		modeStart := s.pos
		mode, ok := ParseMode(s.rest())
		if !ok {
			return s.syntaxErr(ErrUnexpectedInput, modeStart, "Unexpected input")
		}
		if parent == nil {
			tree.RootMode = mode
		} else {
			parent.Mode = mode
		}
	case "url":
		if parent == nil {
			return s.syntaxErr(ErrUnexpectedInput, start, "Unexpected input")
		}
		v, err := parseScalarValue(s)
		if err != nil {
			return err
		}
		if parent.Props == nil {
			parent.Props = map[string]Value{}
		}
		parent.Props["url"] = v
	default:
		return s.syntaxErr(ErrUnexpectedInput, start, "Unexpected input")
	}

	s.skipSpaces()
	if !s.eol() {
		return s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
	}
	return nil
}

// parseRoleNode consumes a role node body:
//
//	role ["name" | /name/] [attr=val, ...] [":" [text]]
func parseRoleNode(s *lineScanner) (*Node, *SyntaxError) {
	start := s.pos
	if !isLetter(s.peek()) {
		return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
	}
	node := &Node{
		Role: s.scanWord(),
		Pos:  types.Pos{Line: s.line, Column: s.col(start)},
	}
	s.skipSpaces()

	switch s.peek() {
	case '"':
		lit, err := s.scanQuoted()
		if err != nil {
			return nil, err
		}
		v := LiteralValue(lit)
		node.Name = &v
		s.skipSpaces()
	case '/':
		v, err := scanRegexValue(s)
		if err != nil {
			return nil, err
		}
		node.Name = &v
		s.skipSpaces()
	}

	if s.peek() == '[' {
		if err := parseAttrList(s, node); err != nil {
			return nil, err
		}
		s.skipSpaces()
	}

	if s.peek() == ':' {
		s.pos++
		s.skipSpaces()
		if !s.eol() {
			// `role "name": text` would leave the node with two
			// competing matchers for the same concrete value.
			if node.Name != nil {
				return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
			}
			v, err := parseScalarValue(s)
			if err != nil {
				return nil, err
			}
			node.Text = &v
		}
	}

	s.skipSpaces()
	if !s.eol() {
		return nil, s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
	}
	return node, nil
}

// parseAttrList consumes `[key=value, key, ...]`. Bare keys default to
// true. Keys are checked against the closed attribute set and values are
// coerced into their typed domains as they are read.
func parseAttrList(s *lineScanner, node *Node) *SyntaxError {
	s.pos++ // '['
	node.Attrs = map[string]types.AttrValue{}
	for {
		s.skipSpaces()
		if s.eol() {
			return s.syntaxErr(ErrUnexpectedInput, len(s.text), "Unexpected input")
		}
		if s.peek() == ']' {
			s.pos++
			return nil
		}

		keyStart := s.pos
		key := s.scanWord()
		if key == "" {
			return s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
		}
		if !knownAttr(key) {
			return s.syntaxErr(ErrUnsupportedAttribute, keyStart, "Unsupported attribute [%s]", key)
		}

		raw := "true"
		valStart := keyStart
		s.skipSpaces()
		if s.peek() == '=' {
			s.pos++
			s.skipSpaces()
			valStart = s.pos
			raw = s.scanAttrToken()
		}
		v, msg := validateAttr(key, raw)
		if msg != "" {
			return s.syntaxErr(ErrAttributeValue, valStart, "Value of %q attribute %s", key, msg)
		}
		node.Attrs[key] = v

		s.skipSpaces()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return nil
		default:
			return s.syntaxErr(ErrUnexpectedInput, s.pos, "Unexpected input")
		}
	}
}

// parseScalarValue consumes a leaf text or /url value: a quoted
// literal, or the bare remainder of the line. A bare scalar reads as a
// regex only when it is a complete /.../ form; anything else, including
// a path like /docs/intro, stays literal.
func parseScalarValue(s *lineScanner) (Value, *SyntaxError) {
	if s.peek() == '"' {
		lit, err := s.scanQuoted()
		if err != nil {
			return Value{}, err
		}
		return LiteralValue(lit), nil
	}
	start := s.pos
	rest := s.rest()
	if len(rest) >= 2 && rest[0] == '/' && rest[len(rest)-1] == '/' {
		src := rest[1 : len(rest)-1]
		re, err := regexp.Compile(src)
		if err != nil {
			return Value{}, s.syntaxErr(ErrUnexpectedInput, start, "Invalid regular expression /%s/", src)
		}
		return RegexValue(re), nil
	}
	return LiteralValue(rest), nil
}

func scanRegexValue(s *lineScanner) (Value, *SyntaxError) {
	slash := s.pos
	src, err := s.scanRegexSource()
	if err != nil {
		return Value{}, err
	}
	re, cerr := regexp.Compile(src)
	if cerr != nil {
		return Value{}, s.syntaxErr(ErrUnexpectedInput, slash, "Invalid regular expression /%s/", src)
	}
	return RegexValue(re), nil
}
