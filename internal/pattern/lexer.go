package pattern

import "strings"

// sourceLine is one dedented expectation line plus the bookkeeping needed
// to map normalized columns back into the original text.
type sourceLine struct {
	text   string // line content after common-indent stripping
	line   int    // 1-based line number in the original text
	offset int    // bytes stripped from the front during dedent
}

// splitSource normalizes the expectation text: splits it into lines,
// strips the common leading space indent (raw-string expectations are
// usually indented as a block), and drops blank lines. The per-line
// offset keeps error columns accurate in original coordinates.
func splitSource(text string) []sourceLine {
	raw := strings.Split(text, "\n")
	common := -1
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := leadingSpaces(l)
		if common < 0 || n < common {
			common = n
		}
	}
	if common < 0 {
		common = 0
	}

	var lines []sourceLine
	for i, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, sourceLine{
			text:   l[common:],
			line:   i + 1,
			offset: common,
		})
	}
	return lines
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// lineScanner walks one dedented line byte by byte.
type lineScanner struct {
	sourceLine
	pos int
}

// col maps a normalized byte index to a 1-based original column.
func (s *lineScanner) col(i int) int { return s.offset + i + 1 }

func (s *lineScanner) eol() bool { return s.pos >= len(s.text) }

func (s *lineScanner) peek() byte {
	if s.eol() {
		return 0
	}
	return s.text[s.pos]
}

func (s *lineScanner) skipSpaces() {
	for !s.eol() && s.text[s.pos] == ' ' {
		s.pos++
	}
}

// scanWord consumes a role or attribute keyword: a letter followed by
// letters, digits, or dashes.
func (s *lineScanner) scanWord() string {
	start := s.pos
	for !s.eol() {
		c := s.text[s.pos]
		if isLetter(c) || (s.pos > start && (isDigit(c) || c == '-')) {
			s.pos++
			continue
		}
		break
	}
	return s.text[start:s.pos]
}

// scanQuoted consumes a double-quoted literal starting at the opening
// quote. Only \" and \\ escapes are recognized; any other backslash is
// kept literally.
func (s *lineScanner) scanQuoted() (string, *SyntaxError) {
	s.pos++ // opening quote
	var b strings.Builder
	for !s.eol() {
		c := s.text[s.pos]
		switch c {
		case '\\':
			if s.pos+1 < len(s.text) {
				if next := s.text[s.pos+1]; next == '"' || next == '\\' {
					b.WriteByte(next)
					s.pos += 2
					continue
				}
			}
			b.WriteByte(c)
			s.pos++
		case '"':
			s.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", s.syntaxErr(ErrUnterminatedString, len(s.text), "Unterminated string")
}

// scanRegexSource consumes a /.../ literal starting at the opening slash
// and returns the undelimited regex source. A slash inside a [...]
// character class does not terminate the literal, and backslash escapes
// the next character, so escaped '/' and ']' pass through. This is the
// narrow escape grammar the syntax needs, scanned with an explicit
// class/escape state rather than a regex-of-regexes.
func (s *lineScanner) scanRegexSource() (string, *SyntaxError) {
	s.pos++ // opening slash
	start := s.pos
	inClass := false
	for !s.eol() {
		c := s.text[s.pos]
		if c == '\\' {
			s.pos += 2
			continue
		}
		switch {
		case c == '[' && !inClass:
			inClass = true
		case c == ']' && inClass:
			inClass = false
		case c == '/' && !inClass:
			src := s.text[start:s.pos]
			s.pos++
			return src, nil
		}
		s.pos++
	}
	return "", s.syntaxErr(ErrUnterminatedRegex, len(s.text), "Unterminated regular expression")
}

// scanAttrToken consumes a bare attribute value up to ',' or ']'.
func (s *lineScanner) scanAttrToken() string {
	start := s.pos
	for !s.eol() {
		c := s.text[s.pos]
		if c == ',' || c == ']' {
			break
		}
		s.pos++
	}
	return strings.TrimRight(s.text[start:s.pos], " ")
}

// rest consumes the remainder of the line, trimmed of trailing spaces.
func (s *lineScanner) rest() string {
	r := strings.TrimRight(s.text[s.pos:], " ")
	s.pos = len(s.text)
	return r
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
