package pattern

import "fmt"

// ErrorKind classifies the syntax errors the parser can report. The parse
// aborts on the first error; no recovery or batching is attempted.
type ErrorKind int

const (
	// ErrUnexpectedInput is raised at the first character of a line body
	// that matches no grammar form.
	ErrUnexpectedInput ErrorKind = iota
	// ErrUnterminatedString is raised when a double-quoted name or text
	// literal reaches end-of-line without a closing quote.
	ErrUnterminatedString
	// ErrUnterminatedRegex is raised when a /.../ literal reaches
	// end-of-line without a closing delimiter.
	ErrUnterminatedRegex
	// ErrUnexpectedScalarAtNodeEnd is raised when a line's indentation
	// does not open a child level of any ancestor.
	ErrUnexpectedScalarAtNodeEnd
	// ErrUnsupportedAttribute is raised for an attribute key outside the
	// closed key set.
	ErrUnsupportedAttribute
	// ErrAttributeValue is raised when a recognized attribute key carries
	// a value outside its typed domain.
	ErrAttributeValue
)

// SyntaxError is a parse failure with a 1-based position into the
// original, pre-dedent expectation text.
type SyntaxError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (s *lineScanner) syntaxErr(kind ErrorKind, at int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    s.line,
		Column:  s.col(at),
	}
}
