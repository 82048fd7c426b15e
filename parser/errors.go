package parser

import (
	"encoding/json"
	"fmt"
)

// SyntaxErrorKind enumerates the parser's fail-fast error categories.
type SyntaxErrorKind int

const (
	UnterminatedComment SyntaxErrorKind = iota
	DuplicateValueOperator
	MalformedAmount
	UnexpectedIndent
	UnknownConstruct
	InvalidUTF8
	Overflow
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnterminatedComment:
		return "UnterminatedComment"
	case DuplicateValueOperator:
		return "DuplicateValueOperator"
	case MalformedAmount:
		return "MalformedAmount"
	case UnexpectedIndent:
		return "UnexpectedIndent"
	case UnknownConstruct:
		return "UnknownConstruct"
	case InvalidUTF8:
		return "InvalidUTF8"
	case Overflow:
		return "Overflow"
	default:
		return "Unknown"
	}
}

// maxExcerptBytes bounds SyntaxError.Context to a short, renderable snippet.
const maxExcerptBytes = 120

// SyntaxError is the single error parse() can return. Parsing is fail-fast:
// the first unrecoverable problem aborts and is reported, never a list.
type SyntaxError struct {
	Kind    SyntaxErrorKind
	Line    int // 1-indexed
	Column  int // 1-indexed
	Context string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// GetPosition lets a surrounding collaborator extract location data without
// the core needing to know how that collaborator renders it.
func (e *SyntaxError) GetPosition() (line, column int) {
	return e.Line, e.Column
}

func (e *SyntaxError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"kind":    e.Kind.String(),
		"line":    e.Line,
		"column":  e.Column,
		"context": e.Context,
		"message": e.Message,
	})
}

// newSyntaxError builds a SyntaxError, deriving Context from the line
// containing the offending byte. lineText is the full (un-trimmed) line text;
// the excerpt always starts at its beginning.
func newSyntaxError(kind SyntaxErrorKind, line, column int, lineText []byte, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Context: excerpt(lineText),
		Message: fmt.Sprintf(format, args...),
	}
}

// excerpt truncates line text to at most maxExcerptBytes, cutting only at a
// UTF-8 scalar boundary, and marks truncation with a trailing "...".
func excerpt(line []byte) string {
	if len(line) <= maxExcerptBytes {
		return string(line)
	}
	end := maxExcerptBytes
	for end > 0 && line[end]&0xC0 == 0x80 {
		end--
	}
	return string(line[:end]) + "..."
}
