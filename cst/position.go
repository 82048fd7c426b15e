// Package cst declares the concrete syntax tree produced by the parser and
// consumed by the formatter.
//
// Every leaf in the tree is a Span: a (start, end) byte range into the
// caller-owned input buffer. Nothing here ever copies source bytes into a new
// string — the tree's lifetime is bounded by that input buffer. Width fields
// are precomputed by the parser so the formatter never re-scans a slice to
// figure out how many columns it occupies.
package cst

import "fmt"

// Position identifies a single byte in the source buffer.
type Position struct {
	Offset int // byte offset, 0-indexed
	Line   int // 1-indexed
	Column int // 1-indexed, counted in UTF-8 scalar values
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a borrowed byte range into the source buffer backing a CST. It
// never owns or copies the bytes it describes.
type Span struct {
	Start int
	End   int
}

// Bytes returns a zero-copy view of the span's text in source.
func (s Span) Bytes(source []byte) []byte {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return nil
	}
	return source[s.Start:s.End]
}

// String materializes the span's text. Only use this where an owned string
// is unavoidable (e.g. building an error message) — never while constructing
// the tree itself.
func (s Span) String(source []byte) string {
	return string(s.Bytes(source))
}

// IsZero reports whether the span carries no text (the common "absent"
// representation for optional fields).
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the span's length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}
