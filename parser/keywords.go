package parser

import "bytes"

// directiveKeywords are the recognized top-level (indent 0) directive
// keywords, longest first so a multi-word keyword is never shadowed by a
// shorter one sharing its first word.
var directiveKeywords = [][]byte{
	[]byte("end apply account"),
	[]byte("apply account"),
	[]byte("decimal-mark"),
	[]byte("end comment"),
	[]byte("commodity"),
	[]byte("include"),
	[]byte("account"),
	[]byte("comment"),
	[]byte("alias"),
	[]byte("year"),
	[]byte("tag"),
	[]byte("D"),
	[]byte("P"),
	[]byte("Y"),
}

// matchDirectiveKeyword reports whether line begins with a recognized
// directive keyword followed by whitespace or end-of-line, returning the
// keyword's byte length. ok is false if no keyword matches.
func matchDirectiveKeyword(line []byte) (length int, ok bool) {
	for _, kw := range directiveKeywords {
		if !bytes.HasPrefix(line, kw) {
			continue
		}
		if len(line) == len(kw) || line[len(kw)] == ' ' || line[len(kw)] == '\t' {
			return len(kw), true
		}
	}
	return 0, false
}

func isTransactionHeaderSigil(b byte) bool {
	return (b >= '0' && b <= '9') || b == '~' || b == '='
}
