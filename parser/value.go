package parser

import "github.com/mondeja/hledger-fmt/cst"

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func isASCIISpace(b byte) bool { return b == ' ' || b == '\t' }

// matchEqOperator returns the byte length of the longest balance-assertion
// operator (==*, ==, =*, =) beginning rest. rest[0] is always '='.
func matchEqOperator(rest []byte) int {
	switch {
	case len(rest) >= 3 && rest[1] == '=' && rest[2] == '*':
		return 3
	case len(rest) >= 2 && rest[1] == '=':
		return 2
	case len(rest) >= 2 && rest[1] == '*':
		return 2
	default:
		return 1
	}
}

// valueCursor carries the position context splitValueExpr needs to build a
// SyntaxError without the rest of the parser threading line/column through
// every call.
type valueCursor struct {
	line      int
	lineText  []byte
	lineStart int // absolute offset of lineText[0] in source
}

func (c valueCursor) columnAt(pos int) int {
	return cst.ScalarWidth(c.lineText[:pos-c.lineStart]) + 1
}

// splitValueExpr scans a posting's value expression (the text between the
// account name and any trailing comment) for the @, @@, =, ==, =*, ==*
// operators that separate its amount, eq (balance-assertion), and at
// (price/lot) segments. An operator only counts at a segment boundary:
// preceded by whitespace or the start of the expression.
//
// start/end are absolute offsets into source; all returned Spans use that
// same coordinate space.
func splitValueExpr(source []byte, start, end int, cur valueCursor) (cst.ValueParts, *SyntaxError) {
	var parts cst.ValueParts
	seenAt, seenEq := false, false
	kind := 0 // 0 amount, 1 eq, 2 at
	segStart := start

	i := start
	for i < end {
		c := source[i]
		prevIsBoundary := i == start || isASCIISpace(source[i-1])

		if c == '@' && prevIsBoundary {
			if seenAt {
				return parts, newSyntaxError(DuplicateValueOperator, cur.line, cur.columnAt(i), cur.lineText,
					"posting value has more than one @ or @@ operator")
			}
			if err := closeSegment(source, kind, segStart, i, &parts, cur); err != nil {
				return parts, err
			}
			opLen := 1
			if i+1 < end && source[i+1] == '@' {
				opLen = 2
			}
			seenAt = true
			parts.At = &cst.Segment{Op: cst.Span{Start: i, End: i + opLen}}
			kind = 2
			segStart = i + opLen
			i = segStart
			continue
		}
		if c == '=' && prevIsBoundary {
			if seenEq {
				return parts, newSyntaxError(DuplicateValueOperator, cur.line, cur.columnAt(i), cur.lineText,
					"posting value has more than one balance-assertion operator")
			}
			if err := closeSegment(source, kind, segStart, i, &parts, cur); err != nil {
				return parts, err
			}
			opLen := matchEqOperator(source[i:end])
			seenEq = true
			parts.Eq = &cst.Segment{Op: cst.Span{Start: i, End: i + opLen}}
			kind = 1
			segStart = i + opLen
			i = segStart
			continue
		}
		i++
	}
	if err := closeSegment(source, kind, segStart, end, &parts, cur); err != nil {
		return parts, err
	}
	return parts, nil
}

// closeSegment trims the segment ending at bodyEnd and assigns it to the
// field of parts matching kind (0 amount, 1 eq, 2 at).
func closeSegment(source []byte, kind int, bodyStart, bodyEnd int, parts *cst.ValueParts, cur valueCursor) *SyntaxError {
	body := trimSpan(source, bodyStart, bodyEnd)
	switch kind {
	case 0:
		if body.Len() > 0 {
			parts.Amount = buildAmount(source, body)
		}
	case 1:
		parts.Eq.Body = body
		if body.Len() > 0 && !hasDigit(body.Bytes(source)) {
			return newSyntaxError(MalformedAmount, cur.line, cur.columnAt(bodyStart), cur.lineText,
				"balance-assertion value has no digits")
		}
	case 2:
		parts.At.Body = body
		if body.Len() > 0 && !hasDigit(body.Bytes(source)) {
			return newSyntaxError(MalformedAmount, cur.line, cur.columnAt(bodyStart), cur.lineText,
				"price value has no digits")
		}
	}
	return nil
}

func hasDigit(b []byte) bool {
	for _, c := range b {
		if isASCIIDigit(c) {
			return true
		}
	}
	return false
}

// trimSpan trims leading and trailing ASCII space/tab from source[start:end].
func trimSpan(source []byte, start, end int) cst.Span {
	for start < end && isASCIISpace(source[start]) {
		start++
	}
	for end > start && isASCIISpace(source[end-1]) {
		end--
	}
	return cst.Span{Start: start, End: end}
}

// buildAmount computes an Amount's width metrics from its body span using
// the decimal-mark-versus-thousands-separator heuristic: scanning leftward
// from the last byte of the body over its trailing digits, a '.' or ','
// preceded by a digit and followed by at most two digits is a decimal mark;
// followed by exactly three digits it is tentatively a thousands separator,
// and the scan continues further left. A body that does not end in a digit
// (e.g. one with a commodity suffix such as "1.50 USD") gets no decimal
// split: its IntegerWidth is its FullWidth.
func buildAmount(source []byte, body cst.Span) *cst.Amount {
	b := body.Bytes(source)
	fullWidth := cst.ScalarWidth(b)
	n := len(b)

	firstDigit := -1
	for idx := 0; idx < n; idx++ {
		if isASCIIDigit(b[idx]) {
			firstDigit = idx
			break
		}
	}
	if firstDigit < 0 {
		return &cst.Amount{
			Body:                        cst.Segment{Body: body},
			IntegerWidth:                fullWidth,
			FullWidth:                   fullWidth,
			SignAndCommodityPrefixWidth: fullWidth,
		}
	}
	prefixWidth := cst.ScalarWidth(b[:firstDigit])

	integerWidth := fullWidth
	i := n - 1
	for i >= 0 && isASCIIDigit(b[i]) {
		i--
	}
	for i >= 0 && (b[i] == '.' || b[i] == ',') {
		rightDigits := (n - 1) - i
		leftHasDigit := i > 0 && isASCIIDigit(b[i-1])
		if !leftHasDigit {
			break
		}
		if rightDigits <= 2 {
			integerWidth = cst.ScalarWidth(b[:i])
			break
		}
		if rightDigits == 3 {
			j := i - 1
			for j >= 0 && isASCIIDigit(b[j]) {
				j--
			}
			i = j
			continue
		}
		break
	}

	return &cst.Amount{
		Body:                        cst.Segment{Body: body},
		IntegerWidth:                integerWidth,
		FullWidth:                   fullWidth,
		SignAndCommodityPrefixWidth: prefixWidth,
	}
}
