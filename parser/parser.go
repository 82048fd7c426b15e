// Package parser turns a borrowed byte buffer into a cst.CST in a single
// pass, failing fast on the first malformed construct it meets.
package parser

import "github.com/mondeja/hledger-fmt/cst"

type containerKind int

const (
	containerNone containerKind = iota
	containerMultilineComment
	containerDirectiveGroup
	containerTransaction
)

// parser holds the state of one Parse call. It never outlives a single call
// and never copies bytes out of source.
type parser struct {
	source []byte
	sc     *lineScanner
	result cst.CST

	state containerKind
	group *cst.DirectiveGroup
	txn   *cst.Transaction

	lastWasBlank bool

	// open multiline comment bookkeeping
	commentPos      cst.Position
	commentBodyFrom int
	commentLine     []byte

	// current line, refreshed each loop iteration; used to build errors.
	lineNo    int
	lineStart int
	line      []byte
}

// Parse builds a CST from source. source must remain valid and unmodified
// for the lifetime of the returned tree: every leaf borrows from it.
func Parse(source []byte) (*cst.CST, error) {
	p := &parser{source: source, sc: newLineScanner(source)}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &p.result, nil
}

func (p *parser) cursor() valueCursor {
	return valueCursor{line: p.lineNo, lineText: p.line, lineStart: p.lineStart}
}

func (p *parser) column(offset int) int {
	return cst.ScalarWidth(p.source[p.lineStart:offset]) + 1
}

func (p *parser) pos(offset int) cst.Position {
	return cst.Position{Offset: offset, Line: p.lineNo, Column: p.column(offset)}
}

func (p *parser) errorAt(kind SyntaxErrorKind, offset int, format string, args ...any) *SyntaxError {
	return newSyntaxError(kind, p.lineNo, p.column(offset), p.line, format, args...)
}

func (p *parser) run() error {
	for {
		lineStart, lineEnd, ok := p.sc.next()
		if !ok {
			break
		}
		line := p.source[lineStart:lineEnd]
		if bad := validateUTF8(line); bad >= 0 {
			return newSyntaxError(InvalidUTF8, p.sc.line, cst.ScalarWidth(line[:bad])+1, line, "invalid UTF-8 byte sequence")
		}
		p.lineNo = p.sc.line
		p.lineStart = lineStart
		p.line = line

		if p.state == containerMultilineComment {
			if string(trimASCIISpace(line)) == "end comment" {
				p.result.Nodes = append(p.result.Nodes, &cst.MultilineComment{
					Pos:  p.commentPos,
					Body: cst.Span{Start: p.commentBodyFrom, End: lineStart},
				})
				p.state = containerNone
			}
			continue
		}

		if isBlank(line) {
			p.flushOpenContainer()
			if !p.lastWasBlank {
				p.result.Nodes = append(p.result.Nodes, &cst.EmptyLine{Pos: p.pos(lineStart)})
				p.lastWasBlank = true
			}
			continue
		}
		p.lastWasBlank = false

		indent, contentStart := indentWidth(line)
		contentAbs := lineStart + contentStart
		content := line[contentStart:]

		if string(trimASCIISpace(line)) == "comment" {
			p.flushOpenContainer()
			p.state = containerMultilineComment
			p.commentPos = p.pos(lineStart)
			p.commentBodyFrom = p.sc.pos
			p.commentLine = line
			continue
		}

		first := content[0]
		if first == '#' || first == ';' {
			p.handleSingleLineComment(indent, contentAbs, lineEnd)
			continue
		}

		if indent == 0 {
			if kwLen, ok := matchDirectiveKeyword(content); ok {
				if err := p.handleDirective(contentAbs, kwLen, lineEnd); err != nil {
					return err
				}
				continue
			}
			if isTransactionHeaderSigil(first) {
				p.handleTransactionHeader(contentAbs, lineEnd)
				continue
			}
			return p.errorAt(UnknownConstruct, contentAbs, "unrecognized top-level construct")
		}

		switch p.state {
		case containerTransaction:
			if err := p.handlePosting(indent, contentAbs, lineEnd); err != nil {
				return err
			}
		case containerDirectiveGroup:
			if err := p.handleSubdirective(indent, contentAbs, lineEnd); err != nil {
				return err
			}
		default:
			return p.errorAt(UnexpectedIndent, contentAbs, "indented line outside any transaction or directive group")
		}
	}

	if p.state == containerMultilineComment {
		return newSyntaxError(UnterminatedComment, p.commentPos.Line, p.commentPos.Column, p.commentLine,
			"comment block has no matching end comment")
	}
	p.flushOpenContainer()
	return nil
}

func (p *parser) flushOpenContainer() {
	switch p.state {
	case containerDirectiveGroup:
		p.result.Nodes = append(p.result.Nodes, p.group)
		p.group = nil
		p.state = containerNone
	case containerTransaction:
		p.txn.AlignTitleCommentWithPostings = p.computeAlignTitleComment(p.txn)
		p.result.Nodes = append(p.result.Nodes, p.txn)
		p.txn = nil
		p.state = containerNone
	}
}

// formatterDefaultEntrySpacing mirrors formatter.DefaultOptions().EntrySpacing.
// The title-comment placement decision is made here, at parse time, per the
// line-classification contract — it has no access to the caller's chosen
// formatter options, so it assumes the default spacing.
const formatterDefaultEntrySpacing = 2

func (p *parser) computeAlignTitleComment(txn *cst.Transaction) bool {
	hasPostingComment := false
	for _, item := range txn.Postings {
		if posting, ok := item.(*cst.Posting); ok && posting.TrailingComment != nil {
			hasPostingComment = true
			break
		}
	}
	if !hasPostingComment {
		return false
	}

	col := txn.PostingIndent + txn.MaxNameWidth + formatterDefaultEntrySpacing
	if txn.MaxAmountFullWidth > 0 {
		col += txn.MaxAmountFullWidth
	}
	if txn.MaxEqSegmentWidth > 0 {
		col += formatterDefaultEntrySpacing + len("==*") + txn.MaxEqSegmentWidth
	}
	if txn.MaxAtSegmentWidth > 0 {
		col += formatterDefaultEntrySpacing + len("@@") + txn.MaxAtSegmentWidth
	}
	col += formatterDefaultEntrySpacing

	headerWidth, inGap := 0, false // width as rendered: each run of space/tab counts once
	for _, c := range txn.FirstLine.RawHeader.Bytes(p.source) {
		if isASCIISpace(c) {
			if !inGap {
				headerWidth++
			}
			inGap = true
		} else {
			inGap = false
			if c&0xC0 != 0x80 {
				headerWidth++
			}
		}
	}
	return headerWidth+formatterDefaultEntrySpacing <= col
}

func (p *parser) handleSingleLineComment(indent, contentAbs, lineEnd int) {
	comment := p.buildComment(indent, contentAbs, lineEnd)
	if indent > 0 {
		switch p.state {
		case containerTransaction:
			p.txn.Postings = append(p.txn.Postings, comment)
			return
		case containerDirectiveGroup:
			p.group.Items = append(p.group.Items, comment)
			return
		}
		p.result.Nodes = append(p.result.Nodes, comment)
		return
	}
	p.flushOpenContainer()
	p.result.Nodes = append(p.result.Nodes, comment)
}

func (p *parser) buildComment(indent, contentAbs, lineEnd int) *cst.SingleLineComment {
	prefix := p.source[contentAbs]
	bodyStart := contentAbs + 1
	if bodyStart < lineEnd && p.source[bodyStart] == ' ' {
		bodyStart++
	}
	end := lineEnd
	for end > bodyStart && isASCIISpace(p.source[end-1]) {
		end--
	}
	return &cst.SingleLineComment{
		Pos:    p.pos(contentAbs),
		Indent: indent,
		Prefix: prefix,
		Body:   cst.Span{Start: bodyStart, End: end},
	}
}

func (p *parser) buildTrailingComment(commentAt, lineEnd int) *cst.SingleLineComment {
	return p.buildComment(0, commentAt, lineEnd)
}

// findInlineComment returns the offset of the first ';' or '#' in
// source[from:to], or -1 if there is none.
func (p *parser) findInlineComment(from, to int) int {
	for idx := from; idx < to; idx++ {
		c := p.source[idx]
		if c == ';' || c == '#' {
			return idx
		}
	}
	return -1
}

func (p *parser) handleDirective(nameAbs, kwLen, lineEnd int) *SyntaxError {
	nameEnd := nameAbs + kwLen
	content, trailingComment := p.splitNameContent(nameEnd, lineEnd)
	nameWidth := cst.ScalarWidth(p.source[nameAbs:nameEnd])
	contentWidth := cst.ScalarWidth(content.Bytes(p.source))
	if !cst.FitsWidth(nameWidth) {
		return p.errorAt(Overflow, nameAbs, "directive name exceeds maximum width")
	}
	if !cst.FitsWidth(contentWidth) {
		return p.errorAt(Overflow, nameEnd, "directive content exceeds maximum width")
	}

	directive := &cst.Directive{
		Pos:             p.pos(nameAbs),
		Indent:          0,
		Name:            cst.Span{Start: nameAbs, End: nameEnd},
		Content:         content,
		TrailingComment: trailingComment,
		NameWidth:       nameWidth,
		ContentWidth:    contentWidth,
	}

	if p.state == containerTransaction {
		p.flushOpenContainer()
	}
	if p.state != containerDirectiveGroup {
		p.group = &cst.DirectiveGroup{Pos: p.pos(nameAbs)}
		p.state = containerDirectiveGroup
	}
	p.group.Items = append(p.group.Items, directive)
	if npc := nameWidth + 1 + contentWidth; npc > p.group.MaxNamePlusContentWidth {
		p.group.MaxNamePlusContentWidth = npc
	}
	return nil
}

func (p *parser) handleSubdirective(indent, contentAbs, lineEnd int) *SyntaxError {
	nameEnd := scanWord(p.source, contentAbs, lineEnd)
	content, trailingComment := p.splitNameContent(nameEnd, lineEnd)
	nameWidth := cst.ScalarWidth(p.source[contentAbs:nameEnd])
	contentWidth := cst.ScalarWidth(content.Bytes(p.source))
	if !cst.FitsWidth(nameWidth) || !cst.FitsWidth(contentWidth) {
		return p.errorAt(Overflow, contentAbs, "subdirective exceeds maximum width")
	}

	sub := &cst.Subdirective{
		Pos:             p.pos(contentAbs),
		Indent:          indent,
		Name:            cst.Span{Start: contentAbs, End: nameEnd},
		Content:         content,
		TrailingComment: trailingComment,
		NameWidth:       nameWidth,
		ContentWidth:    contentWidth,
	}
	p.group.Items = append(p.group.Items, sub)
	if npc := nameWidth + 1 + contentWidth; npc > p.group.MaxNamePlusContentWidth {
		p.group.MaxNamePlusContentWidth = npc
	}
	return nil
}

// splitNameContent extracts the content span and optional trailing comment
// following a directive/subdirective name that ends at nameEnd.
func (p *parser) splitNameContent(nameEnd, lineEnd int) (cst.Span, *cst.SingleLineComment) {
	start := nameEnd
	for start < lineEnd && isASCIISpace(p.source[start]) {
		start++
	}
	commentAt := p.findInlineComment(start, lineEnd)
	end := lineEnd
	if commentAt >= 0 {
		end = commentAt
	}
	for end > start && isASCIISpace(p.source[end-1]) {
		end--
	}
	var trailing *cst.SingleLineComment
	if commentAt >= 0 {
		trailing = p.buildTrailingComment(commentAt, lineEnd)
	}
	return cst.Span{Start: start, End: end}, trailing
}

func scanWord(source []byte, start, end int) int {
	i := start
	for i < end && !isASCIISpace(source[i]) {
		i++
	}
	return i
}

func (p *parser) handleTransactionHeader(contentAbs, lineEnd int) {
	p.flushOpenContainer()

	commentAt := p.findInlineComment(contentAbs, lineEnd)
	headerEnd := lineEnd
	if commentAt >= 0 {
		headerEnd = commentAt
	}
	for headerEnd > contentAbs && isASCIISpace(p.source[headerEnd-1]) {
		headerEnd--
	}
	var titleComment *cst.SingleLineComment
	if commentAt >= 0 {
		titleComment = p.buildTrailingComment(commentAt, lineEnd)
	}

	p.txn = &cst.Transaction{
		Pos: p.pos(contentAbs),
		FirstLine: cst.TransactionHeader{
			RawHeader:    cst.Span{Start: contentAbs, End: headerEnd},
			TitleComment: titleComment,
		},
	}
	p.state = containerTransaction
}

func (p *parser) handlePosting(indent, contentAbs, lineEnd int) *SyntaxError {
	nameEnd, sepEnd, foundSep := scanAccountName(p.source, contentAbs, lineEnd)
	nameWidth := cst.ScalarWidth(p.source[contentAbs:nameEnd])
	if !cst.FitsWidth(nameWidth) {
		return p.errorAt(Overflow, contentAbs, "posting account name exceeds maximum width")
	}

	posting := &cst.Posting{
		Pos:       p.pos(contentAbs),
		Indent:    indent,
		Name:      cst.Span{Start: contentAbs, End: nameEnd},
		NameWidth: nameWidth,
	}

	if foundSep {
		valStart := sepEnd
		for valStart < lineEnd && isASCIISpace(p.source[valStart]) {
			valStart++
		}
		commentAt := p.findInlineComment(valStart, lineEnd)
		valEnd := lineEnd
		if commentAt >= 0 {
			valEnd = commentAt
		}
		parts, err := splitValueExpr(p.source, valStart, valEnd, p.cursor())
		if err != nil {
			return err
		}
		posting.Value = parts
		if commentAt >= 0 {
			posting.TrailingComment = p.buildTrailingComment(commentAt, lineEnd)
		}
	}

	if err := p.checkPostingWidths(posting); err != nil {
		return err
	}

	isFirstPosting := true
	for _, item := range p.txn.Postings {
		if _, ok := item.(*cst.Posting); ok {
			isFirstPosting = false
			break
		}
	}
	if isFirstPosting {
		p.txn.PostingIndent = indent
	}

	p.txn.Postings = append(p.txn.Postings, posting)
	p.updateTransactionMaxima(posting)
	return nil
}

func (p *parser) checkPostingWidths(posting *cst.Posting) *SyntaxError {
	if a := posting.Value.Amount; a != nil {
		if !cst.FitsWidth(a.FullWidth) || !cst.FitsWidth(a.IntegerWidth) {
			return p.errorAt(Overflow, posting.Name.Start, "posting amount exceeds maximum width")
		}
	}
	if eq := posting.Value.Eq; eq != nil {
		if !cst.FitsWidth(cst.ScalarWidth(eq.Body.Bytes(p.source))) {
			return p.errorAt(Overflow, posting.Name.Start, "balance-assertion value exceeds maximum width")
		}
	}
	if at := posting.Value.At; at != nil {
		if !cst.FitsWidth(cst.ScalarWidth(at.Body.Bytes(p.source))) {
			return p.errorAt(Overflow, posting.Name.Start, "price value exceeds maximum width")
		}
	}
	return nil
}

func (p *parser) updateTransactionMaxima(posting *cst.Posting) {
	if posting.NameWidth > p.txn.MaxNameWidth {
		p.txn.MaxNameWidth = posting.NameWidth
	}
	if a := posting.Value.Amount; a != nil {
		if a.IntegerWidth > p.txn.MaxAmountIntegerWidth {
			p.txn.MaxAmountIntegerWidth = a.IntegerWidth
		}
		if a.FullWidth > p.txn.MaxAmountFullWidth {
			p.txn.MaxAmountFullWidth = a.FullWidth
		}
	}
	if eq := posting.Value.Eq; eq != nil {
		w := cst.ScalarWidth(eq.Body.Bytes(p.source))
		if w > p.txn.MaxEqSegmentWidth {
			p.txn.MaxEqSegmentWidth = w
		}
	}
	if at := posting.Value.At; at != nil {
		w := cst.ScalarWidth(at.Body.Bytes(p.source))
		if w > p.txn.MaxAtSegmentWidth {
			p.txn.MaxAtSegmentWidth = w
		}
	}
}

// scanAccountName finds where a posting's account name ends: at the first
// tab, the first run of two or more spaces, the first comment sentinel, or
// end of line. sepEnd is the offset the value/comment region begins at
// (meaningless when foundSep is false).
func scanAccountName(source []byte, start, end int) (nameEnd, sepEnd int, foundSep bool) {
	i := start
	for i < end {
		c := source[i]
		if c == '\t' {
			return i, i + 1, true
		}
		if c == ';' || c == '#' {
			nameEnd = i
			for nameEnd > start && source[nameEnd-1] == ' ' {
				nameEnd--
			}
			return nameEnd, i, true
		}
		if c == ' ' {
			j := i
			for j < end && source[j] == ' ' {
				j++
			}
			if j-i >= 2 {
				return i, j, true
			}
			i = j
			continue
		}
		i++
	}
	nameEnd = end
	for nameEnd > start && source[nameEnd-1] == ' ' {
		nameEnd--
	}
	return nameEnd, end, false
}
