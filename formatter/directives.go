package formatter

import "github.com/mondeja/hledger-fmt/cst"

func (r *renderer) writeDirectiveGroup(g *cst.DirectiveGroup, index int) error {
	hasCommentedDirective := false
	leftmostIndent := -1
	for _, item := range g.Items {
		switch it := item.(type) {
		case *cst.Directive:
			if it.TrailingComment != nil {
				hasCommentedDirective = true
			}
			if leftmostIndent < 0 || it.Indent < leftmostIndent {
				leftmostIndent = it.Indent
			}
		case *cst.Subdirective:
			if it.TrailingComment != nil {
				hasCommentedDirective = true
			}
		}
	}
	if leftmostIndent < 0 {
		leftmostIndent = 0
	}

	for _, item := range g.Items {
		switch it := item.(type) {
		case *cst.Directive:
			if err := r.writeDirectiveLikeItem(it.Indent, it.Name, it.Content, it.TrailingComment,
				it.NameWidth, it.ContentWidth, g.MaxNamePlusContentWidth, index, "directive"); err != nil {
				return err
			}
		case *cst.Subdirective:
			indent := it.Indent
			if indent == 0 {
				indent = 1
			}
			if err := r.writeDirectiveLikeItem(indent, it.Name, it.Content, it.TrailingComment,
				it.NameWidth, it.ContentWidth, g.MaxNamePlusContentWidth, index, "subdirective"); err != nil {
				return err
			}
		case *cst.SingleLineComment:
			if hasCommentedDirective {
				col := g.MaxNamePlusContentWidth + r.opts.EntrySpacing + 1
				writeSpaces(r.buf, col)
				r.buf.WriteByte(it.Prefix)
				r.buf.WriteByte(' ')
				r.buf.Write(it.Body.Bytes(r.source))
				r.buf.WriteByte('\n')
			} else {
				r.writeComment(leftmostIndent, it.Prefix, it.Body.Bytes(r.source))
			}
		}
	}
	return nil
}

func (r *renderer) writeDirectiveLikeItem(
	indent int,
	name, content cst.Span,
	trailingComment *cst.SingleLineComment,
	nameWidth, contentWidth, maxNamePlusContentWidth, index int,
	field string,
) error {
	if !cst.FitsWidth(maxNamePlusContentWidth) {
		return &OverflowError{Index: index, Field: field + ".max_name_plus_content_width", Limit: cst.MaxWidth}
	}

	writeSpaces(r.buf, indent)
	r.buf.Write(name.Bytes(r.source))
	r.buf.WriteByte(' ')
	r.buf.Write(content.Bytes(r.source))

	if trailingComment != nil {
		npc := nameWidth + 1 + contentWidth
		target := maxNamePlusContentWidth + r.opts.EntrySpacing + 1
		pad := target - npc
		if pad < r.opts.EntrySpacing {
			pad = r.opts.EntrySpacing
		}
		writeSpaces(r.buf, pad)
		r.buf.WriteByte(trailingComment.Prefix)
		r.buf.WriteByte(' ')
		r.buf.Write(trailingComment.Body.Bytes(r.source))
	}
	r.buf.WriteByte('\n')
	return nil
}
