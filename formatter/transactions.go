package formatter

import "github.com/mondeja/hledger-fmt/cst"

func (r *renderer) writeTransaction(t *cst.Transaction, index int) error {
	if !cst.FitsWidth(t.MaxNameWidth) || !cst.FitsWidth(t.MaxAmountFullWidth) {
		return &OverflowError{Index: index, Field: "transaction.max_width", Limit: cst.MaxWidth}
	}

	headerWidth := r.writeCollapsed(t.FirstLine.RawHeader.Bytes(r.source))
	if tc := t.FirstLine.TitleComment; tc != nil {
		if t.AlignTitleCommentWithPostings {
			col := transactionCommentColumn(t, r.opts)
			pad := col - headerWidth
			if pad < r.opts.EntrySpacing {
				pad = r.opts.EntrySpacing
			}
			writeSpaces(r.buf, pad)
		} else {
			writeSpaces(r.buf, 2)
		}
		r.buf.WriteByte(tc.Prefix)
		r.buf.WriteByte(' ')
		r.buf.Write(tc.Body.Bytes(r.source))
	}
	r.buf.WriteByte('\n')

	for _, item := range t.Postings {
		switch it := item.(type) {
		case *cst.Posting:
			if err := r.writePosting(t, it, index); err != nil {
				return err
			}
		case *cst.SingleLineComment:
			r.writeComment(t.PostingIndent, it.Prefix, it.Body.Bytes(r.source))
		}
	}
	return nil
}

// transactionCommentColumn is the display column (measured from the start of
// the posting indent) at which trailing comments line up: past the account,
// amount, eq, and at columns plus one entry_spacing gap before the `;`.
func transactionCommentColumn(t *cst.Transaction, opts Options) int {
	col := t.PostingIndent + t.MaxNameWidth + opts.EntrySpacing
	if t.MaxAmountFullWidth > 0 {
		col += t.MaxAmountFullWidth
	}
	if t.MaxEqSegmentWidth > 0 {
		col += opts.EntrySpacing + eqOpMaxWidth + t.MaxEqSegmentWidth
	}
	if t.MaxAtSegmentWidth > 0 {
		col += opts.EntrySpacing + atOpMaxWidth + t.MaxAtSegmentWidth
	}
	col += opts.EntrySpacing
	return col
}

func (r *renderer) writePosting(t *cst.Transaction, p *cst.Posting, index int) error {
	if !cst.FitsWidth(p.NameWidth) {
		return &OverflowError{Index: index, Field: "posting.name_width", Limit: cst.MaxWidth}
	}

	writeSpaces(r.buf, t.PostingIndent)
	r.buf.Write(p.Name.Bytes(r.source))

	a := p.Value.Amount
	if a == nil && !hasFollowingColumn(t, p) {
		// Nothing renders after the name on this line: no value, no eq/at
		// column, no comment. Padding here would only be trailing whitespace.
		r.buf.WriteByte('\n')
		return nil
	}
	writeSpaces(r.buf, r.opts.EntrySpacing+(t.MaxNameWidth-p.NameWidth))

	if a != nil {
		leadPad := t.MaxAmountIntegerWidth - a.IntegerWidth
		writeSpaces(r.buf, leadPad)
		r.buf.Write(a.Body.Body.Bytes(r.source))
		trailPad := t.MaxAmountFullWidth - a.FullWidth - leadPad
		writeSpaces(r.buf, trailPad)
	} else if t.MaxAmountFullWidth > 0 {
		// The amount column itself is blank, but a later column (eq/at/
		// comment, per hasFollowingColumn above) still needs it filled.
		writeSpaces(r.buf, t.MaxAmountFullWidth)
	}

	if t.MaxEqSegmentWidth > 0 {
		writeSpaces(r.buf, r.opts.EntrySpacing)
		r.writeSegmentColumn(p.Value.Eq, eqOpMaxWidth, t.MaxEqSegmentWidth)
	}
	if t.MaxAtSegmentWidth > 0 {
		writeSpaces(r.buf, r.opts.EntrySpacing)
		r.writeSegmentColumn(p.Value.At, atOpMaxWidth, t.MaxAtSegmentWidth)
	}

	if p.TrailingComment != nil {
		writeSpaces(r.buf, r.opts.EntrySpacing)
		r.buf.WriteByte(p.TrailingComment.Prefix)
		r.buf.WriteByte(' ')
		r.buf.Write(p.TrailingComment.Body.Bytes(r.source))
	}
	r.buf.WriteByte('\n')
	return nil
}

// hasFollowingColumn reports whether p has anything rendered after its
// amount column: an eq or at segment (forced by the transaction as a whole,
// since every posting reserves those columns once any posting uses them),
// or a trailing comment.
func hasFollowingColumn(t *cst.Transaction, p *cst.Posting) bool {
	return t.MaxEqSegmentWidth > 0 || t.MaxAtSegmentWidth > 0 || p.TrailingComment != nil
}

// writeSegmentColumn renders an optional eq/at segment within a fixed-width
// column: opMaxWidth for the left-aligned operator, segMaxWidth for the
// right-padded body. When seg is nil it emits the equivalent run of spaces
// so later columns still line up.
func (r *renderer) writeSegmentColumn(seg *cst.Segment, opMaxWidth, segMaxWidth int) {
	if seg == nil {
		writeSpaces(r.buf, opMaxWidth+segMaxWidth)
		return
	}
	op := seg.Op.Bytes(r.source)
	r.buf.Write(op)
	writeSpaces(r.buf, opMaxWidth-cst.ScalarWidth(op))

	body := seg.Body.Bytes(r.source)
	r.buf.Write(body)
	writeSpaces(r.buf, segMaxWidth-cst.ScalarWidth(body))
}
