// Package formatter renders a cst.CST into canonically aligned journal text.
// Account-name, amount, and directive padding read widths the parser already
// computed. The eq/at operator and body widths, and the width of the
// collapsed transaction header, are counted from the source bytes while
// rendering.
package formatter

import (
	"bytes"

	"github.com/mondeja/hledger-fmt/cst"
)

const (
	eqOpMaxWidth = len("==*")
	atOpMaxWidth = len("@@")
)

// FormatAST renders tree to out using opts. source must be the same buffer
// tree was parsed from — every leaf it renders is a slice of it.
func FormatAST(tree *cst.CST, source []byte, opts Options, out *bytes.Buffer) error {
	r := &renderer{source: source, opts: opts, buf: out}
	return r.render(tree)
}

type renderer struct {
	source []byte
	opts   Options
	buf    *bytes.Buffer
}

func (r *renderer) render(tree *cst.CST) error {
	prevWasTransaction := false
	for i, node := range tree.Nodes {
		if _, ok := node.(*cst.EmptyLine); ok && i == len(tree.Nodes)-1 {
			// A trailing blank line carries no information to preserve: output
			// always ends with exactly one newline, never a blank line after it.
			break
		}
		if prevWasTransaction {
			if _, ok := node.(*cst.EmptyLine); ok {
				r.buf.WriteByte('\n')
				prevWasTransaction = false
				continue
			}
			r.buf.WriteByte('\n')
		}
		if err := r.writeNode(node, i); err != nil {
			return err
		}
		_, prevWasTransaction = node.(*cst.Transaction)
	}
	return nil
}

func (r *renderer) writeNode(node cst.Node, index int) error {
	switch n := node.(type) {
	case *cst.EmptyLine:
		r.buf.WriteByte('\n')
		return nil
	case *cst.MultilineComment:
		r.buf.WriteString("comment\n")
		r.buf.Write(n.Body.Bytes(r.source))
		r.buf.WriteString("end comment\n")
		return nil
	case *cst.SingleLineComment:
		r.writeComment(n.Indent, n.Prefix, n.Body.Bytes(r.source))
		return nil
	case *cst.DirectiveGroup:
		return r.writeDirectiveGroup(n, index)
	case *cst.Transaction:
		return r.writeTransaction(n, index)
	}
	return nil
}

func (r *renderer) writeComment(indent int, prefix byte, body []byte) {
	writeSpaces(r.buf, indent)
	r.buf.WriteByte(prefix)
	r.buf.WriteByte(' ')
	r.buf.Write(body)
	r.buf.WriteByte('\n')
}

// writeCollapsed writes b with every internal run of ASCII space/tab bytes
// collapsed to a single space. Leading/trailing whitespace is assumed
// already trimmed by the parser.
func (r *renderer) writeCollapsed(b []byte) int {
	width := 0
	i := 0
	for i < len(b) {
		c := b[i]
		if c == ' ' || c == '\t' {
			r.buf.WriteByte(' ')
			width++
			for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
				i++
			}
			continue
		}
		r.buf.WriteByte(c)
		if c&0xC0 != 0x80 {
			width++
		}
		i++
	}
	return width
}
