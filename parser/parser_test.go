package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/mondeja/hledger-fmt/cst"
)

func mustParse(t *testing.T, src string) *cst.CST {
	t.Helper()
	tree, err := Parse([]byte(src))
	assert.NoError(t, err)
	return tree
}

func TestParseSimpleTransaction(t *testing.T) {
	src := "2024-01-15 Coffee\n    expenses:food  $4.50\n    assets:cash\n"
	tree := mustParse(t, src)
	assert.Equal(t, 1, len(tree.Nodes))

	txn, ok := tree.Nodes[0].(*cst.Transaction)
	assert.True(t, ok)
	assert.Equal(t, 2, len(txn.Postings))
	assert.Equal(t, 4, txn.PostingIndent)

	p0, ok := txn.Postings[0].(*cst.Posting)
	assert.True(t, ok)
	assert.Equal(t, []byte("expenses:food"), p0.Name.Bytes([]byte(src)))
	assert.True(t, p0.Value.Amount != nil)
	assert.Equal(t, "$4.50", p0.Value.Amount.Body.Body.String([]byte(src)))

	p1, ok := txn.Postings[1].(*cst.Posting)
	assert.True(t, ok)
	assert.True(t, p1.Value.Amount == nil)

	assert.Equal(t, cst.ScalarWidth([]byte("expenses:food")), txn.MaxNameWidth)
}

func TestParseBlankLineCollapsing(t *testing.T) {
	src := "account assets:cash\n\n\n\naccount assets:bank\n"
	tree := mustParse(t, src)
	// account directives within a blank-separated run each form their own group.
	var kinds []string
	for _, n := range tree.Nodes {
		switch n.(type) {
		case *cst.DirectiveGroup:
			kinds = append(kinds, "group")
		case *cst.EmptyLine:
			kinds = append(kinds, "blank")
		}
	}
	assert.Equal(t, []string{"group", "blank", "group"}, kinds)
}

func TestParseDirectiveGroupWithSubdirective(t *testing.T) {
	src := "account expenses:food\n    note Groceries and dining\n"
	tree := mustParse(t, src)
	assert.Equal(t, 1, len(tree.Nodes))
	group, ok := tree.Nodes[0].(*cst.DirectiveGroup)
	assert.True(t, ok)
	assert.Equal(t, 2, len(group.Items))

	_, isDirective := group.Items[0].(*cst.Directive)
	assert.True(t, isDirective)
	sub, isSub := group.Items[1].(*cst.Subdirective)
	assert.True(t, isSub)
	assert.Equal(t, []byte("note"), sub.Name.Bytes([]byte(src)))
}

func TestParseMultilineComment(t *testing.T) {
	src := "comment\nthis spans\nmultiple lines\nend comment\n"
	tree := mustParse(t, src)
	assert.Equal(t, 1, len(tree.Nodes))
	mc, ok := tree.Nodes[0].(*cst.MultilineComment)
	assert.True(t, ok)
	assert.Equal(t, "this spans\nmultiple lines\n", mc.Body.String([]byte(src)))
}

func TestParseUnterminatedComment(t *testing.T) {
	_, err := Parse([]byte("comment\nhello\n"))
	assert.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	assert.True(t, ok)
	assert.Equal(t, UnterminatedComment, synErr.Kind)
	assert.Equal(t, 1, synErr.Line)
}

func TestParseUnexpectedIndent(t *testing.T) {
	_, err := Parse([]byte("    orphaned indent\n"))
	assert.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	assert.True(t, ok)
	assert.Equal(t, UnexpectedIndent, synErr.Kind)
}

func TestParseUnknownConstruct(t *testing.T) {
	_, err := Parse([]byte("!!! not a thing\n"))
	assert.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	assert.True(t, ok)
	assert.Equal(t, UnknownConstruct, synErr.Kind)
}

func TestParseDuplicateValueOperator(t *testing.T) {
	src := "2024-01-01 x\n    a  $1 @ $2 @ $3\n    b\n"
	_, err := Parse([]byte(src))
	assert.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	assert.True(t, ok)
	assert.Equal(t, DuplicateValueOperator, synErr.Kind)
}

func TestParseEqAndAtSegments(t *testing.T) {
	src := "2024-01-01 x\n    a  10 USD @@ 12 EUR = 100 USD\n    b\n"
	tree := mustParse(t, src)
	txn := tree.Nodes[0].(*cst.Transaction)
	p := txn.Postings[0].(*cst.Posting)
	assert.True(t, p.Value.Amount != nil)
	assert.True(t, p.Value.At != nil)
	assert.True(t, p.Value.Eq != nil)
	assert.Equal(t, "10 USD", p.Value.Amount.Body.Body.String([]byte(src)))
	assert.Equal(t, "12 EUR", p.Value.At.Body.String([]byte(src)))
	assert.Equal(t, "100 USD", p.Value.Eq.Body.String([]byte(src)))
}

func TestParseInterleavedComments(t *testing.T) {
	src := "2024-01-01 x\n    ; a note\n    a  $1\n    b\n"
	tree := mustParse(t, src)
	txn := tree.Nodes[0].(*cst.Transaction)
	assert.Equal(t, 3, len(txn.Postings))
	_, isComment := txn.Postings[0].(*cst.SingleLineComment)
	assert.True(t, isComment)
}

func TestParseTrailingComment(t *testing.T) {
	src := "2024-01-01 x  ; header note\n    a  $1  ; posting note\n    b\n"
	tree := mustParse(t, src)
	txn := tree.Nodes[0].(*cst.Transaction)
	assert.True(t, txn.FirstLine.TitleComment != nil)
	assert.Equal(t, "header note", txn.FirstLine.TitleComment.Body.String([]byte(src)))

	p := txn.Postings[0].(*cst.Posting)
	assert.True(t, p.TrailingComment != nil)
	assert.Equal(t, "posting note", p.TrailingComment.Body.String([]byte(src)))
}

func TestParseInvalidUTF8(t *testing.T) {
	src := []byte("account assets:cash\xff\n")
	_, err := Parse(src)
	assert.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	assert.True(t, ok)
	assert.Equal(t, InvalidUTF8, synErr.Kind)
}

func TestDecimalMarkHeuristic(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		integerWidth int
	}{
		{"plain decimal", "1234.56", 4},
		{"comma decimal", "1234,56", 4},
		{"thousands then decimal", "1,234,567.89", len("1,234,567")},
		{"pure thousands no decimal", "1,234,567", len("1,234,567")},
		{"ambiguous trailing triplet falls back to full width", "1.234", len("1.234")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "2024-01-01 x\n    a  " + tt.value + "\n    b\n"
			tree := mustParse(t, src)
			txn := tree.Nodes[0].(*cst.Transaction)
			p := txn.Postings[0].(*cst.Posting)
			assert.Equal(t, tt.integerWidth, p.Value.Amount.IntegerWidth)
		})
	}
}
