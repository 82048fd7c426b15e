package cst

// Node is implemented by every top-level CST variant: EmptyLine,
// MultilineComment, SingleLineComment, DirectiveGroup, and Transaction.
type Node interface {
	node()
}

// CST is the ordered sequence of top-level nodes produced by a single parse.
// It is read-only after Parse returns: nothing in the formatter, and nothing
// in this package, mutates a Node once it has been appended here.
type CST struct {
	Nodes []Node
}

// EmptyLine represents one blank or whitespace-only line. A run of
// consecutive empty lines in the source collapses to a single EmptyLine.
type EmptyLine struct {
	Pos Position
}

func (*EmptyLine) node() {}

// MultilineComment is the text between a `comment` line and an
// `end comment` line, exclusive of both delimiters.
type MultilineComment struct {
	Pos  Position
	Body Span // may span multiple lines, including their newlines
}

func (*MultilineComment) node() {}

// SingleLineComment is a `#`- or `;`-introduced comment. It appears as a
// top-level Node, as an item inside a DirectiveGroup, or interleaved among a
// Transaction's Postings (see PostingItem).
type SingleLineComment struct {
	Pos    Position
	Indent int  // display columns of leading whitespace
	Prefix byte // '#' or ';'
	Body   Span // trimmed of one leading space and trailing whitespace
}

func (*SingleLineComment) node() {}

// DirectiveGroup is a run of directive-related items bounded by blank lines.
type DirectiveGroup struct {
	Pos   Position
	Items []DirectiveItem

	// MaxNamePlusContentWidth is the maximum, over the group's Directive and
	// Subdirective items, of NameWidth + 1 + ContentWidth (the +1 is the
	// single mandatory separator space). Used to align trailing comments.
	MaxNamePlusContentWidth int
}

func (*DirectiveGroup) node() {}

// DirectiveItem is implemented by Directive, Subdirective, and
// SingleLineComment — the three kinds of line a DirectiveGroup can contain.
type DirectiveItem interface {
	directiveItem()
}

func (*SingleLineComment) directiveItem() {}

// Directive is a top-level (indent 0) directive line: a recognized keyword
// followed by its content.
type Directive struct {
	Pos             Position
	Indent          int
	Name            Span
	Content         Span
	TrailingComment *SingleLineComment // nil if the line has no inline comment
	NameWidth       int
	ContentWidth    int
}

func (*Directive) directiveItem() {}

// Subdirective is an indented line immediately following a Directive,
// attached to it (e.g. a metadata line under `account`).
type Subdirective struct {
	Pos             Position
	Indent          int
	Name            Span
	Content         Span
	TrailingComment *SingleLineComment
	NameWidth       int
	ContentWidth    int
}

func (*Subdirective) directiveItem() {}

// Transaction is one complete dated transaction: a header line followed by
// its indented postings.
type Transaction struct {
	Pos           Position
	FirstLine     TransactionHeader
	Postings      []PostingItem
	PostingIndent int // display columns, fixed from the first posting

	// Cross-posting alignment maxima, populated incrementally while parsing.
	MaxNameWidth           int
	MaxAmountIntegerWidth  int
	MaxAmountFullWidth     int
	MaxEqSegmentWidth      int
	MaxAtSegmentWidth      int

	// AlignTitleCommentWithPostings decides where FirstLine.TitleComment is
	// rendered: aligned with the postings' comment column (true) or simply
	// two spaces after the header text (false).
	AlignTitleCommentWithPostings bool
}

func (*Transaction) node() {}

// TransactionHeader is the unparsed date-plus-description portion of a
// transaction's first line, plus its optional inline comment.
type TransactionHeader struct {
	RawHeader    Span // verbatim; the formatter collapses internal runs of spaces to one
	TitleComment *SingleLineComment
}

// PostingItem is implemented by Posting and SingleLineComment — the two
// kinds of line a Transaction's body can contain.
type PostingItem interface {
	postingItem()
}

func (*SingleLineComment) postingItem() {}

// Posting is one indented account/value line inside a Transaction.
type Posting struct {
	Pos             Position
	Indent          int
	Name            Span
	Value           ValueParts
	TrailingComment *SingleLineComment
	NameWidth       int
}

func (*Posting) postingItem() {}

// ValueParts is the three-way split of a posting's value expression.
type ValueParts struct {
	Amount *Amount
	Eq     *Segment // balance assertion: =, ==, =*, ==*
	At     *Segment // price/lot: @, @@
}

// Segment is one operator-prefixed piece of a posting's value (the eq or at
// part). Amount reuses this shape with Op always absent (see Amount below).
type Segment struct {
	Op   Span // absent (IsZero) for a plain amount
	Body Span
}

// Amount is a posting's monetary expression together with the column widths
// the formatter needs to align it without rescanning.
type Amount struct {
	Body Segment

	// IntegerWidth is the display-column count strictly before the decimal
	// mark (including sign and any commodity prefix), or the full width if
	// no decimal mark was found.
	IntegerWidth int

	// FullWidth is the total display-column count of Body.
	FullWidth int

	// SignAndCommodityPrefixWidth is the display-column count of any sign
	// and commodity-symbol prefix preceding the first digit.
	SignAndCommodityPrefixWidth int
}
