// Package hledgerfmt parses and re-renders hledger journal text with
// consistent column alignment. It exposes exactly the three entry points a
// surrounding tool (a CLI, a file walker, a diff viewer) needs: Parse,
// FormatAST, and the FormatBytes convenience that chains them.
package hledgerfmt

import (
	"bytes"

	"github.com/mondeja/hledger-fmt/cst"
	"github.com/mondeja/hledger-fmt/formatter"
	"github.com/mondeja/hledger-fmt/parser"
)

// Options is re-exported so callers need only import this package for the
// common case.
type Options = formatter.Options

// DefaultOptions returns the formatter's default configuration.
func DefaultOptions() Options {
	return formatter.DefaultOptions()
}

// Parse builds a CST from source. The returned tree borrows from source:
// source must remain unmodified for as long as the tree is used.
func Parse(source []byte) (*cst.CST, error) {
	return parser.Parse(source)
}

// FormatAST renders tree to out using opts. source must be the same buffer
// tree was parsed from.
func FormatAST(tree *cst.CST, source []byte, opts Options, out *bytes.Buffer) error {
	return formatter.FormatAST(tree, source, opts, out)
}

// FormatBytes parses source and renders it back out in canonical form. It is
// the convenience most callers want; Parse/FormatAST exist separately for
// callers that need to inspect or reuse the CST.
func FormatBytes(source []byte, opts Options) ([]byte, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	size := opts.EstimatedOutputSize
	if size == 0 {
		size = len(source) + len(source)/10
	}
	out := bytes.NewBuffer(make([]byte, 0, size))
	if err := formatter.FormatAST(tree, source, opts, out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
