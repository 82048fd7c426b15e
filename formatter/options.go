package formatter

// Options is the formatter's entire configuration surface — no hidden knobs.
type Options struct {
	// EntrySpacing is the minimum number of spaces inserted between posting
	// columns: account/amount, amount/eq, eq/at, and value/trailing-comment.
	EntrySpacing int

	// EstimatedOutputSize seeds the output buffer's initial capacity. Leave
	// at 0 to let the caller size the buffer itself (e.g. from input length).
	EstimatedOutputSize int
}

// DefaultOptions returns the formatter's default configuration.
func DefaultOptions() Options {
	return Options{EntrySpacing: 2}
}
