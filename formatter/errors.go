package formatter

import (
	"encoding/json"
	"fmt"
)

// OverflowError is raised when a cached CST width would exceed the 16-bit
// bound formatter columns are built from. A CST produced by a successful
// parser.Parse call should never trigger this — it exists as a defensive
// backstop for hand-built or mutated trees.
type OverflowError struct {
	// Index is the position of the offending node within cst.CST.Nodes.
	Index int
	Field string
	Limit int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("node %d: %s exceeds maximum width %d", e.Index, e.Field, e.Limit)
}

func (e *OverflowError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"index": e.Index,
		"field": e.Field,
		"limit": e.Limit,
	})
}
