package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExcerptTruncatesAtScalarBoundary(t *testing.T) {
	short := []byte("account assets:cash")
	assert.Equal(t, string(short), excerpt(short))

	long := make([]byte, 0, 130)
	for i := 0; i < 20; i++ {
		long = append(long, []byte("日本語123")...)
	}
	out := excerpt(long)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.True(t, len(out) <= maxExcerptBytes+len("..."))
}

func TestSyntaxErrorMarshalJSON(t *testing.T) {
	err := newSyntaxError(UnknownConstruct, 3, 1, []byte("!!!"), "unrecognized top-level construct")
	b, marshalErr := json.Marshal(err)
	assert.NoError(t, marshalErr)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "UnknownConstruct", decoded["kind"])
	assert.Equal(t, float64(3), decoded["line"])
}

func TestSyntaxErrorGetPosition(t *testing.T) {
	err := newSyntaxError(Overflow, 7, 12, nil, "too wide")
	line, col := err.GetPosition()
	assert.Equal(t, 7, line)
	assert.Equal(t, 12, col)
}
