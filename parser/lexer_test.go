package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLineScannerSplitsOnLFAndCRLF(t *testing.T) {
	sc := newLineScanner([]byte("a\r\nb\nc"))

	start, end, ok := sc.next()
	assert.True(t, ok)
	assert.Equal(t, "a", string([]byte("a\r\nb\nc")[start:end]))

	start, end, ok = sc.next()
	assert.True(t, ok)
	assert.Equal(t, "b", string([]byte("a\r\nb\nc")[start:end]))

	start, end, ok = sc.next()
	assert.True(t, ok)
	assert.Equal(t, "c", string([]byte("a\r\nb\nc")[start:end]))

	_, _, ok = sc.next()
	assert.False(t, ok)
}

func TestLineScannerEmptyInput(t *testing.T) {
	sc := newLineScanner(nil)
	_, _, ok := sc.next()
	assert.False(t, ok)
}

func TestIndentWidth(t *testing.T) {
	w, start := indentWidth([]byte("  \tfoo"))
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, start)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank([]byte("")))
	assert.True(t, isBlank([]byte("   \t")))
	assert.False(t, isBlank([]byte("  x")))
}

func TestValidateUTF8(t *testing.T) {
	assert.Equal(t, -1, validateUTF8([]byte("hello日本語")))
	assert.Equal(t, 5, validateUTF8([]byte("hello\xff")))
	assert.Equal(t, 0, validateUTF8([]byte{0x80}))
}
