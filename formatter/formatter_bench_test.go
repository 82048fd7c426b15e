package formatter

import (
	"bytes"
	"os"
	"testing"

	"github.com/mondeja/hledger-fmt/parser"
)

func BenchmarkFormatKitchensink(b *testing.B) {
	data, err := os.ReadFile("../testdata/kitchensink.journal")
	if err != nil {
		b.Fatal(err)
	}
	tree, err := parser.Parse(data)
	if err != nil {
		b.Fatal(err)
	}

	opts := DefaultOptions()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := FormatAST(tree, data, opts, &buf); err != nil {
			b.Fatal(err)
		}
	}
}
