package parser

import (
	"os"
	"testing"
)

func BenchmarkParseKitchensink(b *testing.B) {
	data, err := os.ReadFile("../testdata/kitchensink.journal")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}
