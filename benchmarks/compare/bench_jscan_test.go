//go:build jscan

package compare_test

import (
	"testing"

	"github.com/romshark/jscan"
)

// jscan: validate without building values
func Benchmark_ValidOnly_jscan_HugeArray(b *testing.B) {
	data := string(generateHugeJSONArray(cmpHugeN, cmpHugeK))
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !jscan.Valid(data) {
			b.Fatal("invalid")
		}
	}
}
