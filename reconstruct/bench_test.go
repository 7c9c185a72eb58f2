package reconstruct_test

import (
	"math/rand"
	"testing"

	"github.com/xinyuangui2/morpho/neighborhood"
	"github.com/xinyuangui2/morpho/reconstruct"
)

// BenchmarkReconstruct_512 reconstructs a sparse marker under a random mask.
func BenchmarkReconstruct_512(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	shape := neighborhood.Shape{Rows: 512, Cols: 512}
	marker, mask := randomPair(rng, shape)
	ws, _ := reconstruct.NewWalkers(neighborhood.Default(), shape)
	j := make([]uint8, len(marker))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(j, marker)
		_ = reconstruct.ReconstructInPlace(j, mask, ws)
	}
}
