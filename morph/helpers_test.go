package morph_test

import (
	"math/rand"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// randomImage fills a shape with values in [0, levels).
func randomImage[T uint8 | int16 | float32 | float64](rng *rand.Rand, shape neighborhood.Shape, levels int) []T {
	img := make([]T, shape.Len())
	for i := range img {
		img[i] = T(rng.Intn(levels))
	}
	return img
}

// randomBinary fills a shape with set pixels at the given density.
func randomBinary(rng *rand.Rand, shape neighborhood.Shape, density float64) []bool {
	img := make([]bool, shape.Len())
	for i := range img {
		img[i] = rng.Float64() < density
	}
	return img
}

// randomNeighborhood returns a random mask of up to 5×5 with the origin
// always set, so that no pixel ever has an empty neighbor set.
func randomNeighborhood(rng *rand.Rand) *neighborhood.Neighborhood {
	rows, cols := 1+rng.Intn(5), 1+rng.Intn(5)
	origin := neighborhood.Origin(rng.Intn(4))
	var offsets []neighborhood.Offset
	full, _ := neighborhood.Ones(rows, cols, origin)
	for _, o := range full.Offsets() {
		if o == (neighborhood.Offset{}) || rng.Intn(2) == 0 {
			offsets = append(offsets, o)
		}
	}
	return neighborhood.New(offsets...)
}

// bruteDilate computes max over b of img[p-b] by explicit bounds checks.
func bruteDilate(img []float64, shape neighborhood.Shape, nh *neighborhood.Neighborhood) []float64 {
	out := make([]float64, len(img))
	for p := range img {
		r, c := shape.Coord(p)
		set := false
		for _, b := range nh.Offsets() {
			rr, cc := r-b.Row, c-b.Col
			if !shape.Contains(rr, cc) {
				continue
			}
			v := img[shape.Index(rr, cc)]
			if !set || v > out[p] {
				out[p], set = v, true
			}
		}
		if !set {
			out[p] = img[p]
		}
	}
	return out
}
