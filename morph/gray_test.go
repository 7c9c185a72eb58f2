package morph_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
)

//----------------------------------------------------------------------------//
// Flat erosion / dilation
//----------------------------------------------------------------------------//

// TestErode_PointHole erodes a 10×10 image of ones holding a single zero at
// (5,5) with a centered 5×5 block: the zero spreads over rows and columns 3..7.
func TestErode_PointHole(t *testing.T) {
	shape := neighborhood.Shape{Rows: 10, Cols: 10}
	img := make([]uint8, shape.Len())
	for i := range img {
		img[i] = 1
	}
	img[shape.Index(5, 5)] = 0
	se, err := neighborhood.Ones(5, 5, neighborhood.OriginMiddleRoundDown)
	require.NoError(t, err)

	out, err := morph.Erode(img, shape, se)
	require.NoError(t, err)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			want := uint8(1)
			if r >= 3 && r <= 7 && c >= 3 && c <= 7 {
				want = 0
			}
			assert.Equal(t, want, out[shape.Index(r, c)], "pixel (%d,%d)", r, c)
		}
	}

	dil, err := morph.Dilate(img, shape, se)
	require.NoError(t, err)
	for _, v := range dil {
		assert.Equal(t, uint8(1), v)
	}
}

// TestIdentityElement verifies that the single-offset (0,0) element leaves
// images unchanged under every operator.
func TestIdentityElement(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	shape := neighborhood.Shape{Rows: 7, Cols: 9}
	img := randomImage[int16](rng, shape, 1000)
	id := neighborhood.New(neighborhood.Offset{})

	e, err := morph.Erode(img, shape, id)
	require.NoError(t, err)
	assert.Equal(t, img, e)

	d, err := morph.Dilate(img, shape, id)
	require.NoError(t, err)
	assert.Equal(t, img, d)

	ne, err := morph.ErodeNonFlatImage(img, shape, id, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, img, ne)
}

// TestDilate_MatchesBruteForce compares gather dilation with max f(p-b).
func TestDilate_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 25; trial++ {
		shape := neighborhood.Shape{Rows: 1 + rng.Intn(9), Cols: 1 + rng.Intn(9)}
		img := randomImage[float64](rng, shape, 50)
		nh := randomNeighborhood(rng)

		got, err := morph.Dilate(img, shape, nh)
		require.NoError(t, err)
		assert.Equal(t, bruteDilate(img, shape, nh), got, "trial %d nh %v", trial, nh)
	}
}

// TestOpenClose_Ordering checks Open(I) <= I <= Close(I) on random inputs.
func TestOpenClose_Ordering(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 30; trial++ {
		shape := neighborhood.Shape{Rows: 2 + rng.Intn(12), Cols: 2 + rng.Intn(12)}
		img := randomImage[uint8](rng, shape, 256)
		nh := randomNeighborhood(rng)

		open, err := morph.Open(img, shape, nh)
		require.NoError(t, err)
		closed, err := morph.Close(img, shape, nh)
		require.NoError(t, err)
		for p := range img {
			require.LessOrEqual(t, open[p], img[p], "opening must be anti-extensive (trial %d, pixel %d)", trial, p)
			require.GreaterOrEqual(t, closed[p], img[p], "closing must be extensive (trial %d, pixel %d)", trial, p)
		}
	}
}

// TestGradient_Saturates verifies a step edge and that flat areas give zero.
func TestGradient_Saturates(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 6}
	img := []uint8{10, 10, 10, 200, 200, 200}
	nh, err := neighborhood.Ones(1, 3, neighborhood.OriginMiddleRoundDown)
	require.NoError(t, err)

	g, err := morph.Gradient(img, shape, nh)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 190, 190, 0, 0}, g)
}

// TestGradient_SignedSaturates covers differences wider than a signed type.
func TestGradient_SignedSaturates(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 2}
	nh, err := neighborhood.Ones(1, 3, neighborhood.OriginMiddleRoundDown)
	require.NoError(t, err)

	g8, err := morph.Gradient([]int8{-128, 127}, shape, nh)
	require.NoError(t, err)
	assert.Equal(t, []int8{127, 127}, g8)

	g16, err := morph.Gradient([]int16{-30000, 100, 5000}, neighborhood.Shape{Rows: 1, Cols: 3}, nh)
	require.NoError(t, err)
	assert.Equal(t, []int16{30100, 32767, 4900}, g16)

	gf, err := morph.Gradient([]float32{-1.5, 2}, shape, nh)
	require.NoError(t, err)
	assert.Equal(t, []float32{3.5, 3.5}, gf)
}

// TestFlat_EmptyNeighborSet verifies that a walker whose flags remove every
// offset leaves the input untouched.
func TestFlat_EmptyNeighborSet(t *testing.T) {
	shape := neighborhood.Shape{Rows: 3, Cols: 3}
	img := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	w, err := neighborhood.NewWalker(neighborhood.Default(), shape,
		neighborhood.SkipCenter|neighborhood.SkipLeading|neighborhood.SkipTrailing)
	require.NoError(t, err)

	out := make([]float32, len(img))
	require.NoError(t, morph.ErodeFlat(img, out, w))
	assert.Equal(t, img, out)
	require.NoError(t, morph.DilateFlat(img, out, w))
	assert.Equal(t, img, out)
}

// TestCausalErosion exercises a skip flag: with only trailing offsets the
// first pixel has no neighbor and keeps its value.
func TestCausalErosion(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 4}
	img := []int16{5, 3, 8, 1}
	nh, err := neighborhood.Ones(1, 3, neighborhood.OriginMiddleRoundDown)
	require.NoError(t, err)
	w, err := neighborhood.NewWalker(nh, shape, neighborhood.SkipCenter|neighborhood.SkipLeading)
	require.NoError(t, err)

	out := make([]int16, len(img))
	require.NoError(t, morph.ErodeFlat(img, out, w))
	assert.Equal(t, []int16{5, 5, 3, 8}, out)
}

//----------------------------------------------------------------------------//
// Non-flat
//----------------------------------------------------------------------------//

// TestNonFlat_Duality checks erode(I,h) == -dilate(-I,h) for a symmetric
// element with symmetric heights.
func TestNonFlat_Duality(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	shape := neighborhood.Shape{Rows: 8, Cols: 11}
	nh := neighborhood.Default()
	// slot k holds offset b, slot 8-k holds -b
	heights := []float64{0.5, 1, 0.5, 2, 0, 2, 0.5, 1, 0.5}

	for trial := 0; trial < 10; trial++ {
		img := randomImage[float64](rng, shape, 100)
		neg := make([]float64, len(img))
		for i, v := range img {
			neg[i] = -v
		}
		e, err := morph.ErodeNonFlatImage(img, shape, nh, heights)
		require.NoError(t, err)
		d, err := morph.DilateNonFlatImage(neg, shape, nh, heights)
		require.NoError(t, err)
		for p := range e {
			assert.InDelta(t, e[p], -d[p], 1e-12, "pixel %d", p)
		}
	}
}

// TestNonFlat_IntegerSaturation verifies clamping and round-half-up.
func TestNonFlat_IntegerSaturation(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 3}
	id := neighborhood.New(neighborhood.Offset{})

	u, err := morph.DilateNonFlatImage([]uint8{250, 10, 0}, shape, id, []float64{10.4})
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 20, 10}, u)

	half, err := morph.DilateNonFlatImage([]uint8{250, 10, 0}, shape, id, []float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, []uint8{251, 11, 1}, half)

	s, err := morph.ErodeNonFlatImage([]int8{-126, 0, 127}, shape, id, []float64{5})
	require.NoError(t, err)
	assert.Equal(t, []int8{-128, -5, 122}, s)

	f, err := morph.DilateNonFlatImage([]float32{1, 2, 3}, shape, id, []float64{0.25})
	require.NoError(t, err)
	assert.Equal(t, []float32{1.25, 2.25, 3.25}, f)
}

// TestLimits verifies per-type bounds and rounding flags.
func TestLimits(t *testing.T) {
	lo8, hi8, r8 := morph.Limits[uint8]()
	assert.Equal(t, uint8(0), lo8)
	assert.Equal(t, uint8(255), hi8)
	assert.True(t, r8)

	lo16, hi16, _ := morph.Limits[int16]()
	assert.Equal(t, int16(-32768), lo16)
	assert.Equal(t, int16(32767), hi16)

	lof, _, rf := morph.Limits[float32]()
	assert.Less(t, lof, float32(-1e38), "float lowest must be the most negative finite value")
	assert.False(t, rf)
}

//----------------------------------------------------------------------------//
// Options and errors
//----------------------------------------------------------------------------//

// TestWorkers_MatchSerial verifies row-block parallelism changes nothing.
func TestWorkers_MatchSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	shape := neighborhood.Shape{Rows: 37, Cols: 23}
	img := randomImage[uint8](rng, shape, 256)
	nh := randomNeighborhood(rng)
	heights := make([]float64, nh.Len())
	for k := range heights {
		heights[k] = rng.Float64() * 20
	}

	serial, err := morph.Erode(img, shape, nh)
	require.NoError(t, err)
	for _, n := range []int{0, 2, 4, 64} {
		par, err := morph.Erode(img, shape, nh, morph.WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, serial, par, "workers=%d", n)
	}

	serialNF, err := morph.DilateNonFlatImage(img, shape, nh, heights)
	require.NoError(t, err)
	parNF, err := morph.DilateNonFlatImage(img, shape, nh, heights, morph.WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, serialNF, parNF)
}

// TestErrors verifies validation sentinels.
func TestErrors(t *testing.T) {
	shape := neighborhood.Shape{Rows: 2, Cols: 2}
	nh := neighborhood.Default()

	_, err := morph.Erode([]uint8{1, 2, 3}, shape, nh)
	assert.ErrorIs(t, err, morph.ErrSize)

	_, err = morph.Dilate([]uint8{1, 2, 3, 4}, shape, nh, morph.WithWorkers(-1))
	assert.ErrorIs(t, err, morph.ErrOptionViolation)

	_, err = morph.ErodeNonFlatImage([]uint8{1, 2, 3, 4}, shape, nh, []float64{1})
	assert.ErrorIs(t, err, morph.ErrHeights)

	_, err = morph.Erode([]uint8{}, neighborhood.Shape{}, nh)
	assert.ErrorIs(t, err, neighborhood.ErrShape)

	w := neighborhood.MustWalker(nh, shape, neighborhood.UseAll)
	assert.ErrorIs(t, morph.ErodeFlat([]uint8{1, 2, 3, 4}, make([]uint8, 3), w), morph.ErrSize)
	assert.ErrorIs(t, morph.DilateNonFlat([]uint8{1, 2, 3, 4}, make([]uint8, 4), w, nil), morph.ErrHeights)
}
