package reconstruct_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
	"github.com/xinyuangui2/morpho/reconstruct"
)

// iterated reconstructs by repeated geodesic dilation until stable.
func iterated(t *testing.T, marker, mask []uint8, shape neighborhood.Shape, nh *neighborhood.Neighborhood) []uint8 {
	t.Helper()
	j := append([]uint8(nil), marker...)
	for {
		d, err := morph.Dilate(j, shape, nh)
		require.NoError(t, err)
		changed := false
		for p := range d {
			v := min(d[p], mask[p])
			if v != j[p] {
				j[p], changed = v, true
			}
		}
		if !changed {
			return j
		}
	}
}

// randomPair returns a mask and a marker below it.
func randomPair(rng *rand.Rand, shape neighborhood.Shape) (marker, mask []uint8) {
	mask = make([]uint8, shape.Len())
	marker = make([]uint8, shape.Len())
	for p := range mask {
		mask[p] = uint8(rng.Intn(256))
		if rng.Intn(6) == 0 {
			marker[p] = uint8(rng.Intn(int(mask[p]) + 1))
		}
	}
	return marker, mask
}

//----------------------------------------------------------------------------//
// Correctness
//----------------------------------------------------------------------------//

// TestReconstruct_MatchesIteratedDilation compares the fast-hybrid result
// with the definition, for both connectivities.
func TestReconstruct_MatchesIteratedDilation(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	for _, conn := range []neighborhood.Connectivity{neighborhood.Conn4, neighborhood.Conn8} {
		nh, err := neighborhood.FromConnectivity(conn)
		require.NoError(t, err)
		for trial := 0; trial < 15; trial++ {
			shape := neighborhood.Shape{Rows: 1 + rng.Intn(16), Cols: 1 + rng.Intn(16)}
			marker, mask := randomPair(rng, shape)

			got, err := reconstruct.Reconstruct(marker, mask, shape, reconstruct.WithConnectivity(conn))
			require.NoError(t, err)
			assert.Equal(t, iterated(t, marker, mask, shape, nh), got, "conn %d shape %v", conn, shape)
		}
	}
}

// TestReconstruct_Properties checks marker <= R <= mask and idempotence.
func TestReconstruct_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shape := neighborhood.Shape{Rows: 2 + rng.Intn(20), Cols: 2 + rng.Intn(20)}
		marker, mask := randomPair(rng, shape)

		r, err := reconstruct.Reconstruct(marker, mask, shape)
		require.NoError(t, err)
		for p := range r {
			require.LessOrEqual(t, marker[p], r[p])
			require.LessOrEqual(t, r[p], mask[p])
		}

		again, err := reconstruct.Reconstruct(r, mask, shape)
		require.NoError(t, err)
		assert.Equal(t, r, again, "reconstruction must be idempotent")
	}
}

// TestReconstruct_Connectivity shows a diagonal bridge: the marker spreads
// across it only with 8-connectivity.
func TestReconstruct_Connectivity(t *testing.T) {
	shape := neighborhood.Shape{Rows: 3, Cols: 3}
	mask := []uint8{
		9, 0, 0,
		0, 9, 0,
		0, 0, 9,
	}
	marker := []uint8{
		9, 0, 0,
		0, 0, 0,
		0, 0, 0,
	}
	r8, err := reconstruct.Reconstruct(marker, mask, shape)
	require.NoError(t, err)
	assert.Equal(t, mask, r8)

	r4, err := reconstruct.Reconstruct(marker, mask, shape, reconstruct.WithConnectivity(neighborhood.Conn4))
	require.NoError(t, err)
	assert.Equal(t, marker, r4)
}

// TestReconstruct_Float works on float32, the top-hat pixel type.
func TestReconstruct_Float(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 6}
	mask := []float32{1, 3.5, 2, 0.5, 4, 4}
	marker := []float32{0, 3, 0, 0, 0, 0}
	r, err := reconstruct.Reconstruct(marker, mask, shape)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 2, 0.5, 0.5, 0.5}, r)
}

//----------------------------------------------------------------------------//
// Errors, options, in-place
//----------------------------------------------------------------------------//

// TestReconstruct_MarkerAboveMask verifies the precondition is checked before
// any pixel is written.
func TestReconstruct_MarkerAboveMask(t *testing.T) {
	shape := neighborhood.Shape{Rows: 2, Cols: 2}
	ws, err := reconstruct.NewWalkers(neighborhood.Default(), shape)
	require.NoError(t, err)

	j := []int16{0, 0, 0, 5}
	mask := []int16{9, 9, 9, 4}
	err = reconstruct.ReconstructInPlace(j, mask, ws)
	assert.ErrorIs(t, err, reconstruct.ErrMarkerAboveMask)
	assert.Equal(t, []int16{0, 0, 0, 5}, j, "marker must be untouched")
}

// TestReconstruct_Errors covers sizes and options.
func TestReconstruct_Errors(t *testing.T) {
	shape := neighborhood.Shape{Rows: 2, Cols: 2}
	_, err := reconstruct.Reconstruct([]uint8{0, 0, 0}, []uint8{1, 1, 1, 1}, shape)
	assert.ErrorIs(t, err, reconstruct.ErrSize)

	_, err = reconstruct.Reconstruct([]uint8{0}, []uint8{1}, neighborhood.Shape{Rows: 1, Cols: 1},
		reconstruct.WithConnectivity(6))
	assert.ErrorIs(t, err, reconstruct.ErrOptionViolation)
	assert.ErrorIs(t, err, neighborhood.ErrConnectivity)

	_, err = reconstruct.Reconstruct([]uint8{0}, []uint8{1}, neighborhood.Shape{Rows: 1, Cols: 1},
		reconstruct.WithNeighborhood(nil))
	assert.ErrorIs(t, err, reconstruct.ErrOptionViolation)

	_, err = reconstruct.HMaxima([]int8{1}, neighborhood.Shape{Rows: 1, Cols: 1}, -1)
	assert.ErrorIs(t, err, reconstruct.ErrNegativeH)
}

// TestReconstructInPlace_ReusesWalkers runs one Walkers value on several images.
func TestReconstructInPlace_ReusesWalkers(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	shape := neighborhood.Shape{Rows: 9, Cols: 7}
	ws, err := reconstruct.NewWalkers(neighborhood.Default(), shape)
	require.NoError(t, err)
	assert.Equal(t, shape, ws.Shape())

	for trial := 0; trial < 5; trial++ {
		marker, mask := randomPair(rng, shape)
		want, err := reconstruct.Reconstruct(marker, mask, shape)
		require.NoError(t, err)
		require.NoError(t, reconstruct.ReconstructInPlace(marker, mask, ws))
		assert.Equal(t, want, marker)
	}
}

// TestReconstruct_Stats verifies counters are filled and consistent.
func TestReconstruct_Stats(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 5}
	var st reconstruct.Stats
	_, err := reconstruct.Reconstruct([]uint8{0, 0, 0, 0, 0}, []uint8{1, 1, 1, 1, 1}, shape, reconstruct.WithStats(&st))
	require.NoError(t, err)
	assert.Zero(t, st.Queued)
	assert.Zero(t, st.Raised)

	// the raster pass carries 7 rightwards; the antiraster pass carries it back
	_, err = reconstruct.Reconstruct([]uint8{0, 0, 7, 0, 0}, []uint8{9, 9, 9, 9, 9}, shape, reconstruct.WithStats(&st))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, st.Queued, st.Raised)
}

// TestReconstruct_Cancelled verifies a cancelled context stops propagation
// on a large input.
func TestReconstruct_Cancelled(t *testing.T) {
	// a serpentine corridor defeats both sweeps, forcing a long propagation
	shape := neighborhood.Shape{Rows: 201, Cols: 201}
	mask := make([]uint8, shape.Len())
	for r := 0; r < shape.Rows; r += 2 {
		for c := 0; c < shape.Cols; c++ {
			mask[shape.Index(r, c)] = 200
		}
		gate := shape.Cols - 1
		if (r/2)%2 == 1 {
			gate = 0
		}
		if r+1 < shape.Rows {
			mask[shape.Index(r+1, gate)] = 200
		}
	}
	marker := make([]uint8, shape.Len())
	marker[shape.Index(shape.Rows-1, 0)] = 200

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reconstruct.Reconstruct(marker, mask, shape,
		reconstruct.WithContext(ctx), reconstruct.WithConnectivity(neighborhood.Conn4))
	assert.ErrorIs(t, err, context.Canceled)

	r, err := reconstruct.Reconstruct(marker, mask, shape, reconstruct.WithConnectivity(neighborhood.Conn4))
	require.NoError(t, err)
	assert.Equal(t, mask, r)
}

//----------------------------------------------------------------------------//
// Derived operators
//----------------------------------------------------------------------------//

// TestHMaxima flattens a peak of height 3 when h = 3 and keeps 2 of a peak of 5.
func TestHMaxima(t *testing.T) {
	shape := neighborhood.Shape{Rows: 1, Cols: 7}
	img := []uint8{1, 4, 1, 1, 6, 1, 1}
	out, err := reconstruct.HMaxima(img, shape, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 1, 1, 3, 1, 1}, out)

	sat, err := reconstruct.HMaxima([]uint8{2, 2}, neighborhood.Shape{Rows: 1, Cols: 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0}, sat)
}

// TestOpenByReconstruction keeps a block that survives erosion intact and
// removes a thin line.
func TestOpenByReconstruction(t *testing.T) {
	shape := neighborhood.Shape{Rows: 6, Cols: 8}
	img := make([]uint8, shape.Len())
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			img[shape.Index(r, c)] = 50
		}
	}
	for c := 4; c < 8; c++ {
		img[shape.Index(1, c)] = 50 // thin line attached to the block
	}
	for c := 0; c < 8; c++ {
		img[shape.Index(5, c)] = 30 // detached line
	}

	out, err := reconstruct.OpenByReconstruction(img, shape, neighborhood.Default())
	require.NoError(t, err)
	for c := 0; c < 8; c++ {
		assert.Equal(t, uint8(50), out[shape.Index(1, c)], "attached line restored at col %d", c)
		assert.Equal(t, uint8(0), out[shape.Index(5, c)], "detached line removed at col %d", c)
	}
}
