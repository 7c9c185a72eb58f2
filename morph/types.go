// SPDX-License-Identifier: MIT

package morph

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// Sentinel errors for morphology operators.
var (
	// ErrSize indicates in/out buffers whose length differs from the image shape.
	ErrSize = errors.New("morph: buffer length does not match image shape")

	// ErrHeights indicates a heights slice not matching the neighbor count.
	ErrHeights = errors.New("morph: heights length does not match neighborhood")

	// ErrNotOnes3x3 indicates the 3×3 fast path was given another neighborhood.
	ErrNotOnes3x3 = errors.New("morph: walker is not a 3x3 all-ones neighborhood")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("morph: invalid option supplied")
)

// Element is the set of pixel types the grayscale operators support.
type Element interface {
	uint8 | uint16 | uint32 | int8 | int16 | int32 | float32 | float64
}

// traits describes the per-type constants of the non-flat operators.
type traits struct {
	lowest  float64 // clamp floor
	highest float64 // clamp ceiling
	round   bool    // clamp and round half up before storing
}

// traitsOf returns the constants for T.
func traitsOf[T Element]() traits {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return traits{lowest: 0, highest: math.MaxUint8, round: true}
	case uint16:
		return traits{lowest: 0, highest: math.MaxUint16, round: true}
	case uint32:
		return traits{lowest: 0, highest: math.MaxUint32, round: true}
	case int8:
		return traits{lowest: math.MinInt8, highest: math.MaxInt8, round: true}
	case int16:
		return traits{lowest: math.MinInt16, highest: math.MaxInt16, round: true}
	case int32:
		return traits{lowest: math.MinInt32, highest: math.MaxInt32, round: true}
	case float32:
		return traits{lowest: -math.MaxFloat32, highest: math.MaxFloat32}
	default:
		return traits{lowest: -math.MaxFloat64, highest: math.MaxFloat64}
	}
}

// Limits returns the smallest and largest finite values of T and whether
// non-flat results of type T are clamped and rounded.
func Limits[T Element]() (lowest, highest T, rounds bool) {
	tr := traitsOf[T]()
	return T(tr.lowest), T(tr.highest), tr.round
}

// store converts a combined float64 value to T, saturating and rounding
// half up for integer types.
func store[T Element](v float64, tr traits) T {
	if tr.round {
		if v < tr.lowest {
			v = tr.lowest
		}
		if v > tr.highest {
			v = tr.highest
		}
		v = math.Floor(v + 0.5)
		if v > tr.highest {
			v = tr.highest
		}
	}
	return T(v)
}

// Option configures the high-level operators.
type Option func(*Options)

// Options holds the effective configuration of a high-level call.
type Options struct {
	// Workers is the number of row-block goroutines; 1 runs serially.
	Workers int

	err error
}

// DefaultOptions returns serial execution.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// WithWorkers sets the number of goroutines used for row blocks.
//
//	n > 0: use n workers
//	n == 0: use runtime.GOMAXPROCS(0)
//	n < 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = n
		}
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.err
}

// checkSizes verifies that every buffer matches the walker's image.
func checkSizes(w *neighborhood.Walker, lengths ...int) error {
	n := w.Shape().Len()
	for _, l := range lengths {
		if l != n {
			return fmt.Errorf("%w: got %d, want %d", ErrSize, l, n)
		}
	}
	return nil
}
