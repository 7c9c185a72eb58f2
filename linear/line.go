// SPDX-License-Identifier: MIT

package linear

import (
	"errors"
	"fmt"
	"math"

	"github.com/xinyuangui2/morpho/morph"
)

var (
	// ErrLambda indicates a segment length below one, or a negative radius.
	ErrLambda = errors.New("linear: segment length must be positive")

	// ErrOrigin indicates an origin outside the segment.
	ErrOrigin = errors.New("linear: origin outside the segment")

	// ErrSize indicates mismatched buffer lengths.
	ErrSize = errors.New("linear: buffer length mismatch")
)

// Filter is a reusable running min (erosion) or max (dilation) along a line
// segment. Its scratch buffers grow to the longest input seen, so one Filter
// should not be used from several goroutines at once.
type Filter[T morph.Element] struct {
	lambda  int
	origin  int
	pick    func(a, b T) T
	f, g, h []T
}

func lower[T morph.Element](a, b T) T { return min(a, b) }
func upper[T morph.Element](a, b T) T { return max(a, b) }

func newFilter[T morph.Element](lambda, origin int, pick func(a, b T) T) (*Filter[T], error) {
	if lambda < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLambda, lambda)
	}
	if origin < 0 || origin >= lambda {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrOrigin, origin, lambda)
	}
	return &Filter[T]{lambda: lambda, origin: origin, pick: pick}, nil
}

// NewEroder returns a min filter over a segment of lambda samples whose
// origin is origin samples from its left end.
func NewEroder[T morph.Element](lambda, origin int) (*Filter[T], error) {
	return newFilter(lambda, origin, lower[T])
}

// NewDilater returns a max filter over the same window as NewEroder.
func NewDilater[T morph.Element](lambda, origin int) (*Filter[T], error) {
	return newFilter(lambda, origin, upper[T])
}

// Lambda returns the segment length.
func (l *Filter[T]) Lambda() int { return l.lambda }

// Origin returns the origin position inside the segment.
func (l *Filter[T]) Origin() int { return l.origin }

func (l *Filter[T]) grow(n int) {
	if cap(l.f) < n {
		l.f = make([]T, n)
		l.g = make([]T, n)
		l.h = make([]T, n)
	}
}

// Apply filters src into dst. pad replaces samples past either end; for an
// eroder it must be no smaller than any value of src, for a dilater no
// larger. dst may alias src.
//
// Stage 1 (Pad): copy src into a working buffer padded to a multiple of λ.
// Stage 2 (Scan): forward block prefix g, backward block suffix h.
// Stage 3 (Merge): r[x] = pick(g[x+λ-o-1], h[x-o]).
//
// Returns ErrSize if len(dst) != len(src).
// Complexity: O(n) time, O(n) scratch.
func (l *Filter[T]) Apply(dst, src []T, pad T) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrSize, len(dst), len(src))
	}
	n := len(src)
	if n == 0 {
		return nil
	}
	lambda := l.lambda
	wl := (n + lambda - 1) / lambda * lambda
	l.grow(wl)
	f, g, h := l.f[:wl], l.g[:wl], l.h[:wl]

	copy(f, src)
	for x := n; x < wl; x++ {
		f[x] = pad
	}

	pick := l.pick
	for x := 0; x < wl; x++ {
		if x%lambda == 0 {
			g[x] = f[x]
		} else {
			g[x] = pick(g[x-1], f[x])
		}
	}
	for x := wl - 1; x >= 0; x-- {
		if (x+1)%lambda == 0 {
			h[x] = f[x]
		} else {
			h[x] = pick(h[x+1], f[x])
		}
	}

	gOff := lambda - l.origin - 1
	hOff := -l.origin
	for x := 0; x < n; x++ {
		v1, v2 := pad, pad
		if xg := x + gOff; xg >= 0 && xg < wl {
			v1 = g[xg]
		}
		if xh := x + hOff; xh >= 0 && xh < wl {
			v2 = h[xh]
		}
		dst[x] = pick(v1, v2)
	}
	return nil
}

// ErodeLine returns the erosion of f by a segment of lambda samples with the
// given origin. pad must be no smaller than any value of f.
func ErodeLine[T morph.Element](f []T, lambda, origin int, pad T) ([]T, error) {
	l, err := NewEroder[T](lambda, origin)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(f))
	return out, l.Apply(out, f, pad)
}

// DilateLine returns the running maximum of f over the same window as
// ErodeLine. pad must be no larger than any value of f.
func DilateLine[T morph.Element](f []T, lambda, origin int, pad T) ([]T, error) {
	l, err := NewDilater[T](lambda, origin)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(f))
	return out, l.Apply(out, f, pad)
}

// padHigh returns a value no smaller than any T: +Inf for floating types,
// the largest value for integers.
func padHigh[T morph.Element]() T {
	_, hi, rounds := morph.Limits[T]()
	if !rounds {
		return T(math.Inf(1))
	}
	return hi
}

// padLow returns a value no larger than any T.
func padLow[T morph.Element]() T {
	lo, _, rounds := morph.Limits[T]()
	if !rounds {
		return T(math.Inf(-1))
	}
	return lo
}
