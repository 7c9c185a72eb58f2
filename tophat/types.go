// SPDX-License-Identifier: MIT

package tophat

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/xinyuangui2/morpho/linear"
	"github.com/xinyuangui2/morpho/neighborhood"
)

// Sentinel errors for the top-hat pipeline.
var (
	// ErrSize indicates an image whose length does not match its shape.
	ErrSize = errors.New("tophat: image length does not match shape")

	// ErrMask indicates an unusable structuring element.
	ErrMask = errors.New("tophat: invalid structuring element")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("tophat: invalid option supplied")
)

// Option configures Extract.
type Option func(*Options)

// Options holds the effective configuration of Extract.
type Options struct {
	// Ctx is passed to the reconstruction phase.
	Ctx context.Context

	// Element is the erosion structuring element.
	Element *neighborhood.Neighborhood

	// Octagon is the radius when Element was set by WithOctagon, else -1.
	Octagon int

	// Connectivity of the reconstruction.
	Connectivity neighborhood.Connectivity

	// Workers for the walker-based erosion; 1 runs serially.
	Workers int

	// Logger receives stage timings and a summary.
	Logger zerolog.Logger

	err error
}

// DefaultOptions returns the 3×3 element, 8-connectivity, serial execution
// and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		Element:      neighborhood.Default(),
		Octagon:      -1,
		Connectivity: neighborhood.Conn8,
		Workers:      1,
		Logger:       zerolog.Nop(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithElement sets the erosion structuring element. It must contain the
// origin; otherwise Extract fails with ErrMask.
func WithElement(nh *neighborhood.Neighborhood) Option {
	return func(o *Options) {
		if nh.Len() == 0 {
			o.err = fmt.Errorf("%w: empty structuring element", ErrOptionViolation)
			return
		}
		o.Element = nh
		o.Octagon = -1
	}
}

// WithRect uses a height×width rectangle with its origin in the middle,
// rounded down. Rectangles are eroded with the van Herk passes.
func WithRect(height, width int) Option {
	return func(o *Options) {
		nh, err := neighborhood.Ones(height, width, neighborhood.OriginMiddleRoundDown)
		if err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		o.Element = nh
		o.Octagon = -1
	}
}

// WithOctagon uses linear.Octagon(radius), eroded with the four-orientation
// van Herk passes.
func WithOctagon(radius int) Option {
	return func(o *Options) {
		nh, err := linear.Octagon(radius)
		if err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		o.Element = nh
		o.Octagon = radius
	}
}

// WithConnectivity selects the reconstruction adjacency, Conn4 or Conn8.
func WithConnectivity(c neighborhood.Connectivity) Option {
	return func(o *Options) {
		if c != neighborhood.Conn4 && c != neighborhood.Conn8 {
			o.err = fmt.Errorf("%w: connectivity %d", ErrOptionViolation, c)
			return
		}
		o.Connectivity = c
	}
}

// WithWorkers sets the erosion goroutine count.
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

// WithLogger sets the pipeline logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.err
}
