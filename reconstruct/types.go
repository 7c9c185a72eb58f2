// SPDX-License-Identifier: MIT

package reconstruct

import (
	"context"
	"errors"
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// Sentinel errors for reconstruction.
var (
	// ErrMarkerAboveMask is returned when a marker pixel exceeds its mask pixel.
	ErrMarkerAboveMask = errors.New("reconstruct: marker pixels must be <= mask pixels")

	// ErrSize is returned when marker or mask do not match the image shape.
	ErrSize = errors.New("reconstruct: buffer length does not match image shape")

	// ErrNegativeH is returned by HMaxima for a negative height.
	ErrNegativeH = errors.New("reconstruct: h must be non-negative")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reconstruct: invalid option supplied")
)

// Stats reports the work done by one reconstruction.
type Stats struct {
	// Queued counts every push to the FIFO, from both the antiraster sweep
	// and the propagation phase.
	Queued int

	// Raised counts pixel updates made by the propagation phase.
	Raised int
}

// Option configures a reconstruction.
type Option func(*Options)

// Options holds the effective configuration.
type Options struct {
	// Ctx is checked periodically during propagation.
	Ctx context.Context

	// Neighborhood defines pixel adjacency; it should contain the origin
	// and be symmetric.
	Neighborhood *neighborhood.Neighborhood

	// Stats, when non-nil, receives the counters of the run.
	Stats *Stats

	err error
}

// DefaultOptions returns context.Background() and 8-connectivity.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		Neighborhood: neighborhood.Default(),
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

// WithConnectivity selects 4- or 8-connectivity.
// Any other value → ErrOptionViolation.
func WithConnectivity(c neighborhood.Connectivity) Option {
	return func(o *Options) {
		nh, err := neighborhood.FromConnectivity(c)
		if err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		o.Neighborhood = nh
	}
}

// WithNeighborhood sets an arbitrary adjacency. A nil or empty
// neighborhood → ErrOptionViolation.
func WithNeighborhood(nh *neighborhood.Neighborhood) Option {
	return func(o *Options) {
		if nh.Len() == 0 {
			o.err = fmt.Errorf("%w: empty neighborhood", ErrOptionViolation)
			return
		}
		o.Neighborhood = nh
	}
}

// WithStats makes the reconstruction fill st.
func WithStats(st *Stats) Option {
	return func(o *Options) {
		o.Stats = st
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
