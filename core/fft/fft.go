// Package fft provides the complex discrete Fourier transform service used by the DSP core.
//
// Both directions are unnormalized: an inverse transform of a forward transform
// multiplies the input sequence by its length. Transforms work in place.
package fft

import (
	"math"

	"github.com/pkg/errors"
)

// Errors returned at the service boundary.
var (
	ErrLength  = errors.New("invalid transform length")
	ErrPlan    = errors.New("plan does not belong to this service")
	ErrBackend = errors.New("unknown transform backend")
)

// Plan is a precomputed transform setup for a fixed length. A plan can be reused for any
// number of transforms of that length, in both directions.
type Plan interface {
	Len() int
}

// Service executes in-place transforms. If no plan is given, a plan for len(data) is
// created, executed and discarded.
type Service interface {
	NewPlan(n int) (Plan, error)
	Forward(plan Plan, data []complex128) error
	Inverse(plan Plan, data []complex128) error
}

// Names of the available backends.
const (
	BackendGonum = "gonum"
	BackendGoDSP = "godsp"
)

// New returns the service with the given backend name. An empty name selects gonum.
// workers only affects the go-dsp backend (0 means GOMAXPROCS).
func New(backend string, workers int) (Service, error) {
	switch backend {
	case BackendGonum, "":
		return NewGonum(), nil
	case BackendGoDSP:
		return NewGoDSP(workers), nil
	default:
		return nil, errors.Wrap(ErrBackend, backend)
	}
}

// CalcFFTNum returns the number of FFT points (a power of two) for x points, rounded to the
// nearest power of two and then scaled up by 2^next.
func CalcFFTNum(x float64, next int) int {
	nn := int(math.Log2(x)+0.5) + next
	return int(math.Pow(2.0, float64(nn)))
}

func checkLength(plan Plan, data []complex128) error {
	if len(data) < 1 {
		return errors.Wrapf(ErrLength, "%d points", len(data))
	}
	if plan != nil && plan.Len() != len(data) {
		return errors.Wrapf(ErrLength, "plan for %d points, got %d", plan.Len(), len(data))
	}
	return nil
}
