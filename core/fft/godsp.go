package fft

import (
	dsp "github.com/mjibson/go-dsp/fft"
	"github.com/pkg/errors"
)

// GoDSP is the transform service based on github.com/mjibson/go-dsp. Lengths that are not
// a power of two are handled with Bluestein's algorithm. The library runs large transforms
// on a worker pool.
type GoDSP struct{}

// NewGoDSP returns a new go-dsp based transform service. The worker pool of go-dsp is
// process wide; workers == 0 uses GOMAXPROCS.
func NewGoDSP(workers int) *GoDSP {
	dsp.SetWorkerPoolSize(workers)
	return &GoDSP{}
}

// go-dsp keeps its own factor caches, a plan only fixes the length.
type godspPlan int

func (p godspPlan) Len() int {
	return int(p)
}

// NewPlan for n points.
func (g *GoDSP) NewPlan(n int) (Plan, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrLength, "cannot plan %d points", n)
	}
	return godspPlan(n), nil
}

// Forward transform of data, in place.
func (g *GoDSP) Forward(plan Plan, data []complex128) error {
	if err := g.check(plan, data); err != nil {
		return err
	}
	copy(data, dsp.FFT(data))
	return nil
}

// Inverse transform of data, in place and unnormalized.
func (g *GoDSP) Inverse(plan Plan, data []complex128) error {
	if err := g.check(plan, data); err != nil {
		return err
	}
	result := dsp.IFFT(data)
	n := complex(float64(len(data)), 0)
	for i, v := range result {
		data[i] = v * n
	}
	return nil
}

func (g *GoDSP) check(plan Plan, data []complex128) error {
	if err := checkLength(plan, data); err != nil {
		return err
	}
	if plan == nil {
		return nil
	}
	if _, ok := plan.(godspPlan); !ok {
		return ErrPlan
	}
	return nil
}
