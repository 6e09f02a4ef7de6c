package fft

import (
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum is the transform service based on gonum's fourier package. Any length >= 1 is
// supported.
type Gonum struct{}

// NewGonum returns a new gonum based transform service.
func NewGonum() *Gonum {
	return &Gonum{}
}

// the work buffers of a CmplxFFT must not be shared between concurrent transforms.
type gonumPlan struct {
	lock sync.Mutex
	fft  *fourier.CmplxFFT
}

func (p *gonumPlan) Len() int {
	return p.fft.Len()
}

// NewPlan for n points.
func (g *Gonum) NewPlan(n int) (Plan, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrLength, "cannot plan %d points", n)
	}
	return &gonumPlan{fft: fourier.NewCmplxFFT(n)}, nil
}

// Forward transform of data, in place.
func (g *Gonum) Forward(plan Plan, data []complex128) error {
	p, err := g.planFor(plan, data)
	if err != nil {
		return err
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.fft.Coefficients(data, data)
	return nil
}

// Inverse transform of data, in place and unnormalized.
func (g *Gonum) Inverse(plan Plan, data []complex128) error {
	p, err := g.planFor(plan, data)
	if err != nil {
		return err
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.fft.Sequence(data, data)
	return nil
}

func (g *Gonum) planFor(plan Plan, data []complex128) (*gonumPlan, error) {
	if err := checkLength(plan, data); err != nil {
		return nil, err
	}
	if plan == nil {
		p, err := g.NewPlan(len(data))
		if err != nil {
			return nil, err
		}
		return p.(*gonumPlan), nil
	}
	p, ok := plan.(*gonumPlan)
	if !ok {
		return nil, ErrPlan
	}
	return p, nil
}
