// Package dsp contains the per-epoch signal processing primitives of the receiver: carrier
// wipe-off, code resampling, power spectra and the numeric helpers for peak extraction.
package dsp

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ftl/gnsscore/core/fft"
)

// Context owns the shared state of the DSP primitives: the carrier table, the transform
// service and the cached transform plans. A Context is safe for concurrent use.
type Context struct {
	transform fft.Service

	carrierOnce sync.Once
	carrier     *CarrierTable

	planLock sync.Mutex
	plans    map[int]fft.Plan
}

// NewContext returns a new context that uses the given transform service.
func NewContext(transform fft.Service) *Context {
	return &Context{
		transform: transform,
		plans:     make(map[int]fft.Plan),
	}
}

// Init builds the carrier table eagerly. Calling Init before the first concurrent use is
// optional, the table is built exactly once either way.
func (c *Context) Init() {
	c.Carrier()
}

// Carrier returns the carrier table of this context.
func (c *Context) Carrier() *CarrierTable {
	c.carrierOnce.Do(func() {
		c.carrier = NewCarrierTable()
	})
	return c.carrier
}

// Plan returns the cached transform plan for n points.
func (c *Context) Plan(n int) (fft.Plan, error) {
	c.planLock.Lock()
	defer c.planLock.Unlock()

	if plan, ok := c.plans[n]; ok {
		return plan, nil
	}
	plan, err := c.transform.NewPlan(n)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create plan for %d points", n)
	}
	c.plans[n] = plan
	return plan, nil
}

// FFT transforms cpx in place. plan may be nil.
func (c *Context) FFT(plan fft.Plan, cpx []complex128) error {
	return c.transform.Forward(plan, cpx)
}

// IFFT transforms cpx back in place, unnormalized. plan may be nil.
func (c *Context) IFFT(plan fft.Plan, cpx []complex128) error {
	return c.transform.Inverse(plan, cpx)
}
