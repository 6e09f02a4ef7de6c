package corr

// Integrator integrates correlation surfaces non-coherently over the last length epochs.
// The result is the mean of the stored surfaces; until length surfaces have been put, the
// mean covers only the surfaces seen so far.
type Integrator struct {
	length  int
	buffer  [][]float64
	index   int
	filled  int
	sum     []float64
	current []float64
}

// NewIntegrator returns a new Integrator for length epochs of surfaces with size values.
func NewIntegrator(length, size int) *Integrator {
	if length < 1 {
		length = 1
	}
	result := &Integrator{
		length:  length,
		buffer:  make([][]float64, length),
		index:   0,
		sum:     make([]float64, size),
		current: make([]float64, size),
	}
	for i := range result.buffer {
		result.buffer[i] = make([]float64, size)
	}
	return result
}

// Put the next surface into the integrator and return the current integration. The surface is
// copied, the returned slice is owned by the integrator and valid until the next call to Put.
func (a *Integrator) Put(surface []float64) []float64 {
	if a.filled < a.length {
		a.filled++
	}
	slot := a.buffer[a.index]
	for i := range a.sum {
		var v float64
		if i < len(surface) {
			v = surface[i]
		}
		a.sum[i] += v - slot[i]
		slot[i] = v
		a.current[i] = a.sum[i] / float64(a.filled)
	}
	a.index = (a.index + 1) % a.length
	return a.current
}

// Full reports if the integrator has seen at least length surfaces.
func (a *Integrator) Full() bool {
	return a.filled == a.length
}

// Reset clears all stored surfaces.
func (a *Integrator) Reset() {
	for _, slot := range a.buffer {
		for i := range slot {
			slot[i] = 0
		}
	}
	for i := range a.sum {
		a.sum[i] = 0
		a.current[i] = 0
	}
	a.index = 0
	a.filled = 0
}
