package corr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrator(t *testing.T) {
	integrator := NewIntegrator(2, 3)

	assert.Equal(t, []float64{2, 4, 6}, integrator.Put([]float64{2, 4, 6}))
	assert.False(t, integrator.Full())
	assert.Equal(t, []float64{2, 3, 4}, integrator.Put([]float64{2, 2, 2}))
	assert.True(t, integrator.Full())
	assert.Equal(t, []float64{1, 1, 1}, integrator.Put([]float64{0, 0, 0}))
}

func TestIntegratorWarmUpKeepsPeakPower(t *testing.T) {
	integrator := NewIntegrator(4, 2)

	for i := 0; i < 4; i++ {
		actual := integrator.Put([]float64{8, 1})
		assert.Equal(t, []float64{8, 1}, actual, "epoch %d", i)
	}
}

func TestIntegratorCopiesSurfaces(t *testing.T) {
	integrator := NewIntegrator(2, 2)
	surface := []float64{4, 4}

	integrator.Put(surface)
	surface[0] = 100
	actual := integrator.Put([]float64{0, 0})

	assert.Equal(t, []float64{2, 2}, actual)
}

func TestIntegratorReset(t *testing.T) {
	integrator := NewIntegrator(3, 2)
	integrator.Put([]float64{3, 3})

	integrator.Reset()

	assert.False(t, integrator.Full())
	assert.Equal(t, []float64{3, 0}, integrator.Put([]float64{3, 0}))
	assert.Equal(t, []float64{2, 0}, integrator.Put([]float64{1, 0}))
}
