package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/gnsscore/core/fft"
)

func TestPowerSpectrumTone(t *testing.T) {
	ctx := NewContext(fft.NewGonum())
	n := 64
	plan, err := ctx.Plan(n)
	require.NoError(t, err)

	cpx := tone(n, 5.0/64.0)
	pspec := make([]float64, n)
	err = ctx.PowerSpectrum(plan, cpx, false, pspec)
	require.NoError(t, err)

	for i, p := range pspec {
		if i == 5 {
			assert.InDelta(t, float64(n*n), p, 1e-6)
		} else {
			assert.InDelta(t, 0.0, p, 1e-6)
		}
	}
}

func TestPowerSpectrumAccumulate(t *testing.T) {
	for _, backend := range []string{fft.BackendGonum, fft.BackendGoDSP} {
		t.Run(backend, func(t *testing.T) {
			service, err := fft.New(backend, 0)
			require.NoError(t, err)
			ctx := NewContext(service)
			n := 48
			input := make([]complex128, n)
			for i := range input {
				input[i] = complex(math.Sin(float64(i)*0.7), math.Cos(float64(i*i)*0.1))
			}

			single := make([]float64, n)
			for i := range single {
				single[i] = 123 // overwritten
			}
			require.NoError(t, ctx.PowerSpectrum(nil, clone(input), false, single))

			accumulated := make([]float64, n)
			require.NoError(t, ctx.PowerSpectrum(nil, clone(input), true, accumulated))
			require.NoError(t, ctx.PowerSpectrum(nil, clone(input), true, accumulated))

			for i := range single {
				assert.InDelta(t, 2*single[i], accumulated[i], 1e-9*math.Max(1, single[i]))
			}
		})
	}
}

func TestPowerSpectrumAccumulateAddsToContent(t *testing.T) {
	ctx := NewContext(fft.NewGonum())
	n := 16
	pspec := make([]float64, n)
	for i := range pspec {
		pspec[i] = 1
	}

	require.NoError(t, ctx.PowerSpectrum(nil, tone(n, 3.0/16.0), true, pspec))

	for i, p := range pspec {
		if i == 3 {
			assert.InDelta(t, float64(n*n)+1, p, 1e-6)
		} else {
			assert.InDelta(t, 1.0, p, 1e-6)
		}
	}
}

func TestPowerSpectrumWrongPlan(t *testing.T) {
	ctx := NewContext(fft.NewGonum())
	plan, err := ctx.Plan(16)
	require.NoError(t, err)

	err = ctx.PowerSpectrum(plan, make([]complex128, 8), false, make([]float64, 8))

	assert.Error(t, err)
}

func TestContextCachesPlans(t *testing.T) {
	ctx := NewContext(fft.NewGonum())

	a, err := ctx.Plan(32)
	require.NoError(t, err)
	b, err := ctx.Plan(32)
	require.NoError(t, err)
	c, err := ctx.Plan(64)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 64, c.Len())

	_, err = ctx.Plan(0)
	assert.Error(t, err)
}

func TestFFTRoundtrip(t *testing.T) {
	ctx := NewContext(fft.NewGonum())
	input := tone(10, 0.3)
	data := clone(input)

	require.NoError(t, ctx.FFT(nil, data))
	require.NoError(t, ctx.IFFT(nil, data))

	for i := range data {
		assert.InDelta(t, 10*real(input[i]), real(data[i]), 1e-9)
		assert.InDelta(t, 10*imag(input[i]), imag(data[i]), 1e-9)
	}
}

func TestComplexFromInt16(t *testing.T) {
	cpx := make([]complex128, 3)

	ComplexFromInt16([]int16{2, 4, -6}, []int16{1, 0, -1}, 0.5, 3, cpx)
	assert.Equal(t, []complex128{1 + 0.5i, 2, -3 - 0.5i}, cpx)

	ComplexFromInt16([]int16{2, 4, -6}, nil, 1, 3, cpx)
	assert.Equal(t, []complex128{2, 4, -6}, cpx)
}

func TestComplexFromFloat32(t *testing.T) {
	cpx := make([]complex128, 2)

	ComplexFromFloat32([]float32{0.5, -1}, []float32{2, 0.25}, 2, 2, cpx)
	assert.Equal(t, []complex128{1 + 4i, -2 + 0.5i}, cpx)

	ComplexFromFloat32([]float32{0.5, -1}, nil, 2, 2, cpx)
	assert.Equal(t, []complex128{1, -2}, cpx)
}

func BenchmarkPowerSpectrum(b *testing.B) {
	ctx := NewContext(fft.NewGonum())
	plan, _ := ctx.Plan(4096)
	cpx := tone(4096, 0.1)
	pspec := make([]float64, 4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.PowerSpectrum(plan, cpx, true, pspec)
	}
}

func tone(blockSize int, frequencyRate float64) []complex128 {
	result := make([]complex128, blockSize)

	ω := 2 * math.Pi * frequencyRate
	for i := range result {
		t := float64(i)
		result[i] = complex(math.Cos(ω*t), math.Sin(ω*t))
	}

	return result
}

func clone(samples []complex128) []complex128 {
	result := make([]complex128, len(samples))
	copy(result, samples)
	return result
}
