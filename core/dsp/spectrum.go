package dsp

import (
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ftl/gnsscore/core/fft"
)

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() interface{} { return &scratchBuf{} },
}

func getScratch(n int) (re, im, pwr []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

// PowerSpectrum transforms cpx in place and writes the power |X[k]|² of each bin to pspec.
// If accumulate is set, the power is added to the current content of pspec instead.
// Windowing and the choice of the transform length are up to the caller.
func (c *Context) PowerSpectrum(plan fft.Plan, cpx []complex128, accumulate bool, pspec []float64) error {
	err := c.FFT(plan, cpx)
	if err != nil {
		return err
	}

	n := len(cpx)
	re, im, pwr, buf := getScratch(n)
	defer scratchPool.Put(buf)

	for i, v := range cpx {
		re[i] = real(v)
		im[i] = imag(v)
	}

	if !accumulate {
		vecmath.Power(pspec[:n], re, im)
		return nil
	}
	vecmath.Power(pwr, re, im)
	vecmath.AddBlockInPlace(pspec[:n], pwr)
	return nil
}

// ComplexFromInt16 converts n samples of i and q into complex values, scaled by scale.
// q may be nil for real data.
func ComplexFromInt16(i, q []int16, scale float64, n int, cpx []complex128) {
	for k := 0; k < n; k++ {
		var im float64
		if q != nil {
			im = float64(q[k]) * scale
		}
		cpx[k] = complex(float64(i[k])*scale, im)
	}
}

// ComplexFromFloat32 converts n samples of i and q into complex values, scaled by scale.
// q may be nil for real data.
func ComplexFromFloat32(i, q []float32, scale float64, n int, cpx []complex128) {
	for k := 0; k < n; k++ {
		var im float64
		if q != nil {
			im = float64(q[k]) * scale
		}
		cpx[k] = complex(float64(i[k])*scale, im)
	}
}
