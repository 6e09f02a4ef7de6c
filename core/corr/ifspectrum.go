package corr

import (
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"

	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/dsp"
)

// IFSpectrum returns the Blackman windowed power spectrum of the first n samples of the raw IF
// data. The samples are zero padded to the next power of two.
func IFSpectrum(ctx *dsp.Context, data []int8, dtype core.DataType, n int) ([]float64, error) {
	values := dtype.Values()
	if n < 1 || len(data) < n*values {
		return nil, errors.Errorf("cannot compute IF spectrum of %d samples from %d values", n, len(data))
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for k := 0; k < n; k++ {
		re[k] = float64(data[k*values])
		if dtype == core.DataIQ {
			im[k] = float64(data[k*values+1])
		}
	}
	window.Apply(re, window.Blackman)
	window.Apply(im, window.Blackman)

	cpx := make([]complex128, n)
	for k := range cpx {
		cpx[k] = complex(re[k], im[k])
	}
	size := n
	if !dsputils.IsPowerOf2(size) {
		size = dsputils.NextPowerOf2(size)
	}
	cpx = dsputils.ZeroPad(cpx, size)

	plan, err := ctx.Plan(size)
	if err != nil {
		return nil, errors.Wrap(err, "cannot compute IF spectrum")
	}
	result := make([]float64, size)
	err = ctx.PowerSpectrum(plan, cpx, false, result)
	if err != nil {
		return nil, errors.Wrap(err, "cannot compute IF spectrum")
	}
	return result, nil
}

// StrongestBin returns the frequency and power of the strongest bin of an IF power spectrum.
// DC is ignored. For real data, only the lower half of the spectrum is searched; for IQ data
// the upper half maps to negative frequencies.
func StrongestBin(pspec []float64, dtype core.DataType, samplingFrequency core.Frequency) (core.Frequency, float64) {
	n := len(pspec)
	if n < 4 {
		return 0, 0
	}
	search := pspec[1:]
	if dtype == core.DataReal {
		search = pspec[1 : n/2]
	}
	power, bin := dsp.MaxExcluding(search, -1, -1)
	bin++
	if dtype == core.DataIQ && bin >= n/2 {
		bin -= n
	}
	return core.Frequency(float64(bin) * float64(samplingFrequency) / float64(n)), power
}
