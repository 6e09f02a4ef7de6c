package corr

import (
	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/dsp"
)

// Correlator correlates sample blocks against a local code replica at several taps.
type Correlator struct {
	ctx      *dsp.Context
	code     []int16
	dataType core.DataType
	ti       float64
	spacing  []int
	margin   int

	i, q  []int16
	rcode []int16
}

// NewCorrelator returns a new correlator. spacing holds the tap offsets in samples; a tap with
// offset s correlates against the replica advanced by s samples, 0 is the prompt tap.
func NewCorrelator(ctx *dsp.Context, code []int16, dataType core.DataType, samplingFrequency core.Frequency, spacing []int) *Correlator {
	margin := 0
	for _, s := range spacing {
		if s > margin {
			margin = s
		}
		if -s > margin {
			margin = -s
		}
	}
	return &Correlator{
		ctx:      ctx,
		code:     code,
		dataType: dataType,
		ti:       1 / float64(samplingFrequency),
		spacing:  spacing,
		margin:   margin,
	}
}

// Correlate n samples of data. The carrier with frequency freq (Hz) and phase phase (rad) is
// wiped off, the code replica starts at the code offset coff (chip) and advances by ci chips
// per sample. Correlate returns the taps together with the carrier phase and the code offset
// for the next block.
func (c *Correlator) Correlate(data []int8, n int, freq, phase, coff, ci float64) (result core.Correlation, nextPhase, nextCoff float64) {
	c.ensure(n)

	nextPhase = c.ctx.MixCarrier(data, c.dataType, c.ti, n, -freq, phase, c.i, c.q)
	nextCoff = dsp.ResampleCode(c.code, coff, c.margin, ci, n, c.rcode)

	result.Spacing = c.spacing
	result.Taps = make([]complex128, len(c.spacing))
	for t, s := range c.spacing {
		replica := c.rcode[c.margin+s : c.margin+s+n]
		var re, im int64
		for k, chip := range replica {
			re += int64(c.i[k]) * int64(chip)
			im += int64(c.q[k]) * int64(chip)
		}
		result.Taps[t] = complex(float64(re), float64(im))
	}

	return result, nextPhase, nextCoff
}

func (c *Correlator) ensure(n int) {
	if len(c.i) >= n {
		c.i, c.q = c.i[:n], c.q[:n]
		c.rcode = c.rcode[:n+2*c.margin]
		return
	}
	c.i = make([]int16, n)
	c.q = make([]int16, n)
	c.rcode = make([]int16, n+2*c.margin)
}
