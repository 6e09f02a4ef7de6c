// Package corr chains the DSP primitives into correlation surfaces and correlator taps.
// It reports peaks and statistics; deciding about acquisition or lock is up to the caller.
package corr

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/code"
	"github.com/ftl/gnsscore/core/dsp"
	"github.com/ftl/gnsscore/core/fft"
)

// Setup of a Searcher.
type Setup struct {
	PRN                   int
	Code                  []int16
	ChipRate              float64 // chips per second
	SamplingFrequency     core.Frequency
	IntermediateFrequency core.Frequency
	DataType              core.DataType
	DopplerRange          core.FrequencyRange
	DopplerStep           core.Frequency
	Integration           int // code periods, accumulated non-coherently
}

// Searcher computes the correlation surface of a sample block over all code phases and a
// range of Doppler frequencies (parallel code phase search).
type Searcher struct {
	ctx   *dsp.Context
	setup Setup

	ti             float64
	samples        int // per code period
	samplesPerChip int
	dopplers       []float64
	codeSpectrum   []complex128
	plan           fft.Plan

	i, q []int16
	cpx  []complex128
}

// NewSearcher returns a new Searcher for the given setup.
func NewSearcher(ctx *dsp.Context, setup Setup) (*Searcher, error) {
	if len(setup.Code) == 0 || setup.ChipRate <= 0 || setup.SamplingFrequency <= 0 {
		return nil, errors.New("invalid search setup")
	}
	if setup.DopplerStep <= 0 {
		setup.DopplerStep = 500
	}
	if setup.Integration < 1 {
		setup.Integration = 1
	}

	fs := float64(setup.SamplingFrequency)
	samples := code.Samples(fs, float64(len(setup.Code))/setup.ChipRate)
	plan, err := ctx.Plan(samples)
	if err != nil {
		return nil, errors.Wrap(err, "cannot setup search")
	}

	result := &Searcher{
		ctx:            ctx,
		setup:          setup,
		ti:             1 / fs,
		samples:        samples,
		samplesPerChip: int(math.Ceil(fs / setup.ChipRate)),
		dopplers:       dopplerBins(setup.DopplerRange, setup.DopplerStep),
		plan:           plan,
		i:              make([]int16, samples),
		q:              make([]int16, samples),
		cpx:            make([]complex128, samples),
	}

	rcode := make([]int16, samples)
	dsp.ResampleCode(setup.Code, 0, 0, setup.ChipRate/fs, samples, rcode)
	result.codeSpectrum = make([]complex128, samples)
	dsp.ComplexFromInt16(rcode, nil, 1, samples, result.codeSpectrum)
	err = ctx.FFT(plan, result.codeSpectrum)
	if err != nil {
		return nil, errors.Wrap(err, "cannot transform code")
	}

	return result, nil
}

func dopplerBins(dopplerRange core.FrequencyRange, step core.Frequency) []float64 {
	dopplerRange = dopplerRange.Normalized()
	n := int(dopplerRange.Width()/step + 1e-9)
	result := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		f := dopplerRange.From + core.Frequency(i)*step
		if !dopplerRange.Contains(f) {
			break
		}
		result = append(result, float64(f))
	}
	return result
}

// Samples per code period, the width of the correlation surface.
func (s *Searcher) Samples() int {
	return s.samples
}

// BlockSize is the number of samples needed for one search.
func (s *Searcher) BlockSize() int {
	return s.samples * s.setup.Integration
}

// Dopplers returns the Doppler frequencies of the surface rows.
func (s *Searcher) Dopplers() []float64 {
	return s.dopplers
}

// Surface computes the correlation power of data for all Doppler bins and code phases into
// grid, row by row (one row of Samples() code phases per Doppler bin). data must hold at least
// BlockSize() samples. If grid is nil or too short, a new one is allocated.
func (s *Searcher) Surface(data []int8, grid []float64) ([]float64, error) {
	values := s.setup.DataType.Values()
	if len(data) < s.BlockSize()*values {
		return nil, errors.Errorf("block too short: %d < %d", len(data)/values, s.BlockSize())
	}
	if len(grid) < len(s.dopplers)*s.samples {
		grid = make([]float64, len(s.dopplers)*s.samples)
	}

	for row, doppler := range s.dopplers {
		freq := float64(s.setup.IntermediateFrequency) + doppler
		pspec := grid[row*s.samples : (row+1)*s.samples]
		phase := 0.0
		for period := 0; period < s.setup.Integration; period++ {
			offset := period * s.samples * values
			phase = s.ctx.MixCarrier(data[offset:], s.setup.DataType, s.ti, s.samples, -freq, phase, s.i, s.q)
			dsp.ComplexFromInt16(s.i, s.q, 1, s.samples, s.cpx)

			err := s.ctx.FFT(s.plan, s.cpx)
			if err != nil {
				return nil, err
			}
			// |IFFT(X·conj(C))|² == |FFT(conj(X)·C)|²
			for k, x := range s.cpx {
				s.cpx[k] = complex(real(x), -imag(x)) * s.codeSpectrum[k]
			}

			err = s.ctx.PowerSpectrum(s.plan, s.cpx, period > 0, pspec)
			if err != nil {
				return nil, err
			}
		}
	}

	return grid, nil
}

// Search computes the correlation surface of the block and returns its peak.
func (s *Searcher) Search(block core.Block) (core.Acquisition, error) {
	grid, err := s.Surface(block.Data, nil)
	if err != nil {
		return core.Acquisition{}, err
	}
	result := s.Peak(grid)
	result.Count = block.Count
	return result, nil
}

// Peak returns the peak of a correlation surface computed by this Searcher.
func (s *Searcher) Peak(grid []float64) core.Acquisition {
	peak := FindPeak(grid, s.samples, len(s.dopplers), s.samplesPerChip)
	return core.Acquisition{
		PRN:              s.setup.PRN,
		CodePhase:        peak.Column,
		RefinedCodePhase: peak.RefinedColumn,
		Doppler:          core.Frequency(s.dopplers[peak.Row]),
		RefinedDoppler:   core.Frequency(dsp.Interp1(indices(len(s.dopplers)), s.dopplers, peak.RefinedRow)),
		PeakPower:        peak.Power,
		PeakRatio:        peak.Ratio,
		DopplerBins:      len(s.dopplers),
		SamplesPerCode:   s.samples,
	}
}

func indices(n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = float64(i)
	}
	return result
}
