package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Frequency represents a frequency in Hz.
type Frequency float64

func (f Frequency) String() string {
	return fmt.Sprintf("%.2fHz", f)
}

// FrequencyRange represents a range of frequencies, e.g. the Doppler search window.
type FrequencyRange struct {
	From, To Frequency
}

func (r FrequencyRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Normalized returns a range with From <= To.
func (r FrequencyRange) Normalized() FrequencyRange {
	if r.From > r.To {
		return FrequencyRange{From: r.To, To: r.From}
	}
	return r
}

// Width of the frequency range.
func (r FrequencyRange) Width() Frequency {
	return r.To - r.From
}

// Contains the given frequency.
func (r FrequencyRange) Contains(f Frequency) bool {
	return f >= r.From && f <= r.To
}

// DataType of the raw IF samples.
type DataType int

// All data types.
const (
	DataReal DataType = iota // one value per sample
	DataIQ                   // interleaved I/Q, two values per sample
)

// Values per sample.
func (t DataType) Values() int {
	if t == DataIQ {
		return 2
	}
	return 1
}

func (t DataType) String() string {
	if t == DataIQ {
		return "iq"
	}
	return "real"
}

// ParseDataType returns the data type for the given name ("real" or "iq").
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "real", "":
		return DataReal, nil
	case "iq":
		return DataIQ, nil
	default:
		return DataReal, errors.Errorf("unknown data type %q", s)
	}
}

// Block of raw IF samples.
type Block struct {
	Data  []int8
	Count uint64 // sample counter of the first sample in Data
}

// Len returns the number of samples in the block.
func (b Block) Len(dtype DataType) int {
	return len(b.Data) / dtype.Values()
}

// SamplesInput interface.
type SamplesInput interface {
	Samples() <-chan Block
	Close() error
}

// Configuration parameters of the application.
type Configuration struct {
	SamplingFrequency     Frequency
	IntermediateFrequency Frequency
	DataType              DataType
	Input                 string
	PRN                   int
	DopplerRange          FrequencyRange
	DopplerStep           Frequency
	Integration           int // code periods per search
	FFTBackend            string
	FFTWorkers            int
	EpochsPerSecond       int
	EpochIntegration      int // searches integrated non-coherently

	CenterFrequency     int
	FrequencyCorrection int
}

// Acquisition is the peak of a correlation surface. It carries no lock decision,
// that is up to the caller.
type Acquisition struct {
	PRN              int
	CodePhase        int     // samples
	RefinedCodePhase float64 // samples
	Doppler          Frequency
	RefinedDoppler   Frequency
	PeakPower        float64
	PeakRatio        float64 // peak power / mean power of the peak row without the peak
	Count            uint64  // sample counter of the searched block
	DopplerBins      int
	SamplesPerCode   int
}

func (a Acquisition) String() string {
	return fmt.Sprintf("PRN %02d code phase %.2f doppler %v ratio %.2f", a.PRN, a.RefinedCodePhase, a.RefinedDoppler, a.PeakRatio)
}

// Correlation holds one complex correlation sum per correlator tap.
type Correlation struct {
	Spacing []int // tap offsets in samples, 0 is prompt
	Taps    []complex128
}

// Prompt returns the tap at spacing 0.
func (c Correlation) Prompt() complex128 {
	for i, s := range c.Spacing {
		if s == 0 {
			return c.Taps[i]
		}
	}
	return 0
}
