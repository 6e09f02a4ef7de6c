package dsp

import (
	"math"

	"github.com/ftl/gnsscore/core"
)

const (
	carrierDivisions = 32 // table entries per cycle
	carrierBits      = 5
	carrierMask      = carrierDivisions - 1
	carrierScale     = 1.0 / 32.0 // LSB of the table values

	accumulatorCycle = 1 << 32
	indexShift       = 32 - carrierBits
)

// CarrierTable holds one cycle of the quantized local carrier. It is immutable once built.
type CarrierTable struct {
	cos [carrierDivisions]int16
	sin [carrierDivisions]int16
}

// NewCarrierTable builds a new carrier table.
func NewCarrierTable() *CarrierTable {
	result := new(CarrierTable)
	for i := 0; i < carrierDivisions; i++ {
		ω := 2 * math.Pi / carrierDivisions * float64(i)
		result.cos[i] = int16(math.Floor(math.Cos(ω)/carrierScale + 0.5))
		result.sin[i] = int16(math.Floor(math.Sin(ω)/carrierScale + 0.5))
	}
	return result
}

// Len of the table.
func (t *CarrierTable) Len() int {
	return carrierDivisions
}

// At returns the table entries at the given index, wrapped into the table range.
func (t *CarrierTable) At(index int) (cos, sin int16) {
	i := index & carrierMask
	return t.cos[i], t.sin[i]
}

// MixCarrier mixes the local carrier into n samples of data, see CarrierTable.Mix.
func (c *Context) MixCarrier(data []int8, dtype core.DataType, ti float64, n int, freq, phi0 float64, i, q []int16) float64 {
	return c.Carrier().Mix(data, dtype, ti, n, freq, phi0, i, q)
}

// Mix the local carrier with frequency freq (Hz) and initial phase phi0 (rad) into n samples
// of data, sampled with the interval ti (s). The in-phase and quadrature components are
// written to i and q, which must hold n values. For DataIQ, data holds 2n interleaved values.
// Mix returns the carrier phase after the last sample in [0, 2π), to be passed as phi0 of the
// next call.
//
// The phase is accumulated as a 32-bit fraction of a cycle. The upper bits of the
// accumulator select the table entry and the conversion from and to radians is exact, so
// mixing a block in one call or in several calls with the phase fed forward gives the same
// output.
func (t *CarrierTable) Mix(data []int8, dtype core.DataType, ti float64, n int, freq, phi0 float64, i, q []int16) float64 {
	phase := toAccumulator(phi0)
	step := uint32(int64(math.Round(freq * ti * accumulatorCycle)))

	switch dtype {
	case core.DataIQ:
		for k := 0; k < n; k++ {
			index := phase >> indexShift
			cos, sin := t.cos[index], t.sin[index]
			re, im := int16(data[2*k]), int16(data[2*k+1])
			i[k] = cos*re - sin*im
			q[k] = sin*re + cos*im
			phase += step
		}
	case core.DataReal:
		for k := 0; k < n; k++ {
			index := phase >> indexShift
			x := int16(data[k])
			i[k] = t.cos[index] * x
			q[k] = t.sin[index] * x
			phase += step
		}
	}

	return fromAccumulator(phase)
}

func toAccumulator(phi float64) uint32 {
	cycles := phi / (2 * math.Pi)
	cycles -= math.Floor(cycles)
	return uint32(int64(math.Round(cycles * accumulatorCycle)))
}

func fromAccumulator(phase uint32) float64 {
	return float64(phase) * (2 * math.Pi / accumulatorCycle)
}
