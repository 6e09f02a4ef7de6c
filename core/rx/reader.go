package rx

import (
	"math"
	"math/rand"

	"github.com/ftl/gnsscore/core"
)

// RandomReader returns random values.
type RandomReader struct{}

func (r *RandomReader) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

// Close the reader.
func (r *RandomReader) Close() error {
	return nil
}

// NullReader returns 0.
type NullReader struct{}

func (r *NullReader) Read(p []byte) (n int, err error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// Close the reader.
func (r *NullReader) Close() error {
	return nil
}

// Tone describes the synthetic IF signal of a ToneReader.
type Tone struct {
	SamplingFrequency core.Frequency
	Frequency         core.Frequency // carrier, IF + Doppler
	DataType          core.DataType
	Code              []int16 // optional spreading code
	ChipRate          float64 // chips per second
	CodeOffset        float64 // chip at the first sample
	Amplitude         float64
	Noise             float64 // peak value of the uniform noise
	Seed              int64
}

// NewToneReader returns a reader that produces the samples of the given tone as signed 8-bit
// values, interleaved I/Q for DataIQ. The signal continues seamlessly across reads.
func NewToneReader(tone Tone) *ToneReader {
	return &ToneReader{
		tone:   tone,
		random: rand.New(rand.NewSource(tone.Seed)),
		ω:      2 * math.Pi * float64(tone.Frequency/tone.SamplingFrequency),
		ci:     tone.ChipRate / float64(tone.SamplingFrequency),
		coff:   tone.CodeOffset,
	}
}

// ToneReader produces a synthetic IF signal.
type ToneReader struct {
	tone   Tone
	random *rand.Rand
	ω      float64
	ci     float64

	phase float64
	coff  float64
}

func (r *ToneReader) Read(p []byte) (n int, err error) {
	values := r.tone.DataType.Values()
	samples := len(p) / values
	for k := 0; k < samples; k++ {
		chip := 1.0
		if len(r.tone.Code) > 0 {
			chip = float64(r.tone.Code[int(r.coff)])
		}
		p[k*values] = r.quantize(r.tone.Amplitude * chip * math.Cos(r.phase))
		if r.tone.DataType == core.DataIQ {
			p[k*values+1] = r.quantize(r.tone.Amplitude * chip * math.Sin(r.phase))
		}
		r.advance()
	}
	return samples * values, nil
}

func (r *ToneReader) advance() {
	r.phase = math.Mod(r.phase+r.ω, 2*math.Pi)
	if len(r.tone.Code) == 0 {
		return
	}
	length := float64(len(r.tone.Code))
	r.coff += r.ci
	for r.coff >= length {
		r.coff -= length
	}
	for r.coff < 0 {
		r.coff += length
	}
}

func (r *ToneReader) quantize(v float64) byte {
	if r.tone.Noise > 0 {
		v += r.tone.Noise * (2*r.random.Float64() - 1)
	}
	v = math.Round(v)
	v = math.Max(math.MinInt8, math.Min(math.MaxInt8, v))
	return byte(int8(v))
}

// Close the reader.
func (r *ToneReader) Close() error {
	return nil
}
