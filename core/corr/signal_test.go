package corr

import (
	"math"
	"math/rand"

	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/code"
	"github.com/ftl/gnsscore/core/dsp"
)

const (
	testSamplingFrequency     = 4092000
	testIntermediateFrequency = 1023000
	testSamplesPerCode        = 4092
)

type testSignal struct {
	prn       int
	dtype     core.DataType
	doppler   float64
	delay     int // code phase in samples
	amplitude float64
	noise     float64
	periods   int
}

// samples generates the IF samples of a C/A code signal with four samples per chip.
func (s testSignal) samples() []int8 {
	chips, err := code.GPSL1CA(s.prn)
	if err != nil {
		panic(err)
	}
	rcode := make([]int16, testSamplesPerCode)
	dsp.ResampleCode(chips, 0, 0, code.L1CAChipRate/testSamplingFrequency, testSamplesPerCode, rcode)

	random := rand.New(rand.NewSource(42))
	n := testSamplesPerCode * s.periods
	values := s.dtype.Values()
	result := make([]int8, n*values)
	ω := 2 * math.Pi * (testIntermediateFrequency + s.doppler) / testSamplingFrequency
	for k := 0; k < n; k++ {
		chip := float64(rcode[((k-s.delay)%testSamplesPerCode+testSamplesPerCode)%testSamplesPerCode])
		θ := ω * float64(k)
		re := s.amplitude*chip*math.Cos(θ) + s.noise*(2*random.Float64()-1)
		result[k*values] = int8(math.Round(re))
		if s.dtype == core.DataIQ {
			im := s.amplitude*chip*math.Sin(θ) + s.noise*(2*random.Float64()-1)
			result[k*values+1] = int8(math.Round(im))
		}
	}
	return result
}
