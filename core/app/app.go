// Package app runs the acquisition epochs on the configured sample input.
package app

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/code"
	"github.com/ftl/gnsscore/core/corr"
	"github.com/ftl/gnsscore/core/dsp"
	"github.com/ftl/gnsscore/core/fft"
	"github.com/ftl/gnsscore/core/rtlsdr"
	"github.com/ftl/gnsscore/core/rx"
)

// Inputs besides IF data files.
const (
	InputRandom = "random"
	InputTone   = "tone"
	InputRTLSDR = "rtlsdr"
)

// parameters of the synthetic signal
const (
	toneDoppler    = 1500.0
	toneCodeOffset = 256.5
	toneAmplitude  = 20.0
	toneNoise      = 10.0
)

// New returns a new Controller for the given configuration.
func New(configuration core.Configuration) *Controller {
	return &Controller{
		configuration: configuration,
	}
}

// Controller for the application.
type Controller struct {
	configuration core.Configuration
	done          chan struct{}
	subProcesses  *sync.WaitGroup

	ctx      *dsp.Context
	source   core.SamplesInput
	mainLoop *mainLoop
}

// Startup the application.
func (c *Controller) Startup() error {
	transform, err := fft.New(c.configuration.FFTBackend, c.configuration.FFTWorkers)
	if err != nil {
		return err
	}
	c.ctx = dsp.NewContext(transform)
	c.ctx.Init()

	if c.configuration.Input == InputRTLSDR && c.configuration.DataType != core.DataIQ {
		log.Print("RTL-SDR delivers IQ data, data type set to iq")
		c.configuration.DataType = core.DataIQ
	}

	searcher, err := c.newSearcher(c.configuration.PRN)
	if err != nil {
		return err
	}

	in, interval, err := c.openInput()
	if err != nil {
		return err
	}
	c.source = rx.NewSource(in, c.configuration.DataType, searcher.BlockSize(), interval)

	monitor := &ifMonitor{
		ctx:               c.ctx,
		dataType:          c.configuration.DataType,
		samplingFrequency: c.configuration.SamplingFrequency,
		samples:           searcher.Samples(),
	}
	c.mainLoop = newMainLoop(c.source, searcher, monitor, c.configuration.EpochsPerSecond, c.configuration.EpochIntegration)

	c.done = make(chan struct{})
	c.subProcesses = new(sync.WaitGroup)
	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.mainLoop.Run(c.done)
	}()

	log.Printf("Searching PRN %d in %s (%v, %v, IF %v, Doppler %v)", c.configuration.PRN, c.configuration.Input,
		c.configuration.DataType, c.configuration.SamplingFrequency, c.configuration.IntermediateFrequency, c.configuration.DopplerRange)
	return nil
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	close(c.done)
	c.subProcesses.Wait()
	err := c.source.Close()
	if err != nil {
		log.Print("Closing the input failed: ", err)
	}
}

// Acquisitions returns the channel of search results.
func (c *Controller) Acquisitions() <-chan core.Acquisition {
	return c.mainLoop.Acquisitions()
}

// SetPRN switches the search to the given PRN.
func (c *Controller) SetPRN(prn int) error {
	searcher, err := c.newSearcher(prn)
	if err != nil {
		return err
	}
	c.mainLoop.SetSearcher(searcher)
	return nil
}

func (c *Controller) newSearcher(prn int) (*corr.Searcher, error) {
	chips, err := code.GPSL1CA(prn)
	if err != nil {
		return nil, err
	}
	return corr.NewSearcher(c.ctx, corr.Setup{
		PRN:                   prn,
		Code:                  chips,
		ChipRate:              code.L1CAChipRate,
		SamplingFrequency:     c.configuration.SamplingFrequency,
		IntermediateFrequency: c.configuration.IntermediateFrequency,
		DataType:              c.configuration.DataType,
		DopplerRange:          c.configuration.DopplerRange,
		DopplerStep:           c.configuration.DopplerStep,
		Integration:           c.configuration.Integration,
	})
}

// openInput returns the configured input and the interval between two blocks for real-time
// replay.
func (c *Controller) openInput() (io.Reader, time.Duration, error) {
	fs := float64(c.configuration.SamplingFrequency)
	integration := c.configuration.Integration
	if integration < 1 {
		integration = 1
	}
	interval := time.Duration(float64(integration) * code.L1CAPeriod * float64(time.Second))

	switch c.configuration.Input {
	case InputRandom:
		return &rx.RandomReader{}, interval, nil
	case InputTone:
		chips, err := code.GPSL1CA(c.configuration.PRN)
		if err != nil {
			return nil, 0, err
		}
		return rx.NewToneReader(rx.Tone{
			SamplingFrequency: c.configuration.SamplingFrequency,
			Frequency:         c.configuration.IntermediateFrequency + toneDoppler,
			DataType:          c.configuration.DataType,
			Code:              chips,
			ChipRate:          code.L1CAChipRate,
			CodeOffset:        toneCodeOffset,
			Amplitude:         toneAmplitude,
			Noise:             toneNoise,
			Seed:              time.Now().UnixNano(),
		}), interval, nil
	case InputRTLSDR:
		dongle, err := rtlsdr.Open(c.configuration.CenterFrequency, int(fs), c.configuration.FrequencyCorrection)
		if err != nil {
			return nil, 0, err
		}
		return dongle, 0, nil
	default:
		file, err := rx.OpenFile(c.configuration.Input)
		if err != nil {
			return nil, 0, errors.Wrap(err, "cannot open input")
		}
		return file, interval, nil
	}
}

// ifMonitor reports the strongest bin of the IF spectrum.
type ifMonitor struct {
	ctx               *dsp.Context
	dataType          core.DataType
	samplingFrequency core.Frequency
	samples           int
}

func (m *ifMonitor) StrongestBin(block core.Block) (core.Frequency, float64, error) {
	pspec, err := corr.IFSpectrum(m.ctx, block.Data, m.dataType, m.samples)
	if err != nil {
		return 0, 0, err
	}
	frequency, power := corr.StrongestBin(pspec, m.dataType, m.samplingFrequency)
	return frequency, power, nil
}
