package app

import (
	"log"
	"time"

	"github.com/ftl/gnsscore/core"
	"github.com/ftl/gnsscore/core/corr"
)

func newMainLoop(samplesInput core.SamplesInput, searcher searcherType, monitor monitorType, epochsPerSecond, epochIntegration int) *mainLoop {
	if epochsPerSecond < 1 {
		epochsPerSecond = 1
	}
	if epochIntegration < 1 {
		epochIntegration = 1
	}
	epochInterval := time.Second / time.Duration(epochsPerSecond)
	result := &mainLoop{
		samplesInput: samplesInput,
		monitor:      monitor,

		epochInterval:    epochInterval,
		epochTick:        time.NewTicker(epochInterval),
		epochIntegration: epochIntegration,
		needSearch:       true,
		command:          make(chan command, 1),

		acquisitions: make(chan core.Acquisition, 1),
	}
	result.setSearcher(searcher)

	return result
}

type command func()

type mainLoop struct {
	samplesInput core.SamplesInput
	searcher     searcherType
	monitor      monitorType

	epochInterval    time.Duration
	epochTick        *time.Ticker
	epochIntegration int
	needSearch       bool
	command          chan command

	grid       []float64
	integrator *corr.Integrator

	acquisitions chan core.Acquisition
}

type searcherType interface {
	Samples() int
	Dopplers() []float64
	Surface(data []int8, grid []float64) ([]float64, error)
	Peak(grid []float64) core.Acquisition
}

type monitorType interface {
	StrongestBin(core.Block) (core.Frequency, float64, error)
}

func (m *mainLoop) Run(stop chan struct{}) {
	defer log.Print("main loop shutdown")
	samples := m.samplesInput.Samples()
	for {
		select {
		case block, ok := <-samples:
			if !ok {
				log.Print("No more samples")
				samples = nil
				continue
			}
			if !m.needSearch {
				continue
			}
			m.search(block)
			m.needSearch = false
		case <-m.epochTick.C:
			m.needSearch = true
		case command := <-m.command:
			command()
		case <-stop:
			m.epochTick.Stop()
			return
		}
	}
}

func (m *mainLoop) search(block core.Block) {
	if m.monitor != nil {
		frequency, power, err := m.monitor.StrongestBin(block)
		if err != nil {
			log.Print("IF spectrum failed: ", err)
		} else {
			log.Printf("strongest IF bin at %v (%.0f)", frequency, power)
		}
	}

	grid, err := m.searcher.Surface(block.Data, m.grid)
	if err != nil {
		log.Print("Search failed: ", err)
		return
	}
	m.grid = grid

	result := m.searcher.Peak(m.integrator.Put(grid))
	result.Count = block.Count

	select {
	case m.acquisitions <- result:
	default:
		log.Print("acquisition result dropped")
	}
}

// Acquisitions returns the channel of search results.
func (m *mainLoop) Acquisitions() <-chan core.Acquisition {
	return m.acquisitions
}

func (m *mainLoop) q(cmd command) {
	select {
	case m.command <- cmd:
	default:
		log.Print("Mainloop.q hangs")
	}
}

// SetSearcher replaces the current searcher and restarts the integration.
func (m *mainLoop) SetSearcher(searcher searcherType) {
	m.q(func() {
		m.setSearcher(searcher)
	})
}

func (m *mainLoop) setSearcher(searcher searcherType) {
	size := searcher.Samples() * len(searcher.Dopplers())
	m.searcher = searcher
	m.grid = make([]float64, size)
	m.integrator = corr.NewIntegrator(m.epochIntegration, size)
	m.needSearch = true
}

// SearchNow triggers a search on the next sample block.
func (m *mainLoop) SearchNow() {
	m.q(func() {
		m.needSearch = true
	})
}
