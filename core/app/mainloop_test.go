package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/gnsscore/core"
)

func TestStopAndDone(t *testing.T) {
	m := newMainLoop(&mockInput{}, &mockSearcher{}, nil, 1, 1)

	stop := make(chan struct{})
	start := time.Now()
	go func() {
		time.Sleep(100 * time.Millisecond)
		close(stop)
	}()
	m.Run(stop)
	duration := time.Since(start)

	assert.True(t, duration > 100*time.Millisecond)
}

func TestSearchOnEpoch(t *testing.T) {
	input := &mockInput{samples: make(chan core.Block, 1)}
	searcher := &mockSearcher{}
	monitor := &mockMonitor{}
	m := newMainLoop(input, searcher, monitor, 1, 1)
	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	input.samples <- core.Block{Data: []int8{1, 2, 3, 4}, Count: 4711}

	select {
	case actual := <-m.Acquisitions():
		assert.Equal(t, uint64(4711), actual.Count)
		assert.Equal(t, 4.0, actual.PeakPower)
		assert.Equal(t, 3, actual.CodePhase)
	case <-time.After(time.Second):
		t.Fatal("no acquisition")
	}
}

func TestOneSearchPerEpoch(t *testing.T) {
	input := &mockInput{samples: make(chan core.Block)}
	m := newMainLoop(input, &mockSearcher{}, nil, 1, 1)
	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	input.samples <- core.Block{Data: []int8{1, 1, 1, 1}}
	input.samples <- core.Block{Data: []int8{1, 1, 1, 1}}
	input.samples <- core.Block{Data: []int8{1, 1, 1, 1}}

	require.Len(t, m.Acquisitions(), 1)
}

func TestEpochIntegration(t *testing.T) {
	input := &mockInput{samples: make(chan core.Block)}
	m := newMainLoop(input, &mockSearcher{}, nil, 1, 2)
	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	input.samples <- core.Block{Data: []int8{0, 0, 8, 0}}
	first := <-m.Acquisitions()
	m.SearchNow()
	input.samples <- core.Block{Data: []int8{0, 0, 4, 0}}
	input.samples <- core.Block{Data: []int8{0, 0, 4, 0}}
	second := <-m.Acquisitions()

	assert.Equal(t, 8.0, first.PeakPower)
	assert.Equal(t, 6.0, second.PeakPower)
}

func TestSetSearcher(t *testing.T) {
	input := &mockInput{samples: make(chan core.Block)}
	m := newMainLoop(input, &mockSearcher{}, nil, 1, 1)
	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	input.samples <- core.Block{Data: []int8{1, 0, 0, 0}}
	<-m.Acquisitions()
	m.SetSearcher(&mockSearcher{prn: 7})
	input.samples <- core.Block{Data: []int8{1, 0, 0, 0}}
	input.samples <- core.Block{Data: []int8{1, 0, 0, 0}}
	actual := <-m.Acquisitions()

	assert.Equal(t, 7, actual.PRN)
}

type mockInput struct {
	samples chan core.Block
}

func (m *mockInput) Samples() <-chan core.Block {
	return m.samples
}

func (m *mockInput) Close() error {
	return nil
}

// mockSearcher uses the samples as surface of one Doppler bin.
type mockSearcher struct {
	prn int
}

func (m *mockSearcher) Samples() int {
	return 4
}

func (m *mockSearcher) Dopplers() []float64 {
	return []float64{0}
}

func (m *mockSearcher) Surface(data []int8, grid []float64) ([]float64, error) {
	for i := range grid {
		grid[i] = float64(data[i])
	}
	return grid, nil
}

func (m *mockSearcher) Peak(grid []float64) core.Acquisition {
	result := core.Acquisition{PRN: m.prn}
	for i, v := range grid {
		if v > result.PeakPower {
			result.PeakPower = v
			result.CodePhase = i
		}
	}
	return result
}

type mockMonitor struct{}

func (m *mockMonitor) StrongestBin(core.Block) (core.Frequency, float64, error) {
	return 1000, 1, nil
}
