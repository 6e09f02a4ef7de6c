// Package rtlsdr reads raw IQ samples from an RTL-SDR dongle.
package rtlsdr

import (
	"bytes"
	"io"
	"log"
	"math"
	"sync"
	"time"

	rtl "github.com/jpoirier/gortlsdr"
	"github.com/pkg/errors"
)

// Open the RTL-SDR dongle for reading.
func Open(centerFrequency int, sampleRate int, frequencyCorrection int) (*Dongle, error) {
	device, err := rtl.Open(0)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open RTL-SDR dongle")
	}

	err = device.SetSampleRate(sampleRate)
	if err != nil {
		device.Close()
		return nil, errors.Wrapf(err, "cannot set sample rate %d", sampleRate)
	}
	log.Printf("RTL-SDR sample rate: %d", device.GetSampleRate())

	err = device.SetCenterFreq(centerFrequency)
	if err != nil {
		device.Close()
		return nil, errors.Wrapf(err, "cannot set center frequency %d", centerFrequency)
	}

	if frequencyCorrection != 0 {
		err = device.SetFreqCorrection(frequencyCorrection)
		if err != nil {
			device.Close()
			return nil, errors.Wrapf(err, "cannot set frequency correction %d", frequencyCorrection)
		}
	}

	err = device.ResetBuffer()
	if err != nil {
		device.Close()
		return nil, errors.Wrap(err, "cannot reset buffer")
	}

	result := Dongle{
		device:    device,
		asyncRead: new(sync.WaitGroup),
		closed:    make(chan struct{}),
	}

	result.asyncRead.Add(1)
	go func() {
		defer result.asyncRead.Done()
		result.device.ReadAsync(result.incomingData, nil, 0, 0)
	}()

	return &result, nil
}

// Dongle represents the RTL-SDR dongle. It delivers interleaved I/Q as signed 8-bit values.
type Dongle struct {
	device    *rtl.Context
	asyncRead *sync.WaitGroup
	closed    chan struct{}

	bufferLock sync.Mutex
	buffer     bytes.Buffer
}

// Read samples from the dongle. Read blocks until len(p) bytes are available.
func (d *Dongle) Read(p []byte) (n int, err error) {
	for {
		d.bufferLock.Lock()
		if d.buffer.Len() >= len(p) {
			n, err = d.buffer.Read(p)
			d.bufferLock.Unlock()
			return n, err
		}
		d.bufferLock.Unlock()

		select {
		case <-d.closed:
			return 0, io.EOF
		case <-time.After(time.Millisecond):
		}
	}
}

// Close the dongle.
func (d *Dongle) Close() error {
	close(d.closed)
	d.device.CancelAsync()
	d.asyncRead.Wait()
	return d.device.Close()
}

func (d *Dongle) incomingData(data []byte) {
	signed := make([]byte, len(data))
	toSigned(signed, data)

	d.bufferLock.Lock()
	defer d.bufferLock.Unlock()
	_, err := d.buffer.Write(signed)
	if err != nil {
		log.Print("Writing incoming data to buffer failed: ", err)
	}
}

// toSigned converts the unsigned 8-bit samples of the dongle (zero at 127) into signed 8-bit
// values.
func toSigned(dst, src []byte) {
	for i, s := range src {
		v := int(s) - 127
		if v > math.MaxInt8 {
			v = math.MaxInt8
		}
		dst[i] = byte(int8(v))
	}
}
