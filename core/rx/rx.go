// Package rx provides the sources of raw IF samples.
package rx

import (
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/ftl/gnsscore/core"
)

// ReadBlock reads n samples of the given data type from in. The raw bytes are signed 8-bit
// values, interleaved I/Q for DataIQ. If in has no more data, ReadBlock returns io.EOF.
func ReadBlock(in io.Reader, dtype core.DataType, n int) ([]int8, error) {
	if n < 1 {
		return nil, errors.Errorf("invalid block size %d", n)
	}

	buf := make([]byte, n*dtype.Values())
	_, err := io.ReadFull(in, buf)
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, errors.Wrap(err, "cannot read block of 8-bit samples")
	}

	result := make([]int8, len(buf))
	for i, b := range buf {
		result[i] = int8(b)
	}
	return result, nil
}

// NewSource returns a new SamplesInput that reads blocks of blockSize samples from in. If
// interval is greater than zero, the source delivers at most one block per interval.
func NewSource(in io.Reader, dtype core.DataType, blockSize int, interval time.Duration) *Source {
	result := Source{
		in:      in,
		samples: make(chan core.Block, 1),
		done:    make(chan struct{}),
	}

	go func() {
		defer log.Print("Source shutdown")
		defer close(result.samples)
		var count uint64
		for {
			data, err := ReadBlock(in, dtype, blockSize)
			if err == io.EOF {
				log.Print("End of input")
				return
			} else if err != nil {
				log.Print("Reading incoming data failed: ", err)
				return
			}

			select {
			case result.samples <- core.Block{Data: data, Count: count}:
				count += uint64(blockSize)
				if interval > 0 {
					time.Sleep(interval)
				}
			case <-result.done:
				return
			}
		}
	}()

	return &result
}

// Source delivers the sample blocks read from an io.Reader. The channel returned by Samples
// is closed when the input ends or the source is closed.
type Source struct {
	in      io.Reader
	samples chan core.Block
	done    chan struct{}
}

// Samples returns the channel of sample blocks.
func (s *Source) Samples() <-chan core.Block {
	return s.samples
}

// Close the source and the underlying reader, if it is an io.Closer.
func (s *Source) Close() error {
	close(s.done)
	if closer, ok := s.in.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
