// Package code generates the periodic reference codes that are resampled and correlated
// against the received signal.
package code

import (
	"github.com/pkg/errors"
)

// GPS L1 C/A code parameters.
const (
	L1CALength   = 1023
	L1CAChipRate = 1.023e6 // chips per second
	L1CAPeriod   = 1e-3    // s
)

// ErrPRN is returned for unknown PRN numbers.
var ErrPRN = errors.New("unknown PRN")

// G2 phase selector taps (1-based) of the C/A codes for PRN 1 to 32.
var l1caTaps = [32][2]int{
	{2, 6}, {3, 7}, {4, 8}, {5, 9}, {1, 9}, {2, 10}, {1, 8}, {2, 9},
	{3, 10}, {2, 3}, {3, 4}, {5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 10},
	{1, 4}, {2, 5}, {3, 6}, {4, 7}, {5, 8}, {6, 9}, {1, 3}, {4, 6},
	{5, 7}, {6, 8}, {7, 9}, {8, 10}, {1, 6}, {2, 7}, {3, 8}, {4, 9},
}

// GPSL1CA returns the C/A code of the given PRN (1-32) as chips of +1 (logic 0) and
// -1 (logic 1).
func GPSL1CA(prn int) ([]int16, error) {
	bits, err := l1caBits(prn)
	if err != nil {
		return nil, err
	}
	result := make([]int16, L1CALength)
	for i, b := range bits {
		result[i] = 1 - 2*int16(b)
	}
	return result, nil
}

func l1caBits(prn int) ([]byte, error) {
	if prn < 1 || prn > len(l1caTaps) {
		return nil, errors.Wrapf(ErrPRN, "C/A PRN %d", prn)
	}
	tap1, tap2 := l1caTaps[prn-1][0]-1, l1caTaps[prn-1][1]-1

	var g1, g2 [10]byte
	for i := range g1 {
		g1[i] = 1
		g2[i] = 1
	}

	result := make([]byte, L1CALength)
	for i := range result {
		result[i] = g1[9] ^ g2[tap1] ^ g2[tap2]

		f1 := g1[2] ^ g1[9]
		f2 := g2[1] ^ g2[2] ^ g2[5] ^ g2[7] ^ g2[8] ^ g2[9]
		copy(g1[1:], g1[:9])
		copy(g2[1:], g2[:9])
		g1[0] = f1
		g2[0] = f2
	}
	return result, nil
}

// Samples returns the number of samples of one code period at the given sampling frequency.
func Samples(samplingFrequency, period float64) int {
	return int(samplingFrequency*period + 0.5)
}
