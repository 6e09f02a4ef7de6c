package dsp

import "math"

// ResampleCode resamples the periodic code with the code sampling interval ci (chip), starting
// at the code offset coff (chip). It writes n+2*smax samples to rcode: smax samples of margin
// on each side of the n core samples, for the correlator taps. ci must not exceed len(code).
//
// ResampleCode returns the code offset of the sample following the last core sample, wrapped
// into [0, len(code)). With constant ci and smax, passing it as coff of the next call
// continues the code seamlessly.
func ResampleCode(code []int16, coff float64, smax int, ci float64, n int, rcode []int16) float64 {
	length := float64(len(code))

	coff -= float64(smax) * ci
	coff -= math.Floor(coff/length) * length

	for k := 0; k < n+2*smax; k++ {
		if coff >= length {
			coff -= length
		}
		rcode[k] = code[int(coff)]
		coff += ci
	}

	return wrap(coff-float64(smax)*ci, length)
}

func wrap(x, length float64) float64 {
	x -= math.Floor(x/length) * length
	if x >= length {
		return 0
	}
	return x
}
