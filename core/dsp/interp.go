package dsp

import "math"

// Interp1 interpolates y(x) at t with a Lagrange polynomial through the three data points
// closest to t. x must be sorted, ascending or descending. Up to two data points are handled
// directly: no data gives 0, one point its value, two points the line through them.
func Interp1(x, y []float64, t float64) float64 {
	n := len(x)
	switch n {
	case 0:
		return 0
	case 1:
		return y[0]
	case 2:
		return (y[0]*(t-x[1]) - y[1]*(t-x[0])) / (x[0] - x[1])
	}

	xx := make([]float64, n)
	yy := make([]float64, n)
	if x[0] > x[n-1] {
		for j, k := n-1, 0; j >= 0; j, k = j-1, k+1 {
			xx[k] = x[j]
			yy[k] = y[j]
		}
	} else {
		copy(xx, x)
		copy(yy, y)
	}

	from, to := window3(xx, t)

	var result float64
	for i := from; i <= to; i++ {
		s := 1.0
		for j := from; j <= to; j++ {
			if j != i {
				s *= (t - xx[j]) / (xx[i] - xx[j])
			}
		}
		result += s * yy[i]
	}
	return result
}

// window3 returns the first and last index of the three ascending points around t.
func window3(xx []float64, t float64) (from, to int) {
	n := len(xx)
	switch {
	case t <= xx[1]:
		return 0, 2
	case t >= xx[n-2]:
		return n - 3, n - 1
	}

	lower, upper := 1, n
	for upper-lower != 1 {
		i := (lower + upper) / 2
		if t < xx[i-1] {
			upper = i
		} else {
			lower = i
		}
	}
	from, to = lower-1, upper-1
	if math.Abs(t-xx[from]) < math.Abs(t-xx[to]) {
		from--
	} else {
		to++
	}
	return from, to
}
