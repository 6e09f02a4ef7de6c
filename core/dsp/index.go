package dsp

// Ind2Sub converts the flat index ind into the subscripts of a 2D array of ny rows with nx
// columns each.
func Ind2Sub(ind, nx, ny int) (subx, suby int) {
	subx = ind % nx
	suby = ny * ind / (nx * ny)
	return
}

// Shift copies n elements from src to dst through a temporary buffer, src and dst may
// overlap.
func Shift[T any](dst, src []T, n int) {
	tmp := make([]T, n)
	copy(tmp, src[:n])
	copy(dst[:n], tmp)
}

// Uint64ToFloat64 converts data into differences to base.
func Uint64ToFloat64(data []uint64, base uint64, out []float64) {
	for i, v := range data {
		out[i] = float64(v - base)
	}
}
