package dsp

import "cmp"

// Included reports if index i takes part in a statistic with the exclusion window
// [start, end]:
//
//   - start <= end: indices outside [start, end] are used
//   - start > end: only the indices with end < i < start are used
//
// start = end = -1 uses all indices.
func Included(i, start, end int) bool {
	if start <= end {
		return i < start || i > end
	}
	return i < start && i > end
}

// MaxExcluding returns the maximum value of data and its index, ignoring the indices
// excluded by [start, end] (see Included). data[0] is the initial candidate.
func MaxExcluding[T cmp.Ordered](data []T, start, end int) (max T, index int) {
	max = data[0]
	for i := 1; i < len(data); i++ {
		if Included(i, start, end) && max < data[i] {
			max = data[i]
			index = i
		}
	}
	return max, index
}

// MeanExcluding returns the mean value of data, ignoring the indices excluded by
// [start, end] (see Included). If all indices are excluded, the result is NaN.
func MeanExcluding(data []float64, start, end int) float64 {
	var sum float64
	var count int
	for i, v := range data {
		if Included(i, start, end) {
			sum += v
			count++
		}
	}
	return sum / float64(count)
}
