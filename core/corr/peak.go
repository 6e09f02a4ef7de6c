package corr

import (
	"github.com/ftl/gnsscore/core/dsp"
)

// refinementSteps per sample between two neighbouring grid points
const refinementSteps = 16

// Peak of a correlation surface.
type Peak struct {
	Row, Column   int
	RefinedRow    float64
	RefinedColumn float64
	Power         float64
	Ratio         float64 // peak power / mean power of the peak row around the peak
}

// FindPeak returns the maximum of the row-major grid with ny rows of nx columns. The ratio
// compares the peak to the mean of its row, excluding the ±exclude columns around the peak.
// Columns are circular (code phase), rows are not (Doppler).
func FindPeak(grid []float64, nx, ny, exclude int) Peak {
	power, index := dsp.MaxExcluding(grid[:nx*ny], -1, -1)
	column, row := dsp.Ind2Sub(index, nx, ny)

	rowData := grid[row*nx : (row+1)*nx]
	start, end := exclusionWindow(column, exclude, nx)
	mean := dsp.MeanExcluding(rowData, start, end)

	result := Peak{
		Row:           row,
		Column:        column,
		RefinedRow:    float64(row),
		RefinedColumn: float64(column),
		Power:         power,
	}
	if mean > 0 {
		result.Ratio = power / mean
	}

	if nx >= 3 {
		left := (column - 1 + nx) % nx
		right := (column + 1) % nx
		refined := refine(float64(column), rowData[left], power, rowData[right])
		result.RefinedColumn = wrap(refined, float64(nx))
	}
	if ny >= 3 && row > 0 && row < ny-1 {
		result.RefinedRow = refine(float64(row), grid[index-nx], power, grid[index+nx])
	}

	return result
}

// exclusionWindow returns the exclusion window [start, end] of ±width around center in a
// circular row of n values. A window that crosses the row boundary is expressed with
// start > end.
func exclusionWindow(center, width, n int) (start, end int) {
	if 2*width+1 >= n {
		return 0, n - 1
	}
	start = center - width
	end = center + width
	switch {
	case start < 0:
		// use only end < i < start+n
		return start + n, end
	case end >= n:
		return start, end - n
	default:
		return start, end
	}
}

// refine evaluates the interpolation through the three points around x on a fine grid and
// returns the position of the maximum.
func refine(x, left, center, right float64) float64 {
	xs := []float64{x - 1, x, x + 1}
	ys := []float64{left, center, right}

	values := make([]float64, 2*refinementSteps+1)
	for i := range values {
		t := x - 1 + float64(i)/refinementSteps
		values[i] = dsp.Interp1(xs, ys, t)
	}
	_, index := dsp.MaxExcluding(values, -1, -1)
	return x - 1 + float64(index)/refinementSteps
}

func wrap(x, n float64) float64 {
	for x < 0 {
		x += n
	}
	for x >= n {
		x -= n
	}
	return x
}
