package dsp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInd2Sub(t *testing.T) {
	tt := []struct {
		ind, nx, ny int
		subx, suby  int
	}{
		{0, 4, 3, 0, 0},
		{3, 4, 3, 3, 0},
		{4, 4, 3, 0, 1},
		{6, 4, 3, 2, 1},
		{11, 4, 3, 3, 2},
		{0, 1, 1, 0, 0},
	}
	for _, tc := range tt {
		t.Run(fmt.Sprintf("%d/%dx%d", tc.ind, tc.nx, tc.ny), func(t *testing.T) {
			subx, suby := Ind2Sub(tc.ind, tc.nx, tc.ny)
			assert.Equal(t, tc.subx, subx)
			assert.Equal(t, tc.suby, suby)
		})
	}
}

func TestInd2SubRoundtrip(t *testing.T) {
	for _, grid := range [][2]int{{1, 1}, {5, 1}, {1, 5}, {7, 3}, {4092, 21}} {
		nx, ny := grid[0], grid[1]
		for _, ind := range []int{0, nx - 1, nx, nx*ny/2, nx*ny - 1} {
			if ind >= nx*ny {
				continue
			}
			subx, suby := Ind2Sub(ind, nx, ny)
			assert.True(t, subx >= 0 && subx < nx)
			assert.True(t, suby >= 0 && suby < ny)
			assert.Equal(t, ind, suby*nx+subx)
		}
	}
}

func TestShift(t *testing.T) {
	data := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shift(data, data[2:], 6)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 6, 7}, data)

	data = []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shift(data[2:], data, 6)
	assert.Equal(t, []int{0, 1, 0, 1, 2, 3, 4, 5}, data)

	dst := make([]float64, 3)
	Shift(dst, []float64{1.5, 2.5, 3.5, 4.5}, 2)
	assert.Equal(t, []float64{1.5, 2.5, 0}, dst)
}

func TestUint64ToFloat64(t *testing.T) {
	base := uint64(1) << 60
	data := []uint64{base, base + 1, base + 4092000}
	out := make([]float64, len(data))

	Uint64ToFloat64(data, base, out)

	assert.Equal(t, []float64{0, 1, 4092000}, out)
}
