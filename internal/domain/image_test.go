package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedImage(width, height int) *ImageBuffer {
	img := NewImageBuffer(width, height)
	for i, row := range img.Rows {
		for j := range row {
			row[j] = uint8(i*width + j)
		}
	}
	return img
}

func TestFlipRowsReversesOrder(t *testing.T) {
	for _, height := range []int{1, 2, 5, 6} {
		img := numberedImage(3, height)
		orig := img.Clone()

		img.FlipRows(RowRange{Start: 0, End: height / 2})
		for i := 0; i < height; i++ {
			assert.Equal(t, orig.Rows[height-1-i], img.Rows[i], "height %d row %d", height, i)
		}
	}
}

func TestFlipRowsIdempotent(t *testing.T) {
	img := numberedImage(4, 7)
	orig := img.Clone()

	half := RowRange{Start: 0, End: img.Height / 2}
	img.FlipRows(half)
	img.FlipRows(half)
	assert.Equal(t, orig.Rows, img.Rows)
}

func TestFlipRowsSplitRanges(t *testing.T) {
	whole := numberedImage(2, 9)
	split := whole.Clone()

	whole.FlipRows(RowRange{Start: 0, End: 4})
	split.FlipRows(RowRange{Start: 0, End: 1})
	split.FlipRows(RowRange{Start: 1, End: 3})
	split.FlipRows(RowRange{Start: 3, End: 4})
	assert.Equal(t, whole.Rows, split.Rows)
}

func TestSwapRowsMovesSlices(t *testing.T) {
	img := numberedImage(2, 2)
	first := img.Rows[0]
	img.SwapRows(0, 1)
	assert.Same(t, &first[0], &img.Rows[1][0])
}

func TestCloneIsDeep(t *testing.T) {
	img := numberedImage(2, 2)
	clone := img.Clone()
	img.Rows[0][0] = 200
	assert.Equal(t, uint8(0), clone.Rows[0][0])
}

func TestStats(t *testing.T) {
	img := NewImageBuffer(2, 2)
	img.Rows[0][0], img.Rows[0][1] = 10, 10
	img.Rows[1][0], img.Rows[1][1] = 30, 30

	stats, err := img.Stats(30)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, stats.Mean, 1e-9)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 30.0, stats.Max)
	assert.InDelta(t, 0.5, stats.Saturated, 1e-9)
	assert.Greater(t, stats.StdDev, 0.0)

	_, err = NewImageBuffer(0, 3).Stats(0)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestHist(t *testing.T) {
	img := NewImageBuffer(4, 1)
	copy(img.Rows[0], []uint8{0, 1, 128, 255})

	hist, err := img.Hist(2)
	require.NoError(t, err)
	assert.Equal(t, 2, hist.Len)
	assert.Equal(t, []float64{0, 128}, hist.Bins)
	assert.Equal(t, []int{2, 2}, hist.Vals)

	hist, err = img.Hist(256)
	require.NoError(t, err)
	total := 0
	for _, v := range hist.Vals {
		total += v
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 1, hist.Vals[255])

	_, err = img.Hist(0)
	assert.ErrorIs(t, err, ErrInvalidImage)
}
