package domain

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidImage = errors.New("invalid image")

// ImageBuffer is a height x width grid of escape steps reduced modulo 256.
// Each row is its own slice so that rows can be exchanged without copying.
//
// Concurrent writers are allowed as long as they touch disjoint rows, and
// SwapRows callers touch disjoint index pairs.
type ImageBuffer struct {
	Width  int
	Height int
	Rows   [][]uint8
}

func NewImageBuffer(width, height int) *ImageBuffer {
	rows := make([][]uint8, height)
	for i := range rows {
		rows[i] = make([]uint8, width)
	}
	return &ImageBuffer{
		Width:  width,
		Height: height,
		Rows:   rows,
	}
}

// SwapRows exchanges the row slices at i and j.
func (m *ImageBuffer) SwapRows(i, j int) {
	m.Rows[i], m.Rows[j] = m.Rows[j], m.Rows[i]
}

// FlipRows swaps every row of r with its mirror row Height-1-i. r is expected
// to lie in the top half of the image.
func (m *ImageBuffer) FlipRows(r RowRange) {
	for i := r.Start; i < r.End; i++ {
		m.SwapRows(i, m.Height-1-i)
	}
}

func (m *ImageBuffer) Clone() *ImageBuffer {
	out := NewImageBuffer(m.Width, m.Height)
	for i, row := range m.Rows {
		copy(out.Rows[i], row)
	}
	return out
}

func (m *ImageBuffer) values() []float64 {
	vals := make([]float64, 0, m.Width*m.Height)
	for _, row := range m.Rows {
		for _, v := range row {
			vals = append(vals, float64(v))
		}
	}
	return vals
}

// Stats computes the summary of the stored values. saturated is the value a
// never-escaping cell is stored as.
func (m *ImageBuffer) Stats(saturated uint8) (ImageStats, error) {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return ImageStats{}, ErrInvalidImage
	}

	vals := m.values()
	mean, std := stat.MeanStdDev(vals, nil)

	count := 0
	for _, v := range vals {
		if v == float64(saturated) {
			count++
		}
	}

	return ImageStats{
		Mean:      mean,
		StdDev:    std,
		Min:       floats.Min(vals),
		Max:       floats.Max(vals),
		Saturated: float64(count) / float64(len(vals)),
	}, nil
}

// Hist calculates the histogram of the cell values over n equal bins
// covering [0, 256).
func (m *ImageBuffer) Hist(n int) (Histogram, error) {
	if m == nil || m.Width == 0 || m.Height == 0 || n <= 0 {
		return Histogram{}, ErrInvalidImage
	}

	vals := m.values()
	sort.Float64s(vals)

	dividers := floats.Span(make([]float64, n+1), 0, 256)
	counts := stat.Histogram(nil, dividers, vals, nil)

	histogram := make([]int, n)
	for i, c := range counts {
		histogram[i] = int(c)
	}

	return Histogram{
		Bins: dividers[:n],
		Vals: histogram,
		Len:  n,
	}, nil
}
