package fractal

import (
	"fractal-renderer/internal/domain"
	"math"
)

const escapeRadius = 2.0

// EscapeStep runs z = z^2 + c from the given point and returns the number of
// iterations performed before |z| reached escapeRadius, capped at
// params.MaxIterations.
//
// For Mandelbrot the point is c and z starts at 0; for Julia the point is the
// starting z and c is params.JuliaConstant.
func EscapeStep(point complex128, params *domain.AlgorithmParams) int {
	var zRe, zIm, cRe, cIm float64

	if params.Variant == domain.VariantJulia {
		zRe, zIm = real(point), imag(point)
		cRe, cIm = real(params.JuliaConstant), imag(params.JuliaConstant)
	} else {
		cRe, cIm = real(point), imag(point)
	}

	// Explicit float64 conversions round every product, which keeps the
	// compiler from fusing them into FMA instructions on arm64, ppc64 and s390x.
	step := 0
	for math.Sqrt(float64(zRe*zRe)+float64(zIm*zIm)) < escapeRadius && step < params.MaxIterations {
		zRe, zIm = float64(zRe*zRe)-float64(zIm*zIm)+cRe, float64(2*zRe*zIm)+cIm
		step++
	}
	return step
}

// Pixel returns the plane point sampled by the cell at (row, col). Row 0 is
// YMin, so the raw grid is upside down relative to display order.
func Pixel(params *domain.AlgorithmParams, row, col int) complex128 {
	return complex(
		float64(col)*params.Resolution+params.XMin,
		float64(row)*params.Resolution+params.YMin,
	)
}

// Cell is the value stored in the image for one grid cell.
func Cell(params *domain.AlgorithmParams, row, col int) uint8 {
	return uint8(EscapeStep(Pixel(params, row, col), params) % 256)
}
