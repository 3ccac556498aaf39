package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Config представляет конфигурацию приложения
type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	HistogramBins int    `yaml:"histogram_bins"`
	StrictOutput  bool   `yaml:"strict_output"`
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.HistogramBins < 0 || c.HistogramBins > 256 {
		return fmt.Errorf("%w: histogram_bins must be in [0, 256], got %d", ErrInvalidConfig, c.HistogramBins)
	}
	return nil
}

// Variant selects the escape-time recurrence.
type Variant int

const (
	VariantMandelbrot Variant = iota
	VariantJulia
)

func (v Variant) String() string {
	switch v {
	case VariantJulia:
		return "julia"
	case VariantMandelbrot:
		return "mandelbrot"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// AlgorithmParams describes one image: the plane window, the sampling step
// and the iteration cap. It is never mutated once loaded.
type AlgorithmParams struct {
	Variant       Variant
	XMin, XMax    float64
	YMin, YMax    float64
	Resolution    float64
	MaxIterations int
	// JuliaConstant is only meaningful for VariantJulia.
	JuliaConstant complex128
}

// Dimensions returns the grid size. Truncation matches the integer
// conversion used when the grid is allocated.
func (p *AlgorithmParams) Dimensions() (width, height int) {
	width = int((p.XMax - p.XMin) / p.Resolution)
	height = int((p.YMax - p.YMin) / p.Resolution)
	return width, height
}

// maxCells bounds the grid a single image may allocate.
const maxCells = math.MaxInt32

func (p *AlgorithmParams) Validate() error {
	for _, v := range []float64{p.XMin, p.XMax, p.YMin, p.YMax, p.Resolution, real(p.JuliaConstant), imag(p.JuliaConstant)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %g", ErrInvalidParams, v)
		}
	}
	if p.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %g", ErrInvalidParams, p.Resolution)
	}
	if p.XMax <= p.XMin || p.YMax <= p.YMin {
		return fmt.Errorf("%w: empty window [%g, %g]x[%g, %g]", ErrInvalidParams, p.XMin, p.XMax, p.YMin, p.YMax)
	}
	if p.MaxIterations < 0 {
		return fmt.Errorf("%w: negative iteration count %d", ErrInvalidParams, p.MaxIterations)
	}

	// Checked in float64 so that Dimensions never converts an out of range value.
	width := math.Floor((p.XMax - p.XMin) / p.Resolution)
	height := math.Floor((p.YMax - p.YMin) / p.Resolution)
	if !(width <= maxCells && height <= maxCells && width*height <= maxCells) {
		return fmt.Errorf("%w: grid %gx%g exceeds %d cells", ErrInvalidParams, width, height, maxCells)
	}
	return nil
}

// RowRange is a half-open interval of row indices.
type RowRange struct {
	Start, End int
}

func (r RowRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Job names the four files of a run and the worker count.
type Job struct {
	JuliaInput       string
	JuliaOutput      string
	MandelbrotInput  string
	MandelbrotOutput string
	Workers          int
}

// ImageStats summarises the stored cell values of one image.
type ImageStats struct {
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	Saturated float64 // share of cells that reached MaxIterations % 256
}

type Histogram struct {
	Bins []float64
	Vals []int
	Len  int
}

// PhaseReport describes one finished image.
type PhaseReport struct {
	Variant  Variant
	Output   string
	Width    int
	Height   int
	Duration time.Duration
	Stats    ImageStats
	Written  bool
}

type RunReport struct {
	RunID      string
	Workers    int
	Julia      PhaseReport
	Mandelbrot PhaseReport
	// OutputErr aggregates write failures; they never abort the run.
	OutputErr error
}

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrInvalidParams     = errors.New("invalid algorithm parameters")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUsage             = errors.New("usage")
)
