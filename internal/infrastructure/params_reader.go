package infrastructure

import (
	"bufio"
	"fmt"
	"fractal-renderer/internal/domain"
	"os"
	"strconv"

	"go.uber.org/zap"
)

var _ domain.ParamsReader = (*TXTParamsReader)(nil)

type TXTParamsReader struct {
	logger *zap.Logger
}

func NewTXTParamsReader(logger *zap.Logger) *TXTParamsReader {
	return &TXTParamsReader{logger: logger}
}

// ReadParams parses a whitespace separated parameter file:
//
//	is_julia x_min x_max y_min y_max resolution max_iterations [julia_re julia_im]
func (r *TXTParamsReader) ReadParams(filename string) (*domain.AlgorithmParams, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tokens []string
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	params, err := parseParams(tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	r.logger.Debug("Parameters loaded",
		zap.String("file", filename),
		zap.Stringer("variant", params.Variant),
		zap.Float64("resolution", params.Resolution),
		zap.Int("iterations", params.MaxIterations))

	return params, nil
}

func parseParams(tokens []string) (*domain.AlgorithmParams, error) {
	if len(tokens) < 7 {
		return nil, fmt.Errorf("%w: expected at least 7 fields, got %d", domain.ErrInvalidFileFormat, len(tokens))
	}

	// Любое ненулевое значение означает Julia
	isJulia, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: is_julia must be an integer, got %q", domain.ErrInvalidFileFormat, tokens[0])
	}

	// Окно и шаг
	var window [5]float64
	for i := range window {
		window[i], err = strconv.ParseFloat(tokens[1+i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", domain.ErrInvalidFileFormat, 2+i, err)
		}
	}

	iterations, err := strconv.Atoi(tokens[6])
	if err != nil {
		return nil, fmt.Errorf("%w: max_iterations: %v", domain.ErrInvalidFileFormat, err)
	}

	params := &domain.AlgorithmParams{
		Variant:       domain.VariantMandelbrot,
		XMin:          window[0],
		XMax:          window[1],
		YMin:          window[2],
		YMax:          window[3],
		Resolution:    window[4],
		MaxIterations: iterations,
	}

	if isJulia != 0 {
		if len(tokens) < 9 {
			return nil, fmt.Errorf("%w: julia constant missing", domain.ErrInvalidFileFormat)
		}
		re, err := strconv.ParseFloat(tokens[7], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: julia real part: %v", domain.ErrInvalidFileFormat, err)
		}
		im, err := strconv.ParseFloat(tokens[8], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: julia imaginary part: %v", domain.ErrInvalidFileFormat, err)
		}
		params.Variant = domain.VariantJulia
		params.JuliaConstant = complex(re, im)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}
