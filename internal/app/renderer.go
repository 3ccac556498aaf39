package app

import (
	"fmt"
	"fractal-renderer/internal/domain"
	"fractal-renderer/pkg/fractal"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var _ domain.Renderer = (*FractalRenderer)(nil)

type FractalRenderer struct {
	logger     *zap.Logger
	config     *domain.Config
	reader     domain.ParamsReader
	writer     domain.ImageWriter
	histWriter domain.HistogramWriter
	kernel     domain.Kernel
}

func NewFractalRenderer(logger *zap.Logger, config *domain.Config, reader domain.ParamsReader,
	writer domain.ImageWriter, histWriter domain.HistogramWriter) *FractalRenderer {
	return &FractalRenderer{
		logger:     logger,
		config:     config,
		reader:     reader,
		writer:     writer,
		histWriter: histWriter,
		kernel:     fractal.EscapeStep,
	}
}

// Run renders the Julia image and then the Mandelbrot image of job with
// job.Workers goroutines that live for the whole run.
//
// A returned error means an input could not be loaded; the run is aborted.
// Output failures are logged, collected in RunReport.OutputErr and do not stop
// the run.
func (r *FractalRenderer) Run(job domain.Job) (*domain.RunReport, error) {
	if job.Workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", domain.ErrUsage, job.Workers)
	}

	report := &domain.RunReport{
		RunID:   uuid.NewString(),
		Workers: job.Workers,
	}
	logger := r.logger.With(zap.String("run_id", report.RunID))

	juliaParams, err := r.loadParams(logger, job.JuliaInput, domain.VariantJulia)
	if err != nil {
		return nil, err
	}

	rc := newRunContext(job.Workers, r.kernel, logger)
	rc.publish(juliaParams)

	// Запускаем воркеры
	var wg sync.WaitGroup
	for i := 0; i < job.Workers; i++ {
		wg.Add(1)
		go rc.worker(i, &wg)
	}
	start := time.Now()

	// Ждём, пока Julia будет посчитана и перевёрнута
	if err := rc.full.Wait(); err != nil {
		wg.Wait()
		return report, fmt.Errorf("julia phase: %w", err)
	}

	// Every worker is parked on the full barrier until the next Wait, so the
	// buffer and params belong to the coordinator until then.
	var outErr error
	report.Julia, outErr = r.finishPhase(logger, rc, job.JuliaOutput, time.Since(start))
	report.OutputErr = multierr.Append(report.OutputErr, outErr)
	rc.release()

	mandelbrotParams, err := r.loadParams(logger, job.MandelbrotInput, domain.VariantMandelbrot)
	if err != nil {
		rc.full.Break()
		wg.Wait()
		return report, err
	}
	rc.publish(mandelbrotParams)

	// Отпускаем воркеров на Mandelbrot
	start = time.Now()
	if err := rc.full.Wait(); err != nil {
		wg.Wait()
		return report, fmt.Errorf("mandelbrot phase: %w", err)
	}
	wg.Wait()

	report.Mandelbrot, outErr = r.finishPhase(logger, rc, job.MandelbrotOutput, time.Since(start))
	report.OutputErr = multierr.Append(report.OutputErr, outErr)
	rc.release()

	return report, nil
}

func (r *FractalRenderer) loadParams(logger *zap.Logger, filename string, phase domain.Variant) (*domain.AlgorithmParams, error) {
	params, err := r.reader.ReadParams(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s input: %w", phase, err)
	}

	if params.Variant != phase {
		logger.Warn("Input variant does not match phase, rendering as given",
			zap.String("file", filename),
			zap.Stringer("phase", phase),
			zap.Stringer("variant", params.Variant))
	}

	width, height := params.Dimensions()
	logger.Info("Parameters loaded",
		zap.String("file", filename),
		zap.Stringer("variant", params.Variant),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("iterations", params.MaxIterations))

	return params, nil
}

// finishPhase summarises and writes the image currently held by rc. Must only
// be called while the workers cannot touch the buffer.
func (r *FractalRenderer) finishPhase(logger *zap.Logger, rc *runContext, output string, elapsed time.Duration) (domain.PhaseReport, error) {
	params, img := rc.params, rc.image
	phase := domain.PhaseReport{
		Variant:  params.Variant,
		Output:   output,
		Width:    img.Width,
		Height:   img.Height,
		Duration: elapsed,
	}

	stats, statsErr := img.Stats(uint8(params.MaxIterations % 256))
	if statsErr != nil {
		logger.Warn("Empty image", zap.Stringer("variant", params.Variant))
	} else {
		phase.Stats = stats
	}

	logger.Info("Image computed",
		zap.Stringer("variant", params.Variant),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Duration("elapsed", elapsed),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
		zap.Float64("saturated", stats.Saturated))

	var outErr error
	if err := r.writer.WriteImage(output, img); err != nil {
		logger.Error("Failed to write image",
			zap.String("file", output),
			zap.Error(err))
		outErr = multierr.Append(outErr, fmt.Errorf("write %s: %w", output, err))
	} else {
		phase.Written = true
		logger.Info("Successfully written image",
			zap.String("file", output))
	}

	if r.config.HistogramBins > 0 && statsErr == nil {
		outErr = multierr.Append(outErr, r.writeHistogram(logger, img, output+".hist"))
	}

	return phase, outErr
}

func (r *FractalRenderer) writeHistogram(logger *zap.Logger, img *domain.ImageBuffer, filename string) error {
	hist, err := img.Hist(r.config.HistogramBins)
	if err != nil {
		return err
	}
	if err := r.histWriter.WriteHistogram(filename, &hist); err != nil {
		logger.Error("Failed to write histogram",
			zap.String("file", filename),
			zap.Error(err))
		return fmt.Errorf("write %s: %w", filename, err)
	}
	logger.Debug("Histogram written", zap.String("file", filename))
	return nil
}
