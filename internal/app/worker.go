package app

import (
	"fractal-renderer/internal/domain"
	"fractal-renderer/pkg/barrier"
	"fractal-renderer/pkg/fractal"
	"sync"

	"go.uber.org/zap"
)

// runContext is shared by the coordinator and all workers of one run.
//
// params and image are written by the coordinator only between two Waits on
// full, i.e. while every worker is parked on that barrier. Workers read them
// only after a Wait on full has returned (or before the first one, when the
// coordinator published before starting them). Letting a worker leave the
// full barrier early breaks this hand-off.
type runContext struct {
	workers int
	// full has workers+1 parties and marks phase boundaries.
	full *barrier.Barrier
	// partial has workers parties and separates compute from flip.
	partial *barrier.Barrier
	kernel  domain.Kernel
	logger  *zap.Logger

	params *domain.AlgorithmParams
	image  *domain.ImageBuffer
}

func newRunContext(workers int, kernel domain.Kernel, logger *zap.Logger) *runContext {
	return &runContext{
		workers: workers,
		full:    barrier.New(workers + 1),
		partial: barrier.New(workers),
		kernel:  kernel,
		logger:  logger,
	}
}

// publish installs the parameters and a fresh buffer for the next phase.
func (rc *runContext) publish(params *domain.AlgorithmParams) {
	width, height := params.Dimensions()
	rc.params = params
	rc.image = domain.NewImageBuffer(width, height)
}

// release drops the finished buffer.
func (rc *runContext) release() {
	rc.image = nil
}

// worker runs both phases for one thread id:
// compute A, partial, flip A, full (A ready), full (B published),
// compute B, partial, flip B. The coordinator joins it instead of a third
// full-barrier round.
func (rc *runContext) worker(tid int, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := rc.logger.With(zap.Int("worker", tid))

	if err := rc.renderPhase(tid, logger); err != nil {
		logger.Debug("Worker stopped", zap.Error(err))
		return
	}

	// Изображение A готово
	if err := rc.full.Wait(); err != nil {
		logger.Debug("Worker stopped", zap.Error(err))
		return
	}
	// Координатор записал A и подготовил B
	if err := rc.full.Wait(); err != nil {
		logger.Debug("Worker stopped", zap.Error(err))
		return
	}

	if err := rc.renderPhase(tid, logger); err != nil {
		logger.Debug("Worker stopped", zap.Error(err))
	}
}

func (rc *runContext) renderPhase(tid int, logger *zap.Logger) error {
	params, img := rc.params, rc.image
	width, height := params.Dimensions()

	rows := fractal.Partition(tid, height, rc.workers)
	logger.Debug("Computing rows",
		zap.Stringer("variant", params.Variant),
		zap.Int("start", rows.Start),
		zap.Int("end", rows.End))

	for h := rows.Start; h < rows.End; h++ {
		row := img.Rows[h]
		for w := 0; w < width; w++ {
			row[w] = uint8(rc.kernel(fractal.Pixel(params, h, w), params) % 256)
		}
	}

	// Mirror rows of the flip may belong to another worker.
	if err := rc.partial.Wait(); err != nil {
		return err
	}

	img.FlipRows(fractal.Partition(tid, height/2, rc.workers))
	return nil
}
