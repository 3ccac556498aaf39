package fractal

import (
	"fmt"
	"fractal-renderer/internal/domain"
)

// Partition returns the rows owned by worker tid when rows [0, total) are
// split across workers. Boundaries are floor(tid*total/workers), so the ranges
// of tid = 0..workers-1 are contiguous, disjoint and cover [0, total) for any
// divisibility. Workers may receive an empty range when total < workers.
//
// The flip pass calls it with total = height/2.
func Partition(tid, total, workers int) domain.RowRange {
	if workers < 1 || tid < 0 || tid >= workers {
		panic(fmt.Sprintf("fractal: invalid partition tid=%d workers=%d", tid, workers))
	}
	start := tid * total / workers
	end := min((tid+1)*total/workers, total)
	return domain.RowRange{Start: start, End: end}
}
