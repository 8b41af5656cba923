package raster2d

import (
	"sync"

	"github.com/tilepaint/raster2d/internal/parallel"
)

// Two distinct, process-wide worker pools exist, matching spec §5: a
// binning pool used by non-stream tile binning for very large circle counts,
// and a rasterization pool used to dispatch per-tile rendering jobs. A
// thread-local binning pool would need a stable per-thread identity to key
// off of; Go goroutines have no equivalent, so each of the two pools is a
// lazily-initialized, process-wide singleton here.
var (
	binningPoolOnce sync.Once
	binningPoolInst *parallel.WorkerPool

	rasterPoolOnce sync.Once
	rasterPoolInst *parallel.WorkerPool
)

func binningPool() *parallel.WorkerPool {
	binningPoolOnce.Do(func() {
		binningPoolInst = parallel.NewWorkerPool(0)
	})
	return binningPoolInst
}

func rasterPool() *parallel.WorkerPool {
	rasterPoolOnce.Do(func() {
		rasterPoolInst = parallel.NewWorkerPool(0)
	})
	return rasterPoolInst
}
