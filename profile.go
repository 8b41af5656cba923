package raster2d

import "time"

// RendererProfile holds optional counters written by the optimizer and
// rasterizer. A caller that doesn't want profiling pays nothing: the
// pointer is only dereferenced when RenderBatch.Profile is non-nil.
type RendererProfile struct {
	OptTileGridNs    int64
	OptScanNs        int64
	OptTileStreamNs  int64
	PremergeNs       int64
	OptRenderTilesNs int64

	RasterNs      int64
	TilesRendered uint64
	PixelsTouched uint64
}

// Reset zeroes every counter.
func (p *RendererProfile) Reset() {
	*p = RendererProfile{}
}

// profileNow returns the current time if profiling is active, or the zero
// time otherwise: callers skip the time.Now() syscall entirely when p is
// nil, so disabled profiling costs nothing.
func profileNow(p *RendererProfile) time.Time {
	if p == nil {
		return time.Time{}
	}
	return time.Now()
}
