package raster2d

import (
	"sync/atomic"
	"time"
)

// RenderOptimized writes pixels into target from batch using the derived
// state in opt. opt must already be valid (a prior OptimizeBatch call must
// have succeeded with matching target dimensions). No allocation occurs in
// the hot path; all scratch structures come from opt.
func RenderOptimized(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch) {
	if !opt.valid || !target.valid() {
		return
	}
	if !batch.Palette.Enabled() || batch.Palette.Size() == 0 {
		return
	}

	if opt.hasClear && !opt.useTileBuffer {
		clearWholeTarget(target, batch, opt)
	}

	if len(opt.renderTiles) == 0 && !opt.debugTiles && !opt.hasClear {
		return
	}

	rasterStart := profileNow(batch.Profile)

	var pixelsTouched uint64
	if len(opt.renderTiles) > 0 {
		jobs := make([]func(), len(opt.renderTiles))
		for i, tileIdx := range opt.renderTiles {
			tileIdx := tileIdx
			jobs[i] = func() {
				n := renderTile(target, batch, opt, tileIdx)
				if batch.Profile != nil {
					atomic.AddUint64(&pixelsTouched, n)
				}
			}
		}
		rasterPool().ExecuteAll(jobs)
	}

	if opt.debugTiles {
		drawDebugTiles(target, opt)
	}

	if batch.Profile != nil {
		batch.Profile.TilesRendered += uint64(len(opt.renderTiles))
		batch.Profile.PixelsTouched += pixelsTouched
		batch.Profile.RasterNs += time.Since(rasterStart).Nanoseconds()
	}
}

// Render is the convenience entry point: optimize and render using a local,
// non-cached OptimizedBatch.
func Render(target *RenderTarget, batch *RenderBatch) {
	var opt OptimizedBatch
	OptimizeBatch(target, batch, &opt)
	if !opt.Valid() {
		return
	}
	RenderOptimized(target, batch, &opt)
}

func tileRect(opt *OptimizedBatch, tileIdx int32, targetW, targetH int) (x0, y0, x1, y1 int32) {
	tx := tileIdx % opt.tilesX
	ty := tileIdx / opt.tilesX
	x0 = tx * opt.tileSize
	y0 = ty * opt.tileSize
	x1 = minI32(x0+opt.tileSize, int32(targetW))
	y1 = minI32(y0+opt.tileSize, int32(targetH))
	return
}

func renderTile(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, tileIdx int32) uint64 {
	tx0, ty0, tx1, ty1 := tileRect(opt, tileIdx, target.Width(), target.Height())
	if tx0 >= tx1 || ty0 >= ty1 {
		return 0
	}
	pixels := uint64(tx1-tx0) * uint64(ty1-ty0)

	if opt.useTileBuffer {
		fillRect(target, tx0, ty0, tx1, ty1, clearPixelAt(batch, opt, tx0, ty0))
	}

	if opt.useTileStream {
		lo, hi := opt.mergedOffsets[tileIdx], opt.mergedOffsets[tileIdx+1]
		tileOriginX := (tileIdx % opt.tilesX) * opt.tileSize
		tileOriginY := (tileIdx / opt.tilesX) * opt.tileSize
		for _, tc := range opt.mergedCommands[lo:hi] {
			rx0 := tileOriginX + int32(tc.X)
			ry0 := tileOriginY + int32(tc.Y)
			rx1 := rx0 + int32(tc.WMinus1) + 1
			ry1 := ry0 + int32(tc.HMinus1) + 1
			rasterizeCommand(target, batch, opt, tc.Type, tc.StoreIndex, tc.Order, PrimitiveBounds{rx0, ry0, rx1, ry1})
		}
		return pixels
	}

	lo, hi := opt.tileOffsets[tileIdx], opt.tileOffsets[tileIdx+1]
	for _, ref := range opt.tileRefs[lo:hi] {
		if opt.tileRefsAreCircleIndices {
			rasterizeCircleClipped(target, batch, opt, ref, tx0, ty0, tx1, ty1)
			continue
		}
		ac := opt.analyzed[ref]
		rect := ac.Bounds.intersect(PrimitiveBounds{tx0, ty0, tx1, ty1})
		if rect.empty() {
			continue
		}
		rasterizeCommand(target, batch, opt, ac.Type, ac.Index, ac.Order, rect)
	}
	return pixels
}

func rasterizeCommand(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, t CommandType, storeIndex, order uint32, rect PrimitiveBounds) {
	switch t {
	case CommandRect:
		rasterizeRect(target, batch, opt, storeIndex, rect)
	case CommandCircle:
		rasterizeCircle(target, batch, storeIndex, rect)
	case CommandPixel:
		rasterizePixel(target, batch, storeIndex)
	case CommandPixelA:
		rasterizePixelA(target, batch, storeIndex)
	case CommandLine:
		rasterizeLine(target, batch, storeIndex, rect)
	case CommandImage:
		rasterizeImage(target, batch, storeIndex, rect)
	case CommandText:
		rasterizeText(target, batch, opt, storeIndex, rect)
	}
}
