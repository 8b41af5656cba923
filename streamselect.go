package raster2d

import "time"

// resolveTileStream implements the three mutually exclusive outcomes of
// spec §4.3.6.
func resolveTileStream(opt *OptimizedBatch, batch *RenderBatch, target *RenderTarget, counts CommandTypeCounts) {
	ts := &batch.TileStream

	if ts.Enabled && ts.PreMerged {
		tileCount := int(opt.tilesX * opt.tilesY)
		if len(ts.TileOffsets) == tileCount+1 && opt.tileSize <= 256 {
			opt.useTileStream = true
			opt.mergedCommands = ts.TileCommands
			opt.mergedOffsets = ts.TileOffsets
			return
		}
		// Invariant violation outside strict mode: fall back to binning.
		Logger().Warn("raster2d: supplied pre-merged tile stream failed invariant checks, falling back to binning",
			"tileOffsetsLen", len(ts.TileOffsets), "wantLen", tileCount+1, "tileSize", opt.tileSize)
	}

	if ts.Enabled && !ts.PreMerged {
		premergeStart := profileNow(batch.Profile)
		merged, offsets, ok := premergeSuppliedStream(ts, opt.tilesX, opt.tilesY, opt.tileSize)
		if batch.Profile != nil {
			batch.Profile.PremergeNs += time.Since(premergeStart).Nanoseconds()
		}
		if ok {
			opt.useTileStream = true
			opt.mergedCommands = merged
			opt.mergedOffsets = offsets
			return
		}
	}

	binCommands(opt, batch, counts)

	circleMajority := counts.Circle > 0 && counts.DrawCount() > 0 && counts.Circle*2 > counts.DrawCount()
	if batch.AutoTileStream && !circleMajority && !opt.circleOnlyDraw {
		premergeStart := profileNow(batch.Profile)
		merged, offsets := synthesizeTileStream(opt, batch)
		if batch.Profile != nil {
			batch.Profile.PremergeNs += time.Since(premergeStart).Nanoseconds()
		}
		opt.useTileStream = true
		opt.mergedCommands = merged
		opt.mergedOffsets = offsets
		return
	}

	opt.useTileStream = false

	// A circle-only draw set with an active clear, under assumeFrontToBack,
	// forces tile-buffer-local clearing even though the non-pattern path
	// normally clears globally: this lets the rasterizer skip re-touching
	// tiles with no circles.
	if opt.hasClear && opt.circleOnlyDraw && batch.AssumeFrontToBack {
		opt.useTileBuffer = true
	}
}
