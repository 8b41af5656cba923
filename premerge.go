package raster2d

import "sort"

// premergeSuppliedStream collapses a caller-supplied three-level tile stream
// (per-tile, per-macro-tile, global) into a single per-tile TileCommand
// list, per spec §4.3.7. Every global command is read by indexing
// GlobalCommands[i] and the paired GlobalBounds[i] together in the same loop
// iteration, so the bounds lookup can never drift from the command it
// describes.
func premergeSuppliedStream(ts *TileStream, tilesX, tilesY, tileSize int32) ([]TileCommand, []uint32, bool) {
	tileCount := int(tilesX * tilesY)
	if len(ts.TileOffsets) != tileCount+1 {
		return nil, nil, false
	}

	merged := make([]TileCommand, 0, len(ts.TileCommands))
	offsets := make([]uint32, tileCount+1)

	for t := 0; t < tileCount; t++ {
		tx := int32(t) % tilesX
		ty := int32(t) / tilesX
		tileX0 := tx * tileSize
		tileY0 := ty * tileSize

		var bucket []TileCommand

		// Per-tile entries: already localized, pass through unchanged.
		if int(ts.TileOffsets[t]) <= len(ts.TileCommands) && int(ts.TileOffsets[t+1]) <= len(ts.TileCommands) {
			for _, tc := range ts.TileCommands[ts.TileOffsets[t]:ts.TileOffsets[t+1]] {
				bucket = append(bucket, tc)
			}
		}

		// Per-macro-tile entries: localize to this tile's macro-relative
		// offset, then intersect with the tile rect.
		macroTilesX := (tilesX + MacroFactor - 1) / MacroFactor
		macroTX := tx / MacroFactor
		macroTY := ty / MacroFactor
		macroID := int(macroTY*macroTilesX + macroTX)
		if macroID+1 < len(ts.MacroOffsets) {
			dx := (tx % MacroFactor) * tileSize
			dy := (ty % MacroFactor) * tileSize
			for _, mc := range ts.MacroCommands[ts.MacroOffsets[macroID]:ts.MacroOffsets[macroID+1]] {
				lx0 := mc.X - dx
				ly0 := mc.Y - dy
				lx1 := lx0 + mc.W
				ly1 := ly0 + mc.H
				lx0, ly0 = maxI32(lx0, 0), maxI32(ly0, 0)
				lx1, ly1 = minI32(lx1, tileSize), minI32(ly1, tileSize)
				if lx0 >= lx1 || ly0 >= ly1 {
					continue
				}
				w, h := lx1-lx0, ly1-ly0
				if w > 256 || h > 256 {
					continue
				}
				bucket = append(bucket, TileCommand{
					Type: mc.Type, StoreIndex: mc.StoreIndex, Order: mc.Order,
					X: uint8(lx0), Y: uint8(ly0), WMinus1: uint8(w - 1), HMinus1: uint8(h - 1),
				})
			}
		}

		// Global entries: apply to every tile; intersect against the tile's
		// target-space rect.
		tgtX0, tgtY0 := tileX0, tileY0
		tgtX1, tgtY1 := tileX0+tileSize, tileY0+tileSize
		for i, gc := range ts.GlobalCommands {
			gb := ts.GlobalBounds[i]
			ix0 := maxI32(gb.X0, tgtX0)
			iy0 := maxI32(gb.Y0, tgtY0)
			ix1 := minI32(gb.X1, tgtX1)
			iy1 := minI32(gb.Y1, tgtY1)
			if ix0 >= ix1 || iy0 >= iy1 {
				continue
			}
			w, h := ix1-ix0, iy1-iy0
			if w > 256 || h > 256 {
				continue
			}
			bucket = append(bucket, TileCommand{
				Type: gc.Type, StoreIndex: gc.StoreIndex, Order: gc.Order,
				X: uint8(ix0 - tileX0), Y: uint8(iy0 - tileY0),
				WMinus1: uint8(w - 1), HMinus1: uint8(h - 1),
			})
		}

		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Order < bucket[j].Order })

		offsets[t] = uint32(len(merged))
		merged = append(merged, bucket...)
	}
	offsets[tileCount] = uint32(len(merged))

	return merged, offsets, true
}

// synthesizeTileStream builds a premerged tile stream directly from
// non-stream binning output (tileOffsets/tileRefs) plus the analyzed command
// bounds, per spec §4.3.6's third bullet. Used when autoTileStream is set
// and the draw set is not circle-majority.
func synthesizeTileStream(opt *OptimizedBatch, batch *RenderBatch) ([]TileCommand, []uint32) {
	tileCount := int(opt.tilesX * opt.tilesY)
	merged := make([]TileCommand, 0, len(opt.tileRefs))
	offsets := make([]uint32, tileCount+1)

	for t := 0; t < tileCount; t++ {
		tx := int32(t) % opt.tilesX
		ty := int32(t) / opt.tilesX
		tileX0 := tx * opt.tileSize
		tileY0 := ty * opt.tileSize
		tileX1 := tileX0 + opt.tileSize
		tileY1 := tileY0 + opt.tileSize

		offsets[t] = uint32(len(merged))
		for _, ref := range opt.tileRefs[opt.tileOffsets[t]:opt.tileOffsets[t+1]] {
			ac := opt.analyzed[ref]
			ix0 := maxI32(ac.Bounds.X0, tileX0)
			iy0 := maxI32(ac.Bounds.Y0, tileY0)
			ix1 := minI32(ac.Bounds.X1, tileX1)
			iy1 := minI32(ac.Bounds.Y1, tileY1)
			if ix0 >= ix1 || iy0 >= iy1 {
				continue
			}
			w, h := ix1-ix0, iy1-iy0
			if w > 256 || h > 256 {
				continue
			}
			merged = append(merged, TileCommand{
				Type: ac.Type, StoreIndex: ac.Index, Order: ac.Order,
				X: uint8(ix0 - tileX0), Y: uint8(iy0 - tileY0),
				WMinus1: uint8(w - 1), HMinus1: uint8(h - 1),
			})
		}
	}
	offsets[tileCount] = uint32(len(merged))
	return merged, offsets
}
