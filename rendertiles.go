package raster2d

import "sort"

// buildRenderTiles constructs the list of tiles that actually need work, per
// spec §4.3.9.
func buildRenderTiles(opt *OptimizedBatch, batch *RenderBatch) {
	tileCount := int(opt.tilesX * opt.tilesY)

	if opt.hasClear {
		opt.renderTiles = make([]int32, tileCount)
		for i := range opt.renderTiles {
			opt.renderTiles[i] = int32(i)
		}
		return
	}

	var tiles []int32
	var loads []uint32
	if opt.useTileStream {
		for t := 0; t < tileCount; t++ {
			if opt.mergedOffsets[t] != opt.mergedOffsets[t+1] {
				tiles = append(tiles, int32(t))
				loads = append(loads, opt.mergedOffsets[t+1]-opt.mergedOffsets[t])
			}
		}
	} else {
		for t := 0; t < tileCount; t++ {
			if opt.tileOffsets[t] != opt.tileOffsets[t+1] {
				tiles = append(tiles, int32(t))
				loads = append(loads, opt.tileOffsets[t+1]-opt.tileOffsets[t])
			}
		}
	}

	if opt.circleOnlyDraw && len(tiles) > 0 && len(tiles) <= circleOnlyFastPathMinTiles {
		idx := make([]int, len(tiles))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return loads[idx[a]] > loads[idx[b]] })
		sorted := make([]int32, len(tiles))
		for i, j := range idx {
			sorted[i] = tiles[j]
		}
		tiles = sorted
	}

	opt.renderTiles = tiles
}
