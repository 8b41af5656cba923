package raster2d

// clearWholeTarget fills the entire target with the resolved clear color or
// pattern, executed once in the calling thread before any tile worker
// starts (spec §5: "the full-buffer clear executes before any tile worker").
func clearWholeTarget(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch) {
	fillRectPattern(target, batch, opt, 0, 0, int32(target.Width()), int32(target.Height()))
}

// fillRect fills [x0,x1)x[y0,y1) with a single solid premultiplied color.
func fillRect(target *RenderTarget, x0, y0, x1, y1 int32, c Color) {
	buf := target.Bytes()
	stride := target.Stride()
	pr, pg, pb := premultiplyChannel(c.R, c.A), premultiplyChannel(c.G, c.A), premultiplyChannel(c.B, c.A)
	for y := y0; y < y1; y++ {
		row := buf[int(y)*stride:]
		for x := x0; x < x1; x++ {
			o := int(x) * 4
			row[o], row[o+1], row[o+2], row[o+3] = pr, pg, pb, c.A
		}
	}
}

// fillRectPattern fills [x0,x1)x[y0,y1) with either the resolved solid clear
// color or a tiled clear pattern, repeating the pattern's width/height
// across the region.
func fillRectPattern(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, x0, y0, x1, y1 int32) {
	if !opt.hasClearPattern {
		fillRect(target, x0, y0, x1, y1, opt.clearColor)
		return
	}
	w := int32(batch.ClearPatterns.Width[opt.clearPatternIndex])
	h := int32(batch.ClearPatterns.Height[opt.clearPatternIndex])
	off := batch.ClearPatterns.DataOffset[opt.clearPatternIndex]
	data := batch.ClearPatterns.Data
	buf := target.Bytes()
	stride := target.Stride()
	for y := y0; y < y1; y++ {
		py := (y - y0) % h
		row := buf[int(y)*stride:]
		for x := x0; x < x1; x++ {
			px := (x - x0) % w
			srcOff := int(off) + int(py*w+px)*4
			r, g, b, a := data[srcOff], data[srcOff+1], data[srcOff+2], data[srcOff+3]
			o := int(x) * 4
			row[o] = premultiplyChannel(r, a)
			row[o+1] = premultiplyChannel(g, a)
			row[o+2] = premultiplyChannel(b, a)
			row[o+3] = a
		}
	}
}

// clearPixelAt returns the clear color that applies at (x,y), sampling the
// clear pattern if one is active.
func clearPixelAt(batch *RenderBatch, opt *OptimizedBatch, x0, y0 int32) Color {
	if !opt.hasClearPattern {
		return opt.clearColor
	}
	w := int32(batch.ClearPatterns.Width[opt.clearPatternIndex])
	h := int32(batch.ClearPatterns.Height[opt.clearPatternIndex])
	off := batch.ClearPatterns.DataOffset[opt.clearPatternIndex]
	data := batch.ClearPatterns.Data
	px, py := x0%w, y0%h
	srcOff := int(off) + int(py*w+px)*4
	return Color{R: data[srcOff], G: data[srcOff+1], B: data[srcOff+2], A: data[srcOff+3]}
}

// drawDebugTiles draws the tile-grid outline in a single post-pass. When
// DirtyOnly is set and hasClear is true, every tile is considered dirty
// (the whole target was just cleared), so all tiles are outlined.
func drawDebugTiles(target *RenderTarget, opt *OptimizedBatch) {
	lw := int32(opt.debugTilesLineWidth)
	if lw < 1 {
		lw = 1
	}

	// renderTiles already holds exactly the dirty set, unless a full clear
	// just ran (every tile is dirty then) or DirtyOnly isn't set at all; in
	// both of those cases every tile gets outlined.
	tiles := opt.renderTiles
	if !opt.debugTilesDirtyOnly || opt.hasClear {
		tiles = make([]int32, opt.tilesX*opt.tilesY)
		for i := range tiles {
			tiles[i] = int32(i)
		}
	}

	outline := Color{R: 255, G: 0, B: 255, A: 255}
	for _, t := range tiles {
		x0, y0, x1, y1 := tileRect(opt, t, target.Width(), target.Height())
		fillRect(target, x0, y0, x1, minI32(y0+lw, y1), outline)
		fillRect(target, x0, maxI32(y1-lw, y0), x1, y1, outline)
		fillRect(target, x0, y0, minI32(x0+lw, x1), y1, outline)
		fillRect(target, maxI32(x1-lw, x0), y0, x1, y1, outline)
	}
}
