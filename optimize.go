package raster2d

// InvalidOffset is the sentinel stored in a cache-offset array entry when
// that entry has no cached data (e.g. a rect with a gradient has no edge
// LUT offset).
const InvalidOffset = 0xFFFFFFFF

const defaultTileSize = 32
const circleOnlyFastPathMinTiles = 256
const parallelBinningCircleThreshold = 50000

// CommandTypeCounts tallies commands by type, used for tile-size
// auto-selection (circle-majority detection) and the circle-only fast-path
// gate.
type CommandTypeCounts struct {
	Rect, Circle, Pixel, PixelA, Line, Image, Text, Clear, ClearPattern, DebugTiles uint32
}

// DrawCount returns the number of participating draw commands (everything
// except Clear/ClearPattern/DebugTiles).
func (c CommandTypeCounts) DrawCount() uint32 {
	return c.Rect + c.Circle + c.Pixel + c.PixelA + c.Line + c.Image + c.Text
}

func countCommands(batch *RenderBatch) CommandTypeCounts {
	var c CommandTypeCounts
	for _, cmd := range batch.Commands {
		switch cmd.Type {
		case CommandRect:
			c.Rect++
		case CommandCircle:
			c.Circle++
		case CommandPixel:
			c.Pixel++
		case CommandPixelA:
			c.PixelA++
		case CommandLine:
			c.Line++
		case CommandImage:
			c.Image++
		case CommandText:
			c.Text++
		case CommandClear:
			c.Clear++
		case CommandClearPattern:
			c.ClearPattern++
		case CommandDebugTiles:
			c.DebugTiles++
		}
	}
	return c
}

// OptimizedBatch is the derived, cacheable representation consumed by
// RenderOptimized. It is owned by the caller and reused across frames when
// the reuse gate (§4.3.1) is satisfied.
type OptimizedBatch struct {
	valid          bool
	sourceRevision uint64

	targetWidth, targetHeight int

	tileSize  int32
	tilePow2  bool
	tileShift int32
	tilesX    int32
	tilesY    int32

	commandCounts         CommandTypeCounts
	commandCountsRevision uint64
	commandCountsValid    bool

	analyzed []AnalyzedCommand

	hasClear          bool
	clearColor        Color
	hasClearPattern   bool
	clearPatternIndex uint32
	useTileBuffer     bool

	debugTiles          bool
	debugTilesLineWidth uint8
	debugTilesDirtyOnly bool

	// Non-stream binning outputs.
	tileOffsets              []uint32
	tileRefs                 []uint32
	tileRefsAreCircleIndices bool
	circleRadiusUniform      bool
	circleRadiusValue        uint16
	circleOnlyDraw           bool

	renderTiles []int32

	// Tile-stream outputs (mutually exclusive with non-stream binning when
	// active).
	useTileStream  bool
	mergedCommands []TileCommand
	mergedOffsets  []uint32

	// Per-rect caches, indexed by rect store index.
	rectColorR, rectColorG, rectColorB, rectColorA []uint8
	rectBaseAlpha                                  []uint8
	rectEdgeOffset                                 []uint32
	rectEdgePool                                   []uint8
	rectHasGradient                                []bool
	rectGradDirX, rectGradDirY                     []float32
	rectGradMin, rectGradInvRange                  []float32

	// Per-text caches, indexed by text store index.
	textPmOffset []uint32
	textPmPool   []uint8
}

// Valid reports whether the optimized batch is ready for RenderOptimized.
func (o *OptimizedBatch) Valid() bool { return o.valid }

// OptimizeBatch fills opt from batch and target, per spec §4.3. On success
// opt.Valid() is true; on failure opt.Valid() is false and the caller should
// skip rendering.
func OptimizeBatch(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch) {
	if reuseOk(target, batch, opt) {
		return
	}

	opt.valid = false

	if !target.valid() {
		return
	}
	if !batch.Palette.Enabled() || batch.Palette.Size() == 0 {
		return
	}

	if batch.UseCommandRevision && opt.commandCountsValid && opt.commandCountsRevision == batch.CommandRevision {
		// reuse cached counts
	} else {
		opt.commandCounts = countCommands(batch)
		opt.commandCountsRevision = batch.CommandRevision
		opt.commandCountsValid = true
	}
	counts := opt.commandCounts

	if counts.DrawCount() == 0 && counts.Clear == 0 && counts.ClearPattern == 0 && counts.DebugTiles == 0 {
		return
	}

	profile := batch.Profile

	gridStart := profileNow(profile)
	resolveTileSize(opt, batch, counts)
	opt.tilesX, opt.tilesY = tileGrid(target.Width(), target.Height(), opt.tileSize)
	gridMid := profileNow(profile)
	if profile != nil {
		profile.OptTileGridNs += gridMid.Sub(gridStart).Nanoseconds()
	}

	if batch.StrictValidation {
		if !validateStrict(batch, opt.tilesX, opt.tilesY, batch.ValidationReport) {
			if batch.ValidationReport != nil {
				Logger().Warn("raster2d: strict validation failed", "issues", len(batch.ValidationReport.Issues))
			}
			return
		}
	}

	clearStart := profileNow(profile)
	resolveClear(opt, batch)
	resolveDebugTiles(opt, batch)
	scanStart := profileNow(profile)
	if profile != nil {
		profile.OptTileGridNs += scanStart.Sub(clearStart).Nanoseconds()
	}

	opt.analyzed = analyzeCommands(batch, analysisParams{
		targetW:         target.Width(),
		targetH:         target.Height(),
		tileSize:        opt.tileSize,
		tileShift:       opt.tileShift,
		tilePow2:        opt.tilePow2,
		circleBoundsPad: int32(batch.CircleBoundsPad),
	})
	tileStreamStart := profileNow(profile)
	if profile != nil {
		profile.OptScanNs += tileStreamStart.Sub(scanStart).Nanoseconds()
	}

	resolveTileStream(opt, batch, target, counts)
	renderTilesStart := profileNow(profile)
	if profile != nil {
		profile.OptTileStreamNs += renderTilesStart.Sub(tileStreamStart).Nanoseconds()
	}

	buildRenderTiles(opt, batch)
	if profile != nil {
		profile.OptRenderTilesNs += profileNow(profile).Sub(renderTilesStart).Nanoseconds()
	}

	buildRectTextCaches(opt, batch)

	opt.valid = true
	opt.sourceRevision = batch.Revision
	opt.targetWidth = target.Width()
	opt.targetHeight = target.Height()
}

func reuseOk(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch) bool {
	if !batch.ReuseOptimized || batch.StrictValidation || !opt.valid {
		return false
	}
	if opt.sourceRevision != batch.Revision {
		return false
	}
	if opt.targetWidth != target.Width() || opt.targetHeight != target.Height() {
		return false
	}
	wantTileSize := batch.TileSize
	if wantTileSize == 0 {
		wantTileSize = defaultTileSize
	}
	if opt.tileSize != int32(wantTileSize) {
		// tile size may have auto-upgraded to 64 for circle-majority batches;
		// only an exact requested-size mismatch invalidates the cache.
		if wantTileSize != defaultTileSize || opt.tileSize != 64 {
			return false
		}
	}
	return true
}

func resolveTileSize(opt *OptimizedBatch, batch *RenderBatch, counts CommandTypeCounts) {
	size := int32(batch.TileSize)
	if size == 0 {
		size = defaultTileSize
	}
	if batch.AutoTileStream && size == defaultTileSize {
		draws := counts.DrawCount()
		if draws > 0 && counts.Circle*2 > draws {
			size = 64
			Logger().Debug("raster2d: auto-upgraded tile size for circle-majority batch", "tileSize", size)
		}
	}
	opt.tileSize = size
	opt.tilePow2 = size&(size-1) == 0
	if opt.tilePow2 {
		shift := int32(0)
		for v := size; v > 1; v >>= 1 {
			shift++
		}
		opt.tileShift = shift
	}
}

func tileGrid(targetW, targetH int, tileSize int32) (tilesX, tilesY int32) {
	tilesX = (int32(targetW) + tileSize - 1) / tileSize
	tilesY = (int32(targetH) + tileSize - 1) / tileSize
	return
}

func resolveClear(opt *OptimizedBatch, batch *RenderBatch) {
	opt.hasClear = false
	opt.hasClearPattern = false
	opt.useTileBuffer = false

	if len(batch.Commands) > 0 && batch.Commands[0].Type == CommandClear {
		// Fast path: a single leading Clear with no other Clear/ClearPattern
		// anywhere else in the command list.
		onlyOne := true
		for _, cmd := range batch.Commands[1:] {
			if cmd.Type == CommandClear || cmd.Type == CommandClearPattern {
				onlyOne = false
				break
			}
		}
		if onlyOne {
			opt.hasClear = true
			opt.clearColor = batch.Palette.Color(batch.Clears.ColorIndex[batch.Commands[0].Index])
			return
		}
	}

	for _, cmd := range batch.Commands {
		switch cmd.Type {
		case CommandClear:
			opt.hasClear = true
			opt.hasClearPattern = false
			opt.clearColor = batch.Palette.Color(batch.Clears.ColorIndex[cmd.Index])
		case CommandClearPattern:
			w := batch.ClearPatterns.Width[cmd.Index]
			h := batch.ClearPatterns.Height[cmd.Index]
			if w > 0 && h > 0 && int32(w) <= opt.tileSize && int32(h) <= opt.tileSize {
				off := batch.ClearPatterns.DataOffset[cmd.Index]
				if int(off)+int(w)*int(h)*4 <= len(batch.ClearPatterns.Data) {
					opt.hasClear = true
					opt.hasClearPattern = true
					opt.clearPatternIndex = cmd.Index
				}
			}
		}
	}
}

func resolveDebugTiles(opt *OptimizedBatch, batch *RenderBatch) {
	opt.debugTiles = false
	for _, cmd := range batch.Commands {
		if cmd.Type != CommandDebugTiles {
			continue
		}
		opt.debugTiles = true
		lw := batch.DebugTilesCmds.LineWidth[cmd.Index]
		if lw == 0 {
			lw = 1
		}
		opt.debugTilesLineWidth = lw
		opt.debugTilesDirtyOnly = batch.DebugTilesCmds.Flags[cmd.Index]&DebugTilesFlagDirtyOnly != 0
	}
}
