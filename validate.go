package raster2d

import "fmt"

// RenderValidationCode classifies a strict-validation failure. Each violated
// invariant gets its own distinct code rather than a single catch-all, so
// callers can branch on what specifically went wrong.
type RenderValidationCode uint8

const (
	CodeColumnLengthMismatch RenderValidationCode = iota
	CodePaletteIndexOutOfRange
	CodeRunIndexOutOfRange
	CodeBitmapIndexOutOfRange
	CodeGlyphRangeOutOfRange
	CodeImageIndexOutOfRange
	CodeTileStreamOffsetMismatch
	CodeTileSizeTooLarge
	CodeTileCommandIndexOutOfRange
)

func (c RenderValidationCode) String() string {
	switch c {
	case CodeColumnLengthMismatch:
		return "ColumnLengthMismatch"
	case CodePaletteIndexOutOfRange:
		return "PaletteIndexOutOfRange"
	case CodeRunIndexOutOfRange:
		return "RunIndexOutOfRange"
	case CodeBitmapIndexOutOfRange:
		return "BitmapIndexOutOfRange"
	case CodeGlyphRangeOutOfRange:
		return "GlyphRangeOutOfRange"
	case CodeImageIndexOutOfRange:
		return "ImageIndexOutOfRange"
	case CodeTileStreamOffsetMismatch:
		return "TileStreamOffsetMismatch"
	case CodeTileSizeTooLarge:
		return "TileSizeTooLarge"
	case CodeTileCommandIndexOutOfRange:
		return "TileCommandIndexOutOfRange"
	default:
		return "Unknown"
	}
}

// RenderValidationIssue records one strict-validation failure.
type RenderValidationIssue struct {
	Code   RenderValidationCode
	Detail string
}

// RenderValidationReport collects issues from a strict-validation pass. A
// caller supplies a pointer via RenderBatch.ValidationReport to receive it;
// nil means "don't bother collecting."
type RenderValidationReport struct {
	Issues []RenderValidationIssue
}

func (r *RenderValidationReport) add(code RenderValidationCode, format string, args ...any) {
	if r == nil {
		return
	}
	r.Issues = append(r.Issues, RenderValidationIssue{Code: code, Detail: fmt.Sprintf(format, args...)})
}

func (r *RenderValidationReport) reset() {
	if r == nil {
		return
	}
	r.Issues = r.Issues[:0]
}

// validateStrict checks column lengths of the rect, circle, pixel, pixelA,
// line, image-draw, text, run and glyph stores, palette/run/bitmap/image
// indices, run glyph ranges, and the tile stream, appending issues to
// report. The bitmap, atlas, clear, clear-pattern and debug-tiles stores
// are not checked. tilesX/tilesY are the tile grid dimensions for the target/tile-size
// pairing the batch will be optimized against; callers resolve the tile grid
// before calling this so the tile-stream offset-length invariant can be
// checked. It returns true if the batch is valid (no issues found).
func validateStrict(batch *RenderBatch, tilesX, tilesY int32, report *RenderValidationReport) bool {
	report.reset()

	checkColumns(report, "Rect",
		batch.Rects.Len(),
		len(batch.Rects.X0), len(batch.Rects.Y0), len(batch.Rects.X1), len(batch.Rects.Y1),
		len(batch.Rects.ColorIndex), len(batch.Rects.RadiusQ8_8), len(batch.Rects.RotationQ8_8),
		len(batch.Rects.ZQ8_8), len(batch.Rects.Opacity), len(batch.Rects.Flags),
		len(batch.Rects.GradientColor1Index), len(batch.Rects.GradientDirX), len(batch.Rects.GradientDirY),
		len(batch.Rects.ClipX0), len(batch.Rects.ClipY0), len(batch.Rects.ClipX1), len(batch.Rects.ClipY1),
	)
	checkColumns(report, "Circle",
		batch.Circles.Len(),
		len(batch.Circles.CenterX), len(batch.Circles.CenterY), len(batch.Circles.Radius), len(batch.Circles.ColorIndex),
	)
	checkColumns(report, "Pixel",
		batch.Pixels.Len(),
		len(batch.Pixels.X), len(batch.Pixels.Y), len(batch.Pixels.ColorIndex),
	)
	checkColumns(report, "PixelA",
		batch.PixelAs.Len(),
		len(batch.PixelAs.X), len(batch.PixelAs.Y), len(batch.PixelAs.ColorIndex), len(batch.PixelAs.Alpha),
	)
	checkColumns(report, "Line",
		batch.Lines.Len(),
		len(batch.Lines.X0), len(batch.Lines.Y0), len(batch.Lines.X1), len(batch.Lines.Y1),
		len(batch.Lines.WidthQ8_8), len(batch.Lines.ColorIndex), len(batch.Lines.Opacity),
	)
	checkColumns(report, "Image",
		batch.Images.Len(),
		len(batch.Images.X0), len(batch.Images.Y0), len(batch.Images.X1), len(batch.Images.Y1),
		len(batch.Images.SrcX0), len(batch.Images.SrcY0), len(batch.Images.SrcX1), len(batch.Images.SrcY1),
		len(batch.Images.ImageIndex), len(batch.Images.TintColorIndex), len(batch.Images.Opacity), len(batch.Images.Flags),
	)
	checkColumns(report, "Text",
		batch.Texts.Len(),
		len(batch.Texts.X), len(batch.Texts.Y), len(batch.Texts.Width), len(batch.Texts.Height),
		len(batch.Texts.ZQ8_8), len(batch.Texts.Opacity), len(batch.Texts.ColorIndex), len(batch.Texts.Flags), len(batch.Texts.RunIndex),
	)
	checkColumns(report, "Run",
		batch.Runs.Len(),
		len(batch.Runs.GlyphStart), len(batch.Runs.GlyphCount), len(batch.Runs.BaselineQ8_8), len(batch.Runs.ScaleQ8_8),
	)
	checkColumns(report, "Glyph",
		batch.Glyphs.Len(),
		len(batch.Glyphs.X), len(batch.Glyphs.Y), len(batch.Glyphs.BitmapIndex),
	)

	if batch.Palette.Enabled() {
		n := batch.Palette.Size()
		checkIndex8(report, CodePaletteIndexOutOfRange, "Rect.ColorIndex", batch.Rects.ColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Rect.GradientColor1Index", batch.Rects.GradientColor1Index, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Circle.ColorIndex", batch.Circles.ColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Pixel.ColorIndex", batch.Pixels.ColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "PixelA.ColorIndex", batch.PixelAs.ColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Line.ColorIndex", batch.Lines.ColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Image.TintColorIndex", batch.Images.TintColorIndex, n)
		checkIndex8(report, CodePaletteIndexOutOfRange, "Text.ColorIndex", batch.Texts.ColorIndex, n)
	}

	runCount := batch.Runs.Len()
	checkIndex32(report, CodeRunIndexOutOfRange, "Text.RunIndex", batch.Texts.RunIndex, runCount)

	bitmapCount := batch.Bitmaps.Len()
	checkIndex32(report, CodeBitmapIndexOutOfRange, "Glyph.BitmapIndex", batch.Glyphs.BitmapIndex, bitmapCount)

	imageCount := batch.Images.AssetCount()
	checkIndex32(report, CodeImageIndexOutOfRange, "Image.ImageIndex", batch.Images.ImageIndex, imageCount)

	glyphCount := uint32(batch.Glyphs.Len())
	for i := 0; i < batch.Runs.Len(); i++ {
		end := batch.Runs.GlyphStart[i] + batch.Runs.GlyphCount[i]
		if end > glyphCount {
			report.add(CodeGlyphRangeOutOfRange, "run %d: glyphStart+glyphCount=%d exceeds glyph pool size %d", i, end, glyphCount)
		}
	}

	validateTileStream(&batch.TileStream, batch, tilesX, tilesY, report)

	return len(report.Issues) == 0
}

func checkColumns(report *RenderValidationReport, name string, want int, lens ...int) {
	for _, l := range lens {
		if l != want {
			report.add(CodeColumnLengthMismatch, "%s store: column length %d != expected %d", name, l, want)
			return
		}
	}
}

func checkIndex8(report *RenderValidationReport, code RenderValidationCode, name string, idx []uint8, limit int) {
	for i, v := range idx {
		if int(v) >= limit {
			report.add(code, "%s[%d]=%d out of range [0,%d)", name, i, v, limit)
		}
	}
}

func checkIndex32(report *RenderValidationReport, code RenderValidationCode, name string, idx []uint32, limit int) {
	for i, v := range idx {
		if int(v) >= limit {
			report.add(code, "%s[%d]=%d out of range [0,%d)", name, i, v, limit)
		}
	}
}

func validateTileStream(ts *TileStream, batch *RenderBatch, tilesX, tilesY int32, report *RenderValidationReport) {
	if !ts.Enabled {
		return
	}
	if batch.TileSize > 256 {
		report.add(CodeTileSizeTooLarge, "tile size %d exceeds 256, required for tile-stream use", batch.TileSize)
	}
	tileCount := int(tilesX * tilesY)
	macroTilesX := (tilesX + MacroFactor - 1) / MacroFactor
	macroTilesY := (tilesY + MacroFactor - 1) / MacroFactor
	macroTileCount := int(macroTilesX * macroTilesY)

	if ts.PreMerged {
		if len(ts.TileOffsets) != tileCount+1 {
			report.add(CodeTileStreamOffsetMismatch, "len(tileOffsets)=%d != tileCount+1=%d", len(ts.TileOffsets), tileCount+1)
		} else if last := ts.TileOffsets[tileCount]; int(last) != len(ts.TileCommands) {
			report.add(CodeTileStreamOffsetMismatch, "tileOffsets[last]=%d != len(tileCommands)=%d", last, len(ts.TileCommands))
		}
		for i, tc := range ts.TileCommands {
			if !storeIndexInRange(batch, tc.Type, tc.StoreIndex) {
				report.add(CodeTileCommandIndexOutOfRange, "tileCommands[%d]: %s index %d out of range", i, tc.Type, tc.StoreIndex)
			}
		}
		return
	}
	if len(ts.TileOffsets) != tileCount+1 {
		report.add(CodeTileStreamOffsetMismatch, "len(tileOffsets)=%d != tileCount+1=%d", len(ts.TileOffsets), tileCount+1)
	} else if last := ts.TileOffsets[tileCount]; int(last) != len(ts.TileCommands) {
		report.add(CodeTileStreamOffsetMismatch, "tileOffsets[last]=%d != len(tileCommands)=%d", last, len(ts.TileCommands))
	}
	if len(ts.MacroOffsets) != macroTileCount+1 {
		report.add(CodeTileStreamOffsetMismatch, "len(macroOffsets)=%d != macroTileCount+1=%d", len(ts.MacroOffsets), macroTileCount+1)
	} else if last := ts.MacroOffsets[macroTileCount]; int(last) != len(ts.MacroCommands) {
		report.add(CodeTileStreamOffsetMismatch, "macroOffsets[last]=%d != len(macroCommands)=%d", last, len(ts.MacroCommands))
	}
}

func storeIndexInRange(batch *RenderBatch, t CommandType, idx uint32) bool {
	switch t {
	case CommandRect:
		return int(idx) < batch.Rects.Len()
	case CommandCircle:
		return int(idx) < batch.Circles.Len()
	case CommandPixel:
		return int(idx) < batch.Pixels.Len()
	case CommandPixelA:
		return int(idx) < batch.PixelAs.Len()
	case CommandLine:
		return int(idx) < batch.Lines.Len()
	case CommandImage:
		return int(idx) < batch.Images.Len()
	case CommandText:
		return int(idx) < batch.Texts.Len()
	default:
		return true
	}
}
