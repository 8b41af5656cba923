package raster2d

import "testing"

func TestValidateStrictCatchesOutOfRangePaletteIndex(t *testing.T) {
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 0, Y0: 0, X1: 4, Y1: 4, ColorIndex: 0, Opacity: 255})
	batch.Rects.ColorIndex[0] = 5 // out of range, bypassing the builder

	var report RenderValidationReport
	if validateStrict(batch, 1, 1, &report) {
		t.Fatal("expected validateStrict to fail on an out-of-range palette index")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodePaletteIndexOutOfRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CodePaletteIndexOutOfRange issue, got %+v", report.Issues)
	}
}

func TestValidateStrictPassesCleanBatch(t *testing.T) {
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 0, Y0: 0, X1: 4, Y1: 4, ColorIndex: 0, Opacity: 255})

	var report RenderValidationReport
	if !validateStrict(batch, 1, 1, &report) {
		t.Fatalf("expected a clean batch to validate, got issues: %+v", report.Issues)
	}
}

func TestValidateTileStreamCatchesWrongOffsetsLength(t *testing.T) {
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 0, Y0: 0, X1: 4, Y1: 4, ColorIndex: 0, Opacity: 255})

	// 2x2 tile grid (tileCount=4) needs 5 offsets; supply only 4.
	batch.TileStream.Enabled = true
	batch.TileStream.PreMerged = true
	batch.TileStream.TileCommands = nil
	batch.TileStream.TileOffsets = []uint32{0, 0, 0, 0}

	var report RenderValidationReport
	if validateStrict(batch, 2, 2, &report) {
		t.Fatal("expected validateStrict to fail on a short tileOffsets array")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodeTileStreamOffsetMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CodeTileStreamOffsetMismatch issue, got %+v", report.Issues)
	}
}

func TestValidateTileStreamPassesCorrectOffsetsLength(t *testing.T) {
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 0, Y0: 0, X1: 4, Y1: 4, ColorIndex: 0, Opacity: 255})

	batch.TileStream.Enabled = true
	batch.TileStream.PreMerged = true
	batch.TileStream.TileCommands = nil
	batch.TileStream.TileOffsets = []uint32{0, 0, 0, 0, 0}

	var report RenderValidationReport
	if !validateStrict(batch, 2, 2, &report) {
		t.Fatalf("expected a correctly-sized tileOffsets array to validate, got issues: %+v", report.Issues)
	}
}

func TestOptimizeBatchFailsWithoutEnabledPalette(t *testing.T) {
	target, _ := newTestTarget(t, 4, 4)
	batch := NewRenderBatch()
	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)

	var opt OptimizedBatch
	OptimizeBatch(target, batch, &opt)
	if opt.Valid() {
		t.Fatal("expected OptimizeBatch to fail with a disabled palette")
	}
}
