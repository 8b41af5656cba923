package raster2d

import "testing"

// TestAnalyzeCommandsAppliesCircleBoundsPad confirms CircleBoundsPad widens a
// circle's AABB symmetrically on all four edges rather than being ignored.
func TestAnalyzeCommandsAppliesCircleBoundsPad(t *testing.T) {
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendCircle(CircleAppend{CenterX: 20, CenterY: 20, Radius: 5, ColorIndex: 0})

	params := analysisParams{targetW: 64, targetH: 64, tileSize: 32, tileShift: 5, tilePow2: true}

	unpadded := analyzeCommands(batch, params)
	if len(unpadded) != 1 || !unpadded[0].Valid {
		t.Fatalf("expected one valid analyzed command, got %+v", unpadded)
	}
	wantUnpadded := PrimitiveBounds{X0: 15, Y0: 15, X1: 26, Y1: 26}
	if unpadded[0].Bounds != wantUnpadded {
		t.Fatalf("unpadded bounds = %+v, want %+v", unpadded[0].Bounds, wantUnpadded)
	}

	params.circleBoundsPad = 3
	padded := analyzeCommands(batch, params)
	wantPadded := PrimitiveBounds{X0: 12, Y0: 12, X1: 29, Y1: 29}
	if padded[0].Bounds != wantPadded {
		t.Fatalf("padded bounds = %+v, want %+v (pad=3 should widen all four edges)", padded[0].Bounds, wantPadded)
	}
}

// TestOptimizeBatchThreadsCircleBoundsPad confirms batch.CircleBoundsPad
// reaches command analysis through OptimizeBatch's analysisParams wiring.
func TestOptimizeBatchThreadsCircleBoundsPad(t *testing.T) {
	target, _ := newTestTarget(t, 64, 64)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.CircleBoundsPad = 4
	bb := NewBatchBuilder(batch)
	bb.AppendCircle(CircleAppend{CenterX: 20, CenterY: 20, Radius: 5, ColorIndex: 0})

	var opt OptimizedBatch
	OptimizeBatch(target, batch, &opt)
	if !opt.Valid() {
		t.Fatal("expected OptimizeBatch to succeed")
	}
	if len(opt.analyzed) != 1 {
		t.Fatalf("expected one analyzed command, got %d", len(opt.analyzed))
	}
	want := PrimitiveBounds{X0: 11, Y0: 11, X1: 30, Y1: 30}
	if opt.analyzed[0].Bounds != want {
		t.Fatalf("analyzed bounds = %+v, want %+v (CircleBoundsPad=4 should have widened them)", opt.analyzed[0].Bounds, want)
	}
}
