package raster2d

import "testing"

func TestRenderWithProfileRecordsCounters(t *testing.T) {
	target, _ := newTestTarget(t, 64, 64)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.Palette.Set(1, Color{R: 200, A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)
	for i := 0; i < 50; i++ {
		bb.AppendRect(RectAppend{X0: int32(i), Y0: int32(i), X1: int32(i + 4), Y1: int32(i + 4), ColorIndex: 1, Opacity: 255})
	}

	var profile RendererProfile
	batch.Profile = &profile

	var opt OptimizedBatch
	OptimizeBatch(target, batch, &opt)
	if !opt.Valid() {
		t.Fatal("expected OptimizeBatch to succeed")
	}
	RenderOptimized(target, batch, &opt)

	if profile.TilesRendered == 0 {
		t.Error("expected TilesRendered to be nonzero")
	}
	if profile.PixelsTouched == 0 {
		t.Error("expected PixelsTouched to be nonzero")
	}
	// Stage timers may read as zero on a very fast/low-resolution clock, but
	// never negative, and TilesRendered/PixelsTouched must always advance.
	if profile.OptTileGridNs < 0 || profile.OptScanNs < 0 || profile.OptTileStreamNs < 0 ||
		profile.OptRenderTilesNs < 0 || profile.RasterNs < 0 {
		t.Errorf("profile counters must never be negative: %+v", profile)
	}
}

func TestRenderWithoutProfileLeavesItUntouched(t *testing.T) {
	target, _ := newTestTarget(t, 8, 8)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)

	Render(target, batch)

	if batch.Profile != nil {
		t.Fatal("expected batch.Profile to remain nil when never set")
	}
}

func TestRendererProfileReset(t *testing.T) {
	p := RendererProfile{OptTileGridNs: 5, TilesRendered: 3, PixelsTouched: 9}
	p.Reset()
	if p != (RendererProfile{}) {
		t.Errorf("expected Reset to zero all counters, got %+v", p)
	}
}
