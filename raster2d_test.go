package raster2d

import "testing"

func newTestTarget(t *testing.T, w, h int) (*RenderTarget, []byte) {
	t.Helper()
	buf := make([]byte, w*h*4)
	target, err := NewRenderTarget(buf, w, h, w*4)
	if err != nil {
		t.Fatalf("NewRenderTarget: %v", err)
	}
	return target, buf
}

func pixelAt(buf []byte, stride, x, y int) (r, g, b, a uint8) {
	o := y*stride + x*4
	return buf[o], buf[o+1], buf[o+2], buf[o+3]
}

// Scenario 1: clearing a 4x4 target fills every pixel with the clear color.
func TestScenarioClearFillsWholeTarget(t *testing.T) {
	target, buf := newTestTarget(t, 4, 4)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{R: 10, G: 20, B: 30, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)

	Render(target, batch)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := pixelAt(buf, target.Stride(), x, y)
			if r != 10 || g != 20 || b != 30 || a != 255 {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d, want 10,20,30,255", x, y, r, g, b, a)
			}
		}
	}
}

// Scenario 2: clear black, draw an opaque red rect, corners stay black.
func TestScenarioRectOverClear(t *testing.T) {
	target, buf := newTestTarget(t, 8, 8)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.Palette.Set(1, Color{R: 200, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)
	bb.AppendRect(RectAppend{X0: 2, Y0: 2, X1: 6, Y1: 6, ColorIndex: 1, Opacity: 255})

	Render(target, batch)

	r, g, b, a := pixelAt(buf, target.Stride(), 3, 3)
	if r != 200 || g != 0 || b != 0 || a != 255 {
		t.Fatalf("pixel (3,3) = %d,%d,%d,%d, want 200,0,0,255", r, g, b, a)
	}
	r, g, b, a = pixelAt(buf, target.Stride(), 0, 0)
	if r != 0 || g != 0 || b != 0 || a != 255 {
		t.Fatalf("corner (0,0) = %d,%d,%d,%d, want black", r, g, b, a)
	}
}

// Scenario 3: two overlapping opaque rects, the later command wins.
func TestScenarioLaterRectWins(t *testing.T) {
	target, buf := newTestTarget(t, 8, 8)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.Palette.Set(1, Color{B: 255, A: 255})
	batch.Palette.Set(2, Color{R: 255, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendClear(0)
	bb.AppendRect(RectAppend{X0: 1, Y0: 1, X1: 5, Y1: 5, ColorIndex: 1, Opacity: 255})
	bb.AppendRect(RectAppend{X0: 1, Y0: 1, X1: 5, Y1: 5, ColorIndex: 2, Opacity: 255})

	Render(target, batch)

	r, g, b, a := pixelAt(buf, target.Stride(), 2, 2)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Fatalf("pixel (2,2) = %d,%d,%d,%d, want 255,0,0,255 (red on top)", r, g, b, a)
	}
}

// Scenario 4: a vertical gradient's red channel increases from top to bottom.
func TestScenarioGradientMonotonic(t *testing.T) {
	target, buf := newTestTarget(t, 10, 10)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.Palette.Set(1, Color{R: 255, G: 255, B: 255, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{
		X0: 0, Y0: 0, X1: 10, Y1: 10,
		ColorIndex: 0, Opacity: 255,
		Gradient: &GradientSpec{Color1Index: 1, DirX: 0, DirY: 1},
	})

	Render(target, batch)

	rTop, _, _, _ := pixelAt(buf, target.Stride(), 5, 2)
	rBottom, _, _, _ := pixelAt(buf, target.Stride(), 5, 8)
	if !(rTop < rBottom) {
		t.Fatalf("expected red(5,2)=%d < red(5,8)=%d", rTop, rBottom)
	}
}

// Scenario 5: a rect spanning multiple tiles paints identically in every
// tile it touches.
func TestScenarioCrossTileCoverage(t *testing.T) {
	target, buf := newTestTarget(t, 24, 24)
	batch := NewRenderBatch()
	batch.TileSize = 8
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{R: 255, B: 255, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 4, Y0: 4, X1: 20, Y1: 20, ColorIndex: 0, Opacity: 255})

	Render(target, batch)

	r1, g1, b1, a1 := pixelAt(buf, target.Stride(), 6, 6)
	r2, g2, b2, a2 := pixelAt(buf, target.Stride(), 18, 18)
	want := [4]uint8{255, 0, 255, 255}
	if [4]uint8{r1, g1, b1, a1} != want {
		t.Fatalf("pixel (6,6) = %v, want %v", [4]uint8{r1, g1, b1, a1}, want)
	}
	if [4]uint8{r2, g2, b2, a2} != want {
		t.Fatalf("pixel (18,18) = %v, want %v", [4]uint8{r2, g2, b2, a2}, want)
	}
}

// Scenario 6: DirtyOnly debug tiles only outline tiles that were actually
// touched by a draw command.
func TestScenarioDebugTilesDirtyOnly(t *testing.T) {
	target, buf := newTestTarget(t, 16, 16)
	batch := NewRenderBatch()
	batch.TileSize = 8
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{A: 255})
	batch.Palette.Set(1, Color{G: 255, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 1, Y0: 1, X1: 4, Y1: 4, ColorIndex: 1, Opacity: 255})
	bb.AppendDebugTiles(1, true)

	Render(target, batch)

	isMagenta := func(x, y int) bool {
		r, g, b, a := pixelAt(buf, target.Stride(), x, y)
		return r == 255 && g == 0 && b == 255 && a == 255
	}

	foundInDrawnTile := false
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if isMagenta(x, y) {
				foundInDrawnTile = true
			}
		}
	}
	if !foundInDrawnTile {
		t.Fatal("expected an outline pixel in the tile containing the rect")
	}

	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			if isMagenta(x, y) {
				t.Fatalf("unexpected outline pixel at (%d,%d) in an undrawn tile", x, y)
			}
		}
	}
}

func TestPaletteRoundTrip(t *testing.T) {
	c := Color{R: 12, G: 34, B: 56, A: 78}
	if got := UnpackRGBA8(PackRGBA8(c)); got != c {
		t.Fatalf("UnpackRGBA8(PackRGBA8(c)) = %+v, want %+v", got, c)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() (*RenderTarget, []byte) {
		target, buf := newTestTarget(t, 12, 12)
		batch := NewRenderBatch()
		batch.Palette.Enable(true)
		batch.Palette.Set(0, Color{A: 255})
		batch.Palette.Set(1, Color{R: 120, G: 40, B: 200, A: 200})
		bb := NewBatchBuilder(batch)
		bb.AppendClear(0)
		bb.AppendCircle(CircleAppend{CenterX: 6, CenterY: 6, Radius: 4, ColorIndex: 1})
		Render(target, batch)
		return target, buf
	}

	_, bufA := build()
	_, bufB := build()

	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("render is non-deterministic at byte %d: %d != %d", i, bufA[i], bufB[i])
		}
	}
}

func TestBuilderRejectsOutOfRangeCoordinates(t *testing.T) {
	batch := NewRenderBatch()
	bb := NewBatchBuilder(batch)
	if _, ok := bb.AppendRect(RectAppend{X0: -40000, Y0: 0, X1: 10, Y1: 10, Opacity: 255}); ok {
		t.Fatal("expected AppendRect to reject an out-of-range coordinate")
	}
	if batch.Rects.Len() != 0 {
		t.Fatalf("rejected append left %d rows behind, want 0", batch.Rects.Len())
	}
}

func TestCommandFullyOutsideTargetProducesNoWrites(t *testing.T) {
	target, buf := newTestTarget(t, 4, 4)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{R: 255, A: 255})

	bb := NewBatchBuilder(batch)
	bb.AppendRect(RectAppend{X0: 100, Y0: 100, X1: 110, Y1: 110, ColorIndex: 0, Opacity: 255})

	Render(target, batch)

	for _, bv := range buf {
		if bv != 0 {
			t.Fatal("expected an all-zero buffer, command was fully outside the target")
		}
	}
}
