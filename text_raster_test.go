package raster2d

import (
	"testing"

	"github.com/tilepaint/raster2d/internal/fixed"
)

// appendMask8Bitmap appends a fully-opaque w x h Mask8 bitmap with its own
// pixel slab (no atlas) and the given bearing, returning its bitmap index.
func appendMask8Bitmap(batch *RenderBatch, w, h uint16, bearingX, bearingY int16) uint32 {
	s := &batch.Bitmaps
	idx := uint32(s.Len())
	off := uint32(len(s.Pixels))
	px := make([]byte, int(w)*int(h))
	for i := range px {
		px[i] = 255
	}
	s.Pixels = append(s.Pixels, px...)
	s.Width = append(s.Width, w)
	s.Height = append(s.Height, h)
	s.BearingX = append(s.BearingX, bearingX)
	s.BearingY = append(s.BearingY, bearingY)
	s.Advance = append(s.Advance, w)
	s.Stride = append(s.Stride, w)
	s.Format = append(s.Format, BitmapFormatMask8)
	s.PixelsOffset = append(s.PixelsOffset, off)
	s.PixelsLen = append(s.PixelsLen, uint32(len(px)))
	s.AtlasIndex = append(s.AtlasIndex, -1)
	s.AtlasX = append(s.AtlasX, 0)
	s.AtlasY = append(s.AtlasY, 0)
	return idx
}

func appendGlyph(batch *RenderBatch, x, y float32, bitmapIndex uint32) uint32 {
	s := &batch.Glyphs
	idx := uint32(s.Len())
	s.X = append(s.X, fixed.FromFloat32(x))
	s.Y = append(s.Y, fixed.FromFloat32(y))
	s.BitmapIndex = append(s.BitmapIndex, bitmapIndex)
	return idx
}

// TestRasterizeTextGlyphYOrderMatchesGlyphYSign confirms a glyph placed at a
// larger GlyphY lands farther down the target than one at a smaller GlyphY,
// with no vertical mirroring.
func TestRasterizeTextGlyphYOrderMatchesGlyphYSign(t *testing.T) {
	target, buf := newTestTarget(t, 20, 20)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{R: 255, G: 255, B: 255, A: 255})

	bm := appendMask8Bitmap(batch, 2, 2, 0, 0)
	appendGlyph(batch, 0, 0, bm)
	appendGlyph(batch, 0, 8, bm)

	bb := NewBatchBuilder(batch)
	runIdx, ok := bb.AppendGlyphRun(0, 2, 0, 1)
	if !ok {
		t.Fatal("AppendGlyphRun failed")
	}
	_, ok = bb.AppendText(TextAppend{
		X: 5, Y: 5, Width: 14, Height: 14, Opacity: 255, ColorIndex: 0, RunIndex: runIdx,
	})
	if !ok {
		t.Fatal("AppendText failed")
	}

	Render(target, batch)

	// originX=5, originY=5, baseline=0, scale=1, bearingX=bearingY=0.
	// glyph 0: gy=0 -> dy0 = 5+0-0 = 5, covering rows [5,7).
	// glyph 1: gy=8 -> dy0 = 5+8-0 = 13, covering rows [13,15).
	if _, _, _, a := pixelAt(buf, target.Stride(), 5, 5); a == 0 {
		t.Fatal("expected glyph at GlyphY=0 to cover (5,5)")
	}
	if _, _, _, a := pixelAt(buf, target.Stride(), 5, 13); a == 0 {
		t.Fatal("expected glyph at GlyphY=8 to cover (5,13), got nothing there - check the sign/scale of gy and bearingY")
	}
	// Under the inverted formula (dy0 = originY+baseline-(gy+bearingY)*scale)
	// the second glyph would land at y=5-8=-3, entirely off target, so row 13
	// would stay untouched background rather than covered.
}

// TestRasterizeTextBearingIsNotScaled confirms bearingX/bearingY are added
// after scaling the glyph offset, not scaled themselves.
func TestRasterizeTextBearingIsNotScaled(t *testing.T) {
	target, buf := newTestTarget(t, 40, 40)
	batch := NewRenderBatch()
	batch.Palette.Enable(true)
	batch.Palette.Set(0, Color{R: 200, G: 100, B: 50, A: 255})

	bm := appendMask8Bitmap(batch, 2, 2, 3, 4)
	appendGlyph(batch, 0, 0, bm)

	bb := NewBatchBuilder(batch)
	runIdx, ok := bb.AppendGlyphRun(0, 1, 2, 2)
	if !ok {
		t.Fatal("AppendGlyphRun failed")
	}
	_, ok = bb.AppendText(TextAppend{
		X: 5, Y: 5, Width: 30, Height: 30, Opacity: 255, ColorIndex: 0, RunIndex: runIdx,
	})
	if !ok {
		t.Fatal("AppendText failed")
	}

	Render(target, batch)

	// originX=5, originY=5, baseline=2, scale=2, gx=gy=0, bearingX=3, bearingY=4.
	// dx0 = originX + gx*scale + bearingX = 5+0+3 = 8
	// baseY = originY + baseline*scale = 5+4 = 9
	// dy0 = baseY + gy*scale - bearingY = 9+0-4 = 5
	if _, _, _, a := pixelAt(buf, target.Stride(), 8, 5); a == 0 {
		t.Fatal("expected glyph to cover (8,5): bearingX must not be scaled, baseline must be")
	}
	// If bearingX were scaled (old bug), dx0 would be 5+(0+3)*2=11, covering
	// x in [11,15) instead of the correct [8,12) - x=13 tells them apart.
	if _, _, _, a := pixelAt(buf, target.Stride(), 13, 5); a != 0 {
		t.Fatal("pixel (13,5) should be background: bearingX must not be scaled")
	}
}
