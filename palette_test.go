package raster2d

import "testing"

func TestPaletteOpaqueRecomputedOnMutation(t *testing.T) {
	var p Palette
	p.Set(0, Color{A: 255})
	if !p.Opaque() {
		t.Fatal("single fully-opaque entry should leave the palette opaque")
	}
	p.Set(1, Color{A: 128})
	if p.Opaque() {
		t.Fatal("adding a translucent entry should clear Opaque")
	}
}

func TestPaletteColorOutOfRangeReturnsZero(t *testing.T) {
	var p Palette
	p.Set(0, Color{R: 1, A: 255})
	if got := p.Color(5); got != (Color{}) {
		t.Fatalf("out-of-range Color() should return zero value, got %+v", got)
	}
}

func TestPaletteSetAllTruncatesAtMax(t *testing.T) {
	colors := make([]Color, MaxPaletteSize+10)
	var p Palette
	p.SetAll(colors)
	if p.Size() != MaxPaletteSize {
		t.Fatalf("SetAll should truncate to %d entries, got %d", MaxPaletteSize, p.Size())
	}
}
