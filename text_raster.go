package raster2d

import (
	"math"

	"github.com/tilepaint/raster2d/internal/fixed"
)

// rasterizeText draws every glyph of one text run placement into rect
// (already intersected with clip, tile, and target bounds). Mask8 glyphs
// sample a coverage byte and tint it through the precomputed premultiplied
// LUT; ColorBGRA glyphs (e.g. emoji) carry their own color and are blended
// directly, scaled only by the text's opacity.
func rasterizeText(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, storeIndex uint32, rect PrimitiveBounds) {
	if rect.empty() {
		return
	}
	s := &batch.Texts
	runIdx := s.RunIndex[storeIndex]
	run := &batch.Runs
	baseline := fixed.ToFloat32(run.BaselineQ8_8[runIdx])
	scale := fixed.ToFloat32(run.ScaleQ8_8[runIdx])
	if scale <= 0 {
		scale = 1
	}

	originX, originY := float32(s.X[storeIndex]), float32(s.Y[storeIndex])
	opacity := s.Opacity[storeIndex]

	var lut []uint8
	if off := opt.textPmOffset[storeIndex]; off != InvalidOffset {
		lut = opt.textPmPool[off:]
	}

	start := run.GlyphStart[runIdx]
	count := run.GlyphCount[runIdx]
	glyphs := &batch.Glyphs
	bitmaps := &batch.Bitmaps

	targetRect := PrimitiveBounds{X0: 0, Y0: 0, X1: int32(target.Width()), Y1: int32(target.Height())}
	buf := target.Bytes()
	stride := target.Stride()

	for gi := start; gi < start+count; gi++ {
		bmIdx := glyphs.BitmapIndex[gi]
		w := int32(bitmaps.Width[bmIdx])
		h := int32(bitmaps.Height[bmIdx])
		if w == 0 || h == 0 {
			continue
		}

		gx := fixed.ToFloat32(glyphs.X[gi])
		gy := fixed.ToFloat32(glyphs.Y[gi])
		bearingX := float32(bitmaps.BearingX[bmIdx])
		bearingY := float32(bitmaps.BearingY[bmIdx])

		baseY := originY + baseline*scale
		dx0 := int32(math.Round(float64(originX + gx*scale + bearingX)))
		dy0 := int32(math.Round(float64(baseY + gy*scale - bearingY)))
		dx1 := dx0 + int32(float32(w)*scale+0.5)
		dy1 := dy0 + int32(float32(h)*scale+0.5)

		glyphRect := (PrimitiveBounds{X0: dx0, Y0: dy0, X1: dx1, Y1: dy1}).intersect(rect).intersect(targetRect)
		if glyphRect.empty() {
			continue
		}

		format := bitmaps.Format[bmIdx]
		bytesPerPixel := int32(1)
		if format == BitmapFormatColorBGRA {
			bytesPerPixel = 4
		}

		var srcData []byte
		var srcOff, srcStride, srcOriginX, srcOriginY int32
		if atlasIdx := bitmaps.AtlasIndex[bmIdx]; atlasIdx >= 0 {
			srcData = batch.Atlases.Pixels
			srcStride = int32(batch.Atlases.Stride[atlasIdx])
			srcOff = int32(batch.Atlases.PixelsOffset[atlasIdx])
			srcOriginX = int32(bitmaps.AtlasX[bmIdx])
			srcOriginY = int32(bitmaps.AtlasY[bmIdx])
		} else {
			srcData = bitmaps.Pixels
			srcStride = int32(bitmaps.Stride[bmIdx])
			srcOff = int32(bitmaps.PixelsOffset[bmIdx])
		}

		for y := glyphRect.Y0; y < glyphRect.Y1; y++ {
			row := buf[int(y)*stride:]
			gsy := clampI32(int32(float32(y-dy0)/scale), 0, h-1)
			for x := glyphRect.X0; x < glyphRect.X1; x++ {
				gsx := clampI32(int32(float32(x-dx0)/scale), 0, w-1)
				so := int(srcOff) + int(srcOriginY+gsy)*int(srcStride) + int(srcOriginX+gsx)*int(bytesPerPixel)
				o := int(x) * 4

				if format == BitmapFormatMask8 {
					cov := srcData[so]
					if cov == 0 {
						continue
					}
					var pr, pg, pb, a uint8
					a = mulDiv255(cov, opacity)
					if a == 0 {
						continue
					}
					if lut != nil {
						pr, pg, pb = lut[cov], lut[256+int(cov)], lut[512+int(cov)]
						if opacity != 255 {
							pr, pg, pb = mulDiv255(pr, opacity), mulDiv255(pg, opacity), mulDiv255(pb, opacity)
						}
					}
					blendOver(row[o:o+4], pr, pg, pb, a)
					continue
				}

				b0, g0, r0, a0 := srcData[so], srcData[so+1], srcData[so+2], srcData[so+3]
				a := mulDiv255(a0, opacity)
				if a == 0 {
					continue
				}
				blendOver(row[o:o+4], mulDiv255(r0, a), mulDiv255(g0, a), mulDiv255(b0, a), a)
			}
		}
	}
}
