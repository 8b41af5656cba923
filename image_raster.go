package raster2d

import "math"

// rasterizeImage blits an image asset region into rect (already intersected
// with clip, tile, and target bounds), bilinearly resampling, applying a
// palette tint (multiplicative, white = no change) and opacity.
func rasterizeImage(target *RenderTarget, batch *RenderBatch, storeIndex uint32, rect PrimitiveBounds) {
	if rect.empty() {
		return
	}
	s := &batch.Images
	destX0, destY0 := int32(s.X0[storeIndex]), int32(s.Y0[storeIndex])
	destX1, destY1 := int32(s.X1[storeIndex]), int32(s.Y1[storeIndex])
	destW, destH := destX1-destX0, destY1-destY0
	if destW <= 0 || destH <= 0 {
		return
	}

	assetIdx := s.ImageIndex[storeIndex]
	assetW := int32(s.AssetWidth[assetIdx])
	assetH := int32(s.AssetHeight[assetIdx])
	assetStride := int32(s.AssetStrideBytes[assetIdx])
	assetOff := s.AssetDataOffset[assetIdx]
	assetData := s.Data

	srcX0, srcY0 := float32(s.SrcX0[storeIndex]), float32(s.SrcY0[storeIndex])
	srcX1, srcY1 := float32(s.SrcX1[storeIndex]), float32(s.SrcY1[storeIndex])
	srcW, srcH := srcX1-srcX0, srcY1-srcY0

	tint := batch.Palette.Color(s.TintColorIndex[storeIndex])
	opacity := s.Opacity[storeIndex]
	flags := s.Flags[storeIndex]
	wrapU := flags&ImageFlagWrapU != 0
	wrapV := flags&ImageFlagWrapV != 0

	buf := target.Bytes()
	stride := target.Stride()

	for y := rect.Y0; y < rect.Y1; y++ {
		row := buf[int(y)*stride:]
		v := (float32(y-destY0)+0.5)/float32(destH)*srcH + srcY0
		for x := rect.X0; x < rect.X1; x++ {
			u := (float32(x-destX0)+0.5)/float32(destW)*srcW + srcX0

			r, g, b, a := sampleImageBilinear(assetData, assetOff, assetStride, assetW, assetH, u, v, wrapU, wrapV)
			a = mulDiv255(a, tint.A)
			a = mulDiv255(a, opacity)
			if a == 0 {
				continue
			}
			r = mulDiv255(r, tint.R)
			g = mulDiv255(g, tint.G)
			b = mulDiv255(b, tint.B)

			o := int(x) * 4
			blendOver(row[o:o+4], mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a)
		}
	}
}

// sampleImageBilinear reads a bilinearly-filtered RGBA8 sample at (u,v),
// texel-centered, from a packed asset. wrapU/wrapV select wraparound
// addressing per axis; otherwise coordinates clamp to the asset edge.
func sampleImageBilinear(data []byte, offset uint32, strideBytes, assetW, assetH int32, u, v float32, wrapU, wrapV bool) (r, g, b, a uint8) {
	u -= 0.5
	v -= 0.5
	x0 := int32(math.Floor(float64(u)))
	y0 := int32(math.Floor(float64(v)))
	fx := u - float32(x0)
	fy := v - float32(y0)

	sample := func(sx, sy int32) (uint8, uint8, uint8, uint8) {
		sx = wrapOrClampCoord(sx, assetW, wrapU)
		sy = wrapOrClampCoord(sy, assetH, wrapV)
		o := int(offset) + int(sy)*int(strideBytes) + int(sx)*4
		return data[o], data[o+1], data[o+2], data[o+3]
	}

	r00, g00, b00, a00 := sample(x0, y0)
	r10, g10, b10, a10 := sample(x0+1, y0)
	r01, g01, b01, a01 := sample(x0, y0+1)
	r11, g11, b11, a11 := sample(x0+1, y0+1)

	rTop, rBot := lerp8(r00, r10, fx), lerp8(r01, r11, fx)
	gTop, gBot := lerp8(g00, g10, fx), lerp8(g01, g11, fx)
	bTop, bBot := lerp8(b00, b10, fx), lerp8(b01, b11, fx)
	aTop, aBot := lerp8(a00, a10, fx), lerp8(a01, a11, fx)

	return lerp8(rTop, rBot, fy), lerp8(gTop, gBot, fy), lerp8(bTop, bBot, fy), lerp8(aTop, aBot, fy)
}

func wrapOrClampCoord(v, size int32, wrap bool) int32 {
	if wrap {
		m := v % size
		if m < 0 {
			m += size
		}
		return m
	}
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}
