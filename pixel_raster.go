package raster2d

// rasterizePixel writes a single pixel directly, overwriting whatever was
// there rather than compositing. Pixel commands carry no opacity: a
// translucent palette color is premultiplied and written as-is.
func rasterizePixel(target *RenderTarget, batch *RenderBatch, storeIndex uint32) {
	s := &batch.Pixels
	x, y := int32(s.X[storeIndex]), int32(s.Y[storeIndex])
	if x < 0 || y < 0 || x >= int32(target.Width()) || y >= int32(target.Height()) {
		return
	}
	color := batch.Palette.Color(s.ColorIndex[storeIndex])
	o := target.pixelOffset(int(x), int(y))
	buf := target.Bytes()
	buf[o] = premultiplyChannel(color.R, color.A)
	buf[o+1] = premultiplyChannel(color.G, color.A)
	buf[o+2] = premultiplyChannel(color.B, color.A)
	buf[o+3] = color.A
}

// rasterizePixelA alpha-blends a single pixel over the existing target
// content, using the palette color's alpha combined with the command's own
// per-pixel Alpha field.
func rasterizePixelA(target *RenderTarget, batch *RenderBatch, storeIndex uint32) {
	s := &batch.PixelAs
	x, y := int32(s.X[storeIndex]), int32(s.Y[storeIndex])
	if x < 0 || y < 0 || x >= int32(target.Width()) || y >= int32(target.Height()) {
		return
	}
	color := batch.Palette.Color(s.ColorIndex[storeIndex])
	a := mulDiv255(color.A, s.Alpha[storeIndex])
	if a == 0 {
		return
	}
	o := target.pixelOffset(int(x), int(y))
	buf := target.Bytes()
	blendOver(buf[o:o+4], mulDiv255(color.R, a), mulDiv255(color.G, a), mulDiv255(color.B, a), a)
}
