package raster2d

// blendOver composites a premultiplied (r,g,b,a) source onto dst[0:4]
// (premultiplied RGBA8) using the Porter-Duff SOURCE-OVER operator:
// Formula: S + D*(1-Sa). Every channel, including alpha, is combined the
// same way.
func blendOver(dst []byte, r, g, b, a uint8) {
	invSa := 255 - a
	dst[0] = addClamp255(r, mulDiv255(dst[0], invSa))
	dst[1] = addClamp255(g, mulDiv255(dst[1], invSa))
	dst[2] = addClamp255(b, mulDiv255(dst[2], invSa))
	dst[3] = addClamp255(a, mulDiv255(dst[3], invSa))
}

// addClamp255 adds two byte values with clamping to 255.
func addClamp255(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// premultiplyChannel scales an un-premultiplied channel by a final alpha in
// [0,255], rounding the same way blendOver does.
func premultiplyChannel(channel, alpha uint8) uint8 {
	return mulDiv255(channel, alpha)
}
