package raster2d

import (
	"golang.org/x/image/math/f32"

	"github.com/tilepaint/raster2d/internal/fixed"
)

// rasterizeRect rasterizes one rect command into rect, which is already
// intersected with its clip, tile, and target bounds. Evaluates the
// rounded/rotated SDF per pixel, applies an optional gradient, and uses the
// precomputed opaque coverage LUT when available.
func rasterizeRect(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, storeIndex uint32, rect PrimitiveBounds) {
	s := &batch.Rects
	x0, y0 := float32(s.X0[storeIndex]), float32(s.Y0[storeIndex])
	x1, y1 := float32(s.X1[storeIndex]), float32(s.Y1[storeIndex])
	cx, cy := (x0+x1)*0.5, (y0+y1)*0.5
	hx, hy := (x1-x0)*0.5, (y1-y0)*0.5

	radius := fixed.ToFloat32U(s.RadiusQ8_8[storeIndex])
	if m := minF32(hx, hy); radius > m {
		radius = m
	}
	rotation := fixed.ToFloat32(s.RotationQ8_8[storeIndex])

	aa := DefaultAA
	if s.Flags[storeIndex]&RectFlagSmoothBlend != 0 {
		aa = SmoothBlendAA
	}

	baseAlpha := opt.rectBaseAlpha[storeIndex]
	hasGradient := opt.rectHasGradient[storeIndex]
	edgeOffset := opt.rectEdgeOffset[storeIndex]

	colorR, colorG, colorB := opt.rectColorR[storeIndex], opt.rectColorG[storeIndex], opt.rectColorB[storeIndex]

	var dirX, dirY, gradMin, gradInvRange float32
	var gradR, gradG, gradB, gradA uint8
	if hasGradient {
		dirX, dirY = opt.rectGradDirX[storeIndex], opt.rectGradDirY[storeIndex]
		gradMin, gradInvRange = opt.rectGradMin[storeIndex], opt.rectGradInvRange[storeIndex]
		c1 := batch.Palette.Color(s.GradientColor1Index[storeIndex])
		gradR, gradG, gradB = c1.R, c1.G, c1.B
		gradA = applyOpacity(c1.A, s.Opacity[storeIndex])
	}

	buf := target.Bytes()
	stride := target.Stride()

	for y := rect.Y0; y < rect.Y1; y++ {
		row := buf[int(y)*stride:]
		py := float32(y) + 0.5 - cy
		for x := rect.X0; x < rect.X1; x++ {
			px := float32(x) + 0.5 - cx
			p := rotatePoint(f32.Vec2{px, py}, rotation)
			d := sdfRoundRect(p, hx, hy, radius)
			coverage := clamp01(0.5 - d/aa)
			if coverage <= 0 {
				continue
			}
			o := int(x) * 4

			if !hasGradient && edgeOffset != InvalidOffset {
				cov := uint8(coverage*255 + 0.5)
				lut := opt.rectEdgePool[edgeOffset:]
				blendOver(row[o:o+4], lut[cov], lut[256+int(cov)], lut[512+int(cov)], cov)
				continue
			}

			var r, g, b, a uint8
			if hasGradient {
				t := clamp01(((float32(x)+0.5)*dirX+(float32(y)+0.5)*dirY-gradMin) * gradInvRange)
				r = lerp8(colorR, gradR, t)
				g = lerp8(colorG, gradG, t)
				b = lerp8(colorB, gradB, t)
				a = lerp8(baseAlpha, gradA, t)
			} else {
				r, g, b, a = colorR, colorG, colorB, baseAlpha
			}

			cov := uint8(coverage*255 + 0.5)
			finalA := mulDiv255(a, cov)
			if finalA == 0 {
				continue
			}
			blendOver(row[o:o+4], mulDiv255(r, finalA), mulDiv255(g, finalA), mulDiv255(b, finalA), finalA)
		}
	}
}

// lerp8 linearly interpolates two 8-bit channels by t in [0,1], rounding to
// the nearest integer.
func lerp8(a, b uint8, t float32) uint8 {
	v := float32(a) + (float32(b)-float32(a))*t
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
