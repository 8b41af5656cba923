package raster2d

import "math"

// rasterizeCircle rasterizes one circle command into rect, which is already
// intersected with tile and target bounds.
func rasterizeCircle(target *RenderTarget, batch *RenderBatch, storeIndex uint32, rect PrimitiveBounds) {
	if rect.empty() {
		return
	}
	s := &batch.Circles
	cx, cy := float32(s.CenterX[storeIndex]), float32(s.CenterY[storeIndex])
	radius := float32(s.Radius[storeIndex])
	color := batch.Palette.Color(s.ColorIndex[storeIndex])
	if color.A == 0 {
		return
	}

	buf := target.Bytes()
	stride := target.Stride()

	for y := rect.Y0; y < rect.Y1; y++ {
		row := buf[int(y)*stride:]
		dy := float32(y) + 0.5 - cy
		for x := rect.X0; x < rect.X1; x++ {
			dx := float32(x) + 0.5 - cx
			dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			coverage := clamp01(0.5 - (dist-radius)/DefaultAA)
			if coverage <= 0 {
				continue
			}
			cov := uint8(coverage*255 + 0.5)
			a := mulDiv255(color.A, cov)
			if a == 0 {
				continue
			}
			o := int(x) * 4
			blendOver(row[o:o+4], mulDiv255(color.R, a), mulDiv255(color.G, a), mulDiv255(color.B, a), a)
		}
	}
}

// rasterizeCircleClipped rasterizes the circle at storeIndex, deriving its
// own bounds and intersecting against the tile rect [tx0,tx1)x[ty0,ty1) and
// the target. Used by the circle-only fast binning path, where tileRefs
// stores circle store indices directly rather than command order.
func rasterizeCircleClipped(target *RenderTarget, batch *RenderBatch, opt *OptimizedBatch, storeIndex uint32, tx0, ty0, tx1, ty1 int32) {
	s := &batch.Circles
	r := int32(s.Radius[storeIndex])
	cx, cy := int32(s.CenterX[storeIndex]), int32(s.CenterY[storeIndex])
	bounds := PrimitiveBounds{X0: cx - r, Y0: cy - r, X1: cx + r + 1, Y1: cy + r + 1}
	tile := PrimitiveBounds{X0: tx0, Y0: ty0, X1: tx1, Y1: ty1}
	target2 := PrimitiveBounds{X0: 0, Y0: 0, X1: int32(target.Width()), Y1: int32(target.Height())}
	rect := bounds.intersect(tile).intersect(target2)
	if rect.empty() {
		return
	}
	rasterizeCircle(target, batch, storeIndex, rect)
}
