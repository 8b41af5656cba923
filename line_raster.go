package raster2d

import (
	"math"

	"github.com/tilepaint/raster2d/internal/fixed"
)

// rasterizeLine draws one thick, antialiased line segment into rect, which
// is already intersected with tile and target bounds. Coverage is the
// perpendicular distance from the pixel center to the segment, clamped to
// the segment's endpoints (a capsule, not an infinite line).
func rasterizeLine(target *RenderTarget, batch *RenderBatch, storeIndex uint32, rect PrimitiveBounds) {
	if rect.empty() {
		return
	}
	s := &batch.Lines
	x0, y0 := float32(s.X0[storeIndex]), float32(s.Y0[storeIndex])
	x1, y1 := float32(s.X1[storeIndex]), float32(s.Y1[storeIndex])
	width := fixed.ToFloat32U(s.WidthQ8_8[storeIndex])
	halfWidth := width / 2

	color := batch.Palette.Color(s.ColorIndex[storeIndex])
	baseAlpha := applyOpacity(color.A, s.Opacity[storeIndex])
	if baseAlpha == 0 {
		return
	}

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy

	buf := target.Bytes()
	stride := target.Stride()

	for y := rect.Y0; y < rect.Y1; y++ {
		row := buf[int(y)*stride:]
		py := float32(y) + 0.5
		for x := rect.X0; x < rect.X1; x++ {
			px := float32(x) + 0.5

			var ddx, ddy float32
			if lenSq < 1e-6 {
				ddx, ddy = px-x0, py-y0
			} else {
				t := clamp01(((px-x0)*dx + (py-y0)*dy) / lenSq)
				ddx, ddy = px-(x0+t*dx), py-(y0+t*dy)
			}
			dist := float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))

			coverage := clamp01(0.5 - (dist-halfWidth)/DefaultAA)
			if coverage <= 0 {
				continue
			}
			cov := uint8(coverage*255 + 0.5)
			a := mulDiv255(baseAlpha, cov)
			if a == 0 {
				continue
			}
			o := int(x) * 4
			blendOver(row[o:o+4], mulDiv255(color.R, a), mulDiv255(color.G, a), mulDiv255(color.B, a), a)
		}
	}
}
