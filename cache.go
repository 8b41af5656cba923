package raster2d

import (
	"math"

	"github.com/tilepaint/raster2d/internal/fixed"
)

const gradientDegenerateEpsilon = 1e-5

// buildRectTextCaches precomputes the per-rect and per-text caches of spec
// §4.3.10: decoded palette colors, premultiplied coverage lookup tables for
// the opaque fast path, and gradient direction/range setup.
func buildRectTextCaches(opt *OptimizedBatch, batch *RenderBatch) {
	buildRectCache(opt, batch)
	buildTextCache(opt, batch)
}

func buildRectCache(opt *OptimizedBatch, batch *RenderBatch) {
	n := batch.Rects.Len()
	opt.rectColorR = make([]uint8, n)
	opt.rectColorG = make([]uint8, n)
	opt.rectColorB = make([]uint8, n)
	opt.rectColorA = make([]uint8, n)
	opt.rectBaseAlpha = make([]uint8, n)
	opt.rectHasGradient = make([]bool, n)
	opt.rectGradDirX = make([]float32, n)
	opt.rectGradDirY = make([]float32, n)
	opt.rectGradMin = make([]float32, n)
	opt.rectGradInvRange = make([]float32, n)
	opt.rectEdgeOffset = make([]uint32, n)
	for i := range opt.rectEdgeOffset {
		opt.rectEdgeOffset[i] = InvalidOffset
	}
	opt.rectEdgePool = opt.rectEdgePool[:0]

	for _, ac := range opt.analyzed {
		if ac.Type != CommandRect || !ac.Valid {
			continue
		}
		idx := ac.Index
		color := batch.Palette.Color(batch.Rects.ColorIndex[idx])
		opt.rectColorR[idx], opt.rectColorG[idx], opt.rectColorB[idx], opt.rectColorA[idx] = color.R, color.G, color.B, color.A
		opt.rectBaseAlpha[idx] = ac.BaseAlpha

		isGradient := batch.Rects.Flags[idx]&RectFlagGradient != 0
		opt.rectHasGradient[idx] = isGradient

		if isGradient {
			dirX := fixed.ToFloat32(batch.Rects.GradientDirX[idx])
			dirY := fixed.ToFloat32(batch.Rects.GradientDirY[idx])
			length := float32(math.Sqrt(float64(dirX*dirX + dirY*dirY)))
			if length > gradientDegenerateEpsilon {
				dirX, dirY = dirX/length, dirY/length
			}

			x0, y0 := float32(batch.Rects.X0[idx]), float32(batch.Rects.Y0[idx])
			x1, y1 := float32(batch.Rects.X1[idx]), float32(batch.Rects.Y1[idx])
			corners := [4][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}

			gradMin, gradMax := float32(1e30), float32(-1e30)
			for _, c := range corners {
				d := c[0]*dirX + c[1]*dirY
				if d < gradMin {
					gradMin = d
				}
				if d > gradMax {
					gradMax = d
				}
			}

			if gradMax-gradMin < gradientDegenerateEpsilon {
				opt.rectGradDirX[idx], opt.rectGradDirY[idx] = 0, 1
				opt.rectGradMin[idx] = 0
				opt.rectGradInvRange[idx] = 1
			} else {
				opt.rectGradDirX[idx], opt.rectGradDirY[idx] = dirX, dirY
				opt.rectGradMin[idx] = gradMin
				opt.rectGradInvRange[idx] = 1 / (gradMax - gradMin)
			}
			continue
		}

		if ac.BaseAlpha == 255 && !batch.DisableOpaqueRectFastPath {
			offset := uint32(len(opt.rectEdgePool))
			opt.rectEdgePool = append(opt.rectEdgePool, buildCoverageLUT(color.R, color.G, color.B)...)
			opt.rectEdgeOffset[idx] = offset
		}
	}
}

func buildTextCache(opt *OptimizedBatch, batch *RenderBatch) {
	n := batch.Texts.Len()
	opt.textPmOffset = make([]uint32, n)
	for i := range opt.textPmOffset {
		opt.textPmOffset[i] = InvalidOffset
	}
	opt.textPmPool = opt.textPmPool[:0]

	for _, ac := range opt.analyzed {
		if ac.Type != CommandText || !ac.Valid {
			continue
		}
		idx := ac.Index
		color := batch.Palette.Color(batch.Texts.ColorIndex[idx])
		offset := uint32(len(opt.textPmPool))
		opt.textPmPool = append(opt.textPmPool, buildCoverageLUT(color.R, color.G, color.B)...)
		opt.textPmOffset[idx] = offset
	}
}

// buildCoverageLUT returns a 768-byte table: 256 premultiplied R values,
// then 256 G, then 256 B, indexed by an 8-bit coverage value.
func buildCoverageLUT(r, g, b uint8) []uint8 {
	lut := make([]uint8, 768)
	for cov := 0; cov < 256; cov++ {
		lut[cov] = mulDiv255(r, uint8(cov))
		lut[256+cov] = mulDiv255(g, uint8(cov))
		lut[512+cov] = mulDiv255(b, uint8(cov))
	}
	return lut
}
