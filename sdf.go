package raster2d

import (
	"math"

	"golang.org/x/image/math/f32"
)

// DefaultAA is the anti-aliasing band width, in pixels, used by
// sdfRoundRect-based coverage. Wider values (see the SmoothBlend flag)
// produce a softer edge.
const DefaultAA float32 = 1.0

// SmoothBlendAA is the wider AA band width used when a rect's SmoothBlend
// flag is set, producing a visibly softer edge.
const SmoothBlendAA float32 = 2.0

// sdfRoundRect evaluates the signed distance from p to the boundary of an
// axis-aligned rounded rectangle of half-extents (hx,hy) and corner radius
// r, centered at the origin. Negative inside, positive outside.
//
// The single-axis-zero case avoids a sqrt: when only one of qx,qy is
// positive, the outside distance is exactly that component.
func sdfRoundRect(p f32.Vec2, hx, hy, r float32) float32 {
	qx := absF32(p[0]) - hx + r
	qy := absF32(p[1]) - hy + r

	var outside float32
	switch {
	case qx > 0 && qy > 0:
		outside = float32(math.Sqrt(float64(qx*qx + qy*qy)))
	case qx > 0:
		outside = qx
	case qy > 0:
		outside = qy
	default:
		outside = 0
	}

	inside := minF32(maxF32(qx, qy), 0)
	return outside + inside - r
}

// rotatePoint rotates p by -angleRad (radians), matching the rasterizer's
// convention of rotating the sample point into the rectangle's local,
// unrotated space before evaluating the SDF.
func rotatePoint(p f32.Vec2, angleRad float32) f32.Vec2 {
	if angleRad == 0 {
		return p
	}
	s := float32(math.Sin(float64(-angleRad)))
	c := float32(math.Cos(float64(-angleRad)))
	return f32.Vec2{p[0]*c - p[1]*s, p[0]*s + p[1]*c}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
