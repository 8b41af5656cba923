package raster2d

import (
	"math"

	"github.com/tilepaint/raster2d/internal/fixed"
)

// PrimitiveBounds is a command's clipped, target-clamped axis-aligned
// bounding box in pixel coordinates, half-open: [X0,X1) x [Y0,Y1).
type PrimitiveBounds struct {
	X0, Y0, X1, Y1 int32
}

func (b PrimitiveBounds) empty() bool { return b.X0 >= b.X1 || b.Y0 >= b.Y1 }

func (b PrimitiveBounds) intersect(o PrimitiveBounds) PrimitiveBounds {
	return PrimitiveBounds{
		X0: maxI32(b.X0, o.X0), Y0: maxI32(b.Y0, o.Y0),
		X1: minI32(b.X1, o.X1), Y1: minI32(b.Y1, o.Y1),
	}
}

// AnalyzedCommand is command analysis's per-command output: its bounds, tile
// span, and whether it survives culling. One entry exists per entry of
// batch.Commands, in the same order, so Order doubles as the index into
// both slices.
type AnalyzedCommand struct {
	Type   CommandType
	Index  uint32
	Order  uint32
	Bounds PrimitiveBounds

	HasClip bool
	Clip    PrimitiveBounds

	BaseAlpha uint8

	TX0, TY0, TX1, TY1 int32 // inclusive tile span

	Valid bool
}

// analysisParams bundles the target/tile-grid context command analysis needs
// but does not own.
type analysisParams struct {
	targetW, targetH int
	tileSize         int32
	tileShift        int32
	tilePow2         bool
	circleBoundsPad  int32
}

func tileIndexFloor(v, tileSize, tileShift int32, pow2 bool) int32 {
	if pow2 {
		return v >> uint(tileShift)
	}
	if v >= 0 {
		return v / tileSize
	}
	// floor division for negative values (bounds are clamped to target so
	// this path is defensive only).
	q := v / tileSize
	if v%tileSize != 0 {
		q--
	}
	return q
}

// analyzeCommands runs command analysis (spec §4.2) over every command in
// batch.Commands, producing a parallel AnalyzedCommand slice.
func analyzeCommands(batch *RenderBatch, p analysisParams) []AnalyzedCommand {
	out := make([]AnalyzedCommand, len(batch.Commands))
	paletteOpaque := batch.Palette.Opaque()
	targetRect := PrimitiveBounds{X0: 0, Y0: 0, X1: int32(p.targetW), Y1: int32(p.targetH)}

	for i, cmd := range batch.Commands {
		ac := AnalyzedCommand{Type: cmd.Type, Index: cmd.Index, Order: uint32(i)}

		switch cmd.Type {
		case CommandClear, CommandClearPattern, CommandDebugTiles:
			// Handled globally; does not participate in bounds/binning.
			out[i] = ac
			continue
		}

		bounds, ok, baseAlpha, hardCull := primitiveBounds(batch, cmd, paletteOpaque, p.circleBoundsPad)
		if hardCull {
			out[i] = ac
			continue
		}
		if !ok {
			out[i] = ac
			continue
		}

		if hasClipFlag(batch, cmd) {
			cx0, cy0, cx1, cy1 := clipRectOf(batch, cmd)
			ac.HasClip = true
			ac.Clip = PrimitiveBounds{X0: cx0, Y0: cy0, X1: cx1, Y1: cy1}
			bounds = bounds.intersect(ac.Clip)
		}

		bounds = bounds.intersect(targetRect)
		if bounds.empty() {
			out[i] = ac
			continue
		}

		ac.Bounds = bounds
		ac.BaseAlpha = baseAlpha
		ac.TX0 = tileIndexFloor(bounds.X0, p.tileSize, p.tileShift, p.tilePow2)
		ac.TY0 = tileIndexFloor(bounds.Y0, p.tileSize, p.tileShift, p.tilePow2)
		ac.TX1 = tileIndexFloor(bounds.X1-1, p.tileSize, p.tileShift, p.tilePow2)
		ac.TY1 = tileIndexFloor(bounds.Y1-1, p.tileSize, p.tileShift, p.tilePow2)
		ac.Valid = true
		out[i] = ac
	}
	return out
}

// primitiveBounds computes the natural (pre-clip) bounds, survival alpha,
// and culling decision for one non-global command. hardCull is set for
// conditions that cull regardless of palette opacity (zero-opacity Text or
// Line, zero-alpha PixelA). circleBoundsPad widens a
// CommandCircle's AABB symmetrically on all four edges, to cover AA
// softening or stroke width the raw radius doesn't account for.
func primitiveBounds(batch *RenderBatch, cmd RenderCommand, paletteOpaque bool, circleBoundsPad int32) (bounds PrimitiveBounds, ok bool, baseAlpha uint8, hardCull bool) {
	idx := cmd.Index
	switch cmd.Type {
	case CommandRect:
		s := &batch.Rects
		bounds = PrimitiveBounds{X0: int32(s.X0[idx]), Y0: int32(s.Y0[idx]), X1: int32(s.X1[idx]), Y1: int32(s.Y1[idx])}
		color := batch.Palette.Color(s.ColorIndex[idx])
		opacity := s.Opacity[idx]
		a0 := applyOpacity(color.A, opacity)
		isGradient := s.Flags[idx]&RectFlagGradient != 0
		combinedZero := a0 == 0
		if isGradient {
			color1 := batch.Palette.Color(s.GradientColor1Index[idx])
			a1 := applyOpacity(color1.A, opacity)
			combinedZero = a0 == 0 && a1 == 0
		}
		if combinedZero && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, a0, false

	case CommandCircle:
		s := &batch.Circles
		r := int32(s.Radius[idx])
		cx, cy := int32(s.CenterX[idx]), int32(s.CenterY[idx])
		pad := circleBoundsPad
		bounds = PrimitiveBounds{X0: cx - r - pad, Y0: cy - r - pad, X1: cx + r + 1 + pad, Y1: cy + r + 1 + pad}
		color := batch.Palette.Color(s.ColorIndex[idx])
		if color.A == 0 && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, color.A, false

	case CommandPixel:
		s := &batch.Pixels
		x, y := int32(s.X[idx]), int32(s.Y[idx])
		bounds = PrimitiveBounds{X0: x, Y0: y, X1: x + 1, Y1: y + 1}
		color := batch.Palette.Color(s.ColorIndex[idx])
		return bounds, true, color.A, false

	case CommandPixelA:
		s := &batch.PixelAs
		x, y := int32(s.X[idx]), int32(s.Y[idx])
		bounds = PrimitiveBounds{X0: x, Y0: y, X1: x + 1, Y1: y + 1}
		if s.Alpha[idx] == 0 {
			return bounds, false, 0, true
		}
		color := batch.Palette.Color(s.ColorIndex[idx])
		a := mulDiv255(color.A, s.Alpha[idx])
		if a == 0 && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, a, false

	case CommandLine:
		s := &batch.Lines
		if s.Opacity[idx] == 0 {
			return bounds, false, 0, true
		}
		x0, y0, x1, y1 := int32(s.X0[idx]), int32(s.Y0[idx]), int32(s.X1[idx]), int32(s.Y1[idx])
		width := fixed.ToFloat32U(s.WidthQ8_8[idx])
		pad := int32(math.Ceil(float64(width/2))) + 1
		bounds = PrimitiveBounds{
			X0: minI32(x0, x1) - pad, Y0: minI32(y0, y1) - pad,
			X1: maxI32(x0, x1) + pad, Y1: maxI32(y0, y1) + pad,
		}
		color := batch.Palette.Color(s.ColorIndex[idx])
		a := applyOpacity(color.A, s.Opacity[idx])
		if a == 0 && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, a, false

	case CommandImage:
		s := &batch.Images
		bounds = PrimitiveBounds{X0: int32(s.X0[idx]), Y0: int32(s.Y0[idx]), X1: int32(s.X1[idx]), Y1: int32(s.Y1[idx])}
		tint := batch.Palette.Color(s.TintColorIndex[idx])
		a := applyOpacity(tint.A, s.Opacity[idx])
		if a == 0 && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, a, false

	case CommandText:
		s := &batch.Texts
		if s.Opacity[idx] == 0 {
			return bounds, false, 0, true
		}
		bounds = PrimitiveBounds{X0: s.X[idx], Y0: s.Y[idx], X1: s.X[idx] + s.Width[idx], Y1: s.Y[idx] + s.Height[idx]}
		color := batch.Palette.Color(s.ColorIndex[idx])
		a := applyOpacity(color.A, s.Opacity[idx])
		if a == 0 && !paletteOpaque {
			return bounds, false, 0, false
		}
		return bounds, true, a, false
	}
	return PrimitiveBounds{}, false, 0, false
}

func hasClipFlag(batch *RenderBatch, cmd RenderCommand) bool {
	idx := cmd.Index
	switch cmd.Type {
	case CommandRect:
		return batch.Rects.Flags[idx]&RectFlagClip != 0
	case CommandImage:
		return batch.Images.Flags[idx]&ImageFlagClip != 0
	case CommandText:
		return batch.Texts.Flags[idx]&TextFlagClip != 0
	}
	return false
}

func clipRectOf(batch *RenderBatch, cmd RenderCommand) (x0, y0, x1, y1 int32) {
	idx := cmd.Index
	switch cmd.Type {
	case CommandRect:
		s := &batch.Rects
		return int32(s.ClipX0[idx]), int32(s.ClipY0[idx]), int32(s.ClipX1[idx]), int32(s.ClipY1[idx])
	case CommandImage:
		s := &batch.Images
		return int32(s.ClipX0[idx]), int32(s.ClipY0[idx]), int32(s.ClipX1[idx]), int32(s.ClipY1[idx])
	case CommandText:
		s := &batch.Texts
		return int32(s.ClipX0[idx]), int32(s.ClipY0[idx]), int32(s.ClipX1[idx]), int32(s.ClipY1[idx])
	}
	return 0, 0, 0, 0
}
