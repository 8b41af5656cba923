package raster2d

import "github.com/tilepaint/raster2d/internal/fixed"

const coordMax = 32767
const coordMin = -32768

func fitsI16(v int32) bool { return v >= coordMin && v <= coordMax }

// BatchBuilder is a validated append API over a RenderBatch's columnar
// stores. Every append either commits a consistent set of column pushes plus
// one RenderCommand (AppendGlyphRun adds no command: runs are referenced by
// text draws), or rejects the append and leaves the batch completely
// unchanged (columns already pushed for that append are rolled back).
type BatchBuilder struct {
	batch *RenderBatch
}

// NewBatchBuilder wraps batch for validated appends.
func NewBatchBuilder(batch *RenderBatch) *BatchBuilder {
	return &BatchBuilder{batch: batch}
}

// ClipRect is an optional clip rectangle attached to a primitive.
type ClipRect struct {
	X0, Y0, X1, Y1 int32
}

// GradientSpec is an optional linear gradient attached to a Rect.
type GradientSpec struct {
	Color1Index  uint8
	DirX, DirY   float32
}

// RectAppend is the input record for AppendRect.
type RectAppend struct {
	X0, Y0, X1, Y1 int32
	ColorIndex     uint8
	Radius         float32
	Rotation       float32 // radians
	Z              float32
	Opacity        uint8
	Clip           *ClipRect
	Gradient       *GradientSpec
	SmoothBlend    bool
}

// AppendRect validates and appends a rectangle, returning its store index.
// Rejects empty rects (x1<=x0 or y1<=y0) and out-of-range coordinates.
func (bb *BatchBuilder) AppendRect(r RectAppend) (uint32, bool) {
	if !fitsI16(r.X0) || !fitsI16(r.Y0) || !fitsI16(r.X1) || !fitsI16(r.Y1) {
		return 0, false
	}
	if r.X1 <= r.X0 || r.Y1 <= r.Y0 {
		return 0, false
	}
	s := &bb.batch.Rects
	n0 := s.Len()

	flags := uint8(0)
	var gradColorIdx uint8
	var gradDirX, gradDirY int16
	if r.Gradient != nil {
		flags |= RectFlagGradient
		gradColorIdx = r.Gradient.Color1Index
		gradDirX = fixed.FromFloat32(r.Gradient.DirX)
		gradDirY = fixed.FromFloat32(r.Gradient.DirY)
	}
	var clipX0, clipY0, clipX1, clipY1 int16
	if r.Clip != nil {
		if !fitsI16(r.Clip.X0) || !fitsI16(r.Clip.Y0) || !fitsI16(r.Clip.X1) || !fitsI16(r.Clip.Y1) {
			return 0, false
		}
		flags |= RectFlagClip
		clipX0, clipY0, clipX1, clipY1 = int16(r.Clip.X0), int16(r.Clip.Y0), int16(r.Clip.X1), int16(r.Clip.Y1)
	}
	if r.SmoothBlend {
		flags |= RectFlagSmoothBlend
	}

	s.X0 = append(s.X0, int16(r.X0))
	s.Y0 = append(s.Y0, int16(r.Y0))
	s.X1 = append(s.X1, int16(r.X1))
	s.Y1 = append(s.Y1, int16(r.Y1))
	s.ColorIndex = append(s.ColorIndex, r.ColorIndex)
	s.RadiusQ8_8 = append(s.RadiusQ8_8, fixed.FromFloat32U(r.Radius))
	s.RotationQ8_8 = append(s.RotationQ8_8, fixed.FromFloat32(r.Rotation))
	s.ZQ8_8 = append(s.ZQ8_8, fixed.FromFloat32(r.Z))
	s.Opacity = append(s.Opacity, r.Opacity)
	s.Flags = append(s.Flags, flags)
	s.GradientColor1Index = append(s.GradientColor1Index, gradColorIdx)
	s.GradientDirX = append(s.GradientDirX, gradDirX)
	s.GradientDirY = append(s.GradientDirY, gradDirY)
	s.ClipX0 = append(s.ClipX0, clipX0)
	s.ClipY0 = append(s.ClipY0, clipY0)
	s.ClipX1 = append(s.ClipX1, clipX1)
	s.ClipY1 = append(s.ClipY1, clipY1)

	if s.Len() != n0+1 {
		rollbackRect(s, n0)
		return 0, false
	}

	idx := uint32(n0)
	bb.batch.pushCommand(CommandRect, idx)
	return idx, true
}

func rollbackRect(s *RectStore, n int) {
	s.X0, s.Y0, s.X1, s.Y1 = s.X0[:n], s.Y0[:n], s.X1[:n], s.Y1[:n]
	s.ColorIndex = s.ColorIndex[:min(len(s.ColorIndex), n)]
	s.RadiusQ8_8 = s.RadiusQ8_8[:min(len(s.RadiusQ8_8), n)]
	s.RotationQ8_8 = s.RotationQ8_8[:min(len(s.RotationQ8_8), n)]
	s.ZQ8_8 = s.ZQ8_8[:min(len(s.ZQ8_8), n)]
	s.Opacity = s.Opacity[:min(len(s.Opacity), n)]
	s.Flags = s.Flags[:min(len(s.Flags), n)]
	s.GradientColor1Index = s.GradientColor1Index[:min(len(s.GradientColor1Index), n)]
	s.GradientDirX = s.GradientDirX[:min(len(s.GradientDirX), n)]
	s.GradientDirY = s.GradientDirY[:min(len(s.GradientDirY), n)]
	s.ClipX0 = s.ClipX0[:min(len(s.ClipX0), n)]
	s.ClipY0 = s.ClipY0[:min(len(s.ClipY0), n)]
	s.ClipX1 = s.ClipX1[:min(len(s.ClipX1), n)]
	s.ClipY1 = s.ClipY1[:min(len(s.ClipY1), n)]
}

// CircleAppend is the input record for AppendCircle.
type CircleAppend struct {
	CenterX, CenterY int32
	Radius           uint16
	ColorIndex       uint8
}

// AppendCircle validates and appends a circle.
func (bb *BatchBuilder) AppendCircle(c CircleAppend) (uint32, bool) {
	if !fitsI16(c.CenterX) || !fitsI16(c.CenterY) {
		return 0, false
	}
	if c.Radius == 0 {
		return 0, false
	}
	s := &bb.batch.Circles
	idx := uint32(s.Len())
	s.CenterX = append(s.CenterX, int16(c.CenterX))
	s.CenterY = append(s.CenterY, int16(c.CenterY))
	s.Radius = append(s.Radius, c.Radius)
	s.ColorIndex = append(s.ColorIndex, c.ColorIndex)
	bb.batch.pushCommand(CommandCircle, idx)
	return idx, true
}

// AppendPixel validates and appends a single opaque pixel write.
func (bb *BatchBuilder) AppendPixel(x, y int32, colorIndex uint8) (uint32, bool) {
	if !fitsI16(x) || !fitsI16(y) {
		return 0, false
	}
	s := &bb.batch.Pixels
	idx := uint32(s.Len())
	s.X = append(s.X, int16(x))
	s.Y = append(s.Y, int16(y))
	s.ColorIndex = append(s.ColorIndex, colorIndex)
	bb.batch.pushCommand(CommandPixel, idx)
	return idx, true
}

// AppendPixelA validates and appends a single alpha-blended pixel write.
func (bb *BatchBuilder) AppendPixelA(x, y int32, colorIndex, alpha uint8) (uint32, bool) {
	if !fitsI16(x) || !fitsI16(y) {
		return 0, false
	}
	s := &bb.batch.PixelAs
	idx := uint32(s.Len())
	s.X = append(s.X, int16(x))
	s.Y = append(s.Y, int16(y))
	s.ColorIndex = append(s.ColorIndex, colorIndex)
	s.Alpha = append(s.Alpha, alpha)
	bb.batch.pushCommand(CommandPixelA, idx)
	return idx, true
}

// LineAppend is the input record for AppendLine.
type LineAppend struct {
	X0, Y0, X1, Y1 int32
	Width          float32 // must be > 0
	ColorIndex     uint8
	Opacity        uint8
}

// AppendLine validates and appends a line. Rejects non-positive width.
func (bb *BatchBuilder) AppendLine(l LineAppend) (uint32, bool) {
	if !fitsI16(l.X0) || !fitsI16(l.Y0) || !fitsI16(l.X1) || !fitsI16(l.Y1) {
		return 0, false
	}
	if l.Width <= 0 {
		return 0, false
	}
	s := &bb.batch.Lines
	idx := uint32(s.Len())
	s.X0 = append(s.X0, int16(l.X0))
	s.Y0 = append(s.Y0, int16(l.Y0))
	s.X1 = append(s.X1, int16(l.X1))
	s.Y1 = append(s.Y1, int16(l.Y1))
	s.WidthQ8_8 = append(s.WidthQ8_8, fixed.FromFloat32U(l.Width))
	s.ColorIndex = append(s.ColorIndex, l.ColorIndex)
	s.Opacity = append(s.Opacity, l.Opacity)
	bb.batch.pushCommand(CommandLine, idx)
	return idx, true
}

// ImageAssetBuild is the input record for BuildImageAsset.
type ImageAssetBuild struct {
	Width, Height int
	StrideBytes   int
	Pixels        []byte // RGBA8, length must be >= strideBytes*height
}

// BuildImageAsset registers a decoded RGBA8 image and returns its asset
// index for later use in AppendImage. Rejects zero dimensions and a pixel
// slice too short for the declared stride/height.
func (bb *BatchBuilder) BuildImageAsset(a ImageAssetBuild) (uint32, bool) {
	if a.Width <= 0 || a.Height <= 0 || a.StrideBytes < a.Width*4 {
		return 0, false
	}
	if len(a.Pixels) < a.StrideBytes*a.Height {
		return 0, false
	}
	s := &bb.batch.Images
	idx := uint32(s.AssetCount())
	offset := uint32(len(s.Data))
	s.Data = append(s.Data, a.Pixels[:a.StrideBytes*a.Height]...)
	s.AssetWidth = append(s.AssetWidth, uint32(a.Width))
	s.AssetHeight = append(s.AssetHeight, uint32(a.Height))
	s.AssetStrideBytes = append(s.AssetStrideBytes, uint32(a.StrideBytes))
	s.AssetDataOffset = append(s.AssetDataOffset, offset)
	return idx, true
}

// ImageAppend is the input record for AppendImage.
type ImageAppend struct {
	X0, Y0, X1, Y1             int32
	SrcX0, SrcY0, SrcX1, SrcY1 uint16
	ImageIndex                 uint32
	TintColorIndex             uint8
	Opacity                    uint8
	WrapU, WrapV               bool
	Clip                       *ClipRect
}

// AppendImage validates and appends an image blit referencing a previously
// built asset.
func (bb *BatchBuilder) AppendImage(im ImageAppend) (uint32, bool) {
	if !fitsI16(im.X0) || !fitsI16(im.Y0) || !fitsI16(im.X1) || !fitsI16(im.Y1) {
		return 0, false
	}
	if im.X1 <= im.X0 || im.Y1 <= im.Y0 {
		return 0, false
	}
	if int(im.ImageIndex) >= bb.batch.Images.AssetCount() {
		return 0, false
	}
	s := &bb.batch.Images
	idx := uint32(s.Len())

	flags := uint8(0)
	if im.WrapU {
		flags |= ImageFlagWrapU
	}
	if im.WrapV {
		flags |= ImageFlagWrapV
	}
	var clipX0, clipY0, clipX1, clipY1 int16
	if im.Clip != nil {
		if !fitsI16(im.Clip.X0) || !fitsI16(im.Clip.Y0) || !fitsI16(im.Clip.X1) || !fitsI16(im.Clip.Y1) {
			return 0, false
		}
		flags |= ImageFlagClip
		clipX0, clipY0, clipX1, clipY1 = int16(im.Clip.X0), int16(im.Clip.Y0), int16(im.Clip.X1), int16(im.Clip.Y1)
	}

	s.X0 = append(s.X0, int16(im.X0))
	s.Y0 = append(s.Y0, int16(im.Y0))
	s.X1 = append(s.X1, int16(im.X1))
	s.Y1 = append(s.Y1, int16(im.Y1))
	s.SrcX0 = append(s.SrcX0, im.SrcX0)
	s.SrcY0 = append(s.SrcY0, im.SrcY0)
	s.SrcX1 = append(s.SrcX1, im.SrcX1)
	s.SrcY1 = append(s.SrcY1, im.SrcY1)
	s.ImageIndex = append(s.ImageIndex, im.ImageIndex)
	s.TintColorIndex = append(s.TintColorIndex, im.TintColorIndex)
	s.Opacity = append(s.Opacity, im.Opacity)
	s.Flags = append(s.Flags, flags)
	s.ClipX0 = append(s.ClipX0, clipX0)
	s.ClipY0 = append(s.ClipY0, clipY0)
	s.ClipX1 = append(s.ClipX1, clipX1)
	s.ClipY1 = append(s.ClipY1, clipY1)

	bb.batch.pushCommand(CommandImage, idx)
	return idx, true
}

// AppendGlyphRun registers a run of glyphs (already placed by an external
// text-shaping step) and returns its run index.
func (bb *BatchBuilder) AppendGlyphRun(glyphStart, glyphCount uint32, baseline, scale float32) (uint32, bool) {
	if int(glyphStart+glyphCount) > bb.batch.Glyphs.Len() {
		return 0, false
	}
	s := &bb.batch.Runs
	idx := uint32(s.Len())
	s.GlyphStart = append(s.GlyphStart, glyphStart)
	s.GlyphCount = append(s.GlyphCount, glyphCount)
	s.BaselineQ8_8 = append(s.BaselineQ8_8, fixed.FromFloat32(baseline))
	s.ScaleQ8_8 = append(s.ScaleQ8_8, fixed.FromFloat32(scale))
	return idx, true
}

// TextAppend is the input record for AppendText.
type TextAppend struct {
	X, Y          int32
	Width, Height int32
	Z             float32
	Opacity       uint8
	ColorIndex    uint8
	RunIndex      uint32
	Clip          *ClipRect
}

// AppendText validates and appends a text-run placement referencing a
// previously appended glyph run.
func (bb *BatchBuilder) AppendText(t TextAppend) (uint32, bool) {
	if t.Width <= 0 || t.Height <= 0 {
		return 0, false
	}
	if int(t.RunIndex) >= bb.batch.Runs.Len() {
		return 0, false
	}
	s := &bb.batch.Texts
	idx := uint32(s.Len())

	flags := uint8(0)
	var clipX0, clipY0, clipX1, clipY1 int16
	if t.Clip != nil {
		if !fitsI16(t.Clip.X0) || !fitsI16(t.Clip.Y0) || !fitsI16(t.Clip.X1) || !fitsI16(t.Clip.Y1) {
			return 0, false
		}
		flags |= TextFlagClip
		clipX0, clipY0, clipX1, clipY1 = int16(t.Clip.X0), int16(t.Clip.Y0), int16(t.Clip.X1), int16(t.Clip.Y1)
	}

	s.X = append(s.X, t.X)
	s.Y = append(s.Y, t.Y)
	s.Width = append(s.Width, t.Width)
	s.Height = append(s.Height, t.Height)
	s.ZQ8_8 = append(s.ZQ8_8, fixed.FromFloat32(t.Z))
	s.Opacity = append(s.Opacity, t.Opacity)
	s.ColorIndex = append(s.ColorIndex, t.ColorIndex)
	s.Flags = append(s.Flags, flags)
	s.RunIndex = append(s.RunIndex, t.RunIndex)
	s.ClipX0 = append(s.ClipX0, clipX0)
	s.ClipY0 = append(s.ClipY0, clipY0)
	s.ClipX1 = append(s.ClipX1, clipX1)
	s.ClipY1 = append(s.ClipY1, clipY1)

	bb.batch.pushCommand(CommandText, idx)
	return idx, true
}

// AppendClear appends a solid-color Clear command.
func (bb *BatchBuilder) AppendClear(colorIndex uint8) uint32 {
	s := &bb.batch.Clears
	idx := uint32(s.Len())
	s.ColorIndex = append(s.ColorIndex, colorIndex)
	bb.batch.pushCommand(CommandClear, idx)
	return idx
}

// AppendClearPattern appends a tiled-pattern Clear command. Rejects zero
// dimensions or a data slice shorter than width*height*4.
func (bb *BatchBuilder) AppendClearPattern(width, height uint16, rgba []byte) (uint32, bool) {
	if width == 0 || height == 0 {
		return 0, false
	}
	need := int(width) * int(height) * 4
	if len(rgba) < need {
		return 0, false
	}
	s := &bb.batch.ClearPatterns
	idx := uint32(s.Len())
	offset := uint32(len(s.Data))
	s.Data = append(s.Data, rgba[:need]...)
	s.Width = append(s.Width, width)
	s.Height = append(s.Height, height)
	s.DataOffset = append(s.DataOffset, offset)
	bb.batch.pushCommand(CommandClearPattern, idx)
	return idx, true
}

// AppendDebugTiles appends a debug tile-grid overlay command.
func (bb *BatchBuilder) AppendDebugTiles(lineWidth uint8, dirtyOnly bool) uint32 {
	s := &bb.batch.DebugTilesCmds
	idx := uint32(s.Len())
	flags := uint8(0)
	if dirtyOnly {
		flags |= DebugTilesFlagDirtyOnly
	}
	if lineWidth == 0 {
		lineWidth = 1
	}
	s.LineWidth = append(s.LineWidth, lineWidth)
	s.Flags = append(s.Flags, flags)
	bb.batch.pushCommand(CommandDebugTiles, idx)
	return idx
}
