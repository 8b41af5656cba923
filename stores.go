package raster2d

// Rect flag bits.
const (
	RectFlagGradient uint8 = 1 << iota
	RectFlagClip
	RectFlagSmoothBlend
)

// Image flag bits.
const (
	ImageFlagWrapU uint8 = 1 << iota
	ImageFlagWrapV
	ImageFlagClip
)

// Text flag bits.
const (
	TextFlagClip uint8 = 1 << iota
)

// DebugTiles flag bits.
const (
	DebugTilesFlagDirtyOnly uint8 = 1 << iota
)

// Glyph bitmap pixel formats.
const (
	BitmapFormatMask8 uint8 = iota
	BitmapFormatColorBGRA
)

// RectStore is the struct-of-arrays backing every appendRect call. All
// columns have equal length; that length is the store's size.
type RectStore struct {
	X0, Y0, X1, Y1       []int16
	ColorIndex           []uint8
	RadiusQ8_8           []uint16
	RotationQ8_8         []int16
	ZQ8_8                []int16
	Opacity              []uint8
	Flags                []uint8
	GradientColor1Index  []uint8
	GradientDirX         []int16
	GradientDirY         []int16
	ClipX0, ClipY0       []int16
	ClipX1, ClipY1       []int16
}

func (s *RectStore) Len() int { return len(s.X0) }

func (s *RectStore) Clear() {
	s.X0, s.Y0, s.X1, s.Y1 = nil, nil, nil, nil
	s.ColorIndex = nil
	s.RadiusQ8_8 = nil
	s.RotationQ8_8 = nil
	s.ZQ8_8 = nil
	s.Opacity = nil
	s.Flags = nil
	s.GradientColor1Index = nil
	s.GradientDirX, s.GradientDirY = nil, nil
	s.ClipX0, s.ClipY0, s.ClipX1, s.ClipY1 = nil, nil, nil, nil
}

// CircleStore backs appendCircle.
type CircleStore struct {
	CenterX, CenterY []int16
	Radius           []uint16
	ColorIndex       []uint8
}

func (s *CircleStore) Len() int { return len(s.CenterX) }

func (s *CircleStore) Clear() {
	s.CenterX, s.CenterY = nil, nil
	s.Radius = nil
	s.ColorIndex = nil
}

// PixelStore backs appendPixel (opaque, unblended writes).
type PixelStore struct {
	X, Y       []int16
	ColorIndex []uint8
}

func (s *PixelStore) Len() int { return len(s.X) }

func (s *PixelStore) Clear() {
	s.X, s.Y = nil, nil
	s.ColorIndex = nil
}

// PixelAStore backs appendPixelA (alpha-blended single-pixel writes).
type PixelAStore struct {
	X, Y       []int16
	ColorIndex []uint8
	Alpha      []uint8
}

func (s *PixelAStore) Len() int { return len(s.X) }

func (s *PixelAStore) Clear() {
	s.X, s.Y = nil, nil
	s.ColorIndex = nil
	s.Alpha = nil
}

// LineStore backs appendLine.
type LineStore struct {
	X0, Y0, X1, Y1 []int16
	WidthQ8_8      []uint16
	ColorIndex     []uint8
	Opacity        []uint8
}

func (s *LineStore) Len() int { return len(s.X0) }

func (s *LineStore) Clear() {
	s.X0, s.Y0, s.X1, s.Y1 = nil, nil, nil, nil
	s.WidthQ8_8 = nil
	s.ColorIndex = nil
	s.Opacity = nil
}

// ImageStore holds both image assets (built once via buildImageAsset) and
// per-draw image blits (appendImage), mirroring the asset/byte-pool split
// ClearPatternStore also uses.
type ImageStore struct {
	// Assets.
	AssetWidth       []uint32
	AssetHeight      []uint32
	AssetStrideBytes []uint32
	AssetDataOffset  []uint32
	Data             []byte // concatenated RGBA8 bytes for every asset

	// Draws.
	X0, Y0, X1, Y1             []int16
	SrcX0, SrcY0, SrcX1, SrcY1 []uint16
	ImageIndex                 []uint32
	TintColorIndex             []uint8
	Opacity                    []uint8
	Flags                      []uint8
	ClipX0, ClipY0             []int16
	ClipX1, ClipY1             []int16
}

func (s *ImageStore) AssetCount() int { return len(s.AssetWidth) }
func (s *ImageStore) Len() int        { return len(s.X0) }

func (s *ImageStore) Clear() {
	s.AssetWidth, s.AssetHeight = nil, nil
	s.AssetStrideBytes, s.AssetDataOffset = nil, nil
	s.Data = nil
	s.X0, s.Y0, s.X1, s.Y1 = nil, nil, nil, nil
	s.SrcX0, s.SrcY0, s.SrcX1, s.SrcY1 = nil, nil, nil, nil
	s.ImageIndex = nil
	s.TintColorIndex = nil
	s.Opacity = nil
	s.Flags = nil
	s.ClipX0, s.ClipY0, s.ClipX1, s.ClipY1 = nil, nil, nil, nil
}

// TextStore backs appendText-style draws: one entry per text run placement.
type TextStore struct {
	X, Y           []int32
	Width, Height  []int32
	ZQ8_8          []int16
	Opacity        []uint8
	ColorIndex     []uint8
	Flags          []uint8
	RunIndex       []uint32
	ClipX0, ClipY0 []int16
	ClipX1, ClipY1 []int16
}

func (s *TextStore) Len() int { return len(s.X) }

func (s *TextStore) Clear() {
	s.X, s.Y = nil, nil
	s.Width, s.Height = nil, nil
	s.ZQ8_8 = nil
	s.Opacity = nil
	s.ColorIndex = nil
	s.Flags = nil
	s.RunIndex = nil
	s.ClipX0, s.ClipY0, s.ClipX1, s.ClipY1 = nil, nil, nil, nil
}

// RunStore holds glyph runs: a contiguous span of glyphs sharing a baseline
// and scale.
type RunStore struct {
	GlyphStart   []uint32
	GlyphCount   []uint32
	BaselineQ8_8 []int16
	ScaleQ8_8    []int16
}

func (s *RunStore) Len() int { return len(s.GlyphStart) }

func (s *RunStore) Clear() {
	s.GlyphStart, s.GlyphCount = nil, nil
	s.BaselineQ8_8, s.ScaleQ8_8 = nil, nil
}

// GlyphStore holds the flat pool of glyph placements referenced by run
// spans. Coordinates are Q8.8 offsets from the run's origin.
type GlyphStore struct {
	X, Y        []int16
	BitmapIndex []uint32
}

func (s *GlyphStore) Len() int { return len(s.X) }

func (s *GlyphStore) Clear() {
	s.X, s.Y = nil, nil
	s.BitmapIndex = nil
}

// BitmapStore holds glyph bitmaps. A glyph either owns its own pixel slab
// (AtlasIndex == -1, pixels taken from Pixels[PixelsOffset:PixelsOffset+
// PixelsLen]) or points into a shared Atlas at (AtlasX, AtlasY).
type BitmapStore struct {
	Width, Height     []uint16
	BearingX, BearingY []int16
	Advance           []uint16
	Stride            []uint16
	Format            []uint8
	PixelsOffset      []uint32
	PixelsLen         []uint32
	AtlasIndex        []int32
	AtlasX, AtlasY    []uint16
	Pixels            []byte // shared pool for own-pixel glyphs
}

func (s *BitmapStore) Len() int { return len(s.Width) }

func (s *BitmapStore) Clear() {
	s.Width, s.Height = nil, nil
	s.BearingX, s.BearingY = nil, nil
	s.Advance = nil
	s.Stride = nil
	s.Format = nil
	s.PixelsOffset, s.PixelsLen = nil, nil
	s.AtlasIndex = nil
	s.AtlasX, s.AtlasY = nil, nil
	s.Pixels = nil
}

// AtlasStore holds shared glyph atlas planes.
type AtlasStore struct {
	Width, Height, Stride []uint32
	PixelsOffset          []uint32
	Pixels                []byte
}

func (s *AtlasStore) Len() int { return len(s.Width) }

func (s *AtlasStore) Clear() {
	s.Width, s.Height, s.Stride = nil, nil, nil
	s.PixelsOffset = nil
	s.Pixels = nil
}

// ClearStore backs plain Clear commands (one solid color, no pattern).
type ClearStore struct {
	ColorIndex []uint8
}

func (s *ClearStore) Len() int { return len(s.ColorIndex) }
func (s *ClearStore) Clear()   { s.ColorIndex = nil }

// ClearPatternStore backs ClearPattern commands: each entry describes a
// small tile-sized RGBA pattern to repeat across the target.
type ClearPatternStore struct {
	Width, Height []uint16
	DataOffset    []uint32
	Data          []byte // concatenated RGBA8 pattern bytes
}

func (s *ClearPatternStore) Len() int { return len(s.Width) }

func (s *ClearPatternStore) Clear() {
	s.Width, s.Height = nil, nil
	s.DataOffset = nil
	s.Data = nil
}

// DebugTilesStore backs DebugTiles commands.
type DebugTilesStore struct {
	LineWidth []uint8
	Flags     []uint8
}

func (s *DebugTilesStore) Len() int { return len(s.LineWidth) }

func (s *DebugTilesStore) Clear() {
	s.LineWidth = nil
	s.Flags = nil
}
