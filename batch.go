package raster2d

// RenderBatch is the full set of columnar stores, the ordered command list,
// a palette, an optional tile stream, and the configuration knobs that
// govern how OptimizeBatch and RenderOptimized treat it.
type RenderBatch struct {
	Rects          RectStore
	Circles        CircleStore
	Pixels         PixelStore
	PixelAs        PixelAStore
	Lines          LineStore
	Images         ImageStore
	Texts          TextStore
	Runs           RunStore
	Glyphs         GlyphStore
	Bitmaps        BitmapStore
	Atlases        AtlasStore
	Clears         ClearStore
	ClearPatterns  ClearPatternStore
	DebugTilesCmds DebugTilesStore

	Commands   []RenderCommand
	Palette    Palette
	TileStream TileStream

	// Configuration knobs. See spec §6 for the authoritative table.
	TileSize                  uint16
	AutoTileStream            bool
	AssumeFrontToBack         bool
	ReuseOptimized            bool
	Revision                  uint64
	CommandRevision           uint64
	UseCommandRevision        bool
	StrictValidation          bool
	CircleBoundsPad           uint8
	DisableOpaqueRectFastPath bool

	ValidationReport *RenderValidationReport
	Profile          *RendererProfile
}

// NewRenderBatch returns an empty batch with the spec-mandated defaults:
// autoTileStream and assumeFrontToBack both default to true, everything
// else defaults to zero/false.
func NewRenderBatch() *RenderBatch {
	return &RenderBatch{
		AutoTileStream:    true,
		AssumeFrontToBack: true,
	}
}

// ClearAll resets every column, the command list, tile stream, palette, and
// configuration knob to the default NewRenderBatch gives it (AutoTileStream
// and AssumeFrontToBack true, everything else zero/false). The
// ValidationReport and Profile sinks are left as they are. Revision and
// CommandRevision are reset to zero too; a caller relying on ReuseOptimized
// across a ClearAll must bump Revision afterward to force re-optimization.
func (b *RenderBatch) ClearAll() {
	b.Rects.Clear()
	b.Circles.Clear()
	b.Pixels.Clear()
	b.PixelAs.Clear()
	b.Lines.Clear()
	b.Images.Clear()
	b.Texts.Clear()
	b.Runs.Clear()
	b.Glyphs.Clear()
	b.Bitmaps.Clear()
	b.Atlases.Clear()
	b.Clears.Clear()
	b.ClearPatterns.Clear()
	b.DebugTilesCmds.Clear()

	b.Commands = nil
	b.Palette.Reset()
	b.TileStream.Reset()

	b.TileSize = 0
	b.AutoTileStream = true
	b.AssumeFrontToBack = true
	b.ReuseOptimized = false
	b.Revision = 0
	b.CommandRevision = 0
	b.UseCommandRevision = false
	b.StrictValidation = false
	b.CircleBoundsPad = 0
	b.DisableOpaqueRectFastPath = false
}

// pushCommand appends a command to the command list and bumps CommandRevision.
func (b *RenderBatch) pushCommand(t CommandType, index uint32) {
	b.Commands = append(b.Commands, RenderCommand{Type: t, Index: index})
	b.CommandRevision++
}
