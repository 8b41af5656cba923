package raster2d

// MacroFactor is the ratio between a macro tile's edge and a regular tile's
// edge in the multi-level tile stream model.
const MacroFactor = 2

// TileCommand is a command already localized to a single tile: X, Y,
// WMinus1, HMinus1 describe the exact pixel rectangle (tile-local, 0-based)
// the rasterizer may touch for this command within the tile. Tile-local
// coordinates fit in a byte, so tile size must be ≤ 256 wherever a
// TileStream is used.
type TileCommand struct {
	Type       CommandType
	StoreIndex uint32
	Order      uint32
	X, Y       uint8
	WMinus1    uint8
	HMinus1    uint8
}

// MacroCommand is a command localized to a macro tile (tileSize*MacroFactor
// on a side); its rect may exceed a byte so it is intersected against a
// regular tile and converted to a TileCommand during premerge.
type MacroCommand struct {
	Type       CommandType
	StoreIndex uint32
	Order      uint32
	X, Y       int32
	W, H       int32
}

// GlobalCommand applies to every tile; its bounds come from the paired
// GlobalBound entry supplied alongside it in the TileStream.
type GlobalCommand struct {
	Type       CommandType
	StoreIndex uint32
	Order      uint32
}

// GlobalBound is the target-space AABB of the GlobalCommand at the same
// index. Kept as a parallel array rather than paired inline; premergeSuppliedStream
// always reads GlobalCommands[i] and GlobalBounds[i] together in the same
// loop iteration, so the two arrays can never drift apart.
type GlobalBound struct {
	X0, Y0, X1, Y1 int32
}

// TileStream is the optional, caller-supplied or auto-generated multi-level
// command index. When PreMerged, TileCommands/TileOffsets are ready for
// direct rasterization; otherwise the optimizer premerges
// Tile/Macro/GlobalCommands into a merged stream before use.
type TileStream struct {
	Enabled   bool
	PreMerged bool

	TileCommands []TileCommand
	TileOffsets  []uint32

	MacroCommands []MacroCommand
	MacroOffsets  []uint32

	GlobalCommands []GlobalCommand
	GlobalBounds   []GlobalBound
}

func (ts *TileStream) Reset() {
	ts.Enabled = false
	ts.PreMerged = false
	ts.TileCommands = nil
	ts.TileOffsets = nil
	ts.MacroCommands = nil
	ts.MacroOffsets = nil
	ts.GlobalCommands = nil
	ts.GlobalBounds = nil
}
