package raster2d

// CommandType tags a RenderCommand with which columnar store its Index
// refers into.
type CommandType uint8

const (
	CommandClear CommandType = iota
	CommandClearPattern
	CommandRect
	CommandCircle
	CommandPixel
	CommandPixelA
	CommandLine
	CommandImage
	CommandText
	CommandDebugTiles
)

func (t CommandType) String() string {
	switch t {
	case CommandClear:
		return "Clear"
	case CommandClearPattern:
		return "ClearPattern"
	case CommandRect:
		return "Rect"
	case CommandCircle:
		return "Circle"
	case CommandPixel:
		return "Pixel"
	case CommandPixelA:
		return "PixelA"
	case CommandLine:
		return "Line"
	case CommandImage:
		return "Image"
	case CommandText:
		return "Text"
	case CommandDebugTiles:
		return "DebugTiles"
	default:
		return "Unknown"
	}
}

// RenderCommand is a dense (type, index) pair. index is a dense index into
// the store of that type. A batch's Commands slice establishes the
// back-to-front compositing order: draws at a later position in Commands
// composite on top of earlier ones wherever they overlap.
type RenderCommand struct {
	Type  CommandType
	Index uint32
}
