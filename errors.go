package raster2d

import "errors"

// Construction-time errors. These are the only errors that cross the API
// boundary; everything that happens during optimize/render is reported
// through valid flags and RenderValidationIssue records instead, per the
// no-panic, no-exception policy of the render pipeline.
var (
	ErrNilBuffer      = errors.New("raster2d: target buffer is nil")
	ErrZeroDimension  = errors.New("raster2d: target width or height is zero")
	ErrStrideTooSmall = errors.New("raster2d: stride is smaller than width*4")
	ErrBufferTooSmall = errors.New("raster2d: buffer is smaller than stride*height")
)
