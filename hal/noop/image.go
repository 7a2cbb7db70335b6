package noop

import "github.com/gogpu/filterchain/preset"

// Image is a host-memory RGBA8 (or float, for float framebuffers) image.
// Pixel contents are only meaningful enough to make RecordDraw's "copy
// source over target" behavior observable in tests; it is not a shader
// interpreter.
type Image struct {
	width, height uint32
	format        preset.Format
	pixels        []byte // 4 bytes/texel regardless of format, for simplicity
	destroyed     bool
}

func newImage(width, height uint32, format preset.Format) *Image {
	return &Image{
		width:  width,
		height: height,
		format: format,
		pixels: make([]byte, int(width)*int(height)*4),
	}
}

func (i *Image) Width() uint32  { return i.width }
func (i *Image) Height() uint32 { return i.height }

func (i *Image) Destroy() { i.destroyed = true }

// Pixels exposes the image's raw host-memory backing (4 bytes/texel),
// letting a caller load a real image's bytes in or read a rendered
// result back out without this package needing its own image codec.
func (i *Image) Pixels() []byte { return i.pixels }
