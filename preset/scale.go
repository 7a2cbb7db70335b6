package preset

// ScaleType selects what a ScaleConfig axis's Factor is relative to.
type ScaleType uint8

const (
	// ScaleSource scales relative to the current source image's size (the
	// output of the previous pass, or the original input for pass 0).
	ScaleSource ScaleType = iota
	// ScaleViewport scales relative to the final viewport's size.
	ScaleViewport
	// ScaleAbsolute interprets Factor as an exact pixel count.
	ScaleAbsolute
	// ScaleOriginal scales relative to the original input's size (the
	// current frame's input image).
	ScaleOriginal
)

// String returns the canonical lowercase name of the scale type.
func (t ScaleType) String() string {
	switch t {
	case ScaleSource:
		return "source"
	case ScaleViewport:
		return "viewport"
	case ScaleAbsolute:
		return "absolute"
	case ScaleOriginal:
		return "original"
	default:
		return "unknown"
	}
}

// AxisScale is one axis (X or Y) of a ScaleConfig.
type AxisScale struct {
	Type   ScaleType
	Factor float32
}

// ScaleConfig is the 2D scale specification a pass uses to compute its
// output framebuffer size every frame (framebuffer.Scale implements the
// algorithm in spec.md §4.5).
type ScaleConfig struct {
	X AxisScale
	Y AxisScale
}
