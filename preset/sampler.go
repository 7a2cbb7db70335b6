package preset

// WrapMode selects how a sampler addresses texture coordinates outside the
// [0,1] range. Named WrapMode (rather than the teacher's AddressMode) to
// match the vocabulary shader presets use.
type WrapMode uint8

const (
	// WrapClampToEdge clamps coordinates to the edge texel.
	WrapClampToEdge WrapMode = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
	// WrapMirroredRepeat tiles the texture, mirroring every other tile.
	WrapMirroredRepeat
	// WrapClampToBorder samples a fixed border color (typically (0,0,0,0))
	// outside the texture bounds.
	WrapClampToBorder
)

// String returns the canonical name of the wrap mode.
func (w WrapMode) String() string {
	switch w {
	case WrapClampToEdge:
		return "clamp_to_edge"
	case WrapRepeat:
		return "repeat"
	case WrapMirroredRepeat:
		return "mirrored_repeat"
	case WrapClampToBorder:
		return "clamp_to_border"
	default:
		return "unknown"
	}
}

// FilterMode selects the texel filtering a sampler applies. The same type
// is reused for the min/mag filter and the mipmap filter, as in the
// teacher's FilterMode/MipmapFilterMode pair.
type FilterMode uint8

const (
	// FilterNearest selects the nearest texel (or mip level).
	FilterNearest FilterMode = iota
	// FilterLinear interpolates between texels (or mip levels).
	FilterLinear
)

// String returns the canonical name of the filter mode.
func (f FilterMode) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "unknown"
	}
}
