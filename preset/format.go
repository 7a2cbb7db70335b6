package preset

// Format names a pixel format an OwnedImage (or the caller's viewport
// target) may be allocated in. The list is deliberately small — the handful
// of formats a CRT-style filter chain actually needs — rather than the
// teacher's full cross-API format table, since backend-specific format
// negotiation is out of this core's scope (spec.md §1).
type Format uint8

const (
	// FormatUnknown means "no preference" — resolved per spec.md §4.5 step 2
	// and EXPANSION C.2: the pass's own shader-declared default first, then
	// FormatR8G8B8A8Unorm.
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8Srgb
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8Srgb
	FormatR16G16B16A16Float
	FormatR32G32B32A32Float
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatUnknown:
		return "unknown"
	case FormatR8Unorm:
		return "r8_unorm"
	case FormatR8G8B8A8Unorm:
		return "r8g8b8a8_unorm"
	case FormatR8G8B8A8Srgb:
		return "r8g8b8a8_srgb"
	case FormatB8G8R8A8Unorm:
		return "b8g8r8a8_unorm"
	case FormatB8G8R8A8Srgb:
		return "b8g8r8a8_srgb"
	case FormatR16G16B16A16Float:
		return "r16g16b16a16_float"
	case FormatR32G32B32A32Float:
		return "r32g32b32a32_float"
	default:
		return "invalid"
	}
}

// IsSRGB reports whether the format applies an sRGB transfer function on
// read/write, as used by PassConfig.SRGBFramebuffer resolution.
func (f Format) IsSRGB() bool {
	return f == FormatR8G8B8A8Srgb || f == FormatB8G8R8A8Srgb
}

// IsFloat reports whether the format stores floating-point components, as
// used by PassConfig.FloatFramebuffer resolution.
func (f Format) IsFloat() bool {
	return f == FormatR16G16B16A16Float || f == FormatR32G32B32A32Float
}

// ResolveFormat implements spec.md §4.5 step 2 plus EXPANSION C.2: a pass's
// Unknown format hint resolves to the shader's own declared default
// (shaderDefault, FormatUnknown if the shader declares none) before
// falling back to FormatR8G8B8A8Unorm. A pass requesting a float or sRGB
// framebuffer nudges a resolved-but-plain-unorm format toward the matching
// variant.
func ResolveFormat(hint, shaderDefault Format, wantFloat, wantSRGB bool) Format {
	resolved := hint
	if resolved == FormatUnknown {
		resolved = shaderDefault
	}
	if resolved == FormatUnknown {
		resolved = FormatR8G8B8A8Unorm
	}
	if wantFloat && !resolved.IsFloat() {
		resolved = FormatR16G16B16A16Float
	}
	if wantSRGB && !resolved.IsFloat() && !resolved.IsSRGB() {
		switch resolved {
		case FormatB8G8R8A8Unorm:
			resolved = FormatB8G8R8A8Srgb
		default:
			resolved = FormatR8G8B8A8Srgb
		}
	}
	return resolved
}
