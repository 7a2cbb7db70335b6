package filterchain

import "github.com/gogpu/filterchain/preset"

// ShaderSource is what the chain consumes from outside for each pass
// (spec.md §6): a compiled SPIR-V vertex/fragment pair, that shader's own
// declared parameter defaults, and its own declared output-format
// default (used as the intermediate fallback in EXPANSION C.2's format
// resolution, before the final R8G8B8A8Unorm fallback).
type ShaderSource struct {
	VertexSPIRV   []byte
	FragmentSPIRV []byte

	// Parameters holds every float parameter this shader declares, and
	// the default value to use when neither the preset's global map nor
	// a pass-local override supplies one.
	Parameters map[string]float32

	// FormatHint is this shader's own declared preferred output format,
	// consulted before the chain's final R8G8B8A8Unorm fallback.
	FormatHint preset.Format
}
