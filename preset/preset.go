// Package preset holds the parsed representation of a shader preset: an
// ordered list of passes, an ordered list of LUTs, and a global parameter
// map. Parsing the on-disk `.slangp`-style file is explicitly out of scope
// (spec.md §1) — callers hand the filter chain an already-built Preset.
package preset

// Preset is the fully-parsed description of a multi-pass shader pipeline.
type Preset struct {
	// Passes are executed in order, pass 0 first.
	Passes []PassConfig

	// Luts are read-only lookup textures available to every pass under the
	// User semantic.
	Luts []LutConfig

	// Parameters holds the global name -> value overrides. A pass-local
	// override (not modeled here; passes read values via the binding
	// driver's pass-parameter map) takes precedence over this map, which in
	// turn takes precedence over a shader's own declared default.
	Parameters map[string]float32
}

// PassConfig describes one shader pass.
type PassConfig struct {
	// ShaderPath is the path the vertex/fragment SPIR-V pair was compiled
	// from. Retained for diagnostics only; the core never reads the file.
	ShaderPath string

	// Alias, if non-empty, is the name other passes use to reference this
	// pass's output/feedback (`{alias}`, `{alias}Feedback`) and the matching
	// size uniforms (`{alias}Size`, `{alias}FeedbackSize`).
	Alias string

	// Scale is the 2D scale specification used by framebuffer.Scale to
	// compute this pass's output size every frame.
	Scale ScaleConfig

	// FormatHint is the pass's preferred output format. FormatUnknown
	// resolves to the shader's own declared default, then to
	// FormatR8G8B8A8Unorm (see ResolveFormat).
	FormatHint Format

	// Wrap, MinMagFilter and MipFilter select the sampler this pass uses
	// for its own Original, Source and OriginalHistory reads, and the one
	// another pass uses when it reads this pass's output as PassOutput or
	// PassFeedback.
	Wrap         WrapMode
	MinMagFilter FilterMode
	MipFilter    FilterMode

	// Mipmap requests mip-level generation for this pass's framebuffer.
	Mipmap bool

	// FrameCountMod is the modulo applied to the FrameCount uniform for
	// this pass. Zero means no modulo.
	FrameCountMod uint32

	// FloatFramebuffer and SRGBFramebuffer bias FormatHint resolution
	// toward floating-point or sRGB-encoded formats respectively.
	FloatFramebuffer bool
	SRGBFramebuffer  bool

	// Feedback marks this pass's output as read elsewhere as
	// PassFeedback[k]. A preset parser derives this from whether any other
	// pass references `{alias}Feedback`; it is carried here as a plain
	// bool because that derivation is out of this core's scope.
	Feedback bool
}

// LutConfig describes one lookup texture, decoded once at chain
// construction and held read-only for the chain's lifetime.
type LutConfig struct {
	Name         string
	Path         string
	Wrap         WrapMode
	MinMagFilter FilterMode
	MipFilter    FilterMode
	Mipmap       bool
}
