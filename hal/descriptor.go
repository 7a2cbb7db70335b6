package hal

import "github.com/gogpu/filterchain/preset"

// Rect is an integer-pixel rectangle, used both as a render pass's
// viewport and as a copy region's extent (spec.md §4.9).
type Rect struct {
	X, Y          uint32
	Width, Height uint32
}

// TextureBinding pairs a sampled image with the sampler it is read
// through, at a fixed SPIR-V binding slot (reflectspirv.TextureMeta's
// Binding field). The binding driver (package binding) builds one of
// these per texture semantic a pass's reflection references.
type TextureBinding struct {
	Binding uint32
	Image   Image
	Sampler Sampler
}

// DescriptorBinding bundles everything a single draw call reads besides
// the vertex buffer: the uniform-buffer bytes (nil if the pass declares
// no UBO), the push-constant bytes (nil if none), and the resolved
// texture/sampler pairs (spec.md §4.8's per-frame binding resolution).
type DescriptorBinding struct {
	UboBytes  []byte
	PushBytes []byte
	Textures  []TextureBinding
}

// PipelineDescriptor is PipelineFactory.BuildPipeline's configuration:
// everything about a pass that is fixed for the chain's lifetime and
// does not change frame to frame (spec.md §4.1's per-pass build step).
type PipelineDescriptor struct {
	VertexSPIRV   []byte
	FragmentSPIRV []byte
	OutputFormat  preset.Format
	// Label is a human-readable name surfaced in backend debug markers
	// and error messages (the pass's alias, or its index if unaliased).
	Label string
}

// ImageDescriptor is Device.CreateImage's configuration for a
// framebuffer-owned image (original, history slot, pass output, or
// feedback slot).
type ImageDescriptor struct {
	Width, Height uint32
	Format        preset.Format
	Mipmap        bool
	Label         string
}

// SamplerDescriptor configures a cached sampler (spec.md §4.4): wrap mode
// applies to both axes uniformly, matching every shader preset format
// this runtime targets.
type SamplerDescriptor struct {
	Wrap           preset.WrapMode
	MinMagFilter   preset.FilterMode
	MipFilter      preset.FilterMode
	MipmapsEnabled bool
}

// CopyRegion describes a same-size image-to-image copy, used to copy a
// frame's input into its history ring slot (spec.md §4.6).
type CopyRegion struct {
	Src, Dst      Image
	Width, Height uint32
}
