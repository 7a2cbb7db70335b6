package hal

// Resource is the base interface every capability-interface handle
// embeds. Resources must be explicitly destroyed to free backend memory;
// calling Destroy more than once is undefined behavior, matching the
// teacher HAL's resource-lifetime contract.
type Resource interface {
	Destroy()
}

// ResourceState is the coarse state machine every owned framebuffer image
// moves through (spec.md §4.9): an image is either not yet allocated, a
// shader-readable resource, the active render target of the pass
// currently writing it, or transiently a copy source/destination during
// history ring rotation. Backends that require explicit layout or
// barrier transitions (Vulkan, D3D12 descendants of this HAL) use this
// state to decide what transition command to record; backends with an
// implicit model (OpenGL-alikes) may no-op RecordTransition entirely.
type ResourceState int

const (
	// StateUnallocated marks an image slot that has no backing texture yet
	// (a history ring slot before its first write, or a framebuffer that
	// hasn't been sized for the current frame).
	StateUnallocated ResourceState = iota
	// StateShaderResource is readable by a pass as a sampled texture.
	StateShaderResource
	// StateRenderTarget is the current pass's output attachment.
	StateRenderTarget
	// StateCopySource is the source of an in-flight copy (history ring
	// rotation, per spec.md §4.6).
	StateCopySource
	// StateCopyDest is the destination of an in-flight copy.
	StateCopyDest
)

func (s ResourceState) String() string {
	switch s {
	case StateUnallocated:
		return "unallocated"
	case StateShaderResource:
		return "shader-resource"
	case StateRenderTarget:
		return "render-target"
	case StateCopySource:
		return "copy-source"
	case StateCopyDest:
		return "copy-dest"
	default:
		return "unknown"
	}
}

// Image is a backend-owned 2D color image: the framebuffer package's
// OwnedImage wraps one per scaled/history/feedback slot. Image does not
// expose a Format accessor because the owning framebuffer already tracks
// the preset.Format it was allocated with.
type Image interface {
	Resource

	// Width and Height are the image's current texel dimensions.
	Width() uint32
	Height() uint32
}

// Sampler is an opaque, backend-owned sampler object. The sampler package
// caches these keyed by (WrapMode, min/mag FilterMode, mip FilterMode,
// mipmap flag) so identical preset sampler requests across passes share one object.
type Sampler interface {
	Resource
}

// Pipeline is an opaque, backend-owned render pipeline built from a
// pass's reflected vertex/fragment SPIR-V pair by PipelineFactory.
// BuildPipeline. It is immutable and reused for every frame.
type Pipeline interface {
	Resource
}
