package hal

// Device is the narrow capability surface the chain package drives
// every frame: it owns image/sampler/pipeline allocation and command
// recording/submission for exactly one backend. Unlike the teacher HAL's
// Device, there is no instance/adapter/surface discovery layer here — a
// filter-chain runtime is handed an already-opened Device by its caller
// (spec.md §6 Non-goals: no window or presentation management).
type Device interface {
	PipelineFactory
	CommandRecorder

	// CreateImage allocates a backend-owned color image for a framebuffer
	// slot (spec.md §4.5/§4.6/§4.7).
	CreateImage(desc *ImageDescriptor) (Image, error)

	// CreateSampler allocates a backend-owned sampler. The sampler package
	// calls this once per distinct (wrap, filter, mip, mipmap) combination the
	// preset's passes and LUTs reference, and caches the result.
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)

	// Submit submits a recorded command buffer and blocks until the
	// backend accepts it (spec.md §5: frame submission is synchronous
	// from the chain's point of view; overlap across frames, if any, is
	// the backend's own concern).
	Submit(cmd CommandBuffer) error
}

// PipelineFactory builds the one immutable Pipeline a pass needs from its
// reflected SPIR-V pair (spec.md §4.1's per-pass build step, run once at
// chain construction).
type PipelineFactory interface {
	// BuildPipeline compiles/links a pass's vertex and fragment SPIR-V
	// into a backend pipeline targeting outputFormat. The Reflection
	// itself does not need to be passed in: every detail a backend needs
	// to build a pipeline (attribute layout, binding slots) is already
	// present in the SPIR-V's own decorations.
	BuildPipeline(desc *PipelineDescriptor) (Pipeline, error)
}

// CommandRecorder records the three command kinds a filter-chain frame
// ever issues (spec.md §4.9): a full-screen draw, a resource-state
// transition, and an image copy. It intentionally has no notion of bind
// group objects, buffer barriers, or render bundles — those are the
// teacher HAL's generic-WebGPU vocabulary, collapsed here into the
// single DescriptorBinding a full-screen-triangle pass actually needs.
type CommandRecorder interface {
	// BeginCommandBuffer starts recording a new command buffer.
	BeginCommandBuffer() (CommandBuffer, error)

	// RecordDraw records a full-screen draw into target using pipeline,
	// with the given descriptor bindings. viewport has pass 4.9's
	// "cropped last-pass viewport" baked in.
	RecordDraw(cmd CommandBuffer, pipeline Pipeline, target Image, viewport Rect, binding DescriptorBinding)

	// RecordTransition records a resource-state transition on img.
	// Backends without an explicit barrier model may treat this as a
	// no-op.
	RecordTransition(cmd CommandBuffer, img Image, from, to ResourceState)

	// RecordCopy records a same-size image-to-image copy (the history
	// ring's copy of the frame input; feedback pairs swap without a copy).
	RecordCopy(cmd CommandBuffer, region CopyRegion)

	// EndCommandBuffer finishes recording, making cmd ready for Submit.
	EndCommandBuffer(cmd CommandBuffer) error
}
