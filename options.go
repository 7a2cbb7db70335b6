package filterchain

// ChainOptions configures a Chain at construction (EXPANSION A.3).
type ChainOptions struct {
	// ForceDisableMipmaps overrides every pass/LUT's Mipmap flag to false,
	// for backends or debugging sessions where mip generation is too
	// costly or unsupported.
	ForceDisableMipmaps bool

	// FramesInFlight sizes the uniform storage ring (EXPANSION C.1) so a
	// deferred/multi-buffered backend never overwrites a UBO copy still
	// in flight on the GPU. A value of 0 or 1 means no ring (a single
	// shadow, safe only for backends that upload and submit
	// synchronously, like hal/noop).
	FramesInFlight int

	// Strict rejects a pass-0 reference to OriginalHistory[0] at
	// reflection time (spec.md §9's Open Question, resolved conservatively
	// here: undefined behavior is rejected rather than silently aliased).
	Strict bool
}

// DefaultChainOptions returns the zero-configuration options: mipmaps
// follow the preset, a single uniform shadow (no ring), and non-strict
// mode.
func DefaultChainOptions() ChainOptions {
	return ChainOptions{FramesInFlight: 1}
}
