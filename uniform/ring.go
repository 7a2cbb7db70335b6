package uniform

import "github.com/gogpu/filterchain/reflectspirv"

// Ring implements EXPANSION C.1: frames_in_flight independent Storage
// copies for a single pass, so a deferred/multi-buffered backend never
// overwrites a UBO/push region the GPU may still be reading from a prior
// frame. Grounded on librashader-runtime-vk/src/filter_pass.rs's per-pass
// UBO ring indexed by frame_count % frames_in_flight.
type Ring struct {
	shadows []*Storage
}

// NewRing allocates a Ring of the given length. A length of 0 or 1
// degrades to a single shadow, equivalent to using Storage directly.
func NewRing(refl *reflectspirv.Reflection, framesInFlight int) *Ring {
	if framesInFlight < 1 {
		framesInFlight = 1
	}
	shadows := make([]*Storage, framesInFlight)
	for i := range shadows {
		shadows[i] = NewStorage(refl)
	}
	return &Ring{shadows: shadows}
}

// Current returns the Storage slot for frameCount, indexed modulo the
// ring's length.
func (r *Ring) Current(frameCount uint32) *Storage {
	return r.shadows[int(frameCount)%len(r.shadows)]
}

// Len returns the number of shadow copies in the ring.
func (r *Ring) Len() int { return len(r.shadows) }
