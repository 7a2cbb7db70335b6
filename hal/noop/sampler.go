package noop

import "github.com/gogpu/filterchain/hal"

// Sampler is an inert handle: the noop backend does no actual texture
// filtering, so a sampler only needs to exist and be destroyable.
type Sampler struct {
	desc      hal.SamplerDescriptor
	destroyed bool
}

func (s *Sampler) Destroy() { s.destroyed = true }
