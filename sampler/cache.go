// Package sampler implements C4: a cache of backend samplers keyed by
// the (wrap, min/mag filter, mip filter, mipmap) tuple a preset pass or LUT
// config requests, so that two passes asking for the same combination
// share one backend object (spec.md §4.4). Grounded on the teacher HAL's
// CreateSampler/DestroySampler Device pair (hal/api.go), generalized from
// a descriptor-in/handle-out call into a deduplicating cache.
package sampler

import (
	"fmt"

	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/preset"
)

// Key is the deduplication key for one sampler configuration.
type Key struct {
	Wrap         preset.WrapMode
	MinMagFilter preset.FilterMode
	MipFilter    preset.FilterMode
	Mipmap       bool
}

// Cache materializes every distinct Key it is asked for exactly once.
// Per EXPANSION C.3/§4.4, a chain builds its full set of samplers eagerly
// at construction time rather than lazily on first use, so a frame never
// pays a backend sampler-creation cost.
type Cache struct {
	device  hal.Device
	entries map[Key]hal.Sampler
}

// NewCache returns an empty Cache bound to device.
func NewCache(device hal.Device) *Cache {
	return &Cache{device: device, entries: make(map[Key]hal.Sampler)}
}

// Get returns the cached sampler for key, creating and caching it via the
// backend on first request. Preload is expected to have already filled
// every key a chain will ever ask for; a miss here means some caller is
// requesting a combination no preset pass or LUT declared up front.
func (c *Cache) Get(key Key) (hal.Sampler, error) {
	if s, ok := c.entries[key]; ok {
		return s, nil
	}
	hal.Logger().Warn("sampler cache miss, filling lazily", "key", key)
	s, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Wrap:           key.Wrap,
		MinMagFilter:   key.MinMagFilter,
		MipFilter:      key.MipFilter,
		MipmapsEnabled: key.Mipmap,
	})
	if err != nil {
		return nil, fmt.Errorf("sampler: create %+v: %w", key, err)
	}
	c.entries[key] = s
	return s, nil
}

// Preload eagerly creates samplers for every key in keys, returning the
// first creation error encountered (if any), so that binding resolution
// at frame time never needs to fall through to backend allocation.
func (c *Cache) Preload(keys []Key) error {
	for _, k := range keys {
		if _, ok := c.entries[k]; ok {
			continue
		}
		s, err := c.device.CreateSampler(&hal.SamplerDescriptor{
			Wrap:           k.Wrap,
			MinMagFilter:   k.MinMagFilter,
			MipFilter:      k.MipFilter,
			MipmapsEnabled: k.Mipmap,
		})
		if err != nil {
			return fmt.Errorf("sampler: create %+v: %w", k, err)
		}
		c.entries[k] = s
	}
	return nil
}

// Destroy releases every cached sampler.
func (c *Cache) Destroy() {
	for _, s := range c.entries {
		s.Destroy()
	}
	c.entries = make(map[Key]hal.Sampler)
}

// PassKey derives the sampler Key a preset.PassConfig declares.
func PassKey(pass preset.PassConfig) Key {
	return Key{
		Wrap:         pass.Wrap,
		MinMagFilter: pass.MinMagFilter,
		MipFilter:    pass.MipFilter,
		Mipmap:       pass.Mipmap,
	}
}

// LutKey derives the sampler Key a preset.LutConfig declares.
func LutKey(lut preset.LutConfig) Key {
	return Key{
		Wrap:         lut.Wrap,
		MinMagFilter: lut.MinMagFilter,
		MipFilter:    lut.MipFilter,
		Mipmap:       lut.Mipmap,
	}
}
