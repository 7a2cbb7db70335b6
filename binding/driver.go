// Package binding implements C8, the binding driver: every frame, for
// every pass, it walks that pass's Reflection and resolves each
// classified member to a concrete value or texture, writing uniform
// bytes via package uniform and assembling a hal.DescriptorBinding for
// the draw call. Grounded on librashader-runtime-*'s FilterPass::bind
// (original_source/), generalized from a single-backend Vulkan/wgpu
// binder into the abstract hal.TextureBinding vocabulary.
package binding

import (
	"fmt"

	"github.com/gogpu/filterchain/framebuffer"
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/reflectspirv"
	"github.com/gogpu/filterchain/sampler"
	"github.com/gogpu/filterchain/semantics"
	"github.com/gogpu/filterchain/uniform"
)

// FrameContext bundles the per-frame, per-draw values spec.md §4.8 lists
// as inputs that are not shader-declared textures (MVP, frame counters,
// sizes).
type FrameContext struct {
	MVP              [16]float32
	FrameCount       uint32
	FrameDirection   int32
	OutputSize       framebuffer.Size
	FinalViewport    framebuffer.Size
	PassParameters   map[string]float32
	GlobalParameters map[string]float32
}

// TextureSource resolves every indexable texture accessor spec.md §4.8
// lists as a binding-driver input. PassIndex identifies the pass being
// bound, used to enforce the feed-forward-only rule on PassOutput.
type TextureSource struct {
	PassIndex int

	Original        *framebuffer.OwnedImage
	Source          *framebuffer.OwnedImage
	OriginalHistory *framebuffer.HistoryRing
	// PassOutputs holds every pass's OwnedImage, indexed by pass number;
	// only indices < PassIndex may be read (feed-forward only).
	PassOutputs []*framebuffer.OwnedImage
	// PassFeedbacks holds every pass's FeedbackPair, indexed by pass
	// number. Any index may be read; the *previous* frame's output is
	// always the one exposed.
	PassFeedbacks []*framebuffer.FeedbackPair
	// Luts holds the decoded LUT images, indexed by declaration order.
	Luts []*framebuffer.OwnedImage

	// PassSamplerKey is the sampler.Key for the pass config whose output
	// is being read, indexed the same way as PassOutputs.
	PassSamplerKey []sampler.Key
	// LutSamplerKey is the sampler.Key for each LUT's own config.
	LutSamplerKey []sampler.Key
	// OwnSamplerKey is this pass's own sampler key, used for Original/
	// Source/OriginalHistory reads (spec.md §4.8 step 5: "the pass config
	// whose output is read" — for the reads that aren't another pass's
	// output, that is this pass's own declared sampler).
	OwnSamplerKey sampler.Key
}

// UnresolvedBindingError is returned when a reflected texture semantic
// has no live resource to satisfy it at draw time (spec.md §4.8 step 4).
type UnresolvedBindingError struct {
	Semantic semantics.TextureSemantic
	Index    int
}

func (e *UnresolvedBindingError) Error() string {
	return fmt.Sprintf("binding: unresolved %s[%d] at draw time", e.Semantic, e.Index)
}

// Bind implements the full C8 procedure for one pass's draw: it writes
// every classified uniform member into storage and resolves every
// classified texture member into a hal.TextureBinding, returning the
// assembled DescriptorBinding.
func Bind(refl *reflectspirv.Reflection, storage *uniform.Storage, samplers *sampler.Cache, frame FrameContext, floatDefaults map[string]float32, src TextureSource) (hal.DescriptorBinding, error) {
	if err := bindVariables(refl, storage, frame); err != nil {
		return hal.DescriptorBinding{}, err
	}
	bindParameters(refl, storage, frame, floatDefaults)

	textures, err := bindTextures(refl, samplers, src)
	if err != nil {
		return hal.DescriptorBinding{}, err
	}
	if err := bindTextureSizes(refl, storage, src); err != nil {
		return hal.DescriptorBinding{}, err
	}

	return hal.DescriptorBinding{
		UboBytes:  storage.UboBytes(),
		PushBytes: storage.PushBytes(),
		Textures:  textures,
	}, nil
}

// bindVariables implements §4.8 step 1.
func bindVariables(refl *reflectspirv.Reflection, storage *uniform.Storage, frame FrameContext) error {
	for sem, meta := range refl.VariableMeta {
		switch sem {
		case semantics.VarMVP:
			storage.WriteMat4(meta.Offset, frame.MVP)
		case semantics.VarOutput:
			storage.WriteVec4(meta.Offset, meta.Components, float32(frame.OutputSize.Width), float32(frame.OutputSize.Height))
		case semantics.VarFinalViewport:
			storage.WriteVec4(meta.Offset, meta.Components, float32(frame.FinalViewport.Width), float32(frame.FinalViewport.Height))
		case semantics.VarFrameCount:
			storage.WriteU32(meta.Offset, frame.FrameCount)
		case semantics.VarFrameDirection:
			storage.WriteI32(meta.Offset, frame.FrameDirection)
		}
	}
	return nil
}

// bindParameters implements §4.8 step 2: pass parameter, else global
// parameter, else the shader's own declared default.
func bindParameters(refl *reflectspirv.Reflection, storage *uniform.Storage, frame FrameContext, floatDefaults map[string]float32) {
	for name, meta := range refl.ParameterMeta {
		value, ok := frame.PassParameters[name]
		if !ok {
			value, ok = frame.GlobalParameters[name]
		}
		if !ok {
			value = floatDefaults[name]
		}
		storage.WriteF32(meta.Offset, value)
	}
}

// resolveTexture implements §4.8 step 4's per-semantic resolution rules,
// returning the resolved image and the sampler key of the config that
// owns it.
func resolveTexture(key reflectspirv.TextureKey, src TextureSource) (*framebuffer.OwnedImage, sampler.Key, error) {
	switch key.Semantic {
	case semantics.TexOriginal:
		if src.Original == nil {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		return src.Original, src.OwnSamplerKey, nil
	case semantics.TexSource:
		if src.Source == nil {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		return src.Source, src.OwnSamplerKey, nil
	case semantics.TexOriginalHistory:
		if src.OriginalHistory == nil || key.Index >= src.OriginalHistory.Len() {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		return src.OriginalHistory.At(key.Index), src.OwnSamplerKey, nil
	case semantics.TexPassOutput:
		if key.Index >= src.PassIndex || key.Index >= len(src.PassOutputs) || src.PassOutputs[key.Index] == nil {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		k := sampler.Key{}
		if key.Index < len(src.PassSamplerKey) {
			k = src.PassSamplerKey[key.Index]
		}
		return src.PassOutputs[key.Index], k, nil
	case semantics.TexPassFeedback:
		if key.Index >= len(src.PassFeedbacks) || src.PassFeedbacks[key.Index] == nil {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		k := sampler.Key{}
		if key.Index < len(src.PassSamplerKey) {
			k = src.PassSamplerKey[key.Index]
		}
		return src.PassFeedbacks[key.Index].Previous, k, nil
	case semantics.TexUser:
		if key.Index >= len(src.Luts) || src.Luts[key.Index] == nil {
			return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
		}
		k := sampler.Key{}
		if key.Index < len(src.LutSamplerKey) {
			k = src.LutSamplerKey[key.Index]
		}
		return src.Luts[key.Index], k, nil
	default:
		return nil, sampler.Key{}, &UnresolvedBindingError{Semantic: key.Semantic, Index: key.Index}
	}
}

// bindTextures implements §4.8 steps 4-6 for sampled-image bindings.
func bindTextures(refl *reflectspirv.Reflection, samplers *sampler.Cache, src TextureSource) ([]hal.TextureBinding, error) {
	bindings := make([]hal.TextureBinding, 0, len(refl.TextureMeta))
	for key, meta := range refl.TextureMeta {
		img, samplerKey, err := resolveTexture(key, src)
		if err != nil {
			return nil, err
		}
		s, err := samplers.Get(samplerKey)
		if err != nil {
			return nil, fmt.Errorf("binding: sampler for %s[%d]: %w", key.Semantic, key.Index, err)
		}
		bindings = append(bindings, hal.TextureBinding{
			Binding: meta.Binding,
			Image:   img.Image(),
			Sampler: s,
		})
	}
	return bindings, nil
}

// bindTextureSizes implements §4.8 step 3.
func bindTextureSizes(refl *reflectspirv.Reflection, storage *uniform.Storage, src TextureSource) error {
	for key, meta := range refl.TextureSizeMeta {
		img, _, err := resolveTexture(key, src)
		if err != nil {
			return err
		}
		size := img.Size()
		storage.WriteVec4(meta.Offset, 4, float32(size.Width), float32(size.Height))
	}
	return nil
}
