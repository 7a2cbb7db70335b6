// Package filterchain implements C9, the chain scheduler (spec.md §4.9):
// it owns every pass's pipeline and backing framebuffer, the history
// ring, and the per-pass feedback pairs, and drives one Device through a
// full frame's worth of draws. Grounded on gogpu-wgpu's device/queue
// submission pattern (hal/api.go's Device.Submit), generalized from a
// single draw call into the ordered multi-pass schedule spec.md §4.9
// describes.
package filterchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/filterchain/framebuffer"
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/preset"
	"github.com/gogpu/filterchain/reflectspirv"
	"github.com/gogpu/filterchain/sampler"
	"github.com/gogpu/filterchain/semantics"
	"github.com/gogpu/filterchain/uniform"
)

// ChainInput bundles everything NewChain needs beyond the backend
// Device itself. Shaders must be in the same order as Preset.Passes.
// Decoding LUT image files from disk is out of this core's scope
// (spec.md §1 Non-goals) — LutImages/LutSizes are already-uploaded
// handles, in the same order as Preset.Luts.
type ChainInput struct {
	Preset    preset.Preset
	Shaders   []ShaderSource
	LutImages []hal.Image
	LutSizes  []framebuffer.Size
}

// passState is everything the chain keeps alive for one pass across
// frames.
type passState struct {
	cfg              preset.PassConfig
	shaderFormatHint preset.Format
	shaderDefaults   map[string]float32

	reflection *reflectspirv.Reflection
	pipeline   hal.Pipeline
	output     *framebuffer.OwnedImage
	feedback   *framebuffer.FeedbackPair // nil unless cfg.Feedback
	uniforms   *uniform.Ring
	samplerKey sampler.Key
}

// Chain is a constructed, ready-to-run filter chain (spec.md §3's
// lifecycle: Preset + shaders -> NewChain -> repeated Frame calls ->
// Destroy).
type Chain struct {
	device           hal.Device
	passes           []*passState
	luts             []*framebuffer.OwnedImage
	lutKeys          []sampler.Key
	samplers         *sampler.Cache
	history          *framebuffer.HistoryRing
	globalParameters map[string]float32
	opts             ChainOptions
}

// classifyAllocErr guesses an AllocErrorKind from a backend error. Most
// hal.Device implementations only ever report ErrDeviceOutOfMemory as a
// sentinel; anything else is assumed to be a format the backend rejected.
func classifyAllocErr(err error) AllocErrorKind {
	if errors.Is(err, hal.ErrDeviceOutOfMemory) {
		return AllocOutOfMemory
	}
	return AllocFormatUnsupported
}

func passLabel(cfg preset.PassConfig, index int) string {
	if cfg.Alias != "" {
		return cfg.Alias
	}
	return fmt.Sprintf("pass%d", index)
}

// NewChain reflects every pass's SPIR-V pair, builds its pipeline, and
// allocates every backend resource the chain will reuse across frames
// (spec.md §3's Lifecycle, §4.1-§4.7). On any failure, every resource
// already built in this call is torn down before NewChain returns the
// error; the returned *Chain is nil in that case.
func NewChain(device hal.Device, input ChainInput, opts ChainOptions) (chain *Chain, err error) {
	if len(input.Shaders) != len(input.Preset.Passes) {
		return nil, fmt.Errorf("filterchain: %d shader sources for %d passes", len(input.Shaders), len(input.Preset.Passes))
	}
	if len(input.LutImages) != len(input.Preset.Luts) || len(input.LutSizes) != len(input.Preset.Luts) {
		return nil, fmt.Errorf("filterchain: %d LUT images/sizes for %d LUT configs", len(input.LutImages), len(input.Preset.Luts))
	}

	c := &Chain{
		device:           device,
		samplers:         sampler.NewCache(device),
		globalParameters: input.Preset.Parameters,
		opts:             opts,
	}
	defer func() {
		if err != nil {
			c.teardown()
			chain = nil
		}
	}()

	aliases := reflectspirv.BuildAliasTable(input.Preset.Passes)
	c.passes = make([]*passState, len(input.Preset.Passes))

	samplerKeys := make([]sampler.Key, 0, len(input.Preset.Passes)+len(input.Preset.Luts))
	maxHistoryIndex := -1

	for i, cfg := range input.Preset.Passes {
		shader := input.Shaders[i]

		validParams := make(map[string]bool, len(shader.Parameters)+len(input.Preset.Parameters))
		for name := range shader.Parameters {
			validParams[name] = true
		}
		for name := range input.Preset.Parameters {
			validParams[name] = true
		}

		refl, rerr := reflectspirv.Reflect(reflectspirv.ReflectInput{
			VertexSPIRV:   shader.VertexSPIRV,
			FragmentSPIRV: shader.FragmentSPIRV,
			Aliases:       aliases,
			ValidParams:   validParams,
		})
		if rerr != nil {
			hal.Logger().Error("shader reflection failed", "pass", i, "error", rerr)
			return nil, rerr
		}

		if opts.Strict && i == 0 {
			historyZero := reflectspirv.TextureKey{Semantic: semantics.TexOriginalHistory, Index: 0}
			_, usesTex := refl.TextureMeta[historyZero]
			_, usesSize := refl.TextureSizeMeta[historyZero]
			if usesTex || usesSize {
				return nil, fmt.Errorf("filterchain: pass 0 references OriginalHistory[0], which aliases Source at pass 0 (strict mode rejects this)")
			}
		}

		for key := range refl.TextureMeta {
			if key.Semantic == semantics.TexOriginalHistory && key.Index > maxHistoryIndex {
				maxHistoryIndex = key.Index
			}
		}
		for key := range refl.TextureSizeMeta {
			if key.Semantic == semantics.TexOriginalHistory && key.Index > maxHistoryIndex {
				maxHistoryIndex = key.Index
			}
		}

		label := passLabel(cfg, i)
		outputFormat := preset.ResolveFormat(cfg.FormatHint, shader.FormatHint, cfg.FloatFramebuffer, cfg.SRGBFramebuffer)

		pipeline, perr := device.BuildPipeline(&hal.PipelineDescriptor{
			VertexSPIRV:   shader.VertexSPIRV,
			FragmentSPIRV: shader.FragmentSPIRV,
			OutputFormat:  outputFormat,
			Label:         label,
		})
		if perr != nil {
			hal.Logger().Error("pipeline build failed", "pass", label, "error", perr)
			return nil, &AllocError{Kind: classifyAllocErr(perr), Label: label, Cause: perr}
		}

		ps := &passState{
			cfg:              cfg,
			shaderFormatHint: shader.FormatHint,
			shaderDefaults:   shader.Parameters,
			reflection:       refl,
			pipeline:         pipeline,
			output:           framebuffer.NewOwnedImage(device),
			uniforms:         uniform.NewRing(refl, opts.FramesInFlight),
			samplerKey:       sampler.PassKey(cfg),
		}
		if cfg.Feedback {
			ps.feedback = framebuffer.NewFeedbackPair(device)
		}
		c.passes[i] = ps
		samplerKeys = append(samplerKeys, ps.samplerKey)
	}

	historyLength := 0
	if maxHistoryIndex >= 0 {
		historyLength = maxHistoryIndex + 1
	}
	c.history = framebuffer.NewHistoryRing(device, historyLength)

	c.luts = make([]*framebuffer.OwnedImage, len(input.Preset.Luts))
	c.lutKeys = make([]sampler.Key, len(input.Preset.Luts))
	for i, lutCfg := range input.Preset.Luts {
		c.luts[i] = framebuffer.WrapImage(device, input.LutImages[i], input.LutSizes[i], preset.FormatR8G8B8A8Unorm)
		c.lutKeys[i] = sampler.LutKey(lutCfg)
		samplerKeys = append(samplerKeys, c.lutKeys[i])
	}

	if serr := c.samplers.Preload(samplerKeys); serr != nil {
		hal.Logger().Error("sampler preload failed", "error", serr)
		return nil, &AllocError{Kind: classifyAllocErr(serr), Label: "sampler cache", Cause: serr}
	}

	hal.Logger().Info("chain built", "passes", len(c.passes), "history_length", historyLength, "luts", len(c.luts))
	return c, nil
}

// teardown frees every resource built so far, tolerating partially
// constructed state (nil fields from a failed NewChain call).
func (c *Chain) teardown() {
	for _, ps := range c.passes {
		if ps == nil {
			continue
		}
		if ps.pipeline != nil {
			ps.pipeline.Destroy()
		}
		if ps.output != nil {
			ps.output.Destroy()
		}
		if ps.feedback != nil {
			ps.feedback.Destroy()
		}
	}
	if c.history != nil {
		c.history.Destroy()
	}
	if c.samplers != nil {
		c.samplers.Destroy()
	}
}

// Destroy frees every backend resource the chain owns. The Chain must
// not be used again afterward.
func (c *Chain) Destroy() {
	c.teardown()
}
