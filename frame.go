package filterchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/filterchain/binding"
	"github.com/gogpu/filterchain/framebuffer"
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/preset"
	"github.com/gogpu/filterchain/sampler"
)

// defaultMVP is the matrix Frame uses when FrameInput.MVP is nil
// (EXPANSION C.2a): a column-major orthographic projection mapping a
// [0,1]x[0,1] full-screen quad onto clip space [-1,1]x[-1,1].
var defaultMVP = [16]float32{
	2, 0, 0, 0,
	0, 2, 0, 0,
	0, 0, 2, 0,
	-1, -1, 0, 1,
}

// FrameInput bundles everything Frame needs to draw one frame (spec.md
// §4.9, §6's per-frame external inputs).
type FrameInput struct {
	// Original is the current frame's input image, already uploaded by
	// the caller.
	Original     hal.Image
	OriginalSize framebuffer.Size

	// Viewport is the final pass's render target. It must already be
	// sized to ViewportSize; the chain never resizes the caller's own
	// target.
	Viewport     hal.Image
	ViewportSize framebuffer.Size

	// MVP overrides the default full-screen matrix, if non-nil.
	MVP *[16]float32

	FrameCount     uint32
	FrameDirection int32
}

// Frame implements C9's per-frame procedure (spec.md §4.9): it resolves
// every pass's output size left to right, records one pass's draw at a
// time reading the previous pass's (or the original's) output, records
// the history ring's advance, submits the recorded commands, then swaps
// every feedback pair so next frame's reads see this frame's results.
//
// A *RuntimeError aborts only this call; the Chain remains usable for
// the next Frame call (spec.md §7).
func (c *Chain) Frame(in FrameInput) error {
	mvp := defaultMVP
	if in.MVP != nil {
		mvp = *in.MVP
	}

	original := framebuffer.WrapImage(c.device, in.Original, in.OriginalSize, preset.FormatR8G8B8A8Unorm)

	// Step 1: resolve every pass's output size before any draw is
	// recorded, so a later pass's Source-relative scale sees the earlier
	// pass's already-resolved size.
	source := in.OriginalSize
	passSizes := make([]framebuffer.Size, len(c.passes))
	for i, ps := range c.passes {
		target := ps.output
		if ps.cfg.Feedback {
			target = ps.feedback.Current
		}
		mipmap := ps.cfg.Mipmap && !c.opts.ForceDisableMipmaps
		label := passLabel(ps.cfg, i)

		sizeBefore := target.Size()
		if err := target.Scale(ps.cfg.Scale, ps.cfg.FormatHint, ps.shaderFormatHint, ps.cfg.FloatFramebuffer, ps.cfg.SRGBFramebuffer, mipmap, in.ViewportSize, source, in.OriginalSize, label); err != nil {
			hal.Logger().Error("framebuffer scale failed", "pass", label, "error", err)
			return &AllocError{Kind: classifyAllocErr(err), Label: label, Cause: err}
		}
		passSizes[i] = target.Size()
		if passSizes[i] != sizeBefore {
			hal.Logger().Debug("framebuffer reallocated", "pass", label, "size", passSizes[i])
		}
		source = passSizes[i]
	}

	// Shared, pass-index-invariant texture source tables: the feed-
	// forward-only rule on PassOutput is enforced by TextureSource.
	// PassIndex at resolution time, not by truncating these slices.
	passOutputs := make([]*framebuffer.OwnedImage, len(c.passes))
	passFeedbacks := make([]*framebuffer.FeedbackPair, len(c.passes))
	passSamplerKeys := make([]sampler.Key, len(c.passes))
	for j, other := range c.passes {
		passOutputs[j] = other.output
		passFeedbacks[j] = other.feedback
		passSamplerKeys[j] = other.samplerKey
	}

	cmd, err := c.device.BeginCommandBuffer()
	if err != nil {
		return &RuntimeError{Kind: RuntimeBackendSubmit, Pass: -1, Cause: err}
	}

	src := original
	for i, ps := range c.passes {
		isLast := i == len(c.passes)-1

		var target *framebuffer.OwnedImage
		outputSize := passSizes[i]
		switch {
		case isLast:
			target = framebuffer.WrapImage(c.device, in.Viewport, in.ViewportSize, preset.FormatR8G8B8A8Unorm)
			outputSize = in.ViewportSize
		case ps.cfg.Feedback:
			target = ps.feedback.Current
		default:
			target = ps.output
		}

		frameCount := in.FrameCount
		if ps.cfg.FrameCountMod > 0 {
			frameCount %= ps.cfg.FrameCountMod
		}

		fc := binding.FrameContext{
			MVP:              mvp,
			FrameCount:       frameCount,
			FrameDirection:   in.FrameDirection,
			OutputSize:       outputSize,
			FinalViewport:    in.ViewportSize,
			GlobalParameters: c.globalParameters,
		}

		texSrc := binding.TextureSource{
			PassIndex:       i,
			Original:        original,
			Source:          src,
			OriginalHistory: c.history,
			PassOutputs:     passOutputs,
			PassFeedbacks:   passFeedbacks,
			Luts:            c.luts,
			PassSamplerKey:  passSamplerKeys,
			LutSamplerKey:   c.lutKeys,
			OwnSamplerKey:   ps.samplerKey,
		}

		db, berr := binding.Bind(ps.reflection, ps.uniforms.Current(in.FrameCount), c.samplers, fc, ps.shaderDefaults, texSrc)
		if berr != nil {
			hal.Logger().Error("binding resolution failed", "pass", i, "error", berr)
			var ube *binding.UnresolvedBindingError
			if errors.As(berr, &ube) {
				return &RuntimeError{Kind: RuntimeUnresolvedBinding, Pass: i, Semantic: ube.Semantic, Index: ube.Index, Cause: berr}
			}
			return &RuntimeError{Kind: RuntimeBackendSubmit, Pass: i, Cause: berr}
		}

		target.BeginPass(cmd)
		viewport := hal.Rect{Width: outputSize.Width, Height: outputSize.Height}
		c.device.RecordDraw(cmd, ps.pipeline, target.Image(), viewport, db)
		target.EndPass(cmd)

		src = target
	}

	if err := c.history.Advance(cmd, original, in.OriginalSize, "history"); err != nil {
		return &RuntimeError{Kind: RuntimeBackendSubmit, Pass: -1, Cause: fmt.Errorf("history advance: %w", err)}
	}

	if err := c.device.EndCommandBuffer(cmd); err != nil {
		return &RuntimeError{Kind: RuntimeBackendSubmit, Pass: -1, Cause: err}
	}
	if err := c.device.Submit(cmd); err != nil {
		return &RuntimeError{Kind: RuntimeBackendSubmit, Pass: -1, Cause: err}
	}

	// Step 3: swap every feedback pair only after every pass has read
	// the previous frame's Previous image (spec.md §4.7's "swap at end of
	// frame" invariant).
	for _, ps := range c.passes {
		if ps.feedback != nil {
			ps.feedback.Swap()
		}
	}

	return nil
}
