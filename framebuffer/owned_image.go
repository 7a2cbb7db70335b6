// Package framebuffer implements C5 (owned scaled images), C6 (the
// history ring), and C7 (feedback pairs) — the three kinds of backend
// image a filter chain keeps alive across frames. Grounded on the
// teacher HAL's texture lifecycle (hal/api.go's CreateTexture/
// DestroyTexture pair, generalized from an explicit create/destroy call
// into the reallocate-on-size-change policy spec.md §4.5 describes) and
// on spec.md §4.9's explicit resource-state machine for transitions.
package framebuffer

import (
	"math/bits"

	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/preset"
)

// Size is a 2D pixel size. A zero Size means "unallocated" when returned
// by OwnedImage.Size; as scale input, computeSize clamps every resolved
// axis to at least 1 (spec.md §4.5 step 1).
type Size struct {
	Width, Height uint32
}

// OwnedImage is a backend image whose backing is reallocated in place
// whenever its required size, mip policy, or format changes (spec.md
// §4.5 step 3). The zero value has no device and cannot allocate; use
// NewOwnedImage or WrapImage.
type OwnedImage struct {
	device hal.Device
	state  hal.ResourceState

	image  hal.Image
	size   Size
	format preset.Format
	mipped bool
}

// NewOwnedImage returns an unallocated OwnedImage bound to device.
func NewOwnedImage(device hal.Device) *OwnedImage {
	return &OwnedImage{device: device, state: hal.StateUnallocated}
}

// WrapImage returns an OwnedImage over an already-allocated image this
// package does not own — the caller-supplied per-frame input, the
// caller-supplied viewport target, or a pre-decoded LUT (spec.md §6's
// external inputs). BeginPass/EndPass may still be called (the backend
// still needs transition commands recorded around a draw into it), but
// Scale and Destroy must not be: its backing's size is fixed by the
// caller and its lifetime belongs to the caller, not the chain.
func WrapImage(device hal.Device, image hal.Image, size Size, format preset.Format) *OwnedImage {
	return &OwnedImage{device: device, image: image, size: size, format: format, state: hal.StateShaderResource}
}

// Image returns the current backing image, or nil if unallocated.
func (o *OwnedImage) Image() hal.Image { return o.image }

// State returns the image's current resource state.
func (o *OwnedImage) State() hal.ResourceState { return o.state }

// Size returns the image's current size. Zero if unallocated.
func (o *OwnedImage) Size() Size { return o.size }

// clampAxis enforces spec.md §4.5 step 1's "zero-sized axes clamp to 1".
func clampAxis(v int64) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}

func roundAxis(base uint32, factor float32) uint32 {
	return clampAxis(int64(float64(base)*float64(factor) + 0.5))
}

// computeSize implements §4.5 step 1's per-axis scale resolution.
func computeSize(cfg preset.ScaleConfig, viewport, source, original Size) Size {
	axis := func(a preset.AxisScale, v, s, o uint32) uint32 {
		switch a.Type {
		case preset.ScaleSource:
			return roundAxis(s, a.Factor)
		case preset.ScaleViewport:
			return roundAxis(v, a.Factor)
		case preset.ScaleAbsolute:
			return clampAxis(int64(a.Factor))
		case preset.ScaleOriginal:
			return roundAxis(o, a.Factor)
		default:
			return clampAxis(int64(s))
		}
	}
	return Size{
		Width:  axis(cfg.X, viewport.Width, source.Width, original.Width),
		Height: axis(cfg.Y, viewport.Height, source.Height, original.Height),
	}
}

// mipLevels computes ⌊log2 max(w,h)⌋ + 1 (spec.md §4.5 step 3).
func mipLevels(size Size) int {
	m := size.Width
	if size.Height > m {
		m = size.Height
	}
	if m == 0 {
		return 1
	}
	return bits.Len32(m)
}

// Scale implements C5's scale operation: it resolves the target size and
// format for this frame and, if anything load-bearing changed, frees the
// current backing and allocates a new one. Scale passes only a Mipmap
// bool to the backend (hal.ImageDescriptor has no level count); it does
// not call mipLevels, and the backend chooses the chain length.
func (o *OwnedImage) Scale(cfg preset.ScaleConfig, formatHint, shaderDefault preset.Format, wantFloat, wantSRGB, wantMipmaps bool, viewport, source, original Size, label string) error {
	newSize := computeSize(cfg, viewport, source, original)
	targetFormat := preset.ResolveFormat(formatHint, shaderDefault, wantFloat, wantSRGB)

	if o.image != nil && newSize == o.size && wantMipmaps == o.mipped && targetFormat == o.format {
		return nil
	}

	if o.image != nil {
		o.image.Destroy()
		o.image = nil
		o.state = hal.StateUnallocated
	}

	img, err := o.device.CreateImage(&hal.ImageDescriptor{
		Width:  newSize.Width,
		Height: newSize.Height,
		Format: targetFormat,
		Mipmap: wantMipmaps,
		Label:  label,
	})
	if err != nil {
		return err
	}
	o.image = img
	o.size = newSize
	o.format = targetFormat
	o.mipped = wantMipmaps
	o.state = hal.StateShaderResource
	return nil
}

// BeginPass transitions the image from ShaderResource to RenderTarget so
// it can be written by the pass that owns it (spec.md §4.9 step 5).
func (o *OwnedImage) BeginPass(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateRenderTarget)
	o.state = hal.StateRenderTarget
}

// EndPass transitions the image back to ShaderResource once its pass has
// finished writing it.
func (o *OwnedImage) EndPass(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateShaderResource)
	o.state = hal.StateShaderResource
}

// BeginCopySrc transitions the image to CopySource so it can back a
// RecordCopy call as the read side (HistoryRing.Advance's copy of the
// frame input, a distinct transition arc from BeginPass/EndPass).
func (o *OwnedImage) BeginCopySrc(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateCopySource)
	o.state = hal.StateCopySource
}

// EndCopySrc transitions the image back to ShaderResource once the copy
// reading it has been recorded.
func (o *OwnedImage) EndCopySrc(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateShaderResource)
	o.state = hal.StateShaderResource
}

// BeginCopyDst transitions the image to CopyDest so it can back a
// RecordCopy call as the write side.
func (o *OwnedImage) BeginCopyDst(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateCopyDest)
	o.state = hal.StateCopyDest
}

// EndCopyDst transitions the image back to ShaderResource once the copy
// writing it has been recorded.
func (o *OwnedImage) EndCopyDst(cmd hal.CommandBuffer) {
	o.device.RecordTransition(cmd, o.image, o.state, hal.StateShaderResource)
	o.state = hal.StateShaderResource
}

// Destroy frees the current backing, if any.
func (o *OwnedImage) Destroy() {
	if o.image != nil {
		o.image.Destroy()
		o.image = nil
		o.state = hal.StateUnallocated
	}
}
