package noop

import (
	"github.com/gogpu/filterchain/hal"
)

// Device implements hal.Device by executing every recorded command
// against host-memory Images.
type Device struct{}

// NewDevice returns a ready-to-use noop Device. There is no adapter or
// instance layer to go through first (spec.md §6 Non-goals).
func NewDevice() *Device { return &Device{} }

func (d *Device) CreateImage(desc *hal.ImageDescriptor) (hal.Image, error) {
	return newImage(desc.Width, desc.Height, desc.Format), nil
}

func (d *Device) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	return &Sampler{desc: *desc}, nil
}

func (d *Device) BuildPipeline(desc *hal.PipelineDescriptor) (hal.Pipeline, error) {
	return &Pipeline{label: desc.Label, outputFormat: desc.OutputFormat}, nil
}

func (d *Device) BeginCommandBuffer() (hal.CommandBuffer, error) {
	return &CommandBuffer{}, nil
}

func (d *Device) RecordDraw(cmd hal.CommandBuffer, _ hal.Pipeline, target hal.Image, viewport hal.Rect, binding hal.DescriptorBinding) {
	c := cmd.(*CommandBuffer)
	t := target.(*Image)
	var source *Image
	if len(binding.Textures) > 0 {
		if img, ok := binding.Textures[0].Image.(*Image); ok {
			source = img
		}
	}
	c.draws = append(c.draws, recordedDraw{target: t, source: source, viewport: viewport})
}

func (d *Device) RecordTransition(_ hal.CommandBuffer, _ hal.Image, _, _ hal.ResourceState) {
	// The noop backend has no explicit barrier model; every Image is
	// always both readable and writable from the host's point of view.
}

func (d *Device) RecordCopy(cmd hal.CommandBuffer, region hal.CopyRegion) {
	c := cmd.(*CommandBuffer)
	src, _ := region.Src.(*Image)
	dst, _ := region.Dst.(*Image)
	c.copies = append(c.copies, recordedCopy{src: src, dst: dst, width: region.Width, height: region.Height})
}

func (d *Device) EndCommandBuffer(cmd hal.CommandBuffer) error {
	c := cmd.(*CommandBuffer)
	c.ended = true
	return nil
}

// Submit replays every recorded draw in recording order, then every
// recorded copy in recording order. A draw "renders"
// by copying the bound source image's top-left corner over the target's
// viewport rectangle, clamped to overlapping bytes — enough to make scale
// and history/feedback wiring observable in tests without interpreting
// SPIR-V.
func (d *Device) Submit(cmd hal.CommandBuffer) error {
	c := cmd.(*CommandBuffer)
	for _, draw := range c.draws {
		execDraw(draw)
	}
	for _, cp := range c.copies {
		execCopy(cp)
	}
	return nil
}

func execDraw(draw recordedDraw) {
	if draw.source == nil || draw.target == nil {
		return
	}
	rows := draw.viewport.Height
	if rows > draw.target.height {
		rows = draw.target.height
	}
	if rows > draw.source.height {
		rows = draw.source.height
	}
	cols := draw.viewport.Width
	if cols > draw.target.width {
		cols = draw.target.width
	}
	if cols > draw.source.width {
		cols = draw.source.width
	}
	for y := uint32(0); y < rows; y++ {
		srcRowOff := y * draw.source.width * 4
		dstRowOff := (draw.viewport.Y + y) * draw.target.width * 4
		dstColOff := draw.viewport.X * 4
		n := cols * 4
		copy(draw.target.pixels[dstRowOff+dstColOff:dstRowOff+dstColOff+n], draw.source.pixels[srcRowOff:srcRowOff+n])
	}
}

func execCopy(cp recordedCopy) {
	if cp.src == nil || cp.dst == nil {
		return
	}
	n := int(cp.width) * int(cp.height) * 4
	if n > len(cp.src.pixels) {
		n = len(cp.src.pixels)
	}
	if n > len(cp.dst.pixels) {
		n = len(cp.dst.pixels)
	}
	copy(cp.dst.pixels[:n], cp.src.pixels[:n])
}
