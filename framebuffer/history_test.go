package framebuffer

import (
	"testing"

	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/hal/noop"
	"github.com/gogpu/filterchain/preset"
)

// transitionSpyDevice records every RecordTransition call's (from, to)
// states so a test can assert Advance's copy-path transitions without a
// real backend's layout/barrier model to inspect.
type transitionSpyDevice struct {
	*noop.Device
	transitions []recordedTransition
}

type recordedTransition struct {
	from, to hal.ResourceState
}

func newTransitionSpyDevice() *transitionSpyDevice {
	return &transitionSpyDevice{Device: noop.NewDevice()}
}

func (d *transitionSpyDevice) RecordTransition(cmd hal.CommandBuffer, img hal.Image, from, to hal.ResourceState) {
	d.transitions = append(d.transitions, recordedTransition{from: from, to: to})
	d.Device.RecordTransition(cmd, img, from, to)
}

func allocated(t *testing.T, device hal.Device, size Size) *OwnedImage {
	t.Helper()
	img := NewOwnedImage(device)
	cfg := preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleAbsolute, Factor: float32(size.Width)},
		Y: preset.AxisScale{Type: preset.ScaleAbsolute, Factor: float32(size.Height)},
	}
	if err := img.Scale(cfg, preset.FormatR8G8B8A8Unorm, preset.FormatUnknown, false, false, false, size, size, size, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return img
}

func TestHistoryRingZeroLengthIsNoOp(t *testing.T) {
	device := noop.NewDevice()
	ring := NewHistoryRing(device, 0)
	input := allocated(t, device, Size{16, 16})
	cmd, _ := device.BeginCommandBuffer()
	if err := ring.Advance(cmd, input, Size{16, 16}, "input"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ring.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ring.Len())
	}
}

func TestHistoryRingAdvanceRotates(t *testing.T) {
	device := noop.NewDevice()
	ring := NewHistoryRing(device, 3)

	frames := []Size{{16, 16}, {16, 16}, {16, 16}}
	var inputs []*OwnedImage
	for _, size := range frames {
		img := allocated(t, device, size)
		inputs = append(inputs, img)
	}

	cmd, _ := device.BeginCommandBuffer()
	// Frame 1: advance with inputs[0]. OriginalHistory[0] should now hold
	// inputs[0]'s data.
	if err := ring.Advance(cmd, inputs[0], frames[0], "f0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot0AfterFrame1 := ring.At(0)

	// Frame 2: advance with inputs[1]. The old OriginalHistory[0] should
	// now be OriginalHistory[1], and a new slot becomes OriginalHistory[0].
	if err := ring.Advance(cmd, inputs[1], frames[1], "f1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ring.At(1) != slot0AfterFrame1 {
		t.Error("expected the previous OriginalHistory[0] slot to rotate into OriginalHistory[1]")
	}
}

func TestHistoryRingReallocatesOnSizeChange(t *testing.T) {
	device := noop.NewDevice()
	ring := NewHistoryRing(device, 2)

	small := allocated(t, device, Size{16, 16})
	cmd, _ := device.BeginCommandBuffer()
	if err := ring.Advance(cmd, small, Size{16, 16}, "small"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ring.At(0).Size() != (Size{16, 16}) {
		t.Fatalf("slot size = %+v, want 16x16", ring.At(0).Size())
	}

	big := allocated(t, device, Size{64, 64})
	if err := ring.Advance(cmd, big, Size{64, 64}, "big"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The slot rotating in this frame (the one that was oldest/unallocated)
	// reallocates to the new input's size.
	if ring.At(0).Size() != (Size{64, 64}) {
		t.Errorf("slot size after resolution change = %+v, want 64x64", ring.At(0).Size())
	}
	// The previous frame's data, not yet due to rotate out, keeps its size.
	if ring.At(1).Size() != (Size{16, 16}) {
		t.Errorf("rotated slot size = %+v, want 16x16 (unchanged)", ring.At(1).Size())
	}
}

func TestHistoryRingAdvanceUsesCopyTransitionsNotRenderTarget(t *testing.T) {
	device := newTransitionSpyDevice()
	ring := NewHistoryRing(device, 1)

	input := allocated(t, device, Size{16, 16})
	cmd, _ := device.BeginCommandBuffer()
	if err := ring.Advance(cmd, input, Size{16, 16}, "input"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(device.transitions) != 4 {
		t.Fatalf("len(transitions) = %d, want 4 (src begin/end, dst begin/end)", len(device.transitions))
	}
	for _, tr := range device.transitions {
		if tr.to == hal.StateRenderTarget || tr.from == hal.StateRenderTarget {
			t.Errorf("transition %+v uses StateRenderTarget; the copy path must use StateCopySource/StateCopyDest instead", tr)
		}
	}

	var intoCopySource, intoCopyDest int
	for _, tr := range device.transitions {
		switch tr.to {
		case hal.StateCopySource:
			intoCopySource++
		case hal.StateCopyDest:
			intoCopyDest++
		}
	}
	if intoCopySource != 1 {
		t.Errorf("expected exactly one transition into CopySource, got %d", intoCopySource)
	}
	if intoCopyDest != 1 {
		t.Errorf("expected exactly one transition into CopyDest, got %d", intoCopyDest)
	}
}
