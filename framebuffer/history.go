package framebuffer

import (
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/preset"
)

// absoluteScale builds a ScaleConfig that resolves to exactly size
// regardless of viewport/source/original, used to reallocate a history
// slot to match a new input size (spec.md §4.6's reallocate-oldest-slot
// behavior, per the Open Question's conservative reading).
func absoluteScale(size Size) preset.ScaleConfig {
	return preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleAbsolute, Factor: float32(size.Width)},
		Y: preset.AxisScale{Type: preset.ScaleAbsolute, Factor: float32(size.Height)},
	}
}

// HistoryRing implements C6: a ring of the last L frames' *inputs* (not
// outputs). OriginalHistory[0] is the previous frame's input;
// OriginalHistory[1] is two frames ago, and so on. The ring never holds
// the current frame's input — that is always read as Original.
type HistoryRing struct {
	device hal.Device
	slots  []*OwnedImage // slots[0] = most recent, slots[L-1] = oldest
}

// NewHistoryRing returns a ring of length L. L == 0 means the preset's
// passes never reference OriginalHistory, and every method becomes a
// no-op (spec.md §4.6 step 1).
func NewHistoryRing(device hal.Device, length int) *HistoryRing {
	slots := make([]*OwnedImage, length)
	for i := range slots {
		slots[i] = NewOwnedImage(device)
	}
	return &HistoryRing{device: device, slots: slots}
}

// Len returns the ring's configured length.
func (h *HistoryRing) Len() int { return len(h.slots) }

// At returns the OwnedImage for OriginalHistory[i]. Callers must only
// call this for i < Len(); an out-of-range index is a reflection bug,
// since classification would have rejected it (spec.md §4.8 step 4).
func (h *HistoryRing) At(i int) *OwnedImage { return h.slots[i] }

// Advance copies newInput's current frame into the ring as the new
// OriginalHistory[0], rotating every older entry up by one index (spec.md
// §4.6's advance operation). It is called once per frame after all
// passes have completed, with the frame's original input image.
func (h *HistoryRing) Advance(cmd hal.CommandBuffer, newInput *OwnedImage, newInputSize Size, label string) error {
	if len(h.slots) == 0 {
		return nil
	}

	oldest := h.slots[len(h.slots)-1]
	copy(h.slots[1:], h.slots[:len(h.slots)-1])
	h.slots[0] = oldest

	if oldest.Size() != newInputSize {
		cfg := absoluteScale(newInputSize)
		if err := oldest.Scale(cfg, newInput.format, newInput.format, false, false, false, newInputSize, newInputSize, newInputSize, label); err != nil {
			return err
		}
	}

	newInput.BeginCopySrc(cmd)
	oldest.BeginCopyDst(cmd)
	h.device.RecordCopy(cmd, hal.CopyRegion{
		Src:    newInput.Image(),
		Dst:    oldest.Image(),
		Width:  newInputSize.Width,
		Height: newInputSize.Height,
	})
	oldest.EndCopyDst(cmd)
	newInput.EndCopySrc(cmd)
	return nil
}

// Destroy frees every slot's backing.
func (h *HistoryRing) Destroy() {
	for _, s := range h.slots {
		s.Destroy()
	}
}
