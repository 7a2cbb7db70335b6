package framebuffer

import "github.com/gogpu/filterchain/hal"

// FeedbackPair implements C7: a pass whose output is read elsewhere as
// PassFeedback[k] keeps two OwnedImages. Writes during frame t always go
// to Current; reads of PassFeedback[k] during frame t come from
// Previous — the swap happens once, at end of frame (spec.md §4.7).
type FeedbackPair struct {
	Current  *OwnedImage
	Previous *OwnedImage
}

// NewFeedbackPair returns a pair of unallocated OwnedImages bound to
// device.
func NewFeedbackPair(device hal.Device) *FeedbackPair {
	return &FeedbackPair{
		Current:  NewOwnedImage(device),
		Previous: NewOwnedImage(device),
	}
}

// Swap exchanges Current and Previous at the end of a frame, so that
// next frame's writes land in what was Previous and next frame's
// PassFeedback reads see this frame's just-finished output.
func (f *FeedbackPair) Swap() {
	f.Current, f.Previous = f.Previous, f.Current
}

// Destroy frees both images' backings.
func (f *FeedbackPair) Destroy() {
	f.Current.Destroy()
	f.Previous.Destroy()
}
