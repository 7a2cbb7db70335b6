package noop

import "github.com/gogpu/filterchain/hal"

// recordedDraw is one RecordDraw call captured for later "execution" at
// Submit time (the noop backend defers all actual pixel effects to
// Submit so that a command buffer's recorded order is what determines
// final pixel state, matching a real backend's record-then-submit split).
type recordedDraw struct {
	target   *Image
	source   *Image
	viewport hal.Rect
}

// recordedCopy is one RecordCopy call captured for deferred execution.
type recordedCopy struct {
	src, dst      *Image
	width, height uint32
}

// CommandBuffer accumulates draws and copies recorded against it until
// Device.Submit replays them (all draws first, then all copies).
type CommandBuffer struct {
	draws     []recordedDraw
	copies    []recordedCopy
	ended     bool
	destroyed bool
}

func (c *CommandBuffer) Destroy() { c.destroyed = true }
