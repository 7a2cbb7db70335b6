package hal

// CommandBuffer holds one frame's worth of recorded draw/transition/copy
// commands between CommandRecorder.BeginCommandBuffer and EndCommandBuffer.
// It is single-use: once submitted via Device.Submit, it must not be
// recorded into again.
type CommandBuffer interface {
	Resource
}
