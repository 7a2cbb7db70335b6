package hal

import "errors"

// Sentinel errors a backend's pipeline factory or command recorder may
// return from build_pipeline/record_draw/record_copy.
var (
	// ErrDeviceOutOfMemory indicates the GPU has exhausted its memory while
	// allocating a pipeline or an image. This is unrecoverable for the
	// allocation in question; callers surface it as AllocError.OutOfMemory.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the GPU device has been lost (driver crash,
	// hardware disconnection, or driver timeout). The device cannot be
	// recovered; the chain must be rebuilt against a new device.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrTimeout indicates a submit or wait operation timed out.
	ErrTimeout = errors.New("hal: timeout")

	// ErrDriverBug indicates the backend returned an invalid or unexpected
	// result that violates its graphics API's specification.
	ErrDriverBug = errors.New("hal: driver bug detected (API spec violation)")
)
