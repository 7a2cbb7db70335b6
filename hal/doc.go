// Package hal provides the narrow hardware-abstraction layer the filter-
// chain runtime drives once per frame: a capability surface for building
// pipelines from reflected SPIR-V, allocating framebuffer images and
// samplers, and recording the three command kinds a pass ever issues
// (draw, resource-state transition, copy). It is deliberately not a
// general-purpose graphics API — there is no instance/adapter/surface
// discovery layer, no buffers, no compute pipelines, no bind-group
// objects.
//
// # Architecture
//
// A single Device bundles three responsibilities:
//
//  1. PipelineFactory - builds the one Pipeline each pass needs, once,
//     at chain construction.
//  2. CommandRecorder - records RecordDraw/RecordTransition/RecordCopy
//     into a CommandBuffer every frame.
//  3. Resource allocation - CreateImage, CreateSampler.
//
// # Design Principles
//
// Following the teacher HAL, this package prioritizes portability over
// safety: validation (reflection mismatches, binding range checks) is
// the reflectspirv/binding layers' job, not the HAL's. A Device
// implementation only returns unrecoverable backend errors
// (ErrDeviceOutOfMemory, ErrDeviceLost, ErrTimeout, ErrDriverBug).
//
// # Resource Types
//
// Image, Sampler, and Pipeline all implement Resource (a Destroy
// method). Resources must be explicitly destroyed; calling Destroy
// twice is undefined behavior.
//
// # Resource States
//
// ResourceState models the state machine every owned image moves
// through across a frame (spec.md §4.9): Unallocated, ShaderResource,
// RenderTarget, CopySource, CopyDest. Backends without an explicit
// barrier model (a software/OpenGL-style Device) may treat
// RecordTransition as a no-op.
//
// # Reference implementation
//
// See hal/noop for a backend that implements this surface entirely in
// host memory, used by the filterchain package's own tests.
package hal
