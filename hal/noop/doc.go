// Package noop implements hal.Device entirely in host memory: images are
// plain byte buffers, pipelines and samplers are inert handles, and
// RecordDraw "executes" a pass by copying its first bound texture over
// the render target (a visible, deterministic stand-in for running the
// reflected SPIR-V). It exists so the filterchain package's tests (and
// this module's demo command) can exercise the full per-frame pipeline —
// scaling, history rotation, feedback swap, binding resolution, resource-
// state transitions — without a real GPU or a SPIR-V-capable driver,
// mirroring the teacher HAL's own noop backend's purpose.
package noop
