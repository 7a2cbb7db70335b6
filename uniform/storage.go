// Package uniform implements C3: a host-side byte shadow of a pass's UBO
// and push-constant memory, with typed writers per semantics.UniformType.
// Grounded on the uniform_storage/UniformStorage writer pattern used
// throughout original_source/librashader-runtime-*/src/filter_pass.rs
// (BindSemantics::bind_texture and the scalar/mat4 writers it calls).
package uniform

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/filterchain/reflectspirv"
)

// Storage holds the two contiguous byte regions a Reflection's UboBlock
// and PushBlock describe. Either region may be zero-length if the pass
// declares no UBO / no push block (spec.md §4.3).
type Storage struct {
	ubo  []byte
	push []byte
}

// NewStorage allocates a Storage sized from a Reflection's blocks.
func NewStorage(refl *reflectspirv.Reflection) *Storage {
	s := &Storage{}
	if refl.Ubo != nil {
		s.ubo = make([]byte, refl.Ubo.SizeBytes)
	}
	if refl.Push != nil {
		s.push = make([]byte, refl.Push.SizeBytes)
	}
	return s
}

// UboBytes returns the UBO region for a backend upload call. The slice
// aliases Storage's internal buffer; callers must not retain it past the
// next write.
func (s *Storage) UboBytes() []byte { return s.ubo }

// PushBytes returns the push-constant region for a backend push-constant
// command. Same aliasing caveat as UboBytes.
func (s *Storage) PushBytes() []byte { return s.push }

func (s *Storage) region(dest reflectspirv.MemberOffset) []byte {
	if dest.Push {
		return s.push
	}
	return s.ubo
}

// WriteMat4 writes a row-major 4x4 float matrix (16 components) at dest.
func (s *Storage) WriteMat4(dest reflectspirv.MemberOffset, m [16]float32) {
	region := s.region(dest)
	off := dest.Bytes
	for i, v := range m {
		binary.LittleEndian.PutUint32(region[off+uint32(i)*4:], math.Float32bits(v))
	}
}

// WriteVec4 writes (w, h, 1/w, 1/h) at dest, as used for every size
// semantic (spec.md §4.3). If components < 4, only the leading components
// are written and the rest of the member's declared span is left
// untouched (spec.md §4.3's widening/narrowing rule).
func (s *Storage) WriteVec4(dest reflectspirv.MemberOffset, components int, w, h float32) {
	values := [4]float32{w, h, 0, 0}
	if w != 0 {
		values[2] = 1 / w
	}
	if h != 0 {
		values[3] = 1 / h
	}
	s.writeFloats(dest, components, values[:])
}

func (s *Storage) writeFloats(dest reflectspirv.MemberOffset, components int, values []float32) {
	if components > len(values) {
		components = len(values)
	}
	region := s.region(dest)
	off := dest.Bytes
	for i := 0; i < components; i++ {
		binary.LittleEndian.PutUint32(region[off+uint32(i)*4:], math.Float32bits(values[i]))
	}
}

// WriteU32 writes a single uint32 at dest.
func (s *Storage) WriteU32(dest reflectspirv.MemberOffset, v uint32) {
	region := s.region(dest)
	binary.LittleEndian.PutUint32(region[dest.Bytes:], v)
}

// WriteI32 writes a single int32 at dest.
func (s *Storage) WriteI32(dest reflectspirv.MemberOffset, v int32) {
	//nolint:gosec // G115: bit-pattern reinterpretation, not a narrowing conversion
	s.WriteU32(dest, uint32(v))
}

// WriteF32 writes a single float32 at dest.
func (s *Storage) WriteF32(dest reflectspirv.MemberOffset, v float32) {
	region := s.region(dest)
	binary.LittleEndian.PutUint32(region[dest.Bytes:], math.Float32bits(v))
}
