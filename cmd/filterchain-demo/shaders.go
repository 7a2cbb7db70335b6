package main

import "encoding/binary"

// This file hand-assembles the minimal SPIR-V byte streams this demo's
// two passes need: a texture-free vertex stage and a fragment stage
// declaring exactly one sampled image. It uses the same small subset of
// standard SPIR-V opcode/decoration numbers (SPIR-V spec §3) that
// package reflectspirv's own decoder reads, duplicated here rather than
// imported since this demo has no shader compiler of its own to produce
// real SPIR-V from (spec.md §1 Non-goals).
const (
	spirvMagic = 0x07230203

	opName             = 5
	opTypeFloat        = 22
	opTypeImage        = 25
	opTypeSampledImage = 27
	opTypePointer      = 32
	opVariable         = 59
	opDecorate         = 71

	decorationBinding       = 33
	decorationDescriptorSet = 34

	storageClassUniformConstant = 0
)

type spirvAssembler struct {
	words  []uint32
	nextID uint32
}

func newSPIRVAssembler() *spirvAssembler {
	a := &spirvAssembler{nextID: 1}
	a.words = append(a.words, spirvMagic, 0x00010000, 0, 0, 0)
	return a
}

func (a *spirvAssembler) id() uint32 {
	id := a.nextID
	a.nextID++
	return id
}

func (a *spirvAssembler) emit(opcode uint16, operands ...uint32) {
	head := uint32(uint16(1+len(operands)))<<16 | uint32(opcode)
	a.words = append(a.words, head)
	a.words = append(a.words, operands...)
}

func (a *spirvAssembler) name(target uint32, s string) {
	a.emit(opName, append([]uint32{target}, encodeSPIRVString(s)...)...)
}

func (a *spirvAssembler) sampledImage(name string, binding uint32) {
	sampledImageType := a.id()
	f32 := a.id()
	a.emit(opTypeFloat, f32, 32)
	imageType := a.id()
	a.emit(opTypeImage, imageType, f32, 1, 0, 0, 0, 1, 0)
	a.emit(opTypeSampledImage, sampledImageType, imageType)
	ptrType := a.id()
	a.emit(opTypePointer, ptrType, storageClassUniformConstant, sampledImageType)
	varID := a.id()
	a.emit(opVariable, ptrType, varID, storageClassUniformConstant)
	a.name(varID, name)
	a.emit(opDecorate, varID, decorationBinding, binding)
	a.emit(opDecorate, varID, decorationDescriptorSet, 0)
}

func (a *spirvAssembler) bytes() []byte {
	a.words[3] = a.nextID
	out := make([]byte, len(a.words)*4)
	for i, w := range a.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func encodeSPIRVString(s string) []uint32 {
	buf := append([]byte(s), 0)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return words
}

// emptyShaderModule returns a header-only SPIR-V module declaring
// nothing: no UBO, no push block, no textures. Used as the vertex stage
// for both of this demo's passes, since neither needs a per-vertex
// uniform.
func emptyShaderModule() []byte {
	return newSPIRVAssembler().bytes()
}

// sourceSamplingShaderModule returns a fragment-stage module declaring
// exactly one sampled image at binding 0 under the given name.
func sourceSamplingShaderModule(textureName string) []byte {
	a := newSPIRVAssembler()
	a.sampledImage(textureName, 0)
	return a.bytes()
}
