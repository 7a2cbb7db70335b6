package reflectspirv

import "encoding/binary"

// spirvBuilder hand-assembles minimal SPIR-V word streams for tests. It is
// not a general-purpose assembler — only what this package's own decoder
// (spirv.go, module.go) reads back out.
type spirvBuilder struct {
	words  []uint32
	nextID uint32
}

func newSPIRVBuilder() *spirvBuilder {
	b := &spirvBuilder{nextID: 1}
	// 5-word header: magic, version, generator, bound (patched in bytes()), schema.
	b.words = append(b.words, spirvMagic, 0x00010000, 0, 0, 0)
	return b
}

func (b *spirvBuilder) id() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *spirvBuilder) emit(opcode uint16, operands ...uint32) {
	wordCount := uint16(1 + len(operands))
	head := uint32(wordCount)<<16 | uint32(opcode)
	b.words = append(b.words, head)
	b.words = append(b.words, operands...)
}

func encodeLiteralString(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

func (b *spirvBuilder) name(id uint32, s string) {
	b.emit(opName, append([]uint32{id}, encodeLiteralString(s)...)...)
}

func (b *spirvBuilder) memberName(structID, idx uint32, s string) {
	b.emit(opMemberName, append([]uint32{structID, idx}, encodeLiteralString(s)...)...)
}

func (b *spirvBuilder) decorate(target, kind uint32, operands ...uint32) {
	b.emit(opDecorate, append([]uint32{target, kind}, operands...)...)
}

func (b *spirvBuilder) memberDecorateOffset(structID, idx, offset uint32) {
	b.emit(opMemberDecorate, structID, idx, decorationOffset, offset)
}

func (b *spirvBuilder) typeFloat(width uint32) uint32 {
	id := b.id()
	b.emit(opTypeFloat, id, width)
	return id
}

func (b *spirvBuilder) typeInt(width uint32, signed bool) uint32 {
	id := b.id()
	s := uint32(0)
	if signed {
		s = 1
	}
	b.emit(opTypeInt, id, width, s)
	return id
}

func (b *spirvBuilder) typeVector(comp, count uint32) uint32 {
	id := b.id()
	b.emit(opTypeVector, id, comp, count)
	return id
}

func (b *spirvBuilder) typeMatrix(col, count uint32) uint32 {
	id := b.id()
	b.emit(opTypeMatrix, id, col, count)
	return id
}

func (b *spirvBuilder) typeStruct(members ...uint32) uint32 {
	id := b.id()
	b.emit(opTypeStruct, append([]uint32{id}, members...)...)
	return id
}

func (b *spirvBuilder) typePointer(storageClass, pointee uint32) uint32 {
	id := b.id()
	b.emit(opTypePointer, id, storageClass, pointee)
	return id
}

func (b *spirvBuilder) typeImage() uint32 {
	id := b.id()
	b.emit(opTypeImage, id)
	return id
}

func (b *spirvBuilder) typeSampledImage(image uint32) uint32 {
	id := b.id()
	b.emit(opTypeSampledImage, id, image)
	return id
}

func (b *spirvBuilder) variable(resultType, storageClass uint32) uint32 {
	id := b.id()
	b.emit(opVariable, resultType, id, storageClass)
	return id
}

func (b *spirvBuilder) bytes() []byte {
	b.words[3] = b.nextID // bound
	out := make([]byte, len(b.words)*4)
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// emptySPIRVModule returns a minimal, UBO/push/image-free
// module, used as the "other stage" in tests that only care about the
// vertex stage's block (or vice versa).
func emptySPIRVModule() []byte {
	b := newSPIRVBuilder()
	return b.bytes()
}
