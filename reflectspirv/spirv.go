package reflectspirv

import "encoding/binary"

// SPIR-V module magic number, little-endian as emitted by every toolchain
// this core has seen (glslang, naga, spirv-cross).
const spirvMagic = 0x07230203

// SPIR-V opcodes this reflector needs to understand. Only a small subset of
// the full instruction set is decoded — everything else is skipped by
// wordCount, exactly how a disassembler that only cares about a handful of
// opcodes would walk the stream. Grounded on the instruction-stream walk in
// the naga SPIR-V test harness (other_examples), generalized from a
// single-purpose test decoder into a full reflection walker.
const (
	opName            = 5
	opMemberName       = 6
	opExtInstImport   = 11
	opEntryPoint      = 15
	opExecutionMode   = 16
	opTypeVoid        = 19
	opTypeBool        = 20
	opTypeInt         = 21
	opTypeFloat       = 22
	opTypeVector      = 23
	opTypeMatrix      = 24
	opTypeImage       = 25
	opTypeSampler     = 26
	opTypeSampledImage = 27
	opTypeArray       = 28
	opTypeRuntimeArray = 29
	opTypeStruct      = 30
	opTypePointer     = 32
	opConstant        = 43
	opVariable        = 59
	opDecorate        = 71
	opMemberDecorate  = 72
)

// Decoration numbers relevant to reflection (SPIR-V spec §3.20).
const (
	decorationBlock       = 2
	decorationOffset      = 35
	decorationBinding     = 33
	decorationDescriptorSet = 34
)

// Storage classes relevant to reflection (SPIR-V spec §3.7).
const (
	storageClassUniformConstant = 0
	storageClassUniform         = 2
	storageClassPushConstant    = 9
)

// instruction is one decoded SPIR-V instruction: the opcode, its total word
// count (including the opcode+wordCount word itself), and the operand
// words that follow it.
type instruction struct {
	opcode    uint16
	wordCount uint16
	words     []uint32 // operand words, i.e. words[0] is the first operand
	offset    int       // word index of this instruction's first word, for diagnostics
}

// decodeInstructions walks a SPIR-V module's word stream and returns every
// instruction in order. It does not validate the module; malformed streams
// simply stop decoding at the first instruction whose declared wordCount
// would run past the end of the buffer.
func decodeInstructions(words []uint32) []instruction {
	if len(words) < 5 {
		return nil
	}
	var out []instruction
	i := 5 // skip the 5-word header: magic, version, generator, bound, schema
	for i < len(words) {
		head := words[i]
		wordCount := uint16(head >> 16)
		opcode := uint16(head & 0xFFFF)
		if wordCount == 0 || i+int(wordCount) > len(words) {
			break
		}
		out = append(out, instruction{
			opcode:    opcode,
			wordCount: wordCount,
			words:     words[i+1 : i+int(wordCount)],
			offset:    i,
		})
		i += int(wordCount)
	}
	return out
}

// bytesToWords reinterprets a little-endian SPIR-V byte blob as a uint32
// word stream, as required by the SPIR-V binary format (spec §2.2).
func bytesToWords(b []byte) []uint32 {
	n := len(b) / 4
	words := make([]uint32, n)
	for i := range n {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

// decodeLiteralString decodes a SPIR-V literal string (a NUL-terminated,
// NUL-padded sequence of UTF-8 bytes packed four per word, little-endian)
// starting at the given operand words.
func decodeLiteralString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		b := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, c := range b {
			if c == 0 {
				return string(buf)
			}
			buf = append(buf, c)
		}
	}
	return string(buf)
}
