package reflectspirv

// decoration is one OpDecorate/OpMemberDecorate entry: which decoration
// kind it is, and its literal operand words (e.g. the byte offset for
// decorationOffset, the binding number for decorationBinding).
type decoration struct {
	kind     uint32
	operands []uint32
}

// typeInfo mirrors the handful of OpType* opcodes this reflector resolves.
type typeInfo struct {
	opcode        uint16
	width         uint32 // OpTypeInt/OpTypeFloat bit width
	signed        bool   // OpTypeInt signedness
	componentType uint32 // OpTypeVector/OpTypeMatrix/OpTypeArray/OpTypePointer element type id
	count         uint32 // OpTypeVector component count / OpTypeMatrix column count / OpTypeArray length
	members       []uint32
	storageClass  uint32 // OpTypePointer storage class
}

// variableInfo is a decoded OpVariable: its pointer type and storage class.
type variableInfo struct {
	pointerType  uint32
	storageClass uint32
}

// spirvModule is the decoded, queryable form of one SPIR-V module (one
// shader stage). It does not attempt full SPIR-V validation — only what
// reflection needs: names, struct layouts, decorations, and variables.
type spirvModule struct {
	names             map[uint32]string
	memberNames       map[uint32]map[uint32]string
	decorations       map[uint32][]decoration
	memberDecorations map[uint32]map[uint32][]decoration
	types             map[uint32]typeInfo
	variables         map[uint32]variableInfo
}

// parseModule decodes a SPIR-V binary into a spirvModule.
func parseModule(spirv []byte) *spirvModule {
	words := bytesToWords(spirv)
	instrs := decodeInstructions(words)

	m := &spirvModule{
		names:             make(map[uint32]string),
		memberNames:       make(map[uint32]map[uint32]string),
		decorations:       make(map[uint32][]decoration),
		memberDecorations: make(map[uint32]map[uint32][]decoration),
		types:             make(map[uint32]typeInfo),
		variables:         make(map[uint32]variableInfo),
	}

	for _, in := range instrs {
		switch in.opcode {
		case opName:
			if len(in.words) >= 2 {
				m.names[in.words[0]] = decodeLiteralString(in.words[1:])
			}
		case opMemberName:
			if len(in.words) >= 3 {
				structID, memberIdx := in.words[0], in.words[1]
				if m.memberNames[structID] == nil {
					m.memberNames[structID] = make(map[uint32]string)
				}
				m.memberNames[structID][memberIdx] = decodeLiteralString(in.words[2:])
			}
		case opDecorate:
			if len(in.words) >= 2 {
				target := in.words[0]
				m.decorations[target] = append(m.decorations[target], decoration{
					kind:     in.words[1],
					operands: in.words[2:],
				})
			}
		case opMemberDecorate:
			if len(in.words) >= 3 {
				structID, memberIdx := in.words[0], in.words[1]
				if m.memberDecorations[structID] == nil {
					m.memberDecorations[structID] = make(map[uint32][]decoration)
				}
				m.memberDecorations[structID][memberIdx] = append(
					m.memberDecorations[structID][memberIdx],
					decoration{kind: in.words[2], operands: in.words[3:]},
				)
			}
		case opTypeFloat:
			if len(in.words) >= 2 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeFloat, width: in.words[1]}
			}
		case opTypeInt:
			if len(in.words) >= 3 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeInt, width: in.words[1], signed: in.words[2] != 0}
			}
		case opTypeVector:
			if len(in.words) >= 3 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeVector, componentType: in.words[1], count: in.words[2]}
			}
		case opTypeMatrix:
			if len(in.words) >= 3 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeMatrix, componentType: in.words[1], count: in.words[2]}
			}
		case opTypeArray:
			if len(in.words) >= 3 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeArray, componentType: in.words[1], count: in.words[2]}
			}
		case opTypeStruct:
			if len(in.words) >= 1 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeStruct, members: append([]uint32{}, in.words[1:]...)}
			}
		case opTypePointer:
			if len(in.words) >= 3 {
				m.types[in.words[0]] = typeInfo{opcode: opTypePointer, storageClass: in.words[1], componentType: in.words[2]}
			}
		case opTypeImage:
			if len(in.words) >= 1 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeImage}
			}
		case opTypeSampledImage:
			if len(in.words) >= 2 {
				m.types[in.words[0]] = typeInfo{opcode: opTypeSampledImage, componentType: in.words[1]}
			}
		case opVariable:
			// OpVariable: result type, result id, storage class, [initializer]
			if len(in.words) >= 3 {
				resultType, resultID, storageClass := in.words[0], in.words[1], in.words[2]
				m.variables[resultID] = variableInfo{pointerType: resultType, storageClass: storageClass}
			}
		}
	}
	return m
}

// decorationValue returns the first operand of the first decoration of the
// given kind on target, if present.
func (m *spirvModule) decorationValue(target uint32, kind uint32) (uint32, bool) {
	for _, d := range m.decorations[target] {
		if d.kind == kind && len(d.operands) >= 1 {
			return d.operands[0], true
		}
	}
	return 0, false
}

// hasDecoration reports whether target carries a decoration of the given
// kind (used for decorationBlock, which has no operands).
func (m *spirvModule) hasDecoration(target uint32, kind uint32) bool {
	for _, d := range m.decorations[target] {
		if d.kind == kind {
			return true
		}
	}
	return false
}

// memberOffset returns the byte offset of a struct member from its
// OpMemberDecorate Offset decoration.
func (m *spirvModule) memberOffset(structID, memberIdx uint32) (uint32, bool) {
	for _, d := range m.memberDecorations[structID][memberIdx] {
		if d.kind == decorationOffset && len(d.operands) >= 1 {
			return d.operands[0], true
		}
	}
	return 0, false
}

// pointeeType resolves an OpTypePointer id to the type it points to.
func (m *spirvModule) pointeeType(pointerType uint32) (uint32, bool) {
	t, ok := m.types[pointerType]
	if !ok || t.opcode != opTypePointer {
		return 0, false
	}
	return t.componentType, true
}
