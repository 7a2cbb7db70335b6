package reflectspirv

import (
	"fmt"

	"github.com/gogpu/filterchain/semantics"
)

// describeType renders a SPIR-V type id as the short name used in
// ReflectError.InvalidType's "actual" field (e.g. "mat4", "vec4", "float",
// "uint"). Types this reflector does not need to validate render as
// "struct" or "unknown".
func describeType(m *spirvModule, typeID uint32) string {
	t, ok := m.types[typeID]
	if !ok {
		return "unknown"
	}
	switch t.opcode {
	case opTypeFloat:
		return "float"
	case opTypeInt:
		if t.signed {
			return "int"
		}
		return "uint"
	case opTypeVector:
		prefix := "vec"
		if comp, ok := m.types[t.componentType]; ok && comp.opcode == opTypeInt {
			if comp.signed {
				prefix = "ivec"
			} else {
				prefix = "uvec"
			}
		}
		return fmt.Sprintf("%s%d", prefix, t.count)
	case opTypeMatrix:
		return fmt.Sprintf("mat%d", t.count)
	case opTypeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// expectedTypeName is the canonical short name for a UniformType, used to
// build ReflectError.InvalidType's "expected" field.
func expectedTypeName(u semantics.UniformType) string {
	switch u {
	case semantics.UniformMVP:
		return "mat4"
	case semantics.UniformSize:
		return "vec4"
	case semantics.UniformUnsigned:
		return "uint"
	case semantics.UniformSigned:
		return "int"
	case semantics.UniformFloat:
		return "float"
	default:
		return "unknown"
	}
}

// componentsOf returns the component count of a SPIR-V scalar/vector/matrix
// type (1 for scalar, N for vecN, cols*rows for a matrix).
func componentsOf(m *spirvModule, typeID uint32) int {
	t, ok := m.types[typeID]
	if !ok {
		return 0
	}
	switch t.opcode {
	case opTypeFloat, opTypeInt:
		return 1
	case opTypeVector:
		return int(t.count)
	case opTypeMatrix:
		if col, ok := m.types[t.componentType]; ok && col.opcode == opTypeVector {
			return int(t.count) * int(col.count)
		}
		return int(t.count)
	default:
		return 0
	}
}

// matchesUniformType reports whether a SPIR-V type id structurally matches
// the given UniformType.
func matchesUniformType(m *spirvModule, typeID uint32, want semantics.UniformType) bool {
	t, ok := m.types[typeID]
	if !ok {
		return false
	}
	switch want {
	case semantics.UniformMVP:
		return t.opcode == opTypeMatrix && componentsOf(m, typeID) == 16
	case semantics.UniformSize:
		return t.opcode == opTypeVector && t.count == 4
	case semantics.UniformUnsigned:
		return t.opcode == opTypeInt && !t.signed
	case semantics.UniformSigned:
		return t.opcode == opTypeInt && t.signed
	case semantics.UniformFloat:
		return t.opcode == opTypeFloat
	default:
		return false
	}
}
