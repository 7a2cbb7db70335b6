// Package semantics enumerates the fixed set of uniform and texture
// semantics a filter-chain shader pass may declare, and the ordered
// name-matching rules used to classify a SPIR-V member name into one of
// them. It is grounded on the UniformSemantics/TextureSemantics enums in
// librashader-reflect's reflect/semantics.rs (original_source/).
package semantics

// UniformType is the storage shape a VariableSemantic's bytes take in a
// UBO or push-constant block. C3 (the uniform package) picks its writer
// from this value.
type UniformType uint8

const (
	// UniformMVP is a 4x4 row-major float matrix (16 components).
	UniformMVP UniformType = iota
	// UniformSize is a vec4 of (width, height, 1/width, 1/height).
	UniformSize
	// UniformUnsigned is a single uint32.
	UniformUnsigned
	// UniformSigned is a single int32.
	UniformSigned
	// UniformFloat is a single float32.
	UniformFloat
)

// String returns the canonical name of the uniform type.
func (t UniformType) String() string {
	switch t {
	case UniformMVP:
		return "mvp"
	case UniformSize:
		return "size"
	case UniformUnsigned:
		return "unsigned"
	case UniformSigned:
		return "signed"
	case UniformFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Components returns the number of 32-bit components this uniform type
// occupies (16 for a mat4, 4 for a vec4, 1 for a scalar).
func (t UniformType) Components() int {
	switch t {
	case UniformMVP:
		return 16
	case UniformSize:
		return 4
	default:
		return 1
	}
}

// VariableSemantic is a non-indexed uniform semantic: a fixed, well-known
// meaning independent of any shader-source name after classification.
type VariableSemantic uint8

const (
	// VarMVP is the per-frame model-view-projection matrix.
	VarMVP VariableSemantic = iota
	// VarOutput is the current pass's output framebuffer size.
	VarOutput
	// VarFinalViewport is the final viewport's size.
	VarFinalViewport
	// VarFrameCount is the frame counter, written modulo the pass's
	// configured modulus.
	VarFrameCount
	// VarFrameDirection is +1 or -1, indicating forward/rewind playback.
	VarFrameDirection
	// VarFloatParameter is a user shader parameter, indexed by name rather
	// than by this enum (see reflectspirv.Reflection.ParameterMeta).
	VarFloatParameter
)

// String returns the canonical name of the variable semantic.
func (v VariableSemantic) String() string {
	switch v {
	case VarMVP:
		return "MVP"
	case VarOutput:
		return "Output"
	case VarFinalViewport:
		return "FinalViewport"
	case VarFrameCount:
		return "FrameCount"
	case VarFrameDirection:
		return "FrameDirection"
	case VarFloatParameter:
		return "FloatParameter"
	default:
		return "Invalid"
	}
}

// BindingType returns the UniformType C3 uses to pick a writer for this
// semantic (spec.md §4.1).
func (v VariableSemantic) BindingType() UniformType {
	switch v {
	case VarMVP:
		return UniformMVP
	case VarOutput, VarFinalViewport:
		return UniformSize
	case VarFrameCount:
		return UniformUnsigned
	case VarFrameDirection:
		return UniformSigned
	case VarFloatParameter:
		return UniformFloat
	default:
		return UniformFloat
	}
}

// CanonicalName returns the exact shader-source identifier this semantic
// matches against (spec.md §4.2 step 4b). VarFloatParameter has no fixed
// canonical name — it matches any remaining identifier.
func (v VariableSemantic) CanonicalName() string {
	switch v {
	case VarMVP:
		return "MVP"
	case VarOutput:
		return "OutputSize"
	case VarFinalViewport:
		return "FinalViewportSize"
	case VarFrameCount:
		return "FrameCount"
	case VarFrameDirection:
		return "FrameDirection"
	default:
		return ""
	}
}

// VariableSemantics is the set of non-array variable semantics matched by
// exact canonical name, in no particular order (exact-match lookup does
// not need the ordered-prefix precedence rule that TextureSemantics does).
var VariableSemantics = []VariableSemantic{
	VarMVP,
	VarOutput,
	VarFinalViewport,
	VarFrameCount,
	VarFrameDirection,
}

// TextureSemantic is an indexed (or singleton) texture/sampler semantic.
type TextureSemantic uint8

const (
	// TexOriginal is the current frame's original input image. Not
	// indexed.
	TexOriginal TextureSemantic = iota
	// TexSource is the previous pass's output (or TexOriginal for pass 0).
	// Not indexed.
	TexSource
	// TexOriginalHistory is a past frame's original input, indexed by age
	// (0 = previous frame).
	TexOriginalHistory
	// TexPassOutput is an earlier pass's output framebuffer, indexed by
	// pass number. Only passes with index < the current pass may be
	// referenced (feed-forward only).
	TexPassOutput
	// TexPassFeedback is a pass's previous-frame output, indexed by pass
	// number. Any pass index may be referenced.
	TexPassFeedback
	// TexUser is a user-supplied LUT, indexed by declaration order in the
	// preset.
	TexUser
)

// String returns the canonical name prefix for the texture semantic.
func (t TextureSemantic) String() string {
	switch t {
	case TexOriginal:
		return "Original"
	case TexSource:
		return "Source"
	case TexOriginalHistory:
		return "OriginalHistory"
	case TexPassOutput:
		return "PassOutput"
	case TexPassFeedback:
		return "PassFeedback"
	case TexUser:
		return "User"
	default:
		return "Invalid"
	}
}

// IsArray reports whether the semantic is indexed.
func (t TextureSemantic) IsArray() bool {
	return t != TexOriginal && t != TexSource
}

// TextureName returns the unindexed texture-binding name prefix.
func (t TextureSemantic) TextureName() string {
	return t.String()
}

// SizeUniformName returns the unindexed `{prefix}Size` uniform name
// prefix (spec.md §4.1).
func (t TextureSemantic) SizeUniformName() string {
	return t.String() + "Size"
}

// TextureSemanticsOrder is the **contractual** ordered sequence used for
// prefix-match name classification (spec.md §4.1, §4.2 step 4c). Source
// first avoids misclassifying "SourceSize" against a hypothetical shorter
// prefix; OriginalHistory is listed before Original so a name like
// "OriginalHistory3Size" is never misparsed as "Original" + "History3Size".
// This order must never be reordered or sorted — see the Testable
// Properties' name-precedence rule in spec.md §8.
var TextureSemanticsOrder = []TextureSemantic{
	TexSource,
	TexOriginalHistory,
	TexOriginal,
	TexPassOutput,
	TexPassFeedback,
	TexUser,
}
