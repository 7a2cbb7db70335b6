package reflectspirv

import (
	"errors"
	"fmt"
)

// ReflectErrorKind enumerates the ways reflection can fail (spec.md §7).
type ReflectErrorKind uint8

const (
	// MismatchedLayout: the vertex and fragment stages each declare a UBO
	// (or push block) but with different size or member layout.
	MismatchedLayout ReflectErrorKind = iota
	// UnknownSemantic: a uniform member name did not match any alias,
	// variable semantic, texture-size semantic, or known parameter name.
	// Sampled-image names that match no texture semantic are skipped, not
	// rejected.
	UnknownSemantic
	// InvalidType: a name matched a semantic but its declared SPIR-V type
	// does not match that semantic's expected type.
	InvalidType
	// PushTooLarge: the push-constant block exceeds 128 bytes.
	PushTooLarge
	// BindingOutOfRange: a sampler binding is >= MaxBindings (16).
	BindingOutOfRange
	// IndexMalformed: an array semantic's numeric suffix is not a
	// well-formed decimal index (leading zeros, out of [0,255], etc).
	IndexMalformed
)

// String returns the canonical name of the error kind.
func (k ReflectErrorKind) String() string {
	switch k {
	case MismatchedLayout:
		return "MismatchedLayout"
	case UnknownSemantic:
		return "UnknownSemantic"
	case InvalidType:
		return "InvalidType"
	case PushTooLarge:
		return "PushTooLarge"
	case BindingOutOfRange:
		return "BindingOutOfRange"
	case IndexMalformed:
		return "IndexMalformed"
	default:
		return "Unknown"
	}
}

// ReflectError is returned by Reflect when a SPIR-V pair cannot be turned
// into a valid Reflection plan.
type ReflectError struct {
	Kind ReflectErrorKind
	// MemberName is the offending uniform/texture member name, if applicable.
	MemberName string
	// Expected and Actual describe a type mismatch (InvalidType only).
	Expected string
	Actual   string
	// Binding is the offending binding index (BindingOutOfRange only).
	Binding uint32
	Cause   error
}

// Error implements the error interface.
func (e *ReflectError) Error() string {
	switch e.Kind {
	case MismatchedLayout:
		return "reflect: mismatched UBO/push layout between vertex and fragment stages"
	case UnknownSemantic:
		return fmt.Sprintf("reflect: unknown semantic for name %q", e.MemberName)
	case InvalidType:
		return fmt.Sprintf("reflect: %q has type %s, expected %s", e.MemberName, e.Actual, e.Expected)
	case PushTooLarge:
		return "reflect: push-constant block exceeds 128 bytes"
	case BindingOutOfRange:
		return fmt.Sprintf("reflect: binding %d exceeds MaxBindings", e.Binding)
	case IndexMalformed:
		return fmt.Sprintf("reflect: malformed array index in name %q", e.MemberName)
	default:
		return "reflect: error"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *ReflectError) Unwrap() error {
	return e.Cause
}

// IsReflectError reports whether err is a *ReflectError of the given kind.
func IsReflectError(err error, kind ReflectErrorKind) bool {
	var re *ReflectError
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind == kind
}
