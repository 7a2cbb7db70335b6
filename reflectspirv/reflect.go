// Package reflectspirv implements C2 (the Reflector): it walks a SPIR-V
// vertex/fragment pair and classifies every uniform-buffer member,
// push-constant member, and sampled image into a well-known semantic
// (semantics.VariableSemantic / semantics.TextureSemantic), producing a
// Reflection plan the binding driver (package binding) later resolves
// against live textures and values every frame.
//
// The SPIR-V decoder (spirv.go, module.go) is hand-rolled against the raw
// word stream rather than built on a reflection library: the only
// SPIR-V-adjacent tooling available in this module's ecosystem
// (github.com/gogpu/naga) exposes a WGSL front end, not a SPIR-V one (see
// DESIGN.md). The decoder follows the instruction-stream-walk pattern
// demonstrated by naga's own SPIR-V test harness: decode opcode+wordCount,
// skip what isn't needed, index what is by result id.
package reflectspirv

import (
	"strconv"
	"strings"

	"github.com/gogpu/filterchain/semantics"
)

// MaxBindings is the number of sampler/texture binding slots (spec.md
// §4.2): all sampler bindings must be < MaxBindings.
const MaxBindings = 16

// MaxPushBytes is the largest valid push-constant block size in bytes
// (spec.md §4.2).
const MaxPushBytes = 128

// StageMask records which shader stages a UBO, push block, or binding was
// referenced from.
type StageMask uint8

const (
	StageVertex   StageMask = 1 << 0
	StageFragment StageMask = 1 << 1
)

// MemberOffset locates a classified member inside either the UBO or the
// push-constant byte region.
type MemberOffset struct {
	Push  bool
	Bytes uint32
}

// BindingMeta is the metadata recorded for every classified uniform
// member: where its bytes live, how many 32-bit components it occupies,
// and the SPIR-V name it was declared under (kept for diagnostics).
type BindingMeta struct {
	Offset     MemberOffset
	Components int
	Name       string
}

// TextureKey identifies one texture semantic slot: (semantic, index). Index
// is always 0 for the non-array semantics (Original, Source).
type TextureKey struct {
	Semantic semantics.TextureSemantic
	Index    int
}

// UboBlock describes a pass's uniform buffer block, if it declares one.
type UboBlock struct {
	Binding   uint32
	SizeBytes uint32
	StageMask StageMask
}

// PushBlock describes a pass's push-constant block, if it declares one.
type PushBlock struct {
	SizeBytes uint32
	StageMask StageMask
}

// TextureSizeMeta is the metadata for a `{Prefix}Size` uniform member.
type TextureSizeMeta struct {
	Offset    MemberOffset
	StageMask StageMask
}

// TextureMeta is the metadata for a sampled-image binding.
type TextureMeta struct {
	Binding uint32
}

// Reflection is the immutable, per-pass output of Reflect. It is built
// once at chain construction (spec.md §3 Lifecycle summary).
type Reflection struct {
	Ubo  *UboBlock
	Push *PushBlock

	ParameterMeta   map[string]BindingMeta
	VariableMeta    map[semantics.VariableSemantic]BindingMeta
	TextureSizeMeta map[TextureKey]TextureSizeMeta
	TextureMeta     map[TextureKey]TextureMeta
}

// AliasTable maps a preset pass alias's derived names to the TextureKey
// they refer to (spec.md §4.2 step 4a, EXPANSION C.4's double
// registration of both the output and feedback names per alias).
type AliasTable struct {
	// TextureNames maps an exact binding name (e.g. "MyPass",
	// "MyPassFeedback") to its TextureKey.
	TextureNames map[string]TextureKey
	// SizeNames maps an exact `{name}Size` uniform name to its TextureKey.
	SizeNames map[string]TextureKey
}

// ReflectInput bundles a SPIR-V pair with the classification context that
// comes from outside the shader source: the preset's alias table and the
// set of parameter names the reflector should accept as FloatParameter
// (the union of the preset's parameter map and the shader's own declared
// defaults).
type ReflectInput struct {
	VertexSPIRV   []byte
	FragmentSPIRV []byte
	Aliases       AliasTable
	ValidParams   map[string]bool
}

type memberDesc struct {
	name     string
	offset   uint32
	offsetOK bool
	typeID   uint32
}

type imageDesc struct {
	name    string
	binding uint32
	hasBind bool
}

type stageBlocks struct {
	hasUbo     bool
	uboBinding uint32
	uboMembers []memberDesc

	hasPush     bool
	pushMembers []memberDesc

	images []imageDesc
}

func extractStage(m *spirvModule) stageBlocks {
	var sb stageBlocks
	for varID, v := range m.variables {
		switch v.storageClass {
		case storageClassUniform:
			if sb.hasUbo {
				continue
			}
			pointee, ok := m.pointeeType(v.pointerType)
			if !ok {
				continue
			}
			t, ok := m.types[pointee]
			if !ok || t.opcode != opTypeStruct || !m.hasDecoration(pointee, decorationBlock) {
				continue
			}
			sb.hasUbo = true
			sb.uboBinding, _ = m.decorationValue(varID, decorationBinding)
			sb.uboMembers = structMembers(m, pointee, t)
		case storageClassPushConstant:
			if sb.hasPush {
				continue
			}
			pointee, ok := m.pointeeType(v.pointerType)
			if !ok {
				continue
			}
			t, ok := m.types[pointee]
			if !ok || t.opcode != opTypeStruct {
				continue
			}
			sb.hasPush = true
			sb.pushMembers = structMembers(m, pointee, t)
		case storageClassUniformConstant:
			pointee, ok := m.pointeeType(v.pointerType)
			if !ok {
				continue
			}
			t, ok := m.types[pointee]
			if !ok || (t.opcode != opTypeSampledImage && t.opcode != opTypeImage) {
				continue
			}
			binding, hasBind := m.decorationValue(varID, decorationBinding)
			sb.images = append(sb.images, imageDesc{
				name:    m.names[varID],
				binding: binding,
				hasBind: hasBind,
			})
		}
	}
	return sb
}

func structMembers(m *spirvModule, structID uint32, t typeInfo) []memberDesc {
	members := make([]memberDesc, 0, len(t.members))
	for i, typeID := range t.members {
		idx := uint32(i)
		offset, ok := m.memberOffset(structID, idx)
		members = append(members, memberDesc{
			name:     m.memberNames[structID][idx],
			offset:   offset,
			offsetOK: ok,
			typeID:   typeID,
		})
	}
	return members
}

func blockSize(m *spirvModule, members []memberDesc) uint32 {
	var size uint32
	for _, mem := range members {
		end := mem.offset + uint32(componentsOf(m, mem.typeID))*4
		if end > size {
			size = end
		}
	}
	return size
}

// Reflect walks the given SPIR-V vertex/fragment pair and produces a
// Reflection, or a *ReflectError if the pair cannot be classified (spec.md
// §4.2).
func Reflect(in ReflectInput) (*Reflection, error) {
	vm := parseModule(in.VertexSPIRV)
	fm := parseModule(in.FragmentSPIRV)
	vStage := extractStage(vm)
	fStage := extractStage(fm)

	refl := &Reflection{
		ParameterMeta:   make(map[string]BindingMeta),
		VariableMeta:    make(map[semantics.VariableSemantic]BindingMeta),
		TextureSizeMeta: make(map[TextureKey]TextureSizeMeta),
		TextureMeta:     make(map[TextureKey]TextureMeta),
	}

	if err := mergeUbo(refl, vm, fm, vStage, fStage); err != nil {
		return nil, err
	}
	if err := mergePush(refl, vm, fm, vStage, fStage); err != nil {
		return nil, err
	}

	uboSource, uboMembers := vm, vStage.uboMembers
	if len(uboMembers) == 0 {
		uboSource, uboMembers = fm, fStage.uboMembers
	}
	if err := classifyMembers(refl, uboSource, uboMembers, false, in); err != nil {
		return nil, err
	}

	pushSource, pushMembers := vm, vStage.pushMembers
	if len(pushMembers) == 0 {
		pushSource, pushMembers = fm, fStage.pushMembers
	}
	if err := classifyMembers(refl, pushSource, pushMembers, true, in); err != nil {
		return nil, err
	}

	if err := classifyImages(refl, vStage.images, in); err != nil {
		return nil, err
	}
	if err := classifyImages(refl, fStage.images, in); err != nil {
		return nil, err
	}

	return refl, nil
}

func mergeUbo(refl *Reflection, vm, fm *spirvModule, vStage, fStage stageBlocks) error {
	switch {
	case vStage.hasUbo && fStage.hasUbo:
		vSize := blockSize(vm, vStage.uboMembers)
		fSize := blockSize(fm, fStage.uboMembers)
		if vSize != fSize || !sameMembers(vm, vStage.uboMembers, fm, fStage.uboMembers) {
			return &ReflectError{Kind: MismatchedLayout}
		}
		refl.Ubo = &UboBlock{Binding: vStage.uboBinding, SizeBytes: vSize, StageMask: StageVertex | StageFragment}
	case vStage.hasUbo:
		refl.Ubo = &UboBlock{Binding: vStage.uboBinding, SizeBytes: blockSize(vm, vStage.uboMembers), StageMask: StageVertex}
	case fStage.hasUbo:
		refl.Ubo = &UboBlock{Binding: fStage.uboBinding, SizeBytes: blockSize(fm, fStage.uboMembers), StageMask: StageFragment}
	}
	return nil
}

func mergePush(refl *Reflection, vm, fm *spirvModule, vStage, fStage stageBlocks) error {
	var size uint32
	var mask StageMask
	switch {
	case vStage.hasPush && fStage.hasPush:
		vSize := blockSize(vm, vStage.pushMembers)
		fSize := blockSize(fm, fStage.pushMembers)
		if vSize != fSize || !sameMembers(vm, vStage.pushMembers, fm, fStage.pushMembers) {
			return &ReflectError{Kind: MismatchedLayout}
		}
		size, mask = vSize, StageVertex|StageFragment
	case vStage.hasPush:
		size, mask = blockSize(vm, vStage.pushMembers), StageVertex
	case fStage.hasPush:
		size, mask = blockSize(fm, fStage.pushMembers), StageFragment
	default:
		return nil
	}
	if size > MaxPushBytes {
		return &ReflectError{Kind: PushTooLarge}
	}
	refl.Push = &PushBlock{SizeBytes: size, StageMask: mask}
	return nil
}

func sameMembers(vm *spirvModule, vMembers []memberDesc, fm *spirvModule, fMembers []memberDesc) bool {
	if len(vMembers) != len(fMembers) {
		return false
	}
	for i, vmem := range vMembers {
		fmem := fMembers[i]
		if vmem.name != fmem.name || vmem.offset != fmem.offset {
			return false
		}
		if describeType(vm, vmem.typeID) != describeType(fm, fmem.typeID) {
			return false
		}
	}
	return true
}

func classifyMembers(refl *Reflection, m *spirvModule, members []memberDesc, isPush bool, in ReflectInput) error {
	for _, mem := range members {
		if mem.name == "" {
			continue
		}
		offset := MemberOffset{Push: isPush, Bytes: mem.offset}
		components := componentsOf(m, mem.typeID)

		if key, ok := in.Aliases.SizeNames[mem.name]; ok {
			if !matchesUniformType(m, mem.typeID, semantics.UniformSize) {
				return &ReflectError{Kind: InvalidType, MemberName: mem.name, Expected: expectedTypeName(semantics.UniformSize), Actual: describeType(m, mem.typeID)}
			}
			refl.TextureSizeMeta[key] = TextureSizeMeta{Offset: offset, StageMask: stageMaskFor(isPush)}
			continue
		}

		if varSem, ok := matchVariableCanonicalName(mem.name); ok {
			want := varSem.BindingType()
			if !matchesUniformType(m, mem.typeID, want) {
				return &ReflectError{Kind: InvalidType, MemberName: mem.name, Expected: expectedTypeName(want), Actual: describeType(m, mem.typeID)}
			}
			refl.VariableMeta[varSem] = BindingMeta{Offset: offset, Components: components, Name: mem.name}
			continue
		}

		if key, err := matchTextureSizeName(mem.name); err != nil {
			return err
		} else if key != nil {
			if !matchesUniformType(m, mem.typeID, semantics.UniformSize) {
				return &ReflectError{Kind: InvalidType, MemberName: mem.name, Expected: expectedTypeName(semantics.UniformSize), Actual: describeType(m, mem.typeID)}
			}
			refl.TextureSizeMeta[*key] = TextureSizeMeta{Offset: offset, StageMask: stageMaskFor(isPush)}
			continue
		}

		if !in.ValidParams[mem.name] {
			return &ReflectError{Kind: UnknownSemantic, MemberName: mem.name}
		}
		if !matchesUniformType(m, mem.typeID, semantics.UniformFloat) {
			return &ReflectError{Kind: InvalidType, MemberName: mem.name, Expected: expectedTypeName(semantics.UniformFloat), Actual: describeType(m, mem.typeID)}
		}
		refl.ParameterMeta[mem.name] = BindingMeta{Offset: offset, Components: components, Name: mem.name}
	}
	return nil
}

func stageMaskFor(isPush bool) StageMask {
	// The merge step already recorded the true per-stage mask on the block
	// itself; per-member masks are not modeled separately by spec.md §3,
	// so members simply inherit "referenced" (both stages considered, since
	// a member only exists if its owning block exists in at least one).
	return StageVertex | StageFragment
}

func matchVariableCanonicalName(name string) (semantics.VariableSemantic, bool) {
	for _, v := range semantics.VariableSemantics {
		if name == v.CanonicalName() {
			return v, true
		}
	}
	return 0, false
}

// matchTextureSizeName applies the ordered prefix-match rule (spec.md §4.1,
// §4.2 step 4c) against a `{Prefix}[index]Size` uniform name. It returns
// (nil, nil) if no texture-size semantic matches.
func matchTextureSizeName(name string) (*TextureKey, error) {
	const suffix = "Size"
	if !strings.HasSuffix(name, suffix) {
		return nil, nil
	}
	base := name[:len(name)-len(suffix)]
	for _, sem := range semantics.TextureSemanticsOrder {
		prefix := sem.TextureName()
		if !sem.IsArray() {
			if base == prefix {
				return &TextureKey{Semantic: sem, Index: 0}, nil
			}
			continue
		}
		if !strings.HasPrefix(base, prefix) {
			continue
		}
		idxStr := base[len(prefix):]
		idx, ok, malformed := parseArrayIndex(idxStr)
		if malformed {
			return nil, &ReflectError{Kind: IndexMalformed, MemberName: name}
		}
		if ok {
			return &TextureKey{Semantic: sem, Index: idx}, nil
		}
	}
	return nil, nil
}

func classifyImages(refl *Reflection, images []imageDesc, in ReflectInput) error {
	for _, img := range images {
		if img.name == "" {
			continue
		}
		key, malformed := classifyTextureBindingName(img.name, in.Aliases.TextureNames)
		if malformed != nil {
			return malformed
		}
		if key == nil {
			continue
		}
		if !img.hasBind {
			continue
		}
		if img.binding >= MaxBindings {
			return &ReflectError{Kind: BindingOutOfRange, Binding: img.binding, MemberName: img.name}
		}
		if existing, ok := refl.TextureMeta[*key]; ok && existing.Binding != img.binding {
			return &ReflectError{Kind: BindingOutOfRange, Binding: img.binding, MemberName: img.name}
		}
		refl.TextureMeta[*key] = TextureMeta{Binding: img.binding}
	}
	return nil
}

// classifyTextureBindingName applies alias lookup then the ordered
// prefix-match rule (no Size suffix) to a sampled-image variable's name.
func classifyTextureBindingName(name string, aliases map[string]TextureKey) (*TextureKey, error) {
	if key, ok := aliases[name]; ok {
		return &key, nil
	}
	for _, sem := range semantics.TextureSemanticsOrder {
		prefix := sem.TextureName()
		if !sem.IsArray() {
			if name == prefix {
				k := TextureKey{Semantic: sem, Index: 0}
				return &k, nil
			}
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		idxStr := name[len(prefix):]
		idx, ok, malformed := parseArrayIndex(idxStr)
		if malformed {
			return nil, &ReflectError{Kind: IndexMalformed, MemberName: name}
		}
		if ok {
			k := TextureKey{Semantic: sem, Index: idx}
			return &k, nil
		}
	}
	return nil, nil
}

// parseArrayIndex parses the decimal index suffix grammar from spec.md
// §6: decimal integers without leading zeros (except "0" itself), in
// range [0,255]. Returns ok=false (not malformed) if s is empty — that
// means "no index here", not "bad index".
func parseArrayIndex(s string) (index int, ok bool, malformed bool) {
	if s == "" {
		return 0, false, false
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false, true
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false, true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return 0, false, true
	}
	return n, true, false
}
