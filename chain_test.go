package filterchain

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/filterchain/framebuffer"
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/hal/noop"
	"github.com/gogpu/filterchain/preset"
)

// The handful of SPIR-V opcode/decoration numbers this file needs to
// hand-assemble minimal test shaders. These are the standard SPIR-V
// numbers (SPIR-V spec §3), not anything internal to package
// reflectspirv, duplicated here the same way reflectspirv's own tests
// hand-assemble modules.
const (
	spirvMagic = 0x07230203

	opName              = 5
	opTypeFloat         = 22
	opTypeVector        = 23
	opTypeSampledImage  = 27
	opTypeImage         = 25
	opTypePointer       = 32
	opVariable          = 59
	opDecorate          = 71
	opTypeSampler       = 26

	decorationBinding       = 33
	decorationDescriptorSet = 34

	storageClassUniformConstant = 0
)

// minimalBuilder hand-assembles a SPIR-V module declaring zero or more
// named sampled-image bindings and nothing else, enough to exercise
// reflectspirv's texture classification without a UBO or push block.
type minimalBuilder struct {
	words  []uint32
	nextID uint32
}

func newMinimalBuilder() *minimalBuilder {
	b := &minimalBuilder{nextID: 1}
	b.words = append(b.words, spirvMagic, 0x00010000, 0, 0, 0)
	return b
}

func (b *minimalBuilder) id() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *minimalBuilder) emit(opcode uint16, operands ...uint32) {
	head := uint32(uint16(1+len(operands)))<<16 | uint32(opcode)
	b.words = append(b.words, head)
	b.words = append(b.words, operands...)
}

func (b *minimalBuilder) name(target uint32, s string) {
	lit := encodeLiteralString(s)
	b.emit(opName, append([]uint32{target}, lit...)...)
}

func (b *minimalBuilder) image(name string, binding uint32) {
	sampledImageType := b.id()
	f32 := b.id()
	b.emit(opTypeFloat, f32, 32)
	imageType := b.id()
	b.emit(opTypeImage, imageType, f32, 1, 0, 0, 0, 1, 0)
	b.emit(opTypeSampledImage, sampledImageType, imageType)
	ptrType := b.id()
	b.emit(opTypePointer, ptrType, storageClassUniformConstant, sampledImageType)
	varID := b.id()
	b.emit(opVariable, ptrType, varID, storageClassUniformConstant)
	b.name(varID, name)
	b.emit(opDecorate, varID, decorationBinding, binding)
	b.emit(opDecorate, varID, decorationDescriptorSet, 0)
}

func (b *minimalBuilder) bytes() []byte {
	b.words[3] = b.nextID
	out := make([]byte, len(b.words)*4)
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func encodeLiteralString(s string) []uint32 {
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

// emptyModule returns a header-only SPIR-V module: no UBO, no push
// block, no textures.
func emptyModule() []byte {
	return newMinimalBuilder().bytes()
}

// sourceReadShader returns a fragment shader that samples exactly one
// texture under the given name at binding 0.
func sourceReadShader(textureName string) []byte {
	b := newMinimalBuilder()
	b.image(textureName, 0)
	return b.bytes()
}

func onePassInput(textureName string, scale preset.ScaleConfig, feedback bool) ChainInput {
	return ChainInput{
		Preset: preset.Preset{
			Passes: []preset.PassConfig{
				{
					ShaderPath:   "identity.slang",
					Scale:        scale,
					FormatHint:   preset.FormatUnknown,
					MinMagFilter: preset.FilterLinear,
					Feedback:     feedback,
				},
			},
		},
		Shaders: []ShaderSource{
			{VertexSPIRV: emptyModule(), FragmentSPIRV: sourceReadShader(textureName)},
		},
	}
}

func identityScale() preset.ScaleConfig {
	return preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleSource, Factor: 1},
		Y: preset.AxisScale{Type: preset.ScaleSource, Factor: 1},
	}
}

func TestNewChainBuildsOnePassIdentityShader(t *testing.T) {
	device := noop.NewDevice()
	input := onePassInput("Source", identityScale(), false)

	chain, err := NewChain(device, input, DefaultChainOptions())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	defer chain.Destroy()

	if len(chain.passes) != 1 {
		t.Fatalf("len(chain.passes) = %d, want 1", len(chain.passes))
	}
}

func TestFrameIdentityPassthroughCopiesInputToViewport(t *testing.T) {
	device := noop.NewDevice()
	input := onePassInput("Source", identityScale(), false)

	chain, err := NewChain(device, input, DefaultChainOptions())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	defer chain.Destroy()

	original, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})
	viewport, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})

	fillImage(t, original, 0xAB)

	err = chain.Frame(FrameInput{
		Original:     original,
		OriginalSize: framebuffer.Size{Width: 4, Height: 4},
		Viewport:     viewport,
		ViewportSize: framebuffer.Size{Width: 4, Height: 4},
		FrameCount:   0,
	})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if !allBytesEqual(readImage(t, viewport), 0xAB) {
		t.Error("expected the single identity pass to copy the original input into the viewport")
	}
}

func TestFrameTwoPassDownscaleHalvesOutputSize(t *testing.T) {
	device := noop.NewDevice()

	half := preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleSource, Factor: 0.5},
		Y: preset.AxisScale{Type: preset.ScaleSource, Factor: 0.5},
	}

	input := ChainInput{
		Preset: preset.Preset{
			Passes: []preset.PassConfig{
				{ShaderPath: "p0.slang", Scale: identityScale(), MinMagFilter: preset.FilterLinear},
				{ShaderPath: "p1.slang", Scale: half, MinMagFilter: preset.FilterLinear},
			},
		},
		Shaders: []ShaderSource{
			{VertexSPIRV: emptyModule(), FragmentSPIRV: sourceReadShader("Source")},
			{VertexSPIRV: emptyModule(), FragmentSPIRV: sourceReadShader("Source")},
		},
	}

	chain, err := NewChain(device, input, DefaultChainOptions())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	defer chain.Destroy()

	original, _ := device.CreateImage(&hal.ImageDescriptor{Width: 8, Height: 8, Format: preset.FormatR8G8B8A8Unorm})
	viewport, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})

	err = chain.Frame(FrameInput{
		Original:     original,
		OriginalSize: framebuffer.Size{Width: 8, Height: 8},
		Viewport:     viewport,
		ViewportSize: framebuffer.Size{Width: 4, Height: 4},
		FrameCount:   0,
	})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if got := chain.passes[1].output.Size(); got != (framebuffer.Size{Width: 4, Height: 4}) {
		t.Errorf("pass 1 output size = %+v, want 4x4 (half of pass 0's 8x8)", got)
	}
}

func TestFrameFeedbackPassResolvesOwnPreviousOutput(t *testing.T) {
	device := noop.NewDevice()
	input := onePassInput("PassFeedback0", identityScale(), true)

	chain, err := NewChain(device, input, DefaultChainOptions())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	defer chain.Destroy()

	original, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})
	viewport, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})
	fillImage(t, original, 0x11)

	frame := func(count uint32) error {
		return chain.Frame(FrameInput{
			Original:     original,
			OriginalSize: framebuffer.Size{Width: 4, Height: 4},
			Viewport:     viewport,
			ViewportSize: framebuffer.Size{Width: 4, Height: 4},
			FrameCount:   count,
		})
	}

	// Frame 0: PassFeedback0 resolves to the (unallocated, zeroed)
	// Previous image, since no prior frame has written Current yet.
	if err := frame(0); err != nil {
		t.Fatalf("frame 0: %v", err)
	}
	// Frame 1: PassFeedback0 now resolves to frame 0's Current, which
	// became Previous at the swap following frame 0.
	if err := frame(1); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
}

func TestFrameHistoryOfLengthTwoRotatesSlots(t *testing.T) {
	device := noop.NewDevice()
	input := onePassInput("OriginalHistory1", identityScale(), false)

	chain, err := NewChain(device, input, DefaultChainOptions())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	defer chain.Destroy()

	if chain.history.Len() != 2 {
		t.Fatalf("history.Len() = %d, want 2 (OriginalHistory[1] forces length 2)", chain.history.Len())
	}

	original, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})
	viewport, _ := device.CreateImage(&hal.ImageDescriptor{Width: 4, Height: 4, Format: preset.FormatR8G8B8A8Unorm})

	for i := uint32(0); i < 3; i++ {
		fillImage(t, original, byte(0x10+i))
		if err := chain.Frame(FrameInput{
			Original:     original,
			OriginalSize: framebuffer.Size{Width: 4, Height: 4},
			Viewport:     viewport,
			ViewportSize: framebuffer.Size{Width: 4, Height: 4},
			FrameCount:   i,
		}); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

func fillImage(t *testing.T, img hal.Image, v byte) {
	t.Helper()
	noopImg, ok := img.(*noop.Image)
	if !ok {
		t.Fatalf("fillImage: not a *noop.Image")
	}
	px := noopImg.Pixels()
	for i := range px {
		px[i] = v
	}
}

func readImage(t *testing.T, img hal.Image) []byte {
	t.Helper()
	noopImg, ok := img.(*noop.Image)
	if !ok {
		t.Fatalf("readImage: not a *noop.Image")
	}
	return noopImg.Pixels()
}

func allBytesEqual(b []byte, v byte) bool {
	for _, x := range b {
		if x != v {
			return false
		}
	}
	return true
}
