package semantics

import "testing"

func TestTextureSemanticsOrderIsContractual(t *testing.T) {
	want := []TextureSemantic{TexSource, TexOriginalHistory, TexOriginal, TexPassOutput, TexPassFeedback, TexUser}
	if len(TextureSemanticsOrder) != len(want) {
		t.Fatalf("TextureSemanticsOrder has %d entries, want %d", len(TextureSemanticsOrder), len(want))
	}
	for i, sem := range want {
		if TextureSemanticsOrder[i] != sem {
			t.Errorf("TextureSemanticsOrder[%d] = %v, want %v", i, TextureSemanticsOrder[i], sem)
		}
	}
}

func TestOriginalHistoryPrecedesOriginal(t *testing.T) {
	var historyPos, originalPos int = -1, -1
	for i, sem := range TextureSemanticsOrder {
		switch sem {
		case TexOriginalHistory:
			historyPos = i
		case TexOriginal:
			originalPos = i
		}
	}
	if historyPos == -1 || originalPos == -1 {
		t.Fatal("expected both TexOriginalHistory and TexOriginal in order")
	}
	if historyPos >= originalPos {
		t.Errorf("TexOriginalHistory must precede TexOriginal in the ordered sequence, got positions %d, %d", historyPos, originalPos)
	}
}

func TestVariableSemanticBindingType(t *testing.T) {
	cases := map[VariableSemantic]UniformType{
		VarMVP:            UniformMVP,
		VarOutput:         UniformSize,
		VarFinalViewport:  UniformSize,
		VarFrameCount:     UniformUnsigned,
		VarFrameDirection: UniformSigned,
		VarFloatParameter: UniformFloat,
	}
	for sem, want := range cases {
		if got := sem.BindingType(); got != want {
			t.Errorf("%v.BindingType() = %v, want %v", sem, got, want)
		}
	}
}

func TestUniformTypeComponents(t *testing.T) {
	if UniformMVP.Components() != 16 {
		t.Errorf("UniformMVP.Components() = %d, want 16", UniformMVP.Components())
	}
	if UniformSize.Components() != 4 {
		t.Errorf("UniformSize.Components() = %d, want 4", UniformSize.Components())
	}
	if UniformFloat.Components() != 1 {
		t.Errorf("UniformFloat.Components() = %d, want 1", UniformFloat.Components())
	}
}

func TestTextureSemanticIsArray(t *testing.T) {
	if TexOriginal.IsArray() {
		t.Error("TexOriginal should not be an array semantic")
	}
	if TexSource.IsArray() {
		t.Error("TexSource should not be an array semantic")
	}
	for _, sem := range []TextureSemantic{TexOriginalHistory, TexPassOutput, TexPassFeedback, TexUser} {
		if !sem.IsArray() {
			t.Errorf("%v should be an array semantic", sem)
		}
	}
}

func TestSizeUniformName(t *testing.T) {
	if got := TexOriginalHistory.SizeUniformName(); got != "OriginalHistorySize" {
		t.Errorf("SizeUniformName() = %q, want %q", got, "OriginalHistorySize")
	}
}
