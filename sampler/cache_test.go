package sampler

import (
	"testing"

	"github.com/gogpu/filterchain/hal/noop"
	"github.com/gogpu/filterchain/preset"
)

func TestCacheDeduplicatesIdenticalKeys(t *testing.T) {
	c := NewCache(noop.NewDevice())
	key := Key{Wrap: preset.WrapRepeat, MinMagFilter: preset.FilterLinear}

	a, err := c.Get(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.Get(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("expected identical sampler Key to return the same backend handle")
	}
}

func TestCacheDistinguishesDifferentKeys(t *testing.T) {
	c := NewCache(noop.NewDevice())
	a, _ := c.Get(Key{Wrap: preset.WrapRepeat})
	b, _ := c.Get(Key{Wrap: preset.WrapClampToEdge})
	if a == b {
		t.Error("expected distinct wrap modes to produce distinct sampler handles")
	}
}

func TestPreloadCreatesAllKeysUpFront(t *testing.T) {
	c := NewCache(noop.NewDevice())
	keys := []Key{
		{Wrap: preset.WrapRepeat},
		{Wrap: preset.WrapClampToEdge},
		{Wrap: preset.WrapMirroredRepeat},
	}
	if err := c.Preload(keys); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.entries) != 3 {
		t.Errorf("entries = %d, want 3", len(c.entries))
	}
}

func TestPassKeyAndLutKeyDerivation(t *testing.T) {
	pass := preset.PassConfig{Wrap: preset.WrapClampToBorder, MinMagFilter: preset.FilterNearest, Mipmap: true}
	got := PassKey(pass)
	want := Key{Wrap: preset.WrapClampToBorder, MinMagFilter: preset.FilterNearest, Mipmap: true}
	if got != want {
		t.Errorf("PassKey = %+v, want %+v", got, want)
	}

	lut := preset.LutConfig{Wrap: preset.WrapRepeat, MipFilter: preset.FilterLinear}
	gotLut := LutKey(lut)
	wantLut := Key{Wrap: preset.WrapRepeat, MipFilter: preset.FilterLinear}
	if gotLut != wantLut {
		t.Errorf("LutKey = %+v, want %+v", gotLut, wantLut)
	}
}
