package uniform

import (
	"testing"

	"github.com/gogpu/filterchain/reflectspirv"
)

func TestRingIndexesModulo(t *testing.T) {
	refl := &reflectspirv.Reflection{Ubo: &reflectspirv.UboBlock{SizeBytes: 16}}
	ring := NewRing(refl, 3)

	if ring.Current(0) != ring.Current(3) {
		t.Error("expected frame 0 and frame 3 to share the same shadow (3 %% 3 == 0)")
	}
	if ring.Current(1) == ring.Current(2) {
		t.Error("expected distinct frames within one period to use distinct shadows")
	}
}

func TestRingDegradesToSingleShadowBelowTwo(t *testing.T) {
	refl := &reflectspirv.Reflection{Ubo: &reflectspirv.UboBlock{SizeBytes: 16}}
	ring := NewRing(refl, 0)
	if ring.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ring.Len())
	}
}
