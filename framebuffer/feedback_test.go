package framebuffer

import (
	"testing"

	"github.com/gogpu/filterchain/hal/noop"
)

func TestFeedbackPairSwapExchangesCurrentAndPrevious(t *testing.T) {
	device := noop.NewDevice()
	pair := NewFeedbackPair(device)
	current := pair.Current
	previous := pair.Previous

	pair.Swap()

	if pair.Current != previous {
		t.Error("expected Current to become the old Previous after Swap")
	}
	if pair.Previous != current {
		t.Error("expected Previous to become the old Current after Swap")
	}
}

func TestFeedbackPairDoubleSwapIsIdentity(t *testing.T) {
	device := noop.NewDevice()
	pair := NewFeedbackPair(device)
	current := pair.Current
	previous := pair.Previous

	pair.Swap()
	pair.Swap()

	if pair.Current != current || pair.Previous != previous {
		t.Error("expected two swaps to return to the original assignment")
	}
}
