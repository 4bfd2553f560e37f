package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(256, 8); !ok || got != 2048 {
		t.Fatalf("MulOverflowSafe(256,8)=%d,%v want 2048,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, math.MaxInt); !ok || got != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt, 2); ok {
		t.Fatalf("expected overflow when doubling MaxInt")
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow just past MaxInt")
	}
}
