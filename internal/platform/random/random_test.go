package random_test

import (
	"testing"

	"flowrpg/internal/platform/random"
)

type fixed int

func (f fixed) Intn(n int) int { return int(f) % n }

func TestBetweenIsInclusive(t *testing.T) {
	t.Parallel()
	if got := random.Between(fixed(0), 10, 30); got != 10 {
		t.Fatalf("expected lower bound 10, got %d", got)
	}
	if got := random.Between(fixed(20), 10, 30); got != 30 {
		t.Fatalf("expected upper bound 30, got %d", got)
	}
	if got := random.Between(fixed(5), 7, 7); got != 7 {
		t.Fatalf("degenerate range must return lo, got %d", got)
	}
}

func TestSystemStaysInRange(t *testing.T) {
	t.Parallel()
	src := random.System{}
	for i := 0; i < 200; i++ {
		v := random.Between(src, 10, 30)
		if v < 10 || v > 30 {
			t.Fatalf("value out of range: %d", v)
		}
	}
	if src.Intn(0) != 0 {
		t.Fatalf("Intn(0) must be 0")
	}
}
