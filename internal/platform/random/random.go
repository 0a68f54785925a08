package random

import "math/rand"

// Source draws uniform integers in [0, n). Boss rolls, boss names and story
// snippets all go through it so tests can pin the outcome.
type Source interface {
	Intn(n int) int
}

type System struct{}

func (System) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// Between returns a uniform integer in [lo, hi], inclusive.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
