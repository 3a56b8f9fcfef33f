package pattern

import (
	"math/rand"
	"time"
)

// Source supplies the random integers used by the generators. *rand.Rand
// satisfies it, which lets tests pass a seeded generator.
type Source interface {
	// Intn returns a uniform integer in [0, n). n is always > 0.
	Intn(n int) int
}

// NewSource returns a math/rand generator. A zero seed picks a time-based
// seed, any other value gives a repeatable sequence.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
