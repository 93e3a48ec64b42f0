package trend

import "math/rand/v2"

// RandomSource draws uniform floats. Implementations need not be safe for
// concurrent use; each request builds its own.
type RandomSource interface {
	// Uniform returns a value in [lo, hi].
	Uniform(lo, hi float64) float64
}

type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource returns a source seeded from the runtime entropy pool.
func NewRandomSource() RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededSource returns a reproducible source: equal seeds yield equal
// sequences.
func NewSeededSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}
