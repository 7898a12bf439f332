package ember

import "math/rand/v2"

// RandSource yields uniform samples in [0, 1). *rand.Rand satisfies it.
// Sources are not safe for concurrent use; an emitter owns its source, or
// several emitters share one from the same goroutine to stay in lockstep.
type RandSource interface {
	Float64() float64
}

// NewRand returns a deterministic PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// sample draws one value from r using src. A sample is consumed even for
// degenerate ranges so the draw order stays fixed while ranges are tuned.
func sample(r Range, src RandSource) float64 {
	return r.Lerp(src.Float64())
}
