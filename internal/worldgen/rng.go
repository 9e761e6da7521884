// Package worldgen implements the deterministic graph generator (C3), the
// world generator and lore inheritance (C4/C5), and the dungeon initializer
// (C6). Grounded on dshills-dungo's contracts pipeline (Generator/
// GraphSynthesizer/RNG) and VoidMesh's seeded-noise chunk manager.
package worldgen

import "math/rand"

// RNG is the deterministic source every generation stage draws from instead
// of the global math/rand functions, per dshills-dungo's contracts.RNG.
type RNG interface {
	Uint64() uint64
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
	Seed() uint64
}

// rngSource is the stdlib-backed RNG implementation; *rand.Rand already
// supplies every method RNG needs except Seed, which it remembers at
// construction (math/rand.Rand does not expose its seed after the fact).
type rngSource struct {
	*rand.Rand
	seed uint64
}

// NewRNG returns a deterministic RNG derived from seed: the same seed always
// produces the same sequence, satisfying C3's "deterministic given (rng,
// difficultyLevel)" contract.
func NewRNG(seed uint64) RNG {
	return &rngSource{Rand: rand.New(rand.NewSource(int64(seed))), seed: seed}
}

func (r *rngSource) Seed() uint64 { return r.seed }
