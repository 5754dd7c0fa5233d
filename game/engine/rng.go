package engine

import (
	"time"

	"golang.org/x/exp/rand"
)

// RNG is the single source of randomness for dice rolls and deck shuffles
type RNG interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSeededRNG returns a deterministic RNG for the given seed
func NewSeededRNG(seed uint64) RNG {
	return rand.New(rand.NewSource(seed))
}

// newRNGFromConfig seeds from the config, falling back to the clock when unset
func newRNGFromConfig(config *GameConfig) RNG {
	if config != nil && config.Seed != 0 {
		return NewSeededRNG(config.Seed)
	}
	return NewSeededRNG(uint64(time.Now().UnixNano()))
}

func rollDie(rng RNG) int {
	return rng.Intn(6) + 1
}
