package service

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
)

// RandomGridGenerator implements ports.GridGenerator with a partial Fisher-Yates shuffle,
// so every mineCount-subset of the board is equally likely.
type RandomGridGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGridGenerator creates a generator seeded from the runtime's random source.
func NewGridGenerator() *RandomGridGenerator {
	return NewSeededGridGenerator(rand.Uint64())
}

// NewSeededGridGenerator creates a deterministic generator.
func NewSeededGridGenerator(seed uint64) *RandomGridGenerator {
	return &RandomGridGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// GenerateBombs returns mineCount distinct tiles in [0, gridSize), sorted ascending.
func (g *RandomGridGenerator) GenerateBombs(gridSize, mineCount int) ([]int, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %d", gridSize)
	}
	if mineCount < 1 || mineCount > gridSize {
		return nil, fmt.Errorf("mine count must be between 1 and %d, got %d", gridSize, mineCount)
	}

	pool := make([]int, gridSize)
	for i := range pool {
		pool[i] = i
	}

	g.mu.Lock()
	for i := 0; i < mineCount; i++ {
		j := i + g.rng.IntN(gridSize-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	g.mu.Unlock()

	bombs := slices.Clone(pool[:mineCount])
	slices.Sort(bombs)
	return bombs, nil
}
