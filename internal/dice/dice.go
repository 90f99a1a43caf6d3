// Package dice provides the random source used to vary bot flavor text.
package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Roller provides dice rolling functionality. It is safe for concurrent use.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *Roller {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *Roller) Roll(sides int) int {
	if sides < 1 {
		sides = 6
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Pick returns one of the given lines, or "" when there are none
func (r *Roller) Pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[r.Roll(len(lines))-1]
}
