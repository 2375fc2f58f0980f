package sim

import (
	"math/rand"
	"sync"
)

type lockedDice struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewDice returns a seeded Dice safe for concurrent use across request
// handlers.
func NewDice(seed int64) Dice {
	return &lockedDice{r: rand.New(rand.NewSource(seed))}
}

func (d *lockedDice) Intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}

func (d *lockedDice) Float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Float64()
}
