package plan

// LCG is a 64-bit linear-congruential generator (Knuth MMIX constants).
// It is the engine's only source of randomness: the same seed always yields
// the same stream, which is what makes stored runs replayable.
type LCG struct {
	state uint64
}

// NewLCG creates a generator seeded with seed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

// Float64 returns the next value in [0, 1).
func (g *LCG) Float64() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	// top 53 bits give a full-precision float mantissa
	return float64(g.state>>11) / (1 << 53)
}

// Intn returns a value in [0, n). n must be positive.
func (g *LCG) Intn(n int) int {
	return int(g.Float64() * float64(n))
}

// Shuffle pseudo-randomly permutes indices [0, n) and returns the order.
func (g *LCG) Shuffle(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
