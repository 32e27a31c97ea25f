// Package artifact produces the canned payloads returned for each response kind.
// Nothing here is derived from real data.
package artifact

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Generator produces text, chart and file payloads. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from the runtime random source
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()), time.Now)
}

// NewGeneratorWithSource creates a generator with a fixed random source and clock
func NewGeneratorWithSource(src rand.Source, now func() time.Time) *Generator {
	return &Generator{rng: rand.New(src), now: now}
}

// Text returns one of the canned analysis reports, chosen uniformly
func (g *Generator) Text() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return textReports[g.rng.IntN(len(textReports))]
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
