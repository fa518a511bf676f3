package loader

import (
	"math/rand/v2"
	"time"

	"marketdash/internal/dashboard/memorystore"
)

// SimulatedNote is attached to every generated panel.
const SimulatedNote = "Simulated values for illustration only; not sourced from market data."

// RiskRegions are the regions shown on the simulated risk panel.
var RiskRegions = []string{"Middle East", "Europe", "Asia", "Americas", "Africa", "Oceania"}

// Simulator generates the demo panels. It is not safe for concurrent use.
type Simulator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator returns a Simulator seeded from seed; equal seeds give equal panels.
func NewSimulator(seed uint64) *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// Generate produces risk scores in [20, 85) per region and index day-changes in [-2, 2).
func (s *Simulator) Generate(indices []IndexDef) memorystore.Simulated {
	out := memorystore.Simulated{
		Simulated:   true,
		Note:        SimulatedNote,
		RiskScores:  make([]memorystore.RiskScore, 0, len(RiskRegions)),
		IndexMoves:  make([]memorystore.IndexMove, 0, len(indices)),
		GeneratedAt: s.now(),
	}

	for _, region := range RiskRegions {
		score := 20 + s.rng.IntN(65)
		out.RiskScores = append(out.RiskScores, memorystore.RiskScore{
			Region: region,
			Score:  score,
			Level:  RiskLevel(score),
		})
	}
	for _, idx := range indices {
		out.IndexMoves = append(out.IndexMoves, memorystore.IndexMove{
			Name:      idx.Name,
			ChangePct: -2 + 4*s.rng.Float64(),
		})
	}
	return out
}

// RiskLevel buckets a score: LOW below 33, MEDIUM below 66, HIGH otherwise.
func RiskLevel(score int) string {
	switch {
	case score < 33:
		return "LOW"
	case score < 66:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
