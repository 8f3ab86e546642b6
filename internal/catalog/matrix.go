package catalog

import (
	"github.com/luccabranco/wildspire/internal/battle"
)

// MatrixEntry is one configured attacker-vs-defender multiplier. Pairs that
// are never listed resolve to 1.0 (neutral).
type MatrixEntry struct {
	Attacker   battle.Element `json:"attacker"`
	Defender   battle.Element `json:"defender"`
	Multiplier float64        `json:"multiplier"`
}

// Matrix is the element-effectiveness table. It is immutable after
// construction and safe to share across concurrently running battles.
type Matrix struct {
	table map[battle.Element]map[battle.Element]float64
}

// NewMatrix builds a Matrix from explicit entries. Later entries override
// earlier ones for the same pair.
func NewMatrix(entries []MatrixEntry) *Matrix {
	m := &Matrix{table: make(map[battle.Element]map[battle.Element]float64)}
	for _, e := range entries {
		row, ok := m.table[e.Attacker]
		if !ok {
			row = make(map[battle.Element]float64)
			m.table[e.Attacker] = row
		}
		row[e.Defender] = e.Multiplier
	}
	return m
}

// Effectiveness returns the configured multiplier for attacker vs defender,
// defaulting to 1.0 for unspecified pairs.
func (m *Matrix) Effectiveness(attacker, defender battle.Element) float64 {
	if row, ok := m.table[attacker]; ok {
		if v, ok := row[defender]; ok {
			return v
		}
	}
	return 1.0
}

// DefaultMatrixEntries is the authoritative element table. The config file
// may extend or override it, but these pairs are what shipped content is
// balanced against.
func DefaultMatrixEntries() []MatrixEntry {
	return []MatrixEntry{
		{battle.Fire, battle.Nature, 2.0},
		{battle.Fire, battle.Ice, 2.0},
		{battle.Fire, battle.Metal, 1.5},
		{battle.Fire, battle.Water, 0.5},
		{battle.Fire, battle.Fire, 0.5},
		{battle.Fire, battle.Earth, 0.5},

		{battle.Water, battle.Fire, 2.0},
		{battle.Water, battle.Earth, 1.5},
		{battle.Water, battle.Water, 0.5},
		{battle.Water, battle.Nature, 0.5},

		{battle.Earth, battle.Electric, 2.0},
		{battle.Earth, battle.Fire, 1.5},
		{battle.Earth, battle.Metal, 1.5},
		{battle.Earth, battle.Nature, 0.5},
		{battle.Earth, battle.Wind, 0.0},

		{battle.Wind, battle.Nature, 1.5},
		{battle.Wind, battle.Earth, 0.5},
		{battle.Wind, battle.Electric, 0.5},

		{battle.Electric, battle.Water, 2.0},
		{battle.Electric, battle.Wind, 2.0},
		{battle.Electric, battle.Electric, 0.5},
		{battle.Electric, battle.Nature, 0.5},
		{battle.Electric, battle.Earth, 0.0},

		{battle.Ice, battle.Nature, 2.0},
		{battle.Ice, battle.Wind, 1.5},
		{battle.Ice, battle.Earth, 1.5},
		{battle.Ice, battle.Fire, 0.5},
		{battle.Ice, battle.Water, 0.5},
		{battle.Ice, battle.Ice, 0.5},
		{battle.Ice, battle.Metal, 0.5},

		{battle.Nature, battle.Water, 2.0},
		{battle.Nature, battle.Earth, 2.0},
		{battle.Nature, battle.Fire, 0.5},
		{battle.Nature, battle.Nature, 0.5},
		{battle.Nature, battle.Metal, 0.5},
		{battle.Nature, battle.Wind, 0.5},

		{battle.Metal, battle.Ice, 2.0},
		{battle.Metal, battle.Nature, 1.5},
		{battle.Metal, battle.Fire, 0.5},
		{battle.Metal, battle.Water, 0.5},
		{battle.Metal, battle.Electric, 0.5},
		{battle.Metal, battle.Metal, 0.5},

		{battle.Shadow, battle.Spirit, 2.0},
		{battle.Shadow, battle.Shadow, 0.5},
		{battle.Shadow, battle.Metal, 0.5},

		{battle.Spirit, battle.Shadow, 2.0},
		{battle.Spirit, battle.Neutral, 0.0},
		{battle.Neutral, battle.Spirit, 0.0},
		{battle.Neutral, battle.Metal, 0.5},
	}
}
