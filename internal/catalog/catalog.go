// Package catalog holds the immutable content lookups consumed by the
// resolver and the decision engine: ability definitions, species templates,
// the element-effectiveness matrix and tamer skill bonuses. A Catalog is
// built once from config and shared read-only across battles.
package catalog

import (
	"sort"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/keys"
)

// LastResortKey identifies the built-in fallback action available to any
// creature whose abilities are all out of uses.
const LastResortKey = "last_resort"

type Catalog struct {
	abilities map[string]*battle.AbilityDefinition
	species   map[string]*battle.Species
	matrix    *Matrix
	bonuses   map[string]float64

	lastResort *battle.AbilityDefinition
}

// New builds a Catalog. Ability and species lookups are keyed by their
// normalized key/name; the matrix defaults unspecified pairs to 1.0.
// Bonuses may be nil.
func New(abilities []battle.AbilityDefinition, species []battle.Species, entries []MatrixEntry, bonuses map[string]float64) *Catalog {
	c := &Catalog{
		abilities: make(map[string]*battle.AbilityDefinition, len(abilities)+1),
		species:   make(map[string]*battle.Species, len(species)),
		matrix:    NewMatrix(entries),
		bonuses:   bonuses,
	}
	for i := range abilities {
		a := abilities[i]
		c.abilities[keys.Normalize(a.Key)] = &a
	}
	for i := range species {
		s := species[i]
		c.species[keys.Normalize(s.Name)] = &s
	}
	c.lastResort = &battle.AbilityDefinition{
		Key:         LastResortKey,
		Name:        "Last Resort",
		Description: "A desperate, always-available strike used when nothing else is left.",
		Element:     battle.Neutral,
		Category:    battle.CategoryPhysical,
		Power:       35,
		Accuracy:    100,
		MaxUses:     0,
		Typeless:    true,
	}
	c.abilities[LastResortKey] = c.lastResort
	return c
}

// Ability returns the definition for key, or false when the catalog has no
// entry. Callers treat a missing entry as a data-integrity error, not as a
// silently skipped action.
func (c *Catalog) Ability(key string) (*battle.AbilityDefinition, bool) {
	a, ok := c.abilities[keys.Normalize(key)]
	return a, ok
}

// Abilities returns every configured definition, last resort included.
func (c *Catalog) Abilities() []*battle.AbilityDefinition {
	out := make([]*battle.AbilityDefinition, 0, len(c.abilities))
	for _, a := range c.abilities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Species returns the template for name, or false when unknown.
func (c *Catalog) Species(name string) (*battle.Species, bool) {
	s, ok := c.species[keys.Normalize(name)]
	return s, ok
}

// Effectiveness returns the element multiplier for attacker vs defender.
func (c *Catalog) Effectiveness(attacker, defender battle.Element) float64 {
	return c.matrix.Effectiveness(attacker, defender)
}

// LastResort returns the universal fallback ability definition.
func (c *Catalog) LastResort() *battle.AbilityDefinition {
	return c.lastResort
}

// SkillBonus returns the tamer-skill multiplier for an effect kind, 1.0 when
// none is configured. Bonuses only adjust pre-battle-entry values; nothing
// consults them mid-resolution.
func (c *Catalog) SkillBonus(kind string) float64 {
	if v, ok := c.bonuses[kind]; ok && v > 0 {
		return v
	}
	return 1.0
}
