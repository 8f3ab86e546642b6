package engine

import (
	"math"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
)

const (
	stabMultiplier = 1.5
	critMultiplier = 1.5

	// CritBaseChance is the per-hit critical probability before any
	// crit-boost effect. Boosted attackers use CritBoostedChance instead.
	CritBaseChance    = 1.0 / 16.0
	CritBoostedChance = 1.0 / 4.0

	// paralysisSpeedFactor slows a paralyzed creature for turn ordering.
	paralysisSpeedFactor = 0.5

	// fieldBoost applies to abilities matching the charged field element.
	fieldBoost = 1.25
)

// offenseStat returns the attacker's category-relevant offense after stage
// adjustment.
func offenseStat(st *State, c *battle.Creature, cat battle.Category) float64 {
	if cat == battle.CategorySpecial {
		return float64(c.SpAttack) * StageMultiplier(st.StatStage(c, battle.StatSpAttack))
	}
	return float64(c.Attack) * StageMultiplier(st.StatStage(c, battle.StatAttack))
}

// defenseStat returns the defender's category-relevant defense after stage
// adjustment.
func defenseStat(st *State, c *battle.Creature, cat battle.Category) float64 {
	if cat == battle.CategorySpecial {
		return float64(c.SpDefense) * StageMultiplier(st.StatStage(c, battle.StatSpDefense))
	}
	return float64(c.Defense) * StageMultiplier(st.StatStage(c, battle.StatDefense))
}

// EffectiveSpeed is the ordering speed: base speed scaled by the speed stage
// and halved under paralysis.
func EffectiveSpeed(st *State, c *battle.Creature) float64 {
	speed := float64(c.Speed) * StageMultiplier(st.StatStage(c, battle.StatSpeed))
	if st.Condition(c) == battle.ConditionParalysis {
		speed *= paralysisSpeedFactor
	}
	return speed
}

// DamageBreakdown reports how a damage figure was produced so events and
// AI scoring can reference the same facts.
type DamageBreakdown struct {
	Damage        int
	Effectiveness float64
	STAB          bool
	Critical      bool
}

// ComputeDamage evaluates the damage formula for one hit:
//
//	base = max(1, offense*2*power/100 - defense*0.5)
//
// then same-element bonus (x1.5), the element matrix multiplier, the field
// boost and the critical multiplier. An effectiveness of 0 short-circuits to
// zero damage (immune). Typeless abilities skip STAB and the matrix.
func ComputeDamage(cat *catalog.Catalog, st *State, attacker, defender *battle.Creature, def *battle.AbilityDefinition, critical bool) DamageBreakdown {
	out := DamageBreakdown{Effectiveness: 1.0, Critical: critical}
	if def.Power <= 0 {
		return out
	}

	off := offenseStat(st, attacker, def.Category)
	defense := defenseStat(st, defender, def.Category)
	base := off*2.0*float64(def.Power)/100.0 - defense*0.5
	if base < 1 {
		base = 1
	}

	dmg := base
	if !def.Typeless {
		if def.Element == attacker.Element {
			out.STAB = true
			dmg *= stabMultiplier
		}
		out.Effectiveness = cat.Effectiveness(def.Element, defender.Element)
		if out.Effectiveness == 0 {
			out.Damage = 0
			return out
		}
		dmg *= out.Effectiveness
	}
	if st.FieldTurns > 0 && st.FieldElement != battle.Neutral && def.Element == st.FieldElement {
		dmg *= fieldBoost
	}
	if critical {
		dmg *= critMultiplier
	}

	out.Damage = int(math.Floor(dmg))
	if out.Damage < 1 {
		out.Damage = 1
	}
	return out
}

// EstimateDamage is the decision engine's optimistic view of ComputeDamage:
// assume the hit lands and is not critical. It shares every other rule with
// the resolver so evaluation never diverges from actual outcomes.
func EstimateDamage(cat *catalog.Catalog, st *State, attacker, defender *battle.Creature, def *battle.AbilityDefinition) DamageBreakdown {
	return ComputeDamage(cat, st, attacker, defender, def, false)
}
