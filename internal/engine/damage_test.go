package engine

import (
	"testing"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/stretchr/testify/assert"
)

func TestComputeDamageBaseFormula(t *testing.T) {
	cat := testCatalog()
	st := NewState()
	attacker := testCreature(1, "Cindertail", battle.Fire, 80, 65)
	defender := testCreature(2, "Mistfin", battle.Water, 85, 55)

	def, _ := cat.Ability("tackle")
	bd := ComputeDamage(cat, st, &attacker, &defender, def, false)

	// offense 60 * 2 * 40/100 - defense 55 * 0.5 = 48 - 27.5 = 20.5,
	// neutral element, no STAB.
	assert.Equal(t, 20, bd.Damage)
	assert.False(t, bd.STAB)
	assert.InDelta(t, 1.0, bd.Effectiveness, 1e-9)
}

func TestComputeDamageAppliesSTABAndMatrix(t *testing.T) {
	cat := testCatalog()
	st := NewState()
	attacker := testCreature(1, "Cindertail", battle.Fire, 80, 65)
	waterFoe := testCreature(2, "Mistfin", battle.Water, 85, 55)
	natureFoe := testCreature(3, "Thornhide", battle.Nature, 85, 55)

	def, _ := cat.Ability("ember")
	vsWater := ComputeDamage(cat, st, &attacker, &waterFoe, def, false)
	vsNature := ComputeDamage(cat, st, &attacker, &natureFoe, def, false)

	assert.True(t, vsWater.STAB)
	assert.InDelta(t, 0.5, vsWater.Effectiveness, 1e-9)
	assert.InDelta(t, 2.0, vsNature.Effectiveness, 1e-9)
	assert.Greater(t, vsNature.Damage, vsWater.Damage)
}

func TestComputeDamageImmunityShortCircuits(t *testing.T) {
	cat := testCatalog()
	st := NewState()
	attacker := testCreature(1, "Boulderback", battle.Earth, 90, 40)
	flier := testCreature(2, "Galewing", battle.Wind, 70, 90)

	def := &battle.AbilityDefinition{Key: "quake", Name: "Quake", Element: battle.Earth, Category: battle.CategoryPhysical, Power: 100, Accuracy: 100}
	bd := ComputeDamage(cat, st, &attacker, &flier, def, false)

	assert.Equal(t, 0, bd.Damage)
	assert.Zero(t, bd.Effectiveness)
}

func TestComputeDamageFloorsAtOne(t *testing.T) {
	cat := testCatalog()
	st := NewState()
	attacker := testCreature(1, "Wisp", battle.Neutral, 30, 40)
	attacker.Attack = 1
	tank := testCreature(2, "Bastion", battle.Metal, 200, 20)
	tank.Defense = 500

	def, _ := cat.Ability("tackle")
	bd := ComputeDamage(cat, st, &attacker, &tank, def, false)

	assert.GreaterOrEqual(t, bd.Damage, 1)
}

func TestComputeDamageCritAndStageInteraction(t *testing.T) {
	cat := testCatalog()
	st := NewState()
	attacker := testCreature(1, "Cindertail", battle.Fire, 80, 65)
	defender := testCreature(2, "Mistfin", battle.Water, 85, 55)

	def, _ := cat.Ability("tackle")
	plain := ComputeDamage(cat, st, &attacker, &defender, def, false)
	crit := ComputeDamage(cat, st, &attacker, &defender, def, true)
	assert.Greater(t, crit.Damage, plain.Damage)

	st.ApplyStageDelta(&attacker, battle.StatAttack, 2)
	boosted := ComputeDamage(cat, st, &attacker, &defender, def, false)
	assert.Greater(t, boosted.Damage, plain.Damage)
}

func TestEffectiveSpeedHalvedByParalysis(t *testing.T) {
	st := NewState()
	c := testCreature(1, "Cindertail", battle.Fire, 80, 64)

	assert.InDelta(t, 64, EffectiveSpeed(st, &c), 1e-9)
	st.ApplyStatus(&c, battle.ConditionParalysis, 0)
	assert.InDelta(t, 32, EffectiveSpeed(st, &c), 1e-9)

	st.ClearStatus(&c)
	st.ApplyStageDelta(&c, battle.StatSpeed, -2)
	assert.InDelta(t, 32, EffectiveSpeed(st, &c), 1e-9)
}
