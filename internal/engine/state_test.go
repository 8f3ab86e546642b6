package engine

import (
	"encoding/json"
	"testing"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplyStageDeltaClampsSilently(t *testing.T) {
	st := NewState()
	c := battle.Creature{Model: gorm.Model{ID: 1}}

	assert.Equal(t, 2, st.ApplyStageDelta(&c, battle.StatAttack, 2))
	assert.Equal(t, 4, st.ApplyStageDelta(&c, battle.StatAttack, 2))
	assert.Equal(t, 6, st.ApplyStageDelta(&c, battle.StatAttack, 2))
	// Further boosts clamp at the cap instead of failing.
	assert.Equal(t, 6, st.ApplyStageDelta(&c, battle.StatAttack, 2))

	assert.Equal(t, -6, st.ApplyStageDelta(&c, battle.StatSpeed, -9))
	assert.Equal(t, -6, st.StatStage(&c, battle.StatSpeed))
}

func TestStageMultiplierCurve(t *testing.T) {
	assert.InDelta(t, 1.0, StageMultiplier(0), 1e-9)
	assert.InDelta(t, 1.5, StageMultiplier(1), 1e-9)
	assert.InDelta(t, 2.0, StageMultiplier(2), 1e-9)
	assert.InDelta(t, 4.0, StageMultiplier(6), 1e-9)
	assert.InDelta(t, 2.0/3.0, StageMultiplier(-1), 1e-9)
	assert.InDelta(t, 0.5, StageMultiplier(-2), 1e-9)
	assert.InDelta(t, 0.25, StageMultiplier(-6), 1e-9)
}

func TestApplyStatusRefusesSecondCondition(t *testing.T) {
	st := NewState()
	c := battle.Creature{Model: gorm.Model{ID: 1}}

	require.True(t, st.ApplyStatus(&c, battle.ConditionBurn, 0))
	assert.False(t, st.ApplyStatus(&c, battle.ConditionSleep, 2))
	assert.Equal(t, battle.ConditionBurn, st.Condition(&c))

	st.ClearStatus(&c)
	assert.True(t, st.ApplyStatus(&c, battle.ConditionSleep, 2))
}

func TestCleanseDropsOnlyNegativeStages(t *testing.T) {
	st := NewState()
	c := battle.Creature{Model: gorm.Model{ID: 1}}
	st.ApplyStageDelta(&c, battle.StatAttack, 2)
	st.ApplyStageDelta(&c, battle.StatDefense, -3)
	st.ApplyStatus(&c, battle.ConditionPoison, 0)

	st.Cleanse(&c)

	assert.Equal(t, battle.ConditionNone, st.Condition(&c))
	assert.Equal(t, 2, st.StatStage(&c, battle.StatAttack))
	assert.Equal(t, 0, st.StatStage(&c, battle.StatDefense))
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	st := NewState()
	c := battle.Creature{Model: gorm.Model{ID: 7}}
	st.ApplyStageDelta(&c, battle.StatSpeed, -2)
	st.ApplyStatus(&c, battle.ConditionParalysis, 0)
	st.IncrementGuardStreak(&c)
	st.FieldElement = battle.Fire
	st.FieldTurns = 3

	raw, err := json.Marshal(st)
	require.NoError(t, err)

	restored := NewState()
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, -2, restored.StatStage(&c, battle.StatSpeed))
	assert.Equal(t, battle.ConditionParalysis, restored.Condition(&c))
	assert.Equal(t, 1, restored.GuardStreak(&c))
	assert.Equal(t, battle.Fire, restored.FieldElement)
	assert.Equal(t, 3, restored.FieldTurns)
}
