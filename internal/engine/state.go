package engine

import (
	"github.com/luccabranco/wildspire/internal/battle"
)

const (
	// MinStage and MaxStage bound every stat stage.
	MinStage = -6
	MaxStage = 6
)

// CombatantState holds the battle-scoped mutable facts for one creature that
// are not part of its persistent fields: stat stages, the active status
// condition, guard streaks and the transient turn-mechanic flags. Fields are
// exported so the whole State can round-trip through JSON on the battle row.
type CombatantState struct {
	Stages map[battle.Stat]int `json:"stages,omitempty"`

	Condition      battle.Condition `json:"condition,omitempty"`
	ConditionTurns int              `json:"condition_turns,omitempty"`

	GuardStreak int  `json:"guard_streak,omitempty"`
	GuardActive bool `json:"guard_active,omitempty"`
	ShieldTurns int  `json:"shield_turns,omitempty"`
	DecoyHP     int  `json:"decoy_hp,omitempty"`

	CritBoosted  bool   `json:"crit_boosted,omitempty"`
	Flinched     bool   `json:"flinched,omitempty"`
	Charging     string `json:"charging,omitempty"`
	MustRecharge bool   `json:"must_recharge,omitempty"`
}

// State is the Battle State component: pure data plus query/mutation
// operations, keyed by creature identity. It carries no decision logic.
type State struct {
	Combatants map[uint]*CombatantState `json:"combatants"`

	// Field-wide effect: abilities matching FieldElement get boosted while
	// FieldTurns is positive.
	FieldElement battle.Element `json:"field_element,omitempty"`
	FieldTurns   int            `json:"field_turns,omitempty"`
}

// NewState returns an empty battle state.
func NewState() *State {
	return &State{Combatants: make(map[uint]*CombatantState)}
}

func (s *State) entry(c *battle.Creature) *CombatantState {
	if s.Combatants == nil {
		s.Combatants = make(map[uint]*CombatantState)
	}
	cs, ok := s.Combatants[c.ID]
	if !ok {
		cs = &CombatantState{Stages: make(map[battle.Stat]int)}
		s.Combatants[c.ID] = cs
	}
	if cs.Stages == nil {
		cs.Stages = make(map[battle.Stat]int)
	}
	return cs
}

// StatStage returns the creature's current stage for stat, 0 by default.
func (s *State) StatStage(c *battle.Creature, stat battle.Stat) int {
	return s.entry(c).Stages[stat]
}

// ApplyStageDelta shifts a stat stage by delta, silently clamping the result
// to [MinStage, MaxStage], and returns the resulting stage.
func (s *State) ApplyStageDelta(c *battle.Creature, stat battle.Stat, delta int) int {
	cs := s.entry(c)
	v := cs.Stages[stat] + delta
	if v > MaxStage {
		v = MaxStage
	}
	if v < MinStage {
		v = MinStage
	}
	cs.Stages[stat] = v
	return v
}

// StageMultiplier translates a stage into its stat multiplier: stage 0 is
// 1.0, positive stages scale by (2+s)/2, negative stages by 2/(2-s). The
// resolver's damage math and the decision engine's estimates both use this
// exact curve.
func StageMultiplier(stage int) float64 {
	if stage > MaxStage {
		stage = MaxStage
	}
	if stage < MinStage {
		stage = MinStage
	}
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// Condition returns the creature's active primary status condition.
func (s *State) Condition(c *battle.Creature) battle.Condition {
	return s.entry(c).Condition
}

// HasStatus reports whether the creature carries a primary condition.
func (s *State) HasStatus(c *battle.Creature) bool {
	return s.entry(c).Condition != battle.ConditionNone
}

// ApplyStatus assigns a primary condition. A second condition while one is
// active is refused (no override); the resolver surfaces the refusal as an
// "already afflicted" event rather than an error. Duration <= 0 means the
// condition lasts until cleansed.
func (s *State) ApplyStatus(c *battle.Creature, cond battle.Condition, duration int) bool {
	cs := s.entry(c)
	if cs.Condition != battle.ConditionNone {
		return false
	}
	cs.Condition = cond
	cs.ConditionTurns = duration
	return true
}

// ClearStatus removes the creature's primary condition.
func (s *State) ClearStatus(c *battle.Creature) {
	cs := s.entry(c)
	cs.Condition = battle.ConditionNone
	cs.ConditionTurns = 0
}

// GuardStreak returns how many consecutive rounds the creature has guarded.
func (s *State) GuardStreak(c *battle.Creature) int {
	return s.entry(c).GuardStreak
}

// IncrementGuardStreak bumps the consecutive-guard counter and returns it.
func (s *State) IncrementGuardStreak(c *battle.Creature) int {
	cs := s.entry(c)
	cs.GuardStreak++
	return cs.GuardStreak
}

// ResetGuardStreak zeroes the consecutive-guard counter.
func (s *State) ResetGuardStreak(c *battle.Creature) {
	s.entry(c).GuardStreak = 0
}

// Cleanse drops the primary condition and every negative stat stage. Positive
// stages are kept.
func (s *State) Cleanse(c *battle.Creature) {
	cs := s.entry(c)
	cs.Condition = battle.ConditionNone
	cs.ConditionTurns = 0
	for stat, v := range cs.Stages {
		if v < 0 {
			cs.Stages[stat] = 0
		}
	}
}

// Forget drops all state for a creature (used when it leaves the field for
// good; stages and volatile conditions never persist outside a battle).
func (s *State) Forget(c *battle.Creature) {
	delete(s.Combatants, c.ID)
}
