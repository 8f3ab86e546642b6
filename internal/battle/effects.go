package battle

// EffectKind discriminates the Effect tagged variant.
type EffectKind string

const (
	// EffectStatStage shifts a stat stage on the user or the opponent.
	EffectStatStage EffectKind = "stat_stage"
	// EffectStatus applies a primary status condition to the opponent.
	EffectStatus EffectKind = "status"
	// EffectRecoil damages the user for a percentage of the damage dealt.
	EffectRecoil EffectKind = "recoil"
	// EffectDrain heals the user for a percentage of the damage dealt.
	EffectDrain EffectKind = "drain"
	// EffectFlinch may make the target skip its action this round.
	EffectFlinch EffectKind = "flinch"
	// EffectRecharge forces the user to sit out the following round.
	EffectRecharge EffectKind = "recharge"
	// EffectCharge makes the ability spend one round charging before it hits.
	EffectCharge EffectKind = "charge"
	// EffectGuard halves incoming damage for the rest of the round.
	EffectGuard EffectKind = "guard"
	// EffectShield reduces incoming damage by a quarter for Duration rounds.
	EffectShield EffectKind = "shield"
	// EffectCleanse removes the user's status condition and negative stages.
	EffectCleanse EffectKind = "cleanse"
	// EffectDecoy conjures a stand-in that absorbs damage until it breaks.
	EffectDecoy EffectKind = "decoy"
	// EffectField charges the battlefield with the ability's element,
	// boosting matching abilities for Duration rounds.
	EffectField EffectKind = "field"
	// EffectCritBoost raises the user's critical-hit chance while active.
	EffectCritBoost EffectKind = "crit_boost"
)

// EffectTarget selects whom a stat-stage effect applies to.
type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "opponent"
)

// Effect is one entry in an ability's ordered effect list. Which fields are
// meaningful depends on Kind; unused fields stay zero. Chance is a 0–100
// application probability; 0 means "always applies".
type Effect struct {
	Kind   EffectKind   `json:"kind"`
	Stat   Stat         `json:"stat,omitempty"`
	Target EffectTarget `json:"target,omitempty"`
	Delta  int          `json:"delta,omitempty"`

	Condition Condition `json:"condition,omitempty"`
	Duration  int       `json:"duration,omitempty"`

	// Percent is the recoil/drain fraction of damage dealt, 0–100.
	Percent int `json:"percent,omitempty"`

	Chance int `json:"chance,omitempty"`
}

// AppliesAlways reports whether the effect has no probability gate.
func (e Effect) AppliesAlways() bool { return e.Chance <= 0 || e.Chance >= 100 }
