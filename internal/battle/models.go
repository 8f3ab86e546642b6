package battle

import (
	"time"

	"gorm.io/gorm"
)

// AbilityDefinition describes one ability as configured in
// wildspire_config.json. Definitions are immutable after load and shared by
// reference between every creature that knows the ability.
type AbilityDefinition struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Element     Element  `json:"element"`
	Category    Category `json:"category"`
	Power       int      `json:"power"`
	Accuracy    int      `json:"accuracy"`
	MaxUses     int      `json:"max_uses"`
	Priority    int      `json:"priority"`
	Effects     []Effect `json:"effects"`

	// Typeless abilities skip both STAB and the element matrix. Used by the
	// universal last-resort action so no matchup can make it useless.
	Typeless bool `json:"typeless,omitempty"`
}

// IsDamaging reports whether the ability computes direct damage.
func (a *AbilityDefinition) IsDamaging() bool {
	return a.Category != CategoryStatus && a.Power > 0
}

// HasEffect reports whether the ability carries an effect of the given kind.
func (a *AbilityDefinition) HasEffect(kind EffectKind) bool {
	for _, e := range a.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Species is a creature template. Base stats and ability keys come from the
// server config (wildspire_config.json) and are intentionally not persisted;
// the DB row only anchors the name for foreign references.
type Species struct {
	gorm.Model
	Name          string   `json:"name"`
	Element       Element  `json:"element" gorm:"-"`
	BaseHitPoints int      `json:"base_hit_points" gorm:"-"`
	BaseAttack    int      `json:"base_attack" gorm:"-"`
	BaseDefense   int      `json:"base_defense" gorm:"-"`
	BaseSpAttack  int      `json:"base_sp_attack" gorm:"-"`
	BaseSpDefense int      `json:"base_sp_defense" gorm:"-"`
	BaseSpeed     int      `json:"base_speed" gorm:"-"`
	AbilityKeys   []string `json:"ability_keys" gorm:"-"`
}

func (Species) TableName() string { return "species_templates" }

// KnownAbility is one slot in a creature's learned-ability list: the ability
// key plus the uses left in the current battle.
type KnownAbility struct {
	gorm.Model
	CreatureID    uint   `json:"-"`
	AbilityKey    string `json:"ability_key"`
	RemainingUses int    `json:"remaining_uses"`
	MaxUses       int    `json:"max_uses"`
}

// Creature is a runtime combatant owned by a battle for its duration. It is
// constructed from a species template at battle start and mutated only by
// the resolver.
type Creature struct {
	gorm.Model
	TamerID     uint   `json:"-"`
	SpeciesName string `json:"species_name"`
	Nickname    string `json:"nickname"`

	Element Element `json:"element"`

	MaxHitPoints     int `json:"max_hit_points"`
	CurrentHitPoints int `json:"current_hit_points"`
	Attack           int `json:"attack"`
	Defense          int `json:"defense"`
	SpAttack         int `json:"sp_attack"`
	SpDefense        int `json:"sp_defense"`
	Speed            int `json:"speed"`

	Abilities []KnownAbility `json:"abilities"`

	Experience int  `json:"experience"`
	IsActive   bool `json:"is_active"`
	IsDefeated bool `json:"is_defeated"`
}

// DisplayName prefers the nickname over the species name.
func (c *Creature) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.SpeciesName
}

// HealthFraction returns current HP as a fraction of max, 0 when max is 0.
func (c *Creature) HealthFraction() float64 {
	if c.MaxHitPoints <= 0 {
		return 0
	}
	return float64(c.CurrentHitPoints) / float64(c.MaxHitPoints)
}

// Ability returns the known-ability slot for key, or nil.
func (c *Creature) Ability(key string) *KnownAbility {
	for i := range c.Abilities {
		if c.Abilities[i].AbilityKey == key {
			return &c.Abilities[i]
		}
	}
	return nil
}

// HasUsableAbility reports whether any known ability still has uses left.
func (c *Creature) HasUsableAbility() bool {
	for i := range c.Abilities {
		if c.Abilities[i].RemainingUses > 0 {
			return true
		}
	}
	return false
}

// Tamer is one participant in a battle. Bot tamers have their actions chosen
// by the decision engine instead of waiting for a submission.
type Tamer struct {
	gorm.Model
	BattleID   uint   `json:"-"`
	TamerUUID  string `json:"tamer_uuid"`
	TamerName  string `json:"tamer_name"`
	TamerEmail string `json:"tamer_email"`
	IsBot      bool   `json:"is_bot"`

	Creatures []Creature `json:"creatures"`

	HasSubmittedAction bool              `json:"has_submitted_action"`
	PendingActionType  PendingActionType `json:"pending_action_type"`
	PendingAbilityKey  string            `json:"pending_ability_key"`
	PendingSwapSlot    int               `json:"pending_swap_slot"`
}

func (Tamer) TableName() string { return "battle_tamers" }

// ActiveCreature returns the tamer's active, non-defeated creature, or nil.
func (t *Tamer) ActiveCreature() *Creature {
	for i := range t.Creatures {
		if t.Creatures[i].IsActive && !t.Creatures[i].IsDefeated {
			return &t.Creatures[i]
		}
	}
	return nil
}

// LivingReserves returns the roster indexes of benched, living creatures.
func (t *Tamer) LivingReserves() []int {
	out := make([]int, 0, len(t.Creatures))
	for i := range t.Creatures {
		if !t.Creatures[i].IsActive && !t.Creatures[i].IsDefeated {
			out = append(out, i)
		}
	}
	return out
}

// AllDefeated reports whether the tamer has no living creatures left.
func (t *Tamer) AllDefeated() bool {
	for i := range t.Creatures {
		if !t.Creatures[i].IsDefeated {
			return false
		}
	}
	return len(t.Creatures) > 0
}

// Battle is one battle session: two tamers, round bookkeeping, the RNG seed
// for reproducible resolution and the serialized event log of the last round.
type Battle struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:32"`
	Description string  `json:"description" gorm:"size:256"`
	Private     bool    `json:"private"`
	JoinCode    string  `json:"join_code" gorm:"unique"`
	Tamers      []Tamer `json:"tamers"`

	RoundCount int    `json:"round_count"`
	Phase      string `json:"phase"` // planning | resolving | resolved
	Status     string `json:"status"`
	Winner     string `json:"winner"`
	Outcome    string `json:"outcome"`
	Message    string `json:"message"`

	// Seed feeds the per-battle random source so a battle can be replayed
	// deterministically from its stored state.
	Seed int64 `json:"-"`

	// LastRoundEvents holds the JSON-encoded []Event of the latest round.
	LastRoundEvents string `json:"last_round_events"`

	// StateBlob is the JSON-encoded engine state (stages, statuses,
	// counters) carried between rounds. Clients read public state from the
	// creatures themselves; this blob is internal bookkeeping.
	StateBlob string `json:"-"`

	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// User stores unique tamer identity and aggregate stats.
type User struct {
	gorm.Model
	TamerUUID     string `gorm:"index"`
	TamerName     string
	Email         string `gorm:"uniqueIndex"`
	BattlesPlayed int
	Wins          int
	Resignations  int
}

func (User) TableName() string { return "tamer_profiles" }

// RosterCreature is a tamer's persistent collection entry. Battles are
// seeded from these rows and write health/uses/experience back when they
// finish; the resolver itself never touches them.
type RosterCreature struct {
	gorm.Model
	OwnerEmail  string `json:"-" gorm:"index"`
	SpeciesName string `json:"species_name"`
	Nickname    string `json:"nickname"`
	HitPoints   int    `json:"hit_points"`
	Experience  int    `json:"experience"`
	// UsesByAbility is a JSON-encoded map[string]int of remaining uses.
	UsesByAbility string `json:"uses_by_ability"`
}

// PendingActionType is a tamer's chosen action kind for the current round.
type PendingActionType string

const (
	PendingActionNone       PendingActionType = ""
	PendingActionAbility    PendingActionType = "ability"
	PendingActionSwap       PendingActionType = "swap"
	PendingActionLastResort PendingActionType = "last_resort"
)

// Battle status values.
const (
	StatusWaitingForTamers = "waiting_for_tamers"
	StatusInProgress       = "in_progress"
	StatusFinished         = "finished"
)

// Battle phase values.
const (
	PhasePlanning  = "planning"
	PhaseResolving = "resolving"
	PhaseResolved  = "resolved"
)

// Battle outcome values, from the perspective of the reported winner.
const (
	OutcomeNone    = ""
	OutcomeVictory = "victory"
	OutcomeDraw    = "draw"
)
