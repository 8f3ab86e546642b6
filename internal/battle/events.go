package battle

// EventKind labels one entry in a round's event log.
type EventKind string

const (
	EventActionDeclared EventKind = "action_declared"
	EventHit            EventKind = "hit"
	EventMiss           EventKind = "miss"
	EventCritical       EventKind = "critical"
	EventDamage         EventKind = "damage"
	EventEffectApplied  EventKind = "effect_applied"
	EventEffectResisted EventKind = "effect_resisted"
	EventNoEffect       EventKind = "no_effect"
	EventFizzled        EventKind = "fizzled"
	EventStatusDamage   EventKind = "status_damage"
	EventStatusEnded    EventKind = "status_ended"
	EventSwap           EventKind = "swap"
	EventKnockout       EventKind = "knockout"
	EventBattleEnded    EventKind = "battle_ended"
	EventDataError      EventKind = "data_error"
)

// Event is one structured entry of a round report. The presentation layer
// replays these without re-deriving any outcome; Text carries a
// human-readable summary, the remaining fields carry the raw facts.
type Event struct {
	Kind      EventKind `json:"kind"`
	Round     int       `json:"round"`
	Actor     string    `json:"actor,omitempty"`
	Target    string    `json:"target,omitempty"`
	Ability   string    `json:"ability,omitempty"`
	Amount    int       `json:"amount,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Stat      Stat      `json:"stat,omitempty"`
	Text      string    `json:"text"`
}
