// Package engine is the authoritative battle resolver plus the battle-scoped
// mutable state it operates on. It orders the submitted actions, applies
// damage and effects against the catalog rules and reports structured events;
// all randomness comes from the per-battle source handed to NewResolver.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
)

// Status interference probabilities, rolled once per attempted action.
const (
	paralysisFailChance = 0.25
	freezeThawChance    = 0.20
	confusionSelfChance = 1.0 / 3.0

	confusionSelfHitPower = 40
)

// Resolver is the turn engine for one battle. It owns no storage; the
// caller persists the battle and state around each resolved round.
type Resolver struct {
	cat *catalog.Catalog
	rng *rand.Rand
	st  *State
}

// NewResolver wires a resolver to its catalog, random source and state. The
// random source must be owned by this battle; sharing one across battles
// breaks reproducibility.
func NewResolver(cat *catalog.Catalog, rng *rand.Rand, st *State) *Resolver {
	return &Resolver{cat: cat, rng: rng, st: st}
}

// State exposes the battle state (for the decision engine and tests).
func (r *Resolver) State() *State { return r.st }

// plannedAction is one combatant's intended action for the round.
type plannedAction struct {
	tamer    *battle.Tamer
	opponent *battle.Tamer
	actor    *battle.Creature
	kind     battle.PendingActionType
	ability  string
	swapSlot int
}

// roundContext accumulates events and per-round bookkeeping while a round
// resolves.
type roundContext struct {
	r      *Resolver
	b      *battle.Battle
	events []battle.Event
	errs   []error
}

func newRoundContext(r *Resolver, b *battle.Battle) *roundContext {
	return &roundContext{r: r, b: b, events: make([]battle.Event, 0, 16)}
}

func (rc *roundContext) add(e battle.Event) {
	e.Round = rc.b.RoundCount
	rc.events = append(rc.events, e)
}

// chance rolls an independent probability in [0,1].
func (rc *roundContext) chance(p float64) bool {
	return rc.r.rng.Float64() < p
}

// percentChance rolls an effect's 0-100 application probability.
func (rc *roundContext) percentChance(c int) bool {
	if c <= 0 || c >= 100 {
		return true
	}
	return rc.r.rng.Intn(100) < c
}

// ErrInvalidTamerCount is returned when a battle does not have two tamers.
var ErrInvalidTamerCount = errors.New("battle must have exactly two tamers")

// ResolveRound resolves one full round: ordering, per-action resolution,
// end-of-round bookkeeping and termination. It returns the ordered event
// list. A non-nil error reports missing catalog data encountered during the
// round (the round still completes; the broken action is skipped).
func (r *Resolver) ResolveRound(b *battle.Battle) ([]battle.Event, error) {
	if len(b.Tamers) != 2 {
		return nil, ErrInvalidTamerCount
	}
	b.Phase = battle.PhaseResolving
	rc := newRoundContext(r, b)

	plans := rc.buildPlans()
	rc.executePlans(plans)
	rc.endOfRound()
	rc.bringReserves()
	rc.finalizeRound()

	return rc.events, errors.Join(rc.errs...)
}

// buildPlans converts each tamer's pending action into an executable plan
// and orders them. Sort keys, descending: action-kind tier (swaps outrank
// abilities), ability priority tier, effective speed. Remaining ties keep
// the existing turn order (tamer index), which is fixed and deterministic.
func (rc *roundContext) buildPlans() []plannedAction {
	b := rc.b
	plans := make([]plannedAction, 0, 2)
	for i := range b.Tamers {
		t := &b.Tamers[i]
		opp := &b.Tamers[1-i]
		actor := t.ActiveCreature()
		if actor == nil {
			continue
		}
		p := plannedAction{
			tamer:    t,
			opponent: opp,
			actor:    actor,
			kind:     t.PendingActionType,
			ability:  t.PendingAbilityKey,
			swapSlot: t.PendingSwapSlot,
		}
		// A charging creature is committed: it must complete the charged
		// ability regardless of what was submitted.
		if ch := rc.r.st.entry(actor).Charging; ch != "" {
			p.kind = battle.PendingActionAbility
			p.ability = ch
		}
		if p.kind == battle.PendingActionNone {
			continue
		}
		plans = append(plans, p)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		ti, tj := rc.kindTier(plans[i]), rc.kindTier(plans[j])
		if ti != tj {
			return ti > tj
		}
		pi, pj := rc.abilityPriority(plans[i]), rc.abilityPriority(plans[j])
		if pi != pj {
			return pi > pj
		}
		si := EffectiveSpeed(rc.r.st, plans[i].actor)
		sj := EffectiveSpeed(rc.r.st, plans[j].actor)
		return si > sj
	})
	return plans
}

func (rc *roundContext) kindTier(p plannedAction) int {
	if p.kind == battle.PendingActionSwap {
		return 1
	}
	return 0
}

func (rc *roundContext) abilityPriority(p plannedAction) int {
	if p.kind != battle.PendingActionAbility {
		return 0
	}
	if def, ok := rc.r.cat.Ability(p.ability); ok {
		return def.Priority
	}
	return 0
}

// executePlans runs the ordered plans, skipping actors defeated earlier in
// the round.
func (rc *roundContext) executePlans(plans []plannedAction) {
	for i := range plans {
		act := &plans[i]
		if act.actor.IsDefeated {
			continue
		}
		switch act.kind {
		case battle.PendingActionSwap:
			rc.execSwap(act)
		case battle.PendingActionLastResort:
			rc.execAbility(act, rc.r.cat.LastResort())
		case battle.PendingActionAbility:
			rc.execDeclaredAbility(act)
		}
	}
}

// execSwap benches the active creature and sends out the chosen reserve.
func (rc *roundContext) execSwap(act *plannedAction) {
	t := act.tamer
	if act.swapSlot < 0 || act.swapSlot >= len(t.Creatures) {
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: act.actor.DisplayName(),
			Text: t.TamerName + "'s swap fizzled: no such roster slot"})
		return
	}
	next := &t.Creatures[act.swapSlot]
	if next.IsDefeated || next.IsActive {
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: act.actor.DisplayName(),
			Text: t.TamerName + "'s swap fizzled: " + next.DisplayName() + " cannot enter"})
		return
	}
	prev := act.actor
	prev.IsActive = false
	// Stages and volatile conditions never survive leaving the field.
	rc.r.st.Forget(prev)
	next.IsActive = true
	rc.add(battle.Event{Kind: battle.EventSwap, Actor: prev.DisplayName(), Target: next.DisplayName(),
		Text: t.TamerName + " recalls " + prev.DisplayName() + " and sends out " + next.DisplayName()})
}

// execDeclaredAbility validates the submitted ability and executes it,
// falling back to the universal last resort when every ability is spent.
func (rc *roundContext) execDeclaredAbility(act *plannedAction) {
	def, ok := rc.r.cat.Ability(act.ability)
	if !ok {
		err := fmt.Errorf("ability %q has no catalog entry", act.ability)
		rc.errs = append(rc.errs, err)
		rc.add(battle.Event{Kind: battle.EventDataError, Actor: act.actor.DisplayName(), Ability: act.ability,
			Text: act.actor.DisplayName() + "'s action was skipped (unknown ability data)"})
		return
	}
	if def.Key != catalog.LastResortKey {
		slot := act.actor.Ability(def.Key)
		if slot == nil || slot.RemainingUses <= 0 {
			if !act.actor.HasUsableAbility() {
				rc.add(battle.Event{Kind: battle.EventActionDeclared, Actor: act.actor.DisplayName(), Ability: catalog.LastResortKey,
					Text: act.actor.DisplayName() + " has nothing left and uses Last Resort"})
				rc.execAbility(act, rc.r.cat.LastResort())
				return
			}
			rc.add(battle.Event{Kind: battle.EventFizzled, Actor: act.actor.DisplayName(), Ability: def.Key,
				Text: act.actor.DisplayName() + " cannot use " + def.Name + ": no uses left"})
			return
		}
	}
	rc.execAbility(act, def)
}
