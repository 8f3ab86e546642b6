// Package ai is the decision engine: it selects an action for a
// bot-controlled tamer by scoring legal options against the exact rules the
// resolver enforces (shared stage curve, damage estimate and element
// matrix). Selection is probabilistic rather than strictly greedy so bot
// behavior stays legible but not perfectly predictable.
package ai

import (
	"math/rand"
	"sort"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/engine"
)

// Selection probabilities: best option, second best, then a uniformly
// random legal option for the remainder.
const (
	pickTopProbability    = 0.70
	pickSecondProbability = 0.20
)

// Swap is only considered below this health fraction, and only when the
// opponent's element is strongly effective against the active creature.
const (
	swapHealthThreshold  = 0.35
	swapDangerMultiplier = 2.0
)

// Choice is the decision engine's selected action for one round.
type Choice struct {
	Kind       battle.PendingActionType
	AbilityKey string
	SwapSlot   int
}

// Chooser scores and picks actions. It owns no mutable battle state; the
// random source is the battle's own.
type Chooser struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

func NewChooser(cat *catalog.Catalog, rng *rand.Rand) *Chooser {
	return &Chooser{cat: cat, rng: rng}
}

type scoredAbility struct {
	key   string
	score float64
}

// Choose selects an action for the tamer's active creature against the
// opponent's. It never returns "no action": a creature with every ability
// spent falls back to the universal last resort.
func (ch *Chooser) Choose(st *engine.State, self, opp *battle.Tamer) Choice {
	actor := self.ActiveCreature()
	oppActive := opp.ActiveCreature()
	if actor == nil || oppActive == nil {
		return Choice{Kind: battle.PendingActionLastResort}
	}

	if slot, ok := ch.considerSwap(st, self, actor, oppActive); ok {
		return Choice{Kind: battle.PendingActionSwap, SwapSlot: slot}
	}

	scored := make([]scoredAbility, 0, len(actor.Abilities))
	for i := range actor.Abilities {
		slot := &actor.Abilities[i]
		if slot.RemainingUses <= 0 {
			continue
		}
		def, ok := ch.cat.Ability(slot.AbilityKey)
		if !ok {
			// Missing catalog data is the resolver's error to surface; the
			// chooser just never picks it.
			continue
		}
		scored = append(scored, scoredAbility{key: slot.AbilityKey, score: ch.ScoreAbility(st, actor, oppActive, def)})
	}
	if len(scored) == 0 {
		return Choice{Kind: battle.PendingActionLastResort}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	roll := ch.rng.Float64()
	switch {
	case roll < pickTopProbability || len(scored) == 1:
		return Choice{Kind: battle.PendingActionAbility, AbilityKey: scored[0].key}
	case roll < pickTopProbability+pickSecondProbability:
		return Choice{Kind: battle.PendingActionAbility, AbilityKey: scored[1].key}
	default:
		return Choice{Kind: battle.PendingActionAbility, AbilityKey: scored[ch.rng.Intn(len(scored))].key}
	}
}

// ScoreAbility rates one usable ability for actor against opp. Higher is
// better; scores are comparable only within a single evaluation.
func (ch *Chooser) ScoreAbility(st *engine.State, actor, opp *battle.Creature, def *battle.AbilityDefinition) float64 {
	score := 0.0
	lethal := false

	if def.IsDamaging() {
		score += float64(def.Power)

		eff := 1.0
		if !def.Typeless {
			eff = ch.cat.Effectiveness(def.Element, opp.Element)
		}
		switch {
		case eff == 0:
			score -= 200
		case eff > 1:
			score += 40 * eff
		case eff < 1:
			score -= 30
		}
		if !def.Typeless && def.Element == actor.Element {
			score += 15
		}

		est := engine.EstimateDamage(ch.cat, st, actor, opp, def)
		if est.Damage >= opp.CurrentHitPoints && est.Effectiveness > 0 {
			score += 100
			lethal = true
		}
	}

	if def.Accuracy > 0 && def.Accuracy < 100 {
		score -= float64(100-def.Accuracy) * 0.5
	}

	healthFrac := actor.HealthFraction()
	for _, eff := range def.Effects {
		switch eff.Kind {
		case battle.EffectStatus:
			if st.HasStatus(opp) {
				score -= 40
			} else {
				score += 40
			}
		case battle.EffectStatStage:
			if eff.Target == battle.TargetSelf && eff.Delta > 0 {
				stage := st.StatStage(actor, eff.Stat)
				if stage >= engine.MaxStage-2 {
					score -= 25
				} else {
					score += 25 * (1 - float64(stage)/float64(engine.MaxStage))
				}
			} else if eff.Target == battle.TargetOpponent && eff.Delta < 0 {
				if st.StatStage(opp, eff.Stat) <= engine.MinStage+2 {
					score -= 15
				} else {
					score += 15
				}
			}
		case battle.EffectDrain:
			score += 30 * (1 - healthFrac)
			if healthFrac > 0.9 {
				score -= 10
			}
		case battle.EffectGuard, battle.EffectShield:
			score += 35 * (1 - healthFrac)
			score -= 20 * float64(st.GuardStreak(actor))
		case battle.EffectCleanse:
			if st.HasStatus(actor) {
				score += 30
			} else {
				score -= 20
			}
		case battle.EffectDecoy:
			score += 15
		case battle.EffectRecharge:
			if !lethal {
				score -= 35
			}
		}
	}

	return score
}

// considerSwap decides whether to swap the active creature out and, if so,
// for which roster slot. Swapping is only on the table when a teammate is
// alive, the actor is at low health and the opponent's element is strongly
// effective against it; the probability of actually swapping rises as
// health drops further.
func (ch *Chooser) considerSwap(st *engine.State, self *battle.Tamer, actor, opp *battle.Creature) (int, bool) {
	reserves := self.LivingReserves()
	if len(reserves) == 0 {
		return 0, false
	}
	frac := actor.HealthFraction()
	if frac >= swapHealthThreshold {
		return 0, false
	}
	if ch.cat.Effectiveness(opp.Element, actor.Element) < swapDangerMultiplier {
		return 0, false
	}
	swapProbability := 0.4 + (swapHealthThreshold-frac)/swapHealthThreshold*0.5
	if ch.rng.Float64() >= swapProbability {
		return 0, false
	}

	bestSlot, bestScore := 0, 0.0
	for _, idx := range reserves {
		cand := &self.Creatures[idx]
		score := ch.scoreTeammate(cand, opp)
		if score > bestScore {
			bestSlot, bestScore = idx, score
		}
	}
	if bestScore <= 0 {
		return 0, false
	}
	return bestSlot, true
}

// scoreTeammate rates a benched creature against the current opponent:
// offensive effectiveness, defensive resistance to the opponent's element
// and remaining health.
func (ch *Chooser) scoreTeammate(cand, opp *battle.Creature) float64 {
	offense := ch.cat.Effectiveness(cand.Element, opp.Element)
	exposure := ch.cat.Effectiveness(opp.Element, cand.Element)
	return 1.5*offense + (1.0 - exposure) + cand.HealthFraction() - 2.0
}
