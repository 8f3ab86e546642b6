package engine

import (
	"strconv"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
)

// execAbility resolves one ability action end to end: readiness gates,
// charge handling, the accuracy roll, damage and the declared effect list.
func (rc *roundContext) execAbility(act *plannedAction, def *battle.AbilityDefinition) {
	actor := act.actor
	st := rc.r.st
	cs := st.entry(actor)

	if cs.Flinched {
		cs.Flinched = false
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key,
			Text: actor.DisplayName() + " flinched and could not act"})
		return
	}
	if cs.MustRecharge {
		cs.MustRecharge = false
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key,
			Text: actor.DisplayName() + " must recharge and cannot act"})
		return
	}
	if !rc.passStatusGate(actor, def) {
		// Confusion self-damage can zero the actor's own health.
		rc.checkKnockout(act.tamer, actor)
		return
	}

	// Two-turn abilities: the first round only charges; the follow-up round
	// is forced by buildPlans and executes here.
	if def.HasEffect(battle.EffectCharge) {
		if cs.Charging == "" {
			cs.Charging = def.Key
			rc.add(battle.Event{Kind: battle.EventActionDeclared, Actor: actor.DisplayName(), Ability: def.Key,
				Text: actor.DisplayName() + " is charging up " + def.Name})
			return
		}
		cs.Charging = ""
	}

	rc.add(battle.Event{Kind: battle.EventActionDeclared, Actor: actor.DisplayName(), Ability: def.Key,
		Text: actor.DisplayName() + " uses " + def.Name})
	rc.spendUse(actor, def)

	target := act.opponent.ActiveCreature()
	if target == nil {
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key,
			Text: def.Name + " had no target"})
		return
	}

	if def.Accuracy > 0 && def.Accuracy < 100 && rc.r.rng.Intn(100) >= def.Accuracy {
		rc.add(battle.Event{Kind: battle.EventMiss, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key,
			Text: actor.DisplayName() + "'s " + def.Name + " missed"})
		return
	}

	dealt := 0
	if def.IsDamaging() {
		done, dmg := rc.execDamage(act, def, target)
		if !done {
			return
		}
		dealt = dmg
	}

	rc.applyEffects(act, def, target, dealt)

	rc.checkKnockout(act.opponent, target)
	rc.checkKnockout(act.tamer, actor)
}

// passStatusGate rolls the actor's primary condition against the action.
// Returns false when the action is prevented (an event is emitted).
func (rc *roundContext) passStatusGate(actor *battle.Creature, def *battle.AbilityDefinition) bool {
	st := rc.r.st
	switch st.Condition(actor) {
	case battle.ConditionSleep:
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key, Condition: battle.ConditionSleep,
			Text: actor.DisplayName() + " is fast asleep"})
		return false
	case battle.ConditionFreeze:
		if rc.chance(freezeThawChance) {
			st.ClearStatus(actor)
			rc.add(battle.Event{Kind: battle.EventStatusEnded, Actor: actor.DisplayName(), Condition: battle.ConditionFreeze,
				Text: actor.DisplayName() + " thawed out"})
			return true
		}
		rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key, Condition: battle.ConditionFreeze,
			Text: actor.DisplayName() + " is frozen solid"})
		return false
	case battle.ConditionParalysis:
		if rc.chance(paralysisFailChance) {
			rc.add(battle.Event{Kind: battle.EventFizzled, Actor: actor.DisplayName(), Ability: def.Key, Condition: battle.ConditionParalysis,
				Text: actor.DisplayName() + " is paralyzed and cannot move"})
			return false
		}
	case battle.ConditionConfusion:
		if rc.chance(confusionSelfChance) {
			selfHit := &battle.AbilityDefinition{
				Key: "confusion_self_hit", Name: "confusion", Category: battle.CategoryPhysical,
				Power: confusionSelfHitPower, Typeless: true,
			}
			bd := ComputeDamage(rc.r.cat, st, actor, actor, selfHit, false)
			actor.CurrentHitPoints -= bd.Damage
			if actor.CurrentHitPoints < 0 {
				actor.CurrentHitPoints = 0
			}
			rc.add(battle.Event{Kind: battle.EventDamage, Actor: actor.DisplayName(), Target: actor.DisplayName(),
				Amount: bd.Damage, Condition: battle.ConditionConfusion,
				Text: actor.DisplayName() + " hurt itself in confusion for " + itoa(bd.Damage)})
			return false
		}
	}
	return true
}

// execDamage rolls the crit, computes damage, applies guard/shield/decoy
// reductions and subtracts health. Returns false when the hit had no effect
// (immune target). The returned damage feeds recoil/drain effects.
func (rc *roundContext) execDamage(act *plannedAction, def *battle.AbilityDefinition, target *battle.Creature) (bool, int) {
	st := rc.r.st
	actor := act.actor

	critChance := CritBaseChance
	if st.entry(actor).CritBoosted {
		critChance = CritBoostedChance
	}
	crit := rc.chance(critChance)

	bd := ComputeDamage(rc.r.cat, st, actor, target, def, crit)
	if bd.Effectiveness == 0 {
		rc.add(battle.Event{Kind: battle.EventNoEffect, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key,
			Text: "it had no effect on " + target.DisplayName()})
		return false, 0
	}

	dmg := bd.Damage
	ts := st.entry(target)
	if ts.GuardActive {
		dmg = dmg / 2
		if dmg < 1 {
			dmg = 1
		}
	} else if ts.ShieldTurns > 0 {
		dmg = dmg * 3 / 4
		if dmg < 1 {
			dmg = 1
		}
	}

	if bd.Critical {
		rc.add(battle.Event{Kind: battle.EventCritical, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key,
			Text: "a critical hit!"})
	}
	rc.add(battle.Event{Kind: battle.EventHit, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key,
		Text: effectivenessText(bd)})

	// A decoy soaks damage before the creature itself.
	if ts.DecoyHP > 0 {
		absorbed := dmg
		if absorbed > ts.DecoyHP {
			absorbed = ts.DecoyHP
		}
		ts.DecoyHP -= absorbed
		dmg -= absorbed
		text := target.DisplayName() + "'s decoy absorbed " + itoa(absorbed) + " damage"
		if ts.DecoyHP == 0 {
			text += " and broke"
		}
		rc.add(battle.Event{Kind: battle.EventDamage, Actor: actor.DisplayName(), Target: target.DisplayName(), Amount: absorbed, Text: text})
		if dmg == 0 {
			return true, absorbed
		}
	}

	target.CurrentHitPoints -= dmg
	if target.CurrentHitPoints < 0 {
		target.CurrentHitPoints = 0
	}
	rc.add(battle.Event{Kind: battle.EventDamage, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key, Amount: dmg,
		Text: target.DisplayName() + " takes " + itoa(dmg) + " damage"})
	return true, dmg
}

// applyEffects walks the ability's effect list in declared order, each entry
// gated by its own probability roll.
func (rc *roundContext) applyEffects(act *plannedAction, def *battle.AbilityDefinition, target *battle.Creature, dealt int) {
	st := rc.r.st
	actor := act.actor
	for _, eff := range def.Effects {
		// Charge is consumed by the two-turn machinery, not here.
		if eff.Kind == battle.EffectCharge {
			continue
		}
		if !rc.percentChance(eff.Chance) {
			rc.add(battle.Event{Kind: battle.EventEffectResisted, Actor: actor.DisplayName(), Target: target.DisplayName(), Ability: def.Key,
				Text: string(eff.Kind) + " effect did not trigger"})
			continue
		}
		switch eff.Kind {
		case battle.EffectStatStage:
			who := actor
			if eff.Target == battle.TargetOpponent {
				who = target
			}
			stage := st.ApplyStageDelta(who, eff.Stat, eff.Delta)
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Target: who.DisplayName(), Stat: eff.Stat, Amount: stage,
				Text: who.DisplayName() + "'s " + string(eff.Stat) + " stage is now " + itoa(stage)})
		case battle.EffectStatus:
			if st.ApplyStatus(target, eff.Condition, eff.Duration) {
				rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Target: target.DisplayName(), Condition: eff.Condition,
					Text: target.DisplayName() + " is afflicted by " + string(eff.Condition)})
			} else {
				rc.add(battle.Event{Kind: battle.EventNoEffect, Actor: actor.DisplayName(), Target: target.DisplayName(), Condition: eff.Condition,
					Text: "no effect: " + target.DisplayName() + " is already afflicted"})
			}
		case battle.EffectRecoil:
			if dealt > 0 && eff.Percent > 0 {
				recoil := dealt * eff.Percent / 100
				if recoil < 1 {
					recoil = 1
				}
				actor.CurrentHitPoints -= recoil
				if actor.CurrentHitPoints < 0 {
					actor.CurrentHitPoints = 0
				}
				rc.add(battle.Event{Kind: battle.EventDamage, Actor: actor.DisplayName(), Target: actor.DisplayName(), Amount: recoil,
					Text: actor.DisplayName() + " is hurt by recoil for " + itoa(recoil)})
			}
		case battle.EffectDrain:
			if dealt > 0 && eff.Percent > 0 {
				heal := dealt * eff.Percent / 100
				if heal < 1 {
					heal = 1
				}
				actor.CurrentHitPoints += heal
				if actor.CurrentHitPoints > actor.MaxHitPoints {
					actor.CurrentHitPoints = actor.MaxHitPoints
				}
				rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Amount: heal,
					Text: actor.DisplayName() + " drained " + itoa(heal) + " health"})
			}
		case battle.EffectFlinch:
			st.entry(target).Flinched = true
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Target: target.DisplayName(),
				Text: target.DisplayName() + " flinched"})
		case battle.EffectRecharge:
			st.entry(actor).MustRecharge = true
		case battle.EffectGuard:
			cs := st.entry(actor)
			cs.GuardActive = true
			streak := st.IncrementGuardStreak(actor)
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Amount: streak,
				Text: actor.DisplayName() + " braces for impact"})
		case battle.EffectShield:
			st.entry(actor).ShieldTurns = eff.Duration
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Amount: eff.Duration,
				Text: actor.DisplayName() + " raised a shield"})
		case battle.EffectCleanse:
			st.Cleanse(actor)
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(),
				Text: actor.DisplayName() + " cleansed its ailments"})
		case battle.EffectDecoy:
			hp := actor.MaxHitPoints / 4
			if hp < 1 {
				hp = 1
			}
			st.entry(actor).DecoyHP = hp
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Amount: hp,
				Text: actor.DisplayName() + " set up a decoy"})
		case battle.EffectField:
			st.FieldElement = def.Element
			st.FieldTurns = eff.Duration
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(), Amount: eff.Duration,
				Text: "the field surges with " + string(def.Element) + " energy"})
		case battle.EffectCritBoost:
			st.entry(actor).CritBoosted = true
			rc.add(battle.Event{Kind: battle.EventEffectApplied, Actor: actor.DisplayName(),
				Text: actor.DisplayName() + " is primed for critical hits"})
		}
	}
}

// spendUse decrements the remaining-uses counter; the last resort is free.
func (rc *roundContext) spendUse(actor *battle.Creature, def *battle.AbilityDefinition) {
	if def.Key == catalog.LastResortKey {
		return
	}
	if slot := actor.Ability(def.Key); slot != nil && slot.RemainingUses > 0 {
		slot.RemainingUses--
	}
}

// checkKnockout marks a creature defeated when its health reaches zero.
func (rc *roundContext) checkKnockout(owner *battle.Tamer, c *battle.Creature) {
	if c == nil || c.IsDefeated || c.CurrentHitPoints > 0 {
		return
	}
	c.IsDefeated = true
	c.IsActive = false
	rc.r.st.Forget(c)
	rc.add(battle.Event{Kind: battle.EventKnockout, Target: c.DisplayName(),
		Text: owner.TamerName + "'s " + c.DisplayName() + " is knocked out!"})
}

func effectivenessText(bd DamageBreakdown) string {
	switch {
	case bd.Effectiveness >= 2.0:
		return "it's super effective!"
	case bd.Effectiveness > 1.0:
		return "it's effective!"
	case bd.Effectiveness < 1.0:
		return "it's not very effective..."
	default:
		return "it hits!"
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
