package engine

import (
	"github.com/luccabranco/wildspire/internal/battle"
)

// Damage-over-time fractions of max health per round.
const (
	burnDamageDivisor   = 16
	poisonDamageDivisor = 8
)

// endOfRound applies damage-over-time statuses to all living combatants in a
// fixed order (tamer index, then roster slot), advances timed sub-effects
// and clears the flags that only live for one round.
func (rc *roundContext) endOfRound() {
	st := rc.r.st
	for i := range rc.b.Tamers {
		t := &rc.b.Tamers[i]
		for j := range t.Creatures {
			c := &t.Creatures[j]
			if c.IsDefeated || !c.IsActive {
				continue
			}
			cs := st.entry(c)

			switch cs.Condition {
			case battle.ConditionBurn:
				rc.applyDoT(t, c, battle.ConditionBurn, c.MaxHitPoints/burnDamageDivisor)
			case battle.ConditionPoison:
				rc.applyDoT(t, c, battle.ConditionPoison, c.MaxHitPoints/poisonDamageDivisor)
			}

			if cs.ConditionTurns > 0 {
				cs.ConditionTurns--
				if cs.ConditionTurns == 0 {
					ended := cs.Condition
					st.ClearStatus(c)
					rc.add(battle.Event{Kind: battle.EventStatusEnded, Actor: c.DisplayName(), Condition: ended,
						Text: c.DisplayName() + " is no longer " + string(ended)})
				}
			}
			if cs.ShieldTurns > 0 {
				cs.ShieldTurns--
			}
			if !cs.GuardActive {
				// A round without guarding breaks the streak.
				cs.GuardStreak = 0
			}
			cs.GuardActive = false
			cs.Flinched = false
		}
	}
	if st.FieldTurns > 0 {
		st.FieldTurns--
		if st.FieldTurns == 0 {
			st.FieldElement = battle.Neutral
		}
	}
}

func (rc *roundContext) applyDoT(owner *battle.Tamer, c *battle.Creature, cond battle.Condition, dmg int) {
	if dmg < 1 {
		dmg = 1
	}
	c.CurrentHitPoints -= dmg
	if c.CurrentHitPoints < 0 {
		c.CurrentHitPoints = 0
	}
	rc.add(battle.Event{Kind: battle.EventStatusDamage, Target: c.DisplayName(), Condition: cond, Amount: dmg,
		Text: c.DisplayName() + " is hurt by " + string(cond) + " for " + itoa(dmg)})
	rc.checkKnockout(owner, c)
}

// bringReserves promotes the next living creature for any tamer left without
// an active one.
func (rc *roundContext) bringReserves() {
	for i := range rc.b.Tamers {
		t := &rc.b.Tamers[i]
		if t.ActiveCreature() != nil {
			continue
		}
		for j := range t.Creatures {
			c := &t.Creatures[j]
			if !c.IsDefeated && !c.IsActive {
				c.IsActive = true
				rc.add(battle.Event{Kind: battle.EventSwap, Target: c.DisplayName(),
					Text: t.TamerName + " sends out " + c.DisplayName()})
				break
			}
		}
	}
}

// finalizeRound evaluates victory conditions and either prepares the next
// planning phase or resolves the battle.
func (rc *roundContext) finalizeRound() {
	b := rc.b
	t1 := &b.Tamers[0]
	t2 := &b.Tamers[1]
	lost1 := t1.AllDefeated()
	lost2 := t2.AllDefeated()

	switch {
	case lost1 && lost2:
		b.Status = battle.StatusFinished
		b.Outcome = battle.OutcomeDraw
		b.Winner = ""
		b.Message = "Both sides are out of creatures. The battle is a draw."
		rc.add(battle.Event{Kind: battle.EventBattleEnded, Text: b.Message})
	case lost1:
		rc.declareWinner(t2)
	case lost2:
		rc.declareWinner(t1)
	}

	if b.Status == battle.StatusInProgress {
		b.RoundCount++
		for i := range b.Tamers {
			b.Tamers[i].HasSubmittedAction = false
			b.Tamers[i].PendingActionType = battle.PendingActionNone
			b.Tamers[i].PendingAbilityKey = ""
			b.Tamers[i].PendingSwapSlot = 0
		}
		b.Phase = battle.PhasePlanning
		b.Message = "New round. Choose your actions."
	} else {
		b.Phase = battle.PhaseResolved
	}
}

func (rc *roundContext) declareWinner(t *battle.Tamer) {
	b := rc.b
	b.Status = battle.StatusFinished
	b.Outcome = battle.OutcomeVictory
	b.Winner = t.TamerName
	b.Message = "Victory for tamer " + t.TamerName
	rc.add(battle.Event{Kind: battle.EventBattleEnded, Text: b.Message})
}
