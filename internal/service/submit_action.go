package service

import (
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
)

// SubmitAction stores a tamer's chosen action and, when every human tamer
// has submitted, resolves the round. Returns the updated battle, the round
// report when resolution happened (nil otherwise), and an error on misuse.
func SubmitAction(repo BattleRepo, cat *catalog.Catalog, battleID uint, tamerEmail string, actionType battle.PendingActionType, abilityKey string, swapSlot int, actionTimeout time.Duration) (*battle.Battle, *RoundReport, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != battle.StatusInProgress {
		return nil, nil, ErrBattleNotInProgress
	}
	if b.Phase != battle.PhasePlanning {
		return nil, nil, ErrActionsLocked
	}

	var current *battle.Tamer
	for i := range b.Tamers {
		if b.Tamers[i].TamerEmail == tamerEmail {
			current = &b.Tamers[i]
			break
		}
	}
	if current == nil {
		return nil, nil, ErrTamerNotInBattle
	}

	active := current.ActiveCreature()
	if active == nil {
		return nil, nil, ErrNoActiveCreature
	}

	switch actionType {
	case battle.PendingActionAbility:
		slot := active.Ability(abilityKey)
		if slot == nil {
			return nil, nil, ErrUnknownAbility
		}
		if slot.RemainingUses <= 0 {
			// Out of uses everywhere degrades to the universal fallback;
			// a single spent ability is a bad submission.
			if active.HasUsableAbility() {
				return nil, nil, ErrUnknownAbility
			}
			actionType = battle.PendingActionLastResort
			abilityKey = catalog.LastResortKey
		}
	case battle.PendingActionSwap:
		if swapSlot < 0 || swapSlot >= len(current.Creatures) {
			return nil, nil, ErrBadSwapSlot
		}
		target := &current.Creatures[swapSlot]
		if target.IsDefeated || target.IsActive {
			return nil, nil, ErrBadSwapSlot
		}
	case battle.PendingActionLastResort:
		abilityKey = catalog.LastResortKey
	default:
		return nil, nil, ErrUnknownAbility
	}

	current.HasSubmittedAction = true
	current.PendingActionType = actionType
	current.PendingAbilityKey = abilityKey
	current.PendingSwapSlot = swapSlot

	allHumanIn := true
	for i := range b.Tamers {
		if !b.Tamers[i].IsBot && !b.Tamers[i].HasSubmittedAction {
			allHumanIn = false
		}
	}
	if allHumanIn {
		if err := repo.UpdateBattle(b); err != nil {
			return nil, nil, err
		}
		report, err := AdvanceRound(repo, cat, b.ID, actionTimeout)
		if err != nil {
			return nil, nil, err
		}
		return report.Battle, report, nil
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, nil, err
	}
	return b, nil, nil
}
