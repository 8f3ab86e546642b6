package service

import (
	"testing"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
)

func TestSubmitActionStoresAndWaits(t *testing.T) {
	b := inProgressBattle(10, 42, false)
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	got, report, err := SubmitAction(repo, cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute)
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if report != nil {
		t.Fatal("round should not resolve with one human still pending")
	}
	tamer := &got.Tamers[0]
	if !tamer.HasSubmittedAction || tamer.PendingActionType != battle.PendingActionAbility || tamer.PendingAbilityKey != "ember" {
		t.Errorf("action not stored: %+v", tamer)
	}
}

func TestSubmitActionResolvesAgainstBot(t *testing.T) {
	b := inProgressBattle(11, 42, true)
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	_, report, err := SubmitAction(repo, cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute)
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if report == nil {
		t.Fatal("expected the round to resolve once the only human submitted")
	}
	if len(report.Events) == 0 {
		t.Error("expected a non-empty event log")
	}
	if report.Battle.LastRoundEvents == "" {
		t.Error("expected the event log to be persisted on the battle")
	}
}

func TestSubmitActionValidation(t *testing.T) {
	cat := serviceTestCatalog()

	t.Run("unknown battle", func(t *testing.T) {
		repo := newMockRepo()
		if _, _, err := SubmitAction(repo, cat, 999, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute); err != ErrBattleNotFound {
			t.Errorf("expected ErrBattleNotFound, got %v", err)
		}
	})

	t.Run("not a participant", func(t *testing.T) {
		b := inProgressBattle(12, 42, false)
		if _, _, err := SubmitAction(newMockRepo(b), cat, b.ID, "stranger@example.com", battle.PendingActionAbility, "ember", 0, time.Minute); err != ErrTamerNotInBattle {
			t.Errorf("expected ErrTamerNotInBattle, got %v", err)
		}
	})

	t.Run("unknown ability", func(t *testing.T) {
		b := inProgressBattle(13, 42, false)
		if _, _, err := SubmitAction(newMockRepo(b), cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "void_strike", 0, time.Minute); err != ErrUnknownAbility {
			t.Errorf("expected ErrUnknownAbility, got %v", err)
		}
	})

	t.Run("spent ability with others usable", func(t *testing.T) {
		b := inProgressBattle(14, 42, false)
		b.Tamers[0].Creatures[0].Abilities[0].RemainingUses = 0
		if _, _, err := SubmitAction(newMockRepo(b), cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute); err != ErrUnknownAbility {
			t.Errorf("expected ErrUnknownAbility, got %v", err)
		}
	})

	t.Run("swap to defeated slot", func(t *testing.T) {
		b := inProgressBattle(15, 42, false)
		bench := serviceTestCreature(151, "Mistfin", battle.Water, 85, 55, "tackle")
		bench.IsActive = false
		bench.IsDefeated = true
		b.Tamers[0].Creatures = append(b.Tamers[0].Creatures, bench)
		if _, _, err := SubmitAction(newMockRepo(b), cat, b.ID, "rhea@example.com", battle.PendingActionSwap, "", 1, time.Minute); err != ErrBadSwapSlot {
			t.Errorf("expected ErrBadSwapSlot, got %v", err)
		}
	})

	t.Run("battle not in planning", func(t *testing.T) {
		b := inProgressBattle(16, 42, false)
		b.Phase = battle.PhaseResolving
		if _, _, err := SubmitAction(newMockRepo(b), cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute); err != ErrActionsLocked {
			t.Errorf("expected ErrActionsLocked, got %v", err)
		}
	})
}

func TestSubmitActionDegradesToLastResort(t *testing.T) {
	b := inProgressBattle(17, 42, false)
	for i := range b.Tamers[0].Creatures[0].Abilities {
		b.Tamers[0].Creatures[0].Abilities[i].RemainingUses = 0
	}
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	got, _, err := SubmitAction(repo, cat, b.ID, "rhea@example.com", battle.PendingActionAbility, "ember", 0, time.Minute)
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if got.Tamers[0].PendingActionType != battle.PendingActionLastResort {
		t.Errorf("expected degrade to last resort, got %s", got.Tamers[0].PendingActionType)
	}
}
