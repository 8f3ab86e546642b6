package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
)

func submitFor(b *battle.Battle, idx int, key string) {
	b.Tamers[idx].HasSubmittedAction = true
	b.Tamers[idx].PendingActionType = battle.PendingActionAbility
	b.Tamers[idx].PendingAbilityKey = key
}

func TestAdvanceRoundResolvesAndPersists(t *testing.T) {
	b := inProgressBattle(20, 42, false)
	submitFor(b, 0, "ember")
	submitFor(b, 1, "tackle")
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	report, err := AdvanceRound(repo, cat, b.ID, time.Minute)
	if err != nil {
		t.Fatalf("AdvanceRound: %v", err)
	}
	if len(report.Events) == 0 {
		t.Fatal("expected events")
	}
	if report.Battle.StateBlob == "" {
		t.Error("expected serialized engine state on the battle")
	}
	if report.Battle.Status == battle.StatusInProgress {
		if report.Battle.RoundCount != 2 {
			t.Errorf("expected round 2, got %d", report.Battle.RoundCount)
		}
		if report.Battle.ActionDeadline.IsZero() {
			t.Error("expected a fresh action deadline")
		}
	}
	if repo.updates == 0 {
		t.Error("expected the battle to be persisted")
	}
}

func TestAdvanceRoundMisuse(t *testing.T) {
	cat := serviceTestCatalog()

	t.Run("finished battle", func(t *testing.T) {
		b := inProgressBattle(21, 42, false)
		b.Status = battle.StatusFinished
		if _, err := AdvanceRound(newMockRepo(b), cat, b.ID, time.Minute); err != ErrBattleNotInProgress {
			t.Errorf("expected ErrBattleNotInProgress, got %v", err)
		}
	})

	t.Run("nothing submitted", func(t *testing.T) {
		b := inProgressBattle(22, 42, false)
		if _, err := AdvanceRound(newMockRepo(b), cat, b.ID, time.Minute); err != ErrNoActionsSubmitted {
			t.Errorf("expected ErrNoActionsSubmitted, got %v", err)
		}
	})

	t.Run("one human still pending", func(t *testing.T) {
		b := inProgressBattle(23, 42, false)
		submitFor(b, 0, "ember")
		if _, err := AdvanceRound(newMockRepo(b), cat, b.ID, time.Minute); err != ErrWaitingForActions {
			t.Errorf("expected ErrWaitingForActions, got %v", err)
		}
	})
}

func TestAdvanceRoundDeterministicReplay(t *testing.T) {
	cat := serviceTestCatalog()

	run := func(id uint) []battle.Event {
		b := inProgressBattle(id, 1234, false)
		// Identical creature IDs keep the engine state keyed the same way in
		// both runs.
		b.Tamers[0].Creatures[0].ID = 991
		b.Tamers[1].Creatures[0].ID = 992
		submitFor(b, 0, "ember")
		submitFor(b, 1, "tackle")
		report, err := AdvanceRound(newMockRepo(b), cat, b.ID, time.Minute)
		if err != nil {
			t.Fatalf("AdvanceRound: %v", err)
		}
		return report.Events
	}

	a := run(24)
	bEvents := run(25)

	rawA, _ := json.Marshal(a)
	rawB, _ := json.Marshal(bEvents)
	if string(rawA) != string(rawB) {
		t.Errorf("same seed and actions must replay identically:\n%s\n%s", rawA, rawB)
	}
}

func TestAdvanceRoundFinishesBattleOnce(t *testing.T) {
	b := inProgressBattle(26, 42, false)
	b.Tamers[1].Creatures[0].CurrentHitPoints = 1
	submitFor(b, 0, "ember")
	submitFor(b, 1, "tackle")
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	report, err := AdvanceRound(repo, cat, b.ID, time.Minute)
	if err != nil {
		t.Fatalf("AdvanceRound: %v", err)
	}
	got := report.Battle
	if got.Status != battle.StatusFinished || got.Outcome != battle.OutcomeVictory || got.Winner != "Rhea" {
		t.Fatalf("unexpected outcome: %s/%s winner %q", got.Status, got.Outcome, got.Winner)
	}
	if !got.StatsCounted {
		t.Error("expected stats to be counted")
	}
	if repo.statsCalls != 1 || repo.rosterCalls != 1 {
		t.Errorf("expected exactly one stats and roster writeback, got %d/%d", repo.statsCalls, repo.rosterCalls)
	}

	// Winner's surviving creature gets the participation and victory awards.
	if exp := got.Tamers[0].Creatures[0].Experience; exp != 60 {
		t.Errorf("expected 60 experience for the survivor, got %d", exp)
	}
	if exp := got.Tamers[1].Creatures[0].Experience; exp != 10 {
		t.Errorf("expected 10 experience for the defeated, got %d", exp)
	}

	if outcome, over := IsBattleOver(got); !over || outcome != battle.OutcomeVictory {
		t.Errorf("IsBattleOver = %q/%v", outcome, over)
	}
}
