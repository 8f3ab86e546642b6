package service

import (
	"testing"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
)

func TestHandleTimedOutBattleAbandonsWhenNobodyActed(t *testing.T) {
	b := inProgressBattle(30, 42, false)
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	if err := HandleTimedOutBattle(repo, cat, b, time.Minute); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	if b.Status != battle.StatusFinished || b.Outcome != battle.OutcomeDraw {
		t.Errorf("expected abandoned draw, got %s/%s", b.Status, b.Outcome)
	}
	if !b.StatsCounted {
		t.Error("abandoned battles must not count toward stats later")
	}
	if repo.statsCalls != 0 {
		t.Errorf("abandoned battles must not update stats, got %d calls", repo.statsCalls)
	}
}

func TestHandleTimedOutBattleAutoPlaysIdleTamer(t *testing.T) {
	b := inProgressBattle(31, 42, false)
	submitFor(b, 0, "ember")
	repo := newMockRepo(b)
	cat := serviceTestCatalog()

	if err := HandleTimedOutBattle(repo, cat, b, time.Minute); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	got, err := repo.GetBattleByID(b.ID)
	if err != nil {
		t.Fatalf("GetBattleByID: %v", err)
	}
	if got.Status == battle.StatusInProgress && got.RoundCount != 2 {
		t.Errorf("expected the round to resolve, got round %d", got.RoundCount)
	}
	// The stand-in flag must not stick to the idle human.
	if got.Tamers[1].IsBot {
		t.Error("idle tamer is still flagged as a bot")
	}
}

func TestHandleTimedOutBattleIgnoresFinished(t *testing.T) {
	b := inProgressBattle(32, 42, false)
	b.Status = battle.StatusFinished
	repo := newMockRepo(b)
	if err := HandleTimedOutBattle(repo, serviceTestCatalog(), b, time.Minute); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("finished battles must be left alone, got %d updates", repo.updates)
	}
}
