package service

import (
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/logging"
)

// HandleTimedOutBattle applies timeout resolution for a single battle whose
// planning deadline has passed:
//   - no human submitted anything: the battle is abandoned with no winner
//   - otherwise: idle tamers become bot-controlled for this round (the
//     decision engine picks for them) and the round resolves normally.
func HandleTimedOutBattle(repo BattleRepo, cat *catalog.Catalog, b *battle.Battle, actionTimeout time.Duration) error {
	if b.Status != battle.StatusInProgress || b.Phase != battle.PhasePlanning {
		return nil
	}

	anySubmitted := false
	for i := range b.Tamers {
		if !b.Tamers[i].IsBot && b.Tamers[i].HasSubmittedAction {
			anySubmitted = true
		}
	}

	if !anySubmitted && !allBots(b) {
		b.Status = battle.StatusFinished
		b.Phase = battle.PhaseResolved
		b.Outcome = battle.OutcomeDraw
		b.Winner = ""
		b.Message = "Battle ended due to inactivity"
		b.LastRoundEvents = ""
		b.StatsCounted = true
		b.ActionDeadline = time.Time{}
		logging.Info("all tamers timed out; finishing battle", logging.Fields{"battle_id": b.ID})
		return repo.UpdateBattle(b)
	}

	// Let the decision engine stand in for whoever missed the deadline.
	idleBots := make([]int, 0, len(b.Tamers))
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if !t.IsBot && !t.HasSubmittedAction {
			t.IsBot = true
			idleBots = append(idleBots, i)
			logging.Info("auto-choosing action for idle tamer", logging.Fields{"battle_id": b.ID, "tamer_index": i})
		}
	}
	if err := repo.UpdateBattle(b); err != nil {
		return err
	}
	_, err := AdvanceRound(repo, cat, b.ID, actionTimeout)

	// The stand-in only lasts for the missed round.
	if bb, getErr := repo.GetBattleByID(b.ID); getErr == nil && bb != nil {
		for _, i := range idleBots {
			if i < len(bb.Tamers) {
				bb.Tamers[i].IsBot = false
			}
		}
		if upErr := repo.UpdateBattle(bb); upErr != nil {
			logging.Error("failed to clear stand-in flag", upErr, logging.Fields{"battle_id": b.ID})
		}
	}
	return err
}
