package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/luccabranco/wildspire/internal/ai"
	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/dedupe"
	"github.com/luccabranco/wildspire/internal/engine"
	"github.com/luccabranco/wildspire/internal/logging"
)

// RoundReport is the result of one resolved round: the ordered event list
// plus the updated battle (healths, statuses and stages included) for
// rendering.
type RoundReport struct {
	Battle *battle.Battle `json:"battle"`
	Events []battle.Event `json:"events"`
}

// AdvanceRound resolves the current round: bot tamers get their action from
// the decision engine, the resolver orders and applies everything, and the
// updated battle is persisted. Every human tamer must have submitted first.
// Concurrent calls for the same battle collapse into a single resolution.
func AdvanceRound(repo BattleRepo, cat *catalog.Catalog, battleID uint, actionTimeout time.Duration) (*RoundReport, error) {
	key := fmt.Sprintf("battle:%d", battleID)
	v, err, _ := dedupe.RoundGroup.Do(key, func() (interface{}, error) {
		return advanceRound(repo, cat, battleID, actionTimeout)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RoundReport), nil
}

func advanceRound(repo BattleRepo, cat *catalog.Catalog, battleID uint, actionTimeout time.Duration) (*RoundReport, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != battle.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	if b.Phase != battle.PhasePlanning {
		return nil, ErrActionsLocked
	}

	anySubmitted := false
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if t.IsBot {
			continue
		}
		if t.HasSubmittedAction {
			anySubmitted = true
		}
	}
	if !anySubmitted && !allBots(b) {
		return nil, ErrNoActionsSubmitted
	}
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if !t.IsBot && !t.HasSubmittedAction {
			return nil, ErrWaitingForActions
		}
	}

	// The battle owns its random source: seed plus round keeps replays
	// deterministic regardless of how many times a round is re-requested.
	rng := rand.New(rand.NewSource(b.Seed + int64(b.RoundCount)))
	st, err := loadState(b)
	if err != nil {
		return nil, err
	}

	chooser := ai.NewChooser(cat, rng)
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if !t.IsBot || t.HasSubmittedAction {
			continue
		}
		choice := chooser.Choose(st, t, &b.Tamers[1-i])
		t.PendingActionType = choice.Kind
		t.PendingAbilityKey = choice.AbilityKey
		t.PendingSwapSlot = choice.SwapSlot
		t.HasSubmittedAction = true
	}

	resolver := engine.NewResolver(cat, rng, st)
	events, resolveErr := resolver.ResolveRound(b)
	if resolveErr != nil {
		// Missing catalog data: the affected action was skipped with an
		// explicit event; log for operators and keep the battle alive.
		logging.Error("round resolved with data errors", resolveErr, logging.Fields{"battle_id": b.ID})
	}

	if err := saveState(b, st); err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(events); err == nil {
		b.LastRoundEvents = string(raw)
	}

	if b.Status == battle.StatusFinished {
		finishBattle(repo, b)
	} else {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return &RoundReport{Battle: b, Events: events}, nil
}

// finishBattle runs the once-per-battle end bookkeeping: experience awards,
// aggregate stats and the persistent-roster writeback.
func finishBattle(repo BattleRepo, b *battle.Battle) {
	if b.StatsCounted {
		return
	}
	awardExperience(b)
	if err := repo.UpdateStatsOnBattleEnd(b, ""); err != nil {
		logging.Error("failed to update stats on battle end", err, logging.Fields{"battle_id": b.ID})
	}
	if err := repo.WriteBackRoster(b); err != nil {
		logging.Error("failed to write roster back", err, logging.Fields{"battle_id": b.ID})
	}
	b.StatsCounted = true
	b.ActionDeadline = time.Time{}
}

func awardExperience(b *battle.Battle) {
	for i := range b.Tamers {
		t := &b.Tamers[i]
		won := b.Outcome == battle.OutcomeVictory && b.Winner == t.TamerName
		for j := range t.Creatures {
			c := &t.Creatures[j]
			c.Experience += 10
			if won && !c.IsDefeated {
				c.Experience += 50
			}
		}
	}
}

// IsBattleOver reports the terminal outcome, or false while the battle is
// still running.
func IsBattleOver(b *battle.Battle) (string, bool) {
	if b.Status != battle.StatusFinished {
		return "", false
	}
	return b.Outcome, true
}

func allBots(b *battle.Battle) bool {
	for i := range b.Tamers {
		if !b.Tamers[i].IsBot {
			return false
		}
	}
	return len(b.Tamers) > 0
}

func loadState(b *battle.Battle) (*engine.State, error) {
	st := engine.NewState()
	if b.StateBlob == "" {
		return st, nil
	}
	if err := json.Unmarshal([]byte(b.StateBlob), st); err != nil {
		return nil, fmt.Errorf("corrupt battle state for battle %d: %w", b.ID, err)
	}
	return st, nil
}

func saveState(b *battle.Battle, st *engine.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	b.StateBlob = string(raw)
	return nil
}
