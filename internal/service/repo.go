package service

import (
	"errors"

	"github.com/luccabranco/wildspire/internal/battle"
)

// BattleRepo is the slice of the storage repository the battle services
// need. Tests substitute hand-written mocks.
type BattleRepo interface {
	GetBattleByID(id uint) (*battle.Battle, error)
	UpdateBattle(b *battle.Battle) error
	UpdateStatsOnBattleEnd(b *battle.Battle, resignedEmail string) error
	// WriteBackRoster copies a finished battle's creature health, remaining
	// ability uses and experience into the tamer's persistent collection.
	WriteBackRoster(b *battle.Battle) error
}

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrActionsLocked       = errors.New("actions are locked; resolving current round")
	ErrTamerNotInBattle    = errors.New("tamer not in battle")
	ErrNoActiveCreature    = errors.New("no active creature")
	ErrUnknownAbility      = errors.New("creature does not know that ability")
	ErrBadSwapSlot         = errors.New("swap slot is not a living benched creature")
	ErrNoActionsSubmitted  = errors.New("no actions submitted for any tamer")
	ErrWaitingForActions   = errors.New("waiting for tamers to submit actions")
)
