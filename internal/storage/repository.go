package storage

import (
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
)

type Repository interface {
	// Species lookups are config-backed; the DB only anchors the names.
	GetSpecies() ([]battle.Species, error)
	GetSpeciesByName(name string) (*battle.Species, error)

	GetPublicBattles() ([]battle.Battle, error)
	CreateBattle(b *battle.Battle) error
	GetBattleByID(id uint) (*battle.Battle, error)
	FindBattleByJoinCode(code string) (*battle.Battle, error)
	UpdateBattle(b *battle.Battle) error
	RemoveTamerByUUID(battleID uint, tamerUUID string) error

	UpsertUser(email, uuid, name string) error
	UpdateStatsOnBattleEnd(b *battle.Battle, resignedEmail string) error
	GetStatsByEmail(email string) (*battle.User, error)
	SaveUser(u *battle.User) error
	// Leaderboard
	GetTopTamers(limit int) ([]battle.User, error)

	// Persistent collection: battles read starting health/uses from these
	// rows and write health/uses/experience back when they finish.
	GetRoster(email string) ([]battle.RosterCreature, error)
	WriteBackRoster(b *battle.Battle) error

	// FindTimedOutBattles returns in-progress battles in the planning phase
	// whose action deadline is at or before the provided time.
	FindTimedOutBattles(now time.Time) ([]battle.Battle, error)
}
