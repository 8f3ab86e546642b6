package storage

import (
	"encoding/json"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/keys"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps normalized species name -> config definition
	// (stats); the config file is the source of truth for stats.
	configByName map[string]battle.Species
	publicTTL    time.Duration
}

func NewSQLiteRepository(db *gorm.DB, configSpecies []battle.Species, publicTTL time.Duration) Repository {
	m := make(map[string]battle.Species, len(configSpecies))
	for _, s := range configSpecies {
		m[keys.Normalize(s.Name)] = s
	}
	if publicTTL <= 0 {
		publicTTL = 30 * time.Minute
	}
	return &sqliteRepository{db: db, configByName: m, publicTTL: publicTTL}
}

// overlayConfig copies the config-held stats onto a DB species row.
func (r *sqliteRepository) overlayConfig(s *battle.Species) {
	if conf, ok := r.configByName[keys.Normalize(s.Name)]; ok {
		s.Element = conf.Element
		s.BaseHitPoints = conf.BaseHitPoints
		s.BaseAttack = conf.BaseAttack
		s.BaseDefense = conf.BaseDefense
		s.BaseSpAttack = conf.BaseSpAttack
		s.BaseSpDefense = conf.BaseSpDefense
		s.BaseSpeed = conf.BaseSpeed
		s.AbilityKeys = conf.AbilityKeys
	}
}

func (r *sqliteRepository) GetSpecies() ([]battle.Species, error) {
	var species []battle.Species
	if err := r.db.Find(&species).Error; err != nil {
		return nil, err
	}
	for i := range species {
		r.overlayConfig(&species[i])
	}
	return species, nil
}

func (r *sqliteRepository) GetSpeciesByName(name string) (*battle.Species, error) {
	var s battle.Species
	if err := r.db.Where("lower(name) = ?", keys.Normalize(name)).First(&s).Error; err != nil {
		return nil, err
	}
	r.overlayConfig(&s)
	return &s, nil
}

func (r *sqliteRepository) CreateBattle(b *battle.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*battle.Battle, error) {
	var b battle.Battle
	err := r.db.Preload("Tamers.Creatures.Abilities").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *battle.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) GetPublicBattles() ([]battle.Battle, error) {
	var battles []battle.Battle
	cutoff := time.Now().Add(-r.publicTTL)
	if err := r.db.Preload("Tamers").Where("private = ? AND created_at > ?", false, cutoff).Order("created_at desc").Find(&battles).Error; err != nil {
		return nil, err
	}
	// Only list battles with at least one tamer waiting.
	filtered := make([]battle.Battle, 0, len(battles))
	for i := range battles {
		if len(battles[i].Tamers) >= 1 {
			filtered = append(filtered, battles[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*battle.Battle, error) {
	var b battle.Battle
	err := r.db.Preload("Tamers").Where("join_code = ?", code).First(&b).Error
	return &b, err
}

func (r *sqliteRepository) RemoveTamerByUUID(battleID uint, tamerUUID string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var t battle.Tamer
	if err := tx.Where("battle_id = ? AND tamer_uuid = ?", battleID, tamerUUID).
		Preload("Creatures.Abilities").First(&t).Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, c := range t.Creatures {
		if err := tx.Where("creature_id = ?", c.ID).Delete(&battle.KnownAbility{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("tamer_id = ?", t.ID).Delete(&battle.Creature{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&t).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *battle.Battle, resignedEmail string) error {
	upsert := func(email, uuid, name string, played, wins, resigns int) error {
		if email == "" {
			return nil
		}
		var u battle.User
		if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				u = battle.User{Email: email, TamerUUID: uuid, TamerName: name}
			} else {
				return err
			}
		}
		u.TamerName = name
		u.TamerUUID = uuid
		u.BattlesPlayed += played
		u.Wins += wins
		u.Resignations += resigns
		return r.db.Save(&u).Error
	}
	if len(b.Tamers) != 2 {
		return nil
	}
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if t.IsBot {
			continue
		}
		wins := 0
		if b.Winner != "" && b.Winner == t.TamerName {
			wins = 1
		}
		resigns := 0
		if resignedEmail != "" && resignedEmail == t.TamerEmail {
			resigns = 1
		}
		if err := upsert(t.TamerEmail, t.TamerUUID, t.TamerName, 1, wins, resigns); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*battle.User, error) {
	var u battle.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &battle.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *battle.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u battle.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = battle.User{Email: email, TamerUUID: uuid, TamerName: name}
		} else {
			return err
		}
	}
	u.TamerName = name
	u.TamerUUID = uuid
	return r.db.Save(&u).Error
}

// GetTopTamers returns top N tamers ordered by Wins desc, then
// BattlesPlayed desc.
func (r *sqliteRepository) GetTopTamers(limit int) ([]battle.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []battle.User
	if err := r.db.Model(&battle.User{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) GetRoster(email string) ([]battle.RosterCreature, error) {
	var rows []battle.RosterCreature
	if err := r.db.Where("owner_email = ?", email).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteBackRoster copies a finished battle's creature health, ability uses
// and experience into the owners' persistent collections. Rows are matched
// by owner plus species+nickname; missing rows are created so a first
// battle seeds the collection.
func (r *sqliteRepository) WriteBackRoster(b *battle.Battle) error {
	for i := range b.Tamers {
		t := &b.Tamers[i]
		if t.IsBot || t.TamerEmail == "" {
			continue
		}
		for j := range t.Creatures {
			c := &t.Creatures[j]
			uses := make(map[string]int, len(c.Abilities))
			for k := range c.Abilities {
				uses[c.Abilities[k].AbilityKey] = c.Abilities[k].RemainingUses
			}
			rawUses, err := json.Marshal(uses)
			if err != nil {
				return err
			}

			var row battle.RosterCreature
			err = r.db.Where("owner_email = ? AND species_name = ? AND nickname = ?",
				t.TamerEmail, c.SpeciesName, c.Nickname).First(&row).Error
			if err == gorm.ErrRecordNotFound {
				row = battle.RosterCreature{
					OwnerEmail:  t.TamerEmail,
					SpeciesName: c.SpeciesName,
					Nickname:    c.Nickname,
				}
			} else if err != nil {
				return err
			}
			row.HitPoints = c.CurrentHitPoints
			row.Experience += c.Experience
			row.UsesByAbility = string(rawUses)
			if err := r.db.Save(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]battle.Battle, error) {
	var battles []battle.Battle
	if err := r.db.Preload("Tamers.Creatures.Abilities").
		Where("status = ? AND phase = ? AND action_deadline != ? AND action_deadline <= ?",
			battle.StatusInProgress, battle.PhasePlanning, time.Time{}, now).
		Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}
