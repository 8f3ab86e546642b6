package storage

import (
	"github.com/luccabranco/wildspire/internal/battle"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database, keeps the schema updated via
// AutoMigrate and seeds the species name rows from config. Species stats
// always come from the config file; only the names are anchored in the DB.
func OpenAndMigrate(dataSourceName string, speciesFromConfig []battle.Species) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&battle.Species{},
		&battle.Battle{},
		&battle.Tamer{},
		&battle.Creature{},
		&battle.KnownAbility{},
		&battle.User{},
		&battle.RosterCreature{},
	)
	if err != nil {
		return nil, err
	}

	seedSpeciesNames(db, speciesFromConfig)
	return db, nil
}

func seedSpeciesNames(db *gorm.DB, speciesFromConfig []battle.Species) {
	var count int64
	db.Model(&battle.Species{}).Count(&count)
	if count > 0 {
		return
	}
	rows := make([]battle.Species, 0, len(speciesFromConfig))
	for _, s := range speciesFromConfig {
		rows = append(rows, battle.Species{Name: s.Name})
	}
	if len(rows) > 0 {
		db.Create(&rows)
	}
}
