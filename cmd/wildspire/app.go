package main

import (
	"github.com/luccabranco/wildspire/internal/config"
	"github.com/luccabranco/wildspire/internal/logging"
	"github.com/luccabranco/wildspire/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid wildspire configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a wildspire_config.json with 'species_list' and 'ability_list' arrays plus optional keys: element_matrix, skill_bonuses, server.address, action_timeout_seconds, public_battle_ttl_seconds",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Species)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, cfg.Species, cfg.PublicBattleTTL)
}
