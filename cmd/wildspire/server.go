package main

import (
	"time"

	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/logging"
	"github.com/luccabranco/wildspire/internal/service"
	"github.com/luccabranco/wildspire/internal/storage"
)

// startTimeoutScanner periodically finds battles whose planning deadline has
// passed and delegates handling to service.HandleTimedOutBattle.
func startTimeoutScanner(repo storage.Repository, cat *catalog.Catalog, actionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			battles, err := repo.FindTimedOutBattles(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			// Process sequentially; keeps SQLite happy under load.
			for i := range battles {
				b, err := repo.GetBattleByID(battles[i].ID)
				if err != nil {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, cat, b, actionTimeout); err != nil {
					logging.Error("failed to handle timed-out battle", err, logging.Fields{"battle_id": b.ID})
				}
			}
		}
	}()
}
