package api

import (
	"time"

	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	cat           *catalog.Catalog
	actionTimeout time.Duration
}

// NewBattleHandler creates a new BattleHandler with the given repository,
// content catalog and configured per-round action timeout.
func NewBattleHandler(repo storage.Repository, cat *catalog.Catalog, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{repo: repo, cat: cat, actionTimeout: actionTimeout}
}
