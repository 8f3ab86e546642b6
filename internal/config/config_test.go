package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wildspire_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `{
  "species_list": [
    {"name": "Cindertail", "element": "fire", "hit_points": 80, "attack": 60, "defense": 55, "sp_attack": 70, "sp_defense": 60, "speed": 65, "abilities": ["ember"]}
  ],
  "ability_list": [
    {"key": "ember", "name": "Ember", "element": "fire", "category": "special", "power": 40, "accuracy": 100, "max_uses": 25}
  ],
  "skill_bonuses": {"vitality": 1.1},
  "server": {"address": ":9090"},
  "action_timeout_seconds": 45
}`

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 45, int(cfg.ActionTimeout.Seconds()))
	require.Len(t, cfg.Species, 1)
	assert.Equal(t, battle.Fire, cfg.Species[0].Element)
	assert.Equal(t, 80, cfg.Species[0].BaseHitPoints)

	cat := cfg.Catalog()
	a, ok := cat.Ability("ember")
	require.True(t, ok)
	assert.Equal(t, 40, a.Power)
	assert.InDelta(t, 1.1, cat.SkillBonus("vitality"), 1e-9)
	// Built-in matrix stays in effect without explicit entries.
	assert.InDelta(t, 2.0, cat.Effectiveness(battle.Fire, battle.Nature), 1e-9)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
  "species_list": [{"name": "Cindertail", "element": "fire", "hit_points": 80, "abilities": ["ember"]}],
  "ability_list": [{"key": "ember", "name": "Ember", "element": "fire", "category": "special", "power": 40, "accuracy": 100, "max_uses": 25}]
}`))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 90, int(cfg.ActionTimeout.Seconds()))
	assert.Equal(t, 30, int(cfg.PublicBattleTTL.Minutes()))
}

func TestLoadConfigRejectsBadContent(t *testing.T) {
	cases := map[string]string{
		"missing file":         "",
		"empty ability list":   `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}], "ability_list": []}`,
		"unknown element":      `{"species_list": [{"name": "X", "element": "plasma", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}]}`,
		"unknown category":     `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "magic", "accuracy": 100, "max_uses": 5}]}`,
		"bad accuracy":         `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 150, "max_uses": 5}]}`,
		"zero uses":            `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 0}]}`,
		"duplicate ability":    `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}, {"key": "A", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}]}`,
		"reserved key":         `{"species_list": [{"name": "X", "element": "fire", "abilities": ["last_resort"]}], "ability_list": [{"key": "last_resort", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}]}`,
		"unknown species move": `{"species_list": [{"name": "X", "element": "fire", "abilities": ["missing"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}]}`,
		"duplicate species":    `{"species_list": [{"name": "X", "element": "fire", "abilities": ["a"]}, {"name": " x ", "element": "fire", "abilities": ["a"]}], "ability_list": [{"key": "a", "element": "fire", "category": "special", "accuracy": 100, "max_uses": 5}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if content != "" {
				path = writeConfig(t, content)
			}
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMatrixOverride(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
  "species_list": [{"name": "Cindertail", "element": "fire", "hit_points": 80, "abilities": ["ember"]}],
  "ability_list": [{"key": "ember", "name": "Ember", "element": "fire", "category": "special", "power": 40, "accuracy": 100, "max_uses": 25}],
  "element_matrix": [{"attacker": "fire", "defender": "water", "multiplier": 1.0}]
}`))
	require.NoError(t, err)
	cat := cfg.Catalog()
	assert.InDelta(t, 1.0, cat.Effectiveness(battle.Fire, battle.Water), 1e-9)
	assert.InDelta(t, 2.0, cat.Effectiveness(battle.Water, battle.Fire), 1e-9)
}
