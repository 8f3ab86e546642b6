package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"github.com/luccabranco/wildspire/internal/keys"
)

type speciesEntry struct {
	Name        string         `json:"name"`
	Element     battle.Element `json:"element"`
	HitPoints   int            `json:"hit_points"`
	Attack      int            `json:"attack"`
	Defense     int            `json:"defense"`
	SpAttack    int            `json:"sp_attack"`
	SpDefense   int            `json:"sp_defense"`
	Speed       int            `json:"speed"`
	AbilityKeys []string       `json:"abilities"`
}

type rawConfig struct {
	SpeciesList []speciesEntry             `json:"species_list"`
	AbilityList []battle.AbilityDefinition `json:"ability_list"`
	// Optional extra element-matrix entries; they override the built-in
	// table for the pairs they name.
	ElementMatrix []catalog.MatrixEntry `json:"element_matrix"`
	// Tamer skill bonuses keyed by effect kind, applied to pre-battle entry
	// values only.
	SkillBonuses map[string]float64 `json:"skill_bonuses"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	ActionTimeoutSeconds   int `json:"action_timeout_seconds"`
	PublicBattleTTLSeconds int `json:"public_battle_ttl_seconds"`
}

// LoadedConfig contains the validated content and server settings.
type LoadedConfig struct {
	Species       []battle.Species
	Abilities     []battle.AbilityDefinition
	MatrixEntries []catalog.MatrixEntry
	SkillBonuses  map[string]float64

	ServerAddress   string
	ActionTimeout   time.Duration
	PublicBattleTTL time.Duration
}

// Catalog builds the immutable catalog from the loaded content.
func (lc *LoadedConfig) Catalog() *catalog.Catalog {
	return catalog.New(lc.Abilities, lc.Species, lc.MatrixEntries, lc.SkillBonuses)
}

// LoadConfig reads the configuration file at path. It requires non-empty
// `species_list` and `ability_list` keys and cross-validates that every
// species references only known abilities.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.AbilityList) == 0 {
		return nil, fmt.Errorf("config file %s: ability_list is empty", path)
	}
	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("config file %s: species_list is empty", path)
	}

	abilityKeys := make(map[string]struct{}, len(rc.AbilityList))
	for i := range rc.AbilityList {
		a := &rc.AbilityList[i]
		if strings.TrimSpace(a.Key) == "" {
			return nil, fmt.Errorf("config file %s: ability entry missing 'key'", path)
		}
		k := keys.Normalize(a.Key)
		if _, exists := abilityKeys[k]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability key '%s'", path, a.Key)
		}
		abilityKeys[k] = struct{}{}
		if k == catalog.LastResortKey {
			return nil, fmt.Errorf("config file %s: ability key '%s' is reserved", path, catalog.LastResortKey)
		}
		if !a.Element.IsValid() {
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown element '%s'", path, a.Key, a.Element)
		}
		switch a.Category {
		case battle.CategoryPhysical, battle.CategorySpecial, battle.CategoryStatus:
		default:
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown category '%s'", path, a.Key, a.Category)
		}
		if a.Accuracy < 0 || a.Accuracy > 100 {
			return nil, fmt.Errorf("config file %s: ability '%s' accuracy must be 0-100", path, a.Key)
		}
		if a.MaxUses <= 0 {
			return nil, fmt.Errorf("config file %s: ability '%s' needs positive max_uses", path, a.Key)
		}
	}

	species := make([]battle.Species, 0, len(rc.SpeciesList))
	nameSet := make(map[string]struct{}, len(rc.SpeciesList))
	for _, s := range rc.SpeciesList {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("config file %s: species entry missing 'name'", path)
		}
		ln := keys.Normalize(s.Name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate species name '%s'", path, s.Name)
		}
		nameSet[ln] = struct{}{}
		if !s.Element.IsValid() {
			return nil, fmt.Errorf("config file %s: species '%s' has unknown element '%s'", path, s.Name, s.Element)
		}
		if len(s.AbilityKeys) == 0 {
			return nil, fmt.Errorf("config file %s: species '%s' knows no abilities", path, s.Name)
		}
		for _, ak := range s.AbilityKeys {
			if _, ok := abilityKeys[keys.Normalize(ak)]; !ok {
				return nil, fmt.Errorf("config file %s: species '%s' references unknown ability '%s'", path, s.Name, ak)
			}
		}
		species = append(species, battle.Species{
			Name:          s.Name,
			Element:       s.Element,
			BaseHitPoints: s.HitPoints,
			BaseAttack:    s.Attack,
			BaseDefense:   s.Defense,
			BaseSpAttack:  s.SpAttack,
			BaseSpDefense: s.SpDefense,
			BaseSpeed:     s.Speed,
			AbilityKeys:   s.AbilityKeys,
		})
	}

	// The built-in table stays authoritative; config entries override the
	// pairs they name.
	matrix := catalog.DefaultMatrixEntries()
	matrix = append(matrix, rc.ElementMatrix...)

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	actionTimeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		actionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	publicTTL := 30 * time.Minute
	if rc.PublicBattleTTLSeconds > 0 {
		publicTTL = time.Duration(rc.PublicBattleTTLSeconds) * time.Second
	}

	return &LoadedConfig{
		Species:         species,
		Abilities:       rc.AbilityList,
		MatrixEntries:   matrix,
		SkillBonuses:    rc.SkillBonuses,
		ServerAddress:   addr,
		ActionTimeout:   actionTimeout,
		PublicBattleTTL: publicTTL,
	}, nil
}
