package service

import (
	"errors"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"gorm.io/gorm"
)

// mockRepo is a hand-written in-memory BattleRepo for tests.
type mockRepo struct {
	battles      map[uint]*battle.Battle
	updates      int
	statsCalls   int
	rosterCalls  int
	lastResigned string
}

func newMockRepo(battles ...*battle.Battle) *mockRepo {
	m := &mockRepo{battles: make(map[uint]*battle.Battle)}
	for _, b := range battles {
		m.battles[b.ID] = b
	}
	return m
}

func (m *mockRepo) GetBattleByID(id uint) (*battle.Battle, error) {
	b, ok := m.battles[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (m *mockRepo) UpdateBattle(b *battle.Battle) error {
	m.updates++
	m.battles[b.ID] = b
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(b *battle.Battle, resignedEmail string) error {
	m.statsCalls++
	m.lastResigned = resignedEmail
	return nil
}

func (m *mockRepo) WriteBackRoster(b *battle.Battle) error {
	m.rosterCalls++
	return nil
}

func serviceTestCatalog() *catalog.Catalog {
	abilities := []battle.AbilityDefinition{
		{Key: "ember", Name: "Ember", Element: battle.Fire, Category: battle.CategorySpecial, Power: 40, Accuracy: 100, MaxUses: 25},
		{Key: "tackle", Name: "Tackle", Element: battle.Neutral, Category: battle.CategoryPhysical, Power: 40, Accuracy: 100, MaxUses: 35},
	}
	species := []battle.Species{
		{Name: "Cindertail", Element: battle.Fire, BaseHitPoints: 80, BaseAttack: 60, BaseDefense: 55, BaseSpAttack: 70, BaseSpDefense: 60, BaseSpeed: 65, AbilityKeys: []string{"ember", "tackle"}},
		{Name: "Mistfin", Element: battle.Water, BaseHitPoints: 85, BaseAttack: 55, BaseDefense: 60, BaseSpAttack: 65, BaseSpDefense: 65, BaseSpeed: 55, AbilityKeys: []string{"tackle"}},
	}
	return catalog.New(abilities, species, catalog.DefaultMatrixEntries(), nil)
}

func serviceTestCreature(id uint, name string, el battle.Element, hp, speed int, abilityKeys ...string) battle.Creature {
	c := battle.Creature{
		Model:            gorm.Model{ID: id},
		SpeciesName:      name,
		Element:          el,
		MaxHitPoints:     hp,
		CurrentHitPoints: hp,
		Attack:           60,
		Defense:          55,
		SpAttack:         60,
		SpDefense:        55,
		Speed:            speed,
		IsActive:         true,
	}
	for _, k := range abilityKeys {
		c.Abilities = append(c.Abilities, battle.KnownAbility{AbilityKey: k, RemainingUses: 10, MaxUses: 10})
	}
	return c
}

func inProgressBattle(id uint, seed int64, botOpponent bool) *battle.Battle {
	b := &battle.Battle{
		Model:      gorm.Model{ID: id},
		Status:     battle.StatusInProgress,
		Phase:      battle.PhasePlanning,
		RoundCount: 1,
		Seed:       seed,
		Tamers: []battle.Tamer{
			{TamerName: "Rhea", TamerEmail: "rhea@example.com",
				Creatures: []battle.Creature{serviceTestCreature(id*10+1, "Cindertail", battle.Fire, 80, 65, "ember", "tackle")}},
			{TamerName: "Okoro", TamerEmail: "okoro@example.com", IsBot: botOpponent,
				Creatures: []battle.Creature{serviceTestCreature(id*10+2, "Mistfin", battle.Water, 85, 55, "tackle")}},
		},
	}
	return b
}
