package engine

import (
	"math/rand"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
	"gorm.io/gorm"
)

func testCatalog() *catalog.Catalog {
	abilities := []battle.AbilityDefinition{
		{Key: "ember", Name: "Ember", Element: battle.Fire, Category: battle.CategorySpecial, Power: 40, Accuracy: 100, MaxUses: 25,
			Effects: []battle.Effect{{Kind: battle.EffectStatus, Condition: battle.ConditionBurn, Chance: 10}}},
		{Key: "aqua_jet", Name: "Aqua Jet", Element: battle.Water, Category: battle.CategoryPhysical, Power: 40, Accuracy: 100, MaxUses: 20, Priority: 1},
		{Key: "tackle", Name: "Tackle", Element: battle.Neutral, Category: battle.CategoryPhysical, Power: 40, Accuracy: 100, MaxUses: 35},
		{Key: "hypnosis", Name: "Hypnosis", Element: battle.Shadow, Category: battle.CategoryStatus, Power: 0, Accuracy: 100, MaxUses: 10,
			Effects: []battle.Effect{{Kind: battle.EffectStatus, Condition: battle.ConditionSleep, Duration: 2}}},
		{Key: "war_cry", Name: "War Cry", Element: battle.Neutral, Category: battle.CategoryStatus, Power: 0, Accuracy: 100, MaxUses: 20,
			Effects: []battle.Effect{{Kind: battle.EffectStatStage, Target: battle.TargetSelf, Stat: battle.StatAttack, Delta: 2}}},
		{Key: "stone_wall", Name: "Stone Wall", Element: battle.Earth, Category: battle.CategoryStatus, Power: 0, Accuracy: 100, MaxUses: 15,
			Effects: []battle.Effect{{Kind: battle.EffectGuard}}},
		{Key: "sky_dive", Name: "Sky Dive", Element: battle.Wind, Category: battle.CategoryPhysical, Power: 90, Accuracy: 100, MaxUses: 10,
			Effects: []battle.Effect{{Kind: battle.EffectCharge}}},
		{Key: "flare_burst", Name: "Flare Burst", Element: battle.Fire, Category: battle.CategorySpecial, Power: 60, Accuracy: 100, MaxUses: 5,
			Effects: []battle.Effect{{Kind: battle.EffectRecharge}}},
		{Key: "iron_ram", Name: "Iron Ram", Element: battle.Metal, Category: battle.CategoryPhysical, Power: 80, Accuracy: 100, MaxUses: 10,
			Effects: []battle.Effect{{Kind: battle.EffectRecoil, Percent: 33}}},
		{Key: "leech_vine", Name: "Leech Vine", Element: battle.Nature, Category: battle.CategorySpecial, Power: 60, Accuracy: 100, MaxUses: 10,
			Effects: []battle.Effect{{Kind: battle.EffectDrain, Percent: 50}}},
		{Key: "gale_slash", Name: "Gale Slash", Element: battle.Wind, Category: battle.CategoryPhysical, Power: 40, Accuracy: 100, MaxUses: 20,
			Effects: []battle.Effect{{Kind: battle.EffectFlinch, Chance: 100}}},
	}
	species := []battle.Species{
		{Name: "Cindertail", Element: battle.Fire, BaseHitPoints: 80, BaseAttack: 60, BaseDefense: 55, BaseSpAttack: 70, BaseSpDefense: 60, BaseSpeed: 65, AbilityKeys: []string{"ember", "tackle"}},
		{Name: "Mistfin", Element: battle.Water, BaseHitPoints: 85, BaseAttack: 55, BaseDefense: 60, BaseSpAttack: 65, BaseSpDefense: 65, BaseSpeed: 55, AbilityKeys: []string{"aqua_jet", "tackle"}},
	}
	return catalog.New(abilities, species, catalog.DefaultMatrixEntries(), nil)
}

func testCreature(id uint, name string, el battle.Element, hp, speed int, abilityKeys ...string) battle.Creature {
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

func testBattle(c1, c2 battle.Creature) *battle.Battle {
	return &battle.Battle{
		Model:      gorm.Model{ID: 1},
		Status:     battle.StatusInProgress,
		Phase:      battle.PhasePlanning,
		RoundCount: 1,
		Tamers: []battle.Tamer{
			{TamerName: "Rhea", Creatures: []battle.Creature{c1}},
			{TamerName: "Okoro", Creatures: []battle.Creature{c2}},
		},
	}
}

func submitAbility(b *battle.Battle, tamerIdx int, key string) {
	b.Tamers[tamerIdx].HasSubmittedAction = true
	b.Tamers[tamerIdx].PendingActionType = battle.PendingActionAbility
	b.Tamers[tamerIdx].PendingAbilityKey = key
}

func newTestResolver(cat *catalog.Catalog, seed int64) *Resolver {
	return NewResolver(cat, rand.New(rand.NewSource(seed)), NewState())
}

func eventKinds(events []battle.Event) []battle.EventKind {
	out := make([]battle.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func firstEventOfKind(events []battle.Event, kind battle.EventKind) (battle.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return battle.Event{}, false
}
