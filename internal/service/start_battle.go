package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/catalog"
)

var (
	ErrTamersNotReady = errors.New("both tamers must pick a roster before starting")
	ErrEmptyRoster    = errors.New("each tamer needs at least one creature")
	ErrUnknownSpecies = errors.New("roster references an unknown species")
)

// Skill-bonus effect kinds consulted at battle entry. Bonuses never apply
// mid-resolution.
const (
	SkillBonusVitality = "vitality"
	SkillBonusFerocity = "ferocity"
)

// RosterPick is one requested roster slot when starting a battle.
type RosterPick struct {
	SpeciesName string `json:"species_name"`
	Nickname    string `json:"nickname"`
}

// BuildRoster materializes creatures from species templates for one tamer.
// The tamer-skill bonus adjusts starting values only (health via "vitality",
// physical attack via "ferocity").
func BuildRoster(cat *catalog.Catalog, picks []RosterPick) ([]battle.Creature, error) {
	if len(picks) == 0 {
		return nil, ErrEmptyRoster
	}
	vitality := cat.SkillBonus(SkillBonusVitality)
	ferocity := cat.SkillBonus(SkillBonusFerocity)

	out := make([]battle.Creature, 0, len(picks))
	for _, p := range picks {
		sp, ok := cat.Species(p.SpeciesName)
		if !ok {
			return nil, ErrUnknownSpecies
		}
		maxHP := int(float64(sp.BaseHitPoints) * vitality)
		c := battle.Creature{
			SpeciesName:      sp.Name,
			Nickname:         p.Nickname,
			Element:          sp.Element,
			MaxHitPoints:     maxHP,
			CurrentHitPoints: maxHP,
			Attack:           int(float64(sp.BaseAttack) * ferocity),
			Defense:          sp.BaseDefense,
			SpAttack:         sp.BaseSpAttack,
			SpDefense:        sp.BaseSpDefense,
			Speed:            sp.BaseSpeed,
		}
		for _, ak := range sp.AbilityKeys {
			def, ok := cat.Ability(ak)
			if !ok {
				return nil, ErrUnknownSpecies
			}
			c.Abilities = append(c.Abilities, battle.KnownAbility{
				AbilityKey:    def.Key,
				RemainingUses: def.MaxUses,
				MaxUses:       def.MaxUses,
			})
		}
		out = append(out, c)
	}
	return out, nil
}

// StartBattle performs server-side initialization when a battle begins:
// activates each tamer's lead creature, seeds the per-battle random source,
// resets the engine state and opens the first planning phase.
func StartBattle(repo BattleRepo, b *battle.Battle, actionTimeout time.Duration) error {
	if len(b.Tamers) != 2 {
		return ErrTamersNotReady
	}
	for i := range b.Tamers {
		if len(b.Tamers[i].Creatures) == 0 {
			return ErrEmptyRoster
		}
		for j := range b.Tamers[i].Creatures {
			c := &b.Tamers[i].Creatures[j]
			c.IsDefeated = false
			c.IsActive = (j == 0)
		}
		b.Tamers[i].HasSubmittedAction = false
		b.Tamers[i].PendingActionType = battle.PendingActionNone
		b.Tamers[i].PendingAbilityKey = ""
		b.Tamers[i].PendingSwapSlot = 0
	}

	b.Seed = rand.Int63()
	b.Status = battle.StatusInProgress
	b.RoundCount = 1
	b.Phase = battle.PhasePlanning
	b.Message = "The battle has started. Choose your actions."
	b.StateBlob = ""
	b.LastRoundEvents = ""
	b.ActionDeadline = time.Now().Add(actionTimeout)

	return repo.UpdateBattle(b)
}
