package battle

import (
	"github.com/google/uuid"

	"beastgrid/internal/config"
)

// HeroScores holds the hero's ability scores. The hero's combat stats are
// derived from these, never stored: INT feeds the ranged axis, WIS the
// melee axis, CHA the magic axis, and BATTLE scales all three.
type HeroScores struct {
	Intelligence int
	Wisdom       int
	Charisma     int
	Battle       int
	StatPoints   int
}

const heroBaseStat = 3

func (h *HeroScores) battleScale() float64 {
	return 0.25 + 0.05*float64(h.Battle)
}

// axisBonuses derives the attack and defense bonuses one ability score
// contributes to its axis.
func (h *HeroScores) axisBonuses(raw int) (attack, defense int) {
	effective := int(float64(raw) * h.battleScale())
	return effective / 2, effective / 3
}

// AllyDefenseBonus is granted to every allied creature's defense, dodge
// and resistance while the hero fights beside them.
func (h *HeroScores) AllyDefenseBonus() int { return h.Wisdom / 4 }

// EfficacyMultiplier scales allied conversion efficacy: +10% per 4 CHA.
func (h *HeroScores) EfficacyMultiplier() float64 {
	return 1 + 0.10*float64(h.Charisma/4)
}

// TierReduction shortens every creature tier requirement by 1 per 5 INT.
func (h *HeroScores) TierReduction() int { return h.Intelligence / 5 }

// AwardFloorPoints grants the fixed stat points a hero receives for
// clearing a floor. Heroes never grow per battle.
func (h *HeroScores) AwardFloorPoints() { h.StatPoints += 3 }

// NewHero builds the hero unit with derived attacks and defenses.
func NewHero(cfg *config.HeroConfig) *Unit {
	u := &Unit{
		ID:    "u_" + uuid.NewString()[:8],
		Name:  cfg.Name,
		Team:  TeamPlayer,
		Size:  Size1x1,
		HP:    cfg.MaxHP,
		MaxHP: cfg.MaxHP,
		Hero: &HeroScores{
			Intelligence: cfg.Intelligence,
			Wisdom:       cfg.Wisdom,
			Charisma:     cfg.Charisma,
			Battle:       cfg.Battle,
		},
		Debuffs: map[StatusKind]int{},
	}
	RefreshHeroStats(u)
	return u
}

// RefreshHeroStats recomputes the hero's derived combat stats. Call it
// after ability scores change; scores only move between battles.
func RefreshHeroStats(u *Unit) {
	h := u.Hero
	if h == nil {
		return
	}
	meleeAtk, defense := h.axisBonuses(h.Wisdom)
	rangedAtk, dodge := h.axisBonuses(h.Intelligence)
	magicAtk, resistance := h.axisBonuses(h.Charisma)

	u.Defense = heroBaseStat + defense
	u.Dodge = heroBaseStat + dodge
	u.Resistance = heroBaseStat + resistance
	u.Attacks = []Attack{
		{Type: Melee, Damage: heroBaseStat + meleeAtk},
		{Type: Ranged, Damage: heroBaseStat + rangedAtk, RangeMin: 2, RangeMax: 3},
		{Type: Magic, Damage: heroBaseStat + magicAtk},
	}
}
