package battle

import (
	"fmt"
	"strconv"
	"strings"

	"beastgrid/internal/config"
)

type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamEnemy {
		return "enemy"
	}
	return "player"
}

func (t Team) Opponent() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

type Size int

const (
	Size1x1 Size = iota
	Size2x2
)

type AttackType int

const (
	Melee AttackType = iota
	Ranged
	Magic
)

func (a AttackType) String() string {
	switch a {
	case Ranged:
		return "ranged"
	case Magic:
		return "magic"
	default:
		return "melee"
	}
}

func ParseAttackType(s string) (AttackType, error) {
	switch strings.ToLower(s) {
	case "melee":
		return Melee, nil
	case "ranged":
		return Ranged, nil
	case "magic":
		return Magic, nil
	}
	return Melee, fmt.Errorf("unknown attack type %q", s)
}

// AbilityKind covers both passive unit abilities and attack riders.
type AbilityKind int

const (
	// Passive unit abilities.
	PackHunter AbilityKind = iota
	ShieldWall
	Guardian
	Protector
	Flying
	Haste
	Evasion // percent chance to ignore a hit entirely
	Lifelink
	Healing // heals own-column allies after a magic attack
	Roaming // takes a random orthogonal step after its team attacks

	// Attack riders.
	Piercing
	Splash
	Weakening
	Defanging
	Blinding
	Silencing
)

type Ability struct {
	Kind  AbilityKind
	Value int // Evasion percent or Healing amount
}

var abilityNames = map[string]AbilityKind{
	"pack hunter": PackHunter,
	"shield wall": ShieldWall,
	"guardian":    Guardian,
	"protector":   Protector,
	"flying":      Flying,
	"haste":       Haste,
	"evasion":     Evasion,
	"lifelink":    Lifelink,
	"healing":     Healing,
	"roaming":     Roaming,
	"piercing":    Piercing,
	"splash":      Splash,
	"weakening":   Weakening,
	"defanging":   Defanging,
	"blinding":    Blinding,
	"silencing":   Silencing,
}

// ParseAbility reads catalog strings like "Flying", "Evasion 50%" or
// "Healing 3".
func ParseAbility(s string) (Ability, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	value := 0
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		tail := strings.TrimSuffix(name[i+1:], "%")
		if v, err := strconv.Atoi(tail); err == nil {
			value = v
			name = name[:i]
		}
	}
	kind, ok := abilityNames[name]
	if !ok {
		return Ability{}, fmt.Errorf("unknown ability %q", s)
	}
	return Ability{Kind: kind, Value: value}, nil
}

func parseAbilities(ss []string) ([]Ability, error) {
	var out []Ability
	for _, s := range ss {
		ab, err := ParseAbility(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ab)
	}
	return out, nil
}

type Attack struct {
	Type      AttackType
	Damage    int
	RangeMin  int // ranged only, inclusive
	RangeMax  int
	Abilities []Ability
}

func (a Attack) Has(kind AbilityKind) bool {
	for _, ab := range a.Abilities {
		if ab.Kind == kind {
			return true
		}
	}
	return false
}

// Unit is one creature (or the hero) placed on a battle grid. Name is the
// exact type identity used for same-type comparisons; ID distinguishes
// instances.
type Unit struct {
	ID   string
	Name string
	Team Team
	Size Size

	HP    int
	MaxHP int

	Defense    int // anti-melee
	Dodge      int // anti-ranged
	Resistance int // anti-magic

	Efficacy int // conversion efficacy, 0-100 base

	Attacks   []Attack
	Abilities []Ability

	BaseRequirement int
	Battles         int
	Tier            int
	TierBonuses     []config.TierBonus

	Debuffs  map[StatusKind]int
	Progress int // conversion progress accumulated against this unit

	Hero *HeroScores // non-nil only for the hero unit
}

func (u *Unit) Has(kind AbilityKind) bool {
	for _, ab := range u.Abilities {
		if ab.Kind == kind {
			return true
		}
	}
	return false
}

// AbilityValue returns the numeric value of an ability like Evasion or
// Healing, or 0 if the unit lacks it.
func (u *Unit) AbilityValue(kind AbilityKind) int {
	for _, ab := range u.Abilities {
		if ab.Kind == kind {
			return ab.Value
		}
	}
	return 0
}

func (u *Unit) Alive() bool { return u.HP > 0 }

// DefenseAgainst returns the raw defense scalar matching an attack type,
// before any aura or hero bonus.
func (u *Unit) DefenseAgainst(t AttackType) int {
	switch t {
	case Ranged:
		return u.Dodge
	case Magic:
		return u.Resistance
	default:
		return u.Defense
	}
}

func (u *Unit) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := u.HP
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
	return u.HP - before
}
