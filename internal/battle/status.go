package battle

// StatusKind is a stacking debuff left on a unit by an attack rider.
// Weakened dulls every attack; the other three dull one category each.
type StatusKind int

const (
	Weakened StatusKind = iota
	Defanged
	Blinded
	Silenced
)

const (
	weakenedPenalty = 3
	categoryPenalty = 6
)

func (s StatusKind) String() string {
	switch s {
	case Defanged:
		return "defanged"
	case Blinded:
		return "blinded"
	case Silenced:
		return "silenced"
	default:
		return "weakened"
	}
}

func (s StatusKind) Matches(t AttackType) bool {
	switch s {
	case Weakened:
		return true
	case Defanged:
		return t == Melee
	case Blinded:
		return t == Ranged
	default:
		return t == Magic
	}
}

func categoryStatus(t AttackType) StatusKind {
	switch t {
	case Ranged:
		return Blinded
	case Magic:
		return Silenced
	default:
		return Defanged
	}
}

// riderStatus maps an attack rider ability to the debuff it inflicts.
func riderStatus(kind AbilityKind) (StatusKind, bool) {
	switch kind {
	case Weakening:
		return Weakened, true
	case Defanging:
		return Defanged, true
	case Blinding:
		return Blinded, true
	case Silencing:
		return Silenced, true
	}
	return 0, false
}

func (u *Unit) AddStatus(kind StatusKind, stacks int) {
	if u.Debuffs == nil {
		u.Debuffs = map[StatusKind]int{}
	}
	u.Debuffs[kind] += stacks
}

func (u *Unit) StatusStacks(kind StatusKind) int { return u.Debuffs[kind] }

// statusPenalty is the damage reduction an attack of the given category
// suffers: one consumed stack of each applicable kind counts, however tall
// the stacks are.
func (u *Unit) statusPenalty(t AttackType) int {
	penalty := 0
	if u.Debuffs[Weakened] > 0 {
		penalty += weakenedPenalty
	}
	if u.Debuffs[categoryStatus(t)] > 0 {
		penalty += categoryPenalty
	}
	return penalty
}

// consumeStatuses removes exactly one stack of each debuff the attack
// category matches, returning the kinds reduced.
func (u *Unit) consumeStatuses(t AttackType) []StatusKind {
	var consumed []StatusKind
	for _, kind := range []StatusKind{Weakened, Defanged, Blinded, Silenced} {
		if !kind.Matches(t) {
			continue
		}
		if u.Debuffs[kind] <= 0 {
			continue
		}
		u.Debuffs[kind]--
		if u.Debuffs[kind] == 0 {
			delete(u.Debuffs, kind)
		}
		consumed = append(consumed, kind)
	}
	return consumed
}

// sameTypeAllies counts teammates sharing the unit's exact type name,
// excluding the unit itself. Tier and instance do not matter.
func sameTypeAllies(g *Grid, u *Unit) int {
	n := 0
	for _, v := range g.Units() {
		if v != u && v.Name == u.Name {
			n++
		}
	}
	return n
}

// EffectiveAttackDamage is the attack's base damage plus the Pack Hunter
// aura, recomputed from the current grid every time it is needed.
func EffectiveAttackDamage(g *Grid, u *Unit, atk Attack) int {
	damage := atk.Damage
	if u.Has(PackHunter) && (atk.Type == Melee || atk.Type == Ranged) {
		damage += atk.Damage * sameTypeAllies(g, u) / 2
	}
	return damage
}

// EffectiveDefense is the defense scalar a unit opposes an attack category
// with, including Shield Wall, adjacency auras and the hero's WIS blessing.
// Auras contribute base stats only; a buffed Guardian does not re-propagate
// its bonus.
func EffectiveDefense(g *Grid, u *Unit, t AttackType, hero *HeroScores) int {
	total := u.DefenseAgainst(t)
	if u.Has(ShieldWall) && (t == Melee || t == Ranged) {
		total += u.DefenseAgainst(t) * sameTypeAllies(g, u) / 2
	}
	for _, adj := range g.AdjacentUnits(u) {
		switch t {
		case Melee, Ranged:
			if adj.Has(Guardian) {
				total += adj.DefenseAgainst(t) / 2
			}
		case Magic:
			if adj.Has(Protector) {
				total += adj.Resistance / 2
			}
		}
	}
	if hero != nil && u.Hero == nil {
		total += hero.AllyDefenseBonus()
	}
	return total
}
