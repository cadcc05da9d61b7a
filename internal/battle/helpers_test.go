package battle

import "fmt"

var testUnitSeq int

func newTestUnit(name string, team Team, hp int) *Unit {
	testUnitSeq++
	return &Unit{
		ID:      fmt.Sprintf("u_t%04d", testUnitSeq),
		Name:    name,
		Team:    team,
		Size:    Size1x1,
		HP:      hp,
		MaxHP:   hp,
		Debuffs: map[StatusKind]int{},
	}
}

func meleeAttack(damage int, riders ...AbilityKind) Attack {
	return Attack{Type: Melee, Damage: damage, Abilities: riderList(riders)}
}

func rangedAttack(damage, min, max int, riders ...AbilityKind) Attack {
	return Attack{Type: Ranged, Damage: damage, RangeMin: min, RangeMax: max, Abilities: riderList(riders)}
}

func magicAttack(damage int, riders ...AbilityKind) Attack {
	return Attack{Type: Magic, Damage: damage, Abilities: riderList(riders)}
}

func riderList(kinds []AbilityKind) []Ability {
	var out []Ability
	for _, k := range kinds {
		out = append(out, Ability{Kind: k})
	}
	return out
}

// stubPolicy replaces the enemy brain in tests that need the enemy to hold
// still or to repeat a fixed action.
type stubPolicy struct{ intent Intent }

func (p stubPolicy) Choose(*Encounter, Team) Intent { return p.intent }

// holdPolicy makes the enemy side spend every turn on a move that resolves
// to nothing.
func holdPolicy() Policy {
	return stubPolicy{Intent{Kind: ActionMove, UnitID: "nobody"}}
}
