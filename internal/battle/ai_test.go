package battle

import "testing"

func TestGreedyPicksHighestDamageCell(t *testing.T) {
	soft := newTestUnit("Wolf", TeamPlayer, 10)
	hard := newTestUnit("Yeti", TeamPlayer, 20)
	hard.Defense = 5
	topRaider := newTestUnit("Goblin", TeamEnemy, 8)
	topRaider.Attacks = []Attack{meleeAttack(6)}
	bottomRaider := newTestUnit("Goblin", TeamEnemy, 8)
	bottomRaider.Attacks = []Attack{meleeAttack(6)}

	enc, err := NewEncounter(
		[]Placement{{soft, Cell{0, 2}}, {hard, Cell{2, 2}}},
		[]Placement{{topRaider, Cell{0, 0}}, {bottomRaider, Cell{2, 0}}},
		7,
	)
	if err != nil {
		t.Fatalf("new encounter: %v", err)
	}
	intent := GreedyPolicy{}.Choose(enc, TeamEnemy)
	if intent.Kind != ActionAttack || intent.Target != (Cell{0, 2}) {
		t.Fatalf("intent %+v, want attack on the soft target {0 2}", intent)
	}
}

func TestGreedyTieBreaksTowardLowestRowThenColumn(t *testing.T) {
	a := newTestUnit("Wolf", TeamPlayer, 10)
	b := newTestUnit("Wolf", TeamPlayer, 10)
	topRaider := newTestUnit("Goblin", TeamEnemy, 8)
	topRaider.Attacks = []Attack{meleeAttack(6)}
	bottomRaider := newTestUnit("Goblin", TeamEnemy, 8)
	bottomRaider.Attacks = []Attack{meleeAttack(6)}

	enc, err := NewEncounter(
		[]Placement{{a, Cell{0, 2}}, {b, Cell{2, 2}}},
		[]Placement{{topRaider, Cell{0, 0}}, {bottomRaider, Cell{2, 0}}},
		7,
	)
	if err != nil {
		t.Fatalf("new encounter: %v", err)
	}
	intent := GreedyPolicy{}.Choose(enc, TeamEnemy)
	if intent.Target != (Cell{0, 2}) {
		t.Fatalf("tie should break to the lowest row, got %+v", intent.Target)
	}
}

func TestGreedySumsEveryEligibleAttack(t *testing.T) {
	victim := newTestUnit("Wolf", TeamPlayer, 30)
	caster := newTestUnit("Shaman", TeamEnemy, 10)
	caster.Attacks = []Attack{magicAttack(4), rangedAttack(3, 1, 3)}

	enc, err := NewEncounter(
		[]Placement{{victim, Cell{1, 2}}},
		[]Placement{{caster, Cell{1, 0}}},
		7,
	)
	if err != nil {
		t.Fatalf("new encounter: %v", err)
	}
	// The caster's mirror column from enemy col 0 is player col 2, and the
	// ranged band covers it too, so both attacks land on {1 2}.
	if got := enc.potentialDamage(TeamEnemy, Cell{1, 2}); got != 7 {
		t.Fatalf("potential damage %d, want 7", got)
	}
}

func TestGreedyNoTargetsFallsBackToCenter(t *testing.T) {
	idle := newTestUnit("Wolf", TeamPlayer, 10)
	harmless := newTestUnit("Slime", TeamEnemy, 10)

	enc, err := NewEncounter(
		[]Placement{{idle, Cell{1, 2}}},
		[]Placement{{harmless, Cell{1, 0}}},
		7,
	)
	if err != nil {
		t.Fatalf("new encounter: %v", err)
	}
	intent := GreedyPolicy{}.Choose(enc, TeamEnemy)
	if intent.Kind != ActionAttack {
		t.Fatalf("intent %+v", intent)
	}
	// With no attacks at all every occupied cell scores zero; the first
	// occupied cell in scan order wins.
	if intent.Target != (Cell{1, 2}) {
		t.Fatalf("target %+v, want the occupied cell {1 2}", intent.Target)
	}
}
