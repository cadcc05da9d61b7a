package battle

import "testing"

func TestConversionPointsFormula(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 80
	atk := meleeAttack(10)

	mark := newTestUnit("Goblin", TeamEnemy, 20)
	mark.Defense = 1
	mark.Dodge = 3
	mark.Resistance = 2

	// floor(10 * 80/100) minus the strongest raw defense.
	if got := conversionPoints(charmer, atk, mark, nil); got != 5 {
		t.Fatalf("points %d, want 5", got)
	}

	// Below half health the efficacy gains 1.5x.
	mark.HP = 9
	if got := conversionPoints(charmer, atk, mark, nil); got != 9 {
		t.Fatalf("low-health points %d, want 9", got)
	}
	mark.HP = 10 // exactly half does not count as below
	if got := conversionPoints(charmer, atk, mark, nil); got != 5 {
		t.Fatalf("half-health points %d, want 5", got)
	}

	// The hero's charisma scales efficacy before the subtraction.
	hero := &HeroScores{Charisma: 8} // multiplier 1.2
	if got := conversionPoints(charmer, atk, mark, hero); got != 6 {
		t.Fatalf("charisma-scaled points %d, want 6", got)
	}
}

func TestConversionNeverNegative(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 10

	mark := newTestUnit("Golem", TeamEnemy, 20)
	mark.Resistance = 50
	if got := conversionPoints(charmer, meleeAttack(10), mark, nil); got != 0 {
		t.Fatalf("points %d, want 0", got)
	}
}

func TestFullConversionRecruitsTheTarget(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 100
	charmer.Attacks = []Attack{meleeAttack(10)}
	mark := newTestUnit("Goblin", TeamEnemy, 15)

	enc := quietEncounter(t,
		[]Placement{{charmer, Cell{1, 2}}},
		[]Placement{{mark, Cell{1, 0}}},
	)
	pool := &RecruitPool{}
	enc.Recruits = pool

	if _, err := enc.SubmitAction(Intent{Kind: ActionConvert, Target: Cell{1, 0}}); err != nil {
		t.Fatalf("convert 1: %v", err)
	}
	if mark.Progress != 10 || mark.HP != 15 {
		t.Fatalf("after convert 1: progress=%d hp=%d", mark.Progress, mark.HP)
	}

	out, err := enc.SubmitAction(Intent{Kind: ActionConvert, Target: Cell{1, 0}})
	if err != nil {
		t.Fatalf("convert 2: %v", err)
	}
	// 10 more points cap at MaxHP and tip the target over.
	if mark.Progress != 15 {
		t.Fatalf("progress %d, want capped at 15", mark.Progress)
	}
	if len(out.Player.Recruited) != 1 || out.Player.Recruited[0].ID != mark.ID {
		t.Fatalf("recruited %v", out.Player.Recruited)
	}
	if len(pool.Units) != 1 || pool.Units[0] != mark {
		t.Fatal("recruit pool did not receive the converted unit")
	}
	if enc.Terminal() != Won {
		t.Fatalf("terminal %v, want won after the last enemy converts", enc.Terminal())
	}
}

func TestEvasionAppliesToConversion(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 100
	charmer.Attacks = []Attack{meleeAttack(10)}
	ghost := newTestUnit("Wisp", TeamEnemy, 15)
	ghost.Abilities = []Ability{{Kind: Evasion, Value: 100}}

	enc := quietEncounter(t,
		[]Placement{{charmer, Cell{1, 2}}},
		[]Placement{{ghost, Cell{1, 0}}},
	)
	out, err := enc.SubmitAction(Intent{Kind: ActionConvert, Target: Cell{1, 0}})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !out.Player.Hits[0].Evaded || ghost.Progress != 0 {
		t.Fatalf("evading target gained progress: %+v progress=%d", out.Player.Hits[0], ghost.Progress)
	}
}

func TestConversionCountsAsPerformingTheAttack(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 50
	charmer.Attacks = []Attack{magicAttack(4)}
	charmer.Abilities = []Ability{{Kind: Healing, Value: 2}}
	charmer.AddStatus(Weakened, 1)
	wounded := newTestUnit("Wolf", TeamPlayer, 10)
	wounded.HP = 5
	mark := newTestUnit("Goblin", TeamEnemy, 30)

	enc := quietEncounter(t,
		[]Placement{{charmer, Cell{1, 2}}, {wounded, Cell{0, 2}}},
		[]Placement{{mark, Cell{1, 0}}},
	)
	if _, err := enc.SubmitAction(Intent{Kind: ActionConvert, Target: Cell{0, 0}}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if mark.Progress != 2 {
		t.Fatalf("progress %d, want 2", mark.Progress)
	}
	// The convert spends the caster's matching debuff stack and still
	// triggers the after-magic column heal.
	if got := charmer.StatusStacks(Weakened); got != 0 {
		t.Fatalf("weakened stacks %d, want 0 after the cast", got)
	}
	if wounded.HP != 7 {
		t.Fatalf("column ally HP %d, want 7", wounded.HP)
	}
}

func TestProgressResetsWhenTheBattleEnds(t *testing.T) {
	charmer := newTestUnit("Centaur", TeamPlayer, 10)
	charmer.Efficacy = 100
	charmer.Attacks = []Attack{meleeAttack(5)}
	mark := newTestUnit("Goblin", TeamEnemy, 15)

	enc := quietEncounter(t,
		[]Placement{{charmer, Cell{1, 2}}},
		[]Placement{{mark, Cell{1, 0}}},
	)
	if _, err := enc.SubmitAction(Intent{Kind: ActionConvert, Target: Cell{1, 0}}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if mark.Progress != 5 {
		t.Fatalf("progress %d, want 5", mark.Progress)
	}
	if _, err := enc.SubmitAction(Intent{Kind: ActionFlee}); err != nil {
		t.Fatalf("flee: %v", err)
	}
	if mark.Progress != 0 {
		t.Fatalf("progress %d, want 0 after the battle ends", mark.Progress)
	}
}
