package battle

import "testing"

func TestPackHunterScalesWithSameTypeAllies(t *testing.T) {
	g := NewGrid(TeamPlayer)
	wolf := newTestUnit("Wolf", TeamPlayer, 10)
	wolf.Abilities = []Ability{{Kind: PackHunter}}
	g.Place(wolf, Cell{0, 2})
	g.Place(newTestUnit("Wolf", TeamPlayer, 10), Cell{1, 2})
	g.Place(newTestUnit("Wolf", TeamPlayer, 10), Cell{2, 2})
	g.Place(newTestUnit("Lion", TeamPlayer, 12), Cell{1, 1})

	atk := meleeAttack(4)
	if got := EffectiveAttackDamage(g, wolf, atk); got != 8 {
		t.Fatalf("pack hunter damage %d, want 8", got)
	}
	// Magic never gains the pack bonus.
	if got := EffectiveAttackDamage(g, wolf, magicAttack(4)); got != 4 {
		t.Fatalf("magic damage %d, want 4", got)
	}
	// Other-type teammates do not count.
	if got := sameTypeAllies(g, wolf); got != 2 {
		t.Fatalf("same-type allies %d, want 2", got)
	}
}

func TestShieldWallScalesDefense(t *testing.T) {
	g := NewGrid(TeamPlayer)
	yeti := newTestUnit("Yeti", TeamPlayer, 20)
	yeti.Defense = 4
	yeti.Resistance = 2
	yeti.Abilities = []Ability{{Kind: ShieldWall}}
	g.Place(yeti, Cell{0, 0})
	g.Place(newTestUnit("Yeti", TeamPlayer, 20), Cell{0, 2})

	if got := EffectiveDefense(g, yeti, Melee, nil); got != 6 {
		t.Fatalf("shield wall melee defense %d, want 6", got)
	}
	if got := EffectiveDefense(g, yeti, Magic, nil); got != 2 {
		t.Fatalf("magic resistance %d, want 2 (no shield wall)", got)
	}
}

func TestGuardianAndProtectorAuras(t *testing.T) {
	g := NewGrid(TeamPlayer)
	ward := newTestUnit("Dwarf", TeamPlayer, 15)
	ward.Defense = 2
	ward.Resistance = 1
	g.Place(ward, Cell{1, 1})

	guardian := newTestUnit("Guard", TeamPlayer, 15)
	guardian.Defense = 6
	guardian.Abilities = []Ability{{Kind: Guardian}}
	g.Place(guardian, Cell{1, 0})

	protector := newTestUnit("Owl", TeamPlayer, 10)
	protector.Resistance = 8
	protector.Abilities = []Ability{{Kind: Protector}}
	g.Place(protector, Cell{0, 1})

	if got := EffectiveDefense(g, ward, Melee, nil); got != 5 {
		t.Fatalf("guardian-backed defense %d, want 5", got)
	}
	if got := EffectiveDefense(g, ward, Magic, nil); got != 5 {
		t.Fatalf("protector-backed resistance %d, want 5", got)
	}

	// Diagonal neighbors contribute nothing.
	far := newTestUnit("Bat", TeamPlayer, 6)
	g.Place(far, Cell{0, 0})
	if got := EffectiveDefense(g, far, Melee, nil); got != 0+guardian.Defense/2 {
		// (0,0) borders the guardian at (1,0) but not the ward.
		t.Fatalf("adjacency defense %d", got)
	}
}

func TestHeroBlessingShieldsCreaturesOnly(t *testing.T) {
	g := NewGrid(TeamPlayer)
	creature := newTestUnit("Wolf", TeamPlayer, 10)
	creature.Defense = 1
	g.Place(creature, Cell{0, 0})

	hero := newTestUnit("Adventurer", TeamPlayer, 100)
	hero.Hero = &HeroScores{Wisdom: 9}
	hero.Defense = 5
	g.Place(hero, Cell{2, 2})

	scores := hero.Hero
	if got := EffectiveDefense(g, creature, Melee, scores); got != 3 {
		t.Fatalf("blessed defense %d, want 3", got)
	}
	if got := EffectiveDefense(g, hero, Melee, scores); got != 5 {
		t.Fatalf("the hero must not bless itself: %d, want 5", got)
	}
}

func TestStatusPenaltyCountsPresenceNotStacks(t *testing.T) {
	u := newTestUnit("Wolf", TeamPlayer, 10)
	u.AddStatus(Weakened, 2)
	if got := u.statusPenalty(Melee); got != 3 {
		t.Fatalf("two weakened stacks should still cost 3, got %d", got)
	}
	u.AddStatus(Defanged, 1)
	if got := u.statusPenalty(Melee); got != 9 {
		t.Fatalf("weakened+defanged melee penalty %d, want 9", got)
	}
	if got := u.statusPenalty(Ranged); got != 3 {
		t.Fatalf("defanged must not dull ranged: %d, want 3", got)
	}
}

func TestConsumeStatusesRemovesOneStackPerKind(t *testing.T) {
	u := newTestUnit("Wolf", TeamPlayer, 10)
	u.AddStatus(Weakened, 2)
	u.AddStatus(Defanged, 1)
	u.AddStatus(Blinded, 1)

	consumed := u.consumeStatuses(Melee)
	if len(consumed) != 2 {
		t.Fatalf("consumed %v, want weakened and defanged", consumed)
	}
	if got := u.StatusStacks(Weakened); got != 1 {
		t.Fatalf("weakened stacks %d, want 1", got)
	}
	if got := u.StatusStacks(Defanged); got != 0 {
		t.Fatalf("defanged stacks %d, want 0", got)
	}
	if got := u.StatusStacks(Blinded); got != 1 {
		t.Fatalf("blinded must survive a melee attack, got %d", got)
	}
}

func TestRiderStatusMapping(t *testing.T) {
	cases := []struct {
		rider AbilityKind
		want  StatusKind
	}{
		{Weakening, Weakened},
		{Defanging, Defanged},
		{Blinding, Blinded},
		{Silencing, Silenced},
	}
	for _, c := range cases {
		got, ok := riderStatus(c.rider)
		if !ok || got != c.want {
			t.Fatalf("rider %v -> %v ok=%v, want %v", c.rider, got, ok, c.want)
		}
	}
	if _, ok := riderStatus(Piercing); ok {
		t.Fatal("piercing is not a status rider")
	}
}
