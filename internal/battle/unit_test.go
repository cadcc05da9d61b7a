package battle

import "testing"

func TestParseAbility(t *testing.T) {
	cases := []struct {
		in    string
		kind  AbilityKind
		value int
	}{
		{"Flying", Flying, 0},
		{"Pack Hunter", PackHunter, 0},
		{"Evasion 50%", Evasion, 50},
		{"healing 3", Healing, 3},
		{"  Shield Wall  ", ShieldWall, 0},
	}
	for _, c := range cases {
		ab, err := ParseAbility(c.in)
		if err != nil {
			t.Fatalf("ParseAbility(%q): %v", c.in, err)
		}
		if ab.Kind != c.kind || ab.Value != c.value {
			t.Fatalf("ParseAbility(%q) = %+v, want %v/%d", c.in, ab, c.kind, c.value)
		}
	}
	if _, err := ParseAbility("Invisibility"); err == nil {
		t.Fatal("unknown ability must fail")
	}
}

func TestParseAttackType(t *testing.T) {
	for s, want := range map[string]AttackType{"melee": Melee, "Ranged": Ranged, "MAGIC": Magic} {
		got, err := ParseAttackType(s)
		if err != nil || got != want {
			t.Fatalf("ParseAttackType(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseAttackType("psychic"); err == nil {
		t.Fatal("unknown type must fail")
	}
}

func TestHealClampsAtMax(t *testing.T) {
	u := newTestUnit("Wolf", TeamPlayer, 10)
	u.HP = 7
	if got := u.Heal(5); got != 3 {
		t.Fatalf("healed %d, want 3", got)
	}
	if u.HP != 10 {
		t.Fatalf("HP %d, want 10", u.HP)
	}
	if got := u.Heal(0); got != 0 {
		t.Fatalf("zero heal returned %d", got)
	}
}

func TestDefenseAgainstAxes(t *testing.T) {
	u := newTestUnit("Wolf", TeamPlayer, 10)
	u.Defense, u.Dodge, u.Resistance = 1, 2, 3
	if u.DefenseAgainst(Melee) != 1 || u.DefenseAgainst(Ranged) != 2 || u.DefenseAgainst(Magic) != 3 {
		t.Fatal("defense axes mismatched")
	}
}
