package battle

import "beastgrid/internal/config"

// MaxTier is the last progression checkpoint a creature can reach.
const MaxTier = 3

// TierRequirement is the number of battles tier t alone demands:
// base + floor((t-1)/2), less 1 per 5 hero INT, never below 1.
// A base requirement of 0 disables progression entirely.
func TierRequirement(base, tier, heroInt int) int {
	req := base + (tier-1)/2 - heroInt/5
	if req < 1 {
		req = 1
	}
	return req
}

// BattlesForTier is the cumulative battle count needed to reach a tier.
func BattlesForTier(base, tier, heroInt int) int {
	total := 0
	for t := 1; t <= tier; t++ {
		total += TierRequirement(base, t, heroInt)
	}
	return total
}

// awardExperience runs after a won battle: every surviving player creature
// logs the battle and crosses whatever tier thresholds it now clears.
// Heroes never progress here; they gain fixed stat points per floor.
func (e *Encounter) awardExperience() {
	heroInt := 0
	if h := e.heroFor(e.PlayerGrid); h != nil {
		heroInt = h.Intelligence
	}
	for _, u := range e.PlayerGrid.Units() {
		if u.Hero != nil {
			continue
		}
		u.Battles++
		for e.tierUp(u, heroInt) {
		}
	}
}

// tierUp advances the unit one tier if its battle count clears the next
// threshold, applying that tier's bonus. Returns whether it advanced.
func (e *Encounter) tierUp(u *Unit, heroInt int) bool {
	if u.BaseRequirement == 0 || u.Tier >= MaxTier {
		return false
	}
	next := u.Tier + 1
	if u.Battles < BattlesForTier(u.BaseRequirement, next, heroInt) {
		return false
	}
	wasSmall := u.Size == Size1x1
	for _, bonus := range u.TierBonuses {
		if bonus.Tier == next {
			applyTierBonus(u, bonus)
		}
	}
	u.Tier = next
	e.emit(Event{Turn: e.Turn, Type: "TierUp", Payload: map[string]any{
		"id": u.ID, "name": u.Name, "tier": next,
	}})
	if e.OnTierUp != nil {
		e.OnTierUp(u, next)
	}
	if wasSmall && u.Size == Size2x2 {
		e.growInPlace(u)
	}
	return true
}

// applyTierBonus mutates the unit with one tier's structured effects.
func applyTierBonus(u *Unit, bonus config.TierBonus) {
	u.MaxHP += bonus.MaxHP
	u.HP += bonus.MaxHP
	u.Defense += bonus.Defense
	u.Dodge += bonus.Dodge
	u.Resistance += bonus.Resistance
	u.Efficacy += bonus.ConversionEfficacy

	for i := range u.Attacks {
		switch u.Attacks[i].Type {
		case Melee:
			u.Attacks[i].Damage += bonus.MeleeDamage
		case Ranged:
			u.Attacks[i].Damage += bonus.RangedDamage
		case Magic:
			u.Attacks[i].Damage += bonus.MagicDamage
		}
	}

	if bonus.NewAttack != nil {
		if atk, err := buildAttack(*bonus.NewAttack); err == nil {
			u.Attacks = append(u.Attacks, atk)
		}
	}

	for typeName, riders := range bonus.AttackAbilities {
		t, err := ParseAttackType(typeName)
		if err != nil {
			continue
		}
		extra, err := parseAbilities(riders)
		if err != nil {
			continue
		}
		for i := range u.Attacks {
			if u.Attacks[i].Type == t {
				u.Attacks[i].Abilities = append(u.Attacks[i].Abilities, extra...)
			}
		}
	}

	for _, name := range bonus.Abilities {
		ab, err := ParseAbility(name)
		if err != nil || u.Has(ab.Kind) {
			continue
		}
		u.Abilities = append(u.Abilities, ab)
	}

	if bonus.HealingBonus != 0 {
		for i := range u.Abilities {
			if u.Abilities[i].Kind == Healing {
				u.Abilities[i].Value += bonus.HealingBonus
			}
		}
	}

	if bonus.Size == "2x2" {
		u.Size = Size2x2
	}
}

// growInPlace expands a freshly grown 2x2 unit into empty cells around its
// current position. The four candidate anchors all keep the current cell
// as one corner; with no room (or a large unit already present) the unit
// leaves the grid for the recruit pool to be re-placed later.
func (e *Encounter) growInPlace(u *Unit) {
	g := e.PlayerGrid
	cur, ok := g.Anchor(u)
	if !ok {
		return
	}
	g.Remove(u)

	if g.Large() == nil {
		anchors := []Cell{
			cur,
			{cur.Row, cur.Col - 1},
			{cur.Row - 1, cur.Col},
			{cur.Row - 1, cur.Col - 1},
		}
		for _, a := range anchors {
			if err := g.Place(u, a); err == nil {
				e.emit(Event{Turn: e.Turn, Type: "Grow", Payload: map[string]any{
					"id": u.ID, "name": u.Name, "row": a.Row, "col": a.Col,
				}})
				return
			}
		}
	}

	e.Recruits.Offer(u)
	e.emit(Event{Turn: e.Turn, Type: "Displaced", Payload: map[string]any{
		"id": u.ID, "name": u.Name,
	}})
}
