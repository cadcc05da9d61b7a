package battle

import "math"

// conversionPoints reuses the attack's targeting but spends the converting
// unit's efficacy instead of health: the attack's base damage is scaled by
// effective efficacy, then reduced by the target's strongest defense. Aura
// bonuses never feed conversion.
//
// Effective efficacy gains the hero's CHA multiplier and, before the
// subtraction, a 1.5x bonus against targets below half health.
func conversionPoints(attacker *Unit, atk Attack, defender *Unit, convHero *HeroScores) int {
	eff := float64(attacker.Efficacy)
	if convHero != nil {
		eff = math.Floor(eff * convHero.EfficacyMultiplier())
	}
	if defender.HP*2 < defender.MaxHP {
		eff *= 1.5
	}
	points := int(math.Floor(float64(atk.Damage) * eff / 100))

	strongest := defender.Defense
	if defender.Dodge > strongest {
		strongest = defender.Dodge
	}
	if defender.Resistance > strongest {
		strongest = defender.Resistance
	}
	points -= strongest
	if points < 0 {
		points = 0
	}
	return points
}
