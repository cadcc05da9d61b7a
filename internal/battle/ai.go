package battle

// GreedyPolicy is the stock enemy brain: it always declares Attack, on the
// occupied opposing cell whose summed team damage is highest. Scoring uses
// current stats without rolling evasion, so the choice is pure given the
// board. Equal scores break toward the lowest row, then the lowest column.
type GreedyPolicy struct{}

func (GreedyPolicy) Choose(e *Encounter, team Team) Intent {
	opp := e.gridOf(team.Opponent())
	best := Cell{1, 1}
	bestScore := -1
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := Cell{row, col}
			if opp.At(c) == nil {
				continue
			}
			if score := e.potentialDamage(team, c); score > bestScore {
				best, bestScore = c, score
			}
		}
	}
	return Intent{Kind: ActionAttack, Target: best}
}

// potentialDamage sums the pre-application finalDamage every allied attack
// would deal against the given cell, the same math resolution uses.
func (e *Encounter) potentialDamage(team Team, target Cell) int {
	own := e.gridOf(team)
	opp := e.gridOf(team.Opponent())
	defHero := e.heroFor(opp)

	total := 0
	for _, u := range own.Units() {
		for _, atk := range u.Attacks {
			eligible, hitCells := ResolveTargets(own, opp, u, atk, target)
			if !eligible {
				continue
			}
			seen := map[*Unit]bool{}
			for _, c := range hitCells {
				defender := opp.At(c)
				if defender == nil || seen[defender] {
					continue
				}
				seen[defender] = true
				total += damageAgainst(own, opp, u, atk, defender, defHero)
			}
		}
	}
	return total
}
