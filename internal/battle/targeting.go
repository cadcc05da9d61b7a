package battle

// Targeting translates an attack category and a selected cell on the
// opposing grid into eligibility plus the set of cells actually struck.
//
// Range math runs on a unified 0-5 column index: player columns map to 0-2
// (back to front), enemy columns to 3-5 (front to back).

func globalColumn(team Team, col int) int {
	if team == TeamPlayer {
		return col
	}
	return GridSize + col
}

func columnDistance(attacker Team, attackerCol, targetCol int) int {
	d := globalColumn(attacker, attackerCol) - globalColumn(attacker.Opponent(), targetCol)
	if d < 0 {
		d = -d
	}
	return d
}

// mirrorColumn is the opposing column symmetric to a local column:
// front-front, middle-middle, back-back. The formula is its own inverse.
func mirrorColumn(col int) int { return GridSize - 1 - col }

// towardFront orders local columns from a team's back toward its front.
func towardFront(team Team, a, b int) bool {
	if team == TeamPlayer {
		return a > b
	}
	return a < b
}

// attackPosition is the cell a multi-cell attacker is treated as occupying
// for ranged and magic eligibility: the front-top-most occupied cell.
func attackPosition(g *Grid, u *Unit) (Cell, bool) {
	cells := g.CellsOf(u)
	if len(cells) == 0 {
		return Cell{}, false
	}
	best := cells[0]
	for _, c := range cells[1:] {
		if towardFront(u.Team, c.Col, best.Col) || (c.Col == best.Col && c.Row < best.Row) {
			best = c
		}
	}
	return best, true
}

// naturalMeleeTarget finds the cell a melee attacker in the given row must
// strike: the front-most occupied enemy cell of that row. An ally standing
// closer to the front in the same row blocks the attack entirely.
func naturalMeleeTarget(own, opp *Grid, u *Unit, row, ownCol int) (Cell, bool) {
	for col := 0; col < GridSize; col++ {
		if !towardFront(u.Team, col, ownCol) {
			continue
		}
		if ally := own.At(Cell{row, col}); ally != nil && ally != u {
			return Cell{}, false
		}
	}
	// The defender's front-most occupied cell is always the nearest by
	// global column distance.
	for i := 0; i < GridSize; i++ {
		col := i
		if u.Team == TeamEnemy {
			col = GridSize - 1 - i
		}
		if opp.At(Cell{row, col}) != nil {
			return Cell{row, col}, true
		}
	}
	return Cell{}, false
}

// ResolveTargets reports whether the attacker may act on the selected cell
// with the given attack, and which opposing cells the attack covers. Hit
// cells come back in row-major order.
func ResolveTargets(own, opp *Grid, u *Unit, atk Attack, target Cell) (bool, []Cell) {
	if !target.InBounds() {
		return false, nil
	}
	cells := own.CellsOf(u)
	if len(cells) == 0 {
		return false, nil
	}

	switch atk.Type {
	case Melee:
		// A 2x2 attacker may strike from either of its occupied rows.
		rowFront := map[int]int{}
		for _, c := range cells {
			if cur, ok := rowFront[c.Row]; !ok || towardFront(u.Team, c.Col, cur) {
				rowFront[c.Row] = c.Col
			}
		}
		for row, ownCol := range rowFront {
			natural, ok := naturalMeleeTarget(own, opp, u, row, ownCol)
			if !ok || natural != target {
				continue
			}
			if atk.Has(Piercing) {
				return true, rowCells(target.Row)
			}
			return true, []Cell{target}
		}
		return false, nil

	case Ranged:
		pos, ok := attackPosition(own, u)
		if !ok {
			return false, nil
		}
		dist := columnDistance(u.Team, pos.Col, target.Col)
		if dist < atk.RangeMin || dist > atk.RangeMax {
			return false, nil
		}
		hits := []Cell{target}
		if atk.Has(Splash) {
			hits = append(hits, AdjacentOrthogonal(target)...)
		}
		sortCells(hits)
		return true, hits

	case Magic:
		pos, ok := attackPosition(own, u)
		if !ok {
			return false, nil
		}
		if target.Col != mirrorColumn(pos.Col) {
			return false, nil
		}
		return true, columnCells(target.Col)
	}
	return false, nil
}

func rowCells(row int) []Cell {
	cells := make([]Cell, GridSize)
	for col := 0; col < GridSize; col++ {
		cells[col] = Cell{row, col}
	}
	return cells
}

func columnCells(col int) []Cell {
	cells := make([]Cell, GridSize)
	for row := 0; row < GridSize; row++ {
		cells[row] = Cell{row, col}
	}
	return cells
}

func sortCells(cells []Cell) {
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0 && cellLess(cells[j], cells[j-1]); j-- {
			cells[j], cells[j-1] = cells[j-1], cells[j]
		}
	}
}
