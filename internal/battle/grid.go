package battle

import (
	"errors"
	"sort"
)

const GridSize = 3

var (
	ErrOccupancyConflict = errors.New("occupancy conflict")
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrInvalidIntent     = errors.New("invalid action intent")
)

// Cell addresses one square of a team's 3x3 grid. Columns are local to the
// grid: the player side counts back=0 to front=2, the enemy side counts
// front=0 to back=2.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Delta struct {
	DRow int `json:"drow"`
	DCol int `json:"dcol"`
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

func (c Cell) Add(d Delta) Cell { return Cell{c.Row + d.DRow, c.Col + d.DCol} }

var orthogonal = []Delta{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is one team's battlefield. The cells array is a view over the unit
// set: a 2x2 unit's pointer appears in all four of its cells.
type Grid struct {
	Team  Team
	cells [GridSize][GridSize]*Unit
}

func NewGrid(team Team) *Grid { return &Grid{Team: team} }

func (g *Grid) At(c Cell) *Unit {
	if !c.InBounds() {
		return nil
	}
	return g.cells[c.Row][c.Col]
}

// footprint returns the cells a unit of the given size would cover when
// anchored at anchor. The anchor is the top-left cell for a 2x2 unit.
func footprint(size Size, anchor Cell) []Cell {
	if size == Size2x2 {
		return []Cell{
			anchor,
			{anchor.Row, anchor.Col + 1},
			{anchor.Row + 1, anchor.Col},
			{anchor.Row + 1, anchor.Col + 1},
		}
	}
	return []Cell{anchor}
}

// Place puts a unit on the grid. It fails if any required cell is occupied
// or out of bounds, or if a second 2x2 unit would be placed while one is
// already present.
func (g *Grid) Place(u *Unit, anchor Cell) error {
	if u.Size == Size2x2 && g.Large() != nil {
		return ErrOccupancyConflict
	}
	cells := footprint(u.Size, anchor)
	for _, c := range cells {
		if !c.InBounds() {
			return ErrOutOfBounds
		}
		if g.cells[c.Row][c.Col] != nil {
			return ErrOccupancyConflict
		}
	}
	for _, c := range cells {
		g.cells[c.Row][c.Col] = u
	}
	return nil
}

// Remove clears the unit from every cell it occupies.
func (g *Grid) Remove(u *Unit) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g.cells[r][c] == u {
				g.cells[r][c] = nil
			}
		}
	}
}

// CellsOf returns the 1 or 4 cells the unit occupies, in row-major order.
func (g *Grid) CellsOf(u *Unit) []Cell {
	var out []Cell
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g.cells[r][c] == u {
				out = append(out, Cell{r, c})
			}
		}
	}
	return out
}

// Anchor returns the top-left occupied cell of the unit.
func (g *Grid) Anchor(u *Unit) (Cell, bool) {
	cells := g.CellsOf(u)
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[0], true
}

// Units returns each distinct unit on the grid once, in row-major order of
// its anchor. Resolution iterates this so outcomes are deterministic.
func (g *Grid) Units() []*Unit {
	var out []*Unit
	seen := map[*Unit]bool{}
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if u := g.cells[r][c]; u != nil && !seen[u] {
				out = append(out, u)
				seen[u] = true
			}
		}
	}
	return out
}

// Large returns the grid's 2x2 unit, if any. At most one exists.
func (g *Grid) Large() *Unit {
	for _, u := range g.Units() {
		if u.Size == Size2x2 {
			return u
		}
	}
	return nil
}

func (g *Grid) Empty() bool { return len(g.Units()) == 0 }

// CanMove reports whether Move would accept the step, without mutating
// the grid.
func (g *Grid) CanMove(u *Unit, d Delta) error {
	if d.DRow*d.DRow+d.DCol*d.DCol != 1 {
		return ErrInvalidIntent
	}
	cells := g.CellsOf(u)
	if len(cells) == 0 {
		return ErrInvalidIntent
	}
	if u.Size == Size1x1 {
		to := cells[0].Add(d)
		if !to.InBounds() {
			return ErrOutOfBounds
		}
		if other := g.cells[to.Row][to.Col]; other != nil && other.Size == Size2x2 {
			return ErrOccupancyConflict
		}
		return nil
	}
	for _, c := range footprint(Size2x2, cells[0].Add(d)) {
		if !c.InBounds() {
			return ErrOutOfBounds
		}
	}
	return nil
}

// Move shifts a unit by one orthogonal step.
//
// A 1x1 unit swaps cells with whatever occupies the destination. Swapping
// into a 2x2 footprint is rejected: the large unit cannot trade a single
// cell away.
//
// A 2x2 unit's anchor shifts by delta; the occupants of the two cells that
// become newly covered are relocated into the two cells the unit vacates,
// keeping their row (horizontal move) or column (vertical move).
func (g *Grid) Move(u *Unit, d Delta) error {
	if err := g.CanMove(u, d); err != nil {
		return err
	}
	cells := g.CellsOf(u)
	if u.Size == Size1x1 {
		from := cells[0]
		to := from.Add(d)
		other := g.cells[to.Row][to.Col]
		g.cells[from.Row][from.Col] = other
		g.cells[to.Row][to.Col] = u
		return nil
	}

	anchor := cells[0]
	newAnchor := anchor.Add(d)
	next := footprint(Size2x2, newAnchor)

	inNext := func(c Cell) bool {
		for _, n := range next {
			if n == c {
				return true
			}
		}
		return false
	}
	var covered, vacated []Cell
	for _, c := range next {
		if g.cells[c.Row][c.Col] != u {
			covered = append(covered, c)
		}
	}
	for _, c := range cells {
		if !inNext(c) {
			vacated = append(vacated, c)
		}
	}
	sort.Slice(covered, func(i, j int) bool { return cellLess(covered[i], covered[j]) })
	sort.Slice(vacated, func(i, j int) bool { return cellLess(vacated[i], vacated[j]) })

	// Row-major sorting pairs covered and vacated cells so that a displaced
	// occupant keeps its row on a horizontal move and its column on a
	// vertical one.
	displaced := make([]*Unit, len(covered))
	for i, c := range covered {
		displaced[i] = g.cells[c.Row][c.Col]
	}
	for _, c := range cells {
		g.cells[c.Row][c.Col] = nil
	}
	for _, c := range next {
		g.cells[c.Row][c.Col] = u
	}
	for i, c := range vacated {
		g.cells[c.Row][c.Col] = displaced[i]
	}
	return nil
}

func cellLess(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// AdjacentOrthogonal returns the in-bounds orthogonal neighbors of a cell.
func AdjacentOrthogonal(c Cell) []Cell {
	var out []Cell
	for _, d := range orthogonal {
		n := c.Add(d)
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// AdjacentUnits returns each distinct unit orthogonally touching any cell
// the given unit occupies. A 2x2 unit is adjacent to everything bordering
// its whole footprint.
func (g *Grid) AdjacentUnits(u *Unit) []*Unit {
	own := g.CellsOf(u)
	owns := func(c Cell) bool {
		for _, o := range own {
			if o == c {
				return true
			}
		}
		return false
	}
	var out []*Unit
	seen := map[*Unit]bool{u: true}
	for _, c := range own {
		for _, n := range AdjacentOrthogonal(c) {
			if owns(n) {
				continue
			}
			if v := g.cells[n.Row][n.Col]; v != nil && !seen[v] {
				out = append(out, v)
				seen[v] = true
			}
		}
	}
	return out
}
