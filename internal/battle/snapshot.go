package battle

// CellInfo is the render-facing view of one grid square.
type CellInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"max_hp"`
	Tier     int    `json:"tier"`
	Progress int    `json:"progress,omitempty"`
	Size     string `json:"size"`
	Hero     bool   `json:"hero,omitempty"`
}

// Snapshot is a read-only copy of the battle for rendering; mutating it
// does not touch the encounter.
type Snapshot struct {
	Turn     int                           `json:"turn"`
	Active   string                        `json:"active"`
	State    string                        `json:"state"`
	Terminal string                        `json:"terminal"`
	Player   [GridSize][GridSize]*CellInfo `json:"player"`
	Enemy    [GridSize][GridSize]*CellInfo `json:"enemy"`
}

func (e *Encounter) State() Snapshot {
	s := Snapshot{
		Turn:     e.Turn,
		Active:   e.Active.String(),
		State:    e.state.String(),
		Terminal: e.term.String(),
	}
	fill := func(g *Grid, out *[GridSize][GridSize]*CellInfo) {
		for r := 0; r < GridSize; r++ {
			for c := 0; c < GridSize; c++ {
				u := g.At(Cell{r, c})
				if u == nil {
					continue
				}
				size := "1x1"
				if u.Size == Size2x2 {
					size = "2x2"
				}
				out[r][c] = &CellInfo{
					ID:       u.ID,
					Name:     u.Name,
					HP:       u.HP,
					MaxHP:    u.MaxHP,
					Tier:     u.Tier,
					Progress: u.Progress,
					Size:     size,
					Hero:     u.Hero != nil,
				}
			}
		}
	}
	fill(e.PlayerGrid, &s.Player)
	fill(e.EnemyGrid, &s.Enemy)
	return s
}
