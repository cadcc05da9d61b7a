package battle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"beastgrid/internal/config"
)

// Catalog resolves creature type names to fresh battle units. Definitions
// come from the YAML registry; every Spawn is an independent instance.
type Catalog struct {
	defs map[string]config.CreatureDef
}

func NewCatalog(cc *config.CreaturesConfig, bc *config.BossesConfig) (*Catalog, error) {
	c := &Catalog{defs: map[string]config.CreatureDef{}}
	add := func(defs []config.CreatureDef) error {
		for _, d := range defs {
			if d.Name == "" {
				return fmt.Errorf("creature definition without a name")
			}
			if _, dup := c.defs[d.Name]; dup {
				return fmt.Errorf("duplicate creature %q", d.Name)
			}
			// Validate eagerly so bad data fails at load, not mid-battle.
			if _, err := buildAttacks(d.Attacks); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			if _, err := parseAbilities(d.Abilities); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			c.defs[d.Name] = d
		}
		return nil
	}
	if cc != nil {
		if err := add(cc.Creatures); err != nil {
			return nil, err
		}
	}
	if bc != nil {
		if err := add(bc.Bosses); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.defs))
	for name := range c.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Spawn builds a new unit of the named type for the given team.
func (c *Catalog) Spawn(name string, team Team) (*Unit, error) {
	d, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("unknown creature %q", name)
	}
	attacks, err := buildAttacks(d.Attacks)
	if err != nil {
		return nil, err
	}
	abilities, err := parseAbilities(d.Abilities)
	if err != nil {
		return nil, err
	}
	size := Size1x1
	if d.Size == "2x2" {
		size = Size2x2
	}
	return &Unit{
		ID:              "u_" + uuid.NewString()[:8],
		Name:            d.Name,
		Team:            team,
		Size:            size,
		HP:              d.MaxHP,
		MaxHP:           d.MaxHP,
		Defense:         d.Defense,
		Dodge:           d.Dodge,
		Resistance:      d.Resistance,
		Efficacy:        d.ConversionEfficacy,
		Attacks:         attacks,
		Abilities:       abilities,
		BaseRequirement: d.BaseRequirement,
		TierBonuses:     d.TierBonuses,
		Debuffs:         map[StatusKind]int{},
	}, nil
}

func buildAttacks(defs []config.AttackDef) ([]Attack, error) {
	var out []Attack
	for _, d := range defs {
		atk, err := buildAttack(d)
		if err != nil {
			return nil, err
		}
		out = append(out, atk)
	}
	return out, nil
}

func buildAttack(d config.AttackDef) (Attack, error) {
	t, err := ParseAttackType(d.Type)
	if err != nil {
		return Attack{}, err
	}
	abilities, err := parseAbilities(d.Abilities)
	if err != nil {
		return Attack{}, err
	}
	atk := Attack{Type: t, Damage: d.Damage, Abilities: abilities}
	if t == Ranged {
		min, max, err := parseRange(d.Range)
		if err != nil {
			return Attack{}, err
		}
		atk.RangeMin, atk.RangeMax = min, max
	}
	return atk, nil
}

// parseRange reads a "1-2" style inclusive column range. Ranged attacks
// without one default to 1-3.
func parseRange(s string) (int, int, error) {
	if s == "" {
		return 1, 3, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad range %q", s)
	}
	min, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("bad range %q", s)
	}
	max, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("bad range %q", s)
	}
	if min > max || min < 0 {
		return 0, 0, fmt.Errorf("bad range %q", s)
	}
	return min, max, nil
}
