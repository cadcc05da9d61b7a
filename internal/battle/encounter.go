package battle

import (
	"fmt"
	"math/rand"

	"beastgrid/internal/util"
)

type TurnState int

const (
	AwaitingPlayerAction TurnState = iota
	Resolving
	CheckingEnd
	EncounterWon
	EncounterFled
	EncounterLost
)

func (s TurnState) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case CheckingEnd:
		return "checking_end"
	case EncounterWon:
		return "won"
	case EncounterFled:
		return "fled"
	case EncounterLost:
		return "lost"
	default:
		return "awaiting_player_action"
	}
}

type Terminal int

const (
	InProgress Terminal = iota
	Won
	Fled
	Lost
)

func (t Terminal) String() string {
	switch t {
	case Won:
		return "won"
	case Fled:
		return "fled"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}

type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionConvert
	ActionMove
	ActionFlee
)

func (a ActionKind) String() string {
	switch a {
	case ActionConvert:
		return "convert"
	case ActionMove:
		return "move"
	case ActionFlee:
		return "flee"
	default:
		return "attack"
	}
}

// Intent is one declared team action. Attack and Convert name a cell on
// the opposing grid; Move names one of the acting team's units and an
// orthogonal step. Any accepted intent consumes the whole team's turn.
type Intent struct {
	Kind   ActionKind `json:"kind"`
	Target Cell       `json:"target"`
	UnitID string     `json:"unit_id,omitempty"`
	Dir    Delta      `json:"dir,omitempty"`
}

// RecruitSink receives units leaving the battle alive: fully converted
// enemies and allies displaced by growth. The pool outlives the encounter.
type RecruitSink interface {
	Offer(u *Unit)
}

type RecruitPool struct {
	Units []*Unit
}

func (p *RecruitPool) Offer(u *Unit) { p.Units = append(p.Units, u) }

// Policy decides the non-player team's action. Implementations must be
// pure given the encounter RNG.
type Policy interface {
	Choose(e *Encounter, team Team) Intent
}

type UnitRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ref(u *Unit) UnitRef { return UnitRef{ID: u.ID, Name: u.Name} }

// HitRecord describes one attacker-defender interaction of a resolved turn.
type HitRecord struct {
	Attacker   UnitRef  `json:"attacker"`
	Defender   UnitRef  `json:"defender"`
	AttackType string   `json:"attack_type"`
	Cell       Cell     `json:"cell"`
	Damage     int      `json:"damage"`
	Conversion int      `json:"conversion,omitempty"`
	Evaded     bool     `json:"evaded,omitempty"`
	Immune     bool     `json:"immune,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
	Lifelink   int      `json:"lifelink,omitempty"`
}

// TurnReport is the resolved outcome of one team's turn.
type TurnReport struct {
	Team      string      `json:"team"`
	Action    string      `json:"action"`
	Target    *Cell       `json:"target,omitempty"`
	NoOp      bool        `json:"noop,omitempty"`
	Hits      []HitRecord `json:"hits,omitempty"`
	Deaths    []UnitRef   `json:"deaths,omitempty"`
	Recruited []UnitRef   `json:"recruited,omitempty"`
}

// Outcome is returned by SubmitAction: the player phase, the enemy phase
// that follows automatically while the battle is live, and the new state.
type Outcome struct {
	Player   *TurnReport `json:"player,omitempty"`
	Enemy    *TurnReport `json:"enemy,omitempty"`
	Turn     int         `json:"turn"`
	State    string      `json:"state"`
	Terminal string      `json:"terminal"`
}

// Encounter owns the two grids, turn order and the seeded RNG for the
// duration of one battle. A full turn resolves as one atomic step.
type Encounter struct {
	PlayerGrid *Grid
	EnemyGrid  *Grid

	Turn   int
	Active Team

	Rng      *rand.Rand
	Policy   Policy
	Recruits RecruitSink
	OnTierUp func(u *Unit, tier int)

	hero   *Unit
	state  TurnState
	term   Terminal
	events []Event
	record bool
}

type Placement struct {
	Unit *Unit
	At   Cell
}

// NewEncounter places both teams and fixes turn order: the player acts
// first unless any enemy carries Haste. The haste check runs once here,
// never per turn.
func NewEncounter(player, enemy []Placement, seed int64) (*Encounter, error) {
	e := &Encounter{
		PlayerGrid: NewGrid(TeamPlayer),
		EnemyGrid:  NewGrid(TeamEnemy),
		Rng:        util.New(seed),
		Policy:     GreedyPolicy{},
		Recruits:   &RecruitPool{},
		state:      AwaitingPlayerAction,
		record:     true,
	}
	place := func(g *Grid, team Team, ps []Placement) error {
		for _, p := range ps {
			p.Unit.Team = team
			if err := g.Place(p.Unit, p.At); err != nil {
				return fmt.Errorf("place %s at %v: %w", p.Unit.Name, p.At, err)
			}
			if p.Unit.Hero != nil {
				e.hero = p.Unit
			}
			e.emit(Event{Turn: 0, Type: "Spawn", Payload: map[string]any{
				"id": p.Unit.ID, "name": p.Unit.Name, "team": team.String(),
				"row": p.At.Row, "col": p.At.Col,
				"hp": p.Unit.HP, "max_hp": p.Unit.MaxHP,
			}})
		}
		return nil
	}
	if err := place(e.PlayerGrid, TeamPlayer, player); err != nil {
		return nil, err
	}
	if err := place(e.EnemyGrid, TeamEnemy, enemy); err != nil {
		return nil, err
	}

	e.Active = TeamPlayer
	for _, u := range e.EnemyGrid.Units() {
		if u.Has(Haste) {
			e.Active = TeamEnemy
			break
		}
	}
	e.emit(Event{Turn: 0, Type: "EncounterStart", Payload: map[string]any{
		"first": e.Active.String(),
	}})

	if e.Active == TeamEnemy {
		e.runEnemyTurn(nil)
		if e.term == InProgress {
			e.Active = TeamPlayer
		}
	}
	return e, nil
}

func (e *Encounter) Terminal() Terminal { return e.term }
func (e *Encounter) TurnState() TurnState { return e.state }

// Events returns the recorded battle log.
func (e *Encounter) Events() []Event { return e.events }

// SetRecording toggles event capture; batch simulations turn it off.
func (e *Encounter) SetRecording(on bool) { e.record = on }

func (e *Encounter) emit(ev Event) {
	if e.record {
		e.events = append(e.events, ev)
	}
}

func (e *Encounter) gridOf(team Team) *Grid {
	if team == TeamPlayer {
		return e.PlayerGrid
	}
	return e.EnemyGrid
}

// heroFor returns the hero scores shielding a grid's units, nil when the
// hero is absent or on the other side.
func (e *Encounter) heroFor(g *Grid) *HeroScores {
	if e.hero == nil || g != e.PlayerGrid || len(e.PlayerGrid.CellsOf(e.hero)) == 0 {
		return nil
	}
	return e.hero.Hero
}

// SubmitAction validates and resolves the player team's turn, then, while
// the battle is still live, the enemy team's answer. Invalid intents are
// rejected before resolution and do not consume the turn.
func (e *Encounter) SubmitAction(intent Intent) (*Outcome, error) {
	if e.term != InProgress {
		return nil, fmt.Errorf("encounter is %s: %w", e.term, ErrInvalidIntent)
	}
	if err := e.validate(TeamPlayer, intent); err != nil {
		return nil, err
	}

	out := &Outcome{}
	e.state = Resolving

	if intent.Kind == ActionFlee {
		e.term = Fled
		e.state = EncounterFled
		e.finishBattle()
		out.Player = &TurnReport{Team: TeamPlayer.String(), Action: "flee"}
		e.emit(Event{Turn: e.Turn, Type: "Flee", Payload: nil})
		return e.fill(out), nil
	}

	out.Player = e.resolveTurn(TeamPlayer, intent)
	e.state = CheckingEnd
	e.checkEnd()

	if e.term == InProgress {
		e.runEnemyTurn(out)
	}
	if e.term == InProgress {
		e.Turn++
		e.state = AwaitingPlayerAction
		e.Active = TeamPlayer
	}
	return e.fill(out), nil
}

func (e *Encounter) fill(out *Outcome) *Outcome {
	out.Turn = e.Turn
	out.State = e.state.String()
	out.Terminal = e.term.String()
	return out
}

func (e *Encounter) runEnemyTurn(out *Outcome) {
	e.state = Resolving
	intent := e.Policy.Choose(e, TeamEnemy)
	report := e.resolveTurn(TeamEnemy, intent)
	if out != nil {
		out.Enemy = report
	}
	e.state = CheckingEnd
	e.checkEnd()
	if e.term == InProgress {
		e.state = AwaitingPlayerAction
	}
}

func (e *Encounter) validate(team Team, intent Intent) error {
	switch intent.Kind {
	case ActionFlee:
		return nil
	case ActionAttack, ActionConvert:
		if !intent.Target.InBounds() {
			return fmt.Errorf("target %v: %w", intent.Target, ErrInvalidIntent)
		}
		return nil
	case ActionMove:
		u := e.findUnit(e.gridOf(team), intent.UnitID)
		if u == nil {
			return fmt.Errorf("unit %q not on %s grid: %w", intent.UnitID, team, ErrInvalidIntent)
		}
		// Dry-run the step so an illegal move is rejected before it can
		// consume the turn.
		if err := e.gridOf(team).CanMove(u, intent.Dir); err != nil {
			return fmt.Errorf("move %s by %v: %w", intent.UnitID, intent.Dir, err)
		}
		return nil
	}
	return fmt.Errorf("unknown action %d: %w", intent.Kind, ErrInvalidIntent)
}

func (e *Encounter) findUnit(g *Grid, id string) *Unit {
	for _, u := range g.Units() {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (e *Encounter) resolveTurn(team Team, intent Intent) *TurnReport {
	e.Active = team
	report := &TurnReport{Team: team.String(), Action: intent.Kind.String()}
	switch intent.Kind {
	case ActionMove:
		// Player moves are dry-run in validate, so Move cannot fail here;
		// the no-op guard covers a policy emitting an illegal step.
		u := e.findUnit(e.gridOf(team), intent.UnitID)
		if u != nil {
			if err := e.gridOf(team).Move(u, intent.Dir); err == nil {
				e.emit(Event{Turn: e.Turn, Type: "Move", Payload: map[string]any{
					"id": u.ID, "drow": intent.Dir.DRow, "dcol": intent.Dir.DCol,
				}})
			} else {
				report.NoOp = true
			}
		}
	case ActionAttack:
		t := intent.Target
		report.Target = &t
		e.resolveStrike(team, t, false, report)
	case ActionConvert:
		t := intent.Target
		report.Target = &t
		e.resolveStrike(team, t, true, report)
	}
	if intent.Kind == ActionAttack {
		e.roamingMoves(team)
	}
	return report
}

// pendingEffect is one attacker-defender contribution computed against the
// frozen pre-turn state. Nothing mutates until every contribution exists.
type pendingEffect struct {
	attacker *Unit
	attack   Attack
	defender *Unit
	cell     Cell
	damage   int
	convert  int
	statuses []StatusKind
}

// resolveStrike runs the simultaneous team action: targeting per unit and
// attack, contribution math against the snapshot, one atomic apply pass,
// then a single death/conversion prune.
func (e *Encounter) resolveStrike(team Team, target Cell, convert bool, report *TurnReport) {
	own := e.gridOf(team)
	opp := e.gridOf(team.Opponent())
	defHero := e.heroFor(opp)
	convHero := e.heroFor(own)

	var pending []pendingEffect
	var performed []struct {
		unit *Unit
		atk  Attack
	}

	for _, u := range own.Units() {
		for _, atk := range u.Attacks {
			eligible, hitCells := ResolveTargets(own, opp, u, atk, target)
			if !eligible {
				continue
			}
			performed = append(performed, struct {
				unit *Unit
				atk  Attack
			}{u, atk})

			// A multi-cell defender covered by several hit cells of one
			// resolved attack is affected exactly once.
			seen := map[*Unit]bool{}
			for _, c := range hitCells {
				defender := opp.At(c)
				if defender == nil || seen[defender] {
					continue
				}
				seen[defender] = true

				p := pendingEffect{attacker: u, attack: atk, defender: defender, cell: c}
				if convert {
					p.convert = conversionPoints(u, atk, defender, convHero)
				} else {
					p.damage = damageAgainst(own, opp, u, atk, defender, defHero)
					for _, ab := range atk.Abilities {
						if kind, ok := riderStatus(ab.Kind); ok {
							p.statuses = append(p.statuses, kind)
						}
					}
				}
				pending = append(pending, p)
			}
		}
	}

	if len(performed) == 0 {
		report.NoOp = true
		e.emit(Event{Turn: e.Turn, Type: "NoOp", Payload: map[string]any{
			"team": team.String(), "row": target.Row, "col": target.Col,
		}})
		return
	}

	// Apply pass: evasion rolls happen here, in deterministic order.
	for _, p := range pending {
		rec := HitRecord{
			Attacker:   ref(p.attacker),
			Defender:   ref(p.defender),
			AttackType: p.attack.Type.String(),
			Cell:       p.cell,
		}
		if ev := p.defender.AbilityValue(Evasion); ev > 0 && e.Rng.Intn(100)+1 <= ev {
			rec.Evaded = true
			report.Hits = append(report.Hits, rec)
			e.emit(Event{Turn: e.Turn, Type: "Evade", Payload: map[string]any{
				"id": p.defender.ID, "attacker": p.attacker.ID,
			}})
			continue
		}

		if convert {
			rec.Conversion = p.convert
			p.defender.Progress += p.convert
			if p.defender.Progress > p.defender.MaxHP {
				p.defender.Progress = p.defender.MaxHP
			}
			report.Hits = append(report.Hits, rec)
			e.emit(Event{Turn: e.Turn, Type: "Convert", Payload: map[string]any{
				"id": p.defender.ID, "points": p.convert, "progress": p.defender.Progress,
			}})
			continue
		}

		if p.attack.Type == Melee && p.defender.Has(Flying) {
			rec.Immune = true
			report.Hits = append(report.Hits, rec)
			e.emit(Event{Turn: e.Turn, Type: "Immune", Payload: map[string]any{
				"id": p.defender.ID, "attacker": p.attacker.ID,
			}})
			continue
		}

		rec.Damage = p.damage
		p.defender.HP -= p.damage
		if p.defender.HP < 0 {
			p.defender.HP = 0
		}
		if p.attacker.Has(Lifelink) {
			rec.Lifelink = p.attacker.Heal(p.damage)
		}
		for _, kind := range p.statuses {
			p.defender.AddStatus(kind, 1)
			rec.Statuses = append(rec.Statuses, kind.String())
		}
		report.Hits = append(report.Hits, rec)
		e.emit(Event{Turn: e.Turn, Type: "Hit", Payload: map[string]any{
			"attacker": p.attacker.ID, "id": p.defender.ID,
			"type": p.attack.Type.String(), "dmg": p.damage, "hp": p.defender.HP,
		}})
	}

	// Per performed attack: consume one matching debuff stack, then column
	// healing for magic attackers that carry it.
	for _, pf := range performed {
		pf.unit.consumeStatuses(pf.atk.Type)
		if pf.atk.Type == Magic {
			if amount := pf.unit.AbilityValue(Healing); amount > 0 {
				e.healColumn(own, pf.unit, amount)
			}
		}
	}

	e.prune(opp, report)
}

// healColumn heals every ally sharing the healer's column, the healer
// included.
func (e *Encounter) healColumn(g *Grid, healer *Unit, amount int) {
	pos, ok := attackPosition(g, healer)
	if !ok {
		return
	}
	seen := map[*Unit]bool{}
	for row := 0; row < GridSize; row++ {
		ally := g.At(Cell{row, pos.Col})
		if ally == nil || seen[ally] {
			continue
		}
		seen[ally] = true
		if healed := ally.Heal(amount); healed > 0 {
			e.emit(Event{Turn: e.Turn, Type: "Heal", Payload: map[string]any{
				"id": ally.ID, "amount": healed, "hp": ally.HP, "source": healer.ID,
			}})
		}
	}
}

// prune removes defeated and fully converted units exactly once, after the
// whole turn's effects have landed.
func (e *Encounter) prune(g *Grid, report *TurnReport) {
	for _, u := range g.Units() {
		if u.HP <= 0 {
			g.Remove(u)
			report.Deaths = append(report.Deaths, ref(u))
			e.emit(Event{Turn: e.Turn, Type: "Death", Payload: map[string]any{
				"id": u.ID, "name": u.Name,
			}})
			continue
		}
		if u.MaxHP > 0 && u.Progress >= u.MaxHP {
			g.Remove(u)
			e.Recruits.Offer(u)
			report.Recruited = append(report.Recruited, ref(u))
			e.emit(Event{Turn: e.Turn, Type: "Recruit", Payload: map[string]any{
				"id": u.ID, "name": u.Name,
			}})
		}
	}
}

// roamingMoves gives every acting-side Roaming unit one random orthogonal
// step after its team's attack, the original boss quirk made data-driven.
func (e *Encounter) roamingMoves(team Team) {
	g := e.gridOf(team)
	for _, u := range g.Units() {
		if !u.Has(Roaming) {
			continue
		}
		dirs := append([]Delta(nil), orthogonal...)
		e.Rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
		for _, d := range dirs {
			if err := g.Move(u, d); err == nil {
				e.emit(Event{Turn: e.Turn, Type: "Roam", Payload: map[string]any{
					"id": u.ID, "drow": d.DRow, "dcol": d.DCol,
				}})
				break
			}
		}
	}
}

func (e *Encounter) checkEnd() {
	switch {
	case e.EnemyGrid.Empty():
		e.term = Won
		e.state = EncounterWon
		e.emit(Event{Turn: e.Turn, Type: "EncounterWon", Payload: nil})
		e.finishBattle()
	case e.PlayerGrid.Empty():
		e.term = Lost
		e.state = EncounterLost
		e.emit(Event{Turn: e.Turn, Type: "EncounterLost", Payload: nil})
		e.finishBattle()
	}
}

// finishBattle clears unconverted progress on every remaining unit and, on
// a win, advances progression for the surviving player creatures.
func (e *Encounter) finishBattle() {
	for _, u := range e.PlayerGrid.Units() {
		u.Progress = 0
	}
	for _, u := range e.EnemyGrid.Units() {
		u.Progress = 0
	}
	if e.term == Won {
		e.awardExperience()
	}
}

// damageAgainst is the full damage formula for one attacker-defender pair:
// max(1, effectiveAttack - activeDebuffPenalty - effectiveDefense), with
// Flying short-circuiting melee to zero.
func damageAgainst(own, opp *Grid, attacker *Unit, atk Attack, defender *Unit, defHero *HeroScores) int {
	if atk.Type == Melee && defender.Has(Flying) {
		return 0
	}
	power := EffectiveAttackDamage(own, attacker, atk)
	power -= attacker.statusPenalty(atk.Type)
	power -= EffectiveDefense(opp, defender, atk.Type, defHero)
	if power < 1 {
		power = 1
	}
	return power
}
