package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"beastgrid/internal/battle"
	"beastgrid/internal/config"
)

const maxTurns = 200

type simResult struct {
	Terminal  string          `json:"terminal"`
	Turns     int             `json:"turns"`
	Recruits  []string        `json:"recruits,omitempty"`
	ByUnit    map[string]int  `json:"damage_by_unit,omitempty"`
	Events    []battle.Event  `json:"events,omitempty"`
	FinalView battle.Snapshot `json:"final_view"`
}

func main() {
	var cfgDir, out, party, enemies string
	var seed int64
	var n int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&party, "party", "Wolf,Wolf,Lion,Frost Owl", "player creatures, comma separated")
	flag.StringVar(&enemies, "enemy", "Dragon King", "enemy creatures, comma separated")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()

	cc, bc, hc, err := config.LoadAll(cfgDir)
	if err != nil {
		panic(err)
	}
	catalog, err := battle.NewCatalog(cc, bc)
	if err != nil {
		panic(err)
	}

	if n <= 1 {
		res := runOne(catalog, hc, party, enemies, seed, saveLog)
		if err := os.WriteFile(out, battle.MarshalPretty(res), 0644); err != nil {
			panic(err)
		}
		fmt.Printf("Single arenasim finished. Terminal=%s, Turns=%d -> %s\n", res.Terminal, res.Turns, out)
		return
	}

	type stat struct {
		Won      int
		Lost     int
		SumTurns int
		Recruits map[string]int
	}
	st := stat{Recruits: map[string]int{}}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := 8
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				res := runOne(catalog, hc, party, enemies, seed+int64(workerID)*7919+int64(i), false)
				mu.Lock()
				switch res.Terminal {
				case "won":
					st.Won++
				case "lost":
					st.Lost++
				}
				st.SumTurns += res.Turns
				for _, name := range res.Recruits {
					st.Recruits[name]++
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := map[string]any{
		"runs":      n,
		"win_rate":  float64(st.Won) / float64(n),
		"loss_rate": float64(st.Lost) / float64(n),
		"avg_turns": float64(st.SumTurns) / float64(n),
		"recruits":  st.Recruits,
	}
	if err := os.WriteFile(out, battle.MarshalPretty(summary), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, out)
}

// runOne spawns both lineups, drives the player side with the same greedy
// policy the enemy uses, and plays until a terminal state or the turn cap.
func runOne(catalog *battle.Catalog, hc *config.HeroConfig, party, enemies string, seed int64, record bool) simResult {
	player := []battle.Placement{{Unit: battle.NewHero(hc), At: battle.Cell{Row: 1, Col: 1}}}
	player = append(player, lineup(catalog, battle.TeamPlayer, party, playerSlots(), nil)...)
	enemy := lineup(catalog, battle.TeamEnemy, enemies, enemySlots(), nil)

	enc, err := battle.NewEncounter(player, enemy, seed)
	if err != nil {
		panic(err)
	}
	enc.SetRecording(record)
	pool := &battle.RecruitPool{}
	enc.Recruits = pool

	script := battle.GreedyPolicy{}
	byUnit := map[string]int{}
	for enc.Terminal() == battle.InProgress && enc.Turn < maxTurns {
		out, err := enc.SubmitAction(script.Choose(enc, battle.TeamPlayer))
		if err != nil {
			panic(err)
		}
		if out.Player != nil {
			for _, h := range out.Player.Hits {
				byUnit[h.Attacker.Name] += h.Damage
			}
		}
	}

	res := simResult{
		Terminal:  enc.Terminal().String(),
		Turns:     enc.Turn,
		ByUnit:    byUnit,
		FinalView: enc.State(),
	}
	for _, u := range pool.Units {
		res.Recruits = append(res.Recruits, u.Name)
	}
	if record {
		res.Events = enc.Events()
	}
	return res
}

func lineup(catalog *battle.Catalog, team battle.Team, names string, slots []battle.Cell, out []battle.Placement) []battle.Placement {
	i := 0
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		u, err := catalog.Spawn(name, team)
		if err != nil {
			panic(err)
		}
		if u.Size == battle.Size2x2 {
			out = append(out, battle.Placement{Unit: u, At: battle.Cell{Row: 0, Col: 0}})
			continue
		}
		if i >= len(slots) {
			panic(fmt.Sprintf("no free slot for %s", name))
		}
		out = append(out, battle.Placement{Unit: u, At: slots[i]})
		i++
	}
	return out
}

// playerSlots fills the front column first, leaving (1,1) for the hero.
func playerSlots() []battle.Cell {
	return []battle.Cell{
		{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2},
		{Row: 0, Col: 1}, {Row: 2, Col: 1},
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
	}
}

// enemySlots fill back to front so a 2x2 boss placed at (0,0) keeps room.
func enemySlots() []battle.Cell {
	return []battle.Cell{
		{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2},
		{Row: 2, Col: 1}, {Row: 0, Col: 1},
		{Row: 2, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 0},
	}
}
