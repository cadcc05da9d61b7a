package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"beastgrid/internal/battle"
	"beastgrid/internal/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type server struct {
	catalog *battle.Catalog
	hero    *config.HeroConfig
}

// clientMsg is one intent from the connected client.
type clientMsg struct {
	Type   string `json:"type"` // attack | convert | move | flee | state
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	UnitID string `json:"unit_id"`
	DRow   int    `json:"drow"`
	DCol   int    `json:"dcol"`
}

type serverMsg struct {
	Type    string           `json:"type"` // outcome | state | error
	Error   string           `json:"error,omitempty"`
	Outcome *battle.Outcome  `json:"outcome,omitempty"`
	State   *battle.Snapshot `json:"state,omitempty"`
}

func main() {
	var addr, cfgDir string
	flag.StringVar(&addr, "addr", ":8090", "listen address")
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.Parse()

	cc, bc, hc, err := config.LoadAll(cfgDir)
	if err != nil {
		log.Fatal(err)
	}
	catalog, err := battle.NewCatalog(cc, bc)
	if err != nil {
		log.Fatal(err)
	}

	s := &server{catalog: catalog, hero: hc}
	http.HandleFunc("/ws", s.handleWS)
	log.Printf("arenasvc listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

// handleWS runs one encounter per connection. The engine itself is
// turn-synchronous, so a single read loop answering each intent in place
// is all the concurrency this needs.
func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	seed := time.Now().UnixNano()
	if q := r.URL.Query().Get("seed"); q != "" {
		fmt.Sscan(q, &seed)
	}
	enemies := r.URL.Query().Get("enemies")
	if enemies == "" {
		enemies = "Wolf,Wolf,Goblin Pikeman"
	}
	party := r.URL.Query().Get("party")
	if party == "" {
		party = "Wolf,Lion"
	}

	enc, err := s.newEncounter(party, enemies, seed)
	if err != nil {
		writeMsg(conn, serverMsg{Type: "error", Error: err.Error()})
		return
	}
	state := enc.State()
	writeMsg(conn, serverMsg{Type: "state", State: &state})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var in clientMsg
		if err := json.Unmarshal(message, &in); err != nil {
			writeMsg(conn, serverMsg{Type: "error", Error: "bad message"})
			continue
		}
		if in.Type == "state" {
			state := enc.State()
			writeMsg(conn, serverMsg{Type: "state", State: &state})
			continue
		}
		intent, err := toIntent(in)
		if err != nil {
			writeMsg(conn, serverMsg{Type: "error", Error: err.Error()})
			continue
		}
		out, err := enc.SubmitAction(intent)
		if err != nil {
			writeMsg(conn, serverMsg{Type: "error", Error: err.Error()})
			continue
		}
		writeMsg(conn, serverMsg{Type: "outcome", Outcome: out})
		if enc.Terminal() != battle.InProgress {
			return
		}
	}
}

func toIntent(in clientMsg) (battle.Intent, error) {
	switch in.Type {
	case "attack":
		return battle.Intent{Kind: battle.ActionAttack, Target: battle.Cell{Row: in.Row, Col: in.Col}}, nil
	case "convert":
		return battle.Intent{Kind: battle.ActionConvert, Target: battle.Cell{Row: in.Row, Col: in.Col}}, nil
	case "move":
		return battle.Intent{
			Kind:   battle.ActionMove,
			UnitID: in.UnitID,
			Dir:    battle.Delta{DRow: in.DRow, DCol: in.DCol},
		}, nil
	case "flee":
		return battle.Intent{Kind: battle.ActionFlee}, nil
	}
	return battle.Intent{}, fmt.Errorf("unknown intent type %q", in.Type)
}

func (s *server) newEncounter(party, enemies string, seed int64) (*battle.Encounter, error) {
	player := []battle.Placement{{Unit: battle.NewHero(s.hero), At: battle.Cell{Row: 1, Col: 1}}}
	slots := []battle.Cell{
		{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2},
		{Row: 0, Col: 1}, {Row: 2, Col: 1},
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
	}
	var err error
	if player, err = s.appendLineup(player, battle.TeamPlayer, party, slots); err != nil {
		return nil, err
	}
	enemySlots := []battle.Cell{
		{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2},
		{Row: 2, Col: 1}, {Row: 0, Col: 1},
		{Row: 2, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 0},
	}
	var enemy []battle.Placement
	if enemy, err = s.appendLineup(enemy, battle.TeamEnemy, enemies, enemySlots); err != nil {
		return nil, err
	}
	return battle.NewEncounter(player, enemy, seed)
}

func (s *server) appendLineup(out []battle.Placement, team battle.Team, names string, slots []battle.Cell) ([]battle.Placement, error) {
	i := 0
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		u, err := s.catalog.Spawn(name, team)
		if err != nil {
			return nil, err
		}
		if u.Size == battle.Size2x2 {
			out = append(out, battle.Placement{Unit: u, At: battle.Cell{Row: 0, Col: 0}})
			continue
		}
		if i >= len(slots) {
			return nil, fmt.Errorf("no free slot for %s", name)
		}
		out = append(out, battle.Placement{Unit: u, At: slots[i]})
		i++
	}
	return out, nil
}

func writeMsg(conn *websocket.Conn, msg serverMsg) {
	b, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, b)
}
