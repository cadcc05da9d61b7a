package battle

import "encoding/json"

// Event is one entry of the recorded battle log, consumed by the CLI and
// the websocket service for replay and rendering.
type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
