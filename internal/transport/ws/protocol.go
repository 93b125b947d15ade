package ws

import (
	"encoding/json"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// Message types.
const (
	TypeHello  = "HELLO"
	TypeToggle = "TOGGLE"
	TypeReset  = "RESET"
	TypeState  = "STATE"
	TypeError  = "ERROR"
)

// ClientMsg is any message a client sends. Fields not used by Type are ignored.
type ClientMsg struct {
	Type  string `json:"type"`
	Pack  string `json:"pack,omitempty"`
	Level int    `json:"level,omitempty"`
	Index int    `json:"index"`
}

// StateMsg carries a session snapshot.
type StateMsg struct {
	Type string `json:"type"`
	Pack string `json:"pack"`
	puzzle.Snapshot
}

// ErrorMsg reports a rejected request. The connection stays open.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func decodeClient(b []byte) (ClientMsg, error) {
	var m ClientMsg
	err := json.Unmarshal(b, &m)
	return m, err
}

func encodeState(pack string, snap puzzle.Snapshot) ([]byte, error) {
	return json.Marshal(StateMsg{Type: TypeState, Pack: pack, Snapshot: snap})
}

func encodeError(msg string) ([]byte, error) {
	return json.Marshal(ErrorMsg{Type: TypeError, Message: msg})
}
