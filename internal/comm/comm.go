package comm

import (
	"encoding/json"
)

// MinSeedLength is enforced at every boundary; shorter seeds never reach a
// store or a watch registration.
const MinSeedLength = 4

// Sync message types carried over the broadcast channel.
const (
	TypeNumberDrawn  = "NUMBER_DRAWN"
	TypeReset        = "RESET"
	TypeSyncRequest  = "SYNC_REQUEST"
	TypeSyncResponse = "SYNC_RESPONSE"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "sync"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// GameState is the server-visible record for one session seed. LastUpdate is
// Unix milliseconds and never decreases across writes for a seed.
type GameState struct {
	DrawnNumbers    []int    `json:"drawnNumbers"`
	CurrentNumber   *int     `json:"currentNumber"`
	LastUpdate      int64    `json:"lastUpdate"`
	NumberOfPlayers int      `json:"numberOfPlayers,omitempty"`
	CardsPerPlayer  int      `json:"cardsPerPlayer,omitempty"`
	PlayerNames     []string `json:"playerNames,omitempty"`
}

// SyncMessage is one broadcast-channel event for a session. Consumers drop
// messages whose Seed does not match their own.
type SyncMessage struct {
	Type            string   `json:"type"`
	Seed            string   `json:"seed"`
	DrawnNumbers    []int    `json:"drawnNumbers"`
	CurrentNumber   *int     `json:"currentNumber,omitempty"`
	NumberOfPlayers int      `json:"numberOfPlayers,omitempty"`
	CardsPerPlayer  int      `json:"cardsPerPlayer,omitempty"`
	PlayerNames     []string `json:"playerNames,omitempty"`
}

// WatchRequest is the payload a socket client sends to follow a seed.
type WatchRequest struct {
	Seed string `json:"seed"`
}

// PushResponse acknowledges a successful state write.
type PushResponse struct {
	Ok         bool  `json:"ok"`
	LastUpdate int64 `json:"lastUpdate"`
}

// ErrorResponse is the boundary-level validation failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}
