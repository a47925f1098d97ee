package service

import (
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	Seed           int64             `json:"seed"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveRequest describes a drop. To names the pile the card was dropped on;
// when it is empty the destination is resolved from Candidates, the piles the
// card overlapped.
type MoveRequest struct {
	Card       string   `json:"card"`
	To         string   `json:"to,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// MoveResult contains the result of any command that may change the board
type MoveResult struct {
	Success   bool                `json:"success"`
	Action    string              `json:"action"`
	Card      string              `json:"card,omitempty"`
	From      engine.PileID       `json:"from,omitempty"`
	To        engine.PileID       `json:"to,omitempty"`
	Cards     []string            `json:"cards,omitempty"`
	Flipped   string              `json:"flipped,omitempty"`
	Reason    engine.RejectReason `json:"reason,omitempty"`
	Message   string              `json:"message"`
	Won       bool                `json:"won"`
	GameState *engine.GameState   `json:"game_state"`
	Events    []GameEvent         `json:"events,omitempty"`
}

// GameEvent is an engine event stamped for delivery to clients
type GameEvent struct {
	ID        string              `json:"id"`
	Type      engine.EventType    `json:"type"`
	Cards     []string            `json:"cards,omitempty"`
	From      engine.PileID       `json:"from,omitempty"`
	To        engine.PileID       `json:"to,omitempty"`
	FaceUp    bool                `json:"face_up,omitempty"`
	Reason    engine.RejectReason `json:"reason,omitempty"`
	Message   string              `json:"message,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
	// Current limits the history to the current deal
	Current bool `json:"current"`
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)
