package engine

// EventType names an outbound notification for the presentation layer
type EventType string

const (
	EventMoveAccepted  EventType = "move_accepted"
	EventMoveRejected  EventType = "move_rejected"
	EventCardFlipped   EventType = "card_flipped"
	EventStockDrawn    EventType = "stock_drawn"
	EventStockRefilled EventType = "stock_refilled"
	EventGameWon       EventType = "game_won"
	EventGameRestarted EventType = "game_restarted"
)

// Event describes one change the presentation layer may want to animate
type Event struct {
	Type    EventType    `json:"type"`
	Cards   []string     `json:"cards,omitempty"`
	From    PileID       `json:"from,omitempty"`
	To      PileID       `json:"to,omitempty"`
	FaceUp  bool         `json:"face_up,omitempty"`
	Reason  RejectReason `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Listener receives events synchronously, in the order they happen
type Listener func(Event)

// Subscribe registers a listener for every future event
func (e *GameEngine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// begin starts collecting events for a new command
func (e *GameEngine) begin() {
	e.pending = nil
}

func (e *GameEngine) emit(ev Event) {
	e.pending = append(e.pending, ev)
	for _, l := range e.listeners {
		l(ev)
	}
}

// finish attaches the collected events to the result
func (e *GameEngine) finish(res MoveResult) MoveResult {
	res.Events = e.pending
	res.Won = e.IsGameWon()
	e.pending = nil
	if res.Message != "" {
		e.message = res.Message
	}
	return res
}
