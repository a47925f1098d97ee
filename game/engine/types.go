package engine

import "fmt"

// Suit is one of the four French suits
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in deck-construction order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Color is the color of a suit
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// PileType identifies the placement rules a pile follows
type PileType string

const (
	Stock      PileType = "stock"
	Discard    PileType = "discard"
	Foundation PileType = "foundation"
	Tableau    PileType = "tableau"
)

const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13

	SuitSize       = 13
	DeckSize       = 52
	NumFoundations = 4
	NumTableau     = 7
	// StockAfterDeal is what is left for the stock once the tableau is dealt.
	StockAfterDeal = DeckSize - NumTableau*(NumTableau+1)/2

	// Display gaps between stacked cards. Renderers may use them, the rules never do.
	StockGap      = 1
	FoundationGap = 0
	TableauGap    = 30
)

// String returns the lower-case suit name
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Letter returns the single-letter suit code used in card codes
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return "?"
}

// Symbol returns the unicode pip for the suit
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

// Color returns red for diamonds and hearts, black otherwise
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// CardState is the serialisable view of a card
type CardState struct {
	Code   string `json:"code"`
	Rank   int    `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Color  Color  `json:"color,omitempty"`
	FaceUp bool   `json:"face_up"`
}

// PileState is the serialisable view of a pile, cards bottom to top
type PileState struct {
	ID    PileID      `json:"id"`
	Type  PileType    `json:"type"`
	Gap   float64     `json:"gap"`
	Cards []CardState `json:"cards"`
}

// GameState is a snapshot of the whole board
type GameState struct {
	Seed        int64              `json:"seed"`
	Deal        int                `json:"deal"`
	Piles       []PileState        `json:"piles"`
	Won         bool               `json:"won"`
	Message     string             `json:"message"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves holds only the moves of the current deal. It is cleared on
	// restart while MoveHistory stays cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// Pile returns the snapshot of the pile with the given ID, or nil
func (gs *GameState) Pile(id PileID) *PileState {
	for i := range gs.Piles {
		if gs.Piles[i].ID == id {
			return &gs.Piles[i]
		}
	}
	return nil
}

// Redacted returns a copy with the identity of face-down cards removed, for
// clients that should not see hidden cards.
func (gs *GameState) Redacted() *GameState {
	out := *gs
	out.Piles = make([]PileState, len(gs.Piles))
	for i, p := range gs.Piles {
		cards := make([]CardState, len(p.Cards))
		for j, c := range p.Cards {
			if c.FaceUp {
				cards[j] = c
			} else {
				cards[j] = CardState{Code: HiddenCode}
			}
		}
		p.Cards = cards
		out.Piles[i] = p
	}
	return &out
}

// HiddenCode stands in for the code of a redacted face-down card
const HiddenCode = "##"

// Action names recorded in the move history
const (
	ActionMove    = "move"
	ActionClick   = "click"
	ActionDraw    = "draw"
	ActionRefill  = "refill"
	ActionRestart = "restart"
)

// MoveHistoryEntry represents a single command in the game history
type MoveHistoryEntry struct {
	Action     string   `json:"action"`
	Card       string   `json:"card,omitempty"`
	From       PileID   `json:"from,omitempty"`
	To         PileID   `json:"to,omitempty"`
	Cards      []string `json:"cards,omitempty"`
	Success    bool     `json:"success"`
	Timestamp  int64    `json:"timestamp"`
	MoveNumber int      `json:"move_number"`
}

// RejectReason explains why a command did not change the board
type RejectReason string

const (
	ReasonUnknownCard   RejectReason = "unknown_card"
	ReasonNoDestination RejectReason = "no_destination"
	ReasonFaceDown      RejectReason = "face_down"
	ReasonInStock       RejectReason = "in_stock"
	ReasonSamePile      RejectReason = "same_pile"
	ReasonIllegal       RejectReason = "illegal_placement"
	ReasonNotClickable  RejectReason = "not_clickable"
	ReasonNotTopCard    RejectReason = "not_top_card"
	ReasonEmpty         RejectReason = "nothing_to_draw"
)

// MoveResult is the outcome of one engine command
type MoveResult struct {
	Action   string       `json:"action"`
	Accepted bool         `json:"accepted"`
	Card     string       `json:"card,omitempty"`
	From     PileID       `json:"from,omitempty"`
	To       PileID       `json:"to,omitempty"`
	Cards    []string     `json:"cards,omitempty"` // relocated cards, bottom first
	Flipped  string       `json:"flipped,omitempty"`
	Reason   RejectReason `json:"reason,omitempty"`
	Message  string       `json:"message"`
	Won      bool         `json:"won"`
	Events   []Event      `json:"events,omitempty"`
}

// PossibleMove is a single legal drag on the current board
type PossibleMove struct {
	Card  string `json:"card"`
	From  PileID `json:"from"`
	To    PileID `json:"to"`
	Cards int    `json:"cards"`
}
