package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Moves
	IsMoveValid(card *Card, dest *Pile) bool
	RequestMove(card *Card, dest *Pile) MoveResult
	ResolveDrop(card *Card, candidates []*Pile) *Pile
	DraggableRun(card *Card) []*Card
	PossibleMoves() []PossibleMove

	// Stock
	ClickCard(card *Card) MoveResult
	DrawFromStock() MoveResult
	RefillStockFromDiscard() MoveResult

	// Lifecycle and state
	IsGameWon() bool
	Restart() MoveResult
	Snapshot() *GameState
	Subscribe(l Listener)

	// Lookup
	FindCard(code string) (*Card, error)
	Pile(id PileID) (*Pile, error)
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialise access.
type GameEngine struct {
	seed int64
	rng  *rand.Rand
	deck *Deck
	deal int

	stock       *Pile
	discard     *Pile
	foundations []*Pile
	tableau     []*Pile
	piles       map[PileID]*Pile
	cards       map[string]*Card

	wonNotified bool
	message     string

	listeners []Listener
	pending   []Event

	history    []MoveHistoryEntry
	current    []MoveHistoryEntry
	totalMoves int
}

// NewEngine creates an engine and deals the first game
func NewEngine(opts Options) (*GameEngine, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	seed := resolveSeed(opts)
	e := &GameEngine{
		seed: seed,
		rng:  newRand(seed),
	}
	e.initPiles()
	e.newGame()
	e.message = "New game dealt."
	return e, nil
}

// NewEngineWithDefaults creates an engine with a clock-based seed
func NewEngineWithDefaults() *GameEngine {
	e, _ := NewEngine(Options{})
	return e
}

func (e *GameEngine) initPiles() {
	e.stock = NewPile(StockID, Stock, StockGap)
	e.discard = NewPile(DiscardID, Discard, StockGap)
	e.piles = map[PileID]*Pile{
		StockID:   e.stock,
		DiscardID: e.discard,
	}

	e.foundations = make([]*Pile, NumFoundations)
	for i := range e.foundations {
		p := NewPile(FoundationID(i), Foundation, FoundationGap)
		e.foundations[i] = p
		e.piles[p.ID()] = p
	}

	e.tableau = make([]*Pile, NumTableau)
	for i := range e.tableau {
		p := NewPile(TableauID(i), Tableau, TableauGap)
		e.tableau[i] = p
		e.piles[p.ID()] = p
	}
}

// newGame builds and shuffles a fresh deck, then deals it
func (e *GameEngine) newGame() {
	e.deck = NewDeck()
	e.deck.Shuffle(e.rng)

	e.cards = make(map[string]*Card, DeckSize)
	for _, c := range e.deck.Cards() {
		e.cards[c.Code()] = c
	}

	e.dealCards()
	e.deck = nil
	e.deal++
	e.wonNotified = false
}

// dealCards deals the triangular tableau and puts the rest on the stock.
// Tableau pile i gets i+1 cards with only the last one face up.
func (e *GameEngine) dealCards() {
	cards := e.deck.Cards()
	next := 0
	for i := 0; i < NumTableau; i++ {
		for j := 0; j <= i; j++ {
			card := cards[next]
			next++
			if j == i {
				card.Flip()
			}
			e.tableau[i].AddCard(card)
		}
	}
	for _, card := range cards[next:] {
		e.stock.AddCard(card)
	}
}

// Restart clears every pile and deals a new game. Cumulative history survives,
// the current segment does not.
func (e *GameEngine) Restart() MoveResult {
	e.begin()
	for _, p := range e.allPiles() {
		p.Clear()
	}
	e.newGame()

	e.current = nil
	e.addToHistory(ActionRestart, "", "", "", nil, true)

	msg := "Game restarted."
	e.emit(Event{Type: EventGameRestarted, Message: msg})
	return e.finish(MoveResult{Action: ActionRestart, Accepted: true, Message: msg})
}

// IsGameWon reports whether every foundation holds a complete suit
func (e *GameEngine) IsGameWon() bool {
	for _, p := range e.foundations {
		if p.NumOfCards() != SuitSize {
			return false
		}
	}
	return true
}

// Seed returns the seed the engine's shuffles derive from
func (e *GameEngine) Seed() int64 { return e.seed }

// Deal returns how many games have been dealt, starting at 1
func (e *GameEngine) Deal() int { return e.deal }

func (e *GameEngine) Stock() *Pile   { return e.stock }
func (e *GameEngine) Discard() *Pile { return e.discard }

// Foundations returns the four foundation piles
func (e *GameEngine) Foundations() []*Pile {
	out := make([]*Pile, len(e.foundations))
	copy(out, e.foundations)
	return out
}

// Tableau returns the seven tableau piles
func (e *GameEngine) Tableau() []*Pile {
	out := make([]*Pile, len(e.tableau))
	copy(out, e.tableau)
	return out
}

// Piles returns all 13 piles: stock, discard, foundations, tableau
func (e *GameEngine) Piles() []*Pile {
	return e.allPiles()
}

func (e *GameEngine) allPiles() []*Pile {
	out := make([]*Pile, 0, 2+NumFoundations+NumTableau)
	out = append(out, e.stock, e.discard)
	out = append(out, e.foundations...)
	out = append(out, e.tableau...)
	return out
}

// Pile looks a pile up by ID
func (e *GameEngine) Pile(id PileID) (*Pile, error) {
	parsed, err := ParsePileID(string(id))
	if err != nil {
		return nil, err
	}
	return e.piles[parsed], nil
}

// FindCard looks a card of the current deal up by its code
func (e *GameEngine) FindCard(code string) (*Card, error) {
	suit, rank, err := ParseCardCode(code)
	if err != nil {
		return nil, err
	}
	card, ok := e.cards[RankLabel(rank)+suit.Letter()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, code)
	}
	return card, nil
}

// owns reports whether the card belongs to the current deal
func (e *GameEngine) owns(c *Card) bool {
	return c != nil && e.cards[c.Code()] == c
}

// ownsPile reports whether the pile is one of this engine's piles
func (e *GameEngine) ownsPile(p *Pile) bool {
	return p != nil && e.piles[p.ID()] == p
}

// Snapshot returns a serialisable copy of the board and history
func (e *GameEngine) Snapshot() *GameState {
	piles := e.allPiles()
	state := &GameState{
		Seed:              e.seed,
		Deal:              e.deal,
		Piles:             make([]PileState, len(piles)),
		Won:               e.IsGameWon(),
		Message:           e.message,
		MoveHistory:       append([]MoveHistoryEntry{}, e.history...),
		TotalMoves:        e.totalMoves,
		CurrentMoves:      append([]MoveHistoryEntry{}, e.current...),
		CurrentMovesCount: len(e.current),
	}
	for i, p := range piles {
		state.Piles[i] = p.state()
	}
	return state
}

// GetMoveHistory returns the cumulative history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last recorded command, or nil
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// CheckInvariants verifies that the piles hold exactly the 52 cards of one
// deck, each once, and that every card points back at its pile.
func (e *GameEngine) CheckInvariants() error {
	seen := make(map[string]bool, DeckSize)
	var problems []string
	for _, p := range e.allPiles() {
		for _, c := range p.cards {
			code := c.Code()
			if seen[code] {
				problems = append(problems, "duplicate "+code)
			}
			seen[code] = true
			if c.pile != p {
				problems = append(problems, fmt.Sprintf("%s is in %s but points elsewhere", code, p.id))
			}
			if e.cards[code] != c {
				problems = append(problems, code+" is not a card of the current deal")
			}
		}
	}
	if len(seen) != DeckSize {
		problems = append(problems, fmt.Sprintf("expected %d cards, found %d", DeckSize, len(seen)))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invariant violated: %s", strings.Join(problems, "; "))
	}
	return nil
}
