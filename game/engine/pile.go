package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownPile is returned when a pile ID does not name one of the 13 piles
var ErrUnknownPile = errors.New("unknown pile")

// PileID names one of the piles of a game
type PileID string

const (
	StockID   PileID = "stock"
	DiscardID PileID = "discard"
)

// FoundationID returns the ID of foundation pile i (0-3)
func FoundationID(i int) PileID {
	return PileID(fmt.Sprintf("%s-%d", Foundation, i))
}

// TableauID returns the ID of tableau pile i (0-6)
func TableauID(i int) PileID {
	return PileID(fmt.Sprintf("%s-%d", Tableau, i))
}

// ParsePileID validates a pile ID such as "stock" or "tableau-3"
func ParsePileID(s string) (PileID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch PileID(s) {
	case StockID, DiscardID:
		return PileID(s), nil
	}

	kind, idx, ok := strings.Cut(s, "-")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPile, s)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || strconv.Itoa(n) != idx {
		return "", fmt.Errorf("%w: %q", ErrUnknownPile, s)
	}
	switch PileType(kind) {
	case Foundation:
		if n >= 0 && n < NumFoundations {
			return FoundationID(n), nil
		}
	case Tableau:
		if n >= 0 && n < NumTableau {
			return TableauID(n), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPile, s)
}

// Pile is an ordered stack of cards, bottom first
type Pile struct {
	id    PileID
	kind  PileType
	gap   float64
	cards []*Card
}

// NewPile creates an empty pile. The type cannot change afterwards.
func NewPile(id PileID, kind PileType, gap float64) *Pile {
	return &Pile{id: id, kind: kind, gap: gap}
}

func (p *Pile) ID() PileID      { return p.id }
func (p *Pile) Type() PileType  { return p.kind }
func (p *Pile) Gap() float64    { return p.gap }
func (p *Pile) IsEmpty() bool   { return len(p.cards) == 0 }
func (p *Pile) NumOfCards() int { return len(p.cards) }

// Cards returns a copy of the pile's cards, bottom first
func (p *Pile) Cards() []*Card {
	out := make([]*Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// AddCard puts the card on top of the pile and makes the pile its owner
func (p *Pile) AddCard(c *Card) {
	p.cards = append(p.cards, c)
	c.pile = p
}

// TopCard returns the last card, or nil when the pile is empty
func (p *Pile) TopCard() *Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[len(p.cards)-1]
}

// IndexOf returns the position of c counted from the bottom, or -1
func (p *Pile) IndexOf(c *Card) int {
	for i, card := range p.cards {
		if card == c {
			return i
		}
	}
	return -1
}

// Run returns the card and every card stacked above it, bottom first.
// It returns nil if the card is not in the pile.
func (p *Pile) Run(c *Card) []*Card {
	idx := p.IndexOf(c)
	if idx < 0 {
		return nil
	}
	out := make([]*Card, len(p.cards)-idx)
	copy(out, p.cards[idx:])
	return out
}

// Clear empties the pile. Cleared cards no longer reference it.
func (p *Pile) Clear() {
	for _, c := range p.cards {
		if c.pile == p {
			c.pile = nil
		}
	}
	p.cards = nil
}

func (p *Pile) remove(c *Card) {
	idx := p.IndexOf(c)
	if idx < 0 {
		return
	}
	p.cards = append(p.cards[:idx], p.cards[idx+1:]...)
	c.pile = nil
}

func (p *Pile) state() PileState {
	cards := make([]CardState, len(p.cards))
	for i, c := range p.cards {
		cards[i] = c.state()
	}
	return PileState{ID: p.id, Type: p.kind, Gap: p.gap, Cards: cards}
}
