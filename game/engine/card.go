package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCard is returned when a card code does not name a card of the deck
var ErrUnknownCard = errors.New("unknown card")

var rankLabels = map[int]string{
	Ace:   "A",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

var rankNames = map[int]string{
	Ace:   "Ace",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
}

// Card is a single playing card. A card always belongs to at most one pile and
// knows which one.
type Card struct {
	rank   int
	suit   Suit
	faceUp bool
	pile   *Pile
}

// NewCard creates a face-down card that belongs to no pile
func NewCard(suit Suit, rank int) *Card {
	return &Card{rank: rank, suit: suit}
}

func (c *Card) Rank() int        { return c.rank }
func (c *Card) Suit() Suit       { return c.suit }
func (c *Card) Color() Color     { return c.suit.Color() }
func (c *Card) IsFaceUp() bool   { return c.faceUp }
func (c *Card) IsFaceDown() bool { return !c.faceUp }

// Pile returns the pile holding the card, nil if it was never placed
func (c *Card) Pile() *Pile { return c.pile }

// Flip turns the card over
func (c *Card) Flip() {
	c.faceUp = !c.faceUp
}

// MoveToPile takes the card out of its current pile and puts it on top of dest.
// It does not check whether the move is legal.
func (c *Card) MoveToPile(dest *Pile) {
	if c.pile != nil {
		c.pile.remove(c)
	}
	dest.AddCard(c)
}

// Code returns the short code of the card, e.g. "AS", "10H", "QD"
func (c *Card) Code() string {
	return RankLabel(c.rank) + c.suit.Letter()
}

// Label returns the code with the suit pip instead of its letter, e.g. "Q♠"
func (c *Card) Label() string {
	return RankLabel(c.rank) + c.suit.Symbol()
}

// String returns the card's long name, e.g. "Queen of spades"
func (c *Card) String() string {
	name, ok := rankNames[c.rank]
	if !ok {
		name = strconv.Itoa(c.rank)
	}
	return fmt.Sprintf("%s of %s", name, c.suit)
}

func (c *Card) state() CardState {
	return CardState{
		Code:   c.Code(),
		Rank:   c.rank,
		Suit:   c.suit.String(),
		Color:  c.Color(),
		FaceUp: c.faceUp,
	}
}

// IsOppositeColor reports whether one card is red and the other black
func IsOppositeColor(a, b *Card) bool {
	return a.Color() != b.Color()
}

// RankLabel returns "A", "2".."10", "J", "Q" or "K"
func RankLabel(rank int) string {
	if label, ok := rankLabels[rank]; ok {
		return label
	}
	return strconv.Itoa(rank)
}

// ParseCardCode parses codes like "AS", "10h" or "qd" into suit and rank
func ParseCardCode(code string) (Suit, int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCard, code)
	}

	var suit Suit
	switch code[len(code)-1] {
	case 'C':
		suit = Clubs
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	default:
		return 0, 0, fmt.Errorf("%w: bad suit in %q", ErrUnknownCard, code)
	}

	label := code[:len(code)-1]
	for rank, l := range rankLabels {
		if l == label {
			return suit, rank, nil
		}
	}
	rank, err := strconv.Atoi(label)
	if err != nil || rank < 2 || rank > 10 {
		return 0, 0, fmt.Errorf("%w: bad rank in %q", ErrUnknownCard, code)
	}
	return suit, rank, nil
}
