package engine

import "math/rand"

// Deck is a full set of 52 cards used for one deal
type Deck struct {
	cards []*Card
}

// NewDeck creates an ordered deck, suit by suit, Ace to King
func NewDeck() *Deck {
	cards := make([]*Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return &Deck{cards: cards}
}

// Shuffle randomizes the order of the cards
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Cards returns the cards in deck order
func (d *Deck) Cards() []*Card {
	return d.cards
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
