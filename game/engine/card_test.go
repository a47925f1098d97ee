package engine

import (
	"errors"
	"testing"
)

func TestCardCodes(t *testing.T) {
	tests := []struct {
		suit  Suit
		rank  int
		code  string
		label string
		name  string
	}{
		{Spades, Ace, "AS", "A♠", "Ace of spades"},
		{Hearts, 10, "10H", "10♥", "10 of hearts"},
		{Diamonds, Queen, "QD", "Q♦", "Queen of diamonds"},
		{Clubs, 7, "7C", "7♣", "7 of clubs"},
		{Clubs, King, "KC", "K♣", "King of clubs"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c := NewCard(tt.suit, tt.rank)
			if c.Code() != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, c.Code())
			}
			if c.Label() != tt.label {
				t.Errorf("Expected label %s, got %s", tt.label, c.Label())
			}
			if c.String() != tt.name {
				t.Errorf("Expected name %q, got %q", tt.name, c.String())
			}
		})
	}
}

func TestNewCardIsFaceDownWithoutPile(t *testing.T) {
	c := NewCard(Hearts, 5)
	if c.IsFaceUp() {
		t.Error("Expected new card to be face down")
	}
	if c.Pile() != nil {
		t.Error("Expected new card to belong to no pile")
	}
	c.Flip()
	if !c.IsFaceUp() || c.IsFaceDown() {
		t.Error("Expected card to be face up after flip")
	}
}

func TestSuitColors(t *testing.T) {
	tests := []struct {
		suit  Suit
		color Color
	}{
		{Clubs, Black},
		{Spades, Black},
		{Hearts, Red},
		{Diamonds, Red},
	}
	for _, tt := range tests {
		if got := tt.suit.Color(); got != tt.color {
			t.Errorf("%s: expected %s, got %s", tt.suit, tt.color, got)
		}
	}

	if !IsOppositeColor(NewCard(Hearts, 4), NewCard(Spades, 5)) {
		t.Error("Expected hearts and spades to be opposite colors")
	}
	if IsOppositeColor(NewCard(Hearts, 4), NewCard(Diamonds, 5)) {
		t.Error("Expected hearts and diamonds to be the same color")
	}
}

func TestParseCardCode(t *testing.T) {
	tests := []struct {
		input   string
		suit    Suit
		rank    int
		wantErr bool
	}{
		{"AS", Spades, Ace, false},
		{"as", Spades, Ace, false},
		{" 10h ", Hearts, 10, false},
		{"KD", Diamonds, King, false},
		{"2c", Clubs, 2, false},
		{"1S", 0, 0, true},
		{"11S", 0, 0, true},
		{"AX", 0, 0, true},
		{"S", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			suit, rank, err := ParseCardCode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCard) {
					t.Errorf("Expected ErrUnknownCard, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if suit != tt.suit || rank != tt.rank {
				t.Errorf("Expected %s/%d, got %s/%d", tt.suit, tt.rank, suit, rank)
			}
		})
	}
}

func TestMoveToPileUpdatesOwnership(t *testing.T) {
	a := NewPile(TableauID(0), Tableau, TableauGap)
	b := NewPile(TableauID(1), Tableau, TableauGap)
	c := NewCard(Spades, 9)

	a.AddCard(c)
	if c.Pile() != a {
		t.Fatal("Expected card to belong to pile a")
	}

	c.MoveToPile(b)
	if c.Pile() != b {
		t.Error("Expected card to belong to pile b")
	}
	if !a.IsEmpty() {
		t.Error("Expected pile a to be empty")
	}
	if b.TopCard() != c {
		t.Error("Expected card on top of pile b")
	}
}

func TestNewDeck(t *testing.T) {
	d := NewDeck()
	if d.Len() != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, d.Len())
	}
	seen := make(map[string]bool)
	for _, c := range d.Cards() {
		if seen[c.Code()] {
			t.Errorf("Duplicate card %s", c.Code())
		}
		seen[c.Code()] = true
		if c.IsFaceUp() {
			t.Errorf("Expected %s face down", c.Code())
		}
	}
	if d.Cards()[0].Code() != "AC" || d.Cards()[DeckSize-1].Code() != "KS" {
		t.Errorf("Unexpected deck order: first %s, last %s", d.Cards()[0].Code(), d.Cards()[DeckSize-1].Code())
	}
}
