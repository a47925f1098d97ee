package engine

import (
	"testing"
)

// newTestEngine deals a reproducible game
func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	e, err := NewEngine(Options{Seed: 42})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

// emptyBoard returns an engine whose piles were all cleared. Cards of the deal
// stay registered so tests can place them wherever they need.
func emptyBoard(t *testing.T) *GameEngine {
	t.Helper()
	e := newTestEngine(t)
	for _, p := range e.allPiles() {
		p.Clear()
	}
	for _, c := range e.cards {
		c.faceUp = false
	}
	return e
}

// place puts the named cards on top of pile, bottom first
func place(t *testing.T, e *GameEngine, id PileID, faceUp bool, codes ...string) *Pile {
	t.Helper()
	p, err := e.Pile(id)
	if err != nil {
		t.Fatalf("Unknown pile %s: %v", id, err)
	}
	for _, code := range codes {
		c := mustCard(t, e, code)
		if c.pile != nil {
			c.pile.remove(c)
		}
		c.faceUp = faceUp
		p.AddCard(c)
	}
	return p
}

func mustCard(t *testing.T, e *GameEngine, code string) *Card {
	t.Helper()
	c, err := e.FindCard(code)
	if err != nil {
		t.Fatalf("FindCard(%q) failed: %v", code, err)
	}
	return c
}

func mustPile(t *testing.T, e *GameEngine, id PileID) *Pile {
	t.Helper()
	p, err := e.Pile(id)
	if err != nil {
		t.Fatalf("Pile(%q) failed: %v", id, err)
	}
	return p
}

func pileCodes(p *Pile) []string {
	return codes(p.Cards())
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
