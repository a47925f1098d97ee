// Package engine provides the core game logic for Klondike solitaire.
//
// The engine package implements:
//   - The card and pile data model with pile ownership bookkeeping
//   - Move legality for foundation and tableau piles
//   - Multi-card runs, dragged and committed as one unit
//   - Drawing from the stock and refilling it from the discard pile
//   - Dealing, restarting and win detection
//
// Core Types:
//
// Card is a single playing card that always knows its pile. Pile is an ordered
// stack of cards whose type (stock, discard, foundation, tableau) decides what it
// accepts. GameEngine owns the 13 piles of a game and is the only thing that
// mutates them.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.Options{Seed: 42})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Subscribe(func(ev engine.Event) {
//		fmt.Println(ev.Type, ev.Cards)
//	})
//
//	card, _ := eng.FindCard("QS")
//	dest, _ := eng.Pile(engine.TableauID(3))
//	result := eng.RequestMove(card, dest)
//	if !result.Accepted {
//		fmt.Println(result.Reason)
//	}
//
// Events:
//
// Every command returns a MoveResult carrying the events it produced, and the
// same events are delivered to subscribed listeners as they happen. Presentation
// layers animate from events instead of inspecting the board: move_accepted for
// relocated runs, move_rejected for snap-back, card_flipped for face changes and
// game_won, which fires once per deal.
//
// Illegal moves are not errors. They come back as a result with Accepted set to
// false and a RejectReason.
package engine
