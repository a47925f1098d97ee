package engine

import (
	"fmt"
	"time"
)

// IsMoveValid checks whether card may be placed on dest. Only the card itself
// is checked; cards stacked above it travel along without being inspected.
func (e *GameEngine) IsMoveValid(card *Card, dest *Pile) bool {
	if card == nil || dest == nil {
		return false
	}
	top := dest.TopCard()

	switch dest.Type() {
	case Foundation:
		if top == nil {
			return card.Rank() == Ace
		}
		return top.Rank() == card.Rank()-1 && top.Suit() == card.Suit()

	case Tableau:
		if top == nil {
			return card.Rank() == King
		}
		return top.Rank() == card.Rank()+1 && IsOppositeColor(top, card)
	}

	// Stock and discard only receive cards through draw and refill.
	return false
}

// DraggableRun returns the cards that move together when card is dragged:
// the card and everything above it. It returns nil for cards that cannot be
// dragged, i.e. stock cards and face-down cards.
func (e *GameEngine) DraggableRun(card *Card) []*Card {
	if !e.owns(card) || card.Pile() == nil {
		return nil
	}
	if card.Pile().Type() == Stock || card.IsFaceDown() {
		return nil
	}
	return card.Pile().Run(card)
}

// RequestMove handles the end of a drag: card was dropped on dest. The move is
// committed if it is legal, otherwise the result carries the reason.
func (e *GameEngine) RequestMove(card *Card, dest *Pile) MoveResult {
	e.begin()
	res := MoveResult{Action: ActionMove}

	if !e.owns(card) || card.Pile() == nil {
		return e.reject(res, ReasonUnknownCard)
	}
	src := card.Pile()
	res.Card = card.Code()
	res.From = src.ID()

	if !e.ownsPile(dest) {
		return e.reject(res, ReasonNoDestination)
	}
	res.To = dest.ID()

	switch {
	case src.Type() == Stock:
		return e.reject(res, ReasonInStock)
	case card.IsFaceDown():
		return e.reject(res, ReasonFaceDown)
	case dest == src:
		return e.reject(res, ReasonSamePile)
	case !e.IsMoveValid(card, dest):
		return e.reject(res, ReasonIllegal)
	}

	return e.finish(e.commitMove(card, dest))
}

// HandleValidMove commits a move that IsMoveValid already accepted. The run
// starting at card is relocated onto dest, the newly exposed card of the source
// pile is turned face up, and the win condition is evaluated.
func (e *GameEngine) HandleValidMove(card *Card, dest *Pile) MoveResult {
	e.begin()
	res := MoveResult{Action: ActionMove}
	if !e.owns(card) || card.Pile() == nil {
		return e.reject(res, ReasonUnknownCard)
	}
	if !e.ownsPile(dest) {
		return e.reject(res, ReasonNoDestination)
	}
	if card.Pile() == dest {
		res.Card, res.From, res.To = card.Code(), dest.ID(), dest.ID()
		return e.reject(res, ReasonSamePile)
	}
	return e.finish(e.commitMove(card, dest))
}

func (e *GameEngine) commitMove(card *Card, dest *Pile) MoveResult {
	src := card.Pile()
	res := MoveResult{
		Action:   ActionMove,
		Accepted: true,
		Card:     card.Code(),
		From:     src.ID(),
		To:       dest.ID(),
		Message:  placementMessage(card, dest),
	}

	run := src.Run(card)
	res.Cards = codes(run)
	for _, c := range run {
		c.MoveToPile(dest)
	}
	e.emit(Event{Type: EventMoveAccepted, Cards: res.Cards, From: src.ID(), To: dest.ID(), Message: res.Message})

	// Discard cards are always face up, so the discard exclusion never fires.
	if src.Type() != Discard {
		if top := src.TopCard(); top != nil && top.IsFaceDown() {
			top.Flip()
			res.Flipped = top.Code()
			e.emit(Event{Type: EventCardFlipped, Cards: []string{top.Code()}, From: src.ID(), FaceUp: true})
		}
	}

	e.addToHistory(ActionMove, res.Card, res.From, res.To, res.Cards, true)
	e.checkWin(&res)
	return res
}

// checkWin emits the won notification once per deal
func (e *GameEngine) checkWin(res *MoveResult) {
	if !e.IsGameWon() || e.wonNotified {
		return
	}
	e.wonNotified = true
	res.Message = "The game has been won!"
	e.emit(Event{Type: EventGameWon, Message: res.Message})
}

func (e *GameEngine) reject(res MoveResult, reason RejectReason) MoveResult {
	res.Accepted = false
	res.Reason = reason
	res.Message = rejectMessage(res, reason)
	e.emit(Event{Type: EventMoveRejected, Cards: nonEmpty(res.Card), From: res.From, To: res.To, Reason: reason, Message: res.Message})
	e.addToHistory(res.Action, res.Card, res.From, res.To, nil, false)
	return e.finish(res)
}

// ResolveDrop picks the destination for a card dropped over several piles.
// Tableau piles are preferred over foundations; within a group the last valid
// candidate wins. The card's own pile is never chosen.
func (e *GameEngine) ResolveDrop(card *Card, candidates []*Pile) *Pile {
	if !e.owns(card) {
		return nil
	}
	for _, group := range []PileType{Tableau, Foundation} {
		var result *Pile
		for _, p := range candidates {
			if !e.ownsPile(p) || p.Type() != group || p == card.Pile() {
				continue
			}
			if e.IsMoveValid(card, p) {
				result = p
			}
		}
		if result != nil {
			return result
		}
	}
	return nil
}

// PossibleMoves lists every legal drag on the current board. Moving a king
// that already sits at the bottom of a tableau pile to another empty pile is
// left out.
func (e *GameEngine) PossibleMoves() []PossibleMove {
	var moves []PossibleMove
	for _, src := range e.allPiles() {
		for _, card := range e.dragCandidates(src) {
			run := e.DraggableRun(card)
			for _, dest := range e.allPiles() {
				if dest == src || !e.IsMoveValid(card, dest) {
					continue
				}
				if src.Type() == Tableau && dest.IsEmpty() && src.IndexOf(card) == 0 {
					continue
				}
				moves = append(moves, PossibleMove{
					Card:  card.Code(),
					From:  src.ID(),
					To:    dest.ID(),
					Cards: len(run),
				})
			}
		}
	}
	return moves
}

// dragCandidates returns the cards of p a player could pick up: every face-up
// tableau card, and the top card of the discard and foundation piles.
func (e *GameEngine) dragCandidates(p *Pile) []*Card {
	switch p.Type() {
	case Tableau:
		var out []*Card
		for _, c := range p.cards {
			if c.IsFaceUp() {
				out = append(out, c)
			}
		}
		return out
	case Discard, Foundation:
		if top := p.TopCard(); top != nil {
			return []*Card{top}
		}
	}
	return nil
}

// addToHistory records a command in both the cumulative and current history
func (e *GameEngine) addToHistory(action, card string, from, to PileID, cards []string, success bool) {
	entry := MoveHistoryEntry{
		Action:     action,
		Card:       card,
		From:       from,
		To:         to,
		Cards:      cards,
		Success:    success,
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.totalMoves + 1,
	}
	e.history = append(e.history, entry)
	e.totalMoves++
	e.current = append(e.current, entry)
}

func placementMessage(card *Card, dest *Pile) string {
	if top := dest.TopCard(); top != nil {
		return fmt.Sprintf("Placed %s to %s.", card, top)
	}
	if dest.Type() == Foundation {
		return fmt.Sprintf("Placed %s to the foundation.", card)
	}
	return fmt.Sprintf("Placed %s to a new pile.", card)
}

func rejectMessage(res MoveResult, reason RejectReason) string {
	switch reason {
	case ReasonUnknownCard:
		return "That card is not in play."
	case ReasonNoDestination:
		return fmt.Sprintf("%s was not dropped on a pile.", res.Card)
	case ReasonInStock:
		return fmt.Sprintf("%s is still in the stock.", res.Card)
	case ReasonFaceDown:
		return fmt.Sprintf("%s is face down.", res.Card)
	case ReasonSamePile:
		return fmt.Sprintf("%s is already on %s.", res.Card, res.To)
	case ReasonIllegal:
		return fmt.Sprintf("%s cannot be placed on %s.", res.Card, res.To)
	case ReasonNotClickable:
		return fmt.Sprintf("Clicking %s does nothing.", res.Card)
	case ReasonNotTopCard:
		return fmt.Sprintf("%s is not the top card of the stock.", res.Card)
	case ReasonEmpty:
		return "Stock and discard are both empty."
	}
	return string(reason)
}
