package engine

import "fmt"

// ClickCard handles a click on a card. Clicking the top card of the stock
// draws it; clicks anywhere else change nothing.
func (e *GameEngine) ClickCard(card *Card) MoveResult {
	e.begin()
	res := MoveResult{Action: ActionClick}
	if !e.owns(card) || card.Pile() == nil {
		return e.reject(res, ReasonUnknownCard)
	}
	res.Card = card.Code()
	res.From = card.Pile().ID()

	if card.Pile().Type() != Stock {
		return e.reject(res, ReasonNotClickable)
	}
	if card != e.stock.TopCard() {
		return e.reject(res, ReasonNotTopCard)
	}
	res = e.drawTop()
	res.Action = ActionClick
	return e.finish(res)
}

// DrawFromStock handles a click on the stock area: it draws one card, or
// refills the stock from the discard pile once the stock is exhausted.
func (e *GameEngine) DrawFromStock() MoveResult {
	if e.stock.IsEmpty() {
		return e.RefillStockFromDiscard()
	}
	e.begin()
	return e.finish(e.drawTop())
}

// drawTop moves the stock's top card face up onto the discard pile
func (e *GameEngine) drawTop() MoveResult {
	card := e.stock.TopCard()
	card.MoveToPile(e.discard)
	card.Flip()

	res := MoveResult{
		Action:   ActionDraw,
		Accepted: true,
		Card:     card.Code(),
		From:     StockID,
		To:       DiscardID,
		Cards:    []string{card.Code()},
		Message:  fmt.Sprintf("Placed %s to the waste.", card),
	}
	e.emit(Event{Type: EventStockDrawn, Cards: res.Cards, From: StockID, To: DiscardID, Message: res.Message})
	e.emit(Event{Type: EventCardFlipped, Cards: res.Cards, From: DiscardID, FaceUp: true})
	e.addToHistory(ActionDraw, res.Card, StockID, DiscardID, res.Cards, true)
	return res
}

// RefillStockFromDiscard turns the discard pile over onto the stock one card
// at a time, so the stock ends up holding the discard pile in reverse.
func (e *GameEngine) RefillStockFromDiscard() MoveResult {
	e.begin()
	res := MoveResult{Action: ActionRefill, From: DiscardID, To: StockID}
	if e.discard.IsEmpty() {
		return e.reject(res, ReasonEmpty)
	}

	var moved []string
	for card := e.discard.TopCard(); card != nil; card = e.discard.TopCard() {
		if card.IsFaceUp() {
			card.Flip()
		}
		card.MoveToPile(e.stock)
		moved = append(moved, card.Code())
		e.emit(Event{Type: EventCardFlipped, Cards: []string{card.Code()}, From: StockID})
	}

	res.Accepted = true
	res.Cards = moved
	res.Message = "Stock refilled from discard pile."
	e.emit(Event{Type: EventStockRefilled, Cards: moved, From: DiscardID, To: StockID, Message: res.Message})
	e.addToHistory(ActionRefill, "", DiscardID, StockID, moved, true)
	return e.finish(res)
}
