package engine

// codes returns the codes of the given cards in order
func codes(cards []*Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

func nonEmpty(code string) []string {
	if code == "" {
		return nil
	}
	return []string{code}
}

// CountFaceDown counts the face-down cards of a pile snapshot
func CountFaceDown(p PileState) int {
	count := 0
	for _, c := range p.Cards {
		if !c.FaceUp {
			count++
		}
	}
	return count
}

// TopCard returns the top card of a pile snapshot and whether there is one
func TopCard(p PileState) (CardState, bool) {
	if len(p.Cards) == 0 {
		return CardState{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// PilesOfType returns the snapshots of every pile of the given type, in order
func PilesOfType(state *GameState, kind PileType) []PileState {
	var out []PileState
	for _, p := range state.Piles {
		if p.Type == kind {
			out = append(out, p)
		}
	}
	return out
}

// CardsOnFoundations counts the cards already played to the foundations
func CardsOnFoundations(state *GameState) int {
	count := 0
	for _, p := range PilesOfType(state, Foundation) {
		count += len(p.Cards)
	}
	return count
}

// BuriedKings counts kings lying face down in the tableau
func BuriedKings(state *GameState) int {
	count := 0
	for _, p := range PilesOfType(state, Tableau) {
		for _, c := range p.Cards {
			if !c.FaceUp && c.Rank == King {
				count++
			}
		}
	}
	return count
}

// ExposedAces counts aces lying face up on top of tableau piles
func ExposedAces(state *GameState) int {
	count := 0
	for _, p := range PilesOfType(state, Tableau) {
		if top, ok := TopCard(p); ok && top.FaceUp && top.Rank == Ace {
			count++
		}
	}
	return count
}
