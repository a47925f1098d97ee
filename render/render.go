package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/wricardo/klondike/game/engine"
)

// Renderer turns board snapshots into text. Colour codes are only emitted when
// the renderer was created with colour on.
type Renderer struct {
	red    *color.Color
	black  *color.Color
	hidden *color.Color
	label  *color.Color
	good   *color.Color
	bad    *color.Color
}

// New creates a renderer
func New(colored bool) *Renderer {
	r := &Renderer{
		red:    color.New(color.FgHiRed, color.Bold),
		black:  color.New(color.FgHiWhite, color.Bold),
		hidden: color.New(color.FgBlue),
		label:  color.New(color.FgCyan),
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.red, r.black, r.hidden, r.label, r.good, r.bad} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Plain returns a renderer that never emits colour codes
func Plain() *Renderer {
	return New(false)
}

// ForFile returns a coloured renderer when f is a terminal
func ForFile(f *os.File) *Renderer {
	return New(IsTerminal(f))
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Card renders one card: "Q♠" face up, "##" face down or redacted
func (r *Renderer) Card(c engine.CardState) string {
	if !c.FaceUp || c.Code == engine.HiddenCode {
		return r.hidden.Sprint("##")
	}
	suit, rank, err := engine.ParseCardCode(c.Code)
	if err != nil {
		return c.Code
	}
	text := engine.RankLabel(rank) + suit.Symbol()
	if suit.Color() == engine.Red {
		return r.red.Sprint(text)
	}
	return r.black.Sprint(text)
}

// Pile renders cards bottom to top separated by spaces
func (r *Renderer) Pile(p engine.PileState) string {
	if len(p.Cards) == 0 {
		return "--"
	}
	parts := make([]string, len(p.Cards))
	for i, c := range p.Cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// Board renders the whole table:
//
//	Stock: ## (24)   Waste: 7♥ (1)
//	Foundations: [0] A♥  [1] --  [2] --  [3] --
//	tableau-0: K♠
//	tableau-1: ## 3♦
func (r *Renderer) Board(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Seed: %d | Deal: %d | Moves: %d\n\n", state.Seed, state.Deal, state.CurrentMovesCount)

	stock := state.Pile(engine.StockID)
	discard := state.Pile(engine.DiscardID)
	if stock != nil && discard != nil {
		stockTop := "--"
		if len(stock.Cards) > 0 {
			stockTop = r.hidden.Sprint("##")
		}
		wasteTop := "--"
		if top, ok := engine.TopCard(*discard); ok {
			wasteTop = r.Card(top)
		}
		fmt.Fprintf(&b, "%s %s (%d)   %s %s (%d)\n",
			r.label.Sprint("Stock:"), stockTop, len(stock.Cards),
			r.label.Sprint("Waste:"), wasteTop, len(discard.Cards))
	}

	b.WriteString(r.label.Sprint("Foundations:"))
	for i, f := range engine.PilesOfType(state, engine.Foundation) {
		top := "--"
		if c, ok := engine.TopCard(f); ok {
			top = r.Card(c)
		}
		fmt.Fprintf(&b, " [%d] %s", i, top)
	}
	b.WriteString("\n\n")

	for _, t := range engine.PilesOfType(state, engine.Tableau) {
		fmt.Fprintf(&b, "%s %s\n", r.label.Sprintf("%-10s", string(t.ID)+":"), r.Pile(t))
	}

	if state.Won {
		b.WriteString("\n" + r.good.Sprint("*** The game has been won! ***") + "\n")
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s\n", state.Message)
	}
	return b.String()
}

// Event renders one engine notification as a single line
func (r *Renderer) Event(e engine.Event) string {
	cards := strings.Join(e.Cards, " ")
	switch e.Type {
	case engine.EventMoveAccepted:
		return r.good.Sprintf("moved %s: %s -> %s", cards, e.From, e.To)
	case engine.EventMoveRejected:
		return r.bad.Sprintf("rejected %s (%s)", cards, e.Reason)
	case engine.EventCardFlipped:
		if !e.FaceUp {
			return fmt.Sprintf("turned %s face down on %s", cards, e.From)
		}
		return fmt.Sprintf("flipped %s on %s", cards, e.From)
	case engine.EventStockDrawn:
		return fmt.Sprintf("drew %s", cards)
	case engine.EventStockRefilled:
		return fmt.Sprintf("stock refilled with %d cards", len(e.Cards))
	case engine.EventGameWon:
		return r.good.Sprint("game won")
	case engine.EventGameRestarted:
		return "new deal"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return string(e.Type)
}

// Moves renders a list of legal drags, one per line
func (r *Renderer) Moves(moves []engine.PossibleMove) string {
	if len(moves) == 0 {
		return "No legal moves. Draw from the stock."
	}
	var b strings.Builder
	for i, m := range moves {
		fmt.Fprintf(&b, "%d. %s %s -> %s", i+1, m.Card, m.From, m.To)
		if m.Cards > 1 {
			fmt.Fprintf(&b, " (%d cards)", m.Cards)
		}
		b.WriteString("\n")
	}
	return b.String()
}
