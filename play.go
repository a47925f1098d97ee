package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/render"
)

const playHelp = `Commands:
  d                 draw from the stock (refills it from the waste when empty)
  m <card> <pile>   move a card and the cards above it, e.g. "m QS tableau-3"
  c <card>          click a card; clicking the top stock card draws it
  p                 list possible moves
  r                 restart the deal
  h                 show this help
  q                 quit
Piles: stock, discard, foundation-0..3, tableau-0..6. Cards: AS, 10H, QD, ...`

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a deal in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "deal seed (0 picks one from the clock)",
				Sources: cli.EnvVars("KLONDIKE_SEED"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colours",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r := render.ForFile(os.Stdout)
			if cmd.Bool("no-color") {
				r = render.Plain()
			}
			return runPlay(os.Stdin, cmd.Root().Writer, r, int64(cmd.Int("seed")))
		},
	}
}

// player runs the terminal loop over one engine
type player struct {
	game *engine.GameEngine
	r    *render.Renderer
	out  io.Writer
}

// runPlay reads commands from in until "q" or end of input
func runPlay(in io.Reader, out io.Writer, r *render.Renderer, seed int64) error {
	game, err := engine.NewEngine(engine.Options{Seed: seed})
	if err != nil {
		return err
	}
	p := &player{game: game, r: r, out: out}
	game.Subscribe(p.onEvent)

	fmt.Fprintln(out, "Type h for help.")
	p.printBoard()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if quit := p.handle(strings.Fields(scanner.Text())); quit {
			return nil
		}
	}
}

// onEvent prints engine notifications as they happen
func (p *player) onEvent(ev engine.Event) {
	if ev.Type == engine.EventCardFlipped && (!ev.FaceUp || ev.From == engine.DiscardID) {
		return
	}
	fmt.Fprintf(p.out, "  %s\n", p.r.Event(ev))
}

// handle runs one command and reports whether the loop should stop. Every
// command that reaches the engine is followed by the board, which carries the
// command's message.
func (p *player) handle(args []string) bool {
	if len(args) == 0 {
		return false
	}

	switch strings.ToLower(args[0]) {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		fmt.Fprintln(p.out, playHelp)
		return false
	case "p", "moves":
		fmt.Fprintln(p.out, p.r.Moves(p.game.PossibleMoves()))
		return false
	case "d", "draw":
		p.game.DrawFromStock()
	case "r", "restart":
		p.game.Restart()
	case "c", "click":
		if len(args) != 2 {
			fmt.Fprintln(p.out, "usage: c <card>")
			return false
		}
		card, err := p.game.FindCard(args[1])
		if err != nil {
			fmt.Fprintln(p.out, err)
			return false
		}
		p.game.ClickCard(card)
	case "m", "move":
		if len(args) != 3 {
			fmt.Fprintln(p.out, "usage: m <card> <pile>")
			return false
		}
		card, err := p.game.FindCard(args[1])
		if err != nil {
			fmt.Fprintln(p.out, err)
			return false
		}
		dest, err := p.game.Pile(engine.PileID(args[2]))
		if err != nil {
			fmt.Fprintln(p.out, err)
			return false
		}
		p.game.RequestMove(card, dest)
	default:
		fmt.Fprintf(p.out, "Unknown command %q. Type h for help.\n", args[0])
		return false
	}

	p.printBoard()
	return false
}

func (p *player) printBoard() {
	fmt.Fprintln(p.out, p.r.Board(p.game.Snapshot().Redacted()))
}
