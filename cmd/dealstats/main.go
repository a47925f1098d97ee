// Command dealstats deals a run of seeded games and prints quick heuristics
// about how the opening boards look: aces already showing on the tableau,
// moves available before the first draw, and kings buried face down.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/klondike/game/engine"
)

// DealStats summarizes one opening board
type DealStats struct {
	Seed          int64
	ExposedAces   int
	PossibleMoves int
	BuriedKings   int
}

// Summary aggregates DealStats over a run of deals
type Summary struct {
	Deals           int
	TotalAces       int
	TotalMoves      int
	TotalKings      int
	NoMoveDeals     int
	MaxMoves        int
	MaxMovesSeed    int64
	MostKings       int
	MostKingsSeed   int64
	AceDistribution map[int]int
}

func analyzeDeal(seed int64) (DealStats, error) {
	g, err := engine.NewEngine(engine.Options{Seed: seed})
	if err != nil {
		return DealStats{}, err
	}
	state := g.Snapshot()
	return DealStats{
		Seed:          seed,
		ExposedAces:   engine.ExposedAces(state),
		PossibleMoves: len(g.PossibleMoves()),
		BuriedKings:   engine.BuriedKings(state),
	}, nil
}

func analyze(start int64, count int) (*Summary, error) {
	summary := &Summary{AceDistribution: make(map[int]int)}
	for i := 0; i < count; i++ {
		stats, err := analyzeDeal(start + int64(i))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", start+int64(i), err)
		}

		summary.Deals++
		summary.TotalAces += stats.ExposedAces
		summary.TotalMoves += stats.PossibleMoves
		summary.TotalKings += stats.BuriedKings
		summary.AceDistribution[stats.ExposedAces]++
		if stats.PossibleMoves == 0 {
			summary.NoMoveDeals++
		}
		if stats.PossibleMoves > summary.MaxMoves {
			summary.MaxMoves = stats.PossibleMoves
			summary.MaxMovesSeed = stats.Seed
		}
		if stats.BuriedKings > summary.MostKings {
			summary.MostKings = stats.BuriedKings
			summary.MostKingsSeed = stats.Seed
		}
	}
	return summary, nil
}

func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

func printSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "Deals analyzed: %d\n", s.Deals)
	fmt.Fprintf(w, "Avg exposed aces: %.2f\n", average(s.TotalAces, s.Deals))
	fmt.Fprintf(w, "Avg moves before first draw: %.2f\n", average(s.TotalMoves, s.Deals))
	fmt.Fprintf(w, "Avg buried kings: %.2f\n", average(s.TotalKings, s.Deals))
	fmt.Fprintf(w, "Deals with no opening move: %d\n", s.NoMoveDeals)
	if s.Deals > 0 {
		fmt.Fprintf(w, "Most opening moves: %d (seed %d)\n", s.MaxMoves, s.MaxMovesSeed)
		fmt.Fprintf(w, "Most buried kings: %d (seed %d)\n", s.MostKings, s.MostKingsSeed)
	}

	fmt.Fprintln(w, "Exposed aces per deal:")
	for aces := 0; aces <= 4; aces++ {
		if n := s.AceDistribution[aces]; n > 0 {
			fmt.Fprintf(w, "  %d: %d\n", aces, n)
		}
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "dealstats",
		Usage: "Print statistics about opening Klondike boards",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Value: 1000,
				Usage: "number of deals",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed of the first deal; the rest follow consecutively",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			count := int(cmd.Int("count"))
			start := int64(cmd.Int("seed"))
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if start < 1 {
				return fmt.Errorf("seed must be positive, got %d", start)
			}

			summary, err := analyze(start, count)
			if err != nil {
				return err
			}
			printSummary(os.Stdout, summary)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
