package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/klondike/game/engine"
)

func TestAnalyzeDeal(t *testing.T) {
	stats, err := analyzeDeal(42)
	if err != nil {
		t.Fatalf("analyzeDeal failed: %v", err)
	}
	if stats.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", stats.Seed)
	}
	if stats.ExposedAces < 0 || stats.ExposedAces > 4 {
		t.Errorf("Exposed aces out of range: %d", stats.ExposedAces)
	}
	if stats.BuriedKings < 0 || stats.BuriedKings > 4 {
		t.Errorf("Buried kings out of range: %d", stats.BuriedKings)
	}

	again, _ := analyzeDeal(42)
	if again != stats {
		t.Errorf("Same seed gave different stats: %+v vs %+v", stats, again)
	}
}

func TestAnalyzeDealMatchesEngine(t *testing.T) {
	g, err := engine.NewEngine(engine.Options{Seed: 7})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	stats, _ := analyzeDeal(7)
	if stats.PossibleMoves != len(g.PossibleMoves()) {
		t.Errorf("Expected %d moves, got %d", len(g.PossibleMoves()), stats.PossibleMoves)
	}
}

func TestAnalyze(t *testing.T) {
	summary, err := analyze(1, 25)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if summary.Deals != 25 {
		t.Errorf("Expected 25 deals, got %d", summary.Deals)
	}

	total := 0
	for _, n := range summary.AceDistribution {
		total += n
	}
	if total != 25 {
		t.Errorf("Ace distribution covers %d deals, want 25", total)
	}
	if summary.MaxMoves > 0 && (summary.MaxMovesSeed < 1 || summary.MaxMovesSeed > 25) {
		t.Errorf("Max moves seed %d outside the run", summary.MaxMovesSeed)
	}

	if _, err := analyze(-5, 1); err == nil {
		t.Error("Expected error for a negative seed")
	}
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, &Summary{
		Deals:           2,
		TotalAces:       1,
		TotalMoves:      5,
		TotalKings:      3,
		MaxMoves:        4,
		MaxMovesSeed:    9,
		MostKings:       2,
		MostKingsSeed:   10,
		AceDistribution: map[int]int{0: 1, 1: 1},
	})

	for _, want := range []string{
		"Deals analyzed: 2",
		"Avg exposed aces: 0.50",
		"Avg moves before first draw: 2.50",
		"Avg buried kings: 1.50",
		"Most opening moves: 4 (seed 9)",
		"  0: 1\n  1: 1\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in:\n%s", want, out.String())
		}
	}
}
