package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Options controls how an engine deals
type Options struct {
	// Seed makes deals reproducible. Zero picks a seed from the clock.
	Seed int64 `json:"seed"`
}

// ValidateOptions checks options before an engine is built from them
func ValidateOptions(opts Options) error {
	if opts.Seed < 0 {
		return fmt.Errorf("options validation: seed must not be negative, got %d", opts.Seed)
	}
	return nil
}

// resolveSeed returns the seed the engine will actually use
func resolveSeed(opts Options) int64 {
	if opts.Seed != 0 {
		return opts.Seed
	}
	return time.Now().UnixNano()
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
