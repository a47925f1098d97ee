// Command validate checks Klondike settings files. It loads every *.toml file
// in a directory (by default the directory of the user's config file) and
// reports, for each one:
//   - TOML syntax errors and unknown keys
//   - Out-of-range values (port, seed, session durations)
//   - A summary of the effective settings when the file is valid
//
// It exits with a non-zero status if any file is invalid.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/klondike/game/config"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds the summary lines; otherwise it holds the
// errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

// validateFile loads one settings file and summarizes it
func validateFile(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	settings, err := config.Load(path)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, err.Error())
		return result
	}

	result.Messages = append(result.Messages,
		fmt.Sprintf("✓ Listen: %s", settings.Addr()),
		fmt.Sprintf("✓ Session TTL: %s (cleanup every %s)", settings.Sessions.TTL, settings.Sessions.CleanupInterval),
	)
	if settings.Game.Seed != 0 {
		result.Messages = append(result.Messages, fmt.Sprintf("✓ Fixed seed: %d", settings.Game.Seed))
	} else {
		result.Messages = append(result.Messages, "✓ Seed: random per session")
	}
	if settings.Ngrok.Enabled {
		domain := settings.Ngrok.Domain
		if domain == "" {
			domain = "(assigned)"
		}
		result.Messages = append(result.Messages, fmt.Sprintf("✓ ngrok: %s", domain))
	}
	return result
}

// validateDir validates every settings file in dir and writes a report to w.
// It returns false if any file is invalid.
func validateDir(w io.Writer, dir string) (bool, error) {
	files, err := config.ListFiles(dir)
	if err != nil {
		return false, fmt.Errorf("error finding settings files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No *.toml files in %s\n", dir)
		return true, nil
	}

	allValid := true
	for _, file := range files {
		result := validateFile(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				fmt.Fprintln(w, "  ❌ "+msg)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All settings files are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some settings files have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate Klondike settings files",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = filepath.Dir(config.DefaultPath())
			}
			ok, err := validateDir(os.Stdout, dir)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid settings in %s", dir)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
