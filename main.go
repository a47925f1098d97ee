// Command klondike runs the Klondike Solitaire server.
//
// Subcommands:
//  1. serve – runs the HTTP server exposing the REST API, WebSocket, and an /mcp HTTP endpoint
//  2. mcp – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. play – plays a deal in the terminal
//  4. version – prints the version
//
// Settings come from a TOML file (see game/config), overridden by flags and
// environment variables. A .env file in the working directory is loaded first.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Klondike Solitaire Server"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the root command. out receives everything the commands print
// for the user; logs go to stderr.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "klondike",
		Usage:   "Klondike solitaire engine with REST, WebSocket and MCP frontends",
		Version: Version,
		Writer:  out,
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			playCommand(),
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// newLogger returns a development logger when debug is on, a production one
// otherwise. Both write to stderr.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
