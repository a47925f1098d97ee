package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/klondike/api"
	"github.com/wricardo/klondike/game/config"
	"github.com/wricardo/klondike/transport/mcp"
	"github.com/wricardo/klondike/transport/websocket"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run an MCP stdio server, starting an internal HTTP API when none is listening",
		Flags:   settingsFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(settings.Log.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			baseURL, shutdown, err := apiBaseURL(ctx, settings, logger)
			if err != nil {
				return err
			}
			defer shutdown()

			logger.Infow("MCP stdio server ready", "api", baseURL)
			if err := server.ServeStdio(mcp.NewClient(baseURL, Version).GetMCPServer()); err != nil {
				return fmt.Errorf("MCP stdio server error: %w", err)
			}
			return nil
		},
	}
}

// externalAPIAvailable reports whether an API server answers at baseURL
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// apiBaseURL returns the configured server's URL when it is running.
// Otherwise it starts an internal API server on a random loopback port; the
// returned func stops it.
func apiBaseURL(ctx context.Context, settings *config.Settings, logger *zap.SugaredLogger) (string, func(), error) {
	externalURL := fmt.Sprintf("http://%s", settings.Addr())
	logger.Debugw("Checking for external API server", "url", externalURL)
	if externalAPIAvailable(externalURL) {
		logger.Infow("External API server found, using it for MCP", "url", externalURL)
		return externalURL, func() {}, nil
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	gameService := newGameService(ctx, settings, logger)
	hub := websocket.NewHub(logger)
	go hub.Run()

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Internal HTTP server error", "error", err)
		}
	}()

	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())
	logger.Infow("Started internal HTTP server for MCP stdio", "url", baseURL)

	shutdown := func() {
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		httpServer.Shutdown(shutdownCtx)
		hub.Stop()
	}
	return baseURL, shutdown, nil
}
