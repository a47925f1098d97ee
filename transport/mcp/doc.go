// Package mcp provides a Model Context Protocol server for the Klondike game.
//
// The server is a thin client: every tool call becomes a request to the REST
// API, so an agent and a browser watching the same session over WebSocket see
// the same board.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: the board as text, face-down cards shown as ##
//   - possible_moves: every legal move on the board
//   - move: move a card and the cards above it to a pile
//   - click_card: click the top stock card to draw it
//   - draw: draw from the stock, refilling it from the waste when empty
//   - restart: deal the session's game again
//   - move_history: paginated command history
//   - game_rules: rules and naming of piles and cards
//
// Transport Modes:
//   - Stdio: `klondike mcp` serves stdio, starting an internal API server when
//     none is listening
//   - HTTP: `klondike serve` answers JSON-RPC posted to /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", version)
//	server.ServeStdio(client.GetMCPServer())
package mcp
