// Package websocket provides WebSocket transport for the Klondike server.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a read and a
// write goroutine; the hub goroutine owns registration and fan-out.
//
// Message Protocol:
//
// The socket is receive-only for clients. Every message is one JSON frame:
//
//	{
//	  "session_id": "3f9a1c0e",
//	  "event": "state_update",
//	  "game_state": {...},
//	  "events": [{"id": "01J...", "type": "move_accepted", "cards": ["QS"], ...}]
//	}
//
// A client receives a "connected" message with the current board first, then
// a "state_update" after every command that touched its session. The events
// list carries the engine notifications (move accepted or rejected, card
// flipped, stock drawn or refilled, game won) so a client can animate instead
// of diffing boards.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, result.GameState, result.Events)
package websocket
