// Package api provides the HTTP REST API for the Klondike server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"seed": 1234} is optional
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board, face-down cards redacted
//   - POST /api/sessions/{id}/move - {"card": "QS", "to": "tableau-3"} or {"card": "QS", "candidates": [...]}
//   - POST /api/sessions/{id}/click - {"card": "7H"}, the top card of the stock
//   - POST /api/sessions/{id}/draw - Draw from the stock, refilling it when empty
//   - POST /api/sessions/{id}/restart - Deal a new game with the session seed
//   - GET /api/sessions/{id}/history - ?page=1&limit=20&order=desc&current=true
//   - GET /api/sessions/{id}/possible-moves - Every legal drag on the board
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id} - WebSocket updates for one session
//
// A rejected move is not an HTTP error. It returns 200 with "success": false
// and a machine-readable "reason". HTTP errors are reserved for bad requests
// and unknown sessions:
//
//	400 {"error": "invalid request: unknown pile \"tableau-9\""}
//	404 {"error": "session not found"}
//
// Every command that may change the board broadcasts the new state and its
// events to the WebSocket clients of the session.
package api
