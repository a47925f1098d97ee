// Package service provides the business logic layer for the Klondike server.
//
// The service package implements:
//   - Multi-session game management, one independent deal per session
//   - Translation of card codes and pile IDs into engine commands
//   - Drop resolution when a client reports several overlapped piles
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Engines are not safe for concurrent use, so the service
// serialises every engine call. Clients only ever receive redacted snapshots in
// which face-down cards are hidden.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	gameService := service.NewGameService(sessionMgr, engine.Options{}, logger)
//
//	info, err := gameService.CreateSession(ctx, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, service.MoveRequest{Card: "QS", To: "tableau-3"})
//
// Illegal moves are not errors: they come back with Success false and a reason.
// Errors mean the session, card or pile does not exist (ErrSessionNotFound,
// ErrInvalidRequest).
package service
