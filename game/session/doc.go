// Package session provides session management for the Klondike server.
//
// Manager stores sessions in memory, each with its own engine and deal. It is
// safe for concurrent use; the engines it hands out are not, so callers (the
// service layer) serialise access to them.
//
// Session IDs are the first eight hex characters of a random UUID and are
// matched case-insensitively. Sessions that are not touched for a while can be
// expired with CleanupExpiredSessions, or periodically with RunCleanup:
//
//	manager := session.NewManager(logger)
//	go manager.RunCleanup(ctx, time.Minute, 30*time.Minute)
//
//	sess, err := manager.Create("", engine.Options{Seed: 42})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Nothing is persisted: a restart of the server forgets every session.
package session
