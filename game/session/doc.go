// Package session provides session management for the maze runner game.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique 4-character session ID generation
//   - Session expiry with a background cleanup loop
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns an independent engine.Maze plus creation and last
// access times. Lookups are case-insensitive.
//
// Sessions are not persisted; a restart starts from an empty store.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	go manager.RunCleanup(ctx, 5*time.Minute, 24*time.Hour)
package session
