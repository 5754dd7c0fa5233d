// Package session provides in-memory session management for the board game engine.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session expiry, on demand or from a background loop
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine, seeded from the rule set, together
// with its seat count and access timestamps.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, retried until unused.
// Lookups are case-insensitive; callers may also pick their own IDs.
//
// Concurrency:
//
// The manager guards its map with a RWMutex. It does not serialize access to
// a session's engine; the service layer does that.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	go manager.RunCleanup(ctx, time.Minute, 24*time.Hour)
//
// Sessions live only as long as the process.
package session
