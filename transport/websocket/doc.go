// Package websocket pushes game updates to display clients.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every applied action
//   - Named events (action, reset, game_over)
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// A central Hub owns the client sets and runs a single event loop fed by
// register, unregister and broadcast channels. Each connection gets a read
// pump, which only watches for disconnects, and a write pump.
//
// Message Protocol:
//
// Displays are receive-only. Every frame is one JSON Message:
//
//	{"session_id": "a1b2", "event": "state_update", "game_state": {...}}
//	{"session_id": "a1b2", "event": "action", "data": {...}}
//
// Clients pick their session with the query parameter (?session=a1b2).
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, state)
//
// Shutdown:
//
// Cancelling the context passed to Run closes every client. Broadcasts made
// afterwards are dropped instead of blocking.
package websocket
