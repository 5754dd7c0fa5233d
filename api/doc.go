// Package api provides the HTTP REST API for hosted games.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "classic", "players": 4})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game:
//   - GET /api/sessions/{id}/state - Full game state
//   - GET /api/sessions/{id}/actions - Legal actions for the seat to move
//   - POST /api/sessions/{id}/actions - Apply an action
//   - POST /api/sessions/{id}/reset - Restart with the same rules and seats
//   - GET /api/sessions/{id}/history - Paginated action log (?page&limit&order)
//   - GET /api/sessions/{id}/standings - Seats ranked by net worth, plus cash and building totals
//
// Configuration:
//   - GET /api/configs - List rule sets
//   - GET /api/configs/{name} - Get one rule set
//   - POST /api/configs - Validate and save a rule set
//
// Actions are sent as JSON:
//
//	{"type": "buy", "deed_id": 3}
//	{"type": "bid", "amount": 120}
//	{"type": "withdraw", "seat": 2}
//
// A rule violation is not an HTTP error. The response is 200 with
// "success": false and the reason in "error", alongside the unchanged state.
// Unknown action types are rejected with 400.
//
// Successful actions are pushed to WebSocket displays (/ws?session=ID).
//
// Errors are returned as JSON:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
package api
