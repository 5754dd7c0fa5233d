// Package mcp exposes hosted games as Model Context Protocol tools so AI
// agents can play them.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON response is rendered as text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: players, dice, center pot, owned deeds, pending auction
//   - legal_actions: what the seat to move may do, with deed IDs
//   - act: apply one action (take_turn, buy, bid, end_turn, ...)
//   - history: paginated action log
//   - standings: seats ranked by net worth
//   - reset_game
//   - list_configs, game_rules
//
// A rejected action is a normal tool result that explains the reason. Tool
// errors are reserved for transport failures, unknown sessions and unknown
// action types.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
