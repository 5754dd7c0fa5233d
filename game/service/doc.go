// Package service provides the business logic layer for the board game engine.
//
// The service package implements:
//   - Multi-session game management
//   - Rule set loading through a ConfigManager
//   - Dispatch of named actions to the engine mutators
//   - Legal action reporting with a coarse turn phase
//   - Paginated action history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages rule set loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serializes
// access to them, since the engine itself is not safe for concurrent use.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Act(ctx, info.ID, service.Action{Type: service.ActionTakeTurn})
//
// Actions:
//
// Act never returns a Go error for a rule violation. The engine's rejection
// is reported in ActionResult.Error and recorded in the game history like any
// other attempt; only a missing session or an unknown action type is an error.
package service
