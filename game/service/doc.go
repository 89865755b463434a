// Package service provides the business logic layer for the maze runner game.
//
// The service package implements:
//   - Multi-session maze management
//   - Animated or immediate maze generation and regeneration
//   - Move processing with corridor runs, coins and events
//   - Origin shifting, solutions and coin spending
//   - Move history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns its own engine.Maze; the service serializes
// access to them because the engine itself is single-threaded.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a session and generate its maze right away
//	info, err := gameService.CreateSession(ctx, "classic", false)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Or animate: create with animate=true and call StepGeneration until Done
//	result, err := gameService.Move(ctx, info.ID, "up")
package service
