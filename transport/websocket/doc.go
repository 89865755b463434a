// Package websocket provides WebSocket transport for the maze runner game.
//
// The websocket package implements:
//   - Session-scoped broadcast of game state after every change
//   - Generation progress frames while a maze is being carved
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// A central Hub owns all connections. Its Run loop is the only goroutine that
// touches the client map; registrations, unregistrations and broadcasts reach
// it over channels. Each client has a read pump and a write pump.
//
// Message Protocol:
//
// Clients connect with /ws?session=<id> and only receive. Every frame is one
// JSON Message:
//   - {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//   - {"session_id": "ab12", "event": "generation_progress", "data": {"cycle_id": "...", "progress": 0.4, "done": false}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
