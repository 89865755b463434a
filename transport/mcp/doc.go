// Package mcp exposes the maze runner game to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON reply is formatted into text for the agent. Mazes are
// drawn client-side from the wall masks in the game state.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session lifecycle
//   - game_state: maze drawing, position, exit and coins
//   - move, bulk_move: corridor movement, with an intent parameter
//   - regenerate, shift_origin: change the maze
//   - solution: path from the player to the exit
//   - coins, spend_coins: coin positions and balance
//   - move_history: paginated history
//   - list_configs, game_instructions, describe_cell
//
// Transport Modes:
//
// The same server is served over stdio (server.ServeStdio) or mounted on the
// HTTP router at /mcp by the main package.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
