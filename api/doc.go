// Package api provides HTTP REST API handlers for the maze runner game.
//
// The api package implements:
//   - Session management endpoints
//   - Maze generation, stepping, regeneration and origin shifting
//   - Movement, solutions, coins and move history
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "tiny", "animate": true})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Generation:
//   - POST /api/sessions/{id}/generate/step - Advance an animated generation ({"steps": 50})
//   - POST /api/sessions/{id}/regen - Discard the maze and build a new one ({"animate": false})
//   - POST /api/sessions/{id}/shift-origin - Move the end cell ({"times": 10})
//
// Play:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - One corridor run ({"direction": "up"})
//   - POST /api/sessions/{id}/bulk-move - Several runs ({"moves": ["up", "left"]})
//   - GET /api/sessions/{id}/solution - Path from the player to the end
//   - GET /api/sessions/{id}/history - Paginated move history (?page=&limit=&order=)
//   - GET /api/sessions/{id}/cell?row=&col= - Walls, depth and contents of one cell
//   - GET /api/sessions/{id}/render?solution=true - ASCII rendering (text/plain)
//
// Coins:
//   - GET /api/sessions/{id}/coins - Positions and balance
//   - POST /api/sessions/{id}/coins/add - Credit the balance ({"amount": 2})
//   - POST /api/sessions/{id}/coins/spend - Debit the balance ({"amount": 1})
//
// Configuration:
//   - GET /api/configs - List presets
//   - POST /api/configs - Save a preset
//   - GET /api/configs/{name} - Get a preset
//
// Other:
//   - GET /ws?session={id} - WebSocket stream of state and generation progress
//   - GET /health - Liveness
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. Unknown sessions and configs
// map to 404, malformed input to 400, and operations that do not fit the
// maze's current status (moving while preparing, generating twice) to 409.
package api
