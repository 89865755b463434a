// Package config provides configuration management for the maze runner game.
//
// The config package handles:
//   - Loading maze presets from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Presets are stored as JSON files in the configs directory. The file name
// without its extension is the config id used when creating sessions.
// Each preset defines:
//   - Maze dimensions (rows, cols)
//   - The carving algorithm and growing-tree branch length
//   - Origin shifts applied after generation
//   - Coin count and whether the balance resets on regeneration
//   - Player-facing messages
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("labyrinth")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When the directory holds no valid preset, GetDefault falls back to
// engine.DefaultConfig.
package config
