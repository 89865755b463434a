// Package engine provides the core logic of the maze runner game.
//
// The engine package implements:
//   - A rectangular wall grid with symmetric walls (Grid)
//   - Resumable spanning-tree generation with three algorithms
//   - A parent index rooted at the end cell for depths and solutions
//   - Origin shifting to lengthen solution paths after generation
//   - Corridor-running player movement and a coin balance
//
// Core Types:
//
// Maze implements the Engine interface and moves through the preparing,
// in_play and finished states. Generate returns a Generation whose Step method
// carves the maze a little at a time so callers can animate progress.
// GameState is a detached snapshot handed to presentation layers, while
// GameConfig describes dimensions, algorithm, coins and messages.
//
// Usage:
//
//	maze, err := engine.NewMaze(engine.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gen, err := maze.Generate()
//	if err != nil {
//		log.Fatal(err)
//	}
//	for {
//		progress, done := gen.Step()
//		draw(progress)
//		if done {
//			break
//		}
//	}
//
//	maze.Move("up")
//	path := maze.FindSolution()
//
// The engine is single-threaded. Callers that share a Maze between goroutines
// must serialize access, as the service package does.
package engine
