package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/wricardo/maze-runner-game/game/engine"
	"github.com/wricardo/maze-runner-game/game/service"
)

// renderState draws the maze from the wall masks in a GameState. The layout
// matches the server-side renderer so both views line up.
func renderState(state *engine.GameState) string {
	if state == nil || len(state.Walls) == 0 {
		return ""
	}

	coins := make(map[engine.Coord]bool, len(state.Coins))
	for _, c := range state.Coins {
		coins[c] = true
	}

	mark := func(pos engine.Coord) byte {
		switch {
		case pos == state.PlayerPos:
			return '@'
		case pos == state.End:
			return 'E'
		case pos == state.Start:
			return 'S'
		case coins[pos]:
			return '$'
		default:
			return ' '
		}
	}

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("---+", state.Cols) + "\n")
	for r, row := range state.Walls {
		b.WriteString("|")
		for c, walls := range row {
			b.WriteString(" ")
			b.WriteByte(mark(engine.Coord{Row: r, Col: c}))
			b.WriteString(" ")
			if walls.Has(engine.Right) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for _, walls := range row {
			if walls.Has(engine.Down) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatCoord(c engine.Coord) string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Maze: %dx%d (%s, cycle %s)\n", state.Rows, state.Cols, state.Algorithm, state.CycleID)
	fmt.Fprintf(&b, "Status: %s", state.Status)
	if state.Status == engine.StatusPreparing {
		fmt.Fprintf(&b, " (%.0f%% carved)", state.Progress*100)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Position: %s  Exit: %s  Start: %s\n",
		formatCoord(state.PlayerPos), formatCoord(state.End), formatCoord(state.Start))
	fmt.Fprintf(&b, "Coins: %d on the board, balance %d\n", len(state.Coins), state.CoinBalance)
	if len(state.PossibleDirs) > 0 {
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(state.PossibleDirs, ", "))
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	if state.GameOver {
		b.WriteString("GAME OVER - you reached the exit\n")
	}

	if grid := renderState(state); grid != "" {
		b.WriteString("\n")
		b.WriteString(grid)
		b.WriteString("Legend: @ you, E exit, S start, $ coin\n")
	}

	return b.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&b, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Last accessed: %s\n\n", session.LastAccessedAt.Format(time.RFC3339))
	b.WriteString(formatGameState(session.GameState))
	return b.String()
}

func formatMoveResult(direction string, result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "Moved %s from %s to %s (%d cells)\n",
			direction, formatCoord(result.From), formatCoord(result.To), result.Cells)
	} else {
		fmt.Fprintf(&b, "Could not move %s: %s\n", direction, result.Message)
		if result.BlockedReason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", result.BlockedReason)
		}
	}

	for _, event := range result.Events {
		if event.Type == service.EventMove {
			continue
		}
		fmt.Fprintf(&b, "• %s\n", event.Message)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d of %d moves\n", sessionID, result.MovesExecuted, result.RequestedMoves)
	fmt.Fprintf(&b, "From %s to %s, %d cells traveled, %d coins collected\n",
		formatCoord(result.StartPos), formatCoord(result.EndPos), result.CellsTraveled, result.CoinsCollected)

	if result.Truncated {
		fmt.Fprintf(&b, "Only the first %d moves were run\n", result.Limit)
	}
	if result.StopReasonCode != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s (%s)\n", result.StoppedOnMove, result.StoppedReason, result.StopReasonCode)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			var notes []string
			if step.Coin {
				notes = append(notes, "coin")
			}
			if step.Finished {
				notes = append(notes, "exit")
			}
			fmt.Fprintf(&b, "  %d. %s %s -> %s (%d cells)", step.Idx, step.Dir,
				formatCoord(step.From), formatCoord(step.To), step.Cells)
			if len(notes) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(notes, ", "))
			}
			b.WriteString("\n")
		}
	}

	if result.GameOver {
		b.WriteString("\nGAME OVER - you reached the exit\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatSolution(solution *service.SolutionResult) string {
	if solution.Steps == 0 {
		return "You are already at the exit"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Solution: %d steps\n", solution.Steps)
	fmt.Fprintf(&b, "Directions: %s\n", strings.Join(solution.Directions, ", "))
	path := lo.Map(solution.Path, func(c engine.Coord, _ int) string { return formatCoord(c) })
	fmt.Fprintf(&b, "Path: %s\n", strings.Join(path, " -> "))
	return b.String()
}

func formatCoins(coins *service.CoinsResult) string {
	var b strings.Builder
	if coins.Message != "" {
		fmt.Fprintf(&b, "%s\n", coins.Message)
	}
	fmt.Fprintf(&b, "Balance: %d\n", coins.Balance)
	if len(coins.Positions) == 0 {
		b.WriteString("No coins left on the board\n")
		return b.String()
	}
	positions := lo.Map(coins.Positions, func(c engine.Coord, _ int) string { return formatCoord(c) })
	fmt.Fprintf(&b, "Coins on the board (%d): %s\n", len(positions), strings.Join(positions, " "))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d total moves):\n\n", history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		b.WriteString("No moves yet\n")
		return b.String()
	}

	for _, move := range history.Moves {
		status := "ok"
		if !move.Success {
			status = "blocked"
		}
		fmt.Fprintf(&b, "#%d %s %s -> %s (%d cells, %s)", move.MoveNumber, move.Action,
			formatCoord(move.FromPosition), formatCoord(move.ToPosition), move.Cells, status)
		if move.CoinCollected {
			b.WriteString(" +coin")
		}
		b.WriteString("\n")
	}

	if history.HasNext {
		b.WriteString("\nMore moves on the next page\n")
	}
	return b.String()
}

func formatCellInfo(info *engine.CellInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell %s\n", formatCoord(info.Coord))
	if len(info.Open) == 0 {
		b.WriteString("Open: none\n")
	} else {
		fmt.Fprintf(&b, "Open: %s\n", strings.Join(info.Open, ", "))
	}
	fmt.Fprintf(&b, "Distance from exit: %d\n", info.Depth)

	var contents []string
	if info.Player {
		contents = append(contents, "player")
	}
	if info.IsEnd {
		contents = append(contents, "exit")
	}
	if info.IsStart {
		contents = append(contents, "start")
	}
	if info.HasCoin {
		contents = append(contents, "coin")
	}
	if len(contents) > 0 {
		fmt.Fprintf(&b, "Contains: %s\n", strings.Join(contents, ", "))
	}
	return b.String()
}
