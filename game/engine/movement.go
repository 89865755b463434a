package engine

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Move moves the player in direction. The player steps one cell through an
// open wall and then keeps running while the cell is a straight corridor
// along the direction of travel, stopping at junctions, dead ends and the
// end cell. Coins are only picked up on the cell where the run stops.
func (m *Maze) Move(direction string) bool {
	if m.status != StatusInPlay {
		return false
	}

	from := m.player
	d, ok := ParseDirection(direction)
	if !ok {
		m.message = fmt.Sprintf("Unknown direction %q", direction)
		m.addMoveToHistory(direction, from, from, 0, false, false)
		return false
	}

	if m.grid.Walls(from).Has(d) {
		m.message = m.config.Messages.Blocked
		if m.message == "" {
			m.message = fmt.Sprintf("Can't move %s", d)
		}
		m.addMoveToHistory(d.String(), from, from, 0, false, false)
		return false
	}

	cells := m.run(d)

	collected := m.coins.Collect(m.player)
	switch {
	case m.player == m.end:
		m.finish()
	case collected && m.config.Messages.CoinCollected != "":
		m.message = fmt.Sprintf(m.config.Messages.CoinCollected, m.coins.Balance())
	case collected:
		m.message = fmt.Sprintf("Coin collected! Balance: %d", m.coins.Balance())
	default:
		m.message = fmt.Sprintf("Moved %s %d cell(s)", d, cells)
	}

	m.addMoveToHistory(d.String(), from, m.player, cells, collected, true)
	return true
}

// run advances the player from its current cell and returns the cells covered
func (m *Maze) run(d Direction) int {
	next, ok := m.grid.Step(m.player, d)
	if !ok {
		return 0
	}
	m.player = next
	cells := 1

	for m.player != m.end && m.grid.Walls(m.player).IsCorridorAlong(d) {
		next, ok := m.grid.Step(m.player, d)
		if !ok {
			break
		}
		m.player = next
		cells++
	}

	return cells
}

// CanMove checks if the player can move in the specified direction
func (m *Maze) CanMove(direction string) bool {
	d, ok := ParseDirection(direction)
	return ok && m.canMove(d)
}

func (m *Maze) canMove(d Direction) bool {
	return m.status == StatusInPlay && m.grid.Walls(m.player).Open(d)
}

// GetPossibleMoves returns all valid directions the player can move
func (m *Maze) GetPossibleMoves() []string {
	return lo.FilterMap(Directions, func(d Direction, _ int) (string, bool) {
		return d.String(), m.canMove(d)
	})
}

// addMoveToHistory adds a move to the maze's cumulative move history
func (m *Maze) addMoveToHistory(action string, from, to CellID, cells int, coin, success bool) {
	m.totalMoves++
	m.history = append(m.history, MoveHistoryEntry{
		Action:        action,
		FromPosition:  m.grid.IDToCoord(from),
		ToPosition:    m.grid.IDToCoord(to),
		Cells:         cells,
		CoinCollected: coin,
		Timestamp:     time.Now().Unix(),
		Success:       success,
		MoveNumber:    m.totalMoves,
	})
}
