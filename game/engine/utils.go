package engine

// ManhattanDistance returns the grid distance between two positions, ignoring walls
func ManhattanDistance(from, to Coord) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
