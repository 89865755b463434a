package engine

// ShiftOrigin moves the end cell to a random neighbor times times, rewiring
// the spanning tree so it stays a perfect maze rooted at the new end. Each
// shift tends to lengthen the path from the start.
func (m *Maze) ShiftOrigin(times int) error {
	if m.status != StatusInPlay {
		return ErrNotInPlay
	}

	for i := 0; i < times; i++ {
		m.shiftOnce()
	}

	if m.player == m.end {
		m.finish()
	}
	return nil
}

// shiftOnce performs a single origin shift. A 1x1 grid has no neighbor to
// shift to and is left as is.
func (m *Maze) shiftOnce() bool {
	neighbors := m.grid.Neighbors(m.end, nil)
	if len(neighbors) == 0 {
		return false
	}

	next := neighbors[m.rng.Intn(len(neighbors))]
	if parent, ok := m.parents.Parent(next); ok {
		m.grid.Disconnect(next, parent)
		m.parents.SetRoot(next)
	}

	m.grid.Connect(next, m.end)
	m.parents.Set(m.end, next)
	m.end = next
	return true
}
