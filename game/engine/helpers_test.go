package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedRand always answers v modulo n
type fixedRand struct {
	v int
}

func (f fixedRand) Intn(n int) int {
	return f.v % n
}

func createTestConfig(rows, cols int, algorithm string) *GameConfig {
	return &GameConfig{
		Name:         "test",
		Description:  "Configuration for engine tests",
		Rows:         rows,
		Cols:         cols,
		Algorithm:    algorithm,
		BranchLength: DefaultBranchLength,
		Messages: Messages{
			Welcome:       "Welcome to the test maze!",
			Generating:    "Generating...",
			Blocked:       "Blocked!",
			CoinCollected: "Coin! Balance: %d",
			Finished:      "Done!",
		},
	}
}

func newTestMaze(t *testing.T, config *GameConfig, seed int64) *Maze {
	t.Helper()
	m, err := NewMaze(config, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return m
}

func generatedMaze(t *testing.T, config *GameConfig, seed int64) *Maze {
	t.Helper()
	m := newTestMaze(t, config, seed)
	gen, err := m.Generate()
	require.NoError(t, err)
	gen.Run()
	require.True(t, gen.Done())
	return m
}

// requireSymmetric checks that neighbors agree on every shared wall and that
// the outer border is closed.
func requireSymmetric(t *testing.T, g *Grid) {
	t.Helper()
	for i := 0; i < g.Size(); i++ {
		id := CellID(i)
		for _, d := range Directions {
			n, ok := g.Step(id, d)
			if !ok {
				require.True(t, g.Walls(id).Has(d), "border wall %s of cell %d is open", d, id)
				continue
			}
			require.Equal(t, g.Walls(id).Has(d), g.Walls(n).Has(d.Opposite()),
				"cells %d and %d disagree on their shared wall", id, n)
		}
	}
}

// requirePerfect checks that the open-wall graph is a spanning tree
func requirePerfect(t *testing.T, g *Grid) {
	t.Helper()
	requireSymmetric(t, g)
	require.Equal(t, g.Size()-1, g.EdgeCount(), "a spanning tree has cells-1 edges")

	seen := make([]bool, g.Size())
	queue := []CellID{0}
	seen[0] = true
	reached := 1
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(id, func(n CellID) bool { return g.Connected(id, n) }) {
			if !seen[n] {
				seen[n] = true
				reached++
				queue = append(queue, n)
			}
		}
	}
	require.Equal(t, g.Size(), reached, "every cell must be reachable")
}

// handBuiltMaze returns an in-play maze whose grid has exactly the given
// passages. The parent index is rebuilt from the end cell.
func handBuiltMaze(t *testing.T, rows, cols int, passages [][2]CellID, end, player CellID) *Maze {
	t.Helper()
	m := newTestMaze(t, createTestConfig(rows, cols, AlgorithmBacktracker), 1)

	for _, p := range passages {
		require.True(t, m.grid.Connect(p[0], p[1]), "cells %d and %d are not adjacent", p[0], p[1])
	}

	m.parents = NewParentIndex(m.grid.Size())
	seen := map[CellID]bool{end: true}
	queue := []CellID{end}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range m.grid.Neighbors(id, func(n CellID) bool { return m.grid.Connected(id, n) && !seen[n] }) {
			seen[n] = true
			m.parents.Set(n, id)
			queue = append(queue, n)
		}
	}

	m.end = end
	m.start = player
	m.player = player
	m.status = StatusInPlay
	m.progress = 1
	return m
}
