package engine

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Rand is the uniform random source used by the engine. *math/rand.Rand
// satisfies it; tests inject seeded sources to get reproducible mazes.
type Rand interface {
	Intn(n int) int
}

// Generator carves a spanning tree into a grid one unit of work at a time
type Generator interface {
	// Step performs one unit of work and reports progress in [0,1] and
	// whether every cell has been reached.
	Step() (float64, bool)
	Name() string
}

// NewGenerator builds the named algorithm rooted at end. The grid and parent
// index are mutated in place as the generator advances.
func NewGenerator(name string, grid *Grid, parents *ParentIndex, end CellID, rng Rand, branchLength int) (Generator, error) {
	if !grid.Contains(end) {
		return nil, fmt.Errorf("%w: end cell %d", ErrInvalidCell, end)
	}

	base := carver{
		grid:    grid,
		parents: parents,
		rng:     rng,
		reached: mapset.New[CellID](),
		total:   grid.Size(),
	}
	base.reached.Put(end)

	switch name {
	case AlgorithmFrontier:
		return &frontierGenerator{carver: base, frontier: []CellID{end}}, nil
	case AlgorithmBacktracker:
		return &backtrackerGenerator{carver: base, path: []CellID{end}}, nil
	case AlgorithmGrowingTree:
		if branchLength <= 0 {
			branchLength = DefaultBranchLength
		}
		return &growingTreeGenerator{carver: base, pool: []CellID{end}, branchLength: branchLength}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// PickAlgorithm resolves "random" or "" into a concrete algorithm name
func PickAlgorithm(name string, rng Rand) string {
	if name == "" || name == AlgorithmRandom {
		return Algorithms[rng.Intn(len(Algorithms))]
	}
	return name
}

// carver holds the state shared by all algorithms
type carver struct {
	grid    *Grid
	parents *ParentIndex
	rng     Rand
	reached mapset.Set[CellID]
	total   int
}

func (c *carver) progress() float64 {
	return float64(c.reached.Size()) / float64(c.total)
}

func (c *carver) done() bool {
	return c.reached.Size() >= c.total
}

func (c *carver) unreached(id CellID) bool {
	return !c.reached.Has(id)
}

// link opens the wall from parent to child and records the tree edge
func (c *carver) link(parent, child CellID) {
	c.grid.Connect(parent, child)
	c.parents.Set(child, parent)
	c.reached.Put(child)
}

// removeAt deletes index i from s without preserving order
func removeAt(s []CellID, i int) []CellID {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}

// frontierGenerator grows the tree from a random frontier cell each step
type frontierGenerator struct {
	carver
	frontier []CellID
}

func (g *frontierGenerator) Name() string { return AlgorithmFrontier }

func (g *frontierGenerator) Step() (float64, bool) {
	if g.done() || len(g.frontier) == 0 {
		return g.progress(), true
	}

	idx := g.rng.Intn(len(g.frontier))
	current := g.frontier[idx]
	candidates := g.grid.Neighbors(current, g.unreached)

	if len(candidates) == 0 {
		g.frontier = removeAt(g.frontier, idx)
		return g.progress(), g.done()
	}

	next := candidates[g.rng.Intn(len(candidates))]
	g.link(current, next)
	g.frontier = append(g.frontier, next)

	// With its last open neighbor taken the cell is now interior
	if len(candidates) == 1 {
		g.frontier = removeAt(g.frontier, idx)
	}

	return g.progress(), g.done()
}

// backtrackerGenerator is a randomized depth-first search with an explicit path
type backtrackerGenerator struct {
	carver
	path []CellID
}

func (g *backtrackerGenerator) Name() string { return AlgorithmBacktracker }

func (g *backtrackerGenerator) Step() (float64, bool) {
	if g.done() || len(g.path) == 0 {
		return g.progress(), true
	}

	current := g.path[len(g.path)-1]
	candidates := g.grid.Neighbors(current, g.unreached)
	if len(candidates) == 0 {
		g.path = g.path[:len(g.path)-1]
		return g.progress(), g.done()
	}

	next := candidates[g.rng.Intn(len(candidates))]
	g.link(current, next)
	g.path = append(g.path, next)

	return g.progress(), g.done()
}

// growingTreeGenerator grows short random branches from random pool members.
// A pool member is retired only once it has no unreached neighbor left.
type growingTreeGenerator struct {
	carver
	pool         []CellID
	branchLength int

	current    CellID
	branchLeft int
}

func (g *growingTreeGenerator) Name() string { return AlgorithmGrowingTree }

func (g *growingTreeGenerator) Step() (float64, bool) {
	if g.done() {
		return g.progress(), true
	}

	if g.branchLeft == 0 {
		if len(g.pool) == 0 {
			return g.progress(), true
		}
		idx := g.rng.Intn(len(g.pool))
		g.current = g.pool[idx]
		if len(g.grid.Neighbors(g.current, g.unreached)) == 0 {
			g.pool = removeAt(g.pool, idx)
			return g.progress(), g.done()
		}
		g.branchLeft = g.branchLength
	}

	candidates := g.grid.Neighbors(g.current, g.unreached)
	if len(candidates) == 0 {
		g.branchLeft = 0
		return g.progress(), g.done()
	}

	next := candidates[g.rng.Intn(len(candidates))]
	g.link(g.current, next)
	g.pool = append(g.pool, next)
	g.current = next
	g.branchLeft--

	return g.progress(), g.done()
}
