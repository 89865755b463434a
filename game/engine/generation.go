package engine

import "context"

// ctxCheckInterval is how many steps RunContext takes between context checks
const ctxCheckInterval = 256

// Generation drives one generation cycle of a Maze. It is finite and cannot
// be restarted; once the maze regenerates, an older Generation does nothing.
type Generation struct {
	maze      *Maze
	gen       Generator
	cycleID   string
	algorithm string
	progress  float64
	steps     int
	done      bool
}

func newGeneration(m *Maze, gen Generator) *Generation {
	return &Generation{
		maze:      m,
		gen:       gen,
		cycleID:   m.cycleID,
		algorithm: gen.Name(),
	}
}

// Step performs one unit of generation work. It returns the progress in
// [0,1] and whether the maze is complete. The final step places the start,
// the player and the coins and puts the maze in play.
func (g *Generation) Step() (float64, bool) {
	if g.done {
		return g.progress, true
	}
	if g.Stale() {
		g.done = true
		return g.progress, true
	}

	p, finished := g.gen.Step()
	g.steps++
	if p > g.progress {
		g.progress = p
	}
	g.maze.progress = g.progress

	if finished {
		g.done = true
		g.progress = 1
		g.maze.finishGeneration()
	}
	return g.progress, g.done
}

// Run steps until the generation completes and returns the steps taken
func (g *Generation) Run() int {
	start := g.steps
	for !g.done {
		g.Step()
	}
	return g.steps - start
}

// RunContext is Run with cancellation checked every few hundred steps
func (g *Generation) RunContext(ctx context.Context) (int, error) {
	start := g.steps
	for !g.done {
		if (g.steps-start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return g.steps - start, err
			}
		}
		g.Step()
	}
	return g.steps - start, nil
}

// StepN performs at most n steps and returns how many were taken
func (g *Generation) StepN(n int) int {
	taken := 0
	for taken < n && !g.done {
		g.Step()
		taken++
	}
	return taken
}

// Stale reports whether the maze has moved on to a newer cycle
func (g *Generation) Stale() bool {
	return g.maze.cycleID != g.cycleID
}

// Progress returns the last reported progress
func (g *Generation) Progress() float64 { return g.progress }

// Done reports whether the generation has finished or gone stale
func (g *Generation) Done() bool { return g.done }

// Steps returns the number of steps taken so far
func (g *Generation) Steps() int { return g.steps }

// CycleID returns the cycle this generation belongs to
func (g *Generation) CycleID() string { return g.cycleID }

// Algorithm returns the generation algorithm name
func (g *Generation) Algorithm() string { return g.algorithm }
