package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Engine provides the main interface for maze operations
type Engine interface {
	// Generation lifecycle
	Generate() (*Generation, error)
	Regenerate() (*Generation, error)
	ShiftOrigin(times int) error
	Status() Status
	GameOver() bool

	// Movement operations
	Move(direction string) bool
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Queries
	GetState() *GameState
	GetConfig() *GameConfig
	FindSolution() []Coord
	DescribeCell(c Coord) (*CellInfo, error)
	Stats() MazeStats
	Render(withSolution bool) string

	// Coins
	CoinsPos() []Coord
	AddCoin(amount int)
	SpendCoin(amount int) bool
	CoinBalance() int

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

var _ Engine = (*Maze)(nil)

// Maze is the maze controller. It owns the grid, the spanning tree, the
// player and the coins, and moves through preparing, in_play and finished.
// A Maze is not safe for concurrent use.
type Maze struct {
	config *GameConfig
	rng    Rand

	grid    *Grid
	parents *ParentIndex
	coins   *CoinManager

	end    CellID
	start  CellID
	player CellID

	status     Status
	algorithm  string
	cycleID    string
	progress   float64
	generation *Generation

	message     string
	history     []MoveHistoryEntry
	totalMoves  int
	regenerated int
}

// CellInfo describes a single cell for inspection tools
type CellInfo struct {
	Coord   Coord    `json:"coord"`
	Walls   WallMask `json:"walls"`
	Open    []string `json:"open"`
	IsStart bool     `json:"is_start"`
	IsEnd   bool     `json:"is_end"`
	Player  bool     `json:"player"`
	HasCoin bool     `json:"has_coin"`
	Depth   int      `json:"depth"`
}

// MazeStats summarizes the shape of a generated maze
type MazeStats struct {
	Algorithm      string `json:"algorithm"`
	Cells          int    `json:"cells"`
	Edges          int    `json:"edges"`
	DeadEnds       int    `json:"dead_ends"`
	Junctions      int    `json:"junctions"`
	MaxDepth       int    `json:"max_depth"`
	SolutionLength int    `json:"solution_length"`
	StraightLine   int    `json:"straight_line"` // start to end, ignoring walls
}

// NewMaze creates a maze for the given configuration. The maze starts in the
// preparing state; call Generate and drive the returned Generation to build it.
// A nil rng is replaced by a source seeded from config.Seed, or the clock when
// the seed is zero.
func NewMaze(config *GameConfig, rng Rand) (*Maze, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	if rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	m := &Maze{
		config:  config,
		rng:     rng,
		coins:   NewCoinManager(),
		history: []MoveHistoryEntry{},
	}
	if err := m.resetCycle(); err != nil {
		return nil, err
	}

	return m, nil
}

// resetCycle reallocates the grid and tree and rolls a new end cell,
// algorithm and cycle id.
func (m *Maze) resetCycle() error {
	grid, err := NewGrid(m.config.Rows, m.config.Cols)
	if err != nil {
		return err
	}

	m.grid = grid
	m.parents = NewParentIndex(grid.Size())
	m.end = CellID(m.rng.Intn(grid.Size()))
	m.start = m.end
	m.player = m.end
	m.algorithm = PickAlgorithm(m.config.Algorithm, m.rng)
	m.cycleID = uuid.NewString()
	m.status = StatusPreparing
	m.progress = 0
	m.generation = nil
	m.coins.Clear(m.config.ResetBalanceOnRegen)
	m.message = m.config.Messages.Generating
	if m.message == "" {
		m.message = m.config.Messages.Welcome
	}
	return nil
}

// SetEnd pins the end cell before generation starts
func (m *Maze) SetEnd(id CellID) error {
	if m.status != StatusPreparing {
		return ErrAlreadyGenerated
	}
	if m.generation != nil {
		return ErrGenerationInProgress
	}
	if !m.grid.Contains(id) {
		return fmt.Errorf("%w: %d", ErrInvalidCell, id)
	}
	m.end = id
	m.start = id
	m.player = id
	return nil
}

// Generate starts the generation of the current cycle
func (m *Maze) Generate() (*Generation, error) {
	if m.generation != nil && !m.generation.Done() {
		return nil, ErrGenerationInProgress
	}
	if m.status != StatusPreparing {
		return nil, ErrAlreadyGenerated
	}

	gen, err := NewGenerator(m.algorithm, m.grid, m.parents, m.end, m.rng, m.config.BranchLength)
	if err != nil {
		return nil, err
	}

	m.generation = newGeneration(m, gen)
	return m.generation, nil
}

// Regenerate discards the current maze and starts a fresh cycle. Any
// Generation handed out earlier stops doing work.
func (m *Maze) Regenerate() (*Generation, error) {
	m.regenerated++
	if err := m.resetCycle(); err != nil {
		return nil, err
	}
	return m.Generate()
}

// finishGeneration runs once the spanning tree covers the grid
func (m *Maze) finishGeneration() {
	m.progress = 1

	for i := 0; i < m.config.OriginShifts; i++ {
		m.shiftOnce()
	}

	m.start = m.parents.PickStartCell(m.rng)
	m.player = m.start
	m.coins.Place(m.config.Coins, m.grid.Size(), m.rng, m.start, m.end, m.player)

	m.status = StatusInPlay
	m.message = m.config.Messages.Welcome

	// Only a single-cell maze can start on its own exit
	if m.player == m.end {
		m.finish()
	}
}

func (m *Maze) finish() {
	m.status = StatusFinished
	m.message = m.config.Messages.Finished
}

// Status returns the lifecycle state
func (m *Maze) Status() Status {
	return m.status
}

// GameOver reports whether the player has reached the end cell
func (m *Maze) GameOver() bool {
	return m.status == StatusFinished
}

// Progress returns the generation progress of the current cycle
func (m *Maze) Progress() float64 {
	return m.progress
}

// CycleID returns the id of the current generation cycle
func (m *Maze) CycleID() string {
	return m.cycleID
}

// Algorithm returns the algorithm used by the current cycle
func (m *Maze) Algorithm() string {
	return m.algorithm
}

// Generation returns the generation of the current cycle, if one was started
func (m *Maze) Generation() *Generation {
	return m.generation
}

// GetConfig returns the maze configuration
func (m *Maze) GetConfig() *GameConfig {
	return m.config
}

// Grid exposes the wall grid for read-only inspection
func (m *Maze) Grid() *Grid {
	return m.grid
}

// Parents exposes the spanning tree for read-only inspection
func (m *Maze) Parents() *ParentIndex {
	return m.parents
}

// End returns the end cell
func (m *Maze) End() CellID { return m.end }

// Start returns the start cell
func (m *Maze) Start() CellID { return m.start }

// Player returns the cell the player stands on
func (m *Maze) Player() CellID { return m.player }

// FindSolution returns the cells from the player to the end, both included.
// It is empty until the maze is generated.
func (m *Maze) FindSolution() []Coord {
	if m.status == StatusPreparing {
		return []Coord{}
	}
	return lo.Map(m.parents.PathToRoot(m.player), func(id CellID, _ int) Coord {
		return m.grid.IDToCoord(id)
	})
}

// CoinsPos returns the positions of uncollected coins
func (m *Maze) CoinsPos() []Coord {
	return lo.Map(m.coins.Cells(), func(id CellID, _ int) Coord {
		return m.grid.IDToCoord(id)
	})
}

// AddCoin credits the balance; non-positive amounts are ignored
func (m *Maze) AddCoin(amount int) {
	m.coins.Add(amount)
}

// SpendCoin debits the balance, refusing negative or unaffordable amounts
func (m *Maze) SpendCoin(amount int) bool {
	return m.coins.Spend(amount)
}

// CoinBalance returns the player's coin balance
func (m *Maze) CoinBalance() int {
	return m.coins.Balance()
}

// DescribeCell reports walls, markers and tree depth of a single cell
func (m *Maze) DescribeCell(c Coord) (*CellInfo, error) {
	if !m.grid.InBounds(c.Row, c.Col) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, c.Row, c.Col)
	}
	id := m.grid.CoordToID(c)
	walls := m.grid.Walls(id)

	open := lo.FilterMap(Directions, func(d Direction, _ int) (string, bool) {
		return d.String(), walls.Open(d)
	})

	return &CellInfo{
		Coord:   c,
		Walls:   walls,
		Open:    open,
		IsStart: m.status != StatusPreparing && id == m.start,
		IsEnd:   id == m.end,
		Player:  m.status != StatusPreparing && id == m.player,
		HasCoin: m.coins.Has(id),
		Depth:   m.parents.Depth(id),
	}, nil
}

// Stats summarizes the current maze
func (m *Maze) Stats() MazeStats {
	stats := MazeStats{
		Algorithm: m.algorithm,
		Cells:     m.grid.Size(),
		Edges:     m.grid.EdgeCount(),
	}

	for id := 0; id < m.grid.Size(); id++ {
		switch open := m.grid.Walls(CellID(id)).OpenCount(); {
		case open == 1:
			stats.DeadEnds++
		case open >= 3:
			stats.Junctions++
		}
	}

	stats.MaxDepth = lo.Max(m.parents.Depths())
	if m.status != StatusPreparing {
		stats.SolutionLength = len(m.parents.PathToRoot(m.start)) - 1
		stats.StraightLine = ManhattanDistance(m.grid.IDToCoord(m.start), m.grid.IDToCoord(m.end))
	}
	return stats
}

// Render draws the maze as ASCII: S start, E end, @ player, $ coin and, when
// withSolution is set, . along the path from the player to the end.
func (m *Maze) Render(withSolution bool) string {
	onPath := map[CellID]bool{}
	if withSolution && m.status != StatusPreparing {
		for _, id := range m.parents.PathToRoot(m.player) {
			onPath[id] = true
		}
	}

	generated := m.status != StatusPreparing
	return m.grid.render(func(id CellID) byte {
		switch {
		case generated && id == m.player:
			return '@'
		case id == m.end:
			return 'E'
		case generated && id == m.start:
			return 'S'
		case m.coins.Has(id):
			return '$'
		case onPath[id]:
			return '.'
		default:
			return ' '
		}
	})
}

// GetState returns a snapshot of the maze that shares no memory with it
func (m *Maze) GetState() *GameState {
	state := &GameState{
		Rows:         m.grid.Rows(),
		Cols:         m.grid.Cols(),
		Walls:        m.grid.Matrix(),
		Start:        m.grid.IDToCoord(m.start),
		End:          m.grid.IDToCoord(m.end),
		PlayerPos:    m.grid.IDToCoord(m.player),
		Status:       m.status,
		Algorithm:    m.algorithm,
		CycleID:      m.cycleID,
		Progress:     m.progress,
		Coins:        m.CoinsPos(),
		CoinBalance:  m.coins.Balance(),
		Message:      m.message,
		GameOver:     m.GameOver(),
		ConfigName:   m.config.Name,
		MoveHistory:  append([]MoveHistoryEntry{}, m.history...),
		TotalMoves:   m.totalMoves,
		Regenerated:  m.regenerated,
		PossibleDirs: m.GetPossibleMoves(),
	}
	return state
}

// GetMoveHistory returns the complete move history
func (m *Maze) GetMoveHistory() []MoveHistoryEntry {
	return m.history
}

// GetLastMove returns the last move made, or nil if no moves
func (m *Maze) GetLastMove() *MoveHistoryEntry {
	if len(m.history) == 0 {
		return nil
	}
	return &m.history[len(m.history)-1]
}

// BulkMove executes multiple moves in sequence, returning success status for each
func (m *Maze) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if m.GameOver() {
			break
		}
		results = append(results, m.Move(direction))
	}

	return results
}
