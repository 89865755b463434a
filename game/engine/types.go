package engine

import (
	"errors"
	"strings"
)

// Direction is one of the four cardinal directions. The numeric value is the
// bit position of the matching wall in a WallMask.
type Direction uint8

const (
	Right Direction = iota
	Left
	Down
	Up
)

// Directions lists every direction in neighbor enumeration order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase name used by the API ("up", "down", ...)
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts an API direction string into a Direction
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "north":
		return Up, true
	case "down", "south":
		return Down, true
	case "left", "west":
		return Left, true
	case "right", "east":
		return Right, true
	default:
		return 0, false
	}
}

// Opposite returns the direction pointing back the way we came
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the row and column offset of one step in d
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Vertical reports whether d travels along a column
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// WallMask is the set of walls still standing around a cell
type WallMask uint8

const (
	WallRight WallMask = 1 << Right
	WallLeft  WallMask = 1 << Left
	WallDown  WallMask = 1 << Down
	WallUp    WallMask = 1 << Up

	// AllWalls is the mask every cell starts with
	AllWalls = WallUp | WallDown | WallLeft | WallRight

	corridorAlongRow    = WallUp | WallDown
	corridorAlongColumn = WallLeft | WallRight
)

// Has reports whether the wall on side d is present
func (w WallMask) Has(d Direction) bool {
	return w&(1<<d) != 0
}

// Open reports whether the wall on side d has been removed
func (w WallMask) Open(d Direction) bool {
	return !w.Has(d)
}

// Without returns w with the wall on side d removed
func (w WallMask) Without(d Direction) WallMask {
	return w &^ (1 << d)
}

// With returns w with the wall on side d present
func (w WallMask) With(d Direction) WallMask {
	return w | (1 << d)
}

// OpenCount returns how many sides of the cell are open
func (w WallMask) OpenCount() int {
	n := 0
	for _, d := range Directions {
		if w.Open(d) {
			n++
		}
	}
	return n
}

// IsCorridorAlongRow reports whether only the left and right walls are open
func (w WallMask) IsCorridorAlongRow() bool {
	return w&AllWalls == corridorAlongRow
}

// IsCorridorAlongColumn reports whether only the up and down walls are open
func (w WallMask) IsCorridorAlongColumn() bool {
	return w&AllWalls == corridorAlongColumn
}

// IsCorridorAlong reports whether travel in d passes straight through the cell
func (w WallMask) IsCorridorAlong(d Direction) bool {
	if d.Vertical() {
		return w.IsCorridorAlongColumn()
	}
	return w.IsCorridorAlongRow()
}

// CellID addresses a cell as row*cols + col
type CellID int

// Coord is a row/column grid position
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Status is the maze lifecycle state
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusInPlay    Status = "in_play"
	StatusFinished  Status = "finished"
)

// Generation algorithm names
const (
	AlgorithmRandom      = "random"
	AlgorithmFrontier    = "frontier"
	AlgorithmBacktracker = "backtracker"
	AlgorithmGrowingTree = "growing_tree"
)

// Algorithms lists the concrete generation algorithms
var Algorithms = []string{AlgorithmFrontier, AlgorithmBacktracker, AlgorithmGrowingTree}

const (
	// Validation constants
	MinDimension        = 1
	MaxDimension        = 200
	MaxBulkMoves        = 50
	DefaultBranchLength = 4

	// startDepthRatio is the fraction of the deepest cell's depth a start
	// cell has to exceed.
	startDepthRatio = 0.75
)

var (
	ErrInvalidDimension     = errors.New("invalid maze dimension")
	ErrInvalidCell          = errors.New("cell is outside the grid")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrAlreadyGenerated     = errors.New("maze already generated, regenerate instead")
	ErrNotInPlay            = errors.New("maze is not in play")
	ErrUnknownAlgorithm     = errors.New("unknown generation algorithm")
)

// GameState is a read-only snapshot of a maze handed to presentation layers
type GameState struct {
	Rows         int                `json:"rows"`
	Cols         int                `json:"cols"`
	Walls        [][]WallMask       `json:"walls"`
	Start        Coord              `json:"start"`
	End          Coord              `json:"end"`
	PlayerPos    Coord              `json:"player_pos"`
	Status       Status             `json:"status"`
	Algorithm    string             `json:"algorithm"`
	CycleID      string             `json:"cycle_id"`
	Progress     float64            `json:"progress"`
	Coins        []Coord            `json:"coins"`
	CoinBalance  int                `json:"coin_balance"`
	Message      string             `json:"message"`
	GameOver     bool               `json:"game_over"`
	ConfigName   string             `json:"config_name"`
	MoveHistory  []MoveHistoryEntry `json:"move_history"`
	TotalMoves   int                `json:"total_moves"`
	Regenerated  int                `json:"regenerated"`
	PossibleDirs []string           `json:"possible_moves,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action        string `json:"action"`
	FromPosition  Coord  `json:"from_position"`
	ToPosition    Coord  `json:"to_position"`
	Cells         int    `json:"cells"`
	CoinCollected bool   `json:"coin_collected,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	Success       bool   `json:"success"`
	MoveNumber    int    `json:"move_number"`
}
