package service

import (
	"time"

	"github.com/wricardo/maze-runner-game/game/engine"
)

// Event types reported by moves and generation
const (
	EventMove       = "move"
	EventCoin       = "coin"
	EventFinished   = "finished"
	EventRegenerate = "regenerate"
)

// Stop and block reason codes
const (
	ReasonWall             = "blocked_wall"
	ReasonInvalidDirection = "invalid_direction"
	ReasonNotInPlay        = "not_in_play"
	ReasonFinished         = "finished"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// GenerationResult reports the progress of a generation cycle
type GenerationResult struct {
	SessionID  string            `json:"session_id"`
	CycleID    string            `json:"cycle_id"`
	Algorithm  string            `json:"algorithm"`
	Progress   float64           `json:"progress"`
	Done       bool              `json:"done"`
	StepsTaken int               `json:"steps_taken"`
	TotalSteps int               `json:"total_steps"`
	GameState  *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success       bool              `json:"success"`
	GameState     *engine.GameState `json:"game_state"`
	Message       string            `json:"message"`
	Events        []GameEvent       `json:"events,omitempty"`
	From          engine.Coord      `json:"from"`
	To            engine.Coord      `json:"to"`
	Cells         int               `json:"cells"`
	BlockedReason string            `json:"blocked_reason,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked_wall|invalid_direction|not_in_play|finished
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos       engine.Coord `json:"start_pos"`
	EndPos         engine.Coord `json:"end_pos"`
	CellsTraveled  int          `json:"cells_traveled"`
	CoinsCollected int          `json:"coins_collected"`

	Steps []StepInfo `json:"steps,omitempty"`

	GameOver      bool     `json:"game_over"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx      int          `json:"idx"`
	Dir      string       `json:"dir"`
	From     engine.Coord `json:"from"`
	To       engine.Coord `json:"to"`
	Cells    int          `json:"cells"`
	Coin     bool         `json:"coin,omitempty"`
	Finished bool         `json:"finished,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "move", "coin", "finished", "regenerate"
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Position  engine.Coord `json:"position"`
}

// SolutionResult is the path from the player to the end cell
type SolutionResult struct {
	Path       []engine.Coord `json:"path"`
	Steps      int            `json:"steps"`
	Directions []string       `json:"directions"`
}

// CoinsResult reports coin positions and the balance
type CoinsResult struct {
	Success   bool           `json:"success"`
	Amount    int            `json:"amount,omitempty"`
	Balance   int            `json:"balance"`
	Positions []engine.Coord `json:"positions"`
	Message   string         `json:"message,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Algorithm   string `json:"algorithm"`
	Coins       int    `json:"coins"`
}
