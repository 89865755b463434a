package service

import (
	"context"
	"time"

	"github.com/wricardo/maze-runner-game/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, animate bool) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Generation
	StepGeneration(ctx context.Context, sessionID string, steps int) (*GenerationResult, error)
	Regenerate(ctx context.Context, sessionID string, animate bool) (*GenerationResult, error)
	ShiftOrigin(ctx context.Context, sessionID string, times int) (*engine.GameState, error)

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error)
	GetSolution(ctx context.Context, sessionID string) (*SolutionResult, error)

	// Coins
	GetCoins(ctx context.Context, sessionID string) (*CoinsResult, error)
	AddCoin(ctx context.Context, sessionID string, amount int) (*CoinsResult, error)
	SpendCoin(ctx context.Context, sessionID string, amount int) (*CoinsResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	DescribeCell(ctx context.Context, sessionID string, cell engine.Coord) (*engine.CellInfo, error)
	RenderMaze(ctx context.Context, sessionID string, withSolution bool) (string, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Maze
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
