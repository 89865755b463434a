package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/wricardo/maze-runner-game/game/engine"
)

const (
	// MaxStepsPerCall bounds a single StepGeneration call
	MaxStepsPerCall = 10000
	// MaxShiftsPerCall bounds a single ShiftOrigin call
	MaxShiftsPerCall = 1000

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ErrInvalidArgument is returned for malformed requests such as an empty move list
var ErrInvalidArgument = errors.New("invalid argument")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// session looks up a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new game session. Unless animate is set the maze
// is fully generated before returning; animated sessions are advanced with
// StepGeneration.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, animate bool) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					configIDs := lo.Map(availableConfigs, func(cfg *ConfigInfo, _ int) string { return cfg.ConfigID })
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	gen, err := sess.Engine.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to start generation: %w", err)
	}
	if !animate {
		if _, err := gen.RunContext(ctx); err != nil {
			s.sessions.Delete(sess.ID)
			return nil, fmt.Errorf("generation interrupted: %w", err)
		}
	}

	log.Printf("[SESSION] created %s config=%s algorithm=%s animate=%t", sess.ID, config.Name, gen.Algorithm(), animate)

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.sessions.List(), func(sess *Session, _ int) *SessionInfo {
		return s.sessionInfo(sess, "")
	}), nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// StepGeneration advances the current generation cycle by up to steps steps
func (s *gameServiceImpl) StepGeneration(ctx context.Context, sessionID string, steps int) (*GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if steps <= 0 {
		steps = 1
	}
	if steps > MaxStepsPerCall {
		steps = MaxStepsPerCall
	}

	gen := sess.Engine.Generation()
	if gen == nil {
		if gen, err = sess.Engine.Generate(); err != nil {
			return nil, err
		}
	}

	taken := 0
	for taken < steps && !gen.Done() {
		if taken%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		taken += gen.StepN(1)
	}

	return generationResult(sess, gen, taken), nil
}

// Regenerate discards the session's maze and builds a new one
func (s *gameServiceImpl) Regenerate(ctx context.Context, sessionID string, animate bool) (*GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	gen, err := sess.Engine.Regenerate()
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate: %w", err)
	}

	taken := 0
	if !animate {
		if taken, err = gen.RunContext(ctx); err != nil {
			return nil, fmt.Errorf("generation interrupted: %w", err)
		}
	}

	log.Printf("[REGEN] session=%s cycle=%s algorithm=%s balance=%d", sess.ID, gen.CycleID(), gen.Algorithm(), sess.Engine.CoinBalance())
	return generationResult(sess, gen, taken), nil
}

func generationResult(sess *Session, gen *engine.Generation, taken int) *GenerationResult {
	return &GenerationResult{
		SessionID:  sess.ID,
		CycleID:    gen.CycleID(),
		Algorithm:  gen.Algorithm(),
		Progress:   gen.Progress(),
		Done:       gen.Done(),
		StepsTaken: taken,
		TotalSteps: gen.Steps(),
		GameState:  sess.Engine.GetState(),
	}
}

// ShiftOrigin moves the end cell of an in-play maze
func (s *gameServiceImpl) ShiftOrigin(ctx context.Context, sessionID string, times int) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if times <= 0 {
		times = 1
	}
	if times > MaxShiftsPerCall {
		times = MaxShiftsPerCall
	}

	if err := sess.Engine.ShiftOrigin(times); err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	log.Printf("[SHIFT] session=%s times=%d end=(%d,%d) status=%s", sess.ID, times, state.End.Row, state.End.Col, state.Status)
	return state, nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	step, reason := s.executeMove(sess, direction, 1)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:       reason == "",
		GameState:     state,
		Message:       state.Message,
		Events:        stepEvents(step, state),
		From:          step.From,
		To:            step.To,
		Cells:         step.Cells,
		BlockedReason: reason,
	}
	return result, nil
}

// executeMove applies one move and returns its trace and, when the move did
// not happen, the reason code.
func (s *gameServiceImpl) executeMove(sess *Session, direction string, idx int) (StepInfo, string) {
	maze := sess.Engine
	from := maze.GetState().PlayerPos
	step := StepInfo{Idx: idx, Dir: direction, From: from, To: from}

	switch {
	case maze.GameOver():
		return step, ReasonFinished
	case maze.Status() != engine.StatusInPlay:
		return step, ReasonNotInPlay
	}
	if _, ok := engine.ParseDirection(direction); !ok {
		maze.Move(direction)
		return step, ReasonInvalidDirection
	}

	if !maze.Move(direction) {
		log.Printf("[MOVE] session=%s BLOCKED %s at (%d,%d)", sess.ID, direction, from.Row, from.Col)
		return step, ReasonWall
	}

	last := maze.GetLastMove()
	step.To = last.ToPosition
	step.Cells = last.Cells
	step.Coin = last.CoinCollected
	step.Finished = maze.GameOver()

	log.Printf("[MOVE] session=%s %s (%d,%d)->(%d,%d) cells=%d coin=%t status=%s",
		sess.ID, direction, from.Row, from.Col, step.To.Row, step.To.Col, step.Cells, step.Coin, maze.Status())
	return step, ""
}

// stepEvents turns a move trace into game events
func stepEvents(step StepInfo, state *engine.GameState) []GameEvent {
	if step.Cells == 0 {
		return []GameEvent{}
	}

	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s %d cell(s) to (%d,%d)", step.Dir, step.Cells, step.To.Row, step.To.Col),
		Timestamp: now,
		Position:  step.To,
	}}
	if step.Coin {
		events = append(events, GameEvent{
			Type:      EventCoin,
			Message:   fmt.Sprintf("Coin collected! Balance: %d", state.CoinBalance),
			Timestamp: now,
			Position:  step.To,
		})
	}
	if step.Finished {
		events = append(events, GameEvent{
			Type:      EventFinished,
			Message:   state.Message,
			Timestamp: now,
			Position:  step.To,
		})
	}
	return events
}

// BulkMove executes multiple moves in sequence, stopping at the first move
// that does not happen.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: moves cannot be empty", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       sess.Engine.GetState().PlayerPos,
	}

	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		step, reason := s.executeMove(sess, move, i+1)
		if reason != "" {
			result.Success = reason == ReasonFinished && i > 0
			result.StopReasonCode = reason
			result.StoppedOnMove = i + 1
			result.StoppedReason = fmt.Sprintf("move %d (%s) not executed: %s", i+1, move, reason)
			break
		}

		result.MovesExecuted++
		result.CellsTraveled += step.Cells
		if step.Coin {
			result.CoinsCollected++
		}
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, stepEvents(step, sess.Engine.GetState())...)
	}

	state := sess.Engine.GetState()
	result.GameState = state
	result.EndPos = state.PlayerPos
	result.GameOver = state.GameOver
	result.Message = state.Message
	result.PossibleMoves = state.PossibleDirs

	log.Printf("[BULK] session=%s exec=%d/%d stop=%s end=(%d,%d) coins=%d",
		sess.ID, result.MovesExecuted, len(moves), result.StopReasonCode, result.EndPos.Row, result.EndPos.Col, result.CoinsCollected)
	return result, nil
}

// GetSolution returns the path from the player to the end cell
func (s *gameServiceImpl) GetSolution(ctx context.Context, sessionID string) (*SolutionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	path := sess.Engine.FindSolution()
	steps := 0
	if len(path) > 0 {
		steps = len(path) - 1
	}
	return &SolutionResult{
		Path:       path,
		Steps:      steps,
		Directions: pathDirections(path),
	}, nil
}

// pathDirections converts consecutive path cells into direction names
func pathDirections(path []engine.Coord) []string {
	dirs := make([]string, 0, len(path))
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		for _, d := range engine.Directions {
			dr, dc := d.Delta()
			if a.Row+dr == b.Row && a.Col+dc == b.Col {
				dirs = append(dirs, d.String())
				break
			}
		}
	}
	return dirs
}

// GetCoins returns the coin balance and the uncollected coin positions
func (s *gameServiceImpl) GetCoins(ctx context.Context, sessionID string) (*CoinsResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return coinsResult(sess.Engine, true, 0, ""), nil
}

// AddCoin credits the balance; non-positive amounts leave it unchanged
func (s *gameServiceImpl) AddCoin(ctx context.Context, sessionID string, amount int) (*CoinsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.AddCoin(amount)
	if amount <= 0 {
		return coinsResult(sess.Engine, false, amount, "amount must be positive"), nil
	}
	return coinsResult(sess.Engine, true, amount, fmt.Sprintf("Added %d coin(s)", amount)), nil
}

// SpendCoin debits the balance. Refused spends are reported, not returned as errors.
func (s *gameServiceImpl) SpendCoin(ctx context.Context, sessionID string, amount int) (*CoinsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Engine.SpendCoin(amount) {
		return coinsResult(sess.Engine, false, amount,
			fmt.Sprintf("Cannot spend %d coin(s) with a balance of %d", amount, sess.Engine.CoinBalance())), nil
	}
	return coinsResult(sess.Engine, true, amount, fmt.Sprintf("Spent %d coin(s)", amount)), nil
}

func coinsResult(maze *engine.Maze, success bool, amount int, message string) *CoinsResult {
	return &CoinsResult{
		Success:   success,
		Amount:    amount,
		Balance:   maze.CoinBalance(),
		Positions: maze.CoinsPos(),
		Message:   message,
	}
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// DescribeCell reports the walls and markers of one cell
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, cell engine.Coord) (*engine.CellInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.DescribeCell(cell)
}

// RenderMaze draws the session's maze as ASCII
func (s *gameServiceImpl) RenderMaze(ctx context.Context, sessionID string, withSolution bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}
	return sess.Engine.Render(withSolution), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
