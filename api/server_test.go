package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/maze-runner-game/game/config"
	"github.com/wricardo/maze-runner-game/game/engine"
	"github.com/wricardo/maze-runner-game/game/service"
	"github.com/wricardo/maze-runner-game/game/session"
	"github.com/wricardo/maze-runner-game/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateSessionFunc  func(ctx context.Context, configName string, animate bool) (*service.SessionInfo, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc   func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc  func(ctx context.Context, sessionID string) error
	StepGenerationFunc func(ctx context.Context, sessionID string, steps int) (*service.GenerationResult, error)
	RegenerateFunc     func(ctx context.Context, sessionID string, animate bool) (*service.GenerationResult, error)
	ShiftOriginFunc    func(ctx context.Context, sessionID string, times int) (*engine.GameState, error)
	MoveFunc           func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error)
	BulkMoveFunc       func(ctx context.Context, sessionID string, moves []string) (*service.BulkMoveResult, error)
	GetSolutionFunc    func(ctx context.Context, sessionID string) (*service.SolutionResult, error)
	GetCoinsFunc       func(ctx context.Context, sessionID string) (*service.CoinsResult, error)
	AddCoinFunc        func(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error)
	SpendCoinFunc      func(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error)
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	DescribeCellFunc   func(ctx context.Context, sessionID string, cell engine.Coord) (*engine.CellInfo, error)
	RenderMazeFunc     func(ctx context.Context, sessionID string, withSolution bool) (string, error)
	ListConfigsFunc    func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc     func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc     func(ctx context.Context, configName string, cfg *engine.GameConfig) error
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string, animate bool) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName, animate)
	}
	return &service.SessionInfo{ID: "ab12", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) StepGeneration(ctx context.Context, sessionID string, steps int) (*service.GenerationResult, error) {
	if m.StepGenerationFunc != nil {
		return m.StepGenerationFunc(ctx, sessionID, steps)
	}
	return &service.GenerationResult{SessionID: sessionID, StepsTaken: steps, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Regenerate(ctx context.Context, sessionID string, animate bool) (*service.GenerationResult, error) {
	if m.RegenerateFunc != nil {
		return m.RegenerateFunc(ctx, sessionID, animate)
	}
	return &service.GenerationResult{SessionID: sessionID, Done: !animate, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) ShiftOrigin(ctx context.Context, sessionID string, times int) (*engine.GameState, error) {
	if m.ShiftOriginFunc != nil {
		return m.ShiftOriginFunc(ctx, sessionID, times)
	}
	return &engine.GameState{Status: engine.StatusInPlay}, nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, direction)
	}
	return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) BulkMove(ctx context.Context, sessionID string, moves []string) (*service.BulkMoveResult, error) {
	if m.BulkMoveFunc != nil {
		return m.BulkMoveFunc(ctx, sessionID, moves)
	}
	return &service.BulkMoveResult{MovesExecuted: len(moves), RequestedMoves: len(moves), Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) GetSolution(ctx context.Context, sessionID string) (*service.SolutionResult, error) {
	if m.GetSolutionFunc != nil {
		return m.GetSolutionFunc(ctx, sessionID)
	}
	return &service.SolutionResult{}, nil
}

func (m *MockGameService) GetCoins(ctx context.Context, sessionID string) (*service.CoinsResult, error) {
	if m.GetCoinsFunc != nil {
		return m.GetCoinsFunc(ctx, sessionID)
	}
	return &service.CoinsResult{Success: true}, nil
}

func (m *MockGameService) AddCoin(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error) {
	if m.AddCoinFunc != nil {
		return m.AddCoinFunc(ctx, sessionID, amount)
	}
	return &service.CoinsResult{Success: true, Amount: amount, Balance: amount}, nil
}

func (m *MockGameService) SpendCoin(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error) {
	if m.SpendCoinFunc != nil {
		return m.SpendCoinFunc(ctx, sessionID, amount)
	}
	return &service.CoinsResult{Success: true, Amount: amount}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{Status: engine.StatusInPlay}, nil
}

func (m *MockGameService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
}

func (m *MockGameService) DescribeCell(ctx context.Context, sessionID string, cell engine.Coord) (*engine.CellInfo, error) {
	if m.DescribeCellFunc != nil {
		return m.DescribeCellFunc(ctx, sessionID, cell)
	}
	return &engine.CellInfo{}, nil
}

func (m *MockGameService) RenderMaze(ctx context.Context, sessionID string, withSolution bool) (string, error) {
	if m.RenderMazeFunc != nil {
		return m.RenderMazeFunc(ctx, sessionID, withSolution)
	}
	return "+---+\n| @ |\n+---+\n", nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return engine.DefaultConfig(), nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, cfg *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, cfg)
	}
	return nil
}

// recordingBroadcaster captures what handlers push to live viewers
type recordingBroadcaster struct {
	states   []string
	progress []websocket.GenerationProgress
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID string, state *engine.GameState) {
	b.states = append(b.states, sessionID)
}

func (b *recordingBroadcaster) BroadcastProgress(sessionID string, progress websocket.GenerationProgress) {
	b.progress = append(b.progress, progress)
}

func newTestServer(mock *MockGameService) (*Server, *recordingBroadcaster) {
	server := NewServer(mock, nil)
	events := &recordingBroadcaster{}
	server.events = events
	return server, events
}

func doRequest(server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		wantConfig  string
		wantAnimate bool
	}{
		{"no body", nil, "", false},
		{"config_id", map[string]interface{}{"config_id": "tiny"}, "tiny", false},
		{"deprecated config_name", map[string]interface{}{"config_name": "labyrinth"}, "labyrinth", false},
		{"animated", map[string]interface{}{"config_id": "tiny", "animate": true}, "tiny", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotConfig string
			var gotAnimate bool
			server, _ := newTestServer(&MockGameService{
				CreateSessionFunc: func(ctx context.Context, configName string, animate bool) (*service.SessionInfo, error) {
					gotConfig, gotAnimate = configName, animate
					return &service.SessionInfo{ID: "ab12", ConfigName: configName}, nil
				},
			})

			w := doRequest(server, "POST", "/api/sessions", tt.body)
			if w.Code != http.StatusCreated {
				t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
			}
			if gotConfig != tt.wantConfig || gotAnimate != tt.wantAnimate {
				t.Errorf("Expected (%q, %t), got (%q, %t)", tt.wantConfig, tt.wantAnimate, gotConfig, gotAnimate)
			}
		})
	}
}

func TestCreateSessionErrors(t *testing.T) {
	t.Run("unknown config is 404", func(t *testing.T) {
		server, _ := newTestServer(&MockGameService{
			CreateSessionFunc: func(ctx context.Context, configName string, animate bool) (*service.SessionInfo, error) {
				return nil, fmt.Errorf("config '%s' not found: %w", configName, config.ErrConfigNotFound)
			},
		})

		w := doRequest(server, "POST", "/api/sessions", map[string]string{"config_id": "nope"})
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		server, _ := newTestServer(&MockGameService{})
		w := doRequest(server, "POST", "/api/sessions", "{not json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	server, _ := newTestServer(&MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old1", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new1", CreatedAt: now, LastAccessedAt: now},
				{ID: "mid1", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-30 * time.Minute)},
			}, nil
		},
	})

	t.Run("default sorts by last access descending", func(t *testing.T) {
		w := doRequest(server, "GET", "/api/sessions", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp struct {
			Count    int                    `json:"count"`
			Total    int                    `json:"total"`
			Sessions []*service.SessionInfo `json:"sessions"`
		}
		decodeBody(t, w, &resp)

		if resp.Count != 3 || resp.Total != 3 {
			t.Errorf("Expected count 3 total 3, got %d/%d", resp.Count, resp.Total)
		}
		if resp.Sessions[0].ID != "new1" || resp.Sessions[2].ID != "old1" {
			t.Errorf("Unexpected order: %s, %s, %s", resp.Sessions[0].ID, resp.Sessions[1].ID, resp.Sessions[2].ID)
		}
	})

	t.Run("created ascending with limit", func(t *testing.T) {
		w := doRequest(server, "GET", "/api/sessions?sort=created&order=asc&limit=2", nil)

		var resp struct {
			Count    int                    `json:"count"`
			Total    int                    `json:"total"`
			Sessions []*service.SessionInfo `json:"sessions"`
		}
		decodeBody(t, w, &resp)

		if resp.Count != 2 || resp.Total != 3 {
			t.Errorf("Expected count 2 total 3, got %d/%d", resp.Count, resp.Total)
		}
		if resp.Sessions[0].ID != "old1" || resp.Sessions[1].ID != "mid1" {
			t.Errorf("Unexpected order: %s, %s", resp.Sessions[0].ID, resp.Sessions[1].ID)
		}
	})
}

func TestGetAndDeleteSession(t *testing.T) {
	server, _ := newTestServer(&MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "ab12" {
				return nil, fmt.Errorf("session not found: %w", session.ErrSessionNotFound)
			}
			return &service.SessionInfo{ID: sessionID}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "ab12" {
				return session.ErrSessionNotFound
			}
			return nil
		},
	})

	tests := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/sessions/ab12", http.StatusOK},
		{"GET", "/api/sessions/zzzz", http.StatusNotFound},
		{"DELETE", "/api/sessions/ab12", http.StatusOK},
		{"DELETE", "/api/sessions/zzzz", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doRequest(server, tt.method, tt.path, nil)
			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestGenerateStep(t *testing.T) {
	var gotSteps int
	server, events := newTestServer(&MockGameService{
		StepGenerationFunc: func(ctx context.Context, sessionID string, steps int) (*service.GenerationResult, error) {
			gotSteps = steps
			return &service.GenerationResult{
				SessionID:  sessionID,
				CycleID:    "cycle-1",
				Algorithm:  engine.AlgorithmBacktracker,
				Progress:   0.25,
				StepsTaken: steps,
				TotalSteps: steps,
				GameState:  &engine.GameState{Status: engine.StatusPreparing},
			}, nil
		},
	})

	t.Run("explicit steps", func(t *testing.T) {
		w := doRequest(server, "POST", "/api/sessions/ab12/generate/step", map[string]int{"steps": 25})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if gotSteps != 25 {
			t.Errorf("Expected 25 steps, got %d", gotSteps)
		}

		var result service.GenerationResult
		decodeBody(t, w, &result)
		if result.CycleID != "cycle-1" || result.Progress != 0.25 {
			t.Errorf("Unexpected result: %+v", result)
		}
	})

	t.Run("empty body defaults to one step", func(t *testing.T) {
		doRequest(server, "POST", "/api/sessions/ab12/generate/step", nil)
		if gotSteps != 1 {
			t.Errorf("Expected 1 step, got %d", gotSteps)
		}
	})

	if len(events.progress) != 2 {
		t.Fatalf("Expected 2 progress frames, got %d", len(events.progress))
	}
	if events.progress[0].CycleID != "cycle-1" || events.progress[0].Algorithm != engine.AlgorithmBacktracker {
		t.Errorf("Unexpected progress frame: %+v", events.progress[0])
	}
	if len(events.states) != 2 {
		t.Errorf("Expected 2 state broadcasts, got %d", len(events.states))
	}
}

func TestRegenerate(t *testing.T) {
	var gotAnimate bool
	server, events := newTestServer(&MockGameService{
		RegenerateFunc: func(ctx context.Context, sessionID string, animate bool) (*service.GenerationResult, error) {
			gotAnimate = animate
			return &service.GenerationResult{SessionID: sessionID, Done: true, Progress: 1, GameState: &engine.GameState{}}, nil
		},
	})

	w := doRequest(server, "POST", "/api/sessions/ab12/regen", map[string]bool{"animate": true})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !gotAnimate {
		t.Error("Expected animate to be forwarded")
	}
	if len(events.progress) != 1 || !events.progress[0].Done {
		t.Errorf("Expected one finished progress frame, got %+v", events.progress)
	}
}

func TestShiftOrigin(t *testing.T) {
	t.Run("shifts and broadcasts", func(t *testing.T) {
		var gotTimes int
		server, events := newTestServer(&MockGameService{
			ShiftOriginFunc: func(ctx context.Context, sessionID string, times int) (*engine.GameState, error) {
				gotTimes = times
				return &engine.GameState{End: engine.Coord{Row: 1, Col: 2}}, nil
			},
		})

		w := doRequest(server, "POST", "/api/sessions/ab12/shift-origin", map[string]int{"times": 7})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if gotTimes != 7 {
			t.Errorf("Expected 7 shifts, got %d", gotTimes)
		}
		if len(events.states) != 1 || events.states[0] != "ab12" {
			t.Errorf("Expected one broadcast to ab12, got %v", events.states)
		}
	})

	t.Run("not in play is 409", func(t *testing.T) {
		server, events := newTestServer(&MockGameService{
			ShiftOriginFunc: func(ctx context.Context, sessionID string, times int) (*engine.GameState, error) {
				return nil, engine.ErrNotInPlay
			},
		})

		w := doRequest(server, "POST", "/api/sessions/ab12/shift-origin", nil)
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
		if len(events.states) != 0 {
			t.Error("Failed shift should not broadcast")
		}
	})
}

func TestMove(t *testing.T) {
	var gotDirection string
	server, events := newTestServer(&MockGameService{
		MoveFunc: func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
			gotDirection = direction
			return &service.MoveResult{
				Success:   true,
				Cells:     3,
				From:      engine.Coord{Row: 0, Col: 0},
				To:        engine.Coord{Row: 0, Col: 3},
				GameState: &engine.GameState{PlayerPos: engine.Coord{Row: 0, Col: 3}},
			}, nil
		},
	})

	t.Run("valid move", func(t *testing.T) {
		w := doRequest(server, "POST", "/api/sessions/ab12/move", map[string]string{"direction": "right"})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if gotDirection != "right" {
			t.Errorf("Expected direction 'right', got %q", gotDirection)
		}

		var result service.MoveResult
		decodeBody(t, w, &result)
		if !result.Success || result.Cells != 3 {
			t.Errorf("Unexpected result: %+v", result)
		}
		if len(events.states) != 1 {
			t.Errorf("Expected one state broadcast, got %d", len(events.states))
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		w := doRequest(server, "POST", "/api/sessions/ab12/move", "invalid json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestBulkMove(t *testing.T) {
	t.Run("forwards moves", func(t *testing.T) {
		var gotMoves []string
		server, _ := newTestServer(&MockGameService{
			BulkMoveFunc: func(ctx context.Context, sessionID string, moves []string) (*service.BulkMoveResult, error) {
				gotMoves = moves
				return &service.BulkMoveResult{MovesExecuted: 2, RequestedMoves: 3, StopReasonCode: service.ReasonWall, GameState: &engine.GameState{}}, nil
			},
		})

		w := doRequest(server, "POST", "/api/sessions/ab12/bulk-move", map[string][]string{"moves": {"up", "left", "down"}})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if strings.Join(gotMoves, ",") != "up,left,down" {
			t.Errorf("Unexpected moves: %v", gotMoves)
		}

		var result service.BulkMoveResult
		decodeBody(t, w, &result)
		if result.StopReasonCode != service.ReasonWall {
			t.Errorf("Expected stop reason %s, got %s", service.ReasonWall, result.StopReasonCode)
		}
	})

	t.Run("empty move list is 400", func(t *testing.T) {
		server, _ := newTestServer(&MockGameService{
			BulkMoveFunc: func(ctx context.Context, sessionID string, moves []string) (*service.BulkMoveResult, error) {
				return nil, fmt.Errorf("no moves provided: %w", service.ErrInvalidArgument)
			},
		})

		w := doRequest(server, "POST", "/api/sessions/ab12/bulk-move", map[string][]string{"moves": {}})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestSolutionAndState(t *testing.T) {
	server, _ := newTestServer(&MockGameService{
		GetSolutionFunc: func(ctx context.Context, sessionID string) (*service.SolutionResult, error) {
			return &service.SolutionResult{
				Path:       []engine.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
				Steps:      1,
				Directions: []string{"right"},
			}, nil
		},
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			return nil, engine.ErrGenerationInProgress
		},
	})

	w := doRequest(server, "GET", "/api/sessions/ab12/solution", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var solution service.SolutionResult
	decodeBody(t, w, &solution)
	if solution.Steps != 1 || solution.Directions[0] != "right" {
		t.Errorf("Unexpected solution: %+v", solution)
	}

	w = doRequest(server, "GET", "/api/sessions/ab12/state", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestCoins(t *testing.T) {
	var added, spent int
	server, events := newTestServer(&MockGameService{
		GetCoinsFunc: func(ctx context.Context, sessionID string) (*service.CoinsResult, error) {
			return &service.CoinsResult{Success: true, Balance: 4, Positions: []engine.Coord{{Row: 1, Col: 1}}}, nil
		},
		AddCoinFunc: func(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error) {
			added = amount
			return &service.CoinsResult{Success: true, Amount: amount, Balance: 4 + amount}, nil
		},
		SpendCoinFunc: func(ctx context.Context, sessionID string, amount int) (*service.CoinsResult, error) {
			spent = amount
			return &service.CoinsResult{Success: false, Amount: amount, Balance: 4, Message: "insufficient balance"}, nil
		},
	})

	w := doRequest(server, "GET", "/api/sessions/ab12/coins", nil)
	var coins service.CoinsResult
	decodeBody(t, w, &coins)
	if coins.Balance != 4 || len(coins.Positions) != 1 {
		t.Errorf("Unexpected coins: %+v", coins)
	}

	w = doRequest(server, "POST", "/api/sessions/ab12/coins/add", map[string]int{"amount": 3})
	if w.Code != http.StatusOK || added != 3 {
		t.Errorf("Expected add of 3 to succeed, got status %d amount %d", w.Code, added)
	}
	if len(events.states) != 1 {
		t.Errorf("Expected a broadcast after adding, got %d", len(events.states))
	}

	w = doRequest(server, "POST", "/api/sessions/ab12/coins/spend", nil)
	if w.Code != http.StatusOK || spent != 1 {
		t.Errorf("Expected default spend of 1, got status %d amount %d", w.Code, spent)
	}
	if len(events.states) != 1 {
		t.Error("Rejected spend should not broadcast")
	}
}

func TestGetHistory(t *testing.T) {
	var gotOpts service.HistoryOptions
	server, _ := newTestServer(&MockGameService{
		GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			gotOpts = opts
			return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
		},
	})

	tests := []struct {
		query string
		want  service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=2&limit=5&order=asc", service.HistoryOptions{Page: 2, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(server, "GET", "/api/sessions/ab12/history"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if gotOpts != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, gotOpts)
			}
		})
	}
}

func TestDescribeCellAndRender(t *testing.T) {
	var gotCell engine.Coord
	var gotSolution bool
	server, _ := newTestServer(&MockGameService{
		DescribeCellFunc: func(ctx context.Context, sessionID string, cell engine.Coord) (*engine.CellInfo, error) {
			gotCell = cell
			if cell.Row > 10 {
				return nil, engine.ErrInvalidCell
			}
			return &engine.CellInfo{}, nil
		},
		RenderMazeFunc: func(ctx context.Context, sessionID string, withSolution bool) (string, error) {
			gotSolution = withSolution
			return "+---+\n| @ |\n+---+\n", nil
		},
	})

	w := doRequest(server, "GET", "/api/sessions/ab12/cell?row=2&col=3", nil)
	if w.Code != http.StatusOK || gotCell != (engine.Coord{Row: 2, Col: 3}) {
		t.Errorf("Expected cell (2,3), got status %d cell %+v", w.Code, gotCell)
	}

	w = doRequest(server, "GET", "/api/sessions/ab12/cell?row=x&col=3", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad row, got %d", w.Code)
	}

	w = doRequest(server, "GET", "/api/sessions/ab12/cell?row=99&col=0", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for out of range cell, got %d", w.Code)
	}

	w = doRequest(server, "GET", "/api/sessions/ab12/render?solution=true", nil)
	if w.Code != http.StatusOK || !gotSolution {
		t.Errorf("Expected solution render, got status %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("Expected text/plain, got %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "@") {
		t.Errorf("Unexpected render body: %q", w.Body.String())
	}
}

func TestConfigs(t *testing.T) {
	var savedID string
	var savedConfig *engine.GameConfig
	server, _ := newTestServer(&MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "classic", Name: "Classic", Rows: 15, Cols: 15}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			if configName != "classic" {
				return nil, config.ErrConfigNotFound
			}
			return engine.DefaultConfig(), nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
			savedID, savedConfig = configName, cfg
			if cfg.Rows == 0 {
				return fmt.Errorf("%w: rows", config.ErrInvalidConfig)
			}
			return nil
		},
	})

	t.Run("list", func(t *testing.T) {
		w := doRequest(server, "GET", "/api/configs", nil)
		var configs []*service.ConfigInfo
		decodeBody(t, w, &configs)
		if len(configs) != 1 || configs[0].ConfigID != "classic" {
			t.Errorf("Unexpected configs: %+v", configs)
		}
	})

	t.Run("get strips extension", func(t *testing.T) {
		w := doRequest(server, "GET", "/api/configs/classic.json", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		w = doRequest(server, "GET", "/api/configs/missing", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("create derives id from name", func(t *testing.T) {
		cfg := engine.DefaultConfig()
		cfg.Name = "Long Paths!"
		w := doRequest(server, "POST", "/api/configs", cfg)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		if savedID != "long_paths" {
			t.Errorf("Expected id long_paths, got %s", savedID)
		}
		if savedConfig.Rows != cfg.Rows || savedConfig.Name != "Long Paths!" {
			t.Errorf("Config not forwarded intact: %+v", savedConfig)
		}
	})

	t.Run("create with explicit id", func(t *testing.T) {
		body := map[string]interface{}{"config_id": "mine", "name": "Mine", "rows": 3, "cols": 3}
		doRequest(server, "POST", "/api/configs", body)
		if savedID != "mine" {
			t.Errorf("Expected id mine, got %s", savedID)
		}
	})

	t.Run("invalid config is 400", func(t *testing.T) {
		body := map[string]interface{}{"name": "Broken"}
		w := doRequest(server, "POST", "/api/configs", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("missing name is 400", func(t *testing.T) {
		w := doRequest(server, "POST", "/api/configs", map[string]interface{}{"rows": 3})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", session.ErrSessionNotFound), http.StatusNotFound},
		{config.ErrConfigNotFound, http.StatusNotFound},
		{service.ErrInvalidArgument, http.StatusBadRequest},
		{fmt.Errorf("x: %w", engine.ErrInvalidDimension), http.StatusBadRequest},
		{engine.ErrAlreadyGenerated, http.StatusConflict},
		{engine.ErrNotInPlay, http.StatusConflict},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWebSocketEndpoint(t *testing.T) {
	t.Run("no hub", func(t *testing.T) {
		server := NewServer(&MockGameService{}, nil)
		w := doRequest(server, "GET", "/ws?session=ab12", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})

	t.Run("missing session parameter", func(t *testing.T) {
		server := NewServer(&MockGameService{}, websocket.NewHub())
		w := doRequest(server, "GET", "/ws", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		server := NewServer(&MockGameService{
			GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
				return nil, session.ErrSessionNotFound
			},
		}, websocket.NewHub())
		w := doRequest(server, "GET", "/ws?session=zzzz", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)
	w := doRequest(server, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", resp)
	}
}

func TestConfigIDFromName(t *testing.T) {
	tests := map[string]string{
		"Classic":         "classic",
		"Long Paths":      "long_paths",
		"  Spaced   Out ": "spaced_out",
		"A/B":             "ab",
		"!!!":             "",
	}
	for name, want := range tests {
		if got := configIDFromName(name); got != want {
			t.Errorf("configIDFromName(%q) = %q, want %q", name, got, want)
		}
	}
}
