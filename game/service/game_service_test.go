package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/monopoly-engine/game/engine"
	"github.com/wricardo/monopoly-engine/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig, players int) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config, players, nil)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		Players:        players,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig, players int) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config, players)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := engine.DefaultConfig()
	defaultConfig.Seed = 42

	quick := engine.DefaultConfig()
	quick.Name = "quick"
	quick.Description = "Short game"
	quick.StartingCash = 500
	quick.MinPlayers = 3

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"classic": defaultConfig,
			"quick":   quick,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("configuration not found: %s", name)
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:     name + ".json",
			ConfigID:     name,
			Name:         config.Name,
			Description:  config.Description,
			StartingCash: config.StartingCash,
			MinPlayers:   config.MinPlayers,
			MaxPlayers:   config.MaxPlayers,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["classic"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "classic", 2)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name        string
		configName  string
		players     int
		wantErr     bool
		wantPlayers int
		wantConfig  string
	}{
		{
			name:        "create with default config",
			configName:  "",
			players:     4,
			wantPlayers: 4,
			wantConfig:  "classic",
		},
		{
			name:        "zero players uses config minimum",
			configName:  "quick",
			players:     0,
			wantPlayers: 3,
			wantConfig:  "quick",
		},
		{
			name:       "too many players",
			configName: "classic",
			players:    9,
			wantErr:    true,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			players:    2,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName, tt.players)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if session.Players != tt.wantPlayers {
				t.Errorf("Players = %d, want %d", session.Players, tt.wantPlayers)
			}
			if len(session.GameState.Players) != tt.wantPlayers {
				t.Errorf("state has %d players, want %d", len(session.GameState.Players), tt.wantPlayers)
			}
			if session.ConfigName != tt.wantConfig {
				t.Errorf("ConfigName = %q, want %q", session.ConfigName, tt.wantConfig)
			}
		})
	}

	t.Run("unknown config lists available ones", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nonexistent", 2)
		if err == nil || !strings.Contains(err.Error(), "Available configs") {
			t.Errorf("expected available configs in error, got %v", err)
		}
	})
}

func TestGameService_Act(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	t.Run("rule violation is an unsuccessful result", func(t *testing.T) {
		result, err := svc.Act(ctx, info.ID, service.Action{Type: service.ActionEndTurn})
		if err != nil {
			t.Fatalf("Act() error = %v", err)
		}
		if result.Success {
			t.Error("end_turn before rolling should fail")
		}
		if !strings.Contains(result.Error, engine.ErrTurnNotTaken.Error()) {
			t.Errorf("Error = %q, want it to mention %q", result.Error, engine.ErrTurnNotTaken)
		}
		if len(result.Events) != 1 || result.Events[0].Success {
			t.Errorf("expected one failed event, got %+v", result.Events)
		}
	})

	t.Run("take turn", func(t *testing.T) {
		result, err := svc.Act(ctx, info.ID, service.Action{Type: service.ActionTakeTurn})
		if err != nil {
			t.Fatalf("Act() error = %v", err)
		}
		if !result.Success {
			t.Fatalf("take_turn from a fresh game should succeed: %s", result.Error)
		}
		if len(result.Events) != 1 || result.Events[0].Action != "take_turn" {
			t.Errorf("unexpected events %+v", result.Events)
		}
		dice := result.GameState.Dice
		if dice[0] < 1 || dice[0] > 6 || dice[1] < 1 || dice[1] > 6 {
			t.Errorf("dice out of range: %v", dice)
		}
		if result.Legal == nil {
			t.Fatal("expected legal actions in result")
		}
	})

	t.Run("case insensitive type", func(t *testing.T) {
		result, err := svc.Act(ctx, info.ID, service.Action{Type: "BID", Amount: 10})
		if err != nil {
			t.Fatalf("Act() error = %v", err)
		}
		if result.Success {
			t.Error("bid without an auction should fail")
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := svc.Act(ctx, info.ID, service.Action{Type: "trade"})
		if !errors.Is(err, service.ErrUnknownAction) {
			t.Errorf("expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		_, err := svc.Act(ctx, "nope", service.Action{Type: service.ActionTakeTurn})
		if err == nil {
			t.Error("expected error for missing session")
		}
	})
}

func TestGameService_GetLegalActions(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	legal, err := svc.GetLegalActions(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetLegalActions() error = %v", err)
	}
	if legal.Seat != 1 {
		t.Errorf("Seat = %d, want 1", legal.Seat)
	}
	if legal.Phase != service.PhaseAwaitingRoll {
		t.Errorf("Phase = %s, want %s", legal.Phase, service.PhaseAwaitingRoll)
	}
	if !legal.TakeTurn || legal.EndTurn {
		t.Errorf("fresh game should allow only rolling, got take=%v end=%v", legal.TakeTurn, legal.EndTurn)
	}
	if legal.Cash != 1500 {
		t.Errorf("Cash = %d, want 1500", legal.Cash)
	}
	if len(legal.Buy) != 0 || len(legal.Build) != 0 {
		t.Errorf("nothing should be buyable or buildable: %+v", legal.LegalActions)
	}

	if _, err := svc.GetLegalActions(ctx, "nope"); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestGameService_GetHistory(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	// rejected actions are recorded too
	for i := 0; i < 5; i++ {
		if _, err := svc.Act(ctx, info.ID, service.Action{Type: service.ActionEndTurn}); err != nil {
			t.Fatalf("Act() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantErr   bool
		wantLen   int
		wantFirst int
		wantPages int
	}{
		{
			name:      "default options",
			sessionID: info.ID,
			opts:      service.HistoryOptions{},
			wantLen:   5,
			wantFirst: 5,
			wantPages: 1,
		},
		{
			name:      "ascending page two",
			sessionID: info.ID,
			opts:      service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"},
			wantLen:   2,
			wantFirst: 3,
			wantPages: 3,
		},
		{
			name:      "descending last page",
			sessionID: info.ID,
			opts:      service.HistoryOptions{Page: 3, Limit: 2, Order: "desc"},
			wantLen:   1,
			wantFirst: 1,
			wantPages: 3,
		},
		{
			name:      "page past the end",
			sessionID: info.ID,
			opts:      service.HistoryOptions{Page: 9, Limit: 2, Order: "asc"},
			wantLen:   0,
			wantPages: 3,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetHistory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if result.Actions == nil {
				t.Fatal("GetHistory() returned nil actions slice")
			}
			if len(result.Actions) != tt.wantLen {
				t.Fatalf("got %d actions, want %d", len(result.Actions), tt.wantLen)
			}
			if tt.wantLen > 0 && result.Actions[0].Seq != tt.wantFirst {
				t.Errorf("first seq = %d, want %d", result.Actions[0].Seq, tt.wantFirst)
			}
			if result.TotalActions != 5 {
				t.Errorf("TotalActions = %d, want 5", result.TotalActions)
			}
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "classic", 2)
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
	for _, s := range sessionList {
		if s.ConfigName != "classic" {
			t.Errorf("ConfigName = %q, want classic", s.ConfigName)
		}
	}
}

func TestGameService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("session should be gone")
	}
	if err := svc.DeleteSession(ctx, info.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	if _, err := svc.Act(ctx, info.ID, service.Action{Type: service.ActionTakeTurn}); err != nil {
		t.Fatalf("Failed to act: %v", err)
	}

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(state.History) != 0 {
		t.Errorf("history should be empty after reset, got %d", len(state.History))
	}
	if state.TurnTaken || state.Turn != 1 {
		t.Errorf("reset should hand the turn back to seat 1, got turn=%d taken=%v", state.Turn, state.TurnTaken)
	}
	for _, p := range state.Players {
		if p.Location != engine.GoPosition || p.Cash != 1500 {
			t.Errorf("player %d not reset: %+v", p.Number, p)
		}
	}
}

func TestGameService_SaveConfig(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	bad := engine.DefaultConfig()
	bad.StartingCash = -1
	if err := svc.SaveConfig(ctx, "bad", bad); err == nil {
		t.Error("expected invalid config to be rejected")
	}

	good := engine.DefaultConfig()
	good.Name = "rich"
	good.StartingCash = 5000
	if err := svc.SaveConfig(ctx, "rich", good); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	loaded, err := svc.LoadConfig(ctx, "rich")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.StartingCash != 5000 {
		t.Errorf("StartingCash = %d, want 5000", loaded.StartingCash)
	}
}
