package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/monopoly-engine/game/engine"
)

// ErrUnknownAction is returned by Act for an action type it does not know
var ErrUnknownAction = errors.New("unknown action")

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
		return engine.DefaultConfigName
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Players:        sess.Players,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session. An empty configName selects the
// default rule set; players of 0 selects the rule set's minimum.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, players int) (*SessionInfo, error) {
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
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if players == 0 {
		players = config.MinPlayers
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, players)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().
		Str("session", session.ID).
		Str("config", configID).
		Int("players", players).
		Msg("session created")

	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Act applies one action to a session's game. Rule violations come back as an
// unsuccessful result; the returned error is reserved for missing sessions
// and unknown action types.
func (s *gameServiceImpl) Act(ctx context.Context, sessionID string, action Action) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	eng := sess.Engine
	before := len(eng.GetHistory())

	actErr := apply(eng, action)
	if errors.Is(actErr, ErrUnknownAction) {
		return nil, actErr
	}

	state := eng.GetState()
	history := eng.GetHistory()
	events := make([]engine.ActionEntry, len(history)-before)
	copy(events, history[before:])

	result := &ActionResult{
		Success:   actErr == nil,
		Message:   state.Message,
		GameState: state.Clone(),
		Events:    events,
		Legal:     legalActions(eng),
	}
	if actErr != nil {
		result.Error = actErr.Error()
		result.Message = actErr.Error()
	}

	log.Debug().
		Str("session", sessionID).
		Str("action", string(action.Type)).
		Int("deed", action.DeedID).
		Int("amount", action.Amount).
		Bool("success", result.Success).
		Msg(result.Message)

	if state.Done && actErr == nil {
		log.Info().Str("session", sessionID).Int("winner", state.Winner).Msg("game over")
	}

	return result, nil
}

// apply dispatches an action to the matching engine mutator
func apply(eng *engine.GameEngine, action Action) error {
	switch ActionType(strings.ToLower(string(action.Type))) {
	case ActionTakeTurn:
		return eng.TakeTurn()
	case ActionEndTurn:
		return eng.EndTurn()
	case ActionBuy:
		return eng.BuyProperty(action.DeedID)
	case ActionStartAuction:
		return eng.StartAuction(action.DeedID)
	case ActionBid:
		return eng.Bid(action.Amount)
	case ActionWithdraw:
		seat := action.Seat
		if seat == 0 {
			seat = eng.CurrentSeat()
		}
		return eng.Withdraw(seat)
	case ActionChangePossibleBid:
		return eng.ChangePossibleBid(action.Amount)
	case ActionBuild:
		return eng.BuildHouse(action.DeedID)
	case ActionSell:
		return eng.SellHouse(action.DeedID)
	case ActionMortgage:
		return eng.MortgageProperty(action.DeedID)
	case ActionUnmortgage:
		return eng.UnmortgageProperty(action.DeedID)
	case ActionPayFine:
		return eng.PayFiftyGetOut()
	case ActionUseCard:
		return eng.GetOutFree()
	case ActionDeclareBankruptcy:
		return eng.DeclareBankruptcy()
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	log.Info().Str("session", sessionID).Msg("session reset")
	return sess.Engine.Reset().Clone(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState().Clone(), nil
}

// GetLegalActions reports what the seat expected to act may do
func (s *gameServiceImpl) GetLegalActions(ctx context.Context, sessionID string) (*LegalActionsInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return legalActions(sess.Engine), nil
}

func legalActions(eng *engine.GameEngine) *LegalActionsInfo {
	state := eng.GetState()
	info := &LegalActionsInfo{
		LegalActions: eng.LegalActions(),
		Phase:        phaseOf(state),
		CenterPot:    state.CenterPot,
	}
	if p := state.Player(info.Seat); p != nil {
		info.Cash = p.Cash
		info.InJail = p.InJail()
		info.InDebt = p.InDebt()
	}
	return info
}

func phaseOf(state *engine.GameState) Phase {
	switch {
	case state.Done:
		return PhaseGameOver
	case state.Auction != nil:
		return PhaseAuction
	case state.Pending != 0:
		return PhasePendingPurchase
	case state.TurnTaken:
		return PhaseAwaitingEndTurn
	case state.DoublesStreak > 0:
		return PhaseRollAgain
	default:
		return PhaseAwaitingRoll
	}
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []engine.ActionEntry{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = append(actions, history[start:end]...)
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
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
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	return s.configs.SaveConfig(configName, config)
}
