package service

import (
	"time"

	"github.com/wricardo/monopoly-engine/game/engine"
)

// ActionType names a mutator that can be invoked through Act
type ActionType string

const (
	ActionTakeTurn          ActionType = "take_turn"
	ActionEndTurn           ActionType = "end_turn"
	ActionBuy               ActionType = "buy"
	ActionStartAuction      ActionType = "start_auction"
	ActionBid               ActionType = "bid"
	ActionWithdraw          ActionType = "withdraw"
	ActionChangePossibleBid ActionType = "change_possible_bid"
	ActionBuild             ActionType = "build"
	ActionSell              ActionType = "sell"
	ActionMortgage          ActionType = "mortgage"
	ActionUnmortgage        ActionType = "unmortgage"
	ActionPayFine           ActionType = "pay_fine"
	ActionUseCard           ActionType = "use_card"
	ActionDeclareBankruptcy ActionType = "declare_bankruptcy"
)

// ActionTypes lists every action Act understands
var ActionTypes = []ActionType{
	ActionTakeTurn, ActionEndTurn, ActionBuy, ActionStartAuction, ActionBid,
	ActionWithdraw, ActionChangePossibleBid, ActionBuild, ActionSell,
	ActionMortgage, ActionUnmortgage, ActionPayFine, ActionUseCard,
	ActionDeclareBankruptcy,
}

// Action is one request against a session's engine. DeedID is used by the
// deed actions, Amount by bid (absolute) and change_possible_bid (delta),
// Seat by withdraw (defaults to the seat holding the auction turn).
type Action struct {
	Type   ActionType `json:"type"`
	DeedID int        `json:"deed_id,omitempty"`
	Amount int        `json:"amount,omitempty"`
	Seat   int        `json:"seat,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Players        int                `json:"players"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the outcome of an Act call. A rule violation is not a
// Go error: Success is false and Error carries the reason.
type ActionResult struct {
	Success   bool                 `json:"success"`
	Error     string               `json:"error,omitempty"`
	Message   string               `json:"message"`
	GameState *engine.GameState    `json:"game_state"`
	Events    []engine.ActionEntry `json:"events"`
	Legal     *LegalActionsInfo    `json:"legal_actions,omitempty"`
}

// Phase describes where the game is in its turn cycle
type Phase string

const (
	PhaseAwaitingRoll    Phase = "awaiting_roll"
	PhaseRollAgain       Phase = "roll_again"
	PhasePendingPurchase Phase = "pending_purchase"
	PhaseAwaitingEndTurn Phase = "awaiting_end_turn"
	PhaseAuction         Phase = "auction"
	PhaseGameOver        Phase = "game_over"
)

// LegalActionsInfo is the engine's legal action set plus a coarse phase
type LegalActionsInfo struct {
	engine.LegalActions
	Phase     Phase `json:"phase"`
	Cash      int   `json:"cash"`
	InJail    bool  `json:"in_jail"`
	InDebt    bool  `json:"in_debt"`
	CenterPot int   `json:"center_pot"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionEntry `json:"actions"`
	TotalActions int                  `json:"total_actions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	TotalPages   int                  `json:"total_pages"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	StartingCash int    `json:"starting_cash"`
	MinPlayers   int    `json:"min_players"`
	MaxPlayers   int    `json:"max_players"`
}
