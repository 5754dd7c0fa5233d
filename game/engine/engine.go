package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	GetConfig() *GameConfig
	Reset() *GameState
	IsGameOver() bool
	CurrentSeat() int
	CurrentTile() Tile
	GetBoard() *Board
	Dice() [2]int
	CenterPot() int
	Locations() map[int]Position
	LegalActions() LegalActions

	// Turn flow
	TakeTurn() error
	EndTurn() error
	PayFiftyGetOut() error
	GetOutFree() error
	CanTakeTurn() bool
	CanEndTurn() bool
	CanPayFiftyGetOut() bool
	CanGetOutFree() bool

	// Property economy
	BuyProperty(id int) error
	MortgageProperty(id int) error
	UnmortgageProperty(id int) error
	BuildHouse(id int) error
	SellHouse(id int) error
	CanBuy(id int) bool
	CanMortgage(id int) bool
	CanUnmortgage(id int) bool
	CanBuild(id int) bool
	CanSell(id int) bool

	// Auctions
	StartAuction(id int) error
	Bid(amount int) error
	Withdraw(seat int) error
	ChangePossibleBid(delta int) error
	CanStartAuction(id int) bool
	CanBid(amount int) bool
	CanWithdraw(seat int) bool
	CanChangePossibleBid(delta int) bool

	// Bankruptcy
	IsBankrupt(seat int) bool
	DeclareBankruptcy() error

	// History
	GetHistory() []ActionEntry
	GetLastAction() *ActionEntry
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	state      *GameState
	config     *GameConfig
	rng        RNG
	numPlayers int
}

var _ Engine = (*GameEngine)(nil)

// LegalActions lists what the seat holding the turn may do right now
type LegalActions struct {
	Seat              int   `json:"seat"`
	TakeTurn          bool  `json:"take_turn"`
	EndTurn           bool  `json:"end_turn"`
	PayFine           bool  `json:"pay_fine"`
	UseCard           bool  `json:"use_card"`
	DeclareBankruptcy bool  `json:"declare_bankruptcy"`
	Buy               []int `json:"buy"`
	StartAuction      []int `json:"start_auction"`
	Build             []int `json:"build"`
	Sell              []int `json:"sell"`
	Mortgage          []int `json:"mortgage"`
	Unmortgage        []int `json:"unmortgage"`
	MinBid            int   `json:"min_bid,omitempty"`
	Withdraw          []int `json:"withdraw,omitempty"`
}

// NewEngine creates a game for numPlayers seats. A nil rng is seeded from the
// config seed, or from the clock when the config leaves it unset.
func NewEngine(config *GameConfig, numPlayers int, rng RNG) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if numPlayers < config.MinPlayers || numPlayers > config.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, config %q allows %d-%d",
			ErrInvalidSeat, numPlayers, config.Name, config.MinPlayers, config.MaxPlayers)
	}
	if rng == nil {
		rng = newRNGFromConfig(config)
	}

	engine := &GameEngine{
		config:     config,
		rng:        rng,
		numPlayers: numPlayers,
	}
	engine.state = engine.initState()
	return engine, nil
}

// NewGame creates a game with classic rules and the given starting cash
func NewGame(numPlayers, startingCash int) (*GameEngine, error) {
	config := DefaultConfig()
	config.StartingCash = startingCash
	return NewEngine(config, numPlayers, nil)
}

func (e *GameEngine) initState() *GameState {
	players := make([]*Player, e.numPlayers)
	active := make([]int, e.numPlayers)
	for i := range players {
		players[i] = NewPlayer(i+1, e.config.StartingCash)
		active[i] = i + 1
	}

	return &GameState{
		ID:              uuid.NewString(),
		ConfigName:      e.config.Name,
		Turn:            DefaultPlayerSeat,
		Players:         players,
		ActivePlayers:   active,
		InactivePlayers: []int{},
		Board:           NewBoard(),
		Houses:          e.config.Houses,
		Hotels:          e.config.Hotels,
		ChanceDeck:      NewDeck("Chance", ChanceCards(), e.rng),
		CommunityDeck:   NewDeck("Community Chest", CommunityChestCards(), e.rng),
		Message:         fmt.Sprintf("Game started with %d players. Player %d to roll", e.numPlayers, DefaultPlayerSeat),
		History:         []ActionEntry{},
		StartedAt:       time.Now(),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// GetConfig returns the rules the game was created with
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// Reset starts a new game with the same seats and rules
func (e *GameEngine) Reset() *GameState {
	e.state = e.initState()
	return e.state
}

// IsGameOver returns whether a winner has been decided
func (e *GameEngine) IsGameOver() bool {
	return e.state.Done
}

// CurrentSeat returns the seat expected to act: the auction turn while an
// auction runs, the game turn otherwise.
func (e *GameEngine) CurrentSeat() int {
	if e.state.Auction != nil {
		return e.state.Auction.Turn
	}
	return e.state.Turn
}

// CurrentTile returns the tile under the player whose turn it is
func (e *GameEngine) CurrentTile() Tile {
	p := e.current()
	if p == nil {
		return nil
	}
	return e.state.Board.At(p.Location)
}

// GetBoard returns the board
func (e *GameEngine) GetBoard() *Board {
	return e.state.Board
}

// Dice returns the last roll
func (e *GameEngine) Dice() [2]int {
	return e.state.Dice
}

// CenterPot returns the money collected from taxes and fines
func (e *GameEngine) CenterPot() int {
	return e.state.CenterPot
}

// Locations returns the position of every active player keyed by seat
func (e *GameEngine) Locations() map[int]Position {
	out := make(map[int]Position, len(e.state.ActivePlayers))
	for _, seat := range e.state.ActivePlayers {
		out[seat] = e.state.Player(seat).Location
	}
	return out
}

// GetHistory returns every action attempted so far, including rejected ones
func (e *GameEngine) GetHistory() []ActionEntry {
	return e.state.History
}

// GetLastAction returns the last recorded action, or nil if none
func (e *GameEngine) GetLastAction() *ActionEntry {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// LegalActions evaluates every predicate for the seat holding the turn
func (e *GameEngine) LegalActions() LegalActions {
	la := LegalActions{
		Seat:              e.CurrentSeat(),
		TakeTurn:          e.CanTakeTurn(),
		EndTurn:           e.CanEndTurn(),
		PayFine:           e.CanPayFiftyGetOut(),
		UseCard:           e.CanGetOutFree(),
		DeclareBankruptcy: e.checkDeclareBankruptcy() == nil,
		Buy:               []int{},
		StartAuction:      []int{},
		Build:             []int{},
		Sell:              []int{},
		Mortgage:          []int{},
		Unmortgage:        []int{},
	}

	for _, o := range e.state.Board.Deeds() {
		id := o.Title().ID
		if e.CanBuy(id) {
			la.Buy = append(la.Buy, id)
		}
		if e.CanStartAuction(id) {
			la.StartAuction = append(la.StartAuction, id)
		}
		if e.CanBuild(id) {
			la.Build = append(la.Build, id)
		}
		if e.CanSell(id) {
			la.Sell = append(la.Sell, id)
		}
		if e.CanMortgage(id) {
			la.Mortgage = append(la.Mortgage, id)
		}
		if e.CanUnmortgage(id) {
			la.Unmortgage = append(la.Unmortgage, id)
		}
	}

	if a := e.state.Auction; a != nil {
		if e.CanBid(a.HighBid() + 1) {
			la.MinBid = a.HighBid() + 1
		}
		la.Withdraw = a.Remaining()
	}

	return la
}

// current returns the player whose game turn it is
func (e *GameEngine) current() *Player {
	return e.state.Player(e.state.Turn)
}

// checkIdle rejects actions that need the table free of auctions and a live game
func (e *GameEngine) checkIdle() error {
	if e.state.Done {
		return ErrGameOver
	}
	if e.state.Auction != nil {
		return ErrAuctionActive
	}
	return nil
}

// record appends one history entry for an attempted action and passes err through
func (e *GameEngine) record(action string, seat int, err error) error {
	entry := ActionEntry{
		Seq:       len(e.state.History) + 1,
		Action:    action,
		Player:    seat,
		Dice:      e.state.Dice,
		Success:   err == nil,
		Timestamp: time.Now().Unix(),
	}
	if p := e.state.Player(seat); p != nil {
		entry.Cash = p.Cash
	}
	if err != nil {
		entry.Message = err.Error()
	} else {
		entry.Message = e.state.Message
	}
	e.state.History = append(e.state.History, entry)
	return err
}
