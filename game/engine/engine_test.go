package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRNG replays fixed die faces and leaves shuffles in id order
type scriptedRNG struct {
	faces []int
	pos   int
}

func dice(faces ...int) *scriptedRNG {
	return &scriptedRNG{faces: faces}
}

func (r *scriptedRNG) Intn(n int) int {
	if r.pos >= len(r.faces) {
		return 0
	}
	face := r.faces[r.pos]
	r.pos++
	return face - 1
}

func (r *scriptedRNG) Shuffle(n int, swap func(i, j int)) {}

func createTestConfig() *GameConfig {
	config := DefaultConfig()
	config.Name = "engine-test"
	config.Description = "Configuration for engine tests"
	return config
}

func newTestEngine(t *testing.T, players int, rng *scriptedRNG) *GameEngine {
	t.Helper()
	e, err := NewEngine(createTestConfig(), players, rng)
	require.NoError(t, err)
	return e
}

// give hands deeds to a seat without charging for them
func give(e *GameEngine, seat int, ids ...int) {
	for _, id := range ids {
		o, _ := e.state.Board.Deed(id)
		e.assignDeed(o, seat)
	}
	e.refreshFlags()
}

func placeAt(e *GameEngine, seat, index int) {
	e.state.Player(seat).Location = PositionFromIndex(index)
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, 3, dice())
	state := e.GetState()

	assert.NotEmpty(t, state.ID)
	assert.Equal(t, 1, state.Turn)
	assert.Equal(t, []int{1, 2, 3}, state.ActivePlayers)
	assert.Empty(t, state.InactivePlayers)
	assert.Equal(t, 32, state.Houses)
	assert.Equal(t, 12, state.Hotels)
	require.Len(t, state.Players, 3)
	for i, p := range state.Players {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, 1500, p.Cash)
		assert.Equal(t, GoPosition, p.Location)
		assert.Empty(t, p.Properties)
	}
	assert.Equal(t, len(ChanceCards()), state.ChanceDeck.Remaining())
	assert.Equal(t, len(CommunityChestCards()), state.CommunityDeck.Remaining())
	assert.True(t, e.CanTakeTurn())
	assert.False(t, e.CanEndTurn())
}

func TestNewEngine_InvalidPlayers(t *testing.T) {
	_, err := NewEngine(createTestConfig(), 1, dice())
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = NewEngine(createTestConfig(), MaxSeats+1, dice())
	assert.ErrorIs(t, err, ErrInvalidSeat)

	bad := createTestConfig()
	bad.Name = ""
	_, err = NewEngine(bad, 2, dice())
	assert.Error(t, err)
}

func TestNewGame(t *testing.T) {
	e, err := NewGame(4, 2000)
	require.NoError(t, err)
	for _, p := range e.GetState().Players {
		assert.Equal(t, 2000, p.Cash)
	}
	assert.Equal(t, DefaultConfigName, e.GetConfig().Name)
}

func TestNewEngine_FreshBoardPerGame(t *testing.T) {
	a := newTestEngine(t, 2, dice())
	b := newTestEngine(t, 2, dice())
	give(a, 1, 1)

	o, _ := b.GetBoard().Deed(1)
	assert.False(t, o.Title().Owned(), "games must not share tiles")
}

func TestSeededGamesAreReproducible(t *testing.T) {
	config := createTestConfig()
	a, err := NewEngine(config, 2, NewSeededRNG(7))
	require.NoError(t, err)
	b, err := NewEngine(config, 2, NewSeededRNG(7))
	require.NoError(t, err)

	assert.Equal(t, a.GetState().ChanceDeck.Order(), b.GetState().ChanceDeck.Order())
	require.NoError(t, a.TakeTurn())
	require.NoError(t, b.TakeTurn())
	assert.Equal(t, a.Dice(), b.Dice())
}

// Buying a $60 property from a fresh game leaves $1440
func TestScenario_BuyFirstProperty(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 3, e.current().Location.Index())
	assert.Equal(t, 2, e.GetState().Pending)
	assert.False(t, e.CanEndTurn())
	assert.True(t, e.CanBuy(2))

	require.NoError(t, e.BuyProperty(2))
	p := e.current()
	assert.Equal(t, 1440, p.Cash)
	assert.Equal(t, []int{2}, p.Properties)
	o, _ := e.GetBoard().Deed(2)
	assert.Equal(t, 1, o.Title().Owner)
	assert.Zero(t, e.GetState().Pending)

	require.NoError(t, e.EndTurn())
	assert.Equal(t, 2, e.GetState().Turn)
}

// A player in debt cannot end the turn; declaring bankruptcy hands the
// mortgaged holdings to the creditor and removes the seat
func TestScenario_DebtAndBankruptcy(t *testing.T) {
	e := newTestEngine(t, 3, dice(3, 5))
	give(e, 2, 4)
	give(e, 1, 1)
	m, _ := e.GetBoard().Deed(1)
	m.Title().Mortgaged = true
	e.current().Cash = 3

	require.NoError(t, e.TakeTurn())
	p := e.current()
	assert.Equal(t, -3, p.Cash)
	assert.Equal(t, 2, p.Creditor)
	assert.Equal(t, 1506, e.state.Player(2).Cash)

	assert.ErrorIs(t, e.EndTurn(), ErrInDebt)
	assert.True(t, e.IsBankrupt(1))

	require.NoError(t, e.DeclareBankruptcy())
	state := e.GetState()
	assert.Equal(t, []int{2, 3}, state.ActivePlayers)
	assert.Equal(t, []int{1}, state.InactivePlayers)
	assert.Equal(t, 2, state.Turn)
	assert.Zero(t, p.Cash)
	assert.Empty(t, p.Properties)
	assert.Equal(t, 2, m.Title().Owner)
	assert.True(t, m.Title().Mortgaged, "mortgage travels with the deed")
	assert.ElementsMatch(t, []int{4, 1}, state.Player(2).Properties)
	assert.False(t, state.Done)
}

// Three consecutive doubles send the player to jail without applying the move
func TestScenario_ThreeDoublesToJail(t *testing.T) {
	e := newTestEngine(t, 2, dice(4, 4, 5, 5, 6, 6))
	give(e, 1, 4, 10)

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 8, e.current().Location.Index())
	assert.Equal(t, 1, e.GetState().DoublesStreak)
	assert.ErrorIs(t, e.EndTurn(), ErrMustRollAgain)

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 18, e.current().Location.Index())

	require.NoError(t, e.TakeTurn())
	p := e.current()
	assert.Equal(t, JailPosition, p.Location)
	assert.Equal(t, 1, p.Jail)
	assert.True(t, e.GetState().TurnTaken)
	assert.Zero(t, e.GetState().DoublesStreak)
	assert.Equal(t, 1500, p.Cash, "no salary, no move")
	assert.True(t, e.CanEndTurn())
}

func TestLegalActions(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))
	la := e.LegalActions()
	assert.Equal(t, 1, la.Seat)
	assert.True(t, la.TakeTurn)
	assert.False(t, la.EndTurn)
	assert.Empty(t, la.Buy)

	require.NoError(t, e.TakeTurn())
	la = e.LegalActions()
	assert.False(t, la.TakeTurn)
	assert.Equal(t, []int{2}, la.Buy)
	assert.Equal(t, []int{2}, la.StartAuction)

	require.NoError(t, e.StartAuction(2))
	la = e.LegalActions()
	assert.Equal(t, 1, la.MinBid)
	assert.Equal(t, []int{1, 2}, la.Withdraw)
	assert.Empty(t, la.Buy)
}

func TestHistory_RecordsEveryAttempt(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))

	err := e.EndTurn()
	require.Error(t, err)
	require.NoError(t, e.TakeTurn())

	history := e.GetHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "end_turn", history[0].Action)
	assert.False(t, history[0].Success)
	assert.Equal(t, err.Error(), history[0].Message)
	assert.Equal(t, "take_turn", history[1].Action)
	assert.True(t, history[1].Success)
	assert.Equal(t, [2]int{1, 2}, history[1].Dice)
	assert.Equal(t, 2, e.GetLastAction().Seq)
}

func TestRejectedActionLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))
	require.NoError(t, e.TakeTurn())
	before := *e.current()

	for _, err := range []error{
		e.TakeTurn(),
		e.BuyProperty(1),
		e.BuildHouse(2),
		e.MortgageProperty(2),
		e.PayFiftyGetOut(),
		e.DeclareBankruptcy(),
	} {
		assert.Error(t, err)
	}
	after := *e.current()
	assert.Equal(t, before.Cash, after.Cash)
	assert.Equal(t, before.Location, after.Location)
	assert.Equal(t, 2, e.GetState().Pending)
}

func TestGameOverBlocksActions(t *testing.T) {
	e := newTestEngine(t, 2, dice())
	e.current().Cash = -10
	require.NoError(t, e.DeclareBankruptcy())

	state := e.GetState()
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 2, state.Winner)
	assert.True(t, errors.Is(e.TakeTurn(), ErrGameOver))
	assert.ErrorIs(t, e.EndTurn(), ErrGameOver)
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))
	require.NoError(t, e.TakeTurn())
	require.NoError(t, e.BuyProperty(2))
	oldID := e.GetState().ID

	state := e.Reset()
	assert.NotEqual(t, oldID, state.ID)
	assert.Equal(t, 1500, state.Player(1).Cash)
	assert.Empty(t, state.History)
	o, _ := state.Board.Deed(2)
	assert.False(t, o.Title().Owned())
}

func TestLocationsAndObservers(t *testing.T) {
	e := newTestEngine(t, 2, dice(2, 3))
	require.NoError(t, e.TakeTurn())

	locs := e.Locations()
	assert.Equal(t, 5, locs[1].Index())
	assert.Equal(t, GoPosition, locs[2])
	assert.Equal(t, [2]int{2, 3}, e.Dice())
	assert.Equal(t, "Reading Railroad", e.CurrentTile().Info().Name)
	assert.Zero(t, e.CenterPot())
}
