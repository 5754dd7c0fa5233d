package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionIndexRoundTrip(t *testing.T) {
	for i := 0; i < BoardSize; i++ {
		pos := PositionFromIndex(i)
		assert.True(t, pos.Valid())
		assert.Equal(t, i, pos.Index())
	}
	assert.Equal(t, 0, GoPosition.Index())
	assert.Equal(t, 10, JailPosition.Index())
	assert.Equal(t, 20, FreeParkingPosition.Index())
	assert.Equal(t, 30, GoToJailPosition.Index())
	assert.Equal(t, PositionFromIndex(37), PositionFromIndex(-3))
}

func TestMove_ModularWithSalary(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		d1, d2   int
		wantIdx  int
		wantCash int
	}{
		{"from go, no salary", 0, 2, 3, 5, 1500},
		{"wraps past go", 38, 1, 2, 1, 1700},
		{"lands exactly on go", 36, 1, 3, 0, 1700},
		{"stays below go", 26, 1, 2, 29, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 2, dice(tt.d1, tt.d2))
			give(e, 2, 1, 17)
			placeAt(e, 1, tt.start)

			require.NoError(t, e.TakeTurn())
			p := e.current()
			assert.Equal(t, tt.wantIdx, p.Location.Index())
			rent := 0
			if tt.wantIdx == 1 {
				rent = 2
			}
			if tt.wantIdx == 29 {
				rent = 24
			}
			assert.Equal(t, tt.wantCash-rent, p.Cash)
		})
	}
}

func TestTakeTurn_Preconditions(t *testing.T) {
	t.Run("turn taken", func(t *testing.T) {
		e := newTestEngine(t, 2, dice(2, 3))
		require.NoError(t, e.TakeTurn())
		assert.ErrorIs(t, e.TakeTurn(), ErrTurnTaken)
	})

	t.Run("community chest advance to go", func(t *testing.T) {
		e := newTestEngine(t, 2, dice(1, 1))
		require.NoError(t, e.TakeTurn())
		// identity shuffle puts Advance to Go on top
		assert.Equal(t, GoPosition, e.current().Location)
		assert.Equal(t, 1700, e.current().Cash)
		assert.Equal(t, "Advance to Go", e.GetState().LastCard.Name)
		assert.Equal(t, 1, e.GetState().DoublesStreak)
		assert.True(t, e.CanTakeTurn())
	})

	t.Run("in debt", func(t *testing.T) {
		e := newTestEngine(t, 2, dice(2, 3))
		e.current().Cash = -1
		assert.ErrorIs(t, e.TakeTurn(), ErrInDebt)
	})

	t.Run("jail exhausted", func(t *testing.T) {
		e := newTestEngine(t, 2, dice(2, 3))
		e.current().Jail = DefaultJailRolls + 1
		assert.ErrorIs(t, e.TakeTurn(), ErrJailExhausted)
	})
}

func TestDoubles_PendingBlocksRoll(t *testing.T) {
	e := newTestEngine(t, 2, dice(3, 3, 1, 2))
	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 6, e.current().Location.Index())
	assert.Equal(t, 3, e.GetState().Pending)

	assert.ErrorIs(t, e.TakeTurn(), ErrPendingPurchase)
	assert.ErrorIs(t, e.EndTurn(), ErrPendingPurchase)

	require.NoError(t, e.BuyProperty(3))
	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 9, e.current().Location.Index())
	assert.Equal(t, 5, e.GetState().Pending)
	assert.True(t, e.GetState().TurnTaken)
	assert.Zero(t, e.GetState().DoublesStreak)
}

func TestJail_RollOutWithDoubles(t *testing.T) {
	e := newTestEngine(t, 2, dice(3, 3))
	p := e.current()
	p.Location = JailPosition
	p.Jail = 2

	require.NoError(t, e.TakeTurn())
	assert.Zero(t, p.Jail)
	assert.Equal(t, JailPosition, p.Location, "released without moving")
	assert.True(t, e.GetState().TurnTaken)
	assert.Zero(t, e.GetState().DoublesStreak)
	assert.True(t, e.CanEndTurn())
}

func TestJail_ThreeFailedRollsThenFine(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 2, 3))
	give(e, 2, 2, 3, 5)
	p := e.current()
	p.Location = JailPosition
	p.Jail = 1

	for want := 2; want <= DefaultJailRolls+1; want++ {
		require.NoError(t, e.TakeTurn())
		assert.Equal(t, want, p.Jail)
		assert.Equal(t, JailPosition, p.Location)
		require.NoError(t, e.EndTurn())
		// seat 2 walks along its own deeds
		require.NoError(t, e.TakeTurn())
		require.NoError(t, e.EndTurn())
	}

	assert.ErrorIs(t, e.TakeTurn(), ErrJailExhausted)
	assert.False(t, e.CanGetOutFree())
	require.True(t, e.CanPayFiftyGetOut())
	require.NoError(t, e.PayFiftyGetOut())
	assert.Zero(t, p.Jail)
	assert.Equal(t, 1450, p.Cash)
	assert.Equal(t, 50, e.CenterPot())

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 15, p.Location.Index())
}

func TestJail_FineOwedOutOfRollsPushesIntoDebt(t *testing.T) {
	e := newTestEngine(t, 2, dice())
	p := e.current()
	p.Location = JailPosition
	p.Jail = DefaultJailRolls + 1
	p.Cash = 30
	p.Creditor = 2

	la := e.LegalActions()
	assert.True(t, la.PayFine, "the fine is owed even when short")
	assert.False(t, la.TakeTurn)
	assert.False(t, la.DeclareBankruptcy)

	require.NoError(t, e.PayFiftyGetOut())
	assert.Zero(t, p.Jail)
	assert.Equal(t, -20, p.Cash)
	assert.Equal(t, 50, e.CenterPot())
	assert.Equal(t, BankSeat, p.Creditor)
	assert.ErrorIs(t, e.TakeTurn(), ErrInDebt)

	la = e.LegalActions()
	assert.True(t, la.DeclareBankruptcy, "nothing left to raise the fine from")
	require.NoError(t, e.DeclareBankruptcy())
	assert.True(t, e.GetState().Done)
	assert.Equal(t, 2, e.GetState().Winner)
}

func TestJail_FineNeedsCashWhileRollsRemain(t *testing.T) {
	e := newTestEngine(t, 2, dice())
	p := e.current()
	p.Location = JailPosition
	p.Jail = DefaultJailRolls
	p.Cash = 30

	assert.ErrorIs(t, e.PayFiftyGetOut(), ErrInsufficientFunds)
	assert.True(t, e.CanTakeTurn())
}

func TestJail_RollLimitComesFromConfig(t *testing.T) {
	config := createTestConfig()
	config.MaxJailRolls = 1
	e, err := NewEngine(config, 2, dice(1, 2))
	require.NoError(t, err)
	p := e.current()
	p.Location = JailPosition
	p.Jail = 1

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 2, p.Jail)

	// next time round
	e.state.TurnTaken = false
	assert.ErrorIs(t, e.TakeTurn(), ErrJailExhausted)
	assert.True(t, e.CanPayFiftyGetOut())
}

func TestEndTurn_SeatLeftOnBankDeedMustDecide(t *testing.T) {
	e := newTestEngine(t, 3, dice(1, 2))
	give(e, 1, 1)
	property(t, e, 1).Mortgaged = true
	placeAt(e, 1, 1)
	placeAt(e, 2, 1)
	e.current().Cash = 10

	// income tax puts seat 1 under with only a mortgaged deed
	require.NoError(t, e.TakeTurn())
	require.True(t, e.IsBankrupt(1))
	require.NoError(t, e.DeclareBankruptcy())

	state := e.GetState()
	assert.Equal(t, 2, state.Turn)
	assert.Equal(t, 1, state.Pending, "Mediterranean went back to the bank under seat 2")
	assert.True(t, e.CanBuy(1))
	assert.True(t, e.CanStartAuction(1))
	assert.ErrorIs(t, e.TakeTurn(), ErrPendingPurchase)
	assert.ErrorIs(t, e.EndTurn(), ErrPendingPurchase)

	require.NoError(t, e.BuyProperty(1))
	assert.Zero(t, e.GetState().Pending)
	assert.True(t, e.CanTakeTurn())
}

func TestJail_GetOutFreeCard(t *testing.T) {
	e := newTestEngine(t, 2, dice())
	p := e.current()
	p.Jail = 2
	p.Location = JailPosition

	assert.ErrorIs(t, e.GetOutFree(), ErrNoCard)
	p.GetOutFree = true
	require.NoError(t, e.GetOutFree())
	assert.False(t, p.GetOutFree)
	assert.Zero(t, p.Jail)
	assert.ErrorIs(t, e.GetOutFree(), ErrNotInJail)
}

func TestJail_ExitNeedsUntakenTurn(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 2))
	p := e.current()
	p.Jail = 1
	p.Location = JailPosition
	p.GetOutFree = true
	require.NoError(t, e.TakeTurn())

	assert.ErrorIs(t, e.PayFiftyGetOut(), ErrTurnTaken)
	assert.ErrorIs(t, e.GetOutFree(), ErrTurnTaken)
}

func TestGoToJailTile(t *testing.T) {
	e := newTestEngine(t, 2, dice(2, 3))
	placeAt(e, 1, 25)
	give(e, 2, 27)

	require.NoError(t, e.TakeTurn())
	p := e.current()
	assert.Equal(t, JailPosition, p.Location)
	assert.Equal(t, 1, p.Jail)
	assert.True(t, e.GetState().TurnTaken)
}

func TestFreeParkingPaysPot(t *testing.T) {
	e := newTestEngine(t, 2, dice(4, 5))
	placeAt(e, 1, 11)
	give(e, 2, 6)
	e.state.CenterPot = 350

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 20, e.current().Location.Index())
	assert.Equal(t, 1850, e.current().Cash)
	assert.Zero(t, e.CenterPot())
}

func TestLuxuryTax(t *testing.T) {
	e := newTestEngine(t, 2, dice(1, 3))
	placeAt(e, 1, 34)

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 38, e.current().Location.Index())
	assert.Equal(t, 1425, e.current().Cash)
	assert.Equal(t, 75, e.CenterPot())
	assert.Equal(t, BankSeat, e.current().Creditor)
}

func TestEndTurn_WrapsAndSkipsInactive(t *testing.T) {
	e := newTestEngine(t, 3, dice(2, 3, 2, 3))
	e.state.ActivePlayers = []int{1, 3}
	e.state.InactivePlayers = []int{2}

	require.NoError(t, e.TakeTurn())
	require.NoError(t, e.StartAuction(ReadingRailroadID))
	require.NoError(t, e.Withdraw(3))
	require.NoError(t, e.EndTurn())
	assert.Equal(t, 3, e.GetState().Turn)
	assert.False(t, e.GetState().TurnTaken)

	require.NoError(t, e.TakeTurn())
	assert.Equal(t, 1475, e.state.Player(3).Cash)
	require.NoError(t, e.EndTurn())
	assert.Equal(t, 1, e.GetState().Turn)
}
