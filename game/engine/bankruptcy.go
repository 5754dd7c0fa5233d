package engine

import "fmt"

// IsBankrupt reports whether the seat is in debt with nothing left to raise
// cash from: every deed it holds is already mortgaged.
func (e *GameEngine) IsBankrupt(seat int) bool {
	p := e.state.Player(seat)
	if p == nil || !e.state.IsActive(seat) || !p.InDebt() {
		return false
	}
	for _, id := range p.Properties {
		o, ok := e.state.Board.Deed(id)
		if ok && !o.Title().Mortgaged {
			return false
		}
	}
	return true
}

func (e *GameEngine) checkDeclareBankruptcy() error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	if !e.IsBankrupt(e.state.Turn) {
		return fmt.Errorf("%w: seat %d", ErrNotBankrupt, e.state.Turn)
	}
	return nil
}

// DeclareBankruptcy removes the current player from the game. Their deeds go
// to the player they owe when that player is still in the game, mortgages
// included; otherwise they return to the bank clear.
func (e *GameEngine) DeclareBankruptcy() error {
	seat := e.state.Turn
	err := e.checkDeclareBankruptcy()
	if err == nil {
		e.declareBankruptcy(seat)
	}
	return e.record("declare_bankruptcy", seat, err)
}

func (e *GameEngine) declareBankruptcy(seat int) {
	p := e.state.Player(seat)
	creditor := p.Creditor
	toCreditor := creditor != BankSeat && creditor != seat && e.state.IsActive(creditor)

	held := make([]int, len(p.Properties))
	copy(held, p.Properties)
	for _, id := range held {
		o, _ := e.state.Board.Deed(id)
		if toCreditor {
			e.assignDeed(o, creditor)
			continue
		}
		e.assignDeed(o, BankSeat)
		o.Title().Mortgaged = false
		if prop, ok := o.(*Property); ok && prop.Houses > 0 {
			if prop.HasHotel() {
				e.state.Hotels++
			} else {
				e.state.Houses += prop.Houses
			}
			prop.Houses = 0
		}
	}
	e.refreshFlags()

	next := e.nextActiveSeat(seat)
	e.state.ActivePlayers = removeSeat(e.state.ActivePlayers, seat)
	e.state.InactivePlayers = append(e.state.InactivePlayers, seat)
	p.Cash = 0
	p.GetOutFree = false
	p.Jail = 0

	e.passTurn(next)
	if !e.state.Done {
		receiver := "the bank"
		if toCreditor {
			receiver = fmt.Sprintf("player %d", creditor)
		}
		e.state.Message = fmt.Sprintf("Player %d is bankrupt, holdings go to %s. Player %d to roll", seat, receiver, next)
	}
}

func removeSeat(seats []int, seat int) []int {
	out := make([]int, 0, len(seats))
	for _, s := range seats {
		if s != seat {
			out = append(out, s)
		}
	}
	return out
}
