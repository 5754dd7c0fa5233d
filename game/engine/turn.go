package engine

import "fmt"

func (e *GameEngine) checkTakeTurn() error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	p := e.current()
	switch {
	case e.state.TurnTaken:
		return ErrTurnTaken
	case e.jailExhausted(p):
		return ErrJailExhausted
	case e.state.Pending != 0:
		return fmt.Errorf("%w: deed %d", ErrPendingPurchase, e.state.Pending)
	case p.InDebt():
		return fmt.Errorf("%w: cash %d", ErrInDebt, p.Cash)
	}
	return nil
}

// CanTakeTurn reports whether the current player may roll
func (e *GameEngine) CanTakeTurn() bool {
	return e.checkTakeTurn() == nil
}

// TakeTurn rolls the dice for the current player and applies the result.
// A jailed player only tries for doubles: success frees them without moving.
// Doubles out of jail grant another roll; the third in a row sends the player
// to jail instead of moving.
func (e *GameEngine) TakeTurn() error {
	err := e.checkTakeTurn()
	if err == nil {
		e.takeTurn()
	}
	return e.record("take_turn", e.state.Turn, err)
}

func (e *GameEngine) takeTurn() {
	p := e.current()
	d1, d2 := e.roll()
	sum := d1 + d2
	doubles := d1 == d2

	if p.InJail() {
		e.state.TurnTaken = true
		e.state.DoublesStreak = 0
		if doubles {
			p.Jail = 0
			e.state.Message = fmt.Sprintf("Player %d rolled doubles and is released from jail", p.Number)
		} else {
			p.Jail++
			e.state.Message = fmt.Sprintf("Player %d rolled %d-%d and stays in jail", p.Number, d1, d2)
		}
		return
	}

	if !doubles {
		e.state.DoublesStreak = 0
		e.state.TurnTaken = true
		e.moveBy(p, sum, sum)
		return
	}

	e.state.DoublesStreak++
	if e.state.DoublesStreak >= MaxDoublesStreak {
		e.sendToJail(p)
		e.state.Message = fmt.Sprintf("Player %d rolled doubles %d times and goes to jail", p.Number, MaxDoublesStreak)
		return
	}
	e.moveBy(p, sum, sum)
}

func (e *GameEngine) checkEndTurn() error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	p := e.current()
	switch {
	case e.state.Pending != 0:
		return fmt.Errorf("%w: deed %d", ErrPendingPurchase, e.state.Pending)
	case e.state.DoublesStreak != 0:
		return ErrMustRollAgain
	case !e.state.TurnTaken:
		return ErrTurnNotTaken
	case p.InDebt():
		return fmt.Errorf("%w: cash %d", ErrInDebt, p.Cash)
	}
	return nil
}

// CanEndTurn reports whether the current player may pass the turn
func (e *GameEngine) CanEndTurn() bool {
	return e.checkEndTurn() == nil
}

// EndTurn passes the turn to the next active seat
func (e *GameEngine) EndTurn() error {
	seat := e.state.Turn
	err := e.checkEndTurn()
	if err == nil {
		e.passTurn(e.nextActiveSeat(seat))
	}
	return e.record("end_turn", seat, err)
}

// passTurn hands the game turn to seat and clears the per-turn flags
func (e *GameEngine) passTurn(seat int) {
	e.state.Turn = seat
	e.state.TurnTaken = false
	e.state.DoublesStreak = 0
	e.state.Pending = e.pendingDeed()
	e.state.LastCard = nil

	if len(e.state.ActivePlayers) == 1 {
		e.state.Done = true
		e.state.Winner = e.state.ActivePlayers[0]
		e.state.Message = fmt.Sprintf("Player %d wins!", e.state.Winner)
		return
	}
	e.state.Message = fmt.Sprintf("Player %d to roll", seat)
	if e.state.Pending != 0 {
		o, _ := e.state.Board.Deed(e.state.Pending)
		e.state.Message += fmt.Sprintf(". %s is for sale for $%d", o.Info().Name, o.Title().Price)
	}
}

// pendingDeed returns the id of the unowned deed under the current player, or
// zero. A deed handed back to the bank can leave a seat standing on it.
func (e *GameEngine) pendingDeed() int {
	o, ok := e.CurrentTile().(Ownable)
	if !ok || o.Title().Owned() {
		return 0
	}
	return o.Title().ID
}

// jailExhausted reports whether the player has used every roll the rules allow
// for doubles. The jail counter starts at one on arrival.
func (e *GameEngine) jailExhausted(p *Player) bool {
	return p.Jail > e.config.MaxJailRolls
}

func (e *GameEngine) checkJailExit() error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	if !e.current().InJail() {
		return ErrNotInJail
	}
	if e.state.TurnTaken {
		return ErrTurnTaken
	}
	return nil
}

func (e *GameEngine) checkPayFiftyGetOut() error {
	if err := e.checkJailExit(); err != nil {
		return err
	}
	// out of rolls the fine is owed regardless, so it may push cash below zero
	if p := e.current(); p.Cash < e.config.JailFine && !e.jailExhausted(p) {
		return fmt.Errorf("%w: fine %d, cash %d", ErrInsufficientFunds, e.config.JailFine, p.Cash)
	}
	return nil
}

// CanPayFiftyGetOut reports whether the current player may buy their way out of jail
func (e *GameEngine) CanPayFiftyGetOut() bool {
	return e.checkPayFiftyGetOut() == nil
}

// PayFiftyGetOut pays the jail fine into the center pot and frees the player.
// A player out of rolls may pay into debt and must then raise the cash, or go
// bankrupt to the bank, before rolling.
func (e *GameEngine) PayFiftyGetOut() error {
	err := e.checkPayFiftyGetOut()
	if err == nil {
		p := e.current()
		p.Cash -= e.config.JailFine
		e.state.CenterPot += e.config.JailFine
		p.Jail = 0
		if p.InDebt() {
			p.Creditor = BankSeat
		}
		e.state.Message = fmt.Sprintf("Player %d paid $%d to leave jail", p.Number, e.config.JailFine)
	}
	return e.record("pay_fine", e.state.Turn, err)
}

func (e *GameEngine) checkGetOutFree() error {
	if err := e.checkJailExit(); err != nil {
		return err
	}
	if !e.current().GetOutFree {
		return ErrNoCard
	}
	return nil
}

// CanGetOutFree reports whether the current player may use a get out of jail free card
func (e *GameEngine) CanGetOutFree() bool {
	return e.checkGetOutFree() == nil
}

// GetOutFree spends the player's card to leave jail
func (e *GameEngine) GetOutFree() error {
	err := e.checkGetOutFree()
	if err == nil {
		p := e.current()
		p.GetOutFree = false
		p.Jail = 0
		e.state.Message = fmt.Sprintf("Player %d used a get out of jail free card", p.Number)
	}
	return e.record("use_card", e.state.Turn, err)
}
