package engine

import "fmt"

// roll throws both dice and stores the result
func (e *GameEngine) roll() (int, int) {
	d1, d2 := rollDie(e.rng), rollDie(e.rng)
	e.state.Dice = [2]int{d1, d2}
	return d1, d2
}

// moveBy advances the player clockwise, paying the Go salary when the move
// reaches or passes Go, then resolves the landing tile.
func (e *GameEngine) moveBy(p *Player, steps, diceSum int) {
	from := p.Location.Index()
	total := from + steps
	if total >= BoardSize {
		p.Cash += e.config.PassGoSalary
	}
	p.Location = PositionFromIndex(total)
	e.state.Message = fmt.Sprintf("Player %d rolled %d and moved to %s",
		p.Number, diceSum, e.state.Board.At(p.Location).Info().Name)
	if total >= BoardSize {
		e.state.Message += fmt.Sprintf(", collecting $%d", e.config.PassGoSalary)
	}
	e.resolveLanding(p, diceSum)
}

// moveBack steps the player counter-clockwise without any Go salary
func (e *GameEngine) moveBack(p *Player, steps, diceSum int) {
	p.Location = PositionFromIndex(p.Location.Index() - steps)
	e.state.Message = fmt.Sprintf("Player %d moved back to %s",
		p.Number, e.state.Board.At(p.Location).Info().Name)
	e.resolveLanding(p, diceSum)
}

// sendToJail puts the player on the jail corner and ends their action for the turn
func (e *GameEngine) sendToJail(p *Player) {
	p.Location = JailPosition
	p.Jail = 1
	e.state.TurnTaken = true
	e.state.DoublesStreak = 0
	e.state.Message = fmt.Sprintf("Player %d goes to jail", p.Number)
}

// nextActiveSeat returns the first active seat after seat, wrapping around
func (e *GameEngine) nextActiveSeat(seat int) int {
	n := len(e.state.Players)
	for step := 1; step <= n; step++ {
		candidate := (seat-1+step)%n + 1
		if e.state.IsActive(candidate) {
			return candidate
		}
	}
	return seat
}
