package engine

import "fmt"

// resolveLanding applies the tile the player just reached
func (e *GameEngine) resolveLanding(p *Player, diceSum int) {
	switch t := e.state.Board.At(p.Location).(type) {
	case *Property:
		e.landOnDeed(p, t, t.Rent())
	case *Railroad:
		e.landOnDeed(p, t, t.Rent())
	case *Utility:
		e.landOnDeed(p, t, t.Rent(diceSum))
	case *ChanceTile:
		e.drawCard(p, e.state.ChanceDeck, diceSum)
	case *CommunityChestTile:
		e.drawCard(p, e.state.CommunityDeck, diceSum)
	case *EventTile:
		e.applyEffect(p, t.Effect, diceSum)
	}
}

func (e *GameEngine) landOnDeed(p *Player, t Ownable, rent int) {
	deed := t.Title()
	switch {
	case !deed.Owned():
		e.state.Pending = deed.ID
		e.state.Message += fmt.Sprintf(". %s is for sale for $%d", t.Info().Name, deed.Price)
	case deed.Owner == p.Number || deed.Mortgaged:
	default:
		owner := e.state.Player(deed.Owner)
		p.Cash -= rent
		owner.Cash += rent
		p.Creditor = owner.Number
		e.state.Message += fmt.Sprintf(". Paid $%d rent to player %d", rent, owner.Number)
	}
}

func (e *GameEngine) drawCard(p *Player, deck *Deck, diceSum int) {
	card := deck.Draw(e.rng)
	e.state.LastCard = &card
	e.state.Message += fmt.Sprintf(". %s: %s", deck.Name, card.Name)
	e.applyEffect(p, card.Effect, diceSum)
}

// applyEffect is the single handler for every event tile and card effect
func (e *GameEngine) applyEffect(p *Player, effect Effect, diceSum int) {
	switch effect {
	case EffectFreeParking:
		p.Cash += e.state.CenterPot
		e.state.Message += fmt.Sprintf(". Collected $%d from the center pot", e.state.CenterPot)
		e.state.CenterPot = 0
	case EffectGoToJail:
		e.sendToJail(p)
	case EffectIncomeTax:
		e.payTax(p, e.config.IncomeTax)
	case EffectLuxuryTax:
		e.payTax(p, e.config.LuxuryTax)
	case EffectSchoolTax:
		e.payTax(p, e.config.SchoolTax)
	case EffectDoctorFee:
		e.payTax(p, e.config.DoctorFee)
	case EffectAdvanceToGo:
		p.Location = GoPosition
		p.Cash += e.config.PassGoSalary
		e.state.Message += fmt.Sprintf(". Collected $%d", e.config.PassGoSalary)
	case EffectBankDividend:
		p.Cash += e.config.BankDividend
		e.state.Message += fmt.Sprintf(". Received $%d", e.config.BankDividend)
	case EffectGetOutOfJailFree:
		p.GetOutFree = true
	case EffectGoBackThree:
		e.moveBack(p, 3, diceSum)
	}
}

func (e *GameEngine) payTax(p *Player, amount int) {
	p.Cash -= amount
	p.Creditor = BankSeat
	e.state.CenterPot += amount
	e.state.Message += fmt.Sprintf(". Paid $%d to the center pot", amount)
}
