package main

import (
	"github.com/wricardo/monopoly-engine/game/service"
)

// GreedyStrategy buys and builds whenever it can stay above a cash reserve,
// bids up to list price in auctions and raises cash in debt by selling
// buildings before mortgaging. It sees only the legal action listing and the
// board prices, so every seat can share one strategy.
type GreedyStrategy struct {
	Reserve int
}

func NewGreedyStrategy(reserve int) *GreedyStrategy {
	return &GreedyStrategy{Reserve: reserve}
}

// NextAction picks the next action for the seat the listing belongs to.
// ok is false when nothing the strategy knows is legal.
func (s *GreedyStrategy) NextAction(legal *service.LegalActionsInfo, state *GameState) (service.Action, bool) {
	if legal.Phase == service.PhaseGameOver {
		return service.Action{}, false
	}

	if legal.Phase == service.PhaseAuction {
		return s.auctionAction(legal, state)
	}

	if legal.InDebt {
		switch {
		case len(legal.Sell) > 0:
			return service.Action{Type: service.ActionSell, DeedID: legal.Sell[0]}, true
		case len(legal.Mortgage) > 0:
			return service.Action{Type: service.ActionMortgage, DeedID: legal.Mortgage[0]}, true
		case legal.DeclareBankruptcy:
			return service.Action{Type: service.ActionDeclareBankruptcy}, true
		}
		return service.Action{}, false
	}

	if legal.Phase == service.PhasePendingPurchase {
		for _, id := range legal.Buy {
			if deed, ok := state.Deed(id); ok && legal.Cash-deed.Price >= s.Reserve {
				return service.Action{Type: service.ActionBuy, DeedID: id}, true
			}
		}
		if len(legal.StartAuction) > 0 {
			return service.Action{Type: service.ActionStartAuction, DeedID: legal.StartAuction[0]}, true
		}
	}

	if legal.InJail {
		switch {
		case legal.UseCard:
			return service.Action{Type: service.ActionUseCard}, true
		case legal.PayFine && (!legal.TakeTurn || legal.Cash > 2*s.Reserve):
			return service.Action{Type: service.ActionPayFine}, true
		}
	}

	for _, id := range legal.Build {
		if deed, ok := state.Deed(id); ok && legal.Cash-deed.HousePrice >= s.Reserve {
			return service.Action{Type: service.ActionBuild, DeedID: id}, true
		}
	}

	for _, id := range legal.Unmortgage {
		// lifting a mortgage costs a little over half the price
		if deed, ok := state.Deed(id); ok && legal.Cash-deed.Price >= 2*s.Reserve {
			return service.Action{Type: service.ActionUnmortgage, DeedID: id}, true
		}
	}

	switch {
	case legal.TakeTurn:
		return service.Action{Type: service.ActionTakeTurn}, true
	case legal.EndTurn:
		return service.Action{Type: service.ActionEndTurn}, true
	}

	// a jailed seat out of rolls has to raise the fine
	if legal.InJail {
		switch {
		case len(legal.Sell) > 0:
			return service.Action{Type: service.ActionSell, DeedID: legal.Sell[0]}, true
		case len(legal.Mortgage) > 0:
			return service.Action{Type: service.ActionMortgage, DeedID: legal.Mortgage[0]}, true
		}
	}
	return service.Action{}, false
}

// auctionAction jumps straight to the seat's valuation: list price, capped by
// what it can spend above the reserve. Anything past that is a withdrawal.
func (s *GreedyStrategy) auctionAction(legal *service.LegalActionsInfo, state *GameState) (service.Action, bool) {
	limit := legal.Cash - s.Reserve
	if state.Auction != nil {
		if deed, ok := state.Deed(state.Auction.DeedID); ok && deed.Price < limit {
			limit = deed.Price
		}
	}

	if legal.MinBid > 0 && limit >= legal.MinBid {
		return service.Action{Type: service.ActionBid, Amount: limit}, true
	}
	for _, seat := range legal.Withdraw {
		if seat == legal.Seat {
			return service.Action{Type: service.ActionWithdraw, Seat: seat}, true
		}
	}
	return service.Action{}, false
}
