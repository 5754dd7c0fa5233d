package engine

import "errors"

// Precondition failures returned by the engine mutators. Callers match them
// with errors.Is; the wrapped message carries the detail.
var (
	ErrGameOver          = errors.New("game is over")
	ErrAuctionActive     = errors.New("an auction is in progress")
	ErrNoAuction         = errors.New("no auction in progress")
	ErrTurnTaken         = errors.New("turn already taken")
	ErrTurnNotTaken      = errors.New("turn not taken yet")
	ErrMustRollAgain     = errors.New("doubles rolled, must roll again")
	ErrPendingPurchase   = errors.New("a purchase decision is pending")
	ErrInDebt            = errors.New("player is in debt")
	ErrJailExhausted     = errors.New("jail rolls exhausted, pay the fine or use a card")
	ErrNotInJail         = errors.New("player is not in jail")
	ErrNoCard            = errors.New("player holds no get out of jail free card")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownDeed       = errors.New("unknown deed")
	ErrNotBuyable        = errors.New("tile is not buyable")
	ErrAlreadyOwned      = errors.New("deed already owned")
	ErrWrongTile         = errors.New("deed is not the current tile")
	ErrNotOwner          = errors.New("player does not own the deed")
	ErrMortgaged         = errors.New("deed is mortgaged")
	ErrNotMortgaged      = errors.New("deed is not mortgaged")
	ErrHasBuildings      = errors.New("deed has buildings")
	ErrNotProperty       = errors.New("deed is not a property")
	ErrNoMonopoly        = errors.New("player does not hold the full color group")
	ErrUnevenBuild       = errors.New("buildings must stay even across the group")
	ErrMaxImprovement    = errors.New("property already has a hotel")
	ErrNoImprovement     = errors.New("property has no buildings")
	ErrBankEmpty         = errors.New("bank has no buildings left")
	ErrNotBankrupt       = errors.New("player is not bankrupt")
	ErrNotYourTurn       = errors.New("not this seat's turn")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrBidTooLow         = errors.New("bid must exceed the current high bid")
	ErrInvalidBid        = errors.New("possible bid out of range")
)
