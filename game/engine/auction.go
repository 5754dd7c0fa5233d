package engine

import "fmt"

// Auction holds the state of a running auction for one deed. Bidders are the
// seats that were active when it started; Withdrawn lists the ones that left.
type Auction struct {
	DeedID      int         `json:"deed_id"`
	StartedBy   int         `json:"started_by"`
	Bidders     []int       `json:"bidders"`
	Withdrawn   []int       `json:"withdrawn"`
	Turn        int         `json:"turn"`
	Bids        map[int]int `json:"bids"`
	PossibleBid int         `json:"possible_bid"`
}

func newAuction(deedID, startedBy int, seats []int) *Auction {
	bidders := make([]int, len(seats))
	copy(bidders, seats)
	return &Auction{
		DeedID:    deedID,
		StartedBy: startedBy,
		Bidders:   bidders,
		Withdrawn: []int{},
		Turn:      startedBy,
		Bids:      make(map[int]int),
	}
}

// IsBidding reports whether the seat is still in the auction
func (a *Auction) IsBidding(seat int) bool {
	in := false
	for _, s := range a.Bidders {
		if s == seat {
			in = true
			break
		}
	}
	if !in {
		return false
	}
	for _, s := range a.Withdrawn {
		if s == seat {
			return false
		}
	}
	return true
}

// Remaining returns the seats that have not withdrawn, in seat order
func (a *Auction) Remaining() []int {
	var out []int
	for _, s := range a.Bidders {
		if a.IsBidding(s) {
			out = append(out, s)
		}
	}
	return out
}

// HighBid returns the largest bid committed by a remaining bidder, 0 if none
func (a *Auction) HighBid() int {
	high := 0
	for _, s := range a.Remaining() {
		if a.Bids[s] > high {
			high = a.Bids[s]
		}
	}
	return high
}

// HighBidder returns the seat holding the high bid, 0 if nobody has bid
func (a *Auction) HighBidder() int {
	high, seat := 0, 0
	for _, s := range a.Remaining() {
		if a.Bids[s] > high {
			high, seat = a.Bids[s], s
		}
	}
	return seat
}

// nextAfter returns the next remaining bidder after seat, wrapping around
func (a *Auction) nextAfter(seat int) int {
	idx := -1
	for i, s := range a.Bidders {
		if s == seat {
			idx = i
			break
		}
	}
	for step := 1; step <= len(a.Bidders); step++ {
		s := a.Bidders[(idx+step+len(a.Bidders))%len(a.Bidders)]
		if a.IsBidding(s) {
			return s
		}
	}
	return seat
}

func (e *GameEngine) checkStartAuction(id int) error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	o, ok := e.state.Board.Deed(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDeed, id)
	}
	if o.Title().Owned() {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, o.Info().Name)
	}
	if e.CurrentTile() != Tile(o) {
		return fmt.Errorf("%w: %s", ErrWrongTile, o.Info().Name)
	}
	return nil
}

// CanStartAuction reports whether the deed under the current player can go to auction
func (e *GameEngine) CanStartAuction(id int) bool {
	return e.checkStartAuction(id) == nil
}

// StartAuction opens bidding on the unowned deed the current player stands on
func (e *GameEngine) StartAuction(id int) error {
	err := e.checkStartAuction(id)
	if err == nil {
		o, _ := e.state.Board.Deed(id)
		e.state.Auction = newAuction(id, e.state.Turn, e.state.ActivePlayers)
		e.state.Message = fmt.Sprintf("Auction started for %s", o.Info().Name)
	}
	return e.record("start_auction", e.state.Turn, err)
}

func (e *GameEngine) checkBid(amount int) error {
	a := e.state.Auction
	if a == nil {
		return ErrNoAuction
	}
	if amount <= a.HighBid() {
		return fmt.Errorf("%w: %d <= %d", ErrBidTooLow, amount, a.HighBid())
	}
	if p := e.state.Player(a.Turn); p == nil || amount > p.Cash {
		return fmt.Errorf("%w: bid %d", ErrInsufficientFunds, amount)
	}
	return nil
}

// CanBid reports whether the seat holding the auction turn may bid amount
func (e *GameEngine) CanBid(amount int) bool {
	return e.checkBid(amount) == nil
}

// Bid commits amount for the seat holding the auction turn and passes the turn on
func (e *GameEngine) Bid(amount int) error {
	seat := e.CurrentSeat()
	err := e.checkBid(amount)
	if err == nil {
		a := e.state.Auction
		a.Bids[seat] = amount
		a.Turn = a.nextAfter(seat)
		a.PossibleBid = a.HighBid()
		e.state.Message = fmt.Sprintf("Player %d bids $%d", seat, amount)
	}
	return e.record("bid", seat, err)
}

func (e *GameEngine) checkWithdraw(seat int) error {
	a := e.state.Auction
	if a == nil {
		return ErrNoAuction
	}
	if !a.IsBidding(seat) {
		return fmt.Errorf("%w: seat %d is not bidding", ErrInvalidSeat, seat)
	}
	return nil
}

// CanWithdraw reports whether the seat may leave the running auction
func (e *GameEngine) CanWithdraw(seat int) bool {
	return e.checkWithdraw(seat) == nil
}

// Withdraw removes the seat from the auction, retracting its bid. When a
// single bidder remains it wins the deed for its own last bid.
func (e *GameEngine) Withdraw(seat int) error {
	err := e.checkWithdraw(seat)
	if err == nil {
		a := e.state.Auction
		delete(a.Bids, seat)
		a.Withdrawn = append(a.Withdrawn, seat)
		e.state.Message = fmt.Sprintf("Player %d withdraws", seat)

		remaining := a.Remaining()
		if len(remaining) == 1 {
			e.finishAuction(remaining[0])
		} else {
			if a.Turn == seat {
				a.Turn = a.nextAfter(seat)
			}
			a.PossibleBid = a.HighBid()
		}
	}
	return e.record("withdraw", seat, err)
}

func (e *GameEngine) finishAuction(winner int) {
	a := e.state.Auction
	price := a.Bids[winner]
	p := e.state.Player(winner)
	o, _ := e.state.Board.Deed(a.DeedID)

	p.Cash -= price
	e.assignDeed(o, winner)
	e.refreshFlags()

	e.state.Auction = nil
	e.state.Pending = 0
	e.state.Message = fmt.Sprintf("Player %d wins %s for $%d", winner, o.Info().Name, price)
}

func (e *GameEngine) checkChangePossibleBid(delta int) error {
	a := e.state.Auction
	if a == nil {
		return ErrNoAuction
	}
	next := a.PossibleBid + delta
	p := e.state.Player(a.Turn)
	if next < 0 || p == nil || next > p.Cash {
		return fmt.Errorf("%w: %d", ErrInvalidBid, next)
	}
	return nil
}

// CanChangePossibleBid reports whether the staged bid may move by delta
func (e *GameEngine) CanChangePossibleBid(delta int) bool {
	return e.checkChangePossibleBid(delta) == nil
}

// ChangePossibleBid adjusts the staged bid shown to the seat holding the auction turn
func (e *GameEngine) ChangePossibleBid(delta int) error {
	seat := e.CurrentSeat()
	err := e.checkChangePossibleBid(delta)
	if err == nil {
		e.state.Auction.PossibleBid += delta
		e.state.Message = fmt.Sprintf("Possible bid $%d", e.state.Auction.PossibleBid)
	}
	return e.record("change_possible_bid", seat, err)
}
