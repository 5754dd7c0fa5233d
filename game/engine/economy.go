package engine

import "fmt"

// ownedDeed resolves id to a deed held by the seat whose turn it is
func (e *GameEngine) ownedDeed(id int) (Ownable, error) {
	if err := e.checkIdle(); err != nil {
		return nil, err
	}
	o, ok := e.state.Board.Deed(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDeed, id)
	}
	if o.Title().Owner != e.state.Turn {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, o.Info().Name)
	}
	return o, nil
}

// ownedProperty is ownedDeed restricted to streets
func (e *GameEngine) ownedProperty(id int) (*Property, error) {
	o, err := e.ownedDeed(id)
	if err != nil {
		return nil, err
	}
	p, ok := o.(*Property)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotProperty, o.Info().Name)
	}
	return p, nil
}

func (e *GameEngine) checkBuy(id int) error {
	if err := e.checkIdle(); err != nil {
		return err
	}
	t, ok := e.state.Board.Deed(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDeed, id)
	}
	if e.CurrentTile() != Tile(t) {
		return fmt.Errorf("%w: %s", ErrWrongTile, t.Info().Name)
	}
	deed := t.Title()
	if deed.Owned() {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, t.Info().Name)
	}
	if p := e.current(); p.Cash < deed.Price {
		return fmt.Errorf("%w: price %d, cash %d", ErrInsufficientFunds, deed.Price, p.Cash)
	}
	return nil
}

// CanBuy reports whether the current player may buy the deed they stand on
func (e *GameEngine) CanBuy(id int) bool {
	return e.checkBuy(id) == nil
}

// BuyProperty buys the unowned deed under the current player at list price
func (e *GameEngine) BuyProperty(id int) error {
	err := e.checkBuy(id)
	if err == nil {
		t, _ := e.state.Board.Deed(id)
		p := e.current()
		p.Cash -= t.Title().Price
		e.assignDeed(t, p.Number)
		e.refreshFlags()
		e.state.Pending = 0
		e.state.Message = fmt.Sprintf("Player %d bought %s for $%d", p.Number, t.Info().Name, t.Title().Price)
	}
	return e.record("buy", e.state.Turn, err)
}

func (e *GameEngine) checkMortgage(id int) error {
	o, err := e.ownedDeed(id)
	if err != nil {
		return err
	}
	if o.Title().Mortgaged {
		return fmt.Errorf("%w: %s", ErrMortgaged, o.Info().Name)
	}
	if p, ok := o.(*Property); ok && p.Houses > 0 {
		return fmt.Errorf("%w: %s", ErrHasBuildings, p.Name)
	}
	return nil
}

// CanMortgage reports whether the current player may mortgage the deed
func (e *GameEngine) CanMortgage(id int) bool {
	return e.checkMortgage(id) == nil
}

// MortgageProperty mortgages the deed, crediting its mortgage value
func (e *GameEngine) MortgageProperty(id int) error {
	err := e.checkMortgage(id)
	if err == nil {
		o, _ := e.state.Board.Deed(id)
		deed := o.Title()
		deed.Mortgaged = true
		e.current().Cash += deed.MortgageValue
		e.state.Message = fmt.Sprintf("Player %d mortgaged %s for $%d", e.state.Turn, o.Info().Name, deed.MortgageValue)
	}
	return e.record("mortgage", e.state.Turn, err)
}

func (e *GameEngine) checkUnmortgage(id int) error {
	o, err := e.ownedDeed(id)
	if err != nil {
		return err
	}
	deed := o.Title()
	if !deed.Mortgaged {
		return fmt.Errorf("%w: %s", ErrNotMortgaged, o.Info().Name)
	}
	cost := e.config.UnmortgageCost(deed.MortgageValue)
	if p := e.current(); p.Cash < cost {
		return fmt.Errorf("%w: cost %d, cash %d", ErrInsufficientFunds, cost, p.Cash)
	}
	return nil
}

// CanUnmortgage reports whether the current player may lift the mortgage
func (e *GameEngine) CanUnmortgage(id int) bool {
	return e.checkUnmortgage(id) == nil
}

// UnmortgageProperty repays the mortgage value plus interest
func (e *GameEngine) UnmortgageProperty(id int) error {
	err := e.checkUnmortgage(id)
	if err == nil {
		o, _ := e.state.Board.Deed(id)
		deed := o.Title()
		cost := e.config.UnmortgageCost(deed.MortgageValue)
		deed.Mortgaged = false
		e.current().Cash -= cost
		e.state.Message = fmt.Sprintf("Player %d unmortgaged %s for $%d", e.state.Turn, o.Info().Name, cost)
	}
	return e.record("unmortgage", e.state.Turn, err)
}

func (e *GameEngine) checkBuild(id int) error {
	prop, err := e.ownedProperty(id)
	if err != nil {
		return err
	}
	switch {
	case !prop.Monopoly:
		return fmt.Errorf("%w: %s", ErrNoMonopoly, prop.Group)
	case prop.Mortgaged:
		return fmt.Errorf("%w: %s", ErrMortgaged, prop.Name)
	case prop.Houses >= MaxImprovement:
		return fmt.Errorf("%w: %s", ErrMaxImprovement, prop.Name)
	}
	for _, other := range e.state.Board.Group(prop.Group) {
		if other == prop {
			continue
		}
		if other.Mortgaged {
			return fmt.Errorf("%w: %s", ErrMortgaged, other.Name)
		}
		if other.Houses < prop.Houses {
			return fmt.Errorf("%w: %s has %d, %s has %d", ErrUnevenBuild, other.Name, other.Houses, prop.Name, prop.Houses)
		}
	}
	if p := e.current(); p.Cash < prop.HousePrice {
		return fmt.Errorf("%w: house %d, cash %d", ErrInsufficientFunds, prop.HousePrice, p.Cash)
	}
	if prop.Houses == HotelLevel-1 {
		if e.state.Hotels < 1 {
			return fmt.Errorf("%w: no hotels", ErrBankEmpty)
		}
	} else if e.state.Houses < 1 {
		return fmt.Errorf("%w: no houses", ErrBankEmpty)
	}
	return nil
}

// CanBuild reports whether the current player may add a building to the property
func (e *GameEngine) CanBuild(id int) bool {
	return e.checkBuild(id) == nil
}

// BuildHouse adds one improvement level. The fifth level is a hotel, which
// hands the four houses back to the bank.
func (e *GameEngine) BuildHouse(id int) error {
	err := e.checkBuild(id)
	if err == nil {
		prop, _ := e.ownedProperty(id)
		e.current().Cash -= prop.HousePrice
		if prop.Houses == HotelLevel-1 {
			e.state.Hotels--
			e.state.Houses += HousesPerHotel
		} else {
			e.state.Houses--
		}
		prop.Houses++
		e.state.Message = fmt.Sprintf("Player %d built on %s (level %d)", e.state.Turn, prop.Name, prop.Houses)
	}
	return e.record("build", e.state.Turn, err)
}

func (e *GameEngine) checkSell(id int) error {
	prop, err := e.ownedProperty(id)
	if err != nil {
		return err
	}
	if prop.Houses == 0 {
		return fmt.Errorf("%w: %s", ErrNoImprovement, prop.Name)
	}
	for _, other := range e.state.Board.Group(prop.Group) {
		if other != prop && other.Houses > prop.Houses {
			return fmt.Errorf("%w: %s has %d, %s has %d", ErrUnevenBuild, other.Name, other.Houses, prop.Name, prop.Houses)
		}
	}
	return nil
}

// sellLevel is the improvement level a sale leaves behind. Breaking a hotel
// normally swaps it for four houses; when the bank is short the lot keeps
// only as many houses as the bank can hand over.
func (e *GameEngine) sellLevel(prop *Property) int {
	if prop.HasHotel() && e.state.Houses < HousesPerHotel {
		return e.state.Houses
	}
	return prop.Houses - 1
}

// CanSell reports whether the current player may sell a building from the property
func (e *GameEngine) CanSell(id int) bool {
	return e.checkSell(id) == nil
}

// SellHouse removes one improvement level for half the house price. A hotel
// the bank cannot break into four houses is sold down further, paying half
// the house price for every level removed.
func (e *GameEngine) SellHouse(id int) error {
	err := e.checkSell(id)
	if err == nil {
		prop, _ := e.ownedProperty(id)
		level := e.sellLevel(prop)
		if prop.HasHotel() {
			e.state.Hotels++
			e.state.Houses -= level
		} else {
			e.state.Houses++
		}
		proceeds := (prop.Houses - level) * (prop.HousePrice / 2)
		prop.Houses = level
		e.current().Cash += proceeds
		e.state.Message = fmt.Sprintf("Player %d sold buildings on %s for $%d (level %d)", e.state.Turn, prop.Name, proceeds, level)
	}
	return e.record("sell", e.state.Turn, err)
}

// assignDeed moves a deed to seat, keeping both players' property lists in sync
func (e *GameEngine) assignDeed(o Ownable, seat int) {
	deed := o.Title()
	if prev := e.state.Player(deed.Owner); prev != nil {
		prev.removeProperty(deed.ID)
	}
	deed.Owner = seat
	if next := e.state.Player(seat); next != nil {
		next.addProperty(deed.ID)
		next.SortProperties()
	}
}

// refreshFlags recomputes every ownership-derived flag on the board
func (e *GameEngine) refreshFlags() {
	for _, g := range ColorGroups {
		e.updateMonopoly(g)
	}
	e.updateRailroads()
	e.updateUtilities()
}

func (e *GameEngine) updateMonopoly(group ColorGroup) {
	members := e.state.Board.Group(group)
	owner := members[0].Owner
	monopoly := owner != BankSeat
	for _, p := range members[1:] {
		if p.Owner != owner {
			monopoly = false
		}
	}
	for _, p := range members {
		p.Monopoly = monopoly
	}
}

func (e *GameEngine) updateRailroads() {
	roads := e.state.Board.Railroads()
	counts := make(map[int]int)
	for _, r := range roads {
		if r.Owned() {
			counts[r.Owner]++
		}
	}
	for _, r := range roads {
		r.OwnedCount = 0
		if r.Owned() {
			r.OwnedCount = counts[r.Owner]
		}
	}
}

func (e *GameEngine) updateUtilities() {
	utils := e.state.Board.Utilities()
	both := utils[0].Owned() && utils[0].Owner == utils[1].Owner
	for _, u := range utils {
		u.BothOwned = both
	}
}
