package engine

// NetWorth returns a player's cash plus the liquidation value of their
// holdings: mortgage value of unmortgaged deeds and half price of buildings.
func NetWorth(state *GameState, seat int) int {
	p := state.Player(seat)
	if p == nil {
		return 0
	}
	worth := p.Cash
	for _, id := range p.Properties {
		o, ok := state.Board.Deed(id)
		if !ok {
			continue
		}
		deed := o.Title()
		if !deed.Mortgaged {
			worth += deed.MortgageValue
		}
		if prop, ok := o.(*Property); ok {
			worth += prop.Houses * prop.HousePrice / 2
		}
	}
	return worth
}

// GroupEconomics summarizes the cost and payoff of one color group
type GroupEconomics struct {
	Group       ColorGroup `json:"group"`
	Members     int        `json:"members"`
	PurchaseSum int        `json:"purchase_sum"`
	DevelopCost int        `json:"develop_cost"`
	HotelRent   int        `json:"hotel_rent"`
	BreakEven   int        `json:"break_even"`
}

// AnalyzeGroup computes the purchase and development economics of a color group.
// BreakEven is the number of hotel-rent landings that recoup the full outlay.
func AnalyzeGroup(board *Board, group ColorGroup) GroupEconomics {
	members := board.Group(group)
	eco := GroupEconomics{Group: group, Members: len(members)}
	for _, p := range members {
		eco.PurchaseSum += p.Price
		eco.DevelopCost += p.HousePrice * MaxImprovement
		if p.Rents[HotelLevel] > eco.HotelRent {
			eco.HotelRent = p.Rents[HotelLevel]
		}
	}
	if eco.HotelRent > 0 {
		total := eco.PurchaseSum + eco.DevelopCost
		eco.BreakEven = (total + eco.HotelRent - 1) / eco.HotelRent
	}
	return eco
}

// CountBuildings returns the houses and hotels standing on the board
func CountBuildings(board *Board) (houses, hotels int) {
	for _, o := range board.Deeds() {
		p, ok := o.(*Property)
		if !ok {
			continue
		}
		if p.HasHotel() {
			hotels++
		} else {
			houses += p.Houses
		}
	}
	return houses, hotels
}

// TotalCash sums the cash held by every player plus the center pot
func TotalCash(state *GameState) int {
	total := state.CenterPot
	for _, p := range state.Players {
		total += p.Cash
	}
	return total
}
