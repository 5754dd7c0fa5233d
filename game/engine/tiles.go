package engine

// Tile is one of the six board tile variants: *Property, *Railroad, *Utility,
// *ChanceTile, *CommunityChestTile or *EventTile. The set is closed; code that
// dispatches on tiles uses a type switch over all six.
type Tile interface {
	Info() *TileInfo
	tile()
}

// Ownable is a tile that can be bought, mortgaged and rented out
type Ownable interface {
	Tile
	Title() *Deed
}

// TileInfo holds the immutable identity shared by every tile
type TileInfo struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Image    string   `json:"image"`
	Kind     TileKind `json:"kind"`
}

// Info returns the tile identity
func (t *TileInfo) Info() *TileInfo { return t }

// Deed holds the ownership state of a buyable tile. Owner is a seat number,
// BankSeat (0) when unowned.
type Deed struct {
	ID            int  `json:"id"`
	Price         int  `json:"price"`
	MortgageValue int  `json:"mortgage_value"`
	Owner         int  `json:"owner"`
	Mortgaged     bool `json:"mortgaged"`
}

// Title returns the deed itself
func (d *Deed) Title() *Deed { return d }

// Owned reports whether a player holds the deed
func (d *Deed) Owned() bool { return d.Owner != BankSeat }

// Property is a colored street that can be improved with houses and a hotel
type Property struct {
	TileInfo
	Deed
	Group      ColorGroup `json:"group"`
	Rents      [6]int     `json:"rents"`
	HousePrice int        `json:"house_price"`
	Houses     int        `json:"houses"`
	Monopoly   bool       `json:"monopoly"`
}

// Rent returns the rent due for landing on the property
func (p *Property) Rent() int {
	if p.Mortgaged {
		return 0
	}
	if p.Houses == 0 && p.Monopoly {
		return 2 * p.Rents[0]
	}
	return p.Rents[p.Houses]
}

// HasHotel reports whether the property is fully improved
func (p *Property) HasHotel() bool { return p.Houses == HotelLevel }

func (p *Property) tile() {}

// RailroadRents maps the number of railroads held by one owner to the rent
var RailroadRents = map[int]int{1: 25, 2: 50, 3: 100, 4: 200}

// Railroad rent scales with how many railroads its owner holds
type Railroad struct {
	TileInfo
	Deed
	OwnedCount int `json:"owned_count"`
}

// Rent returns the rent due for landing on the railroad
func (r *Railroad) Rent() int {
	if r.Mortgaged {
		return 0
	}
	return RailroadRents[r.OwnedCount]
}

func (r *Railroad) tile() {}

// Utility rent is a multiple of the dice roll
type Utility struct {
	TileInfo
	Deed
	BothOwned bool `json:"both_owned"`
}

// Rent returns the rent due for landing on the utility with the given dice sum
func (u *Utility) Rent(diceSum int) int {
	if u.Mortgaged {
		return 0
	}
	if u.BothOwned {
		return diceSum * 10
	}
	return diceSum * 4
}

func (u *Utility) tile() {}

// ChanceTile draws from the Chance deck
type ChanceTile struct {
	TileInfo
}

func (c *ChanceTile) tile() {}

// CommunityChestTile draws from the Community Chest deck
type CommunityChestTile struct {
	TileInfo
}

func (c *CommunityChestTile) tile() {}

// EventTile applies a fixed effect to the player landing on it
type EventTile struct {
	TileInfo
	Effect Effect `json:"effect"`
}

func (e *EventTile) tile() {}

// TitleOf returns the deed of a buyable tile
func TitleOf(t Tile) (*Deed, bool) {
	o, ok := t.(Ownable)
	if !ok {
		return nil, false
	}
	return o.Title(), true
}
