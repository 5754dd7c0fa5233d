package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

type propertyDef struct {
	id         int
	name       string
	image      string
	group      ColorGroup
	price      int
	rents      [6]int
	housePrice int
}

// Classic street definitions, keyed by deed id 1-22
var classicProperties = []propertyDef{
	{1, "Mediterranean Avenue", "mediterranean_ave.png", Brown, 60, [6]int{2, 10, 30, 90, 160, 250}, 50},
	{2, "Baltic Avenue", "baltic_ave.png", Brown, 60, [6]int{4, 20, 60, 180, 320, 450}, 50},
	{3, "Oriental Avenue", "oriental_ave.png", LightBlue, 100, [6]int{6, 30, 90, 270, 400, 550}, 50},
	{4, "Vermont Avenue", "vermont_ave.png", LightBlue, 100, [6]int{6, 30, 90, 270, 400, 550}, 50},
	{5, "Connecticut Avenue", "connecticut_ave.png", LightBlue, 120, [6]int{8, 40, 100, 300, 450, 600}, 50},
	{6, "St. Charles Place", "st_charles_place.png", Pink, 140, [6]int{10, 50, 150, 450, 625, 750}, 100},
	{7, "States Avenue", "states_ave.png", Pink, 140, [6]int{10, 50, 150, 450, 625, 750}, 100},
	{8, "Virginia Avenue", "virginia_ave.png", Pink, 160, [6]int{12, 60, 180, 500, 700, 900}, 100},
	{9, "St. James Place", "st_james_place.png", Orange, 180, [6]int{14, 70, 200, 550, 750, 950}, 100},
	{10, "Tennessee Avenue", "tennessee_ave.png", Orange, 180, [6]int{14, 70, 200, 550, 750, 950}, 100},
	{11, "New York Avenue", "new_york_ave.png", Orange, 200, [6]int{16, 80, 220, 600, 800, 1000}, 100},
	{12, "Kentucky Avenue", "kentucky_ave.png", Red, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150},
	{13, "Indiana Avenue", "indiana_ave.png", Red, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150},
	{14, "Illinois Avenue", "illinois_ave.png", Red, 240, [6]int{20, 100, 300, 750, 925, 1100}, 150},
	{15, "Atlantic Avenue", "atlantic_ave.png", Yellow, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150},
	{16, "Ventnor Avenue", "ventnor_ave.png", Yellow, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150},
	{17, "Marvin Gardens", "marvin_gardens.png", Yellow, 280, [6]int{24, 120, 360, 850, 1025, 1200}, 150},
	{18, "Pacific Avenue", "pacific_ave.png", Green, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200},
	{19, "North Carolina Avenue", "north_carolina_ave.png", Green, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200},
	{20, "Pennsylvania Avenue", "pennsylvania_ave.png", Green, 320, [6]int{28, 150, 450, 1000, 1200, 1400}, 200},
	{21, "Park Place", "park_place.png", DarkBlue, 350, [6]int{35, 175, 500, 1100, 1300, 1500}, 200},
	{22, "Boardwalk", "boardwalk.png", DarkBlue, 400, [6]int{50, 200, 600, 1400, 1700, 2000}, 200},
}

// Deed ids of the non-street buyables
const (
	ElectricCompanyID      = 23
	WaterWorksID           = 24
	ReadingRailroadID      = 25
	PennsylvaniaRailroadID = 26
	BORailroadID           = 27
	ShortLineRailroadID    = 28
)

// classicLayout lists each quadrant's tiles by distance. Numbers are deed ids;
// strings name the non-buyable tiles.
var classicLayout = [Quadrants][QuadrantLength]any{
	{1, "community_chest", 2, "income_tax", ReadingRailroadID, 3, "chance", 4, 5, "jail"},
	{6, ElectricCompanyID, 7, 8, PennsylvaniaRailroadID, 9, "community_chest", 10, 11, "free_parking"},
	{12, "chance", 13, 14, BORailroadID, 15, 16, WaterWorksID, 17, "go_to_jail"},
	{18, 19, "community_chest", 20, ShortLineRailroadID, "chance", 21, "luxury_tax", 22, "go"},
}

// Board holds the 40 tiles of one game, addressed by quadrant and distance
type Board struct {
	Tiles [Quadrants][QuadrantLength]Tile
	deeds map[int]Ownable
}

// NewBoard builds a fresh classic board. Every call returns independent tiles.
func NewBoard() *Board {
	props := make(map[int]propertyDef, len(classicProperties))
	for _, def := range classicProperties {
		props[def.id] = def
	}

	b := &Board{deeds: make(map[int]Ownable)}
	for q := 0; q < Quadrants; q++ {
		for d := 0; d < QuadrantLength; d++ {
			pos := Position{Quadrant: q, Distance: d}
			var t Tile
			switch v := classicLayout[q][d].(type) {
			case int:
				t = newDeedTile(v, pos, props)
			case string:
				t = newFixedTile(v, pos)
			}
			b.Tiles[q][d] = t
			if o, ok := t.(Ownable); ok {
				b.deeds[o.Title().ID] = o
			}
		}
	}
	return b
}

func newDeedTile(id int, pos Position, props map[int]propertyDef) Tile {
	switch id {
	case ElectricCompanyID:
		return newUtility(id, "Electric Company", "electric_company.png", pos)
	case WaterWorksID:
		return newUtility(id, "Water Works", "water_works.png", pos)
	case ReadingRailroadID:
		return newRailroad(id, "Reading Railroad", pos)
	case PennsylvaniaRailroadID:
		return newRailroad(id, "Pennsylvania Railroad", pos)
	case BORailroadID:
		return newRailroad(id, "B&O Railroad", pos)
	case ShortLineRailroadID:
		return newRailroad(id, "Short Line", pos)
	}
	def := props[id]
	return &Property{
		TileInfo:   TileInfo{Name: def.name, Position: pos, Image: def.image, Kind: KindProperty},
		Deed:       Deed{ID: def.id, Price: def.price, MortgageValue: def.price / 2},
		Group:      def.group,
		Rents:      def.rents,
		HousePrice: def.housePrice,
	}
}

func newRailroad(id int, name string, pos Position) *Railroad {
	return &Railroad{
		TileInfo: TileInfo{Name: name, Position: pos, Image: "railroad.png", Kind: KindRailroad},
		Deed:     Deed{ID: id, Price: 200, MortgageValue: 100},
	}
}

func newUtility(id int, name, image string, pos Position) *Utility {
	return &Utility{
		TileInfo: TileInfo{Name: name, Position: pos, Image: image, Kind: KindUtility},
		Deed:     Deed{ID: id, Price: 150, MortgageValue: 75},
	}
}

func newFixedTile(name string, pos Position) Tile {
	event := func(title, image string, effect Effect) *EventTile {
		return &EventTile{
			TileInfo: TileInfo{Name: title, Position: pos, Image: image, Kind: KindEvent},
			Effect:   effect,
		}
	}
	switch name {
	case "chance":
		return &ChanceTile{TileInfo{Name: "Chance", Position: pos, Image: "chance.png", Kind: KindChance}}
	case "community_chest":
		return &CommunityChestTile{TileInfo{Name: "Community Chest", Position: pos, Image: "community.png", Kind: KindCommunityChest}}
	case "go":
		return event("Go", "go.png", EffectNone)
	case "jail":
		return event("Jail", "jail.png", EffectNone)
	case "free_parking":
		return event("Free Parking", "free_parking.png", EffectFreeParking)
	case "go_to_jail":
		return event("Go to Jail", "goto_jail.png", EffectGoToJail)
	case "income_tax":
		return event("Income Tax", "income_tax.png", EffectIncomeTax)
	case "luxury_tax":
		return event("Luxury Tax", "luxury_tax.png", EffectLuxuryTax)
	}
	panic(fmt.Sprintf("unknown tile %q in board layout", name))
}

// At returns the tile at the given position
func (b *Board) At(pos Position) Tile {
	if !pos.Valid() {
		return nil
	}
	return b.Tiles[pos.Quadrant][pos.Distance]
}

// AtIndex returns the tile at the given ring index (Go = 0)
func (b *Board) AtIndex(i int) Tile {
	return b.At(PositionFromIndex(i))
}

// Deed returns the buyable tile with the given deed id
func (b *Board) Deed(id int) (Ownable, bool) {
	o, ok := b.deeds[id]
	return o, ok
}

// Deeds returns every buyable tile ordered by deed id
func (b *Board) Deeds() []Ownable {
	out := make([]Ownable, 0, len(b.deeds))
	for _, o := range b.deeds {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title().ID < out[j].Title().ID })
	return out
}

// Group returns the properties of one color group ordered by deed id
func (b *Board) Group(group ColorGroup) []*Property {
	var out []*Property
	for _, o := range b.Deeds() {
		if p, ok := o.(*Property); ok && p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// Railroads returns the four railroads ordered by deed id
func (b *Board) Railroads() []*Railroad {
	var out []*Railroad
	for _, o := range b.Deeds() {
		if r, ok := o.(*Railroad); ok {
			out = append(out, r)
		}
	}
	return out
}

// Utilities returns the two utilities ordered by deed id
func (b *Board) Utilities() []*Utility {
	var out []*Utility
	for _, o := range b.Deeds() {
		if u, ok := o.(*Utility); ok {
			out = append(out, u)
		}
	}
	return out
}

// MarshalJSON renders the board as quadrant rows of tiles
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tiles [Quadrants][QuadrantLength]Tile `json:"tiles"`
	}{b.Tiles})
}
