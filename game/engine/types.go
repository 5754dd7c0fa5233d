package engine

import "time"

// TileKind identifies the variant of a board tile
type TileKind string

const (
	KindProperty       TileKind = "property"
	KindRailroad       TileKind = "railroad"
	KindUtility        TileKind = "utility"
	KindChance         TileKind = "chance"
	KindCommunityChest TileKind = "community_chest"
	KindEvent          TileKind = "event"

	// Board geometry
	Quadrants         = 4
	QuadrantLength    = 10
	BoardSize         = Quadrants * QuadrantLength
	CornerDistance    = QuadrantLength - 1
	MaxImprovement    = 5
	HotelLevel        = MaxImprovement
	HousesPerHotel    = 4
	MaxDoublesStreak  = 3
	DefaultJailRolls  = 3
	BankSeat          = 0
	DefaultPlayerSeat = 1
)

// ColorGroup identifies the color set a property belongs to
type ColorGroup string

const (
	Brown     ColorGroup = "brown"
	LightBlue ColorGroup = "light_blue"
	Pink      ColorGroup = "pink"
	Orange    ColorGroup = "orange"
	Red       ColorGroup = "red"
	Yellow    ColorGroup = "yellow"
	Green     ColorGroup = "green"
	DarkBlue  ColorGroup = "dark_blue"
)

// ColorGroups lists every color group in board order
var ColorGroups = []ColorGroup{Brown, LightBlue, Pink, Orange, Red, Yellow, Green, DarkBlue}

// Effect names the fixed behavior of an event tile or a card
type Effect string

const (
	EffectNone             Effect = "none"
	EffectFreeParking      Effect = "free_parking"
	EffectGoToJail         Effect = "go_to_jail"
	EffectIncomeTax        Effect = "income_tax"
	EffectLuxuryTax        Effect = "luxury_tax"
	EffectAdvanceToGo      Effect = "advance_to_go"
	EffectSchoolTax        Effect = "school_tax"
	EffectGetOutOfJailFree Effect = "get_out_of_jail_free"
	EffectBankDividend     Effect = "bank_dividend"
	EffectDoctorFee        Effect = "doctor_fee"
	EffectGoBackThree      Effect = "go_back_three"
)

// Position addresses a tile as (quadrant, distance) on the ring
type Position struct {
	Quadrant int `json:"quadrant"`
	Distance int `json:"distance"`
}

var (
	GoPosition          = Position{Quadrant: 3, Distance: CornerDistance}
	JailPosition        = Position{Quadrant: 0, Distance: CornerDistance}
	FreeParkingPosition = Position{Quadrant: 1, Distance: CornerDistance}
	GoToJailPosition    = Position{Quadrant: 2, Distance: CornerDistance}
)

// Index returns the ring index of the position, with Go at 0
func (p Position) Index() int {
	return (p.Quadrant*QuadrantLength + p.Distance + 1) % BoardSize
}

// IsCorner reports whether the position is one of the four corners
func (p Position) IsCorner() bool {
	return p.Distance == CornerDistance
}

// Valid reports whether the position lies on the board
func (p Position) Valid() bool {
	return p.Quadrant >= 0 && p.Quadrant < Quadrants && p.Distance >= 0 && p.Distance < QuadrantLength
}

// PositionFromIndex converts a ring index (Go = 0) back into a position
func PositionFromIndex(i int) Position {
	i = ((i % BoardSize) + BoardSize) % BoardSize
	raw := (i + BoardSize - 1) % BoardSize
	return Position{Quadrant: raw / QuadrantLength, Distance: raw % QuadrantLength}
}

// ActionEntry represents a single action in the game history
type ActionEntry struct {
	Seq       int    `json:"seq"`
	Action    string `json:"action"`
	Player    int    `json:"player"`
	Dice      [2]int `json:"dice"`
	Cash      int    `json:"cash"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"`
}

// GameState represents the complete game state
type GameState struct {
	ID              string        `json:"id"`
	ConfigName      string        `json:"config_name"`
	Turn            int           `json:"turn"`
	Players         []*Player     `json:"players"`
	ActivePlayers   []int         `json:"active_players"`
	InactivePlayers []int         `json:"inactive_players"`
	Board           *Board        `json:"board"`
	Houses          int           `json:"houses"`
	Hotels          int           `json:"hotels"`
	CenterPot       int           `json:"center_pot"`
	Dice            [2]int        `json:"dice"`
	DoublesStreak   int           `json:"doubles_streak"`
	TurnTaken       bool          `json:"turn_taken"`
	Pending         int           `json:"pending,omitempty"` // deed awaiting a buy or auction decision
	Done            bool          `json:"done"`
	Winner          int           `json:"winner,omitempty"`
	Auction         *Auction      `json:"auction,omitempty"`
	ChanceDeck      *Deck         `json:"chance_deck"`
	CommunityDeck   *Deck         `json:"community_deck"`
	LastCard        *Card         `json:"last_card,omitempty"`
	Message         string        `json:"message"`
	History         []ActionEntry `json:"history"`
	StartedAt       time.Time     `json:"started_at"`
}

// Player returns the player in the given seat, or nil
func (gs *GameState) Player(seat int) *Player {
	if seat < 1 || seat > len(gs.Players) {
		return nil
	}
	return gs.Players[seat-1]
}

// IsActive reports whether the seat is still in the turn rotation
func (gs *GameState) IsActive(seat int) bool {
	for _, s := range gs.ActivePlayers {
		if s == seat {
			return true
		}
	}
	return false
}
