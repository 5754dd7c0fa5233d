package engine

import "sort"

// Player represents one seat at the table
type Player struct {
	Number     int      `json:"number"`
	Cash       int      `json:"cash"`
	Properties []int    `json:"properties"`
	Jail       int      `json:"jail"`
	GetOutFree bool     `json:"get_out_free"`
	Location   Position `json:"location"`
	Creditor   int      `json:"creditor"`
}

// NewPlayer seats a player at Go with the given cash
func NewPlayer(number, cash int) *Player {
	return &Player{
		Number:     number,
		Cash:       cash,
		Properties: []int{},
		Location:   GoPosition,
	}
}

// SortProperties orders the owned deed ids ascending
func (p *Player) SortProperties() {
	sort.Ints(p.Properties)
}

// InJail reports whether the player is serving a jail sentence
func (p *Player) InJail() bool {
	return p.Jail > 0
}

// InDebt reports whether the player owes more than they hold
func (p *Player) InDebt() bool {
	return p.Cash < 0
}

// Owns reports whether the player holds the deed
func (p *Player) Owns(id int) bool {
	for _, owned := range p.Properties {
		if owned == id {
			return true
		}
	}
	return false
}

func (p *Player) addProperty(id int) {
	p.Properties = append(p.Properties, id)
}

func (p *Player) removeProperty(id int) {
	for i, owned := range p.Properties {
		if owned == id {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}
