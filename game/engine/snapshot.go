package engine

// Clone returns a deep copy of the state. Nothing in the copy is shared with
// the engine, so it can be encoded or broadcast after the caller releases
// whatever lock guards the engine.
func (gs *GameState) Clone() *GameState {
	c := *gs

	c.Players = make([]*Player, len(gs.Players))
	for i, p := range gs.Players {
		cp := *p
		cp.Properties = copyInts(p.Properties)
		c.Players[i] = &cp
	}
	c.ActivePlayers = copyInts(gs.ActivePlayers)
	c.InactivePlayers = copyInts(gs.InactivePlayers)
	c.History = make([]ActionEntry, len(gs.History))
	copy(c.History, gs.History)

	if gs.Board != nil {
		c.Board = gs.Board.Clone()
	}
	if gs.Auction != nil {
		c.Auction = gs.Auction.clone()
	}
	if gs.ChanceDeck != nil {
		c.ChanceDeck = gs.ChanceDeck.clone()
	}
	if gs.CommunityDeck != nil {
		c.CommunityDeck = gs.CommunityDeck.clone()
	}
	if gs.LastCard != nil {
		card := *gs.LastCard
		c.LastCard = &card
	}
	return &c
}

// Clone copies every tile and rebuilds the deed index over the copies
func (b *Board) Clone() *Board {
	c := &Board{deeds: make(map[int]Ownable, len(b.deeds))}
	for q := range b.Tiles {
		for d, t := range b.Tiles[q] {
			var ct Tile
			switch v := t.(type) {
			case *Property:
				cp := *v
				ct = &cp
			case *Railroad:
				cp := *v
				ct = &cp
			case *Utility:
				cp := *v
				ct = &cp
			case *ChanceTile:
				cp := *v
				ct = &cp
			case *CommunityChestTile:
				cp := *v
				ct = &cp
			case *EventTile:
				cp := *v
				ct = &cp
			}
			c.Tiles[q][d] = ct
			if o, ok := ct.(Ownable); ok {
				c.deeds[o.Title().ID] = o
			}
		}
	}
	return c
}

func (a *Auction) clone() *Auction {
	c := *a
	c.Bidders = copyInts(a.Bidders)
	c.Withdrawn = copyInts(a.Withdrawn)
	c.Bids = make(map[int]int, len(a.Bids))
	for seat, bid := range a.Bids {
		c.Bids[seat] = bid
	}
	return &c
}

func (d *Deck) clone() *Deck {
	c := &Deck{Name: d.Name, Cards: make([]Card, len(d.Cards))}
	copy(c.Cards, d.Cards)
	c.order = copyInts(d.order)
	return c
}

func copyInts(s []int) []int {
	if s == nil {
		return nil
	}
	c := make([]int, len(s))
	copy(c, s)
	return c
}
