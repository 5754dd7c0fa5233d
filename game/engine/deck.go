package engine

// Card is a single Chance or Community Chest card
type Card struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Effect      Effect `json:"effect"`
}

// Deck keeps the shuffled draw order of a card set
type Deck struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
	order []int
}

// NewDeck creates a deck over cards and shuffles it
func NewDeck(name string, cards []Card, rng RNG) *Deck {
	d := &Deck{Name: name, Cards: make([]Card, len(cards))}
	copy(d.Cards, cards)
	for i := range d.Cards {
		d.Cards[i].ID = i
	}
	d.refill(rng)
	return d
}

// Draw pops the next card. When the draw order runs out it is refilled with
// every card id and reshuffled before returning.
func (d *Deck) Draw(rng RNG) Card {
	if len(d.order) == 0 {
		d.refill(rng)
	}
	id := d.order[0]
	d.order = d.order[1:]
	if len(d.order) == 0 {
		d.refill(rng)
	}
	return d.Cards[id]
}

// Remaining returns how many cards are left before the next reshuffle
func (d *Deck) Remaining() int {
	return len(d.order)
}

// Order returns a copy of the current draw order
func (d *Deck) Order() []int {
	out := make([]int, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Deck) refill(rng RNG) {
	d.order = make([]int, len(d.Cards))
	for i := range d.order {
		d.order[i] = i
	}
	rng.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
}
