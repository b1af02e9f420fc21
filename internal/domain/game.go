package domain

import (
	"fmt"
	"math/rand"
)

// Game holds the eleven piles of one Klondike deal. Piles are only changed
// through ApplyMove; every accessor hands out copies.
type Game struct {
	tableaus    [TableauCount][]Card
	foundations [FoundationCount][]Card
	stock       []Card // front first
	waste       []Card // top (most recent draw) first
}

// Snapshot is a detached copy of every pile.
type Snapshot struct {
	Tableaus    [TableauCount][]Card    `json:"tableaus"`
	Foundations [FoundationCount][]Card `json:"foundations"`
	Stock       []Card                  `json:"stock"` // front first
	Waste       []Card                  `json:"waste"` // top first
}

// Deal shuffles a fresh deck with rng and lays it out: tableau i gets i+1
// cards with only the top one face up, the other 24 go to the stock face down.
func Deal(rng *rand.Rand) *Game {
	deck := ShuffleDeck(NewDeck(), rng)
	g := &Game{}

	idx := 0
	for i := 0; i < TableauCount; i++ {
		pile := make([]Card, i+1)
		copy(pile, deck[idx:idx+i+1])
		for j := range pile {
			pile[j].FaceUp = false
		}
		pile[i].FaceUp = true
		g.tableaus[i] = pile
		idx += i + 1
	}

	g.stock = make([]Card, 0, len(deck)-idx)
	for _, c := range deck[idx:] {
		c.FaceUp = false
		g.stock = append(g.stock, c)
	}
	return g
}

// FromSnapshot rebuilds a game from a snapshot. The piles must hold exactly
// the 52-card deck; pile ordering rules are not checked.
func FromSnapshot(s Snapshot) (*Game, error) {
	seen := make(map[Card]bool, DeckSize)
	total := 0
	check := func(where string, cards []Card) error {
		for _, c := range cards {
			if c.Rank < Ace || c.Rank > King || c.Suit < Clubs || c.Suit > Hearts {
				return fmt.Errorf("%s: invalid card %#v", where, c)
			}
			key := Card{Rank: c.Rank, Suit: c.Suit}
			if seen[key] {
				return fmt.Errorf("%s: duplicate card %#v", where, c)
			}
			seen[key] = true
			total++
		}
		return nil
	}

	for i, p := range s.Tableaus {
		if err := check(fmt.Sprintf("tableau %d", i), p); err != nil {
			return nil, err
		}
	}
	for i, p := range s.Foundations {
		if err := check(fmt.Sprintf("foundation %d", i), p); err != nil {
			return nil, err
		}
	}
	if err := check("stock", s.Stock); err != nil {
		return nil, err
	}
	if err := check("waste", s.Waste); err != nil {
		return nil, err
	}
	if total != DeckSize {
		return nil, fmt.Errorf("snapshot holds %d cards, want %d", total, DeckSize)
	}

	g := &Game{}
	for i := range s.Tableaus {
		g.tableaus[i] = cloneCards(s.Tableaus[i])
	}
	for i := range s.Foundations {
		g.foundations[i] = cloneCards(s.Foundations[i])
	}
	g.stock = cloneCards(s.Stock)
	g.waste = cloneCards(s.Waste)
	return g, nil
}

// Tableau returns a copy of tableau i, bottom first. Nil if i is out of range.
func (g *Game) Tableau(i int) []Card {
	if i < 0 || i >= TableauCount {
		return nil
	}
	return cloneCards(g.tableaus[i])
}

// Foundation returns a copy of foundation i, Ace first. Nil if i is out of range.
func (g *Game) Foundation(i int) []Card {
	if i < 0 || i >= FoundationCount {
		return nil
	}
	return cloneCards(g.foundations[i])
}

// Stock returns a copy of the stock, front (next draw) first.
func (g *Game) Stock() []Card {
	return cloneCards(g.stock)
}

// Waste returns a copy of the waste, top (playable card) first.
func (g *Game) Waste() []Card {
	return cloneCards(g.waste)
}

// Snapshot copies every pile.
func (g *Game) Snapshot() Snapshot {
	var s Snapshot
	for i := range g.tableaus {
		s.Tableaus[i] = cloneCards(g.tableaus[i])
	}
	for i := range g.foundations {
		s.Foundations[i] = cloneCards(g.foundations[i])
	}
	s.Stock = cloneCards(g.stock)
	s.Waste = cloneCards(g.waste)
	return s
}

// Clone returns an independent deep copy of the game.
func (g *Game) Clone() *Game {
	c := &Game{}
	for i := range g.tableaus {
		c.tableaus[i] = cloneCards(g.tableaus[i])
	}
	for i := range g.foundations {
		c.foundations[i] = cloneCards(g.foundations[i])
	}
	c.stock = cloneCards(g.stock)
	c.waste = cloneCards(g.waste)
	return c
}

// HasWon reports whether every tableau card is face up.
func (g *Game) HasWon() bool {
	for _, pile := range g.tableaus {
		for _, c := range pile {
			if !c.FaceUp {
				return false
			}
		}
	}
	return true
}

// CardCount returns the number of cards across all piles.
func (g *Game) CardCount() int {
	n := len(g.stock) + len(g.waste)
	for _, p := range g.tableaus {
		n += len(p)
	}
	for _, p := range g.foundations {
		n += len(p)
	}
	return n
}

func cloneCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
