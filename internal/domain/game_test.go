package domain

import (
	"math/rand"
	"testing"
)

func up(rank int, s Suit) Card   { return Card{Rank: rank, Suit: s, FaceUp: true} }
func down(rank int, s Suit) Card { return Card{Rank: rank, Suit: s} }

// allCards gathers every card in the game in pile order.
func allCards(g *Game) []Card {
	var out []Card
	for _, p := range g.tableaus {
		out = append(out, p...)
	}
	for _, p := range g.foundations {
		out = append(out, p...)
	}
	out = append(out, g.stock...)
	out = append(out, g.waste...)
	return out
}

func assertFullDeck(t *testing.T, g *Game) {
	t.Helper()
	cards := allCards(g)
	if len(cards) != DeckSize {
		t.Fatalf("game holds %d cards, want %d", len(cards), DeckSize)
	}
	seen := make(map[Card]bool)
	for _, c := range cards {
		key := Card{Rank: c.Rank, Suit: c.Suit}
		if seen[key] {
			t.Fatalf("duplicate card %#v", c)
		}
		seen[key] = true
	}
	for _, c := range NewDeck() {
		if !seen[c] {
			t.Fatalf("missing card %#v", c)
		}
	}
}

func TestDealLayout(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := Deal(rand.New(rand.NewSource(seed)))
		assertFullDeck(t, g)

		for i := 0; i < TableauCount; i++ {
			pile := g.Tableau(i)
			if len(pile) != i+1 {
				t.Fatalf("seed %d: tableau %d has %d cards, want %d", seed, i, len(pile), i+1)
			}
			for j, c := range pile {
				wantUp := j == len(pile)-1
				if c.FaceUp != wantUp {
					t.Fatalf("seed %d: tableau %d card %d face up = %t, want %t", seed, i, j, c.FaceUp, wantUp)
				}
			}
		}

		if n := len(g.Stock()); n != 24 {
			t.Fatalf("seed %d: stock has %d cards, want 24", seed, n)
		}
		for _, c := range g.Stock() {
			if c.FaceUp {
				t.Fatalf("seed %d: stock card %#v is face up", seed, c)
			}
		}
		if len(g.Waste()) != 0 {
			t.Fatalf("seed %d: waste not empty after deal", seed)
		}
		for i := 0; i < FoundationCount; i++ {
			if len(g.Foundation(i)) != 0 {
				t.Fatalf("seed %d: foundation %d not empty after deal", seed, i)
			}
		}
		if g.HasWon() {
			t.Fatalf("seed %d: fresh deal reports a win", seed)
		}
	}
}

func TestDealStockKeepsShuffleOrder(t *testing.T) {
	deck := ShuffleDeck(NewDeck(), rand.New(rand.NewSource(3)))
	g := Deal(rand.New(rand.NewSource(3)))

	stock := g.Stock()
	for i, c := range stock {
		if !c.Same(deck[28+i]) {
			t.Fatalf("stock[%d] = %#v, want %#v", i, c, deck[28+i])
		}
	}
}

func TestViewsAreCopies(t *testing.T) {
	g := Deal(rand.New(rand.NewSource(1)))

	pile := g.Tableau(6)
	pile[0] = Card{Rank: 99}
	if g.Tableau(6)[0].Rank == 99 {
		t.Fatalf("Tableau view aliases game state")
	}

	snap := g.Snapshot()
	snap.Stock[0].FaceUp = true
	if g.Stock()[0].FaceUp {
		t.Fatalf("Snapshot aliases game state")
	}

	if g.Tableau(-1) != nil || g.Tableau(7) != nil || g.Foundation(4) != nil {
		t.Fatalf("out-of-range views should be nil")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Deal(rand.New(rand.NewSource(5)))
	c := g.Clone()

	if err := c.ApplyMove(NewMove(PileRef{Kind: Stock}, PileRef{Kind: Waste})); err != nil {
		t.Fatalf("draw on clone: %v", err)
	}
	if len(g.Waste()) != 0 || len(g.Stock()) != 24 {
		t.Fatalf("drawing on a clone changed the original")
	}
}

func TestHasWon(t *testing.T) {
	g := &Game{}
	g.tableaus[0] = []Card{up(King, Hearts), up(Queen, Spades)}
	g.tableaus[3] = []Card{up(King, Clubs)}
	g.stock = []Card{down(2, Clubs)}
	if !g.HasWon() {
		t.Fatalf("all tableau cards face up should win")
	}

	g.tableaus[5] = []Card{down(5, Diamonds), up(4, Spades)}
	if g.HasWon() {
		t.Fatalf("a face-down tableau card should block the win")
	}
}

func TestFromSnapshot(t *testing.T) {
	g := Deal(rand.New(rand.NewSource(9)))

	restored, err := FromSnapshot(g.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	assertFullDeck(t, restored)
	if restored.Tableau(6)[6] != g.Tableau(6)[6] {
		t.Fatalf("restored top card differs")
	}

	bad := g.Snapshot()
	bad.Waste = append(bad.Waste, bad.Stock[0])
	if _, err := FromSnapshot(bad); err == nil {
		t.Fatalf("expected duplicate card error")
	}

	short := g.Snapshot()
	short.Stock = short.Stock[1:]
	if _, err := FromSnapshot(short); err == nil {
		t.Fatalf("expected short deck error")
	}
}
