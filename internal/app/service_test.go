package app

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"klondike/internal/domain"
)

var drawMove = domain.NewMove(domain.PileRef{Kind: domain.Stock}, domain.PileRef{Kind: domain.Waste})

func TestNewSessionDeals(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))

	sess, evs := svc.NewSession(nil)
	if len(evs) != 1 || evs[0].Kind != EventGameDealt {
		t.Fatalf("events = %+v, want one game_dealt", evs)
	}
	payload := evs[0].Payload.(GameDealtPayload)
	if payload.Seed != sess.Seed() {
		t.Fatalf("payload seed %d != session seed %d", payload.Seed, sess.Seed())
	}
	if len(payload.Snapshot.Stock) != 24 {
		t.Fatalf("stock size = %d, want 24", len(payload.Snapshot.Stock))
	}
	if sess.HasWon() {
		t.Fatalf("fresh session reports a win")
	}
}

func TestSeedReproducesDeal(t *testing.T) {
	svc := NewService(nil)
	seed := int64(1234)

	a, _ := svc.NewSession(&seed)
	b, _ := svc.NewSession(&seed)

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa.Tableaus {
		for j := range sa.Tableaus[i] {
			if sa.Tableaus[i][j] != sb.Tableaus[i][j] {
				t.Fatalf("seed %d dealt different tableaus", seed)
			}
		}
	}
	if a.Seed() != seed {
		t.Fatalf("Seed() = %d, want %d", a.Seed(), seed)
	}
}

func TestApplyMoveDrawAndRecycle(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	sess, _ := svc.NewSession(nil)

	for i := 0; i < 24; i++ {
		evs, err := svc.ApplyMove(sess, drawMove)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if evs[0].Kind != EventStockDrawn {
			t.Fatalf("draw %d: event = %s, want stock_drawn", i, evs[0].Kind)
		}
		if !evs[0].Payload.(StockDrawnPayload).Card.FaceUp {
			t.Fatalf("drawn card should be face up")
		}
	}

	evs, err := svc.ApplyMove(sess, drawMove)
	if err != nil {
		t.Fatalf("recycle: %v", err)
	}
	if evs[0].Kind != EventStockRecycled {
		t.Fatalf("event = %s, want stock_recycled", evs[0].Kind)
	}
	if n := evs[0].Payload.(StockRecycledPayload).Count; n != 24 {
		t.Fatalf("recycled %d cards, want 24", n)
	}
}

func TestApplyMoveRejection(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	sess, _ := svc.NewSession(nil)
	before := sess.Snapshot()

	req := domain.NewMove(domain.PileRef{Kind: domain.Foundation}, domain.PileRef{Kind: domain.Foundation, ID: 1})
	_, err := svc.ApplyMove(sess, req)
	if !errors.Is(err, domain.ErrUnsupportedPilePair) {
		t.Fatalf("err = %v, want unsupported pile pair", err)
	}
	var me *domain.MoveError
	if !errors.As(err, &me) {
		t.Fatalf("expected a *domain.MoveError in %v", err)
	}

	after := sess.Snapshot()
	if len(after.Stock) != len(before.Stock) || len(after.Waste) != len(before.Waste) {
		t.Fatalf("rejected move changed the session")
	}
}

func TestApplyMoveCardsMovedAndWon(t *testing.T) {
	svc := NewService(nil)
	sess := &Session{game: nearlyWon(t)}

	req, err := domain.ParseMove("2", "1")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	evs, err := svc.ApplyMove(sess, req)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if len(evs) != 2 || evs[0].Kind != EventCardsMoved || evs[1].Kind != EventGameWon {
		t.Fatalf("events = %+v, want cards_moved then game_won", evs)
	}
	moved := evs[0].Payload.(CardsMovedPayload)
	if len(moved.Cards) != 1 || moved.Cards[0].Rank != domain.Queen {
		t.Fatalf("moved cards = %#v, want the queen", moved.Cards)
	}
	if !sess.HasWon() {
		t.Fatalf("session should be won")
	}

	if _, err := svc.ApplyMove(sess, drawMove); !errors.Is(err, ErrGameWon) {
		t.Fatalf("err = %v, want ErrGameWon", err)
	}

	if _, err := svc.Redeal(sess, nil); err != nil {
		t.Fatalf("Redeal: %v", err)
	}
	if sess.HasWon() {
		t.Fatalf("redeal should clear the win")
	}
}

func TestApplyMoveWithoutSession(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ApplyMove(nil, drawMove); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if _, err := svc.ApplyMove(&Session{}, drawMove); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty session: err = %v, want ErrNoSession", err)
	}
	if _, err := svc.Redeal(nil, nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Redeal(nil): err = %v, want ErrNoSession", err)
	}
}

func TestConcurrentMovesKeepDeck(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(8)))
	sess, _ := svc.NewSession(nil)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, _ = svc.ApplyMove(sess, drawMove)
				_ = sess.Snapshot()
			}
		}()
	}
	wg.Wait()

	if n := sess.Game().CardCount(); n != domain.DeckSize {
		t.Fatalf("card count = %d, want %d", n, domain.DeckSize)
	}
}

// nearlyWon builds a full deck layout where moving the red queen from
// tableau 2 onto the black king in tableau 1 uncovers the last hidden card.
func nearlyWon(t *testing.T) *domain.Game {
	t.Helper()
	var s domain.Snapshot
	s.Tableaus[0] = []domain.Card{{Rank: domain.King, Suit: domain.Spades, FaceUp: true}}
	s.Tableaus[1] = []domain.Card{
		{Rank: 2, Suit: domain.Clubs},
		{Rank: domain.Queen, Suit: domain.Hearts, FaceUp: true},
	}

	placed := map[domain.Card]bool{}
	for _, p := range s.Tableaus {
		for _, c := range p {
			placed[domain.Card{Rank: c.Rank, Suit: c.Suit}] = true
		}
	}
	for _, c := range domain.NewDeck() {
		if !placed[c] {
			s.Stock = append(s.Stock, c)
		}
	}

	g, err := domain.FromSnapshot(s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	return g
}

func TestResumeSession(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(3)))
	orig, _ := svc.NewSession(nil)
	if _, err := svc.ApplyMove(orig, drawMove); err != nil {
		t.Fatalf("draw: %v", err)
	}

	resumed, err := svc.ResumeSession(orig.Snapshot(), orig.Seed())
	if err != nil {
		t.Fatalf("ResumeSession: %v", err)
	}
	if resumed.Seed() != orig.Seed() {
		t.Fatalf("seed = %d, want %d", resumed.Seed(), orig.Seed())
	}
	if got, want := resumed.Snapshot().Waste, orig.Snapshot().Waste; len(got) != 1 || got[0] != want[0] {
		t.Fatalf("waste = %v, want %v", got, want)
	}

	bad := orig.Snapshot()
	bad.Stock = nil
	if _, err := svc.ResumeSession(bad, 0); err == nil {
		t.Fatal("expected error for an incomplete snapshot")
	}
}
