package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"klondike/internal/domain"
)

// Service contains solitaire use-cases operating on sessions.
type Service struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
// The rng only picks seeds; each deal gets its own source so a seed always
// reproduces the same layout.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNoSession = errors.New("no game in progress")
	ErrGameWon   = errors.New("game already won")
)

// Session is one dealt game. Validating and executing a move happens under
// the session lock, so a session may be shared between goroutines.
type Session struct {
	mu   sync.Mutex
	game *domain.Game
	seed int64
	won  bool
}

// Seed returns the seed the current deal was shuffled with.
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Snapshot copies the current piles.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// HasWon reports whether the current deal is won.
func (s *Session) HasWon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// Game returns a private copy of the game for read-only analysis.
func (s *Session) Game() *domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Clone()
}

// NewSession deals a new game. A nil seed draws one from the service rng.
func (svc *Service) NewSession(seed *int64) (*Session, []Event) {
	sess := &Session{}
	events := svc.deal(sess, seed)
	return sess, events
}

// ResumeSession rebuilds a session from a saved table. seed is only
// reported back; the layout comes from the snapshot.
func (svc *Service) ResumeSession(snapshot domain.Snapshot, seed int64) (*Session, error) {
	g, err := domain.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	return &Session{game: g, seed: seed, won: g.HasWon()}, nil
}

// Redeal replaces the session's game with a fresh deal.
func (svc *Service) Redeal(sess *Session, seed *int64) ([]Event, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return svc.deal(sess, seed), nil
}

// deal expects sess.mu to be held or sess to be unshared.
func (svc *Service) deal(sess *Session, seed *int64) []Event {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		svc.mu.Lock()
		s = svc.rng.Int63()
		svc.mu.Unlock()
	}

	sess.game = domain.Deal(rand.New(rand.NewSource(s)))
	sess.seed = s
	sess.won = false

	return []Event{{
		Kind:    EventGameDealt,
		Payload: GameDealtPayload{Seed: s, Snapshot: sess.game.Snapshot()},
	}}
}

// ApplyMove validates and performs req on the session's game and reports
// what happened. Rule violations come back as *domain.MoveError.
func (svc *Service) ApplyMove(sess *Session, req domain.MoveRequest) ([]Event, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.game == nil {
		return nil, ErrNoSession
	}
	if sess.won {
		return nil, ErrGameWon
	}

	g := sess.game
	stockBefore := len(g.Stock())
	destBefore := pileLen(g, req.Destination())

	if err := g.ApplyMove(req); err != nil {
		return nil, fmt.Errorf("move %s: %w", req, err)
	}

	var events []Event
	switch {
	case req.SourceKind == domain.Stock && stockBefore == 0:
		events = append(events, Event{
			Kind:    EventStockRecycled,
			Payload: StockRecycledPayload{Count: len(g.Stock()), Snapshot: g.Snapshot()},
		})
	case req.SourceKind == domain.Stock:
		events = append(events, Event{
			Kind:    EventStockDrawn,
			Payload: StockDrawnPayload{Card: g.Waste()[0], Snapshot: g.Snapshot()},
		})
	default:
		events = append(events, Event{
			Kind: EventCardsMoved,
			Payload: CardsMovedPayload{
				Move:     req,
				Cards:    pileCards(g, req.Destination())[destBefore:],
				Snapshot: g.Snapshot(),
			},
		})
	}

	if g.HasWon() {
		sess.won = true
		events = append(events, Event{
			Kind:    EventGameWon,
			Payload: GameWonPayload{Seed: sess.seed},
		})
	}
	return events, nil
}

func pileCards(g *domain.Game, ref domain.PileRef) []domain.Card {
	switch ref.Kind {
	case domain.Tableau:
		return g.Tableau(ref.ID)
	case domain.Foundation:
		return g.Foundation(ref.ID)
	case domain.Stock:
		return g.Stock()
	case domain.Waste:
		return g.Waste()
	}
	return nil
}

func pileLen(g *domain.Game, ref domain.PileRef) int {
	return len(pileCards(g, ref))
}
