package app

import "klondike/internal/domain"

// EventKind identifies emitted app events for Nakama dispatch.
type EventKind string

const (
	EventGameDealt     EventKind = "game_dealt"
	EventCardsMoved    EventKind = "cards_moved"
	EventStockDrawn    EventKind = "stock_drawn"
	EventStockRecycled EventKind = "stock_recycled"
	EventGameWon       EventKind = "game_won"
)

// Event is an app event. Every event carries the table as it stands after
// the change so front ends never need to replay moves.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameDealtPayload struct {
	Seed     int64
	Snapshot domain.Snapshot
}

type CardsMovedPayload struct {
	Move     domain.MoveRequest
	Cards    []domain.Card // the cards that changed pile
	Snapshot domain.Snapshot
}

type StockDrawnPayload struct {
	Card     domain.Card
	Snapshot domain.Snapshot
}

type StockRecycledPayload struct {
	Count    int
	Snapshot domain.Snapshot
}

type GameWonPayload struct {
	Seed int64
}
