package bot

import (
	"klondike/internal/domain"
)

// Move represents the move an advisor suggests.
type Move struct {
	None    bool // no useful move exists
	Request domain.MoveRequest
	Reason  string
}

// Brain is the interface that all advisor strategies must implement.
// Implementations only read the game and must never change it.
type Brain interface {
	CalculateMove(game *domain.Game) (Move, error)
}
