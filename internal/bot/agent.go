package bot

import (
	"klondike/internal/domain"
)

// Agent wraps a strategy with the identity shown to players when it
// hands out hints.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent for a move on the current game. The game is cloned
// first so a misbehaving strategy cannot touch the caller's state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	if game == nil || a.Strategy == nil {
		return Move{None: true}, nil
	}

	move, err := a.Strategy.CalculateMove(game.Clone())
	if err != nil {
		return Move{None: true}, err
	}
	return move, nil
}
