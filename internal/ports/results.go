package ports

import (
	"context"
	"time"
)

// GameResult describes one won deal.
type GameResult struct {
	UserID  string    `json:"user_id"`
	MatchID string    `json:"match_id"`
	Seed    int64     `json:"seed"`
	Moves   int       `json:"moves"`
	WonAt   time.Time `json:"won_at"`
}

// ResultPort persists finished games.
type ResultPort interface {
	// RecordWin stores a won deal for the player. Recording the same
	// match and seed twice overwrites the earlier record.
	RecordWin(ctx context.Context, result GameResult) error
}
