package bot

import (
	"klondike/internal/domain"
)

// BasicBot walks a fixed priority list: foundation moves, then tableau
// moves that uncover a card, then waste plays, then drawing.
type BasicBot struct{}

func (b *BasicBot) CalculateMove(game *domain.Game) (Move, error) {
	if game == nil {
		return Move{None: true}, nil
	}
	moves := analyze(game)

	pick := func(reason string, match func(moveFeatures) bool) (Move, bool) {
		for _, f := range moves {
			if match(f) {
				return Move{Request: f.req, Reason: reason}, true
			}
		}
		return Move{}, false
	}

	if m, ok := pick("build foundation", func(f moveFeatures) bool { return f.toFoundation }); ok {
		return m, nil
	}
	if m, ok := pick("uncover card", func(f moveFeatures) bool {
		return f.req.SourceKind == domain.Tableau && f.reveals
	}); ok {
		return m, nil
	}
	if m, ok := pick("play waste", func(f moveFeatures) bool { return f.fromWaste }); ok {
		return m, nil
	}
	if m, ok := pick("draw", func(f moveFeatures) bool { return f.draw }); ok {
		return m, nil
	}
	return Move{None: true}, nil
}
