package bot

import (
	"sort"

	"klondike/internal/domain"
)

// SmartBot scores every legal move with Weights and suggests the best one.
type SmartBot struct {
	Weights Weights
}

type scoredMove struct {
	f      moveFeatures
	score  float64
	reason string
}

func (b *SmartBot) CalculateMove(game *domain.Game) (Move, error) {
	if game == nil {
		return Move{None: true}, nil
	}
	w := b.Weights
	moves := analyze(game)
	if len(moves) == 0 {
		return Move{None: true}, nil
	}

	kingWaiting := hasMovableKing(game)
	scored := make([]scoredMove, 0, len(moves))
	for _, f := range moves {
		s := scoredMove{f: f}
		switch {
		case f.draw:
			s.score, s.reason = w.Draw, "draw"
		case f.kingShuffle:
			s.score, s.reason = w.KingShuffle, "king already at the bottom"
		case f.toFoundation:
			s.score, s.reason = w.Foundation, "build foundation"
			if f.fromWaste {
				s.score += w.FoundationWaste
			}
		case f.fromWaste:
			s.score, s.reason = w.WasteToTableau, "play waste"
		default:
			s.score, s.reason = w.Shuffle, "rearrange"
		}

		if f.reveals {
			s.score += w.Reveal + w.HiddenBelow*float64(f.hiddenBelow)
			s.reason = "uncover card"
		}
		if f.empties && !f.kingShuffle && kingWaiting {
			s.score += w.EmptyPile
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	best := scored[0]
	if best.score < w.MinScore {
		return Move{None: true}, nil
	}
	return Move{Request: best.f.req, Reason: best.reason}, nil
}

// hasMovableKing reports whether a face-up king could use an empty tableau:
// one on the waste top or one sitting on other cards in a tableau.
func hasMovableKing(game *domain.Game) bool {
	if w := game.Waste(); len(w) > 0 && w[0].Rank == domain.King {
		return true
	}
	for i := 0; i < domain.TableauCount; i++ {
		for j, c := range game.Tableau(i) {
			if j > 0 && c.FaceUp && c.Rank == domain.King {
				return true
			}
		}
	}
	return false
}
