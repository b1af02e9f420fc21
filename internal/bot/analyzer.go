package bot

import "klondike/internal/domain"

// moveFeatures describes what a legal move does to the table.
type moveFeatures struct {
	req          domain.MoveRequest
	draw         bool // stock to waste, including a recycle
	toFoundation bool
	fromWaste    bool
	reveals      bool // turns a face-down tableau card up
	empties      bool // leaves the source tableau empty
	kingShuffle  bool // moves a whole king-based tableau onto an empty one
	hiddenBelow  int  // face-down cards under the moved run
	moved        int
}

// analyze plays every legal move on a clone and records its effect.
func analyze(game *domain.Game) []moveFeatures {
	legal := game.LegalMoves()
	out := make([]moveFeatures, 0, len(legal))
	for _, req := range legal {
		f, ok := describe(game, req)
		if ok {
			out = append(out, f)
		}
	}
	return out
}

func describe(game *domain.Game, req domain.MoveRequest) (moveFeatures, bool) {
	f := moveFeatures{req: req}
	switch req.SourceKind {
	case domain.Stock:
		f.draw = true
		return f, true
	case domain.Waste:
		f.fromWaste = true
		f.moved = 1
	}
	f.toFoundation = req.DestinationKind == domain.Foundation

	if req.SourceKind != domain.Tableau {
		return f, true
	}

	before := game.Tableau(req.SourceID)
	trial := game.Clone()
	if err := trial.ApplyMove(req); err != nil {
		return f, false
	}
	after := trial.Tableau(req.SourceID)

	f.moved = len(before) - len(after)
	f.hiddenBelow = faceDown(after)
	f.empties = len(after) == 0
	if len(after) > 0 && !before[len(after)-1].FaceUp {
		f.reveals = true
		f.hiddenBelow--
	}
	if f.empties && req.DestinationKind == domain.Tableau {
		f.kingShuffle = true
	}
	return f, true
}

func faceDown(cards []domain.Card) int {
	n := 0
	for _, c := range cards {
		if !c.FaceUp {
			n++
		}
	}
	return n
}
