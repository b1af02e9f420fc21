package domain

// planKind is the effect a validated move will have.
type planKind int

const (
	planTransfer planKind = iota // move cards from[start:] onto to
	planDraw                     // stock front -> waste front
	planRecycle                  // waste -> stock, reversed, face down
)

// movePlan is the fully validated effect of a move. Building one never
// touches the piles; apply carries it out.
type movePlan struct {
	kind  planKind
	from  PileRef
	to    PileRef
	start int
}

// ApplyMove validates req against the current piles and, if legal, performs
// it. A rejected move returns a *MoveError and leaves the game unchanged.
func (g *Game) ApplyMove(req MoveRequest) error {
	p, err := g.plan(req)
	if err != nil {
		return err
	}
	g.apply(p)
	return nil
}

// Validate reports whether req would be accepted, without applying it.
func (g *Game) Validate(req MoveRequest) error {
	_, err := g.plan(req)
	return err
}

// LegalMoves lists every move the rules currently allow. Drawing is listed
// once, as stock to waste.
func (g *Game) LegalMoves() []MoveRequest {
	var sources []PileRef
	sources = append(sources, PileRef{Kind: Waste})
	for i := 0; i < TableauCount; i++ {
		sources = append(sources, PileRef{Kind: Tableau, ID: i})
	}

	var dests []PileRef
	for i := 0; i < FoundationCount; i++ {
		dests = append(dests, PileRef{Kind: Foundation, ID: i})
	}
	for i := 0; i < TableauCount; i++ {
		dests = append(dests, PileRef{Kind: Tableau, ID: i})
	}

	var moves []MoveRequest
	for _, src := range sources {
		for _, dst := range dests {
			req := NewMove(src, dst)
			if _, err := g.plan(req); err == nil {
				moves = append(moves, req)
			}
		}
	}

	draw := NewMove(PileRef{Kind: Stock}, PileRef{Kind: Waste})
	if _, err := g.plan(draw); err == nil {
		moves = append(moves, draw)
	}
	return moves
}

func (g *Game) plan(req MoveRequest) (movePlan, error) {
	src, dst := req.Source(), req.Destination()
	if !src.Valid() {
		return movePlan{}, moveErr(CodeInvalidPileReference, "no such source pile: %s", src)
	}
	if !dst.Valid() {
		return movePlan{}, moveErr(CodeInvalidPileReference, "no such destination pile: %s", dst)
	}

	switch src.Kind {
	case Tableau:
		return g.planFromTableau(src, dst)
	case Stock:
		return g.planFromStock(src, dst)
	case Waste:
		return g.planFromWaste(src, dst)
	case Foundation:
		// Moving cards back off a foundation is not part of these rules.
		return movePlan{}, unsupported(src, dst)
	default:
		return movePlan{}, unsupported(src, dst)
	}
}

func (g *Game) planFromTableau(src, dst PileRef) (movePlan, error) {
	pile := g.tableaus[src.ID]

	switch dst.Kind {
	case Foundation:
		if len(pile) == 0 {
			return movePlan{}, moveErr(CodeEmptySource, "tableau %d is empty", src.ID+1)
		}
		top := pile[len(pile)-1]
		if !top.FaceUp {
			return movePlan{}, moveErr(CodeNoQualifyingCard, "top card of tableau %d is face down", src.ID+1)
		}
		if err := g.checkFoundation(dst.ID, top); err != nil {
			return movePlan{}, err
		}
		return movePlan{kind: planTransfer, from: src, to: dst, start: len(pile) - 1}, nil

	case Tableau:
		if src.ID == dst.ID {
			return movePlan{}, moveErr(CodeUnsupportedPilePair, "source and destination are the same tableau")
		}
		if len(pile) == 0 {
			return movePlan{}, moveErr(CodeEmptySource, "tableau %d is empty", src.ID+1)
		}
		start, err := g.findRunStart(pile, dst.ID)
		if err != nil {
			return movePlan{}, err
		}
		return movePlan{kind: planTransfer, from: src, to: dst, start: start}, nil

	case Stock, Waste:
		return movePlan{}, unsupported(src, dst)
	default:
		return movePlan{}, unsupported(src, dst)
	}
}

func (g *Game) planFromStock(src, dst PileRef) (movePlan, error) {
	switch dst.Kind {
	case Waste, Stock:
		if len(g.stock) > 0 {
			return movePlan{kind: planDraw, from: src, to: PileRef{Kind: Waste}}, nil
		}
		if len(g.waste) > 0 {
			return movePlan{kind: planRecycle, from: PileRef{Kind: Waste}, to: src}, nil
		}
		return movePlan{}, moveErr(CodeEmptySource, "stock and waste are both empty")
	case Tableau, Foundation:
		return movePlan{}, unsupported(src, dst)
	default:
		return movePlan{}, unsupported(src, dst)
	}
}

func (g *Game) planFromWaste(src, dst PileRef) (movePlan, error) {
	switch dst.Kind {
	case Tableau:
		if len(g.waste) == 0 {
			return movePlan{}, moveErr(CodeEmptySource, "waste is empty")
		}
		if err := g.checkTableau(dst.ID, g.waste[0]); err != nil {
			return movePlan{}, err
		}
		return movePlan{kind: planTransfer, from: src, to: dst}, nil
	case Foundation:
		if len(g.waste) == 0 {
			return movePlan{}, moveErr(CodeEmptySource, "waste is empty")
		}
		if err := g.checkFoundation(dst.ID, g.waste[0]); err != nil {
			return movePlan{}, err
		}
		return movePlan{kind: planTransfer, from: src, to: dst}, nil
	case Stock, Waste:
		return movePlan{}, unsupported(src, dst)
	default:
		return movePlan{}, unsupported(src, dst)
	}
}

// checkFoundation tests whether card may go on foundation id.
func (g *Game) checkFoundation(id int, card Card) error {
	suit := FoundationSuit(id)
	f := g.foundations[id]

	want := Ace
	if n := len(f); n > 0 {
		top := f[n-1]
		if top.Rank >= King {
			return moveErr(CodeWrongRankOrColor, "the %s foundation is complete", suit)
		}
		if n >= King {
			return moveErr(CodeFoundationFull, "the %s foundation already holds %d cards", suit, n)
		}
		want = top.Rank + 1
	}

	if card.Suit != suit {
		return moveErr(CodeWrongSuit, "%s cannot go on the %s foundation", card, suit)
	}
	if card.Rank != want {
		return moveErr(CodeWrongRankOrColor, "the %s foundation needs %s, not %s", suit, rankString(want), rankString(card.Rank))
	}
	return nil
}

// checkTableau tests whether a single card may be placed on tableau id.
func (g *Game) checkTableau(id int, card Card) error {
	dest := g.tableaus[id]
	if len(dest) == 0 {
		if card.Rank != King {
			return moveErr(CodeWrongRankOrColor, "only a king can go on empty tableau %d", id+1)
		}
		return nil
	}
	top := dest[len(dest)-1]
	if card.Color() == top.Color() || card.Rank != top.Rank-1 {
		return moveErr(CodeWrongRankOrColor, "%s cannot go on %s", card, top)
	}
	return nil
}

// findRunStart scans pile from the bottom for the first face-up card that can
// land on tableau id, so the longest legal run moves.
func (g *Game) findRunStart(pile []Card, id int) (int, error) {
	dest := g.tableaus[id]
	if len(dest) == 0 {
		for i, c := range pile {
			if c.FaceUp && c.Rank == King {
				return i, nil
			}
		}
		return 0, moveErr(CodeNoQualifyingCard, "no face-up king to move onto empty tableau %d", id+1)
	}

	top := dest[len(dest)-1]
	need := top.Rank - 1
	if need < Ace {
		return 0, moveErr(CodeNoQualifyingCard, "nothing can be placed on %s", top)
	}
	for i, c := range pile {
		if c.FaceUp && c.Rank == need && c.Color() != top.Color() {
			return i, nil
		}
	}
	return 0, moveErr(CodeNoQualifyingCard, "no face-up card fits on %s", top)
}

func (g *Game) apply(p movePlan) {
	switch p.kind {
	case planDraw:
		c := g.stock[0]
		g.stock = cloneCards(g.stock[1:])
		c.FaceUp = true
		g.waste = append([]Card{c}, g.waste...)

	case planRecycle:
		stock := make([]Card, 0, len(g.waste))
		for i := len(g.waste) - 1; i >= 0; i-- {
			c := g.waste[i]
			c.FaceUp = false
			stock = append(stock, c)
		}
		g.stock = stock
		g.waste = nil

	case planTransfer:
		g.put(p.to, g.take(p.from, p.start))
	}
}

// take removes cards from the pile starting at index start (tableau) or the
// top card (waste), revealing a newly exposed tableau card.
func (g *Game) take(ref PileRef, start int) []Card {
	switch ref.Kind {
	case Tableau:
		pile := g.tableaus[ref.ID]
		moved := cloneCards(pile[start:])
		rest := pile[:start]
		if n := len(rest); n > 0 && !rest[n-1].FaceUp {
			rest[n-1].FaceUp = true
		}
		g.tableaus[ref.ID] = rest
		return moved
	case Waste:
		c := g.waste[0]
		g.waste = cloneCards(g.waste[1:])
		return []Card{c}
	}
	return nil
}

func (g *Game) put(ref PileRef, cards []Card) {
	switch ref.Kind {
	case Tableau:
		g.tableaus[ref.ID] = append(g.tableaus[ref.ID], cards...)
	case Foundation:
		g.foundations[ref.ID] = append(g.foundations[ref.ID], cards...)
	}
}

func unsupported(src, dst PileRef) *MoveError {
	return moveErr(CodeUnsupportedPilePair, "cannot move from %s to %s", src.Kind, dst.Kind)
}
