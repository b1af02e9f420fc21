package domain

import "fmt"

// PileKind distinguishes the four kinds of pile on the table.
type PileKind int

const (
	Tableau PileKind = iota
	Foundation
	Stock
	Waste
)

// Pile counts per kind.
const (
	TableauCount    = 7
	FoundationCount = 4
)

func (k PileKind) String() string {
	switch k {
	case Tableau:
		return "tableau"
	case Foundation:
		return "foundation"
	case Stock:
		return "stock"
	case Waste:
		return "waste"
	default:
		return fmt.Sprintf("pilekind(%d)", int(k))
	}
}

// PileRef names one pile: tableau 0-6, foundation 0-3, stock 0, waste 0.
type PileRef struct {
	Kind PileKind `json:"kind"`
	ID   int      `json:"id"`
}

func (p PileRef) String() string {
	return fmt.Sprintf("%s %d", p.Kind, p.ID)
}

// Valid reports whether the reference names an existing pile.
func (p PileRef) Valid() bool {
	switch p.Kind {
	case Tableau:
		return p.ID >= 0 && p.ID < TableauCount
	case Foundation:
		return p.ID >= 0 && p.ID < FoundationCount
	case Stock, Waste:
		return p.ID == 0
	default:
		return false
	}
}

// MoveRequest asks to move cards from one pile to another. It carries no
// guarantee of legality.
type MoveRequest struct {
	SourceKind      PileKind `json:"source_kind"`
	SourceID        int      `json:"source_id"`
	DestinationKind PileKind `json:"destination_kind"`
	DestinationID   int      `json:"destination_id"`
}

// NewMove builds a MoveRequest from two pile references.
func NewMove(from, to PileRef) MoveRequest {
	return MoveRequest{
		SourceKind:      from.Kind,
		SourceID:        from.ID,
		DestinationKind: to.Kind,
		DestinationID:   to.ID,
	}
}

// Source returns the source pile reference.
func (m MoveRequest) Source() PileRef {
	return PileRef{Kind: m.SourceKind, ID: m.SourceID}
}

// Destination returns the destination pile reference.
func (m MoveRequest) Destination() PileRef {
	return PileRef{Kind: m.DestinationKind, ID: m.DestinationID}
}

func (m MoveRequest) String() string {
	return fmt.Sprintf("%s -> %s", m.Source(), m.Destination())
}

// FoundationSuit returns the suit a foundation is bound to.
func FoundationSuit(id int) Suit {
	return Suits[id]
}
