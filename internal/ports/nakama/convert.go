package nakama

import (
	"klondike/internal/domain"
)

// Cards travel as short strings such as "10H" or "QS"; a face-down card is
// sent as "##" so clients never learn hidden cards.

// SnapshotMessage is the table as the client sees it. Stock cards are never
// revealed, only counted.
type SnapshotMessage struct {
	Seed        int64      `json:"seed"`
	Tableaus    [][]string `json:"tableaus"`
	Foundations [][]string `json:"foundations"`
	Stock       int        `json:"stock"`
	Waste       []string   `json:"waste"` // top first
	Won         bool       `json:"won"`
}

// MoveMessage names a move by pile tokens, for example {"from":"9","to":"3"}.
type MoveMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type NewDealMessage struct {
	Seed *int64 `json:"seed,omitempty"`
}

type MoveAppliedMessage struct {
	Move     MoveMessage     `json:"move"`
	Cards    []string        `json:"cards"`
	Snapshot SnapshotMessage `json:"snapshot"`
}

type StockRecycledMessage struct {
	Count    int             `json:"count"`
	Snapshot SnapshotMessage `json:"snapshot"`
}

type MoveRejectedMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HintMessage is empty when there is nothing worth suggesting.
type HintMessage struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type GameWonMessage struct {
	Seed  int64 `json:"seed"`
	Moves int   `json:"moves"`
}

func cardsToWire(cards []domain.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func snapshotToWire(seed int64, s domain.Snapshot, won bool) SnapshotMessage {
	msg := SnapshotMessage{
		Seed:        seed,
		Tableaus:    make([][]string, 0, len(s.Tableaus)),
		Foundations: make([][]string, 0, len(s.Foundations)),
		Stock:       len(s.Stock),
		Waste:       cardsToWire(s.Waste),
		Won:         won,
	}
	for _, p := range s.Tableaus {
		msg.Tableaus = append(msg.Tableaus, cardsToWire(p))
	}
	for _, p := range s.Foundations {
		msg.Foundations = append(msg.Foundations, cardsToWire(p))
	}
	return msg
}

func moveToWire(req domain.MoveRequest) MoveMessage {
	return MoveMessage{From: req.Source().Token(), To: req.Destination().Token()}
}

func moveFromWire(m MoveMessage) (domain.MoveRequest, error) {
	return domain.ParseMove(m.From, m.To)
}
