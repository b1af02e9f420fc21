package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Keys of the JSON match label, usable in MatchList queries such as
// "+label.game:klondike +label.owner:<user id>".
const (
	labelKeyGame  = "game"
	labelKeyOwner = "owner"
	labelKeyPhase = "phase"
	labelKeyOpen  = "open"
)

const (
	phasePlaying = "playing"
	phaseWon     = "won"
)

// matchLabel is the searchable summary Nakama stores for a match.
type matchLabel struct {
	Owner string
	Phase string
	Open  bool
}

func (l matchLabel) encode() (string, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		labelKeyGame:  labelGame,
		labelKeyOwner: l.Owner,
		labelKeyPhase: l.Phase,
		labelKeyOpen:  l.Open,
	})
	if err != nil {
		return "", fmt.Errorf("build label: %w", err)
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal label: %w", err)
	}
	return string(b), nil
}

func labelFor(state *MatchState) matchLabel {
	phase := phasePlaying
	if state.Session != nil && state.Session.HasWon() {
		phase = phaseWon
	}
	return matchLabel{
		Owner: state.Owner,
		Phase: phase,
		Open:  state.Owner == "",
	}
}
