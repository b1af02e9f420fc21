package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit is returned by ParsePile when the player asks to stop.
	ErrQuit = errors.New("quit requested")
	// ErrUnknownPileToken is returned for tokens that name no pile.
	ErrUnknownPileToken = errors.New("unknown pile token")
)

// ParsePile maps a single pile token to a reference:
// 1-7 tableau, 8 stock, 9 waste, C/D/S/H foundations. Q or QUIT yields ErrQuit.
func ParsePile(token string) (PileRef, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	switch t {
	case "Q", "QUIT":
		return PileRef{}, ErrQuit
	case "8":
		return PileRef{Kind: Stock}, nil
	case "9":
		return PileRef{Kind: Waste}, nil
	case "C":
		return PileRef{Kind: Foundation, ID: 0}, nil
	case "D":
		return PileRef{Kind: Foundation, ID: 1}, nil
	case "S":
		return PileRef{Kind: Foundation, ID: 2}, nil
	case "H":
		return PileRef{Kind: Foundation, ID: 3}, nil
	}
	if len(t) == 1 && t[0] >= '1' && t[0] <= '7' {
		return PileRef{Kind: Tableau, ID: int(t[0] - '1')}, nil
	}
	return PileRef{}, fmt.Errorf("%w: %q", ErrUnknownPileToken, token)
}

// ParseMove builds a move request from a source and destination token.
func ParseMove(from, to string) (MoveRequest, error) {
	src, err := ParsePile(from)
	if err != nil {
		return MoveRequest{}, err
	}
	dst, err := ParsePile(to)
	if err != nil {
		return MoveRequest{}, err
	}
	return NewMove(src, dst), nil
}

// Token returns the pile token for p, or "" if p names no pile.
func (p PileRef) Token() string {
	if !p.Valid() {
		return ""
	}
	switch p.Kind {
	case Tableau:
		return string(rune('1' + p.ID))
	case Stock:
		return "8"
	case Waste:
		return "9"
	case Foundation:
		return FoundationSuit(p.ID).String()
	}
	return ""
}
