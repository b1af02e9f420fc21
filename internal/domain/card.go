package domain

import (
	"fmt"
	"strconv"
)

// Suit identifies the suit of a card. The order matches the foundation order.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Spades
	Hearts
)

// Suits lists every suit in foundation order.
var Suits = [4]Suit{Clubs, Diamonds, Spades, Hearts}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Spades:
		return "S"
	case Hearts:
		return "H"
	default:
		return "?"
	}
}

// Color is the color of a suit.
type Color int

const (
	Black Color = iota
	Red
)

// ColorOf returns Black for clubs and spades, Red for diamonds and hearts.
func ColorOf(s Suit) Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Rank values. Number cards use their face value.
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is a single playing card. Rank and Suit never change once dealt.
type Card struct {
	Rank   int  `json:"rank"`
	Suit   Suit `json:"suit"`
	FaceUp bool `json:"face_up"`
}

// Color returns the color of the card's suit.
func (c Card) Color() Color {
	return ColorOf(c.Suit)
}

// Same reports whether two cards have the same rank and suit.
func (c Card) Same(o Card) bool {
	return c.Rank == o.Rank && c.Suit == o.Suit
}

func (c Card) String() string {
	if !c.FaceUp {
		return "##"
	}
	return rankString(c.Rank) + c.Suit.String()
}

func rankString(rank int) string {
	switch rank {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(rank)
	}
}

// GoString shows the card regardless of facing; handy in test failures.
func (c Card) GoString() string {
	return fmt.Sprintf("%s%s(up=%t)", rankString(c.Rank), c.Suit, c.FaceUp)
}
