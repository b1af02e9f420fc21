package domain

import (
	"errors"
	"testing"
)

func TestParsePile(t *testing.T) {
	tests := []struct {
		token string
		want  PileRef
	}{
		{"1", PileRef{Kind: Tableau, ID: 0}},
		{"7", PileRef{Kind: Tableau, ID: 6}},
		{"8", PileRef{Kind: Stock}},
		{"9", PileRef{Kind: Waste}},
		{"C", PileRef{Kind: Foundation, ID: 0}},
		{"d", PileRef{Kind: Foundation, ID: 1}},
		{" s ", PileRef{Kind: Foundation, ID: 2}},
		{"H", PileRef{Kind: Foundation, ID: 3}},
	}
	for _, tt := range tests {
		got, err := ParsePile(tt.token)
		if err != nil {
			t.Fatalf("ParsePile(%q): %v", tt.token, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePile(%q) = %v, want %v", tt.token, got, tt.want)
		}
		if tok := got.Token(); mustParsePile(t, tok) != got {
			t.Fatalf("Token() round trip failed for %q", tt.token)
		}
	}
}

func mustParsePile(t *testing.T, token string) PileRef {
	t.Helper()
	p, err := ParsePile(token)
	if err != nil {
		t.Fatalf("ParsePile(%q): %v", token, err)
	}
	return p
}

func TestParsePileQuit(t *testing.T) {
	for _, token := range []string{"q", "Q", "quit", "QUIT"} {
		if _, err := ParsePile(token); !errors.Is(err, ErrQuit) {
			t.Fatalf("ParsePile(%q) err = %v, want ErrQuit", token, err)
		}
	}
}

func TestParsePileUnknown(t *testing.T) {
	for _, token := range []string{"", "0", "10", "X", "12", "stock"} {
		if _, err := ParsePile(token); !errors.Is(err, ErrUnknownPileToken) {
			t.Fatalf("ParsePile(%q) err = %v, want ErrUnknownPileToken", token, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	req, err := ParseMove("3", "H")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	want := MoveRequest{SourceKind: Tableau, SourceID: 2, DestinationKind: Foundation, DestinationID: 3}
	if req != want {
		t.Fatalf("ParseMove = %+v, want %+v", req, want)
	}

	if _, err := ParseMove("8", "quit"); !errors.Is(err, ErrQuit) {
		t.Fatalf("quit in destination: err = %v", err)
	}
}

func TestTokenInvalidRef(t *testing.T) {
	if tok := (PileRef{Kind: Tableau, ID: 9}).Token(); tok != "" {
		t.Fatalf("Token() = %q, want empty", tok)
	}
}
