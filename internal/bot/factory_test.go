package bot

import (
	"math/rand"
	"testing"

	"klondike/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    BotLevel
		wantErr bool
	}{
		{"basic", BotLevelBasic, false},
		{" SMART ", BotLevelSmart, false},
		{"", BotLevelSmart, false},
		{"god", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %t", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewBrainUnknownLevel(t *testing.T) {
	if _, err := NewBrain(BotLevel(42)); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

type recordingBrain struct {
	got *domain.Game
}

func (r *recordingBrain) CalculateMove(game *domain.Game) (Move, error) {
	r.got = game
	_ = game.ApplyMove(domain.NewMove(domain.PileRef{Kind: domain.Stock}, domain.PileRef{Kind: domain.Waste}))
	return Move{None: true}, nil
}

func TestAgentPlaysOnClone(t *testing.T) {
	g := domain.Deal(rand.New(rand.NewSource(4)))
	rb := &recordingBrain{}
	agent := &Agent{ID: "advisor", Name: "Advisor", Strategy: rb}

	if _, err := agent.Play(g); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if rb.got == g {
		t.Fatal("strategy received the caller's game")
	}
	if len(g.Waste()) != 0 {
		t.Fatal("strategy changed the caller's game")
	}

	move, err := agent.Play(nil)
	if err != nil || !move.None {
		t.Fatalf("Play(nil) = %+v, %v", move, err)
	}
}
