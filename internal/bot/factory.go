package bot

import (
	"fmt"
	"strings"
)

// BotLevel selects an advisor strategy.
type BotLevel int

const (
	BotLevelBasic BotLevel = iota + 1
	BotLevelSmart
)

func (l BotLevel) String() string {
	switch l {
	case BotLevelBasic:
		return "basic"
	case BotLevelSmart:
		return "smart"
	default:
		return fmt.Sprintf("BotLevel(%d)", int(l))
	}
}

// ParseLevel maps a configured level name to a BotLevel.
func ParseLevel(name string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic":
		return BotLevelBasic, nil
	case "smart", "":
		return BotLevelSmart, nil
	default:
		return 0, fmt.Errorf("unknown bot level: %q", name)
	}
}

// NewBrain creates a new advisor based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBasic:
		return &BasicBot{}, nil
	case BotLevelSmart:
		return &SmartBot{Weights: DefaultWeights}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
