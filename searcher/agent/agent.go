package agent

import (
	"fmt"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"time"
)

type Agent interface {
	// Decide picks a move for the agent's side. The board is left as it was found.
	Decide(b *game.Board) Decision
	// Side is the player the agent places stones for
	Side() game.Player
}

// Source tells why a move was chosen.
type Source int

const (
	None Source = iota // No legal move was left
	Opening
	Random
	Win
	Block
	Fork
	CounterFork
	Search
)

func (s Source) String() string {
	switch s {
	case None:
		return "none"
	case Opening:
		return "opening"
	case Random:
		return "random"
	case Win:
		return "win"
	case Block:
		return "block"
	case Fork:
		return "fork"
	case CounterFork:
		return "counter-fork"
	case Search:
		return "search"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

type Decision struct {
	Move    game.Coord
	Found   bool // False only when the board has no empty cell
	Source  Source
	Score   int // Search score, AI positive. Zero for shortcut moves.
	Elapsed time.Duration
	Metric  metrics.SearchMetric
}
