package searcher

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"math"
)

// Infinity bounds the alpha-beta window.
const Infinity = math.MaxInt

const DefaultDepth = 2

const DefaultTableCapacity = 1 << 18

// Searcher finds a move for the side to move. maximizing is true when AI is to move.
type Searcher interface {
	Search(b *game.Board, maximizing bool) (Result, metrics.SearchMetric)
}

// Result is a search outcome. Found is false only when no legal move exists.
type Result struct {
	Score int
	Move  game.Coord
	Found bool
}
