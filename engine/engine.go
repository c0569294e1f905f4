package engine

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Engine interface {
	// Run plays the game until a player has five in a row or the board is full.
	// The winner is game.Empty on a draw.
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
