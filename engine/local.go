package engine

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Local plays two agents against each other on one board in this process.
type Local struct {
	Board  *game.Board
	Agents map[game.Player]agent.Agent
}

// LocalEngine returns an engine for a fresh board. The agents must play
// opposite sides.
func LocalEngine(b *game.Board, agents ...agent.Agent) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if agents[0].Side() == agents[1].Side() {
		panic("agents must play opposite sides")
	}

	bySide := make(map[game.Player]agent.Agent, len(agents))
	for _, a := range agents {
		bySide[a.Side()] = a
	}
	return &Local{
		Board:  b,
		Agents: bySide,
	}
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	b := e.Board
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		BoardSize:      b.Size(),
		StartingPlayer: b.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("game %s started on a %dx%d board, %s moves first", gameMetric.ID, b.Size(), b.Size(), b.CurrentPlayer())

	maxTurns := min(meta.MAX_TURNS, b.Size()*b.Size())
	moveMetrics := []metrics.MoveMetric{}
	for step := 1; !b.IsGameOver() && step <= maxTurns; step++ {
		player := b.CurrentPlayer()
		d := e.Agents[player].Decide(b)
		if !d.Found {
			log.Warn().Msgf("%s has no legal move", player)
			break
		}

		move := d.Move
		if !b.MakeMove(move.Row, move.Col, player) {
			// Agents are trusted, but a broken one should not end the game
			fallback := b.EmptyCells()[0]
			log.Error().Msgf("%s chose illegal move %v, playing %v instead", player, move, fallback)
			move = fallback
			b.MakeMove(move.Row, move.Col, player)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Row:          move.Row,
			Col:          move.Col,
			Source:       d.Source.String(),
			Elapsed:      d.Elapsed,
			SearchMetric: d.Metric,
		})
		log.Info().Msgf("step %d: %s played %v (%s) in %v", step, player, move, d.Source, d.Elapsed)
	}

	winner, _ := b.Winner()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = b.MoveCount()

	if winner == game.Empty {
		log.Info().Msgf("game %s ended in a draw after %d moves in %v", gameMetric.ID, gameMetric.TotalMoves, gameMetric.Duration)
	} else {
		log.Info().Msgf("game %s won by %s after %d moves in %v", gameMetric.ID, winner, gameMetric.TotalMoves, gameMetric.Duration)
	}
	return winner, gameMetric, moveMetrics
}
