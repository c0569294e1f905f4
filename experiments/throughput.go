package experiments

import (
	"fmt"
	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"

	"github.com/rs/zerolog/log"
)

// ThroughputSetup compares search effort with and without pruning on
// positions sampled from one self-play game.
type ThroughputSetup struct {
	BoardSize int            `json:"board_size"`
	Seed      uint64         `json:"seed"`
	Every     int            `json:"every"` // Sample a position every this many moves
	MaxDepth  int            `json:"max_depth"`
	Heuristic game.Heuristic `json:"heuristic"`
}

func DefaultThroughputSetup() ThroughputSetup {
	return ThroughputSetup{
		BoardSize: 11,
		Seed:      1,
		Every:     6,
		MaxDepth:  3,
		Heuristic: game.Pattern,
	}
}

// RunThroughputExperiment searches every sampled position at each depth up to
// MaxDepth, once with and once without pruning, and writes the search records.
func RunThroughputExperiment(setup ThroughputSetup, root string) ([]metrics.SearchRecord, string, error) {
	positions, err := samplePositions(setup)
	if err != nil {
		return nil, "", err
	}

	log.Info().Msgf("starting throughput experiment on %d positions...", len(positions))

	records := []metrics.SearchRecord{}
	for pi, position := range positions {
		maximizing := position.CurrentPlayer() == game.AI
		for depth := 1; depth <= setup.MaxDepth; depth++ {
			for _, pruning := range []bool{false, true} {
				m := searcher.NewMinimax(
					searcher.WithDepth(depth),
					searcher.WithHeuristic(setup.Heuristic),
					searcher.WithPruning(pruning),
					searcher.WithMetrics(metrics.NewCollector()),
				)
				_, metric := m.Search(position, maximizing)
				records = append(records, metrics.SearchRecord{Position: pi + 1, SearchMetric: metric})
			}
		}
		log.Info().Msgf("completed position %d of %d", pi+1, len(positions))
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(root, "throughput")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(setup); err != nil {
		return nil, "", err
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return nil, "", err
	}
	log.Info().Msgf("stored search records in %s", writer.Dir())
	return records, writer.Dir(), nil
}

// samplePositions plays medium against medium and keeps a copy of the board
// every setup.Every moves while the game is still open.
func samplePositions(setup ThroughputSetup) ([]*game.Board, error) {
	if setup.Every <= 0 || setup.MaxDepth <= 0 {
		return nil, fmt.Errorf("invalid throughput setup %+v", setup)
	}
	b, err := game.NewBoard(setup.BoardSize)
	if err != nil {
		return nil, err
	}

	players := []agent.Agent{
		agent.NewAIPlayer(agent.Medium, agent.WithSide(game.Human), agent.WithSeed(setup.Seed), agent.WithTimeLimit(0)),
		agent.NewAIPlayer(agent.Medium, agent.WithSide(game.AI), agent.WithSeed(setup.Seed+1), agent.WithTimeLimit(0)),
	}
	_, _, moves := engine.LocalEngine(b, players...).Run()

	// Replay the game on a fresh board to snapshot intermediate positions
	replay, err := game.NewBoard(setup.BoardSize)
	if err != nil {
		return nil, err
	}
	positions := []*game.Board{}
	for i, mm := range moves {
		if i > 0 && i%setup.Every == 0 && !replay.IsGameOver() {
			positions = append(positions, replay.Copy())
		}
		replay.MakeMove(mm.Row, mm.Col, mm.Player)
	}
	return positions, nil
}
