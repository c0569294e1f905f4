package agent

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(p *AIPlayer)

// AIPlayer decides moves for one side according to a difficulty profile. It
// owns its transposition table, so separate players never share cached scores.
type AIPlayer struct {
	side       game.Player
	difficulty Difficulty
	profile    Profile
	rng        *rand.Rand
	table      *searcher.Table
	metrics    metrics.Collector
}

// WithSide sets the side the player places stones for. AI by default.
func WithSide(side game.Player) Option {
	return func(p *AIPlayer) {
		if side != game.Empty {
			p.side = side
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(p *AIPlayer) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDepth overrides the profile's search depth. Adaptive players stop adapting.
func WithDepth(depth int) Option {
	return func(p *AIPlayer) {
		if depth > 0 {
			p.profile.Depth = depth
			p.profile.Adaptive = false
		}
	}
}

func WithHeuristic(heuristic game.Heuristic) Option {
	return func(p *AIPlayer) {
		p.profile.Heuristic = heuristic
	}
}

// WithTimeLimit overrides the profile's time budget. Zero or less means unbounded.
func WithTimeLimit(limit time.Duration) Option {
	return func(p *AIPlayer) {
		p.profile.TimeLimit = limit
	}
}

func WithRandomMoveProbability(probability float64) Option {
	return func(p *AIPlayer) {
		p.profile.RandomMoveProbability = probability
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(p *AIPlayer) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

func NewAIPlayer(difficulty Difficulty, options ...Option) *AIPlayer {
	p := &AIPlayer{
		side:       game.AI,
		difficulty: difficulty,
		profile:    difficulty.Profile(),
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	if p.profile.Table {
		p.table = searcher.NewTable(searcher.DefaultTableCapacity)
	}
	return p
}

func (p *AIPlayer) Side() game.Player {
	return p.side
}

func (p *AIPlayer) Difficulty() Difficulty {
	return p.difficulty
}

func (p *AIPlayer) Profile() Profile {
	return p.profile
}

// GetBestMove returns the chosen cell, or false when no legal move is left.
func (p *AIPlayer) GetBestMove(b *game.Board) (game.Coord, bool) {
	d := p.Decide(b)
	return d.Move, d.Found
}

// Decide runs the opening, random, tactical and search stages in order and
// returns the first move one of them produces.
func (p *AIPlayer) Decide(b *game.Board) Decision {
	start := time.Now()
	d := p.decide(b)
	d.Elapsed = time.Since(start)

	log.Debug().
		Str("side", p.side.String()).
		Str("difficulty", p.difficulty.String()).
		Str("source", d.Source.String()).
		Dur("elapsed", d.Elapsed).
		Msgf("decided %v", d.Move)
	return d
}

func (p *AIPlayer) decide(b *game.Board) Decision {
	if b.Stones() == 0 {
		return Decision{Move: b.Center(), Found: true, Source: Opening}
	}

	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Decision{Source: None}
	}

	if p.profile.RandomMoveProbability > 0 && p.rng.Float64() < p.profile.RandomMoveProbability {
		return Decision{Move: empty[p.rng.Intn(len(empty))], Found: true, Source: Random}
	}

	opponent := p.side.Opponent()
	if p.profile.Win {
		if cell, ok := winningCell(b, p.side); ok {
			return Decision{Move: cell, Found: true, Source: Win}
		}
	}
	if p.profile.Block {
		if cell, ok := winningCell(b, opponent); ok {
			return Decision{Move: cell, Found: true, Source: Block}
		}
	}
	if p.profile.Fork {
		if cell, ok := forkCell(b, p.side); ok {
			return Decision{Move: cell, Found: true, Source: Fork}
		}
		if cell, ok := forkCell(b, opponent); ok {
			return Decision{Move: cell, Found: true, Source: CounterFork}
		}
	}

	result, metric := p.newSearch(b).Search(b, p.side == game.AI)
	if !result.Found {
		return Decision{Source: None, Metric: metric}
	}
	return Decision{Move: result.Move, Found: true, Source: Search, Score: result.Score, Metric: metric}
}

// newSearch builds a search configured for the current position.
func (p *AIPlayer) newSearch(b *game.Board) searcher.Searcher {
	depth := p.profile.Depth
	if p.profile.Adaptive {
		depth = adaptiveDepth(b.FillRatio())
	}

	options := []searcher.Option{
		searcher.WithDepth(depth),
		searcher.WithHeuristic(p.profile.Heuristic),
		searcher.WithTimeLimit(p.profile.TimeLimit),
		searcher.WithPruning(true),
		searcher.WithIterativeDeepening(p.profile.IterativeDeepening),
		searcher.WithMetrics(p.metrics),
	}
	if p.table != nil {
		options = append(options, searcher.WithTable(p.table))
	}
	return searcher.NewMinimax(options...)
}
