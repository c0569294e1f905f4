package searcher

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(m *Minimax)

// Minimax is a depth-bounded minimax searcher with optional alpha-beta pruning.
// It holds configuration only; each search keeps its own state.
type Minimax struct {
	depth     int
	timeLimit time.Duration
	heuristic game.Heuristic
	ordering  game.Heuristic
	pruning   bool
	deepening bool
	radius    int
	table     *Table
	metrics   metrics.Collector
	now       func() time.Time
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithTimeLimit bounds the wall-clock time of a search. Zero or less means unbounded.
func WithTimeLimit(limit time.Duration) Option {
	return func(m *Minimax) {
		m.timeLimit = limit
	}
}

func WithHeuristic(heuristic game.Heuristic) Option {
	return func(m *Minimax) {
		m.heuristic = heuristic
	}
}

func WithPruning(pruning bool) Option {
	return func(m *Minimax) {
		m.pruning = pruning
	}
}

// WithIterativeDeepening makes Search deepen one ply at a time up to the depth limit.
func WithIterativeDeepening(deepening bool) Option {
	return func(m *Minimax) {
		m.deepening = deepening
	}
}

func WithRadius(radius int) Option {
	return func(m *Minimax) {
		if radius > 0 {
			m.radius = radius
		}
	}
}

func WithTable(table *Table) Option {
	return func(m *Minimax) {
		m.table = table
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(m *Minimax) {
		m.now = now
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:     DefaultDepth,
		heuristic: game.Pattern,
		ordering:  game.Simple,
		pruning:   true,
		radius:    meta.NEIGHBOR_RADIUS,
		metrics:   metrics.NewDummyCollector(),
		now:       time.Now,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search picks a move for the side to move on b. The board is mutated while
// searching and restored before Search returns.
func (m *Minimax) Search(b *game.Board, maximizing bool) (Result, metrics.SearchMetric) {
	m.metrics.Start(m.depth, m.heuristic, m.pruning)
	start := m.now()

	var result Result
	if m.deepening {
		result = m.deepen(b, maximizing, start)
	} else {
		s := m.newSearch(b, start)
		result = s.minimax(m.depth, 0, -Infinity, Infinity, maximizing)
		if !s.expired {
			m.metrics.SetCompletedDepth(m.depth)
		}
	}

	metric := m.metrics.Complete()
	log.Debug().
		Int("depth", metric.CompletedDepth).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Int("tableHits", metric.TableHits).
		Bool("timedOut", metric.TimedOut).
		Dur("elapsed", metric.Duration).
		Msgf("searched %v with score %d", result.Move, result.Score)
	return result, metric
}

// deepen searches depth 1, 2, ... and keeps the result of the deepest
// iteration that finished inside the time limit.
func (m *Minimax) deepen(b *game.Board, maximizing bool, start time.Time) Result {
	var best Result
	for depth := 1; depth <= m.depth; depth++ {
		s := m.newSearch(b, start)
		result := s.minimax(depth, 0, -Infinity, Infinity, maximizing)
		if s.expired {
			if !best.Found { // Nothing completed, a partial answer beats none
				best = result
			}
			break
		}
		best = result
		m.metrics.SetCompletedDepth(depth)

		if abs(result.Score) >= game.WinScore || !best.Found {
			break
		}
		if m.timeLimit > 0 && m.now().Sub(start) > m.timeLimit {
			break
		}
	}
	return best
}

type search struct {
	*Minimax
	board   *game.Board
	start   time.Time
	expired bool
}

func (m *Minimax) newSearch(b *game.Board, start time.Time) *search {
	return &search{Minimax: m, board: b, start: start}
}

func (s *search) outOfTime() bool {
	if s.timeLimit <= 0 {
		return false
	}
	if !s.expired && s.now().Sub(s.start) > s.timeLimit {
		s.expired = true
		s.metrics.SetTimedOut()
	}
	return s.expired
}

// minimax returns the best score and move for the side to move, AI positive.
// The root (ply 0) always expands its moves so that a legal move is returned
// whenever one exists, even after the time limit has passed.
func (s *search) minimax(depth, ply int, alpha, beta int, maximizing bool) Result {
	s.metrics.AddNode()

	if ply > 0 && s.outOfTime() {
		return Result{Score: game.Evaluate(s.board, s.heuristic)}
	}

	// Faster wins score higher than slower ones
	if s.board.CheckWinner(game.AI) {
		return Result{Score: game.WinScore + depth}
	}
	if s.board.CheckWinner(game.Human) {
		return Result{Score: -game.WinScore - depth}
	}
	if depth == 0 {
		return Result{Score: game.Evaluate(s.board, s.heuristic)}
	}

	var key string
	alphaOrig, betaOrig := alpha, beta
	if s.table != nil {
		key = tableKey(s.board, maximizing)
		if entry, ok := s.table.Probe(key, depth); ok {
			s.metrics.AddTableHit()
			cached := Result{Score: entry.Value, Move: entry.Move, Found: entry.Found}
			switch entry.Flag {
			case Exact:
				return cached
			case Lower:
				alpha = max(alpha, entry.Value)
			case Upper:
				beta = min(beta, entry.Value)
			}
			if alpha >= beta {
				return cached
			}
		}
	}

	moves := game.Candidates(s.board, s.radius)
	if len(moves) == 0 {
		return Result{Score: 0}
	}
	player := game.Human
	if maximizing {
		player = game.AI
	}
	if s.pruning {
		moves = s.order(moves, player, maximizing)
	}

	best := Result{Found: true}
	for i, move := range moves {
		var child Result
		s.board.Probe(move.Row, move.Col, player, func() {
			child = s.minimax(depth-1, ply+1, alpha, beta, !maximizing)
		})

		if i == 0 || (maximizing && child.Score > best.Score) || (!maximizing && child.Score < best.Score) {
			best.Score = child.Score
			best.Move = move
		}

		if s.pruning {
			if maximizing {
				alpha = max(alpha, child.Score)
			} else {
				beta = min(beta, child.Score)
			}
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
	}

	if s.table != nil && !s.expired {
		flag := Exact
		if best.Score <= alphaOrig {
			flag = Upper
		} else if best.Score >= betaOrig {
			flag = Lower
		}
		s.table.Store(key, Entry{Value: best.Score, Move: best.Move, Found: true, Depth: depth, Flag: flag})
	}
	return best
}

type scoredMove struct {
	move  game.Coord
	score int
}

// order sorts moves by a cheap static score after placing each one, best first
// for the side to move. Ties keep the generator's order.
func (s *search) order(moves []game.Coord, player game.Player, maximizing bool) []game.Coord {
	scored := make([]scoredMove, 0, len(moves))
	for _, move := range moves {
		var score int
		s.board.Probe(move.Row, move.Col, player, func() {
			score = game.Evaluate(s.board, s.ordering)
		})
		scored = append(scored, scoredMove{move: move, score: score})
	}

	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		if maximizing {
			return compare(b.score, a.score)
		}
		return compare(a.score, b.score)
	})

	ordered := make([]game.Coord, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}

func compare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
