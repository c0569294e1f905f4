package searcher

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func boardWith(t *testing.T, n int, ai, human []game.Coord) *game.Board {
	t.Helper()
	b, err := game.NewBoard(n)
	require.NoError(t, err)
	for _, cell := range ai {
		require.True(t, b.MakeMove(cell.Row, cell.Col, game.AI), "Placing AI at %v should succeed", cell)
	}
	for _, cell := range human {
		require.True(t, b.MakeMove(cell.Row, cell.Col, game.Human), "Placing Human at %v should succeed", cell)
	}
	return b
}

// fourInRow is an open four on row 4 of a 9x9 board, completed at (4, 0) or (4, 5).
func fourInRow() []game.Coord {
	return []game.Coord{{Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 4}}
}

// steppingClock advances by step every time it is read.
func steppingClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestSearchPruningEquivalence(t *testing.T) {
	positions := map[string]*game.Board{
		"opening": boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}},
			[]game.Coord{{Row: 3, Col: 3}}),
		"middle game": boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 3, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}, {Row: 2, Col: 4}}),
	}

	for name, b := range positions {
		for _, h := range []game.Heuristic{game.Simple, game.Pattern} {
			for depth := 1; depth <= 3; depth++ {
				full := NewMinimax(WithDepth(depth), WithHeuristic(h), WithPruning(false))
				pruned := NewMinimax(WithDepth(depth), WithHeuristic(h), WithPruning(true))

				fullResult, _ := full.Search(b, true)
				prunedResult, _ := pruned.Search(b, true)

				require.Equal(t, fullResult.Score, prunedResult.Score,
					"Pruning should not change the score (%s, %v, depth %d)", name, h, depth)
				require.True(t, prunedResult.Found, "A move should be found (%s)", name)
			}
		}
	}
}

func TestSearchPruningVisitsFewerNodes(t *testing.T) {
	b := boardWith(t, 9,
		[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}},
		[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}})

	full := NewMinimax(WithDepth(3), WithPruning(false), WithMetrics(metrics.NewCollector()))
	pruned := NewMinimax(WithDepth(3), WithPruning(true), WithMetrics(metrics.NewCollector()))

	_, fullMetric := full.Search(b, true)
	_, prunedMetric := pruned.Search(b, true)

	require.Less(t, prunedMetric.Nodes, fullMetric.Nodes, "Pruning should visit fewer nodes")
	require.Greater(t, prunedMetric.Cutoffs, 0, "Pruning should record cutoffs")
	require.Equal(t, 0, fullMetric.Cutoffs, "Full search should never cut off")
	require.Equal(t, 3, prunedMetric.CompletedDepth, "Search should report the completed depth")
}

func TestSearchRestoresBoard(t *testing.T) {
	b := boardWith(t, 9,
		[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}},
		[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}})
	before := b.Copy()

	NewMinimax(WithDepth(3)).Search(b, true)
	NewMinimax(WithDepth(2), WithPruning(false)).Search(b, false)

	require.Equal(t, before, b, "Search should leave the board as it found it")
}

func TestSearchTactics(t *testing.T) {
	t.Run("completing five in a row", func(t *testing.T) {
		b := boardWith(t, 9,
			fourInRow(),
			[]game.Coord{{Row: 0, Col: 0}, {Row: 8, Col: 8}, {Row: 0, Col: 8}, {Row: 8, Col: 0}})

		result, _ := NewMinimax(WithDepth(2)).Search(b, true)

		require.True(t, result.Found)
		require.Contains(t, []game.Coord{{Row: 4, Col: 0}, {Row: 4, Col: 5}}, result.Move, "AI should complete the line")
		require.Equal(t, game.WinScore+1, result.Score, "Immediate win should score WinScore plus remaining depth")
	})

	t.Run("preferring the faster win", func(t *testing.T) {
		b := boardWith(t, 9,
			fourInRow(),
			[]game.Coord{{Row: 0, Col: 0}, {Row: 8, Col: 8}, {Row: 0, Col: 8}, {Row: 8, Col: 0}})

		result, _ := NewMinimax(WithDepth(3)).Search(b, true)

		require.Equal(t, game.WinScore+2, result.Score, "Winning now should outscore winning later")
	})

	t.Run("blocking four in a row", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 2, Col: 6}, {Row: 6, Col: 6}},
			[]game.Coord{{Row: 4, Col: 0}, {Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}})

		result, _ := NewMinimax(WithDepth(2)).Search(b, true)

		require.Equal(t, game.Coord{Row: 4, Col: 4}, result.Move, "AI should block the open end")
	})

	t.Run("minimizing side completes its own five", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 0, Col: 0}, {Row: 8, Col: 8}, {Row: 0, Col: 8}, {Row: 8, Col: 0}},
			fourInRow())

		result, _ := NewMinimax(WithDepth(2)).Search(b, false)

		require.Contains(t, []game.Coord{{Row: 4, Col: 0}, {Row: 4, Col: 5}}, result.Move, "Human side should complete the line")
		require.Equal(t, -game.WinScore-1, result.Score, "Human win should score negatively")
	})
}

func TestSearchEdgeCases(t *testing.T) {
	t.Run("empty board returns the center", func(t *testing.T) {
		b := boardWith(t, 15, nil, nil)

		result, _ := NewMinimax(WithDepth(2)).Search(b, true)

		require.True(t, result.Found)
		require.Equal(t, game.Coord{Row: 7, Col: 7}, result.Move, "Only the center is a candidate")
	})

	t.Run("full board returns no move", func(t *testing.T) {
		b, err := game.NewBoard(5)
		require.NoError(t, err)
		pattern := [5][5]game.Player{
			{game.AI, game.AI, game.Human, game.Human, game.AI},
			{game.Human, game.Human, game.AI, game.AI, game.Human},
			{game.AI, game.AI, game.Human, game.Human, game.AI},
			{game.Human, game.Human, game.AI, game.AI, game.Human},
			{game.AI, game.AI, game.Human, game.Human, game.AI},
		}
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				require.True(t, b.MakeMove(r, c, pattern[r][c]))
			}
		}

		result, _ := NewMinimax(WithDepth(2)).Search(b, true)

		require.False(t, result.Found, "No legal move should be reported")
		require.Equal(t, 0, result.Score, "A full board scores as a draw")
	})

	t.Run("wider radius searches more moves", func(t *testing.T) {
		b := boardWith(t, 9, []game.Coord{{Row: 4, Col: 4}}, []game.Coord{{Row: 3, Col: 3}})

		_, narrow := NewMinimax(WithDepth(1), WithMetrics(metrics.NewCollector())).Search(b, true)
		wide, wideMetric := NewMinimax(WithDepth(1), WithRadius(2), WithMetrics(metrics.NewCollector())).Search(b, true)

		require.Greater(t, wideMetric.Nodes, narrow.Nodes, "Radius 2 should generate more candidates")
		require.True(t, b.IsValidMove(wide.Move.Row, wide.Move.Col))
	})

	t.Run("result is always an empty cell", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 3, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}, {Row: 2, Col: 4}})

		for _, maximizing := range []bool{true, false} {
			result, _ := NewMinimax(WithDepth(2)).Search(b, maximizing)

			require.True(t, result.Found)
			require.True(t, b.IsValidMove(result.Move.Row, result.Move.Col), "Move %v should be legal", result.Move)
		}
	})
}

func TestSearchTimeLimit(t *testing.T) {
	t.Run("expired search still returns a legal move", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}})
		m := NewMinimax(
			WithDepth(4),
			WithTimeLimit(time.Millisecond),
			WithMetrics(metrics.NewCollector()),
			withClock(steppingClock(time.Second)),
		)

		result, metric := m.Search(b, true)

		require.True(t, result.Found, "Root moves are always expanded")
		require.True(t, b.IsValidMove(result.Move.Row, result.Move.Col), "Move should be legal")
		require.True(t, metric.TimedOut, "Timeout should be reported")
		require.Equal(t, 0, metric.CompletedDepth, "No depth completed in time")
	})

	t.Run("expired results are not cached", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}},
			[]game.Coord{{Row: 3, Col: 3}})
		table := NewTable(0)
		m := NewMinimax(
			WithDepth(3),
			WithTimeLimit(time.Millisecond),
			WithTable(table),
			withClock(steppingClock(time.Second)),
		)

		m.Search(b, true)

		require.Equal(t, 0, table.Len(), "Nothing should be stored after expiry")
	})

	t.Run("no limit never times out", func(t *testing.T) {
		b := boardWith(t, 9, []game.Coord{{Row: 4, Col: 4}}, []game.Coord{{Row: 3, Col: 3}})
		m := NewMinimax(
			WithDepth(2),
			WithTimeLimit(0),
			WithMetrics(metrics.NewCollector()),
			withClock(steppingClock(time.Hour)),
		)

		_, metric := m.Search(b, true)

		require.False(t, metric.TimedOut, "Zero limit means unbounded")
		require.Equal(t, 2, metric.CompletedDepth)
	})
}

func TestIterativeDeepening(t *testing.T) {
	t.Run("matches a fixed depth search", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}})

		fixed, _ := NewMinimax(WithDepth(3)).Search(b, true)
		deepened, metric := NewMinimax(
			WithDepth(3),
			WithIterativeDeepening(true),
			WithMetrics(metrics.NewCollector()),
		).Search(b, true)

		require.Equal(t, fixed.Score, deepened.Score, "Final iteration should agree with a fixed search")
		require.Equal(t, 3, metric.CompletedDepth, "All iterations should complete")
	})

	t.Run("stops early on a forced win", func(t *testing.T) {
		b := boardWith(t, 9,
			fourInRow(),
			[]game.Coord{{Row: 0, Col: 0}, {Row: 8, Col: 8}, {Row: 0, Col: 8}, {Row: 8, Col: 0}})

		result, metric := NewMinimax(
			WithDepth(4),
			WithIterativeDeepening(true),
			WithMetrics(metrics.NewCollector()),
		).Search(b, true)

		require.Equal(t, 1, metric.CompletedDepth, "Depth 1 already proves the win")
		require.Equal(t, game.WinScore, result.Score)
	})

	t.Run("keeps a partial answer when nothing completes", func(t *testing.T) {
		b := boardWith(t, 9, []game.Coord{{Row: 4, Col: 4}}, []game.Coord{{Row: 3, Col: 3}})

		result, _ := NewMinimax(
			WithDepth(4),
			WithIterativeDeepening(true),
			WithTimeLimit(time.Millisecond),
			withClock(steppingClock(time.Second)),
		).Search(b, true)

		require.True(t, result.Found, "A move should still be returned")
	})
}

func TestSearchTable(t *testing.T) {
	t.Run("repeated search hits the table", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}})
		table := NewTable(0)
		m := NewMinimax(WithDepth(2), WithTable(table), WithMetrics(metrics.NewCollector()))

		first, firstMetric := m.Search(b, true)
		second, secondMetric := m.Search(b, true)

		require.Greater(t, table.Len(), 0, "Search should fill the table")
		require.Equal(t, first, second, "Cached result should match")
		require.Greater(t, secondMetric.TableHits, 0, "Second search should hit the table")
		require.Less(t, secondMetric.Nodes, firstMetric.Nodes, "Cached search should visit fewer nodes")
	})

	t.Run("table does not change the score", func(t *testing.T) {
		b := boardWith(t, 9,
			[]game.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 3, Col: 5}},
			[]game.Coord{{Row: 3, Col: 3}, {Row: 5, Col: 5}, {Row: 2, Col: 4}})

		plain, _ := NewMinimax(WithDepth(3)).Search(b, true)
		cached, _ := NewMinimax(WithDepth(3), WithTable(NewTable(0))).Search(b, true)

		require.Equal(t, plain.Score, cached.Score, "Table should not change the root score")
	})
}
