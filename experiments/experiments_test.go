package experiments

import (
	"encoding/csv"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "%s should exist", path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "%s should be valid CSV", path)
	return rows
}

func TestDefaultSetup(t *testing.T) {
	setup := DefaultSetup()

	require.NoError(t, setup.Validate(), "Default setup should be valid")
	require.Len(t, setup.Agents, 5, "One agent per difficulty")
	require.Equal(t, [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 5}}, setup.MatchUps, "Neighbours should be paired")
}

func TestParseSetup(t *testing.T) {
	t.Run("filling in defaults", func(t *testing.T) {
		setup, err := ParseSetup([]byte(heredoc.Doc(`
			name: quick
			board_size: 9
			agents:
			  - id: 1
			    difficulty: easy
			  - id: 2
			    difficulty: Hard
			    depth: 2
			    heuristic: simple
			    time_limit: 250ms
			  - id: 3
			    difficulty: expert
		`)))

		require.NoError(t, err)
		require.Equal(t, "quick", setup.Name)
		require.Equal(t, NumGames, setup.Games, "Games should default")
		require.Equal(t, 9, setup.BoardSize)
		require.Equal(t, 250*time.Millisecond, setup.Agents[1].TimeLimit, "Durations should parse")
		require.Equal(t, 2, setup.Agents[1].Depth)
		require.Equal(t, [][2]int{{1, 2}, {2, 3}}, setup.MatchUps, "Missing match ups should pair neighbours")
	})

	t.Run("explicit match ups", func(t *testing.T) {
		setup, err := ParseSetup([]byte(heredoc.Doc(`
			games: 2
			agents:
			  - {id: 4, difficulty: easy}
			  - {id: 9, difficulty: medium}
			match_ups:
			  - [9, 4]
		`)))

		require.NoError(t, err)
		require.Equal(t, [][2]int{{9, 4}}, setup.MatchUps)
		require.Equal(t, 15, setup.BoardSize, "Board size should default")
	})

	t.Run("rejecting bad setups", func(t *testing.T) {
		cases := map[string]string{
			"unknown difficulty": "agents: [{id: 1, difficulty: godlike}, {id: 2, difficulty: easy}]",
			"unknown heuristic":  "agents: [{id: 1, difficulty: easy, heuristic: magic}, {id: 2, difficulty: easy}]",
			"duplicate id":       "agents: [{id: 1, difficulty: easy}, {id: 1, difficulty: hard}]",
			"unknown agent":      "match_ups: [[1, 42]]",
			"even board":         "board_size: 14",
			"negative games":     "games: -1",
			"single agent":       "agents: [{id: 1, difficulty: easy}]",
			"malformed":          "agents: {",
		}
		for name, doc := range cases {
			_, err := ParseSetup([]byte(doc))
			require.Error(t, err, "Setup with %s should be rejected", name)
		}
	})

	t.Run("even board wraps the size error", func(t *testing.T) {
		_, err := ParseSetup([]byte("board_size: 14"))
		require.ErrorIs(t, err, game.ErrInvalidSize)
	})

	t.Run("loading a missing file", func(t *testing.T) {
		_, err := LoadSetup(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist, "I/O errors should be wrapped")
	})
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	setup := Setup{
		Name:      "smoke",
		Games:     2,
		BoardSize: 7,
		Seed:      3,
		Agents: []metrics.AgentConfig{
			{ID: 1, Difficulty: "easy"},
			{ID: 2, Difficulty: "medium", TimeLimit: -1},
		},
		MatchUps: [][2]int{{1, 2}},
	}

	results, dir, err := Run(setup, root)

	require.NoError(t, err)
	require.Len(t, results, 1)
	result := results[0]
	require.Equal(t, 2, result.Session.Games)
	require.Equal(t, result.Session.Games, result.Wins1+result.Wins2+result.Session.Draws, "Every game has one outcome")

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3, "Header plus one row per game")
	require.Equal(t, "first_mover", games[0][4])
	require.Equal(t, "1", games[1][4], "Agent 1 should start the first game")
	require.Equal(t, "2", games[2][4], "Agent 2 should start the second game")

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Equal(t, result.Session.TotalMoves+1, len(moves), "Header plus one row per move")

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)

	_, err = os.Stat(filepath.Join(dir, "setup.json"))
	require.NoError(t, err, "Setup should be stored")
	require.Equal(t, filepath.Join(root, "smoke"), filepath.Dir(dir), "Records should go in a timestamped folder")
}

func TestRunThroughputExperiment(t *testing.T) {
	setup := ThroughputSetup{BoardSize: 7, Seed: 2, Every: 4, MaxDepth: 2, Heuristic: game.Pattern}

	records, dir, err := RunThroughputExperiment(setup, t.TempDir())

	require.NoError(t, err)
	require.NotEmpty(t, records, "At least one position should be sampled")
	require.Zero(t, len(records)%4, "Two depths times two pruning settings per position")
	for i := 0; i+1 < len(records); i += 2 {
		full, pruned := records[i], records[i+1]
		require.False(t, full.Pruning)
		require.True(t, pruned.Pruning)
		require.LessOrEqual(t, pruned.Nodes, full.Nodes, "Pruning should never visit more nodes")
	}

	rows := readCSV(t, filepath.Join(dir, "search_records.csv"))
	require.Len(t, rows, len(records)+1)
}
