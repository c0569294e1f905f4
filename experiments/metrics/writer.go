package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// AgentConfig describes one player taking part in an experiment. Zero fields
// keep the difficulty's own setting.
type AgentConfig struct {
	ID         int           `yaml:"id" json:"id"`
	Difficulty string        `yaml:"difficulty" json:"difficulty"`
	Depth      int           `yaml:"depth,omitempty" json:"depth,omitempty"`
	Heuristic  string        `yaml:"heuristic,omitempty" json:"heuristic,omitempty"`
	TimeLimit  time.Duration `yaml:"time_limit,omitempty" json:"time_limit,omitempty"`
}

type GameRecord struct {
	ID          int
	Agent1      int // AgentConfig.ID
	Agent2      int // AgentConfig.ID
	FirstMover  int // AgentConfig.ID of the agent that played first
	WinnerAgent int // AgentConfig.ID, 0 on a draw
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	MoveMetric
}

type SearchRecord struct {
	Position int
	SearchMetric
}

// DefaultDir is where experiment results go unless told otherwise.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "gomoku", "experiments")
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes all files there. An empty
// root means DefaultDir.
func NewWriter(root, name string) (*Writer, error) {
	if root == "" {
		root = DefaultDir()
	}
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the experiment setup as indented JSON next to the records.
func (w *Writer) WriteSetup(setup any) error {
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, "setup.json"), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "difficulty", "depth", "heuristic", "time_limit"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Difficulty,
			strconv.Itoa(config.Depth),
			config.Heuristic,
			config.TimeLimit.String(),
		})
	}
	return w.writeCSV("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "uuid", "agent1", "agent2", "first_mover", "winner_agent", "winner",
		"board_size", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameMetric.ID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.FirstMover),
			strconv.Itoa(record.WinnerAgent),
			record.Winner.String(),
			strconv.Itoa(record.BoardSize),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := append([]string{"game", "agent", "step", "player", "row", "col", "source", "elapsed"}, searchHeader...)
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Row),
			strconv.Itoa(record.Col),
			record.Source,
			record.Elapsed.String(),
		}
		rows = append(rows, append(row, searchRow(record.SearchMetric)...))
	}
	return w.writeCSV("move_records.csv", "move records", header, rows)
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := append([]string{"position"}, searchHeader...)
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{strconv.Itoa(record.Position)}, searchRow(record.SearchMetric)...))
	}
	return w.writeCSV("search_records.csv", "search records", header, rows)
}

var searchHeader = []string{"max_depth", "completed_depth", "heuristic", "pruning", "duration",
	"nodes", "cutoffs", "table_hits", "timed_out"}

func searchRow(m SearchMetric) []string {
	heuristic := ""
	if m.Heuristic != 0 {
		heuristic = m.Heuristic.String()
	}
	return []string{
		strconv.Itoa(m.MaxDepth),
		strconv.Itoa(m.CompletedDepth),
		heuristic,
		strconv.FormatBool(m.Pruning),
		m.Duration.String(),
		strconv.Itoa(m.Nodes),
		strconv.Itoa(m.Cutoffs),
		strconv.Itoa(m.TableHits),
		strconv.FormatBool(m.TimedOut),
	}
}

func (w *Writer) writeCSV(file, what string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}

	// Write each row
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}
