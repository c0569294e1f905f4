package experiments

import (
	"errors"
	"fmt"
	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/searcher/agent"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const NumGames = 4 // Per match up, unless the setup says otherwise

// Setup describes an experiment: who plays, on what board, and how often.
type Setup struct {
	Name      string                `yaml:"name" json:"name"`
	Games     int                   `yaml:"games" json:"games"`
	BoardSize int                   `yaml:"board_size" json:"board_size"`
	Seed      uint64                `yaml:"seed" json:"seed"`
	Agents    []metrics.AgentConfig `yaml:"agents" json:"agents"`
	MatchUps  [][2]int              `yaml:"match_ups" json:"match_ups"` // Pairs of AgentConfig.ID
}

// DefaultSetup pairs every difficulty against its neighbour in strength.
func DefaultSetup() Setup {
	setup := Setup{
		Name:      "difficulty",
		Games:     NumGames,
		BoardSize: meta.BOARD_SIZE,
		Seed:      1,
	}
	for i, d := range agent.Difficulties {
		setup.Agents = append(setup.Agents, metrics.AgentConfig{ID: i + 1, Difficulty: d.String()})
	}
	setup.MatchUps = neighbours(setup.Agents)
	return setup
}

// neighbours pairs each agent with the next one in list order.
func neighbours(configs []metrics.AgentConfig) [][2]int {
	pairs := [][2]int{}
	for i := 1; i < len(configs); i++ {
		pairs = append(pairs, [2]int{configs[i-1].ID, configs[i].ID})
	}
	return pairs
}

// LoadSetup reads a YAML setup file. Missing fields fall back to DefaultSetup,
// and missing match-ups pair each listed agent with the next.
func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("failed to read setup: %w", err)
	}
	return ParseSetup(data)
}

func ParseSetup(data []byte) (Setup, error) {
	defaults := DefaultSetup()
	setup := Setup{}
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return Setup{}, fmt.Errorf("failed to parse setup: %w", err)
	}

	if setup.Name == "" {
		setup.Name = defaults.Name
	}
	if setup.Games == 0 {
		setup.Games = defaults.Games
	}
	if setup.BoardSize == 0 {
		setup.BoardSize = defaults.BoardSize
	}
	if len(setup.Agents) == 0 {
		setup.Agents = defaults.Agents
	}
	if len(setup.MatchUps) == 0 {
		setup.MatchUps = neighbours(setup.Agents)
	}

	if err := setup.Validate(); err != nil {
		return Setup{}, err
	}
	return setup, nil
}

// Validate checks that every match-up refers to known, well-formed agents.
func (s Setup) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", s.Games)
	}
	if s.BoardSize%2 == 0 || s.BoardSize < meta.MIN_BOARD_SIZE || s.BoardSize > meta.MAX_BOARD_SIZE {
		return fmt.Errorf("board size %d: %w", s.BoardSize, game.ErrInvalidSize)
	}
	if len(s.MatchUps) == 0 {
		return errors.New("no match ups")
	}

	ids := make(map[int]bool, len(s.Agents))
	for _, config := range s.Agents {
		if config.ID <= 0 {
			return fmt.Errorf("agent id must be positive, got %d", config.ID)
		}
		if ids[config.ID] {
			return fmt.Errorf("duplicate agent id %d", config.ID)
		}
		ids[config.ID] = true
		if _, err := agent.ParseDifficulty(config.Difficulty); err != nil {
			return fmt.Errorf("agent %d: %w", config.ID, err)
		}
		if config.Heuristic != "" {
			if _, err := game.ParseHeuristic(config.Heuristic); err != nil {
				return fmt.Errorf("agent %d: %w", config.ID, err)
			}
		}
	}
	for _, pair := range s.MatchUps {
		for _, id := range pair {
			if !ids[id] {
				return fmt.Errorf("match up %v refers to unknown agent %d", pair, id)
			}
		}
	}
	return nil
}

func (s Setup) agent(id int) metrics.AgentConfig {
	for _, config := range s.Agents {
		if config.ID == id {
			return config
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}

// Result holds the outcome of every game in one match-up.
type Result struct {
	Agent1  int
	Agent2  int
	Wins1   int
	Wins2   int
	Session engine.Session
}

// Run plays every match-up of setup, alternating which agent moves first, and
// writes the records under root. It returns the per match-up results and the
// directory the records were written to.
func Run(setup Setup, root string) ([]Result, string, error) {
	if err := setup.Validate(); err != nil {
		return nil, "", err
	}

	count := 0
	results := []Result{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, pair := range setup.MatchUps {
		config1, config2 := setup.agent(pair[0]), setup.agent(pair[1])
		result := Result{Agent1: config1.ID, Agent2: config2.ID}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(setup.MatchUps), config1, config2)

		for i := 0; i < setup.Games; i++ {
			// The first mover plays the Human side, which always opens
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}
			count++
			seed := setup.Seed + uint64(count)*2

			record, moves, err := runGame(setup.BoardSize, first, second, seed)
			if err != nil {
				return nil, "", err
			}
			record.ID = count
			record.Agent1 = config1.ID
			record.Agent2 = config2.ID
			gameRecords = append(gameRecords, record)
			for _, mm := range moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					Agent:      agentFor(mm.Player, first, second).ID,
					MoveMetric: mm,
				})
			}

			result.Session.Record(record.Winner, record.TotalMoves)
			switch record.WinnerAgent {
			case config1.ID:
				result.Wins1++
			case config2.ID:
				result.Wins2++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner agent %d", mi+1, len(setup.MatchUps), i+1, record.WinnerAgent)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(setup.MatchUps), result.Session.String())
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	dir, err := store(setup, root, gameRecords, moveRecords)
	if err != nil {
		return nil, "", err
	}
	return results, dir, nil
}

func store(setup Setup, root string, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(setup); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(setup.Agents); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays first (Human side) against second (AI side) on a fresh board.
func runGame(size int, first, second metrics.AgentConfig, seed uint64) (metrics.GameRecord, []metrics.MoveMetric, error) {
	b, err := game.NewBoard(size)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	firstPlayer, err := NewPlayer(first, game.Human, seed)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	secondPlayer, err := NewPlayer(second, game.AI, seed+1)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	winner, gameMetric, moveMetrics := engine.LocalEngine(b, firstPlayer, secondPlayer).Run()

	record := metrics.GameRecord{
		FirstMover: first.ID,
		GameMetric: gameMetric,
	}
	if winner != game.Empty {
		record.WinnerAgent = agentFor(winner, first, second).ID
	}
	return record, moveMetrics, nil
}

func agentFor(player game.Player, first, second metrics.AgentConfig) metrics.AgentConfig {
	if player == game.Human {
		return first
	}
	return second
}

// NewPlayer builds an AI player for config on the given side.
func NewPlayer(config metrics.AgentConfig, side game.Player, seed uint64) (*agent.AIPlayer, error) {
	difficulty, err := agent.ParseDifficulty(config.Difficulty)
	if err != nil {
		return nil, err
	}

	options := []agent.Option{
		agent.WithSide(side),
		agent.WithSeed(seed),
		agent.WithMetrics(metrics.NewCollector()),
	}
	if config.Depth > 0 {
		options = append(options, agent.WithDepth(config.Depth))
	}
	if config.Heuristic != "" {
		heuristic, err := game.ParseHeuristic(config.Heuristic)
		if err != nil {
			return nil, err
		}
		options = append(options, agent.WithHeuristic(heuristic))
	}
	if config.TimeLimit != 0 {
		options = append(options, agent.WithTimeLimit(config.TimeLimit))
	}
	return agent.NewAIPlayer(difficulty, options...), nil
}
