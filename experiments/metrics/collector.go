package metrics

import (
	"gomoku/game"
	"time"
)

type SearchMetric struct {
	MaxDepth       int
	CompletedDepth int
	Heuristic      game.Heuristic
	Pruning        bool
	Duration       time.Duration
	Nodes          int
	Cutoffs        int
	TableHits      int
	TimedOut       bool
}

type MoveMetric struct {
	Step    int
	Player  game.Player
	Row     int
	Col     int
	Source  string        // Why the move was chosen, see agent.Source
	Elapsed time.Duration // Whole decision, including shortcuts
	SearchMetric
}

type GameMetric struct {
	ID             string
	BoardSize      int
	StartingPlayer game.Player
	Winner         game.Player // game.Empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics for a single search. Searches run on one
// goroutine, so implementations need no locking.
type Collector interface {
	Start(maxDepth int, heuristic game.Heuristic, pruning bool)
	AddNode()
	AddCutoff()
	AddTableHit()
	SetCompletedDepth(depth int)
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, heuristic game.Heuristic, pruning bool) {
	m.startTime = time.Now()
	m.metric = SearchMetric{
		MaxDepth:  maxDepth,
		Heuristic: heuristic,
		Pruning:   pruning,
	}
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddCutoff() {
	m.metric.Cutoffs++
}

func (m *collector) AddTableHit() {
	m.metric.TableHits++
}

func (m *collector) SetCompletedDepth(depth int) {
	m.metric.CompletedDepth = depth
}

func (m *collector) SetTimedOut() {
	m.metric.TimedOut = true
}

func (m *collector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(m.startTime)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, heuristic game.Heuristic, pruning bool) {}
func (m *dummyCollector) AddNode()                                                  {}
func (m *dummyCollector) AddCutoff()                                                {}
func (m *dummyCollector) AddTableHit()                                              {}
func (m *dummyCollector) SetCompletedDepth(depth int)                               {}
func (m *dummyCollector) SetTimedOut()                                              {}
func (m *dummyCollector) Complete() SearchMetric                                    { return SearchMetric{} }
