package agent

import (
	"fmt"
	"gomoku/game"
	"strings"
	"time"
)

// Difficulty names a closed set of playing strengths.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
	Expert
	Adaptive
)

var Difficulties = []Difficulty{Easy, Medium, Hard, Expert, Adaptive}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	case Adaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty maps a difficulty name to its variant, ignoring case.
func ParseDifficulty(name string) (Difficulty, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Difficulties {
		if d.String() == want {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}

// MarshalText and UnmarshalText let difficulties appear by name in setup files.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Profile bundles everything a difficulty controls.
type Profile struct {
	Depth                 int
	Heuristic             game.Heuristic
	TimeLimit             time.Duration
	RandomMoveProbability float64
	Win                   bool
	Block                 bool
	Fork                  bool // Also enables the counter-fork probe
	IterativeDeepening    bool
	Table                 bool
	Adaptive              bool // Depth follows the board fill ratio
}

var profiles = map[Difficulty]Profile{
	Easy: {
		Depth:                 1,
		Heuristic:             game.Simple,
		TimeLimit:             200 * time.Millisecond,
		RandomMoveProbability: 0.3,
	},
	Medium: {
		Depth:                 2,
		Heuristic:             game.Pattern,
		TimeLimit:             600 * time.Millisecond,
		RandomMoveProbability: 0.1,
		Block:                 true,
	},
	Hard: {
		Depth:                 3,
		Heuristic:             game.Pattern,
		TimeLimit:             1500 * time.Millisecond,
		RandomMoveProbability: 0.05,
		Win:                   true,
		Block:                 true,
		Fork:                  true,
		Table:                 true,
	},
	Expert: {
		Depth:              4,
		Heuristic:          game.Pattern,
		TimeLimit:          5 * time.Second,
		Win:                true,
		Block:              true,
		Fork:               true,
		IterativeDeepening: true,
		Table:              true,
	},
	Adaptive: {
		Depth:              adaptiveDepths[len(adaptiveDepths)-1].depth,
		Heuristic:          game.Pattern,
		TimeLimit:          3 * time.Second,
		Win:                true,
		Block:              true,
		Fork:               true,
		IterativeDeepening: true,
		Table:              true,
		Adaptive:           true,
	},
}

// Profile returns the settings for d. Unknown difficulties play as Easy.
func (d Difficulty) Profile() Profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[Easy]
}

// adaptiveDepths maps the board fill ratio to a search depth. Open boards
// branch widely, so they get the shallowest search.
var adaptiveDepths = []struct {
	below float64
	depth int
}{
	{0.10, 2},
	{0.25, 3},
	{0.50, 4},
	{1.01, 5},
}

func adaptiveDepth(fill float64) int {
	for _, step := range adaptiveDepths {
		if fill < step.below {
			return step.depth
		}
	}
	return adaptiveDepths[len(adaptiveDepths)-1].depth
}
