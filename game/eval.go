package game

import (
	"fmt"
	"gomoku/meta"
	"strings"
)

// Heuristic selects how a board is scored. Scores are always from the AI's
// perspective: positive favors AI, negative favors Human.
type Heuristic int

const (
	Simple Heuristic = iota + 1
	Pattern
)

func (h Heuristic) String() string {
	switch h {
	case Simple:
		return "simple"
	case Pattern:
		return "pattern"
	default:
		return fmt.Sprintf("heuristic(%d)", int(h))
	}
}

// ParseHeuristic maps a heuristic name to its variant, ignoring case.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return Simple, nil
	case "pattern":
		return Pattern, nil
	default:
		return 0, fmt.Errorf("unknown heuristic %q", name)
	}
}

func (h Heuristic) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Heuristic) UnmarshalText(text []byte) error {
	parsed, err := ParseHeuristic(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// WinScore is the magnitude reported for a finished game.
const WinScore = 100_000_000

// runKey indexes the pattern table by capped run length and open ends.
type runKey struct {
	length   int
	openEnds int
}

var patternScores = map[runKey]int{
	{5, 0}: 10_000_000,
	{5, 1}: 10_000_000,
	{5, 2}: 10_000_000,
	{4, 2}: 500_000, // Open four cannot be stopped
	{4, 1}: 50_000,
	{3, 2}: 10_000,
	{3, 1}: 1_000,
	{2, 2}: 500,
	{2, 1}: 100,
}

// Bonuses for the simple heuristic, indexed by same-owner stones found ahead.
var aheadBonus = [5]int{0, 10, 100, 1_000, 10_000}

// Evaluate scores b with the given heuristic. Unknown variants fall back to Pattern.
func Evaluate(b *Board, h Heuristic) int {
	switch h {
	case Simple:
		return evaluateSimple(b)
	default:
		return evaluatePattern(b)
	}
}

// evaluateSimple rewards central stones and stones followed by same-owner stones,
// without looking at whether a line is blocked.
func evaluateSimple(b *Board) int {
	n := b.n
	center := n / 2
	score := 0

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			owner := b.grid[r*n+c]
			if owner == Empty {
				continue
			}
			sign := int(owner)
			score += sign * (10 - chebyshev(r, c, center, center))

			for _, d := range Directions {
				ahead := 0
				for k := 1; k < meta.WIN_LENGTH; k++ {
					nr, nc := r+d.DRow*k, c+d.DCol*k
					if !b.InBounds(nr, nc) || b.grid[nr*n+nc] != owner {
						break
					}
					ahead++
				}
				score += sign * aheadBonus[ahead]
			}
		}
	}
	return score
}

// evaluatePattern scores every maximal run by length and open ends, net of the
// opponent's runs, plus a small center-control term.
func evaluatePattern(b *Board) int {
	if b.CheckWinner(AI) {
		return WinScore
	}
	if b.CheckWinner(Human) {
		return -WinScore
	}
	return scoreRuns(b, AI) - scoreRuns(b, Human) + centerControl(b, AI) - centerControl(b, Human)
}

// scoreRuns sums the pattern score of each of player's runs. A run only counts if
// some five-cell window along its line covers it without an opponent stone.
func scoreRuns(b *Board, player Player) int {
	n := b.n
	total := 0

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.grid[r*n+c] != player {
				continue
			}
			for _, d := range Directions {
				// Visit each run once, from its first stone
				if b.InBounds(r-d.DRow, c-d.DCol) && b.grid[(r-d.DRow)*n+c-d.DCol] == player {
					continue
				}
				length, openEnds, space := b.scanRun(r, c, d, player)
				if space < meta.WIN_LENGTH {
					continue
				}
				total += patternScores[runKey{length: min(length, 5), openEnds: openEnds}]
			}
		}
	}
	return total
}

// scanRun measures the run starting at (r, c) along d. space is the length of the
// stretch of cells not owned by the opponent that contains the run, counted up to
// the win length on each side.
func (b *Board) scanRun(r, c int, d Direction, player Player) (length, openEnds, space int) {
	opponent := player.Opponent()

	er, ec := r, c
	for b.InBounds(er, ec) && b.At(er, ec) == player {
		length++
		er, ec = er+d.DRow, ec+d.DCol
	}
	br, bc := r-d.DRow, c-d.DCol

	if b.InBounds(br, bc) && b.At(br, bc) == Empty {
		openEnds++
	}
	if b.InBounds(er, ec) && b.At(er, ec) == Empty {
		openEnds++
	}

	space = length
	for k := 0; k < meta.WIN_LENGTH && b.InBounds(er, ec) && b.At(er, ec) != opponent; k++ {
		space++
		er, ec = er+d.DRow, ec+d.DCol
	}
	for k := 0; k < meta.WIN_LENGTH && b.InBounds(br, bc) && b.At(br, bc) != opponent; k++ {
		space++
		br, bc = br-d.DRow, bc-d.DCol
	}
	return length, openEnds, space
}

func centerControl(b *Board, player Player) int {
	n := b.n
	center := n / 2
	bonus := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.grid[r*n+c] == player {
				bonus += max(0, center-chebyshev(r, c, center, center))
			}
		}
	}
	return bonus
}

func chebyshev(r1, c1, r2, c2 int) int {
	return max(abs(r1-r2), abs(c1-c2))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
