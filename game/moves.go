package game

// Candidates returns the empty cells within Chebyshev distance radius of any
// stone. An empty board yields only the center. Callers must not rely on the
// order; the current implementation happens to emit row-major order.
func Candidates(b *Board, radius int) []Coord {
	n := b.n
	seen := make([]bool, n*n)
	hasStones := false

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.grid[r*n+c] == Empty {
				continue
			}
			hasStones = true
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					nr, nc := r+dr, c+dc
					if b.IsValidMove(nr, nc) {
						seen[nr*n+nc] = true
					}
				}
			}
		}
	}

	if !hasStones {
		return []Coord{b.Center()}
	}

	moves := []Coord{}
	for i, ok := range seen {
		if ok {
			moves = append(moves, Coord{Row: i / n, Col: i % n})
		}
	}

	// Only reachable when no stone has an empty neighbor
	if len(moves) == 0 {
		return b.EmptyCells()
	}
	return moves
}
