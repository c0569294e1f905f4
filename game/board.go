package game

import (
	"fmt"
	"gomoku/meta"
	"strings"
)

// Board holds the grid, the committed move history and whose turn it is.
// The move count is the history length, so the two can never disagree.
type Board struct {
	n       int
	grid    []Player // Row-major, n*n cells
	history []Move
	current Player
}

// NewBoard returns an empty n x n board with Human to move.
func NewBoard(n int) (*Board, error) {
	if n < meta.MIN_BOARD_SIZE || n > meta.MAX_BOARD_SIZE || n%2 == 0 {
		return nil, fmt.Errorf("board size %d must be odd and within [%d, %d]: %w",
			n, meta.MIN_BOARD_SIZE, meta.MAX_BOARD_SIZE, ErrInvalidSize)
	}
	b := &Board{n: n}
	b.Reset()
	return b, nil
}

// Reset clears the grid and history.
func (b *Board) Reset() {
	b.grid = make([]Player, b.n*b.n)
	b.history = nil
	b.current = Human
}

// Copy returns a deep copy sharing no mutable state with b.
func (b *Board) Copy() *Board {
	gridCopy := make([]Player, len(b.grid))
	copy(gridCopy, b.grid)

	historyCopy := make([]Move, len(b.history))
	copy(historyCopy, b.history)

	return &Board{
		n:       b.n,
		grid:    gridCopy,
		history: historyCopy,
		current: b.current,
	}
}

func (b *Board) Size() int {
	return b.n
}

func (b *Board) Center() Coord {
	return Coord{Row: b.n / 2, Col: b.n / 2}
}

func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && c >= 0 && r < b.n && c < b.n
}

// At returns the owner of (r, c). Out of bounds cells read as Empty.
func (b *Board) At(r, c int) Player {
	if !b.InBounds(r, c) {
		return Empty
	}
	return b.grid[r*b.n+c]
}

func (b *Board) IsValidMove(r, c int) bool {
	return b.InBounds(r, c) && b.grid[r*b.n+c] == Empty
}

func (b *Board) MoveCount() int {
	return len(b.history)
}

func (b *Board) CurrentPlayer() Player {
	return b.current
}

// LastMove returns the most recent committed coordinate, if any.
func (b *Board) LastMove() (Coord, bool) {
	if len(b.history) == 0 {
		return Coord{}, false
	}
	return b.history[len(b.history)-1].Coord, true
}

// History returns a snapshot of the committed moves, oldest first.
func (b *Board) History() []Move {
	historyCopy := make([]Move, len(b.history))
	copy(historyCopy, b.history)
	return historyCopy
}

// MakeMove commits player's stone at (r, c). It reports false and leaves the
// board untouched if the cell is out of bounds or occupied.
func (b *Board) MakeMove(r, c int, player Player) bool {
	if player == Empty || !b.IsValidMove(r, c) {
		return false
	}
	b.grid[r*b.n+c] = player
	b.history = append(b.history, Move{Coord: Coord{Row: r, Col: c}, Player: player})
	b.current = player.Opponent()
	return true
}

// UndoMove retracts the most recent committed move.
func (b *Board) UndoMove() bool {
	if len(b.history) == 0 {
		return false
	}
	return b.undoIndex(len(b.history) - 1)
}

// UndoMoveAt retracts the most recent committed move at (r, c).
func (b *Board) UndoMoveAt(r, c int) bool {
	for i := len(b.history) - 1; i >= 0; i-- {
		if b.history[i].Row == r && b.history[i].Col == c {
			return b.undoIndex(i)
		}
	}
	return false
}

func (b *Board) undoIndex(i int) bool {
	m := b.history[i]
	b.grid[m.Row*b.n+m.Col] = Empty
	b.history = append(b.history[:i], b.history[i+1:]...)
	b.current = m.Player
	return true
}

// Probe places player's stone on an empty cell, runs fn, and clears the cell
// again on every exit path. History and turn are not touched. It reports false
// without calling fn if the cell cannot take a stone.
func (b *Board) Probe(r, c int, player Player, fn func()) bool {
	if player == Empty || !b.IsValidMove(r, c) {
		return false
	}
	idx := r*b.n + c
	b.grid[idx] = player
	defer func() { b.grid[idx] = Empty }()
	fn()
	return true
}

// RunLength counts the contiguous stones of player through (r, c) along d,
// scanning both ways. (r, c) itself is counted as player's.
func (b *Board) RunLength(r, c int, d Direction, player Player) int {
	count := 1
	for nr, nc := r+d.DRow, c+d.DCol; b.InBounds(nr, nc) && b.At(nr, nc) == player; nr, nc = nr+d.DRow, nc+d.DCol {
		count++
	}
	for nr, nc := r-d.DRow, c-d.DCol; b.InBounds(nr, nc) && b.At(nr, nc) == player; nr, nc = nr-d.DRow, nc-d.DCol {
		count++
	}
	return count
}

// WinsAt reports whether a stone of player at (r, c) is part of a winning run.
func (b *Board) WinsAt(r, c int, player Player) bool {
	for _, d := range Directions {
		if b.RunLength(r, c, d, player) >= meta.WIN_LENGTH {
			return true
		}
	}
	return false
}

// CheckWinner reports whether player owns a run of at least five stones.
func (b *Board) CheckWinner(player Player) bool {
	if player == Empty {
		return false
	}
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if b.grid[r*b.n+c] == player && b.WinsAt(r, c, player) {
				return true
			}
		}
	}
	return false
}

// Winner returns the winning player. AI is checked first; a board where both
// sides have five is malformed and not detected here.
func (b *Board) Winner() (Player, bool) {
	if b.CheckWinner(AI) {
		return AI, true
	}
	if b.CheckWinner(Human) {
		return Human, true
	}
	return Empty, false
}

func (b *Board) IsFull() bool {
	for _, cell := range b.grid {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b *Board) IsGameOver() bool {
	if _, ok := b.Winner(); ok {
		return true
	}
	return b.IsFull()
}

// Stones counts occupied cells. It walks the grid, so it also sees probed stones.
func (b *Board) Stones() int {
	count := 0
	for _, cell := range b.grid {
		if cell != Empty {
			count++
		}
	}
	return count
}

// FillRatio is the share of occupied cells, in [0, 1].
func (b *Board) FillRatio() float64 {
	return float64(b.Stones()) / float64(len(b.grid))
}

// EmptyCells lists empty cells in row-major order.
func (b *Board) EmptyCells() []Coord {
	cells := make([]Coord, 0, len(b.grid))
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if b.grid[r*b.n+c] == Empty {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Key serializes the grid exactly, one byte per cell.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(b.grid))
	for _, cell := range b.grid {
		sb.WriteByte(cell.Symbol())
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < b.n; c++ {
		fmt.Fprintf(&sb, "%d ", c%10)
	}
	sb.WriteByte('\n')
	for r := 0; r < b.n; r++ {
		fmt.Fprintf(&sb, "%2d ", r)
		for c := 0; c < b.n; c++ {
			sb.WriteByte(b.grid[r*b.n+c].Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
