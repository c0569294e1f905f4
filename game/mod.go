package game

import (
	"errors"
	"fmt"
)

// Player identifies the owner of a cell. Empty marks an unowned cell.
type Player int8

const (
	Empty Player = 0
	AI    Player = 1
	Human Player = -1
)

// Opponent returns the other side. The opponent of Empty is Empty.
func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case AI:
		return "AI"
	case Human:
		return "Human"
	default:
		return "Empty"
	}
}

// Symbol is the single character used when rendering a board.
func (p Player) Symbol() byte {
	switch p {
	case AI:
		return 'X'
	case Human:
		return 'O'
	default:
		return '.'
	}
}

// Coord is a (row, col) position on the board.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Move is a committed placement recorded in the board history.
type Move struct {
	Coord
	Player Player
}

// Direction is one of the four canonical line directions.
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the canonical directions: vertical, horizontal, and both diagonals.
var Directions = [4]Direction{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

var ErrInvalidSize = errors.New("invalid board size")
