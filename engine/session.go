package engine

import (
	"fmt"
	"gomoku/game"
)

// Session tallies results over several games.
type Session struct {
	Games      int
	AIWins     int
	HumanWins  int
	Draws      int
	TotalMoves int
}

func (s *Session) Record(winner game.Player, moves int) {
	s.Games++
	s.TotalMoves += moves
	switch winner {
	case game.AI:
		s.AIWins++
	case game.Human:
		s.HumanWins++
	default:
		s.Draws++
	}
}

func (s *Session) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

func (s *Session) String() string {
	return fmt.Sprintf("games: %d, AI wins: %d, human wins: %d, draws: %d, total moves: %d",
		s.Games, s.AIWins, s.HumanWins, s.Draws, s.TotalMoves)
}
