package commands

import (
	"bufio"
	"fmt"
	"gomoku/engine"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/searcher/agent"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const SPIN = 14

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the AI in the terminal",
		Long: heredoc.Doc(`play starts an interactive game. You play O and move first,
			the AI plays X.

			Enter a move as "row col" using the indices printed around
			the board. "undo" takes back your last move together with
			the AI's answer, "new" starts over, and "quit" leaves.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")
			difficultyName, _ := cmd.Flags().GetString("difficulty")
			heuristicName, _ := cmd.Flags().GetString("heuristic")
			depth, _ := cmd.Flags().GetInt("depth")
			seed, _ := cmd.Flags().GetUint64("seed")

			difficulty, err := agent.ParseDifficulty(difficultyName)
			if err != nil {
				return err
			}
			b, err := game.NewBoard(size)
			if err != nil {
				return err
			}

			options := []agent.Option{agent.WithDepth(depth)}
			if heuristicName != "" {
				heuristic, err := game.ParseHeuristic(heuristicName)
				if err != nil {
					return err
				}
				options = append(options, agent.WithHeuristic(heuristic))
			}
			if seed != 0 {
				options = append(options, agent.WithSeed(seed))
			}

			s := newPlaySession(b, agent.NewAIPlayer(difficulty, options...), cmd.InOrStdin(), cmd.OutOrStdout())
			s.spinner = spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.spinner.Suffix = " thinking..."
			return s.run()
		},
	}

	cmd.Flags().IntP("size", "s", meta.BOARD_SIZE, "Board Size (odd, 5 to 25)")
	cmd.Flags().StringP("difficulty", "l", agent.Medium.String(), "AI Difficulty (easy, medium, hard, expert, adaptive)")
	cmd.Flags().String("heuristic", "", "Override the Difficulty's Heuristic (simple, pattern)")
	cmd.Flags().Int("depth", 0, "Override the Difficulty's Search Depth")
	cmd.Flags().Uint64("seed", 0, "Seed for the AI's Random Moves")

	return cmd
}

// playSession runs games between a person on in/out and an AI player.
type playSession struct {
	board   *game.Board
	ai      *agent.AIPlayer
	in      *bufio.Scanner
	out     io.Writer
	spinner *spinner.Spinner // Optional
	session engine.Session
	started time.Time
}

func newPlaySession(b *game.Board, ai *agent.AIPlayer, in io.Reader, out io.Writer) *playSession {
	return &playSession{
		board: b,
		ai:    ai,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

func (s *playSession) run() error {
	s.start()
	for {
		fmt.Fprint(s.out, s.board.String())
		if s.board.IsGameOver() {
			fmt.Fprint(s.out, "Game over. Type new or quit: ")
		} else {
			fmt.Fprint(s.out, "Your move (row col), undo, new or quit: ")
		}

		if !s.in.Scan() {
			break
		}
		fields := strings.Fields(strings.ToLower(s.in.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q", "exit":
			fmt.Fprintln(s.out, s.session.String())
			return nil
		case "new", "n":
			s.board.Reset()
			s.start()
		case "undo", "u":
			s.undo()
		default:
			s.move(fields)
		}
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.session.String())
	return nil
}

func (s *playSession) start() {
	s.started = time.Now()
	profile := s.ai.Profile()
	log.Info().Msgf("new game on a %dx%d board, difficulty %s, heuristic %s",
		s.board.Size(), s.board.Size(), s.ai.Difficulty(), profile.Heuristic)
}

func (s *playSession) move(fields []string) {
	if s.board.IsGameOver() {
		fmt.Fprintln(s.out, "The game is over.")
		return
	}
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "Enter a move as: row col")
		return
	}
	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		fmt.Fprintln(s.out, "Row and column must be numbers.")
		return
	}
	if !s.board.MakeMove(row, col, game.Human) {
		fmt.Fprintf(s.out, "Cannot play at %d %d.\n", row, col)
		return
	}
	log.Info().Msgf("%s played (%d, %d)", game.Human, row, col)
	if s.finished() {
		return
	}

	if s.spinner != nil {
		s.spinner.Start()
	}
	d := s.ai.Decide(s.board)
	if s.spinner != nil {
		s.spinner.Stop()
	}

	if !d.Found {
		s.finished()
		return
	}
	s.board.MakeMove(d.Move.Row, d.Move.Col, s.ai.Side())
	log.Info().Msgf("%s played %v (%s) in %v", s.ai.Side(), d.Move, d.Source, d.Elapsed)
	fmt.Fprintf(s.out, "AI plays %d %d.\n", d.Move.Row, d.Move.Col)
	s.finished()
}

// undo takes back moves until it is the person's turn again with one fewer
// of their stones on the board.
func (s *playSession) undo() {
	if s.board.IsGameOver() {
		fmt.Fprintln(s.out, "The game is over.")
		return
	}
	last := s.board.History()
	if len(last) == 0 {
		fmt.Fprintln(s.out, "Nothing to undo.")
		return
	}
	if last[len(last)-1].Player == s.ai.Side() {
		s.board.UndoMove()
	}
	s.board.UndoMove()
}

// finished reports whether the game is over, recording and announcing it if so.
func (s *playSession) finished() bool {
	if !s.board.IsGameOver() {
		return false
	}

	winner, _ := s.board.Winner()
	s.session.Record(winner, s.board.MoveCount())
	switch winner {
	case game.Human:
		fmt.Fprintln(s.out, "You win!")
	case game.AI:
		fmt.Fprintln(s.out, "The AI wins.")
	default:
		fmt.Fprintln(s.out, "Draw.")
	}
	if winner == game.Empty {
		log.Info().Msgf("game ended in a draw after %d moves in %v", s.board.MoveCount(), time.Since(s.started))
	} else {
		log.Info().Msgf("game won by %s after %d moves in %v", winner, s.board.MoveCount(), time.Since(s.started))
	}
	return true
}
