package commands

import (
	"fmt"
	"gomoku/experiments"
	"gomoku/experiments/metrics"
	"io"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Match() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play AI difficulties against each other",
		Long: heredoc.Doc(`match runs an experiment where AI players of different
			difficulties play each other. Each match-up is played several
			times, alternating which player moves first.

			Without --setup every difficulty plays the next stronger one.
			A setup file is YAML with the fields name, games, board_size,
			seed, agents (id, difficulty, and optional depth, heuristic
			and time_limit) and match_ups (pairs of agent ids).

			Records are written as CSV files into a timestamped folder
			under --out, which defaults to the user's data directory.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupPath, _ := cmd.Flags().GetString("setup")
			out, _ := cmd.Flags().GetString("out")
			games, _ := cmd.Flags().GetInt("games")

			setup := experiments.DefaultSetup()
			if setupPath != "" {
				var err error
				if setup, err = experiments.LoadSetup(setupPath); err != nil {
					return err
				}
			}
			if games > 0 {
				setup.Games = games
			}

			results, dir, err := experiments.Run(setup, out)
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), setup, results)
			fmt.Fprintf(cmd.OutOrStdout(), "Records written to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().String("setup", "", "YAML Experiment Setup File")
	cmd.Flags().StringP("out", "o", metrics.DefaultDir(), "Directory for Experiment Records")
	cmd.Flags().IntP("games", "g", 0, "Override the Games per Match-up")

	return cmd
}

func printResults(w io.Writer, setup experiments.Setup, results []experiments.Result) {
	names := map[int]string{}
	for _, config := range setup.Agents {
		names[config.ID] = fmt.Sprintf("%d:%s", config.ID, config.Difficulty)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT 1\tAGENT 2\tWINS 1\tWINS 2\tDRAWS\tAVG MOVES")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f\n",
			names[r.Agent1], names[r.Agent2], r.Wins1, r.Wins2, r.Session.Draws, r.Session.AverageMoves())
	}
	tw.Flush()
}
