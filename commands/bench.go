package commands

import (
	"fmt"
	"gomoku/experiments"
	"gomoku/experiments/metrics"
	"gomoku/game"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Bench() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure search effort with and without pruning",
		Long: heredoc.Doc(`bench samples positions from a self-play game and searches
			each one at every depth up to --depth, with and without
			alpha-beta pruning. Node counts, cutoffs and timings are
			written to search_records.csv under --out.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup := experiments.DefaultThroughputSetup()
			setup.BoardSize, _ = cmd.Flags().GetInt("size")
			setup.MaxDepth, _ = cmd.Flags().GetInt("depth")
			setup.Every, _ = cmd.Flags().GetInt("every")
			setup.Seed, _ = cmd.Flags().GetUint64("seed")
			heuristicName, _ := cmd.Flags().GetString("heuristic")
			out, _ := cmd.Flags().GetString("out")

			heuristic, err := game.ParseHeuristic(heuristicName)
			if err != nil {
				return err
			}
			setup.Heuristic = heuristic

			records, dir, err := experiments.RunThroughputExperiment(setup, out)
			if err != nil {
				return err
			}

			var full, pruned int
			for _, r := range records {
				if r.Pruning {
					pruned += r.Nodes
				} else {
					full += r.Nodes
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Searched %d times: %d nodes without pruning, %d with pruning\n", len(records), full, pruned)
			fmt.Fprintf(cmd.OutOrStdout(), "Records written to %s\n", dir)
			return nil
		},
	}

	defaults := experiments.DefaultThroughputSetup()
	cmd.Flags().IntP("size", "s", defaults.BoardSize, "Board Size (odd, 5 to 25)")
	cmd.Flags().Int("depth", defaults.MaxDepth, "Deepest Search to Measure")
	cmd.Flags().Int("every", defaults.Every, "Sample a Position every N Moves")
	cmd.Flags().Uint64("seed", defaults.Seed, "Seed for the Self-Play Game")
	cmd.Flags().String("heuristic", defaults.Heuristic.String(), "Heuristic (simple, pattern)")
	cmd.Flags().StringP("out", "o", metrics.DefaultDir(), "Directory for Experiment Records")

	return cmd
}
