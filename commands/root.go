package commands

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "gomoku",
		Short: "Play Gomoku against a search-based AI",
		Long: heredoc.Doc(`gomoku plays five-in-a-row against an AI that searches the
			game tree with minimax and alpha-beta pruning.

			Use "gomoku play" for an interactive game in the terminal and
			"gomoku match" to pit difficulty levels against each other.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// --trace wins over --debug when both are given
			if cmd.Flag("debug").Changed {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("debug", "d", false, "Show Search Statistics")

	root.AddCommand(Play())
	root.AddCommand(Match())
	root.AddCommand(Bench())

	return root
}
