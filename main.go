package main

import (
	"gomoku/commands"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := gomoku(); err != nil {
		log.Fatal().Err(err).Msg("gomoku failed")
	}
}

func gomoku() error {
	root := commands.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
