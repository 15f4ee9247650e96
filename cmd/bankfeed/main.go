package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/commands"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := commands.NewRootCommand(log)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
