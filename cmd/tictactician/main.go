package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/tictactician/cmd/internal/history"
	"github.com/nelhage/tictactician/cmd/internal/opt"
	"github.com/nelhage/tictactician/cmd/internal/play"
)

var logLevel = flag.String("log-level", "", "log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")

func main() {
	_ = godotenv.Load()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&history.Command{}, "")

	flag.Parse()
	setupLogging()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	lvl := *logLevel
	if lvl == "" {
		lvl = opt.Getenv("LOG_LEVEL", "info")
	}
	if l, err := zerolog.ParseLevel(lvl); err == nil {
		zerolog.SetGlobalLevel(l)
	} else {
		log.Warn().Str("level", lvl).Msg("unknown log level")
	}
}
