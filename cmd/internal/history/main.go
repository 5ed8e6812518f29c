package history

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/tictactician/cli"
	"github.com/nelhage/tictactician/logs"
	"github.com/nelhage/tictactician/tictactoe"
)

type Command struct {
	unicode bool

	out io.Writer
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "Show moves recorded by `play -log-file`" }
func (*Command) Usage() string {
	return `history [flags] MOVES.db [UUID]

Prints every recorded move, optionally only those played as UUID,
with the board it answered.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.unicode, "unicode", false, "draw boards with unicode glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() < 1 || flag.NArg() > 2 {
		log.Error().Msg("usage: history MOVES.db [UUID]")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(flag.Arg(0))
	if err != nil {
		log.Error().Err(err).Str("db", flag.Arg(0)).Msg("open")
		return subcommands.ExitFailure
	}
	defer repo.Close()

	moves, err := repo.Moves(flag.Arg(1))
	if err != nil {
		log.Error().Err(err).Msg("list moves")
		return subcommands.ExitFailure
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	glyphs := &cli.DefaultGlyphs
	if c.unicode {
		glyphs = &cli.UnicodeGlyphs
	}
	for _, m := range moves {
		fmt.Fprintf(out, "%s uuid=%s conn-id=%s move=%s\n",
			m.Time.UTC().Format(time.RFC3339),
			m.UUID, m.ConnID,
			tictactoe.Square{X: m.X, Y: m.Y})
		b, err := tictactoe.ParseBoard(m.Board)
		if err != nil {
			fmt.Fprintf(out, "%s\n\n", m.Board)
			continue
		}
		cli.Render(out, b, glyphs)
		fmt.Fprintln(out)
	}
	return subcommands.ExitSuccess
}
