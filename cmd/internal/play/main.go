package play

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/cli"
	"github.com/nelhage/tictactician/cmd/internal/opt"
	"github.com/nelhage/tictactician/logs"
	"github.com/nelhage/tictactician/tailed"
	"github.com/nelhage/tictactician/tailed/bot"
)

var errInterrupted = errors.New("interrupted")

type Command struct {
	conn opt.Connection

	seed          int64
	logFile       string
	helpOnConnect bool
	unicode       bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play tic-tac-toe on a tailed.ca game server" }
func (*Command) Usage() string {
	return `play [flags] UUID

Connects to the game server, logs in as UUID and answers every Action
with a random legal move until the server closes the game. Always
exits with status 1.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.conn.AddFlags(flags)
	flags.Int64Var(&c.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flags.StringVar(&c.logFile, "log-file", "", "record every move in this sqlite database")
	flags.BoolVar(&c.helpOnConnect, "help-on-connect", false, "ask the server for its command list after connecting")
	flags.BoolVar(&c.unicode, "unicode", false, "draw boards in debug output with unicode glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() < 1 {
		log.Error().Msg("no UUID provided, closing...")
		return subcommands.ExitFailure
	}
	err := c.play(ctx, flag.Arg(0))
	log.Error().Err(err).Msg("exiting")
	return subcommands.ExitFailure
}

func (c *Command) play(ctx context.Context, uuid string) error {
	log.Info().Str("uuid", uuid).Str("server", c.conn.Server).Msg("launching")

	var repo *logs.Repository
	if c.logFile != "" {
		var err error
		repo, err = logs.Open(c.logFile)
		if err != nil {
			return fmt.Errorf("open move log: %w", err)
		}
		defer repo.Close()
	}

	seed := c.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigs)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		select {
		case s := <-sigs:
			return fmt.Errorf("%w: %s", errInterrupted, s)
		case <-ctx.Done():
			return nil
		}
	})
	grp.Go(func() error {
		client, err := tailed.DialWithRetry(ctx, c.conn.Config(), c.conn.Retry())
		if err != nil {
			return err
		}
		defer client.Shutdown()

		d := bot.NewDispatcher(client,
			bot.Session{UUID: uuid, ConnID: client.ID()},
			ai.NewRandom(seed))
		if c.unicode {
			d.Glyphs = &cli.UnicodeGlyphs
		}
		if repo != nil {
			d.Recorder = repo
		}
		if c.helpOnConnect {
			cmds := tailed.Commands{Sender: client}
			cmds.RequestHelp()
		}
		return bot.Run(ctx, client, d)
	})
	return grp.Wait()
}
