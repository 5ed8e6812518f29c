package bot

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/cli"
	"github.com/nelhage/tictactician/tailed"
	"github.com/nelhage/tictactician/tictactoe"
)

var (
	ErrServerClosing    = errors.New("server is closing")
	ErrConnectionClosed = errors.New("connection closed")
)

type Client interface {
	Recv() <-chan string
	SendLine(string)
	Error() error
}

// Session holds what identifies us for the life of one connection.
type Session struct {
	UUID   string
	ConnID string
}

// A Recorder is told about every move we send.
type Recorder interface {
	RecordMove(connID, uuid string, b tictactoe.Board, sq tictactoe.Square) error
}

// Dispatcher decodes server messages and answers them. It is driven
// by a single goroutine; see Run.
type Dispatcher struct {
	Session  Session
	Player   ai.TicTacToePlayer
	Recorder Recorder
	Glyphs   *cli.Glyphs

	cmds tailed.Commands
	log  zerolog.Logger
}

func NewDispatcher(c tailed.Sender, s Session, p ai.TicTacToePlayer) *Dispatcher {
	return &Dispatcher{
		Session: s,
		Player:  p,
		cmds:    tailed.Commands{Sender: c},
		log:     log.With().Str("conn-id", s.ConnID).Logger(),
	}
}

// ProcessMessage handles one line from the server. Bad frames are
// logged and dropped. It returns ErrServerClosing once the server
// announces it is going away.
func (d *Dispatcher) ProcessMessage(ctx context.Context, line string) error {
	env, err := tailed.DecodeEnvelope(line)
	if err != nil {
		d.log.Warn().Err(err).Msg("error processing message")
		return nil
	}
	switch env.Method {
	case tailed.MethodLogin:
		d.log.Info().RawJSON("args", env.RawArgs()).Msg("login")
		d.cmds.Login(d.Session.UUID)
	case tailed.MethodEvent:
		name, ok := env.StringArg("MethodName")
		if !ok {
			d.log.Warn().RawJSON("args", env.RawArgs()).Msg("event without MethodName")
			return nil
		}
		d.log.Info().Str("event", name).RawJSON("args", env.RawArgs()).Msg("event")
		if name == tailed.EventServerClosing {
			return ErrServerClosing
		}
	case tailed.MethodHelp:
		d.log.Info().RawJSON("args", env.RawArgs()).Msg("help")
	default:
		d.handleGameMessage(ctx, env)
	}
	return nil
}

func (d *Dispatcher) handleGameMessage(ctx context.Context, env *tailed.Envelope) {
	switch env.Method {
	case tailed.MethodAction:
		d.HandleAction(ctx, env)
	default:
		d.log.Info().Str("method", env.Method).Msg("unhandled message type")
	}
}

// HandleAction picks a move for the board in an Action message and
// sends it. It reports whether a PutToken was sent.
func (d *Dispatcher) HandleAction(ctx context.Context, env *tailed.Envelope) bool {
	var args tailed.ActionArgs
	if err := env.DecodeArgs(&args); err != nil {
		d.log.Warn().Err(err).Msg("bad Action args")
		return false
	}
	if args.Array == "" {
		d.log.Warn().Err(&tailed.DecodeError{Line: string(env.RawArgs()), Err: tailed.ErrMissingArg}).
			Msg("Action without Array")
		return false
	}
	if args.Turn != "" && args.Turn != tailed.TurnPlayer {
		d.log.Info().Str("turn", args.Turn).Msg("not our turn")
		return false
	}
	b, err := tictactoe.ParseBoard(args.Array)
	if err != nil {
		d.log.Warn().Err(err).Msg("bad board")
		return false
	}
	if e := d.log.Debug(); e.Enabled() {
		e.Msg("board\n" + cli.FormatBoard(b, d.Glyphs))
	}

	sq, ok := d.Player.GetMove(ctx, b)
	if !ok {
		d.log.Warn().Str("board", b.Format()).Msg("no empty square; not moving")
		return false
	}
	if err := d.cmds.PutToken(sq.X, sq.Y); err != nil {
		return false
	}
	d.log.Info().
		Int("x", sq.X).
		Int("y", sq.Y).
		Str("board", b.Format()).
		Msg("my-move")

	if d.Recorder != nil {
		if err := d.Recorder.RecordMove(d.Session.ConnID, d.Session.UUID, b, sq); err != nil {
			d.log.Warn().Err(err).Msg("record move")
		}
	}
	return true
}
