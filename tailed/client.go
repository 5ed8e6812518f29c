package tailed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultServer is the public tic-tac-toe server.
const DefaultServer = "socket.tictactoe.tailed.ca:25001"

type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnected
	StateClosed
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Config struct {
	Server      string
	DialTimeout time.Duration
	// Debug logs every line sent and received.
	Debug bool
}

// Client is a line-oriented connection to the game server. Received
// lines are delivered in order on Recv by a single reader goroutine.
//
// The zero Client is Disconnected; sending on it logs and does nothing.
type Client struct {
	conn  net.Conn
	id    string
	debug bool

	state atomic.Int32

	errMu sync.Mutex
	err   error

	recv         chan string
	send         chan string
	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup

	last struct {
		sync.Mutex
		buf [5]string
		i   int
	}
}

func Dial(ctx context.Context, cfg Config) (*Client, error) {
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", cfg.Server)
	if err != nil {
		return nil, &ConnectionError{Server: cfg.Server, Attempts: 1, Err: err}
	}
	c := newClient(conn, cfg.Debug)
	log.Info().
		Str("conn-id", c.id).
		Str("server", cfg.Server).
		Str("local", conn.LocalAddr().String()).
		Msg("connected")
	return c, nil
}

func newClient(conn net.Conn, debug bool) *Client {
	c := &Client{
		conn:     conn,
		id:       uuid.NewString(),
		debug:    debug,
		recv:     make(chan string),
		send:     make(chan string),
		shutdown: make(chan struct{}),
	}
	c.state.Store(int32(StateConnected))
	c.wg.Add(2)
	go c.recvThread()
	go c.sendThread()
	return c
}

// ID identifies this connection in logs and the move history.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// Error returns the error that ended the read loop, if any. It is
// io.EOF if the server closed the connection.
func (c *Client) Error() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	c.err = err
}

func (c *Client) Recv() <-chan string {
	return c.recv
}

func (c *Client) logSent(l string) {
	c.last.Lock()
	defer c.last.Unlock()
	c.last.buf[c.last.i] = l
	c.last.i = (c.last.i + 1) % len(c.last.buf)
}

func (c *Client) lastSent() []string {
	out := make([]string, 0, len(c.last.buf))
	c.last.Lock()
	defer c.last.Unlock()
	for i := 1; i <= len(c.last.buf); i++ {
		j := (c.last.i - i + len(c.last.buf)) % len(c.last.buf)
		if c.last.buf[j] != "" {
			out = append(out, c.last.buf[j])
		}
	}
	return out
}

func (c *Client) recvThread() {
	defer c.wg.Done()
	defer close(c.recv)
	r := bufio.NewReader(c.conn)
	for {
		line, err := r.ReadString('\n')
		// A final line may arrive without a terminator.
		if line = strings.TrimSpace(line); line != "" {
			if c.debug {
				log.Debug().Str("conn-id", c.id).Msgf("< %s", line)
			}
			select {
			case c.recv <- line:
			case <-c.shutdown:
				return
			}
		}
		if err != nil {
			c.readFailed(err)
			return
		}
	}
}

func (c *Client) readFailed(err error) {
	c.state.Store(int32(StateClosed))
	select {
	case <-c.shutdown:
		// We closed the connection ourselves.
		return
	default:
	}
	c.setErr(err)
	ev := log.Warn().Str("conn-id", c.id)
	if errors.Is(err, io.EOF) {
		ev.Msg("server closed the connection")
	} else {
		ev.Err(err).Msg("error receiving data from server")
	}
	for _, m := range c.lastSent() {
		log.Info().Str("conn-id", c.id).Msgf("last sent: `%s`", m)
	}
}

func (c *Client) sendThread() {
	defer c.wg.Done()
	for {
		select {
		case line := <-c.send:
			if c.debug {
				log.Debug().Str("conn-id", c.id).Msgf("> %s", line)
			}
			c.logSent(line)
			if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
				log.Warn().Str("conn-id", c.id).Err(err).Msg("send failed")
			}
		case <-c.shutdown:
			return
		}
	}
}

// SendLine queues one line for the server. It never fails; if the
// client is not connected the line is dropped with a warning.
func (c *Client) SendLine(line string) {
	if st := c.State(); st != StateConnected {
		log.Warn().Str("state", st.String()).Str("line", line).Msg("not connected to server; dropping message")
		return
	}
	select {
	case c.send <- line:
	case <-c.shutdown:
		log.Warn().Str("line", line).Msg("client shut down; dropping message")
	}
}

// Shutdown stops both goroutines and releases the input stream, the
// output stream and the socket. Close errors are logged, not returned.
// It is safe to call more than once.
func (c *Client) Shutdown() {
	if c.conn == nil {
		return
	}
	c.shutdownOnce.Do(func() {
		c.state.Store(int32(StateClosed))
		close(c.shutdown)

		c.conn.SetReadDeadline(time.Now())
		if cr, ok := c.conn.(interface{ CloseRead() error }); ok {
			c.closeQuietly("input stream", cr.CloseRead)
		} else {
			c.closeQuietly("socket", c.conn.Close)
		}
		c.wg.Wait()

		if cw, ok := c.conn.(interface{ CloseWrite() error }); ok {
			c.closeQuietly("output stream", cw.CloseWrite)
		}
		c.closeQuietly("socket", c.conn.Close)
		log.Info().Str("conn-id", c.id).Msg("disconnected")
	})
}

func (c *Client) closeQuietly(what string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Debug().Str("conn-id", c.id).Err(err).Msgf("close %s", what)
	}
}
