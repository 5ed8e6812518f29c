// Package tailedtest provides an in-process stand-in for the game
// server, for tests that need a real TCP connection.
package tailedtest

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Timeout bounds every blocking operation on the fake server.
var Timeout = 5 * time.Second

type Server struct {
	t     testing.TB
	l     net.Listener
	conns chan net.Conn
}

func NewServer(t testing.TB) *Server {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &Server{
		t:     t,
		l:     l,
		conns: make(chan net.Conn, 4),
	}
	go s.accept()
	t.Cleanup(func() { l.Close() })
	return s
}

func (s *Server) accept() {
	for {
		conn, err := s.l.Accept()
		if err != nil {
			close(s.conns)
			return
		}
		s.conns <- conn
	}
}

func (s *Server) Addr() string {
	return s.l.Addr().String()
}

// Accept waits for the next client connection.
func (s *Server) Accept() *Conn {
	s.t.Helper()
	c, ok := s.AcceptWithin(Timeout)
	if !ok {
		s.t.Fatalf("no client connected within %s", Timeout)
	}
	return c
}

// AcceptWithin is Accept without failing the test on timeout.
func (s *Server) AcceptWithin(d time.Duration) (*Conn, bool) {
	s.t.Helper()
	select {
	case conn, ok := <-s.conns:
		if !ok {
			return nil, false
		}
		s.t.Cleanup(func() { conn.Close() })
		return &Conn{t: s.t, conn: conn, r: bufio.NewReader(conn)}, true
	case <-time.After(d):
		return nil, false
	}
}

// ClosedAddr returns an address nothing is listening on.
func ClosedAddr(t testing.TB) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()
	return addr
}

// Conn is the server's end of one client connection.
type Conn struct {
	t    testing.TB
	conn net.Conn
	r    *bufio.Reader
}

// Send writes raw text; callers supply their own line terminators.
func (c *Conn) Send(text string) {
	c.t.Helper()
	c.conn.SetWriteDeadline(time.Now().Add(Timeout))
	_, err := c.conn.Write([]byte(text))
	require.NoError(c.t, err)
}

func (c *Conn) SendLine(line string) {
	c.t.Helper()
	c.Send(line + "\n")
}

// Expect reads one line from the client, without its terminator.
func (c *Conn) Expect() string {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(Timeout))
	line, err := c.r.ReadString('\n')
	require.NoError(c.t, err, "read from client")
	return strings.TrimSuffix(line, "\n")
}

func (c *Conn) ExpectJSON(want string) {
	c.t.Helper()
	assert.JSONEq(c.t, want, c.Expect())
}

// ExpectClosed waits for the client to close its end.
func (c *Conn) ExpectClosed() {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(Timeout))
	line, err := c.r.ReadString('\n')
	assert.Error(c.t, err, "expected EOF, got %q", line)
}

func (c *Conn) Close() {
	c.conn.Close()
}
