package bot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/nelhage/tictactician/tailed"
	"github.com/nelhage/tictactician/tictactoe"
)

// An Expectation is one step of a scripted conversation: the server
// sends `send`, then expects the bot to answer with `recv`.
type Expectation struct {
	send, recv []string
}

type TestClient struct {
	send, recv chan string
	done       chan struct{}
	err        error

	t      *testing.T
	expect []Expectation
}

func NewTestClient(t *testing.T, expect []Expectation) *TestClient {
	c := &TestClient{
		send:   make(chan string, 16),
		recv:   make(chan string),
		done:   make(chan struct{}),
		t:      t,
		expect: expect,
	}
	go c.sendRecv()
	return c
}

func (t *TestClient) sendRecv() {
	defer close(t.done)
	for i, e := range t.expect {
		for _, s := range e.send {
			t.recv <- s
			log.Printf("[srv] -> %s", s)
		}
		for j, r := range e.recv {
			select {
			case got := <-t.send:
				log.Printf("[srv] <- %s", got)
				assert.JSONEq(t.t, r, got, "msg %d,%d", i, j)
			case <-time.After(5 * time.Second):
				t.t.Errorf("msg %d,%d: timed out waiting for %s", i, j, r)
				close(t.recv)
				return
			}
		}
	}
	close(t.recv)
}

func (t *TestClient) SendLine(line string) {
	t.send <- line
}

func (t *TestClient) Recv() <-chan string {
	return t.recv
}

func (t *TestClient) Error() error {
	return t.err
}

// wait blocks until the whole script has been played.
func (t *TestClient) wait() {
	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
		t.t.Fatal("script did not finish")
	}
	assert.Empty(t.t, t.send, "unexpected messages from the bot")
}

// recordingClient captures everything the dispatcher sends.
type recordingClient struct {
	lines []string
}

func (r *recordingClient) SendLine(l string) {
	r.lines = append(r.lines, l)
}

func (r *recordingClient) putTokens(t *testing.T) []tictactoe.Square {
	var out []tictactoe.Square
	for _, l := range r.lines {
		var env tailed.Envelope
		if !assert.NoError(t, json.Unmarshal([]byte(l), &env)) {
			continue
		}
		if !assert.Equal(t, tailed.MethodPutToken, env.Method) {
			continue
		}
		var args tailed.PutTokenArgs
		assert.NoError(t, json.Unmarshal(env.Args, &args))
		out = append(out, tictactoe.Square{X: args.X, Y: args.Y})
	}
	return out
}

type TestPlayerStatic struct {
	moves []tictactoe.Square
}

func (t *TestPlayerStatic) GetMove(ctx context.Context, b tictactoe.Board) (tictactoe.Square, bool) {
	if len(t.moves) == 0 {
		return tictactoe.Square{}, false
	}
	m := t.moves[0]
	t.moves = t.moves[1:]
	return m, true
}

type testRecorder struct {
	moves []tictactoe.Square
	conns []string
}

func (r *testRecorder) RecordMove(connID, uuid string, b tictactoe.Board, sq tictactoe.Square) error {
	r.moves = append(r.moves, sq)
	r.conns = append(r.conns, connID+"/"+uuid)
	return nil
}
