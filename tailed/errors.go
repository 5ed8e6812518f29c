package tailed

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMethod   = errors.New("method name cannot be empty")
	ErrMissingMethod = errors.New("missing Method")
	ErrMissingArg    = errors.New("missing argument")
)

// A DecodeError reports a frame that could not be decoded.
type DecodeError struct {
	Line string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// A ConnectionError reports a failure to reach the server.
type ConnectionError struct {
	Server   string
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("connect %s: giving up after %d attempts: %v", e.Server, e.Attempts, e.Err)
	}
	return fmt.Sprintf("connect %s: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
