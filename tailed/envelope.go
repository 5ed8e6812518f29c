package tailed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Method names used on the wire.
const (
	MethodLogin    = "Login"
	MethodEvent    = "Event"
	MethodHelp     = "Help"
	MethodAction   = "Action"
	MethodPutToken = "PutToken"
)

// EventServerClosing is the MethodName of the Event the server sends
// before it goes away.
const EventServerClosing = "ServerClosing"

// TurnPlayer is the Action Turn value meaning it is our move.
const TurnPlayer = "Player"

// An Envelope is one message in either direction.
//
// The server sends capitalized keys ({"Method":..,"Args":..}) but
// expects lowercase keys from clients ({"method":..,"args":..}).
// Encode always produces the lowercase form; DecodeEnvelope accepts
// either, since encoding/json matches keys case-insensitively.
type Envelope struct {
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args"`
}

type inbound struct {
	Method string          `json:"Method"`
	Args   json.RawMessage `json:"Args"`
}

type LoginArgs struct {
	UUID string `json:"UUID"`
}

type PutTokenArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type EventArgs struct {
	MethodName string `json:"MethodName"`
}

type ActionArgs struct {
	Array string `json:"Array"`
	Turn  string `json:"Turn,omitempty"`
}

// NewEnvelope builds an outbound envelope. A nil args is sent as null.
func NewEnvelope(method string, args interface{}) (*Envelope, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	env := &Envelope{Method: method}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("marshal %s args: %w", method, err)
		}
		env.Args = raw
	}
	return env, nil
}

// DecodeEnvelope parses one line received from the server.
func DecodeEnvelope(line string) (*Envelope, error) {
	var in inbound
	if err := json.Unmarshal([]byte(line), &in); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}
	if in.Method == "" {
		return nil, &DecodeError{Line: line, Err: ErrMissingMethod}
	}
	env := &Envelope{Method: in.Method}
	if !isNull(in.Args) {
		env.Args = in.Args
	}
	return env, nil
}

func (e *Envelope) Encode() (string, error) {
	if e.Method == "" {
		return "", ErrEmptyMethod
	}
	buf, err := json.Marshal(&Envelope{Method: e.Method, Args: e.RawArgs()})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", e.Method, err)
	}
	return string(buf), nil
}

// RawArgs returns the args as JSON, or `null` if there are none.
func (e *Envelope) RawArgs() json.RawMessage {
	if isNull(e.Args) {
		return json.RawMessage("null")
	}
	return e.Args
}

// DecodeArgs unmarshals the args into v. Missing args leave v untouched.
func (e *Envelope) DecodeArgs(v interface{}) error {
	if isNull(e.Args) {
		return nil
	}
	if err := json.Unmarshal(e.Args, v); err != nil {
		return &DecodeError{Line: string(e.Args), Err: err}
	}
	return nil
}

// StringArg looks up a string-valued arg by its exact key.
func (e *Envelope) StringArg(name string) (string, bool) {
	if isNull(e.Args) {
		return "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Args, &fields); err != nil {
		return "", false
	}
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
