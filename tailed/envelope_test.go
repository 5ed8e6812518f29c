package tailed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	cases := []struct {
		in     string
		method string
		args   string
	}{
		{`{"Method":"Login","Args":{}}`, "Login", `{}`},
		{`{"Method":"Login"}`, "Login", `null`},
		{`{"Method":"Help","Args":null}`, "Help", `null`},
		{`{"Method":"Event","Args":{"MethodName":"ServerClosing"}}`, "Event", `{"MethodName":"ServerClosing"}`},
		{`{"method":"PutToken","args":{"x":1,"y":2}}`, "PutToken", `{"x":1,"y":2}`},
	}
	for i, tc := range cases {
		env, err := DecodeEnvelope(tc.in)
		require.NoError(t, err, "[%d] %s", i, tc.in)
		assert.Equal(t, tc.method, env.Method, "[%d]", i)
		assert.JSONEq(t, tc.args, string(env.RawArgs()), "[%d]", i)
	}
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	cases := []struct {
		in      string
		missing bool
	}{
		{`not json`, false},
		{`{"Method":`, false},
		{`[1,2,3]`, false},
		{`"Login"`, false},
		{`{"Method":7}`, false},
		{`{}`, true},
		{`null`, true},
		{`{"Args":{"UUID":"x"}}`, true},
		{`{"Method":"","Args":{}}`, true},
	}
	for i, tc := range cases {
		env, err := DecodeEnvelope(tc.in)
		assert.Nil(t, env, "[%d] %s", i, tc.in)
		var de *DecodeError
		if !assert.True(t, errors.As(err, &de), "[%d] %s: %v", i, tc.in, err) {
			continue
		}
		assert.Equal(t, tc.in, de.Line)
		assert.Equal(t, tc.missing, errors.Is(err, ErrMissingMethod), "[%d] %s", i, tc.in)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	cases := []struct {
		method string
		args   interface{}
	}{
		{MethodLogin, &LoginArgs{UUID: "669a8bbde0c9ffb3c8cb228c"}},
		{MethodPutToken, &PutTokenArgs{X: 2, Y: 0}},
		{MethodHelp, nil},
		{MethodAction, map[string]interface{}{"Array": "[[0,0,0],[0,0,0],[0,0,0]]", "Turn": "Player"}},
	}
	for _, tc := range cases {
		env, err := NewEnvelope(tc.method, tc.args)
		require.NoError(t, err)
		line, err := env.Encode()
		require.NoError(t, err)

		back, err := DecodeEnvelope(line)
		require.NoError(t, err, line)
		assert.Equal(t, env.Method, back.Method)
		assert.JSONEq(t, string(env.RawArgs()), string(back.RawArgs()))
	}
}

func TestEncodeLowercase(t *testing.T) {
	env, err := NewEnvelope(MethodPutToken, &PutTokenArgs{X: 1, Y: 2})
	require.NoError(t, err)
	line, err := env.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"method":"PutToken","args":{"x":1,"y":2}}`, line)

	env, err = NewEnvelope(MethodHelp, nil)
	require.NoError(t, err)
	line, err = env.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"method":"Help","args":null}`, line)
}

func TestEmptyMethod(t *testing.T) {
	_, err := NewEnvelope("", nil)
	assert.True(t, errors.Is(err, ErrEmptyMethod))

	_, err = (&Envelope{}).Encode()
	assert.True(t, errors.Is(err, ErrEmptyMethod))
}

func TestStringArg(t *testing.T) {
	env, err := DecodeEnvelope(`{"Method":"Event","Args":{"MethodName":"ServerClosing","Count":3}}`)
	require.NoError(t, err)

	s, ok := env.StringArg("MethodName")
	assert.True(t, ok)
	assert.Equal(t, EventServerClosing, s)

	_, ok = env.StringArg("Count")
	assert.False(t, ok, "non-string arg")
	_, ok = env.StringArg("methodname")
	assert.False(t, ok, "keys are case-sensitive")
	_, ok = env.StringArg("Missing")
	assert.False(t, ok)

	env, err = DecodeEnvelope(`{"Method":"Event","Args":[1]}`)
	require.NoError(t, err)
	_, ok = env.StringArg("MethodName")
	assert.False(t, ok, "args not an object")

	env, err = DecodeEnvelope(`{"Method":"Event"}`)
	require.NoError(t, err)
	_, ok = env.StringArg("MethodName")
	assert.False(t, ok, "no args")
}

func TestDecodeArgs(t *testing.T) {
	env, err := DecodeEnvelope(`{"Method":"Action","Args":{"Array":"[[0]]","Turn":"Player"}}`)
	require.NoError(t, err)
	var args ActionArgs
	require.NoError(t, env.DecodeArgs(&args))
	assert.Equal(t, ActionArgs{Array: "[[0]]", Turn: TurnPlayer}, args)

	env, err = DecodeEnvelope(`{"Method":"Action","Args":{"Array":[[0]]}}`)
	require.NoError(t, err)
	var bad ActionArgs
	err = env.DecodeArgs(&bad)
	var de *DecodeError
	assert.True(t, errors.As(err, &de))

	env, err = DecodeEnvelope(`{"Method":"Action"}`)
	require.NoError(t, err)
	var none ActionArgs
	assert.NoError(t, env.DecodeArgs(&none))
	assert.Equal(t, ActionArgs{}, none)
}
