package tailed

import "github.com/rs/zerolog/log"

type Sender interface {
	SendLine(string)
}

// Commands sends the client-side messages of the protocol.
type Commands struct {
	Sender
}

// SendMessage encodes and sends one envelope. Encoding failures are
// logged and returned; nothing is sent.
func (c *Commands) SendMessage(method string, args interface{}) error {
	env, err := NewEnvelope(method, args)
	if err == nil {
		var line string
		line, err = env.Encode()
		if err == nil {
			c.SendLine(line)
			return nil
		}
	}
	log.Error().Err(err).Str("method", method).Msg("rpc message error")
	return err
}

// Login answers the server's Login challenge with our session UUID.
func (c *Commands) Login(uuid string) error {
	return c.SendMessage(MethodLogin, &LoginArgs{UUID: uuid})
}

func (c *Commands) PutToken(x, y int) error {
	return c.SendMessage(MethodPutToken, &PutTokenArgs{X: x, Y: y})
}

// RequestHelp asks the server for its command list. The answer
// arrives as a Help message.
func (c *Commands) RequestHelp() error {
	return c.SendMessage(MethodHelp, nil)
}
