package opt

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/nelhage/tictactician/tailed"
)

// EnvServer overrides the default server address.
const EnvServer = "TICTACTICIAN_SERVER"

type Connection struct {
	Server      string
	Retries     int
	Backoff     time.Duration
	MaxBackoff  time.Duration
	DialTimeout time.Duration
	DebugClient bool
}

func (o *Connection) AddFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.Server, "server", Getenv(EnvServer, tailed.DefaultServer), "game server to connect to (host:port)")
	flags.IntVar(&o.Retries, "retries", GetenvInt("TICTACTICIAN_RETRIES", 0), "reconnect attempts after a failed initial connection")
	flags.DurationVar(&o.Backoff, "backoff", time.Second, "wait before the first reconnect attempt; doubles after each failure")
	flags.DurationVar(&o.MaxBackoff, "max-backoff", time.Minute, "upper bound on the reconnect wait")
	flags.DurationVar(&o.DialTimeout, "dial-timeout", 10*time.Second, "timeout for each connection attempt")
	flags.BoolVar(&o.DebugClient, "debug-client", false, "log every line sent to and received from the server")
}

func (o *Connection) Config() tailed.Config {
	return tailed.Config{
		Server:      o.Server,
		DialTimeout: o.DialTimeout,
		Debug:       o.DebugClient,
	}
}

func (o *Connection) Retry() tailed.Retry {
	return tailed.Retry{
		Attempts:   o.Retries + 1,
		Backoff:    o.Backoff,
		MaxBackoff: o.MaxBackoff,
	}
}

func Getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func GetenvInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return def
}
