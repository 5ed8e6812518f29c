package bot

import (
	"fmt"

	"golang.org/x/net/context"
)

// Run feeds every line received on c to d, one at a time and in
// order, until the server closes the game, the stream ends, or ctx is
// done.
func Run(ctx context.Context, c Client, d *Dispatcher) error {
	for {
		select {
		case line, ok := <-c.Recv():
			if !ok {
				if err := c.Error(); err != nil {
					return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
				}
				return ErrConnectionClosed
			}
			if err := d.ProcessMessage(ctx, line); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
