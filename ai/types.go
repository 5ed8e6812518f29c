package ai

import (
	"github.com/nelhage/tictactician/tictactoe"
	"golang.org/x/net/context"
)

// A TicTacToePlayer picks the square to play on a board. It returns
// false if it has no move to make, e.g. because the board is full.
type TicTacToePlayer interface {
	GetMove(ctx context.Context, b tictactoe.Board) (tictactoe.Square, bool)
}
