package ai

import (
	"math/rand"

	"github.com/nelhage/tictactician/tictactoe"
	"golang.org/x/net/context"
)

// RandomAI plays uniformly at random among the empty squares. It is not
// safe for concurrent use.
type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, b tictactoe.Board) (tictactoe.Square, bool) {
	moves := b.EmptySquares()
	if len(moves) == 0 {
		return tictactoe.Square{}, false
	}
	i := r.r.Intn(len(moves))
	return moves[i], true
}

func NewRandom(seed int64) *RandomAI {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
