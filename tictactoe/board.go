package tictactoe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell values as sent by the server. Any non-zero value is occupied;
// the server uses 1 and 2 for the two sides.
const (
	Empty   = 0
	PlayerX = 1
	PlayerO = 2
)

// A Square addresses a board cell. X indexes the row and Y the column,
// matching the server's PutToken coordinates.
type Square struct {
	X, Y int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// Board is a snapshot of the server's grid. Rows may differ in length.
type Board [][]int

// ParseBoard parses the nested array the server encodes into the
// `Array` field of an Action message, e.g. "[[1,0,0],[0,2,0],[0,0,0]]".
func ParseBoard(s string) (Board, error) {
	var b Board
	if err := json.Unmarshal([]byte(s), &b); err != nil {
		return nil, fmt.Errorf("parse board %q: %w", s, err)
	}
	if b == nil {
		return nil, fmt.Errorf("parse board %q: not an array", s)
	}
	return b, nil
}

func (b Board) Contains(x, y int) bool {
	return x >= 0 && x < len(b) && y >= 0 && y < len(b[x])
}

// At returns the value at (x, y) and whether the square exists.
func (b Board) At(x, y int) (int, bool) {
	if !b.Contains(x, y) {
		return 0, false
	}
	return b[x][y], true
}

// EmptySquares lists the empty squares in row-major order.
func (b Board) EmptySquares() []Square {
	var out []Square
	for x, row := range b {
		for y, v := range row {
			if v == Empty {
				out = append(out, Square{X: x, Y: y})
			}
		}
	}
	return out
}

func (b Board) Full() bool {
	for _, row := range b {
		for _, v := range row {
			if v == Empty {
				return false
			}
		}
	}
	return true
}

// Format renders the board in the server's own array notation.
func (b Board) Format() string {
	var out strings.Builder
	out.WriteByte('[')
	for i, row := range b {
		if i > 0 {
			out.WriteByte(',')
		}
		out.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				out.WriteByte(',')
			}
			fmt.Fprintf(&out, "%d", v)
		}
		out.WriteByte(']')
	}
	out.WriteByte(']')
	return out.String()
}
