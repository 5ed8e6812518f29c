package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nelhage/tictactician/tictactoe"
)

type Glyphs struct {
	Empty string
	X     string
	O     string
	// Other is drawn for cell values the server does not normally send.
	Other string
}

var DefaultGlyphs = Glyphs{
	Empty: ".",
	X:     "X",
	O:     "O",
	Other: "?",
}

var UnicodeGlyphs = Glyphs{
	Empty: "·",
	X:     "✕",
	O:     "◯",
	Other: "▪",
}

func (g *Glyphs) glyph(v int) string {
	switch v {
	case tictactoe.Empty:
		return g.Empty
	case tictactoe.PlayerX:
		return g.X
	case tictactoe.PlayerO:
		return g.O
	default:
		return g.Other
	}
}

// Render draws b with row numbers down the left and column numbers
// along the bottom. A nil g means DefaultGlyphs.
func Render(out io.Writer, b tictactoe.Board, g *Glyphs) {
	if g == nil {
		g = &DefaultGlyphs
	}
	w := tabwriter.NewWriter(out, 2, 8, 1, ' ', 0)
	cols := 0
	for x, row := range b {
		if len(row) > cols {
			cols = len(row)
		}
		fmt.Fprintf(w, "%d", x)
		for _, v := range row {
			fmt.Fprintf(w, "\t%s", g.glyph(v))
		}
		fmt.Fprintf(w, "\n")
	}
	for y := 0; y < cols; y++ {
		fmt.Fprintf(w, "\t%d", y)
	}
	fmt.Fprintf(w, "\n")
	w.Flush()
}

func FormatBoard(b tictactoe.Board, g *Glyphs) string {
	var buf strings.Builder
	Render(&buf, b, g)
	return buf.String()
}
