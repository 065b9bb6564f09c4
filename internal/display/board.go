// Package display draws a game for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	chess "github.com/mway1/chessboard"
)

// Options controls how RenderBoard draws a grid.
type Options struct {
	Theme       Theme
	Glyphs      bool           // Unicode pieces instead of FEN letters
	Highlights  []chess.Square // e.g. the legal targets of a selected piece
	Perspective chess.Color    // Black flips the board
}

// RenderBoard writes the grid with rank and file labels. Unknown themes
// render without color.
func RenderBoard(w io.Writer, grid chess.Grid, opts Options) error {
	theme, ok := themes[opts.Theme]
	if !ok {
		theme = themes[ThemeOff]
	}
	colored := opts.Theme != ThemeOff && ok
	marked := make(map[chess.Square]bool, len(opts.Highlights))
	for _, sq := range opts.Highlights {
		marked[sq] = true
	}

	files := "a b c d e f g h"
	if opts.Perspective == chess.Black {
		files = "h g f e d c b a"
	}

	var sb strings.Builder
	sb.WriteString("  " + files + "\n")
	for row := 0; row < 8; row++ {
		rank := chess.Sq(0, row).RankByte()
		if opts.Perspective == chess.Black {
			rank = chess.Sq(0, 7-row).RankByte()
		}
		sb.WriteString(fmt.Sprintf("%c ", rank))
		for col := 0; col < 8; col++ {
			sq := chess.Sq(col, row)
			if opts.Perspective == chess.Black {
				sq = chess.Sq(7-col, 7-row)
			}
			p := grid.At(sq)
			symbol := pieceSymbol(p, opts.Glyphs)

			if !colored {
				switch {
				case !p.Empty():
					sb.WriteString(symbol + " ")
				case marked[sq]:
					sb.WriteString("* ")
				default:
					sb.WriteString(". ")
				}
				continue
			}

			bg := theme.darkBg
			if sq.Light() {
				bg = theme.lightBg
			}
			if marked[sq] {
				bg = theme.markBg
			}
			if p.Empty() {
				sb.WriteString(bg + "  " + theme.reset)
				continue
			}
			fg := theme.black
			if p.Color == chess.White {
				fg = theme.white
			}
			sb.WriteString(bg + fg + symbol + " " + theme.reset)
		}
		sb.WriteString(fmt.Sprintf("%c\n", rank))
	}
	sb.WriteString("  " + files + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func pieceSymbol(p chess.Piece, glyphs bool) string {
	if glyphs {
		return p.Glyph()
	}
	return p.String()
}

// ColorForTurn names the side to move, colored when on is set.
func ColorForTurn(on bool, c chess.Color) string {
	if c == chess.White {
		return Colorize(on, Blue, "White")
	}
	return Colorize(on, Red, "Black")
}

// History writes one line per move record.
func History(w io.Writer, records []chess.MoveRecord) error {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%3d. %-7s %s %s -> %s", r.Seq, r.SAN, r.Color, r.From, r.To))
		if r.IsCapture() {
			sb.WriteString(" x " + r.Captured.ID)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
