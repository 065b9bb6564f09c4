// Package image renders a chess board grid as SVG or PNG.
package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	chess "github.com/mway1/chessboard"
)

const defaultSquareSize = 45

var (
	defaultLight = color.RGBA{R: 0xf0, G: 0xd9, B: 0xb5, A: 0xff}
	defaultDark  = color.RGBA{R: 0xb5, G: 0x88, B: 0x63, A: 0xff}
	black        = color.RGBA{A: 0xff}
	white        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// An Option customizes how SVG and PNG draw the board.
type Option func(*encoder)

type encoder struct {
	light       color.Color
	dark        color.Color
	perspective chess.Color
	marks       map[chess.Square]color.Color
	squareSize  int
	coordinates bool
}

func newEncoder(options []Option) *encoder {
	e := &encoder{
		light:       defaultLight,
		dark:        defaultDark,
		perspective: chess.White,
		marks:       map[chess.Square]color.Color{},
		squareSize:  defaultSquareSize,
		coordinates: true,
	}
	for _, op := range options {
		if op != nil {
			op(e)
		}
	}
	return e
}

// SquareColors is designed to be used as an optional argument
// to the SVG and PNG functions. It changes the default light and
// dark square colors to the colors given.
func SquareColors(light, dark color.Color) Option {
	return func(e *encoder) {
		e.light = light
		e.dark = dark
	}
}

// MarkSquares is designed to be used as an optional argument to the SVG and
// PNG functions. It fills the given squares with c, e.g. to show the legal
// targets of a selected piece.
func MarkSquares(c color.Color, sqs ...chess.Square) Option {
	return func(e *encoder) {
		for _, sq := range sqs {
			e.marks[sq] = c
		}
	}
}

// Perspective is designed to be used as an optional argument to the SVG and
// PNG functions. It draws the board from the given color's side; White is
// the default.
func Perspective(c chess.Color) Option {
	return func(e *encoder) {
		if c == chess.Black {
			e.perspective = chess.Black
		}
	}
}

// SquareSize sets the edge of one square in pixels.
func SquareSize(px int) Option {
	return func(e *encoder) {
		if px > 0 {
			e.squareSize = px
		}
	}
}

// HideCoordinates omits the file and rank labels.
func HideCoordinates() Option {
	return func(e *encoder) {
		e.coordinates = false
	}
}

// SVG writes the grid as an SVG document to w.
func SVG(w io.Writer, grid chess.Grid, options ...Option) error {
	e := newEncoder(options)
	return e.writeSVG(w, grid, true)
}

// PNG writes the grid as a PNG image to w. Pieces are drawn as discs
// carrying their letter.
func PNG(w io.Writer, grid chess.Grid, options ...Option) error {
	e := newEncoder(options)

	var buf bytes.Buffer
	if err := e.writeSVG(&buf, grid, false); err != nil {
		return err
	}
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("image: parse board svg: %w", err)
	}

	size := e.boardSize()
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		icon.ViewBox.W, icon.ViewBox.H = float64(size), float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	e.drawLetters(img, grid)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode png: %w", err)
	}
	return nil
}

func (e *encoder) boardSize() int {
	return e.squareSize * 8
}

// square returns the board square drawn at the given row and column.
func (e *encoder) square(row, col int) chess.Square {
	if e.perspective == chess.Black {
		return chess.Sq(7-col, 7-row)
	}
	return chess.Sq(col, row)
}

func (e *encoder) fill(sq chess.Square) color.Color {
	if c, ok := e.marks[sq]; ok {
		return c
	}
	if sq.Light() {
		return e.light
	}
	return e.dark
}

// writeSVG draws squares and pieces. With text disabled pieces become
// plain discs, which is all the rasteriser understands.
func (e *encoder) writeSVG(w io.Writer, grid chess.Grid, text bool) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	sz := e.squareSize
	size := e.boardSize()
	canvas.Startview(size, size, 0, 0, size, size)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := e.square(row, col)
			x, y := col*sz, row*sz
			canvas.Rect(x, y, sz, sz, attr("fill", hex(e.fill(sq))))

			p := grid.At(sq)
			switch {
			case p.Empty():
			case text:
				canvas.Text(x+sz/2, y+sz*4/5, p.Glyph(),
					fmt.Sprintf("font-size:%dpx;text-anchor:middle;font-family:serif", sz*4/5))
			default:
				body, edge := white, black
				if p.Color == chess.Black {
					body, edge = black, white
				}
				canvas.Circle(x+sz/2, y+sz/2, sz*2/5,
					attr("fill", hex(body)), attr("stroke", hex(edge)), `stroke-width="2"`)
			}

			if text && e.coordinates {
				e.writeCoordinates(canvas, sq, row, col)
			}
		}
	}
	canvas.End()
	return ew.err
}

func (e *encoder) writeCoordinates(canvas *svg.SVG, sq chess.Square, row, col int) {
	sz := e.squareSize
	style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif", max(sz/5, 6))
	if row == 7 {
		canvas.Text(col*sz+sz-sz/6, row*sz+sz-3, string(sq.FileByte()), style)
	}
	if col == 0 {
		canvas.Text(2, row*sz+sz/5+2, string(sq.RankByte()), style)
	}
}

// drawLetters writes piece letters and coordinates onto the rasterised
// board.
func (e *encoder) drawLetters(img *stdimage.RGBA, grid chess.Grid) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Face: face}
	sz := e.squareSize
	ascent := face.Metrics().Ascent.Round()

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := e.square(row, col)
			if p := grid.At(sq); !p.Empty() {
				ink := black
				if p.Color == chess.Black {
					ink = white
				}
				d.Src = stdimage.NewUniform(ink)
				letter := p.Type.Letter()
				width := d.MeasureString(letter).Round()
				d.Dot = fixed.P(col*sz+(sz-width)/2, row*sz+(sz+ascent)/2-1)
				d.DrawString(letter)
			}
			if !e.coordinates {
				continue
			}
			d.Src = stdimage.NewUniform(e.labelInk(sq))
			if row == 7 {
				d.Dot = fixed.P(col*sz+sz-9, row*sz+sz-3)
				d.DrawString(string(sq.FileByte()))
			}
			if col == 0 {
				d.Dot = fixed.P(2, row*sz+ascent)
				d.DrawString(string(sq.RankByte()))
			}
		}
	}
}

// labelInk picks the opposite square color so labels stay readable.
func (e *encoder) labelInk(sq chess.Square) color.Color {
	if sq.Light() {
		return e.dark
	}
	return e.light
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
