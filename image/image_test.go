package image

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chess "github.com/mway1/chessboard"
)

func startGrid() chess.Grid {
	return chess.NewGame().Board()
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, startGrid()))
	out := buf.String()

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `viewBox="0 0 360 360"`)
	assert.Equal(t, 64, strings.Count(out, "<rect"))
	assert.Equal(t, 32, strings.Count(out, "font-family:serif"))
	assert.Contains(t, out, "♔")
	assert.Contains(t, out, "♚")
	assert.Equal(t, 32, strings.Count(out, hex(defaultLight)))
	assert.Equal(t, 32, strings.Count(out, hex(defaultDark)))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestSVGMarkSquares(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, startGrid(), MarkSquares(red, chess.E3, chess.E4)))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `fill="#ff0000"`))
	assert.Equal(t, 31, strings.Count(out, hex(defaultLight)))
	assert.Equal(t, 31, strings.Count(out, hex(defaultDark)))
}

func TestSVGPerspective(t *testing.T) {
	// the text tag holding the first glyph of the given piece
	glyphTag := func(out, glyph string) string {
		i := strings.Index(out, glyph)
		require.Positive(t, i)
		return out[strings.LastIndex(out[:i], "<text"):i]
	}
	loc := func(row, col int) string {
		sz := defaultSquareSize
		return fmt.Sprintf(`x="%d" y="%d"`, col*sz+sz/2, row*sz+sz*4/5)
	}

	var w, b bytes.Buffer
	require.NoError(t, SVG(&w, startGrid(), HideCoordinates()))
	require.NoError(t, SVG(&b, startGrid(), HideCoordinates(), Perspective(chess.Black)))

	// the white king sits on the bottom row from White's side and on the
	// top row, mirrored, from Black's
	assert.Contains(t, glyphTag(w.String(), "♔"), loc(7, 4))
	assert.Contains(t, glyphTag(b.String(), "♔"), loc(0, 3))
	assert.Contains(t, glyphTag(w.String(), "♔"), "font-size:36px")
}

func TestSVGOptions(t *testing.T) {
	var buf bytes.Buffer
	light := color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	dark := color.RGBA{R: 0x22, G: 0x44, B: 0x66, A: 0xff}
	require.NoError(t, SVG(&buf, chess.Grid{}, SquareColors(light, dark), SquareSize(10), HideCoordinates()))
	out := buf.String()
	assert.Contains(t, out, `viewBox="0 0 80 80"`)
	assert.Equal(t, 32, strings.Count(out, "#eeeeee"))
	assert.Equal(t, 32, strings.Count(out, "#224466"))
	assert.NotContains(t, out, "<text")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVGWriteError(t *testing.T) {
	assert.EqualError(t, SVG(failingWriter{}, startGrid()), "disk full")
}

func assertColorNear(t *testing.T, want color.RGBA, got color.Color, msg string) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	near := func(w uint8, v uint32) bool {
		d := int(w) - int(v>>8)
		return d >= -2 && d <= 2
	}
	assert.True(t, near(want.R, r) && near(want.G, g) && near(want.B, b), "%s: want %v got %v", msg, want, got)
}

func TestPNG(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, startGrid(), MarkSquares(red, chess.E4)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	sz := defaultSquareSize
	require.Equal(t, 8*sz, img.Bounds().Dx())
	require.Equal(t, 8*sz, img.Bounds().Dy())

	// sample near the top right corner of each square, clear of labels and discs
	at := func(row, col int) color.Color {
		return img.At(col*sz+sz-3, row*sz+3)
	}
	assertColorNear(t, defaultDark, at(7, 0), "a1")
	assertColorNear(t, defaultLight, at(7, 7), "h1")
	assertColorNear(t, defaultLight, at(0, 0), "a8")
	assertColorNear(t, red, at(4, 4), "e4")

	// the white king's disc is white at its edge
	assertColorNear(t, white, img.At(4*sz+sz/2, 7*sz+sz/2-sz/3), "e1 disc")
}

func TestPNGPerspective(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, startGrid(), Perspective(chess.Black), SquareSize(20)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	// a1 sits in the top right corner when seen from Black
	assertColorNear(t, defaultDark, img.At(7*20+19, 1), "a1")
}
