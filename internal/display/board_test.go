package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chess "github.com/mway1/chessboard"
)

func TestRenderBoardPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBoard(&buf, chess.NewGame().Board(), Options{Theme: ThemeOff}))

	want := "  a b c d e f g h\n" +
		"8 r n b q k b n r 8\n" +
		"7 p p p p p p p p 7\n" +
		"6 . . . . . . . . 6\n" +
		"5 . . . . . . . . 5\n" +
		"4 . . . . . . . . 4\n" +
		"3 . . . . . . . . 3\n" +
		"2 P P P P P P P P 2\n" +
		"1 R N B Q K B N R 1\n" +
		"  a b c d e f g h\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderBoardHighlightsAndPerspective(t *testing.T) {
	g := chess.NewGame()
	var buf bytes.Buffer
	opts := Options{
		Theme:       ThemeOff,
		Highlights:  g.LegalMovesFrom(chess.E2),
		Perspective: chess.Black,
	}
	require.NoError(t, RenderBoard(&buf, g.Board(), opts))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "  h g f e d c b a", lines[0])
	assert.Equal(t, "1 R N B K Q B N R 1", lines[1])
	assert.Equal(t, "4 . . . * . . . . 4", lines[4])
	assert.Equal(t, "3 . . . * . . . . 3", lines[3])
	assert.Equal(t, "8 r n b k q b n r 8", lines[8])
}

func TestRenderBoardThemes(t *testing.T) {
	grid := chess.NewGame().Board()
	for _, theme := range []Theme{ThemeBrown, ThemeGreen, ThemeGray} {
		var buf bytes.Buffer
		require.NoError(t, RenderBoard(&buf, grid, Options{Theme: theme, Glyphs: true}))
		out := buf.String()
		colors := themes[theme]
		assert.Equal(t, 32, strings.Count(out, colors.lightBg), theme)
		assert.Equal(t, 32, strings.Count(out, colors.darkBg), theme)
		assert.Contains(t, out, colors.white+"♔ ")
		assert.Contains(t, out, colors.black+"♚ ")
	}
}

func TestRenderBoardThemedHighlight(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Theme: ThemeGreen, Highlights: []chess.Square{chess.E4}}
	require.NoError(t, RenderBoard(&buf, chess.NewGame().Board(), opts))
	assert.Equal(t, 1, strings.Count(buf.String(), themes[ThemeGreen].markBg))
}

func TestRenderBoardUnknownTheme(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBoard(&buf, chess.NewGame().Board(), Options{Theme: "neon"}))
	assert.NotContains(t, buf.String(), "\033[")
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme("gray")
	require.NoError(t, err)
	assert.Equal(t, ThemeGray, theme)

	_, err = ParseTheme("neon")
	assert.EqualError(t, err, "invalid theme: neon (use: off, brown, green, gray)")
}

func TestHistory(t *testing.T) {
	g := chess.NewGame()
	require.True(t, g.TryMove(chess.E2, chess.E4))
	require.True(t, g.TryMove(chess.D7, chess.D5))
	require.True(t, g.TryMove(chess.E4, chess.D5))

	var buf bytes.Buffer
	require.NoError(t, History(&buf, g.History()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  1. e4      white e2 -> e4", lines[0])
	assert.Equal(t, "  3. exd5    white e4 -> d5 x black-pawn-4", lines[2])
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, "White", ColorForTurn(false, chess.White))
	assert.Equal(t, Red+"Black"+Reset, ColorForTurn(true, chess.Black))
	assert.Equal(t, "chess > ", Prompt(false, "chess"))
	assert.Equal(t, Yellow+"chess > "+Reset, Prompt(true, "chess"))
}
